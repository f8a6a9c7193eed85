package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	BotToken string `env:"BOT_TOKEN,required"`
	ClientID string `env:"CLIENT_ID,required"`
	OwnerID  string `env:"OWNER_ID"`

	// GuildID is the home guild; guild-scoped commands are registered there
	// and birthday announcements resolve its channel bindings.
	GuildID string `env:"GUILD_ID"`

	// DefaultStatus is the presence text used when no Status document exists.
	DefaultStatus string `env:"STATUS"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"electricalwizard"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// DefaultCooldownSeconds applies to commands that declare no cooldown.
	DefaultCooldownSeconds int `env:"DEFAULT_COOLDOWN_SECONDS" envDefault:"3"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

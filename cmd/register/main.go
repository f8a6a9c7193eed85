// Command register pushes the bot's slash command definitions to Discord.
// Global commands are overwritten application-wide; the rest are scoped to
// the home guild when GUILD_ID is set.
package main

import (
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/MysticalWizard/electricalwizard/internal/config"
	"github.com/MysticalWizard/electricalwizard/internal/discord/commands"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	lg := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer lg.Sync()

	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		lg.Fatal("create session", logger.Error(err))
	}

	var global, guild []*discordgo.ApplicationCommand
	// Registration needs only the definitions; services stay nil.
	for _, c := range commands.All(commands.Deps{Log: lg}) {
		if c.Global {
			global = append(global, c.Definition)
		} else {
			guild = append(guild, c.Definition)
		}
	}

	deploy(lg, dg, cfg.ClientID, "", "global", global)
	if cfg.GuildID == "" {
		if len(guild) > 0 {
			lg.Warn("GUILD_ID not set; skipping guild commands",
				logger.Int("count", len(guild)))
		}
		return
	}
	deploy(lg, dg, cfg.ClientID, cfg.GuildID, "guild", guild)
}

func deploy(lg logger.Logger, dg *discordgo.Session, appID, guildID, scope string, cmds []*discordgo.ApplicationCommand) {
	if len(cmds) == 0 {
		return
	}
	registered, err := dg.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
	if err != nil {
		lg.Fatal("overwrite commands", logger.String("scope", scope), logger.Error(err))
	}
	lg.Info("reloaded application commands",
		logger.String("scope", scope), logger.Int("count", len(registered)))
	for _, c := range registered {
		lg.Info("registered command", logger.String("name", c.Name))
	}
}

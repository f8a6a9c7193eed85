package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Command is one slash command. Execute is required; Autocomplete is the
// optional capability checked at dispatch time. Cooldown zero means the
// router's default applies. Global commands are registered bot-wide at
// deploy time, the rest only in the home guild; the flag has no effect on
// runtime dispatch.
type Command struct {
	Definition   *discordgo.ApplicationCommand
	Cooldown     time.Duration
	Global       bool
	Execute      func(ctx context.Context, s *Session, i *discordgo.InteractionCreate) error
	Autocomplete func(ctx context.Context, s *Session, i *discordgo.InteractionCreate) error
}

// Name returns the command's registration key.
func (c *Command) Name() string {
	return c.Definition.Name
}

// InteractionUser resolves the invoking user for guild and DM interactions.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
)

// Status changes the bot's custom status and records who set it.
func Status(d Deps) *discord.Command {
	return &discord.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:                     "status",
			Description:              "Change the bot's status message",
			DefaultMemberPermissions: adminOnly(),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "The new status message",
					Required:    true,
				},
			},
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			o := discord.ParseOptions(i.ApplicationCommandData())
			message, _ := o.String("message")

			caller := discord.InteractionUser(i)
			u, err := d.Users.Ensure(ctx, caller.ID, caller.Username)
			if err != nil {
				return err
			}
			if err := d.Status.Set(ctx, message, u.ID); err != nil {
				return err
			}
			if err := s.SetPresence(message); err != nil {
				d.Log.Warn("presence update failed", logger.Error(err))
			}
			return s.Respond(i, fmt.Sprintf("Bot status updated to: %s", message))
		},
	}
}

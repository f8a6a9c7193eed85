package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// Channel binds the per-guild bot, welcome and birthday channels.
func Channel(d Deps) *discord.Command {
	textOnly := []discordgo.ChannelType{discordgo.ChannelTypeGuildText}

	return &discord.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:                     "channel",
			Description:              "Channel configs for the bot.",
			DefaultMemberPermissions: adminOnly(),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "bot",
					Description:  "The channel where bot commands are used.",
					ChannelTypes: textOnly,
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "welcome",
					Description:  "The channel to send welcome messages to.",
					ChannelTypes: textOnly,
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "birthday",
					Description:  "The channel to send birthday messages to.",
					ChannelTypes: textOnly,
				},
			},
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			if i.GuildID == "" {
				return s.RespondEphemeral(i, "This command can only be used in a server.")
			}

			o := discord.ParseOptions(i.ApplicationCommandData())
			var bindings store.ChannelBindings
			var updated []string
			if id, ok := o.ChannelID("bot"); ok {
				bindings.BotChannelID = id
				updated = append(updated, "bot")
			}
			if id, ok := o.ChannelID("welcome"); ok {
				bindings.WelcomeChannelID = id
				updated = append(updated, "welcome")
			}
			if id, ok := o.ChannelID("birthday"); ok {
				bindings.BirthdayChannelID = id
				updated = append(updated, "birthday")
			}
			if len(updated) == 0 {
				return s.RespondEphemeral(i, "Please provide at least one channel to configure.")
			}

			if err := d.Guilds.SetChannels(ctx, i.GuildID, bindings); err != nil {
				return err
			}

			plural := ""
			if len(updated) > 1 {
				plural = "s"
			}
			return s.RespondEphemeral(i, fmt.Sprintf("Successfully updated %s channel%s configuration.",
				strings.Join(updated, ", "), plural))
		},
	}
}

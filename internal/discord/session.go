package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/logger"
)

// maxChoices is the platform ceiling on autocomplete entries.
const maxChoices = 25

// Session wraps the gateway connection with the reply helpers commands use.
type Session struct {
	*discordgo.Session
	log logger.Logger
}

func NewSession(dg *discordgo.Session, log logger.Logger) *Session {
	return &Session{Session: dg, log: log}
}

// Respond sends the initial reply to an interaction.
func (s *Session) Respond(i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// RespondEphemeral sends an initial reply only the invoking user can see.
func (s *Session) RespondEphemeral(i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed sends an initial reply carrying a single embed.
func (s *Session) RespondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// Defer acknowledges the interaction so the reply can follow later via Edit.
func (s *Session) Defer(i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// DeferEphemeral is Defer with an ephemeral eventual reply.
func (s *Session) DeferEphemeral(i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

// Edit replaces the content of a deferred or sent reply.
func (s *Session) Edit(i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}

// EditEmbed replaces a deferred reply with an embed.
func (s *Session) EditEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}

// FollowUp sends an additional message after the initial reply.
func (s *Session) FollowUp(i *discordgo.InteractionCreate, content string) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

// ReplyFailure delivers the generic failure notice, using the initial reply
// when the interaction is still unacknowledged and a follow-up otherwise.
func (s *Session) ReplyFailure(i *discordgo.InteractionCreate) {
	const msg = "There was an error while executing this command!"
	if err := s.RespondEphemeral(i, msg); err == nil {
		return
	}
	if err := s.FollowUp(i, msg); err != nil {
		s.log.Error("failure reply not delivered", logger.Error(err))
	}
}

// RespondChoices answers an autocomplete interaction, truncating to the
// platform's 25-entry ceiling.
func (s *Session) RespondChoices(i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) error {
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// Announce sends a message to a channel after verifying it is text-capable.
// Implements birthday.Announcer.
func (s *Session) Announce(channelID, content string) error {
	ch, err := s.Channel(channelID)
	if err != nil {
		return fmt.Errorf("fetch channel: %w", err)
	}
	if ch.Type != discordgo.ChannelTypeGuildText && ch.Type != discordgo.ChannelTypeGuildNews {
		return fmt.Errorf("channel %s is not text-capable", channelID)
	}
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// DM opens (or reuses) the direct-message channel to a user and sends content.
func (s *Session) DM(userID, content string) error {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	if _, err := s.ChannelMessageSend(ch.ID, content); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}

// SetPresence updates the bot's custom status text.
func (s *Session) SetPresence(text string) error {
	return s.UpdateCustomStatus(text)
}

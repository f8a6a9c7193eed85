package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// CreateUser populates or updates a user's profile record.
func CreateUser(d Deps) *discord.Command {
	return &discord.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "createuser",
			Description: "Populate or update user information in the database",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Discord user to add or update",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "given_name",
					Description: "Given (first) name",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "preferred_name",
					Description: "Preferred given name (if different from given name)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "family_name",
					Description: "Family (last) name",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "nicknames",
					Description: "Comma-separated list of nicknames",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "birthday",
					Description: "Birthday in YYYY-MM-DD format",
				},
			},
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			if err := s.DeferEphemeral(i); err != nil {
				return err
			}
			o := discord.ParseOptions(i.ApplicationCommandData())
			userID, ok := o.UserID("user")
			if !ok {
				return s.Edit(i, "There was an error while populating the user data. Please try again later.")
			}
			username := resolvedUser(i, userID)

			var p store.ProfileUpdate
			if v, ok := o.String("given_name"); ok {
				p.GivenName = &v
			}
			if v, ok := o.String("preferred_name"); ok {
				p.PreferredName = &v
			}
			if v, ok := o.String("family_name"); ok {
				p.FamilyName = &v
			}
			if v, ok := o.String("nicknames"); ok {
				p.Nicknames = splitNicknames(v)
			}
			if v, ok := o.String("birthday"); ok {
				birthday, err := time.Parse("2006-01-02", v)
				if err != nil {
					return s.Edit(i, "Invalid birthday. Please use the YYYY-MM-DD format.")
				}
				p.Birthday = &birthday
			}

			if err := d.Users.UpsertProfile(ctx, userID, username, p); err != nil {
				return err
			}
			return s.Edit(i, fmt.Sprintf(
				"User information for %s (ID: %s) has been successfully updated in the database.",
				username, userID))
		},
	}
}

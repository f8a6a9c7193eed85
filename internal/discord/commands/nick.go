package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// Nick manages the nickname list that message-mention alerts match against.
func Nick(d Deps) *discord.Command {
	userOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Discord User",
			Required:    true,
		}
	}

	return &discord.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "nick",
			Description: "Manage nicknames for a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add one or more nicknames",
					Options: []*discordgo.ApplicationCommandOption{
						userOption(),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "nicknames",
							Description: "Comma-separated list of nicknames to add",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "modify",
					Description: "Modify a single nickname",
					Options: []*discordgo.ApplicationCommandOption{
						userOption(),
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "old_nickname",
							Description:  "The nickname to be modified",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "new_nickname",
							Description: "The new nickname",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove one or more nicknames",
					Options: []*discordgo.ApplicationCommandOption{
						userOption(),
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "nicknames",
							Description:  "Comma-separated list of nicknames to remove",
							Required:     true,
							Autocomplete: true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List all nicknames for a user",
					Options:     []*discordgo.ApplicationCommandOption{userOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Clear all nicknames for a user",
					Options:     []*discordgo.ApplicationCommandOption{userOption()},
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
				return s.Edit(i, "An error occurred while processing the command.")
			}

			target := resolvedUser(i, userID)
			u, err := d.Users.Ensure(ctx, userID, target)
			if err != nil {
				return err
			}

			var reply string
			switch o.Subcommand() {
			case "add":
				raw, _ := o.String("nicknames")
				added := splitNicknames(raw)
				merged := mergeNicknames(u.Nicknames, added)
				if err := d.Users.SetNicknames(ctx, userID, merged); err != nil {
					return err
				}
				reply = fmt.Sprintf("Added %d nickname(s) for user %s.", len(added), u.Username)
			case "modify":
				oldNick, _ := o.String("old_nickname")
				newNick, _ := o.String("new_nickname")
				idx := indexOf(u.Nicknames, oldNick)
				if idx < 0 {
					reply = fmt.Sprintf("Nickname %q not found for user %s.", oldNick, u.Username)
					break
				}
				nicks := append([]string(nil), u.Nicknames...)
				nicks[idx] = newNick
				if err := d.Users.SetNicknames(ctx, userID, nicks); err != nil {
					return err
				}
				reply = fmt.Sprintf("Modified nickname for user %s: %q -> %q.", u.Username, oldNick, newNick)
			case "remove":
				raw, _ := o.String("nicknames")
				toRemove := splitNicknames(raw)
				kept := make([]string, 0, len(u.Nicknames))
				for _, n := range u.Nicknames {
					if indexOf(toRemove, n) < 0 {
						kept = append(kept, n)
					}
				}
				if err := d.Users.SetNicknames(ctx, userID, kept); err != nil {
					return err
				}
				reply = fmt.Sprintf("Removed %d nickname(s) for user %s.", len(toRemove), u.Username)
			case "list":
				reply = fmt.Sprintf("Nicknames for user %s: %s", u.Username, strings.Join(u.Nicknames, ", "))
			case "clear":
				if err := d.Users.SetNicknames(ctx, userID, nil); err != nil {
					return err
				}
				reply = fmt.Sprintf("Cleared all nicknames for user %s. Cleared nicknames: %s",
					u.Username, strings.Join(u.Nicknames, ", "))
			default:
				reply = "An error occurred while processing the command."
			}
			return s.Edit(i, reply)
		},
		Autocomplete: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			o := discord.ParseOptions(i.ApplicationCommandData())
			sub := o.Subcommand()
			if sub != "modify" && sub != "remove" {
				return s.RespondChoices(i, nil)
			}
			userID, ok := o.UserID("user")
			if !ok {
				return s.RespondChoices(i, nil)
			}
			_, focused, _ := o.Focused()
			needle := strings.ToLower(focused)

			u, err := d.Users.FindByUserID(ctx, userID)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					d.Log.Warn("nickname autocomplete lookup failed", logger.Error(err))
				}
				return s.RespondChoices(i, nil)
			}

			var choices []*discordgo.ApplicationCommandOptionChoice
			for _, n := range u.Nicknames {
				if strings.Contains(strings.ToLower(n), needle) {
					choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
				}
			}
			return s.RespondChoices(i, choices)
		},
	}
}

// resolvedUser pulls the username of a user option from the interaction's
// resolved data, falling back to the raw id.
func resolvedUser(i *discordgo.InteractionCreate, userID string) string {
	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		if u, ok := resolved.Users[userID]; ok {
			return u.Username
		}
	}
	return userID
}

func splitNicknames(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mergeNicknames(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, n := range append(append([]string(nil), existing...), added...) {
		if !seen[n] {
			seen[n] = true
			merged = append(merged, n)
		}
	}
	return merged
}

func indexOf(list []string, v string) int {
	for i, n := range list {
		if n == v {
			return i
		}
	}
	return -1
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/quotes"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// AddQuote records a new quote, optionally chaining it onto an existing one
// or overwriting an existing entry in place.
func AddQuote(d Deps) *discord.Command {
	return &discord.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "addquote",
			Description: "Adds a quote.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "quote",
					Description: "The infamous quote to be recorded in history.",
					MaxLength:   1000,
					Required:    true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "author",
					Description:  "The GOAT author of this priceless quote.",
					MaxLength:    40,
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "year",
					Description: "The year when this quote was born.",
					MinValue:    minValue(0),
					MaxValue:    float64(currentYear() + 1),
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "context",
					Description: "Give context for this quote. (optional)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "link",
					Description: "Ordinal of the quote this one follows up on.",
					MinValue:    minValue(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "override",
					Description: "Ordinal of the quote to overwrite.",
					MinValue:    minValue(1),
				},
			},
		},
		Autocomplete: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			return autocompleteAuthors(ctx, d, s, i)
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			if err := s.Defer(i); err != nil {
				return err
			}

			o := discord.ParseOptions(i.ApplicationCommandData())
			text, _ := o.String("quote")
			author, _ := o.String("author")
			year, _ := o.Int("year")
			contextText, _ := o.String("context")

			draft := quotes.Draft{Text: text, Author: author, Year: year, Context: contextText}

			if ord, ok := o.Int("link"); ok {
				target, err := d.Quotes.FindByOrdinal(ctx, ord)
				if errors.Is(err, store.ErrNotFound) {
					return s.Edit(i, fmt.Sprintf("Quote #%d does not exist, so nothing can link to it.", ord))
				}
				if err != nil {
					return err
				}
				draft.LinkTarget = &target.ID
			}

			if ord, ok := o.Int("override"); ok {
				return overrideQuote(ctx, d, s, i, ord, draft)
			}

			n, err := d.Chains.Create(ctx, draft)
			if err != nil {
				if msg, ok := chainMessage(err); ok {
					return s.Edit(i, msg)
				}
				return err
			}

			formatted := quotes.Format(&store.Quote{Text: text, Author: author, Context: contextText, Year: year})
			return s.Edit(i, fmt.Sprintf("Quote #%d added!\nFormatted quote: %s", n, formatted))
		},
	}
}

func overrideQuote(ctx context.Context, d Deps, s *discord.Session, i *discordgo.InteractionCreate, ord int, draft quotes.Draft) error {
	existing, err := d.Quotes.FindByOrdinal(ctx, ord)
	if errors.Is(err, store.ErrNotFound) {
		return s.Edit(i, fmt.Sprintf("Quote #%d does not exist.", ord))
	}
	if err != nil {
		return err
	}

	if err := d.Chains.Override(ctx, existing.ID, draft); err != nil {
		if msg, ok := chainMessage(err); ok {
			return s.Edit(i, msg)
		}
		return err
	}

	updated, err := d.Quotes.FindByID(ctx, existing.ID)
	if err != nil {
		return err
	}
	return s.Edit(i, fmt.Sprintf("Quote #%d updated!\nFormatted quote: %s", ord, quotes.Format(updated)))
}

// autocompleteAuthors suggests the five most quoted authors plus the most
// recent one, prefix-filtered by the typed text.
func autocompleteAuthors(ctx context.Context, d Deps, s *discord.Session, i *discordgo.InteractionCreate) error {
	o := discord.ParseOptions(i.ApplicationCommandData())
	_, typed, _ := o.Focused()

	popular, err := d.Quotes.PopularAuthors(ctx, store.QuoteFilter{}, 5)
	if err != nil {
		return err
	}
	recent, err := d.Quotes.MostRecentAuthor(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var names []string
	for _, a := range popular {
		if a.Author != "" && !seen[a.Author] {
			seen[a.Author] = true
			names = append(names, a.Author)
		}
	}
	if recent != "" && !seen[recent] {
		names = append(names, recent)
	}

	prefix := strings.ToLower(typed)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, name := range names {
		if !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return s.RespondChoices(i, choices)
}

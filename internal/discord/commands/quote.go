package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/quotes"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// Quote retrieves stored quotes: by ordinal, by search filters, or at random.
func Quote(d Deps) *discord.Command {
	return &discord.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "quote",
			Description: "Retrieve or search for quotes",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionInteger,
					Name:         "id",
					Description:  "ID of the quote to retrieve (n-th entry)",
					MinValue:     minValue(1),
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "content",
					Description:  "Search for quotes containing this text",
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "author",
					Description:  "Search for quotes by this author",
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionInteger,
					Name:         "year",
					Description:  "Search for quotes from this year",
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "n",
					Description: "Number of random quotes to retrieve (1-10)",
					MinValue:    minValue(1),
					MaxValue:    10,
				},
			},
		},
		Autocomplete: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			return autocompleteQuote(ctx, d, s, i)
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			o := discord.ParseOptions(i.ApplicationCommandData())

			n := 1
			if v, ok := o.Int("n"); ok {
				n = v
			}

			if ord, ok := o.Int("id"); ok {
				q, err := d.Quotes.FindByOrdinal(ctx, ord)
				if errors.Is(err, store.ErrNotFound) {
					return s.RespondEphemeral(i, "No quotes found matching your criteria.")
				}
				if err != nil {
					return err
				}
				return s.Respond(i, quotes.Format(q))
			}

			filter := quoteFilter(o)
			if filter.Content != "" || filter.Author != "" || filter.Year != nil {
				found, err := d.Quotes.Search(ctx, filter, n)
				return replyQuotes(s, i, found, err)
			}

			// No criteria at all: draw random quotes.
			total, err := d.Quotes.Count(ctx)
			if err != nil {
				return err
			}
			if total == 0 {
				return s.RespondEphemeral(i, "No quotes found matching your criteria.")
			}
			if int64(n) > total {
				n = int(total)
			}
			found, err := d.Quotes.Random(ctx, store.QuoteFilter{}, n)
			return replyQuotes(s, i, found, err)
		},
	}
}

// quoteFilter builds the search filter from the content/author/year options.
func quoteFilter(o *discord.Options) store.QuoteFilter {
	f := store.QuoteFilter{}
	if v, ok := o.String("content"); ok {
		f.Content = v
	}
	if v, ok := o.String("author"); ok {
		f.Author = v
	}
	if v, ok := o.Int("year"); ok {
		y := v
		f.Year = &y
	}
	return f
}

func replyQuotes(s *discord.Session, i *discordgo.InteractionCreate, found []store.Quote, err error) error {
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return s.RespondEphemeral(i, "No quotes found matching your criteria.")
	}
	lines := make([]string, len(found))
	for idx := range found {
		lines[idx] = quotes.Format(&found[idx])
	}
	return s.Respond(i, strings.Join(lines, "\n\n"))
}

func autocompleteQuote(ctx context.Context, d Deps, s *discord.Session, i *discordgo.InteractionCreate) error {
	o := discord.ParseOptions(i.ApplicationCommandData())
	focused, typed, ok := o.Focused()
	if !ok {
		return s.RespondChoices(i, nil)
	}

	// Cross-filter by whatever the user already filled into other options.
	filter := quoteFilter(o)

	var choices []*discordgo.ApplicationCommandOptionChoice
	var err error
	switch focused {
	case "id":
		choices, err = completeID(ctx, d, typed)
	case "content":
		filter.Content = ""
		choices, err = completeContent(ctx, d, filter, typed)
	case "author":
		filter.Author = ""
		choices, err = completeAuthor(ctx, d, filter, typed)
	case "year":
		filter.Year = nil
		choices, err = completeYear(ctx, d, filter, typed)
	}
	if err != nil {
		return err
	}
	return s.RespondChoices(i, choices)
}

func completeID(ctx context.Context, d Deps, typed string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if typed == "" {
		oldest, err := d.Quotes.Oldest(ctx, 25)
		if err != nil {
			return nil, err
		}
		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(oldest))
		for idx := range oldest {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  fmt.Sprintf("%d: %s...", idx+1, trunc(oldest[idx].Text, 50)),
				Value: idx + 1,
			})
		}
		return choices, nil
	}

	ord, err := strconv.Atoi(typed)
	if err != nil {
		return nil, nil
	}
	total, err := d.Quotes.Count(ctx)
	if err != nil {
		return nil, err
	}
	if ord < 1 || int64(ord) > total {
		return nil, nil
	}
	q, err := d.Quotes.FindByOrdinal(ctx, ord)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []*discordgo.ApplicationCommandOptionChoice{{
		Name:  fmt.Sprintf("%d: %s...", ord, trunc(q.Text, 50)),
		Value: ord,
	}}, nil
}

func completeContent(ctx context.Context, d Deps, filter store.QuoteFilter, typed string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	var (
		found []store.Quote
		err   error
	)
	if typed == "" {
		found, err = d.Quotes.Random(ctx, filter, 25)
	} else {
		filter.Content = typed
		found, err = d.Quotes.Search(ctx, filter, 25)
	}
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(found))
	for idx := range found {
		text := trunc(found[idx].Text, 100)
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: text, Value: text})
	}
	return choices, nil
}

func completeAuthor(ctx context.Context, d Deps, filter store.QuoteFilter, typed string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if typed == "" {
		popular, err := d.Quotes.PopularAuthors(ctx, filter, 25)
		if err != nil {
			return nil, err
		}
		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(popular))
		for _, a := range popular {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  fmt.Sprintf("%s (%d quotes)", a.Author, a.Count),
				Value: a.Author,
			})
		}
		return choices, nil
	}

	filter.Author = typed
	authors, err := d.Quotes.DistinctAuthors(ctx, filter)
	if err != nil {
		return nil, err
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(authors))
	for _, a := range authors {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: a, Value: a})
	}
	return choices, nil
}

func completeYear(ctx context.Context, d Deps, filter store.QuoteFilter, typed string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if typed == "" {
		popular, err := d.Quotes.PopularYears(ctx, filter, 25)
		if err != nil {
			return nil, err
		}
		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(popular))
		for _, y := range popular {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  fmt.Sprintf("%d (%d quotes)", y.Year, y.Count),
				Value: y.Year,
			})
		}
		return choices, nil
	}

	year, err := strconv.Atoi(typed)
	if err != nil {
		return nil, nil
	}
	filter.Year = &year
	years, err := d.Quotes.DistinctYears(ctx, filter)
	if err != nil {
		return nil, err
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(years))
	for _, y := range years {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: strconv.Itoa(y), Value: y})
	}
	return choices, nil
}

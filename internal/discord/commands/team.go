package commands

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
)

// Team shuffles a player list into evenly sized teams.
func Team(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "team",
			Description: "team scrambler - requested by eddie",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "players",
					Description: "comma separated list of players.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "teams",
					Description: "number of teams to create.",
					Required:    true,
					MinValue:    minValue(2),
					MaxValue:    8,
				},
			},
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			if err := s.Defer(i); err != nil {
				return err
			}
			o := discord.ParseOptions(i.ApplicationCommandData())
			raw, _ := o.String("players")
			count, _ := o.Int("teams")
			players := splitNicknames(raw)
			if len(players) == 0 || count < 2 {
				return s.Edit(i, "Invalid options provided.")
			}

			rand.Shuffle(len(players), func(a, b int) {
				players[a], players[b] = players[b], players[a]
			})

			teams := make([][]string, count)
			for idx, p := range players {
				teams[idx%count] = append(teams[idx%count], p)
			}

			lines := make([]string, count)
			for idx, team := range teams {
				lines[idx] = fmt.Sprintf("Team %d: %s", idx+1, strings.Join(team, ", "))
			}
			return s.Edit(i, strings.Join(lines, "\n"))
		},
	}
}

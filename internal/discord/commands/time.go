package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
)

// worldZones are the communities the server spans, in display order.
var worldZones = []struct {
	name  string
	zone  string
	label string
}{
	{"uʍop ǝpᴉsdՈ", "Australia/Melbourne", "Melbourne"},
	{"tif & wansi", "Asia/Tokyo", "Tokyo/Seoul"},
	{"good food", "Asia/Shanghai", "Shanghai"},
	{"oh mein time", "Europe/Berlin", "EU"},
	{"Kock", "Europe/London", "London"},
	{"🦅", "America/New_York", "US East"},
	{"Tim Hortons", "America/Vancouver", "Vancouver"},
}

// WorldTime shows the current time across the server's timezones.
func WorldTime(d Deps) *discord.Command {
	return &discord.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "time",
			Description: "Shows the current time across the world",
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			if err := s.Defer(i); err != nil {
				return err
			}
			now := time.Now()
			embed := &discordgo.MessageEmbed{Title: "Time"}
			for _, z := range worldZones {
				loc, err := time.LoadLocation(z.zone)
				if err != nil {
					d.Log.Warn("timezone load failed", logger.String("zone", z.zone), logger.Error(err))
					continue
				}
				embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
					Name:  z.name,
					Value: fmt.Sprintf("%s (%s)", now.In(loc).Format("2006-01-02 15:04:05"), z.label),
				})
			}
			return s.EditEmbed(i, embed)
		},
	}
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
)

// Ping reports round-trip and gateway latency.
func Ping(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "ping",
			Description: "Pong!",
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			clientLatency := time.Duration(0)
			if created, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
				clientLatency = time.Since(created)
			}
			apiLatency := s.HeartbeatLatency()

			embed := &discordgo.MessageEmbed{
				Color: 0x0099ff,
				Title: ":ping_pong: Pong!",
				Description: fmt.Sprintf("Latency is %dms. API Latency is %dms.",
					clientLatency.Milliseconds(), apiLatency.Milliseconds()),
			}
			return s.RespondEmbed(i, embed)
		},
	}
}

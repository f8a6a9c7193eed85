package commands

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
)

// Coin flips a coin.
func Coin(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "coin",
			Description: "Flips a coin.",
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			result := "Heads"
			if rand.Intn(2) == 1 {
				result = "Tails"
			}
			return s.Respond(i, fmt.Sprintf("The coin landed on **%s**!", result))
		},
	}
}

// Dice rolls a six-sided die.
func Dice(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "dice",
			Description: "Rolls a six-sided die.",
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			user := discord.InteractionUser(i)
			roll := rand.Intn(6) + 1
			return s.Respond(i, fmt.Sprintf("<@%s> rolled **%d**.", user.ID, roll))
		},
	}
}

// Roll rolls a random number between 1 and n.
func Roll(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "roll",
			Description: "Roll a random number.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "n",
					Description: "Maximum number to roll. Default is 100.",
					MinValue:    minValue(1),
					MaxValue:    1000000,
				},
			},
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			user := discord.InteractionUser(i)
			o := discord.ParseOptions(i.ApplicationCommandData())
			max, ok := o.Int("n")
			if !ok || max < 1 {
				max = 100
			}
			roll := rand.Intn(max) + 1
			return s.Respond(i, fmt.Sprintf("<@%s> rolled %d.", user.ID, roll))
		},
	}
}

// Owo owos.
func Owo(d Deps) *discord.Command {
	variants := []string{"owo", "OwO", "uwu", "UwU"}
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "owo",
			Description: "owo?",
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			return s.Respond(i, variants[rand.Intn(len(variants))])
		},
	}
}

// Discount applies a percentage discount to a price.
func Discount(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "discount",
			Description: "LMAO",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "price",
					Description: "the price",
					MinValue:    minValue(1),
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "discount",
					Description: "where is my 75%",
					MinValue:    minValue(0),
					MaxValue:    100,
					Required:    true,
				},
			},
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			o := discord.ParseOptions(i.ApplicationCommandData())
			price, _ := o.Int("price")
			discount, _ := o.Int("discount")
			discounted := float64(price) * (1 - float64(discount)/100)
			return s.Respond(i, strconv.FormatFloat(discounted, 'f', -1, 64))
		},
	}
}

// Hello greets the caller.
func Hello(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "hello",
			Description: "Greetings.",
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			user := discord.InteractionUser(i)
			return s.Respond(i, fmt.Sprintf("Hello, <@%s>!", user.ID))
		},
	}
}

// Info reports the bot's name and version.
func Info(d Deps) *discord.Command {
	return &discord.Command{
		Global: true,
		Definition: &discordgo.ApplicationCommand{
			Name:        "info",
			Description: "Bot info.",
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			return s.Respond(i, fmt.Sprintf("ElectricalWizard Discord Bot (v%s)", Version))
		},
	}
}

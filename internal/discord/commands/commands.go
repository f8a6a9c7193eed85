// Package commands defines every slash command the bot registers.
package commands

import (
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
	"github.com/MysticalWizard/electricalwizard/internal/quotes"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// Version is the bot release reported by /info.
const Version = "3.0.0"

// Deps carries the services commands execute against.
type Deps struct {
	Log    logger.Logger
	Quotes *store.QuoteRepo
	Chains *quotes.Manager
	Users  *store.UserRepo
	Guilds *store.GuildRepo
	Status *store.StatusRepo
}

// All returns the full command set in registration order.
func All(d Deps) []*discord.Command {
	return []*discord.Command{
		AddQuote(d),
		Quote(d),
		Bday(d),
		Nick(d),
		Channel(d),
		Status(d),
		CreateUser(d),
		Coin(d),
		Dice(d),
		Roll(d),
		Team(d),
		WorldTime(d),
		Ping(d),
		Hello(d),
		Info(d),
		Owo(d),
		Discount(d),
	}
}

// chainMessage maps a quote-chain domain error to its user-facing reply.
func chainMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, quotes.ErrDoubleLink):
		return "Another quote is already linked to that quote.", true
	case errors.Is(err, quotes.ErrCircularLink):
		return "That link would create a circular quote chain.", true
	case errors.Is(err, quotes.ErrChainTooLong):
		return "That quote chain is already at its maximum length.", true
	case errors.Is(err, quotes.ErrNotFound):
		return "That quote does not exist.", true
	}
	return "", false
}

func minValue(v float64) *float64 { return &v }

func adminOnly() *int64 {
	perms := int64(discordgo.PermissionAdministrator)
	return &perms
}

// trunc shortens s to at most n runes.
func trunc(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func currentYear() int {
	return time.Now().UTC().Year()
}

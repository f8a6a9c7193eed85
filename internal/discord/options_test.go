package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func opt(name string, t discordgo.ApplicationCommandOptionType, v interface{}) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: t, Value: v}
}

func TestParseOptionsFlat(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "addquote",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			opt("quote", discordgo.ApplicationCommandOptionString, "hello"),
			opt("year", discordgo.ApplicationCommandOptionInteger, float64(2020)),
			opt("announce", discordgo.ApplicationCommandOptionBoolean, true),
		},
	}

	o := ParseOptions(data)
	if o.Subcommand() != "" {
		t.Fatalf("unexpected subcommand %q", o.Subcommand())
	}

	if s, ok := o.String("quote"); !ok || s != "hello" {
		t.Fatalf("String(quote) = %q, %v", s, ok)
	}
	if n, ok := o.Int("year"); !ok || n != 2020 {
		t.Fatalf("Int(year) = %d, %v", n, ok)
	}
	if b, ok := o.Bool("announce"); !ok || !b {
		t.Fatalf("Bool(announce) = %v, %v", b, ok)
	}
	if _, ok := o.String("missing"); ok {
		t.Fatalf("missing option reported present")
	}
	// Requesting the wrong type must not panic, just miss.
	if _, ok := o.Int("quote"); ok {
		t.Fatalf("type mismatch reported present")
	}
}

func TestParseOptionsSubcommand(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "nick",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{{
			Name: "add",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				opt("user", discordgo.ApplicationCommandOptionUser, "1234"),
				opt("nicknames", discordgo.ApplicationCommandOptionString, "a, b"),
			},
		}},
	}

	o := ParseOptions(data)
	if o.Subcommand() != "add" {
		t.Fatalf("subcommand = %q", o.Subcommand())
	}
	if id, ok := o.UserID("user"); !ok || id != "1234" {
		t.Fatalf("UserID = %q, %v", id, ok)
	}
	if s, ok := o.String("nicknames"); !ok || s != "a, b" {
		t.Fatalf("String(nicknames) = %q, %v", s, ok)
	}
}

func TestParseOptionsFocused(t *testing.T) {
	focused := opt("author", discordgo.ApplicationCommandOptionString, "Ad")
	focused.Focused = true
	data := discordgo.ApplicationCommandInteractionData{
		Name: "addquote",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			opt("quote", discordgo.ApplicationCommandOptionString, "x"),
			focused,
		},
	}

	o := ParseOptions(data)
	name, value, ok := o.Focused()
	if !ok || name != "author" || value != "Ad" {
		t.Fatalf("Focused() = %q, %q, %v", name, value, ok)
	}
}

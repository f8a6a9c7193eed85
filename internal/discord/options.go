package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Options gives flat, typed access to an interaction's option values,
// transparently descending into a subcommand when one is present.
type Options struct {
	sub  string
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// ParseOptions indexes the interaction's options by name.
func ParseOptions(data discordgo.ApplicationCommandInteractionData) *Options {
	o := &Options{opts: make(map[string]*discordgo.ApplicationCommandInteractionDataOption)}

	raw := data.Options
	if len(raw) == 1 && raw[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		o.sub = raw[0].Name
		raw = raw[0].Options
	}
	for _, opt := range raw {
		o.opts[opt.Name] = opt
	}
	return o
}

// Subcommand returns the invoked subcommand name, or "".
func (o *Options) Subcommand() string { return o.sub }

func (o *Options) String(name string) (string, bool) {
	opt, ok := o.opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return "", false
	}
	return opt.StringValue(), true
}

func (o *Options) Int(name string) (int, bool) {
	opt, ok := o.opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return int(opt.IntValue()), true
}

func (o *Options) Bool(name string) (bool, bool) {
	opt, ok := o.opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionBoolean {
		return false, false
	}
	return opt.BoolValue(), true
}

// ChannelID returns the raw channel ID of a channel option.
func (o *Options) ChannelID(name string) (string, bool) {
	opt, ok := o.opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionChannel {
		return "", false
	}
	id, ok := opt.Value.(string)
	return id, ok
}

// UserID returns the raw user ID of a user option.
func (o *Options) UserID(name string) (string, bool) {
	opt, ok := o.opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionUser {
		return "", false
	}
	id, ok := opt.Value.(string)
	return id, ok
}

// Focused returns the name and current text of the option being completed.
func (o *Options) Focused() (name, value string, ok bool) {
	for _, opt := range o.opts {
		if opt.Focused {
			return opt.Name, fmt.Sprint(opt.Value), true
		}
	}
	return "", "", false
}

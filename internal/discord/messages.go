package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/logger"
	"github.com/MysticalWizard/electricalwizard/internal/quotes"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// quoteTrigger is the reply shortcut: replying to a message with just this
// word records the referenced message as a quote.
const quoteTrigger = "quote"

func (b *Bot) handleQuoteReply(ctx context.Context, m *discordgo.MessageCreate) {
	if m.MessageReference == nil {
		return
	}
	if !strings.EqualFold(strings.TrimSpace(m.Content), quoteTrigger) {
		return
	}

	ref := m.ReferencedMessage
	if ref == nil {
		var err error
		ref, err = b.session.ChannelMessage(m.MessageReference.ChannelID, m.MessageReference.MessageID)
		if err != nil {
			b.log.Error("fetch referenced message", logger.Error(err))
			b.replyTo(m, "There was an error while adding the quote. Please try again later.")
			return
		}
	}

	author := b.authorName(ctx, ref.Author.ID, ref.Author.Username)
	draft := quotes.Draft{
		Text:   ref.Content,
		Author: author,
		Year:   ref.Timestamp.Year(),
	}
	ordinal, err := b.chains.Create(ctx, draft)
	if err != nil {
		b.log.Error("add quote from reply", logger.Error(err))
		b.replyTo(m, "There was an error while adding the quote. Please try again later.")
		return
	}

	formatted := quotes.Format(&store.Quote{Text: draft.Text, Author: draft.Author, Year: draft.Year})
	b.replyTo(m, fmt.Sprintf("Quote #%d added!\nFormatted quote: %s", ordinal, formatted))
}

func (b *Bot) handleNicknameMentions(ctx context.Context, m *discordgo.MessageCreate) {
	users, err := b.users.WithNicknames(ctx)
	if err != nil {
		b.log.Error("load nickname users", logger.Error(err))
		return
	}

	matched := matchNicknames(m.Content, users)
	if len(matched) == 0 {
		return
	}

	mentions := make([]string, len(matched))
	for i, id := range matched {
		mentions[i] = "<@" + id + ">"
	}
	b.replyTo(m, strings.Join(mentions, ", ")+", someone is talking about you!")
}

// authorName resolves a quote author's display name from the stored
// structured name, falling back to the platform username.
func (b *Bot) authorName(ctx context.Context, userID, username string) string {
	u, err := b.users.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			b.log.Error("resolve author name", logger.String("user_id", userID), logger.Error(err))
		}
		return username
	}
	return u.DisplayName()
}

func (b *Bot) replyTo(m *discordgo.MessageCreate, content string) {
	if _, err := b.session.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		b.log.Error("send reply", logger.Error(err))
	}
}

// matchNicknames scans content for whole-word, case-insensitive matches
// against any user's nicknames and returns the matched user IDs, each at
// most once, in first-appearance order of the matched words.
func matchNicknames(content string, users []store.User) []string {
	index := make(map[string]string)
	for _, u := range users {
		for _, nick := range u.Nicknames {
			index[strings.ToLower(nick)] = u.UserID
		}
	}
	if len(index) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, word := range strings.Fields(content) {
		word = strings.ToLower(stripPunct(word))
		id, ok := index[word]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// stripPunct drops everything but letters, digits, and underscores.
func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, s)
}

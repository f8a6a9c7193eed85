package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/birthday"
	"github.com/MysticalWizard/electricalwizard/internal/config"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
	"github.com/MysticalWizard/electricalwizard/internal/quotes"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

const handlerTimeout = 15 * time.Second

// Bot owns the gateway session and fans platform events out to the router,
// the quote chain manager, and the birthday scheduler.
type Bot struct {
	cfg     *config.Config
	log     logger.Logger
	session *Session
	router  *Router

	users  *store.UserRepo
	guilds *store.GuildRepo
	status *store.StatusRepo
	chains *quotes.Manager

	birthdays *birthday.Service
	armOnce   sync.Once
}

func New(cfg *config.Config, log logger.Logger, st *store.Store) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	session := NewSession(dg, log)
	users := st.Users()
	guilds := st.Guilds()

	b := &Bot{
		cfg:       cfg,
		log:       log,
		session:   session,
		router:    NewRouter(log, time.Duration(cfg.DefaultCooldownSeconds)*time.Second),
		users:     users,
		guilds:    guilds,
		status:    st.Status(),
		chains:    quotes.NewManager(st.Quotes()),
		birthdays: birthday.New(users, guilds, session, cfg.GuildID, log),
	}
	return b, nil
}

// Chains exposes the quote chain manager for command wiring.
func (b *Bot) Chains() *quotes.Manager {
	return b.chains
}

// Register adds commands to the router index.
func (b *Bot) Register(cmds ...*Command) error {
	for _, c := range cmds {
		if err := b.router.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Start opens the gateway and blocks until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onGuildCreate)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	b.log.Info("bot is running")

	<-ctx.Done()
	b.birthdays.Stop()
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("logged in", logger.String("user", r.User.Username))

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	text := b.cfg.DefaultStatus
	st, err := b.status.Get(ctx)
	switch {
	case err == nil:
		text = st.Message
	case !errors.Is(err, store.ErrNotFound):
		b.log.Error("read status", logger.Error(err))
	}
	if text != "" {
		if err := b.session.SetPresence(text); err != nil {
			b.log.Error("set presence", logger.Error(err))
		} else {
			b.log.Info("presence set", logger.String("status", text))
		}
	}

	// Ready fires again on reconnect; the scheduler is armed exactly once.
	b.armOnce.Do(func() {
		if err := b.birthdays.Start(); err != nil {
			b.log.Error("arm birthday scheduler", logger.Error(err))
		}
	})
}

func (b *Bot) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if err := b.guilds.Ensure(ctx, g.ID); err != nil {
		b.log.Error("create guild record", logger.String("guild_id", g.ID), logger.Error(err))
	}
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	b.handleQuoteReply(ctx, m)
	b.handleNicknameMentions(ctx, m)
}

func (b *Bot) onInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	b.router.Dispatch(ctx, b.session, i)
}

package discord

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/logger"
)

// ErrDuplicateCommand is returned when two commands register the same name.
var ErrDuplicateCommand = fmt.Errorf("duplicate command name")

// Router indexes commands by name and dispatches incoming interactions with
// per-(user, command) cooldown enforcement. Cooldown state lives only in
// process memory and resets on restart.
type Router struct {
	log             logger.Logger
	defaultCooldown time.Duration
	maxCooldown     time.Duration
	commands        map[string]*Command

	mu       sync.Mutex
	lastUsed map[cooldownKey]time.Time
	now      func() time.Time
}

type cooldownKey struct {
	userID  string
	command string
}

func NewRouter(log logger.Logger, defaultCooldown time.Duration) *Router {
	return &Router{
		log:             log,
		defaultCooldown: defaultCooldown,
		maxCooldown:     defaultCooldown,
		commands:        make(map[string]*Command),
		lastUsed:        make(map[cooldownKey]time.Time),
		now:             time.Now,
	}
}

// Register adds a command to the index.
func (r *Router) Register(cmd *Command) error {
	name := cmd.Name()
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	r.commands[name] = cmd
	if cmd.Cooldown > r.maxCooldown {
		r.maxCooldown = cmd.Cooldown
	}
	return nil
}

// Commands returns all registered commands.
func (r *Router) Commands() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	return out
}

// Dispatch routes an interaction to its command. Unknown names and handler
// failures are contained here; nothing propagates to the gateway loop.
func (r *Router) Dispatch(ctx context.Context, s *Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		r.dispatchCommand(ctx, s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		r.dispatchAutocomplete(ctx, s, i)
	}
}

func (r *Router) dispatchCommand(ctx context.Context, s *Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	cmd, ok := r.commands[name]
	if !ok {
		r.log.Error("no matching command", logger.String("command", name))
		return
	}

	user := InteractionUser(i)
	cooldown := cmd.Cooldown
	if cooldown == 0 {
		cooldown = r.defaultCooldown
	}
	if wait := r.cooldownRemaining(user.ID, name, cooldown); wait > 0 {
		secs := math.Ceil(wait.Seconds()*10) / 10
		msg := fmt.Sprintf("Please wait %.1f more seconds before using `/%s` again.", secs, name)
		if err := s.RespondEphemeral(i, msg); err != nil {
			r.log.Error("cooldown reply failed", logger.String("command", name), logger.Error(err))
		}
		return
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("command panicked",
				logger.String("command", name),
				logger.String("panic", fmt.Sprint(p)))
			s.ReplyFailure(i)
		}
	}()

	if err := cmd.Execute(ctx, s, i); err != nil {
		r.log.Error("command failed",
			logger.String("command", name),
			logger.String("user_id", user.ID),
			logger.Error(err))
		s.ReplyFailure(i)
		return
	}
	// Only a successful invocation opens a cooldown window.
	r.recordCooldown(user.ID, name)
}

func (r *Router) dispatchAutocomplete(ctx context.Context, s *Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	cmd, ok := r.commands[name]
	if !ok {
		r.log.Error("no matching command for autocomplete", logger.String("command", name))
		return
	}
	if cmd.Autocomplete == nil {
		r.log.Warn("no autocomplete handler", logger.String("command", name))
		return
	}
	if err := cmd.Autocomplete(ctx, s, i); err != nil {
		r.log.Error("autocomplete failed", logger.String("command", name), logger.Error(err))
	}
}

// cooldownRemaining reports the remaining wait for the (user, command) pair,
// or zero when the command may run.
func (r *Router) cooldownRemaining(userID, command string, cooldown time.Duration) time.Duration {
	if cooldown <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cooldownKey{userID: userID, command: command}
	if last, ok := r.lastUsed[key]; ok {
		if wait := cooldown - r.now().Sub(last); wait > 0 {
			return wait
		}
	}
	return 0
}

// recordCooldown stamps a successful invocation. Opportunistic purging keeps
// the ledger bounded without a sweeper; entries are evicted only once older
// than every registered cooldown, so a short-cooldown command can never
// reset another command's live window.
func (r *Router) recordCooldown(userID, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.lastUsed[cooldownKey{userID: userID, command: command}] = now

	if len(r.lastUsed) > 1024 {
		for k, v := range r.lastUsed {
			if now.Sub(v) > r.maxCooldown {
				delete(r.lastUsed, k)
			}
		}
	}
}

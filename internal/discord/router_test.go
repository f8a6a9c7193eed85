package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/logger"
)

func testCommand(name string) *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{Name: name, Description: name},
		Execute: func(context.Context, *Session, *discordgo.InteractionCreate) error {
			return nil
		},
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRouter(logger.Nop(), 3*time.Second)

	if err := r.Register(testCommand("ping")); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := r.Register(testCommand("ping"))
	if !errors.Is(err, ErrDuplicateCommand) {
		t.Fatalf("want ErrDuplicateCommand, got %v", err)
	}
	if len(r.Commands()) != 1 {
		t.Fatalf("want 1 command, got %d", len(r.Commands()))
	}
}

func TestCooldownWindow(t *testing.T) {
	r := NewRouter(logger.Nop(), 3*time.Second)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	const cd = 5 * time.Second

	if wait := r.cooldownRemaining("u1", "quote", cd); wait != 0 {
		t.Fatalf("first call blocked: %v", wait)
	}
	r.recordCooldown("u1", "quote")

	now = now.Add(2 * time.Second)
	wait := r.cooldownRemaining("u1", "quote", cd)
	if wait != 3*time.Second {
		t.Fatalf("want 3s remaining, got %v", wait)
	}

	// Other users and other commands are unaffected.
	if w := r.cooldownRemaining("u2", "quote", cd); w != 0 {
		t.Fatalf("other user blocked: %v", w)
	}
	if w := r.cooldownRemaining("u1", "ping", cd); w != 0 {
		t.Fatalf("other command blocked: %v", w)
	}

	now = now.Add(3 * time.Second)
	if w := r.cooldownRemaining("u1", "quote", cd); w != 0 {
		t.Fatalf("call after window blocked: %v", w)
	}
}

func TestCooldownZeroDisabled(t *testing.T) {
	r := NewRouter(logger.Nop(), 0)
	for i := 0; i < 3; i++ {
		if w := r.cooldownRemaining("u1", "ping", 0); w != 0 {
			t.Fatalf("zero cooldown blocked: %v", w)
		}
		r.recordCooldown("u1", "ping")
	}
}

func TestCooldownNotBurnedWithoutSuccess(t *testing.T) {
	r := NewRouter(logger.Nop(), 3*time.Second)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	const cd = 5 * time.Second

	// A checked-but-failed invocation leaves no window behind.
	if w := r.cooldownRemaining("u1", "quote", cd); w != 0 {
		t.Fatalf("first check blocked: %v", w)
	}
	if w := r.cooldownRemaining("u1", "quote", cd); w != 0 {
		t.Fatalf("retry after failure blocked: %v", w)
	}

	r.recordCooldown("u1", "quote")
	if w := r.cooldownRemaining("u1", "quote", cd); w != cd {
		t.Fatalf("want %v remaining after success, got %v", cd, w)
	}
}

func TestCooldownPurgeKeepsLiveWindows(t *testing.T) {
	r := NewRouter(logger.Nop(), time.Second)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	slow := testCommand("slow")
	slow.Cooldown = time.Minute
	if err := r.Register(slow); err != nil {
		t.Fatalf("register: %v", err)
	}

	r.recordCooldown("u1", "slow")

	// Flood the ledger past the purge threshold with short-cooldown use.
	now = now.Add(30 * time.Second)
	for i := 0; i < 1100; i++ {
		r.recordCooldown(fmt.Sprintf("user-%d", i), "ping")
	}

	// The slow command's window is half-spent and must have survived.
	if w := r.cooldownRemaining("u1", "slow", time.Minute); w != 30*time.Second {
		t.Fatalf("live window lost by purge: remaining %v", w)
	}
}

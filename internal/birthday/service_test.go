package birthday

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MysticalWizard/electricalwizard/internal/logger"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

type fakeUsers struct{ users []store.User }

func (f *fakeUsers) WithBirthday(context.Context) ([]store.User, error) {
	return append([]store.User{}, f.users...), nil
}

type fakeGuilds struct{ guild *store.Guild }

func (f *fakeGuilds) FindByGuildID(context.Context, string) (*store.Guild, error) {
	if f.guild == nil {
		return nil, store.ErrNotFound
	}
	return f.guild, nil
}

type fakeAnnouncer struct {
	sent []string
	err  error
}

func (f *fakeAnnouncer) Announce(channelID, content string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, content)
	return nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestService(users *fakeUsers, guilds *fakeGuilds, ann *fakeAnnouncer, at time.Time) *Service {
	svc := New(users, guilds, ann, "guild-1", logger.Nop())
	svc.now = func() time.Time { return at }
	return svc
}

func TestSweepAnnouncesAtLocalMidnightHour(t *testing.T) {
	users := &fakeUsers{users: []store.User{{
		UserID:           "42",
		Birthday:         date(2000, time.March, 15),
		BirthdayTimezone: 2,
	}}}
	guilds := &fakeGuilds{guild: &store.Guild{GuildID: "guild-1", BirthdayChannelID: "chan-b"}}
	ann := &fakeAnnouncer{}

	// 2024-03-14T22:05Z is 2024-03-15T00:05 at UTC+2.
	svc := newTestService(users, guilds, ann, time.Date(2024, 3, 14, 22, 5, 0, 0, time.UTC))
	svc.Sweep(context.Background())

	if len(ann.sent) != 1 {
		t.Fatalf("want 1 announcement, got %d", len(ann.sent))
	}
	want := "Today is <@42>'s 24th birthday! 🎉🎂 Wish them a happy birthday!"
	if ann.sent[0] != want {
		t.Fatalf("announcement mismatch:\n got %s\nwant %s", ann.sent[0], want)
	}

	// Next hourly tick: local hour is 1, no re-announcement.
	svc.now = func() time.Time { return time.Date(2024, 3, 14, 23, 5, 0, 0, time.UTC) }
	svc.Sweep(context.Background())
	if len(ann.sent) != 1 {
		t.Fatalf("re-announced on hour 1: %d", len(ann.sent))
	}
}

func TestSweepSkipsNonMatchingDay(t *testing.T) {
	users := &fakeUsers{users: []store.User{{
		UserID:   "42",
		Birthday: date(2000, time.March, 15),
	}}}
	guilds := &fakeGuilds{guild: &store.Guild{GuildID: "guild-1", BirthdayChannelID: "chan-b"}}
	ann := &fakeAnnouncer{}

	svc := newTestService(users, guilds, ann, time.Date(2024, 3, 14, 0, 5, 0, 0, time.UTC))
	svc.Sweep(context.Background())
	if len(ann.sent) != 0 {
		t.Fatalf("announced on wrong day")
	}
}

func TestSweepFailureIsolation(t *testing.T) {
	users := &fakeUsers{users: []store.User{
		{UserID: "1", Birthday: date(1990, time.June, 1)},
		{UserID: "2", Birthday: date(1991, time.June, 1)},
	}}
	guilds := &fakeGuilds{guild: &store.Guild{GuildID: "guild-1", BirthdayChannelID: "chan-b"}}
	ann := &fakeAnnouncer{err: errors.New("send failed")}

	svc := newTestService(users, guilds, ann, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	// Both sends fail; the sweep must still complete without panicking.
	svc.Sweep(context.Background())

	// Now let sends succeed: both users are announced in one sweep.
	ann.err = nil
	svc.Sweep(context.Background())
	if len(ann.sent) != 2 {
		t.Fatalf("want 2 announcements, got %d", len(ann.sent))
	}
}

func TestSweepNoChannelBound(t *testing.T) {
	users := &fakeUsers{users: []store.User{{UserID: "1", Birthday: date(1990, time.June, 1)}}}
	guilds := &fakeGuilds{guild: &store.Guild{GuildID: "guild-1"}}
	ann := &fakeAnnouncer{}

	svc := newTestService(users, guilds, ann, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	svc.Sweep(context.Background())
	if len(ann.sent) != 0 {
		t.Fatalf("announced without a channel binding")
	}
}

func TestSweepNegativeOffset(t *testing.T) {
	users := &fakeUsers{users: []store.User{{
		UserID:           "7",
		Birthday:         date(2004, time.January, 1),
		BirthdayTimezone: -5,
	}}}
	guilds := &fakeGuilds{guild: &store.Guild{GuildID: "guild-1", BirthdayChannelID: "chan-b"}}
	ann := &fakeAnnouncer{}

	// 05:30Z on Jan 1 is 00:30 at UTC-5.
	svc := newTestService(users, guilds, ann, time.Date(2024, 1, 1, 5, 30, 0, 0, time.UTC))
	svc.Sweep(context.Background())
	if len(ann.sent) != 1 {
		t.Fatalf("want 1 announcement, got %d", len(ann.sent))
	}
}

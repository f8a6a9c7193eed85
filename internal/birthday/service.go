package birthday

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MysticalWizard/electricalwizard/internal/logger"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// UserSource lists the users eligible for a birthday announcement.
type UserSource interface {
	WithBirthday(ctx context.Context) ([]store.User, error)
}

// GuildSource resolves the home guild's channel bindings.
type GuildSource interface {
	FindByGuildID(ctx context.Context, guildID string) (*store.Guild, error)
}

// Announcer delivers the congratulation to a channel. Implementations must
// verify the channel is text-capable.
type Announcer interface {
	Announce(channelID, content string) error
}

// Service runs the hourly birthday sweep. It is armed once at startup and
// fires at the top of every hour; each user's local calendar day is derived
// from their stored whole-hour UTC offset, and an announcement goes out only
// on the tick where the local hour is zero, so each birthday fires once per
// day. Missed ticks (process downtime) are not replayed.
type Service struct {
	users     UserSource
	guilds    GuildSource
	announcer Announcer
	guildID   string
	log       logger.Logger

	cron *cron.Cron
	now  func() time.Time
}

func New(users UserSource, guilds GuildSource, announcer Announcer, guildID string, log logger.Logger) *Service {
	return &Service{
		users:     users,
		guilds:    guilds,
		announcer: announcer,
		guildID:   guildID,
		log:       log,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		now:       time.Now,
	}
}

// Start arms the hourly sweep. The caller arms the service exactly once, on
// the first Ready event.
func (s *Service) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule birthday check: %w", err)
	}
	s.cron.Start()
	s.log.Info("birthday scheduler armed", logger.String("cadence", "hourly"))
	return nil
}

func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("birthday scheduler stopped")
}

// Sweep runs one birthday check over all users. Per-user failures are logged
// and do not abort the rest of the sweep.
func (s *Service) Sweep(ctx context.Context) {
	users, err := s.users.WithBirthday(ctx)
	if err != nil {
		s.log.Error("birthday sweep: list users", logger.Error(err))
		return
	}

	now := s.now().UTC()
	for _, u := range users {
		if u.Birthday == nil {
			continue
		}
		local := now.In(time.FixedZone("", u.BirthdayTimezone*3600))
		if local.Month() != u.Birthday.Month() || local.Day() != u.Birthday.Day() {
			continue
		}
		if local.Hour() != 0 {
			// Not the first tick of the user's local birthday.
			continue
		}

		age := local.Year() - u.Birthday.Year()
		if err := s.announce(ctx, u, age); err != nil {
			s.log.Error("birthday announcement failed",
				logger.String("user_id", u.UserID),
				logger.Error(err))
		}
	}
}

func (s *Service) announce(ctx context.Context, u store.User, age int) error {
	guild, err := s.guilds.FindByGuildID(ctx, s.guildID)
	if err != nil {
		return fmt.Errorf("resolve guild: %w", err)
	}
	if guild.BirthdayChannelID == "" {
		s.log.Debug("no birthday channel bound", logger.String("guild_id", s.guildID))
		return nil
	}

	content := fmt.Sprintf("Today is <@%s>'s %s birthday! 🎉🎂 Wish them a happy birthday!",
		u.UserID, Ordinal(age))
	return s.announcer.Announce(guild.BirthdayChannelID, content)
}

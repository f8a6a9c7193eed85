package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
)

// Bday stores the invoking user's birthday with a whole-hour UTC offset.
func Bday(d Deps) *discord.Command {
	return &discord.Command{
		Global:   true,
		Cooldown: 10 * time.Second,
		Definition: &discordgo.ApplicationCommand{
			Name:        "bday",
			Description: "Set your birthday",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "year",
					Description: "Your birth year",
					MinValue:    minValue(1901),
					MaxValue:    float64(currentYear()),
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "month",
					Description: "Your birth month (1-12)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "day",
					Description: "Your birth day (1-31)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "timezone",
					Description: "Timezone for birthday celebration",
					Required:    true,
					Choices:     timezoneChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "announce",
					Description: "Announce your birthday in chat?",
					Required:    true,
				},
			},
		},
		Execute: func(ctx context.Context, s *discord.Session, i *discordgo.InteractionCreate) error {
			o := discord.ParseOptions(i.ApplicationCommandData())
			year, _ := o.Int("year")
			monthInput, _ := o.String("month")
			dayInput, _ := o.String("day")
			tzInput, _ := o.String("timezone")
			announce, _ := o.Bool("announce")

			month, err := strconv.Atoi(monthInput)
			if err != nil || month < 1 || month > 12 {
				return s.RespondEphemeral(i, "Invalid month. Please enter a number between 1 and 12.")
			}
			day, err := strconv.Atoi(dayInput)
			if err != nil || day < 1 || day > 31 {
				return s.RespondEphemeral(i, "Invalid day. Please enter a number between 1 and 31.")
			}
			if day == 31 && (month == 4 || month == 6 || month == 9 || month == 11) {
				return s.RespondEphemeral(i, "Invalid date. This month only has 30 days.")
			}
			if month == 2 && day == 29 && !isLeapYear(year) {
				return s.RespondEphemeral(i, "Invalid date. February 29th only exists in leap years.")
			}

			date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if int(date.Month()) != month || date.Day() != day {
				return s.RespondEphemeral(i, "Invalid date. Please check your input.")
			}

			// The timezone value comes from a fixed choice list.
			offset, err := strconv.Atoi(tzInput)
			if err != nil {
				return s.RespondEphemeral(i, "Invalid timezone. Please pick one from the list.")
			}

			user := discord.InteractionUser(i)
			if err := d.Users.SetBirthday(ctx, user.ID, user.Username, date, offset); err != nil {
				return err
			}

			tz := offsetLabel(offset)
			reply := fmt.Sprintf("Your birthday has been set to %s in timezone %s.",
				date.Format("January 2, 2006"), tz)
			if err := s.RespondEphemeral(i, reply); err != nil {
				return err
			}

			if announce {
				sendBirthdayDM(d, s, user.ID, date, offset)
			}
			return nil
		},
	}
}

// sendBirthdayDM confirms the registration over DM, congratulating right away
// when today already is the birthday in the chosen offset. Failures are
// logged only; DMs are best effort.
func sendBirthdayDM(d Deps, s *discord.Session, userID string, birthday time.Time, offset int) {
	tz := offsetLabel(offset)
	local := time.Now().UTC().In(time.FixedZone("", offset*3600))

	var content string
	if local.Month() == birthday.Month() && local.Day() == birthday.Day() {
		content = fmt.Sprintf("Happy birthday! 🎉 Your birthday (%s) has been registered in timezone %s.",
			local.Format("January 2"), tz)
	} else {
		content = fmt.Sprintf("Your birthday (%s) has been registered in timezone %s.",
			birthday.Format("January 2"), tz)
	}
	if err := s.DM(userID, content); err != nil {
		d.Log.Warn("birthday dm failed", logger.String("user_id", userID), logger.Error(err))
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func offsetLabel(offset int) string {
	return fmt.Sprintf("UTC%+d:00", offset)
}

// timezoneChoices lists whole-hour offsets from UTC-12 to UTC+12.
func timezoneChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 25)
	for offset := -12; offset <= 12; offset++ {
		sign := "+"
		if offset < 0 {
			sign = "-"
		}
		abs := offset
		if abs < 0 {
			abs = -abs
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("UTC%s%02d:00", sign, abs),
			Value: strconv.Itoa(offset),
		})
	}
	return choices
}

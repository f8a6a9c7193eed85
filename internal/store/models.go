package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote is a single recorded quote. Link, when set, points at the quote this
// one chains onto; at most one quote may link to any given target.
type Quote struct {
	ID      primitive.ObjectID  `bson:"_id,omitempty"`
	Text    string              `bson:"quote"`
	Author  string              `bson:"author"`
	Context string              `bson:"context,omitempty"`
	Year    int                 `bson:"year"`
	Link    *primitive.ObjectID `bson:"link,omitempty"`
}

// FirstName holds the given name and an optional preferred alternative.
type FirstName struct {
	Given     string `bson:"given,omitempty"`
	Preferred string `bson:"preferred,omitempty"`
}

// StructuredName is the full name split used for quote author display.
type StructuredName struct {
	First  FirstName `bson:"first"`
	Family string    `bson:"family,omitempty"`
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserID   string             `bson:"userId"`
	Username string             `bson:"username"`
	Name     StructuredName     `bson:"name"`
	// Nicknames is the set of words the mention scanner matches against.
	Nicknames []string   `bson:"nicknames,omitempty"`
	Birthday  *time.Time `bson:"birthday,omitempty"`
	// BirthdayTimezone is a whole-hour UTC offset; 0 means UTC.
	BirthdayTimezone int `bson:"birthdayTimezone"`
}

// DisplayName derives the quote-author form of the user's name: initial plus
// family name when both exist (preferred first name winning over given),
// otherwise the given or family name alone, otherwise the platform username.
func (u *User) DisplayName() string {
	first := u.Name.First.Preferred
	if first == "" {
		first = u.Name.First.Given
	}

	switch {
	case first != "" && u.Name.Family != "":
		return string([]rune(first)[0]) + ". " + u.Name.Family
	case u.Name.First.Given != "":
		return u.Name.First.Given
	case u.Name.Family != "":
		return u.Name.Family
	}
	return u.Username
}

type Guild struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	GuildID           string             `bson:"guildId"`
	BotChannelID      string             `bson:"botChannelId,omitempty"`
	WelcomeChannelID  string             `bson:"welcomeChannelId,omitempty"`
	BirthdayChannelID string             `bson:"birthdayChannelId,omitempty"`
}

// Status is a singleton document seeding the bot presence at startup.
type Status struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Message   string             `bson:"message"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	UpdatedBy primitive.ObjectID `bson:"updatedBy,omitempty"`
}

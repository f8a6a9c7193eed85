package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GuildRepo struct {
	coll *mongo.Collection
}

// Ensure inserts a guild record if one does not exist yet. Safe to call on
// every reconnect.
func (r *GuildRepo) Ensure(ctx context.Context, guildID string) error {
	opts := options.Update().SetUpsert(true)
	update := bson.M{"$setOnInsert": bson.M{"guildId": guildID}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"guildId": guildID}, update, opts); err != nil {
		return fmt.Errorf("ensure guild: %w", err)
	}
	return nil
}

func (r *GuildRepo) FindByGuildID(ctx context.Context, guildID string) (*Guild, error) {
	var g Guild
	err := r.coll.FindOne(ctx, bson.M{"guildId": guildID}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find guild: %w", err)
	}
	return &g, nil
}

// ChannelBindings carries the channel-config command's options; empty fields
// leave the stored binding untouched.
type ChannelBindings struct {
	BotChannelID      string
	WelcomeChannelID  string
	BirthdayChannelID string
}

func (r *GuildRepo) SetChannels(ctx context.Context, guildID string, b ChannelBindings) error {
	set := bson.M{"guildId": guildID}
	if b.BotChannelID != "" {
		set["botChannelId"] = b.BotChannelID
	}
	if b.WelcomeChannelID != "" {
		set["welcomeChannelId"] = b.WelcomeChannelID
	}
	if b.BirthdayChannelID != "" {
		set["birthdayChannelId"] = b.BirthdayChannelID
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"guildId": guildID}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("set guild channels: %w", err)
	}
	return nil
}

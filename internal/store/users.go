package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo struct {
	coll *mongo.Collection
}

func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Ensure returns the stored user, creating a bare record if none exists yet.
// The username is refreshed either way.
func (r *UserRepo) Ensure(ctx context.Context, userID, username string) (*User, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	update := bson.M{
		"$set":         bson.M{"username": username},
		"$setOnInsert": bson.M{"userId": userID, "birthdayTimezone": 0},
	}
	var u User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&u)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return &u, nil
}

// SetBirthday upserts the user's birthday and whole-hour UTC offset.
func (r *UserRepo) SetBirthday(ctx context.Context, userID, username string, birthday time.Time, tzOffset int) error {
	opts := options.Update().SetUpsert(true)
	update := bson.M{"$set": bson.M{
		"userId":           userID,
		"username":         username,
		"birthday":         birthday,
		"birthdayTimezone": tzOffset,
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update, opts); err != nil {
		return fmt.Errorf("set birthday: %w", err)
	}
	return nil
}

// SetNicknames replaces the user's nickname set.
func (r *UserRepo) SetNicknames(ctx context.Context, userID string, nicknames []string) error {
	if nicknames == nil {
		nicknames = []string{}
	}
	update := bson.M{"$set": bson.M{"nicknames": nicknames}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update); err != nil {
		return fmt.Errorf("set nicknames: %w", err)
	}
	return nil
}

// ProfileUpdate carries the optional fields of the createuser command; nil
// fields are left untouched in the stored document.
type ProfileUpdate struct {
	GivenName     *string
	PreferredName *string
	FamilyName    *string
	Nicknames     []string
	Birthday      *time.Time
}

func (r *UserRepo) UpsertProfile(ctx context.Context, userID, username string, p ProfileUpdate) error {
	set := bson.M{"userId": userID, "username": username}
	if p.GivenName != nil {
		set["name.first.given"] = *p.GivenName
	}
	if p.PreferredName != nil {
		set["name.first.preferred"] = *p.PreferredName
	}
	if p.FamilyName != nil {
		set["name.family"] = *p.FamilyName
	}
	if p.Nicknames != nil {
		set["nicknames"] = p.Nicknames
	}
	if p.Birthday != nil {
		set["birthday"] = *p.Birthday
	}

	opts := options.Update().SetUpsert(true)
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"birthdayTimezone": 0},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update, opts); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// WithNicknames lists users that have at least one nickname registered.
func (r *UserRepo) WithNicknames(ctx context.Context) ([]User, error) {
	filter := bson.M{"nicknames": bson.M{"$exists": true, "$ne": bson.A{}}}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find users with nicknames: %w", err)
	}
	var out []User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return out, nil
}

// WithBirthday lists users that have a birthday set.
func (r *UserRepo) WithBirthday(ctx context.Context) ([]User, error) {
	filter := bson.M{"birthday": bson.M{"$exists": true, "$ne": nil}}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find users with birthday: %w", err)
	}
	var out []User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return out, nil
}

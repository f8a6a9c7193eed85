package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StatusRepo struct {
	coll *mongo.Collection
}

// Get reads the status singleton.
func (r *StatusRepo) Get(ctx context.Context) (*Status, error) {
	var st Status
	err := r.coll.FindOne(ctx, bson.M{}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find status: %w", err)
	}
	return &st, nil
}

// Set upserts the status singleton with the new message and its author.
func (r *StatusRepo) Set(ctx context.Context, message string, updatedBy primitive.ObjectID) error {
	opts := options.Update().SetUpsert(true)
	update := bson.M{"$set": bson.M{
		"message":   message,
		"updatedAt": time.Now().UTC(),
		"updatedBy": updatedBy,
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{}, update, opts); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

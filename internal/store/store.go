package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// Store wraps the Mongo client and hands out per-collection repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: cli, db: cli.Database(dbname)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Users() *UserRepo   { return &UserRepo{coll: s.db.Collection("users")} }
func (s *Store) Guilds() *GuildRepo { return &GuildRepo{coll: s.db.Collection("guilds")} }
func (s *Store) Quotes() *QuoteRepo { return &QuoteRepo{coll: s.db.Collection("quotes")} }
func (s *Store) Status() *StatusRepo {
	return &StatusRepo{coll: s.db.Collection("status")}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuoteRepo struct {
	coll *mongo.Collection
}

// QuoteFilter narrows quote queries. Content and Author match as
// case-insensitive substrings; a nil Year matches any year.
type QuoteFilter struct {
	Content string
	Author  string
	Year    *int
}

func (f QuoteFilter) query() bson.M {
	q := bson.M{}
	if f.Content != "" {
		q["quote"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Content), Options: "i"}
	}
	if f.Author != "" {
		q["author"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Author), Options: "i"}
	}
	if f.Year != nil {
		q["year"] = *f.Year
	}
	return q
}

// AuthorCount is one $group bucket of the author popularity pipeline.
type AuthorCount struct {
	Author string `bson:"_id"`
	Count  int    `bson:"count"`
}

type YearCount struct {
	Year  int `bson:"_id"`
	Count int `bson:"count"`
}

func (r *QuoteRepo) Insert(ctx context.Context, q *Quote) error {
	res, err := r.coll.InsertOne(ctx, q)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = id
	}
	return nil
}

func (r *QuoteRepo) Update(ctx context.Context, q *Quote) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

func (r *QuoteRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Quote, error) {
	var q Quote
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find quote: %w", err)
	}
	return &q, nil
}

// FindByLink returns the quote whose link points at target, if any.
func (r *QuoteRepo) FindByLink(ctx context.Context, target primitive.ObjectID) (*Quote, error) {
	var q Quote
	err := r.coll.FindOne(ctx, bson.M{"link": target}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find quote by link: %w", err)
	}
	return &q, nil
}

// FindByOrdinal returns the n-th quote (1-based) in insertion order.
func (r *QuoteRepo) FindByOrdinal(ctx context.Context, n int) (*Quote, error) {
	if n < 1 {
		return nil, ErrNotFound
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(n - 1))
	var q Quote
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find quote by ordinal: %w", err)
	}
	return &q, nil
}

func (r *QuoteRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

func (r *QuoteRepo) Search(ctx context.Context, f QuoteFilter, limit int) ([]Quote, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, fmt.Errorf("search quotes: %w", err)
	}
	var out []Quote
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return out, nil
}

// Oldest returns the first quotes in insertion order, up to limit.
func (r *QuoteRepo) Oldest(ctx context.Context, limit int) ([]Quote, error) {
	return r.Search(ctx, QuoteFilter{}, limit)
}

// Random draws up to n quotes matching the filter via $sample.
func (r *QuoteRepo) Random(ctx context.Context, f QuoteFilter, n int) ([]Quote, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: f.query()}},
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: n}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample quotes: %w", err)
	}
	var out []Quote
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return out, nil
}

// PopularAuthors groups quotes by author, most quoted first.
func (r *QuoteRepo) PopularAuthors(ctx context.Context, f QuoteFilter, limit int) ([]AuthorCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: f.query()}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate authors: %w", err)
	}
	var out []AuthorCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	return out, nil
}

// PopularYears groups quotes by year, most recent year first.
func (r *QuoteRepo) PopularYears(ctx context.Context, f QuoteFilter, limit int) ([]YearCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: f.query()}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$year"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate years: %w", err)
	}
	var out []YearCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode years: %w", err)
	}
	return out, nil
}

// MostRecentAuthor returns the author of the newest quote, or "" when the
// collection is empty.
func (r *QuoteRepo) MostRecentAuthor(ctx context.Context) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	var q Quote
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find recent author: %w", err)
	}
	return q.Author, nil
}

func (r *QuoteRepo) DistinctAuthors(ctx context.Context, f QuoteFilter) ([]string, error) {
	vals, err := r.coll.Distinct(ctx, "author", f.query())
	if err != nil {
		return nil, fmt.Errorf("distinct authors: %w", err)
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *QuoteRepo) DistinctYears(ctx context.Context, f QuoteFilter) ([]int, error) {
	vals, err := r.coll.Distinct(ctx, "year", f.query())
	if err != nil {
		return nil, fmt.Errorf("distinct years: %w", err)
	}
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		switch n := v.(type) {
		case int32:
			out = append(out, int(n))
		case int64:
			out = append(out, int(n))
		case int:
			out = append(out, n)
		}
	}
	return out, nil
}

package quotes

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// maxChainLength is the hop ceiling: a chain of linked quotes may never
// reach this many hops.
const maxChainLength = 5

var (
	ErrDoubleLink   = errors.New("another quote already links to this quote")
	ErrCircularLink = errors.New("quote links form a cycle")
	ErrChainTooLong = errors.New("quote chain would grow too long")
	ErrNotFound     = errors.New("quote not found")
)

// Repository is the slice of the quote collection the chain manager needs.
// Implementations can be file-based, database, etc.
type Repository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*store.Quote, error)
	FindByLink(ctx context.Context, target primitive.ObjectID) (*store.Quote, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, q *store.Quote) error
	Update(ctx context.Context, q *store.Quote) error
}

// Manager enforces the quote link-graph invariants on every create, link,
// and override.
type Manager struct {
	repo Repository
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Draft holds the fields of a quote about to be created or overridden.
type Draft struct {
	Text    string
	Author  string
	Year    int
	Context string
	// LinkTarget, when set, chains the quote onto an existing one.
	LinkTarget *primitive.ObjectID
}

// ValidateNewLink checks that target can take one more incoming link and
// returns the length of the existing chain starting at target. The walk
// keeps a visited set so it terminates even on malformed link data.
func (m *Manager) ValidateNewLink(ctx context.Context, target primitive.ObjectID) (int, error) {
	return m.validateNewLink(ctx, target, primitive.NilObjectID)
}

// validateNewLink is ValidateNewLink with an optional quote to ignore in the
// double-link check, used when that quote's own link is being overridden.
func (m *Manager) validateNewLink(ctx context.Context, target, ignore primitive.ObjectID) (int, error) {
	existing, err := m.repo.FindByLink(ctx, target)
	switch {
	case err == nil:
		if existing.ID != ignore {
			return 0, ErrDoubleLink
		}
	case !errors.Is(err, store.ErrNotFound):
		return 0, fmt.Errorf("check incoming links: %w", err)
	}

	visited := make(map[primitive.ObjectID]bool)
	hops := 0
	cur := target
	for {
		if visited[cur] {
			return 0, ErrCircularLink
		}
		// Reaching the quote being overridden means its new link would
		// point back into its own chain.
		if ignore != primitive.NilObjectID && cur == ignore {
			return 0, ErrCircularLink
		}
		visited[cur] = true

		q, err := m.repo.FindByID(ctx, cur)
		if errors.Is(err, store.ErrNotFound) {
			if hops == 0 {
				return 0, ErrNotFound
			}
			// Dangling link mid-chain counts as the end of the chain.
			break
		}
		if err != nil {
			return 0, fmt.Errorf("walk chain: %w", err)
		}
		if q.Link == nil {
			break
		}
		cur = *q.Link
		hops++
	}

	if hops+1 >= maxChainLength {
		return 0, ErrChainTooLong
	}
	return hops, nil
}

// Create validates the link target if present, persists the quote, and
// returns its ordinal (the count of quotes at insertion time).
func (m *Manager) Create(ctx context.Context, d Draft) (int64, error) {
	if d.LinkTarget != nil {
		if _, err := m.ValidateNewLink(ctx, *d.LinkTarget); err != nil {
			return 0, err
		}
	}

	q := &store.Quote{
		Text:    d.Text,
		Author:  d.Author,
		Context: d.Context,
		Year:    d.Year,
		Link:    d.LinkTarget,
	}
	if err := m.repo.Insert(ctx, q); err != nil {
		return 0, err
	}
	return m.repo.Count(ctx)
}

// Override overwrites an existing quote in place. Context and link are only
// touched when supplied; a new link target is re-validated against the
// double-link and cycle invariants.
func (m *Manager) Override(ctx context.Context, id primitive.ObjectID, d Draft) error {
	q, err := m.repo.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if d.LinkTarget != nil {
		if *d.LinkTarget == id {
			return ErrCircularLink
		}
		if _, err := m.validateNewLink(ctx, *d.LinkTarget, id); err != nil {
			return err
		}
		q.Link = d.LinkTarget
	}

	q.Text = d.Text
	q.Author = d.Author
	q.Year = d.Year
	if d.Context != "" {
		q.Context = d.Context
	}
	return m.repo.Update(ctx, q)
}

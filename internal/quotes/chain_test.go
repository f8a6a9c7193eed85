package quotes

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MysticalWizard/electricalwizard/internal/store"
)

type memRepo struct {
	order  []primitive.ObjectID
	quotes map[primitive.ObjectID]*store.Quote
}

func newMemRepo() *memRepo {
	return &memRepo{quotes: make(map[primitive.ObjectID]*store.Quote)}
}

func (m *memRepo) FindByID(_ context.Context, id primitive.ObjectID) (*store.Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *memRepo) FindByLink(_ context.Context, target primitive.ObjectID) (*store.Quote, error) {
	for _, id := range m.order {
		q := m.quotes[id]
		if q.Link != nil && *q.Link == target {
			cp := *q
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.order)), nil
}

func (m *memRepo) Insert(_ context.Context, q *store.Quote) error {
	q.ID = primitive.NewObjectID()
	cp := *q
	m.quotes[q.ID] = &cp
	m.order = append(m.order, q.ID)
	return nil
}

func (m *memRepo) Update(_ context.Context, q *store.Quote) error {
	if _, ok := m.quotes[q.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *q
	m.quotes[q.ID] = &cp
	return nil
}

// seed inserts a quote directly, optionally linked onto target.
func (m *memRepo) seed(text string, link *primitive.ObjectID) primitive.ObjectID {
	q := &store.Quote{Text: text, Author: "a", Year: 2020, Link: link}
	_ = m.Insert(context.Background(), q)
	return q.ID
}

func TestCreateReturnsOrdinal(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	n, err := mgr.Create(ctx, Draft{Text: "hello world", Author: "Ada", Year: 2020})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n != 1 {
		t.Fatalf("want ordinal 1, got %d", n)
	}

	n, err = mgr.Create(ctx, Draft{Text: "second", Author: "Ada", Year: 2021})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n != 2 {
		t.Fatalf("want ordinal 2, got %d", n)
	}

	got := Format(&store.Quote{Text: "hello world", Author: "Ada", Year: 2020})
	if got != `"hello world" — Ada, 2020` {
		t.Fatalf("format mismatch: %s", got)
	}
}

func TestDoubleLinkRejected(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	target := repo.seed("target", nil)
	if _, err := mgr.Create(ctx, Draft{Text: "first", Author: "a", Year: 2020, LinkTarget: &target}); err != nil {
		t.Fatalf("first link: %v", err)
	}
	_, err := mgr.Create(ctx, Draft{Text: "second", Author: "a", Year: 2020, LinkTarget: &target})
	if !errors.Is(err, ErrDoubleLink) {
		t.Fatalf("want ErrDoubleLink, got %v", err)
	}
}

func TestChainTooLong(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	// B→C→D→E: walking from the head B traverses 3 hops, so one more
	// link still fits.
	e := repo.seed("E", nil)
	d := repo.seed("D", &e)
	c := repo.seed("C", &d)
	b := repo.seed("B", &c)

	hops, err := mgr.ValidateNewLink(ctx, b)
	if err != nil {
		t.Fatalf("validate at B: %v", err)
	}
	if hops != 3 {
		t.Fatalf("want 3 hops from B, got %d", hops)
	}

	// A→B→C→D→E: linking onto the head A would make the chain reach
	// five quotes.
	a := repo.seed("A", &b)
	if _, err := mgr.ValidateNewLink(ctx, a); !errors.Is(err, ErrChainTooLong) {
		t.Fatalf("want ErrChainTooLong, got %v", err)
	}

	// B is no longer a valid target either: A already links to it.
	if _, err := mgr.ValidateNewLink(ctx, b); !errors.Is(err, ErrDoubleLink) {
		t.Fatalf("want ErrDoubleLink, got %v", err)
	}
}

func TestCycleDetectionTerminates(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	// x leads into the cycle a→b→a. The walk from x must terminate via
	// the visited set instead of looping forever.
	a := repo.seed("a", nil)
	b := repo.seed("b", &a)
	x := repo.seed("x", &a)
	repo.quotes[a].Link = &b

	_, err := mgr.ValidateNewLink(ctx, x)
	if !errors.Is(err, ErrCircularLink) {
		t.Fatalf("want ErrCircularLink, got %v", err)
	}
}

func TestValidateDanglingLinkEndsChain(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	ghost := primitive.NewObjectID()
	a := repo.seed("a", &ghost)

	hops, err := mgr.ValidateNewLink(ctx, a)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if hops != 1 {
		t.Fatalf("want 1 hop, got %d", hops)
	}
}

func TestValidateUnknownTarget(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)

	if _, err := mgr.ValidateNewLink(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestOverride(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	id := repo.seed("original", nil)
	other := repo.seed("other", nil)

	err := mgr.Override(ctx, id, Draft{Text: "fixed", Author: "Ada", Year: 2021, LinkTarget: &other})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	q, _ := repo.FindByID(ctx, id)
	if q.Text != "fixed" || q.Author != "Ada" || q.Year != 2021 {
		t.Fatalf("fields not overwritten: %+v", q)
	}
	if q.Link == nil || *q.Link != other {
		t.Fatalf("link not set")
	}

	// Re-overriding with the same target must not trip the double-link
	// check on the quote's own link.
	if err := mgr.Override(ctx, id, Draft{Text: "fixed again", Author: "Ada", Year: 2021, LinkTarget: &other}); err != nil {
		t.Fatalf("re-override: %v", err)
	}

	if err := mgr.Override(ctx, primitive.NewObjectID(), Draft{Text: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := mgr.Override(ctx, id, Draft{Text: "self", LinkTarget: &id}); !errors.Is(err, ErrCircularLink) {
		t.Fatalf("want ErrCircularLink on self link, got %v", err)
	}
}

func TestOverrideLinkIntoOwnChain(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	// y already links to x; pointing x at y would close the loop x→y→x.
	x := repo.seed("x", nil)
	y := repo.seed("y", &x)

	err := mgr.Override(ctx, x, Draft{Text: "x", Author: "a", Year: 2020, LinkTarget: &y})
	if !errors.Is(err, ErrCircularLink) {
		t.Fatalf("want ErrCircularLink, got %v", err)
	}
	q, _ := repo.FindByID(ctx, x)
	if q.Link != nil {
		t.Fatalf("cycle persisted: %+v", q)
	}

	// Same through an intermediary: z→y→x, overriding x to link onto z.
	z := repo.seed("z", &y)
	err = mgr.Override(ctx, x, Draft{Text: "x", Author: "a", Year: 2020, LinkTarget: &z})
	if !errors.Is(err, ErrCircularLink) {
		t.Fatalf("want ErrCircularLink via intermediary, got %v", err)
	}
}

func TestOverrideKeepsContextWhenOmitted(t *testing.T) {
	repo := newMemRepo()
	mgr := NewManager(repo)
	ctx := context.Background()

	id := repo.seed("original", nil)
	repo.quotes[id].Context = "in the lab"

	if err := mgr.Override(ctx, id, Draft{Text: "new", Author: "b", Year: 2022}); err != nil {
		t.Fatalf("override: %v", err)
	}
	q, _ := repo.FindByID(ctx, id)
	if q.Context != "in the lab" {
		t.Fatalf("context lost: %+v", q)
	}
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"careerboard/internal/access"
	"careerboard/internal/post/model"
	"careerboard/socket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore mimics the repository's SQL semantics over a map.
type memStore struct {
	rows    map[uuid.UUID]model.Post
	updates int
	err     error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uuid.UUID]model.Post)}
}

func (m *memStore) visible(f access.Filter) []model.Post {
	var out []model.Post
	for _, p := range m.rows {
		if len(f.Args) == 1 && p.AuthorID != f.Args[0].(uuid.UUID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (m *memStore) Count(_ context.Context, f access.Filter) (int, error) {
	return len(m.visible(f)), m.err
}

func (m *memStore) List(_ context.Context, f access.Filter, skip, limit int) ([]model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	rows := m.visible(f)
	if skip > len(rows) {
		skip = len(rows)
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return append([]model.Post{}, rows[skip:end]...), nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (m *memStore) Create(_ context.Context, p *model.Post) error {
	if m.err != nil {
		return m.err
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memStore) Update(_ context.Context, p *model.Post) error {
	if m.err != nil {
		return m.err
	}
	stored := m.rows[p.ID]
	stored.Title, stored.Content = p.Title, p.Content
	m.rows[p.ID] = stored
	m.updates++
	*p = stored
	return nil
}

type recorder struct{ events []socket.Event }

func (r *recorder) Publish(evt socket.Event) { r.events = append(r.events, evt) }

func strPtr(s string) *string { return &s }

func setup() (*PostService, *memStore, *recorder) {
	store := newMemStore()
	hub := &recorder{}
	return NewPostService(store, hub), store, hub
}

var (
	alice = access.Caller{ID: uuid.New()}
	bob   = access.Caller{ID: uuid.New()}
	root  = access.Caller{ID: uuid.New(), IsSuperuser: true}
)

func TestCreateAssignsCallerAsAuthor(t *testing.T) {
	svc, store, hub := setup()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, model.PostCreate{Title: "x"})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, p.AuthorID)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Contains(t, store.rows, p.ID)
	require.Len(t, hub.events, 1)
	assert.Equal(t, socket.CreatedType, hub.events[0].Type)
	assert.Equal(t, socket.ResourcePost, hub.events[0].Resource)
	assert.Equal(t, alice.ID, hub.events[0].OwnerID)
}

func TestGetScenario(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, model.PostCreate{Title: "x"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, p.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	got, err := svc.Get(ctx, root, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got, err = svc.Get(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title)
}

func TestGetMissing(t *testing.T) {
	svc, _, _ := setup()

	_, err := svc.Get(context.Background(), root, uuid.New())
	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestListScoping(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, alice, model.PostCreate{Title: "mine"})
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, bob, model.PostCreate{Title: "theirs"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, alice, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	assert.Len(t, page.Data, 3)
	for _, p := range page.Data {
		assert.Equal(t, alice.ID, p.AuthorID)
	}

	page, err = svc.List(ctx, root, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Count)
	assert.Len(t, page.Data, 5)

	// count ignores the window
	page, err = svc.List(ctx, root, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Count)
	assert.Len(t, page.Data, 2)
}

func TestUpdatePartial(t *testing.T) {
	svc, _, hub := setup()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, model.PostCreate{Title: "old", Content: "body"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, alice, p.ID, model.PostUpdate{Title: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.Equal(t, alice.ID, got.AuthorID)

	require.Len(t, hub.events, 2)
	assert.Equal(t, socket.UpdatedType, hub.events[1].Type)
}

func TestUpdateEmptyLeavesRowUnchanged(t *testing.T) {
	svc, store, hub := setup()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, model.PostCreate{Title: "old", Content: "body"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, alice, p.ID, model.PostUpdate{})
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Zero(t, store.updates)
	assert.Len(t, hub.events, 1)
}

func TestUpdateAuthorization(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, model.PostCreate{Title: "old"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob, p.ID, model.PostUpdate{Title: strPtr("hijack")})
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = svc.Update(ctx, alice, uuid.New(), model.PostUpdate{Title: strPtr("x")})
	assert.ErrorIs(t, err, access.ErrNotFound)

	got, err := svc.Update(ctx, root, p.ID, model.PostUpdate{Content: strPtr("moderated")})
	require.NoError(t, err)
	assert.Equal(t, "moderated", got.Content)
	assert.Equal(t, alice.ID, got.AuthorID)
}

func TestStoreErrorsPropagate(t *testing.T) {
	svc, store, hub := setup()
	boom := errors.New("connection reset")
	store.err = boom
	ctx := context.Background()

	_, err := svc.List(ctx, alice, 0, 100)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Get(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, boom)
	_, err = svc.Create(ctx, alice, model.PostCreate{Title: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, hub.events)
}

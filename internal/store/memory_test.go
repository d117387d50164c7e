package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func TestMemoryCreateAndGet(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	id, err := db.Create(ctx, CollectionScams, testDoc{Name: "a"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	data, err := db.Get(ctx, CollectionScams, id)
	require.NoError(t, err)

	var got testDoc
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "a", got.Name)

	_, err = db.Get(ctx, CollectionScams, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCreateWithIDUpserts(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	require.NoError(t, db.CreateWithID(ctx, CollectionUsers, "u1", testDoc{Name: "a"}))
	require.NoError(t, db.CreateWithID(ctx, CollectionUsers, "u1", testDoc{Name: "b"}))

	data, err := db.Get(ctx, CollectionUsers, "u1")
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "b", got.Name)

	recs, err := db.List(ctx, CollectionUsers)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestMemoryUpdateMergesTopLevel(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	id, err := db.Create(ctx, CollectionScams, testDoc{Name: "a", Tags: []string{"x"}, Count: 1})
	require.NoError(t, err)

	// Частичное обновление: нетронутые поля сохраняются.
	require.NoError(t, db.Update(ctx, CollectionScams, id, map[string]any{
		"count": 5,
		"tags":  []string{"x", "y"},
	}))

	data, err := db.Get(ctx, CollectionScams, id)
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, 5, got.Count)
	assert.Equal(t, []string{"x", "y"}, got.Tags)

	assert.ErrorIs(t, db.Update(ctx, CollectionScams, "missing", map[string]any{"count": 1}), ErrNotFound)
}

func TestMemoryListKeepsInsertionOrder(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	a, err := db.Create(ctx, CollectionScams, testDoc{Name: "a"})
	require.NoError(t, err)
	b, err := db.Create(ctx, CollectionScams, testDoc{Name: "b"})
	require.NoError(t, err)
	c, err := db.Create(ctx, CollectionScams, testDoc{Name: "c"})
	require.NoError(t, err)

	require.NoError(t, db.Delete(ctx, CollectionScams, b))

	recs, err := db.List(ctx, CollectionScams)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, a, recs[0].ID)
	assert.Equal(t, c, recs[1].ID)
}

func TestMemoryDelete(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	id, err := db.Create(ctx, CollectionLocations, testDoc{Name: "a"})
	require.NoError(t, err)

	require.NoError(t, db.Delete(ctx, CollectionLocations, id))
	_, err = db.Get(ctx, CollectionLocations, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, db.Delete(ctx, CollectionLocations, id), ErrNotFound)
}

func TestMemoryCollectionsAreIsolated(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	require.NoError(t, db.CreateWithID(ctx, CollectionUsers, "x", testDoc{Name: "user"}))
	_, err := db.Get(ctx, CollectionScams, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

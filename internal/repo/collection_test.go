package repo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/storage"
)

type item struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

func defaults() []item {
	return []item{{ID: "1", Category: "work"}, {ID: "2"}}
}

func normalize(i *item) {
	if i.Category == "" {
		i.Category = "general"
	}
}

func TestLoadMissingKeyPersistsDefaults(t *testing.T) {
	store := storage.NewMemoryStore()
	c := NewCollection(store, "things", defaults, normalize)

	items, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1", Category: "work"}, {ID: "2", Category: "general"}}, items)

	raw, err := store.Get("things")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","category":"work"},{"id":"2","category":"general"}]`, string(raw))
}

func TestLoadMalformedReplacesWithDefaults(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put("things", []byte(`{"broken":`)))
	c := NewCollection(store, "things", defaults, nil)

	items, err := c.Load()
	require.NoError(t, err)
	assert.Len(t, items, 2)

	raw, err := store.Get("things")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","category":"work"},{"id":"2","category":""}]`, string(raw))
}

func TestLoadNormalizesStoredItems(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put("things", []byte(`[{"id":"9"}]`)))
	c := NewCollection(store, "things", defaults, normalize)

	items, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "9", Category: "general"}}, items)
}

func TestLoadNullIsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put("things", []byte(`null`)))
	items, err := NewCollection[item](store, "things", nil, nil).Load()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSaveTwiceIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	c := NewCollection[item](store, "things", nil, nil)
	list := []item{{ID: "a", Category: "x"}, {ID: "b"}}

	require.NoError(t, c.Save(list))
	first, _ := store.Get("things")
	require.NoError(t, c.Save(list))
	second, _ := store.Get("things")
	assert.Equal(t, first, second)

	require.NoError(t, c.Save(nil))
	empty, _ := store.Get("things")
	assert.Equal(t, "[]", string(empty))
}

type failingStore struct{ storage.Store }

func (failingStore) Get(string) ([]byte, error) { return nil, errors.New("disk on fire") }

func TestLoadPropagatesStoreErrors(t *testing.T) {
	c := NewCollection(failingStore{storage.NewMemoryStore()}, "things", defaults, nil)
	_, err := c.Load()
	assert.ErrorContains(t, err, "disk on fire")
}

func TestDocument(t *testing.T) {
	type user struct {
		Name string `json:"name"`
	}
	store := storage.NewMemoryStore()
	d := NewDocument[user](store, "user")

	_, ok, err := d.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Save(user{Name: "Niranjan"}))
	u, ok, err := d.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Niranjan", u.Name)

	require.NoError(t, store.Put("user", []byte("nope")))
	_, ok, err = d.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Clear())
	_, err = store.Get("user")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

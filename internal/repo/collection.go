// Package repo maps feature lists onto store keys as JSON.
package repo

import (
	"encoding/json"
	"errors"
	"fmt"

	"projector/internal/logs"
	"projector/internal/storage"
)

// Collection is a JSON array of T persisted under one key.
type Collection[T any] struct {
	store     storage.Store
	key       string
	defaults  func() []T
	normalize func(*T)
}

// NewCollection binds key to store. defaults supplies the list used when the
// key is missing or unreadable; normalize, if set, runs on every loaded item.
func NewCollection[T any](store storage.Store, key string, defaults func() []T, normalize func(*T)) *Collection[T] {
	if defaults == nil {
		defaults = func() []T { return []T{} }
	}
	return &Collection[T]{store: store, key: key, defaults: defaults, normalize: normalize}
}

func (c *Collection[T]) Key() string { return c.key }

// Load reads the list. A missing key or malformed JSON is replaced with the
// defaults, which are persisted. Store errors are returned.
func (c *Collection[T]) Load() ([]T, error) {
	data, err := c.store.Get(c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return c.reset()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logs.Logger.Warnw("malformed persisted list, restoring defaults", "key", c.key, "error", err)
		return c.reset()
	}
	if items == nil {
		items = []T{}
	}
	c.normalizeAll(items)
	return items, nil
}

func (c *Collection[T]) reset() ([]T, error) {
	items := c.defaults()
	if items == nil {
		items = []T{}
	}
	c.normalizeAll(items)
	if err := c.Save(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) normalizeAll(items []T) {
	if c.normalize == nil {
		return
	}
	for i := range items {
		c.normalize(&items[i])
	}
}

// Save replaces the stored list with items.
func (c *Collection[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", c.key, err)
	}
	if err := c.store.Put(c.key, data); err != nil {
		return fmt.Errorf("error saving %s: %w", c.key, err)
	}
	return nil
}

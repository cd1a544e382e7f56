package repo

import (
	"encoding/json"
	"errors"
	"fmt"

	"projector/internal/logs"
	"projector/internal/storage"
)

// Document is a single JSON object persisted under one key.
type Document[T any] struct {
	store storage.Store
	key   string
}

func NewDocument[T any](store storage.Store, key string) *Document[T] {
	return &Document[T]{store: store, key: key}
}

// Load returns ok=false when the key is missing or does not decode.
func (d *Document[T]) Load() (T, bool, error) {
	var v T
	data, err := d.store.Get(d.key)
	if errors.Is(err, storage.ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("error loading %s: %w", d.key, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		logs.Logger.Warnw("malformed persisted document, ignoring", "key", d.key, "error", err)
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

func (d *Document[T]) Save(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", d.key, err)
	}
	if err := d.store.Put(d.key, data); err != nil {
		return fmt.Errorf("error saving %s: %w", d.key, err)
	}
	return nil
}

func (d *Document[T]) Clear() error {
	return d.store.Delete(d.key)
}

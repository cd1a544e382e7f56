package storage

import (
	"errors"
	"sync/atomic"
)

// ErrWriteFailed is returned by a FaultyStore while writes are broken.
var ErrWriteFailed = errors.New("storage: write failed")

// FaultyStore wraps a Store and fails every Put and Delete while broken.
// Reads always pass through.
type FaultyStore struct {
	Store
	broken atomic.Bool
}

func NewFaultyStore(inner Store) *FaultyStore {
	return &FaultyStore{Store: inner}
}

// Break makes writes fail until Heal is called.
func (f *FaultyStore) Break() { f.broken.Store(true) }

func (f *FaultyStore) Heal() { f.broken.Store(false) }

func (f *FaultyStore) Put(key string, value []byte) error {
	if f.broken.Load() {
		return ErrWriteFailed
	}
	return f.Store.Put(key, value)
}

func (f *FaultyStore) Delete(key string) error {
	if f.broken.Load() {
		return ErrWriteFailed
	}
	return f.Store.Delete(key)
}

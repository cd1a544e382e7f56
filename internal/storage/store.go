package storage

import (
	"errors"
	"strings"
)

// Keys under which each feature persists its list.
const (
	KeyTasks     = "tasks"
	KeyTrending  = "trendingTasks"
	KeyWorkItems = "workItems"
	KeyGoals     = "userGoals"
	KeyNotes     = "userNotes"
	KeyEvents    = "userEvents"
	KeyActivity  = "userActivity"
	KeyUser      = "user"
)

var (
	ErrNotFound   = errors.New("storage: key not found")
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store is a flat key-value repository. Values are opaque bytes, in practice
// JSON documents.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}

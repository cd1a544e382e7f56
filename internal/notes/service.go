package notes

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/logs"
	"projector/internal/repo"
	"projector/internal/storage"
)

var (
	ErrNotFound  = errors.New("note not found")
	ErrEmptyText = errors.New("note text is required")
)

// NoteService defines the interface for note operations.
type NoteService interface {
	List() []Note
	Get(id string) (Note, error)
	Add(text, category string) (Note, error)
	Update(id, text, category string) (Note, error)
	TogglePin(id string) (Note, error)
	Delete(id string) error
	Query(f Filter) []Note
	Categories() []string
	Import(notes []Note) (added, updated int, err error)
	Reload() error
}

type noteServiceImpl struct {
	mu    sync.RWMutex
	notes []Note
	col   *repo.Collection[Note]
	d     deps.Deps
}

func NewNoteService(d deps.Deps) (NoteService, error) {
	d = d.Resolved()
	svc := &noteServiceImpl{d: d}
	svc.col = repo.NewCollection(d.Store, storage.KeyNotes, func() []Note { return defaultNotes(d.Now()) }, normalize)
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *noteServiceImpl) Reload() error {
	notes, err := s.col.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
	return nil
}

func (s *noteServiceImpl) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

func (s *noteServiceImpl) index(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

func (s *noteServiceImpl) Get(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.notes[i], nil
	}
	return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *noteServiceImpl) commit(next []Note) error {
	if err := s.col.Save(next); err != nil {
		return err
	}
	s.notes = next
	return nil
}

func (s *noteServiceImpl) Add(text, category string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmptyText
	}
	n := Note{ID: s.d.NewID(), Text: text, Category: category, CreatedAt: s.d.Now()}
	normalize(&n)

	s.mu.Lock()
	err := s.commit(append(slices.Clone(s.notes), n))
	s.mu.Unlock()
	if err != nil {
		return Note{}, err
	}

	s.d.Bus.Notify("Note Added", "Your note has been added successfully.")
	s.d.Bus.Publish(events.ActivityRecorded{Actor: s.d.Actor(), Action: "added note", Target: Headline(n.Text), Type: "note"})
	return n, nil
}

// mutate applies fn to the note with id and persists the result.
func (s *noteServiceImpl) mutate(id string, fn func(*Note)) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.notes)
	fn(&next[i])
	normalize(&next[i])
	if err := s.commit(next); err != nil {
		return Note{}, err
	}
	return next[i], nil
}

func (s *noteServiceImpl) Update(id, text, category string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmptyText
	}
	n, err := s.mutate(id, func(n *Note) {
		n.Text = text
		n.Category = category
	})
	if err != nil {
		return Note{}, err
	}
	s.d.Bus.Notify("Note Updated", "Your note has been updated successfully.")
	return n, nil
}

func (s *noteServiceImpl) TogglePin(id string) (Note, error) {
	return s.mutate(id, func(n *Note) { n.Pinned = !n.Pinned })
}

func (s *noteServiceImpl) Delete(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	err := s.commit(slices.Delete(slices.Clone(s.notes), i, i+1))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.d.Bus.Notify("Note Deleted", "Your note has been deleted.")
	return nil
}

func (s *noteServiceImpl) Query(f Filter) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Apply(s.notes, f)
}

func (s *noteServiceImpl) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return UniqueCategories(s.notes)
}

// Import merges notes by id: known ids are overwritten, others appended.
// Imported notes without an id get a fresh one.
func (s *noteServiceImpl) Import(notes []Note) (added, updated int, err error) {
	s.mu.Lock()
	next := slices.Clone(s.notes)
	for _, n := range notes {
		normalize(&n)
		if n.ID == "" {
			n.ID = s.d.NewID()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = s.d.Now()
		}
		if i := slices.IndexFunc(next, func(o Note) bool { return o.ID == n.ID }); i >= 0 {
			next[i] = n
			updated++
		} else {
			next = append(next, n)
			added++
		}
	}
	err = s.commit(next)
	s.mu.Unlock()
	if err != nil {
		return 0, 0, err
	}

	logs.Logger.Infow("notes imported", "added", added, "updated", updated)
	s.d.Bus.Notify("Notes Imported", fmt.Sprintf("%d added, %d updated", added, updated))
	return added, updated, nil
}

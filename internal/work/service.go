package work

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"projector/internal/deps"
	"projector/internal/repo"
	"projector/internal/storage"
	"projector/internal/team"
)

var (
	ErrNotFound         = errors.New("work item not found")
	ErrTitleRequired    = errors.New("title required")
	ErrProgressRequired = errors.New("progress is required")
	ErrTagRequired      = errors.New("tag text is required")
)

// WorkService defines the interface for work item operations.
type WorkService interface {
	List() []Item
	Get(id string) (Item, error)
	Add(in NewItem) (Item, error)
	SetProgress(id, progress string) (Item, error)
	AddTag(id, text, color string) (Item, error)
	Delete(id string) error
	Reload() error
}

type workServiceImpl struct {
	mu    sync.RWMutex
	items []Item
	col   *repo.Collection[Item]
	d     deps.Deps
}

func NewWorkService(d deps.Deps) (WorkService, error) {
	d = d.Resolved()
	svc := &workServiceImpl{d: d}
	svc.col = repo.NewCollection(d.Store, storage.KeyWorkItems, defaultItems, normalize)
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *workServiceImpl) Reload() error {
	items, err := s.col.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *workServiceImpl) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *workServiceImpl) index(id string) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}

func (s *workServiceImpl) Get(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], nil
	}
	return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *workServiceImpl) commit(next []Item) error {
	if err := s.col.Save(next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *workServiceImpl) Add(in NewItem) (Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Item{}, ErrTitleRequired
	}
	it := Item{
		ID:          s.d.NewID(),
		Path:        strings.TrimSpace(in.Path),
		Title:       title,
		Progress:    strings.TrimSpace(in.Progress),
		Date:        strings.TrimSpace(in.Date),
		Description: strings.TrimSpace(in.Description),
	}
	if it.Date == "" {
		it.Date = s.d.Now().Format(dateLayout)
	}
	if in.Assignee != nil {
		it.Assignees = []team.Member{*in.Assignee}
	}
	normalize(&it)

	s.mu.Lock()
	err := s.commit(append(slices.Clone(s.items), it))
	s.mu.Unlock()
	if err != nil {
		return Item{}, err
	}
	s.d.Bus.Notify("Work item created", fmt.Sprintf("%q has been added.", it.Title))
	return it, nil
}

func (s *workServiceImpl) mutate(id string, fn func(*Item)) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.items)
	next[i].Tags = slices.Clone(next[i].Tags)
	fn(&next[i])
	normalize(&next[i])
	if err := s.commit(next); err != nil {
		return Item{}, err
	}
	return next[i], nil
}

func (s *workServiceImpl) SetProgress(id, progress string) (Item, error) {
	progress = strings.TrimSpace(progress)
	if progress == "" {
		return Item{}, ErrProgressRequired
	}
	it, err := s.mutate(id, func(it *Item) { it.Progress = progress })
	if err != nil {
		return Item{}, err
	}
	s.d.Bus.Notify("Progress updated", fmt.Sprintf("Progress is now %s", progress))
	return it, nil
}

func (s *workServiceImpl) AddTag(id, text, color string) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, ErrTagRequired
	}
	if strings.TrimSpace(color) == "" {
		color = DefaultTagColor
	}
	it, err := s.mutate(id, func(it *Item) { it.Tags = append(it.Tags, Tag{Text: text, Color: color}) })
	if err != nil {
		return Item{}, err
	}
	s.d.Bus.Notify("Tag added", fmt.Sprintf("Tag %q added.", text))
	return it, nil
}

func (s *workServiceImpl) Delete(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	err := s.commit(slices.Delete(slices.Clone(s.items), i, i+1))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.d.Bus.Warn("Work item removed", "The work item has been removed.")
	return nil
}

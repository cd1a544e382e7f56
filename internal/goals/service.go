package goals

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
	ErrNotFound  = errors.New("goal not found")
	ErrEmptyText = errors.New("goal text is required")
)

// GoalService defines the interface for goal operations.
type GoalService interface {
	List() []Goal
	Get(id string) (Goal, error)
	Add(in NewGoal) (Goal, error)
	Toggle(id string) (Goal, error)
	Update(id string, in NewGoal) (Goal, error)
	Delete(id string) error
	Query(f Filter, o Order) []Goal
	CompletionPercentage() int
	Reload() error
}

type goalServiceImpl struct {
	mu    sync.RWMutex
	goals []Goal
	col   *repo.Collection[Goal]
	d     deps.Deps
}

// NewGoalService loads the goal list from the store.
func NewGoalService(d deps.Deps) (GoalService, error) {
	d = d.Resolved()
	svc := &goalServiceImpl{d: d}
	svc.col = repo.NewCollection(d.Store, storage.KeyGoals, func() []Goal { return defaultGoals(d.Now()) }, normalize)
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *goalServiceImpl) Reload() error {
	goals, err := s.col.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.goals = goals
	s.mu.Unlock()
	return nil
}

func (s *goalServiceImpl) List() []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.goals)
}

func (s *goalServiceImpl) Get(id string) (Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return Goal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.goals[i], nil
}

func (s *goalServiceImpl) index(id string) int {
	return slices.IndexFunc(s.goals, func(g Goal) bool { return g.ID == id })
}

// commit persists next and swaps it in. Callers hold s.mu.
func (s *goalServiceImpl) commit(next []Goal) error {
	if err := s.col.Save(next); err != nil {
		return err
	}
	s.goals = next
	return nil
}

func (s *goalServiceImpl) Add(in NewGoal) (Goal, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Goal{}, ErrEmptyText
	}
	g := Goal{
		ID:        s.d.NewID(),
		Text:      text,
		Priority:  in.Priority,
		DueDate:   in.DueDate,
		Category:  in.Category,
		CreatedAt: s.d.Now(),
	}
	normalize(&g)

	s.mu.Lock()
	next := append(slices.Clone(s.goals), g)
	err := s.commit(next)
	s.mu.Unlock()
	if err != nil {
		return Goal{}, err
	}

	logs.Logger.Infow("goal added", "id", g.ID)
	s.d.Bus.Notify("Goal Added", "Your new goal has been added successfully.")
	return g, nil
}

func (s *goalServiceImpl) Toggle(id string) (Goal, error) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return Goal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.goals)
	next[i].Completed = !next[i].Completed
	g := next[i]
	err := s.commit(next)
	s.mu.Unlock()
	if err != nil {
		return Goal{}, err
	}

	if g.Completed {
		s.d.Bus.Notify("Goal Completed", g.Text)
		s.d.Bus.Publish(events.ActivityRecorded{Actor: s.d.Actor(), Action: "completed goal", Target: g.Text, Type: "goal"})
	} else {
		s.d.Bus.Notify("Goal Reopened", g.Text)
	}
	return g, nil
}

func (s *goalServiceImpl) Update(id string, in NewGoal) (Goal, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Goal{}, ErrEmptyText
	}

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return Goal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.goals)
	next[i].Text = text
	next[i].Priority = in.Priority
	next[i].DueDate = in.DueDate
	next[i].Category = in.Category
	normalize(&next[i])
	g := next[i]
	err := s.commit(next)
	s.mu.Unlock()
	if err != nil {
		return Goal{}, err
	}

	s.d.Bus.Notify("Goal Updated", "Your goal has been updated successfully.")
	return g, nil
}

func (s *goalServiceImpl) Delete(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Delete(slices.Clone(s.goals), i, i+1)
	err := s.commit(next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logs.Logger.Infow("goal deleted", "id", id)
	s.d.Bus.Warn("Goal Deleted", "Your goal has been deleted.")
	return nil
}

func (s *goalServiceImpl) Query(f Filter, o Order) []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Apply(s.goals, f, o)
}

func (s *goalServiceImpl) CompletionPercentage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CompletionPercentage(s.goals)
}

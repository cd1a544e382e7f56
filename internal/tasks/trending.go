package tasks

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"projector/internal/deps"
	"projector/internal/repo"
	"projector/internal/storage"
	"projector/internal/team"
)

// TrendingService manages trending tasks and their work timers.
type TrendingService interface {
	List() []TrendingTask
	Get(id string) (TrendingTask, error)
	Add(in NewTrendingTask) (TrendingTask, error)
	SetProgress(id string, progress int) (TrendingTask, error)
	Delete(id string) error
	StartTimer(id string) error
	StopTimer(id string) (TrendingTask, error)
	Running(id string) (time.Duration, bool)
	Query(platform string, key SortKey) []TrendingTask
	Platforms() []string
	Reload() error
}

type trendingServiceImpl struct {
	mu     sync.RWMutex
	tasks  []TrendingTask
	timers map[string]time.Time
	col    *repo.Collection[TrendingTask]
	d      deps.Deps
}

func NewTrendingService(d deps.Deps) (TrendingService, error) {
	d = d.Resolved()
	svc := &trendingServiceImpl{d: d, timers: make(map[string]time.Time)}
	svc.col = repo.NewCollection(d.Store, storage.KeyTrending, defaultTrending, normalizeTrending)
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *trendingServiceImpl) Reload() error {
	tasks, err := s.col.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	for id := range s.timers {
		if s.index(id) < 0 {
			delete(s.timers, id)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *trendingServiceImpl) List() []TrendingTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *trendingServiceImpl) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t TrendingTask) bool { return t.ID == id })
}

func (s *trendingServiceImpl) Get(id string) (TrendingTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.tasks[i], nil
	}
	return TrendingTask{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *trendingServiceImpl) commit(next []TrendingTask) error {
	if err := s.col.Save(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

func (s *trendingServiceImpl) Add(in NewTrendingTask) (TrendingTask, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		s.d.Bus.Warn("Task title required", "Please enter a title for the task.")
		return TrendingTask{}, ErrTitleRequired
	}
	platform := strings.TrimSpace(in.Platform)
	if platform == "" {
		platform = Platforms[0]
	}
	t := TrendingTask{
		ID:          s.d.NewID(),
		Platform:    platform,
		Title:       title,
		DueDate:     in.DueDate,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.d.Now(),
	}
	if in.Assignee != nil {
		t.Assignees = []team.Member{*in.Assignee}
	}
	normalizeTrending(&t)

	s.mu.Lock()
	err := s.commit(append(slices.Clone(s.tasks), t))
	s.mu.Unlock()
	if err != nil {
		return TrendingTask{}, err
	}
	s.d.Bus.Notify("Task created", fmt.Sprintf("%q was added to trending tasks.", t.Title))
	return t, nil
}

func (s *trendingServiceImpl) SetProgress(id string, progress int) (TrendingTask, error) {
	progress = ClampProgress(progress)
	t, err := s.mutate(id, func(t *TrendingTask) { t.Progress = progress })
	if err != nil {
		return TrendingTask{}, err
	}
	s.d.Bus.Notify("Progress updated", fmt.Sprintf("Task progress is now at %d%%", progress))
	return t, nil
}

func (s *trendingServiceImpl) mutate(id string, fn func(*TrendingTask)) (TrendingTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return TrendingTask{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.tasks)
	fn(&next[i])
	if err := s.commit(next); err != nil {
		return TrendingTask{}, err
	}
	return next[i], nil
}

func (s *trendingServiceImpl) Delete(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	err := s.commit(slices.Delete(slices.Clone(s.tasks), i, i+1))
	delete(s.timers, id)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.d.Bus.Warn("Task removed", "The trending task has been removed.")
	return nil
}

// StartTimer begins accumulating wall time for a task. Starting a running
// timer is a no-op.
func (s *trendingServiceImpl) StartTimer(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	_, running := s.timers[id]
	if !running {
		s.timers[id] = s.d.Now()
	}
	title := s.tasks[i].Title
	s.mu.Unlock()

	if !running {
		s.d.Bus.Notify("Timer started", fmt.Sprintf("Tracking time for %q.", title))
	}
	return nil
}

// StopTimer adds the elapsed time to TimeSpent and persists it. The timer
// keeps running when the save fails.
func (s *trendingServiceImpl) StopTimer(id string) (TrendingTask, error) {
	s.mu.Lock()
	started, running := s.timers[id]
	if !running {
		s.mu.Unlock()
		return s.Get(id)
	}
	i := s.index(id)
	if i < 0 {
		delete(s.timers, id)
		s.mu.Unlock()
		return TrendingTask{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.tasks)
	spent, _ := ParseClock(next[i].TimeSpent)
	next[i].TimeSpent = FormatClock(spent + s.d.Now().Sub(started))
	t := next[i]
	err := s.commit(next)
	if err == nil {
		delete(s.timers, id)
	}
	s.mu.Unlock()
	if err != nil {
		return TrendingTask{}, err
	}

	s.d.Bus.Notify("Timer stopped", fmt.Sprintf("Total time spent: %s", t.TimeSpent))
	return t, nil
}

// Running reports the elapsed time of an active timer.
func (s *trendingServiceImpl) Running(id string) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	started, ok := s.timers[id]
	if !ok {
		return 0, false
	}
	return s.d.Now().Sub(started), true
}

func (s *trendingServiceImpl) Query(platform string, key SortKey) []TrendingTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ApplyTrending(s.tasks, platform, key)
}

func (s *trendingServiceImpl) Platforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PlatformsOf(s.tasks, func(t TrendingTask) string { return t.Platform })
}

// ShareText is the one-line summary copied when sharing a task.
func ShareText(t TrendingTask) string {
	return fmt.Sprintf("Task: %s - Progress: %d%% - Time spent: %s", t.Title, t.Progress, t.TimeSpent)
}

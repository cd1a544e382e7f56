package tasks

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
	"projector/internal/team"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrTitleRequired = errors.New("task title is required")
)

// TaskService defines the interface for task operations.
type TaskService interface {
	List() []Task
	Get(id string) (Task, error)
	Add(in NewTask) (Task, error)
	SetProgress(id string, progress int) (Task, error)
	Delete(id string) error
	Query(f Filter, o Order) []Task
	Reload() error
}

type taskServiceImpl struct {
	mu    sync.RWMutex
	tasks []Task
	col   *repo.Collection[Task]
	d     deps.Deps
}

// NewTaskService loads the task list from the store.
func NewTaskService(d deps.Deps) (TaskService, error) {
	d = d.Resolved()
	svc := &taskServiceImpl{d: d}
	svc.col = repo.NewCollection(d.Store, storage.KeyTasks, defaultTasks, normalizeTask)
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *taskServiceImpl) Reload() error {
	tasks, err := s.col.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

func (s *taskServiceImpl) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *taskServiceImpl) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *taskServiceImpl) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.tasks[i], nil
	}
	return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *taskServiceImpl) commit(next []Task) error {
	if err := s.col.Save(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

func (s *taskServiceImpl) activity(action, target string) {
	s.d.Bus.Publish(events.ActivityRecorded{Actor: s.d.Actor(), Action: action, Target: target, Type: "task"})
}

func (s *taskServiceImpl) Add(in NewTask) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, ErrTitleRequired
	}
	t := Task{
		ID:          s.d.NewID(),
		Platform:    strings.TrimSpace(in.Platform),
		Title:       title,
		DueTime:     in.DueTime,
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority,
		CreatedAt:   s.d.Now(),
	}
	if in.Assignee != nil {
		t.Assignees = []team.Member{*in.Assignee}
	}
	normalizeTask(&t)

	s.mu.Lock()
	err := s.commit(append(slices.Clone(s.tasks), t))
	s.mu.Unlock()
	if err != nil {
		return Task{}, err
	}

	logs.Logger.Infow("task created", "id", t.ID, "title", t.Title)
	s.d.Bus.Publish(events.TaskCreated{TaskID: t.ID, Title: t.Title})
	s.activity("created task", t.Title)
	s.d.Bus.Notify("Task created", "Your task has been added to your lineup.")
	return t, nil
}

func (s *taskServiceImpl) SetProgress(id string, progress int) (Task, error) {
	progress = ClampProgress(progress)

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.tasks)
	next[i].Progress = progress
	t := next[i]
	err := s.commit(next)
	s.mu.Unlock()
	if err != nil {
		return Task{}, err
	}

	if progress == 100 {
		s.activity("completed", t.Title)
	}
	s.d.Bus.Notify("Progress updated", fmt.Sprintf("Task progress set to %d%%", progress))
	return t, nil
}

func (s *taskServiceImpl) Delete(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := s.tasks[i]
	err := s.commit(slices.Delete(slices.Clone(s.tasks), i, i+1))
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logs.Logger.Infow("task deleted", "id", id)
	s.activity("deleted task", removed.Title)
	s.d.Bus.Warn("Task deleted", "The task has been removed from your lineup.")
	return nil
}

func (s *taskServiceImpl) Query(f Filter, o Order) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ApplyTasks(s.tasks, f, o)
}

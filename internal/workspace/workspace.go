// Package workspace opens a data directory and wires every feature service
// to one store, event bus and session.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"projector/internal/activity"
	"projector/internal/agenda"
	"projector/internal/auth"
	"projector/internal/config"
	"projector/internal/dates"
	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/goals"
	"projector/internal/logs"
	"projector/internal/notes"
	"projector/internal/notify"
	"projector/internal/stats"
	"projector/internal/storage"
	"projector/internal/tasks"
	"projector/internal/work"
)

// Workspace holds all loaded services for one data directory
type Workspace struct {
	Config   *config.Config
	Store    storage.Store
	Bus      *events.Bus
	Toasts   *notify.Center
	Session  *auth.Session
	Tasks    tasks.TaskService
	Trending tasks.TrendingService
	Work     work.WorkService
	Goals    goals.GoalService
	Notes    notes.NoteService
	Events   agenda.EventService
	Activity activity.ActivityService
	Monitor  *stats.Monitor

	now     func() time.Time
	watcher *storage.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// Options overrides clocks and randomness, mainly for tests.
type Options struct {
	Now   func() time.Time
	NewID func() string
	Rand  stats.Rand
}

// OpenStore opens the backend selected by cfg.
func OpenStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		s, err := storage.OpenSQLiteStore(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendFile, "":
		s, err := storage.OpenFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Open opens the configured store and loads every service.
func Open(cfg *config.Config) (*Workspace, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	ws, err := Load(cfg, store, Options{})
	if err != nil {
		store.Close()
		return nil, err
	}
	return ws, nil
}

// Load builds the services on top of store. Services read their keys in
// parallel; a missing key is seeded with defaults.
func Load(cfg *config.Config, store storage.Store, opts Options) (*Workspace, error) {
	bus := events.NewBus()
	ws := &Workspace{
		Config:  cfg,
		Store:   store,
		Bus:     bus,
		Toasts:  notify.NewCenter(bus, cfg.ToastDuration()),
		Session: auth.NewSession(store, bus),
		now:     opts.Now,
	}
	if ws.now == nil {
		ws.now = time.Now
	}
	ws.Toasts.SetClock(ws.now)
	ws.Monitor = stats.NewMonitor(opts.Rand, ws.now, bus)

	d := deps.Deps{Store: store, Bus: bus, Now: ws.now, NewID: opts.NewID, Actor: ws.Session.Actor}

	var g errgroup.Group
	g.Go(func() (err error) { ws.Tasks, err = tasks.NewTaskService(d); return })
	g.Go(func() (err error) { ws.Trending, err = tasks.NewTrendingService(d); return })
	g.Go(func() (err error) { ws.Work, err = work.NewWorkService(d); return })
	g.Go(func() (err error) { ws.Goals, err = goals.NewGoalService(d); return })
	g.Go(func() (err error) { ws.Notes, err = notes.NewNoteService(d); return })
	g.Go(func() (err error) { ws.Events, err = agenda.NewEventService(d); return })
	g.Go(func() (err error) { ws.Activity, err = activity.NewActivityService(d); return })
	if err := g.Wait(); err != nil {
		if ws.Activity != nil {
			ws.Activity.Close()
		}
		ws.Toasts.Close()
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	logs.Logger.Infow("workspace loaded", "backend", cfg.Backend, "dataDir", cfg.DataDir)
	return ws, nil
}

// Start runs background work until ctx is done or Close is called: the
// storage watcher for the file backend and the stats monitor.
func (ws *Workspace) Start(ctx context.Context) error {
	if ws.started {
		return errors.New("workspace already started")
	}
	ctx, ws.cancel = context.WithCancel(ctx)
	ws.started = true

	if fs, ok := ws.Store.(*storage.FileStore); ok {
		w, err := storage.NewWatcher(fs.Dir(), 0)
		if err != nil {
			logs.Logger.Warnw("storage watcher unavailable", "error", err)
		} else if err := w.Start(ctx, func(c storage.Change) { ws.Reload(c.Key) }); err != nil {
			logs.Logger.Warnw("storage watcher failed to start", "error", err)
		} else {
			ws.watcher = w
		}
	}

	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		if err := ws.Monitor.Run(ctx); err != nil {
			logs.Logger.Errorw("stats monitor stopped", "error", err)
		}
	}()
	return nil
}

// Reload re-reads key into the service that owns it and announces the
// change. Unknown keys are ignored.
func (ws *Workspace) Reload(key string) {
	var err error
	switch key {
	case storage.KeyTasks:
		err = ws.Tasks.Reload()
	case storage.KeyTrending:
		err = ws.Trending.Reload()
	case storage.KeyWorkItems:
		err = ws.Work.Reload()
	case storage.KeyGoals:
		err = ws.Goals.Reload()
	case storage.KeyNotes:
		err = ws.Notes.Reload()
	case storage.KeyEvents:
		err = ws.Events.Reload()
	case storage.KeyActivity:
		err = ws.Activity.Reload()
	case storage.KeyUser:
		// read through on every access
	default:
		return
	}
	if err != nil {
		logs.Logger.Warnw("reload after storage change failed", "key", key, "error", err)
		return
	}
	logs.Logger.Debugw("reloaded", "key", key)
	ws.Bus.Publish(events.StorageChanged{Key: key})
}

// Close stops background work and releases the store.
func (ws *Workspace) Close() error {
	if ws.cancel != nil {
		ws.cancel()
	}
	if ws.watcher != nil {
		ws.watcher.Stop()
	}
	ws.wg.Wait()
	ws.Activity.Close()
	ws.Toasts.Close()
	return ws.Store.Close()
}

func (ws *Workspace) Now() time.Time { return ws.now() }

// Today is the current civil date in local time.
func (ws *Workspace) Today() dates.Date {
	return dates.Today(ws.now())
}

// Summary computes live counts across the stored lists.
func (ws *Workspace) Summary() stats.Summary {
	return stats.Summarize(ws.Tasks.List(), ws.Goals.List(), ws.Notes.List(), ws.Events.List(), ws.Today())
}

// Space is a top-level work area derived from work item paths such as
// "Publications / Shots / Dribbble".
type Space struct {
	Name     string
	Sections []string
	Items    int
}

// Spaces groups work items by the first two path segments, in first-seen
// order.
func (ws *Workspace) Spaces() []Space {
	return BuildSpaces(ws.Work.List())
}

func BuildSpaces(items []work.Item) []Space {
	var spaces []Space
	index := make(map[string]int)
	for _, it := range items {
		parts := strings.Split(it.Path, "/")
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		i, ok := index[strings.ToLower(name)]
		if !ok {
			i = len(spaces)
			index[strings.ToLower(name)] = i
			spaces = append(spaces, Space{Name: name})
		}
		spaces[i].Items++
		if len(parts) > 1 {
			section := strings.TrimSpace(parts[1])
			if section != "" && !containsFold(spaces[i].Sections, section) {
				spaces[i].Sections = append(spaces[i].Sections, section)
			}
		}
	}
	return spaces
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

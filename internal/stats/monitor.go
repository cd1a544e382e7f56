package stats

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"projector/internal/events"
)

// Rand is the randomness the monitor draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

const activityPoints = 24

// Cards is the state shown by the dashboard stat cards.
type Cards struct {
	WeeklyActivity      float64
	WeeklyChange        float64
	TotalProgress       float64
	TotalProgressChange float64
	TotalTime           float64
	CurrentTime         string
	Week                Week
	ActiveDay           int
	Activity            []int
}

type Week struct {
	Label string
	Days  []int
}

var weeks = []Week{
	{Label: "July 17 - 21", Days: []int{17, 18, 19, 20, 21}},
	{Label: "July 24 - 28", Days: []int{24, 25, 26, 27, 28}},
	{Label: "July 31 - Aug 4", Days: []int{31, 1, 2, 3, 4}},
}

// Monitor simulates live dashboard figures: a wall clock that ticks every
// ClockInterval and a random walk of the percentages every JitterInterval.
type Monitor struct {
	ClockInterval  time.Duration
	JitterInterval time.Duration

	mu      sync.Mutex
	cards   Cards
	week    int
	rnd     Rand
	now     func() time.Time
	bus     *events.Bus
	updates chan Cards
}

// NewMonitor returns a monitor seeded with the default card values. A nil
// rnd uses the global source; a nil now uses time.Now. bus may be nil.
func NewMonitor(rnd Rand, now func() time.Time, bus *events.Bus) *Monitor {
	if rnd == nil {
		rnd = globalRand{}
	}
	if now == nil {
		now = time.Now
	}
	m := &Monitor{
		ClockInterval:  time.Second,
		JitterInterval: 3 * time.Second,
		rnd:            rnd,
		now:            now,
		bus:            bus,
		week:           1,
		updates:        make(chan Cards, 1),
	}
	m.cards = Cards{
		WeeklyActivity:      58,
		WeeklyChange:        3,
		TotalProgress:       55,
		TotalProgressChange: 7,
		TotalTime:           24,
		CurrentTime:         "00:00:00",
		Week:                weeks[1],
		ActiveDay:           26,
		Activity:            make([]int, activityPoints),
	}
	for i := range m.cards.Activity {
		m.cards.Activity[i] = m.point()
	}
	return m
}

func (m *Monitor) point() int { return 20 + m.rnd.IntN(40) }

// Snapshot returns a copy of the current cards.
func (m *Monitor) Snapshot() Cards {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Monitor) snapshot() Cards {
	c := m.cards
	c.Activity = slices.Clone(c.Activity)
	c.Week.Days = slices.Clone(c.Week.Days)
	return c
}

// Updates delivers the latest cards after every change. Only the newest
// unread value is kept.
func (m *Monitor) Updates() <-chan Cards { return m.updates }

// publish must be called with m.mu held.
func (m *Monitor) publish() {
	c := m.snapshot()
	select {
	case <-m.updates:
	default:
	}
	select {
	case m.updates <- c:
	default:
	}
}

// Tick refreshes the wall clock.
func (m *Monitor) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards.CurrentTime = m.now().Format("15:04:05")
	m.publish()
}

func clamp(v, lo, hi float64) float64 {
	return min(max(round1(v), lo), hi)
}

func (m *Monitor) sign(threshold, up, down float64) float64 {
	if m.rnd.Float64() > threshold {
		return up
	}
	return down
}

// Jitter moves every figure one random step, keeping percentages in 30..80
// and their changes in -5..10.
func (m *Monitor) Jitter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &m.cards

	c.WeeklyActivity = clamp(c.WeeklyActivity+m.sign(0.5, 1, -1)*m.rnd.Float64()*2, 30, 80)
	c.WeeklyChange = clamp(c.WeeklyChange+m.sign(0.5, 0.5, -0.5), -5, 10)
	c.TotalProgress = clamp(c.TotalProgress+m.sign(0.5, 1, -0.5)*m.rnd.Float64()*1.5, 30, 80)
	c.TotalProgressChange = clamp(c.TotalProgressChange+m.sign(0.6, 0.5, -0.5), -5, 10)
	if m.rnd.Float64() > 0.8 {
		c.TotalTime = round1(c.TotalTime + 0.1)
	}
	c.Activity = append(c.Activity[1:], m.point())
	m.publish()
}

func (m *Monitor) showWeek(i int, direction string, activity, change, progress func() float64) {
	m.mu.Lock()
	m.week = i
	m.cards.Week = weeks[i]
	m.cards.WeeklyActivity = activity()
	m.cards.WeeklyChange = change()
	m.cards.TotalProgress = progress()
	label := weeks[i].Label
	m.publish()
	m.mu.Unlock()
	m.bus.Notify("Weekly View", fmt.Sprintf("Changed to %s week: %s", direction, label))
}

// PreviousWeek steps back one week and resamples the weekly figures.
func (m *Monitor) PreviousWeek() {
	m.mu.Lock()
	i := max(m.week-1, 0)
	m.mu.Unlock()
	m.showWeek(i, "previous",
		func() float64 { return float64(40 + m.rnd.IntN(30)) },
		func() float64 { return float64(m.rnd.IntN(10) - 2) },
		func() float64 { return float64(30 + m.rnd.IntN(30)) })
}

// NextWeek steps forward one week with projected figures.
func (m *Monitor) NextWeek() {
	m.mu.Lock()
	i := min(m.week+1, len(weeks)-1)
	m.mu.Unlock()
	m.showWeek(i, "next",
		func() float64 { return float64(60 + m.rnd.IntN(20)) },
		func() float64 { return float64(2 + m.rnd.IntN(8)) },
		func() float64 { return float64(60 + m.rnd.IntN(20)) })
}

// SelectDay focuses one day of the current week.
func (m *Monitor) SelectDay(day int) error {
	m.mu.Lock()
	if !slices.Contains(m.cards.Week.Days, day) {
		m.mu.Unlock()
		return fmt.Errorf("day %d is not in week %s", day, m.cards.Week.Label)
	}
	m.cards.ActiveDay = day
	m.cards.TotalTime = float64(day%10 + 15)
	month := "July"
	if m.week == len(weeks)-1 && day < 10 {
		month = "August"
	}
	m.publish()
	m.mu.Unlock()
	m.bus.Notify("Selected Date", fmt.Sprintf("Viewing data for %s %d", month, day))
	return nil
}

// Run drives Tick and Jitter until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.loop(ctx, m.ClockInterval, m.Tick) })
	g.Go(func() error { return m.loop(ctx, m.JitterInterval, m.Jitter) })
	return g.Wait()
}

func (m *Monitor) loop(ctx context.Context, every time.Duration, fn func()) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn()
		}
	}
}

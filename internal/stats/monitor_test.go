package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"projector/internal/events"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixedRand always returns the same draws.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return min(r.n, n-1) }

func TestJitterClamps(t *testing.T) {
	up := NewMonitor(fixedRand{f: 0.99, n: 39}, nil, nil)
	for range 400 {
		up.Jitter()
	}
	c := up.Snapshot()
	assert.Equal(t, 80.0, c.WeeklyActivity)
	assert.Equal(t, 10.0, c.WeeklyChange)
	assert.Equal(t, 80.0, c.TotalProgress)
	assert.Equal(t, 10.0, c.TotalProgressChange)
	assert.InDelta(t, 64.0, c.TotalTime, 1e-9)
	require.Len(t, c.Activity, activityPoints)
	assert.Equal(t, 59, c.Activity[activityPoints-1])

	down := NewMonitor(fixedRand{f: 0.1, n: 0}, nil, nil)
	for range 400 {
		down.Jitter()
	}
	c = down.Snapshot()
	assert.Equal(t, 30.0, c.WeeklyActivity)
	assert.Equal(t, -5.0, c.WeeklyChange)
	assert.Equal(t, 30.0, c.TotalProgress)
	assert.Equal(t, -5.0, c.TotalProgressChange)
	assert.Equal(t, 24.0, c.TotalTime)
	assert.Equal(t, 20, c.Activity[0])
}

func TestJitterOneDecimal(t *testing.T) {
	m := NewMonitor(fixedRand{f: 0.8, n: 5}, nil, nil)
	m.Jitter()
	c := m.Snapshot()
	assert.Equal(t, 59.6, c.WeeklyActivity)
	assert.Equal(t, 3.5, c.WeeklyChange)
	assert.Equal(t, 56.2, c.TotalProgress)
	assert.Equal(t, 7.5, c.TotalProgressChange)
	assert.Equal(t, 24.0, c.TotalTime)
}

func TestTickFormatsClock(t *testing.T) {
	now := time.Date(2025, 4, 16, 9, 5, 7, 0, time.UTC)
	m := NewMonitor(fixedRand{}, func() time.Time { return now }, nil)
	m.Tick()

	select {
	case c := <-m.Updates():
		assert.Equal(t, "09:05:07", c.CurrentTime)
	default:
		t.Fatal("no update delivered")
	}
}

func TestUpdatesKeepsNewest(t *testing.T) {
	m := NewMonitor(fixedRand{f: 0.99, n: 1}, nil, nil)
	m.Jitter()
	m.Jitter()
	c := <-m.Updates()
	assert.Equal(t, m.Snapshot().WeeklyActivity, c.WeeklyActivity)
	select {
	case <-m.Updates():
		t.Fatal("stale update left in channel")
	default:
	}
}

func TestWeekNavigation(t *testing.T) {
	bus := events.NewBus()
	var got []events.Notification
	events.On(bus, func(n events.Notification) { got = append(got, n) })
	m := NewMonitor(fixedRand{n: 3}, nil, bus)

	m.PreviousWeek()
	c := m.Snapshot()
	assert.Equal(t, "July 17 - 21", c.Week.Label)
	assert.Equal(t, 43.0, c.WeeklyActivity)
	assert.Equal(t, 1.0, c.WeeklyChange)
	assert.Equal(t, 33.0, c.TotalProgress)

	m.PreviousWeek()
	assert.Equal(t, "July 17 - 21", m.Snapshot().Week.Label)

	m.NextWeek()
	m.NextWeek()
	assert.Equal(t, "July 31 - Aug 4", m.Snapshot().Week.Label)
	require.NoError(t, m.SelectDay(2))
	assert.Equal(t, 17.0, m.Snapshot().TotalTime)
	assert.Error(t, m.SelectDay(26))

	require.Len(t, got, 5)
	assert.Equal(t, "Changed to previous week: July 17 - 21", got[0].Description)
	assert.Equal(t, "Viewing data for August 2", got[4].Description)
}

func TestRunStopsWithContext(t *testing.T) {
	m := NewMonitor(fixedRand{f: 0.9, n: 1}, nil, nil)
	m.ClockInterval = 5 * time.Millisecond
	m.JitterInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool {
		return m.Snapshot().CurrentTime != "00:00:00"
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalHours(t *testing.T) {
	tests := []struct {
		period Period
		want   float64
	}{
		{Weekly, 35.2},
		{Monthly, 133.2},
		{Yearly, 1585},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalHours(Series(tt.period)), 1e-9)
		})
	}
	assert.Zero(t, TotalHours(nil))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, Weekly, p)

	_, err = ParsePeriod("daily")
	assert.Error(t, err)
	assert.Equal(t, Weekly, Yearly.Next())
}

func TestCompletionRate(t *testing.T) {
	done, total, pct := CompletionRate(TaskHistory())
	assert.Equal(t, 41, done)
	assert.Equal(t, 54, total)
	assert.Equal(t, 76, pct)

	_, _, pct = CompletionRate(nil)
	assert.Zero(t, pct)
}

func TestDayStatus(t *testing.T) {
	assert.Equal(t, DayIdle, DayHistory{Completed: 0, Total: 2}.Status())
	assert.Equal(t, DayComplete, DayHistory{Completed: 10, Total: 10}.Status())
	assert.Equal(t, DayPartial, DayHistory{Completed: 4, Total: 8}.Status())
	assert.Equal(t, DayBehind, DayHistory{Completed: 3, Total: 8}.Status())
}

func TestChallengeLabel(t *testing.T) {
	labels := []string{}
	for _, c := range Challenges() {
		labels = append(labels, c.ActionsLabel())
	}
	assert.Equal(t, []string{"2 recommended actions", "1 recommended action", "No action needed"}, labels)
}

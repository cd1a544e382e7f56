package dates

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	type holder struct {
		Due *Date `json:"dueDate"`
	}

	d := New(2025, time.April, 20)
	data, err := json.Marshal(holder{Due: &d})
	require.NoError(t, err)
	assert.Equal(t, `{"dueDate":"2025-04-20"}`, string(data))

	tests := []struct {
		in   string
		want *Date
	}{
		{`{"dueDate":"2025-04-20"}`, &d},
		{`{"dueDate":"2025-04-20T10:00:00Z"}`, &d},
		{`{"dueDate":null}`, nil},
		{`{}`, nil},
	}
	for _, tt := range tests {
		var h holder
		require.NoError(t, json.Unmarshal([]byte(tt.in), &h), tt.in)
		assert.Equal(t, tt.want, Normalize(h.Due), tt.in)
	}

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":""}`), &h))
	assert.Nil(t, Normalize(h.Due))

	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":"soon"}`), &h))
}

func TestDateArithmetic(t *testing.T) {
	d := New(2025, time.December, 31)
	assert.Equal(t, New(2026, time.January, 1), d.AddDays(1))
	assert.Equal(t, 1, d.DaysBetween(d.AddDays(1)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.Equal(t, "2025-12-31", d.String())
	assert.Equal(t, "", Date{}.String())
}

func TestRelative(t *testing.T) {
	today := New(2025, time.April, 16)
	tests := []struct {
		d    Date
		want string
	}{
		{today, "Today"},
		{today.AddDays(1), "Tomorrow"},
		{New(2025, time.April, 20), "Apr 20"},
		{New(2026, time.January, 3), "Jan 3, 2026"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Relative(tt.d, today))
	}
}

func TestDaysUntil(t *testing.T) {
	today := New(2025, time.April, 16)
	assert.Equal(t, "Overdue", DaysUntil(today.AddDays(-1), today))
	assert.Equal(t, "Due today", DaysUntil(today, today))
	assert.Equal(t, "Due tomorrow", DaysUntil(today.AddDays(1), today))
	assert.Equal(t, "4 days left", DaysUntil(today.AddDays(4), today))
	assert.True(t, Overdue(today.AddDays(-1), today))
	assert.False(t, Overdue(today, today))
}

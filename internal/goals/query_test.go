package goals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"projector/internal/listview"
)

func ids(goals []Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.ID
	}
	return out
}

func sample() []Goal {
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return []Goal{
		{ID: "a", Priority: PriorityLow, DueDate: datePtr(2025, 4, 20), CreatedAt: base},
		{ID: "b", Priority: PriorityHigh, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Priority: PriorityMedium, DueDate: datePtr(2025, 4, 10), Completed: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Priority: PriorityHigh, DueDate: datePtr(2025, 4, 15), CreatedAt: base.Add(3 * time.Hour)},
		{ID: "e", Priority: PriorityLow, CreatedAt: base.Add(4 * time.Hour)},
		{ID: "f", Priority: PriorityMedium, CreatedAt: base.Add(5 * time.Hour)},
	}
}

func TestSortByPriorityDescending(t *testing.T) {
	got := Apply(sample(), Filter{}, Order{Key: SortPriority, Direction: listview.Desc})
	assert.Equal(t, []string{"b", "d", "c", "f", "a", "e"}, ids(got))

	// Strictly high before medium before low.
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Priority.Rank(), got[i].Priority.Rank())
	}
}

func TestSortByPriorityAscending(t *testing.T) {
	got := Apply(sample(), Filter{}, Order{Key: SortPriority, Direction: listview.Asc})
	assert.Equal(t, []string{"a", "e", "c", "f", "b", "d"}, ids(got))
}

func TestNullDueDatesAlwaysLast(t *testing.T) {
	for _, dir := range []listview.Direction{listview.Asc, listview.Desc} {
		got := Apply(sample(), Filter{}, Order{Key: SortDueDate, Direction: dir})
		seenNull := false
		for _, g := range got {
			if g.DueDate == nil {
				seenNull = true
				continue
			}
			assert.False(t, seenNull, "dated goal %s after a null due date (%s)", g.ID, dir)
		}
		assert.Equal(t, []string{"b", "e", "f"}, ids(got)[3:])
	}

	asc := Apply(sample(), Filter{}, Order{Key: SortDueDate, Direction: listview.Asc})
	assert.Equal(t, []string{"c", "d", "a"}, ids(asc)[:3])
	desc := Apply(sample(), Filter{}, Order{Key: SortDueDate, Direction: listview.Desc})
	assert.Equal(t, []string{"a", "d", "c"}, ids(desc)[:3])
}

func TestSortByCreatedAt(t *testing.T) {
	got := Apply(sample(), Filter{}, Order{Key: SortCreatedAt, Direction: listview.Desc})
	assert.Equal(t, []string{"f", "e", "d", "c", "b", "a"}, ids(got))
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{Status: StatusAll, Priority: "all"}, []string{"a", "b", "c", "d", "e", "f"}},
		{"active", Filter{Status: StatusActive}, []string{"a", "b", "d", "e", "f"}},
		{"completed", Filter{Status: StatusCompleted}, []string{"c"}},
		{"high", Filter{Priority: PriorityHigh}, []string{"b", "d"}},
		{"active low", Filter{Status: StatusActive, Priority: PriorityLow}, []string{"a", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample(), tt.filter, Order{})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, CompletionPercentage(nil))
	assert.Equal(t, 17, CompletionPercentage(sample()))
	assert.Equal(t, 67, CompletionPercentage([]Goal{{Completed: true}, {Completed: true}, {}}))
}

func TestParse(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)
	_, err = ParsePriority("urgent")
	assert.Error(t, err)

	k, err := ParseSortKey("createdAt")
	assert.NoError(t, err)
	assert.Equal(t, SortCreatedAt, k)
	_, err = ParseSortKey("title")
	assert.Error(t, err)
}

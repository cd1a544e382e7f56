package listview

import (
	"cmp"
	"testing"
	"time"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"projector/internal/dates"
)

type row struct {
	ID    string
	Rank  int
	Name  string
	Blank bool
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	src := []row{{ID: "a", Rank: 2}, {ID: "b", Rank: 1}, {ID: "c", Rank: 3}}
	before := append([]row(nil), src...)

	out := Apply(src, Query[row]{Compare: func(a, b row) int { return cmp.Compare(a.Rank, b.Rank) }})

	assert.Equal(t, []string{"b", "a", "c"}, ids(out))
	if diff := gocmp.Diff(before, src); diff != "" {
		t.Errorf("source mutated (-want +got):\n%s", diff)
	}
}

func TestApplyStableAndDirection(t *testing.T) {
	src := []row{
		{ID: "1", Rank: 1}, {ID: "2", Rank: 3}, {ID: "3", Rank: 1},
		{ID: "4", Rank: 3}, {ID: "5", Rank: 2},
	}
	byRank := func(a, b row) int { return cmp.Compare(a.Rank, b.Rank) }

	asc := Apply(src, Query[row]{Compare: byRank})
	assert.Equal(t, []string{"1", "3", "5", "2", "4"}, ids(asc))

	desc := Apply(src, Query[row]{Compare: byRank, Direction: Desc})
	assert.Equal(t, []string{"2", "4", "5", "1", "3"}, ids(desc))
}

func TestApplyTrailingIgnoresDirection(t *testing.T) {
	src := []row{
		{ID: "n1", Blank: true}, {ID: "a", Rank: 2}, {ID: "n2", Blank: true}, {ID: "b", Rank: 1},
	}
	q := Query[row]{
		Compare:  func(a, b row) int { return cmp.Compare(a.Rank, b.Rank) },
		Trailing: func(r row) bool { return r.Blank },
	}

	assert.Equal(t, []string{"b", "a", "n1", "n2"}, ids(Apply(src, q)))
	q.Direction = Desc
	assert.Equal(t, []string{"a", "b", "n1", "n2"}, ids(Apply(src, q)))
}

func TestFilterAllPredicatesMustPass(t *testing.T) {
	src := []row{{ID: "a", Rank: 1, Name: "Alpha"}, {ID: "b", Rank: 2, Name: "beta"}, {ID: "c", Rank: 2, Name: "Gamma"}}

	out := Filter(src,
		func(r row) bool { return r.Rank == 2 },
		nil,
		func(r row) bool { return ContainsFold(r.Name, "A") },
	)
	assert.Equal(t, []string{"b", "c"}, ids(out))

	empty := Filter(src, func(row) bool { return false })
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMatchAny(t *testing.T) {
	assert.True(t, MatchAny("", "anything"))
	assert.True(t, MatchAny("  "))
	assert.True(t, MatchAny("DESIGN", "title", "Design Review"))
	assert.False(t, MatchAny("zzz", "title", ""))
	var missing *string
	assert.True(t, ContainsFold(Deref(missing), ""))
	assert.False(t, ContainsFold(Deref(missing), "x"))
}

func TestIsAllAndUnique(t *testing.T) {
	assert.True(t, IsAll(""))
	assert.True(t, IsAll("All"))
	assert.False(t, IsAll("work"))

	src := []row{{Name: "work"}, {Name: ""}, {Name: "home"}, {Name: "work"}}
	assert.Equal(t, []string{"work", "home"}, Unique(src, func(r row) string { return r.Name }))
}

func TestGroupByDay(t *testing.T) {
	now := time.Date(2025, 4, 16, 15, 0, 0, 0, time.UTC)
	type item struct {
		ID string
		At time.Time
	}
	src := []item{
		{"y1", now.Add(-20 * time.Hour)},
		{"t1", now.Add(-1 * time.Hour)},
		{"old", now.AddDate(0, 0, -5)},
		{"t2", now.Add(-2 * time.Hour)},
	}

	groups := GroupByDay(src, func(i item) time.Time { return i.At }, now)

	want := []Group[item]{
		{Label: "Today", Day: dates.New(2025, 4, 16), Items: []item{src[1], src[3]}},
		{Label: "Yesterday", Day: dates.New(2025, 4, 15), Items: []item{src[0]}},
		{Label: "Friday, April 11, 2025", Day: dates.New(2025, 4, 11), Items: []item{src[2]}},
	}
	if diff := gocmp.Diff(want, groups); diff != "" {
		t.Errorf("GroupByDay mismatch (-want +got):\n%s", diff)
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Desc, Asc.Toggle())
	assert.Equal(t, Desc, ParseDirection("DESC"))
	assert.Equal(t, Asc, ParseDirection("anything"))
	assert.Equal(t, "desc", Desc.String())
}

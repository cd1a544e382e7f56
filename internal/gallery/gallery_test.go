package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(shots []Shot) []int {
	out := make([]int, 0, len(shots))
	for _, s := range shots {
		out = append(out, s.ID)
	}
	return out
}

func TestQuery(t *testing.T) {
	dribbble := Shots(Dribbble)

	tests := []struct {
		name string
		f    Filter
		want []int
	}{
		{"zero filter keeps order", Filter{}, []int{1, 2, 3, 4, 5, 6}},
		{"search title", Filter{Search: "banking"}, []int{1, 5}},
		{"search author", Filter{Search: "EMILY"}, []int{2, 6}},
		{"tags any match", Filter{Tags: []string{"mobile", "animation"}}, []int{1, 4, 5}},
		{"popular", Filter{Order: OrderPopular}, []int{4, 1, 2, 5, 3, 6}},
		{"recent", Filter{Order: OrderRecent}, []int{6, 5, 4, 3, 2, 1}},
		{"trending", Filter{Order: OrderTrending}, []int{4, 5, 1, 2, 6, 3}},
		{"most commented", Filter{Order: OrderMostCommented}, []int{4, 1, 5, 2, 6, 3}},
		{"combined", Filter{Search: "e-commerce", Tags: []string{"Redesign"}, Order: OrderPopular}, []int{2, 6}},
		{"no match", Filter{Search: "zzz"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Query(dribbble, tt.f)))
		})
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(dribbble))
}

func TestShotsArePlatformTagged(t *testing.T) {
	behance := Shots(Behance)
	assert.Len(t, behance, 6)
	for _, s := range behance {
		assert.Equal(t, Behance, s.Platform)
		assert.Zero(t, s.Comments)
	}

	behance[0].Tags[0] = "changed"
	assert.Equal(t, "UI/UX", Shots(Behance)[0].Tags[0])
}

func TestToggleTag(t *testing.T) {
	f := Filter{}.ToggleTag("Web").ToggleTag("Mobile")
	assert.Equal(t, []string{"Web", "Mobile"}, f.Tags)
	f = f.ToggleTag("web")
	assert.Equal(t, []string{"Mobile"}, f.Tags)
	assert.False(t, f.IsZero())
	assert.True(t, Filter{Search: " "}.IsZero())
}

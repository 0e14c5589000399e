package filter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/campusboard/pkg/notice"
)

func sample() []notice.Notice {
	return []notice.Notice{
		{ID: 1, Title: "Library Renovation", Description: "Closed Feb 15 to Feb 20", Date: "2026-02-10", Department: "all", Category: "public"},
		{ID: 2, Title: "Mid-Sem Exams", Description: "Schedule published", Date: "2026-02-12", Department: "all", Category: "academic", Urgent: true},
		{ID: 3, Title: "TechSymposium", Description: "Register by Feb 25", Date: "2026-02-14", Department: "cs", Category: "student"},
		{ID: 4, Title: "Placement Drive", Description: "Bring your resume", Date: "2026-02-14", Department: "placement", Category: "placement"},
		{ID: 5, Title: "Power shutdown", Description: "EE labs closed", Date: "2026-02-09", Department: "ee", Category: "public", Urgent: true},
	}
}

func ids(ns []notice.Notice) []int64 {
	out := make([]int64, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.ID)
	}
	return out
}

func TestUrgentBeforeNonUrgent(t *testing.T) {
	in := []notice.Notice{
		{ID: 1, Title: "urgent", Description: "u", Date: "2026-02-12", Department: "all", Category: "public", Urgent: true},
		{ID: 2, Title: "normal", Description: "n", Date: "2026-02-10", Department: "all", Category: "public"},
	}
	got := Notices(in, "", notice.All, notice.All)
	assert.Equal(t, []int64{1, 2}, ids(got))

	// Order of input does not matter for different tiers.
	got = Notices([]notice.Notice{in[1], in[0]}, "", notice.All, notice.All)
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestOrdering(t *testing.T) {
	got := Notices(sample(), "", notice.All, notice.All)
	// Urgent by date desc, then the rest by date desc; 3 and 4 tie and keep input order.
	assert.Equal(t, []int64{2, 5, 3, 4, 1}, ids(got))
}

func TestStableForEqualKeys(t *testing.T) {
	var in []notice.Notice
	for i := 0; i < 20; i++ {
		in = append(in, notice.Notice{ID: int64(i), Title: fmt.Sprint(i), Date: "2026-03-01", Department: "cs", Category: "event"})
	}
	got := Notices(in, "", notice.All, notice.All)
	assert.Equal(t, ids(in), ids(got))
}

func TestFilterPredicates(t *testing.T) {
	tests := []struct {
		name              string
		search, dept, cat string
		want              []int64
	}{
		{name: "title ignores case", search: "LIBRARY", dept: "all", cat: "all", want: []int64{1}},
		{name: "description", search: "resume", dept: "all", cat: "all", want: []int64{4}},
		{name: "department", dept: "cs", cat: "all", want: []int64{3}},
		{name: "department excludes all-department notices", dept: "ee", cat: "all", want: []int64{5}},
		{name: "category", dept: "all", cat: "public", want: []int64{5, 1}},
		{name: "combined", search: "closed", dept: "ee", cat: "public", want: []int64{5}},
		{name: "no match", search: "zzz", dept: "all", cat: "all", want: []int64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Notices(sample(), tc.search, tc.dept, tc.cat)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestExactMatchSet(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	depts := []string{"all", "cs", "ee", "me"}
	cats := []string{"academic", "public", "event"}
	words := []string{"exam", "lab", "fest", "bus"}

	var in []notice.Notice
	for i := 0; i < 200; i++ {
		in = append(in, notice.Notice{
			ID:          int64(i),
			Title:       words[r.Intn(len(words))],
			Description: words[r.Intn(len(words))],
			Date:        fmt.Sprintf("2026-02-%02d", 1+r.Intn(28)),
			Department:  depts[r.Intn(len(depts))],
			Category:    cats[r.Intn(len(cats))],
			Urgent:      r.Intn(4) == 0,
		})
	}

	for _, dept := range append(depts, notice.All) {
		for _, cat := range append(cats, notice.All) {
			for _, term := range append(words, "") {
				got := Notices(in, term, dept, cat)
				want := map[int64]bool{}
				for _, n := range in {
					if n.Matches(term) && (dept == notice.All || n.Department == dept) && (cat == notice.All || n.Category == cat) {
						want[n.ID] = true
					}
				}
				require.Len(t, got, len(want))
				for _, n := range got {
					require.True(t, want[n.ID])
				}
			}
		}
	}
}

func TestSearchTermIsNotTrimmed(t *testing.T) {
	tests := []struct {
		search string
		want   []int64
	}{
		{search: " exams", want: []int64{2}},
		{search: "exams ", want: []int64{}},
		{search: "   ", want: []int64{}},
		{search: "", want: []int64{2, 5, 3, 4, 1}},
	}
	for _, tc := range tests {
		got := Notices(sample(), tc.search, notice.All, notice.All)
		assert.Equal(t, tc.want, ids(got), "search %q", tc.search)
	}
}

func TestDoesNotMutateInput(t *testing.T) {
	in := sample()
	before := ids(in)
	_ = Notices(in, "", notice.All, notice.All)
	assert.Equal(t, before, ids(in))
}

func TestUrgentAndNonUrgent(t *testing.T) {
	assert.Equal(t, []int64{2, 5}, ids(Urgent(sample())))
	assert.Equal(t, []int64{1, 3, 4}, ids(NonUrgent(sample())))
}

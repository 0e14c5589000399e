// Package filter turns the notice collection into the ordered list the board
// displays.
package filter

import (
	"sort"

	"tableflip.dev/campusboard/pkg/notice"
)

// Criteria selects notices. Empty Department or Category behave like "all".
type Criteria struct {
	Search     string
	Department string
	Category   string
}

// Match reports whether n satisfies every predicate of c. The search term
// is used as typed; only the empty term matches everything.
func (c Criteria) Match(n notice.Notice) bool {
	if !n.Matches(c.Search) {
		return false
	}
	if !wildcard(c.Department) && n.Department != c.Department {
		return false
	}
	if !wildcard(c.Category) && n.Category != c.Category {
		return false
	}
	return true
}

// Apply returns the matching notices, urgent first, then newest date first.
// Notices that tie on both keep their input order. The input is not modified.
func (c Criteria) Apply(notices []notice.Notice) []notice.Notice {
	out := make([]notice.Notice, 0, len(notices))
	for _, n := range notices {
		if c.Match(n) {
			out = append(out, n)
		}
	}
	Sort(out)
	return out
}

// Notices filters by search term, department and category and orders the
// result for display.
func Notices(notices []notice.Notice, search, department, category string) []notice.Notice {
	return Criteria{Search: search, Department: department, Category: category}.Apply(notices)
}

// Sort orders notices in place: urgent before non-urgent, then date
// descending. The sort is stable.
func Sort(notices []notice.Notice) {
	sort.SliceStable(notices, func(i, j int) bool {
		a, b := notices[i], notices[j]
		if a.Urgent != b.Urgent {
			return a.Urgent
		}
		// YYYY-MM-DD compares correctly as a string.
		return a.Date > b.Date
	})
}

// Urgent returns the urgent notices in collection order.
func Urgent(notices []notice.Notice) []notice.Notice {
	var out []notice.Notice
	for _, n := range notices {
		if n.Urgent {
			out = append(out, n)
		}
	}
	return out
}

// NonUrgent returns the non-urgent notices in collection order.
func NonUrgent(notices []notice.Notice) []notice.Notice {
	var out []notice.Notice
	for _, n := range notices {
		if !n.Urgent {
			out = append(out, n)
		}
	}
	return out
}

func wildcard(v string) bool {
	return v == "" || v == notice.All
}

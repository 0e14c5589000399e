package board

import (
	"sort"

	"tableflip.dev/campusboard/pkg/notice"
)

// Snapshot is the full exported state.
type Snapshot struct {
	Notices []notice.Notice `json:"notices"`
	Events  []notice.Event  `json:"events"`
	Users   []notice.User   `json:"users"`
}

// Export returns a copy of every collection.
func (b *Board) Export() Snapshot {
	return Snapshot{
		Notices: b.Notices(),
		Events:  b.Events(),
		Users:   b.Users(),
	}
}

// DepartmentCount is one row of the per-department breakdown.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// Analytics summarizes the board contents.
type Analytics struct {
	TotalItems   int               `json:"totalItems"`
	NoticesCount int               `json:"noticesCount"`
	EventsCount  int               `json:"eventsCount"`
	UrgentCount  int               `json:"urgentCount"`
	Departments  []DepartmentCount `json:"departments"`
}

// Analytics counts notices and events, urgent notices, and items per
// department. Items without a department count as "general".
func (b *Board) Analytics() Analytics {
	notices := b.Notices()
	events := b.Events()

	counts := map[string]int{}
	bump := func(dept string) {
		if dept == "" {
			dept = "general"
		}
		counts[dept]++
	}
	a := Analytics{
		TotalItems:   len(notices) + len(events),
		NoticesCount: len(notices),
		EventsCount:  len(events),
	}
	for _, n := range notices {
		if n.Urgent {
			a.UrgentCount++
		}
		bump(n.Department)
	}
	for _, e := range events {
		bump(e.Department)
	}
	for dept, count := range counts {
		a.Departments = append(a.Departments, DepartmentCount{Department: dept, Count: count})
	}
	sort.Slice(a.Departments, func(i, j int) bool {
		if a.Departments[i].Count != a.Departments[j].Count {
			return a.Departments[i].Count > a.Departments[j].Count
		}
		return a.Departments[i].Department < a.Departments[j].Department
	})
	return a
}

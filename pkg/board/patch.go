package board

import "tableflip.dev/campusboard/pkg/notice"

// NoticePatch holds the fields to change on a notice. Nil fields are kept.
type NoticePatch struct {
	Title       *string
	Description *string
	Date        *string
	Department  *string
	Category    *string
	Urgent      *bool
}

func (p NoticePatch) apply(n notice.Notice) notice.Notice {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.Date != nil {
		n.Date = *p.Date
	}
	if p.Department != nil {
		n.Department = *p.Department
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Urgent != nil {
		n.Urgent = *p.Urgent
	}
	return n
}

// EventPatch holds the fields to change on an event. Nil fields are kept.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Venue       *string
}

func (p EventPatch) apply(e notice.Event) notice.Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	return e
}

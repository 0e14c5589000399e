package calendar

import "tableflip.dev/campusboard/pkg/notice"

// Selection is the single selected day of the calendar widget.
type Selection struct {
	date   string
	events []notice.Event
}

// Select replaces any previous selection with date and returns the events on
// that date in collection order.
func (s *Selection) Select(date string, events []notice.Event) []notice.Event {
	s.date = date
	s.events = OnDate(events, date)
	return s.events
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.date = ""
	s.events = nil
}

// Date is the selected date, or "" when nothing is selected.
func (s *Selection) Date() string { return s.date }

// Events are the events computed by the last Select.
func (s *Selection) Events() []notice.Event { return s.events }

// OnDate returns the events whose date equals date.
func OnDate(events []notice.Event, date string) []notice.Event {
	var out []notice.Event
	for _, e := range events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// Upcoming returns up to limit events dated today or later, in collection order.
// A limit of zero or less means no limit.
func Upcoming(events []notice.Event, today string, limit int) []notice.Event {
	var out []notice.Event
	for _, e := range events {
		if e.Date < today {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

package slideshow

import (
	"fmt"

	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/notice"
)

const (
	// MaxEvents is how many events a queue carries.
	MaxEvents = 5
	// MaxNotices is how many non-urgent notices a queue carries.
	MaxNotices = 5
)

// Kind tags what a Slide shows.
type Kind int

const (
	KindNotice Kind = iota
	KindEvent
)

func (k Kind) String() string {
	if k == KindEvent {
		return "event"
	}
	return "notice"
}

// Slide is one entry of the presentation queue. Exactly one of Notice and
// Event is set.
type Slide struct {
	Kind   Kind
	Notice *notice.Notice
	Event  *notice.Event
	Urgent bool
}

// Tag is the badge shown above the slide title.
func (s Slide) Tag() string {
	switch {
	case s.Kind == KindEvent:
		return "EVENT"
	case s.Urgent:
		return "URGENT NOTICE"
	default:
		return "NOTICE"
	}
}

// Title is the slide heading.
func (s Slide) Title() string {
	if s.Kind == KindEvent {
		return s.Event.Title
	}
	return s.Notice.Title
}

// Meta is the line below the title: date and place for events, date and
// department for notices.
func (s Slide) Meta() string {
	if s.Kind == KindEvent {
		e := s.Event
		return fmt.Sprintf("%s | %s | %s", notice.FormatDate(e.Date), notice.FormatTime(e.Time), e.Venue)
	}
	n := s.Notice
	return fmt.Sprintf("%s | %s", notice.FormatDate(n.Date), n.DepartmentName())
}

// Body is the slide text.
func (s Slide) Body() string {
	if s.Kind == KindEvent {
		return s.Event.Description
	}
	return s.Notice.Description
}

// BuildQueue collects every urgent notice, then the first MaxEvents events,
// then the first MaxNotices non-urgent notices. Collection order is kept
// within each group.
func BuildQueue(notices []notice.Notice, events []notice.Event) []Slide {
	urgent := filter.Urgent(notices)
	rest := filter.NonUrgent(notices)
	if len(events) > MaxEvents {
		events = events[:MaxEvents]
	}
	if len(rest) > MaxNotices {
		rest = rest[:MaxNotices]
	}

	queue := make([]Slide, 0, len(urgent)+len(events)+len(rest))
	for i := range urgent {
		n := urgent[i]
		queue = append(queue, Slide{Kind: KindNotice, Notice: &n, Urgent: true})
	}
	for i := range events {
		e := events[i]
		queue = append(queue, Slide{Kind: KindEvent, Event: &e})
	}
	for i := range rest {
		n := rest[i]
		queue = append(queue, Slide{Kind: KindNotice, Notice: &n})
	}
	return queue
}

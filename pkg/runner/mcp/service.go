// Package mcp provides the Model Context Protocol server integration for
// campusboard.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/calendar"
	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/slideshow"
)

// Service exposes board operations to the MCP server.
type Service struct {
	Board *board.Board
	// Now defaults to time.Now.
	Now func() time.Time
}

var (
	// ErrNoticeNotFound is returned when a notice id is unknown.
	ErrNoticeNotFound = errors.New("notice not found")
	// ErrConfirmationRequired is returned by deletes called without confirm.
	ErrConfirmationRequired = errors.New("deletion requires confirm=true")

	errNoBoard = errors.New("board is not configured")
)

// NoticeDTO is a transport-friendly projection of a notice.
type NoticeDTO struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	DateDisplay    string `json:"dateDisplay"`
	Department     string `json:"department"`
	DepartmentName string `json:"departmentName"`
	Category       string `json:"category"`
	Urgent         bool   `json:"urgent"`
}

// EventDTO is a transport-friendly projection of an event.
type EventDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	DateDisplay string `json:"dateDisplay"`
	Time        string `json:"time"`
	TimeDisplay string `json:"timeDisplay"`
	Venue       string `json:"venue"`
}

// MonthDTO is a month grid. Blank leading cells are omitted; LeadingBlanks
// counts them.
type MonthDTO struct {
	Title         string     `json:"title"`
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	LeadingBlanks int        `json:"leadingBlanks"`
	Days          []DayDTO   `json:"days"`
	Events        []EventDTO `json:"events"`
}

// DayDTO is one day of a MonthDTO.
type DayDTO struct {
	Day      int    `json:"day"`
	Date     string `json:"date"`
	HasEvent bool   `json:"hasEvent"`
	IsToday  bool   `json:"isToday"`
}

// SlideDTO is one slideshow queue entry.
type SlideDTO struct {
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Tag      string `json:"tag"`
	Title    string `json:"title"`
	Meta     string `json:"meta"`
	Urgent   bool   `json:"urgent,omitempty"`
}

// AddNoticeOptions captures the parameters used to create a notice.
type AddNoticeOptions struct {
	Title       string
	Description string
	Date        string
	Department  string
	Category    string
	Urgent      bool
}

// AddEventOptions captures the parameters used to create an event.
type AddEventOptions struct {
	Title       string
	Description string
	Date        string
	Time        string
	Venue       string
}

// NewService builds a service over b.
func NewService(b *board.Board) *Service {
	return &Service{Board: b, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ListNotices returns the notices matching criteria in display order.
func (s *Service) ListNotices(_ context.Context, c filter.Criteria) ([]NoticeDTO, error) {
	if s.Board == nil {
		return nil, errNoBoard
	}
	notices := c.Apply(s.Board.Notices())
	out := make([]NoticeDTO, 0, len(notices))
	for _, n := range notices {
		out = append(out, toNoticeDTO(n))
	}
	return out, nil
}

// NoticeByID returns a single notice.
func (s *Service) NoticeByID(_ context.Context, id string) (NoticeDTO, error) {
	if s.Board == nil {
		return NoticeDTO{}, errNoBoard
	}
	n, err := parseID(id)
	if err != nil {
		return NoticeDTO{}, err
	}
	found, ok := s.Board.Notice(n)
	if !ok {
		return NoticeDTO{}, fmt.Errorf("%w: %d", ErrNoticeNotFound, n)
	}
	return toNoticeDTO(found), nil
}

// AddNotice creates a notice. The date defaults to today.
func (s *Service) AddNotice(ctx context.Context, opts AddNoticeOptions) (NoticeDTO, error) {
	if s.Board == nil {
		return NoticeDTO{}, errNoBoard
	}
	draft := notice.Notice{
		Title:       strings.TrimSpace(opts.Title),
		Description: strings.TrimSpace(opts.Description),
		Date:        strings.TrimSpace(opts.Date),
		Department:  strings.TrimSpace(opts.Department),
		Category:    strings.TrimSpace(opts.Category),
		Urgent:      opts.Urgent,
	}
	if draft.Date == "" {
		draft.Date = notice.DateString(s.now())
	}
	n, err := s.Board.AddNotice(ctx, draft)
	if err != nil {
		return NoticeDTO{}, err
	}
	return toNoticeDTO(n), nil
}

// DeleteNotice removes a notice. Missing ids are not an error.
func (s *Service) DeleteNotice(ctx context.Context, id string, confirm bool) error {
	if s.Board == nil {
		return errNoBoard
	}
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if !confirm {
		return ErrConfirmationRequired
	}
	return s.Board.DeleteNotice(ctx, n)
}

// ListEvents returns events in collection order. With upcoming set, only
// events dated today or later are returned.
func (s *Service) ListEvents(_ context.Context, upcoming bool) ([]EventDTO, error) {
	if s.Board == nil {
		return nil, errNoBoard
	}
	events := s.Board.Events()
	if upcoming {
		events = calendar.Upcoming(events, notice.DateString(s.now()), 0)
	}
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	return out, nil
}

// AddEvent creates an event.
func (s *Service) AddEvent(ctx context.Context, opts AddEventOptions) (EventDTO, error) {
	if s.Board == nil {
		return EventDTO{}, errNoBoard
	}
	e, err := s.Board.AddEvent(ctx, notice.Event{
		Title:       strings.TrimSpace(opts.Title),
		Description: strings.TrimSpace(opts.Description),
		Date:        strings.TrimSpace(opts.Date),
		Time:        strings.TrimSpace(opts.Time),
		Venue:       strings.TrimSpace(opts.Venue),
	})
	if err != nil {
		return EventDTO{}, err
	}
	return toEventDTO(e), nil
}

// DeleteEvent removes an event. Missing ids are not an error.
func (s *Service) DeleteEvent(ctx context.Context, id string, confirm bool) error {
	if s.Board == nil {
		return errNoBoard
	}
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if !confirm {
		return ErrConfirmationRequired
	}
	return s.Board.DeleteEvent(ctx, n)
}

// Month returns the grid for a YYYY-MM month, or the current month when
// month is empty.
func (s *Service) Month(_ context.Context, month string) (MonthDTO, error) {
	if s.Board == nil {
		return MonthDTO{}, errNoBoard
	}
	now := s.now()
	year, m := now.Year(), now.Month()
	if strings.TrimSpace(month) != "" {
		var ok bool
		year, m, ok = calendar.ParseMonth(strings.TrimSpace(month))
		if !ok {
			return MonthDTO{}, fmt.Errorf("invalid month %q, want YYYY-MM", month)
		}
	}
	events := s.Board.Events()
	g := calendar.BuildMonthGrid(year, m, events, now)
	dto := MonthDTO{
		Title:         g.Title(),
		Year:          g.Year,
		Month:         int(g.Month),
		LeadingBlanks: g.LeadingBlanks,
		Events:        []EventDTO{},
	}
	for _, c := range g.Cells {
		if c.Blank() {
			continue
		}
		dto.Days = append(dto.Days, DayDTO{Day: c.Day, Date: c.Date, HasEvent: c.HasEvent, IsToday: c.IsToday})
		for _, e := range calendar.OnDate(events, c.Date) {
			dto.Events = append(dto.Events, toEventDTO(e))
		}
	}
	return dto, nil
}

// SlideQueue returns the queue a slideshow started now would present.
func (s *Service) SlideQueue(_ context.Context) ([]SlideDTO, error) {
	if s.Board == nil {
		return nil, errNoBoard
	}
	queue := slideshow.BuildQueue(s.Board.Notices(), s.Board.Events())
	out := make([]SlideDTO, 0, len(queue))
	for i, sl := range queue {
		out = append(out, SlideDTO{
			Position: i,
			Kind:     sl.Kind.String(),
			Tag:      sl.Tag(),
			Title:    sl.Title(),
			Meta:     sl.Meta(),
			Urgent:   sl.Urgent,
		})
	}
	return out, nil
}

// Analytics summarizes the board.
func (s *Service) Analytics(_ context.Context) (board.Analytics, error) {
	if s.Board == nil {
		return board.Analytics{}, errNoBoard
	}
	return s.Board.Analytics(), nil
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", id)
	}
	return n, nil
}

func toNoticeDTO(n notice.Notice) NoticeDTO {
	return NoticeDTO{
		ID:             n.ID,
		Title:          n.Title,
		Description:    n.Description,
		Date:           n.Date,
		DateDisplay:    notice.FormatDate(n.Date),
		Department:     n.Department,
		DepartmentName: n.DepartmentName(),
		Category:       n.Category,
		Urgent:         n.Urgent,
	}
}

func toEventDTO(e notice.Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		DateDisplay: notice.FormatDate(e.Date),
		Time:        e.Time,
		TimeDisplay: notice.FormatTime(e.Time),
		Venue:       e.Venue,
	}
}

package options

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/notice"
)

// NoticeOptions holds the fields of a new notice.
type NoticeOptions struct {
	Title       string
	Description string
	Department  string
	Category    string
	Date        string
	Urgent      bool
}

func AddNoticeArgs(cmd *cobra.Command, o *NoticeOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "m", "",
		"Notice body text.")
	cmd.Flags().StringVarP(&o.Department, "dept", "d", notice.All,
		"Department the notice targets.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "academic",
		"Notice category.")
	cmd.Flags().StringVar(&o.Date, "on", "",
		`Date of the notice, example: --on="2026-02-28". Defaults to today.`)
	cmd.Flags().BoolVarP(&o.Urgent, "urgent", "u", false,
		"Flag the notice as urgent.")

	_ = cmd.RegisterFlagCompletionFunc("dept", fixedCompletions(notice.DepartmentFilters()))
	_ = cmd.RegisterFlagCompletionFunc("category", fixedCompletions(notice.Categories()))
}

// Notice builds the draft; an empty date becomes today.
func (o *NoticeOptions) Notice(now time.Time) notice.Notice {
	date := o.Date
	if date == "" {
		date = notice.DateString(now)
	}
	return notice.Notice{
		Title:       o.Title,
		Description: o.Description,
		Department:  o.Department,
		Category:    o.Category,
		Date:        date,
		Urgent:      o.Urgent,
	}
}

// EventOptions holds the fields of a new event.
type EventOptions struct {
	Title       string
	Description string
	Date        string
	Time        string
	Venue       string
	Department  string
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "m", "",
		"Event description.")
	cmd.Flags().StringVar(&o.Date, "on", "",
		`Date of the event, example: --on="2026-02-28".`)
	cmd.Flags().StringVarP(&o.Time, "at", "t", "",
		`24-hour start time, example: --at="14:00".`)
	cmd.Flags().StringVarP(&o.Venue, "venue", "v", "",
		"Where the event takes place.")
	cmd.Flags().StringVarP(&o.Department, "dept", "d", "",
		"Department hosting the event.")
	_ = cmd.MarkFlagRequired("on")
	_ = cmd.MarkFlagRequired("at")
	_ = cmd.RegisterFlagCompletionFunc("dept", fixedCompletions(notice.DepartmentFilters()))
}

// Event builds the draft.
func (o *EventOptions) Event() notice.Event {
	return notice.Event{
		Title:       o.Title,
		Description: o.Description,
		Date:        o.Date,
		Time:        o.Time,
		Venue:       o.Venue,
		Department:  o.Department,
	}
}

// ConfirmOptions guards destructive commands.
type ConfirmOptions struct {
	Yes bool
}

// ErrNotConfirmed is returned when a destructive command runs without --yes.
var ErrNotConfirmed = errors.New("refusing to delete without --yes")

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Confirm the deletion.")
}

func (o *ConfirmOptions) Check() error {
	if !o.Yes {
		return ErrNotConfirmed
	}
	return nil
}

// Package notice defines the records shown on the campus board.
package notice

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Notice is an announcement shown on the board, optionally flagged urgent.
type Notice struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required,isodate"`
	Department  string `json:"department" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Urgent      bool   `json:"urgent"`
}

// UnmarshalJSON accepts the legacy "desc" field written by older seed data.
func (n *Notice) UnmarshalJSON(b []byte) error {
	type plain Notice
	aux := struct {
		*plain
		Desc string `json:"desc"`
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if n.Description == "" {
		n.Description = aux.Desc
	}
	return nil
}

// DepartmentName is the display name of the notice's department.
func (n Notice) DepartmentName() string {
	return DepartmentName(n.Department)
}

// Matches reports whether term appears in the title or description, ignoring case.
func (n Notice) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Description), term)
}

func (n Notice) String() string {
	if n.Urgent {
		return fmt.Sprintf("! %s (%s, %s)", n.Title, n.DepartmentName(), n.Date)
	}
	return fmt.Sprintf("  %s (%s, %s)", n.Title, n.DepartmentName(), n.Date)
}

// Event is a scheduled happening with a date, time and venue.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date" validate:"required,isodate"`
	Time        string `json:"time" validate:"required,clock"`
	Venue       string `json:"venue" validate:"required"`
	Department  string `json:"department,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UnmarshalJSON accepts the legacy "desc" field written by older seed data.
func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	aux := struct {
		*plain
		Desc string `json:"desc"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if e.Description == "" {
		e.Description = aux.Desc
	}
	return nil
}

func (e Event) String() string {
	return fmt.Sprintf("%s @ %s %s (%s)", e.Title, e.Date, FormatTime(e.Time), e.Venue)
}

// User is a registered board account. Passwords are stored and compared in
// plain text; the board is not a security boundary.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Role       Role   `json:"role" validate:"required,role"`
	Department string `json:"department,omitempty"`
}

// UnmarshalJSON accepts the legacy "dept" field.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		Dept string `json:"dept"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.Department == "" {
		u.Department = aux.Dept
	}
	return nil
}

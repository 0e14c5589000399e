package notice

import "strings"

// All is the wildcard used by department and category filters.
const All = "all"

// Role is the session role selected at login.
type Role string

const (
	RoleNone    Role = ""
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Roles lists the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleStudent, RoleFaculty, RoleAdmin}
}

// ParseRole maps user input to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleFaculty:
		return RoleFaculty, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return RoleNone, false
	}
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// Department is one entry of the fixed department vocabulary.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var departments = []Department{
	{ID: "cs", Name: "Computer Science"},
	{ID: "ee", Name: "Electrical Eng."},
	{ID: "me", Name: "Mechanical Eng."},
	{ID: "admin", Name: "Administration"},
	{ID: "exam", Name: "Examination Cell"},
	{ID: "placement", Name: "Placement Cell"},
}

// Departments returns the fixed department set.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// DepartmentName returns the display name for id, or "General" when unknown.
func DepartmentName(id string) string {
	if id == All {
		return "All Departments"
	}
	for _, d := range departments {
		if d.ID == id {
			return d.Name
		}
	}
	return "General"
}

// Categories returns the fixed category vocabulary.
func Categories() []string {
	return []string{"academic", "event", "holiday", "placement", "public", "student", "faculty"}
}

// DepartmentFilters returns "all" followed by every department id.
func DepartmentFilters() []string {
	out := []string{All}
	for _, d := range departments {
		out = append(out, d.ID)
	}
	return out
}

// CategoryFilters returns "all" followed by every category.
func CategoryFilters() []string {
	return append([]string{All}, Categories()...)
}

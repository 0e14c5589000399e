// Package key prints the department and category vocabulary.
package key

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/campusboard/pkg/notice"
)

// Key prints the ids accepted by --dept and --category.
type Key struct {
	JSON bool
	Out  io.Writer
}

// Vocabulary is the JSON form of the key.
type Vocabulary struct {
	Departments []notice.Department `json:"departments"`
	Categories  []string            `json:"categories"`
	Roles       []notice.Role       `json:"roles"`
}

// Do renders the department and category keys.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	if k.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(Vocabulary{
			Departments: notice.Departments(),
			Categories:  notice.Categories(),
			Roles:       notice.Roles(),
		})
	}
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintln(out, "")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Department"), bold.Sprint("Name"))
	tbl.AddRow(notice.All, notice.DepartmentName(notice.All))
	for _, d := range notice.Departments() {
		tbl.AddRow(d.ID, d.Name)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")

	cats := uitable.New()
	cats.Separator = "  "
	cats.AddRow(bold.Sprint("  Category"))
	for _, c := range notice.Categories() {
		cats.AddRow(c)
	}
	cats.RightAlign(0)
	_, _ = fmt.Fprintln(out, cats)
	_, _ = fmt.Fprintln(out, "")

	roles := uitable.New()
	roles.Separator = "  "
	roles.AddRow(bold.Sprint("      Role"))
	for _, r := range notice.Roles() {
		roles.AddRow(r.String())
	}
	roles.RightAlign(0)
	_, _ = fmt.Fprintln(out, roles)
	_, _ = fmt.Fprintln(out, "")
	return nil
}

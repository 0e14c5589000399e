package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/notice"
)

// FilterOptions narrows the notice list.
type FilterOptions struct {
	Search     string
	Department string
	Category   string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only notices whose title or description contains this text.")
	cmd.Flags().StringVarP(&o.Department, "dept", "d", notice.All,
		"Department filter, one of "+joinVocab(notice.DepartmentFilters())+".")
	cmd.Flags().StringVarP(&o.Category, "category", "c", notice.All,
		"Category filter, one of "+joinVocab(notice.CategoryFilters())+".")

	_ = cmd.RegisterFlagCompletionFunc("dept", fixedCompletions(notice.DepartmentFilters()))
	_ = cmd.RegisterFlagCompletionFunc("category", fixedCompletions(notice.CategoryFilters()))
}

// Criteria validates the flags and converts them for the filter package.
func (o *FilterOptions) Criteria() (filter.Criteria, error) {
	if !contains(notice.DepartmentFilters(), o.Department) {
		return filter.Criteria{}, fmt.Errorf("unknown department %q", o.Department)
	}
	if !contains(notice.CategoryFilters(), o.Category) {
		return filter.Criteria{}, fmt.Errorf("unknown category %q", o.Category)
	}
	return filter.Criteria{
		Search:     o.Search,
		Department: o.Department,
		Category:   o.Category,
	}, nil
}

package admin

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"blogadmin/app/repositories"

	"gorm.io/gorm"
)

// ChangeListPage is one page of a filtered, ordered list view.
type ChangeListPage struct {
	Meta    Meta   `json:"meta"`
	Rows    []Row  `json:"rows"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Query   string `json:"query,omitempty"`
}

// Row is one object rendered through the column config.
type Row struct {
	PK    uint   `json:"pk"`
	Cells []Cell `json:"cells"`
}

// Cell carries the plain value and, for computed columns, the
// presentation HTML.
type Cell struct {
	Name  string        `json:"name"`
	Value any           `json:"value,omitempty"`
	HTML  template.HTML `json:"html,omitempty"`
}

// Changelist runs the list query for the request parameters:
// q (search), p (page), o (signed 1-based column index to order by),
// year/month/day (date drill-down) and any declared filter params.
// The whole thing is one database query per page plus a count; the
// declared relations are joined up front.
func (a *ModelAdmin[T]) Changelist(db *gorm.DB, params url.Values) (*ChangeListPage, error) {
	opts := repositories.ListOptions{
		Search:       params.Get("q"),
		SearchFields: a.SearchFields,
		Joins:        a.SelectRelated,
		OrderBy:      a.Ordering,
		DateField:    a.DateHierarchy,
	}

	for _, f := range a.ListFilters {
		if v := params.Get(f.Param()); v != "" {
			if clause, join, ok := f.Clause(v); ok {
				opts.Filters = append(opts.Filters, clause)
				if join != "" {
					opts.Joins = append(opts.Joins, join)
				}
			}
		}
	}

	// direct foreign-key filters, used by cross-admin links such as
	// "all posts by this author" (?author_id=N)
	for _, fk := range a.FKFilters {
		if v := params.Get(fk); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad %s: %q", fk, v)
			}
			opts.Filters = append(opts.Filters, repositories.Clause{
				Cond: repositories.ColumnRef(a.Table, fk) + " = ?",
				Args: []any{id},
			})
		}
	}

	if o := params.Get("o"); o != "" {
		idx, err := strconv.Atoi(o)
		if err != nil || idx == 0 {
			return nil, fmt.Errorf("bad ordering parameter %q", o)
		}
		desc := idx < 0
		if desc {
			idx = -idx
		}
		if idx > len(a.ListDisplay) {
			return nil, fmt.Errorf("ordering index %d out of range", idx)
		}
		col := a.ListDisplay[idx-1]
		if col.Sort == "" {
			return nil, fmt.Errorf("column %q is not sortable", col.Name)
		}
		opts.OrderBy = col.Sort
		if desc {
			opts.OrderBy += " DESC"
		}
	}

	opts.Year = atoiParam(params, "year")
	opts.Month = atoiParam(params, "month")
	opts.Day = atoiParam(params, "day")

	page := atoiParam(params, "p")
	if page < 1 {
		page = 1
	}
	perPage := a.perPage()
	opts.Limit = perPage
	opts.Offset = (page - 1) * perPage

	var total int64
	countOpts := opts
	countOpts.OrderBy = ""
	countOpts.Limit = 0
	countOpts.Offset = 0
	if err := countOpts.Apply(db.Model(a.New()), a.Table).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []T
	if err := opts.Apply(db.Model(a.New()), a.Table).Find(&items).Error; err != nil {
		return nil, err
	}

	pageOut := &ChangeListPage{
		Meta:    a.Meta(),
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Query:   opts.Search,
		Rows:    make([]Row, 0, len(items)),
	}
	for i := range items {
		obj := &items[i]
		row := Row{PK: a.PK(obj), Cells: make([]Cell, 0, len(a.ListDisplay))}
		for _, col := range a.ListDisplay {
			cell := Cell{Name: col.Name}
			if col.Value != nil {
				cell.Value = col.Value(obj)
			}
			if col.Render != nil {
				cell.HTML = col.Render(a.site, obj)
			}
			row.Cells = append(row.Cells, cell)
		}
		pageOut.Rows = append(pageOut.Rows, row)
	}
	return pageOut, nil
}

func atoiParam(params url.Values, name string) int {
	n, _ := strconv.Atoi(params.Get(name))
	return n
}

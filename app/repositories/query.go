package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Clause is a raw WHERE fragment with its arguments.
type Clause struct {
	Cond string
	Args []any
}

// ListOptions describes a changelist-style query: free-text search
// over a set of fields (related fields spelled "rel__column"), extra
// filter clauses, a raw ORDER BY expression, joined relations, a
// date drill-down and paging. Everything is evaluated by the
// database, never by loading rows into memory.
type ListOptions struct {
	Search       string
	SearchFields []string
	Filters      []Clause
	Joins        []string
	OrderBy      string
	DateField    string
	Year         int
	Month        int
	Day          int
	Limit        int
	Offset       int
}

// ColumnRef resolves a field spec to a quoted SQL column reference.
// Plain fields qualify against the model's own table; "rel__column"
// specs qualify against the relation's join alias, which gorm names
// after the exported struct field ("author__username" joins as
// "Author"."username").
func ColumnRef(table, field string) string {
	if rel, col, ok := strings.Cut(field, "__"); ok {
		return fmt.Sprintf("%q.%q", exportedName(rel), col)
	}
	return fmt.Sprintf("%q.%q", table, field)
}

// RelationName maps a field spec like "author__username" onto the
// gorm relation it needs joined, or "" for a plain field.
func RelationName(field string) string {
	if rel, _, ok := strings.Cut(field, "__"); ok {
		return exportedName(rel)
	}
	return ""
}

func exportedName(rel string) string {
	if rel == "" {
		return rel
	}
	return strings.ToUpper(rel[:1]) + rel[1:]
}

// Apply builds the query for the options on top of db. The ORDER BY
// expression is trusted: it only ever comes from column declarations
// in the admin configuration, never from request input.
func (o ListOptions) Apply(db *gorm.DB, table string) *gorm.DB {
	joined := map[string]bool{}
	join := func(rel string) {
		if rel != "" && !joined[rel] {
			db = db.Joins(rel)
			joined[rel] = true
		}
	}
	for _, rel := range o.Joins {
		join(exportedName(rel))
	}

	if o.Search != "" && len(o.SearchFields) > 0 {
		conds := make([]string, 0, len(o.SearchFields))
		args := make([]any, 0, len(o.SearchFields))
		for _, f := range o.SearchFields {
			join(RelationName(f))
			conds = append(conds, ColumnRef(table, f)+" LIKE ?")
			args = append(args, "%"+o.Search+"%")
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}

	for _, c := range o.Filters {
		db = db.Where(c.Cond, c.Args...)
	}

	if o.DateField != "" && o.Year > 0 {
		col := ColumnRef(table, o.DateField)
		db = db.Where(fmt.Sprintf("strftime('%%Y', %s) = ?", col), fmt.Sprintf("%04d", o.Year))
		if o.Month > 0 {
			db = db.Where(fmt.Sprintf("strftime('%%m', %s) = ?", col), fmt.Sprintf("%02d", o.Month))
		}
		if o.Day > 0 {
			db = db.Where(fmt.Sprintf("strftime('%%d', %s) = ?", col), fmt.Sprintf("%02d", o.Day))
		}
	}

	if o.OrderBy != "" {
		db = db.Order(o.OrderBy)
	}
	if o.Limit > 0 {
		db = db.Limit(o.Limit).Offset(o.Offset)
	}
	return db
}

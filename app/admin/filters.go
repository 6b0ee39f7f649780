package admin

import (
	"strings"

	"blogadmin/app/repositories"
)

// Choice is one selectable filter state.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Filter narrows a changelist. Implementations translate the request
// parameter value into a WHERE clause plus the relation it needs
// joined.
type Filter interface {
	Param() string
	Title() string
	Choices() []Choice
	Clause(value string) (clause repositories.Clause, join string, ok bool)
}

// BooleanFilter is the stock three-state filter (any / yes / no) over
// a boolean field, which may live on a related entity
// ("author__is_active"). TitleOverride relabels it without changing
// the semantics.
type BooleanFilter struct {
	Table         string
	FieldSpec     string
	TitleOverride string
}

func (f *BooleanFilter) Param() string { return f.FieldSpec }

func (f *BooleanFilter) Title() string {
	if f.TitleOverride != "" {
		return f.TitleOverride
	}
	return strings.ReplaceAll(strings.ReplaceAll(f.FieldSpec, "__", " "), "_", " ")
}

func (f *BooleanFilter) Choices() []Choice {
	return []Choice{
		{Value: "", Label: "any"},
		{Value: "1", Label: "yes"},
		{Value: "0", Label: "no"},
	}
}

// Clause builds the WHERE fragment. A filter over a nullable related
// field compares against the joined row, so rows without the relation
// (NULL) match neither "1" nor "0".
func (f *BooleanFilter) Clause(value string) (repositories.Clause, string, bool) {
	col := repositories.ColumnRef(f.Table, f.FieldSpec)
	join := repositories.RelationName(f.FieldSpec)
	switch value {
	case "1":
		return repositories.Clause{Cond: col + " = ?", Args: []any{true}}, join, true
	case "0":
		return repositories.Clause{Cond: col + " = ?", Args: []any{false}}, join, true
	default:
		return repositories.Clause{}, "", false
	}
}

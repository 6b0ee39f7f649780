package admin

import (
	"html/template"
	"io"
	"net/url"

	"blogadmin/app/models"

	"gorm.io/gorm"
)

// Entry is the model-independent surface of a registered admin,
// consumed by the HTTP layer.
type Entry interface {
	AppLabel() string
	ModelName() string
	Meta() Meta
	Changelist(db *gorm.DB, params url.Values) (*ChangeListPage, error)
	Change(db *gorm.DB, pk uint) (*ChangeView, error)
	Save(db *gorm.DB, pk uint, body io.Reader, actor *models.User) (uint, ValidationErrors, error)
	Delete(db *gorm.DB, pk uint) error
	RunAction(db *gorm.DB, name string, pks []uint) (*ActionResult, error)
	Autocomplete(db *gorm.DB, term string, limit int) ([]Option, error)
	HasSearch() bool

	bind(site *Site)
}

// Validator is implemented by the models; a save that fails it is
// aborted and reported per field.
type Validator interface {
	Validate() error
}

// Column describes one changelist column. A column backed by a stored
// field sets Field; a computed column supplies Render (and, when it
// must be sortable, an explicit Sort expression evaluated by the
// database, since result sets are assumed too large to sort in
// memory).
type Column[T any] struct {
	Name  string
	Title string
	// Sort is a raw ORDER BY fragment, e.g. a string concatenation of
	// name parts. Empty means the column is not sortable.
	Sort string
	// Value produces the plain cell value.
	Value func(obj *T) any
	// Render, when set, produces a hyperlink or styled presentation
	// value instead of the plain one.
	Render func(site *Site, obj *T) template.HTML
}

// ReadonlyField is a computed, non-editable field shown on the change
// view. Unlike list columns it may query, e.g. to count related rows.
type ReadonlyField[T any] struct {
	Name   string
	Title  string
	Render func(site *Site, db *gorm.DB, obj *T) template.HTML
}

// Inline nests related rows into a change view. There is no paging
// inside an inline, so it is only suitable for small result sets; a
// documented limitation, not a defect.
type Inline struct {
	Name  string
	Fetch func(db *gorm.DB, pk uint) (any, error)
}

// ModelAdmin is the declarative configuration for one model. The
// zero value of most fields simply disables the corresponding
// behavior.
type ModelAdmin[T any] struct {
	App   string
	Model string
	Table string

	// New returns a fresh object carrying the model's defaults; form
	// input is decoded over it so absent fields keep their defaults.
	New   func() *T
	PK    func(obj *T) uint
	Label func(obj *T) string

	ListDisplay []Column[T]
	ListFilters []Filter
	// FKFilters are foreign-key columns the changelist accepts as
	// direct query filters, for links from other admins.
	FKFilters     []string
	SearchFields  []string
	DateHierarchy string
	// SelectRelated joins these relations for list rendering so
	// related columns don't cost one query per row.
	SelectRelated []string
	Ordering      string
	PerPage       int

	// Widget hints for foreign keys with very many candidate targets:
	// neither may be rendered as a full dropdown.
	AutocompleteFields []string
	RawIDFields        []string

	ReadonlyFields []ReadonlyField[T]
	Inlines        []Inline
	Actions        []Action[T]

	// SaveHook runs before validation on every save through this
	// admin, with the acting operator.
	SaveHook func(actor *models.User, obj *T) error

	site *Site
}

func (a *ModelAdmin[T]) AppLabel() string  { return a.App }
func (a *ModelAdmin[T]) ModelName() string { return a.Model }
func (a *ModelAdmin[T]) HasSearch() bool   { return len(a.SearchFields) > 0 }
func (a *ModelAdmin[T]) bind(site *Site)   { a.site = site }

func (a *ModelAdmin[T]) perPage() int {
	if a.PerPage > 0 {
		return a.PerPage
	}
	return 100
}

// Meta is the static description of an admin, embedded in responses
// so a generic client can render the page chrome.
type Meta struct {
	App                string       `json:"app"`
	Model              string       `json:"model"`
	Columns            []ColumnMeta `json:"columns"`
	Filters            []FilterMeta `json:"filters"`
	SearchEnabled      bool         `json:"search_enabled"`
	DateHierarchy      string       `json:"date_hierarchy,omitempty"`
	AutocompleteFields []string     `json:"autocomplete_fields,omitempty"`
	RawIDFields        []string     `json:"raw_id_fields,omitempty"`
	Actions            []ActionMeta `json:"actions"`
}

// ColumnMeta describes a column to the client; Index is what the "o"
// ordering parameter refers to (1-based, negative for descending).
type ColumnMeta struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Sortable bool   `json:"sortable"`
}

// FilterMeta describes a filter and its choices.
type FilterMeta struct {
	Param   string   `json:"param"`
	Title   string   `json:"title"`
	Choices []Choice `json:"choices"`
}

// ActionMeta names a bulk action.
type ActionMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *ModelAdmin[T]) Meta() Meta {
	m := Meta{
		App:                a.App,
		Model:              a.Model,
		SearchEnabled:      a.HasSearch(),
		DateHierarchy:      a.DateHierarchy,
		AutocompleteFields: a.AutocompleteFields,
		RawIDFields:        a.RawIDFields,
	}
	for i, col := range a.ListDisplay {
		m.Columns = append(m.Columns, ColumnMeta{
			Index:    i + 1,
			Name:     col.Name,
			Title:    col.Title,
			Sortable: col.Sort != "",
		})
	}
	for _, f := range a.ListFilters {
		m.Filters = append(m.Filters, FilterMeta{
			Param:   f.Param(),
			Title:   f.Title(),
			Choices: f.Choices(),
		})
	}
	for _, act := range a.Actions {
		m.Actions = append(m.Actions, ActionMeta{Name: act.Name, Description: act.Description})
	}
	m.Actions = append(m.Actions, ActionMeta{Name: deleteSelected, Description: "Delete selected"})
	return m
}

// Option is one autocomplete suggestion.
type Option struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// ValidationErrors maps a field to its messages.
type ValidationErrors map[string][]string

package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"

	"blogadmin/app/models"
	"blogadmin/app/repositories"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = errors.New("object not found")
	ErrBadInput = errors.New("malformed input")
)

// ChangeView is the edit-view payload: the object itself, rendered
// readonly fields, widget hints and any configured inlines.
type ChangeView struct {
	Meta     Meta                     `json:"meta"`
	PK       uint                     `json:"pk"`
	Object   any                      `json:"object"`
	Readonly map[string]template.HTML `json:"readonly,omitempty"`
	Inlines  map[string]any           `json:"inlines,omitempty"`
}

func (a *ModelAdmin[T]) get(db *gorm.DB, pk uint) (*T, error) {
	obj := new(T)
	q := db
	for _, rel := range a.SelectRelated {
		q = q.Joins(rel)
	}
	err := q.First(obj, fmt.Sprintf("%q.\"id\" = ?", a.Table), pk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Change loads the edit view for one object.
func (a *ModelAdmin[T]) Change(db *gorm.DB, pk uint) (*ChangeView, error) {
	obj, err := a.get(db, pk)
	if err != nil {
		return nil, err
	}
	view := &ChangeView{
		Meta:   a.Meta(),
		PK:     a.PK(obj),
		Object: obj,
	}
	if len(a.ReadonlyFields) > 0 {
		view.Readonly = map[string]template.HTML{}
		for _, field := range a.ReadonlyFields {
			view.Readonly[field.Name] = field.Render(a.site, db, obj)
		}
	}
	if len(a.Inlines) > 0 {
		view.Inlines = map[string]any{}
		for _, inline := range a.Inlines {
			rows, err := inline.Fetch(db, pk)
			if err != nil {
				return nil, err
			}
			view.Inlines[inline.Name] = rows
		}
	}
	return view, nil
}

// Save decodes the submitted fields over the object (a fresh one with
// model defaults for pk 0, the stored one otherwise), runs the save
// hook with the acting operator, validates, and persists. Validation
// failures abort the save and come back per field; nothing is
// written.
func (a *ModelAdmin[T]) Save(db *gorm.DB, pk uint, body io.Reader, actor *models.User) (uint, ValidationErrors, error) {
	var obj *T
	if pk == 0 {
		obj = a.New()
	} else {
		var err error
		obj, err = a.get(db, pk)
		if err != nil {
			return 0, nil, err
		}
	}

	if err := json.NewDecoder(body).Decode(obj); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}

	if a.SaveHook != nil {
		if err := a.SaveHook(actor, obj); err != nil {
			return 0, nil, err
		}
	}

	if v, ok := any(obj).(Validator); ok {
		if err := v.Validate(); err != nil {
			if fields := fieldErrors(err); fields != nil {
				return 0, fields, nil
			}
			return 0, nil, err
		}
	}

	// associations may be loaded on the object for rendering; only
	// the row itself is written
	tx := db.Omit(clause.Associations)
	if pk == 0 {
		if err := tx.Create(obj).Error; err != nil {
			return 0, nil, err
		}
	} else {
		if err := tx.Save(obj).Error; err != nil {
			return 0, nil, err
		}
	}
	return a.PK(obj), nil, nil
}

// Delete removes one object through the admin.
func (a *ModelAdmin[T]) Delete(db *gorm.DB, pk uint) error {
	res := db.Delete(a.New(), pk)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Autocomplete serves the popup-search endpoint other admins point
// their large foreign-key widgets at. Only admins with search fields
// expose it.
func (a *ModelAdmin[T]) Autocomplete(db *gorm.DB, term string, limit int) ([]Option, error) {
	if !a.HasSearch() {
		return nil, fmt.Errorf("%s_%s has no search fields", a.App, a.Model)
	}
	if limit <= 0 {
		limit = 20
	}
	opts := repositories.ListOptions{
		Search:       term,
		SearchFields: a.SearchFields,
		OrderBy:      a.Ordering,
		Limit:        limit,
	}
	var items []T
	if err := opts.Apply(db.Model(a.New()), a.Table).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(items))
	for i := range items {
		obj := &items[i]
		out = append(out, Option{ID: a.PK(obj), Text: a.Label(obj)})
	}
	return out, nil
}

// fieldErrors flattens validator errors into field -> messages, keyed
// by the json names the client submitted.
func fieldErrors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := ValidationErrors{}
	for _, fe := range verrs {
		msg := fmt.Sprintf("failed %q validation", fe.Tag())
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

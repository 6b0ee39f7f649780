package admin

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

const deleteSelected = "delete_selected"

// ActionResult is what a bulk action hands back. A nil Body means the
// action mutated rows in place; a non-nil one is returned to the
// operator as a download.
type ActionResult struct {
	Updated     int64
	ContentType string
	Filename    string
	Body        []byte
}

// Action is an operator-triggerable batch operation over a selected
// set of rows.
type Action[T any] struct {
	Name        string
	Description string
	Run         func(db *gorm.DB, pks []uint) (*ActionResult, error)
}

// RunAction dispatches a named action over the selected primary keys.
// Every admin gets delete_selected for free.
func (a *ModelAdmin[T]) RunAction(db *gorm.DB, name string, pks []uint) (*ActionResult, error) {
	if len(pks) == 0 {
		return nil, fmt.Errorf("no rows selected")
	}
	if name == deleteSelected {
		res := db.Delete(a.New(), pks)
		if res.Error != nil {
			return nil, res.Error
		}
		return &ActionResult{Updated: res.RowsAffected}, nil
	}
	for _, act := range a.Actions {
		if act.Name == name {
			return act.Run(db, pks)
		}
	}
	return nil, fmt.Errorf("unknown action %q for %s_%s", name, a.App, a.Model)
}

// exportDoc is one serialized row in the export format: type tag,
// primary key, field map.
type exportDoc struct {
	Model  string         `json:"model"`
	PK     uint           `json:"pk"`
	Fields map[string]any `json:"fields"`
}

// ExportJSON builds the standard "export to JSON" action: the
// selected rows serialized as an array of tagged documents, returned
// as a downloadable application/json response.
func ExportJSON[T any](modelTag string, pk func(*T) uint, fields func(*T) map[string]any) Action[T] {
	return Action[T]{
		Name:        "export_as_json",
		Description: "Export to JSON",
		Run: func(db *gorm.DB, pks []uint) (*ActionResult, error) {
			var items []T
			if err := db.Where("id IN ?", pks).Find(&items).Error; err != nil {
				return nil, err
			}
			docs := make([]exportDoc, 0, len(items))
			for i := range items {
				obj := &items[i]
				docs = append(docs, exportDoc{
					Model:  modelTag,
					PK:     pk(obj),
					Fields: fields(obj),
				})
			}
			body, err := json.MarshalIndent(docs, "", "  ")
			if err != nil {
				return nil, err
			}
			return &ActionResult{
				ContentType: "application/json",
				Filename:    modelTag + ".json",
				Body:        body,
			}, nil
		},
	}
}

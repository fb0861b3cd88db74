package catalog

import (
	"github.com/roach88/bi/internal/key"
	"github.com/roach88/bi/internal/query"
)

// WidgetType is the data type tag of Widget.
const WidgetType = "widget"

// Widget is a catalog item searchable by name and description.
type Widget struct {
	ID          int32  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

var (
	_ query.FullText[Widget]        = Widget{}
	_ query.AutoComplete[key.Int32] = Widget{}
	_ query.GetByKey[Widget]        = Widget{}
	_ key.Display                   = Widget{}
	_ key.Int32Keyed                = Widget{}
)

func (Widget) FullTextQuery() string {
	return `
		SELECT w.id, w.name, w.description
		FROM widgets_fts
		JOIN widgets w ON w.id = widgets_fts.docid
		WHERE widgets_fts MATCH ?
		ORDER BY w.name, w.id
	`
}

func (Widget) ScanFullText(row query.Row) (Widget, error) {
	return scanWidget(row)
}

// AutoCompleteQuery matches names only and selects just id and name.
func (Widget) AutoCompleteQuery() string {
	return `
		SELECT w.id, w.name
		FROM widgets_fts
		JOIN widgets w ON w.id = widgets_fts.docid
		WHERE widgets_fts.name MATCH ?
		ORDER BY w.name, w.id
		LIMIT 10
	`
}

func (Widget) ScanAutoComplete(row query.Row) (query.WhoWhatWhere[key.Int32], error) {
	return scanInt32Hit(row, WidgetType)
}

func (Widget) GetByKeyQuery() string {
	return `SELECT id, name, description FROM widgets WHERE id = ?`
}

func (Widget) ScanGetByKey(row query.Row) (Widget, error) {
	return scanWidget(row)
}

func (w Widget) DisplayName() string { return w.Name }

func (w Widget) PrimaryKey() key.PrimaryKey { return key.FromInt32Keyed(w) }

func (Widget) DataType() string { return WidgetType }

func (w Widget) Int32Key() int32 { return w.ID }

func scanWidget(row query.Row) (Widget, error) {
	var w Widget
	if err := row.Scan(&w.ID, &w.Name, &w.Description); err != nil {
		return Widget{}, err
	}
	return w, nil
}

// scanInt32Hit scans an (id, name) suggestion row.
func scanInt32Hit(row query.Row, dataType string) (query.WhoWhatWhere[key.Int32], error) {
	var id int32
	var name string
	if err := row.Scan(&id, &name); err != nil {
		return query.WhoWhatWhere[key.Int32]{}, err
	}
	return query.WhoWhatWhere[key.Int32]{DataType: dataType, PK: key.Int32(id), Name: name}, nil
}

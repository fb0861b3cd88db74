package catalog

import (
	"github.com/roach88/bi/internal/key"
	"github.com/roach88/bi/internal/query"
)

const (
	// CityType is the data type tag of City.
	CityType = "city"

	citySubType = "municipality"
)

// City is a place offered in location pickers.
type City struct {
	ID    int32  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	State string `json:"state" yaml:"state"`
}

var (
	_ query.AutoComplete[key.Int32] = City{}
	_ query.GetByKey[City]          = City{}
	_ key.Display                   = City{}
	_ key.SubTyped                  = City{}
)

func (City) AutoCompleteQuery() string {
	return `
		SELECT c.id, c.name
		FROM cities_fts
		JOIN cities c ON c.id = cities_fts.docid
		WHERE cities_fts MATCH ?
		ORDER BY c.name, c.id
		LIMIT 10
	`
}

func (City) ScanAutoComplete(row query.Row) (query.WhoWhatWhere[key.Int32], error) {
	return scanInt32Hit(row, CityType)
}

func (City) GetByKeyQuery() string {
	return `SELECT id, name, state FROM cities WHERE id = ?`
}

func (City) ScanGetByKey(row query.Row) (City, error) {
	var c City
	if err := row.Scan(&c.ID, &c.Name, &c.State); err != nil {
		return City{}, err
	}
	return c, nil
}

func (c City) DisplayName() string { return c.Name }

func (c City) PrimaryKey() key.PrimaryKey { return key.Int32(c.ID) }

func (City) DataType() string { return CityType }

func (City) SubType() string { return citySubType }

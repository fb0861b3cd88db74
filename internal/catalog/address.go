package catalog

import (
	"fmt"

	"github.com/roach88/bi/internal/key"
	"github.com/roach88/bi/internal/query"
)

// AddressType is the data type tag of Address.
const AddressType = "address"

// Address is a street address. Unit is nil when there is none.
type Address struct {
	Number int32   `json:"number" yaml:"number"`
	Street string  `json:"street" yaml:"street"`
	Zip    int32   `json:"zip" yaml:"zip"`
	Unit   *string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Label  string  `json:"label" yaml:"label"`
}

var (
	_ query.GetByKey[Address] = Address{}
	_ key.Display             = Address{}
)

// GetByKeyQuery takes the four AddressKey values in order. unit is compared
// with IS NOT DISTINCT FROM so a NULL parameter matches a NULL unit; SQLite
// (3.39+) and Postgres both accept it.
func (Address) GetByKeyQuery() string {
	return `
		SELECT number, street, zip, unit, label
		FROM addresses
		WHERE number = ? AND street = ? AND zip = ? AND unit IS NOT DISTINCT FROM ?
	`
}

func (Address) ScanGetByKey(row query.Row) (Address, error) {
	var a Address
	if err := row.Scan(&a.Number, &a.Street, &a.Zip, &a.Unit, &a.Label); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (a Address) DisplayName() string {
	if a.Label != "" {
		return a.Label
	}
	if a.Unit != nil {
		return fmt.Sprintf("%d %s #%s", a.Number, a.Street, *a.Unit)
	}
	return fmt.Sprintf("%d %s", a.Number, a.Street)
}

func (a Address) PrimaryKey() key.PrimaryKey {
	return key.AddressKey{Number: a.Number, Street: a.Street, Zip: a.Zip, Unit: a.Unit}
}

func (Address) DataType() string { return AddressType }

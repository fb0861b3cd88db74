package catalog

import (
	"github.com/roach88/bi/internal/key"
	"github.com/roach88/bi/internal/query"
)

// DomainType is the data type tag of Domain.
const DomainType = "domain"

// Domain is keyed by its natural name.
type Domain struct {
	Name      string `json:"name" yaml:"name"`
	Registrar string `json:"registrar" yaml:"registrar"`
}

var (
	_ query.AutoComplete[key.Text] = Domain{}
	_ query.GetByKey[Domain]       = Domain{}
	_ key.Display                  = Domain{}
)

func (Domain) AutoCompleteQuery() string {
	return `
		SELECT d.name
		FROM domains_fts
		JOIN domains d ON d.rowid = domains_fts.docid
		WHERE domains_fts MATCH ?
		ORDER BY d.name
		LIMIT 10
	`
}

func (Domain) ScanAutoComplete(row query.Row) (query.WhoWhatWhere[key.Text], error) {
	var name string
	if err := row.Scan(&name); err != nil {
		return query.WhoWhatWhere[key.Text]{}, err
	}
	return query.WhoWhatWhere[key.Text]{DataType: DomainType, PK: key.Text(name), Name: name}, nil
}

func (Domain) GetByKeyQuery() string {
	return `SELECT name, registrar FROM domains WHERE name = ?`
}

func (Domain) ScanGetByKey(row query.Row) (Domain, error) {
	var d Domain
	if err := row.Scan(&d.Name, &d.Registrar); err != nil {
		return Domain{}, err
	}
	return d, nil
}

func (d Domain) DisplayName() string { return d.Name }

func (d Domain) PrimaryKey() key.PrimaryKey { return key.Text(d.Name) }

func (Domain) DataType() string { return DomainType }

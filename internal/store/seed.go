package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Fixtures is the YAML document accepted by Seed.
//
//	widgets:
//	  - {id: 42, name: Blue Widget, description: A blue widget}
//	cities:
//	  - {id: 1, name: Chicago, state: IL}
//	domains:
//	  - {name: acme.com, registrar: Gandi}
//	addresses:
//	  - {number: 12, street: Main St, zip: 60601, unit: 4B, label: HQ}
type Fixtures struct {
	Widgets   []WidgetRow  `yaml:"widgets"`
	Cities    []CityRow    `yaml:"cities"`
	Domains   []DomainRow  `yaml:"domains"`
	Addresses []AddressRow `yaml:"addresses"`
}

// WidgetRow is one widgets fixture.
type WidgetRow struct {
	ID          int32  `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// CityRow is one cities fixture.
type CityRow struct {
	ID    int32  `yaml:"id"`
	Name  string `yaml:"name"`
	State string `yaml:"state"`
}

// DomainRow is one domains fixture.
type DomainRow struct {
	Name      string `yaml:"name"`
	Registrar string `yaml:"registrar"`
}

// AddressRow is one addresses fixture. Unit may be omitted.
type AddressRow struct {
	Number int32   `yaml:"number"`
	Street string  `yaml:"street"`
	Zip    int32   `yaml:"zip"`
	Unit   *string `yaml:"unit"`
	Label  string  `yaml:"label"`
}

// SeedResult counts the rows Seed inserted. Rows whose key already
// existed are skipped and not counted.
type SeedResult struct {
	Widgets   int `json:"widgets" yaml:"widgets"`
	Cities    int `json:"cities" yaml:"cities"`
	Domains   int `json:"domains" yaml:"domains"`
	Addresses int `json:"addresses" yaml:"addresses"`
}

// DecodeFixtures parses a YAML fixtures document.
// An empty document yields empty Fixtures.
func DecodeFixtures(r io.Reader) (Fixtures, error) {
	var f Fixtures
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	return f, nil
}

// Seed loads YAML fixtures from r in a single transaction.
// Uses INSERT OR IGNORE for idempotency - rows with existing keys are silently skipped.
func (s *Store) Seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	f, err := DecodeFixtures(r)
	if err != nil {
		return SeedResult{}, err
	}
	return s.SeedFixtures(ctx, f)
}

// SeedFixtures inserts already decoded fixtures in a single transaction.
func (s *Store) SeedFixtures(ctx context.Context, f Fixtures) (SeedResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	var res SeedResult

	for _, w := range f.Widgets {
		n, err := insert(ctx, tx, `INSERT OR IGNORE INTO widgets (id, name, description) VALUES (?, ?, ?)`,
			w.ID, w.Name, w.Description)
		if err != nil {
			return SeedResult{}, fmt.Errorf("seed widget %d: %w", w.ID, err)
		}
		res.Widgets += n
	}

	for _, c := range f.Cities {
		n, err := insert(ctx, tx, `INSERT OR IGNORE INTO cities (id, name, state) VALUES (?, ?, ?)`,
			c.ID, c.Name, c.State)
		if err != nil {
			return SeedResult{}, fmt.Errorf("seed city %d: %w", c.ID, err)
		}
		res.Cities += n
	}

	for _, d := range f.Domains {
		n, err := insert(ctx, tx, `INSERT OR IGNORE INTO domains (name, registrar) VALUES (?, ?)`,
			d.Name, d.Registrar)
		if err != nil {
			return SeedResult{}, fmt.Errorf("seed domain %q: %w", d.Name, err)
		}
		res.Domains += n
	}

	for _, a := range f.Addresses {
		n, err := insert(ctx, tx, `INSERT OR IGNORE INTO addresses (number, street, zip, unit, label) VALUES (?, ?, ?, ?, ?)`,
			a.Number, a.Street, a.Zip, a.Unit, a.Label)
		if err != nil {
			return SeedResult{}, fmt.Errorf("seed address %d %s: %w", a.Number, a.Street, err)
		}
		res.Addresses += n
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("seed: commit: %w", err)
	}

	return res, nil
}

func insert(ctx context.Context, tx *sql.Tx, stmt string, args ...any) (int, error) {
	result, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

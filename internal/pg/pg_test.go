package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bi/internal/catalog"
	"github.com/roach88/bi/internal/key"
	"github.com/roach88/bi/internal/query"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "bi", Password: "p@ss/w+rd", Name: "catalog"}
	assert.Equal(t, "postgres://bi:p%40ss%2Fw+rd@db:5432/catalog?sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestRebind(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
		{`SELECT "odd?col" FROM t WHERE a = ?`, `SELECT "odd?col" FROM t WHERE a = $1`},
		{`SELECT doc \? 'k' FROM t WHERE a = ?`, `SELECT doc ? 'k' FROM t WHERE a = $1`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.in))
		})
	}
}

func TestTextSearchExpression(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "blue:* & widg:*", c.TextSearchExpression("Blue widg"))
}

func TestQuery_RebindsAndWrapsRows(t *testing.T) {
	fq := &fakeQuerier{rows: &fakeRows{values: [][]any{{int32(42), "Blue Widget"}}}}
	c := &Client{q: fq}

	got, err := query.Get[item](t.Context(), c, key.Int32(42).Values()...)
	require.NoError(t, err)
	assert.Equal(t, item{ID: 42, Name: "Blue Widget"}, got)
	assert.Equal(t, "SELECT id, name FROM items WHERE id = $1", fq.sql)
	assert.Equal(t, []any{int32(42)}, fq.args)
	assert.True(t, fq.rows.closed)
}

func TestQuery_CloseReportsRowsError(t *testing.T) {
	boom := errors.New("conn reset")
	fq := &fakeQuerier{rows: &fakeRows{err: boom}}
	c := &Client{q: fq}

	rows, err := c.Query(t.Context(), "SELECT 1")
	require.NoError(t, err)
	assert.False(t, rows.Next())
	assert.ErrorIs(t, rows.Close(), boom)
}

func TestQuery_Error(t *testing.T) {
	boom := errors.New("syntax error")
	c := &Client{q: &fakeQuerier{err: boom}}

	rows, err := c.Query(t.Context(), "SELEKT")
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "query: syntax error")

	_, err = query.Get[item](t.Context(), c, 1)
	assert.True(t, query.IsExecutionError(err))
}

func TestQuery_AddressLookupIsPortable(t *testing.T) {
	fq := &fakeQuerier{rows: &fakeRows{}}
	c := &Client{q: fq}

	_, err := query.Get[catalog.Address](t.Context(), c, key.NewAddressKey(12, "Main St", 60601, "").Values()...)
	assert.ErrorIs(t, err, query.ErrNotFound)
	assert.Contains(t, fq.sql, "unit IS NOT DISTINCT FROM $4")
	assert.Equal(t, []any{int32(12), "Main St", int32(60601), nil}, fq.args)
}

type item struct {
	ID   int32
	Name string
}

func (item) GetByKeyQuery() string { return "SELECT id, name FROM items WHERE id = ?" }

func (item) ScanGetByKey(row query.Row) (item, error) {
	var it item
	err := row.Scan(&it.ID, &it.Name)
	return it, err
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
	sql  string
	args []any
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.sql, f.args = sql, args
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

// fakeRows implements the subset of pgx.Rows the client uses.
type fakeRows struct {
	pgx.Rows
	values [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.values[r.pos-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *int32:
			*p = row[i].(int32)
		case *string:
			*p = row[i].(string)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) Close() { r.closed = true }

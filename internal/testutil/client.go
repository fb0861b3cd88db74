package testutil

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/roach88/bi/internal/query"
)

// Call records one Query invocation seen by a FakeClient.
type Call struct {
	Query string
	Args  []any
}

// Response is the scripted outcome of one query.
// If Err is set, Query fails. Otherwise Rows are returned in order and
// RowsErr, if set, is reported by Rows.Err after the last row.
type Response struct {
	Rows    [][]any
	Err     error
	RowsErr error
}

// FakeClient is a scripted query.Client for tests.
//
// Responses are keyed by query text. A query with no scripted response
// returns zero rows. Expression, when set, is used for TextSearchExpression;
// otherwise the phrase is passed through unchanged.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FakeClient struct {
	mu         sync.Mutex
	responses  map[string]Response
	calls      []Call
	rows       []*FakeRows
	Expression func(phrase string) any
}

var _ query.SearchClient = (*FakeClient)(nil)

// NewFakeClient creates a FakeClient with no scripted responses.
func NewFakeClient() *FakeClient {
	return &FakeClient{responses: make(map[string]Response)}
}

// On scripts the response for a query text and returns the client for chaining.
func (c *FakeClient) On(queryText string, resp Response) *FakeClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[queryText] = resp
	return c
}

// Query implements query.Client.
func (c *FakeClient) Query(ctx context.Context, queryText string, args ...any) (query.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, Call{Query: queryText, Args: append([]any(nil), args...)})

	resp := c.responses[queryText]
	if resp.Err != nil {
		return nil, resp.Err
	}
	rows := NewFakeRows(resp.Rows...)
	rows.err = resp.RowsErr
	c.rows = append(c.rows, rows)
	return rows, nil
}

// TextSearchExpression implements query.TextSearcher.
func (c *FakeClient) TextSearchExpression(phrase string) any {
	if c.Expression != nil {
		return c.Expression(phrase)
	}
	return phrase
}

// Calls returns a copy of every recorded call in order.
func (c *FakeClient) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// LastRows returns the rows handed out by the most recent successful Query,
// or nil if there was none.
func (c *FakeClient) LastRows() *FakeRows {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.rows) == 0 {
		return nil
	}
	return c.rows[len(c.rows)-1]
}

// FakeRows iterates scripted rows. Scan assigns positionally, converting
// between compatible kinds (int64 column into an int32 field, for example).
type FakeRows struct {
	rows   [][]any
	err    error
	pos    int
	closed bool
}

// NewFakeRows creates rows outside of a FakeClient.
func NewFakeRows(rows ...[]any) *FakeRows {
	return &FakeRows{rows: rows, pos: -1}
}

func (r *FakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *FakeRows) Err() error {
	if r.pos+1 >= len(r.rows) {
		return r.err
	}
	return nil
}

func (r *FakeRows) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *FakeRows) Closed() bool {
	return r.closed
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.rows) {
		return errors.New("scan called without a current row")
	}
	row := r.rows[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, src := range row {
		if err := assign(dest[i], src); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// assign stores src into the pointer dest.
func assign(dest, src any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination not a pointer: %T", dest)
	}
	elem := dv.Elem()

	if src == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}

	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(elem.Type()):
		elem.Set(sv)
	case elem.Kind() == reflect.Pointer && sv.Type().AssignableTo(elem.Type().Elem()):
		p := reflect.New(elem.Type().Elem())
		p.Elem().Set(sv)
		elem.Set(p)
	case isNumber(sv.Kind()) && isNumber(elem.Kind()):
		elem.Set(sv.Convert(elem.Type()))
	case sv.Kind() == reflect.String && elem.Kind() == reflect.String:
		elem.Set(sv.Convert(elem.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", src, elem.Type())
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeClient_ScriptedRows(t *testing.T) {
	c := NewFakeClient().On("SELECT 1", Response{Rows: [][]any{{int64(1), "a"}, {int64(2), "b"}}})

	rows, err := c.Query(context.Background(), "SELECT 1", "x")
	require.NoError(t, err)

	var ids []int32
	var names []string
	for rows.Next() {
		var id int32
		var name string
		require.NoError(t, rows.Scan(&id, &name))
		ids = append(ids, id)
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())

	assert.Equal(t, []int32{1, 2}, ids)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []Call{{Query: "SELECT 1", Args: []any{"x"}}}, c.Calls())
}

func TestFakeClient_UnscriptedQueryReturnsNoRows(t *testing.T) {
	rows, err := NewFakeClient().Query(context.Background(), "SELECT nothing")
	require.NoError(t, err)
	assert.False(t, rows.Next())
	assert.NoError(t, rows.Err())
}

func TestFakeClient_LastRows(t *testing.T) {
	c := NewFakeClient()
	assert.Nil(t, c.LastRows())

	rows, err := c.Query(context.Background(), "SELECT 1")
	require.NoError(t, err)
	require.Same(t, rows, c.LastRows())
	assert.False(t, c.LastRows().Closed())

	require.NoError(t, rows.Close())
	assert.True(t, c.LastRows().Closed())
}

func TestFakeClient_QueryError(t *testing.T) {
	boom := errors.New("boom")
	c := NewFakeClient().On("Q", Response{Err: boom})

	_, err := c.Query(context.Background(), "Q")
	assert.ErrorIs(t, err, boom)
}

func TestFakeClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFakeClient().Query(ctx, "Q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFakeRows_RowsErrAfterLastRow(t *testing.T) {
	boom := errors.New("iteration failed")
	c := NewFakeClient().On("Q", Response{Rows: [][]any{{"a"}}, RowsErr: boom})

	rows, err := c.Query(context.Background(), "Q")
	require.NoError(t, err)
	require.True(t, rows.Next())
	assert.False(t, rows.Next())
	assert.ErrorIs(t, rows.Err(), boom)
}

func TestFakeRows_ScanConversions(t *testing.T) {
	rows := NewFakeRows([]any{int64(7), nil, "unit"})
	require.True(t, rows.Next())

	var n int16
	var missing string
	var unit *string
	require.NoError(t, rows.Scan(&n, &missing, &unit))
	assert.Equal(t, int16(7), n)
	assert.Equal(t, "", missing)
	require.NotNil(t, unit)
	assert.Equal(t, "unit", *unit)
}

func TestFakeRows_ScanErrors(t *testing.T) {
	rows := NewFakeRows([]any{"text"})

	var s string
	assert.Error(t, rows.Scan(&s), "scan before Next")

	require.True(t, rows.Next())
	var n int32
	assert.Error(t, rows.Scan(&n), "string into int32")
	assert.Error(t, rows.Scan(&s, &s), "wrong argument count")
	assert.Error(t, rows.Scan(s), "non-pointer destination")
}

func TestTextSearchExpression(t *testing.T) {
	c := NewFakeClient()
	assert.Equal(t, "chi", c.TextSearchExpression("chi"))

	c.Expression = func(p string) any { return p + "*" }
	assert.Equal(t, "chi*", c.TextSearchExpression("chi"))
}

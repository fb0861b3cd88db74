package textsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerms(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   []string
	}{
		{"single", "chi", []string{"chi"}},
		{"case folded", "Blue WIDGET", []string{"blue", "widget"}},
		{"punctuation splits", "cool-blue, inc.", []string{"cool", "blue", "inc"}},
		{"operators stripped", `"a" & b | !c:*`, []string{"a", "b", "c"}},
		{"digits kept", "route 66", []string{"route", "66"}},
		{"fullwidth normalized", "ＡＢＣ", []string{"abc"}},
		{"accents kept", "Café", []string{"café"}},
		{"empty", "", []string{}},
		{"only punctuation", " -- ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Terms(tt.phrase))
		})
	}
}

func TestSQLite(t *testing.T) {
	assert.Equal(t, "chi*", SQLite("chi"))
	assert.Equal(t, "blue* widg*", SQLite("Blue widg"))
	assert.Equal(t, "", SQLite("  "))
}

func TestPostgres(t *testing.T) {
	assert.Equal(t, "chi:*", Postgres("chi"))
	assert.Equal(t, "blue:* & widg:*", Postgres("Blue, widg"))
	assert.Equal(t, "", Postgres(""))
}

package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Description(t *testing.T) {
	tbl := New(nil)

	assert.Equal(t, "Deutsch", tbl.Description("de"))
	assert.Equal(t, "English", tbl.Description("EN"))
	assert.Equal(t, "", tbl.Description(""))
}

func TestTable_Overrides(t *testing.T) {
	tbl := New(map[string]string{"de": "German", "gsw": "Schwiizerdütsch"})

	assert.Equal(t, "German", tbl.Description("de"))
	assert.Equal(t, "Schwiizerdütsch", tbl.Description("gsw"))

	code, ok := tbl.Lookup("german")
	assert.True(t, ok)
	assert.Equal(t, "de", code)
}

func TestTable_Lookup(t *testing.T) {
	tbl := New(nil)

	tests := []struct {
		token string
		want  string
	}{
		{"de", "de"},
		{"ger", "de"},
		{"deu", "de"},
		{"Deutsch", "de"},
		{" english ", "en"},
		{"fre", "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := tbl.Lookup(tt.token)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := tbl.Lookup("")
	assert.False(t, ok)
	_, ok = tbl.Lookup("12")
	assert.False(t, ok)
}

func TestTable_Known(t *testing.T) {
	tbl := New(nil)

	assert.True(t, tbl.Known("de"))
	assert.True(t, tbl.Known("en"))
	assert.False(t, tbl.Known("1x"))
	assert.False(t, tbl.Known(""))
}

func TestTable_Codes(t *testing.T) {
	codes := New(map[string]string{"aa": "Afar"}).Codes()

	assert.Contains(t, codes, "aa")
	assert.Contains(t, codes, "de")
	assert.IsNonDecreasing(t, codes)
}

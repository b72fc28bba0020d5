package calc

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"blank", "", "0"},
		{"whitespace", "   ", "0"},
		{"integer", "42", "42"},
		{"decimal", "12.5", "12.5"},
		{"trailing dot kept mid-keystroke", "5.", "5"},
		{"leading dot", ".5", "0.5"},
		{"negative", "-3.25", "-3.25"},
		{"garbage", "abc", "0"},
		{"lone minus", "-", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromString(tt.raw).Decimal()
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestCellBlankIsNotZero(t *testing.T) {
	blank := Blank()
	zero := Numeric(decimal.Zero)

	assert.True(t, blank.IsBlank())
	assert.False(t, zero.IsBlank())

	// Both coerce to zero for arithmetic.
	assert.True(t, blank.Decimal().IsZero())
	assert.True(t, zero.Decimal().IsZero())
}

func TestCellJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		raw  string
	}{
		{"string", `"12.50"`, "12.50"},
		{"number", `42`, "42"},
		{"decimal number", `3.14`, "3.14"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cell
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, tt.raw, c.Raw())

			out, err := json.Marshal(c)
			require.NoError(t, err)
			assert.JSONEq(t, `"`+tt.raw+`"`, string(out))
		})
	}
}

func TestCellBlankMarshalsAsEmptyString(t *testing.T) {
	out, err := json.Marshal(Blank())
	require.NoError(t, err)
	assert.Equal(t, `""`, string(out))
}

func TestCellDatabaseValue(t *testing.T) {
	v, err := Blank().Value()
	require.NoError(t, err)
	assert.Nil(t, v, "blank maps to SQL NULL")

	v, err = Numeric(decimal.RequireFromString("9.99")).Value()
	require.NoError(t, err)
	assert.Equal(t, "9.99", v)

	var c Cell
	require.NoError(t, c.Scan(nil))
	assert.True(t, c.IsBlank())

	require.NoError(t, c.Scan("7.25"))
	assert.Equal(t, "7.25", c.Raw())

	require.NoError(t, c.Scan(float64(1.5)))
	assert.Equal(t, "1.5", c.Raw())
}

package hashintern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolFromIndex(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want Symbol
		ok   bool
	}{
		{"zero", 0, 0, true},
		{"small", 42, 42, true},
		{"negative", -1, NoSymbol, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SymbolFromIndex(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSymbolIndex(t *testing.T) {
	assert.Equal(t, 7, Symbol(7).Index())
	assert.Equal(t, -1, NoSymbol.Index())
	assert.True(t, Symbol(0).IsValid())
	assert.False(t, NoSymbol.IsValid())
}

func TestSymbolString(t *testing.T) {
	assert.Equal(t, "Symbol(3)", Symbol(3).String())
	assert.Equal(t, "Symbol(none)", NoSymbol.String())
}

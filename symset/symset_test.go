package symset

import (
	"slices"
	"testing"

	"github.com/hupe1980/hashintern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBasics(t *testing.T) {
	s := Of(3, 1, 2, hashintern.NoSymbol, 1)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(hashintern.NoSymbol))
	assert.Equal(t, []hashintern.Symbol{1, 2, 3}, slices.Collect(s.All()))

	s.Remove(2)
	assert.False(t, s.Contains(2))
	assert.NotZero(t, s.SizeInBytes())

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSetAlgebra(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(2, 3, 4)

	u := a.Clone()
	u.Union(b)
	assert.Equal(t, []hashintern.Symbol{1, 2, 3, 4}, slices.Collect(u.All()))

	i := a.Clone()
	i.Intersect(b)
	assert.Equal(t, []hashintern.Symbol{2, 3}, slices.Collect(i.All()))

	d := a.Clone()
	d.Difference(b)
	assert.Equal(t, []hashintern.Symbol{1}, slices.Collect(d.All()))

	// Clones are independent.
	assert.Equal(t, 3, a.Len())
}

func TestInternAll(t *testing.T) {
	in := hashintern.NewString()
	in.MustGetOrIntern("zero")

	s, err := InternAll(in, []string{"cat", "dog", "cat", "zero"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, in.Len())
	assert.Equal(t, []string{"zero", "cat", "dog"}, slices.Collect(Values(in, s)))
}

func TestInternAllRefusesInvalid(t *testing.T) {
	in := hashintern.NewString()

	_, err := InternAll(in, []string{"ok", string([]byte{0xff})})
	require.ErrorIs(t, err, hashintern.ErrEncoding)
	assert.Equal(t, 1, in.Len())
}

func TestValuesSkipsUnknownSymbols(t *testing.T) {
	in := hashintern.NewString()
	in.MustGetOrIntern("a")

	assert.Equal(t, []string{"a"}, slices.Collect(Values(in, Of(0, 7))))
}

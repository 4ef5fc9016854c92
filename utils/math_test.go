package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	{
		v := Linspace(11, 0, 1)
		require.Equal(t, 11, len(v))
		assert.Equal(t, 0., v[0])
		assert.Equal(t, 1., v[10])
		assert.InDelta(t, 0.5, v[5], NODETOL)
		for i := 1; i < len(v); i++ {
			assert.InDelta(t, 0.1, v[i]-v[i-1], NODETOL)
		}
	}
	{
		assert.Nil(t, Linspace(0, 0, 1))
		assert.Equal(t, []float64{2}, Linspace(1, 2, 3))
	}
	{
		v := []float64{1, 2, 3}
		r := ScaleArray(v, 2)
		assert.Equal(t, []float64{2, 4, 6}, r)
		assert.Equal(t, []float64{1, 2, 3}, v)
	}
	{
		assert.Equal(t, []float64{0, 0, 0}, ConstArray(3, 0))
		assert.True(t, IsFinite(1))
		assert.False(t, IsFinite(math.Inf(1)))
		assert.False(t, IsFinite(math.NaN()))
	}
	{
		assert.False(t, IsNan([]float64{1, 2}))
		assert.True(t, IsNan([]float64{1, math.NaN()}))
		assert.True(t, IsNan([][]float64{{1}, {math.NaN()}}))
		assert.False(t, IsNan("not a number"))
	}
}

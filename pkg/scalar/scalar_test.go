package scalar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsComplex(t *testing.T) {
	assert.False(t, IsComplex[float64]())
	assert.True(t, IsComplex[complex128]())
}

func TestFromComplex(t *testing.T) {
	assert.Equal(t, 5.0, FromComplex[float64](complex(5, 3)))
	assert.Equal(t, complex(5, 3), FromComplex[complex128](complex(5, 3)))
}

func TestToComplexAndParts(t *testing.T) {
	assert.Equal(t, complex(2, 0), ToComplex(2.0))

	re, im := Parts(complex(1.5, -2.5))
	assert.Equal(t, 1.5, re)
	assert.Equal(t, -2.5, im)

	re, im = Parts(-4.0)
	assert.Equal(t, -4.0, re)
	assert.Equal(t, 0.0, im)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.0))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.NaN()))
	assert.True(t, IsFinite(complex(1, 2)))
	assert.False(t, IsFinite(complex(math.NaN(), 0)))
}

package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSymmetric(t *testing.T) {
	a := []float64{0.3, -0.2, 0.9}
	b := []float64{-0.5, 0.4, 0.1}

	assert.Equal(t, Cosine(a, b), Cosine(b, a))
}

func TestCosineSelf(t *testing.T) {
	a := []float64{1.5, 2.0, -0.5}

	assert.InDelta(t, 1.0, Cosine(a, a), 1e-12)
}

func TestCosineZeroVector(t *testing.T) {
	zero := []float64{0, 0, 0}
	a := []float64{1, 2, 3}

	assert.Equal(t, 0.0, Cosine(zero, a))
	assert.Equal(t, 0.0, Cosine(a, zero))
	assert.Equal(t, 0.0, Cosine(zero, zero))
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float64{3, 4})

	assert.InDelta(t, 1.0, Norm(v), 1e-12)
	assert.InDelta(t, 0.6, v[0], 1e-12)
	assert.InDelta(t, 0.8, v[1], 1e-12)
}

func TestNormalizeZeroStaysZero(t *testing.T) {
	v := Normalize([]float64{0, 0, 0})

	assert.True(t, IsZero(v))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.3))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.42, Clamp01(0.42))
}

func TestDotUnequalLengths(t *testing.T) {
	assert.Equal(t, 2.0, Dot([]float64{1, 1, 5}, []float64{1, 1}))
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, math.Sqrt(14), Norm([]float64{1, 2, 3}), 1e-12)
}

package math

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

func generate(coefficients []float64, xx ...float64) []float64 {
	yy := make([]float64, len(xx))
	for i, x := range xx {
		yy[i] = Eval(coefficients, x)
	}
	return yy
}

func TestFit_Linear(t *testing.T) {

	r := rand.New(rand.NewSource(11))

	for i := 0; i < 50; i++ {
		a := r.Float64()*20 - 10
		b := r.Float64()*200 - 100
		n := 2 + r.Intn(10)
		xx := make([]float64, n)
		for j := range xx {
			xx[j] = float64(j*10) + r.Float64()
		}
		yy := generate([]float64{b, a}, xx...)

		c, err := Fit(xx, yy, 1)
		require.NoError(t, err)
		require.Len(t, c, 2)
		assert.InDelta(t, b, c[0], tolerance)
		assert.InDelta(t, a, c[1], tolerance)
	}

}

func TestFit_Polynomial(t *testing.T) {

	type test struct {
		coefficients []float64
		x            []float64
	}

	tests := map[string]test{
		"constant": {
			coefficients: []float64{7},
			x:            []float64{1, 2, 3},
		},
		"quadratic": {
			coefficients: []float64{50, 0.01, -0.0002},
			x:            []float64{0, 50, 100, 150, 200, 250, 300},
		},
		"cubic-exact": {
			coefficients: []float64{1, -2, 0.5, 0.1},
			x:            []float64{-2, -1, 1, 3},
		},
		"quartic": {
			coefficients: []float64{3, -1, 0.25, -0.05, 0.002},
			x:            []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
		"unordered": {
			coefficients: []float64{-4, 2, 1},
			x:            []float64{3, -1, 2, 0, 1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			yy := generate(tt.coefficients, tt.x...)
			c, err := Fit(tt.x, yy, len(tt.coefficients)-1)
			require.NoError(t, err)
			require.Len(t, c, len(tt.coefficients))
			for i := range c {
				assert.InDelta(t, tt.coefficients[i], c[i], tolerance, fmt.Sprintf("coefficient %d", i))
			}
		})
	}

}

func TestFit_Insufficient(t *testing.T) {

	type test struct {
		x      []float64
		degree int
	}

	tests := map[string]test{
		"empty": {
			x:      []float64{},
			degree: 1,
		},
		"one-for-linear": {
			x:      []float64{1},
			degree: 1,
		},
		"three-for-cubic": {
			x:      []float64{1, 2, 3},
			degree: 3,
		},
		"four-for-quartic": {
			x:      []float64{0, 100, 200, 300},
			degree: 4,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			y := make([]float64, len(tt.x))
			c, err := Fit(tt.x, y, tt.degree)
			assert.True(t, errors.Is(err, ErrInsufficientData))
			assert.Nil(t, c)

			c, err = FitQR(tt.x, y, tt.degree)
			assert.True(t, errors.Is(err, ErrInsufficientData))
			assert.Nil(t, c)
		})
	}

}

func TestFit_Singular(t *testing.T) {

	type test struct {
		x      []float64
		degree int
	}

	tests := map[string]test{
		"coincident": {
			x:      []float64{5, 5, 5},
			degree: 1,
		},
		"two-distinct-for-quadratic": {
			x:      []float64{1, 1, 2, 2},
			degree: 2,
		},
		"three-distinct-for-cubic": {
			x:      []float64{0, 100, 100, 200},
			degree: 3,
		},
		"nearly-coincident": {
			x:      []float64{1, 1 + 1e-13, 2},
			degree: 2,
		},
		"nearly-coincident-large-flows": {
			x:      []float64{0, 1000, 1000 * (1 + 1e-12), 2000},
			degree: 3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			y := make([]float64, len(tt.x))
			for i := range y {
				y[i] = float64(i)
			}
			c, err := Fit(tt.x, y, tt.degree)
			assert.True(t, errors.Is(err, ErrSingularMatrix))
			assert.Nil(t, c)
		})
	}

}

func TestFit_CloseButDistinct(t *testing.T) {

	// close flows still fit a lower degree
	c, err := Fit([]float64{1, 1 + 1e-13, 2}, []float64{1, 1, 3}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2, c[1], 1e-6)

	// values apart by more than the resolution are distinct
	c, err = Fit([]float64{1, 1.001, 2}, []float64{1, 2, 3}, 2)
	require.NoError(t, err)
	for _, v := range c {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.InDelta(t, 2, Eval(c, 1.001), 1e-6)

	assert.Equal(t, 2, distinct([]float64{-1, -1 - 1e-12, 1}))
	assert.Equal(t, 1, distinct([]float64{0, 0, 0}))
	assert.Equal(t, 0, distinct(nil))

}

func TestFit_Invalid(t *testing.T) {

	_, err := Fit([]float64{1, 2}, []float64{1}, 1)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = Fit([]float64{1, 2}, []float64{1, 2}, -1)
	assert.True(t, errors.Is(err, ErrDegree))

}

func TestFit_Interpolation(t *testing.T) {

	xx := []float64{0, 100, 200, 300}
	yy := []float64{50, 48, 42, 32}

	for degree := 1; degree <= 3; degree++ {
		c, err := Fit(xx[:degree+1], yy[:degree+1], degree)
		require.NoError(t, err)
		for i := 0; i <= degree; i++ {
			assert.InDelta(t, yy[i], Eval(c, xx[i]), tolerance)
		}
	}

}

func TestFit_WideRange(t *testing.T) {

	xx := []float64{0, 100, 200, 300}
	yy := []float64{50, 48, 42, 32}

	c, err := Fit(xx, yy, 3)
	require.NoError(t, err)
	require.Len(t, c, 4)

	for _, v := range c {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
	for i, x := range xx {
		assert.InDelta(t, yy[i], Eval(c, x), 1e-3)
	}

}

func TestFit_DoesNotMutate(t *testing.T) {

	xx := []float64{0, 100, 200, 300}
	yy := []float64{50, 48, 42, 32}

	_, err := Fit(xx, yy, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 100, 200, 300}, xx)
	assert.Equal(t, []float64{50, 48, 42, 32}, yy)

}

func TestFitQR(t *testing.T) {

	xx := []float64{0, 40, 80, 120, 160, 200, 240, 280}
	yy := []float64{52.1, 51.4, 50.2, 47.9, 45.3, 41.8, 37.6, 32.5}

	for degree := 1; degree <= 4; degree++ {
		t.Run(fmt.Sprintf("%d", degree), func(t *testing.T) {
			normal, err := Fit(xx, yy, degree)
			require.NoError(t, err)
			qr, err := FitQR(xx, yy, degree)
			require.NoError(t, err)
			for _, x := range xx {
				assert.InDelta(t, Eval(qr, x), Eval(normal, x), tolerance)
			}
		})
	}

}

func TestSolve(t *testing.T) {

	type test struct {
		m   [][]float64
		b   []float64
		c   []float64
		err error
	}

	tests := map[string]test{
		"needs-pivot": {
			m: [][]float64{
				{0, 1},
				{1, 0},
			},
			b: []float64{2, 3},
			c: []float64{3, 2},
		},
		"three": {
			m: [][]float64{
				{2, 1, -1},
				{-3, -1, 2},
				{-2, 1, 2},
			},
			b: []float64{8, -11, -3},
			c: []float64{2, 3, -1},
		},
		"singular": {
			m: [][]float64{
				{1, 2},
				{2, 4},
			},
			b:   []float64{1, 2},
			err: ErrSingularMatrix,
		},
		"not-square": {
			m: [][]float64{
				{1, 2, 3},
				{2, 4, 5},
			},
			b:   []float64{1, 2},
			err: ErrDimensionMismatch,
		},
		"rows-mismatch": {
			m: [][]float64{
				{1},
			},
			b:   []float64{1, 2},
			err: ErrDimensionMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := Solve(tt.m, tt.b)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.c, c, tolerance)
		})
	}

}

func TestEval(t *testing.T) {

	type test struct {
		coefficients []float64
		x            float64
		y            float64
	}

	tests := map[string]test{
		"empty": {
			coefficients: []float64{},
			x:            10,
			y:            0,
		},
		"constant": {
			coefficients: []float64{3},
			x:            10,
			y:            3,
		},
		"quadratic": {
			coefficients: []float64{1, 2, 3},
			x:            2,
			y:            17,
		},
		"zero": {
			coefficients: []float64{5, 2, 3},
			x:            0,
			y:            5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.y, Eval(tt.coefficients, tt.x))
		})
	}

}

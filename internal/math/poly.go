package math

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	// SingularEpsilon is the fraction of a column's scale below which a pivot is treated as zero.
	SingularEpsilon = 1e-30
	// Resolution is the fraction of the largest |x| within which two x values count as the same.
	Resolution = 1e-9
)

// Fit fits the given series of x and y into a polynomial function of the given degree
// by solving the normal equations with partial pivoting.
// The output is a vector with the coefficients of the corresponding powers of x
// c[0] + c[1]x + c[2]x^2 + c[3]x^3 + ...
//
// It fails with ErrInsufficientData if there are fewer than degree+1 samples
// and with ErrSingularMatrix if fewer than degree+1 of them have distinct x values,
// where x values closer than Resolution (relative to the largest |x|) are not distinct.
func Fit(x, y []float64, degree int) ([]float64, error) {
	if err := check(x, y, degree); err != nil {
		return nil, err
	}

	a := vandermonde(x, degree)
	b := mat.NewVecDense(len(y), y)

	var ata mat.Dense
	ata.Mul(a.T(), a)
	var atb mat.VecDense
	atb.MulVec(a.T(), b)

	m := make([][]float64, degree+1)
	for i := range m {
		m[i] = mat.Row(nil, i, &ata)
	}
	c, err := Solve(m, mat.Col(nil, 0, &atb))
	if err != nil {
		return nil, fmt.Errorf("could not solve normal equations for degree %d: %w", degree, err)
	}
	return c, nil
}

// FitQR fits the same polynomial as Fit, but solves the least squares problem
// through a QR factorisation of the design matrix instead of the normal equations.
func FitQR(x, y []float64, degree int) ([]float64, error) {
	if err := check(x, y, degree); err != nil {
		return nil, err
	}

	a := vandermonde(x, degree)
	b := mat.NewDense(len(y), 1, append([]float64(nil), y...))
	c := mat.NewDense(degree+1, 1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)

	if err := qr.SolveTo(c, false, b); err != nil {
		return nil, fmt.Errorf("could not solve qr for degree %d: %v: %w", degree, err, ErrSingularMatrix)
	}

	return mat.Col(nil, 0, c), nil
}

// Solve solves the square system m·c = b by gaussian elimination with partial pivoting.
// The inputs are left untouched.
func Solve(m [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	if len(m) != n {
		return nil, fmt.Errorf("matrix has %d rows for %d values: %w", len(m), n, ErrDimensionMismatch)
	}

	aug := make([][]float64, n)
	scale := make([]float64, n)
	for i := range m {
		if len(m[i]) != n {
			return nil, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(m[i]), n, ErrDimensionMismatch)
		}
		aug[i] = make([]float64, n+1)
		copy(aug[i], m[i])
		aug[i][n] = b[i]
		for j, v := range m[i] {
			scale[j] = math.Max(scale[j], math.Abs(v))
		}
	}

	for i := 0; i < n; i++ {
		p := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[p][i]) {
				p = k
			}
		}
		aug[i], aug[p] = aug[p], aug[i]

		pivot := aug[i][i]
		if math.Abs(pivot) <= SingularEpsilon*scale[i] || pivot == 0 {
			return nil, fmt.Errorf("pivot %d is %g: %w", i, pivot, ErrSingularMatrix)
		}

		for k := i + 1; k < n; k++ {
			f := aug[k][i] / pivot
			aug[k][i] = 0
			for j := i + 1; j <= n; j++ {
				aug[k][j] -= f * aug[i][j]
			}
		}
	}

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * c[j]
		}
		c[i] = sum / aug[i][i]
		if math.IsNaN(c[i]) || math.IsInf(c[i], 0) {
			return nil, fmt.Errorf("coefficient %d is not finite: %w", i, ErrSingularMatrix)
		}
	}
	return c, nil
}

// Eval evaluates the polynomial with the given coefficients at x.
func Eval(coefficients []float64, x float64) float64 {
	y := 0.0
	for i, c := range coefficients {
		y += c * math.Pow(x, float64(i))
	}
	return y
}

func check(x, y []float64, degree int) error {
	if len(x) != len(y) {
		return fmt.Errorf("%d x values for %d y values: %w", len(x), len(y), ErrDimensionMismatch)
	}
	if degree < 0 {
		return fmt.Errorf("degree %d: %w", degree, ErrDegree)
	}
	if len(x) < degree+1 {
		return fmt.Errorf("degree %d needs %d points, got %d: %w", degree, degree+1, len(x), ErrInsufficientData)
	}
	if d := distinct(x); d < degree+1 {
		return fmt.Errorf("degree %d needs %d distinct x values, got %d: %w", degree, degree+1, d, ErrSingularMatrix)
	}
	return nil
}

// distinct counts the x values that are further apart than Resolution.
func distinct(x []float64) int {
	if len(x) == 0 {
		return 0
	}
	s := append([]float64(nil), x...)
	sort.Float64s(s)
	scale := math.Max(math.Abs(s[0]), math.Abs(s[len(s)-1]))
	tol := Resolution * scale
	d := 1
	for i := 1; i < len(s); i++ {
		if s[i]-s[i-1] > tol {
			d++
		}
	}
	return d
}

func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}
	return x
}

package math

import "errors"

var (
	// ErrInsufficientData is returned when there are fewer samples than coefficients to fit.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrSingularMatrix is returned when elimination meets a (numerically) zero pivot.
	ErrSingularMatrix = errors.New("singular matrix")
	// ErrDegree is returned for a polynomial degree that cannot be fitted.
	ErrDegree = errors.New("invalid degree")
	// ErrDimensionMismatch is returned when the inputs do not line up.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

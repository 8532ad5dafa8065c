package math

import (
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Format formats a float with two decimals
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Linspace returns steps+1 evenly spaced values from 'from' to 'to', both included.
func Linspace(from, to float64, steps int) []float64 {
	if steps <= 0 {
		return []float64{from}
	}
	return floats.Span(make([]float64, steps+1), from, to)
}

// Sample evaluates the polynomial over the given range.
func Sample(coefficients []float64, from, to float64, steps int) (xx, yy []float64) {
	xx = Linspace(from, to, steps)
	yy = make([]float64, len(xx))
	for i, x := range xx {
		yy[i] = Eval(coefficients, x)
	}
	return xx, yy
}

package math

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DisplayPrecision is the number of decimals used for on-screen equations.
	DisplayPrecision = 4
	// DisplayThreshold drops terms that would print as zero at display precision.
	DisplayThreshold = 1e-4
	// ExportPrecision is the number of decimals used for exported equations.
	ExportPrecision = 12
	// ExportThreshold drops terms that would print as zero at export precision.
	ExportThreshold = 1e-12
)

// EquationFormat defines how coefficients are rendered into an equation.
type EquationFormat struct {
	Precision    int
	DropNearZero bool
	Threshold    float64
	Symbol       string
	Unit         string
}

// DisplayFormat is the short format used for labels.
func DisplayFormat(symbol, unit string) EquationFormat {
	return EquationFormat{
		Precision:    DisplayPrecision,
		DropNearZero: true,
		Threshold:    DisplayThreshold,
		Symbol:       symbol,
		Unit:         unit,
	}
}

// ExportFormat is the high precision format used when saving a case.
func ExportFormat(symbol, unit string) EquationFormat {
	return EquationFormat{
		Precision:    ExportPrecision,
		DropNearZero: true,
		Threshold:    ExportThreshold,
		Symbol:       symbol,
		Unit:         unit,
	}
}

// FormatEquation renders the coefficients, ascending by power, into a polynomial expression
// e.g. "0.0000 +2.0000x -3.0000x^2  [m]".
// It returns an empty string if no term survives.
func FormatEquation(coefficients []float64, f EquationFormat) string {
	terms := make([]string, 0, len(coefficients))
	for i, c := range coefficients {
		if f.DropNearZero && math.Abs(c) < f.Threshold {
			continue
		}
		term := f.term(c, i)
		if len(terms) > 0 && !strings.HasPrefix(term, "-") {
			term = "+" + term
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return ""
	}
	eq := strings.Join(terms, " ")
	if f.Unit != "" {
		eq = fmt.Sprintf("%s  %s", eq, f.Unit)
	}
	return eq
}

func (f EquationFormat) term(c float64, power int) string {
	v := strconv.FormatFloat(c, 'f', f.Precision, 64)
	switch power {
	case 0:
		return v
	case 1:
		return v + f.Symbol
	default:
		return fmt.Sprintf("%s%s^%d", v, f.Symbol, power)
	}
}

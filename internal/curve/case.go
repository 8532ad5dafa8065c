package curve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	polymath "github.com/drakos74/pump-curve/internal/math"
	"github.com/drakos74/pump-curve/internal/model"
)

// Case recomputes both equations of the case from its operating points with export precision.
// A case without enough efficiency points keeps an empty efficiency equation.
func (f *Fitter) Case(c model.Case, headDegree, efficiencyDegree int) (model.Case, error) {
	c.OperatingPoints = sortedOperatingPoints(c.OperatingPoints)

	head, err := f.fit(Head, model.HeadPoints(c.OperatingPoints), headDegree,
		polymath.ExportFormat(f.config.Symbol, model.HeadUnit))
	if err != nil {
		return c, err
	}
	c.Equations.Head = equation(head)

	efficiency, err := f.fit(Efficiency, model.EfficiencyPoints(c.OperatingPoints), efficiencyDegree,
		polymath.ExportFormat(f.config.Symbol, model.EfficiencyUnit))
	switch {
	case err == nil:
		c.Equations.Efficiency = equation(efficiency)
	case errors.Is(err, polymath.ErrInsufficientData):
		log.Warn().
			Str("case", c.CaseName).
			Int("degree", efficiencyDegree).
			Msg("not enough efficiency points")
		c.Equations.Efficiency = model.Equation{Degree: efficiencyDegree}
	default:
		return c, err
	}

	return c, nil
}

// Restore re-derives the equations of an imported case from its points and stored degrees.
// The stored equation strings are not trusted.
func (f *Fitter) Restore(c model.Case) (model.Case, error) {
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("could not restore case: %w", err)
	}
	return f.Case(c, c.Equations.Head.Degree, c.Equations.Efficiency.Degree)
}

func equation(r Result) model.Equation {
	return model.Equation{
		Degree:       r.Degree,
		Equation:     r.Equation,
		Coefficients: r.Coefficients,
	}
}

func sortedOperatingPoints(ops []model.OperatingPoint) []model.OperatingPoint {
	sorted := make([]model.OperatingPoint, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Flow < sorted[j].Flow
	})
	return sorted
}

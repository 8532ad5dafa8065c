package api

import (
	"github.com/drakos74/pump-curve/internal/curve"
	"github.com/drakos74/pump-curve/internal/model"
)

// FitRequest asks for a curve through the given points.
// A missing degree means DefaultDegree, a missing symbol the configured one.
// With Percent set the points are given as percentages of the axes maxima.
type FitRequest struct {
	Points  model.Points `json:"points" validate:"required"`
	Degree  *int         `json:"degree" validate:"omitempty,gte=1,lte=4"`
	Symbol  string       `json:"symbol"`
	Unit    string       `json:"unit"`
	Percent *Axes        `json:"percent"`
}

// Axes are the maxima of the chart axes.
type Axes struct {
	Flow float64 `json:"flow" validate:"gt=0"`
	Head float64 `json:"head" validate:"gt=0"`
}

// FitResponse is the fitted curve with its samples.
// Points are the input points in actual units ordered by flow.
type FitResponse struct {
	curve.Result
	Points    model.Points       `json:"points"`
	Trendline model.Points       `json:"trendline"`
	Speeds    []curve.SpeedCurve `json:"speeds"`
	// PercentTrendline is the trendline relative to the axes of a percent request.
	PercentTrendline model.Points `json:"percentTrendline,omitempty"`
}

// CaseResponse reports a stored case.
type CaseResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Case    model.Case `json:"case"`
}

const (
	SolveDiameter = "diameter"
	SolveFlowrate = "flowrate"
	SolveVelocity = "velocity"
)

// PipeRequest asks for the missing quantity of a pipe flow.
// Diameter is in mm, flowrate in m³/h and velocity in m/s.
type PipeRequest struct {
	Solve    string  `json:"solve" validate:"oneof=diameter flowrate velocity"`
	Diameter float64 `json:"diameter" validate:"gte=0"`
	Flowrate float64 `json:"flowrate" validate:"gte=0"`
	Velocity float64 `json:"velocity" validate:"gte=0"`
}

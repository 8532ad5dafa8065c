package curve

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"

	polymath "github.com/drakos74/pump-curve/internal/math"
	"github.com/drakos74/pump-curve/internal/metrics"
	"github.com/drakos74/pump-curve/internal/model"
)

const (
	Head       = "head"
	Efficiency = "efficiency"
	Custom     = "custom"
)

// ErrDegree is returned for a degree outside of the offered range.
var ErrDegree = errors.New("unsupported degree")

// Result is a fitted curve.
type Result struct {
	Degree       int       `json:"degree"`
	Coefficients []float64 `json:"coefficients"`
	Equation     string    `json:"equation"`
}

// SpeedCurve is a trendline scaled to a different pump speed.
type SpeedCurve struct {
	Ratio  float64      `json:"ratio"`
	Points model.Points `json:"points"`
}

// Fitter fits and samples pump curves.
type Fitter struct {
	config Config
	solve  func(x, y []float64, degree int) ([]float64, error)
}

// New creates a new fitter for the given config.
func New(cfg Config) (*Fitter, error) {
	if err := cfg.Prepare(); err != nil {
		return nil, err
	}
	f := &Fitter{
		config: cfg,
		solve:  polymath.Fit,
	}
	if cfg.Solver == QRSolver {
		f.solve = polymath.FitQR
	}
	return f, nil
}

// Config returns the effective config of the fitter.
func (f *Fitter) Config() Config {
	return f.config
}

// Fit fits a polynomial of the given degree through the points and renders its equation.
// An empty symbol falls back to the configured one.
func (f *Fitter) Fit(points model.Points, degree int, symbol, unit string) (Result, error) {
	if symbol == "" {
		symbol = f.config.Symbol
	}
	return f.fit(Custom, points, degree, polymath.EquationFormat{
		Precision:    f.config.Precision,
		DropNearZero: true,
		Threshold:    f.config.Threshold,
		Symbol:       symbol,
		Unit:         unit,
	})
}

func (f *Fitter) fit(curve string, points model.Points, degree int, format polymath.EquationFormat) (Result, error) {
	if err := model.ValidDegree(degree); err != nil {
		return Result{}, fmt.Errorf("%s curve: %v: %w", curve, err, ErrDegree)
	}

	start := time.Now()
	x, y := points.XY()
	c, err := f.solve(x, y, degree)
	metrics.Observer.Fit(curve, err, time.Since(start))
	if err != nil {
		log.Debug().
			Err(err).
			Str("curve", curve).
			Int("points", len(points)).
			Int("degree", degree).
			Msg("could not fit curve")
		return Result{}, fmt.Errorf("could not fit %s curve: %w", curve, err)
	}

	result := Result{
		Degree:       degree,
		Coefficients: c,
		Equation:     polymath.FormatEquation(c, format),
	}
	log.Debug().
		Str("curve", curve).
		Int("points", len(points)).
		Int("degree", degree).
		Str("equation", result.Equation).
		Msg("fitted curve")
	return result, nil
}

// Trendline samples the polynomial from the smallest flow up to the configured extent of the largest flow.
func (f *Fitter) Trendline(coefficients []float64, points model.Points) model.Points {
	if len(points) == 0 || len(coefficients) == 0 {
		return model.Points{}
	}
	x, _ := points.XY()
	xx, yy := polymath.Sample(coefficients, floats.Min(x), floats.Max(x)*f.config.Extent, f.config.Steps)
	line := make(model.Points, len(xx))
	for i := range xx {
		line[i] = model.Point{X: xx[i], Y: yy[i]}
	}
	return line
}

// SpeedCurves applies the affinity laws to the trendline for every configured speed ratio.
func (f *Fitter) SpeedCurves(trendline model.Points) []SpeedCurve {
	curves := make([]SpeedCurve, len(f.config.Speeds))
	for i, r := range f.config.Speeds {
		curves[i] = SpeedCurve{
			Ratio:  r,
			Points: model.ScaleAll(trendline, r),
		}
	}
	return curves
}

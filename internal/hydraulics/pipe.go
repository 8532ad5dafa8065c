package hydraulics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for non-positive dimensions.
var ErrInvalidInput = errors.New("invalid input")

const secondsPerHour = 3600

// Velocity returns the mean velocity in m/s of the given flow in m³/h through a pipe of the given diameter in mm.
func Velocity(diameter, flow float64) (float64, error) {
	if err := positive("diameter", diameter); err != nil {
		return 0, err
	}
	if err := positive("flow", flow); err != nil {
		return 0, err
	}
	return flow / secondsPerHour / area(diameter), nil
}

// Flowrate returns the flow in m³/h through a pipe of the given diameter in mm at the given velocity in m/s.
func Flowrate(diameter, velocity float64) (float64, error) {
	if err := positive("diameter", diameter); err != nil {
		return 0, err
	}
	if err := positive("velocity", velocity); err != nil {
		return 0, err
	}
	return area(diameter) * velocity * secondsPerHour, nil
}

// Diameter returns the pipe diameter in mm that carries the given flow in m³/h at the given velocity in m/s.
func Diameter(flow, velocity float64) (float64, error) {
	if err := positive("flow", flow); err != nil {
		return 0, err
	}
	if err := positive("velocity", velocity); err != nil {
		return 0, err
	}
	q := flow / secondsPerHour
	return math.Sqrt(4*q/(math.Pi*velocity)) * 1000, nil
}

// area is the cross-section in m² of a pipe with a diameter in mm.
func area(diameter float64) float64 {
	d := diameter / 1000
	return math.Pi * d * d / 4
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be positive, got %v: %w", name, v, ErrInvalidInput)
	}
	return nil
}

package model

import "sort"

// Point is a single sample of a curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Points is a series of curve samples.
type Points []Point

// XY splits the points into their x and y values.
func (pp Points) XY() (x, y []float64) {
	x = make([]float64, len(pp))
	y = make([]float64, len(pp))
	for i, p := range pp {
		x[i] = p.X
		y[i] = p.Y
	}
	return x, y
}

// Sorted returns a copy of the points ordered by x.
func (pp Points) Sorted() Points {
	s := make(Points, len(pp))
	copy(s, pp)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].X < s[j].X
	})
	return s
}

// OperatingPoint is a measured duty point of a pump.
type OperatingPoint struct {
	Flow       float64  `json:"flow"`
	Head       float64  `json:"head"`
	Efficiency *float64 `json:"efficiency,omitempty"`
}

// NewOperatingPoint creates an operating point without efficiency.
func NewOperatingPoint(flow, head float64) OperatingPoint {
	return OperatingPoint{
		Flow: flow,
		Head: head,
	}
}

// WithEfficiency sets the efficiency of the operating point.
func (op OperatingPoint) WithEfficiency(e float64) OperatingPoint {
	op.Efficiency = &e
	return op
}

// HeadPoints projects the operating points on the flow-head plane.
func HeadPoints(ops []OperatingPoint) Points {
	pp := make(Points, len(ops))
	for i, op := range ops {
		pp[i] = Point{X: op.Flow, Y: op.Head}
	}
	return pp
}

// EfficiencyPoints projects the operating points that carry an efficiency on the flow-efficiency plane.
func EfficiencyPoints(ops []OperatingPoint) Points {
	pp := make(Points, 0, len(ops))
	for _, op := range ops {
		if op.Efficiency != nil {
			pp = append(pp, Point{X: op.Flow, Y: *op.Efficiency})
		}
	}
	return pp
}

// Scale applies the pump affinity laws for the given speed ratio.
// Flow scales linearly and head quadratically with speed.
func Scale(p Point, ratio float64) Point {
	return Point{
		X: p.X * ratio,
		Y: p.Y * ratio * ratio,
	}
}

// ScaleAll applies Scale to every point.
func ScaleAll(pp Points, ratio float64) Points {
	s := make(Points, len(pp))
	for i, p := range pp {
		s[i] = Scale(p, ratio)
	}
	return s
}

// FromPercent converts a point given as a percentage of the axis maxima into actual units.
func FromPercent(p Point, maxX, maxY float64) Point {
	return Point{
		X: p.X * maxX / 100,
		Y: p.Y * maxY / 100,
	}
}

// ToPercent converts a point in actual units into a percentage of the axis maxima.
// A zero maximum maps to zero.
func ToPercent(p Point, maxX, maxY float64) Point {
	var pp Point
	if maxX != 0 {
		pp.X = p.X * 100 / maxX
	}
	if maxY != 0 {
		pp.Y = p.Y * 100 / maxY
	}
	return pp
}

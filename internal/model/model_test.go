package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {

	type test struct {
		input  Point
		ratio  float64
		output Point
	}

	tests := map[string]test{
		"80%": {
			input:  Point{X: 100, Y: 48},
			ratio:  0.8,
			output: Point{X: 80, Y: 30.72},
		},
		"100%": {
			input:  Point{X: 100, Y: 48},
			ratio:  1,
			output: Point{X: 100, Y: 48},
		},
		"shutoff": {
			input:  Point{X: 0, Y: 50},
			ratio:  0.5,
			output: Point{X: 0, Y: 12.5},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := Scale(tt.input, tt.ratio)
			assert.InDelta(t, tt.output.X, p.X, 1e-9)
			assert.InDelta(t, tt.output.Y, p.Y, 1e-9)
		})
	}

}

func TestScaleAll(t *testing.T) {

	pp := Points{{X: 100, Y: 48}, {X: 200, Y: 42}}
	s := ScaleAll(pp, 0.6)

	assert.Len(t, s, 2)
	assert.InDelta(t, 60.0, s[0].X, 1e-9)
	assert.InDelta(t, 17.28, s[0].Y, 1e-9)
	assert.InDelta(t, 120.0, s[1].X, 1e-9)
	assert.InDelta(t, 15.12, s[1].Y, 1e-9)
	// the input is left untouched
	assert.Equal(t, Points{{X: 100, Y: 48}, {X: 200, Y: 42}}, pp)

}

func TestPercent(t *testing.T) {

	p := FromPercent(Point{X: 50, Y: 25}, 300, 60)
	assert.InDelta(t, 150.0, p.X, 1e-9)
	assert.InDelta(t, 15.0, p.Y, 1e-9)

	back := ToPercent(p, 300, 60)
	assert.InDelta(t, 50.0, back.X, 1e-9)
	assert.InDelta(t, 25.0, back.Y, 1e-9)

	assert.Equal(t, Point{}, ToPercent(Point{X: 1, Y: 1}, 0, 0))

}

func TestProjections(t *testing.T) {

	ops := []OperatingPoint{
		NewOperatingPoint(0, 50),
		NewOperatingPoint(100, 48).WithEfficiency(60),
		NewOperatingPoint(200, 42).WithEfficiency(85),
	}

	assert.Equal(t, Points{{X: 0, Y: 50}, {X: 100, Y: 48}, {X: 200, Y: 42}}, HeadPoints(ops))
	assert.Equal(t, Points{{X: 100, Y: 60}, {X: 200, Y: 85}}, EfficiencyPoints(ops))

	x, y := HeadPoints(ops).XY()
	assert.Equal(t, []float64{0, 100, 200}, x)
	assert.Equal(t, []float64{50, 48, 42}, y)

}

func TestSorted(t *testing.T) {

	pp := Points{{X: 3, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}
	s := pp.Sorted()

	assert.Equal(t, Points{{X: 1, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 1}}, s)
	assert.Equal(t, Point{X: 3, Y: 1}, pp[0])

}

func TestCase_Validate(t *testing.T) {

	type test struct {
		c   Case
		err bool
	}

	valid := Case{
		CaseName: "case",
		Equations: Equations{
			Head:       Equation{Degree: 2},
			Efficiency: Equation{Degree: 3},
		},
	}

	noName := valid
	noName.CaseName = " "

	highDegree := valid
	highDegree.Equations.Head.Degree = 5

	zeroDegree := valid
	zeroDegree.Equations.Efficiency.Degree = 0

	tests := map[string]test{
		"valid":       {c: valid},
		"no-name":     {c: noName, err: true},
		"high-degree": {c: highDegree, err: true},
		"zero-degree": {c: zeroDegree, err: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.err {
				assert.True(t, errors.Is(err, ErrInvalidCase))
			} else {
				assert.NoError(t, err)
			}
		})
	}

}

func TestCaseName(t *testing.T) {

	assert.Equal(t, "plant_FEED_P-101_2025-04-07", CaseName(CaseInfo{
		ProjectName: "plant",
		Stage:       "FEED",
		PumpName:    "P-101",
		Date:        "2025-04-07",
	}))
	assert.Equal(t, "plant_P-101", CaseName(CaseInfo{ProjectName: "plant", PumpName: " P-101 "}))
	assert.Equal(t, "", CaseName(CaseInfo{}))

}

func TestTable(t *testing.T) {

	ops := []OperatingPoint{
		NewOperatingPoint(0, 50),
		NewOperatingPoint(100, 48.26).WithEfficiency(60),
	}

	assert.Equal(t, "No\tFlow\tHead\tEfficiency\n1\t0.0\t50.0\t\n2\t100.0\t48.3\t60.0\n", Table(ops))

}

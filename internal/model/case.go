package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MinDegree is the lowest polynomial degree offered for a curve.
	MinDegree = 1
	// MaxDegree is the highest polynomial degree offered for a curve.
	MaxDegree = 4

	// HeadUnit is appended to head equations.
	HeadUnit = "[m]"
	// EfficiencyUnit is appended to efficiency equations.
	EfficiencyUnit = "[%]"
)

// ErrInvalidCase is returned when a case cannot be stored.
var ErrInvalidCase = errors.New("invalid case")

// CaseInfo describes where a case belongs.
type CaseInfo struct {
	ProjectName string `json:"projectName,omitempty"`
	Stage       string `json:"stage,omitempty"`
	PumpName    string `json:"pumpName,omitempty"`
	Date        string `json:"date,omitempty"`
}

// MaxValues are the axis maxima of a case.
type MaxValues struct {
	Head       float64 `json:"head"`
	Flow       float64 `json:"flow,omitempty"`
	Efficiency float64 `json:"efficiency"`
}

// Equation is a fitted curve as it is exported.
type Equation struct {
	Degree       int       `json:"degree"`
	Equation     string    `json:"equation"`
	Coefficients []float64 `json:"coefficients,omitempty"`
}

// Equations holds the curves of a case.
type Equations struct {
	Head       Equation `json:"head"`
	Efficiency Equation `json:"efficiency"`
}

// Case is the exported dataset of a pump.
type Case struct {
	ID              string           `json:"id,omitempty"`
	CaseName        string           `json:"caseName"`
	Info            CaseInfo         `json:"caseInfo"`
	OperatingPoints []OperatingPoint `json:"operatingPoints"`
	MaxValues       MaxValues        `json:"maxValues"`
	Equations       Equations        `json:"equations"`
}

// Validate checks that the case can be exported.
func (c Case) Validate() error {
	if strings.TrimSpace(c.CaseName) == "" {
		return fmt.Errorf("missing case name: %w", ErrInvalidCase)
	}
	if err := ValidDegree(c.Equations.Head.Degree); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	if err := ValidDegree(c.Equations.Efficiency.Degree); err != nil {
		return fmt.Errorf("efficiency: %w", err)
	}
	return nil
}

// ValidDegree checks the degree is within the offered range.
func ValidDegree(d int) error {
	if d < MinDegree || d > MaxDegree {
		return fmt.Errorf("degree %d not in [%d,%d]: %w", d, MinDegree, MaxDegree, ErrInvalidCase)
	}
	return nil
}

// CaseName builds a default case name out of the non-empty parts of the info.
func CaseName(info CaseInfo) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{info.ProjectName, info.Stage, info.PumpName, info.Date} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "_")
}

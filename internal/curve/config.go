package curve

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

const (
	// NormalSolver solves the normal equations by gaussian elimination.
	NormalSolver = "normal"
	// QRSolver solves the least squares problem by qr factorisation.
	QRSolver = "qr"
)

var validate = validator.New()

// Config defines how curves are fitted, sampled and printed.
type Config struct {
	// Precision is the number of decimals of displayed equations.
	Precision int `yaml:"precision" json:"precision" default:"4" validate:"gte=0,lte=17"`
	// Threshold drops displayed terms with a smaller absolute coefficient.
	Threshold float64 `yaml:"threshold" json:"threshold" default:"0.0001" validate:"gte=0"`
	// Symbol is the variable name used in equations.
	Symbol string `yaml:"symbol" json:"symbol" default:"x" validate:"required"`
	// Steps is the number of intervals of a trendline.
	Steps int `yaml:"steps" json:"steps" default:"100" validate:"gte=1,lte=10000"`
	// Extent is how far beyond the largest flow the trendline reaches, as a factor.
	Extent float64 `yaml:"extent" json:"extent" default:"1.1" validate:"gte=1"`
	// Speeds are the speed ratios of the affinity curves.
	Speeds []float64 `yaml:"speeds" json:"speeds" default:"[1,0.8,0.6,0.4]" validate:"dive,gt=0,lte=2"`
	Solver string    `yaml:"solver" json:"solver" default:"normal" validate:"oneof=normal qr"`
}

// DefaultConfig returns the config with all defaults applied.
func DefaultConfig() Config {
	var cfg Config
	// the defaults are static and known to parse
	_ = defaults.Set(&cfg)
	return cfg
}

// Prepare fills in the missing values and validates the config.
func (c *Config) Prepare() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("could not set curve defaults: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid curve config: %w", err)
	}
	return nil
}

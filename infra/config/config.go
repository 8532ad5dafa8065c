package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/drakos74/pump-curve/internal/curve"
)

var validate = validator.New()

// Config is the configuration of the pump-curve service.
type Config struct {
	Server struct {
		Port  int  `yaml:"port" default:"6080" validate:"gte=1,lte=65535"`
		Debug bool `yaml:"debug"`
	} `yaml:"server"`
	Storage struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Backend string `yaml:"backend" default:"file" validate:"oneof=file redis"`
		Dir     string `yaml:"dir" default:"curvemaker"`
		Redis   struct {
			Addr   string `yaml:"addr" default:"localhost:6379" validate:"hostname_port"`
			Prefix string `yaml:"prefix" default:"pump"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	Cache struct {
		// Expiration of restored cases, zero keeps them until they are stored again.
		Expiration time.Duration `yaml:"expiration" default:"10m"`
	} `yaml:"cache"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
	} `yaml:"log"`
	Curve curve.Config `yaml:"curve"`
}

// Default returns the configuration with all defaults applied.
func Default() (*Config, error) {
	return Parse(nil)
}

// Parse parses the yaml payload, applies the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	// defaults go first so that explicit false and zero values in the file survive
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Load reads and parses a yaml configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// MustLoad loads the config from the given path and panics if it cannot.
// An empty path loads the defaults.
func MustLoad(path string) *Config {
	var c *Config
	var err error
	if path == "" {
		c, err = Default()
	} else {
		c, err = Load(path)
	}
	if err != nil {
		panic(fmt.Sprintf("could not load config from '%s': %s", path, err.Error()))
	}

	log.Info().Str("path", path).Msg("loaded config")

	return c
}

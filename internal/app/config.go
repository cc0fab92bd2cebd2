package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kajjjak/ATM/internal/cpt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	MethodsPath string // directory or file of method definitions
	Method      string // method code or path to a method file

	All       bool // enumerate every registered method
	Check     bool // only validate the registered methods
	CountOnly bool
	Output    string `validate:"oneof=text json"`

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	MaxDepth      int `validate:"min=0"`
	MaxPartitions int `validate:"min=0"`
}

var configValidate = validator.New()

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Method == "" && !cfg.All && !cfg.Check {
		return nil, errors.New("a method code or path is required unless -all or -check is set")
	}
	if cfg.Method != "" && cfg.All {
		return nil, errors.New("a method and -all are mutually exclusive")
	}

	if err := configValidate.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("invalid %s %q", strings.ToLower(fe.Field()), fmt.Sprint(fe.Value())))
			}
			return nil, errors.New(strings.Join(msgs, "; "))
		}
		return nil, err
	}

	return &cfg, nil
}

// Options returns the enumeration bounds of the configuration.
func (c *Config) Options() cpt.Options {
	return cpt.Options{MaxDepth: c.MaxDepth, MaxPartitions: c.MaxPartitions}
}

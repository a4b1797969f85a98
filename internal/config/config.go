// SPDX-License-Identifier: MIT

// Package config provides configuration loading, defaults, and validation for
// the molgeom command-line tool.
package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"gopkg.in/go-playground/validator.v9"

	"github.com/katalvlaran/molgeom/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// validate reports field names by their mapstructure keys.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Config is the root configuration.
type Config struct {
	Log       logging.Config  `mapstructure:"log" yaml:"log" json:"log"`
	Neighbors NeighborsConfig `mapstructure:"neighbors" yaml:"neighbors" json:"neighbors"`
	MDS       MDSConfig       `mapstructure:"mds" yaml:"mds" json:"mds"`
	Coulomb   CoulombConfig   `mapstructure:"coulomb" yaml:"coulomb" json:"coulomb"`
	Align     AlignConfig     `mapstructure:"align" yaml:"align" json:"align"`
	KFold     KFoldConfig     `mapstructure:"kfold" yaml:"kfold" json:"kfold"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" json:"output"`
}

// NeighborsConfig drives the neighbour search commands.
type NeighborsConfig struct {
	Cutoff       float64 `mapstructure:"cutoff" yaml:"cutoff" json:"cutoff" validate:"gte=0"`
	SelfLoops    bool    `mapstructure:"self_loops" yaml:"self_loops" json:"self_loops"`
	Sort         bool    `mapstructure:"sort" yaml:"sort" json:"sort"`
	Unbounded    bool    `mapstructure:"unbounded" yaml:"unbounded" json:"unbounded"`
	Wrap         bool    `mapstructure:"wrap" yaml:"wrap" json:"wrap"`
	MaxNeighbors int     `mapstructure:"max_neighbors" yaml:"max_neighbors" json:"max_neighbors" validate:"gte=0"` // molecules only, 0 = all
}

// MDSConfig drives coordinate reconstruction.
type MDSConfig struct {
	Dim    int  `mapstructure:"dim" yaml:"dim" json:"dim" validate:"min=1"`
	Center int  `mapstructure:"center" yaml:"center" json:"center" validate:"min=-1"` // -1 = centroid
	Strict bool `mapstructure:"strict" yaml:"strict" json:"strict"`
}

// CoulombConfig drives the Coulomb matrix decoder.
type CoulombConfig struct {
	UnitConversion float64 `mapstructure:"unit_conversion" yaml:"unit_conversion" json:"unit_conversion" validate:"gt=0"`
	EdgeCutoff     float64 `mapstructure:"edge_cutoff" yaml:"edge_cutoff" json:"edge_cutoff" validate:"gte=0"`
}

// AlignConfig drives the Kabsch alignment.
type AlignConfig struct {
	CorrectReflection bool `mapstructure:"correct_reflection" yaml:"correct_reflection" json:"correct_reflection"`
}

// KFoldConfig drives the fold generator.
type KFoldConfig struct {
	Folds   int   `mapstructure:"folds" yaml:"folds" json:"folds" validate:"min=2"`
	Shuffle bool  `mapstructure:"shuffle" yaml:"shuffle" json:"shuffle"`
	Seed    int64 `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// OutputConfig selects the result encoding.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=yaml json"`
}

// Validate checks every section and returns the first violation. Range
// rules live in the validate struct tags; finiteness is checked here.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return fmt.Errorf("%v: %w", err, ErrInvalid)
		}
		fe := verrs[0]
		key := fe.Namespace()
		if k := strings.IndexByte(key, '.'); k >= 0 {
			key = key[k+1:]
		}

		return fmt.Errorf("%s=%v violates %q: %w", key, fe.Value(), fieldRule(fe), ErrInvalid)
	}

	if math.IsInf(c.Neighbors.Cutoff, 0) {
		return fmt.Errorf("neighbors.cutoff must be finite: %w", ErrInvalid)
	}
	if math.IsInf(c.Coulomb.UnitConversion, 0) {
		return fmt.Errorf("coulomb.unit_conversion must be finite: %w", ErrInvalid)
	}

	return nil
}

func fieldRule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}

	return fe.Tag() + "=" + fe.Param()
}

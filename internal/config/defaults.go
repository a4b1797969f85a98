// SPDX-License-Identifier: MIT

package config

import (
	"github.com/spf13/viper"

	"github.com/katalvlaran/molgeom/logging"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultCutoff = 4.0

	DefaultMDSDim    = 3
	DefaultMDSCenter = -1

	DefaultUnitConversion = 1.0
	DefaultEdgeCutoff     = 4.0

	DefaultFolds = 5

	DefaultOutputFormat = "yaml"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:       logging.Config{Level: DefaultLogLevel, Format: DefaultLogFormat, OutputPaths: []string{"stderr"}},
		Neighbors: NeighborsConfig{Cutoff: DefaultCutoff, Sort: true},
		MDS:       MDSConfig{Dim: DefaultMDSDim, Center: DefaultMDSCenter},
		Coulomb:   CoulombConfig{UnitConversion: DefaultUnitConversion, EdgeCutoff: DefaultEdgeCutoff},
		KFold:     KFoldConfig{Folds: DefaultFolds},
		Output:    OutputConfig{Format: DefaultOutputFormat},
	}
}

// setDefaults registers every key with viper. Registered keys are also the
// ones AutomaticEnv can override, so every field must appear here.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", d.Log.OutputPaths)

	v.SetDefault("neighbors.cutoff", d.Neighbors.Cutoff)
	v.SetDefault("neighbors.self_loops", d.Neighbors.SelfLoops)
	v.SetDefault("neighbors.sort", d.Neighbors.Sort)
	v.SetDefault("neighbors.unbounded", d.Neighbors.Unbounded)
	v.SetDefault("neighbors.wrap", d.Neighbors.Wrap)
	v.SetDefault("neighbors.max_neighbors", d.Neighbors.MaxNeighbors)

	v.SetDefault("mds.dim", d.MDS.Dim)
	v.SetDefault("mds.center", d.MDS.Center)
	v.SetDefault("mds.strict", d.MDS.Strict)

	v.SetDefault("coulomb.unit_conversion", d.Coulomb.UnitConversion)
	v.SetDefault("coulomb.edge_cutoff", d.Coulomb.EdgeCutoff)

	v.SetDefault("align.correct_reflection", d.Align.CorrectReflection)

	v.SetDefault("kfold.folds", d.KFold.Folds)
	v.SetDefault("kfold.shuffle", d.KFold.Shuffle)
	v.SetDefault("kfold.seed", d.KFold.Seed)

	v.SetDefault("output.format", d.Output.Format)
}

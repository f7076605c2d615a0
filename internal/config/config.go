// Package config handles conversion tool configuration loading and
// management.
package config

import (
	"github.com/Faultbox/geomesh/pkg/feature"
	"github.com/Faultbox/geomesh/pkg/geom"
	"github.com/Faultbox/geomesh/pkg/proj"
)

// Config holds all tool settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExtentConfig is an optional bounding box in configuration form.
type ExtentConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// ConvertConfig holds the feature conversion settings.
type ConvertConfig struct {
	CRS                    string        `yaml:"crs"`        // storage/output CRS
	SourceCRS              string        `yaml:"source_crs"` // CRS of the input data
	Structure              int           `yaml:"structure"`  // 2 or 3
	MergeFeatures          bool          `yaml:"merge_features"`
	BuildExtent            bool          `yaml:"build_extent"`
	OverrideAltitudeToZero bool          `yaml:"override_altitude_to_zero"`
	FilterExtent           *ExtentConfig `yaml:"filter_extent"` // optional, source CRS
	// ExtrudeProperty names a numeric property used as the extrusion
	// height for polygons. Empty means flat polygons.
	ExtrudeProperty string `yaml:"extrude_property"`
}

// FeatureOptions maps the conversion settings onto collection options.
func (c ConvertConfig) FeatureOptions() feature.Options {
	opts := feature.Options{
		CRS:                    c.CRS,
		SourceCRS:              c.SourceCRS,
		Structure:              c.Structure,
		MergeFeatures:          c.MergeFeatures,
		BuildExtent:            c.BuildExtent,
		OverrideAltitudeToZero: c.OverrideAltitudeToZero,
	}
	if c.FilterExtent != nil {
		e := geom.NewExtent()
		e.ExpandXY(c.FilterExtent.MinX, c.FilterExtent.MinY)
		e.ExpandXY(c.FilterExtent.MaxX, c.FilterExtent.MaxY)
		opts.FilterExtent = &e
	}
	return opts
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			CRS:           proj.CRSMercator,
			SourceCRS:     proj.CRSGeographic,
			Structure:     2,
			MergeFeatures: true,
			BuildExtent:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

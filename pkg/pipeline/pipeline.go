// Package pipeline provides the core classification pipeline.
//
// This package implements the complete load → classify → render flow shared
// by the CLI and the HTTP API. Centralizing it keeps caching and logging
// behavior identical across entry points.
//
// # Stages
//
//  1. Load: parse a relation source (ERD definition, TOML manifest, or
//     JSON relation set) into the wire format
//  2. Classify: run the layer classifier, cached by the hash of the
//     canonical relation-set JSON
//  3. Render: produce output artifacts (DOT, SVG, PNG, JSON)
//
// Each stage can be run independently or as part of Execute:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "workspace.erd",
//	    Formats: []string{pipeline.FormatDOT},
//	})
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mvidal/strata/pkg/classifier"
	"github.com/mvidal/strata/pkg/layers"
)

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// DefaultTTL bounds how long cached layerings are kept. Classification is
// deterministic, so entries never go stale; the TTL only limits storage.
const DefaultTTL = 24 * time.Hour

// Sentinel errors for pipeline configuration.
var (
	// ErrNoInput is returned when Options.Input is empty.
	ErrNoInput = errors.New("no input source")

	// ErrUnknownSourceFormat is returned for input files whose extension
	// maps to no known loader.
	ErrUnknownSourceFormat = errors.New("unknown source format")

	// ErrUnknownOutputFormat is returned for unsupported output formats.
	ErrUnknownOutputFormat = errors.New("unknown output format")
)

// Options configures a pipeline run.
type Options struct {
	// Input is the path to the relation source. The loader is chosen by
	// extension: .erd, .toml, or .json.
	Input string `json:"input"`

	// Name overrides the relation-set name. Defaults to the set's own
	// name, falling back to the input file stem.
	Name string `json:"name,omitempty"`

	// Formats lists the artifacts to render. Defaults to none; Execute
	// still returns the layering itself.
	Formats []string `json:"formats,omitempty"`

	// Observer receives engine diagnostics for cache misses. Cache hits
	// skip classification entirely, so no events fire for them.
	Observer classifier.Observer `json:"-"`
}

// ValidateAndSetDefaults checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" {
		return ErrNoInput
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("%w: %q", ErrUnknownOutputFormat, f)
		}
	}
	return nil
}

// stem returns the file name without directory or extension, the fallback
// name for sources that don't carry one.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Timing holds per-stage durations of a pipeline run.
type Timing struct {
	Load     time.Duration `json:"load"`
	Classify time.Duration `json:"classify"`
	Render   time.Duration `json:"render"`
}

// Result is the output of a pipeline run.
type Result struct {
	Set       layers.RelationSet `json:"set"`
	Layering  layers.Layering    `json:"layering"`
	Isolated  []string           `json:"isolated,omitempty"`
	Artifacts map[string][]byte  `json:"-"`
	CacheHit  bool               `json:"cache_hit"`
	Timing    Timing             `json:"timing"`
}

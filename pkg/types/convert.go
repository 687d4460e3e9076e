// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of a single document conversion.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionRecord is one entry in the conversion history: a single pandoc
// run against a single input file.
type ConversionRecord struct {
	// Input is the path of the converted file as given on the command line.
	Input string `json:"input" yaml:"input"`

	// Output is the resolved output path (from the notebook's output
	// metadata key, the --output flag, or the <base>.pdf default).
	Output string `json:"output" yaml:"output"`

	// Status records whether the conversion succeeded.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Duration is the wall-clock time of the pandoc invocation.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// ArgCount is the number of arguments passed to pandoc, input included.
	ArgCount int `json:"arg_count" yaml:"arg_count"`

	// Error holds the failure message for failed conversions.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ConvertedAt is the time the run finished.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PandocConfig holds settings for assembling and running the pandoc command.
type PandocConfig struct {
	// Binary is the pandoc executable name or path (default "pandoc").
	Binary string `json:"binary" yaml:"binary"`

	// PDFEngine is the LaTeX engine emitted as the default --pdf-engine
	// flag when the user's extra flags do not name one (default "xelatex").
	PDFEngine string `json:"pdf_engine" yaml:"pdf_engine"`

	// DocumentClass is the LaTeX document class emitted when the document
	// body contains CJK text (default "ctexart").
	DocumentClass string `json:"document_class" yaml:"document_class"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Enabled controls whether conversion runs are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the history database (default ".nbpandoc").
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all nbpandoc configuration.
type Config struct {
	Pandoc  PandocConfig  `json:"pandoc" yaml:"pandoc"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// DefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Pandoc: PandocConfig{
			Binary:        "pandoc",
			PDFEngine:     "xelatex",
			DocumentClass: "ctexart",
		},
		History: HistoryConfig{
			Enabled: true,
			Dir:     ".nbpandoc",
		},
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook loads Jupyter notebook files and exposes their top-level
// metadata and markdown source text.
package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrNotFound reports an input file that does not exist or cannot be read.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidMetadata reports notebook content whose metadata section is
	// malformed: the file is not valid JSON, or metadata is not an object.
	ErrInvalidMetadata = errors.New("invalid notebook metadata")
)

// Metadata is the notebook's top-level metadata object. Keys the mapper does
// not recognize are preserved untouched so the full object can be handed to
// pandoc as a metadata file.
type Metadata map[string]any

// Notebook is a parsed .ipynb file.
type Notebook struct {
	// Metadata is the top-level metadata object; empty when the notebook
	// carries none.
	Metadata Metadata

	cells []cell
}

// cell is the subset of a notebook cell nbpandoc cares about.
type cell struct {
	CellType string     `json:"cell_type"`
	Source   cellSource `json:"source"`
}

// cellSource accepts both source encodings the nbformat allows: a single
// string or a list of line strings.
type cellSource string

func (s *cellSource) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = cellSource(single)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cell source is neither string nor string list: %w", err)
	}
	*s = cellSource(strings.Join(lines, ""))
	return nil
}

// rawNotebook mirrors the nbformat top level. Metadata stays raw so a
// non-object value can be diagnosed instead of silently dropped.
type rawNotebook struct {
	Cells    []cell          `json:"cells"`
	Metadata json.RawMessage `json:"metadata"`
}

// Load reads and parses the notebook at path.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes notebook JSON. A missing metadata section yields an empty
// Metadata; a metadata section that is not a JSON object is an error.
func Parse(data []byte) (*Notebook, error) {
	var raw rawNotebook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	meta := Metadata{}
	if len(raw.Metadata) > 0 && string(raw.Metadata) != "null" {
		if err := json.Unmarshal(raw.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("%w: metadata is not a JSON object", ErrInvalidMetadata)
		}
	}

	return &Notebook{Metadata: meta, cells: raw.Cells}, nil
}

// SourceText concatenates the source of all markdown cells, in order. This
// is the document body used for title fallback and CJK detection.
func (n *Notebook) SourceText() string {
	var b strings.Builder
	for _, c := range n.cells {
		if c.CellType != "markdown" {
			continue
		}
		b.WriteString(string(c.Source))
		b.WriteString("\n")
	}
	return b.String()
}

// str returns the metadata value for key when it is a plain string.
func (m Metadata) str(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Author returns the author metadata value, if set.
func (m Metadata) Author() (string, bool) { return m.str("author") }

// Date returns the date metadata value, if set.
func (m Metadata) Date() (string, bool) { return m.str("date") }

// Title returns the title metadata value, if set.
func (m Metadata) Title() (string, bool) { return m.str("title") }

// Lang returns the lang metadata value, if set.
func (m Metadata) Lang() (string, bool) { return m.str("lang") }

// Output returns the output metadata value, if set.
func (m Metadata) Output() (string, bool) { return m.str("output") }

// NumberSections reports whether the numbersections key is set to true.
func (m Metadata) NumberSections() bool {
	v, ok := m["numbersections"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// PandocArgs returns the raw pandoc_args metadata value, or nil when absent.
// Interpretation of its map/string/list forms lives in the argument mapper.
func (m Metadata) PandocArgs() any {
	return m["pandoc_args"]
}

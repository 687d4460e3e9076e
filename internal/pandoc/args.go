// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc maps notebook metadata to pandoc command-line arguments and
// runs the pandoc binary.
package pandoc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/nbpandoc/internal/notebook"
	"github.com/pdiddy/nbpandoc/pkg/types"
)

const (
	flagNumberSections = "--number-sections"
	flagPDFEngine      = "--pdf-engine"
	flagMetadata       = "--metadata"
	flagVariable       = "--variable"
)

// BuildArgs maps notebook metadata and the scanned document body to an
// ordered list of derived pandoc flags. User-supplied extra flags are
// appended after the derived flags by the caller, so the underlying tool's
// later-wins precedence favors them; additionally, a derived flag is
// suppressed entirely when extraFlags already names it, so each flag appears
// at most once from this side.
func BuildArgs(meta notebook.Metadata, body, extraFlags string, cfg types.PandocConfig) []string {
	var args []string

	emit := func(guard, flag string) {
		if !userSpecifies(extraFlags, guard) {
			args = append(args, flag)
		}
	}

	if meta.NumberSections() {
		emit(flagNumberSections, flagNumberSections)
	}

	if author, ok := meta.Author(); ok {
		emit(flagMetadata+"=author", metaFlag("author", author))
	}
	if date, ok := meta.Date(); ok {
		emit(flagMetadata+"=date", metaFlag("date", date))
	}
	if lang, ok := meta.Lang(); ok {
		emit(flagMetadata+"=lang", metaFlag("lang", lang))
	}

	// Title always gets a value: the metadata key, else the first top-level
	// heading, else empty.
	title, ok := meta.Title()
	if !ok {
		title = FirstHeading(body)
	}
	emit(flagMetadata+"=title", metaFlag("title", title))

	engine := cfg.PDFEngine
	if ContainsCJK(body) {
		// CJK glyphs need xelatex and a CJK-capable document class.
		engine = "xelatex"
		emit("documentclass", flagVariable+"=documentclass:"+cfg.DocumentClass)
	}
	emit(flagPDFEngine, flagPDFEngine+"="+engine)

	return args
}

// metaFlag formats one --metadata=key:value flag.
func metaFlag(key, value string) string {
	return fmt.Sprintf("%s=%s:%s", flagMetadata, key, value)
}

// userSpecifies reports whether the extra-flags string already names the
// given flag, by substring match on the flag name.
func userSpecifies(extraFlags, name string) bool {
	return strings.Contains(extraFlags, name)
}

// SplitFlags turns the user's extra-flags string into argument tokens.
func SplitFlags(extraFlags string) []string {
	return strings.Fields(extraFlags)
}

// AppendMetaArgs appends the notebook's pandoc_args metadata value to args.
// Three forms are accepted: a map (keys converted from underscore_style to
// hyphen-style, list values JSON encoded), a string of whitespace-separated
// flags, or a list of such strings. Any other shape is invalid metadata.
func AppendMetaArgs(args []string, v any) ([]string, error) {
	switch pa := v.(type) {
	case nil:
		return args, nil
	case map[string]any:
		keys := make([]string, 0, len(pa))
		for k := range pa {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flag := "--" + strings.ReplaceAll(k, "_", "-")
			switch val := pa[k].(type) {
			case []any:
				enc, err := json.Marshal(val)
				if err != nil {
					return nil, fmt.Errorf("%w: pandoc_args value for %s: %v",
						notebook.ErrInvalidMetadata, k, err)
				}
				args = append(args, flag+"="+string(enc))
			default:
				args = append(args, fmt.Sprintf("%s=%v", flag, val))
			}
		}
		return args, nil
	case string:
		return append(args, strings.Fields(pa)...), nil
	case []any:
		for _, item := range pa {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: invalid pandoc_args item: %v",
					notebook.ErrInvalidMetadata, item)
			}
			args = append(args, strings.Fields(s)...)
		}
		return args, nil
	default:
		return nil, fmt.Errorf("%w: unsupported pandoc_args type %T",
			notebook.ErrInvalidMetadata, v)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates document conversion: it loads the input,
// assembles the pandoc argument list from notebook metadata, and runs the
// converter, reporting per-file status and a batch summary.
package convert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nbpandoc/internal/notebook"
	"github.com/pdiddy/nbpandoc/internal/pandoc"
	"github.com/pdiddy/nbpandoc/pkg/types"
)

// Runner invokes the external converter with an assembled argument list.
// *pandoc.Invoker is the production implementation.
type Runner interface {
	// Run executes the converter and returns its captured stderr.
	Run(args []string, w io.Writer) (string, error)
}

// Request describes one conversion as given on the command line.
type Request struct {
	// Input is the path to the .ipynb or .md file to convert.
	Input string

	// Output overrides the output path; empty means the notebook's output
	// metadata key, falling back to <base>.pdf.
	Output string

	// ExtraFlags is the user's extra-flags string. It is appended after all
	// derived flags and takes precedence over them.
	ExtraFlags string
}

// Plan is a fully assembled conversion: the argument list to hand to the
// converter plus the resolved output path. Close removes the temporary
// metadata file, if one was written.
type Plan struct {
	Input  string
	Output string
	Args   []string

	metaFile string
}

// Close removes the plan's temporary metadata file. Safe to call when no
// metadata file was written.
func (p *Plan) Close() {
	if p.metaFile != "" {
		os.Remove(p.metaFile)
	}
}

// BuildPlan loads the input file and assembles the pandoc argument list.
// Notebook inputs contribute metadata-derived flags, a metadata file, and
// their pandoc_args; Markdown inputs pass through with only body-derived
// flags, since their metadata semantics are left to pandoc itself.
func BuildPlan(req Request, cfg types.PandocConfig) (*Plan, error) {
	var (
		meta notebook.Metadata
		body string
	)

	switch ext := strings.ToLower(filepath.Ext(req.Input)); ext {
	case ".ipynb":
		nb, err := notebook.Load(req.Input)
		if err != nil {
			return nil, err
		}
		meta = nb.Metadata
		body = nb.SourceText()
	case ".md":
		data, err := os.ReadFile(req.Input)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", req.Input, notebook.ErrNotFound)
			}
			return nil, fmt.Errorf("reading %s: %w", req.Input, err)
		}
		meta = notebook.Metadata{}
		body = string(data)
	default:
		return nil, fmt.Errorf("unsupported input %s: expected .md or .ipynb", req.Input)
	}

	plan := &Plan{Input: req.Input}
	args := []string{req.Input}
	args = append(args, pandoc.BuildArgs(meta, body, req.ExtraFlags, cfg)...)

	// Hand the full metadata object to pandoc so keys beyond the mapped
	// ones stay available to templates.
	if len(meta) > 0 {
		metaFile, err := writeMetadataFile(meta)
		if err != nil {
			return nil, err
		}
		plan.metaFile = metaFile
		args = append(args, "--metadata-file="+metaFile)
	}

	plan.Output = resolveOutput(req, meta)
	if req.Output == "" {
		if _, ok := meta.Output(); !ok {
			args = append(args, "--to=pdf")
		}
	}
	args = append(args, "--output="+plan.Output)

	args, err := pandoc.AppendMetaArgs(args, meta.PandocArgs())
	if err != nil {
		plan.Close()
		return nil, err
	}

	// User flags last, so they win the underlying tool's later-overrides-
	// earlier precedence.
	args = append(args, pandoc.SplitFlags(req.ExtraFlags)...)

	plan.Args = args
	return plan, nil
}

// resolveOutput picks the output path: CLI flag, then the notebook's output
// metadata key, then <base>.pdf next to the input.
func resolveOutput(req Request, meta notebook.Metadata) string {
	if req.Output != "" {
		return req.Output
	}
	if out, ok := meta.Output(); ok {
		return out
	}
	base := strings.TrimSuffix(req.Input, filepath.Ext(req.Input))
	return base + ".pdf"
}

// writeMetadataFile marshals the metadata object to a temporary YAML file
// for pandoc's --metadata-file flag.
func writeMetadataFile(meta notebook.Metadata) (string, error) {
	f, err := os.CreateTemp("", "nbpandoc-meta-*.yaml")
	if err != nil {
		return "", fmt.Errorf("creating metadata file: %w", err)
	}
	data, err := yaml.Marshal(map[string]any(meta))
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("marshaling metadata: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing metadata file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing metadata file: %w", err)
	}
	return f.Name(), nil
}

// File converts a single input through the runner, printing a status line to
// w. The returned record describes the run whether it succeeded or failed.
func File(r Runner, req Request, cfg types.PandocConfig, w io.Writer) (types.ConversionRecord, error) {
	rec := types.ConversionRecord{Input: req.Input}

	plan, err := BuildPlan(req, cfg)
	if err != nil {
		rec.Status = types.ConversionFailed
		rec.Error = err.Error()
		rec.ConvertedAt = time.Now().UTC()
		fmt.Fprintf(w, "failed:    %s (%v)\n", req.Input, err)
		return rec, err
	}
	defer plan.Close()

	rec.Output = plan.Output
	rec.ArgCount = len(plan.Args)

	start := time.Now()
	_, err = r.Run(plan.Args, w)
	rec.Duration = time.Since(start)
	rec.ConvertedAt = time.Now().UTC()

	if err != nil {
		rec.Status = types.ConversionFailed
		rec.Error = err.Error()
		fmt.Fprintf(w, "failed:    %s (%v)\n", req.Input, err)
		return rec, err
	}

	rec.Status = types.ConversionDone
	fmt.Fprintf(w, "converted: %s -> %s\n", req.Input, plan.Output)
	return rec, nil
}

// BatchResult holds the outcome of a multi-file conversion run.
type BatchResult struct {
	Converted int
	Failed    int

	// Records holds one entry per input, in input order.
	Records []types.ConversionRecord
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch converts each input in turn, printing per-file status to w and a
// summary line after the last file. A failed input does not stop the batch.
func Batch(r Runner, inputs []string, output, extraFlags string, cfg types.PandocConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, input := range inputs {
		req := Request{Input: input, Output: output, ExtraFlags: extraFlags}
		rec, err := File(r, req, cfg, w)
		result.Records = append(result.Records, rec)
		if err != nil {
			result.Failed++
			continue
		}
		result.Converted++
	}
	if len(inputs) > 1 {
		fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
			result.Converted, result.Failed, result.Total())
	}
	return result
}

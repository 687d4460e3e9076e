// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nbpandoc CLI: a pandoc wrapper
// that converts Jupyter notebooks and Markdown files to PDF with flags
// derived from the notebook's embedded metadata.
// See docs/ARCHITECTURE § Pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbpandoc/internal/convert"
	"github.com/pdiddy/nbpandoc/internal/history"
	"github.com/pdiddy/nbpandoc/internal/pandoc"
	"github.com/pdiddy/nbpandoc/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Unlike most cobra CLIs it does the actual
// work itself: `nbpandoc file.ipynb` converts the file.
var rootCmd = &cobra.Command{
	Use:   "nbpandoc <filename>...",
	Short: "Convert Jupyter notebooks and Markdown to PDF via pandoc",
	Long: `nbpandoc converts Markdown or Jupyter notebook files to LaTeX PDF via
pandoc, mapping the notebook's embedded metadata (author, date, title,
numbersections, pandoc_args) to pandoc command-line flags. Extra flags
given with --flags are appended last and take precedence over every
derived flag.

Documents containing CJK text are rendered with xelatex and a CJK-capable
document class automatically.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nbpandoc.yaml or ~/.config/nbpandoc/config.yaml)")

	rootCmd.Flags().String("flags", "--pdf-engine=xelatex", "extra pandoc flags, appended after derived flags")
	rootCmd.Flags().String("output", "", "output path (default: the notebook's output metadata key, else <base>.pdf)")
	rootCmd.Flags().Bool("dry-run", false, "print the assembled pandoc command without running it")
	rootCmd.Flags().Bool("no-history", false, "skip recording this run in the conversion history")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nbpandoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nbpandoc"))
		}
	}

	viper.SetEnvPrefix("NBPANDOC")
	viper.AutomaticEnv()

	def := types.DefaultConfig()
	viper.SetDefault("pandoc.binary", def.Pandoc.Binary)
	viper.SetDefault("pandoc.pdf_engine", def.Pandoc.PDFEngine)
	viper.SetDefault("pandoc.document_class", def.Pandoc.DocumentClass)
	viper.SetDefault("history.enabled", def.History.Enabled)
	viper.SetDefault("history.dir", def.History.Dir)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the viper state into the typed config.
func loadConfig() types.Config {
	return types.Config{
		Pandoc: types.PandocConfig{
			Binary:        viper.GetString("pandoc.binary"),
			PDFEngine:     viper.GetString("pandoc.pdf_engine"),
			DocumentClass: viper.GetString("pandoc.document_class"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Dir:     viper.GetString("history.dir"),
		},
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("filename required (.md or .ipynb)")
	}

	extraFlags, _ := cmd.Flags().GetString("flags")
	output, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg := loadConfig()

	if dryRun {
		for _, input := range args {
			plan, err := convert.BuildPlan(convert.Request{
				Input:      input,
				Output:     output,
				ExtraFlags: extraFlags,
			}, cfg.Pandoc)
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(append([]string{cfg.Pandoc.Binary}, plan.Args...), " "))
			plan.Close()
		}
		return nil
	}

	inv, err := pandoc.NewInvoker(cfg.Pandoc.Binary)
	if err != nil {
		return err
	}

	result := convert.Batch(inv, args, output, extraFlags, cfg.Pandoc, os.Stdout)

	if cfg.History.Enabled && !noHistory {
		recordHistory(cfg.History, result.Records)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// recordHistory appends the run's records to the history store. History
// problems never fail a conversion; they warn and move on.
func recordHistory(cfg types.HistoryConfig, recs []types.ConversionRecord) {
	store, err := history.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: conversion history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	for _, rec := range recs {
		if err := store.Record(context.Background(), rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

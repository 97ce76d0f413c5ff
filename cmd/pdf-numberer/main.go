// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-numberer CLI. The root
// command merges the PDFs of a folder and numbers the pages of the result;
// subcommands inspect the merge order and print the version.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-numberer/internal/pipeline"
	"github.com/pdiddy/pdf-numberer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds the state shared by the commands of one execution.
type app struct {
	v       *viper.Viper
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	cfgFile string
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}

	rootCmd := &cobra.Command{
		Use:   "pdf-numberer",
		Short: "Merge the PDFs of a folder and number the pages",
		Long: `pdf-numberer merges every PDF in a folder into one document, ordered by
the naming convention of the files ("1. Intro.pdf", "A2 Annex.pdf",
"B Summary.pdf", "report 7.pdf"), then stamps a page number on every page.

The number color, alignment, and font are taken from flags, the
environment (PDF_NUMBERER_*), or a config file; anything still missing is
asked for interactively unless --no-input is given.

The result is written to final_numbered_pdfs_<timestamp>.pdf in the
folder. The intermediate merged_pdfs_<timestamp>.pdf is removed unless
--keep-merged is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		RunE: a.runNumber,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./pdf-numberer.yaml or ~/.config/pdf-numberer/pdf-numberer.yaml)")

	flags := rootCmd.Flags()
	flags.String("dir", "", "folder containing the PDFs (default: current folder)")
	flags.String("color", "", "page number color: "+joinOptions(types.Colors))
	flags.String("align", "", "page number alignment: "+joinOptions(types.Alignments))
	flags.String("font", "", "page number font: "+joinOptions(types.Fonts))
	flags.Bool("keep-merged", false, "keep the intermediate merged file")
	flags.Bool("no-input", false, "never prompt; use defaults for unset values")
	flags.String("summary", string(types.SummaryText), "summary format: text, yaml, or json")

	for key, flag := range map[string]string{
		"dir":         "dir",
		"color":       "color",
		"align":       "align",
		"font":        "font",
		"keep_merged": "keep-merged",
		"no_input":    "no-input",
		"summary":     "summary",
	} {
		// Lookup cannot fail for flags registered above.
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newOrderCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	return rootCmd
}

// initConfig wires the config file and environment into the viper
// instance. A missing default config file is not an error; an explicit
// --config that cannot be read is.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("pdf-numberer")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "pdf-numberer"))
		}
	}

	a.v.SetEnvPrefix("PDF_NUMBERER")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err == nil {
		fmt.Fprintln(a.errOut, "Using config file:", a.v.ConfigFileUsed())
	} else if a.cfgFile != "" {
		return fmt.Errorf("reading config file %s: %w", a.cfgFile, err)
	}
	return nil
}

func (a *app) runNumber(cmd *cobra.Command, args []string) error {
	format, err := types.ParseSummaryFormat(a.v.GetString("summary"))
	if err != nil {
		return err
	}
	// Machine-readable summaries own stdout; progress moves to stderr.
	progress := a.out
	if format != types.SummaryText {
		progress = a.errOut
	}

	cfg, err := a.runConfig(&prompter{in: a.in, out: progress})
	if err != nil {
		return err
	}
	cfg.Summary = format

	fmt.Fprintf(progress, "\nFolder: %s\nPage numbers: %s, %s, %s\n\n",
		cfg.Dir, cfg.Style.Color, cfg.Style.Alignment, cfg.Style.Font)

	res, err := (&pipeline.Runner{Out: progress}).Run(cfg)
	if err != nil {
		return err
	}
	return writeSummary(a.out, res, format)
}

// runConfig resolves every run setting. A value set by flag, environment
// or config file wins; otherwise it is prompted for, or defaulted under
// --no-input.
func (a *app) runConfig(p *prompter) (types.RunConfig, error) {
	noInput := a.v.GetBool("no_input")
	cfg := types.RunConfig{KeepMerged: a.v.GetBool("keep_merged")}

	switch {
	case a.v.IsSet("dir"):
		cfg.Dir = a.v.GetString("dir")
	case noInput:
		cfg.Dir = "."
	default:
		dir, err := p.Dir()
		if err != nil {
			return cfg, err
		}
		cfg.Dir = dir
	}

	var err error
	cfg.Style.Color, err = resolve(a, "color", types.ParseColor, types.DefaultStyle.Color, noInput,
		func() (types.Color, error) {
			return choose(p, "Choose the page number color:", types.Colors)
		})
	if err != nil {
		return cfg, err
	}
	cfg.Style.Alignment, err = resolve(a, "align", types.ParseAlignment, types.DefaultStyle.Alignment, noInput,
		func() (types.Alignment, error) {
			return choose(p, "Choose the page number alignment:", types.Alignments)
		})
	if err != nil {
		return cfg, err
	}
	cfg.Style.Font, err = resolve(a, "font", types.ParseFont, types.DefaultStyle.Font, noInput,
		func() (types.FontName, error) {
			return choose(p, "Choose the page number font:", types.Fonts)
		})
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolve returns the configured value of key, the default under
// --no-input, or asks for it.
func resolve[T ~string](a *app, key string, parse func(string) (T, error), def T, noInput bool, ask func() (T, error)) (T, error) {
	switch {
	case a.v.IsSet(key):
		v, err := parse(a.v.GetString(key))
		if err != nil {
			return "", fmt.Errorf("--%s: %w", key, err)
		}
		return v, nil
	case noInput:
		return def, nil
	}
	return ask()
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	rootCmd := newRootCmd(in, out, errOut)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

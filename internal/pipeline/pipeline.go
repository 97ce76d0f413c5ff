// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one merge-and-number pass over a folder: collect the
// PDFs in order, merge them into an intermediate file, number the pages of
// that file into the final artifact, and remove the intermediate file.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/pdf-numberer/internal/collect"
	"github.com/pdiddy/pdf-numberer/internal/merge"
	"github.com/pdiddy/pdf-numberer/internal/overlay"
	"github.com/pdiddy/pdf-numberer/internal/pdfdoc"
	"github.com/pdiddy/pdf-numberer/internal/sortkey"
	"github.com/pdiddy/pdf-numberer/pkg/types"
)

const (
	mergedPrefix    = "merged_pdfs_"
	finalPrefix     = "final_numbered_pdfs_"
	timestampLayout = "20060102_150405"
)

// ArtifactPaths returns the intermediate and final output paths in dir for
// a run started at t.
func ArtifactPaths(dir string, t time.Time) (merged, final string) {
	stamp := t.Format(timestampLayout)
	return filepath.Join(dir, mergedPrefix+stamp+".pdf"),
		filepath.Join(dir, finalPrefix+stamp+".pdf")
}

// Entry is one input file and its sort key.
type Entry struct {
	Path string      `json:"path" yaml:"path"`
	Key  sortkey.Key `json:"key" yaml:"key"`
}

// Plan lists the PDFs of dir in merge order. A nil extractor uses the
// default naming rules.
func Plan(dir string, e *sortkey.Extractor) ([]Entry, error) {
	if e == nil {
		e = sortkey.New()
	}
	paths, err := collect.PDFs(dir, e)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(paths))
	for i, p := range paths {
		entries[i] = Entry{Path: p, Key: e.Extract(p)}
	}
	return entries, nil
}

// PrintPlan writes the numbered file list with keys to w.
func PrintPlan(w io.Writer, entries []Entry) {
	fmt.Fprintln(w, "PDF files found, in merge order:")
	for i, e := range entries {
		fmt.Fprintf(w, "  %2d. %s (key: %s)\n", i+1, filepath.Base(e.Path), e.Key)
	}
}

// Result describes a completed run.
type Result struct {
	Dir        string            `json:"dir" yaml:"dir"`
	Style      types.RenderStyle `json:"style" yaml:"style"`
	Inputs     []Entry           `json:"inputs" yaml:"inputs"`
	MergedPath string            `json:"merged_path" yaml:"merged_path"`
	FinalPath  string            `json:"final_path" yaml:"final_path"`
	KeptMerged bool              `json:"kept_merged" yaml:"kept_merged"`
	Merge      merge.Summary     `json:"merge" yaml:"merge"`
	Overlay    overlay.Summary   `json:"overlay" yaml:"overlay"`
	// Pages is the merged page count; Numbered counts pages that carry a
	// number in the final file.
	Pages    int `json:"pages" yaml:"pages"`
	Numbered int `json:"numbered" yaml:"numbered"`
}

// Runner carries the collaborators of a run. The zero value uses the
// default naming rules, the wall clock, pdfcpu for stamping, and discards
// progress output.
type Runner struct {
	Extractor  *sortkey.Extractor
	Now        func() time.Time
	Out        io.Writer
	Compositor overlay.Compositor
}

// Run executes one pass with cfg, writing progress to w.
func Run(cfg types.RunConfig, w io.Writer) (*Result, error) {
	r := &Runner{Out: w}
	return r.Run(cfg)
}

// Run executes one pass with cfg. Only configuration problems and output
// failures are returned as errors; bad documents and pages are recorded in
// the result's summaries. When no page survives the merge or the numbering
// pass, the run still succeeds: no final file is written and the result's
// FinalPath is empty.
func (r *Runner) Run(cfg types.RunConfig) (*Result, error) {
	w := r.Out
	if w == nil {
		w = io.Discard
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	if err := cfg.Style.Validate(); err != nil {
		return nil, err
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving folder %s: %w", cfg.Dir, err)
	}

	entries, err := Plan(dir, r.Extractor)
	if err != nil {
		return nil, err
	}
	PrintPlan(w, entries)

	res := &Result{Dir: dir, Style: cfg.Style, Inputs: entries}
	res.MergedPath, res.FinalPath = ArtifactPaths(dir, now())

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	fmt.Fprintln(w)
	doc, msum := merge.New(merge.PDFOpener, w).Merge(paths)
	res.Merge = msum
	res.Pages = doc.PageCount()
	if doc.PageCount() == 0 {
		fmt.Fprintln(w, "No pages could be merged; nothing to number.")
		res.MergedPath, res.FinalPath = "", ""
		return res, nil
	}
	if err := writeFile(res.MergedPath, doc.Write); err != nil {
		return res, err
	}
	fmt.Fprintf(w, "Merged PDF saved: %s\n  Total pages: %d\n\n", res.MergedPath, res.Pages)

	merged, err := pdfdoc.Open(res.MergedPath)
	if err != nil {
		return res, fmt.Errorf("reopening merged file: %w", err)
	}
	numbered := overlay.New(cfg.Style, r.Compositor, w).Apply(merged)
	res.Overlay = numbered.Summary
	res.Numbered = numbered.Summary.Count(overlay.StatusNumbered)
	if len(numbered.Pages) == 0 {
		fmt.Fprintln(w, "Every page was dropped while numbering; no numbered PDF written.")
		res.FinalPath = ""
	} else {
		if err := writeFile(res.FinalPath, numbered.Write); err != nil {
			return res, err
		}
		fmt.Fprintf(w, "Numbered PDF saved: %s\n", res.FinalPath)
	}

	if cfg.KeepMerged {
		res.KeptMerged = true
	} else if err := os.Remove(res.MergedPath); err != nil {
		return res, fmt.Errorf("removing merged file: %w", err)
	}
	return res, nil
}

// writeFile creates path, lets write fill it, and closes it. On any error
// the partial file is removed.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

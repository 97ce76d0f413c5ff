// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-numberer/internal/merge"
	"github.com/pdiddy/pdf-numberer/internal/overlay"
	"github.com/pdiddy/pdf-numberer/internal/pipeline"
	"github.com/pdiddy/pdf-numberer/pkg/types"
)

// writeSummary renders the run result in the chosen format.
func writeSummary(w io.Writer, res *pipeline.Result, format types.SummaryFormat) error {
	switch format {
	case types.SummaryYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return enc.Close()
	case types.SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case types.SummaryText, "":
		writeTextSummary(w, res)
		return nil
	default:
		return fmt.Errorf("unsupported summary format %q", format)
	}
}

func writeTextSummary(w io.Writer, res *pipeline.Result) {
	m, o := res.Merge, res.Overlay

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "Done.")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Documents:  %d (%d merged, %d partial, %d skipped)\n",
		len(res.Inputs), m.Count(merge.OutcomeMerged), m.Count(merge.OutcomePartial), m.Count(merge.OutcomeSkipped))
	fmt.Fprintf(w, "Pages:      %d (%d numbered, %d blank, %d dropped)\n",
		res.Pages, o.Count(overlay.StatusNumbered), o.Count(overlay.StatusBlank), o.Count(overlay.StatusDropped))
	fmt.Fprintf(w, "Style:      %s, %s, %s\n", res.Style.Color, res.Style.Alignment, res.Style.Font)
	if res.FinalPath == "" {
		fmt.Fprintln(w, "Output:     none (no pages to number)")
	} else {
		fmt.Fprintf(w, "Output:     %s\n", res.FinalPath)
	}
	if res.KeptMerged {
		fmt.Fprintf(w, "Merged:     %s\n", res.MergedPath)
	}

	if !m.HasFaults() && !o.HasFaults() {
		return
	}
	fmt.Fprintln(w, "\nProblems:")
	for _, d := range m.Documents {
		name := filepath.Base(d.Path)
		if d.Outcome == merge.OutcomeSkipped {
			reason := d.Reason
			if reason == "" {
				reason = "no pages"
			}
			fmt.Fprintf(w, "  %s: skipped (%s)\n", name, reason)
		}
		for _, f := range d.PageFaults {
			fmt.Fprintf(w, "  %s page %d: dropped (%s)\n", name, f.Page, f.Reason)
		}
	}
	for _, p := range o.Pages {
		if p.Status != overlay.StatusNumbered {
			fmt.Fprintf(w, "  output page %d: %s (%s)\n", p.Slot, p.Status, p.Reason)
		}
	}
}

package types

import (
	"fmt"
	"strings"
)

// SummaryFormat selects how the run summary is printed.
type SummaryFormat string

const (
	SummaryText SummaryFormat = "text"
	SummaryYAML SummaryFormat = "yaml"
	SummaryJSON SummaryFormat = "json"
)

// SummaryFormats lists the accepted summary formats.
var SummaryFormats = []SummaryFormat{SummaryText, SummaryYAML, SummaryJSON}

// ParseSummaryFormat accepts a format name in any case. The empty string
// means text.
func ParseSummaryFormat(s string) (SummaryFormat, error) {
	if s == "" {
		return SummaryText, nil
	}
	for _, f := range SummaryFormats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported summary format %q: use one of %s", s, joinValues(SummaryFormats))
}

// RunConfig holds everything a single merge-and-number run needs.
type RunConfig struct {
	// Dir is the folder whose PDFs are merged. Outputs are written here too.
	Dir string `json:"dir" yaml:"dir"`

	// Style is the page-number appearance.
	Style RenderStyle `json:"style" yaml:"style"`

	// KeepMerged retains the intermediate merged file after a successful run.
	KeepMerged bool `json:"keep_merged" yaml:"keep_merged"`

	// Summary selects the summary output format: text, yaml, or json.
	Summary SummaryFormat `json:"summary" yaml:"summary"`
}

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdf-numberer/internal/pdfdoc"
)

// fixturesDir is where Fixtures writes sample input folders.
const fixturesDir = "testdata"

// sample is one generated input document.
type sample struct {
	name  string
	pages []pdfdoc.PageSpec
}

func letterPages(name string, n int) []pdfdoc.PageSpec {
	specs := make([]pdfdoc.PageSpec, n)
	for i := range specs {
		specs[i] = pdfdoc.PageSpec{Paper: "Letter", Text: fmt.Sprintf("%s page %d", name, i+1)}
	}
	return specs
}

// samples covers every naming tier, including a landscape, an A4, and a
// cropped page.
var samples = []sample{
	{"1. Introduction", letterPages("Introduction", 2)},
	{"2. Methods", letterPages("Methods", 3)},
	{"10. Appendix", letterPages("Appendix", 1)},
	{"A1 Annex", letterPages("Annex", 2)},
	{"AB2 Tables", []pdfdoc.PageSpec{
		{Paper: "A4L", Text: "Tables landscape"},
		{Paper: "A4", Text: "Tables A4"},
		{Paper: "Letter", Crop: "[36 36 576 756]", Text: "Tables cropped"},
	}},
	{"B Summary", letterPages("Summary", 1)},
	{"report 7", letterPages("report 7", 1)},
	{"notes", letterPages("notes", 1)},
}

// Fixtures writes a sample folder of PDFs to testdata/sample for manual
// runs, e.g. bin/pdf-numberer --dir testdata/sample --no-input.
func Fixtures() error {
	dir := filepath.Join(fixturesDir, "sample")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for _, s := range samples {
		path := filepath.Join(dir, s.name+".pdf")
		data, err := pdfdoc.Create(s.pages)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Printf("Wrote %d sample PDFs to %s\n", len(samples), dir)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates the pages of ordered source PDFs into one
// document. A document that cannot be opened is skipped and a page that
// cannot be copied is dropped; neither stops the run.
package merge

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/pdf-numberer/internal/pdfdoc"
)

// ErrEmpty reports a merge in which no page from any document survived.
var ErrEmpty = errors.New("no pages could be merged")

// Source is an opened input document.
type Source interface {
	PageCount() int
	// Page returns page nr (1-based) as a single-page PDF.
	Page(nr int) ([]byte, error)
	Encrypted() bool
}

// Opener opens source documents by path.
type Opener interface {
	Open(path string) (Source, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) (Source, error)

// Open implements Opener.
func (f OpenerFunc) Open(path string) (Source, error) { return f(path) }

// PDFOpener opens documents with pdfdoc, decrypting with an empty password.
var PDFOpener = OpenerFunc(func(path string) (Source, error) {
	doc, err := pdfdoc.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
})

// Outcome is the result of merging one source document.
type Outcome string

const (
	OutcomeMerged  Outcome = "merged"  // every page appended
	OutcomePartial Outcome = "partial" // some pages dropped
	OutcomeSkipped Outcome = "skipped" // no page appended
)

// PageFault records a page that could not be appended.
type PageFault struct {
	Page int   `json:"page" yaml:"page"`
	Err  error `json:"-" yaml:"-"`
	// Reason is Err as text, for rendered summaries.
	Reason string `json:"reason" yaml:"reason"`
}

// DocumentResult describes what one source contributed.
type DocumentResult struct {
	Path       string      `json:"path" yaml:"path"`
	Outcome    Outcome     `json:"outcome" yaml:"outcome"`
	Encrypted  bool        `json:"encrypted" yaml:"encrypted"`
	PageCount  int         `json:"page_count" yaml:"page_count"`
	Appended   int         `json:"appended" yaml:"appended"`
	PageFaults []PageFault `json:"page_faults,omitempty" yaml:"page_faults,omitempty"`
	Err        error       `json:"-" yaml:"-"`
	// Reason is Err as text, for rendered summaries.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Summary holds the per-document results of a merge.
type Summary struct {
	Documents []DocumentResult `json:"documents" yaml:"documents"`
	Pages     int              `json:"pages" yaml:"pages"`
}

// Count returns the number of documents with outcome o.
func (s Summary) Count(o Outcome) int {
	n := 0
	for _, d := range s.Documents {
		if d.Outcome == o {
			n++
		}
	}
	return n
}

// PageFaults returns the total number of dropped pages.
func (s Summary) PageFaults() int {
	n := 0
	for _, d := range s.Documents {
		n += len(d.PageFaults)
	}
	return n
}

// HasFaults reports whether any document or page was lost.
func (s Summary) HasFaults() bool {
	return s.Count(OutcomeSkipped) > 0 || s.PageFaults() > 0
}

// Page is one page of the merged document with its provenance.
type Page struct {
	Source     string
	SourcePage int
	Data       []byte
}

// Document is the merged page sequence.
type Document struct {
	Pages []Page
}

// PageCount returns the number of merged pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// Page returns merged page nr (1-based) as a single-page PDF.
func (d *Document) Page(nr int) ([]byte, error) {
	if nr < 1 || nr > len(d.Pages) {
		return nil, fmt.Errorf("page %d out of range 1-%d", nr, len(d.Pages))
	}
	return d.Pages[nr-1].Data, nil
}

// Write persists the merged pages to w as one PDF.
func (d *Document) Write(w io.Writer) error {
	if len(d.Pages) == 0 {
		return ErrEmpty
	}
	data := make([][]byte, len(d.Pages))
	for i, p := range d.Pages {
		data[i] = p.Data
	}
	if err := pdfdoc.Concat(data, w); err != nil {
		return fmt.Errorf("writing merged document: %w", err)
	}
	return nil
}

// Engine merges documents in the order given.
type Engine struct {
	opener Opener
	w      io.Writer
}

// New returns an Engine that opens documents with opener and writes
// progress lines to w. A nil opener means PDFOpener.
func New(opener Opener, w io.Writer) *Engine {
	if opener == nil {
		opener = PDFOpener
	}
	if w == nil {
		w = io.Discard
	}
	return &Engine{opener: opener, w: w}
}

// Merge appends every readable page of every document in paths.
func (e *Engine) Merge(paths []string) (*Document, Summary) {
	doc := &Document{}
	var summary Summary

	fmt.Fprintln(e.w, "Merging PDFs...")
	for _, path := range paths {
		res := e.mergeOne(doc, path)
		summary.Documents = append(summary.Documents, res)
	}
	summary.Pages = len(doc.Pages)

	fmt.Fprintf(e.w, "Merge summary: %d merged, %d partial, %d skipped (%d pages)\n",
		summary.Count(OutcomeMerged), summary.Count(OutcomePartial), summary.Count(OutcomeSkipped), summary.Pages)
	return doc, summary
}

func (e *Engine) mergeOne(doc *Document, path string) DocumentResult {
	name := filepath.Base(path)
	res := DocumentResult{Path: path}

	src, err := e.opener.Open(path)
	if err != nil {
		res.Outcome = OutcomeSkipped
		res.Err = err
		res.Reason = err.Error()
		res.Encrypted = errors.Is(err, pdfdoc.ErrEncrypted)
		if res.Encrypted {
			fmt.Fprintf(e.w, "skipped: %s (encrypted, could not decrypt)\n", name)
		} else {
			fmt.Fprintf(e.w, "skipped: %s (%v)\n", name, err)
		}
		return res
	}

	res.Encrypted = src.Encrypted()
	res.PageCount = src.PageCount()
	if res.Encrypted {
		fmt.Fprintf(e.w, "  warning: %s is encrypted, opened with empty password\n", name)
	}

	for nr := 1; nr <= res.PageCount; nr++ {
		data, err := src.Page(nr)
		if err != nil {
			fmt.Fprintf(e.w, "  warning: page %d of %s: %v\n", nr, name, err)
			res.PageFaults = append(res.PageFaults, PageFault{Page: nr, Err: err, Reason: err.Error()})
			continue
		}
		doc.Pages = append(doc.Pages, Page{Source: path, SourcePage: nr, Data: data})
		res.Appended++
	}

	switch {
	case res.Appended == 0:
		res.Outcome = OutcomeSkipped
		fmt.Fprintf(e.w, "skipped: %s (no pages)\n", name)
	case len(res.PageFaults) > 0:
		res.Outcome = OutcomePartial
		fmt.Fprintf(e.w, "added:   %s (%d of %d pages)\n", name, res.Appended, res.PageCount)
	default:
		res.Outcome = OutcomeMerged
		fmt.Fprintf(e.w, "added:   %s (%d pages)\n", name, res.Appended)
	}
	return res
}

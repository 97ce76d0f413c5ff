// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlay stamps sequential page numbers onto a merged document.
//
// Each page slot n receives the label "n" in the run's RenderStyle, its
// baseline 30pt above the bottom of the visible page (the crop box). A page that cannot be measured or stamped is
// replaced by a blank Letter page; if even that fails the slot is dropped.
// Numbering counts every slot, so later pages keep their position-based
// number. A blank replacement carries no number.
package overlay

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/pdf-numberer/internal/pdfdoc"
	"github.com/pdiddy/pdf-numberer/pkg/types"
)

// Layout constants, in points.
const (
	FontSize   = 12
	Baseline   = 30.0
	SideMargin = 50.0
)

// progressEvery is how often a progress line is printed, in pages.
const progressEvery = 10

// ErrNoOutput reports that every page slot was dropped.
var ErrNoOutput = errors.New("no pages left to write")

// Placement is where a label's baseline starts on the page.
type Placement struct {
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	TextWidth float64 `json:"text_width" yaml:"text_width"`
}

// Measure returns the width of text in font at size points.
type Measure func(text, font string, size int) float64

// Place computes the label position on a page of the given width. Left and
// right alignment use a fixed 50pt margin measured to the start of the
// text; center alignment uses the measured text width.
func Place(style types.RenderStyle, pageWidth float64, text string, measure Measure) Placement {
	tw := measure(text, string(style.Font), FontSize)
	p := Placement{Y: Baseline, TextWidth: tw}
	switch style.Alignment {
	case types.AlignLeft:
		p.X = SideMargin
	case types.AlignCenter:
		p.X = (pageWidth - tw) / 2
	default:
		p.X = pageWidth - SideMargin
	}
	return p
}

// Pages is a document to number.
type Pages interface {
	PageCount() int
	// Page returns page nr (1-based) as a single-page PDF.
	Page(nr int) ([]byte, error)
}

// Compositor performs the PDF work for the engine.
type Compositor interface {
	Size(page []byte) (width, height float64, err error)
	Stamp(page []byte, label string, p Placement, style types.RenderStyle) ([]byte, error)
	Blank(paper string) ([]byte, error)
	TextWidth(text, font string, size int) float64
}

// PDFCompositor implements Compositor with pdfcpu.
type PDFCompositor struct{}

func (PDFCompositor) Size(page []byte) (float64, float64, error) {
	return pdfdoc.PageSize(page)
}

func (PDFCompositor) Stamp(page []byte, label string, p Placement, style types.RenderStyle) ([]byte, error) {
	return pdfdoc.Stamp(page, pdfdoc.Label{
		Text:     label,
		Font:     string(style.Font),
		Size:     FontSize,
		ColorHex: style.Color.Hex(),
		X:        p.X,
		Y:        p.Y,
	})
}

func (PDFCompositor) Blank(paper string) ([]byte, error) {
	return pdfdoc.Blank(paper)
}

func (PDFCompositor) TextWidth(text, font string, size int) float64 {
	return pdfdoc.TextWidth(text, font, size)
}

// Status is what happened to a page slot.
type Status string

const (
	StatusNumbered Status = "numbered"
	StatusBlank    Status = "blank"
	StatusDropped  Status = "dropped"
)

// PageResult describes one page slot.
type PageResult struct {
	Slot      int       `json:"slot" yaml:"slot"`
	Label     string    `json:"label" yaml:"label"`
	Status    Status    `json:"status" yaml:"status"`
	Width     float64   `json:"width" yaml:"width"`
	Height    float64   `json:"height" yaml:"height"`
	Placement Placement `json:"placement" yaml:"placement"`
	Err       error     `json:"-" yaml:"-"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Summary holds the per-slot results of a numbering pass.
type Summary struct {
	Pages []PageResult `json:"pages" yaml:"pages"`
}

// Count returns the number of slots with status s.
func (s Summary) Count(st Status) int {
	n := 0
	for _, p := range s.Pages {
		if p.Status == st {
			n++
		}
	}
	return n
}

// HasFaults reports whether any slot was replaced or dropped.
func (s Summary) HasFaults() bool {
	return s.Count(StatusBlank) > 0 || s.Count(StatusDropped) > 0
}

// Result is the numbered document.
type Result struct {
	Pages   [][]byte
	Summary Summary
}

// Write persists the numbered pages to w as one PDF.
func (r *Result) Write(w io.Writer) error {
	if len(r.Pages) == 0 {
		return ErrNoOutput
	}
	if err := pdfdoc.Concat(r.Pages, w); err != nil {
		return fmt.Errorf("writing numbered document: %w", err)
	}
	return nil
}

// Engine numbers documents in one RenderStyle.
type Engine struct {
	style types.RenderStyle
	comp  Compositor
	w     io.Writer
}

// New returns an Engine. A nil comp means PDFCompositor; progress lines
// go to w.
func New(style types.RenderStyle, comp Compositor, w io.Writer) *Engine {
	if comp == nil {
		comp = PDFCompositor{}
	}
	if w == nil {
		w = io.Discard
	}
	return &Engine{style: style, comp: comp, w: w}
}

// Apply numbers every page of src.
func (e *Engine) Apply(src Pages) *Result {
	total := src.PageCount()
	result := &Result{}

	fmt.Fprintln(e.w, "Adding page numbers...")
	for slot := 1; slot <= total; slot++ {
		res := PageResult{Slot: slot, Label: strconv.Itoa(slot)}

		out, err := e.number(src, &res)
		if err != nil {
			res.Err = err
			res.Reason = err.Error()
			fmt.Fprintf(e.w, "  warning: page %d: %v\n", slot, err)
			out = e.substitute(&res)
		} else {
			res.Status = StatusNumbered
		}
		if out != nil {
			result.Pages = append(result.Pages, out)
		}
		result.Summary.Pages = append(result.Summary.Pages, res)

		if slot%progressEvery == 0 || slot == total {
			fmt.Fprintf(e.w, "  processed %d/%d pages\n", slot, total)
		}
	}
	return result
}

func (e *Engine) number(src Pages, res *PageResult) ([]byte, error) {
	page, err := src.Page(res.Slot)
	if err != nil {
		return nil, err
	}
	w, h, err := e.comp.Size(page)
	if err != nil {
		return nil, fmt.Errorf("reading page size: %w", err)
	}
	res.Width, res.Height = w, h
	res.Placement = Place(e.style, w, res.Label, e.comp.TextWidth)
	return e.comp.Stamp(page, res.Label, res.Placement, e.style)
}

// substitute returns a blank Letter page for a failed slot, or nil when
// the slot has to be dropped.
func (e *Engine) substitute(res *PageResult) []byte {
	blank, err := e.comp.Blank(pdfdoc.FallbackPaper)
	if err != nil {
		res.Status = StatusDropped
		fmt.Fprintf(e.w, "  page %d dropped: %v\n", res.Slot, err)
		return nil
	}
	res.Status = StatusBlank
	res.Width, res.Height = pdfdoc.FallbackWidth, pdfdoc.FallbackHeight
	res.Placement = Placement{}
	fmt.Fprintf(e.w, "  page %d replaced with a blank page\n", res.Slot)
	return blank
}

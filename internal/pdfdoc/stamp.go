// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"bytes"
	"fmt"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Label is a single line of text whose baseline starts at X, Y, in points
// from the bottom-left corner of the page's visible box.
type Label struct {
	Text     string
	Font     string
	Size     int
	ColorHex string
	X, Y     float64
}

// description renders l in pdfcpu's stamp description syntax. pdfcpu
// anchors the stamp's bounding box, not its baseline, and sets the text
// inside that box raised by the font descent rounded up to a whole point.
func (l Label) description() string {
	y := l.Y - math.Ceil(font.Descent(l.Font, l.Size))
	return fmt.Sprintf(
		"fontname:%s, points:%d, fillcolor:%s, scalefactor:1 abs, rotation:0, position:bl, offset:%.3f %.3f, opacity:1",
		l.Font, l.Size, l.ColorHex, l.X, y,
	)
}

// Stamp draws l on top of every page of page and returns the new PDF.
// The original content stays underneath the label.
func Stamp(page []byte, l Label) ([]byte, error) {
	var buf bytes.Buffer
	err := guard(func() error {
		wm, err := api.TextWatermark(l.Text, l.description(), true, false, types.POINTS)
		if err != nil {
			return err
		}
		return api.AddWatermarks(bytes.NewReader(page), &buf, nil, wm, NewConfig())
	})
	if err != nil {
		return nil, fmt.Errorf("stamping %q: %w", l.Text, err)
	}
	return buf.Bytes(), nil
}

// TextWidth returns the width in points of text set in one of the standard
// core fonts at size points.
func TextWidth(text, fontName string, size int) float64 {
	return font.TextWidth(text, fontName, size)
}

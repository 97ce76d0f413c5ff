// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-numberer/internal/pdfdoc"
	"github.com/pdiddy/pdf-numberer/internal/pdfdoc/pdfdoctest"
	"github.com/pdiddy/pdf-numberer/pkg/types"
)

// fakePages serves "page-N" payloads and fails the slots listed in bad.
type fakePages struct {
	n   int
	bad map[int]bool
}

func (f *fakePages) PageCount() int { return f.n }

func (f *fakePages) Page(nr int) ([]byte, error) {
	if f.bad[nr] {
		return nil, errors.New("dangling page reference")
	}
	return []byte(fmt.Sprintf("page-%d", nr)), nil
}

// fakeCompositor records stamps. Pages listed in badSize or badStamp fail
// the corresponding step; failBlank makes every substitution fail.
type fakeCompositor struct {
	width, height float64
	badSize       map[string]bool
	badStamp      map[string]bool
	failBlank     bool
	stamped       []string
}

func (f *fakeCompositor) Size(page []byte) (float64, float64, error) {
	if f.badSize[string(page)] {
		return 0, 0, errors.New("missing MediaBox")
	}
	return f.width, f.height, nil
}

func (f *fakeCompositor) Stamp(page []byte, label string, p Placement, style types.RenderStyle) ([]byte, error) {
	if f.badStamp[string(page)] {
		return nil, errors.New("font resource clash")
	}
	f.stamped = append(f.stamped, label)
	return []byte(fmt.Sprintf("%s#%s@%.1f", page, label, p.X)), nil
}

func (f *fakeCompositor) Blank(paper string) ([]byte, error) {
	if f.failBlank {
		return nil, errors.New("out of memory")
	}
	return []byte("blank-" + paper), nil
}

// TextWidth gives every glyph 6 points at size 12.
func (f *fakeCompositor) TextWidth(text, font string, size int) float64 {
	return float64(len(text)) * float64(size) / 2
}

func TestPlace(t *testing.T) {
	measure := func(text, font string, size int) float64 { return 10 }
	tests := []struct {
		align types.Alignment
		want  float64
	}{
		{types.AlignLeft, 50},
		{types.AlignRight, 562},
		{types.AlignCenter, 301},
	}
	for _, tt := range tests {
		t.Run(string(tt.align), func(t *testing.T) {
			style := types.RenderStyle{Color: types.ColorRed, Alignment: tt.align, Font: types.FontHelvetica}
			p := Place(style, 612, "5", measure)
			assert.InDelta(t, tt.want, p.X, 1e-9)
			assert.InDelta(t, 30, p.Y, 1e-9)
			assert.InDelta(t, 10, p.TextWidth, 1e-9)
		})
	}
}

func TestPlaceCenterUsesFontMetrics(t *testing.T) {
	for _, f := range types.Fonts {
		for _, width := range []float64{612, 595.28, 842, 200} {
			style := types.RenderStyle{Color: types.ColorBlue, Alignment: types.AlignCenter, Font: f}
			p := Place(style, width, "123", pdfdoc.TextWidth)
			tw := pdfdoc.TextWidth("123", string(f), FontSize)
			require.Greater(t, tw, 0.0, f)
			assert.InDelta(t, (width-tw)/2, p.X, 1e-9, "%s at width %g", f, width)
		}
	}
}

func TestApplyNumbersSequentially(t *testing.T) {
	comp := &fakeCompositor{width: 612, height: 792}
	var log bytes.Buffer
	res := New(types.DefaultStyle, comp, &log).Apply(&fakePages{n: 9})

	require.Len(t, res.Pages, 9)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, comp.stamped)
	assert.Equal(t, "page-5#5@562.0", string(res.Pages[4]))
	assert.Equal(t, 9, res.Summary.Count(StatusNumbered))
	assert.False(t, res.Summary.HasFaults())
	assert.Contains(t, log.String(), "processed 9/9 pages")
}

func TestApplyFallbacks(t *testing.T) {
	comp := &fakeCompositor{
		width:    612,
		height:   792,
		badSize:  map[string]bool{"page-2": true},
		badStamp: map[string]bool{"page-4": true},
	}
	src := &fakePages{n: 9, bad: map[int]bool{3: true}}

	var log bytes.Buffer
	res := New(types.DefaultStyle, comp, &log).Apply(src)

	require.Len(t, res.Pages, 9)
	assert.Equal(t, "blank-Letter", string(res.Pages[1]))
	assert.Equal(t, "blank-Letter", string(res.Pages[2]))
	assert.Equal(t, "blank-Letter", string(res.Pages[3]))
	// Slot numbering is unaffected by the substitutions.
	assert.Equal(t, "page-5#5@562.0", string(res.Pages[4]))
	assert.Equal(t, []string{"1", "5", "6", "7", "8", "9"}, comp.stamped)

	s := res.Summary
	assert.Equal(t, 3, s.Count(StatusBlank))
	assert.Equal(t, 6, s.Count(StatusNumbered))
	assert.True(t, s.HasFaults())
	assert.Equal(t, StatusBlank, s.Pages[3].Status)
	assert.Equal(t, "4", s.Pages[3].Label)
	assert.Contains(t, s.Pages[3].Reason, "font resource clash")
	assert.Equal(t, 612.0, s.Pages[3].Width)
	assert.Equal(t, 792.0, s.Pages[3].Height)

	out := log.String()
	assert.Contains(t, out, "warning: page 2: reading page size: missing MediaBox")
	assert.Contains(t, out, "page 3 replaced with a blank page")
}

func TestApplyDropsWhenBlankFails(t *testing.T) {
	comp := &fakeCompositor{width: 612, height: 792, badStamp: map[string]bool{"page-2": true}, failBlank: true}
	var log bytes.Buffer
	res := New(types.DefaultStyle, comp, &log).Apply(&fakePages{n: 3})

	require.Len(t, res.Pages, 2)
	assert.Equal(t, "page-3#3@562.0", string(res.Pages[1]))
	assert.Equal(t, StatusDropped, res.Summary.Pages[1].Status)
	assert.Equal(t, 1, res.Summary.Count(StatusDropped))
	assert.Contains(t, log.String(), "page 2 dropped")
}

func TestApplyProgressEveryTenPages(t *testing.T) {
	var log bytes.Buffer
	New(types.DefaultStyle, &fakeCompositor{width: 612, height: 792}, &log).Apply(&fakePages{n: 25})

	out := log.String()
	assert.Contains(t, out, "processed 10/25 pages")
	assert.Contains(t, out, "processed 20/25 pages")
	assert.Contains(t, out, "processed 25/25 pages")
	assert.NotContains(t, out, "processed 11/25 pages")
}

func TestResultWriteEmpty(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, (&Result{}).Write(&out), ErrNoOutput)
}

func TestApplyRealPDF(t *testing.T) {
	specs := []pdfdoc.PageSpec{
		{Paper: "Letter", Text: "letter"},
		{Paper: "A4L", Text: "landscape"},
		{Paper: "A4", Text: "a4"},
		{Paper: "Letter", Crop: "[20 20 420 620]", Text: "cropped"},
	}
	sizes := [][2]float64{{612, 792}, {842, 595}, {595, 842}, {400, 600}}
	origins := [][2]float64{{0, 0}, {0, 0}, {0, 0}, {20, 20}}
	data := pdfdoctest.Create(t, specs...)

	for _, align := range types.Alignments {
		t.Run(string(align), func(t *testing.T) {
			doc, err := pdfdoc.Read("mixed", data)
			require.NoError(t, err)
			style := types.RenderStyle{Color: types.ColorPurple, Alignment: align, Font: types.FontTimesBold}
			var log bytes.Buffer
			res := New(style, nil, &log).Apply(doc)

			require.Equal(t, len(specs), res.Summary.Count(StatusNumbered), log.String())
			for i, size := range sizes {
				p := res.Summary.Pages[i]
				assert.InDelta(t, size[0], p.Width, 0.01)
				assert.InDelta(t, size[1], p.Height, 0.01)
				want := Place(style, size[0], p.Label, pdfdoc.TextWidth)
				assert.InDelta(t, want.X, p.Placement.X, 1e-9)
			}

			var out bytes.Buffer
			require.NoError(t, res.Write(&out))
			numbered, err := pdfdoc.Read("numbered", out.Bytes())
			require.NoError(t, err)
			require.Equal(t, len(specs), numbered.PageCount())

			for i := range specs {
				stamps := pdfdoctest.Stamps(t, out.Bytes(), i+1)
				require.Len(t, stamps, 1, "page %d", i+1)
				p := res.Summary.Pages[i]
				assert.Equal(t, strconv.Itoa(i+1), stamps[0].Text)
				assert.InDelta(t, origins[i][0]+p.Placement.X, stamps[0].X, 0.01, "page %d x", i+1)
				assert.InDelta(t, origins[i][1]+Baseline, stamps[0].Y, 0.01, "page %d y", i+1)
			}

			content, err := numbered.Content(2)
			require.NoError(t, err)
			assert.Contains(t, string(content), "landscape")
		})
	}
}

func TestApplyRightAlignedOnCropBox(t *testing.T) {
	doc, err := pdfdoc.Read("cropped", pdfdoctest.Create(t, pdfdoc.PageSpec{Paper: "Letter", Crop: "[0 0 400 600]"}))
	require.NoError(t, err)

	style := types.RenderStyle{Color: types.ColorBlack, Alignment: types.AlignRight, Font: types.FontCourier}
	res := New(style, nil, &bytes.Buffer{}).Apply(doc)
	require.Equal(t, 1, res.Summary.Count(StatusNumbered))

	var out bytes.Buffer
	require.NoError(t, res.Write(&out))
	stamps := pdfdoctest.Stamps(t, out.Bytes(), 1)
	require.Len(t, stamps, 1)
	assert.InDelta(t, 400-SideMargin, stamps[0].X, 0.01)
	assert.InDelta(t, Baseline, stamps[0].Y, 0.01)
}

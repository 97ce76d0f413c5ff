// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoctest writes PDF fixtures for tests and reads back the page
// number stamps drawn on them.
package pdfdoctest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pdiddy/pdf-numberer/internal/pdfdoc"
)

// Marker is the text drawn on page nr of a fixture named name. Tests use
// it to recognise where a merged page came from.
func Marker(name string, nr int) string {
	return fmt.Sprintf("%s-p%d", name, nr)
}

// Create builds a PDF from specs and fails the test on error.
func Create(t *testing.T, specs ...pdfdoc.PageSpec) []byte {
	t.Helper()
	data, err := pdfdoc.Create(specs)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	return data
}

// Bytes returns a Letter-sized PDF with n pages, each carrying its Marker.
func Bytes(t *testing.T, name string, n int) []byte {
	t.Helper()
	specs := make([]pdfdoc.PageSpec, n)
	for i := range specs {
		specs[i] = pdfdoc.PageSpec{Paper: "Letter", Text: Marker(name, i+1)}
	}
	return Create(t, specs...)
}

// Write creates dir/name.pdf with n marked pages and returns its path.
func Write(t *testing.T, dir, name string, n int) string {
	t.Helper()
	return writeFile(t, dir, name, Bytes(t, name, n))
}

// WriteEncrypted creates dir/name.pdf with n marked pages, AES-256
// encrypted with the given user password.
func WriteEncrypted(t *testing.T, dir, name string, n int, userPW string) string {
	t.Helper()
	conf := model.NewAESConfiguration(userPW, "owner-"+name, 256)
	var buf bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(Bytes(t, name, n)), &buf, conf); err != nil {
		t.Fatalf("encrypting fixture %s: %v", name, err)
	}
	return writeFile(t, dir, name, buf.Bytes())
}

// WriteCorrupt creates dir/name.pdf with bytes that are not a PDF.
func WriteCorrupt(t *testing.T, dir, name string) string {
	t.Helper()
	return writeFile(t, dir, name, []byte("%PDF-1.4\nthis is not a pdf body\n"))
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// Stamp is a line of text drawn through a form XObject, with the page
// position where its baseline starts.
type Stamp struct {
	Text string
	X, Y float64
}

var (
	// q a b c d e f cm /GSn gs /Fmn Do Q, as written by pdfcpu's stamper.
	formUse = regexp.MustCompile(`q -?[\d.]+ -?[\d.]+ -?[\d.]+ -?[\d.]+ (-?[\d.]+) (-?[\d.]+) cm /\S+ gs /(\S+) Do Q`)
	formTxt = regexp.MustCompile(`(-?[\d.]+) (-?[\d.]+) Td \d+ Tr \((.*?)\) Tj`)
)

// Stamps decodes the text stamps on page nr of data: every form XObject the
// page content draws, combined with the text position inside the form.
func Stamps(t *testing.T, data []byte, nr int) []Stamp {
	t.Helper()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), pdfdoc.NewConfig())
	if err != nil {
		t.Fatalf("reading stamped pdf: %v", err)
	}
	r, err := pdfcpu.ExtractPageContent(ctx, nr)
	if err != nil || r == nil {
		t.Fatalf("reading content of page %d: %v", nr, err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading content of page %d: %v", nr, err)
	}
	xobjects := pageXObjects(t, ctx, nr)

	var stamps []Stamp
	for _, m := range formUse.FindAllSubmatch(content, -1) {
		form := formContent(t, ctx, xobjects, string(m[3]))
		txt := formTxt.FindSubmatch(form)
		if txt == nil {
			continue
		}
		stamps = append(stamps, Stamp{
			Text: string(txt[3]),
			X:    number(t, m[1]) + number(t, txt[1]),
			Y:    number(t, m[2]) + number(t, txt[2]),
		})
	}
	return stamps
}

func pageXObjects(t *testing.T, ctx *model.Context, nr int) types.Dict {
	t.Helper()
	d, _, inh, err := ctx.PageDict(nr, false)
	if err != nil {
		t.Fatalf("page %d: %v", nr, err)
	}
	res := inh.Resources
	if o, ok := d.Find("Resources"); ok {
		if res, err = ctx.DereferenceDict(o); err != nil {
			t.Fatalf("page %d resources: %v", nr, err)
		}
	}
	o, ok := res.Find("XObject")
	if !ok {
		t.Fatalf("page %d has no XObject resources", nr)
	}
	xobjects, err := ctx.DereferenceDict(o)
	if err != nil {
		t.Fatalf("page %d XObject resources: %v", nr, err)
	}
	return xobjects
}

func formContent(t *testing.T, ctx *model.Context, xobjects types.Dict, name string) []byte {
	t.Helper()
	o, ok := xobjects.Find(name)
	if !ok {
		t.Fatalf("form %s not in page resources", name)
	}
	sd, _, err := ctx.DereferenceStreamDict(o)
	if err != nil || sd == nil {
		t.Fatalf("form %s: %v", name, err)
	}
	if err := sd.Decode(); err != nil {
		t.Fatalf("decoding form %s: %v", name, err)
	}
	return sd.Content
}

func number(t *testing.T, b []byte) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		t.Fatalf("parsing %q: %v", b, err)
	}
	return f
}

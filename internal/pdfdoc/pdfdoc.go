// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc wraps pdfcpu for the operations the merge and overlay
// stages need: reading (and decrypting) documents, cutting them into
// single-page PDFs, stamping text onto a page, creating pages, and
// concatenating pages into one file.
//
// Pages travel between stages as self-contained single-page PDFs held in
// memory. pdfcpu can panic on badly damaged input; every call into it is
// guarded and a panic is returned as an error.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrEncrypted reports an encrypted document that an empty password
	// does not open.
	ErrEncrypted = errors.New("encrypted and cannot be opened with an empty password")
	// ErrNoPages reports an attempt to write a document without pages.
	ErrNoPages = errors.New("no pages to write")
)

func init() {
	api.DisableConfigDir()
}

// NewConfig returns the pdfcpu configuration used for every operation:
// relaxed validation and empty user and owner passwords.
func NewConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = ""
	conf.OwnerPW = ""
	return conf
}

// Document is a parsed PDF.
type Document struct {
	name      string
	ctx       *model.Context
	encrypted bool
}

// Open reads and parses the PDF at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Read(path, data)
}

// Read parses data as a PDF. Encrypted input is decrypted with an empty
// password; when that fails the error wraps ErrEncrypted.
func Read(name string, data []byte) (*Document, error) {
	var ctx *model.Context
	err := guard(func() error {
		var err error
		ctx, err = api.ReadValidateAndOptimize(bytes.NewReader(data), NewConfig())
		if err != nil {
			return err
		}
		return ctx.EnsurePageCount()
	})
	if err != nil {
		if isEncryptionError(err) {
			return nil, fmt.Errorf("%s: %w (%v)", name, ErrEncrypted, err)
		}
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return &Document{
		name:      name,
		ctx:       ctx,
		encrypted: ctx.Encrypt != nil,
	}, nil
}

// Name returns the path or label the document was read from.
func (d *Document) Name() string { return d.name }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.ctx.PageCount }

// Encrypted reports whether the document was encrypted on disk.
func (d *Document) Encrypted() bool { return d.encrypted }

// Page returns page nr (1-based) as a standalone single-page PDF.
func (d *Document) Page(nr int) ([]byte, error) {
	if nr < 1 || nr > d.ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range 1-%d", nr, d.ctx.PageCount)
	}
	var out []byte
	err := guard(func() error {
		r, err := api.ExtractPage(d.ctx, nr)
		if err != nil {
			return err
		}
		out, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("extracting page %d: %w", nr, err)
	}
	return out, nil
}

// Content returns the decoded content stream of page nr.
func (d *Document) Content(nr int) ([]byte, error) {
	var out []byte
	err := guard(func() error {
		r, err := pdfcpu.ExtractPageContent(d.ctx, nr)
		if err != nil {
			return err
		}
		if r == nil {
			return nil
		}
		out, err = io.ReadAll(r)
		return err
	})
	return out, err
}

// Concat writes pages, each a single- or multi-page PDF, to w as one
// document in order.
func Concat(pages [][]byte, w io.Writer) error {
	switch len(pages) {
	case 0:
		return ErrNoPages
	case 1:
		_, err := w.Write(pages[0])
		return err
	}
	rsc := make([]io.ReadSeeker, len(pages))
	for i, p := range pages {
		rsc[i] = bytes.NewReader(p)
	}
	return guard(func() error {
		return api.MergeRaw(rsc, w, false, NewConfig())
	})
}

// PageSize returns the visible width and height of the first page of
// page: its crop box, or the media box when no crop box is set. Stamp
// positions are relative to the lower-left corner of the same box.
func PageSize(page []byte) (width, height float64, err error) {
	err = guard(func() error {
		boxes, err := api.Boxes(bytes.NewReader(page), nil, NewConfig())
		if err != nil {
			return err
		}
		if len(boxes) == 0 || boxes[0].CropBox() == nil {
			return errors.New("page has no media box")
		}
		crop := boxes[0].CropBox()
		width, height = crop.Width(), crop.Height()
		return nil
	})
	if err == nil && (width <= 0 || height <= 0) {
		err = fmt.Errorf("invalid page size %gx%g", width, height)
	}
	return width, height, err
}

// guard runs fn and turns a pdfcpu panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu: %v", r)
		}
	}()
	return fn()
}

// isEncryptionError reports whether pdfcpu refused a document because it
// could not decrypt it.
func isEncryptionError(err error) bool {
	return errors.Is(err, pdfcpu.ErrWrongPassword) ||
		errors.Is(err, pdfcpu.ErrUnknownEncryption) ||
		strings.Contains(err.Error(), "unsupported encryption")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Pages substituted for unreadable ones are US Letter.
const (
	FallbackPaper  = "Letter"
	FallbackWidth  = 612.0
	FallbackHeight = 792.0
)

// PageSpec describes a page for Create.
type PageSpec struct {
	// Paper is a pdfcpu paper name such as "Letter", "A4", or "A4L"
	// (landscape).
	Paper string
	// Crop optionally sets the crop box, e.g. "[20 20 420 620]".
	Crop string
	// Text, when set, is drawn in 24pt Helvetica near the top-left corner.
	Text string
}

// The JSON layout read by pdfcpu's create command.
type (
	createDoc struct {
		Paper string                `json:"paper"`
		Pages map[string]createPage `json:"pages"`
	}
	createPage struct {
		Paper   string        `json:"paper,omitempty"`
		Crop    string        `json:"crop,omitempty"`
		Content createContent `json:"content"`
	}
	createContent struct {
		Text []createText `json:"text,omitempty"`
	}
	createText struct {
		Value    string     `json:"value"`
		Position [2]float64 `json:"pos"`
		Font     createFont `json:"font"`
	}
	createFont struct {
		Name  string `json:"name"`
		Size  int    `json:"size"`
		Color string `json:"col"`
	}
)

// Create builds a PDF with one page per spec.
func Create(pages []PageSpec) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	doc := createDoc{Paper: pages[0].Paper, Pages: make(map[string]createPage, len(pages))}
	for i, p := range pages {
		cp := createPage{Paper: p.Paper, Crop: p.Crop}
		if p.Text != "" {
			cp.Content.Text = []createText{{
				Value:    p.Text,
				Position: [2]float64{36, 100},
				Font:     createFont{Name: "Helvetica", Size: 24, Color: "#000000"},
			}}
		}
		doc.Pages[strconv.Itoa(i+1)] = cp
	}
	spec, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding page layout: %w", err)
	}

	var buf bytes.Buffer
	err = guard(func() error {
		return api.Create(nil, bytes.NewReader(spec), &buf, NewConfig())
	})
	if err != nil {
		return nil, fmt.Errorf("creating pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Blank returns a one-page PDF with an empty page of the given paper size.
func Blank(paper string) ([]byte, error) {
	return Create([]PageSpec{{Paper: paper}})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Color is the fill color of the page-number glyphs.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorBlack  Color = "black"
	ColorPurple Color = "purple"
)

// Colors lists the selectable colors in menu order.
var Colors = []Color{ColorRed, ColorBlue, ColorGreen, ColorBlack, ColorPurple}

// colorHex maps each color to its RGB value. Green and purple are the
// half-intensity web colors, not pure channels.
var colorHex = map[Color]string{
	ColorRed:    "#FF0000",
	ColorBlue:   "#0000FF",
	ColorGreen:  "#008000",
	ColorBlack:  "#000000",
	ColorPurple: "#800080",
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	if h, ok := colorHex[c]; ok {
		return h
	}
	return colorHex[ColorBlack]
}

// ParseColor validates s (case-insensitive) against Colors.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := colorHex[c]; !ok {
		return "", fmt.Errorf("unsupported color %q: use one of %s", s, joinValues(Colors))
	}
	return c, nil
}

// Alignment is the horizontal placement of the page number.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Alignments lists the selectable alignments in menu order.
var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight}

// ParseAlignment validates s (case-insensitive) against Alignments.
func ParseAlignment(s string) (Alignment, error) {
	a := Alignment(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Alignments {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported alignment %q: use one of %s", s, joinValues(Alignments))
}

// FontName is one of the standard PDF core fonts usable without embedding.
type FontName string

const (
	FontHelvetica     FontName = "Helvetica"
	FontHelveticaBold FontName = "Helvetica-Bold"
	FontTimesRoman    FontName = "Times-Roman"
	FontTimesBold     FontName = "Times-Bold"
	FontCourier       FontName = "Courier"
)

// Fonts lists the selectable fonts in menu order.
var Fonts = []FontName{FontHelvetica, FontHelveticaBold, FontTimesRoman, FontTimesBold, FontCourier}

// ParseFont validates s against Fonts. Matching ignores case so that
// "times-bold" from an environment variable resolves to Times-Bold.
func ParseFont(s string) (FontName, error) {
	s = strings.TrimSpace(s)
	for _, f := range Fonts {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported font %q: use one of %s", s, joinValues(Fonts))
}

// RenderStyle is the page-number appearance chosen once per run and applied
// to every page.
type RenderStyle struct {
	Color     Color     `json:"color" yaml:"color"`
	Alignment Alignment `json:"alignment" yaml:"alignment"`
	Font      FontName  `json:"font" yaml:"font"`
}

// DefaultStyle is used when no choice is made: red, right-aligned,
// Helvetica-Bold.
var DefaultStyle = RenderStyle{
	Color:     ColorRed,
	Alignment: AlignRight,
	Font:      FontHelveticaBold,
}

// Validate checks every field against its enumeration.
func (s RenderStyle) Validate() error {
	if _, err := ParseColor(string(s.Color)); err != nil {
		return err
	}
	if _, err := ParseAlignment(string(s.Alignment)); err != nil {
		return err
	}
	if _, err := ParseFont(string(s.Font)); err != nil {
		return err
	}
	return nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sortkey derives an ordering key from a filename so that folders of
// numbered, lettered, and loosely named documents merge in a predictable
// order.
//
// Naming conventions are recognised by an ordered list of Matchers. The
// first matcher that accepts a name decides its key; names no matcher
// accepts fall into the last tier and sort by their lowercased name.
package sortkey

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tiers, lowest first.
const (
	TierNumbered     = 0 // "12. Report.pdf"
	TierLetterNumber = 1 // "A1 Annex.pdf", "AB23.pdf"
	TierLetters      = 2 // "B Summary.pdf"
	TierLooseNumber  = 3 // "report 7.pdf"
	TierUnmatched    = 4
)

// Key orders filenames: Tier, then Primary, then Secondary, then Fallback.
type Key struct {
	Tier      int    `json:"tier" yaml:"tier"`
	Primary   int    `json:"primary" yaml:"primary"`
	Secondary int    `json:"secondary" yaml:"secondary"`
	Fallback  string `json:"fallback" yaml:"fallback"`
}

// Compare returns -1, 0, or +1 when k sorts before, with, or after o.
func (k Key) Compare(o Key) int {
	switch {
	case k.Tier != o.Tier:
		return cmpInt(k.Tier, o.Tier)
	case k.Primary != o.Primary:
		return cmpInt(k.Primary, o.Primary)
	case k.Secondary != o.Secondary:
		return cmpInt(k.Secondary, o.Secondary)
	}
	return strings.Compare(k.Fallback, o.Fallback)
}

// Less reports whether k sorts strictly before o.
func (k Key) Less(o Key) bool {
	return k.Compare(o) < 0
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d, %d, %q)", k.Tier, k.Primary, k.Secondary, k.Fallback)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	return 1
}

// Matcher recognises one naming convention. Match receives the base name
// and returns the key for it, or false when the convention does not apply.
type Matcher interface {
	Match(base string) (Key, bool)
}

// Rule is a Matcher driven by a regular expression. Build receives the
// submatches and the lowercased base name.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(m []string, fallback string) Key
}

// Match implements Matcher.
func (r Rule) Match(base string) (Key, bool) {
	m := r.Pattern.FindStringSubmatch(base)
	if m == nil {
		return Key{}, false
	}
	return r.Build(m, fold(base)), true
}

// DefaultRules are the built-in conventions in priority order.
var DefaultRules = []Rule{
	{
		Name:    "numbered",
		Pattern: regexp.MustCompile(`^(\d+)\.`),
		Build: func(m []string, fallback string) Key {
			return Key{Tier: TierNumbered, Primary: parseInt(m[1]), Fallback: fallback}
		},
	},
	{
		Name:    "letter-number",
		Pattern: regexp.MustCompile(`^([A-Z]+)(\d+)`),
		Build: func(m []string, fallback string) Key {
			return Key{Tier: TierLetterNumber, Primary: LetterValue(m[1]), Secondary: parseInt(m[2]), Fallback: fallback}
		},
	},
	{
		Name:    "letters",
		Pattern: regexp.MustCompile(`^([A-Z]+)`),
		Build: func(m []string, fallback string) Key {
			return Key{Tier: TierLetters, Primary: LetterValue(m[1]), Fallback: fallback}
		},
	},
	{
		Name:    "loose-number",
		Pattern: regexp.MustCompile(`(\d+)`),
		Build: func(m []string, fallback string) Key {
			return Key{Tier: TierLooseNumber, Primary: parseInt(m[1]), Fallback: fallback}
		},
	},
}

// Extractor maps filenames to keys using its matchers in order.
type Extractor struct {
	matchers []Matcher
}

// New returns an Extractor that tries extra first, then DefaultRules.
func New(extra ...Matcher) *Extractor {
	ms := make([]Matcher, 0, len(extra)+len(DefaultRules))
	ms = append(ms, extra...)
	for _, r := range DefaultRules {
		ms = append(ms, r)
	}
	return &Extractor{matchers: ms}
}

// Extract returns the key for the base name of filename. It never fails:
// a name no matcher accepts gets TierUnmatched.
func (e *Extractor) Extract(filename string) Key {
	base := filepath.Base(filename)
	for _, m := range e.matchers {
		if k, ok := m.Match(base); ok {
			return k
		}
	}
	return Key{Tier: TierUnmatched, Fallback: fold(base)}
}

// Sort orders paths by key in place. The sort is stable, so paths with equal
// keys keep their incoming order.
func (e *Extractor) Sort(paths []string) {
	keys := make(map[string]Key, len(paths))
	for _, p := range paths {
		keys[p] = e.Extract(p)
	}
	slices.SortStableFunc(paths, func(a, b string) int {
		return keys[a].Compare(keys[b])
	})
}

var defaultExtractor = New()

// Extract uses the default rules.
func Extract(filename string) Key {
	return defaultExtractor.Extract(filename)
}

// Sort uses the default rules.
func Sort(paths []string) {
	defaultExtractor.Sort(paths)
}

// LetterValue reads an uppercase ASCII run as a bijective base-26 number:
// A=1 ... Z=26, AA=27, AB=28. Values past math.MaxInt saturate.
func LetterValue(letters string) int {
	v := 0
	for _, c := range letters {
		d := int(c-'A') + 1
		if v > (math.MaxInt-d)/26 {
			return math.MaxInt
		}
		v = v*26 + d
	}
	return v
}

// parseInt parses an ASCII digit run, saturating at math.MaxInt.
func parseInt(digits string) int {
	n, err := strconv.ParseInt(digits, 10, 0)
	if err != nil {
		return math.MaxInt
	}
	return int(n)
}

// fold lowercases a name for the final tie-break.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

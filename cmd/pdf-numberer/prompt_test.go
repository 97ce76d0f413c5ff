package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-numberer/pkg/types"
)

func newPrompter(input string) (*prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return &prompter{in: bufio.NewReader(strings.NewReader(input)), out: &out}, &out
}

func TestChoose(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        types.Alignment
		wantRetries int
	}{
		{name: "number", input: "2\n", want: types.AlignCenter},
		{name: "name in any case", input: "RIGHT\n", want: types.AlignRight},
		{name: "surrounding spaces", input: "  1 \n", want: types.AlignLeft},
		{name: "re-asks until valid", input: "0\n4\nmiddle\n\n3\n", want: types.AlignRight, wantRetries: 4},
		{name: "last line without newline", input: "1", want: types.AlignLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPrompter(tt.input)
			got, err := choose(p, "Choose the page number alignment:", types.Alignments)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRetries, strings.Count(out.String(), "Invalid choice"))
			assert.Contains(t, out.String(), "  1. left\n  2. center\n  3. right\n")
		})
	}
}

func TestChooseInputClosed(t *testing.T) {
	p, _ := newPrompter("7\n")
	_, err := choose(p, "Choose the page number font:", types.Fonts)
	assert.ErrorIs(t, err, errInputClosed)
}

func TestPromptDir(t *testing.T) {
	p, _ := newPrompter("\n")
	dir, err := p.Dir()
	require.NoError(t, err)
	assert.Equal(t, ".", dir)

	p, _ = newPrompter("/srv/scans\n")
	dir, err = p.Dir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/scans", dir)

	p, _ = newPrompter("")
	_, err = p.Dir()
	assert.ErrorIs(t, err, errInputClosed)
}

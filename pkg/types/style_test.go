// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantHex string
		errMsg  string
	}{
		{in: "red", want: ColorRed, wantHex: "#FF0000"},
		{in: " Purple ", want: ColorPurple, wantHex: "#800080"},
		{in: "GREEN", want: ColorGreen, wantHex: "#008000"},
		{in: "orange", errMsg: "unsupported color"},
		{in: "", errMsg: "unsupported color"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantHex, got.Hex())
		})
	}
}

func TestParseAlignment(t *testing.T) {
	got, err := ParseAlignment("Center")
	require.NoError(t, err)
	assert.Equal(t, AlignCenter, got)

	_, err = ParseAlignment("justify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left, center, right")
}

func TestParseFont(t *testing.T) {
	got, err := ParseFont("times-bold")
	require.NoError(t, err)
	assert.Equal(t, FontTimesBold, got)

	_, err = ParseFont("Arial")
	require.Error(t, err)
}

func TestRenderStyleValidate(t *testing.T) {
	assert.NoError(t, DefaultStyle.Validate())

	bad := DefaultStyle
	bad.Alignment = "middle"
	assert.Error(t, bad.Validate())
}

func TestParseSummaryFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    SummaryFormat
		wantErr bool
	}{
		{"", SummaryText, false},
		{"text", SummaryText, false},
		{"YAML", SummaryYAML, false},
		{"json", SummaryJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSummaryFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

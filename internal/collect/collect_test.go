// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-numberer/internal/sortkey"
)

func TestPDFs(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		want    []string
		wantErr error
	}{
		{
			name: "sorts by naming convention",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				for _, n := range []string{"notes.pdf", "B1 Annex.pdf", "2. Body.pdf", "A1 Annex.pdf", "1. Intro.pdf"} {
					writeFile(t, dir, n)
				}
				return dir
			},
			want: []string{"1. Intro.pdf", "2. Body.pdf", "A1 Annex.pdf", "B1 Annex.pdf", "notes.pdf"},
		},
		{
			name: "skips dotfiles, directories and other extensions",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "1. Keep.pdf")
				writeFile(t, dir, ".hidden.pdf")
				writeFile(t, dir, "readme.txt")
				writeFile(t, dir, "upper.PDF")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.pdf"), 0o755))
				writeFile(t, filepath.Join(dir, "folder.pdf"), "2. Nested.pdf")
				return dir
			},
			want: []string{"1. Keep.pdf"},
		},
		{
			name: "missing folder",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			wantErr: ErrDirNotFound,
		},
		{
			name: "path is a file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "1. Only.pdf")
				return filepath.Join(dir, "1. Only.pdf")
			},
			wantErr: ErrDirNotFound,
		},
		{
			name: "empty folder",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: ErrNoPDFs,
		},
		{
			name: "folder without PDFs",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "scan.png")
				return dir
			},
			wantErr: ErrNoPDFs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := PDFs(dir, nil)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var cfgErr *ConfigError
				assert.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %T", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, baseNames(got))
			for _, p := range got {
				assert.Equal(t, dir, filepath.Dir(p))
			}
		})
	}
}

func TestPDFsWithCustomExtractor(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"1. Intro.pdf", "cover.pdf"} {
		writeFile(t, dir, n)
	}
	cover := sortkey.Rule{
		Name:    "cover",
		Pattern: regexp.MustCompile(`^cover\.pdf$`),
		Build: func(m []string, fallback string) sortkey.Key {
			return sortkey.Key{Tier: -1, Fallback: fallback}
		},
	}

	got, err := PDFs(dir, sortkey.New(cover))
	require.NoError(t, err)
	assert.Equal(t, []string{"cover.pdf", "1. Intro.pdf"}, baseNames(got))
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4\n"), 0o644))
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

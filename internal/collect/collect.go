// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect lists the PDF files of a folder in merge order.
package collect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-numberer/internal/sortkey"
)

var (
	// ErrDirNotFound reports a missing input folder.
	ErrDirNotFound = errors.New("folder does not exist")
	// ErrNoPDFs reports a folder without any PDF file.
	ErrNoPDFs = errors.New("no PDF files found")
)

// ConfigError is a fatal problem with the run's input folder.
type ConfigError struct {
	Dir string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Dir, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PDFs returns the paths of the PDF files directly under dir, sorted by the
// extractor's key. Only regular files named *.pdf are listed; dotfiles and
// directories are ignored. Files with equal keys keep the name order in
// which the directory was read.
func PDFs(dir string, e *sortkey.Extractor) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{Dir: dir, Err: ErrDirNotFound}
		}
		return nil, fmt.Errorf("reading folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, &ConfigError{Dir: dir, Err: ErrDirNotFound}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".pdf") {
			continue
		}
		path := filepath.Join(dir, name)
		// Stat follows symlinks so a link to a PDF counts as a file.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		return nil, &ConfigError{Dir: dir, Err: ErrNoPDFs}
	}

	if e == nil {
		sortkey.Sort(paths)
	} else {
		e.Sort(paths)
	}
	return paths, nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errInputClosed reports that stdin ended before a prompt was answered.
var errInputClosed = errors.New("input closed before a choice was made")

// prompter asks questions on out and reads answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// line prints question and returns the trimmed answer. A final line
// without a newline still counts as an answer.
func (p *prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	s, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if s == "" {
			fmt.Fprintln(p.out)
			return "", errInputClosed
		}
	}
	return strings.TrimSpace(s), nil
}

// Dir asks for the input folder. An empty answer means the current folder.
func (p *prompter) Dir() (string, error) {
	s, err := p.line("Enter the folder containing the PDFs (empty for the current folder): ")
	if err != nil {
		return "", err
	}
	if s == "" {
		return ".", nil
	}
	return s, nil
}

// choose shows options as a numbered menu and asks until the answer is a
// valid number or option name.
func choose[T ~string](p *prompter, title string, options []T) (T, error) {
	fmt.Fprintln(p.out, title)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, o)
	}
	for {
		s, err := p.line(fmt.Sprintf("Enter your choice (1-%d): ", len(options)))
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
			fmt.Fprintf(p.out, "Selected: %s\n\n", options[n-1])
			return options[n-1], nil
		}
		for _, o := range options {
			if strings.EqualFold(s, string(o)) {
				fmt.Fprintf(p.out, "Selected: %s\n\n", o)
				return o, nil
			}
		}
		fmt.Fprintf(p.out, "Invalid choice %q. Enter a number from 1 to %d.\n", s, len(options))
	}
}

func joinOptions[T ~string](options []T) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = string(o)
	}
	return strings.Join(parts, ", ")
}

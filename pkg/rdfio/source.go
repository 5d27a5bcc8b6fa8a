package rdfio

import (
	"bufio"
	"io"
	"strings"
)

// DefaultMaxLineLength bounds a single input line read by ScannerSource.
const DefaultMaxLineLength = 1 << 20

// LineSource yields already assembled lines without their terminator.
// Next returns false at end of input or on error; Err reports which.
type LineSource interface {
	Next() (string, bool)
	Err() error
}

// ScannerSource reads lines from an io.Reader.
type ScannerSource struct {
	sc *bufio.Scanner
}

// NewScannerSource reads lines of at most maxLineLen bytes from r. A zero
// maxLineLen uses DefaultMaxLineLength. A trailing '\r' is stripped.
func NewScannerSource(r io.Reader, maxLineLen int) *ScannerSource {
	if maxLineLen <= 0 {
		maxLineLen = DefaultMaxLineLength
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLineLen)), maxLineLen)
	return &ScannerSource{sc: sc}
}

func (s *ScannerSource) Next() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSuffix(s.sc.Text(), "\r"), true
}

func (s *ScannerSource) Err() error { return s.sc.Err() }

// SliceSource yields lines from memory.
type SliceSource struct {
	lines []string
	next  int
}

func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{lines: lines}
}

func (s *SliceSource) Next() (string, bool) {
	if s.next >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.next]
	s.next++
	return line, true
}

func (s *SliceSource) Err() error { return nil }

// Package source provides minimal readers for the two textual input
// formats this tool consumes: a plain newline-delimited address list, and
// a CSV scan-result file with a header row.
package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"v6recon/internal/addr"
)

// LineReader reads a plain IPv6 address list: one address per line, blank
// lines and '#'-prefixed comment lines skipped, surrounding whitespace
// stripped.
type LineReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewLineReader wraps r for line-oriented reading.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next address, or io.EOF once the input is exhausted. A
// malformed line is a parse error, not a silently-skipped row: callers
// that want classify's tolerant-parsing behavior should route text
// through classify.NewColumn instead.
func (r *LineReader) Next() (addr.Address, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		a, err := addr.Parse(line)
		if err != nil {
			return addr.Address{}, fmt.Errorf("source: line %d: %w", r.line, err)
		}
		return a, nil
	}
	if err := r.scanner.Err(); err != nil {
		return addr.Address{}, fmt.Errorf("source: read line %d: %w", r.line+1, err)
	}
	return addr.Address{}, io.EOF
}

// ReadAll reads every address from r, stopping at the first malformed
// line.
func ReadAll(r io.Reader) ([]addr.Address, error) {
	lr := NewLineReader(r)
	var out []addr.Address
	for {
		a, err := lr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}

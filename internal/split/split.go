// Package split implements the `split` subcommand's field extraction:
// match against one field of a delimited line, emit another.
package split

import (
	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

// Splitter divides a line into fields using a compiled delimiter
// pattern.
type Splitter struct {
	delimiter *regexp2.Regexp
	field     int
	output    int
}

// New compiles delimiter and returns a Splitter that matches on field
// (1-indexed) and outputs field output.
func New(delimiter string, field, output int) (*Splitter, error) {
	re, err := regexp2.Compile(delimiter, regexp2.None)
	if err != nil {
		return nil, errors.Wrap(err, "compile split delimiter")
	}
	return &Splitter{delimiter: re, field: field, output: output}, nil
}

// Fields splits line on the delimiter.
func (s *Splitter) Fields(line string) []string {
	var fields []string
	last := 0

	m, _ := s.delimiter.FindStringMatch(line)
	for m != nil {
		fields = append(fields, line[last:m.Index])
		last = m.Index + m.Length
		m, _ = s.delimiter.FindNextMatch(m)
	}
	fields = append(fields, line[last:])

	return fields
}

// MatchField returns the field to match candidates against (1-indexed;
// out of range falls back to the whole line).
func (s *Splitter) MatchField(line string) string {
	return fieldOrWhole(s.Fields(line), s.field, line)
}

// OutputField returns the field to print on selection (1-indexed; out
// of range falls back to the whole line).
func (s *Splitter) OutputField(line string) string {
	return fieldOrWhole(s.Fields(line), s.output, line)
}

func fieldOrWhole(fields []string, n int, whole string) string {
	if n < 1 || n > len(fields) {
		return whole
	}
	return fields[n-1]
}

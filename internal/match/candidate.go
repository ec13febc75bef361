// Package match wraps raw candidate strings into scored, orderable,
// drawable matches against a query.
package match

import (
	"github.com/mattn/go-runewidth"

	"github.com/npezza93/fozzie-go/internal/algo"
)

// Candidate is an immutable record built once per input line. Runes,
// Lower and Bonus are all the same length. Output is what gets printed
// on selection; it equals Text except under the `split` subcommand,
// where a candidate is matched against one field but a different field
// is emitted.
type Candidate struct {
	Text   string
	Output string
	Runes  []rune
	Lower  []rune
	Bonus  []float64
	Width  int
}

// NewCandidate builds a Candidate from one raw input line, matched and
// output on the same text.
func NewCandidate(text string) *Candidate {
	return NewCandidateWithOutput(text, text)
}

// NewCandidateWithOutput builds a Candidate matched against matchText
// but emitting outputText on selection, as used by the split
// subcommand.
func NewCandidateWithOutput(matchText, outputText string) *Candidate {
	runes := []rune(matchText)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = toLower(r)
	}

	return &Candidate{
		Text:   matchText,
		Output: outputText,
		Runes:  runes,
		Lower:  lower,
		Bonus:  algo.ComputeBonus(runes),
		Width:  runewidth.StringWidth(matchText),
	}
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/npezza93/fozzie-go/internal/algo"
	"github.com/npezza93/fozzie-go/internal/ansi"
)

// Match is the result of scoring one Candidate against one query: a
// reference to the candidate, its final score, and the sorted candidate
// positions that justify the match.
type Match struct {
	Candidate *Candidate
	Score     float64
	Positions []int
}

// IsMatch reports whether query appears as a case-insensitive ASCII
// subsequence of the candidate's runes. It walks a single cursor over
// the candidate, advancing past each rune in turn, and fails as soon as
// a query rune cannot be found before the candidate runs out.
func IsMatch(query []rune, c *Candidate) bool {
	i := 0
	for _, q := range query {
		ql := toLower(q)
		found := false
		for ; i < len(c.Lower); i++ {
			if c.Lower[i] == ql {
				found = true
				i++
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// New scores query against c, returning nil if query is not a
// subsequence of c's text.
func New(query []rune, c *Candidate) *Match {
	if !IsMatch(query, c) {
		return nil
	}

	result := algo.Score(query, c.Runes, c.Bonus)

	return &Match{Candidate: c, Score: result.Score, Positions: result.Positions}
}

// Less orders matches by descending score. Ties are resolved by the
// caller's sort being stable, per the documented tie-break policy.
func Less(a, b *Match) bool {
	return a.Score > b.Score
}

// Draw renders the match for display: highlighted positions wrapped in
// the highlight escape, optionally prefixed with a fixed-width score and
// wrapped as a whole in inverse video when selected.
func (m *Match) Draw(selected, showScores bool) string {
	var b strings.Builder

	if showScores {
		b.WriteString(formatScore(m.Score))
	}

	positions := make(map[int]bool, len(m.Positions))
	for _, p := range m.Positions {
		positions[p] = true
	}

	for i, r := range m.Candidate.Runes {
		if positions[i] {
			b.WriteString(ansi.Highlight(r))
		} else {
			b.WriteRune(r)
		}
	}

	rendered := b.String()
	if selected {
		rendered = ansi.Inverse(rendered)
	}

	return rendered
}

func formatScore(score float64) string {
	if math.IsInf(score, 0) {
		return "(     ) "
	}
	return fmt.Sprintf("(%5.2f) ", score)
}

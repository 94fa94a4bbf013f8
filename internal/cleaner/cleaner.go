// Package cleaner normalizes single lines of OCR output. Scanned calendar
// tables arrive with margin-text misreads, repeated-character artifacts, and
// smart punctuation; Clean strips all of that down to plain single-spaced
// text. Clean is idempotent: re-cleaning a cleaned line is a no-op.
package cleaner

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Margin-text misreads: a short all-caps fragment followed by a word,
	// inside or introducing a parenthetical ("(ES lana", "SE (lees omen").
	reParenNoise = regexp.MustCompile(`\([A-Z]{2}\s+\w+\)?`)
	reCapsParen  = regexp.MustCompile(`[A-Z]{2}\s+\(\w*(?:\s+\w+)?\)?`)

	// Bracket-delimited runs ("[istsa0zt]") and row markers ("R82 [ES").
	reBracketRun = regexp.MustCompile(`\[\w+\]`)
	reRowMarker  = regexp.MustCompile(`R\d{1,2}\s?\[ES`)

	// Stray one-or-two-letter fragments left directly before a parenthetical.
	reShortPreParen = regexp.MustCompile(`\b[A-Za-z]{1,2}\b(\s+\()`)

	// Truncated "(Holiday)" parenthetical at the end of a wrapped cell.
	reHolidayTruncated = regexp.MustCompile(`\(Holiday?\)?$`)

	charNormalizer = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
		"|", " ",
	)
)

// edgeNoise is the set of punctuation stripped from line boundaries. It must
// never include the range connectors "to" and "&": a trailing connector
// signals a date range split across physical lines and the parser needs to
// see it.
const edgeNoise = " \"'|=*‐-_:"

// maxPasses bounds the fixpoint loop in Clean. One removal can expose
// another (a bracket run hiding a margin fragment), so a single pass is not
// always stable; two or three passes always are in practice.
const maxPasses = 5

// Clean normalizes one raw OCR line. Returns the empty string when the line
// is entirely noise. The result never contains embedded newlines.
func Clean(line string) string {
	s := norm.NFC.String(line)
	for i := 0; i < maxPasses; i++ {
		next := pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// pass applies every cleaning rule once, in order.
func pass(line string) string {
	s := charNormalizer.Replace(line)
	s = collapseRuns(s)

	s = strings.ReplaceAll(s, "Sas*", "")
	s = reRowMarker.ReplaceAllString(s, "")
	s = reBracketRun.ReplaceAllString(s, "")
	s = reParenNoise.ReplaceAllString(s, "")
	s = reCapsParen.ReplaceAllString(s, "")
	s = reShortPreParen.ReplaceAllString(s, "$1")

	// Collapse all whitespace runs, including newlines, to single spaces.
	s = strings.Join(strings.Fields(s), " ")

	s = strings.Trim(s, edgeNoise)

	// Fixed corrections for misread tokens observed in the source scans.
	s = strings.ReplaceAll(s, "adddrop /option", "add/drop option")
	s = reHolidayTruncated.ReplaceAllString(s, "(Holiday)")

	return strings.TrimSpace(s)
}

// collapseRuns reduces runs of 4 or more identical characters to 2. OCR
// renders cell borders and smudges as long repeats of the same character;
// genuine text never repeats one more than three times.
func collapseRuns(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(rs); {
		j := i
		for j < len(rs) && rs[j] == rs[i] {
			j++
		}
		n := j - i
		if n >= 4 {
			n = 2
		}
		for k := 0; k < n; k++ {
			b.WriteRune(rs[i])
		}
		i = j
	}
	return b.String()
}

// Package parser turns the cleaned-line sequence of one OCR document into
// discrete calendar events. OCR renders each logical table row as 2-4 wrapped
// physical lines, and date ranges are sometimes split mid-range by the wrap;
// a date-pattern prefix is the only reliable anchor for "this is a new row",
// so the parser is a small state machine that recombines everything else
// around those anchors.
package parser

import (
	"regexp"
	"strings"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/cleaner"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

var (
	// A date or date range at the start of a line: DD.MM.YYYY, optionally
	// "to" or "&" and a second date. Separators -, / and . are all accepted
	// and normalized to dots.
	reDateStart = regexp.MustCompile(`^(\d{2}[.\-/]\d{2}[.\-/]\d{4}(?:\s*(?:to|&)\s*\d{2}[.\-/]\d{2}[.\-/]\d{4})?)`)

	reDateAnywhere = regexp.MustCompile(`\d{2}[.\-/]\d{2}[.\-/]\d{4}`)
)

// minDetailsLen is the shortest details text accepted for an event without a
// recognized weekday. Shorter fragments are residual table noise.
const minDetailsLen = 3

type stateKind int

const (
	noEvent stateKind = iota
	inEvent
)

// Machine is the per-document parser state: the accumulating event plus mode
// flags. One instance per document, discarded once its lines are exhausted.
type Machine struct {
	source  string
	state   stateKind
	current model.Event
	stopped bool
}

// NewMachine creates a parser for one document identified by sourceFile.
func NewMachine(sourceFile string) *Machine {
	return &Machine{source: sourceFile}
}

// Feed consumes one raw line. When the line starts a new table row, the
// previously accumulating event is completed and returned with ok=true.
func (m *Machine) Feed(raw string) (completed model.Event, ok bool) {
	if m.stopped {
		return model.Event{}, false
	}

	line := cleaner.Clean(raw)
	if line == "" {
		return model.Event{}, false
	}
	lower := strings.ToLower(line)

	if matchesFooter(lower) {
		m.stopped = true
		return m.flush()
	}
	if matchesJunk(lower) {
		return model.Event{}, false
	}

	if loc := reDateStart.FindStringSubmatchIndex(line); loc != nil {
		dateText := normalizeSeparators(line[loc[2]:loc[3]])
		rest := strings.TrimSpace(line[loc[3]:])

		// Recovery: the previous row's date range was split by the line
		// wrap ("06.10.2023 &" / "07.10.2023"). This is not a new row, it
		// is the second half of that range.
		if m.state == inEvent && hasDanglingConnector(m.current.RawDateText) && isBareDateRemainder(rest) {
			m.current.RawDateText += " " + dateText
			if isConnectorOnly(m.current.DetailsText) {
				m.current.DetailsText = ""
			}
			return model.Event{}, false
		}

		completed, ok = m.flush()
		m.start(dateText, rest)
		return completed, ok
	}

	if m.state != inEvent {
		// No open event to attribute the line to.
		return model.Event{}, false
	}

	if m.current.DayText == "" {
		if day, after, matched := matchWeekdayPrefix(line); matched {
			if len(after) > 5 && !reDateAnywhere.MatchString(after) {
				m.current.DayText = day
				m.current.DetailsText = joinDetails(after, m.current.DetailsText)
			} else {
				// Short or ambiguous remainder: the whole line is the
				// weekday cell.
				m.current.DayText = line
			}
			return model.Event{}, false
		}
	}

	m.current.DetailsText = joinDetails(m.current.DetailsText, line)
	return model.Event{}, false
}

// Finish flushes the event still accumulating at end of input, if any.
func (m *Machine) Finish() (model.Event, bool) {
	return m.flush()
}

// start opens a new event from a date-anchored line. The text after the date
// is scanned for a leading weekday; whatever remains becomes the initial
// details text.
func (m *Machine) start(dateText, rest string) {
	m.state = inEvent
	m.current = model.Event{
		RawDateText: dateText,
		DetailsText: rest,
		SourceFile:  m.source,
	}

	// "03.01.2024 to" — the second half of the range is on the next
	// physical line. Keep the connector on the date text so the bare-date
	// continuation can complete the range.
	if isConnectorOnly(rest) {
		m.current.RawDateText += " " + strings.ToLower(rest)
		m.current.DetailsText = ""
		return
	}

	for _, pat := range weekdayPatterns {
		if len(rest) < len(pat) || !strings.EqualFold(rest[:len(pat)], pat) {
			continue
		}
		after := strings.TrimSpace(rest[len(pat):])
		// A single stray character after the weekday means the match ate
		// part of a longer word; try the next (shorter) pattern instead.
		if len(after) == 1 {
			continue
		}
		m.current.DayText = correctWeekday(rest[:len(pat)])
		m.current.DetailsText = after
		break
	}
}

func (m *Machine) flush() (model.Event, bool) {
	if m.state != inEvent {
		return model.Event{}, false
	}
	done := m.current
	m.state = noEvent
	m.current = model.Event{}
	return done, true
}

// Parse runs one document through a Machine and post-processes the result.
func Parse(doc model.Document) []model.Event {
	m := NewMachine(doc.SourceFile)
	var events []model.Event
	for _, line := range strings.Split(doc.Raw, "\n") {
		if ev, ok := m.Feed(line); ok {
			events = append(events, ev)
		}
	}
	if ev, ok := m.Finish(); ok {
		events = append(events, ev)
	}
	return postProcess(events)
}

// postProcess re-cleans every field (concatenation can expose artifacts that
// were invisible line by line) and drops records that reduce to noise.
func postProcess(events []model.Event) []model.Event {
	kept := events[:0]
	for _, e := range events {
		e.RawDateText = strings.ReplaceAll(cleaner.Clean(e.RawDateText), " .", ".")
		e.DayText = cleaner.Clean(e.DayText)
		e.DetailsText = cleaner.Clean(e.DetailsText)

		if e.DetailsText == "" || isConnectorOnly(e.DetailsText) {
			continue
		}
		if len(e.DetailsText) < minDetailsLen && e.DayText == "" {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Finalize concatenates per-document event batches in document order,
// removes exact (raw date, details) duplicates keeping the first occurrence,
// and assigns sequential ids over the final ordering. Must run serially,
// once, after all documents are parsed.
func Finalize(batches [][]model.Event) []model.Event {
	seen := make(map[string]struct{})
	var final []model.Event
	for _, batch := range batches {
		for _, e := range batch {
			key := e.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			e.ID = len(final) + 1
			final = append(final, e)
		}
	}
	return final
}

func matchesFooter(lower string) bool {
	for _, f := range footerPrefixes {
		if strings.HasPrefix(lower, f) {
			return true
		}
	}
	return false
}

func matchesJunk(lower string) bool {
	for _, j := range junkExact {
		if lower == j {
			return true
		}
	}
	for _, j := range junkPrefixes {
		if strings.HasPrefix(lower, j) {
			return true
		}
	}
	return false
}

// matchWeekdayPrefix matches a leading weekday or weekday-range token,
// longest pattern first, and returns the corrected weekday plus the trimmed
// remainder of the line.
func matchWeekdayPrefix(line string) (day, after string, ok bool) {
	for _, pat := range weekdayPatterns {
		if len(line) >= len(pat) && strings.EqualFold(line[:len(pat)], pat) {
			return correctWeekday(line[:len(pat)]), strings.TrimSpace(line[len(pat):]), true
		}
	}
	return "", "", false
}

func correctWeekday(day string) string {
	if fixed, ok := weekdayCorrections[day]; ok {
		return fixed
	}
	return day
}

func normalizeSeparators(date string) string {
	return strings.NewReplacer("-", ".", "/", ".").Replace(date)
}

func hasDanglingConnector(dateText string) bool {
	return strings.HasSuffix(dateText, " to") || strings.HasSuffix(dateText, " &")
}

// isBareDateRemainder reports whether the text after a date prefix shows the
// line to be only a date, possibly with its own trailing connector.
func isBareDateRemainder(rest string) bool {
	return rest == "" || isConnectorOnly(rest)
}

func isConnectorOnly(s string) bool {
	return strings.EqualFold(s, "to") || s == "&"
}

func joinDetails(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

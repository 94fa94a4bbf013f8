// Package categorize maps event descriptions onto a closed set of semantic
// categories using ordered case-insensitive substring rules.
package categorize

import "strings"

// Event categories. Categorize never returns anything outside this set.
const (
	Withdrawal       = "withdrawal"
	Registration     = "registration"
	Vacation         = "vacation"
	Holiday          = "holiday"
	AddDrop          = "add_drop"
	SemesterEvent    = "semester_event"
	Exam             = "exam"
	InstructionalDay = "instructional_day"
	CampusEvent      = "event"
	Other            = "other"
)

// rule maps a trigger substring to a category.
type rule struct {
	trigger  string
	category string
}

// rules are evaluated in order, first match wins. Order carries meaning:
// the withdraw triggers and "re-registration" run before the generic
// "registration" trigger so the more specific phrasing is not shadowed, and
// "add/drop" runs before anything that could match "drop" alone.
var rules = []rule{
	{"course withdraw", Withdrawal},
	{"drop course", Withdrawal},
	{"withdraw", Withdrawal},
	{"re-registration", Registration},
	{"add/drop", AddDrop},
	{"vacation", Vacation},
	{"holiday", Holiday},
	{"registration", Registration},
	{"commencement", SemesterEvent},
	{"semester starts", SemesterEvent},
	{"assessment test", Exam},
	{"mid semester examination", Exam},
	{"end semester examination", Exam},
	{"re-examination", Exam},
	{"instructional day", InstructionalDay},
	{"riviera", CampusEvent},
}

// Categorize returns the category for an event description. Unmatched
// descriptions fall through to Other.
func Categorize(detailsText string) string {
	lower := strings.ToLower(detailsText)
	for _, r := range rules {
		if strings.Contains(lower, r.trigger) {
			return r.category
		}
	}
	return Other
}

// Categories returns the closed category set, Other last.
func Categories() []string {
	return []string{
		Withdrawal, Registration, Vacation, Holiday, AddDrop,
		SemesterEvent, Exam, InstructionalDay, CampusEvent, Other,
	}
}

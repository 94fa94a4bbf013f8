package retrieval

import "strings"

// expansion appends domain synonyms when any of its triggers appears in the
// query. Evaluated in fixed order; every matching rule contributes.
type expansion struct {
	triggers []string
	synonyms []string
}

// expansions map everyday phrasings onto the vocabulary the calendars
// actually use. Expansion only ever appends after the original query text;
// the original tokens are never removed or reordered.
var expansions = []expansion{
	{
		triggers: []string{"drop", "withdraw"},
		synonyms: []string{"add/drop", "withdraw", "course drop", "course withdraw"},
	},
	{
		triggers: []string{"exam", "test", "assessment"},
		synonyms: []string{"assessment test", "examination", "continuous assessment"},
	},
	{
		triggers: []string{"register", "registration", "enroll"},
		synonyms: []string{"registration", "course registration", "re-registration"},
	},
	{
		triggers: []string{"holiday", "vacation", "break"},
		synonyms: []string{"holiday", "vacation", "no instructional day"},
	},
	{
		triggers: []string{"semester start", "semester begin", "start of semester", "commence"},
		synonyms: []string{"commencement", "commencement of semester", "semester starts"},
	},
	{
		triggers: []string{"semester end", "end of semester", "last day"},
		synonyms: []string{"last instructional day", "final assessment"},
	},
}

// ExpandQuery augments a raw query with domain synonyms. The result always
// begins with the unmodified query.
func ExpandQuery(query string) string {
	lower := strings.ToLower(query)
	parts := []string{query}
	for _, e := range expansions {
		for _, trigger := range e.triggers {
			if strings.Contains(lower, trigger) {
				parts = append(parts, e.synonyms...)
				break
			}
		}
	}
	return strings.Join(parts, " ")
}

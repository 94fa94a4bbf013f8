package parser

import "sort"

// footerPrefixes mark the end of the calendar table. A line starting with any
// of these (case-insensitive) flushes the pending event and stops the
// document: everything below is disclaimers, signatures, or page furniture.
var footerPrefixes = []string{
	"note:",
	"students should participate",
	"m. anthony xavior",
	"dean academics",
	"no. of instructional days",
	"only re-registration",
	"page 1 of 1",
	"timed-out students",
	"cat-i",
	"actual schedule",
	"it is necessary to maintain",
	"a minimum of 75%",
	"last date for the upload",
	"fat schedule will be announced",
	"students are required to contact",
}

// junkExact and junkPrefixes identify column headers and institutional
// boilerplate that appear between table rows in the OCR output. Matching
// lines are discarded without a state change.
var junkExact = []string{"date", "day", "details", "activity", "vit", "&", "to"}

var junkPrefixes = []string{
	"vit/vlr/acad",
	"circular",
	"vellore institute of",
	"office of the dean",
	"(academics)",
	"date day details",
	"date(s) day activity",
	"applicable to the students",
	"phd",
	"india",
	"vellore-",
	"nadu",
	"except bsc.",
	"except mba",
	"deemed to be university",
	"ugc act",
	"the following table:",
}

// weekdayPatterns are matched as line prefixes, longest first so that range
// spellings win over their single-day prefixes. The short entries are common
// OCR truncations, restored via weekdayCorrections.
var weekdayPatterns = []string{
	"Monday & Tuesday",
	"Monday to Wednesday",
	"Tuesday to Monday",
	"Thursday to Sunday",
	"Friday to Sunday",
	"Sunday to Monday",
	"Sunday to Sunday",
	"Wednesday to Sunday",
	"Saturday to Friday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
	"Saturda",
	"Wednesda",
	"Frida",
}

var weekdayCorrections = map[string]string{
	"Saturda":  "Saturday",
	"Wednesda": "Wednesday",
	"Frida":    "Friday",
}

func init() {
	// Longest-first is what makes prefix matching unambiguous; sorting here
	// keeps the table above free to stay in readable order.
	sort.SliceStable(weekdayPatterns, func(i, j int) bool {
		return len(weekdayPatterns[i]) > len(weekdayPatterns[j])
	})
}

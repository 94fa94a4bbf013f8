package model

// Document is the intermediate type produced by sources and consumed by the
// parser: raw newline-delimited OCR output for one calendar document.
type Document struct {
	SourceFile string // identifier of the acquired document (e.g. file name)
	Raw        string // raw multi-line OCR text, no other structure assumed
}

// Package detector provides an advisory check that input text looks like
// Urdu. The result is only used for a warning; input is never rejected.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to Urdu and the languages it is most
// often confused with, which keeps classification fast and precise.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Urdu,
			lingua.Arabic,
			lingua.Persian,
			lingua.Hindi,
			lingua.English,
		).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// IsLikelyUrdu reports whether the text classifies as Urdu. Empty or
// undetectable text returns false.
func (d *Detector) IsLikelyUrdu(text string) bool {
	lang, ok := d.Detect(text)
	return ok && lang == lingua.Urdu
}

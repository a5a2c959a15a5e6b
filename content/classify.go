package content

import "strings"

// SectionClass tags a section's role during article assembly.
type SectionClass int

const (
	// ClassOther is a section with no recognized role.
	ClassOther SectionClass = iota
	// ClassIntroCandidate is an untitled section eligible to be the intro.
	ClassIntroCandidate
	// ClassHighlightsCandidate is a section whose title carries a
	// highlights marker.
	ClassHighlightsCandidate
)

// highlightsMarkers are the substrings that mark a section as the episode
// highlights. Documents are authored in Chinese with occasional
// English-titled sections.
var highlightsMarkers = []string{"精华", "highlights"}

// ClassifySection tags one section. This is a heuristic over the authoring
// convention, not a structural guarantee: documents that deviate from the
// convention may misclassify, which is accepted.
func ClassifySection(s Section) SectionClass {
	if s.Title == "" {
		return ClassIntroCandidate
	}
	title := strings.ToLower(s.Title)
	for _, marker := range highlightsMarkers {
		if strings.Contains(title, marker) {
			return ClassHighlightsCandidate
		}
	}
	return ClassOther
}

// SplitSections resolves a document's sections into intro and highlights
// paragraphs. The first untitled section becomes the intro; the last
// highlights-marked section becomes the highlights. When no candidate is
// found, the first section backstops the intro and, if more than one
// section exists, the last section backstops the highlights.
func SplitSections(sections []Section) (intro, highlights []string) {
	for _, sec := range sections {
		switch ClassifySection(sec) {
		case ClassIntroCandidate:
			if intro == nil {
				intro = sec.Paragraphs
			}
		case ClassHighlightsCandidate:
			highlights = sec.Paragraphs
		}
	}

	if intro == nil && len(sections) > 0 {
		intro = sections[0].Paragraphs
	}
	if highlights == nil && len(sections) > 1 {
		highlights = sections[len(sections)-1].Paragraphs
	}
	return intro, highlights
}

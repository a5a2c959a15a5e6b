// Package content turns a document's raw block sequence into sectioned
// plain text and classifies sections for article assembly.
package content

import (
	"regexp"
	"strings"

	"podigest/feishu"
)

// sectionBreak is the manual section break authors insert between the intro
// and the body, independent of headings.
const sectionBreak = "---"

// Section is a titled or untitled run of paragraphs. It is an intermediate
// unit: produced here, consumed by the classifier, never exposed externally.
type Section struct {
	Title      string
	Paragraphs []string
}

// Document is the normalized form of one document's blocks.
type Document struct {
	// FullText is all extracted text, newline-joined.
	FullText string
	// VideoID is the first video identifier found in any paragraph, or "".
	VideoID string
	// Sections are the document's sections in authoring order.
	Sections []Section
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID returns the first video identifier in text, or "".
func ExtractVideoID(text string) string {
	for _, pat := range videoIDPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// Normalize walks blocks in order, splitting them into sections. Heading
// level 1 and 2 blocks flush the current section and start a new titled one;
// a paragraph that is exactly the section-break marker flushes and starts a
// new untitled one. Unrecognized block kinds are skipped entirely. The first
// video identifier found wins; later ones are ignored.
func Normalize(blocks []feishu.Block) Document {
	var doc Document
	var fullText strings.Builder
	current := Section{}

	flush := func() {
		if len(current.Paragraphs) > 0 {
			doc.Sections = append(doc.Sections, current)
		}
	}

	for _, block := range blocks {
		text, ok := block.PlainText()
		if !ok {
			continue
		}

		switch block.BlockType {
		case feishu.BlockTypeHeading1, feishu.BlockTypeHeading2:
			flush()
			current = Section{Title: text}
			continue
		}

		if strings.TrimSpace(text) == sectionBreak {
			flush()
			current = Section{}
			continue
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		fullText.WriteString(text)
		fullText.WriteString("\n")
		current.Paragraphs = append(current.Paragraphs, text)

		if doc.VideoID == "" {
			doc.VideoID = ExtractVideoID(text)
		}
	}
	flush()

	doc.FullText = fullText.String()
	return doc
}

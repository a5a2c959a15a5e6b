package content

import (
	"reflect"
	"testing"
)

func TestClassifySection(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		want    SectionClass
	}{
		{"untitled", Section{Paragraphs: []string{"p"}}, ClassIntroCandidate},
		{"chinese highlights marker", Section{Title: "本期精华"}, ClassHighlightsCandidate},
		{"english highlights marker", Section{Title: "Episode Highlights"}, ClassHighlightsCandidate},
		{"plain title", Section{Title: "Background"}, ClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySection(tt.section); got != tt.want {
				t.Errorf("ClassifySection(%+v) = %v, want %v", tt.section, got, tt.want)
			}
		})
	}
}

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name           string
		sections       []Section
		wantIntro      []string
		wantHighlights []string
	}{
		{
			name:           "none",
			sections:       nil,
			wantIntro:      nil,
			wantHighlights: nil,
		},
		{
			name: "untitled intro and marked highlights",
			sections: []Section{
				{Title: "", Paragraphs: []string{"i1", "i2"}},
				{Title: "精华", Paragraphs: []string{"h1"}},
			},
			wantIntro:      []string{"i1", "i2"},
			wantHighlights: []string{"h1"},
		},
		{
			name: "first untitled wins intro",
			sections: []Section{
				{Title: "", Paragraphs: []string{"first"}},
				{Title: "", Paragraphs: []string{"second"}},
			},
			wantIntro: []string{"first"},
			// Two sections with no marker: the last backstops highlights.
			wantHighlights: []string{"second"},
		},
		{
			name: "last marked section wins highlights",
			sections: []Section{
				{Title: "精华", Paragraphs: []string{"old"}},
				{Title: "精华补充", Paragraphs: []string{"new"}},
			},
			wantIntro:      []string{"old"}, // first section backstops intro
			wantHighlights: []string{"new"},
		},
		{
			name: "titled-only document backstops intro",
			sections: []Section{
				{Title: "Background", Paragraphs: []string{"b"}},
			},
			wantIntro:      []string{"b"},
			wantHighlights: nil,
		},
		{
			name: "single untitled section keeps highlights empty",
			sections: []Section{
				{Title: "", Paragraphs: []string{"only"}},
			},
			wantIntro:      []string{"only"},
			wantHighlights: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intro, highlights := SplitSections(tt.sections)
			if !reflect.DeepEqual(intro, tt.wantIntro) {
				t.Errorf("SplitSections() intro = %v, want %v", intro, tt.wantIntro)
			}
			if !reflect.DeepEqual(highlights, tt.wantHighlights) {
				t.Errorf("SplitSections() highlights = %v, want %v", highlights, tt.wantHighlights)
			}
		})
	}
}

package content

import (
	"regexp"
	"strings"
)

// titlePattern matches a leading 4-digit date code followed by a separator
// run (full-width colon, colon, dash, or whitespace).
var titlePattern = regexp.MustCompile(`^(\d{4})[：:\s-]+(.+)$`)

// ParseTitle splits a raw document title into its sortable date code and
// display title. Titles without a leading code return an empty code and the
// raw title unchanged.
func ParseTitle(rawTitle string) (dateCode, title string) {
	if m := titlePattern.FindStringSubmatch(rawTitle); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", rawTitle
}

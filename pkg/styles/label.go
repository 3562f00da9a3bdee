package styles

import (
	"strings"
	"unicode/utf8"
)

// DefaultWrapWidth is the label length above which edge labels are wrapped.
const DefaultWrapWidth = 25

var directionPrefixes = []string{"sync:", "async:"}

// StripDirectionPrefix removes a leading "Sync:" or "Async:" (any case) and
// surrounding whitespace.
func StripDirectionPrefix(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range directionPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

// WrapLabel splits s into lines of at most width characters, breaking at
// spaces. A single word longer than width stays on its own line. Text that
// already contains line breaks is returned split on them and otherwise as is.
func WrapLabel(s string, width int) []string {
	if strings.Contains(s, "\n") {
		return strings.Split(s, "\n")
	}
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return []string{s}
	}

	var (
		lines []string
		line  strings.Builder
		n     int
	)
	for _, word := range strings.Fields(s) {
		wn := utf8.RuneCountInString(word)
		if n > 0 && n+1+wn > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(word)
		n += wn
	}
	if n > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Package sanitizer strips terminal control sequences from note text that
// arrives from the backend, so a stored note cannot repaint or hijack the
// terminal it is displayed in.
package sanitizer

import (
	"regexp"
	"strings"
)

var escapePatterns = []*regexp.Regexp{
	// CSI
	regexp.MustCompile(`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]`),
	// OSC, BEL or ST terminated
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`),
	// charset selection
	regexp.MustCompile(`\x1b[()][AB012]`),
}

type mode struct {
	keepNewlines bool
	tabWidth     int
}

// Title returns a single line suitable for a card header.
func Title(input string) string {
	return strings.TrimSpace(clean(input, mode{keepNewlines: false, tabWidth: 1}))
}

// Content keeps line breaks and expands tabs to four spaces.
func Content(input string) string {
	return clean(input, mode{keepNewlines: true, tabWidth: 4})
}

// Line flattens content to one line, collapsing runs of whitespace.
func Line(input string) string {
	return strings.Join(strings.Fields(clean(input, mode{keepNewlines: false, tabWidth: 1})), " ")
}

func clean(input string, m mode) string {
	if input == "" {
		return input
	}
	for _, pattern := range escapePatterns {
		input = pattern.ReplaceAllString(input, "")
	}
	input = strings.ReplaceAll(input, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\n':
			if m.keepNewlines {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		case r == '\t':
			b.WriteString(strings.Repeat(" ", m.tabWidth))
		case r < 32 || r == 127:
		case r >= 0x80 && r < 0xa0:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

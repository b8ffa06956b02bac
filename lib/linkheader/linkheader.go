// Package linkheader parses RFC 8288 `Link` response headers.
package linkheader

import (
	"net/http"
	"regexp"
	"strings"
)

// SplitValues splits text on any of the characters in sep, except where the
// separator appears inside a quoted or bracketed segment. openQuotes[i] is
// closed by closeQuotes[i]. backslash escapes the character after it inside a
// quoted segment.
func SplitValues(text, sep, openQuotes, closeQuotes string) []string {
	var result []string
	cursor := 0
	segmentStart := 0
	for cursor < len(text) {
		c := text[cursor]
		if q := strings.IndexByte(openQuotes, c); q >= 0 && q < len(closeQuotes) {
			endQuote := closeQuotes[q]
			cursor++
			for cursor < len(text) && text[cursor] != endQuote {
				if text[cursor] == '\\' {
					cursor++
				}
				cursor++
			}
			if cursor < len(text) {
				cursor++
			}
			continue
		}
		if strings.IndexByte(sep, c) >= 0 {
			result = append(result, text[segmentStart:cursor])
			cursor++
			segmentStart = cursor
			continue
		}
		cursor++
	}
	if segmentStart > len(text) {
		segmentStart = len(text)
	}
	return append(result, text[segmentStart:])
}

var (
	targetRegex = regexp.MustCompile(`^\s*<([^>]*)>\s*$`)
	relRegex    = regexp.MustCompile(`^\s*rel\s*=\s*"?(.*?)"?\s*$`)
)

// Parse returns the links in all `Link` headers keyed by relation type.
// when a relation appears more than once the last link wins, links without a
// rel parameter are ignored.
func Parse(headers http.Header) map[string]string {
	links := map[string]string{}
	for _, header := range headers.Values("Link") {
		for _, value := range SplitValues(header, ",", `"<`, `">`) {
			parts := SplitValues(value, ";", `"<`, `">`)
			target := targetRegex.FindStringSubmatch(parts[0])
			if target == nil {
				continue
			}
			for _, param := range parts[1:] {
				rel := relRegex.FindStringSubmatch(param)
				if rel == nil {
					continue
				}
				// a rel value may hold several space separated relation types
				for _, relType := range strings.Fields(rel[1]) {
					links[relType] = target[1]
				}
			}
		}
	}
	return links
}

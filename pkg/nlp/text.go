package nlp

import (
	"regexp"
	"strings"
)

var (
	// \s does not cover the ideographic space U+3000 used in Japanese input.
	reWordSep = regexp.MustCompile(`[\s\x{3000}]+`)
	reListSep = regexp.MustCompile(`[,、，\s\x{3000}]+`)
)

// Fields splits s on ASCII and full-width whitespace.
func Fields(s string) []string {
	return splitNonEmpty(reWordSep, s)
}

// SplitList splits an enumeration such as "Excel, Word、簿記2級".
func SplitList(s string) []string {
	return splitNonEmpty(reListSep, s)
}

// ContainsAnyFold reports whether text contains any of the needles, ignoring case.
func ContainsAnyFold(text string, needles []string) bool {
	hay := strings.ToLower(text)
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && strings.Contains(hay, n) {
			return true
		}
	}
	return false
}

func splitNonEmpty(re *regexp.Regexp, s string) []string {
	parts := re.Split(strings.TrimSpace(s), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

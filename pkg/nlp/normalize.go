package nlp

import "strings"

// NormalizeText приводит текст к виду для сравнения:
// - нижний регистр
// - схлопывает пробелы, в том числе U+3000
// Пунктуация сохраняется: "C++", "C#" и "C" остаются разными значениями.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reWordSep.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CompactList trims items, drops empty ones and removes duplicates that only
// differ in case or spacing. The first spelling wins, order is kept.
// A non-nil input always yields a non-nil result.
func CompactList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := NormalizeText(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

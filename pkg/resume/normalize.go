package resume

import (
	"regexp"
	"strings"

	"github.com/artem13815/rirekisho/pkg/nlp"
)

var (
	reYearMonthDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reYearMonth    = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// DefaultDegree is assumed when the extractor did not name one.
const DefaultDegree = "学士"

// NormalizeDate converts YYYY-MM to YYYY-MM-01 and keeps YYYY-MM-DD.
// Anything else becomes empty (stored as NULL).
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case reYearMonthDay.MatchString(s):
		return s
	case reYearMonth.MatchString(s):
		return s + "-01"
	default:
		return ""
	}
}

func normalizeEducation(items []Education) []Education {
	out := make([]Education, 0, len(items))
	for _, e := range items {
		e.SchoolName = strings.TrimSpace(e.SchoolName)
		e.Faculty = strings.TrimSpace(e.Faculty)
		if strings.TrimSpace(e.Degree) == "" {
			e.Degree = DefaultDegree
		}
		e.StartDate = NormalizeDate(e.StartDate)
		e.EndDate = NormalizeDate(e.EndDate)
		out = append(out, e)
	}
	return out
}

func normalizeWork(items []WorkHistory) []WorkHistory {
	out := make([]WorkHistory, 0, len(items))
	for i, w := range items {
		w.CompanyName = strings.TrimSpace(w.CompanyName)
		w.Position = strings.TrimSpace(w.Position)
		w.StartDate = NormalizeDate(w.StartDate)
		w.EndDate = NormalizeDate(w.EndDate)
		w.DisplayOrder = i
		out = append(out, w)
	}
	return out
}

func compactStrings(items []string) []string {
	return nlp.CompactList(items)
}

package listview

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/adminui/internal/member"
)

// Filter returns the members whose name, email or role contains term,
// ignoring case. The source slice is never modified.
func Filter(source []member.Member, term string) []member.Member {
	q := strings.ToLower(term)
	out := make([]member.Member, 0, len(source))
	for _, m := range source {
		if matches(m, q) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m member.Member, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), q) ||
		strings.Contains(strings.ToLower(m.Email), q) ||
		strings.Contains(strings.ToLower(string(m.Role)), q)
}

// Suggest returns the member name with a word closest to term by edit
// distance. Callers use it for a hint when Filter comes back empty.
func Suggest(source []member.Member, term string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return "", false
	}
	limit := max(2, len(q)/2)
	best, bestDist := "", limit+1
	for _, m := range source {
		for _, word := range strings.Fields(strings.ToLower(m.Name)) {
			d := levenshtein.ComputeDistance(q, word)
			if d < bestDist {
				best, bestDist = m.Name, d
			}
		}
	}
	return best, best != ""
}

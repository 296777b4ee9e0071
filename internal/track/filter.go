package track

import (
	"fmt"
	"sort"
	"strings"

	"jt-go/internal/model"
)

// FilterAll is the sentinel criterion value meaning "no filter".
// An empty string is equivalent.
const FilterAll = "all"

// SortKey selects the ordering of the filter pipeline's output.
type SortKey string

const (
	SortLatest     SortKey = "latest"     // most recent first
	SortOldest     SortKey = "oldest"     // oldest first
	SortMatchScore SortKey = "matchScore" // score descending
	SortSalary     SortKey = "salary"     // numeric salary descending
)

// ParseSortKey converts a raw string to a SortKey. Empty input means
// the default ordering, latest first.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortLatest, nil
	}
	k := SortKey(s)
	switch k {
	case SortLatest, SortOldest, SortMatchScore, SortSalary:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// FilterSpec is a conjunction of independently optional criteria. A
// criterion set to FilterAll (or left empty) is skipped. Threshold
// additionally requires a saved preference record to take effect.
type FilterSpec struct {
	Keyword    string // substring of title or company, case-insensitive
	Location   string
	Mode       string
	Experience string
	Source     string
	Status     string
	Sort       SortKey
	Threshold  bool // score >= preferences.MinMatchScore
}

// ScoredPosting pairs a posting with its match score.
type ScoredPosting struct {
	Posting model.Posting
	Score   int
}

// ListPostings scores the whole catalog and runs it through the
// filter/sort pipeline. When no preference record exists every posting
// scores 0 and the threshold criterion is inert.
func (s *Service) ListPostings(spec FilterSpec) ([]ScoredPosting, error) {
	prefs, prefsExist, err := s.Preferences()
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredPosting, 0, s.catalog.Len())
	for _, p := range s.catalog.All() {
		score := 0
		if prefsExist {
			score = MatchScore(p, prefs)
		}
		scored = append(scored, ScoredPosting{Posting: p, Score: score})
	}

	ledger, err := s.loadLedger()
	if err != nil {
		return nil, err
	}
	statusOf := func(id string) model.Status {
		if entry, ok := ledger[id]; ok {
			return entry.Status
		}
		return model.StatusNotApplied
	}

	return Apply(scored, statusOf, spec, prefs, prefsExist), nil
}

// Apply runs the filter/sort pipeline over pre-scored postings. The
// result is a freshly ordered subsequence of the input; the input slice
// is not mutated. Deterministic for fixed inputs.
func Apply(scored []ScoredPosting, statusOf func(string) model.Status, spec FilterSpec, prefs model.Preferences, prefsExist bool) []ScoredPosting {
	result := make([]ScoredPosting, 0, len(scored))
	for _, sp := range scored {
		if matches(sp, statusOf, spec, prefs, prefsExist) {
			result = append(result, sp)
		}
	}
	sortResults(result, spec.Sort)
	return result
}

// matches evaluates the conjunction of active criteria for one posting.
func matches(sp ScoredPosting, statusOf func(string) model.Status, spec FilterSpec, prefs model.Preferences, prefsExist bool) bool {
	p := sp.Posting

	if spec.Threshold && prefsExist && sp.Score < prefs.MinMatchScore {
		return false
	}
	if spec.Keyword != "" {
		kw := strings.ToLower(spec.Keyword)
		if !strings.Contains(strings.ToLower(p.Title), kw) &&
			!strings.Contains(strings.ToLower(p.Company), kw) {
			return false
		}
	}
	if active(spec.Location) && p.Location != spec.Location {
		return false
	}
	if active(spec.Mode) && string(p.Mode) != spec.Mode {
		return false
	}
	if active(spec.Experience) && string(p.Experience) != spec.Experience {
		return false
	}
	if active(spec.Source) && p.Source != spec.Source {
		return false
	}
	if active(spec.Status) && string(statusOf(p.ID)) != spec.Status {
		return false
	}
	return true
}

// active reports whether a criterion value participates in the filter.
func active(criterion string) bool {
	return criterion != "" && criterion != FilterAll
}

// sortResults orders the result in place. All sorts are stable: ties
// retain their pre-sort relative order, which is catalog order.
func sortResults(result []ScoredPosting, key SortKey) {
	switch key {
	case SortLatest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Posting.PostedDaysAgo < result[j].Posting.PostedDaysAgo
		})
	case SortOldest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Posting.PostedDaysAgo > result[j].Posting.PostedDaysAgo
		})
	case SortMatchScore:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Score > result[j].Score
		})
	case SortSalary:
		sort.SliceStable(result, func(i, j int) bool {
			return ExtractSalaryNum(result[i].Posting.SalaryRange) > ExtractSalaryNum(result[j].Posting.SalaryRange)
		})
	}
}

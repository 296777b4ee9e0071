package track

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"jt-go/internal/model"
)

// Point values for each scoring rule. A rule contributes at most once
// no matter how many of its terms match; the capped sum can reach
// exactly 100.
const (
	pointsKeywordTitle       = 25
	pointsKeywordDescription = 15
	pointsLocation           = 15
	pointsMode               = 10
	pointsExperience         = 10
	pointsSkillOverlap       = 15
	pointsFreshPosting       = 5
	pointsPreferredSource    = 5

	maxScore = 100

	// Postings this many days old or newer earn the freshness points.
	freshWithinDays = 2

	// preferredSource earns its points regardless of user preferences.
	preferredSource = "LinkedIn"
)

var digitsRe = regexp.MustCompile(`\d+`)

// MatchScore rates how well a posting fits the user's preferences,
// returning an integer in [0,100]. It is a pure function: no side
// effects, no failure modes. Malformed preference text contributes
// nothing rather than faulting.
func MatchScore(p model.Posting, prefs model.Preferences) int {
	score := 0

	keywords := splitCSV(prefs.RoleKeywords)
	userSkills := splitCSV(prefs.Skills)
	titleLower := strings.ToLower(p.Title)
	descLower := strings.ToLower(p.Description)

	if anySubstring(titleLower, keywords) {
		score += pointsKeywordTitle
	}
	if anySubstring(descLower, keywords) {
		score += pointsKeywordDescription
	}
	if len(prefs.PreferredLocations) > 0 && slices.Contains(prefs.PreferredLocations, p.Location) {
		score += pointsLocation
	}
	if len(prefs.PreferredModes) > 0 && slices.Contains(prefs.PreferredModes, string(p.Mode)) {
		score += pointsMode
	}
	if prefs.ExperienceLevel != "" && prefs.ExperienceLevel == string(p.Experience) {
		score += pointsExperience
	}
	if skillOverlap(p.Skills, userSkills) {
		score += pointsSkillOverlap
	}
	if p.PostedDaysAgo <= freshWithinDays {
		score += pointsFreshPosting
	}
	if p.Source == preferredSource {
		score += pointsPreferredSource
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// splitCSV splits comma-separated free text into trimmed, lower-cased,
// non-empty terms. Empty input yields no terms, so an empty preference
// field can never match everything.
func splitCSV(csv string) []string {
	var terms []string
	for _, part := range strings.Split(csv, ",") {
		term := strings.ToLower(strings.TrimSpace(part))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// anySubstring reports whether any term occurs within text. text must
// already be lower-cased.
func anySubstring(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// skillOverlap reports whether any posting skill tag equals any user
// skill, case-insensitively. userSkills must already be lower-cased.
func skillOverlap(postingSkills, userSkills []string) bool {
	if len(userSkills) == 0 {
		return false
	}
	for _, s := range postingSkills {
		if slices.Contains(userSkills, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// ExtractSalaryNum pulls the first integer out of free-text salary
// range for numeric sorting. Text with no digits extracts as 0.
func ExtractSalaryNum(salaryRange string) int {
	digits := digitsRe.FindString(salaryRange)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

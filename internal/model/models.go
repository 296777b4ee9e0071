package model

import (
	"fmt"
	"time"
)

// WorkMode is where the work happens.
type WorkMode string

const (
	ModeRemote WorkMode = "Remote"
	ModeHybrid WorkMode = "Hybrid"
	ModeOnsite WorkMode = "Onsite"
)

// ParseWorkMode converts a raw string to a WorkMode, returning an error
// for unknown values.
func ParseWorkMode(s string) (WorkMode, error) {
	m := WorkMode(s)
	switch m {
	case ModeRemote, ModeHybrid, ModeOnsite:
		return m, nil
	}
	return "", fmt.Errorf("unknown work mode %q", s)
}

// Experience is the experience bracket a posting asks for.
type Experience string

const (
	ExperienceFresher     Experience = "Fresher"
	ExperienceZeroToOne   Experience = "0-1"
	ExperienceOneToThree  Experience = "1-3"
	ExperienceThreeToFive Experience = "3-5"
)

// ParseExperience converts a raw string to an Experience bracket,
// returning an error for unknown values.
func ParseExperience(s string) (Experience, error) {
	e := Experience(s)
	switch e {
	case ExperienceFresher, ExperienceZeroToOne, ExperienceOneToThree, ExperienceThreeToFive:
		return e, nil
	}
	return "", fmt.Errorf("unknown experience bracket %q", s)
}

// Status is the application status of a posting.
//
// There is no transition graph: any status may be set at any time and
// the last write wins. Setting the same status twice still refreshes
// the entry's timestamp.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Posting is one job listing in the catalog. Postings are created at
// catalog load and never mutated during a session.
type Posting struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Company       string     `json:"company"`
	Location      string     `json:"location"`
	Mode          WorkMode   `json:"mode"`
	Experience    Experience `json:"experience"`
	SalaryRange   string     `json:"salaryRange"` // free text; leading integer used for salary sort
	Skills        []string   `json:"skills"`
	Description   string     `json:"description"`
	Source        string     `json:"source"` // platform name, e.g. "LinkedIn"
	PostedDaysAgo int        `json:"postedDaysAgo"`
	ApplyURL      string     `json:"applyUrl"`
}

// Preferences is the user's matching criteria. A single record exists
// per profile and is overwritten wholesale on every save.
type Preferences struct {
	RoleKeywords       string   `json:"roleKeywords"` // comma-separated
	PreferredLocations []string `json:"preferredLocations"`
	PreferredModes     []string `json:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             string   `json:"skills"` // comma-separated
	MinMatchScore      int      `json:"minMatchScore"`
}

// DefaultMinMatchScore is the threshold a fresh Preferences record
// starts with.
const DefaultMinMatchScore = 40

// DefaultPreferences returns a Preferences record with every matching
// field empty. Saving this record is still "opting in": existence of a
// record, not its contents, activates matching.
func DefaultPreferences() Preferences {
	return Preferences{MinMatchScore: DefaultMinMatchScore}
}

// StatusEntry is one row of the status ledger.
type StatusEntry struct {
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SnapshotEntry is one line of a stored digest snapshot.
type SnapshotEntry struct {
	PostingID  string `json:"postingId"`
	MatchScore int    `json:"matchScore"`
}

// DigestSnapshot is the immutable record of one calendar day's digest.
// It stores posting IDs, not postings; hydration resolves them against
// the catalog.
type DigestSnapshot struct {
	ID      string          `json:"id"`
	Date    string          `json:"date"` // YYYY-MM-DD, local calendar
	Entries []SnapshotEntry `json:"entries"`
}

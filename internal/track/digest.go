package track

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"jt-go/internal/model"
)

// digestTopN is how many postings a day's snapshot holds at most.
const digestTopN = 10

// DigestEntry is a snapshot line resolved against the catalog.
type DigestEntry struct {
	Posting    model.Posting
	MatchScore int
}

func digestKey(dayKey string) string { return digestKeyPrefix + dayKey }

// loadSnapshot reads the stored snapshot for a calendar day. A missing
// or unparseable value counts as "no snapshot for this day".
func (s *Service) loadSnapshot(dayKey string) (model.DigestSnapshot, bool, error) {
	raw, ok, err := s.store.Get(digestKey(dayKey))
	if err != nil {
		return model.DigestSnapshot{}, false, fmt.Errorf("reading digest snapshot: %w", err)
	}
	if !ok {
		return model.DigestSnapshot{}, false, nil
	}

	var snap model.DigestSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.Warn("discarding unparseable digest snapshot", "day", dayKey, "error", err)
		return model.DigestSnapshot{}, false, nil
	}
	return snap, true, nil
}

// GenerateDigest returns the digest snapshot for the given calendar
// day, computing and committing it first if the day has none yet.
//
// Generation is idempotent per day: once a snapshot exists it is
// returned unchanged, even if preferences changed since it was
// committed. A later dayKey always starts a fresh, independent
// snapshot under its own store key.
//
// Returns ErrNoPreferences when no preference record exists; no
// snapshot is committed in that case.
func (s *Service) GenerateDigest(dayKey string) (model.DigestSnapshot, error) {
	prefs, ok, err := s.Preferences()
	if err != nil {
		return model.DigestSnapshot{}, err
	}
	if !ok {
		return model.DigestSnapshot{}, ErrNoPreferences
	}

	if snap, exists, err := s.loadSnapshot(dayKey); err != nil {
		return model.DigestSnapshot{}, err
	} else if exists {
		s.logger.Debug("digest already generated", "day", dayKey)
		return snap, nil
	}

	// Score the whole catalog and keep the top entries. SliceStable
	// over the catalog-ordered slice makes catalog position the final
	// tie-break after score and freshness.
	scored := make([]ScoredPosting, 0, s.catalog.Len())
	for _, p := range s.catalog.All() {
		scored = append(scored, ScoredPosting{Posting: p, Score: MatchScore(p, prefs)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Posting.PostedDaysAgo < scored[j].Posting.PostedDaysAgo
	})
	if len(scored) > digestTopN {
		scored = scored[:digestTopN]
	}

	snap := model.DigestSnapshot{
		ID:      s.idgen.New(),
		Date:    dayKey,
		Entries: make([]model.SnapshotEntry, 0, len(scored)),
	}
	for _, sp := range scored {
		snap.Entries = append(snap.Entries, model.SnapshotEntry{
			PostingID:  sp.Posting.ID,
			MatchScore: sp.Score,
		})
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return model.DigestSnapshot{}, fmt.Errorf("encoding digest snapshot: %w", err)
	}
	if err := s.store.Put(digestKey(dayKey), string(raw)); err != nil {
		return model.DigestSnapshot{}, fmt.Errorf("saving digest snapshot: %w", err)
	}

	s.logger.Info("digest generated", "day", dayKey, "id", snap.ID, "entries", len(snap.Entries))
	return snap, nil
}

// DigestForDay returns the stored snapshot for a day without
// generating one.
func (s *Service) DigestForDay(dayKey string) (model.DigestSnapshot, bool, error) {
	return s.loadSnapshot(dayKey)
}

// HydrateDigest resolves a snapshot's posting identifiers against the
// catalog. Identifiers that no longer resolve are silently dropped
// from the view; the stored snapshot is not rewritten.
func (s *Service) HydrateDigest(snap model.DigestSnapshot) []DigestEntry {
	var entries []DigestEntry
	for _, e := range snap.Entries {
		if p, ok := s.catalog.ByID(e.PostingID); ok {
			entries = append(entries, DigestEntry{Posting: p, MatchScore: e.MatchScore})
		}
	}
	return entries
}

// RenderDigestText formats hydrated digest entries as the plain-text
// digest the export and email-draft surfaces consume.
func RenderDigestText(entries []DigestEntry, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Jobs For You — 9AM Digest\n", len(entries))
	fmt.Fprintf(&b, "%s\n\n", date.Format("Monday, January 2, 2006"))

	for i, e := range entries {
		exp := string(e.Posting.Experience)
		if e.Posting.Experience != model.ExperienceFresher {
			exp += " yrs"
		}
		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, e.Posting.Title, e.Posting.Company)
		fmt.Fprintf(&b, "   %s · %s · Match: %d%%\n", e.Posting.Location, exp, e.MatchScore)
		if IsValidURL(e.Posting.ApplyURL) {
			fmt.Fprintf(&b, "   Apply: %s\n", e.Posting.ApplyURL)
		}
	}

	b.WriteString("\nThis digest was generated based on your preferences.\n")
	return b.String()
}

// MailtoDraft builds a mailto URL carrying the digest text, for the
// email-draft surface.
func MailtoDraft(text string) string {
	subject := escapeMailto("My 9AM Job Digest")
	body := escapeMailto(text)
	return "mailto:?subject=" + subject + "&body=" + body
}

// escapeMailto percent-encodes for a mailto query. QueryEscape's
// plus-for-space convention is not understood by mail clients.
func escapeMailto(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

package track_test

import (
	"testing"

	"jt-go/internal/model"
	"jt-go/internal/testutil"
	"jt-go/internal/track"
)

func TestParseSortKey(t *testing.T) {
	t.Run("empty string defaults to latest", func(t *testing.T) {
		t.Parallel()
		key, err := track.ParseSortKey("")
		if err != nil {
			t.Fatalf("ParseSortKey() error = %v", err)
		}
		if key != track.SortLatest {
			t.Errorf("ParseSortKey() = %q, want %q", key, track.SortLatest)
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()
		if _, err := track.ParseSortKey("newest"); err == nil {
			t.Error("ParseSortKey() expected error for unknown key")
		}
	})
}

func TestListPostings(t *testing.T) {
	t.Run("scores zero for everything without preferences", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := testutil.NewTestService(t)

		result, err := svc.ListPostings(track.FilterSpec{Sort: track.SortLatest})
		if err != nil {
			t.Fatalf("ListPostings() error = %v", err)
		}
		if len(result) != 5 {
			t.Fatalf("got %d postings, want 5", len(result))
		}
		for _, sp := range result {
			if sp.Score != 0 {
				t.Errorf("posting %s score = %d, want 0", sp.Posting.ID, sp.Score)
			}
		}
	})

	t.Run("returns a subsequence satisfying every active criterion", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := testutil.NewTestService(t)
		if err := svc.SavePreferences(testutil.FixturePreferences()); err != nil {
			t.Fatalf("SavePreferences() error = %v", err)
		}

		spec := track.FilterSpec{Location: "Bangalore", Mode: "all", Sort: track.SortLatest}
		result, err := svc.ListPostings(spec)
		if err != nil {
			t.Fatalf("ListPostings() error = %v", err)
		}
		if len(result) != 2 {
			t.Fatalf("got %d postings, want 2", len(result))
		}
		for _, sp := range result {
			if sp.Posting.Location != "Bangalore" {
				t.Errorf("posting %s location = %q, want Bangalore", sp.Posting.ID, sp.Posting.Location)
			}
		}
	})

	t.Run("keyword matches company case-insensitively", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := testutil.NewTestService(t)

		result, err := svc.ListPostings(track.FilterSpec{Keyword: "pixelworks", Sort: track.SortLatest})
		if err != nil {
			t.Fatalf("ListPostings() error = %v", err)
		}
		if len(result) != 1 || result[0].Posting.ID != "job-001" {
			t.Fatalf("got %v, want [job-001]", ids(result))
		}
	})

	t.Run("status criterion reads the ledger", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := testutil.NewTestService(t)
		if err := svc.SetStatus("job-002", model.StatusApplied); err != nil {
			t.Fatalf("SetStatus() error = %v", err)
		}

		result, err := svc.ListPostings(track.FilterSpec{Status: "Applied", Sort: track.SortLatest})
		if err != nil {
			t.Fatalf("ListPostings() error = %v", err)
		}
		if len(result) != 1 || result[0].Posting.ID != "job-002" {
			t.Fatalf("got %v, want [job-002]", ids(result))
		}

		// Everything else defaults to Not Applied without a ledger entry.
		result, err = svc.ListPostings(track.FilterSpec{Status: "Not Applied", Sort: track.SortLatest})
		if err != nil {
			t.Fatalf("ListPostings() error = %v", err)
		}
		if len(result) != 4 {
			t.Errorf("got %d Not Applied postings, want 4", len(result))
		}
	})

	t.Run("threshold drops postings below the minimum score", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := testutil.NewTestService(t)
		if err := svc.SavePreferences(testutil.FixturePreferences()); err != nil {
			t.Fatalf("SavePreferences() error = %v", err)
		}

		result, err := svc.ListPostings(track.FilterSpec{Threshold: true, Sort: track.SortMatchScore})
		if err != nil {
			t.Fatalf("ListPostings() error = %v", err)
		}
		for _, sp := range result {
			if sp.Score < model.DefaultMinMatchScore {
				t.Errorf("posting %s score = %d, below threshold %d", sp.Posting.ID, sp.Score, model.DefaultMinMatchScore)
			}
		}
		if len(result) != 2 {
			t.Errorf("got %v, want 2 postings at or above threshold", ids(result))
		}
	})

	t.Run("threshold is inert without preferences", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := testutil.NewTestService(t)

		result, err := svc.ListPostings(track.FilterSpec{Threshold: true, Sort: track.SortLatest})
		if err != nil {
			t.Fatalf("ListPostings() error = %v", err)
		}
		if len(result) != 5 {
			t.Errorf("got %d postings, want all 5", len(result))
		}
	})
}

func TestApplySorting(t *testing.T) {
	statusOf := func(string) model.Status { return model.StatusNotApplied }
	scored := func() []track.ScoredPosting {
		prefs := testutil.FixturePreferences()
		var out []track.ScoredPosting
		for _, p := range testutil.FixturePostings() {
			out = append(out, track.ScoredPosting{Posting: p, Score: track.MatchScore(p, prefs)})
		}
		return out
	}

	t.Run("latest orders by days ascending", func(t *testing.T) {
		t.Parallel()
		result := track.Apply(scored(), statusOf, track.FilterSpec{Sort: track.SortLatest}, model.Preferences{}, false)
		for i := 1; i < len(result); i++ {
			if result[i-1].Posting.PostedDaysAgo > result[i].Posting.PostedDaysAgo {
				t.Fatalf("latest sort out of order at %d: %v", i, ids(result))
			}
		}
	})

	t.Run("oldest orders by days descending", func(t *testing.T) {
		t.Parallel()
		result := track.Apply(scored(), statusOf, track.FilterSpec{Sort: track.SortOldest}, model.Preferences{}, false)
		for i := 1; i < len(result); i++ {
			if result[i-1].Posting.PostedDaysAgo < result[i].Posting.PostedDaysAgo {
				t.Fatalf("oldest sort out of order at %d: %v", i, ids(result))
			}
		}
	})

	t.Run("matchScore orders by score descending", func(t *testing.T) {
		t.Parallel()
		result := track.Apply(scored(), statusOf, track.FilterSpec{Sort: track.SortMatchScore}, model.Preferences{}, false)
		for i := 1; i < len(result); i++ {
			if result[i-1].Score < result[i].Score {
				t.Fatalf("matchScore sort out of order at %d: %v", i, ids(result))
			}
		}
		if result[0].Posting.ID != "job-001" {
			t.Errorf("top posting = %s, want job-001", result[0].Posting.ID)
		}
	})

	t.Run("salary orders by extracted number descending", func(t *testing.T) {
		t.Parallel()
		result := track.Apply(scored(), statusOf, track.FilterSpec{Sort: track.SortSalary}, model.Preferences{}, false)
		want := []string{"job-002", "job-001", "job-004", "job-003", "job-005"}
		got := ids(result)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("salary sort = %v, want %v", got, want)
			}
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		t.Parallel()
		// With zero scores everywhere, a matchScore sort is all ties and
		// must preserve the input order.
		var zeroScored []track.ScoredPosting
		for _, p := range testutil.FixturePostings() {
			zeroScored = append(zeroScored, track.ScoredPosting{Posting: p})
		}

		result := track.Apply(zeroScored, statusOf, track.FilterSpec{Sort: track.SortMatchScore}, model.Preferences{}, false)
		want := []string{"job-001", "job-002", "job-003", "job-004", "job-005"}
		got := ids(result)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("tie order = %v, want %v", got, want)
			}
		}
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		t.Parallel()
		input := scored()
		firstID := input[0].Posting.ID

		track.Apply(input, statusOf, track.FilterSpec{Sort: track.SortOldest}, model.Preferences{}, false)

		if input[0].Posting.ID != firstID {
			t.Errorf("input reordered: first = %s, want %s", input[0].Posting.ID, firstID)
		}
	})
}

func ids(result []track.ScoredPosting) []string {
	out := make([]string, 0, len(result))
	for _, sp := range result {
		out = append(out, sp.Posting.ID)
	}
	return out
}

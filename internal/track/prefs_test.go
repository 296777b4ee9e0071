package track_test

import (
	"testing"

	"jt-go/internal/model"
	"jt-go/internal/testutil"
)

func TestPreferences(t *testing.T) {
	t.Run("absent until first save", func(t *testing.T) {
		svc, _, _ := testutil.NewTestService(t)

		_, ok, err := svc.Preferences()
		if err != nil {
			t.Fatalf("Preferences() error = %v", err)
		}
		if ok {
			t.Error("Preferences() exists = true before any save")
		}
	})

	t.Run("saving defaults still counts as a record", func(t *testing.T) {
		svc, _, _ := testutil.NewTestService(t)

		if err := svc.SavePreferences(model.DefaultPreferences()); err != nil {
			t.Fatalf("SavePreferences() error = %v", err)
		}

		prefs, ok, err := svc.Preferences()
		if err != nil {
			t.Fatalf("Preferences() error = %v", err)
		}
		if !ok {
			t.Fatal("Preferences() exists = false after saving defaults")
		}
		if prefs.MinMatchScore != model.DefaultMinMatchScore {
			t.Errorf("MinMatchScore = %d, want %d", prefs.MinMatchScore, model.DefaultMinMatchScore)
		}
	})

	t.Run("round-trips a full record", func(t *testing.T) {
		svc, _, _ := testutil.NewTestService(t)
		want := testutil.FixturePreferences()

		if err := svc.SavePreferences(want); err != nil {
			t.Fatalf("SavePreferences() error = %v", err)
		}

		got, ok, err := svc.Preferences()
		if err != nil {
			t.Fatalf("Preferences() error = %v", err)
		}
		if !ok {
			t.Fatal("Preferences() exists = false after save")
		}
		if got.RoleKeywords != want.RoleKeywords || got.MinMatchScore != want.MinMatchScore {
			t.Errorf("Preferences() = %+v, want %+v", got, want)
		}
	})

	t.Run("unparseable record reads as absent", func(t *testing.T) {
		svc, st, _ := testutil.NewTestService(t)
		if err := st.Put("preferences", "{not json"); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		_, ok, err := svc.Preferences()
		if err != nil {
			t.Fatalf("Preferences() error = %v", err)
		}
		if ok {
			t.Error("Preferences() exists = true for corrupt record")
		}

		has, err := svc.HasPreferences()
		if err != nil {
			t.Fatalf("HasPreferences() error = %v", err)
		}
		if has {
			t.Error("HasPreferences() = true for corrupt record")
		}
	})
}

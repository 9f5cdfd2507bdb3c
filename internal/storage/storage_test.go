package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *KV {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewKV(db)
}

func TestKVRoundTrip(t *testing.T) {
	kv := newTestDB(t)
	ctx := context.Background()

	type payload struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}
	in := payload{Name: "compost", Count: 3, Tags: []string{"home", "waste"}}

	if err := kv.Set(ctx, "test_key", in); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out payload
	ok, err := kv.Get(ctx, "test_key", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("key missing after Set")
	}
	if out.Name != in.Name || out.Count != in.Count || len(out.Tags) != 2 {
		t.Fatalf("round trip %+v, want %+v", out, in)
	}

	// Overwrite replaces the value.
	in.Count = 7
	if err := kv.Set(ctx, "test_key", in); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if _, err := kv.Get(ctx, "test_key", &out); err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if out.Count != 7 {
		t.Fatalf("count=%d after overwrite, want 7", out.Count)
	}
}

func TestKVMissingAndRemove(t *testing.T) {
	kv := newTestDB(t)
	ctx := context.Background()

	var out string
	ok, err := kv.Get(ctx, "absent", &out)
	if err != nil {
		t.Fatalf("Get absent: %v", err)
	}
	if ok {
		t.Fatalf("absent key reported present")
	}

	if err := kv.Set(ctx, "gone_soon", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Remove(ctx, "gone_soon"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ok, _ := kv.Get(ctx, "gone_soon", &out); ok {
		t.Fatalf("key present after Remove")
	}

	// Removing an absent key is a no-op.
	if err := kv.Remove(ctx, "gone_soon"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
}

func TestScopedKey(t *testing.T) {
	if got := ScopedKey(KeyActivities, "ana@example.com"); got != "activities__ana@example.com" {
		t.Fatalf("ScopedKey=%q", got)
	}
	if got := ScopedKey(KeyTipsSaved, ""); got != "tips_saved__anonymous" {
		t.Fatalf("ScopedKey empty scope=%q, want anonymous fallback", got)
	}
}

func TestAchievementUniquePerUser(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	repo := NewAchievementRepo(db)

	rec := AchievementRecord{
		Email: "ana@example.com", Code: "first_activity", Type: "first_activity",
		Name: "Green Beginner", Description: "Completed your first green activity!",
		XPReward: 25, EarnedAt: time.Now().UTC(),
	}

	if _, err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := repo.Insert(ctx, rec); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate insert err=%v, want ErrDuplicate", err)
	}

	exists, err := repo.Exists(ctx, rec.Email, rec.Code)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("Exists=false after insert")
	}

	// Another user can earn the same code.
	rec.Email = "ben@example.com"
	if _, err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert other user: %v", err)
	}

	list, err := repo.ListByUser(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].Code != "first_activity" {
		t.Fatalf("list=%+v", list)
	}
}

func TestProfileGetOrCreate(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	repo := NewProfileRepo(db)

	missing, err := repo.Get(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing profile, got %+v", missing)
	}

	p, err := repo.GetOrCreate(ctx, "ana@example.com", "ana", "Ana")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if p.TotalXP != 0 || p.EventsAttended != 0 {
		t.Fatalf("fresh profile=%+v, want zero counters", p)
	}

	p.TotalXP = 120
	p.EventsAttended = 2
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again, err := repo.GetOrCreate(ctx, "ana@example.com", "other", "Other")
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}
	if again.TotalXP != 120 || again.Username != "ana" {
		t.Fatalf("existing profile clobbered: %+v", again)
	}
}

func TestCommunityActivityList(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	repo := NewCommunityRepo(db)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if _, err := repo.Insert(ctx, "ana@example.com", "event_attended", "Beach cleanup", "Bondi", 50, base); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := repo.Insert(ctx, "ana@example.com", "space_explored", "Botanic gardens", "", 30, base.Add(time.Hour)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	list, err := repo.ListByUser(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list len=%d, want 2", len(list))
	}
	if list[0].Name != "Botanic gardens" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].XPEarned != 30 || list[1].XPEarned != 50 {
		t.Fatalf("xp order wrong: %+v", list)
	}
}

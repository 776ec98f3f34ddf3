package store

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/sandeepkv93/dayblocks/internal/clock"
	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

const testDay model.DateKey = "2026-05-18"

func setupStore(t *testing.T) (*Store, *storage.MemoryBackend, *clock.FixedClock) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	clk := clock.NewFixedClock(time.Date(2026, 5, 18, 10, 0, 0, 0, time.UTC))
	s, err := Open(context.Background(), backend, Options{
		Clock:             clk,
		Zone:              clock.ZoneOf(time.UTC),
		DefaultCategories: []string{"General", "Work"},
		Logger:            log.New(&bytes.Buffer{}, "", 0),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s, backend, clk
}

func mustAdd(t *testing.T, s *Store, date model.DateKey, block model.Block, text string) model.Task {
	t.Helper()
	task, ok, err := s.AddTask(context.Background(), date, block, text, Extras{})
	if err != nil || !ok {
		t.Fatalf("add %q: ok=%v err=%v", text, ok, err)
	}
	return task
}

func texts(list []model.Task) []string {
	out := make([]string, 0, len(list))
	for _, task := range list {
		out = append(out, task.Text)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOpenEmptyBackendUsesDefaults(t *testing.T) {
	s, _, _ := setupStore(t)
	snap := s.Snapshot()
	if snap.LastReset != testDay || snap.CurrentDate != testDay {
		t.Fatalf("unexpected markers: last=%s current=%s", snap.LastReset, snap.CurrentDate)
	}
	if snap.DefaultCategory() != "General" {
		t.Fatalf("unexpected default category: %q", snap.DefaultCategory())
	}
	if snap.Label(model.BlockNight) != "10pm - Sleep" {
		t.Fatalf("unexpected night label: %q", snap.Label(model.BlockNight))
	}
	if snap.LoggedIn {
		t.Fatal("fresh store must start logged out")
	}
}

func TestSnapshotIsPrivateCopy(t *testing.T) {
	s, _, _ := setupStore(t)
	mustAdd(t, s, testDay, model.BlockMorning, "a")
	snap := s.Snapshot()
	snap.Tasks[testDay][model.BlockMorning][0].Text = "mutated"
	snap.Categories[0] = "mutated"
	again := s.Snapshot()
	if again.Tasks[testDay][model.BlockMorning][0].Text != "a" || again.Categories[0] != "General" {
		t.Fatalf("store state leaked through snapshot: %+v", again)
	}
}

func TestSubscribeReceivesEveryChange(t *testing.T) {
	s, _, _ := setupStore(t)
	var got []int
	cancel := s.Subscribe(func(snap Snapshot) {
		got = append(got, len(snap.List(testDay, model.BlockMorning)))
	})
	mustAdd(t, s, testDay, model.BlockMorning, "a")
	mustAdd(t, s, testDay, model.BlockMorning, "b")
	if _, _, err := s.AddTask(context.Background(), testDay, model.BlockMorning, "  ", Extras{}); err != nil {
		t.Fatalf("blank add: %v", err)
	}
	cancel()
	mustAdd(t, s, testDay, model.BlockMorning, "c")
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestPersistedStateSurvivesReopen(t *testing.T) {
	s, backend, clk := setupStore(t)
	ctx := context.Background()
	task := mustAdd(t, s, testDay, model.BlockEvening, "Water plants")
	if _, _, err := s.AddComment(ctx, task.ID, "!repeat"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := s.SetLabel(ctx, model.BlockEvening, "Wind down"); err != nil {
		t.Fatalf("set label: %v", err)
	}
	if _, err := s.AddCategory(ctx, "Home"); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := s.ShiftCurrentDate(ctx, 2); err != nil {
		t.Fatalf("shift date: %v", err)
	}
	if ok, err := s.Login(ctx, Credentials{Username: "me", Password: "pw"}, "me", "pw"); err != nil || !ok {
		t.Fatalf("login ok=%v err=%v", ok, err)
	}

	reopened, err := Open(ctx, backend, Options{Clock: clk, Zone: clock.ZoneOf(time.UTC), DefaultCategories: []string{"General"}})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	snap := reopened.Snapshot()
	list := snap.List(testDay, model.BlockEvening)
	if len(list) != 1 || list[0].ID != task.ID || !list[0].Recurring {
		t.Fatalf("unexpected reloaded tasks: %+v", list)
	}
	if len(snap.Comments[task.ID]) != 1 {
		t.Fatalf("unexpected reloaded comments: %+v", snap.Comments)
	}
	if snap.Label(model.BlockEvening) != "Wind down" {
		t.Fatalf("label not persisted: %q", snap.Label(model.BlockEvening))
	}
	if !equalStrings(snap.Categories, []string{"General", "Work", "Home"}) {
		t.Fatalf("categories not persisted: %v", snap.Categories)
	}
	if snap.CurrentDate != "2026-05-20" || !snap.LoggedIn {
		t.Fatalf("unexpected date/session: %s %v", snap.CurrentDate, snap.LoggedIn)
	}
}

func TestEveryChangeWritesOnlyItsKeys(t *testing.T) {
	s, backend, _ := setupStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		mustAdd(t, s, testDay, model.BlockMorning, "task")
	}
	if got := backend.Writes(storage.KeyTasksByDate); got != 3 {
		t.Fatalf("expected one write per add, got %d", got)
	}
	if got := backend.Writes(storage.KeyCommentsByTask); got != 0 {
		t.Fatalf("adding tasks must not rewrite comments, got %d", got)
	}
	if _, err := s.SetLabel(ctx, model.BlockMorning, ""); err != nil {
		t.Fatalf("blank label: %v", err)
	}
	if got := backend.Writes(storage.KeyBlockLabels); got != 0 {
		t.Fatalf("no-op label edit must not write, got %d", got)
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	s, backend, clk := setupStore(t)
	ctx := context.Background()
	other, err := Open(ctx, backend, Options{Clock: clk, Zone: clock.ZoneOf(time.UTC), DefaultCategories: []string{"General"}})
	if err != nil {
		t.Fatalf("open second store: %v", err)
	}
	mustAdd(t, other, testDay, model.BlockNight, "from cli")
	if len(s.Tasks(testDay, model.BlockNight)) != 0 {
		t.Fatal("first store should not see the write before reload")
	}
	if err := s.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := texts(s.Tasks(testDay, model.BlockNight)); !equalStrings(got, []string{"from cli"}) {
		t.Fatalf("unexpected tasks after reload: %v", got)
	}
}

func TestOpenImportsLegacyTasksByBlock(t *testing.T) {
	backend := storage.NewMemoryBackend()
	ctx := context.Background()
	legacyTasks := `{"morning":[{"text":"Stretch","done":true,"id":1716045123456.123,"recurring":true}],"afternoon":[],"evening":[{"text":"Read","done":false,"id":1716045123999.5}],"night":[]}`
	legacyComments := `{"1716045123999.5":[{"text":"chapter 3","id":1716045124000.25}]}`
	if err := backend.Put(ctx, storage.KeyTasksByBlock, []byte(legacyTasks)); err != nil {
		t.Fatalf("seed tasks: %v", err)
	}
	if err := backend.Put(ctx, storage.KeyCommentsByTask, []byte(legacyComments)); err != nil {
		t.Fatalf("seed comments: %v", err)
	}

	s, err := Open(ctx, backend, Options{
		Clock:             clock.NewFixedClock(time.Date(2026, 5, 18, 9, 0, 0, 0, time.UTC)),
		Zone:              clock.ZoneOf(time.UTC),
		DefaultCategories: []string{"General"},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	snap := s.Snapshot()
	morning := snap.List(testDay, model.BlockMorning)
	if len(morning) != 1 || !morning[0].Done || !morning[0].Recurring || morning[0].CompletedOn != testDay {
		t.Fatalf("unexpected legacy morning: %+v", morning)
	}
	evening := snap.List(testDay, model.BlockEvening)
	if len(evening) != 1 || evening[0].ID != "1716045123999.5" {
		t.Fatalf("unexpected legacy evening: %+v", evening)
	}
	if got := snap.Comments[evening[0].ID]; len(got) != 1 || got[0].Text != "chapter 3" {
		t.Fatalf("legacy comments not linked: %+v", snap.Comments)
	}
	if evening[0].Category != "General" || evening[0].Urgency != model.UrgencyMedium {
		t.Fatalf("legacy defaults missing: %+v", evening[0])
	}
}

func TestOpenRejectsCorruptKey(t *testing.T) {
	backend := storage.NewMemoryBackend()
	ctx := context.Background()
	if err := backend.Put(ctx, storage.KeyCategories, []byte(`{not json`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Open(ctx, backend, Options{Zone: clock.ZoneOf(time.UTC)}); err == nil {
		t.Fatal("expected decode error")
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/dayblocks/internal/clock"
	"github.com/sandeepkv93/dayblocks/internal/config"
	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/quickentry"
	"github.com/sandeepkv93/dayblocks/internal/storage"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

const testDay model.DateKey = "2026-05-18"

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	clk := clock.NewFixedClock(time.Date(2026, 5, 18, 10, 0, 0, 0, time.UTC))
	cfg := config.Default()
	cfg.Backend = storage.KindMemory
	cfg.Timezone = "UTC"
	cfg.Username = "me"
	cfg.Password = "secret"
	cfg.DefaultCategories = []string{"General", "Work"}

	env := &Env{
		LoadConfig: func() (config.Config, error) { return cfg, nil },
		OpenStore: func(ctx context.Context, cfg config.Config) (*store.Store, error) {
			return store.Open(ctx, storage.NewMemoryBackend(), store.Options{
				Clock:             clk,
				Zone:              clock.ZoneOf(time.UTC),
				DefaultCategories: cfg.DefaultCategories,
				Logger:            log.New(io.Discard, "", 0),
			})
		},
	}
	t.Cleanup(func() { _ = env.Close() })
	return env
}

func runWithInput(env *Env, in string, args ...string) (string, error) {
	cmd := New(env)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(in))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func run(env *Env, args ...string) (string, error) {
	return runWithInput(env, "", args...)
}

func loggedInEnv(t *testing.T) *Env {
	t.Helper()
	env := newTestEnv(t)
	if _, err := run(env, "login", "-u", "me", "-p", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return env
}

func onlyTask(t *testing.T, env *Env, date model.DateKey, block model.Block) model.Task {
	t.Helper()
	list := env.store.Tasks(date, block)
	if len(list) != 1 {
		t.Fatalf("expected one task in %s/%s, got %d", date, block, len(list))
	}
	return list[0]
}

func TestRootHelpSkipsStore(t *testing.T) {
	env := newTestEnv(t)
	out, err := run(env)
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	if !strings.Contains(out, "quick") {
		t.Fatalf("expected command list in help:\n%s", out)
	}
	if env.store != nil {
		t.Fatalf("help should not open the store")
	}
}

func TestLoginGate(t *testing.T) {
	env := newTestEnv(t)
	if _, err := run(env, "list"); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if _, err := run(env, "login", "-u", "me", "-p", "nope"); !errors.Is(err, store.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if _, err := runWithInput(env, "secret\n", "login", "-u", "me"); err != nil {
		t.Fatalf("login via stdin: %v", err)
	}
	if _, err := run(env, "list"); err != nil {
		t.Fatalf("list after login: %v", err)
	}
	if _, err := run(env, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := run(env, "add", "x"); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected gate after logout, got %v", err)
	}
}

func TestAddAndList(t *testing.T) {
	env := loggedInEnv(t)
	out, err := run(env, "add", "buy", "milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, `"buy milk"`) {
		t.Fatalf("unexpected add output: %q", out)
	}
	task := onlyTask(t, env, testDay, model.BlockMorning)
	if task.Category != "General" || task.Urgency != model.UrgencyMedium {
		t.Fatalf("unexpected defaults: %+v", task)
	}

	if _, err := run(env, "add", "--date", "2026-05-20", "--block", "evening", "--urgency", "high", "-c", "Work", "--repeat", "call mom"); err != nil {
		t.Fatalf("add with flags: %v", err)
	}
	later := onlyTask(t, env, "2026-05-20", model.BlockEvening)
	if later.Urgency != model.UrgencyHigh || later.Category != "Work" || !later.Recurring {
		t.Fatalf("unexpected task: %+v", later)
	}

	out, err = run(env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Today", "buy milk", "Upcoming", "call mom", shortID(task.ID)} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in list output:\n%s", want, out)
		}
	}

	out, err = run(env, "list", "--date", "2026-05-20")
	if err != nil {
		t.Fatalf("list day: %v", err)
	}
	if !strings.Contains(out, "6pm - 10pm") || !strings.Contains(out, "call mom") || strings.Contains(out, "buy milk") {
		t.Fatalf("unexpected day output:\n%s", out)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	env := loggedInEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad block", args: []string{"add", "--block", "noon", "x"}},
		{name: "bad date", args: []string{"add", "--date", "05/18", "x"}},
		{name: "bad urgency", args: []string{"add", "--urgency", "urgent", "x"}},
		{name: "unknown category", args: []string{"add", "--category", "Nope", "x"}},
		{name: "blank text", args: []string{"add", "  "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := run(env, tc.args...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if got := len(env.store.Snapshot().Dates()); got != 0 {
		t.Fatalf("expected no tasks, got %d dates", got)
	}
}

func TestQuick(t *testing.T) {
	env := loggedInEnv(t)
	if _, err := run(env, "quick", "Finish project, 518"); err != nil {
		t.Fatalf("quick: %v", err)
	}
	task := onlyTask(t, env, testDay, model.BlockMorning)
	if task.Text != "Finish project" || task.DueDate != testDay {
		t.Fatalf("unexpected task: %+v", task)
	}

	_, err := run(env, "quick", "Bad", "date,", "999")
	var perr *quickentry.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if got := len(env.store.Tasks(testDay, model.BlockMorning)); got != 1 {
		t.Fatalf("expected no new task, got %d", got)
	}

	out, err := run(env, "--json", "quick", "Bad date, 999")
	if err != nil {
		t.Fatalf("json mode should swallow the error: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(out), &body); err != nil || body["error"] == "" {
		t.Fatalf("expected JSON error body, got %q (%v)", out, err)
	}
}

func TestQuickWithCategoryAndUrgency(t *testing.T) {
	env := loggedInEnv(t)
	if _, err := run(env, "quick", "-c", "Work", "-u", "high", "Ship release, 520"); err != nil {
		t.Fatalf("quick: %v", err)
	}
	task := onlyTask(t, env, "2026-05-20", model.BlockMorning)
	if task.Category != "Work" || task.Urgency != model.UrgencyHigh {
		t.Fatalf("flags not applied: %+v", task)
	}

	if _, err := run(env, "quick", "-u", "urgent", "Later, 521"); !errors.Is(err, model.ErrInvalidUrgency) {
		t.Fatalf("expected ErrInvalidUrgency, got %v", err)
	}
	if _, err := run(env, "quick", "-c", "Garden", "Later, 521"); err == nil {
		t.Fatalf("expected unknown category error")
	}
	if got := len(env.store.Tasks("2026-05-21", model.BlockMorning)); got != 0 {
		t.Fatalf("rejected flags should add nothing, got %d", got)
	}
}

func TestDoneMoveDelete(t *testing.T) {
	env := loggedInEnv(t)
	ctx := context.Background()
	a, _, _ := env.store.AddTask(ctx, testDay, model.BlockMorning, "a", store.Extras{})
	b, _, _ := env.store.AddTask(ctx, testDay, model.BlockMorning, "b", store.Extras{})
	if _, _, err := env.store.AddComment(ctx, a.ID, "note"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	out, err := run(env, "done", shortID(a.ID))
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	if !strings.HasPrefix(out, "done ") {
		t.Fatalf("unexpected done output: %q", out)
	}
	list := env.store.Tasks(testDay, model.BlockMorning)
	if list[0].ID != b.ID || !list[1].Done {
		t.Fatalf("expected a done and last, got %+v", list)
	}

	if _, err := run(env, "move", b.ID, "down"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if env.store.Tasks(testDay, model.BlockMorning)[1].ID != b.ID {
		t.Fatalf("expected b moved down")
	}
	out, err = run(env, "move", b.ID, "down")
	if err != nil || !strings.Contains(out, "bottom") {
		t.Fatalf("expected edge message, got %q (%v)", out, err)
	}
	if _, err := run(env, "move", b.ID, "sideways"); err == nil {
		t.Fatalf("expected bad direction error")
	}

	if _, err := run(env, "delete", a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, ok := env.store.FindTask(a.ID); ok {
		t.Fatalf("expected a deleted")
	}
	if len(env.store.Comments(a.ID)) != 0 {
		t.Fatalf("expected comments removed with the task")
	}
	if _, err := run(env, "done", "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestCommentCommands(t *testing.T) {
	env := loggedInEnv(t)
	task, _, _ := env.store.AddTask(context.Background(), testDay, model.BlockMorning, "stretch", store.Extras{})

	out, err := run(env, "comment", "add", task.ID, "!repeat")
	if err != nil {
		t.Fatalf("comment add: %v", err)
	}
	if !strings.Contains(out, "repeats daily") {
		t.Fatalf("expected repeat notice, got %q", out)
	}
	if _, got, _ := env.store.FindTask(task.ID); !got.Recurring {
		t.Fatalf("expected recurring task")
	}

	out, err = run(env, "comment", "ls", task.ID)
	if err != nil || !strings.Contains(out, "!repeat") {
		t.Fatalf("expected comment listed, got %q (%v)", out, err)
	}

	comment := env.store.Comments(task.ID)[0]
	if _, err := run(env, "comment", "rm", task.ID, shortID(comment.ID)); err != nil {
		t.Fatalf("comment rm: %v", err)
	}
	if len(env.store.Comments(task.ID)) != 0 {
		t.Fatalf("expected comment removed")
	}
	if _, err := run(env, "comment", "add", task.ID, " "); err == nil {
		t.Fatalf("expected blank comment error")
	}
}

func TestCategoryAndLabel(t *testing.T) {
	env := loggedInEnv(t)
	out, err := run(env, "category", "add", "Errands")
	if err != nil || !strings.Contains(out, "3. Errands") {
		t.Fatalf("category add: %q (%v)", out, err)
	}
	if _, err := run(env, "category", "add", "Errands"); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := run(env, "category", "rm", "Work"); err != nil {
		t.Fatalf("category rm: %v", err)
	}
	if _, err := run(env, "category", "rm", "Work"); err == nil {
		t.Fatalf("expected missing category error")
	}
	if got := strings.Join(env.store.Snapshot().Categories, ","); got != "General,Errands" {
		t.Fatalf("unexpected categories %s", got)
	}
	out, err = run(env, "category", "move", "Errands", "up")
	if err != nil || !strings.Contains(out, "1. Errands") {
		t.Fatalf("category move: %q (%v)", out, err)
	}
	if _, err := run(env, "category", "move", "Errands", "up"); err == nil {
		t.Fatalf("expected error moving the first category up")
	}
	if _, err := run(env, "category", "move", "Errands", "sideways"); err == nil {
		t.Fatalf("expected bad direction error")
	}

	if _, err := run(env, "label", "evening", "Dinner", "time"); err != nil {
		t.Fatalf("label: %v", err)
	}
	if got := env.store.Snapshot().Label(model.BlockEvening); got != "Dinner time" {
		t.Fatalf("unexpected label %q", got)
	}
	if _, err := run(env, "label", "noon", "x"); err == nil {
		t.Fatalf("expected bad block error")
	}
}

func TestRolloverCommand(t *testing.T) {
	env := loggedInEnv(t)
	if _, _, err := env.store.AddTask(context.Background(), testDay.AddDays(-1), model.BlockEvening, "late", store.Extras{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(env, "rollover")
	if err != nil || !strings.Contains(out, "already rolled over") {
		t.Fatalf("expected skip, got %q (%v)", out, err)
	}
	out, err = run(env, "rollover", "--force")
	if err != nil || !strings.Contains(out, "1 overdue") {
		t.Fatalf("expected one tagged task, got %q (%v)", out, err)
	}
	if !env.store.Tasks(testDay.AddDays(-1), model.BlockEvening)[0].Overdue {
		t.Fatalf("expected overdue tag")
	}
}

func TestRepeatCommand(t *testing.T) {
	env := loggedInEnv(t)
	if _, err := run(env, "add", "water", "plants"); err != nil {
		t.Fatalf("add: %v", err)
	}
	task := onlyTask(t, env, testDay, model.BlockMorning)
	out, err := run(env, "repeat", shortID(task.ID))
	if err != nil || !strings.Contains(out, "repeats daily") {
		t.Fatalf("repeat: %q (%v)", out, err)
	}
	if !onlyTask(t, env, testDay, model.BlockMorning).Recurring {
		t.Fatalf("expected recurring")
	}
	out, err = run(env, "repeat", "--off", task.ID)
	if err != nil || !strings.Contains(out, "no longer repeats") {
		t.Fatalf("repeat --off: %q (%v)", out, err)
	}
	if onlyTask(t, env, testDay, model.BlockMorning).Recurring {
		t.Fatalf("expected recurring cleared")
	}
}

func TestCommandsCatchUpOnNextDay(t *testing.T) {
	env := loggedInEnv(t)
	if _, err := run(env, "add", "--block", "morning", "--repeat", "Stretch"); err != nil {
		t.Fatalf("add: %v", err)
	}
	task := onlyTask(t, env, testDay, model.BlockMorning)
	if _, err := run(env, "done", task.ID); err != nil {
		t.Fatalf("done: %v", err)
	}
	if !onlyTask(t, env, testDay, model.BlockMorning).Done {
		t.Fatalf("expected task done")
	}

	env.store.Clock().(*clock.FixedClock).Advance(24 * time.Hour)
	out, err := run(env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "[x]") {
		t.Fatalf("repeating task should be open again:\n%s", out)
	}
	if got := env.store.Snapshot().LastReset; got != testDay.AddDays(1) {
		t.Fatalf("expected marker %s, got %s", testDay.AddDays(1), got)
	}
	if onlyTask(t, env, testDay, model.BlockMorning).Done {
		t.Fatalf("expected task reopened")
	}

	if _, err := run(env, "done", task.ID); err != nil {
		t.Fatalf("done next day: %v", err)
	}
	if !onlyTask(t, env, testDay, model.BlockMorning).Done {
		t.Fatalf("toggle on the next day should mark the task done")
	}
}

func TestListJSON(t *testing.T) {
	env := loggedInEnv(t)
	if _, err := run(env, "add", "x"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(env, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []sectionJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 4 || got[1].Title != "Today" || len(got[1].Entries) != 1 {
		t.Fatalf("unexpected sections: %+v", got)
	}
}

func TestResolveTask(t *testing.T) {
	snap := store.NewSnapshot(testDay, []string{"General"})
	snap.Tasks[testDay] = map[model.Block][]model.Task{
		model.BlockMorning: {{ID: "aaaa1111", Text: "one"}, {ID: "bbbb1111", Text: "two"}},
	}

	if _, task, err := resolveTask(snap, "bbbb1111"); err != nil || task.Text != "two" {
		t.Fatalf("exact id: %+v %v", task, err)
	}
	if loc, task, err := resolveTask(snap, "a1111"); err != nil || task.Text != "one" || loc.Index != 0 {
		t.Fatalf("suffix: %+v %v", task, err)
	}
	if _, _, err := resolveTask(snap, "1111"); err == nil || errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
	if _, _, err := resolveTask(snap, "zzz"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap("one two three", 8); got != "one two\nthree" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

package store

import (
	"context"
	"testing"

	"github.com/sandeepkv93/dayblocks/internal/model"
)

func TestAddCommentAppendsInOrder(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()
	task := mustAdd(t, s, testDay, model.BlockMorning, "a")
	for _, text := range []string{"first", " second "} {
		if _, ok, err := s.AddComment(ctx, task.ID, text); err != nil || !ok {
			t.Fatalf("add comment %q ok=%v err=%v", text, ok, err)
		}
	}
	got := s.Comments(task.ID)
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "second" {
		t.Fatalf("unexpected comments: %+v", got)
	}
	if got[0].ID == got[1].ID {
		t.Fatal("comment ids must be unique")
	}
}

func TestAddCommentNoops(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()
	task := mustAdd(t, s, testDay, model.BlockMorning, "a")
	if _, ok, err := s.AddComment(ctx, task.ID, "  "); ok || err != nil {
		t.Fatalf("blank comment: ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.AddComment(ctx, "missing", "hello"); ok || err != nil {
		t.Fatalf("comment on unknown task: ok=%v err=%v", ok, err)
	}
	if got := s.Comments("missing"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestCommentDirectivesToggleRecurring(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()
	task := mustAdd(t, s, testDay, model.BlockMorning, "Stretch")

	recurring := func() bool {
		_, got, ok := s.FindTask(task.ID)
		if !ok {
			t.Fatal("task vanished")
		}
		return got.Recurring
	}

	steps := []struct {
		text string
		want bool
	}{
		{"!repeat", true},
		{"nice work", true},
		{"!repeat please", true},
		{"!end", false},
		{"!repeat ", true},
		{"!END", true},
	}
	for i, step := range steps {
		if _, _, err := s.AddComment(ctx, task.ID, step.text); err != nil {
			t.Fatalf("comment %q: %v", step.text, err)
		}
		if got := recurring(); got != step.want {
			t.Fatalf("after %q recurring=%v want %v", step.text, got, step.want)
		}
		if n := len(s.Comments(task.ID)); n != i+1 {
			t.Fatalf("directive comments are stored too: got %d comments want %d", n, i+1)
		}
	}
}

func TestDeleteComment(t *testing.T) {
	s, _, _ := setupStore(t)
	ctx := context.Background()
	task := mustAdd(t, s, testDay, model.BlockMorning, "a")
	c1, _, _ := s.AddComment(ctx, task.ID, "one")
	c2, _, _ := s.AddComment(ctx, task.ID, "two")

	if ok, err := s.DeleteComment(ctx, task.ID, "missing"); ok || err != nil {
		t.Fatalf("delete missing: ok=%v err=%v", ok, err)
	}
	if ok, err := s.DeleteComment(ctx, task.ID, c1.ID); !ok || err != nil {
		t.Fatalf("delete c1: ok=%v err=%v", ok, err)
	}
	got := s.Comments(task.ID)
	if len(got) != 1 || got[0].ID != c2.ID {
		t.Fatalf("unexpected comments: %+v", got)
	}
}

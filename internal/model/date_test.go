package model

import (
	"errors"
	"testing"
	"time"
)

func TestDateKeyParseAndOrder(t *testing.T) {
	d, err := ParseDateKey("2026-03-08")
	if err != nil {
		t.Fatalf("parse date key: %v", err)
	}
	if !d.Before("2026-03-09") || !d.After("2026-02-28") {
		t.Fatalf("unexpected ordering for %s", d)
	}
	if _, err := ParseDateKey("2026-3-8"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateKeyAddDaysAcrossDST(t *testing.T) {
	// 2026-03-08 is the US spring-forward day.
	if got := DateKey("2026-03-07").AddDays(1); got != "2026-03-08" {
		t.Fatalf("AddDays got %s", got)
	}
	if got := DateKey("2026-03-01").AddDays(-1); got != "2026-02-28" {
		t.Fatalf("AddDays got %s", got)
	}
}

func TestDateKeyTimeInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	start := DateKey("2026-05-18").Time(loc)
	if start.Hour() != 0 || start.Location() != loc || DateKeyOf(start) != "2026-05-18" {
		t.Fatalf("unexpected start of day: %s", start)
	}
}

func TestBlockForHour(t *testing.T) {
	cases := []struct {
		hour int
		want Block
	}{
		{0, BlockNight},
		{3, BlockNight},
		{4, BlockMorning},
		{10, BlockMorning},
		{13, BlockMorning},
		{14, BlockAfternoon},
		{17, BlockAfternoon},
		{18, BlockEvening},
		{21, BlockEvening},
		{22, BlockNight},
		{23, BlockNight},
	}
	for _, tc := range cases {
		if got := BlockForHour(tc.hour); got != tc.want {
			t.Fatalf("BlockForHour(%d) = %s, want %s", tc.hour, got, tc.want)
		}
	}
}

func TestParseBlock(t *testing.T) {
	if b, err := ParseBlock(" Evening "); err != nil || b != BlockEvening {
		t.Fatalf("ParseBlock = %q, %v", b, err)
	}
	if _, err := ParseBlock("noon"); !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got %v", err)
	}
	if len(DefaultLabels()) != len(Blocks()) {
		t.Fatalf("every block needs a default label")
	}
}

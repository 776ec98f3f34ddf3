// Package clock resolves "now" and "today" in the single reference zone.
package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/dayblocks/internal/model"
)

const DefaultZone = "America/Denver"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock is a settable clock for tests.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type Zone struct {
	loc *time.Location
}

func LoadZone(name string) (Zone, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("clock: load zone %q: %w", name, err)
	}
	return Zone{loc: loc}, nil
}

func ZoneOf(loc *time.Location) Zone {
	if loc == nil {
		loc = time.UTC
	}
	return Zone{loc: loc}
}

func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

func (z Zone) In(t time.Time) time.Time {
	return t.In(z.Location())
}

func (z Zone) Today(now time.Time) model.DateKey {
	return model.DateKeyOf(z.In(now))
}

func (z Zone) StartOfDay(day model.DateKey) time.Time {
	return day.Time(z.Location())
}

func (z Zone) StartOfTomorrow(now time.Time) time.Time {
	return z.StartOfDay(z.Today(now).AddDays(1))
}

// NextBoundary is the first local midnight strictly after now.
func (z Zone) NextBoundary(now time.Time) time.Time {
	return z.StartOfTomorrow(now)
}

// BlockAt maps the reference-zone hour of now to its time block.
func (z Zone) BlockAt(now time.Time) model.Block {
	return model.BlockForHour(z.In(now).Hour())
}

func (z Zone) Year(now time.Time) int {
	return z.In(now).Year()
}

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyText      = errors.New("model: text is required")
	ErrInvalidBlock   = errors.New("model: invalid time block")
	ErrInvalidUrgency = errors.New("model: invalid urgency")
	ErrInvalidDate    = errors.New("model: invalid date key")
)

type Urgency int

const (
	UrgencyUnset  Urgency = 0
	UrgencyLow    Urgency = 1
	UrgencyMedium Urgency = 2
	UrgencyHigh   Urgency = 3
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	default:
		return false
	}
}

// OrDefault resolves an absent urgency to Medium.
func (u Urgency) OrDefault() Urgency {
	if u == UrgencyUnset {
		return UrgencyMedium
	}
	return u
}

// Next cycles Low -> Medium -> High -> Low.
func (u Urgency) Next() Urgency {
	switch u.OrDefault() {
	case UrgencyLow:
		return UrgencyMedium
	case UrgencyMedium:
		return UrgencyHigh
	default:
		return UrgencyLow
	}
}

func (u Urgency) String() string {
	switch u.OrDefault() {
	case UrgencyLow:
		return "Low"
	case UrgencyMedium:
		return "Medium"
	case UrgencyHigh:
		return "High"
	default:
		return fmt.Sprintf("Urgency(%d)", int(u))
	}
}

func ParseUrgency(raw string) (Urgency, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "low", "l":
		return UrgencyLow, nil
	case "", "2", "medium", "med", "m":
		return UrgencyMedium, nil
	case "3", "high", "h":
		return UrgencyHigh, nil
	default:
		return UrgencyUnset, fmt.Errorf("%w: %q", ErrInvalidUrgency, raw)
	}
}

type Task struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Done        bool      `json:"done"`
	Recurring   bool      `json:"recurring,omitempty"`
	Category    string    `json:"category,omitempty"`
	Urgency     Urgency   `json:"urgency,omitempty"`
	DueDate     DateKey   `json:"dueDate"`
	CompletedOn DateKey   `json:"completedOn,omitempty"`
	Overdue     bool      `json:"overdue,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: task", ErrEmptyText)
	}
	if t.Urgency != UrgencyUnset && !t.Urgency.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidUrgency, int(t.Urgency))
	}
	if !t.DueDate.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.DueDate)
	}
	if t.Done && t.CompletedOn == "" {
		return errors.New("model: completedOn is required when task is done")
	}
	if !t.Done && t.CompletedOn != "" {
		return errors.New("model: completedOn must be empty when task is not done")
	}
	return nil
}

// MarkDone sets the done flag and the day it happened on.
func (t *Task) MarkDone(on DateKey) {
	t.Done = true
	t.CompletedOn = on
	t.Overdue = false
}

// Reopen clears the done flag.
func (t *Task) Reopen() {
	t.Done = false
	t.CompletedOn = ""
}

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Comment) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: comment id is required")
	}
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("%w: comment", ErrEmptyText)
	}
	return nil
}

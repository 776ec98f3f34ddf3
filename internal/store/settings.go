package store

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

// SetLabel renames a block. A blank label keeps the previous one.
func (s *Store) SetLabel(ctx context.Context, block model.Block, label string) (bool, error) {
	if !block.IsValid() {
		return false, fmt.Errorf("%w: %q", model.ErrInvalidBlock, block)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return false, nil
	}
	changed := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		if next.Label(block) == label {
			return nil
		}
		next.Labels[block] = label
		changed = true
		return []string{storage.KeyBlockLabels}
	})
	return changed, err
}

// AddCategory appends name unless it is blank or already configured.
func (s *Store) AddCategory(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	changed := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		if next.HasCategory(name) {
			return nil
		}
		next.Categories = append(next.Categories, name)
		changed = true
		return []string{storage.KeyCategories}
	})
	return changed, err
}

// RemoveCategory drops name from the configured list. Tasks that reference
// it keep the label.
func (s *Store) RemoveCategory(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	changed := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		kept := make([]string, 0, len(next.Categories))
		for _, c := range next.Categories {
			if c == name {
				changed = true
				continue
			}
			kept = append(kept, c)
		}
		if !changed {
			return nil
		}
		next.Categories = kept
		return []string{storage.KeyCategories}
	})
	return changed, err
}

// MoveCategory swaps name with its neighbour; moving the first entry up
// makes no change.
func (s *Store) MoveCategory(ctx context.Context, name string, dir Direction) (bool, error) {
	changed := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		idx := -1
		for i, c := range next.Categories {
			if c == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		target := idx - 1
		if dir == DirectionDown {
			target = idx + 1
		}
		if target < 0 || target >= len(next.Categories) {
			return nil
		}
		next.Categories[idx], next.Categories[target] = next.Categories[target], next.Categories[idx]
		changed = true
		return []string{storage.KeyCategories}
	})
	return changed, err
}

func (s *Store) SetCurrentDate(ctx context.Context, date model.DateKey) (bool, error) {
	if !date.IsValid() {
		return false, fmt.Errorf("%w: %q", model.ErrInvalidDate, date)
	}
	changed := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		if next.CurrentDate == date {
			return nil
		}
		next.CurrentDate = date
		changed = true
		return []string{storage.KeyCurrentDate}
	})
	return changed, err
}

func (s *Store) ShiftCurrentDate(ctx context.Context, days int) (model.DateKey, error) {
	var date model.DateKey
	err := s.Update(ctx, func(next *Snapshot) []string {
		date = next.CurrentDate.AddDays(days)
		if days == 0 {
			return nil
		}
		next.CurrentDate = date
		return []string{storage.KeyCurrentDate}
	})
	return date, err
}

var ErrBadCredentials = errors.New("store: invalid username or password")

// Credentials is the single static account the login gate accepts.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Match(user, pass string) bool {
	u := subtle.ConstantTimeCompare([]byte(c.Username), []byte(user))
	p := subtle.ConstantTimeCompare([]byte(c.Password), []byte(pass))
	return u&p == 1
}

// Login sets the persisted session flag when user/pass match creds.
func (s *Store) Login(ctx context.Context, creds Credentials, user, pass string) (bool, error) {
	if !creds.Match(user, pass) {
		return false, nil
	}
	return true, s.setLoggedIn(ctx, true)
}

func (s *Store) Logout(ctx context.Context) error {
	return s.setLoggedIn(ctx, false)
}

func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.LoggedIn
}

func (s *Store) setLoggedIn(ctx context.Context, v bool) error {
	return s.Update(ctx, func(next *Snapshot) []string {
		if next.LoggedIn == v {
			return nil
		}
		next.LoggedIn = v
		return []string{storage.KeyLoggedIn}
	})
}

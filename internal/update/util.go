package update

import (
	"log"
)

func clamp(v, n int) int {
	if n <= 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// report records err on the status bar; nil leaves the status untouched.
func (m *Model) report(action string, err error) bool {
	if err == nil {
		return false
	}
	log.Printf("update: %s: %v", action, err)
	m.LastError = err
	m.Status = StatusBar{Text: action + ": " + err.Error(), IsError: true}
	return true
}

func nextCategory(categories []string, current string) string {
	if len(categories) == 0 {
		return current
	}
	for i, c := range categories {
		if c == current {
			return categories[(i+1)%len(categories)]
		}
	}
	return categories[0]
}

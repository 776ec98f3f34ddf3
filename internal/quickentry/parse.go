// Package quickentry turns a one-line "text, MMDD" entry into a task draft.
package quickentry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/dayblocks/internal/clock"
	"github.com/sandeepkv93/dayblocks/internal/model"
)

type ErrorCode string

const (
	ErrCodeEmptyField  ErrorCode = "empty_field"
	ErrCodeBadLength   ErrorCode = "bad_length"
	ErrCodeNotDigits   ErrorCode = "not_digits"
	ErrCodeInvalidDate ErrorCode = "invalid_date"
)

type ParseError struct {
	Code    ErrorCode
	Message string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Draft is a parsed entry. The block, category and urgency are assigned on
// submit.
type Draft struct {
	Text string
	Date model.DateKey
}

// Parse splits line on its first comma into text and a 3- or 4-digit month/day
// token. The year is the current year in zone.
func Parse(line string, now time.Time, zone clock.Zone) (Draft, error) {
	rawText, rawDate, found := strings.Cut(line, ",")
	text := strings.TrimSpace(rawText)
	token := strings.TrimSpace(rawDate)
	if !found || text == "" || token == "" {
		return Draft{}, &ParseError{Code: ErrCodeEmptyField, Message: "use: task text, MMDD"}
	}
	if len(token) != 3 && len(token) != 4 {
		return Draft{}, &ParseError{Code: ErrCodeBadLength, Message: fmt.Sprintf("date %q must be MDD or MMDD", token)}
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return Draft{}, &ParseError{Code: ErrCodeNotDigits, Message: fmt.Sprintf("date %q must be digits only", token)}
		}
	}

	split := len(token) - 2
	month, _ := strconv.Atoi(token[:split])
	day, _ := strconv.Atoi(token[split:])
	year := zone.Year(now)

	// time.Date normalises out-of-range values, so a round trip exposes them.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Draft{}, &ParseError{Code: ErrCodeInvalidDate, Message: fmt.Sprintf("%q is not a calendar date", token)}
	}
	return Draft{Text: text, Date: model.DateKeyOf(t)}, nil
}

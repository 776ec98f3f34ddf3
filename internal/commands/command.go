// Package commands recognises the directives users type as task comments.
package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeRepeat Type = "!repeat"
	TypeEnd    Type = "!end"
)

type ErrorCode string

const (
	ErrCodeEmptyInput     ErrorCode = "empty_input"
	ErrCodeNotDirective   ErrorCode = "not_directive"
	ErrCodeUnknownCommand ErrorCode = "unknown_command"
	ErrCodeHandlerMissing ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Command struct {
	Type Type
	Raw  string
}

// Parse recognises a directive only when the whole comment, after trimming,
// is exactly one of the known tokens. "!repeat daily" is an ordinary comment.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "comment is empty"}
	}
	if !strings.HasPrefix(raw, "!") {
		return Command{}, &CommandError{Code: ErrCodeNotDirective, Message: "comment is not a directive"}
	}
	switch Type(raw) {
	case TypeRepeat, TypeEnd:
		return Command{Type: Type(raw), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported directive: %s", raw)}
	}
}

// IsDirective reports whether text would trigger a directive.
func IsDirective(text string) bool {
	_, err := Parse(text)
	return err == nil
}

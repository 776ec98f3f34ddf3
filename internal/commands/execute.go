package commands

import "fmt"

type Result struct {
	Recurring bool
}

type Handlers struct {
	Repeat func() (Result, error)
	End    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeRepeat:
		if handlers.Repeat == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "repeat handler not configured"}
		}
		return handlers.Repeat()
	case TypeEnd:
		if handlers.End == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "end handler not configured"}
		}
		return handlers.End()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown directive: %s", cmd.Type)}
	}
}

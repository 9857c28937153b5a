package timeline

import "errors"

var (
	// Recording errors
	ErrUnknownEventType  = errors.New("unknown timeline event type")
	ErrAlreadyPunchedIn  = errors.New("you have already punched in")
	ErrNotPunchedIn      = errors.New("you have not punched in yet")
	ErrAlreadyOnBreak    = errors.New("you are already on a break")
	ErrNotOnBreak        = errors.New("you are not on a break")

	// General errors
	ErrEventNotFound = errors.New("timeline event not found")
)

package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no handler was found for an action.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrDuplicateCommand indicates a command name is already registered.
	ErrDuplicateCommand = errors.New("dispatcher: duplicate command")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidCommand indicates the command definition is invalid.
	ErrInvalidCommand = errors.New("dispatcher: invalid command")

	// ErrNoHost indicates dispatch was attempted without a host.
	ErrNoHost = errors.New("dispatcher: no host")
)

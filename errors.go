package chomsky

import (
	"fmt"
)

// Sentinel errors. Every *Error matches exactly one of these with errors.Is.
var (
	// ErrInvalidGrammarShape is returned when a grammar violates a structural
	// precondition of an operation.
	ErrInvalidGrammarShape = &Error{Kind: InvalidGrammarShape}
	// ErrNoApplicableProduction is returned when word generation reaches a
	// nonterminal with no production.
	ErrNoApplicableProduction = &Error{Kind: NoApplicableProduction}
	// ErrInvalidSymbol is returned for a symbol outside the declared sets.
	ErrInvalidSymbol = &Error{Kind: InvalidSymbol}
	// ErrInvalidState is returned for a state outside the declared state set.
	ErrInvalidState = &Error{Kind: InvalidState}
	// ErrTooManyStates is returned when subset construction would exceed MaxSubsetStates.
	ErrTooManyStates = &Error{Kind: TooManyStates}
)

// ErrorKind classifies an Error.
type ErrorKind int

// Error kinds.
const (
	InvalidGrammarShape ErrorKind = iota + 1
	NoApplicableProduction
	InvalidSymbol
	InvalidState
	TooManyStates
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidGrammarShape:
		return "invalid grammar shape"
	case NoApplicableProduction:
		return "no applicable production"
	case InvalidSymbol:
		return "invalid symbol"
	case InvalidState:
		return "invalid state"
	case TooManyStates:
		return "too many states"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by all operations in this package.
type Error struct {
	Kind ErrorKind
	// Unadorned message.
	Message string
}

func errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

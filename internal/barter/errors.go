package barter

import (
	"errors"
	"fmt"
)

// FormatErrorKind identifies which input rule was broken.
type FormatErrorKind int

const (
	MissingSeparator FormatErrorKind = iota + 1
	EmptySide
	InvalidRange
)

func (k FormatErrorKind) String() string {
	switch k {
	case MissingSeparator:
		return "missing separator"
	case EmptySide:
		return "empty side"
	case InvalidRange:
		return "invalid range"
	default:
		return "unknown"
	}
}

// FormatError reports malformed user input.
type FormatError struct {
	Kind  FormatErrorKind
	Input string
}

func (e *FormatError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("format error: %s", e.Kind)
	}
	return fmt.Sprintf("format error: %s in %q", e.Kind, e.Input)
}

// Is matches any FormatError of the same kind, so the sentinels below work with errors.Is.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

// LookupError reports an item that is not in the value table.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown item %q", e.Name)
}

func (e *LookupError) Is(target error) bool {
	_, ok := target.(*LookupError)
	return ok
}

var (
	ErrMissingSeparator = &FormatError{Kind: MissingSeparator}
	ErrEmptySide        = &FormatError{Kind: EmptySide}
	ErrInvalidRange     = &FormatError{Kind: InvalidRange}
	ErrUnknownItem      = &LookupError{}

	// ErrNoTable means the value table could not be provided; nothing can be priced.
	ErrNoTable = errors.New("no value table available")
)

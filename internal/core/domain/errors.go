package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when an integer was required but not supplied.
	ErrParse = errors.New("not a valid integer")
	// ErrIndexOutOfRange is returned for a departure index outside [0, size).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrTransientIO marks a console read or write failure that may succeed on retry.
	ErrTransientIO = errors.New("transient i/o failure")
	// ErrInputClosed is returned once the console has no more input.
	ErrInputClosed = errors.New("input closed")
)

// ParseError describes a field that could not be parsed as an integer.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, ErrParse)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// IndexError describes a lookup outside the board.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("departure %d: %s (board has %d)", e.Index, ErrIndexOutOfRange, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

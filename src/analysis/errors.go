package analysis

import (
	"errors"
	"fmt"
)

var (
	ErrMissingHeader = errors.New("missing header row")
	ErrShortRow      = errors.New("row has fewer than 8 columns")
	ErrMissingSuffix = errors.New("missing unit suffix")
	ErrNotFinite     = errors.New("value is not a finite number")
	ErrNoTimeOfDay   = errors.New("no HH:MM:SS time of day")
	ErrBadTimestamp  = errors.New("unrecognized timestamp")
)

// ParseError reports malformed log content. File/Line/Column are filled in by the loader
// when known; ParseQuantity alone only sets Text.
type ParseError struct {
	File   string
	Line   int
	Column string
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse"
	if e.File != "" {
		msg += " " + e.File
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(":%d", e.Line)
	}
	if e.Column != "" {
		msg += " column " + e.Column
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" %q", e.Text)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a file that could not be opened, read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

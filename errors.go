package locgen

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by the generator wraps one of these,
// so callers can classify failures with errors.Is.
var (
	ErrUnknownTerritory  = errors.New("unknown territory")
	ErrMalformedBlockID  = errors.New("malformed block identifier")
	ErrDuplicateBlockID  = errors.New("duplicate block ID")
	ErrIO                = errors.New("i/o failure")
	ErrMissingColumn     = errors.New("missing column")
	ErrBlockIDOutOfRange = errors.New("global block ID out of range")
	ErrInvalidTerritory  = errors.New("invalid territory configuration")
	ErrUnknownFormat     = errors.New("unknown table format")
)

// Position identifies a row in an input source.
type Position struct {
	Source string // File the row came from
	Line   int    // 1-based line number, header is line 1
}

func (p Position) String() string {
	if p.Source == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Source, p.Line)
}

// RecordError reports a problem with a single input row.
type RecordError struct {
	Pos   Position
	Route string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Route == "" {
		return fmt.Sprintf("%s: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: route %q: %v", e.Pos, e.Route, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// DuplicateBlockIDError reports a global block ID produced by two rows.
type DuplicateBlockIDError struct {
	ID     int32
	First  Position
	Second Position
}

func (e *DuplicateBlockIDError) Error() string {
	return fmt.Sprintf("full block ID %d appears more than once (%s and %s)", e.ID, e.First, e.Second)
}

func (e *DuplicateBlockIDError) Is(target error) bool { return target == ErrDuplicateBlockID }

// IOError reports a failure reading an input or writing an output artifact.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

func ioError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

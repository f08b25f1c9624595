package entities

import "fmt"

// MalformedRecordError reports a field that could not be parsed with its
// declared type. Row is 1-based over the raw file.
type MalformedRecordError struct {
	File   string
	Row    int
	Column string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s row %d: malformed %s: %v", e.File, e.Row, e.Column, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// SchemaMismatchError reports a row whose column count differs from the
// fixed file schema.
type SchemaMismatchError struct {
	File string
	Row  int
	Want int
	Got  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s row %d: expected %d columns, got %d", e.File, e.Row, e.Want, e.Got)
}

// LookupUnavailableError reports that an external lookup table could not be
// read. It is non-fatal: the run continues and the dependent derivation is
// skipped.
type LookupUnavailableError struct {
	Source string
	Err    error
}

func (e *LookupUnavailableError) Error() string {
	return fmt.Sprintf("lookup %s unavailable: %v", e.Source, e.Err)
}

func (e *LookupUnavailableError) Unwrap() error { return e.Err }

// OutputWriteError reports a failure writing one output artifact. Artifacts
// already written by the run are retained.
type OutputWriteError struct {
	Artifact string
	Err      error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Artifact, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

package types

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrMalformedInput  = errors.New("malformed input")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// FileError carries the error kind along with the failing path and, when
// known, the 1-based line number of the offending record.
type FileError struct {
	Kind error
	Path string
	Line int
	Msg  string
}

func NewFileError(kind error, path string, line int, format string, args ...interface{}) *FileError {
	return &FileError{
		Kind: kind,
		Path: path,
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *FileError) Error() string {
	switch {
	case e.Line > 0 && len(e.Msg) != 0:
		return fmt.Sprintf("%s: %s, line %d: %s", e.Kind, e.Path, e.Line, e.Msg)
	case len(e.Msg) != 0:
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
}

func (e *FileError) Unwrap() error { return e.Kind }

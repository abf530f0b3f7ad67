package nativefs

import (
	"errors"
	"fmt"
	"strings"
)

// Enumeration of causes that may be attached to an Error by the layer itself or reported by file system providers.
const (
	ErrIsDir    = fsError("is a directory")
	ErrNoSpace  = fsError("no space left on device")
	ErrNotDir   = fsError("not a directory")
	ErrReadOnly = fsError("read-only file system")
)

// fsError defines the type for errors that may be returned by file system operations.
type fsError string

// Error returns the cause of the file system error.
func (e fsError) Error() string {
	return string(e)
}

// Code identifies a class of file system failure independently of the host operating system.
//
// The numeric values are stable and shared with script clients of the bridge.
type Code uint8

// Enumeration of error codes. NoError is the only value that does not represent a failure.
const (
	NoError Code = iota
	ErrUnknown
	ErrInvalidParams
	ErrNotFound
	ErrCantRead
	ErrUnsupportedEncoding
	ErrCantWrite
	ErrOutOfSpace
	ErrNotFile
	ErrNotDirectory
)

var codeNames = [...]string{
	NoError:                "NO_ERROR",
	ErrUnknown:             "ERR_UNKNOWN",
	ErrInvalidParams:       "ERR_INVALID_PARAMS",
	ErrNotFound:            "ERR_NOT_FOUND",
	ErrCantRead:            "ERR_CANT_READ",
	ErrUnsupportedEncoding: "ERR_UNSUPPORTED_ENCODING",
	ErrCantWrite:           "ERR_CANT_WRITE",
	ErrOutOfSpace:          "ERR_OUT_OF_SPACE",
	ErrNotFile:             "ERR_NOT_FILE",
	ErrNotDirectory:        "ERR_NOT_DIRECTORY",
}

var codeMessages = [...]string{
	NoError:                "no error",
	ErrUnknown:             "unknown error",
	ErrInvalidParams:       "invalid parameters",
	ErrNotFound:            "not found",
	ErrCantRead:            "cannot read",
	ErrUnsupportedEncoding: "unsupported encoding",
	ErrCantWrite:           "cannot write",
	ErrOutOfSpace:          "out of space",
	ErrNotFile:             "not a file",
	ErrNotDirectory:        "not a directory",
}

// Codes returns every defined Code in numeric order.
func Codes() []Code {
	c := make([]Code, len(codeNames))
	for i := range codeNames {
		c[i] = Code(i)
	}
	return c
}

// ParseCode returns the Code for the provided identifier (e.g. "ERR_NOT_FOUND").
func ParseCode(s string) (Code, error) {
	for i, n := range codeNames {
		if strings.EqualFold(n, s) {
			return Code(i), nil
		}
	}
	return ErrUnknown, fmt.Errorf("nativefs: unknown error code: %q", s)
}

// Valid reports whether c is one of the enumerated codes.
func (c Code) Valid() bool {
	return int(c) < len(codeNames)
}

// Error returns a short description of the failure class.
func (c Code) Error() string {
	if !c.Valid() {
		return codeMessages[ErrUnknown]
	}
	return codeMessages[c]
}

// String returns the stable identifier for the Code.
func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
	return codeNames[c]
}

// MarshalText encodes the Code as its identifier.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("nativefs: invalid error code: %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a Code from its identifier.
func (c *Code) UnmarshalText(text []byte) error {
	v, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Error is the error returned by every file system operation. It carries exactly one Code.
type Error struct {
	Code Code
	Op   Op
	Path string
	Err  error
}

func newError(code Code, op Op, path string, cause error) *Error {
	return &Error{Code: code, Op: op, Path: path, Err: cause}
}

// Error returns the cause of the failure prefixed with the operation and path.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("nativefs: ")
	switch {
	case e.Op != "" && e.Path != "":
		b.WriteString(string(e.Op) + " " + e.Path + ": ")
	case e.Op != "":
		b.WriteString(string(e.Op) + ": ")
	case e.Path != "":
		b.WriteString(e.Path + ": ")
	}
	b.WriteString(e.Code.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the native cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Code of e.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

// CodeOf returns the Code carried by err. A nil error yields NoError and errors that did not originate from this
// package yield ErrUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return NoError
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var c Code
	if errors.As(err, &c) {
		return c
	}
	return ErrUnknown
}

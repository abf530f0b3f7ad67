package nativefs

import (
	"fmt"
	"reflect"
	"strings"
)

// Op names a public file system operation.
type Op string

// Enumeration of public operations.
const (
	OpReadDir   Op = "readdir"
	OpStat      Op = "stat"
	OpReadFile  Op = "readFile"
	OpWriteFile Op = "writeFile"
	OpUnlink    Op = "unlink"
)

// Ops returns every public operation.
func Ops() []Op {
	return []Op{OpReadDir, OpStat, OpReadFile, OpWriteFile, OpUnlink}
}

// params lists the argument names accepted by each operation, in call order.
var params = map[Op][]string{
	OpReadDir:   {"path"},
	OpStat:      {"path"},
	OpReadFile:  {"path", "encoding"},
	OpWriteFile: {"path", "content", "encoding"},
	OpUnlink:    {"path"},
}

// Request is the validated form of a single operation call. It lives for the duration of that call only.
type Request struct {
	Op       Op
	Path     string
	Encoding string
	Content  string
}

// Validate checks the shape of the arguments passed to op and returns the resulting Request.
//
// Arguments are untyped because they usually originate from a script bridge. Every argument must be a string, paths
// must be non-empty and free of NUL bytes. Encodings are only type checked; whether an encoding is supported is
// decided by LookupEncoding. Failures are reported as an *Error carrying ErrInvalidParams.
func Validate(op Op, args ...any) (*Request, error) {
	names, ok := params[op]
	if !ok {
		return nil, newError(ErrInvalidParams, op, "", fmt.Errorf("operation is not supported: %q", op))
	}

	if len(args) != len(names) {
		return nil, newError(ErrInvalidParams, op, "",
			fmt.Errorf("expected %d argument(s), got %d", len(names), len(args)))
	}

	req := &Request{Op: op}
	for i, name := range names {
		s, ok := args[i].(string)
		if !ok {
			return nil, newError(ErrInvalidParams, op, "", fmt.Errorf("%s must be a string, got %s", name, typeName(args[i])))
		}

		switch name {
		case "path":
			if err := checkPath(s); err != nil {
				return nil, newError(ErrInvalidParams, op, s, err)
			}
			req.Path = s
		case "encoding":
			req.Encoding = s
		case "content":
			req.Content = s
		}
	}
	return req, nil
}

func checkPath(p string) error {
	if p == "" {
		return fmt.Errorf("path is empty")
	}

	if strings.IndexByte(p, 0) >= 0 {
		return fmt.Errorf("path contains a NUL byte")
	}
	return nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

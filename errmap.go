package nativefs

import (
	"errors"

	gofs "io/fs"
)

// class is the host-independent failure class of a native error.
type class uint8

const (
	classUnknown class = iota
	classNotExist
	classPermission
	classIsDir
	classNotDir
	classNoSpace
	classReadOnly
)

func (c class) String() string {
	switch c {
	case classNotExist:
		return "not_exist"
	case classPermission:
		return "permission"
	case classIsDir:
		return "is_dir"
	case classNotDir:
		return "not_dir"
	case classNoSpace:
		return "no_space"
	case classReadOnly:
		return "read_only"
	default:
		return "unknown"
	}
}

// codes maps each failure class to the Code reported by an operation. Classes missing for an operation fall back
// to ErrUnknown.
var codes = map[Op]map[class]Code{
	OpReadDir: {
		classNotExist:   ErrNotFound,
		classPermission: ErrCantRead,
		classIsDir:      ErrCantRead,
		classNotDir:     ErrNotDirectory,
		classNoSpace:    ErrOutOfSpace,
		classReadOnly:   ErrCantRead,
	},
	OpStat: {
		classNotExist:   ErrNotFound,
		classPermission: ErrCantRead,
		classNotDir:     ErrNotFound,
		classNoSpace:    ErrOutOfSpace,
		classReadOnly:   ErrCantRead,
	},
	OpReadFile: {
		classNotExist:   ErrNotFound,
		classPermission: ErrCantRead,
		classIsDir:      ErrCantRead,
		classNotDir:     ErrNotFound,
		classNoSpace:    ErrOutOfSpace,
		classReadOnly:   ErrCantRead,
	},
	OpWriteFile: {
		classNotExist:   ErrCantWrite,
		classPermission: ErrCantWrite,
		classIsDir:      ErrCantWrite,
		classNotDir:     ErrCantWrite,
		classNoSpace:    ErrOutOfSpace,
		classReadOnly:   ErrCantWrite,
	},
	OpUnlink: {
		classNotExist:   ErrNotFound,
		classPermission: ErrCantWrite,
		classIsDir:      ErrNotFile,
		classNotDir:     ErrNotFound,
		classNoSpace:    ErrOutOfSpace,
		classReadOnly:   ErrCantWrite,
	},
}

// MapError converts a native failure raised while performing op on path into an *Error carrying exactly one Code.
//
// A nil err yields nil, and an err that already carries a Code is returned unchanged.
func MapError(op Op, path string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(codeFor(op, classify(err)), op, path, err)
}

func codeFor(op Op, c class) Code {
	if code, ok := codes[op][c]; ok {
		return code
	}
	return ErrUnknown
}

// classify determines the failure class of a native error. Platform errnos are consulted first since they are
// more precise than the io/fs sentinels (e.g. EROFS also matches fs.ErrPermission on some hosts).
func classify(err error) class {
	if c := classifyErrno(err); c != classUnknown {
		return c
	}

	switch {
	case errors.Is(err, ErrIsDir):
		return classIsDir
	case errors.Is(err, ErrNotDir):
		return classNotDir
	case errors.Is(err, ErrNoSpace):
		return classNoSpace
	case errors.Is(err, ErrReadOnly):
		return classReadOnly
	case errors.Is(err, gofs.ErrNotExist):
		return classNotExist
	case errors.Is(err, gofs.ErrPermission):
		return classPermission
	}
	return classUnknown
}

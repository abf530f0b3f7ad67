//go:build unix

package nativefs

import (
	"errors"

	"golang.org/x/sys/unix"
)

func classifyErrno(err error) class {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return classUnknown
	}

	switch errno {
	case unix.ENOENT:
		return classNotExist
	case unix.EACCES, unix.EPERM:
		return classPermission
	case unix.EISDIR:
		return classIsDir
	case unix.ENOTDIR:
		return classNotDir
	case unix.ENOSPC, unix.EDQUOT:
		return classNoSpace
	case unix.EROFS:
		return classReadOnly
	}
	return classUnknown
}

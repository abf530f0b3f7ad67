//go:build windows

package nativefs

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

func classifyErrno(err error) class {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return classUnknown
	}

	switch errno {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND, windows.ERROR_INVALID_DRIVE:
		return classNotExist
	case windows.ERROR_ACCESS_DENIED, windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION:
		return classPermission
	case windows.ERROR_DIRECTORY:
		return classNotDir
	case windows.ERROR_DISK_FULL, windows.ERROR_HANDLE_DISK_FULL:
		return classNoSpace
	case windows.ERROR_WRITE_PROTECT:
		return classReadOnly
	}
	return classUnknown
}

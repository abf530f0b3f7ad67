//go:build unix

package nativefs

import (
	"github.com/google/renameio"
	"golang.org/x/sys/unix"

	gofs "io/fs"
)

// createFile creates name atomically: the content is written to a temporary file which is renamed into place once
// it has been synced, so readers never observe a partially written file.
func createFile(name string, data []byte, perm gofs.FileMode) error {
	return renameio.WriteFile(name, data, perm)
}

// umask returns the file mode creation mask of the process. The mask can only be read by setting it, so it is
// restored immediately.
func umask() gofs.FileMode {
	m := unix.Umask(0)
	unix.Umask(m)
	return gofs.FileMode(m) & gofs.ModePerm
}

// remove unlinks name. Unlike os.Remove it never falls back to rmdir.
func remove(name string) error {
	if err := unix.Unlink(name); err != nil {
		return &gofs.PathError{Op: "unlink", Path: name, Err: err}
	}
	return nil
}

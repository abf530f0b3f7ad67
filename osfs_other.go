//go:build !unix

package nativefs

import (
	"os"

	gofs "io/fs"
)

func createFile(name string, data []byte, perm gofs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// umask is zero: these hosts have no file mode creation mask.
func umask() gofs.FileMode {
	return 0
}

func remove(name string) error {
	return os.Remove(name)
}

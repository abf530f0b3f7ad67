package nativefs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gofs "io/fs"
	gopath "path"
)

// CleanPath returns the shortest path lexically equivalent to p using the path separator of the provided file
// system. Volume names are removed and relative paths are resolved against the root of fsys.
func CleanPath(fsys FS, p string) (string, error) {
	if fsys == nil {
		return p, errors.New("nativefs: file system is required")
	}

	if err := checkPath(p); err != nil {
		return p, fmt.Errorf("%s: %w", p, gofs.ErrInvalid)
	}

	if vol := filepath.VolumeName(p); len(vol) > 0 {
		p = p[len(vol):]
	}

	sep := fsys.PathSeparator()
	if sep != "/" {
		p = strings.ReplaceAll(p, sep, "/")
	}

	p = gopath.Clean("/" + p)
	if sep != "/" {
		p = strings.ReplaceAll(p, "/", sep)
	}
	return p, nil
}

// SplitPath splits a path using the path separator from the provided file system.
//
// The returned slice will have empty substrings removed.
func SplitPath(fsys FS, p string) ([]string, error) {
	path, err := CleanPath(fsys, p)
	if err != nil {
		return nil, err
	}

	var e []string
	for _, s := range strings.Split(path, fsys.PathSeparator()) {
		if s != "" {
			e = append(e, s)
		}
	}
	return e, nil
}

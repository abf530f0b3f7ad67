package nativefs

import (
	"fmt"
	"os"
	"runtime"

	"github.com/transientvariable/log-go"

	gofs "io/fs"
)

var (
	_ FS = (*OSFS)(nil)
)

// OSFS os/platform file system provider that implements FS.
type OSFS struct {
	umask gofs.FileMode
}

// NewOSFS creates a new OSFS. The process umask is read once, here.
func NewOSFS() (*OSFS, error) {
	return &OSFS{umask: umask()}, nil
}

func (o *OSFS) Close() error {
	return nil
}

func (o *OSFS) ReadDirNames(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			log.Error("[osfs] readDirNames", log.String("name", name), log.Err(err))
		}
	}(f)

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	entries := names[:0]
	for _, n := range names {
		if n != "." && n != ".." {
			entries = append(entries, n)
		}
	}
	return entries, nil
}

func (o *OSFS) Stat(name string) (gofs.FileInfo, error) {
	return os.Stat(name)
}

func (o *OSFS) Lstat(name string) (gofs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile replaces the content of the named file. Existing directories are refused before anything is written.
//
// Existing files, including those reached through a symbolic link, are truncated and rewritten in place so that
// links, ownership and permission bits are kept as the host keeps them. New files are created atomically with perm
// less the process umask.
func (o *OSFS) WriteFile(name string, data []byte, perm gofs.FileMode) error {
	log.Trace("[osfs] writeFile",
		log.String("name", name),
		log.Int("content_length", len(data)),
		log.String("mode", perm.String()),
	)

	fi, err := os.Stat(name)
	switch {
	case err == nil && fi.IsDir():
		return &gofs.PathError{Op: "write", Path: name, Err: ErrIsDir}
	case err == nil:
		return os.WriteFile(name, data, perm)
	case !os.IsNotExist(err):
		return err
	}

	// A dangling symbolic link: creating the file through it creates its target.
	if li, err := os.Lstat(name); err == nil && li.Mode()&gofs.ModeSymlink != 0 {
		return os.WriteFile(name, data, perm)
	}

	if err := createFile(name, data, perm&^o.umask); err != nil {
		if _, ok := err.(*gofs.PathError); ok {
			return err
		}
		return fmt.Errorf("osfs: %w", &gofs.PathError{Op: "write", Path: name, Err: err})
	}
	return nil
}

func (o *OSFS) Remove(name string) error {
	return remove(name)
}

func (o *OSFS) PathSeparator() string {
	return string(os.PathSeparator)
}

func (o *OSFS) Provider() string {
	return runtime.GOOS
}

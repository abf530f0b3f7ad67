package nativefs

import (
	"errors"
	"sync"

	"github.com/transientvariable/log-go"

	gofs "io/fs"
)

var (
	defaultFS FS
	mutex     sync.Mutex
	once      sync.Once
)

// Initialize the default file system provider.
func init() {
	once.Do(func() {
		fsys, err := NewOSFS()
		if err != nil {
			panic(err)
		}

		if err := SetDefault(fsys); err != nil {
			panic(err)
		}
	})
}

// FS defines the native primitives wrapped by the layer. Implementations report failures as native errors (e.g.
// *fs.PathError wrapping an errno or one of the io/fs sentinels); translating them is left to MapError.
//
// Every call is self-contained: implementations must not keep handles open across calls.
type FS interface {
	// ReadDirNames returns the names of the entries in the named directory, excluding "." and "..".
	ReadDirNames(name string) ([]string, error)

	// Stat returns file information for the named path, following symbolic links.
	Stat(name string) (gofs.FileInfo, error)

	// Lstat returns file information for the named path without following a final symbolic link.
	Lstat(name string) (gofs.FileInfo, error)

	// ReadFile returns the entire content of the named file.
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces the entire content of the named file, creating it with perm if it does not exist.
	WriteFile(name string, data []byte, perm gofs.FileMode) error

	// Remove removes the named file. It must never remove a directory.
	Remove(name string) error

	// PathSeparator ...
	PathSeparator() string

	// Provider ...
	Provider() string

	// Close ...
	Close() error
}

// SetDefault sets the default file system provider.
func SetDefault(fs FS) error {
	if fs == nil {
		return errors.New("nativefs: file system is required")
	}

	mutex.Lock()
	defer mutex.Unlock()

	if defaultFS != nil {
		log.Info("[nativefs] setting default file system", log.String("provider", fs.Provider()))
	}
	defaultFS = fs
	return nil
}

// Default returns the current default file system provider.
func Default() FS {
	mutex.Lock()
	defer mutex.Unlock()
	return defaultFS
}

func defaultFileSystem() *FileSystem {
	return &FileSystem{fsys: Default()}
}

// ReadDir lists the named directory using the default provider.
func ReadDir(path string) ([]string, error) {
	return defaultFileSystem().ReadDir(path)
}

// Stat returns the FileStat for path using the default provider.
func Stat(path string) (*FileStat, error) {
	return defaultFileSystem().Stat(path)
}

// ReadFile reads the named file using the default provider.
func ReadFile(path string, encoding string) (string, error) {
	return defaultFileSystem().ReadFile(path, encoding)
}

// WriteFile writes the named file using the default provider.
func WriteFile(path string, content string, encoding string) error {
	return defaultFileSystem().WriteFile(path, content, encoding)
}

// Unlink removes the named file using the default provider.
func Unlink(path string) error {
	return defaultFileSystem().Unlink(path)
}

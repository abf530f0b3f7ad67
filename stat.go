package nativefs

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/transientvariable/anchor"

	json "github.com/json-iterator/go"
	gofs "io/fs"
)

var (
	_ gofs.DirEntry = (*FileStat)(nil)
	_ gofs.FileInfo = (*FileStat)(nil)
)

// Kind classifies a file system entry.
type Kind uint8

// Enumeration of entry kinds.
const (
	KindOther Kind = iota
	KindFile
	KindDirectory
)

// String returns the name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// FileStat is a snapshot of the metadata for a single path. It is never cached; every Stat produces a new one.
type FileStat struct {
	attrs *Attribute
	path  string
}

// NewFileStat creates a new FileStat for path.
func NewFileStat(path string, options ...func(*FileStat)) (*FileStat, error) {
	if path == "" {
		return nil, errors.New("file_stat: path is required")
	}

	s := &FileStat{path: path}
	for _, opt := range options {
		opt(s)
	}

	if s.attrs == nil {
		s.attrs = NewAttributes()
	}
	return s, nil
}

// fileStatOf converts file information reported by a provider. Providers that already produce a FileStat have
// their value rebound to the requested path.
func fileStatOf(path string, fi gofs.FileInfo) (*FileStat, error) {
	if s, ok := fi.(*FileStat); ok {
		return NewFileStat(path, WithAttributes(s.Attributes().Copy()))
	}
	return NewFileStat(path, WithAttributes(attributesOf(fi)))
}

// Attributes returns the attributes for the FileStat.
func (s *FileStat) Attributes() *Attribute {
	return s.attrs
}

// Dir returns the path for the FileStat with the last element truncated.
func (s *FileStat) Dir() string {
	return filepath.Dir(s.path)
}

// Info ...
func (s *FileStat) Info() (gofs.FileInfo, error) {
	return s, nil
}

// Kind returns the classification of the entry.
func (s *FileStat) Kind() Kind {
	switch m := s.attrs.mode; {
	case m.IsDir():
		return KindDirectory
	case m.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// IsDir returns whether the FileStat represents a directory.
func (s *FileStat) IsDir() bool {
	return s.IsDirectory()
}

// IsDirectory returns whether the FileStat represents a directory.
func (s *FileStat) IsDirectory() bool {
	return s.Kind() == KindDirectory
}

// IsFile returns whether the FileStat represents a regular file.
func (s *FileStat) IsFile() bool {
	return s.Kind() == KindFile
}

// Mode returns mode bits for the FileStat.
func (s *FileStat) Mode() gofs.FileMode {
	return s.attrs.mode
}

// ModTime returns the modification time for the FileStat.
func (s *FileStat) ModTime() time.Time {
	return s.attrs.Mtime()
}

// Name returns the base name of the path.
func (s *FileStat) Name() string {
	return filepath.Base(s.path)
}

// Path returns the path the FileStat was queried for.
func (s *FileStat) Path() string {
	return s.path
}

// Size returns the length in bytes if the FileStat represents a regular file.
func (s *FileStat) Size() int64 {
	return s.attrs.size
}

// Sys returns the underlying data source for the FileStat (can return nil).
func (s *FileStat) Sys() any {
	return nil
}

// Type returns the type bits for the FileStat.
//
// The type bits are a subset of the usual FileMode bits, those returned by the FileMode.Type method.
func (s *FileStat) Type() gofs.FileMode {
	return s.Mode().Type()
}

// ToMap returns a map representation of the FileStat properties.
func (s *FileStat) ToMap() (map[string]any, error) {
	var m map[string]any
	if err := json.NewDecoder(strings.NewReader(s.String())).Decode(&m); err != nil {
		return m, err
	}
	return m, nil
}

// String returns a string representation of the FileStat.
func (s *FileStat) String() string {
	m := make(map[string]any)
	m["dir"] = s.Dir()
	m["is_directory"] = s.IsDirectory()
	m["is_file"] = s.IsFile()
	m["kind"] = s.Kind().String()
	m["name"] = s.Name()
	m["mode"] = s.Mode().String()
	m["mod_time"] = s.ModTime()
	m["path"] = s.Path()
	m["size"] = s.Size()

	if s.attrs != nil {
		attrs, err := s.attrs.ToMap()
		if err != nil {
			m["attributes"] = err.Error()
		} else {
			m["attributes"] = attrs
		}
	}
	return string(anchor.ToJSONFormatted(m))
}

// WithAttributes sets the Attribute for a FileStat.
func WithAttributes(attrs *Attribute) func(*FileStat) {
	return func(s *FileStat) {
		s.attrs = attrs
	}
}

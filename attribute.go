package nativefs

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/transientvariable/support-go"

	json "github.com/json-iterator/go"
	gofs "io/fs"
)

// Attribute holds the metadata reported for a file system entry at query time.
type Attribute struct {
	ctime    time.Time
	gid      int32
	inode    int64
	mimeType string
	mode     gofs.FileMode
	mtime    time.Time
	size     int64
	uid      int32
}

// NewAttributes ..
func NewAttributes(attributes ...func(*Attribute)) *Attribute {
	attrs := &Attribute{}
	for _, attr := range attributes {
		attr(attrs)
	}
	return attrs
}

// attributesOf collects the Attribute for the provided file info, including host-specific ownership and inode
// details where the platform exposes them.
func attributesOf(fi gofs.FileInfo) *Attribute {
	attrs := []func(*Attribute){
		WithMode(fi.Mode()),
		WithMtime(fi.ModTime()),
	}

	if fi.Mode().IsRegular() {
		attrs = append(attrs, WithSize(fi.Size()))
		if t := mime.TypeByExtension(filepath.Ext(fi.Name())); t != "" {
			attrs = append(attrs, WithMimeType(t))
		}
	}
	return NewAttributes(append(attrs, sysAttributes(fi)...)...)
}

// Ctime returns the time of the last status change, or the zero time when the host does not report one.
func (a *Attribute) Ctime() time.Time {
	return a.ctime
}

// GID ...
func (a *Attribute) GID() int32 {
	return a.gid
}

// Inode ...
func (a *Attribute) Inode() int64 {
	return a.inode
}

// MimeType ...
func (a *Attribute) MimeType() string {
	return a.mimeType
}

// Mode ...
func (a *Attribute) Mode() gofs.FileMode {
	return a.mode
}

// Mtime ...
func (a *Attribute) Mtime() time.Time {
	return a.mtime
}

// Size ...
func (a *Attribute) Size() int64 {
	return a.size
}

// UID ...
func (a *Attribute) UID() int32 {
	return a.uid
}

// Copy returns a copy of the Attribute.
func (a *Attribute) Copy() *Attribute {
	c := *a
	return &c
}

// ToMap returns a map representation of the Attribute properties.
func (a *Attribute) ToMap() (map[string]any, error) {
	var m map[string]any
	if err := json.NewDecoder(strings.NewReader(a.String())).Decode(&m); err != nil {
		return m, err
	}
	return m, nil
}

// String returns a string representation of the Attribute properties.
func (a *Attribute) String() string {
	s := make(map[string]any)
	if !a.Ctime().IsZero() {
		s["ctime"] = a.Ctime()
	}
	s["gid"] = a.GID()
	s["inode"] = a.Inode()
	s["mime_type"] = a.MimeType()
	s["mode"] = a.Mode().String()
	s["mtime"] = a.Mtime()
	s["size"] = a.Size()
	s["uid"] = a.UID()
	return string(support.ToJSONFormatted(s))
}

// WithCtime ...
func WithCtime(ctime time.Time) func(*Attribute) {
	return func(a *Attribute) {
		a.ctime = ctime.UTC()
	}
}

// WithGID ...
func WithGID(gid uint32) func(*Attribute) {
	return func(a *Attribute) {
		a.gid = int32(gid)
	}
}

// WithInode ...
func WithInode(inode uint64) func(*Attribute) {
	return func(a *Attribute) {
		a.inode = int64(inode)
	}
}

// WithMimeType ...
func WithMimeType(mimeType string) func(*Attribute) {
	return func(a *Attribute) {
		a.mimeType = mimeType
	}
}

// WithMode ...
func WithMode(mode gofs.FileMode) func(*Attribute) {
	return func(a *Attribute) {
		a.mode = mode
	}
}

// WithMtime ...
func WithMtime(mtime time.Time) func(*Attribute) {
	return func(a *Attribute) {
		a.mtime = mtime.UTC()
	}
}

// WithSize ...
func WithSize(size int64) func(*Attribute) {
	return func(a *Attribute) {
		a.size = size
	}
}

// WithUID ...
func WithUID(uid uint32) func(*Attribute) {
	return func(a *Attribute) {
		a.uid = int32(uid)
	}
}

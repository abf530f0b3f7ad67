package memfs

import (
	"fmt"
	"sync"

	"github.com/transientvariable/log-go"
	"github.com/transientvariable/nativefs-go"
	"github.com/transientvariable/support-go"

	gofs "io/fs"
	gopath "path"
)

const (
	pathSeparator = "/"
	modePerm      = 0755
)

var _ nativefs.FS = (*MemFS)(nil)

// MemFS in-memory file system provider that implements nativefs.FS.
//
// MemFS enforces the owner permission bits of its entries the way a host does for an unprivileged user: listing or
// reading requires read permission, traversing a directory requires execute permission, and creating, replacing or
// removing an entry requires write and execute permission on its directory. Permissions are changed with Chmod.
//
// All content is transient and will be lost when the runtime exits.
type MemFS struct {
	capacity int64
	closed   bool
	mutex    sync.RWMutex
	root     *node
	used     int64
}

// New creates a new MemFS.
func New(options ...func(*MemFS)) (*MemFS, error) {
	m := &MemFS{root: newDirNode(modePerm)}
	for _, opt := range options {
		opt(m)
	}

	if m.capacity < 0 {
		return nil, fmt.Errorf("memfs: capacity must not be negative: %d", m.capacity)
	}
	return m, nil
}

// WithCapacity limits the total number of content bytes MemFS stores. Writes exceeding the limit fail with
// nativefs.ErrNoSpace. Zero means unlimited.
func WithCapacity(n int64) func(*MemFS) {
	return func(m *MemFS) {
		m.capacity = n
	}
}

// Close ...
func (m *MemFS) Close() error {
	if m == nil {
		return gofs.ErrInvalid
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.closed {
		m.closed = true
		return nil
	}
	return fmt.Errorf("memfs: %w", gofs.ErrClosed)
}

// Chmod changes the permission bits of the named entry. It is not subject to permission checks.
func (m *MemFS) Chmod(name string, mode gofs.FileMode) error {
	log.Debug("[memfs] chmod", log.String("name", name), log.String("mode", mode.String()))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	n, err := m.find("chmod", name)
	if err != nil {
		return err
	}
	n.mode = n.mode.Type() | mode.Perm()
	return nil
}

// Lstat ...
func (m *MemFS) Lstat(name string) (gofs.FileInfo, error) {
	return m.Stat(name)
}

// Mkdir ...
func (m *MemFS) Mkdir(name string, perm gofs.FileMode) error {
	log.Debug("[memfs] mkdir", log.String("name", name), log.String("mode", perm.String()))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, err := m.mkdir(name, perm)
	return err
}

// MkdirAll ...
func (m *MemFS) MkdirAll(path string, perm gofs.FileMode) error {
	log.Debug("[memfs] mkdirAll", log.String("path", path), log.String("mode", perm.String()))

	p, err := nativefs.SplitPath(m, path)
	if err != nil {
		return fmt.Errorf("memfs: %w", &gofs.PathError{Op: "mkdirAll", Path: path, Err: err})
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	dir := pathSeparator
	for _, e := range p {
		dir = gopath.Join(dir, e)
		n, err := m.mkdir(dir, perm)
		if err != nil {
			if n != nil && n.isDir() {
				continue
			}
			return err
		}
	}
	return nil
}

// PathSeparator ...
func (m *MemFS) PathSeparator() string {
	return pathSeparator
}

// Provider ...
func (m *MemFS) Provider() string {
	return "memfs"
}

// ReadDirNames returns the names of the entries in the named directory in lexical order.
func (m *MemFS) ReadDirNames(name string) ([]string, error) {
	log.Debug("[memfs] readDirNames", log.String("name", name))

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	n, err := m.find("readdirent", name)
	if err != nil {
		return nil, err
	}

	if !n.isDir() {
		return nil, pathError("readdirent", name, nativefs.ErrNotDir)
	}

	if !n.can(permRead) {
		return nil, pathError("open", name, gofs.ErrPermission)
	}
	return n.names(), nil
}

// ReadFile ...
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	log.Debug("[memfs] readFile", log.String("name", name))

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	n, err := m.find("open", name)
	if err != nil {
		return nil, err
	}

	if !n.can(permRead) {
		return nil, pathError("open", name, gofs.ErrPermission)
	}

	if n.isDir() {
		return nil, pathError("read", name, nativefs.ErrIsDir)
	}

	b := make([]byte, len(n.data))
	copy(b, n.data)
	return b, nil
}

// Remove ...
func (m *MemFS) Remove(name string) error {
	log.Debug("[memfs] remove", log.String("name", name))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	parent, n, base, err := m.lookup("unlink", name)
	if err != nil {
		return err
	}

	if n == nil {
		return pathError("unlink", name, gofs.ErrNotExist)
	}

	if n.isDir() {
		return pathError("unlink", name, nativefs.ErrIsDir)
	}

	if parent == nil || !parent.can(permWrite|permExec) {
		return pathError("unlink", name, gofs.ErrPermission)
	}

	delete(parent.children, base)
	parent.touch()
	m.used -= int64(len(n.data))
	return nil
}

// Stat ...
func (m *MemFS) Stat(name string) (gofs.FileInfo, error) {
	log.Debug("[memfs] stat", log.String("name", name))

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	n, err := m.find("stat", name)
	if err != nil {
		return nil, err
	}
	return n.stat(name)
}

// WriteFile ...
func (m *MemFS) WriteFile(name string, data []byte, perm gofs.FileMode) error {
	log.Debug("[memfs] writeFile",
		log.String("name", name),
		log.Int("content_length", len(data)),
		log.String("mode", perm.String()),
	)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	parent, n, base, err := m.lookup("open", name)
	if err != nil {
		return err
	}

	if n != nil && n.isDir() {
		return pathError("open", name, nativefs.ErrIsDir)
	}

	if n == nil && (parent == nil || !parent.can(permWrite|permExec)) {
		return pathError("open", name, gofs.ErrPermission)
	}

	if n != nil && !n.can(permWrite) {
		return pathError("open", name, gofs.ErrPermission)
	}

	var size int64
	if n != nil {
		size = int64(len(n.data))
	}

	if used := m.used - size + int64(len(data)); m.capacity > 0 && used > m.capacity {
		return pathError("write", name, nativefs.ErrNoSpace)
	}

	if n == nil {
		n = newFileNode(perm)
		parent.children[base] = n
		parent.touch()
	}

	n.data = make([]byte, len(data))
	copy(n.data, data)
	n.touch()
	m.used += int64(len(data)) - size
	return nil
}

// String returns a string representation of MemFS.
func (m *MemFS) String() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	s := make(map[string]any)
	s["provider"] = m.Provider()
	s["capacity"] = m.capacity
	s["used"] = m.used
	s["list"] = list(m.root, pathSeparator)
	return string(support.ToJSONFormatted(s))
}

// find returns the node addressed by name, failing if it does not exist.
func (m *MemFS) find(op string, name string) (*node, error) {
	_, n, _, err := m.lookup(op, name)
	if err != nil {
		return nil, err
	}

	if n == nil {
		return nil, pathError(op, name, gofs.ErrNotExist)
	}
	return n, nil
}

// lookup resolves name into its parent directory, the node itself (nil if it does not exist) and its base name.
// Every directory traversed must grant execute permission. The root has no parent.
func (m *MemFS) lookup(op string, name string) (*node, *node, string, error) {
	if m.closed {
		return nil, nil, "", pathError(op, name, gofs.ErrClosed)
	}

	p, err := nativefs.SplitPath(m, name)
	if err != nil {
		return nil, nil, "", pathError(op, name, err)
	}

	if len(p) == 0 {
		return nil, m.root, pathSeparator, nil
	}

	dir := m.root
	for i, e := range p {
		if !dir.isDir() {
			return nil, nil, "", pathError(op, name, nativefs.ErrNotDir)
		}

		if !dir.can(permExec) {
			return nil, nil, "", pathError(op, name, gofs.ErrPermission)
		}

		next, ok := dir.children[e]
		if i == len(p)-1 {
			return dir, next, e, nil
		}

		if !ok {
			return nil, nil, "", pathError(op, name, gofs.ErrNotExist)
		}
		dir = next
	}
	return nil, nil, "", pathError(op, name, gofs.ErrInvalid)
}

func (m *MemFS) mkdir(name string, perm gofs.FileMode) (*node, error) {
	parent, n, base, err := m.lookup("mkdir", name)
	if err != nil {
		return nil, err
	}

	if n != nil {
		return n, pathError("mkdir", name, gofs.ErrExist)
	}

	if !parent.can(permWrite | permExec) {
		return nil, pathError("mkdir", name, gofs.ErrPermission)
	}

	d := newDirNode(perm)
	parent.children[base] = d
	parent.touch()
	return d, nil
}

func list(n *node, path string) []string {
	entries := []string{fmt.Sprintf("%s: size: %d, mode: %s", path, len(n.data), n.mode)}
	for _, name := range n.names() {
		entries = append(entries, list(n.children[name], gopath.Join(path, name))...)
	}
	return entries
}

func pathError(op string, name string, err error) error {
	return fmt.Errorf("memfs: %w", &gofs.PathError{Op: op, Path: name, Err: err})
}

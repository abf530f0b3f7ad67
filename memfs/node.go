package memfs

import (
	"sort"
	"time"

	"github.com/transientvariable/nativefs-go"

	gofs "io/fs"
)

// Owner permission bits consulted by MemFS. Every caller is treated as the owner of every node.
const (
	permRead  gofs.FileMode = 0400
	permWrite gofs.FileMode = 0200
	permExec  gofs.FileMode = 0100
)

// node is a file or directory held by MemFS.
type node struct {
	children map[string]*node
	data     []byte
	mode     gofs.FileMode
	mtime    time.Time
}

func newDirNode(perm gofs.FileMode) *node {
	return &node{
		children: make(map[string]*node),
		mode:     gofs.ModeDir | perm.Perm(),
		mtime:    time.Now().UTC(),
	}
}

func newFileNode(perm gofs.FileMode) *node {
	return &node{
		mode:  perm.Perm(),
		mtime: time.Now().UTC(),
	}
}

func (n *node) isDir() bool {
	return n.mode.IsDir()
}

// can reports whether the owner permission bits of the node include all of perm.
func (n *node) can(perm gofs.FileMode) bool {
	return n.mode.Perm()&perm == perm
}

func (n *node) names() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n *node) touch() {
	n.mtime = time.Now().UTC()
}

// stat returns the FileStat for the node addressed by path.
func (n *node) stat(path string) (*nativefs.FileStat, error) {
	attrs := []func(*nativefs.Attribute){
		nativefs.WithMode(n.mode),
		nativefs.WithMtime(n.mtime),
	}

	if !n.isDir() {
		attrs = append(attrs, nativefs.WithSize(int64(len(n.data))))
	}
	return nativefs.NewFileStat(path, nativefs.WithAttributes(nativefs.NewAttributes(attrs...)))
}

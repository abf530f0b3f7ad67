//go:build linux || darwin || freebsd || netbsd || openbsd

package nativefs

import (
	"syscall"

	gofs "io/fs"
)

func sysAttributes(fi gofs.FileInfo) []func(*Attribute) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	return []func(*Attribute){
		WithCtime(statCtime(st)),
		WithGID(st.Gid),
		WithInode(uint64(st.Ino)),
		WithUID(st.Uid),
	}
}

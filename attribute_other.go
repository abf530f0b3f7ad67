//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package nativefs

import (
	gofs "io/fs"
)

func sysAttributes(gofs.FileInfo) []func(*Attribute) {
	return nil
}

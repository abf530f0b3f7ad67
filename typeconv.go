package nativefs

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/transientvariable/schema-go"
)

// Metadata converts a FileStat and produces a schema.File.
func Metadata(stat *FileStat) (*schema.File, error) {
	if stat == nil {
		return nil, errors.New("nativefs: file stat is required")
	}

	p, err := filepath.Abs(stat.Path())
	if err != nil {
		return nil, err
	}

	mtime := stat.ModTime()
	m := &schema.File{
		GID:       itoa(int(stat.Attributes().GID())),
		Directory: filepath.Dir(p),
		Inode:     itoa(int(stat.Attributes().Inode())),
		Mode:      itoa(int(stat.Mode())),
		Mtime:     &mtime,
		Name:      stat.Name(),
		Path:      p,
		UID:       itoa(int(stat.Attributes().UID())),
	}

	if ctime := stat.Attributes().Ctime(); !ctime.IsZero() {
		m.Ctime = &ctime
	}

	if stat.IsFile() {
		m.MimeType = stat.Attributes().MimeType()
		m.Size = stat.Size()
	}
	return m, nil
}

func itoa(v int) string {
	if v > 0 {
		return strconv.Itoa(v)
	}
	return ""
}

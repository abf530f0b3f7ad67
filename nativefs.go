package nativefs

import (
	"errors"

	"github.com/transientvariable/log-go"
)

const (
	// modePerm is the permission used for files created by WriteFile.
	modePerm = 0644
)

// Result holds the outcome of a successful operation. Only the field matching the operation is set.
type Result struct {
	Names   []string
	Stat    *FileStat
	Content string
}

// FileSystem performs the public operations against a native provider. Each call runs the full
// validate, call and map pipeline and returns at most one *Error. FileSystem holds no state besides its provider and
// is safe for concurrent use.
type FileSystem struct {
	fsys FS
}

// New creates a new FileSystem. The default provider is used unless one is set with WithProvider.
func New(options ...func(*FileSystem)) (*FileSystem, error) {
	f := &FileSystem{}
	for _, opt := range options {
		opt(f)
	}

	if f.fsys == nil {
		f.fsys = Default()
	}

	if f.fsys == nil {
		return nil, errors.New("nativefs: file system is required")
	}
	return f, nil
}

// WithProvider sets the native provider for a FileSystem.
func WithProvider(fsys FS) func(*FileSystem) {
	return func(f *FileSystem) {
		f.fsys = fsys
	}
}

// Provider returns the native provider.
func (f *FileSystem) Provider() FS {
	return f.fsys
}

// ReadDir returns the names of the entries in the directory at path. The "." and ".." entries are never included
// and names are returned exactly as reported by the provider, in provider order.
func (f *FileSystem) ReadDir(path string) ([]string, error) {
	req, err := Validate(OpReadDir, path)
	if err != nil {
		return nil, err
	}
	return f.readDir(req)
}

// Stat returns the metadata for path.
func (f *FileSystem) Stat(path string) (*FileStat, error) {
	req, err := Validate(OpStat, path)
	if err != nil {
		return nil, err
	}
	return f.stat(req)
}

// ReadFile returns the entire content of the file at path decoded with encoding.
func (f *FileSystem) ReadFile(path string, encoding string) (string, error) {
	req, err := Validate(OpReadFile, path, encoding)
	if err != nil {
		return "", err
	}
	return f.readFile(req)
}

// WriteFile replaces the entire content of the file at path with content encoded with encoding.
func (f *FileSystem) WriteFile(path string, content string, encoding string) error {
	req, err := Validate(OpWriteFile, path, content, encoding)
	if err != nil {
		return err
	}
	return f.writeFile(req)
}

// Unlink removes the file at path. Directories are rejected with ErrNotFile.
func (f *FileSystem) Unlink(path string) error {
	req, err := Validate(OpUnlink, path)
	if err != nil {
		return err
	}
	return f.unlink(req)
}

// Do performs a validated Request and returns its Result.
func (f *FileSystem) Do(req *Request) (Result, error) {
	var r Result
	var err error
	switch req.Op {
	case OpReadDir:
		r.Names, err = f.readDir(req)
	case OpStat:
		r.Stat, err = f.stat(req)
	case OpReadFile:
		r.Content, err = f.readFile(req)
	case OpWriteFile:
		err = f.writeFile(req)
	case OpUnlink:
		err = f.unlink(req)
	default:
		_, err = Validate(req.Op)
	}
	return r, err
}

func (f *FileSystem) readDir(req *Request) ([]string, error) {
	log.Debug("[nativefs] readdir", log.String("path", req.Path))

	names, err := f.fsys.ReadDirNames(req.Path)
	if err != nil {
		return nil, f.fail(req, err)
	}

	entries := make([]string, 0, len(names))
	for _, n := range names {
		if n == "." || n == ".." {
			continue
		}
		entries = append(entries, n)
	}
	return entries, nil
}

func (f *FileSystem) stat(req *Request) (*FileStat, error) {
	log.Debug("[nativefs] stat", log.String("path", req.Path))

	fi, err := f.fsys.Stat(req.Path)
	if err != nil {
		return nil, f.fail(req, err)
	}

	s, err := fileStatOf(req.Path, fi)
	if err != nil {
		return nil, f.fail(req, err)
	}
	return s, nil
}

func (f *FileSystem) readFile(req *Request) (string, error) {
	log.Debug("[nativefs] readFile", log.String("path", req.Path), log.String("encoding", req.Encoding))

	enc, err := f.encoding(req)
	if err != nil {
		return "", err
	}

	b, err := f.fsys.ReadFile(req.Path)
	if err != nil {
		return "", f.fail(req, err)
	}

	s, err := enc.Decode(b)
	if err != nil {
		return "", f.fail(req, newError(ErrUnsupportedEncoding, req.Op, req.Path, err))
	}
	return s, nil
}

func (f *FileSystem) writeFile(req *Request) error {
	log.Debug("[nativefs] writeFile",
		log.String("path", req.Path),
		log.String("encoding", req.Encoding),
		log.Int("content_length", len(req.Content)),
	)

	enc, err := f.encoding(req)
	if err != nil {
		return err
	}

	b, err := enc.Encode(req.Content)
	if err != nil {
		return f.fail(req, newError(ErrUnsupportedEncoding, req.Op, req.Path, err))
	}

	if err := f.fsys.WriteFile(req.Path, b, modePerm); err != nil {
		return f.fail(req, err)
	}
	return nil
}

func (f *FileSystem) unlink(req *Request) error {
	log.Debug("[nativefs] unlink", log.String("path", req.Path))

	fi, err := f.fsys.Lstat(req.Path)
	if err != nil {
		return f.fail(req, err)
	}

	if fi.IsDir() {
		return f.fail(req, newError(ErrNotFile, req.Op, req.Path, ErrIsDir))
	}

	if err := f.fsys.Remove(req.Path); err != nil {
		return f.fail(req, err)
	}
	return nil
}

func (f *FileSystem) encoding(req *Request) (*Encoding, error) {
	enc, err := LookupEncoding(req.Encoding)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Op = req.Op
			e.Path = req.Path
		}
		return nil, f.fail(req, err)
	}
	return enc, nil
}

func (f *FileSystem) fail(req *Request, err error) error {
	err = MapError(req.Op, req.Path, err)
	log.Debug("[nativefs] operation failed",
		log.String("op", string(req.Op)),
		log.String("path", req.Path),
		log.String("code", CodeOf(err).String()),
		log.Err(err),
	)
	return err
}

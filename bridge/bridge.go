// Package bridge exposes the nativefs operations to an editor process over a stream of newline-delimited JSON
// messages.
//
// Each request is a single JSON object:
//
//	{"id":"7","op":"readFile","args":["/path/file.txt","utf8"]}
//
// and is answered by exactly one response carrying the same id:
//
//	{"id":"7","err":0,"code":"NO_ERROR","result":"content"}
//
// Requests are performed concurrently, so responses may be written in a different order than the requests were
// read.
package bridge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/transientvariable/log-go"
	"github.com/transientvariable/nativefs-go"
	"github.com/transientvariable/schema-go"

	json "github.com/json-iterator/go"
)

// Request is a single operation call read from the stream.
type Request struct {
	ID   any    `json:"id,omitempty"`
	Op   string `json:"op"`
	Args []any  `json:"args"`
}

// Response is the single answer to a Request.
type Response struct {
	ID      any    `json:"id"`
	Err     uint8  `json:"err"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Result  any    `json:"result,omitempty"`
}

// StatResult is the result of a stat request.
type StatResult struct {
	IsDirectory bool         `json:"is_directory"`
	IsFile      bool         `json:"is_file"`
	Metadata    *schema.File `json:"metadata,omitempty"`
}

// Server answers requests read from a stream using a nativefs.Async.
type Server struct {
	async *nativefs.Async
	mutex sync.Mutex
	wg    sync.WaitGroup
}

// New creates a new Server.
func New(async *nativefs.Async) (*Server, error) {
	if async == nil {
		return nil, errors.New("bridge: async file system is required")
	}
	return &Server{async: async}, nil
}

// Serve reads requests from r and writes their responses to w until r is exhausted or ctx is done. Serve returns
// once every request read so far has been answered.
//
// Reading from r is not interruptible: if ctx is done while a read is blocked, the read is abandoned but the
// goroutine performing it remains until r returns.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	log.Info("[bridge] serving requests")

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadBytes('\n')
			if len(bytes.TrimSpace(line)) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	var werr writeError
	var err error
	for done := false; !done; {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			done = true
		case line, ok := <-lines:
			if !ok {
				done = true
				break
			}
			s.dispatch(line, w, &werr)
		}
	}

	s.wg.Wait()
	log.Info("[bridge] stopped serving requests")

	select {
	case rerr := <-readErr:
		return fmt.Errorf("bridge: %w", rerr)
	default:
	}

	if err != nil {
		return err
	}
	return werr.get()
}

func (s *Server) dispatch(line []byte, w io.Writer, werr *writeError) {
	req, err := decode(line)
	if err != nil {
		log.Debug("[bridge] invalid request", log.Err(err))
		s.respond(w, werr, Response{ID: req.ID}, err, nil)
		return
	}

	log.Trace("[bridge] request", log.String("op", req.Op), log.Int("args", len(req.Args)))

	op := nativefs.Op(req.Op)
	s.wg.Add(1)
	s.async.Call(op, req.Args, func(err error, r nativefs.Result) {
		defer s.wg.Done()
		s.respond(w, werr, Response{ID: req.ID}, err, func() (any, error) {
			return result(op, r)
		})
	})
}

func (s *Server) respond(w io.Writer, werr *writeError, resp Response, err error, res func() (any, error)) {
	if err == nil && res != nil {
		resp.Result, err = res()
	}

	code := nativefs.CodeOf(err)
	resp.Err = uint8(code)
	resp.Code = code.String()
	if err != nil {
		resp.Message = err.Error()
		resp.Result = nil
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Error("[bridge] encoding response", log.Err(err))
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, err := w.Write(append(b, '\n')); err != nil {
		log.Error("[bridge] writing response", log.Err(err))
		werr.set(err)
	}
}

// decode parses a single request. Anything other than a JSON object naming an operation is rejected with
// nativefs.ErrInvalidParams; the id is recovered whenever the object carries one.
func decode(line []byte) (Request, error) {
	var req Request
	err := json.Unmarshal(line, &req)
	if err == nil {
		if req.Op == "" {
			return req, invalid(errors.New("request must name an operation"))
		}
		return req, nil
	}

	// Recover the id of an object whose op or args have the wrong type so the error can still be correlated.
	var head struct {
		ID any `json:"id"`
	}
	if json.Unmarshal(line, &head) != nil {
		return Request{}, invalid(fmt.Errorf("malformed request: %w", err))
	}
	return Request{ID: head.ID}, invalid(fmt.Errorf("request has a field of the wrong type: %w", err))
}

func invalid(err error) error {
	return &nativefs.Error{Code: nativefs.ErrInvalidParams, Err: err}
}

func result(op nativefs.Op, r nativefs.Result) (any, error) {
	switch op {
	case nativefs.OpReadDir:
		return r.Names, nil
	case nativefs.OpStat:
		m, err := nativefs.Metadata(r.Stat)
		if err != nil {
			return nil, &nativefs.Error{Code: nativefs.ErrUnknown, Op: op, Path: r.Stat.Path(), Err: err}
		}
		return StatResult{IsDirectory: r.Stat.IsDirectory(), IsFile: r.Stat.IsFile(), Metadata: m}, nil
	case nativefs.OpReadFile:
		return r.Content, nil
	}
	return nil, nil
}

type writeError struct {
	mutex sync.Mutex
	err   error
}

func (w *writeError) get() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.err
}

func (w *writeError) set(err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.err == nil {
		w.err = err
	}
}

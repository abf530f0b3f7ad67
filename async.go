package nativefs

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/transientvariable/log-go"
	"golang.org/x/sync/semaphore"

	gofs "io/fs"
)

// Completion is the single outcome of an asynchronous operation: either Err is set or Result holds the value.
type Completion struct {
	Err    error
	Result Result
}

// Async dispatches operations to a bounded pool of goroutines and reports each outcome exactly once through a
// completion callback or channel. Callers are never blocked waiting on the file system, and completions for
// different calls arrive in no particular order, even for the same path.
//
// Operations are queued and performed by at most maxWorkers goroutines. A worker is started when an operation is
// queued and a slot is free, and exits once the queue is empty.
//
// Arguments are untyped since they usually originate from a script bridge; argument errors are reported through the
// completion like any other failure.
type Async struct {
	closed     bool
	fs         *FileSystem
	maxWorkers int64
	mutex      sync.Mutex
	queue      []task
	sem        *semaphore.Weighted
	wg         sync.WaitGroup
}

// task is a queued operation.
type task struct {
	args []any
	done func(error, Result)
	id   string
	op   Op
}

// NewAsync creates a new Async for the provided FileSystem.
func NewAsync(fs *FileSystem, options ...func(*Async)) (*Async, error) {
	if fs == nil {
		return nil, errors.New("nativefs: file system is required")
	}

	a := &Async{fs: fs}
	for _, opt := range options {
		opt(a)
	}

	if a.maxWorkers <= 0 {
		a.maxWorkers = int64(runtime.GOMAXPROCS(0) * 4)
	}
	a.sem = semaphore.NewWeighted(a.maxWorkers)
	return a, nil
}

// WithMaxWorkers sets the maximum number of operations an Async runs concurrently.
func WithMaxWorkers(n int) func(*Async) {
	return func(a *Async) {
		a.maxWorkers = int64(n)
	}
}

// Call performs op with args and invokes done exactly once with the outcome. Call never invokes done from the
// calling goroutine.
func (a *Async) Call(op Op, args []any, done func(error, Result)) {
	t := task{args: args, done: done, id: uuid.NewString(), op: op}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.closed {
		go done(newError(ErrUnknown, op, "", fmt.Errorf("nativefs: %w", gofs.ErrClosed)), Result{})
		return
	}

	log.Trace("[nativefs:async] dispatch", log.String("id", t.id), log.String("op", string(op)))

	a.wg.Add(1)
	a.queue = append(a.queue, t)
	if a.sem.TryAcquire(1) {
		go a.work()
	}
}

// work performs queued operations until the queue is empty. The worker slot is released while holding the mutex,
// so an operation queued concurrently either is taken by this worker or acquires the slot for a new one.
func (a *Async) work() {
	for {
		a.mutex.Lock()
		if len(a.queue) == 0 {
			a.sem.Release(1)
			a.mutex.Unlock()
			return
		}
		t := a.queue[0]
		a.queue[0] = task{}
		a.queue = a.queue[1:]
		a.mutex.Unlock()

		r, err := a.do(t.op, t.args)
		log.Trace("[nativefs:async] complete",
			log.String("id", t.id),
			log.String("op", string(t.op)),
			log.String("code", CodeOf(err).String()),
		)
		t.done(err, r)
		a.wg.Done()
	}
}

// Go performs op with args and returns a channel that receives the single Completion and is then closed.
func (a *Async) Go(op Op, args ...any) <-chan Completion {
	c := make(chan Completion, 1)
	a.Call(op, args, func(err error, r Result) {
		c <- Completion{Err: err, Result: r}
		close(c)
	})
	return c
}

// ReadDir lists the directory at path.
func (a *Async) ReadDir(path any, done func(err error, names []string)) {
	a.Call(OpReadDir, []any{path}, func(err error, r Result) {
		done(err, r.Names)
	})
}

// Stat queries the metadata for path.
func (a *Async) Stat(path any, done func(err error, stat *FileStat)) {
	a.Call(OpStat, []any{path}, func(err error, r Result) {
		done(err, r.Stat)
	})
}

// ReadFile reads the file at path decoded with encoding.
func (a *Async) ReadFile(path any, encoding any, done func(err error, content string)) {
	a.Call(OpReadFile, []any{path, encoding}, func(err error, r Result) {
		done(err, r.Content)
	})
}

// WriteFile replaces the content of the file at path.
func (a *Async) WriteFile(path any, content any, encoding any, done func(err error)) {
	a.Call(OpWriteFile, []any{path, content, encoding}, func(err error, _ Result) {
		done(err)
	})
}

// Unlink removes the file at path.
func (a *Async) Unlink(path any, done func(err error)) {
	a.Call(OpUnlink, []any{path}, func(err error, _ Result) {
		done(err)
	})
}

// Close stops accepting new operations and waits for the pending ones to complete. Operations issued after Close
// complete with ErrUnknown.
func (a *Async) Close() error {
	a.mutex.Lock()
	if a.closed {
		a.mutex.Unlock()
		return fmt.Errorf("nativefs: %w", gofs.ErrClosed)
	}
	a.closed = true
	a.mutex.Unlock()

	a.wg.Wait()
	return nil
}

func (a *Async) do(op Op, args []any) (Result, error) {
	req, err := Validate(op, args...)
	if err != nil {
		return Result{}, err
	}
	return a.fs.Do(req)
}

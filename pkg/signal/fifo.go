package signal

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

const eventBuffer = 16

// FIFO is a Source reading single-byte codes from a named pipe.
type FIFO struct {
	path   string
	file   *os.File
	events chan Event
	done   chan struct{}
	logger *slog.Logger
	once   sync.Once
}

// OpenFIFO creates a named pipe at path, replacing any stale file, and starts
// reading from it.
func OpenFIFO(path string, logger *slog.Logger) (*FIFO, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove stale fifo: %w", err)
	}
	if err := unix.Mkfifo(path, 0o600); err != nil {
		return nil, fmt.Errorf("create fifo %s: %w", path, err)
	}

	// Opening read-write keeps a writer attached, so open does not block
	// and reads never observe EOF between presses.
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("open fifo: %w", err)
	}

	f := &FIFO{
		path:   path,
		file:   file,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}
	go f.read()
	return f, nil
}

// Path returns the location of the named pipe.
func (f *FIFO) Path() string { return f.path }

func (f *FIFO) Poll() (Event, bool) {
	select {
	case ev := <-f.events:
		return ev, true
	default:
		return 0, false
	}
}

// Close stops the reader and removes the named pipe.
func (f *FIFO) Close() error {
	var err error
	f.once.Do(func() {
		err = f.file.Close()
		<-f.done
		if rmErr := os.Remove(f.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf("remove fifo: %w", rmErr)
		}
	})
	return err
}

func (f *FIFO) read() {
	defer close(f.done)
	buf := make([]byte, 64)
	for {
		n, err := f.file.Read(buf)
		for _, b := range buf[:n] {
			f.dispatch(b)
		}
		if err != nil {
			if !errors.Is(err, os.ErrClosed) {
				f.logger.Error("read fifo", "path", f.path, "error", err)
			}
			return
		}
	}
}

func (f *FIFO) dispatch(b byte) {
	switch b {
	case '\n', '\r', ' ', '\t':
		return
	}
	ev, err := Decode(b)
	if err != nil {
		f.logger.Warn("unexpected button code", "code", string(rune(b)), "error", err)
		return
	}
	select {
	case f.events <- ev:
	default:
		f.logger.Warn("event queue full, dropping press", "event", ev)
	}
}

// Package logging builds the process logger. Logs can be sent to a
// size-capped file so a terminal UI or stdio transport keeps its output
// stream to itself.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// New returns a text logger at the given level. When path is set, logs go
// to that file and fallback is ignored. The returned close func is never nil.
func New(level, path string, fallback io.Writer) (*slog.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }
	if path != "" {
		fw, err := NewFileWriter(path)
		if err != nil {
			return nil, closeFn, err
		}
		w = fw
		closeFn = fw.Close
	}
	if w == nil {
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FileWriter appends to a log file and trims it back to its most recent
// bytes once it grows past the size cap.
type FileWriter struct {
	path    string
	file    *os.File
	mu      sync.Mutex
	maxSize int64
	keep    int64
}

// NewFileWriter opens (or creates) the log file at path.
func NewFileWriter(path string) (*FileWriter, error) {
	return newFileWriter(path, maxLogSizeBytes, keepLogSizeBytes)
}

func newFileWriter(path string, maxSize, keep int64) (*FileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := &FileWriter{path: path, file: file, maxSize: maxSize, keep: keep}
	if err := w.truncateIfNeeded(); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *FileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.maxSize {
		return nil
	}

	buf := make([]byte, w.keep)
	n, err := w.file.ReadAt(buf, size-w.keep)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}

package cli

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/haivivi/netbuf/pkg/buffer"
)

// LogWriter implements io.Writer and forwards output to a sink one
// complete line at a time. Partial lines are held until their newline
// arrives or the writer is flushed, so a rotating sink never splits a
// record across files.
type LogWriter struct {
	mu     sync.Mutex
	buf    *buffer.Buffer
	sink   io.Writer
	closer io.Closer
}

// NewLogWriter creates a line-framing writer in front of sink.
func NewLogWriter(sink io.Writer) *LogWriter {
	return &LogWriter{
		buf:  buffer.N(256),
		sink: sink,
	}
}

// Write implements io.Writer.
func (w *LogWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Append(p)
	for {
		eol := w.buf.FindEOL()
		if eol < 0 {
			break
		}
		line, _ := w.buf.PeekN(eol + 1)
		if _, err := w.sink.Write(line); err != nil {
			return len(p), err
		}
		if err := w.buf.Retrieve(eol + 1); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Pending returns the number of bytes waiting for a newline.
func (w *LogWriter) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.ReadableBytes()
}

// Flush writes out a trailing partial line, if any.
func (w *LogWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.buf.WriteTo(w.sink)
	return err
}

// Close flushes and closes the log file opened by SetupLogging. The
// console writer is left open.
func (w *LogWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// LogOptions configures SetupLogging.
type LogOptions struct {
	// Verbose enables debug level
	Verbose bool

	// File, when set, also writes logs to a rotating file
	File string

	// MaxSizeMB is the size at which the log file rotates (default 10)
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept (default 3)
	MaxBackups int

	// Stderr overrides os.Stderr as the console writer
	Stderr io.Writer
}

// SetupLogging builds the slog logger used by CLI commands. Logs go to
// stderr, and with File set also to a lumberjack rotated file. The returned
// LogWriter must be closed on exit.
func SetupLogging(opts LogOptions) (*slog.Logger, *LogWriter) {
	var console io.Writer = os.Stderr
	if opts.Stderr != nil {
		console = opts.Stderr
	}

	var sink io.Writer = console
	var file *lumberjack.Logger
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		backups := opts.MaxBackups
		if backups <= 0 {
			backups = 3
		}
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: backups,
		}
		sink = io.MultiWriter(console, file)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	lw := NewLogWriter(sink)
	if file != nil {
		lw.closer = file
	}
	return slog.New(slog.NewTextHandler(lw, &slog.HandlerOptions{Level: level})), lw
}

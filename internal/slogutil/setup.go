package slogutil

import (
	"io"
	"log/slog"
)

// Options selects where and how the CLI logs.
type Options struct {
	Level  slog.Level
	Format string

	// File, when set, receives a copy of every record at FileLevel in
	// addition to the console writer.
	File       string
	FileLevel  slog.Level
	MaxSize    string
	MaxBackups int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the process logger. The returned closer releases the log file,
// if any, and is never nil.
func Setup(console io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	consoleHandler := newFormatHandler(console, opts.Level, opts.Format)
	if opts.File == "" {
		return slog.New(consoleHandler), nopCloser{}, nil
	}

	rf, err := OpenRotatingFile(opts.File, ParseSize(opts.MaxSize), opts.MaxBackups)
	if err != nil {
		return nil, nil, err
	}
	fileHandler := newFormatHandler(rf, opts.FileLevel, opts.Format)
	return slog.New(NewTeeHandler(consoleHandler, fileHandler)), rf, nil
}

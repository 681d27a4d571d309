// Package batch loads radgraph commands in bulk from text, YAML or TOML
// files, optionally gzip or zstd compressed.
//
// Sources are read and decoded concurrently; the decoded commands are then
// applied to the target one at a time, in the order the sources were given.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	rgerrors "radgraph/internal/errors"
	"radgraph/internal/graph"
	"radgraph/internal/slogutil"
)

// Target receives decoded commands. *graph.Graph satisfies it.
type Target interface {
	AddCommand(raw string) (*graph.InsertReport, error)
}

// Options configures a Loader.
type Options struct {
	// StopOnError aborts at the first failing command instead of collecting
	// failures and continuing.
	StopOnError bool
	// Workers bounds how many sources are decoded at once. Zero means 4.
	Workers int
	Logger  *slog.Logger
}

// Failure is a command, or a whole source, that could not be applied.
type Failure struct {
	Source  string `json:"source"`
	Line    int    `json:"line,omitempty"`
	Index   int    `json:"index,omitempty"`
	Command string `json:"command,omitempty"`
	Err     error  `json:"-"`
	Message string `json:"error"`
}

// Position renders where the failure happened, e.g. "cmds.txt:12".
func (f Failure) Position() string {
	switch {
	case f.Line > 0:
		return fmt.Sprintf("%s:%d", f.Source, f.Line)
	case f.Index > 0:
		return fmt.Sprintf("%s#%d", f.Source, f.Index)
	default:
		return f.Source
	}
}

func (f Failure) Error() string {
	if f.Command == "" {
		return f.Position() + ": " + f.Message
	}
	return fmt.Sprintf("%s: %q: %s", f.Position(), f.Command, f.Message)
}

// Unwrap exposes the underlying command error.
func (f Failure) Unwrap() error {
	return f.Err
}

// Result summarizes a load.
type Result struct {
	Sources  int       `json:"sources"`
	Applied  int       `json:"applied"`
	Failures []Failure `json:"failures,omitempty"`
}

// OK reports whether every command was applied.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// Loader reads sources and applies them to a Target.
type Loader struct {
	opts   Options
	logger *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Loader{opts: opts, logger: logger}
}

// LoadFiles decodes every path and applies the commands to target. With
// StopOnError the first failure is returned as an error; otherwise failures
// are collected in the Result and the error is nil unless ctx was cancelled.
func (l *Loader) LoadFiles(ctx context.Context, target Target, files ...string) (*Result, error) {
	sources, failures, err := l.ReadFiles(ctx, files...)
	if err != nil {
		return nil, err
	}
	res := &Result{Sources: len(files), Failures: failures}
	return res, l.apply(ctx, target, sources, res)
}

// LoadReader decodes a single stream, e.g. standard input, and applies it.
func (l *Loader) LoadReader(ctx context.Context, target Target, r io.Reader, name string) (*Result, error) {
	res := &Result{Sources: 1}
	src, err := Decode(r, name)
	if err != nil {
		f := sourceFailure(name, err)
		if l.opts.StopOnError {
			return nil, f.Err
		}
		res.Failures = append(res.Failures, f)
		return res, nil
	}
	return res, l.apply(ctx, target, []*Source{src}, res)
}

// ReadFiles decodes files concurrently. The returned sources keep the order
// of files; unreadable files become failures unless StopOnError is set, in
// which case the first one is returned as an error.
func (l *Loader) ReadFiles(ctx context.Context, files ...string) ([]*Source, []Failure, error) {
	sources := make([]*Source, len(files))
	errs := make([]error, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(l.opts.Workers)
	for i, path := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			src, err := readFile(path)
			if err != nil {
				errs[i] = err
				if l.opts.StopOnError {
					return err
				}
				return nil
			}
			sources[i] = src
			l.logger.Debug("Decoded source", "source", path, "format", src.Format.String(), "commands", len(src.Commands))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	var failures []Failure
	kept := sources[:0]
	for i, src := range sources {
		if errs[i] != nil {
			failures = append(failures, sourceFailure(files[i], errs[i]))
			l.logger.Warn("Skipped unreadable source", "source", files[i], "error", errs[i])
			continue
		}
		kept = append(kept, src)
	}
	return kept, failures, nil
}

func readFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rgerrors.New(rgerrors.SourceUnreadable, "cannot open "+path, err).
			WithDetails(map[string]string{"source": path})
	}
	defer f.Close()

	src, err := Decode(f, path)
	if err != nil {
		return nil, rgerrors.New(rgerrors.SourceUnreadable, "cannot decode "+path, err).
			WithDetails(map[string]string{"source": path})
	}
	return src, nil
}

func sourceFailure(name string, err error) Failure {
	if rgerrors.CodeOf(err) == "" {
		err = rgerrors.New(rgerrors.SourceUnreadable, "cannot decode "+name, err)
	}
	return Failure{Source: name, Err: err, Message: err.Error()}
}

func (l *Loader) apply(ctx context.Context, target Target, sources []*Source, res *Result) error {
	for _, src := range sources {
		applied := 0
		for _, cmd := range src.Commands {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := target.AddCommand(cmd.Text); err != nil {
				f := Failure{
					Source:  src.Name,
					Line:    cmd.Line,
					Index:   cmd.Index,
					Command: cmd.Text,
					Err:     err,
					Message: err.Error(),
				}
				if l.opts.StopOnError {
					return f
				}
				res.Failures = append(res.Failures, f)
				l.logger.Warn("Command failed", "source", src.Name, "line", cmd.Line, "command", cmd.Text, "error", err)
				continue
			}
			applied++
		}
		res.Applied += applied
		l.logger.Info("Loaded source", "source", src.Name, "applied", applied, "commands", len(src.Commands))
	}
	return nil
}

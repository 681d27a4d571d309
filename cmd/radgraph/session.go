package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"radgraph/internal/batch"
	"radgraph/internal/config"
	rgerrors "radgraph/internal/errors"
	"radgraph/internal/graph"
	"radgraph/internal/paths"
	"radgraph/internal/slogutil"
)

// session is the state shared by every command: settings, logger and the
// graph built from the --load sources.
type session struct {
	base   string
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
	graph  *graph.Graph
	loaded *batch.Result
}

// mustOpenSession loads config, sets up logging and applies --load sources.
func mustOpenSession(ctx context.Context) *session {
	s, err := openSession(ctx, os.Stdin, os.Stderr)
	if err != nil {
		fail(err)
	}
	return s
}

func openSession(ctx context.Context, stdin io.Reader, stderr io.Writer) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	base, err := paths.FindBase(cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := loadSettings(base)
	if err != nil {
		return nil, err
	}

	logger, closer, err := newLogger(cfg, stderr)
	if err != nil {
		return nil, err
	}

	s := &session{
		base:   base,
		cfg:    cfg,
		logger: logger,
		closer: closer,
		graph: graph.New(graph.Options{
			MaxPermutations: cfg.Canonical.MaxPermutations,
			Logger:          logger,
		}),
	}
	if len(loadFlags) == 0 {
		return s, nil
	}

	res, err := s.load(ctx, stdin, loadFlags...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.loaded = res
	for _, f := range res.Failures {
		fmt.Fprintf(stderr, "Warning: %s\n", f.Error())
	}
	return s, nil
}

// loadSettings reads --config if given, otherwise the nearest
// .radgraph/config.toml, and validates the result.
func loadSettings(base string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFlag != "" {
		path, perr := paths.ExpandHome(configFlag)
		if perr != nil {
			return nil, perr
		}
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadConfig(base)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to stderr at the -v/-q level and, when logging.file is
// set, to that file at logging.level.
func newLogger(cfg *config.Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	opts := slogutil.Options{
		Level:      slogutil.LevelFromVerbosity(verboseCount, quietFlag),
		Format:     cfg.Logging.Format,
		FileLevel:  slogutil.LevelFromString(cfg.Logging.Level),
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	if cfg.Logging.File != "" {
		path, err := paths.ExpandHome(cfg.Logging.File)
		if err != nil {
			return nil, nil, err
		}
		opts.File = path
	}
	return slogutil.Setup(stderr, opts)
}

// load applies command sources in order; "-" reads standard input.
func (s *session) load(ctx context.Context, stdin io.Reader, sources ...string) (*batch.Result, error) {
	loader := batch.NewLoader(batch.Options{
		StopOnError: s.cfg.Batch.StopOnError,
		Workers:     s.cfg.Batch.Workers,
		Logger:      s.logger,
	})

	total := &batch.Result{}
	var files []string
	flush := func() error {
		if len(files) == 0 {
			return nil
		}
		res, err := loader.LoadFiles(ctx, s.graph, files...)
		if err != nil {
			return err
		}
		merge(total, res)
		files = nil
		return nil
	}

	for _, src := range sources {
		if src != "-" {
			path, err := paths.ExpandHome(src)
			if err != nil {
				return nil, err
			}
			files = append(files, path)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		res, err := loader.LoadReader(ctx, s.graph, stdin, "stdin")
		if err != nil {
			return nil, err
		}
		merge(total, res)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return total, nil
}

func merge(into, from *batch.Result) {
	into.Sources += from.Sources
	into.Applied += from.Applied
	into.Failures = append(into.Failures, from.Failures...)
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// newContext returns a context cancelled by Ctrl-C.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// fail prints err with any suggested fixes and exits.
func fail(err error) {
	fmt.Fprintln(os.Stderr, describeError(err))
	os.Exit(1)
}

func describeError(err error) string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(err.Error())
	for _, fix := range rgerrors.GetSuggestedFixes(rgerrors.CodeOf(err)) {
		b.WriteString("\n  hint: ")
		b.WriteString(fix.Description)
		if fix.Command != "" {
			b.WriteString("\n    $ ")
			b.WriteString(fix.Command)
		}
	}
	return b.String()
}

// render formats resp with --format and writes it to stdout.
func render(resp interface{}) {
	out, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		fail(err)
	}
	fmt.Println(out)
}

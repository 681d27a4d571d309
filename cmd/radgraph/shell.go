package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	rgerrors "radgraph/internal/errors"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session",
	Long: `Start an interactive session on the graph built from --load sources.

Type help at the prompt for the list of commands. A bare command such as
A2W2N5-45 is the same as add A2W2N5-45.`,
	Args: cobra.NoArgs,
	Run:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const shellHelp = `Commands (case-insensitive):
  add CMD...         store values, e.g. add A2W2N5-45 (the word add is optional)
  delete KEY...      clear values, e.g. delete A2W2N5
  find CMD           check that a coordinate holds a value
  display [KEY]      list populated nodes, or one node and its neighbors
  size               node counts and graph shape
  clusters [N]       groups joined by links of at most N steps
  histogram          value frequencies
  load FILE...       apply command files
  help               this text
  exit               leave the shell`

type shell struct {
	sess   *session
	in     io.Reader
	out    io.Writer
	format OutputFormat
	prompt string
}

func runShell(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	sh := &shell{sess: s, in: cmd.InOrStdin(), out: cmd.OutOrStdout(), format: OutputFormat(formatFlag), prompt: "radgraph> "}
	if err := sh.run(ctx); err != nil {
		fail(err)
	}
}

// run reads commands until exit, end of input or cancellation.
func (sh *shell) run(ctx context.Context) error {
	sc := bufio.NewScanner(sh.in)
	fmt.Fprintf(sh.out, "radgraph shell, %d nodes. Type help for commands.\n", sh.sess.graph.Size())
	for {
		fmt.Fprint(sh.out, sh.prompt)
		if !sc.Scan() {
			fmt.Fprintln(sh.out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		if quit := sh.exec(ctx, sc.Text()); quit {
			return nil
		}
	}
}

// exec runs one input line and reports whether the shell should exit.
func (sh *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	var (
		resp interface{}
		err  error
	)
	switch verb {
	case "exit", "quit", "q":
		return true
	case "help", "?", "h":
		fmt.Fprintln(sh.out, shellHelp)
		return false
	case "add", "a":
		if len(args) == 0 {
			err = usage("add CMD...")
			break
		}
		resp = applyAdds(sh.sess.graph, args)
	case "delete", "remove", "del", "d":
		if len(args) == 0 {
			err = usage("delete KEY...")
			break
		}
		resp = applyRemoves(sh.sess.graph, args)
	case "find", "f":
		if len(args) != 1 {
			err = usage("find CMD")
			break
		}
		resp, err = findOne(sh.sess.graph, args[0])
	case "display", "list", "ls":
		resp, err = sh.display(args)
	case "size", "stats":
		resp = buildStats(sh.sess.graph, nil)
	case "clusters", "c":
		resp, err = sh.clusters(args)
	case "histogram", "hist":
		resp = buildHistogram(sh.sess.graph)
	case "load":
		resp, err = sh.load(ctx, args)
	default:
		// A bare coordinate command.
		resp = applyAdds(sh.sess.graph, fields)
	}

	if err != nil {
		fmt.Fprintln(sh.out, describeError(err))
		return false
	}
	out, err := FormatResponse(resp, sh.format)
	if err != nil {
		fmt.Fprintln(sh.out, describeError(err))
		return false
	}
	fmt.Fprintln(sh.out, out)
	return false
}

func (sh *shell) display(args []string) (interface{}, error) {
	g := sh.sess.graph
	switch len(args) {
	case 0:
		return listNodes(g, false, false), nil
	case 1:
		return lookupNode(g, args[0])
	default:
		return nil, usage("display [KEY]")
	}
}

func (sh *shell) clusters(args []string) (interface{}, error) {
	threshold := sh.sess.cfg.Cluster.DefaultThreshold
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, rgerrors.New(rgerrors.InvalidThreshold, "threshold must be a number", err)
		}
		threshold = n
	default:
		return nil, usage("clusters [N]")
	}
	return findClusters(sh.sess.graph, threshold)
}

func (sh *shell) load(ctx context.Context, args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, usage("load FILE...")
	}
	for _, a := range args {
		if a == "-" {
			return nil, fmt.Errorf("cannot load standard input from the shell")
		}
	}
	res, err := sh.sess.load(ctx, nil, args...)
	if err != nil {
		return nil, err
	}
	for _, f := range res.Failures {
		fmt.Fprintf(sh.out, "Warning: %s\n", f.Error())
	}
	return buildStats(sh.sess.graph, res), nil
}

func usage(form string) error {
	return fmt.Errorf("usage: %s", form)
}

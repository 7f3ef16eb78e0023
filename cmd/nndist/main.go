// Package main provides the nndist command, which prints the running sum of
// nearest-neighbor distances for a stream of integer positions.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/felixge/fgprof"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/npillmayer/neighbors/session"
)

// Exit codes.
const (
	exitFailure        = 1
	exitMalformedInput = 2
)

// options collects the command line flags.
type options struct {
	configPath string
	inputPath  string
	seeding    string
	sentinel   int64
	verify     bool
	flushLines int
	stats      bool
	trace      string
	noColor    bool
	profile    string
	dot        string
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "nndist",
		Short: "Running sum of nearest-neighbor distances",
		Long: `nndist reads a count n followed by n integer positions from standard
input (or --input) and prints, after every position, the sum over all
positions seen so far of the distance to their nearest neighbor.

The set of positions starts with a sentinel at 0 unless --seeding=empty.

Examples:
  printf '4\n5\n3\n100\n3\n' | nndist
  nndist --input positions.txt --stats
  nndist --seeding empty --verify < positions.txt
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default .nndist.yaml in working or home directory)")
	flags.StringVarP(&opts.inputPath, "input", "i", "", "read positions from file instead of standard input")
	flags.StringVar(&opts.seeding, "seeding", session.DefaultSeeding, `seeding convention, "sentinel" or "empty"`)
	flags.Int64Var(&opts.sentinel, "sentinel", session.DefaultSentinel, "position of the sentinel member")
	flags.BoolVar(&opts.verify, "verify", false, "cross-check the running total after every insertion")
	flags.IntVar(&opts.flushLines, "flush-lines", session.DefaultFlushLines, "number of output lines buffered between writes")
	flags.BoolVar(&opts.stats, "stats", false, "print insertion statistics to standard error")
	flags.StringVar(&opts.trace, "trace", session.DefaultTrace, `trace level, "error", "info" or "debug"`)
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored error output")
	flags.StringVar(&opts.profile, "profile", "", "write a wall-clock profile in pprof format to file")
	flags.StringVar(&opts.dot, "dot", "", "write the final tree in Graphviz DOT format to file")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	if opts.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}
	cfg, err := session.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(cfg.TraceLevel())

	in, closeInput, err := openInput(cmd, opts.inputPath)
	if err != nil {
		return err
	}
	defer closeInput()

	if opts.profile != "" {
		stop, err := startProfile(opts.profile)
		if err != nil {
			return err
		}
		defer func() {
			if err := stop(); err != nil {
				gtrace.CoreTracer.Errorf("nndist: profile: %v", err)
			}
		}()
	}

	s, err := session.New(*cfg)
	if err != nil {
		return err
	}
	res, runErr := s.Run(in, cmd.OutOrStdout())
	if st := s.Stats(); st != nil {
		if err := st.Report(cmd.ErrOrStderr(), res); err != nil {
			gtrace.CoreTracer.Errorf("nndist: stats report: %v", err)
		}
	}
	if opts.dot != "" {
		if err := writeDot(opts.dot, s); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, opts options, cfg *session.Config) {
	flags := cmd.Flags()
	if flags.Changed("seeding") {
		cfg.Seeding = opts.seeding
	}
	if flags.Changed("sentinel") {
		cfg.Sentinel = opts.sentinel
	}
	if flags.Changed("verify") {
		cfg.Verify = opts.verify
	}
	if flags.Changed("flush-lines") {
		cfg.FlushLines = opts.flushLines
	}
	if flags.Changed("stats") {
		cfg.Stats = opts.stats
	}
	if flags.Changed("trace") {
		cfg.Trace = opts.trace
	}
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// minProfileTime spans two periods of the 99 Hz wall-clock sampler. A
// profile without samples cannot be exported.
const minProfileTime = 2 * time.Second / 99

func startProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	start := time.Now()
	stop := fgprof.Start(f, fgprof.FormatPprof)
	return func() (err error) {
		if wait := minProfileTime - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("export profile: %v", r)
			}
			err = errors.Join(err, f.Close())
		}()
		return stop()
	}, nil
}

func writeDot(path string, s *session.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dot file: %w", err)
	}
	if err := s.Set().Dot(f); err != nil {
		f.Close()
		return fmt.Errorf("write dot file: %w", err)
	}
	return f.Close()
}

func reportError(w *os.File, err error) {
	if !term.IsTerminal(int(w.Fd())) {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

func exitCode(err error) int {
	if errors.Is(err, session.ErrMalformedInput) {
		return exitMalformedInput
	}
	return exitFailure
}

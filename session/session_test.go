package session

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/neighbors"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceTo(t *testing.T, level tracing.TraceLevel) {
	t.Helper()
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	t.Cleanup(teardown)
	gtrace.CoreTracer.SetTraceLevel(level)
}

func run(t *testing.T, cfg Config, input string) (string, Result, error) {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	res, err := s.Run(strings.NewReader(input), &out)
	return out.String(), res, err
}

func TestRunScenario(t *testing.T) {
	traceTo(t, tracing.LevelDebug)
	out, res, err := run(t, DefaultConfig(), "4\n5\n3\n100\n3\n")
	require.NoError(t, err)
	assert.Equal(t, "10\n7\n102\n102\n", out)
	assert.Equal(t, Result{
		Insertions: 4,
		Duplicates: 1,
		Members:    4,
		Height:     1,
		Total:      102,
	}, res)
}

func TestRunTokensOnOneLine(t *testing.T) {
	traceTo(t, tracing.LevelError)
	out, _, err := run(t, DefaultConfig(), "4 5 3\t100   3")
	require.NoError(t, err)
	assert.Equal(t, "10\n7\n102\n102\n", out)
}

func TestRunEmptySession(t *testing.T) {
	traceTo(t, tracing.LevelError)
	out, res, err := run(t, DefaultConfig(), "0\n")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 1, res.Members)
	assert.Zero(t, res.Total)
}

func TestRunEmptySeeding(t *testing.T) {
	traceTo(t, tracing.LevelError)
	cfg := DefaultConfig()
	cfg.Seeding = SeedEmpty
	out, res, err := run(t, cfg, "4\n5\n3\n100\n3\n")
	require.NoError(t, err)
	assert.Equal(t, "0\n4\n99\n99\n", out)
	assert.Equal(t, 3, res.Members)
}

func TestRunCustomSentinel(t *testing.T) {
	traceTo(t, tracing.LevelError)
	cfg := DefaultConfig()
	cfg.Sentinel = 10
	out, _, err := run(t, cfg, "2\n4\n10\n")
	require.NoError(t, err)
	assert.Equal(t, "12\n12\n", out)
}

func TestRunMalformedInput(t *testing.T) {
	traceTo(t, tracing.LevelError)
	tests := []struct {
		name  string
		input string
		out   string
		msg   string
	}{
		{"empty input", "", "", "missing session size"},
		{"blank input", "  \n\t", "", "missing session size"},
		{"size not a number", "four\n5\n", "", `token 1 "four"`},
		{"negative size", "-1\n", "", "negative session size"},
		{"position not a number", "3\n5\nabc\n7\n", "10\n", `token 3 "abc"`},
		{"fractional position", "2\n5\n3.5\n", "10\n", `token 3 "3.5"`},
		{"missing positions", "3\n5\n3\n", "10\n7\n", "input ended after 2"},
		{"trailing token", "1\n5\n6\n", "10\n", "trailing token 3"},
		{"position out of range", "2\n5\n1000000000001\n", "10\n", "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, DefaultConfig(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, tt.out, out)
		})
	}
}

func TestRunVerify(t *testing.T) {
	traceTo(t, tracing.LevelError)
	cfg := DefaultConfig()
	cfg.Verify = true
	var input strings.Builder
	const n = 500
	fmt.Fprintf(&input, "%d\n", n)
	for i := range n {
		fmt.Fprintf(&input, "%d\n", (i*7919)%1009-500)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	res, err := s.Run(strings.NewReader(input.String()), &out)
	require.NoError(t, err)
	assert.Equal(t, n, res.Insertions)
	assert.Equal(t, n, strings.Count(out.String(), "\n"))
	require.NoError(t, s.Set().Check())
	assert.Equal(t, s.Set().Total(), res.Total)
	assert.Greater(t, res.Height, 1)
}

func TestRunLargeCoordinates(t *testing.T) {
	traceTo(t, tracing.LevelError)
	cfg := DefaultConfig()
	cfg.Seeding = SeedEmpty
	out, _, err := run(t, cfg, "3\n-1000000000000\n1000000000000\n0\n")
	require.NoError(t, err)
	assert.Equal(t, "0\n4000000000000\n3000000000000\n", out)
}

// countingWriter counts the writes it receives.
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.writes++
	return cw.Buffer.Write(p)
}

func TestRunFlushesInBatches(t *testing.T) {
	traceTo(t, tracing.LevelError)
	cfg := DefaultConfig()
	cfg.FlushLines = 2
	s, err := New(cfg)
	require.NoError(t, err)
	var out countingWriter
	_, err = s.Run(strings.NewReader("5\n1\n2\n3\n4\n5\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.writes)
	assert.Equal(t, "2\n3\n4\n5\n6\n", out.String())
}

var errBrokenPipe = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errBrokenPipe
}

func TestRunReportsWriteErrors(t *testing.T) {
	traceTo(t, tracing.LevelError)
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	_, err = s.Run(strings.NewReader("2\n1\n2\n"), failingWriter{})
	require.ErrorIs(t, err, errBrokenPipe)
	assert.NotErrorIs(t, err, ErrMalformedInput)
}

func TestRunKeepsMalformedErrorOverWriteError(t *testing.T) {
	traceTo(t, tracing.LevelError)
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	_, err = s.Run(strings.NewReader("2\n1\n"), failingWriter{})
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	traceTo(t, tracing.LevelError)
	cfg := DefaultConfig()
	cfg.Seeding = "random"
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStatsReport(t *testing.T) {
	traceTo(t, tracing.LevelError)
	cfg := DefaultConfig()
	cfg.Stats = true
	s, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, s.Stats())
	var input strings.Builder
	input.WriteString("2001\n")
	for i := range 2000 {
		fmt.Fprintf(&input, "%d\n", (i+1)*3)
	}
	input.WriteString("3\n")
	res, err := s.Run(strings.NewReader(input.String()), &bytes.Buffer{})
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 2001, st.Insertions())
	assert.Equal(t, 1, st.Duplicates())
	assert.LessOrEqual(t, st.Latency(50), st.Latency(99))

	var report bytes.Buffer
	require.NoError(t, st.Report(&report, res))
	text := report.String()
	for _, want := range []string{"insertions", "2,001", "duplicates", "members", "tree height", "p99 insert", "max insert"} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, text, fmt.Sprintf("%d", res.Height))
}

func TestStatsDisabledByDefault(t *testing.T) {
	traceTo(t, tracing.LevelError)
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, s.Stats())
}

func TestSessionSetIsQueryable(t *testing.T) {
	traceTo(t, tracing.LevelError)
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	_, err = s.Run(strings.NewReader("3\n5\n3\n100\n"), &bytes.Buffer{})
	require.NoError(t, err)
	var set *neighbors.Set = s.Set()
	assert.Equal(t, []int64{0, 3, 5, 100}, set.Members())
	d, ok := set.Distance(100)
	require.True(t, ok)
	assert.EqualValues(t, 95, d)
}

package session

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Stats records the latency of every insertion of a session.
type Stats struct {
	hist       *hdrhistogram.Histogram
	insertions int
	duplicates int
}

// NewStats creates an empty statistics recorder for latencies between 1ns
// and 1s.
func NewStats() *Stats {
	return &Stats{
		hist: hdrhistogram.New(1, int64(time.Second), 3),
	}
}

func (st *Stats) record(d time.Duration, added bool) {
	st.insertions++
	if !added {
		st.duplicates++
	}
	if err := st.hist.RecordValue(max(int64(d), 1)); err != nil {
		tracer().Debugf("session: latency %v not recorded: %v", d, err)
	}
}

// Insertions returns the number of recorded insertions, duplicates included.
func (st *Stats) Insertions() int { return st.insertions }

// Duplicates returns the number of recorded insertions of present positions.
func (st *Stats) Duplicates() int { return st.duplicates }

// Latency returns the insertion latency at quantile q, with q in [0, 100].
func (st *Stats) Latency(q float64) time.Duration {
	return time.Duration(st.hist.ValueAtQuantile(q))
}

// Report renders the statistics of a finished session as a table.
func (st *Stats) Report(w io.Writer, res Result) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"metric", "value"})
	tbl.AppendRows([]table.Row{
		{"insertions", humanize.Comma(int64(st.insertions))},
		{"duplicates", humanize.Comma(int64(st.duplicates))},
		{"members", humanize.Comma(int64(res.Members))},
		{"tree height", res.Height},
		{"total", humanize.Comma(res.Total)},
	})
	tbl.AppendSeparator()
	for _, q := range []float64{50, 90, 99} {
		tbl.AppendRow(table.Row{fmt.Sprintf("p%g insert", q), st.Latency(q).String()})
	}
	tbl.AppendRow(table.Row{"max insert", time.Duration(st.hist.Max()).String()})
	_, err := io.WriteString(w, tbl.Render()+"\n")
	return err
}

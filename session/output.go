package session

import (
	"fmt"
	"io"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// lineWriter collects totals, one per line, in a pooled buffer and hands
// them to the underlying writer every limit lines.
type lineWriter struct {
	w     io.Writer
	buf   *bytebufferpool.ByteBuffer
	lines int
	limit int
}

func newLineWriter(w io.Writer, limit int) *lineWriter {
	return &lineWriter{
		w:     w,
		buf:   bytebufferpool.Get(),
		limit: limit,
	}
}

func (lw *lineWriter) writeTotal(total int64) error {
	lw.buf.B = strconv.AppendInt(lw.buf.B, total, 10)
	lw.buf.B = append(lw.buf.B, '\n')
	lw.lines++
	if lw.lines >= lw.limit {
		return lw.flush()
	}
	return nil
}

func (lw *lineWriter) flush() error {
	if lw.buf.Len() == 0 {
		return nil
	}
	_, err := lw.buf.WriteTo(lw.w)
	lw.buf.Reset()
	lw.lines = 0
	if err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	return nil
}

// release returns the buffer to the pool. The writer must not be used
// afterwards.
func (lw *lineWriter) release() {
	if lw.buf != nil {
		bytebufferpool.Put(lw.buf)
		lw.buf = nil
	}
}

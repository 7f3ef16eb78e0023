package session

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// maxTokenSize bounds the length of a single input token.
const maxTokenSize = 64 * 1024

// tokenReader splits input into white-space separated integer tokens.
type tokenReader struct {
	scanner *bufio.Scanner
	index   int // number of tokens consumed so far
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner}
}

// next returns the next token as an integer. It returns io.EOF at the
// regular end of input.
func (tr *tokenReader) next() (int64, error) {
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return 0, fmt.Errorf("%w: token %d: %w", ErrMalformedInput, tr.index+1, err)
		}
		return 0, io.EOF
	}
	tr.index++
	text := tr.scanner.Text()
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d %q is not an integer", ErrMalformedInput, tr.index, text)
	}
	return v, nil
}

// position reads the next token and checks it against MaxCoordinate.
func (tr *tokenReader) position() (int64, error) {
	x, err := tr.next()
	if err != nil {
		return 0, err
	}
	if x > MaxCoordinate || x < -MaxCoordinate {
		return 0, fmt.Errorf("%w: token %d: position %d exceeds ±%d", ErrMalformedInput, tr.index, x, int64(MaxCoordinate))
	}
	return x, nil
}

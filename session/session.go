package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/npillmayer/neighbors"
)

// Result describes a finished or aborted session.
type Result struct {
	Insertions int   // positions processed, duplicates included
	Duplicates int   // positions which were already members
	Members    int   // size of the set, sentinel included
	Height     int   // height of the underlying tree
	Total      int64 // final running total
}

// Session feeds a stream of positions into one neighbors.Set.
//
// A Session is single-use and not safe for concurrent use.
type Session struct {
	cfg   Config
	set   *neighbors.Set
	stats *Stats
}

// New creates a session for a validated configuration.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var opts []neighbors.Option
	if cfg.Seeding == SeedSentinel {
		opts = append(opts, neighbors.WithSentinel(cfg.Sentinel))
	}
	set, err := neighbors.New(opts...)
	if err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, set: set}
	if cfg.Stats {
		s.stats = NewStats()
	}
	return s, nil
}

// Set returns the set maintained by the session.
func (s *Session) Set() *neighbors.Set {
	return s.set
}

// Stats returns the insertion statistics, or nil if not enabled.
func (s *Session) Stats() *Stats {
	return s.stats
}

// Run reads the session size and positions from r and writes one running
// total per position to w.
//
// Malformed, missing or trailing tokens end the session with
// ErrMalformedInput. Totals for all positions before the offending token are
// written before Run returns.
func (s *Session) Run(r io.Reader, w io.Writer) (Result, error) {
	tokens := newTokenReader(r)
	out := newLineWriter(w, s.cfg.FlushLines)
	defer out.release()

	n, err := tokens.next()
	switch {
	case errors.Is(err, io.EOF):
		return s.finish(Result{}, out, fmt.Errorf("%w: missing session size", ErrMalformedInput))
	case err != nil:
		return s.finish(Result{}, out, err)
	case n < 0:
		return s.finish(Result{}, out, fmt.Errorf("%w: negative session size %d", ErrMalformedInput, n))
	}
	tracer().Infof("session: %d positions announced", n)

	var res Result
	for i := int64(0); i < n; i++ {
		x, err := tokens.position()
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: expected %d positions, input ended after %d", ErrMalformedInput, n, i)
		}
		if err != nil {
			return s.finish(res, out, err)
		}
		total, added, err := s.insert(x)
		if err != nil {
			return s.finish(res, out, fmt.Errorf("position %d: %w", i+1, err))
		}
		res.Insertions++
		if !added {
			res.Duplicates++
		}
		if s.cfg.Verify {
			if err := s.set.Check(); err != nil {
				return s.finish(res, out, fmt.Errorf("position %d (%d): %w", i+1, x, err))
			}
		}
		if err := out.writeTotal(total); err != nil {
			return s.finish(res, out, err)
		}
	}
	switch _, err := tokens.next(); {
	case err == nil:
		err = fmt.Errorf("%w: trailing token %d after %d positions", ErrMalformedInput, tokens.index, n)
		return s.finish(res, out, err)
	case !errors.Is(err, io.EOF):
		return s.finish(res, out, err)
	}
	return s.finish(res, out, nil)
}

func (s *Session) insert(x int64) (int64, bool, error) {
	if s.stats == nil {
		return s.set.Insert(x)
	}
	start := time.Now()
	total, added, err := s.set.Insert(x)
	if err == nil {
		s.stats.record(time.Since(start), added)
	}
	return total, added, err
}

// finish flushes pending output and completes the result. A flush error is
// reported only if the session did not already fail.
func (s *Session) finish(res Result, out *lineWriter, cause error) (Result, error) {
	res.Members = s.set.Len()
	res.Height = s.set.Height()
	res.Total = s.set.Total()
	if err := out.flush(); err != nil && cause == nil {
		cause = err
	}
	if cause != nil {
		tracer().Errorf("session: aborted after %d positions: %v", res.Insertions, cause)
		return res, cause
	}
	tracer().Infof("session: %d positions, %d duplicates, total %d", res.Insertions, res.Duplicates, res.Total)
	return res, nil
}

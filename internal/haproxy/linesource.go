package haproxy

import (
	"bytes"
	"context"
	"strings"
)

// LineSource yields the lines of one socket response, in the manner of
// bufio.Scanner. It stops at the prompt; lines past the cap are read and
// dropped.
type LineSource struct {
	ctx context.Context
	c   *Client
	cmd string
	max int

	line      string
	seen      int
	done      bool
	truncated bool
	err       error
}

func newLineSource(ctx context.Context, c *Client, max int, cmd string) *LineSource {
	return &LineSource{ctx: ctx, c: c, max: max, cmd: cmd}
}

// Scan advances to the next line. It returns false at the prompt or on error.
func (s *LineSource) Scan() bool {
	if s.done {
		return false
	}
	c := s.c
	for {
		if i := bytes.IndexByte(c.buf, '\n'); i >= 0 {
			line := strings.TrimSuffix(string(c.buf[:i]), "\r")
			c.buf = c.buf[i+1:]
			s.seen++
			if s.seen <= s.max {
				s.line = line
				return true
			}
			if !s.truncated && s.max > 0 {
				s.truncated = true
				c.log.Warn("response to %q exceeds %d lines, discarding the rest", s.cmd, s.max)
			}
			continue
		}

		if string(c.buf) == Prompt {
			c.buf = c.buf[:0]
			c.desync = false
			s.finish(nil)
			return false
		}

		if c.conn == nil {
			s.finish(nil)
			return false
		}
		if err := c.fill(s.ctx); err != nil {
			s.finish(err)
			return false
		}
	}
}

func (s *LineSource) finish(err error) {
	s.done = true
	s.err = err
	s.line = ""
	if s.c.active == s {
		s.c.active = nil
	}
	if err != nil {
		s.c.log.Warn("reading response to %q: %v", s.cmd, err)
	}
}

// Text returns the most recent line produced by Scan.
func (s *LineSource) Text() string {
	return s.line
}

// Err returns the error that ended the response early, if any.
func (s *LineSource) Err() error {
	return s.err
}

// Truncated reports whether lines were dropped because of the line cap.
func (s *LineSource) Truncated() bool {
	return s.truncated
}

// Lines returns how many lines the response contained so far, including
// dropped ones.
func (s *LineSource) Lines() int {
	return s.seen
}

// Drain discards the remainder of the response.
func (s *LineSource) Drain() error {
	s.max = 0
	for s.Scan() {
	}
	return s.err
}

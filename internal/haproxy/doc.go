// Package haproxy talks to the haproxy stats socket.
//
// The socket is put into interactive mode ("prompt") during Open, after
// which every response ends with the "> " prompt. Request returns a
// LineSource that yields response lines lazily and stops at the prompt, so
// callers can parse large "show stat" outputs without buffering them.
//
// Responses are bounded in two ways: a line cap (excess lines are read and
// dropped) and a per-read timeout. A response abandoned because of a timeout
// leaves the connection out of sync; the next Request drains to the prompt
// before sending.
package haproxy

package haproxy

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/logger"
)

// Prompt is what haproxy prints after every response once interactive mode is on.
const Prompt = "> "

// Stats socket commands.
const (
	CmdPrompt     = "prompt"
	CmdSetTimeout = "set timeout cli %d"
	CmdQuit       = "quit"
	CmdShowInfo   = "show info"
	CmdShowStat   = "show stat"
)

// Defaults for Options fields left at zero.
const (
	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 10 * time.Second
	DefaultCLITimeout  = 60 * time.Second
	DefaultMaxLines    = 10000

	// readChunk is the size of a single socket read.
	readChunk = 4096
	// maxPending bounds the bytes buffered while waiting for a line break.
	maxPending = 1 << 20

	quitTimeout = 500 * time.Millisecond
)

// Options tunes a Client.
type Options struct {
	DialTimeout time.Duration
	// ReadTimeout bounds every individual read while waiting for output.
	ReadTimeout time.Duration
	// CLITimeout is requested from haproxy with "set timeout cli".
	CLITimeout time.Duration
	// MaxLines caps how many lines a single response yields; the rest is
	// read and discarded so the connection stays in sync.
	MaxLines int
	Logger   logger.Logger
	// Dial overrides the transport, mainly for tests.
	Dial DialFunc
}

func (o Options) withDefaults() Options {
	if o.DialTimeout <= 0 {
		o.DialTimeout = DefaultDialTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	if o.CLITimeout <= 0 {
		o.CLITimeout = DefaultCLITimeout
	}
	if o.MaxLines <= 0 {
		o.MaxLines = DefaultMaxLines
	}
	if o.Logger == nil {
		o.Logger = logger.Noop()
	}
	if o.Dial == nil {
		o.Dial = telnetDial
	}
	return o
}

// Client is a connection to the haproxy stats socket in interactive mode.
// A Client serves one request at a time and is not safe for concurrent use.
type Client struct {
	addr string
	conn net.Conn
	opts Options
	log  logger.Logger

	buf   []byte // received but not yet consumed
	chunk []byte

	active *LineSource
	// desync is set when a response was abandoned before its prompt arrived.
	desync bool
	// interrupted is set by Interrupt; reads fail fast from then on.
	interrupted atomic.Bool
}

// Open connects to the stats socket at addr and switches it to interactive
// mode so that each response is terminated by Prompt.
func Open(ctx context.Context, addr string, opts Options) (*Client, error) {
	opts = opts.withDefaults()
	network, address := ParseAddress(addr)

	if network == "unix" {
		if _, err := os.Stat(address); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSocket,
				fmt.Sprintf("Stats socket %s is not reachable", address),
				"Check that haproxy is running and the 'stats socket' path in haproxy.cfg")
		}
	}

	timeout := opts.DialTimeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}

	conn, err := opts.Dial(network, address, timeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSocket,
			fmt.Sprintf("Couldn't connect to %s", addr),
			"Check the socket address and that your user can access it")
	}

	c := &Client{
		addr:  addr,
		conn:  conn,
		opts:  opts,
		log:   opts.Logger,
		chunk: make([]byte, readChunk),
	}

	if err := c.handshake(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.log.Info("connected to %s", addr)
	return c, nil
}

func (c *Client) handshake(ctx context.Context) error {
	if err := c.send(CmdPrompt); err != nil {
		return err
	}
	if err := c.Wait(ctx); err != nil {
		return err
	}
	if err := c.send(fmt.Sprintf(CmdSetTimeout, int(c.opts.CLITimeout/time.Second))); err != nil {
		return err
	}
	return c.Wait(ctx)
}

// Addr returns the address the client was opened with.
func (c *Client) Addr() string {
	return c.addr
}

// Request sends cmd and returns a source yielding the response lines.
// The source must be read to the end (or left for the next Request, which
// drains it) before the connection can carry another command.
func (c *Client) Request(ctx context.Context, cmd string) (*LineSource, error) {
	if c.conn == nil {
		return nil, errors.New(errors.ErrSocket, "Stats socket connection is closed", "")
	}

	if c.active != nil {
		c.active.Drain()
	}
	if c.desync {
		c.log.Debug("resyncing before %q", cmd)
		if err := c.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if err := c.send(cmd); err != nil {
		return nil, err
	}

	src := newLineSource(ctx, c, c.opts.MaxLines, cmd)
	c.active = src
	return src, nil
}

// Wait discards output until the next prompt.
func (c *Client) Wait(ctx context.Context) error {
	if c.conn == nil {
		return errors.New(errors.ErrSocket, "Stats socket connection is closed", "")
	}
	src := newLineSource(ctx, c, 0, "")
	return src.Drain()
}

// Interrupt makes a read blocked in another goroutine return at once, so
// that Close doesn't wait out the read timeout. It is the only method that
// may be called concurrently with a request.
func (c *Client) Interrupt() {
	c.interrupted.Store(true)
	if conn := c.conn; conn != nil {
		_ = conn.SetReadDeadline(time.Now())
	}
}

// Close sends "quit" and closes the connection. Failures are logged and
// otherwise ignored; Close always returns nil.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(quitTimeout))
	if _, err := c.conn.Write([]byte(CmdQuit + "\n")); err != nil {
		c.log.Debug("quit: %v", err)
	}
	if err := c.conn.Close(); err != nil {
		c.log.Debug("close: %v", err)
	}
	c.conn = nil
	c.active = nil
	c.buf = nil
	c.log.Info("disconnected from %s", c.addr)
	return nil
}

func (c *Client) send(cmd string) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.ReadTimeout))
	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		return errors.WrapWithCode(err, errors.ErrSocket,
			fmt.Sprintf("Couldn't send %q to the stats socket", cmd),
			"haproxy may have been restarted; start hatop again")
	}
	c.log.Debug("sent %q", cmd)
	return nil
}

// fill reads the next chunk from the socket into the pending buffer.
func (c *Client) fill(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		c.desync = true
		return err
	}
	if len(c.buf) > maxPending {
		c.desync = true
		return errors.New(errors.ErrProtocol,
			fmt.Sprintf("Stats socket sent more than %d bytes without a line break", maxPending),
			"")
	}

	deadline := time.Now().Add(c.opts.ReadTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	conn := c.conn
	_ = conn.SetReadDeadline(deadline)
	if c.interrupted.Load() {
		c.desync = true
		return errInterrupted
	}

	// A cancel wakes the read up instead of waiting for the deadline.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetReadDeadline(time.Now()) })
	n, err := conn.Read(c.chunk)
	stop()
	if n > 0 {
		c.buf = append(c.buf, c.chunk[:n]...)
	}
	if err == nil {
		return nil
	}
	if n > 0 && !isTimeout(err) {
		// Hand over what arrived; the error resurfaces on the next read.
		return nil
	}

	c.desync = true
	switch {
	case stderrors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	case c.interrupted.Load():
		return errInterrupted
	case isTimeout(err):
		return errors.WrapWithCode(err, errors.ErrProtocol,
			fmt.Sprintf("No prompt from the stats socket within %s", c.opts.ReadTimeout),
			"haproxy may be overloaded; raise timeouts.read in the config and start hatop again")
	}
	return errors.WrapWithCode(err, errors.ErrSocket,
		"Lost connection to the stats socket",
		"haproxy may have been restarted; start hatop again")
}

var errInterrupted = errors.New(errors.ErrSocket, "Stats socket connection is closing", "")

func isTimeout(err error) bool {
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

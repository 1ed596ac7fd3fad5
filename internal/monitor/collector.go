package monitor

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/rileyhilliard/hatop/internal/haproxy"
	"github.com/rileyhilliard/hatop/internal/logger"
	"github.com/rileyhilliard/hatop/internal/stats"
)

// Conn is the stats socket connection the collector polls.
// *haproxy.Client implements it.
type Conn interface {
	Request(ctx context.Context, cmd string) (*haproxy.LineSource, error)
	Close() error
}

// Sample is the result of one poll.
type Sample struct {
	Info stats.Info
	Stat *stats.Snapshot
	// Stale is set when the stat response failed to parse and Stat is the
	// previous snapshot.
	Stale    bool
	ParseErr error
	Took     time.Duration
	At       time.Time
}

// Collector polls "show info" and "show stat" over one connection.
type Collector struct {
	conn        Conn
	maxServices int
	log         logger.Logger
	mu          sync.Mutex // one request at a time; also guards last
	last        *stats.Snapshot
	closed      bool
}

// NewCollector creates a collector on conn. maxServices caps the records
// materialized per snapshot (0 uses stats.DefaultMaxServices).
func NewCollector(conn Conn, maxServices int, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{conn: conn, maxServices: maxServices, log: log}
}

// Collect fetches info and stat strictly one after the other.
//
// Socket and protocol errors are returned. A stat response that fails to
// parse is logged and the previous snapshot is reported instead.
func (c *Collector) Collect(ctx context.Context) (*Sample, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()

	src, err := c.conn.Request(ctx, haproxy.CmdShowInfo)
	if err != nil {
		return nil, err
	}
	info, err := stats.ParseInfo(src)
	if err != nil {
		return nil, err
	}

	src, err = c.conn.Request(ctx, haproxy.CmdShowStat)
	if err != nil {
		return nil, err
	}
	snap, err := stats.ParseStat(src, c.maxServices)

	sample := &Sample{Info: info, Stat: snap, At: time.Now()}
	if err != nil {
		var perr *stats.ParseError
		if !stderrors.As(err, &perr) {
			return nil, err
		}
		// Keep the connection in sync before reporting.
		if derr := src.Drain(); derr != nil {
			return nil, derr
		}
		c.log.Warn("discarding stat sample: %v", perr)
		sample.Stat = c.last
		sample.Stale = true
		sample.ParseErr = perr
	} else {
		c.last = snap
	}

	sample.Took = time.Since(start)
	if src.Truncated() {
		c.log.Warn("stat response truncated after %d lines", src.Lines())
	}
	if sample.Stat != nil {
		c.log.Debug("poll took %s: %d proxies, %d services", sample.Took, sample.Stat.TotalProxies, sample.Stat.TotalServices)
	}
	return sample, nil
}

// Last returns the most recent successfully parsed snapshot.
func (c *Collector) Last() *stats.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// interrupter is implemented by connections whose blocked reads can be
// cut short from another goroutine.
type interrupter interface {
	Interrupt()
}

// Close cuts short an in-flight poll and closes the connection.
func (c *Collector) Close() {
	if i, ok := c.conn.(interrupter); ok {
		i.Interrupt()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.conn.Close()
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/haproxy"
	"github.com/rileyhilliard/hatop/internal/stats"
)

// runEmulate starts Emulate in the background and waits until it listens.
func runEmulate(t *testing.T, opts EmulateOptions) (stop func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	opts.Ready = ready

	go func() { done <- Emulate(ctx, opts) }()

	select {
	case <-ready:
	case err := <-done:
		cancel()
		t.Fatalf("emulate exited early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("emulate never started listening")
	}

	return func() error {
		cancel()
		return <-done
	}
}

func request(t *testing.T, addr, cmd string) *haproxy.LineSource {
	t.Helper()
	client, err := haproxy.Open(context.Background(), addr, haproxy.Options{ReadTimeout: 2 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	src, err := client.Request(context.Background(), cmd)
	require.NoError(t, err)
	return src
}

func TestEmulate_ServesDemo(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "demo.sock")
	var out bytes.Buffer
	stop := runEmulate(t, EmulateOptions{Socket: socket, Out: &out})

	snap, err := stats.ParseStat(request(t, socket, haproxy.CmdShowStat), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalProxies)
	assert.Equal(t, 10, snap.TotalServices)

	require.NoError(t, stop())
	assert.Contains(t, ansi.Strip(out.String()), "Emulating a stats socket at "+socket)
	assert.NoFileExists(t, socket)
}

func TestEmulate_ServesFiles(t *testing.T) {
	dir := t.TempDir()
	infoFile := filepath.Join(dir, "info.txt")
	statFile := filepath.Join(dir, "stat.csv")
	require.NoError(t, os.WriteFile(infoFile, []byte("Name: HAProxy\nnode: captured-lb\n"), 0o644))
	require.NoError(t, os.WriteFile(statFile, []byte(newDemoTopology(rand.New(rand.NewSource(3))).Stat()), 0o644))

	socket := filepath.Join(dir, "files.sock")
	stop := runEmulate(t, EmulateOptions{Socket: socket, InfoFile: infoFile, StatFile: statFile, Out: &bytes.Buffer{}})
	defer func() { assert.NoError(t, stop()) }()

	info, err := stats.ParseInfo(request(t, socket, haproxy.CmdShowInfo))
	require.NoError(t, err)
	assert.Equal(t, "captured-lb", info.Get(stats.InfoNode))
}

func TestEmulate_MissingFile(t *testing.T) {
	err := Emulate(context.Background(), EmulateOptions{
		Socket:   filepath.Join(t.TempDir(), "s.sock"),
		StatFile: filepath.Join(t.TempDir(), "missing.csv"),
		Out:      &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestDemoTopology_Advance(t *testing.T) {
	demo := newDemoTopology(rand.New(rand.NewSource(42)))
	app := demo.proxies[1]
	before := app.back.stot

	demo.Advance()

	assert.Greater(t, app.back.stot, before, "counters only move forward")
	var sum uint64
	for _, s := range app.servers {
		sum += s.stot
	}
	assert.Equal(t, sum, app.back.stot, "the backend totals its servers")
	assert.Equal(t, app.back.stot, app.front.stot)

	down := app.servers[3]
	assert.Equal(t, "DOWN", down.status)
	assert.Zero(t, down.rate)
	assert.Zero(t, down.stot)
}

func TestDemoTopology_StatParses(t *testing.T) {
	demo := newDemoTopology(rand.New(rand.NewSource(7)))

	snap, err := stats.ParseStat(bufio.NewScanner(strings.NewReader(demo.Stat())), 0)
	require.NoError(t, err)

	rec := snap.Lookup(2, stats.KeyBackend)
	require.NotNil(t, rec)
	assert.Equal(t, "app", rec.PxName)
	assert.Equal(t, demo.proxies[1].back.stot, rec.STot)
}

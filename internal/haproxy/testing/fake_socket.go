// Package testing provides a stats socket emulator for tests and demos.
package testing

import (
	"bufio"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/rileyhilliard/hatop/internal/haproxy"
	"github.com/rileyhilliard/hatop/internal/logger"
)

// FakeSocket emulates the haproxy stats socket on a unix socket path.
// Every response is followed by an empty line and the prompt, the way
// haproxy answers in interactive mode.
type FakeSocket struct {
	mu        sync.Mutex
	path      string
	ln        net.Listener
	responses map[string]string
	hold      chan struct{} // non-nil while the next prompt is withheld
	holding   bool
	closed    bool
	conns     map[net.Conn]struct{}
	wg        sync.WaitGroup
	log       logger.Logger

	// Tracking for assertions
	commands []string
}

// Listen starts a fake socket at path, replacing any stale socket file.
func Listen(path string) (*FakeSocket, error) {
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}

	f := &FakeSocket{
		path:      path,
		ln:        ln,
		responses: make(map[string]string),
		conns:     make(map[net.Conn]struct{}),
		log:       logger.Noop(),
	}
	f.wg.Add(1)
	go f.acceptLoop()
	return f, nil
}

// Path returns the socket path.
func (f *FakeSocket) Path() string {
	return f.path
}

// SetLogger makes the socket log every command it receives.
func (f *FakeSocket) SetLogger(l logger.Logger) *FakeSocket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = l
	return f
}

// SetInfo sets the payload answered to "show info".
func (f *FakeSocket) SetInfo(payload string) *FakeSocket {
	return f.SetResponse(haproxy.CmdShowInfo, payload)
}

// SetStat sets the payload answered to "show stat".
func (f *FakeSocket) SetStat(payload string) *FakeSocket {
	return f.SetResponse(haproxy.CmdShowStat, payload)
}

// SetResponse sets the payload answered to commands starting with cmd.
func (f *FakeSocket) SetResponse(cmd, payload string) *FakeSocket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = payload
	return f
}

// HoldPrompt withholds the prompt after the next response until Release.
func (f *FakeSocket) HoldPrompt() *FakeSocket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hold = make(chan struct{})
	f.holding = true
	return f
}

// Release sends the withheld prompt.
func (f *FakeSocket) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hold != nil {
		close(f.hold)
		f.hold = nil
	}
	f.holding = false
}

// Commands returns the commands received so far, in order.
func (f *FakeSocket) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.commands))
	copy(out, f.commands)
	return out
}

// Count returns how many times cmd was received.
func (f *FakeSocket) Count(cmd string) int {
	n := 0
	for _, c := range f.Commands() {
		if c == cmd {
			n++
		}
	}
	return n
}

// Close stops the listener, drops open connections, and removes the socket file.
func (f *FakeSocket) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	if f.hold != nil {
		close(f.hold)
		f.hold = nil
	}
	for c := range f.conns {
		_ = c.Close()
	}
	f.mu.Unlock()

	err := f.ln.Close()
	f.wg.Wait()
	_ = os.Remove(f.path)
	return err
}

func (f *FakeSocket) acceptLoop() {
	defer f.wg.Done()
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			_ = conn.Close()
			return
		}
		f.conns[conn] = struct{}{}
		f.mu.Unlock()

		f.wg.Add(1)
		go f.serve(conn)
	}
}

func (f *FakeSocket) serve(conn net.Conn) {
	defer f.wg.Done()
	defer func() {
		f.mu.Lock()
		delete(f.conns, conn)
		f.mu.Unlock()
		_ = conn.Close()
	}()

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd)
		log := f.log
		f.mu.Unlock()
		log.Debug("<<< %s", cmd)

		if cmd == haproxy.CmdQuit {
			return
		}

		payload := f.respond(cmd)
		if payload != "" && !strings.HasSuffix(payload, "\n") {
			payload += "\n"
		}
		if _, err := conn.Write([]byte(payload + "\n")); err != nil {
			return
		}

		f.mu.Lock()
		hold := f.hold
		holding := f.holding
		f.mu.Unlock()
		if holding && hold != nil {
			<-hold
		}

		if _, err := conn.Write([]byte(haproxy.Prompt)); err != nil {
			return
		}
	}
}

func (f *FakeSocket) respond(cmd string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case cmd == haproxy.CmdPrompt, strings.HasPrefix(cmd, "set timeout"):
		return ""
	}
	for prefix, payload := range f.responses {
		if strings.HasPrefix(cmd, prefix) {
			return payload
		}
	}
	return "Unknown command."
}

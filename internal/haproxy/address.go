package haproxy

import (
	"net"
	"strings"
	"time"

	"github.com/ziutek/telnet"
)

// DialFunc opens the transport to the stats socket.
type DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// ParseAddress splits a stats socket address into a dial network and address.
// Plain paths are unix sockets; haproxy-style "ipv4@host:port", "ipv6@..."
// and "tcp://host:port" select TCP.
func ParseAddress(s string) (network, address string) {
	for _, p := range []struct{ prefix, network string }{
		{"tcp://", "tcp"},
		{"ipv4@", "tcp4"},
		{"ipv6@", "tcp6"},
		{"unix://", "unix"},
		{"unix@", "unix"},
	} {
		if strings.HasPrefix(s, p.prefix) {
			return p.network, strings.TrimPrefix(s, p.prefix)
		}
	}
	return "unix", s
}

// IsUnix reports whether the address refers to a unix socket path.
func IsUnix(s string) bool {
	network, _ := ParseAddress(s)
	return network == "unix"
}

// telnetDial dials through the telnet connection wrapper, which strips any
// option negotiation a TCP-exposed socket proxy might inject.
func telnetDial(network, address string, timeout time.Duration) (net.Conn, error) {
	conn, err := telnet.DialTimeout(network, address, timeout)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

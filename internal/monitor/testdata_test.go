package monitor

import (
	"bufio"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hatop/internal/stats"
)

// row builds a "show stat" line. Unlisted numeric fields are zero.
func row(fields map[string]string) string {
	out := make([]string, stats.NumFields)
	for i, f := range stats.Schema {
		if v, ok := fields[f.Name]; ok {
			out[i] = v
			continue
		}
		if f.Type == stats.TypeInt {
			out[i] = "0"
		}
	}
	return strings.Join(out, stats.Separator)
}

func frontendRow(px string, iid int) string {
	return row(map[string]string{"pxname": px, "svname": "FRONTEND", "iid": fmt.Sprint(iid), "type": "0", "status": "OPEN"})
}

func backendRow(px string, iid int) string {
	return row(map[string]string{"pxname": px, "svname": "BACKEND", "iid": fmt.Sprint(iid), "type": "1", "status": "UP"})
}

func serverRow(px string, iid, sid int, name string) string {
	return row(map[string]string{
		"pxname": px, "svname": name, "iid": fmt.Sprint(iid), "sid": fmt.Sprint(sid),
		"type": "2", "status": "UP", "check_status": "L7OK", "weight": "1",
	})
}

// sampleStat is two proxies: a frontend-only one and a full one with
// three servers listed out of order.
func sampleStat() string {
	return strings.Join([]string{
		"# pxname,svname,...",
		backendRow("app", 2),
		serverRow("app", 2, 3, "web3"),
		frontendRow("app", 2),
		serverRow("app", 2, 1, "web1"),
		serverRow("app", 2, 2, "web2"),
		frontendRow("http-in", 1),
	}, "\n")
}

const sampleInfo = `Name: HAProxy
Version: 1.4.8
Release_date: 2010/06/16
Nbproc: 1
Process_num: 1
Pid: 4218
Uptime: 0d 3h12m41s
Maxconn: 2000
Maxpipes: 0
CurrConns: 12
PipesUsed: 0
Tasks: 330
Run_queue: 1
node: lb-01`

func parseSnapshot(t *testing.T, payload string) *stats.Snapshot {
	t.Helper()
	snap, err := stats.ParseStat(bufio.NewScanner(strings.NewReader(payload)), 0)
	require.NoError(t, err)
	return snap
}

func parseInfo(t *testing.T, payload string) stats.Info {
	t.Helper()
	info, err := stats.ParseInfo(bufio.NewScanner(strings.NewReader(payload)))
	require.NoError(t, err)
	return info
}

func sample(t *testing.T) *Sample {
	t.Helper()
	return &Sample{
		Info: parseInfo(t, sampleInfo),
		Stat: parseSnapshot(t, sampleStat()),
		At:   fixedNow(),
	}
}

// manyServers returns a stat payload with n servers in one proxy.
func manyServers(n int) string {
	lines := []string{frontendRow("big", 1)}
	for i := 1; i <= n; i++ {
		lines = append(lines, serverRow("big", 1, i, fmt.Sprintf("srv%d", i)))
	}
	lines = append(lines, backendRow("big", 1))
	return strings.Join(lines, "\n")
}

func fixedNow() time.Time {
	return time.Date(2010, 6, 16, 12, 0, 0, 0, time.UTC)
}

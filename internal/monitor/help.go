package monitor

import (
	"fmt"
	"strings"
)

// helpTitle is the column header shown above the help document.
const helpTitle = " hatop online help "

type helpEntry struct {
	Key  string
	Desc string
}

var helpKeys = []helpEntry{
	{"1", "STATUS   health, session and queue statistics (default)"},
	{"2", "TRAFFIC  connection and request rates, traffic"},
	{"3", "HTTP     HTTP request rates and response codes"},
	{"4", "ERRORS   health info, error counters and downtimes"},
	{"5", "CLI      haproxy command line (not in read-only mode)"},
	{"Hh?", "HELP     this help screen"},
	{"SPACE", "refresh now"},
	{"UP/DOWN", "move the cursor, scroll at the edges"},
	{"PGUP/PGDN", "move ten lines"},
	{"HOME/END", "jump to the first or last line"},
	{"Qq", "quit"},
}

var helpHeader = []helpEntry{
	{"Node", "configured name of the haproxy node"},
	{"Uptime", "time since haproxy was started"},
	{"Pipes", "pipes in use for kernel-based tcp splicing"},
	{"Procs", "number of haproxy processes"},
	{"Tasks", "number of active process tasks"},
	{"Queue", "number of queued process tasks (run queue)"},
	{"Proxies", "number of configured proxies"},
	{"Services", "number of configured services"},
}

// columnHelp describes the table columns by stats field name.
var columnHelp = map[string]string{
	"svname":       "name of the proxy and its services",
	"weight":       "configured weight of the service",
	"status":       "service status (UP/DOWN/NOLB/MAINT/MAINT(via)...)",
	"check_status": "status of the last health check",
	"act":          "server is active (server), active servers (backend)",
	"bck":          "server is backup (server), backup servers (backend)",
	"qcur":         "current queued requests",
	"qmax":         "max queued requests",
	"scur":         "current sessions",
	"smax":         "max sessions",
	"slim":         "sessions limit",
	"stot":         "total sessions",
	"lbtot":        "total number of times a server was selected",
	"rate":         "sessions per second over the last second",
	"rate_lim":     "limit on new sessions per second",
	"rate_max":     "max new sessions per second",
	"bin":          "bytes in (IEEE 1541-2002)",
	"bout":         "bytes out (IEEE 1541-2002)",
	"req_rate":     "HTTP requests per second over the last second",
	"req_rate_max": "max HTTP requests per second observed",
	"req_tot":      "total HTTP requests received",
	"hrsp_1xx":     "HTTP responses with 1xx code",
	"hrsp_2xx":     "HTTP responses with 2xx code",
	"hrsp_3xx":     "HTTP responses with 3xx code",
	"hrsp_4xx":     "HTTP responses with 4xx code",
	"hrsp_5xx":     "HTTP responses with 5xx code",
	"hrsp_other":   "HTTP responses with other codes (protocol error)",
	"chkfail":      "failed checks",
	"chkdown":      "UP->DOWN transitions",
	"lastchg":      "time since the last status change",
	"econ":         "connection errors",
	"ereq":         "request errors",
	"eresp":        "response errors",
	"dreq":         "denied requests",
	"dresp":        "denied responses",
	"downtime":     "total downtime",
}

var helpCheckStatus = []helpEntry{
	{"UNK", "unknown"},
	{"INI", "initializing"},
	{"SOCKERR", "socket error"},
	{"L4OK", "check passed on layer 4, no upper layers enabled"},
	{"L4TMOUT", "layer 1-4 timeout"},
	{"L4CON", "layer 1-4 connection problem"},
	{"L6OK", "check passed on layer 6"},
	{"L6TOUT", "layer 6 (SSL) timeout"},
	{"L6RSP", "layer 6 invalid response"},
	{"L7OK", "check passed on layer 7"},
	{"L7OKC", "check conditionally passed on layer 7"},
	{"L7TOUT", "layer 7 (HTTP/SMTP) timeout"},
	{"L7RSP", "layer 7 invalid response"},
	{"L7STS", "layer 7 response error, for example HTTP 5xx"},
}

// HelpText builds the help document. The CLI entry is left out in
// read-only mode.
func HelpText(version string, readOnly bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "hatop %s, an interactive dashboard for the haproxy stats socket\n\n", version)
	b.WriteString("Note: when several haproxy processes share one socket, any of them may\n")
	b.WriteString("answer a request. The header shows which process did.\n\n")

	writeSection(&b, "Keys", filterKeys(readOnly))
	writeSection(&b, "Header reference", helpHeader)

	seen := make(map[string]bool)
	for _, mode := range []Mode{ModeStatus, ModeTraffic, ModeHTTP, ModeErrors} {
		var entries []helpEntry
		for _, c := range Columns(mode) {
			// Columns shared by every mode are listed once, under the first.
			if seen[c.Field] && (c.Field == "svname" || c.Field == "weight" || c.Field == "status") {
				continue
			}
			seen[c.Field] = true
			entries = append(entries, helpEntry{c.Header, columnHelp[c.Field]})
		}
		writeSection(&b, mode.String()+" mode", entries)
	}

	writeSection(&b, "Health check status reference", helpCheckStatus)
	return strings.TrimRight(b.String(), "\n")
}

func filterKeys(readOnly bool) []helpEntry {
	if !readOnly {
		return helpKeys
	}
	out := make([]helpEntry, 0, len(helpKeys))
	for _, e := range helpKeys {
		if e.Key == "5" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func writeSection(b *strings.Builder, title string, entries []helpEntry) {
	b.WriteString(title + ":\n\n")
	for _, e := range entries {
		fmt.Fprintf(b, "  %-11s %s\n", e.Key, e.Desc)
	}
	b.WriteString("\n")
}

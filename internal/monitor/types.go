package monitor

// Mode is one of the dashboard screens.
type Mode int

const (
	ModeHelp Mode = iota
	ModeStatus
	ModeTraffic
	ModeHTTP
	ModeErrors
	ModeCLI
)

// String returns the mode's display name.
func (m Mode) String() string {
	switch m {
	case ModeHelp:
		return "HELP"
	case ModeStatus:
		return "STATUS"
	case ModeTraffic:
		return "TRAFFIC"
	case ModeHTTP:
		return "HTTP"
	case ModeErrors:
		return "ERRORS"
	case ModeCLI:
		return "CLI"
	default:
		return "UNKNOWN"
	}
}

// ModeFromNumber maps the 1-5 start mode setting to a Mode.
func ModeFromNumber(n int) (Mode, bool) {
	if n < int(ModeStatus) || n > int(ModeCLI) {
		return ModeStatus, false
	}
	return Mode(n), true
}

// ShowsRecords reports whether the mode renders the service table.
func (m Mode) ShowsRecords() bool {
	return m >= ModeStatus && m <= ModeErrors
}

// Align is a column's text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// ColumnSpec describes one column of a record mode. Values are never
// mutated; effective widths live in a Layout.
type ColumnSpec struct {
	Field    string // stats field name
	Header   string
	MinWidth int
	MaxWidth int // 0 means unbounded
	Align    Align
}

func col(field, header string, min, max int, align Align) ColumnSpec {
	return ColumnSpec{Field: field, Header: header, MinWidth: min, MaxWidth: max, Align: align}
}

// Every record mode's minimum widths plus single-space separators add up
// to MinWidth.
var modeColumns = map[Mode][]ColumnSpec{
	ModeStatus: {
		col("svname", "NAME", 10, 50, AlignLeft),
		col("weight", "W", 4, 6, AlignRight),
		col("status", "STATUS", 6, 10, AlignLeft),
		col("check_status", "CHECK", 7, 20, AlignLeft),
		col("act", "ACT", 3, 0, AlignRight),
		col("bck", "BCK", 3, 0, AlignRight),
		col("qcur", "QCUR", 5, 0, AlignRight),
		col("qmax", "QMAX", 5, 0, AlignRight),
		col("scur", "SCUR", 6, 0, AlignRight),
		col("smax", "SMAX", 6, 0, AlignRight),
		col("slim", "SLIM", 6, 0, AlignRight),
		col("stot", "STOT", 6, 0, AlignRight),
	},
	ModeTraffic: {
		col("svname", "NAME", 10, 50, AlignLeft),
		col("weight", "W", 4, 6, AlignRight),
		col("status", "STATUS", 6, 10, AlignLeft),
		col("lbtot", "LBTOT", 8, 0, AlignRight),
		col("rate", "RATE", 6, 0, AlignRight),
		col("rate_lim", "RLIM", 6, 0, AlignRight),
		col("rate_max", "RMAX", 6, 0, AlignRight),
		col("bin", "BIN", 12, 0, AlignRight),
		col("bout", "BOUT", 12, 0, AlignRight),
	},
	ModeHTTP: {
		col("svname", "NAME", 10, 50, AlignLeft),
		col("weight", "W", 4, 6, AlignRight),
		col("status", "STATUS", 6, 10, AlignLeft),
		col("req_rate", "RATE", 5, 0, AlignRight),
		col("req_rate_max", "RMAX", 5, 0, AlignRight),
		col("req_tot", "RTOT", 7, 0, AlignRight),
		col("hrsp_1xx", "1xx", 5, 0, AlignRight),
		col("hrsp_2xx", "2xx", 5, 0, AlignRight),
		col("hrsp_3xx", "3xx", 5, 0, AlignRight),
		col("hrsp_4xx", "4xx", 5, 0, AlignRight),
		col("hrsp_5xx", "5xx", 5, 0, AlignRight),
		col("hrsp_other", "?xx", 5, 0, AlignRight),
	},
	ModeErrors: {
		col("svname", "NAME", 10, 50, AlignLeft),
		col("weight", "W", 4, 6, AlignRight),
		col("status", "STATUS", 6, 10, AlignLeft),
		col("check_status", "CHECK", 7, 20, AlignLeft),
		col("chkfail", "CF", 3, 0, AlignRight),
		col("chkdown", "CD", 3, 0, AlignRight),
		col("lastchg", "CL", 3, 0, AlignRight),
		col("econ", "ECONN", 5, 0, AlignRight),
		col("ereq", "EREQ", 5, 0, AlignRight),
		col("eresp", "ERSP", 5, 0, AlignRight),
		col("dreq", "DREQ", 5, 0, AlignRight),
		col("dresp", "DRSP", 5, 0, AlignRight),
		col("downtime", "DOWN", 5, 0, AlignRight),
	},
}

// Columns returns a copy of the mode's column specs; nil for HELP and CLI.
func Columns(m Mode) []ColumnSpec {
	specs := modeColumns[m]
	if specs == nil {
		return nil
	}
	out := make([]ColumnSpec, len(specs))
	copy(out, specs)
	return out
}

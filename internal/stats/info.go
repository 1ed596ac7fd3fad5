package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// Info field names.
const (
	InfoSoftwareName    = "software_name"
	InfoSoftwareVersion = "software_version"
	InfoSoftwareRelease = "software_release"
	InfoNbProc          = "nproc"
	InfoProcessNum      = "procn"
	InfoPID             = "pid"
	InfoUptime          = "uptime"
	InfoMaxConn         = "maxconn"
	InfoCurConn         = "curconn"
	InfoMaxPipes        = "maxpipes"
	InfoCurPipes        = "curpipes"
	InfoTasks           = "tasks"
	InfoRunQueue        = "runqueue"
	InfoNode            = "node"
	InfoDescription     = "description"
)

type infoPattern struct {
	key string
	re  *regexp.Regexp
}

// infoPatterns are tried in order; the first match wins.
var infoPatterns = []infoPattern{
	{InfoSoftwareName, regexp.MustCompile(`^Name:\s*(\S+)`)},
	{InfoSoftwareVersion, regexp.MustCompile(`^Version:\s*(\S+)`)},
	{InfoSoftwareRelease, regexp.MustCompile(`^Release_date:\s*(\S+)`)},
	{InfoNbProc, regexp.MustCompile(`^Nbproc:\s*(\d+)`)},
	{InfoProcessNum, regexp.MustCompile(`^Process_num:\s*(\d+)`)},
	{InfoPID, regexp.MustCompile(`^Pid:\s*(\d+)`)},
	{InfoUptime, regexp.MustCompile(`^Uptime:\s*([\S ]+)$`)},
	{InfoMaxConn, regexp.MustCompile(`^Maxconn:\s*(\d+)`)},
	{InfoCurConn, regexp.MustCompile(`^CurrConns:\s*(\d+)`)},
	{InfoMaxPipes, regexp.MustCompile(`^Maxpipes:\s*(\d+)`)},
	{InfoCurPipes, regexp.MustCompile(`^PipesUsed:\s*(\d+)`)},
	{InfoTasks, regexp.MustCompile(`^Tasks:\s*(\d+)`)},
	{InfoRunQueue, regexp.MustCompile(`^Run_queue:\s*(\d+)`)},
	{InfoNode, regexp.MustCompile(`^node:\s*(\S+)`)},
	{InfoDescription, regexp.MustCompile(`^description:\s*(\S+)`)},
}

// Info holds the scalar fields extracted from "show info" output.
// Unmatched fields are absent.
type Info map[string]string

// Get returns the raw value of a field, or "" when absent.
func (i Info) Get(key string) string {
	return i[key]
}

// Int interprets a field as an integer. ok is false when the field is
// absent or not numeric.
func (i Info) Int(key string) (n int64, ok bool) {
	v, present := i[key]
	if !present {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IntOr is Int with a fallback for missing or malformed values.
func (i Info) IntOr(key string, def int64) int64 {
	if n, ok := i.Int(key); ok {
		return n
	}
	return def
}

// ParseInfo extracts the known fields from "show info" output.
func ParseInfo(sc Scanner) (Info, error) {
	info := make(Info)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		for _, p := range infoPatterns {
			if m := p.re.FindStringSubmatch(line); m != nil {
				info[p.key] = m[1]
				break
			}
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return info, nil
}

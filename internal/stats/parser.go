package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxServices caps the number of fully parsed service records per snapshot.
const DefaultMaxServices = 100

// Scanner is the line source consumed by the parsers. *bufio.Scanner and
// the socket client's line source both satisfy it.
type Scanner interface {
	Scan() bool
	Text() string
	Err() error
}

// ParseError reports a non-empty numeric field that failed coercion.
// It aborts the whole snapshot.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: field %s: invalid value %q", e.Line, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type serviceID struct {
	iid uint64
	key string
}

// ParseStat turns "show stat" output into a Snapshot.
//
// Once maxServices records have been materialized, further data lines are
// only inspected for iid, sid and type so the totals stay accurate.
// maxServices <= 0 uses DefaultMaxServices.
func ParseStat(sc Scanner, maxServices int) (*Snapshot, error) {
	if maxServices <= 0 {
		maxServices = DefaultMaxServices
	}

	snap := newSnapshot()
	proxies := make(map[uint64]struct{})
	services := make(map[serviceID]struct{})
	materialized := 0
	lineNum := 0

	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		if strings.Count(line, Separator) != NumFields-1 {
			continue
		}

		raw := strings.Split(line, Separator)
		for i := range raw {
			raw[i] = strings.TrimSpace(raw[i])
		}

		var id serviceID
		if materialized < maxServices {
			rec, err := parseRecord(raw, lineNum)
			if err != nil {
				return nil, err
			}
			id = serviceID{iid: rec.IID, key: rec.Key()}
			if _, seen := services[id]; !seen {
				materialized++
			}
			snap.insert(rec)
		} else {
			var err error
			id, err = inspectRecord(raw, lineNum)
			if err != nil {
				return nil, err
			}
		}

		proxies[id.iid] = struct{}{}
		services[id] = struct{}{}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	snap.TotalProxies = len(proxies)
	snap.TotalServices = len(services)
	return snap, nil
}

// parseRecord fully coerces one split data line.
func parseRecord(raw []string, lineNum int) (*ServiceRecord, error) {
	rec := &ServiceRecord{}

	for i, f := range Schema {
		value := raw[i]

		if f.Type == TypeString {
			switch {
			case f.Name == "status" && value == StatusNoCheck:
				value = StatusNone
			case f.Name == "check_status" && rec.Status == StatusNone:
				value = CheckStatusNone
			}
			*f.str(rec) = value
			if value == "" {
				rec.blank |= 1 << uint(i)
			}
			continue
		}

		n, err := parseUint(f.Name, value, lineNum)
		if err != nil {
			return nil, err
		}
		if value == "" {
			rec.blank |= 1 << uint(i)
		}
		*f.num(rec) = n
	}

	return rec, nil
}

// inspectRecord extracts only the identity of a data line.
func inspectRecord(raw []string, lineNum int) (serviceID, error) {
	iid, err := parseUint("iid", raw[idxIID], lineNum)
	if err != nil {
		return serviceID{}, err
	}
	sid, err := parseUint("sid", raw[idxSID], lineNum)
	if err != nil {
		return serviceID{}, err
	}
	code, err := parseUint("type", raw[idxType], lineNum)
	if err != nil {
		return serviceID{}, err
	}
	return serviceID{iid: iid, key: serviceKey(KindFromCode(code), raw[1], sid)}, nil
}

func parseUint(field, value string, lineNum int) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &ParseError{Line: lineNum, Field: field, Value: value, Err: err}
	}
	return n, nil
}

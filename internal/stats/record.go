package stats

import "strconv"

// Kind classifies a service record by its "type" code.
type Kind int

const (
	KindFrontend Kind = iota
	KindBackend
	KindServer
	KindSocket
	KindUnknown
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindFrontend:
		return "frontend"
	case KindBackend:
		return "backend"
	case KindServer:
		return "server"
	case KindSocket:
		return "socket"
	default:
		return "unknown"
	}
}

// KindFromCode maps haproxy's numeric type code (0=frontend, 1=backend,
// 2=server, 3=socket) to a Kind.
func KindFromCode(code uint64) Kind {
	if code <= uint64(KindSocket) {
		return Kind(code)
	}
	return KindUnknown
}

// Service keys used for the two aggregate records of a proxy.
const (
	KeyFrontend = "FRONTEND"
	KeyBackend  = "BACKEND"
)

// Special status values.
const (
	StatusNoCheck   = "no check"
	StatusNone      = "-"
	CheckStatusNone = "none"
)

// ServiceRecord is one parsed row of "show stat" output.
type ServiceRecord struct {
	PxName        string
	SvName        string
	QCur          uint64
	QMax          uint64
	SCur          uint64
	SMax          uint64
	SLim          uint64
	STot          uint64
	BytesIn       uint64
	BytesOut      uint64
	DReq          uint64
	DResp         uint64
	EReq          uint64
	ECon          uint64
	EResp         uint64
	WRetr         uint64
	WRedis        uint64
	Status        string
	Weight        uint64
	Act           uint64
	Bck           uint64
	ChkFail       uint64
	ChkDown       uint64
	LastChg       uint64
	Downtime      uint64
	QLimit        uint64
	PID           uint64
	IID           uint64
	SID           uint64
	Throttle      uint64
	LBTot         uint64
	Tracked       uint64
	TypeCode      uint64
	Rate          uint64
	RateLim       uint64
	RateMax       uint64
	CheckStatus   string
	CheckCode     uint64
	CheckDuration uint64
	Hrsp1xx       uint64
	Hrsp2xx       uint64
	Hrsp3xx       uint64
	Hrsp4xx       uint64
	Hrsp5xx       uint64
	HrspOther     uint64
	HanaFail      string
	ReqRate       uint64
	ReqRateMax    uint64
	ReqTot        uint64
	CliAbrt       uint64
	SrvAbrt       uint64

	// blank has bit i set when the raw text of Schema[i] was empty.
	blank uint64
}

// Kind returns the record's classification.
func (r *ServiceRecord) Kind() Kind {
	return KindFromCode(r.TypeCode)
}

// Key returns the identity used to group the record inside its proxy:
// the literal service name for frontends and backends, the service id otherwise.
func (r *ServiceRecord) Key() string {
	return serviceKey(r.Kind(), r.SvName, r.SID)
}

func serviceKey(kind Kind, svname string, sid uint64) string {
	switch kind {
	case KindFrontend:
		return KeyFrontend
	case KindBackend:
		return KeyBackend
	}
	if svname == KeyFrontend || svname == KeyBackend {
		return svname
	}
	return strconv.FormatUint(sid, 10)
}

// Value is a generically addressed field value.
type Value struct {
	Type  FieldType
	Unit  Unit
	Str   string
	Num   uint64
	Blank bool
}

// Text returns the value as it would appear unformatted.
func (v Value) Text() string {
	if v.Blank {
		return ""
	}
	if v.Type == TypeString {
		return v.Str
	}
	return strconv.FormatUint(v.Num, 10)
}

// Field looks up a field by its schema name. The second return value is
// false for unknown names.
func (r *ServiceRecord) Field(name string) (Value, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Value{}, false
	}
	f := Schema[i]
	v := Value{Type: f.Type, Unit: f.Unit, Blank: r.blank&(1<<uint(i)) != 0}
	if f.Type == TypeString {
		v.Str = *f.str(r)
	} else {
		v.Num = *f.num(r)
	}
	return v, true
}

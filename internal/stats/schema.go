package stats

// FieldType is the coerced type of a stat column.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
)

// Unit tells the display layer how a numeric field should be humanized.
type Unit int

const (
	UnitNone    Unit = iota
	UnitCount        // plain counter, metric prefixes when too wide
	UnitBytes        // always binary prefixes
	UnitSeconds      // always largest time unit
)

// Field describes one column of the "show stat" CSV output.
type Field struct {
	Name string
	Type FieldType
	Unit Unit

	str func(*ServiceRecord) *string
	num func(*ServiceRecord) *uint64
}

func strField(name string, f func(*ServiceRecord) *string) Field {
	return Field{Name: name, Type: TypeString, str: f}
}

func intField(name string, unit Unit, f func(*ServiceRecord) *uint64) Field {
	return Field{Name: name, Type: TypeInt, Unit: unit, num: f}
}

// Schema lists the stat columns in the exact order haproxy emits them.
var Schema = []Field{
	strField("pxname", func(r *ServiceRecord) *string { return &r.PxName }),
	strField("svname", func(r *ServiceRecord) *string { return &r.SvName }),
	intField("qcur", UnitCount, func(r *ServiceRecord) *uint64 { return &r.QCur }),
	intField("qmax", UnitCount, func(r *ServiceRecord) *uint64 { return &r.QMax }),
	intField("scur", UnitCount, func(r *ServiceRecord) *uint64 { return &r.SCur }),
	intField("smax", UnitCount, func(r *ServiceRecord) *uint64 { return &r.SMax }),
	intField("slim", UnitCount, func(r *ServiceRecord) *uint64 { return &r.SLim }),
	intField("stot", UnitCount, func(r *ServiceRecord) *uint64 { return &r.STot }),
	intField("bin", UnitBytes, func(r *ServiceRecord) *uint64 { return &r.BytesIn }),
	intField("bout", UnitBytes, func(r *ServiceRecord) *uint64 { return &r.BytesOut }),
	intField("dreq", UnitCount, func(r *ServiceRecord) *uint64 { return &r.DReq }),
	intField("dresp", UnitCount, func(r *ServiceRecord) *uint64 { return &r.DResp }),
	intField("ereq", UnitCount, func(r *ServiceRecord) *uint64 { return &r.EReq }),
	intField("econ", UnitCount, func(r *ServiceRecord) *uint64 { return &r.ECon }),
	intField("eresp", UnitCount, func(r *ServiceRecord) *uint64 { return &r.EResp }),
	intField("wretr", UnitCount, func(r *ServiceRecord) *uint64 { return &r.WRetr }),
	intField("wredis", UnitCount, func(r *ServiceRecord) *uint64 { return &r.WRedis }),
	strField("status", func(r *ServiceRecord) *string { return &r.Status }),
	intField("weight", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Weight }),
	intField("act", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Act }),
	intField("bck", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Bck }),
	intField("chkfail", UnitCount, func(r *ServiceRecord) *uint64 { return &r.ChkFail }),
	intField("chkdown", UnitCount, func(r *ServiceRecord) *uint64 { return &r.ChkDown }),
	intField("lastchg", UnitSeconds, func(r *ServiceRecord) *uint64 { return &r.LastChg }),
	intField("downtime", UnitSeconds, func(r *ServiceRecord) *uint64 { return &r.Downtime }),
	intField("qlimit", UnitCount, func(r *ServiceRecord) *uint64 { return &r.QLimit }),
	intField("pid", UnitCount, func(r *ServiceRecord) *uint64 { return &r.PID }),
	intField("iid", UnitCount, func(r *ServiceRecord) *uint64 { return &r.IID }),
	intField("sid", UnitCount, func(r *ServiceRecord) *uint64 { return &r.SID }),
	intField("throttle", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Throttle }),
	intField("lbtot", UnitCount, func(r *ServiceRecord) *uint64 { return &r.LBTot }),
	intField("tracked", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Tracked }),
	intField("type", UnitCount, func(r *ServiceRecord) *uint64 { return &r.TypeCode }),
	intField("rate", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Rate }),
	intField("rate_lim", UnitCount, func(r *ServiceRecord) *uint64 { return &r.RateLim }),
	intField("rate_max", UnitCount, func(r *ServiceRecord) *uint64 { return &r.RateMax }),
	strField("check_status", func(r *ServiceRecord) *string { return &r.CheckStatus }),
	intField("check_code", UnitCount, func(r *ServiceRecord) *uint64 { return &r.CheckCode }),
	intField("check_duration", UnitCount, func(r *ServiceRecord) *uint64 { return &r.CheckDuration }),
	intField("hrsp_1xx", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Hrsp1xx }),
	intField("hrsp_2xx", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Hrsp2xx }),
	intField("hrsp_3xx", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Hrsp3xx }),
	intField("hrsp_4xx", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Hrsp4xx }),
	intField("hrsp_5xx", UnitCount, func(r *ServiceRecord) *uint64 { return &r.Hrsp5xx }),
	intField("hrsp_other", UnitCount, func(r *ServiceRecord) *uint64 { return &r.HrspOther }),
	strField("hanafail", func(r *ServiceRecord) *string { return &r.HanaFail }),
	intField("req_rate", UnitCount, func(r *ServiceRecord) *uint64 { return &r.ReqRate }),
	intField("req_rate_max", UnitCount, func(r *ServiceRecord) *uint64 { return &r.ReqRateMax }),
	intField("req_tot", UnitCount, func(r *ServiceRecord) *uint64 { return &r.ReqTot }),
	intField("cli_abrt", UnitCount, func(r *ServiceRecord) *uint64 { return &r.CliAbrt }),
	intField("srv_abrt", UnitCount, func(r *ServiceRecord) *uint64 { return &r.SrvAbrt }),
}

// NumFields is the number of separator-delimited fields per data line.
// haproxy terminates every row with a trailing separator, which yields one
// extra empty field after the last named column.
var NumFields = len(Schema) + 1

const (
	// CommentPrefix starts header/comment lines in "show stat" output.
	CommentPrefix = "#"
	// Separator delimits fields in "show stat" output.
	Separator = ","
)

var (
	fieldIndex = make(map[string]int, len(Schema))

	idxIID  int
	idxSID  int
	idxType int
)

func init() {
	for i, f := range Schema {
		fieldIndex[f.Name] = i
	}
	idxIID = fieldIndex["iid"]
	idxSID = fieldIndex["sid"]
	idxType = fieldIndex["type"]
}

// LookupField returns the schema entry for a field name.
func LookupField(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return Schema[i], true
}

package stats

import (
	"bufio"
	"fmt"
	"strings"
)

// statLine builds a well-formed "show stat" row. Fields not listed in
// overrides are zero for numeric columns and empty for string columns.
func statLine(overrides map[string]string) string {
	fields := make([]string, NumFields)
	for i, f := range Schema {
		if v, ok := overrides[f.Name]; ok {
			fields[i] = v
			continue
		}
		if f.Type == TypeInt {
			fields[i] = "0"
		}
	}
	return strings.Join(fields, Separator)
}

func serverLine(pxname string, iid, sid int, svname string) string {
	return statLine(map[string]string{
		"pxname": pxname,
		"svname": svname,
		"iid":    fmt.Sprint(iid),
		"sid":    fmt.Sprint(sid),
		"type":   "2",
		"status": "UP",
	})
}

func scanner(lines ...string) Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
}

const statHeader = "# pxname,svname,qcur,qmax,scur,smax,slim,stot,bin,bout,dreq,dresp,ereq,econ,eresp,wretr,wredis,status,weight,act,bck,chkfail,chkdown,lastchg,downtime,qlimit,pid,iid,sid,throttle,lbtot,tracked,type,rate,rate_lim,rate_max,check_status,check_code,check_duration,hrsp_1xx,hrsp_2xx,hrsp_3xx,hrsp_4xx,hrsp_5xx,hrsp_other,hanafail,req_rate,req_rate_max,req_tot,cli_abrt,srv_abrt,"

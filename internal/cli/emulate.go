package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/hatop/internal/errors"
	hatesting "github.com/rileyhilliard/hatop/internal/haproxy/testing"
	"github.com/rileyhilliard/hatop/internal/logger"
	"github.com/rileyhilliard/hatop/internal/stats"
	"github.com/rileyhilliard/hatop/internal/ui"
)

// EmulateOptions configures a stand-in stats socket.
type EmulateOptions struct {
	Socket   string
	InfoFile string        // "show info" payload; empty serves the demo
	StatFile string        // "show stat" payload; empty serves the demo
	Update   time.Duration // demo counters advance this often; 0 freezes them
	Debug    bool
	Out      io.Writer
	Ready    chan<- string // receives the socket path once listening
}

// Emulate serves canned "show info" and "show stat" responses on a unix
// socket until ctx is done, so the dashboard can run without haproxy.
func Emulate(ctx context.Context, opts EmulateOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	info, err := payload(opts.InfoFile, demoInfo)
	if err != nil {
		return err
	}
	var demo *demoTopology
	stat := ""
	if opts.StatFile == "" {
		demo = newDemoTopology(rand.New(rand.NewSource(time.Now().UnixNano())))
		stat = demo.Stat()
	} else if stat, err = payload(opts.StatFile, ""); err != nil {
		return err
	}

	fake, err := hatesting.Listen(opts.Socket)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSocket,
			"Couldn't listen on "+opts.Socket,
			"Check that the directory exists and is writable")
	}
	defer fake.Close()
	fake.SetLogger(logger.New(out, "emulate", opts.Debug)).SetInfo(info).SetStat(stat)

	ui.PrintInfo(out, "Emulating a stats socket at %s", opts.Socket)
	fmt.Fprintln(out, ui.Muted("  hatop -s "+opts.Socket))
	if opts.Ready != nil {
		opts.Ready <- opts.Socket
	}

	var tick <-chan time.Time
	if demo != nil && opts.Update > 0 {
		t := time.NewTicker(opts.Update)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			demo.Advance()
			fake.SetStat(demo.Stat())
		}
	}
}

func payload(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't read "+path,
			"Capture one with: echo 'show stat' | socat stdio /var/run/haproxy.sock > stat.csv")
	}
	return string(data), nil
}

const demoInfo = `Name: HAProxy
Version: 2.8.5
Release_date: 2023/12/07
Nbproc: 1
Process_num: 1
Pid: 4218
Uptime: 0d 3h12m41s
Maxconn: 4000
Maxpipes: 0
CurrConns: 37
PipesUsed: 0
Tasks: 330
Run_queue: 1
node: demo-lb
description: emulated`

// demoTopology is a small fleet whose counters move between polls.
type demoTopology struct {
	rng     *rand.Rand
	proxies []*demoProxy
}

type demoProxy struct {
	name    string
	iid     int
	servers []*demoService
	front   *demoService // nil for backend-only proxies
	back    *demoService // nil for frontend-only proxies
}

type demoService struct {
	name   string
	sid    int
	typ    int
	status string
	check  string
	weight int
	scur   uint64
	smax   uint64
	stot   uint64
	bin    uint64
	bout   uint64
	rate   uint64
	hrsp2  uint64
	hrsp5  uint64
	econ   uint64
}

func newDemoTopology(rng *rand.Rand) *demoTopology {
	d := &demoTopology{rng: rng}
	d.proxies = append(d.proxies, &demoProxy{
		name:  "http-in",
		iid:   1,
		front: &demoService{name: "FRONTEND", typ: 0, status: "OPEN"},
	})

	app := &demoProxy{name: "app", iid: 2,
		front: &demoService{name: "FRONTEND", typ: 0, status: "OPEN"},
		back:  &demoService{name: "BACKEND", typ: 1, status: "UP"},
	}
	for i := 1; i <= 4; i++ {
		app.servers = append(app.servers, &demoService{
			name: fmt.Sprintf("web%d", i), sid: i, typ: 2,
			status: "UP", check: "L7OK", weight: 1,
		})
	}
	app.servers[3].status = "DOWN"
	app.servers[3].check = "L4CON"
	d.proxies = append(d.proxies, app)

	api := &demoProxy{name: "api", iid: 3,
		back: &demoService{name: "BACKEND", typ: 1, status: "UP"},
	}
	for i := 1; i <= 2; i++ {
		api.servers = append(api.servers, &demoService{
			name: fmt.Sprintf("api%d", i), sid: i, typ: 2,
			status: "UP", check: "L7OK", weight: 10,
		})
	}
	api.servers[1].status = "MAINT"
	d.proxies = append(d.proxies, api)

	d.Advance()
	return d
}

// Advance moves every counter forward by one poll's worth of traffic.
func (d *demoTopology) Advance() {
	for _, p := range d.proxies {
		var total demoService
		for _, s := range p.servers {
			if s.status != "UP" {
				s.scur, s.rate = 0, 0
				continue
			}
			s.bump(d.rng, 40)
			total.add(s)
		}
		if p.back != nil {
			p.back.setTotals(&total)
		}
		if p.front != nil {
			if len(p.servers) == 0 {
				p.front.bump(d.rng, 120)
			} else {
				p.front.setTotals(&total)
			}
		}
	}
}

func (s *demoService) bump(rng *rand.Rand, load int) {
	n := uint64(rng.Intn(load) + 1)
	s.scur = uint64(rng.Intn(load))
	if s.scur > s.smax {
		s.smax = s.scur
	}
	s.rate = n
	s.stot += n
	s.bin += n * uint64(300+rng.Intn(900))
	s.bout += n * uint64(2000+rng.Intn(30000))
	s.hrsp2 += n
	if rng.Intn(20) == 0 {
		s.hrsp5++
		s.econ++
	}
}

func (s *demoService) add(o *demoService) {
	s.scur += o.scur
	s.smax += o.smax
	s.stot += o.stot
	s.bin += o.bin
	s.bout += o.bout
	s.rate += o.rate
	s.hrsp2 += o.hrsp2
	s.hrsp5 += o.hrsp5
	s.econ += o.econ
}

func (s *demoService) setTotals(t *demoService) {
	s.scur, s.stot, s.bin, s.bout = t.scur, t.stot, t.bin, t.bout
	s.rate, s.hrsp2, s.hrsp5, s.econ = t.rate, t.hrsp2, t.hrsp5, t.econ
	if s.scur > s.smax {
		s.smax = s.scur
	}
}

// Stat renders the topology as a "show stat" response.
func (d *demoTopology) Stat() string {
	names := make([]string, len(stats.Schema))
	for i, f := range stats.Schema {
		names[i] = f.Name
	}
	lines := []string{"# " + strings.Join(names, stats.Separator)}

	for _, p := range d.proxies {
		if p.front != nil {
			lines = append(lines, p.row(p.front))
		}
		for _, s := range p.servers {
			lines = append(lines, p.row(s))
		}
		if p.back != nil {
			lines = append(lines, p.row(p.back))
		}
	}
	return strings.Join(lines, "\n")
}

func (p *demoProxy) row(s *demoService) string {
	values := map[string]string{
		"pxname":       p.name,
		"svname":       s.name,
		"iid":          strconv.Itoa(p.iid),
		"sid":          strconv.Itoa(s.sid),
		"type":         strconv.Itoa(s.typ),
		"status":       s.status,
		"check_status": s.check,
		"weight":       strconv.Itoa(s.weight),
		"pid":          "1",
		"scur":         strconv.FormatUint(s.scur, 10),
		"smax":         strconv.FormatUint(s.smax, 10),
		"stot":         strconv.FormatUint(s.stot, 10),
		"bin":          strconv.FormatUint(s.bin, 10),
		"bout":         strconv.FormatUint(s.bout, 10),
		"rate":         strconv.FormatUint(s.rate, 10),
		"hrsp_2xx":     strconv.FormatUint(s.hrsp2, 10),
		"hrsp_5xx":     strconv.FormatUint(s.hrsp5, 10),
		"econ":         strconv.FormatUint(s.econ, 10),
	}
	if s.typ == 0 {
		values["slim"] = "2000"
	}

	out := make([]string, stats.NumFields)
	for i, f := range stats.Schema {
		if v, ok := values[f.Name]; ok {
			out[i] = v
		} else if f.Type == stats.TypeInt {
			out[i] = "0"
		}
	}
	return strings.Join(out, stats.Separator)
}

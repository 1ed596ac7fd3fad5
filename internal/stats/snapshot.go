package stats

import "sort"

// Proxy groups the service records sharing one proxy id.
type Proxy struct {
	ID       uint64
	Name     string
	Services map[string]*ServiceRecord
}

// Frontend returns the proxy's FRONTEND record, or nil.
func (p *Proxy) Frontend() *ServiceRecord {
	return p.Services[KeyFrontend]
}

// Backend returns the proxy's BACKEND record, or nil.
func (p *Proxy) Backend() *ServiceRecord {
	return p.Services[KeyBackend]
}

// Servers returns the non-aggregate records ordered by service id.
func (p *Proxy) Servers() []*ServiceRecord {
	out := make([]*ServiceRecord, 0, len(p.Services))
	for key, svc := range p.Services {
		if key == KeyFrontend || key == KeyBackend {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SID != out[j].SID {
			return out[i].SID < out[j].SID
		}
		return out[i].SvName < out[j].SvName
	})
	return out
}

// Snapshot is one parsed "show stat" sample. It is never mutated after
// ParseStat returns; each poll produces a new one.
type Snapshot struct {
	Proxies map[uint64]*Proxy

	// TotalProxies and TotalServices count everything seen in the raw
	// stream, including lines past the materialization cap.
	TotalProxies  int
	TotalServices int
}

func newSnapshot() *Snapshot {
	return &Snapshot{Proxies: make(map[uint64]*Proxy)}
}

// ProxyIDs returns the proxy ids in ascending order.
func (s *Snapshot) ProxyIDs() []uint64 {
	ids := make([]uint64, 0, len(s.Proxies))
	for id := range s.Proxies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Records returns the number of fully materialized service records.
func (s *Snapshot) Records() int {
	n := 0
	for _, p := range s.Proxies {
		n += len(p.Services)
	}
	return n
}

// Lookup returns the record for a proxy id and service key, or nil.
func (s *Snapshot) Lookup(iid uint64, key string) *ServiceRecord {
	p, ok := s.Proxies[iid]
	if !ok {
		return nil
	}
	return p.Services[key]
}

func (s *Snapshot) insert(r *ServiceRecord) {
	p, ok := s.Proxies[r.IID]
	if !ok {
		p = &Proxy{ID: r.IID, Name: r.PxName, Services: make(map[string]*ServiceRecord)}
		s.Proxies[r.IID] = p
	}
	p.Services[r.Key()] = r
}

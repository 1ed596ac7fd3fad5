package monitor

import (
	"github.com/rileyhilliard/hatop/internal/stats"
)

// DefaultMaxLines caps the number of lines built for the record table.
const DefaultMaxLines = 1000

// RenderLine is one row of the scrollable record table: either structural
// text (a proxy heading or the blank line after a proxy) or a record.
type RenderLine struct {
	Text   string
	Record *stats.ServiceRecord
}

// IsRecord reports whether the line is bound to a service record.
func (l RenderLine) IsRecord() bool {
	return l.Record != nil
}

// BuildLines flattens a snapshot into table lines. Proxies come in
// ascending iid order; each contributes a ">>> name" heading, its FRONTEND,
// its servers by service id, its BACKEND and a blank separator. At most
// maxLines lines are built (maxLines <= 0 uses DefaultMaxLines).
func BuildLines(snap *stats.Snapshot, maxLines int) []RenderLine {
	if snap == nil {
		return nil
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	lines := make([]RenderLine, 0, min(maxLines, snap.Records()+3*len(snap.Proxies)))
	add := func(l RenderLine) bool {
		if len(lines) >= maxLines {
			return false
		}
		lines = append(lines, l)
		return true
	}

	for _, iid := range snap.ProxyIDs() {
		px := snap.Proxies[iid]
		if !add(RenderLine{Text: ">>> " + px.Name}) {
			break
		}
		if fe := px.Frontend(); fe != nil && !add(RenderLine{Record: fe}) {
			break
		}
		full := false
		for _, srv := range px.Servers() {
			if !add(RenderLine{Record: srv}) {
				full = true
				break
			}
		}
		if full {
			break
		}
		if be := px.Backend(); be != nil && !add(RenderLine{Record: be}) {
			break
		}
		if !add(RenderLine{}) {
			break
		}
	}
	return lines
}

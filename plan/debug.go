package plan

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"github.com/TSTGoose/XMLParser/utils/debug"
)

// String returns readable tree of extraction result with keys in natural
// order. It exists solely for manual inspection during debugging.
func (r *Result) String() string {
	if r == nil {
		return "<nil Result>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Plan")
	dumpRecord(tw, 1, r.Record)

	if len(r.Diagnostics) > 0 {
		tw.Line(0, "Diagnostics: %d", len(r.Diagnostics))
		for i, d := range r.Diagnostics {
			tw.Line(1, "[%d] %s", i, d.Error())
		}
	}
	return tw.String()
}

func dumpRecord(tw *debug.TreeWriter, depth int, rec Record) {
	keys := slices.Collect(maps.Keys(rec))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		switch v := rec[k].(type) {
		case string:
			tw.Field(depth, k, v)
		case []string:
			tw.Line(depth, "%s: %q", k, v)
		case Record:
			tw.Line(depth, "%s:", k)
			dumpRecord(tw, depth+1, v)
		case []Record:
			tw.Line(depth, "%s: (%d)", k, len(v))
			for i, r := range v {
				tw.Line(depth+1, "[%d]", i)
				dumpRecord(tw, depth+2, r)
			}
		default:
			tw.Line(depth, "%s: %v", k, v)
		}
	}
}

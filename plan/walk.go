package plan

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/TSTGoose/XMLParser/diag"
	"github.com/TSTGoose/XMLParser/xmltree"
)

// walkRules parametrize subtree walk for particular record family.
type walkRules struct {
	// own attributes to take, in this order; nil means all of them
	fields []string
	// attributes removed from child elements
	exclusions keySet
	// lowercase substrings of name which mark row to be skipped
	skipNames []string
	// row without name is malformed
	requireName bool
	// child tags which always produce sequence
	expect []string
}

func newWalkRules(fields, exclusions, skipNames, expect []string, requireName bool) *walkRules {
	lowered := make([]string, 0, len(skipNames))
	for _, s := range skipNames {
		lowered = append(lowered, strings.ToLower(s))
	}
	return &walkRules{
		fields:      fields,
		exclusions:  newKeySet(exclusions),
		skipNames:   lowered,
		requireName: requireName,
		expect:      expect,
	}
}

func (r *walkRules) skipped(name string) bool {
	name = strings.ToLower(name)
	for _, s := range r.skipNames {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// walk normalizes element: own attributes become top level fields, child
// elements are grouped by tag into sequences of normalized records. Returns
// false when element should be omitted from result.
func (x *Extractor) walk(el xmltree.Node, rules *walkRules, path string, dl *diag.List) (Record, bool) {
	rec := make(Record)

	var own []xmltree.Attr
	if rules.fields == nil {
		own = el.Attrs()
	} else {
		for _, f := range rules.fields {
			if v, ok := el.Attr(f); ok {
				own = append(own, xmltree.Attr{Key: f, Value: v})
			}
		}
	}
	x.normalizeInto(rec, own, path, dl)

	name, hasName := rec[KeyName].(string)
	if !hasName && rules.requireName {
		dl.Add(path, "", fmt.Errorf("%w: no %q field", diag.ErrMalformedRow, KeyName))
		return nil, false
	}
	if hasName && rules.skipped(name) {
		x.log.Debug("Skipping row", zap.String("path", path), zap.String("name", name))
		return nil, false
	}

	var (
		groups   = make(map[string][]Record)
		resolved = make(map[string]string)
		counters = make(map[string]int)
	)
	for _, child := range el.Children() {
		tag := child.Tag()
		counters[tag]++
		childPath := fmt.Sprintf("%s/%s[%d]", path, tag, counters[tag])

		key, seen := resolved[tag]
		if !seen {
			key, _ = x.resolve(tag, childPath, dl)
			resolved[tag] = key
		}
		if len(key) == 0 {
			continue
		}

		attrs := child.Attrs()
		if len(attrs) == 0 {
			attrs = inheritedAttrs(child)
		}
		groups[key] = append(groups[key], x.normalize(rules.exclusions.exclude(attrs), childPath, dl))
	}

	for _, tag := range rules.expect {
		if counters[tag] > 0 {
			continue
		}
		key, _ := x.resolve(tag, path, dl)
		if len(key) == 0 {
			continue
		}
		if _, ok := groups[key]; !ok {
			dl.Add(path, tag, fmt.Errorf("%w: no child elements", diag.ErrStructuralMismatch))
			groups[key] = []Record{}
		}
	}

	for _, r := range groups[KeyCourseWork] {
		r[KeyAssessmentType] = AssessmentCourseWork
	}
	for _, r := range groups[KeyCourseProject] {
		r[KeyAssessmentType] = AssessmentCourseProject
	}

	for key, seq := range groups {
		rec[key] = seq
	}
	return rec, true
}

// inheritedAttrs handles wrapper elements without attributes: attributes of
// their children are merged in document order, later duplicates win.
func inheritedAttrs(el xmltree.Node) []xmltree.Attr {
	var (
		out   []xmltree.Attr
		index = make(map[string]int)
	)
	for _, child := range el.Children() {
		for _, a := range child.Attrs() {
			if i, ok := index[a.Key]; ok {
				out[i].Value = a.Value
				continue
			}
			index[a.Key] = len(out)
			out = append(out, a)
		}
	}
	return out
}

package plan

import (
	"go.uber.org/zap"

	"github.com/TSTGoose/XMLParser/diag"
	"github.com/TSTGoose/XMLParser/xmltree"
)

// normalize builds new record from raw attribute set.
func (x *Extractor) normalize(attrs []xmltree.Attr, path string, dl *diag.List) Record {
	rec := make(Record, len(attrs))
	x.normalizeInto(rec, attrs, path, dl)
	return rec
}

// normalizeInto translates attribute names and splits multi-value attributes.
// Assessment type discriminators do not produce their own fields, instead
// their code is stored in "assessment_type", last one wins.
func (x *Extractor) normalizeInto(rec Record, attrs []xmltree.Attr, path string, dl *diag.List) {
	for _, a := range attrs {
		key, ok := x.resolve(a.Key, path, dl)
		if !ok {
			continue
		}
		if code, ok := x.dict.AssessmentCode(key); ok {
			rec[KeyAssessmentType] = code
			continue
		}
		rec[key] = Split(a.Value, key)
	}
}

// resolve is the only place where dictionary lookups happen, so unknown key
// policy is applied the same way for attributes and tags.
func (x *Extractor) resolve(domainKey, path string, dl *diag.List) (string, bool) {
	key, err := x.dict.Resolve(domainKey)
	if err != nil {
		dl.Add(path, domainKey, err)
		x.log.Debug("Unknown key", zap.String("path", path), zap.String("key", domainKey), zap.String("canonical", key))
	}
	return key, len(key) > 0
}

type keySet map[string]struct{}

func newKeySet(keys []string) keySet {
	set := make(keySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// exclude returns copy of attributes without excluded ones.
func (s keySet) exclude(attrs []xmltree.Attr) []xmltree.Attr {
	out := make([]xmltree.Attr, 0, len(attrs))
	for _, a := range attrs {
		if _, skip := s[a.Key]; skip {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Package plan converts curriculum plan documents into normalized records
// with English canonical keys.
package plan

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/TSTGoose/XMLParser/diag"
	"github.com/TSTGoose/XMLParser/xmltree"
)

// Locations of record families in plan document, relative to root element.
const (
	PathTitle          = "План/Титул"
	PathSpecialities   = "План/Титул/Специальности/Специальность"
	PathQualifications = "План/Титул/Квалификации/Квалификация"
	PathActivities     = "План/Титул/ВидыДеятельности/ВидДеятельности"
	PathDisciplines    = "План/СтрокиПлана/Строка"
	PathSpecialWorks   = "План/СпецВидыРаботНов"
	PathCompetencies   = "План/Компетенции/*"

	tagOtherPractice = "ПрочаяПрактика"
)

// PathCycles are tried in order, newer plans use the first one.
var PathCycles = []string{
	"План/Титул/АтрибутыЦикловНов/Цикл",
	"План/Титул/АтрибутыЦиклов/Цикл",
}

// Extractor produces normalized records from plan documents. It never
// modifies source tree and keeps no state between calls, so single instance
// could be used for many documents concurrently.
type Extractor struct {
	dict *Dictionary
	opts Options
	log  *zap.Logger
}

// New returns extractor, nil log disables debug tracing.
func New(dict *Dictionary, opts Options, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{dict: dict, opts: opts, log: log}
}

// Extract produces complete plan record. Recoverable problems are collected in
// result diagnostics, error is returned only when mandatory title block is
// absent.
func (x *Extractor) Extract(root xmltree.Node) (*Result, error) {
	if root == nil {
		return nil, errors.New("nil document")
	}

	res := &Result{}
	dl := &res.Diagnostics

	rec, err := x.Header(root, dl)
	if err != nil {
		return nil, err
	}
	rec["kind_activity"] = x.Activities(root, PathActivities)
	rec["cycles"] = x.Cycles(root, dl)
	rec["plan_discipline"] = x.Disciplines(root, dl)
	rec["practice"] = x.Practices(root, dl)
	rec["competencies"] = x.Competencies(root, dl)
	res.Record = rec

	x.log.Debug("Plan extracted",
		zap.Int("disciplines", len(rec["plan_discipline"].([]Record))),
		zap.Int("practices", len(rec["practice"].([]Record))),
		zap.Int("competencies", len(rec["competencies"].([]Record))),
		zap.Int("diagnostics", res.Diagnostics.Len()))
	return res, nil
}

// Activities returns "Название" values of all elements on the path, elements
// without it are skipped.
func (x *Extractor) Activities(root xmltree.Node, path string) []string {
	out := []string{}
	for _, n := range root.FindAll(path) {
		if v, ok := n.Attr("Название"); ok {
			out = append(out, v)
		}
	}
	return out
}

// Cycles returns normalized cycle attribute rows.
func (x *Extractor) Cycles(root xmltree.Node, dl *diag.List) []Record {
	out := []Record{}
	for _, path := range PathCycles {
		nodes := root.FindAll(path)
		if len(nodes) == 0 {
			continue
		}
		for i, n := range nodes {
			out = append(out, x.normalize(n.Attrs(), fmt.Sprintf("%s[%d]", path, i+1), dl))
		}
		break
	}
	return out
}

// Disciplines returns normalized plan rows, module and practice placeholder
// rows are left out.
func (x *Extractor) Disciplines(root xmltree.Node, dl *diag.List) []Record {
	rules := newWalkRules(x.opts.DisciplineFields, x.opts.DisciplineExclusions, x.opts.DisciplineSkipNames, x.opts.DisciplineExpect, true)

	out := []Record{}
	for i, row := range root.FindAll(PathDisciplines) {
		if rec, ok := x.walk(row, rules, fmt.Sprintf("%s[%d]", PathDisciplines, i+1), dl); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Practices returns normalized practicum blocks with their per-term records
// collected in "semestr".
func (x *Extractor) Practices(root xmltree.Node, dl *diag.List) []Record {
	exclusions := newKeySet(x.opts.PracticeExclusions)

	out := []Record{}
	n := 0
	for _, works := range root.FindAll(PathSpecialWorks) {
		for _, pr := range works.Descendants(tagOtherPractice) {
			n++
			path := fmt.Sprintf("%s//%s[%d]", PathSpecialWorks, tagOtherPractice, n)

			rec := x.normalize(pr.Attrs(), path, dl)

			terms := []Record{}
			for j, term := range pr.Children() {
				termPath := fmt.Sprintf("%s/%s[%d]", path, term.Tag(), j+1)
				terms = append(terms, x.normalize(exclusions.exclude(term.Attrs()), termPath, dl))
			}
			if len(terms) == 0 {
				dl.Add(path, KeySemestr, fmt.Errorf("%w: no term elements", diag.ErrStructuralMismatch))
			}
			rec[KeySemestr] = terms

			// some exports use "Компетенции" where "КомпетенцииКоды" is expected
			if v, ok := rec[KeyCompetencies]; ok {
				delete(rec, KeyCompetencies)
				rec[KeyCompetenciesCodes] = v
			}
			out = append(out, rec)
		}
	}
	return out
}

// Competencies returns normalized competence entries in document order.
func (x *Extractor) Competencies(root xmltree.Node, dl *diag.List) []Record {
	exclusions := newKeySet(x.opts.CompetenceExclusions)

	out := []Record{}
	for i, n := range root.FindAll(PathCompetencies) {
		out = append(out, x.normalize(exclusions.exclude(n.Attrs()), fmt.Sprintf("%s[%d]", PathCompetencies, i+1), dl))
	}
	return out
}

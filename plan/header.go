package plan

import (
	"fmt"

	"github.com/TSTGoose/XMLParser/diag"
	"github.com/TSTGoose/XMLParser/xmltree"
)

const (
	attrOrdinal = "Ном"
	attrTitle   = "Название"
)

var titleFields = []struct {
	key, attr string
}{
	{"code_department", "КодКафедры"},
	{"shifr", "ПоследнийШифр"},
	{"year_priem", "ГодНачалаПодготовки"},
	{"level", "Уровень"},
	{"code_level", "КодУровня"},
}

var ordinalFields = []struct {
	key, path, ordinal, attr string
}{
	{"name_speciality", PathSpecialities, "1", attrTitle},
	{"educational_program", PathSpecialities, "2", attrTitle},
	{"year_issue", PathSpecialities, "3", attrTitle},
	{"qualification", PathQualifications, "1", attrTitle},
	{"training_period", PathQualifications, "1", "СрокОбучения"},
}

// Header returns plan level metadata. Title block is mandatory, when it is
// absent error wrapping diag.ErrPathNotFound is returned. Absent values are
// reported and replaced with empty strings.
func (x *Extractor) Header(root xmltree.Node, dl *diag.List) (Record, error) {
	title := root.Find(PathTitle)
	if title == nil {
		return nil, fmt.Errorf("%w: %s", diag.ErrPathNotFound, PathTitle)
	}

	rec := make(Record, len(titleFields)+len(ordinalFields)+1)
	for _, f := range titleFields {
		rec[f.key] = attrValue(title, PathTitle, f.attr, dl)
	}
	for _, f := range ordinalFields {
		rec[f.key] = ordinalValue(root, f.path, f.ordinal, f.attr, dl)
	}
	rec["sheet"] = Record{
		"type": attrValue(root, root.Tag(), "Тип", dl),
		"name": attrValue(title, PathTitle, "ПолноеИмяПлана", dl),
	}
	return rec, nil
}

func attrValue(n xmltree.Node, path, attr string, dl *diag.List) string {
	v, ok := n.Attr(attr)
	if !ok {
		dl.Add(path, attr, diag.ErrMissingValue)
	}
	return v
}

// ordinalValue looks for sibling with requested ordinal ("Ном") and returns
// its attribute.
func ordinalValue(root xmltree.Node, path, ordinal, attr string, dl *diag.List) string {
	for _, n := range root.FindAll(path) {
		if v, _ := n.Attr(attrOrdinal); v == ordinal {
			return attrValue(n, fmt.Sprintf("%s[%s=%q]", path, attrOrdinal, ordinal), attr, dl)
		}
	}
	dl.Add(fmt.Sprintf("%s[%s=%q]", path, attrOrdinal, ordinal), attr, diag.ErrMissingValue)
	return ""
}

// Package competence extracts competence models (skills with their knowledge,
// ability and possession indicators) from educational standard documents.
package competence

import (
	"fmt"
	"strings"

	"github.com/TSTGoose/XMLParser/diag"
	"github.com/TSTGoose/XMLParser/xmltree"
)

const (
	PathDirectionCode = "Program/Direction/Code"
	PathSkills        = "Skills"
)

// Model is a normalized competence model document.
type Model struct {
	DirectionCode string  `json:"direction_code" yaml:"direction_code"`
	Skills        []Skill `json:"competence_models" yaml:"competence_models"`
}

type Skill struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Type     string      `json:"type" yaml:"type"`
	TypeName string      `json:"type_name" yaml:"type_name"`
	Object   string      `json:"object" yaml:"object"`
	Subject  string      `json:"subject" yaml:"subject"`
	Know     []Indicator `json:"know" yaml:"know"`
	Can      []Indicator `json:"can" yaml:"can"`
	Own      []Indicator `json:"own" yaml:"own"`
}

type Indicator struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}

// Parse builds competence model from document root. Every child of "Skills"
// element is a skill type (its tag becomes Skill.Type) containing "Skill"
// elements at any depth. Absent text values are reported and replaced with
// empty strings, document without "Skills" is rejected.
func Parse(root xmltree.Node) (*Model, diag.List, error) {
	var dl diag.List

	blocks := root.FindAll(PathSkills)
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", diag.ErrPathNotFound, PathSkills)
	}

	m := &Model{
		DirectionCode: text(root, PathDirectionCode, root.Tag(), &dl),
		Skills:        []Skill{},
	}

	n := 0
	for _, block := range blocks {
		for _, kind := range block.Children() {
			for _, sk := range kind.Descendants("Skill") {
				n++
				m.Skills = append(m.Skills, parseSkill(sk, kind.Tag(), fmt.Sprintf("%s/%s//Skill[%d]", PathSkills, kind.Tag(), n), &dl))
			}
		}
	}
	return m, dl, nil
}

func parseSkill(sk xmltree.Node, kind, path string, dl *diag.List) Skill {
	s := Skill{
		ID:   text(sk, "Code", path, dl),
		Name: text(sk, "Name", path, dl),
		Type: kind,
		Know: indicators(sk, "KnowIndicator", path, dl),
		Can:  indicators(sk, "CanIndicator", path, dl),
		Own:  indicators(sk, "OwnIndicator", path, dl),
	}

	// only first professional task describes skill
	if tasks := sk.Descendants("ProfessionalTask"); len(tasks) > 0 {
		task, taskPath := tasks[0], path+"/ProfessionalTask"
		s.TypeName = text(task, "ProfessionalActivityTaskType/Name", taskPath, dl)
		s.Object = text(task, "Object", taskPath, dl)
		s.Subject = text(task, "Name", taskPath, dl)
	}
	return s
}

func indicators(sk xmltree.Node, tag, path string, dl *diag.List) []Indicator {
	out := []Indicator{}
	for i, n := range sk.Descendants(tag) {
		p := fmt.Sprintf("%s/%s[%d]", path, tag, i+1)
		out = append(out, Indicator{
			Name: text(n, "Name", p, dl),
			ID:   text(n, "Code", p, dl),
		})
	}
	return out
}

func text(n xmltree.Node, child, path string, dl *diag.List) string {
	el := n.Find(child)
	if el == nil {
		dl.Add(path, child, diag.ErrMissingValue)
		return ""
	}
	return strings.TrimSpace(el.Text())
}

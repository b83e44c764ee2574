package competence

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/TSTGoose/XMLParser/diag"
	"github.com/TSTGoose/XMLParser/xmltree"
)

func loadModel(t *testing.T) xmltree.Node {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "model.xml"))
	if err != nil {
		t.Fatalf("open model: %v", err)
	}
	defer f.Close()

	root, err := xmltree.Parse(f)
	if err != nil {
		t.Fatalf("parse model: %v", err)
	}
	return root
}

func TestParse(t *testing.T) {
	m, dl, err := Parse(loadModel(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.DirectionCode != "14.05.04" {
		t.Errorf("DirectionCode = %q", m.DirectionCode)
	}
	if len(m.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(m.Skills))
	}

	want := Skill{
		ID:   "УК-1",
		Name: "Способен осуществлять критический анализ проблемных ситуаций",
		Type: "UniversalSkills",
		Know: []Indicator{
			{Name: "методы системного анализа", ID: "УК-1.1"},
			{Name: "методы критического анализа", ID: "УК-1.2"},
		},
		Can: []Indicator{{Name: "выявлять проблемные ситуации", ID: "УК-1.3"}},
		Own: []Indicator{{Name: "методологией системного подхода", ID: "УК-1.4"}},
	}
	if !reflect.DeepEqual(m.Skills[0], want) {
		t.Errorf("Skills[0] =\n%#v\nwant\n%#v", m.Skills[0], want)
	}

	pk := m.Skills[1]
	if pk.Type != "ProfessionalSkills" {
		t.Errorf("nested skill type = %q", pk.Type)
	}
	if pk.TypeName != "научно-исследовательский" || pk.Object != "физические установки" || pk.Subject != "измерительные системы" {
		t.Errorf("first professional task expected, got %+v", pk)
	}
	if len(pk.Know) != 0 || pk.Know == nil {
		t.Errorf("Know must be empty sequence, got %#v", pk.Know)
	}

	// indicator ПК-1.1 has no name
	if dl.Len() != 1 || !errors.Is(dl[0], diag.ErrMissingValue) || dl[0].Key != "Name" {
		t.Errorf("unexpected diagnostics: %v", dl.Err())
	}
}

func TestParse_JSON(t *testing.T) {
	m, _, err := Parse(loadModel(t))
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{`"direction_code":"14.05.04"`, `"competence_models":[`, `"type_name":""`, `"know":[]`} {
		if !strings.Contains(string(data), s) {
			t.Errorf("%s not found in %s", s, data)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		wantErr error
		missing int
	}{
		{"no skills", `<Model><Program/></Model>`, diag.ErrPathNotFound, 0},
		{"no direction", `<Model><Skills><Basic><Skill><Code>A</Code></Skill></Basic></Skills></Model>`, nil, 2},
		{"empty skills", `<Model><Program><Direction><Code>1</Code></Direction></Program><Skills/></Model>`, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := xmltree.ParseString(tt.xml)
			if err != nil {
				t.Fatal(err)
			}

			m, dl, err := Parse(root)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if m.Skills == nil {
				t.Error("Skills must not be nil")
			}
			if n := dl.Count(diag.ErrMissingValue); n != tt.missing {
				t.Errorf("missing values = %d, want %d (%v)", n, tt.missing, dl.Err())
			}
		})
	}
}

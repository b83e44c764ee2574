package plan

import (
	"fmt"
	"maps"
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"

	"github.com/TSTGoose/XMLParser/common"
	"github.com/TSTGoose/XMLParser/diag"
)

// Canonical keys which get special treatment during normalization.
const (
	KeyName              = "name"
	KeyAssessmentType    = "assessment_type"
	KeyCourseWork        = "course_work"
	KeyCourseProject     = "course_project"
	KeySemestr           = "semestr"
	KeyCompetencies      = "competencies"
	KeyCompetenciesCodes = "competenciescodes"
)

// Assessment type codes. Course work and course project are never looked up,
// they are assigned to members of corresponding groups.
const (
	AssessmentExam          = 1
	AssessmentPass          = 2
	AssessmentGradedPass    = 3
	AssessmentCourseWork    = 4
	AssessmentCourseProject = 5
)

var defaultKeys = map[string]string{
	"НовЦикл":                "new_cycle",
	"Дис":                    "name",
	"НовИдДисциплины":        "new_cycle_id",
	"Цикл":                   "cycle",
	"ИдетификаторДисциплины": "discipline_id",
	"ИдетификаторВидаПлана":  "plan_view_id",
	"ГОС":                    "GOS",
	"СР":                     "SR",
	"ЧасовИнтер":             "HoursInter",
	"КомпетенцииКоды":        "competenciescodes",
	"Компетенции":            "competencies",
	"Кафедра":                "department",
	"Раздел":                 "chapter",
	"ПодлежитИзучению":       "subject_study",
	"КредитовНаДисциплину":   "credits_discipline",
	"ЧасовВЗЕТ":              "HoursZET",
	"Сем":                    "semestr",
	"Семестр":                "semestr",
	"Ном":                    "number",
	"Лек":                    "lec",
	"Лаб":                    "lab",
	"ИнтЛаб":                 "int_lab",
	"Пр":                     "pr",
	"ИнтПр":                  "intPr",
	"СРС":                    "SRS",
	"ЧасЭкз":                 "hourEx",
	"ЗЕТ":                    "ZET",
	"Экз":                    "exam",
	"Зач":                    "zach",
	"ЗачО":                   "zachO",
	"КонтрРаб":               "controlWork",
	"Контр":                  "control",
	"КурсовойПроект":         "course_project",
	"КурсоваяРабота":         "course_work",
	"Тип":                    "type",
	"Наименование":           "name",
	"Название":               "name",
	"Аббревиатура":           "abbreviation",
	"ЗЕТвНеделе":             "ZETinWeek",
	"ЗЕТэкспертное":          "ZETexpert",
	"ПроектЗЕТ":              "projectZET",
	"ИнтЛек":                 "intLec",
	"ПланНед":                "planWeek",
	"ПланЧасов":              "planHour",
	"ПланЗЕТ":                "planZet",
	"Код":                    "code",
	"Индекс":                 "index",
	"Содержание":             "content",
}

var defaultAssessment = map[string]int{
	"exam":  AssessmentExam,
	"zach":  AssessmentPass,
	"zachO": AssessmentGradedPass,
}

// Dictionary translates domain (source language) tag and attribute names into
// canonical keys. It is immutable after construction and could be shared
// between concurrent extractions.
type Dictionary struct {
	keys       map[string]string
	assessment map[string]int
	policy     common.UnknownKeyPolicy
}

// NewDictionary creates dictionary from provided tables, tables are copied.
func NewDictionary(keys map[string]string, assessment map[string]int, policy common.UnknownKeyPolicy) *Dictionary {
	return &Dictionary{
		keys:       maps.Clone(keys),
		assessment: maps.Clone(assessment),
		policy:     policy,
	}
}

// DefaultDictionary returns built-in translation table.
func DefaultDictionary(policy common.UnknownKeyPolicy) *Dictionary {
	return NewDictionary(defaultKeys, defaultAssessment, policy)
}

// WithOverrides returns new dictionary with additional or replaced translations.
func (d *Dictionary) WithOverrides(keys map[string]string) *Dictionary {
	merged := maps.Clone(d.keys)
	maps.Copy(merged, keys)
	return &Dictionary{keys: merged, assessment: d.assessment, policy: d.policy}
}

func (d *Dictionary) Policy() common.UnknownKeyPolicy {
	return d.policy
}

func (d *Dictionary) Len() int {
	return len(d.keys)
}

// Resolve returns canonical key for domain key. For unknown keys the returned
// error always wraps diag.ErrUnknownKey, what is returned as canonical key
// depends on dictionary policy: with transliterate policy it is key derived
// from domain key, with strict policy it is empty and value should be dropped.
func (d *Dictionary) Resolve(key string) (string, error) {
	if canonical, ok := d.keys[key]; ok {
		return canonical, nil
	}
	if d.policy == common.UnknownKeyPolicyStrict {
		return "", diag.ErrUnknownKey
	}
	derived := Transliterate(key)
	return derived, fmt.Errorf("%w, using %q", diag.ErrUnknownKey, derived)
}

// AssessmentCode reports whether canonical key is an assessment type
// discriminator and its code.
func (d *Dictionary) AssessmentCode(canonical string) (int, bool) {
	code, ok := d.assessment[canonical]
	return code, ok
}

// Transliterate derives ASCII key from domain key: "ПланЧасовАуд" ->
// "PlanChasovAud". Anything but letters, digits and underscore is dropped.
func Transliterate(key string) string {
	out := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return r
		}
		return -1
	}, unidecode.Unidecode(key))
	if len(out) == 0 {
		return "key"
	}
	return out
}

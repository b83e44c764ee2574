package plan

// Options define per record family field lists. All names are domain keys.
type Options struct {
	// DisciplineFields are plan row attributes copied into discipline record.
	DisciplineFields []string
	// DisciplineExclusions are removed from nested discipline elements.
	DisciplineExclusions []string
	// DisciplineSkipNames - rows with name containing any of these
	// (case-insensitive) are not disciplines.
	DisciplineSkipNames []string
	// DisciplineExpect are child tags which always produce sequence in
	// discipline record, even when absent.
	DisciplineExpect []string
	// PracticeExclusions are removed from practicum term elements.
	PracticeExclusions []string
	// CompetenceExclusions are removed from competence elements.
	CompetenceExclusions []string
}

// DefaultOptions returns lists used for standard plan exports.
func DefaultOptions() Options {
	return Options{
		DisciplineFields: []string{
			"Дис",
			"НовЦикл",
			"НовИдДисциплины",
			"Цикл",
			"ИдетификаторДисциплины",
			"ИдетификаторВидаПлана",
			"КомпетенцииКоды",
			"Компетенции",
			"Кафедра",
			"Раздел",
			"ПодлежитИзучению",
			"КредитовНаДисциплину",
			"ЧасовВЗЕТ",
		},
		DisciplineExclusions: []string{"РГР", "КП", "КР", "Реф"},
		DisciplineSkipNames:  []string{"модуль", "практика"},
		PracticeExclusions:   []string{"ПланЧасовАуд", "ПланЧасовСРС"},
	}
}

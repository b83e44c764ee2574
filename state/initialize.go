package state

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TSTGoose/XMLParser/common"
	"github.com/TSTGoose/XMLParser/config"
	"github.com/TSTGoose/XMLParser/plan"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Dict:  plan.DefaultDictionary(common.UnknownKeyPolicyTransliterate),
		Opts:  plan.DefaultOptions(),
	}
}

// ApplyConfig builds translation dictionary and extraction field lists from
// loaded configuration. Additional translations from dictionary file override
// built-in ones.
func (e *LocalEnv) ApplyConfig() error {
	if e.Cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	doc := &e.Cfg.Document

	e.Format = doc.OutputFormat
	e.Dict = plan.DefaultDictionary(doc.UnknownKeys)
	if len(doc.DictionaryPath) > 0 {
		keys, err := config.LoadDictionary(doc.DictionaryPath)
		if err != nil {
			return err
		}
		e.Dict = e.Dict.WithOverrides(keys)
		if e.Log != nil {
			e.Log.Debug("Dictionary loaded", zap.String("path", doc.DictionaryPath), zap.Int("additional", len(keys)), zap.Int("total", e.Dict.Len()))
		}
	}

	e.Opts = plan.Options{
		DisciplineFields:     doc.Discipline.Fields,
		DisciplineExclusions: doc.Discipline.Exclusions,
		DisciplineSkipNames:  doc.Discipline.SkipNames,
		DisciplineExpect:     doc.Discipline.Expect,
		PracticeExclusions:   doc.Practice.Exclusions,
		CompetenceExclusions: doc.Competence.Exclusions,
	}
	return nil
}

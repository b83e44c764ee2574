package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"github.com/TSTGoose/XMLParser/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	DisciplineConfig struct {
		Fields     []string `yaml:"fields" validate:"min=1,dive,required"`
		Exclusions []string `yaml:"exclusions" validate:"dive,required"`
		SkipNames  []string `yaml:"skip_names" validate:"dive,required"`
		Expect     []string `yaml:"expect" validate:"dive,required"`
	}

	ExclusionsConfig struct {
		Exclusions []string `yaml:"exclusions" validate:"dive,required"`
	}

	DocumentConfig struct {
		OutputFormat          common.OutputFmt        `yaml:"output_format"`
		Indent                int                     `yaml:"indent" validate:"min=0,max=8"`
		FileNameTransliterate bool                    `yaml:"file_name_transliterate"`
		UnknownKeys           common.UnknownKeyPolicy `yaml:"unknown_keys"`
		DictionaryPath        string                  `yaml:"dictionary_path" sanitize:"assure_file_access"`
		Workers               int                     `yaml:"workers" validate:"min=0,max=256"`
		Discipline            DisciplineConfig        `yaml:"discipline"`
		Practice              ExclusionsConfig        `yaml:"practice"`
		Competence            ExclusionsConfig        `yaml:"competence"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// LoadDictionary reads additional translations: YAML mapping of domain
// (source language) names to canonical keys.
func LoadDictionary(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}

	var keys map[string]string
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary file: %w", err)
	}
	for k, v := range keys {
		if len(k) == 0 || len(v) == 0 {
			return nil, fmt.Errorf("dictionary file %s: empty name in translation %q -> %q", path, k, v)
		}
	}
	return keys, nil
}

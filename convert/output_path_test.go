package convert

import (
	"path/filepath"
	"testing"

	"github.com/TSTGoose/XMLParser/common"
)

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		noDirs        bool
		transliterate bool
		format        common.OutputFmt
		want          string
	}{
		{"single file", "plan.xml", false, false, common.OutputFmtJson, filepath.Join("/output", "plan.json")},
		{"keep directories", filepath.Join("2022", "it", "plan.xml"), false, false, common.OutputFmtJson, filepath.Join("/output", "2022", "it", "plan.json")},
		{"no directories", filepath.Join("2022", "it", "plan.xml"), true, false, common.OutputFmtYaml, filepath.Join("/output", "plan.yaml")},
		{"double extension", "140402_68-22-Д-651.plm.xml", false, false, common.OutputFmtJson, filepath.Join("/output", "140402_68-22-Д-651.plm.json")},
		{"transliterate", filepath.Join("2022", "My Plan 2022.xml"), false, true, common.OutputFmtJson, filepath.Join("/output", "2022", "my-plan-2022.json")},
		{"leading dots", "..hidden.xml", true, false, common.OutputFmtJson, filepath.Join("/output", "hidden.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := setupTestEnv(t)
			env.NoDirs = tt.noDirs
			env.Format = tt.format
			env.Cfg.Document.FileNameTransliterate = tt.transliterate

			if got := buildOutputPath(tt.src, "/output", env); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

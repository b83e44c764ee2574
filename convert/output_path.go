package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/TSTGoose/XMLParser/config"
	"github.com/TSTGoose/XMLParser/state"
)

// buildOutputPath returns output file path for the source. Source directory
// structure is kept unless requested otherwise, file name is cleaned up and
// if requested transliterated.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	return filepath.Join(determineOutputDir(src, dst, env), buildFileName(src, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildFileName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Cfg.Document.FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName) + env.Format.Ext()
}

package config

import (
	"strings"
)

// CleanFileName removes characters not allowed in file names on current
// platform. Leading and trailing dots and spaces are trimmed, so plan names
// like "..plm" do not produce hidden files.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym < ' ' || strings.ContainsRune(forbiddenNameRunes, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.Trim(out, ". ")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

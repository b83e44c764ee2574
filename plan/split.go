package plan

import (
	"strings"
	"unicode"
)

// Split turns delimiter joined attribute value into sequence of tokens. Value
// is split when it contains "," or "&" and is not destined for name field
// (display names may legitimately contain both). All whitespace is removed
// before splitting, empty tokens are dropped. Otherwise raw string is returned
// unchanged.
func Split(raw, field string) any {
	if !(strings.ContainsAny(raw, ",&") && field != KeyName) {
		return raw
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	tokens := strings.FieldsFunc(stripped, func(r rune) bool {
		return r == ',' || r == '&'
	})
	if tokens == nil {
		tokens = []string{}
	}
	return tokens
}

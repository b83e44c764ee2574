package plan

import (
	"github.com/TSTGoose/XMLParser/diag"
)

// Record is normalized canonical-key mapping. Values are limited to string,
// int, []string, Record and []Record so record could be serialized by any
// encoder.
type Record map[string]any

// Result of a single document extraction.
type Result struct {
	Record      Record
	Diagnostics diag.List
}

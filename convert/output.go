package convert

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/TSTGoose/XMLParser/common"
)

// writeDocument serializes normalized document into a file.
func writeDocument(path string, doc any, format common.OutputFmt, indent int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := encodeDocument(w, doc, format, indent); err != nil {
		return err
	}
	return w.Flush()
}

// encodeDocument keeps non-ASCII text as is, source documents are mostly
// Cyrillic. Zero indent produces compact JSON and default YAML layout.
func encodeDocument(w io.Writer, doc any, format common.OutputFmt, indent int) error {
	switch format {
	case common.OutputFmtJson:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}
		return enc.Encode(doc)
	case common.OutputFmtYaml:
		enc := yaml.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %s", format)
}

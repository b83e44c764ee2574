package xmltree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Parse reads XML document and returns its root element. Source encoding is
// taken from XML declaration, plan exports are frequently windows-1251.
func Parse(r io.Reader) (Node, error) {
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read XML: %w", err)
	}
	return root(doc)
}

// ParseString is Parse for in-memory documents.
func ParseString(s string) (Node, error) {
	doc := newDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("unable to read XML: %w", err)
	}
	return root(doc)
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader,
		ValidateInput: false,
		Permissive:    true,
	}
	return doc
}

func root(doc *etree.Document) (Node, error) {
	r := doc.Root()
	if r == nil {
		return nil, errors.New("document has no root element")
	}
	return Wrap(r), nil
}

// charsetReader converts single byte and multibyte encodings to UTF-8. Wide
// encodings cannot reach XML decoder undecoded, such documents are converted
// by caller based on BOM, so their declarations are ignored.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") || strings.HasPrefix(strings.ToLower(label), "utf-32") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// Package diag defines conditions detected while normalizing documents and a
// collector for the recoverable ones.
package diag

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

var (
	// ErrUnknownKey - tag or attribute name is absent from translation dictionary.
	ErrUnknownKey = errors.New("unknown key")
	// ErrMalformedRow - element lacks attributes required to classify it, row is skipped.
	ErrMalformedRow = errors.New("malformed row")
	// ErrStructuralMismatch - expected child elements are absent, empty sequence is emitted.
	ErrStructuralMismatch = errors.New("structural mismatch")
	// ErrMissingValue - expected scalar value is absent, empty string is emitted.
	ErrMissingValue = errors.New("missing value")
	// ErrPathNotFound - mandatory part of the document is absent, extraction is aborted.
	ErrPathNotFound = errors.New("path not found")
)

// Diagnostic describes single recoverable problem found in the source document.
type Diagnostic struct {
	// Path is slash separated location of the element in the document, with
	// 1-based position of repeated elements: "План/СтрокиПлана/Строка[3]".
	Path string
	// Key is domain attribute or tag name when relevant.
	Key string
	Err error
}

func (d Diagnostic) Error() string {
	if len(d.Key) > 0 {
		return fmt.Sprintf("%s [%s]: %v", d.Path, d.Key, d.Err)
	}
	return fmt.Sprintf("%s: %v", d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (d Diagnostic) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("path", d.Path)
	if len(d.Key) > 0 {
		enc.AddString("key", d.Key)
	}
	enc.AddString("problem", d.Err.Error())
	return nil
}

// List accumulates diagnostics in the order they were detected.
// NOTE: not to be used concurrently, every extraction owns its list.
type List []Diagnostic

// Add records new diagnostic.
func (l *List) Add(path, key string, err error) {
	*l = append(*l, Diagnostic{Path: path, Key: key, Err: err})
}

func (l List) Len() int {
	return len(l)
}

// Count returns number of diagnostics of particular kind.
func (l List) Count(kind error) int {
	n := 0
	for _, d := range l {
		if errors.Is(d, kind) {
			n++
		}
	}
	return n
}

// Err combines all diagnostics into single error, nil if list is empty.
func (l List) Err() error {
	var err error
	for _, d := range l {
		err = multierr.Append(err, d)
	}
	return err
}

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (l List) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, d := range l {
		if err := enc.AppendObject(d); err != nil {
			return err
		}
	}
	return nil
}

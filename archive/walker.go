// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// Entry is a regular file found in archive.
type Entry struct {
	// Name is entry path inside archive, decoded when archive was produced
	// without UTF-8 names.
	Name string
	File *zip.File
}

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. If an error is returned, processing stops.
type WalkFunc func(archive string, entry Entry) error

// Walk walks all regular files in the archive with (decoded) names starting
// with prefix, calling walkFn for each item. When cp is not nil it is used to
// decode names of entries not marked as UTF-8 - old Windows archivers store
// names in OEM or ANSI code page. Entries with absolute paths or ".."
// components are skipped.
func Walk(archive, prefix string, cp encoding.Encoding, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := entryName(f, cp)
		if !isSafePath(name) || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(archive, Entry{Name: name, File: f}); err != nil {
			return err
		}
	}
	return nil
}

func entryName(f *zip.File, cp encoding.Encoding) string {
	if cp == nil || !f.NonUTF8 {
		return f.Name
	}
	if name, err := cp.NewDecoder().String(f.Name); err == nil {
		return name
	}
	return f.Name
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

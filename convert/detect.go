package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// number of bytes sufficient to recognize file type, multiple of 4 so wide
// encodings are never cut in the middle of code unit
const headSize = 512

var typeXML = filetype.NewType("xml", "application/xml")

func init() {
	filetype.AddMatcher(typeXML, matchXML)
}

// matchXML expects UTF-8 (or ASCII compatible) buffer without BOM.
func matchXML(buf []byte) bool {
	buf = bytes.TrimLeft(buf, " \t\r\n")
	return bytes.HasPrefix(buf, []byte("<?xml")) || (len(buf) > 1 && buf[0] == '<' && buf[1] != '!')
}

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUnknown:
		return "unknown"
	case encUTF8:
		return "utf8"
	case encUTF16BigEndian:
		return "utf16be"
	case encUTF16LittleEndian:
		return "utf16le"
	case encUTF32BigEndian:
		return "utf32be"
	case encUTF32LittleEndian:
		return "utf32le"
	}
	return "invalid"
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for byte order mark. UTF-32LE mark starts with UTF-16LE
// one, so it has to be checked first.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 for documents with BOM. Without
// BOM document is returned as is and its XML declaration decides.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	}
	// this should never happen
	panic("unsupported source encoding")
}

// detectXML checks document head. Returned encoding is to be used with
// selectReader.
func detectXML(head []byte) (bool, srcEncoding) {
	enc := detectUTF(head)

	// partial trailing code unit is of no interest here
	decoded, _ := io.ReadAll(selectReader(bytes.NewReader(head), enc))
	return filetype.IsType(decoded, typeXML), enc
}

func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, headSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func readFileHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readHead(f)
}

// isArchiveFile reports whether file is zip archive, both extension and
// content are checked.
func isArchiveFile(path string) (bool, error) {
	head, err := readFileHead(path)
	if err != nil {
		return false, err
	}
	if !hasExt(path, ".zip") {
		return false, nil
	}
	return filetype.Is(head, "zip"), nil
}

// isPlanFile reports whether file looks like XML document worth parsing.
func isPlanFile(path string) (bool, srcEncoding, error) {
	head, err := readFileHead(path)
	if err != nil {
		return false, encUnknown, err
	}
	if !hasExt(path, ".xml") {
		return false, encUnknown, nil
	}
	ok, enc := detectXML(head)
	return ok, enc, nil
}

// isPlanInArchive is isPlanFile for archive entry, name is already decoded.
func isPlanInArchive(name string, f *zip.File) (bool, srcEncoding, error) {
	if !hasExt(name, ".xml") {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return false, encUnknown, err
	}
	ok, enc := detectXML(head)
	return ok, enc, nil
}

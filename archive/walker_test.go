package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

type zipItem struct {
	name    string
	content string
	nonUTF8 bool
}

func makeZip(t *testing.T, items []zipItem) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "plans.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, it := range items {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: it.name, Method: zip.Deflate, NonUTF8: it.nonUTF8})
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", it.name, err)
		}
		if _, err := io.WriteString(fw, it.content); err != nil {
			t.Fatalf("Failed to write %s: %v", it.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func collect(t *testing.T, zipPath, prefix string) []string {
	t.Helper()

	var visited []string
	err := Walk(zipPath, prefix, nil, func(archive string, e Entry) error {
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, e.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, []zipItem{
		{name: "2022/plan1.xml", content: "<План/>"},
		{name: "2022/plan2.xml", content: "<План/>"},
		{name: "2022/"},
		{name: "2023/plan3.xml", content: "<План/>"},
		{name: "readme.txt", content: "text"},
	})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"2022/", []string{"2022/plan1.xml", "2022/plan2.xml"}},
		{"2023/plan3.xml", []string{"2023/plan3.xml"}},
		{"", []string{"2022/plan1.xml", "2022/plan2.xml", "2023/plan3.xml", "readme.txt"}},
		{"2024/", nil},
		{"README", nil},
	}

	for _, tt := range tests {
		t.Run("prefix "+tt.prefix, func(t *testing.T) {
			if got := collect(t, zipPath, tt.prefix); !slices.Equal(got, tt.want) {
				t.Errorf("Walk() visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_CodePage(t *testing.T) {
	cp := charmap.CodePage866
	encoded, err := cp.NewEncoder().String("планы/физика.xml")
	if err != nil {
		t.Fatal(err)
	}
	zipPath := makeZip(t, []zipItem{{name: encoded, content: "<План/>", nonUTF8: true}})

	var names []string
	err = Walk(zipPath, "планы/", cp, func(_ string, e Entry) error {
		names = append(names, e.Name)
		if e.File == nil {
			t.Error("entry without file")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if !slices.Equal(names, []string{"планы/физика.xml"}) {
		t.Errorf("Walk() visited %q", names)
	}

	// without code page name is left as is
	if got := collect(t, zipPath, ""); !slices.Equal(got, []string{encoded}) {
		t.Errorf("Walk() visited %q", got)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := makeZip(t, []zipItem{
		{name: "a.xml"}, {name: "b.xml"}, {name: "c.xml"},
	})

	var visited int
	stopErr := errors.New("stop walking")
	err := Walk(zipPath, "", nil, func(string, Entry) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalk_FileContent(t *testing.T) {
	zipPath := makeZip(t, []zipItem{{name: "plan.xml", content: "<План/>"}})

	err := Walk(zipPath, "", nil, func(_ string, e Entry) error {
		rc, err := e.File.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if string(data) != "<План/>" {
			t.Errorf("content = %s", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk("/nonexistent/file.zip", "", nil, func(string, Entry) error { return nil }); err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.xml")
		if err := os.WriteFile(path, []byte("<План/>"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(path, "", nil, func(string, Entry) error { return nil }); err == nil {
			t.Error("Expected error for invalid zip")
		}
	})
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		safe bool
	}{
		{"plan.xml", true},
		{"a/b/plan.xml", true},
		{"a/..b/plan.xml", true},
		{"../plan.xml", false},
		{"a/../../plan.xml", false},
		{"/etc/passwd", false},
		{`\windows\plan.xml`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.safe {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.safe)
		}
	}
}

package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readReport(t *testing.T, name string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport(t *testing.T) {
	dir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "plan.xml")
	if err := os.WriteFile(src, []byte("<План/>"), 0644); err != nil {
		t.Fatal(err)
	}
	logs := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logs, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logs, "a.log"), []byte("log"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("logs", logs)
	r.Store("absent", filepath.Join(dir, "nothing-here"))
	r.StoreData("dump.txt", []byte("first"))
	r.StoreData("dump.txt", []byte("second"))
	if err := r.StoreCopy("source/plan.xml", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// copy is taken at the time of the call
	if err := os.WriteFile(src, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readReport(t, r.Name())
	if files["source/plan.xml"] != "<План/>" {
		t.Errorf("stored copy = %q", files["source/plan.xml"])
	}
	if files["dump.txt"] != "first" {
		t.Errorf("dump.txt = %q", files["dump.txt"])
	}
	if files["logs/a.log"] != "log" {
		t.Errorf("logs/a.log = %q", files["logs/a.log"])
	}
	if _, ok := files["absent"]; ok {
		t.Error("absent file must be skipped")
	}

	var versioned int
	for name := range files {
		if strings.HasPrefix(name, "dump.txt-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected versioned copy of dump.txt, got %v", files)
	}
	if !strings.Contains(files["MANIFEST"], "source/plan.xml") {
		t.Errorf("MANIFEST does not list stored copy:\n%s", files["MANIFEST"])
	}
}

func TestReportClose_RemovesCopies(t *testing.T) {
	dir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "plan.xml")
	if err := os.WriteFile(src, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("plan.xml", src); err != nil {
		t.Fatal(err)
	}

	var scratch string
	for _, e := range r.entries {
		scratch = e.scratch
	}
	if len(scratch) == 0 {
		t.Fatal("copy was not made")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		os.RemoveAll(scratch)
		t.Error("temporary copy was not removed")
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source must not be removed: %v", err)
	}
}

func TestReport_StoreCopyErrors(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.StoreCopy("x", filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for absent file")
	}
	if err := r.StoreCopy("x", t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}

func TestReport_Concurrent(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			r.StoreData("diagnostics.txt", []byte("x"))
		})
	}
	wg.Wait()

	if len(r.entries) != 16 {
		t.Errorf("expected 16 entries, got %d", len(r.entries))
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("Name() on nil report should be empty")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

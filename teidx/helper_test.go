package teidx

import (
	"bytes"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/bgzf"
)

// writeBgzfFile writes lines (each newline-terminated, one bgzf block per
// line so every line starts at a distinct virtual position) to path.
func writeBgzfFile(t *testing.T, path string, lines []string) {
	t.Helper()
	var buf bytes.Buffer
	w := bgzf.NewWriter(&buf, 1)
	for _, line := range lines {
		if _, err := w.Write([]byte(line + "\n")); err != nil {
			t.Fatalf("writing line: %v", err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("flushing block: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing bgzf writer: %v", err)
	}
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// testLogger returns a *log.Logger discarding output, for tests that only
// care about return values.
func testLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

// buildFixtureProject creates PROJECT/annot/*.bgz from the given
// per-file line sets and returns the project root.
func buildFixtureProject(t *testing.T, filesLines map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "annot")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, lines := range filesLines {
		writeBgzfFile(t, filepath.Join(dataDir, name), lines)
	}
	return root
}

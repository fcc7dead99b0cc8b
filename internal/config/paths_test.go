package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if !strings.HasSuffix(dataDir, ".quirknotes") {
		t.Fatalf("unexpected data dir: %s", dataDir)
	}

	cases := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{name: "config", fn: ConfigPath, want: "config.toml"},
		{name: "ui log", fn: UILogPath, want: "ui.log"},
		{name: "notes", fn: NotesPath, want: "notes.json"},
		{name: "notes db", fn: NotesDBPath, want: "notes.db"},
	}
	for _, tc := range cases {
		path, err := tc.fn()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if path != filepath.Join(dataDir, tc.want) {
			t.Fatalf("unexpected %s path: %s", tc.name, path)
		}
	}
}

package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		expectedDB string
		expectedEx string
	}{
		{
			name:       "sqlite defaults",
			config:     Config{DataDir: "data"},
			expectedDB: filepath.Join("data", "vegledger.db"),
			expectedEx: filepath.Join("data", "exports"),
		},
		{
			name:       "bolt extension",
			config:     Config{DataDir: "data", DatabaseExt: ".bolt"},
			expectedDB: filepath.Join("data", "vegledger.bolt"),
			expectedEx: filepath.Join("data", "exports"),
		},
		{
			name:       "explicit paths",
			config:     Config{DataDir: "data", DatabasePath: "/tmp/x.db", ExportDir: "/tmp/out"},
			expectedDB: "/tmp/x.db",
			expectedEx: "/tmp/out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.config)
			if p.GetDatabasePath() != tt.expectedDB {
				t.Errorf("GetDatabasePath() = %q, expected %q", p.GetDatabasePath(), tt.expectedDB)
			}
			if p.GetExportDir() != tt.expectedEx {
				t.Errorf("GetExportDir() = %q, expected %q", p.GetExportDir(), tt.expectedEx)
			}
		})
	}
}

func TestGetExportPath(t *testing.T) {
	p := New(Config{DataDir: "data"})

	got, err := p.GetExportPath("2024-01-15", "csv")
	if err != nil {
		t.Fatalf("GetExportPath() error: %v", err)
	}
	expected := filepath.Join("data", "exports", "2024", "business-history-2024-01-15.csv")
	if got != expected {
		t.Errorf("GetExportPath() = %q, expected %q", got, expected)
	}

	for _, bad := range []string{"", "2024-01", "15/01/2024"} {
		if _, err := p.GetExportPath(bad, "csv"); err == nil {
			t.Errorf("GetExportPath(%q) expected error", bad)
		}
	}
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	p := New(Config{DataDir: root})

	file := filepath.Join(root, "exports", "2024", "x.csv")
	if err := p.EnsureParentDir(file); err != nil {
		t.Fatalf("EnsureParentDir() error: %v", err)
	}
	if !p.FileExists(filepath.Dir(file)) {
		t.Error("parent directory not created")
	}
	if p.FileExists(file) {
		t.Error("FileExists() true for a file never written")
	}

	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !p.FileExists(file) {
		t.Error("FileExists() false for written file")
	}
}

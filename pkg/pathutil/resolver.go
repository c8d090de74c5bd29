// Package pathutil provides centralized path management for the data
// directory, database file and exports.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths for the database and exported files.
type PathResolver struct {
	databasePath string
	exportDir    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataDir is the root directory for all state (e.g., ./data)
	DataDir string
	// DatabasePath is the path to the database file
	DatabasePath string
	// DatabaseExt is the extension of the default database file (e.g., ".db")
	DatabaseExt string
	// ExportDir is the directory for history exports
	ExportDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataDir}/vegledger{DatabaseExt}
// If ExportDir is empty, it defaults to {DataDir}/exports
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		ext := config.DatabaseExt
		if ext == "" {
			ext = ".db"
		}
		dbPath = filepath.Join(config.DataDir, "vegledger"+ext)
	}

	exportDir := config.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(config.DataDir, "exports")
	}

	return &PathResolver{
		databasePath: dbPath,
		exportDir:    exportDir,
	}
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetExportDir returns the export directory.
func (p *PathResolver) GetExportDir() string {
	return p.exportDir
}

// GetExportPath returns the export file path for a business date.
// date should be in YYYY-MM-DD format and ext without the dot.
// Example: data/exports/2024/business-history-2024-01-15.csv
func (p *PathResolver) GetExportPath(date, ext string) (string, error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 || len(parts[0]) != 4 {
		return "", fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD", date)
	}

	filename := fmt.Sprintf("business-history-%s.%s", date, ext)
	return filepath.Join(p.exportDir, parts[0], filename), nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

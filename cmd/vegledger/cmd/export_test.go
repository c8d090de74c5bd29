package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"
)

// setupWorkspace points the CLI at a bolt store and users file under a
// temp dir and signs in as admin through the environment.
func setupWorkspace(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	hash, err := bcrypt.GenerateFromPassword([]byte("veg123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	usersFile := filepath.Join(dir, "users.yaml")
	users := fmt.Sprintf("users:\n  - username: admin\n    password_hash: %q\n    role: admin\n", hash)
	if err := os.WriteFile(usersFile, []byte(users), 0600); err != nil {
		t.Fatal(err)
	}

	chdirForTest(t, dir)
	t.Setenv("VEGLEDGER_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("VEGLEDGER_STORE", "bolt")
	t.Setenv("VEGLEDGER_DB_PATH", "")
	t.Setenv("VEGLEDGER_EXPORT_DIR", "")
	t.Setenv("VEGLEDGER_USERS_FILE", usersFile)
	t.Setenv("VEGLEDGER_USER", "admin")
	t.Setenv("VEGLEDGER_PASSWORD", "veg123")
	return dir
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	exportFormat, exportOut = "csv", ""
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, errOut, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, errOut)
	}
	return out
}

func TestExportDefaultsToBusinessDate(t *testing.T) {
	dir := setupWorkspace(t)

	mustRun(t, "set", "date", "2024-01-15")
	mustRun(t, "set", "buying", "veg", "1200")
	mustRun(t, "save")
	out := mustRun(t, "export")

	expected := filepath.Join(dir, "data", "exports", "2024", "business-history-2024-01-15.csv")
	data, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("export not written to %s: %v\n%s", expected, err, out)
	}
	if !strings.Contains(out, expected) {
		t.Errorf("output does not name %s:\n%s", expected, out)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "2024-01-15,") {
		t.Errorf("unexpected export:\n%s", data)
	}
}

func TestExportWarnsBeforeOverwrite(t *testing.T) {
	setupWorkspace(t)

	mustRun(t, "set", "date", "2024-02-01")
	mustRun(t, "save")

	_, errOut, err := runCLI(t, "export")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(errOut, "overwriting") {
		t.Errorf("warned on first export: %s", errOut)
	}

	_, errOut, err = runCLI(t, "export")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "Warning: overwriting") {
		t.Errorf("no overwrite warning, stderr:\n%s", errOut)
	}
}

func TestExportEmptyHistoryLeavesNoFile(t *testing.T) {
	dir := setupWorkspace(t)

	mustRun(t, "set", "date", "2024-03-01")
	if _, _, err := runCLI(t, "export"); err == nil {
		t.Fatal("export of empty history succeeded")
	}

	path := filepath.Join(dir, "data", "exports", "2024", "business-history-2024-03-01.csv")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("export file left behind: %v", err)
	}
}

func TestFailedCommandReleasesStore(t *testing.T) {
	dir := setupWorkspace(t)

	_, errOut, err := runCLI(t, "set", "date", "15/01/2024")
	if err == nil {
		t.Fatal("invalid date accepted")
	}
	if !strings.Contains(errOut, "failed to set date") {
		t.Errorf("stderr = %q", errOut)
	}

	// bbolt holds an exclusive file lock until the store is closed.
	db, err := bolt.Open(filepath.Join(dir, "data", "vegledger.bolt"), 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("store still locked after failed command: %v", err)
	}
	db.Close()
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

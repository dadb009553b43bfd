// Package testutil provides shared test helpers for setting up databases
// and resume directories.
package testutil

import (
	"os"
	"testing"

	"github.com/Madhuram99/ATS-SYSTEM/internal/resumes"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ats-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestResumes creates a temporary resume blob store.
func TestResumes(t *testing.T) *resumes.FS {
	t.Helper()
	fs, err := resumes.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

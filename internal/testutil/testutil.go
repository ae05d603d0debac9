// Package testutil provides shared test helpers for setting up journals and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/moodlog/internal/index"
	"github.com/starford/moodlog/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "moodlog-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestJournal creates a temporary journal directory with a storage.FS.
func TestJournal(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteDocument writes content to rel inside dir, creating parent directories.
func WriteDocument(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// SampleLog is a journal covering March 6-7, 2023 plus one weekly review.
const SampleLog = `Monday, March 6, 2023
Mood: 8/10
Focus: 7/10
Achievements:
- Finished report
- Went for a run
Challenges:
- Too many meetings
Notes: Productive start.

Tuesday, March 7, 2023
Mood: 6/10
Focus: 5/10
Achievements:
- Cleared inbox

Week of March 6-12, 2023
Overall mood: 7/10
Overall productivity: 6.5/10
Key achievements:
- Shipped the report
Challenges:
- Meetings
Goals for next week:
- Block focus time
`

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempJournal(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempJournal(t)
	content := []byte("Monday, March 6, 2023\nMood: 7/10\n")
	if err := s.Write("log.txt", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("log.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempJournal(t)
	if err := s.Write("2023/march.md", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("2023/march.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestReadMissingIsNotExist(t *testing.T) {
	s := tempJournal(t)
	_, err := s.Read("nope.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestDelete(t *testing.T) {
	s := tempJournal(t)
	_ = s.Write("del.txt", []byte("bye"))
	if err := s.Delete("del.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.txt"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestAppendSection(t *testing.T) {
	s := tempJournal(t)
	_ = s.Write("log.txt", []byte("Monday, March 6, 2023\nMood: 7/10\n\n\n"))
	if err := s.AppendSection("log.txt", "Weekly Analysis", "  Solid week.  "); err != nil {
		t.Fatalf("AppendSection: %v", err)
	}
	got, _ := s.Read("log.txt")
	want := "Monday, March 6, 2023\nMood: 7/10\n\nWeekly Analysis\nSolid week.\n"
	if string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAppendSection_CreatesDocument(t *testing.T) {
	s := tempJournal(t)
	if err := s.AppendSection("new.txt", "Monthly Analysis", "text"); err != nil {
		t.Fatalf("AppendSection: %v", err)
	}
	got, _ := s.Read("new.txt")
	if string(got) != "Monthly Analysis\ntext\n" {
		t.Errorf("content = %q", got)
	}
}

func TestList_FiltersExtensions(t *testing.T) {
	s := tempJournal(t)
	_ = s.Write("a.txt", []byte("a"))
	_ = s.Write("sub/b.md", []byte("b"))
	_ = s.Write("c.json", []byte("{}"))
	_ = os.WriteFile(filepath.Join(s.Root(), ".hidden.txt"), []byte("h"), 0o644)

	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(metas), metas)
	}
	for _, m := range metas {
		if m.Checksum == "" {
			t.Errorf("missing checksum for %s", m.Path)
		}
	}
}

func TestPathTraversalBlocked(t *testing.T) {
	s := tempJournal(t)
	if _, err := s.Read("../../etc/passwd"); err == nil {
		t.Error("expected traversal to be blocked")
	}
	if err := s.Write("../escape.txt", []byte("x")); err == nil {
		t.Error("expected traversal to be blocked")
	}
}

func TestNewFS_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	_ = os.WriteFile(f, []byte("x"), 0o644)
	if _, err := NewFS(f); err == nil {
		t.Error("expected error for non-directory root")
	}
}

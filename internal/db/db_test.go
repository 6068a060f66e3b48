package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM explanations").Scan(&count); err != nil {
		t.Fatalf("explanations table: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty table, got %d rows", count)
	}
	if d.Path() != ":memory:" {
		t.Errorf("unexpected path %q", d.Path())
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "termlens.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO explanations (term, display, explanation) VALUES ('git', 'Git', 'A time machine for files.')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer d.Close()

	var explanation string
	if err := d.QueryRow(`SELECT explanation FROM explanations WHERE term = 'git'`).Scan(&explanation); err != nil {
		t.Fatalf("select: %v", err)
	}
	if explanation != "A time machine for files." {
		t.Errorf("unexpected explanation %q", explanation)
	}
}

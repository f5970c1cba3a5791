package backup

import (
	"regexp"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if !store.Write("backup.json", `{"version":1}`) {
		t.Fatal("Write failed")
	}
	got, ok := store.Read("backup.json")
	if !ok {
		t.Fatal("Read failed")
	}
	if got != `{"version":1}` {
		t.Fatalf("Read = %q", got)
	}
}

func TestFileStoreReadMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, ok := store.Read("missing.json"); ok {
		t.Fatal("reading a missing file reported ok")
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	store.Write("card_spend_tracker_2026-01-01_08-00-00.json", "{}")
	store.Write("card_spend_tracker_2026-02-01_08-00-00.json", "{}")
	store.Write("notes.txt", "ignored")

	names := store.List()
	if len(names) != 2 {
		t.Fatalf("List = %v, want 2 json files", names)
	}
	if names[0] != "card_spend_tracker_2026-02-01_08-00-00.json" {
		t.Fatalf("List order = %v, want newest first", names)
	}
}

func TestFileStorePathStaysInBaseDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if got := store.Path("../../etc/passwd"); got != store.Path("passwd") {
		t.Fatalf("Path allowed traversal: %q", got)
	}
}

func TestGenerateFileName(t *testing.T) {
	manager, _ := newTestManager(t)
	name := manager.GenerateFileName()
	pattern := `^card_spend_tracker_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.json$`
	if !regexp.MustCompile(pattern).MatchString(name) {
		t.Fatalf("file name %q does not match %s", name, pattern)
	}
}

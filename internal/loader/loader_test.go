package loader

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"

	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

func writeSnapshotFile(t *testing.T, fs afero.Fs, path string, snap awr.Snapshot) {
	t.Helper()
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal fixture snapshot: %v", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		t.Fatalf("write fixture snapshot %q: %v", path, err)
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("10-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Begin != 10 || r.End != 20 {
		t.Errorf("expected Range{10,20}, got %+v", r)
	}
	if !r.Contains(15) || r.Contains(9) || r.Contains(21) {
		t.Errorf("Contains boundary check failed for %+v", r)
	}
}

func TestParseRangeErrors(t *testing.T) {
	cases := []string{"", "10", "20-10", "a-20", "10-b"}
	for _, c := range cases {
		if _, err := ParseRange(c); err == nil {
			t.Errorf("expected error for snap_range %q", c)
		}
	}
}

func TestLoadDirSortsAndFilters(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSnapshotFile(t, fs, "/snaps/200.snapshot.json", awr.Snapshot{BeginSnapID: 200, EndSnapID: 201})
	writeSnapshotFile(t, fs, "/snaps/100.snapshot.json", awr.Snapshot{BeginSnapID: 100, EndSnapID: 101})
	writeSnapshotFile(t, fs, "/snaps/300.snapshot.json", awr.Snapshot{BeginSnapID: 300, EndSnapID: 301})

	store, err := LoadDir(fs, "/snaps", Range{Begin: 100, End: 200})
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 snapshots within range, got %d", store.Len())
	}
	if store.Snapshots[0].BeginSnapID != 100 || store.Snapshots[1].BeginSnapID != 200 {
		t.Errorf("expected ascending order by BeginSnapID, got %v, %v",
			store.Snapshots[0].BeginSnapID, store.Snapshots[1].BeginSnapID)
	}
}

func TestLoadDirIgnoresNonMatchingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSnapshotFile(t, fs, "/snaps/100.snapshot.json", awr.Snapshot{BeginSnapID: 100})
	if err := afero.WriteFile(fs, "/snaps/readme.txt", []byte("not a snapshot"), 0o644); err != nil {
		t.Fatalf("write non-matching file: %v", err)
	}

	store, err := LoadDir(fs, "/snaps", Range{Begin: 0, End: 666666666})
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected only the matching snapshot file to be loaded, got %d", store.Len())
	}
}

func TestLoadDirEmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/empty", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadDir(fs, "/empty", Range{Begin: 0, End: 100}); err == nil {
		t.Error("expected error for a directory with no matching snapshot files")
	}
}

func TestLoadDirInvalidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/snaps/100.snapshot.json", []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write invalid snapshot: %v", err)
	}
	if _, err := LoadDir(fs, "/snaps", Range{Begin: 0, End: 100}); err == nil {
		t.Error("expected decode error for invalid JSON snapshot file")
	}
}

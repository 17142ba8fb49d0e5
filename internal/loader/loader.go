// Package loader reads a directory of AWR/STATSPACK snapshot JSON files into
// an in-memory awr.SnapshotStore. It is the concrete realization of the
// "external collaborator provides the input table" boundary: this package
// never parses a vendor report format, only the already-structured JSON an
// upstream extractor produced.
package loader

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

// SnapshotGlob is the filename pattern snapshot files must match.
const SnapshotGlob = "*.snapshot.json"

// Range is an inclusive [Begin, End] snapshot id filter.
type Range struct {
	Begin uint64
	End   uint64
}

// ParseRange parses a "BEGIN-END" string into a Range, requiring Begin <= End.
func ParseRange(s string) (Range, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Range{}, errors.Errorf("snap_range %q: expected BEGIN-END", s)
	}
	begin, err := cast.ToUint64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, errors.Wrapf(err, "snap_range %q: invalid begin", s)
	}
	end, err := cast.ToUint64E(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, errors.Wrapf(err, "snap_range %q: invalid end", s)
	}
	if begin > end {
		return Range{}, errors.Errorf("snap_range %q: begin %d greater than end %d", s, begin, end)
	}
	return Range{Begin: begin, End: end}, nil
}

// Contains reports whether id falls within the inclusive range.
func (r Range) Contains(id uint64) bool {
	return id >= r.Begin && id <= r.End
}

// LoadDir reads every file matching SnapshotGlob under dir, decodes each as
// an awr.Snapshot, sorts the result ascending by BeginSnapID, filters it
// through rng, and returns the resulting SnapshotStore.
func LoadDir(fs afero.Fs, dir string, rng Range) (*awr.SnapshotStore, error) {
	paths, err := afero.Glob(fs, filepath.Join(dir, SnapshotGlob))
	if err != nil {
		return nil, errors.Wrapf(err, "glob snapshot directory %q", dir)
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no files matching %q found under %q", SnapshotGlob, dir)
	}
	sort.Strings(paths)

	snapshots := make([]awr.Snapshot, 0, len(paths))
	for _, path := range paths {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "read snapshot file %q", path)
		}
		var snap awr.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, errors.Wrapf(err, "decode snapshot file %q", path)
		}
		if rng.Contains(snap.BeginSnapID) {
			snapshots = append(snapshots, snap)
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].BeginSnapID < snapshots[j].BeginSnapID
	})

	return &awr.SnapshotStore{Snapshots: snapshots}, nil
}

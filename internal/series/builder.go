// Package series builds snapshot-aligned time series (MetricSeries) from a
// SnapshotStore: per analysis domain, project the store onto a mapping of
// metric name to a vector of length N (the snapshot count), filling absent
// metrics with the sentinel -1.0.
package series

import (
	"github.com/elchinoo/jasmin-awr-analyzer/internal/staticdata"
	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

// Sentinel marks "metric not present in this snapshot".
const Sentinel = -1.0

// Series is a metric_name -> vector-of-length-N mapping.
type Series map[string][]float64

// build runs the two-pass algorithm shared by every domain: pass one
// collects the union of names seen across all snapshots, pass two allocates
// a sentinel-filled vector per name and overwrites the value present at
// each snapshot index.
func build(n int, perSnapshot func(i int) map[string]float64) Series {
	names := make(map[string]struct{})
	snapshotValues := make([]map[string]float64, n)
	for i := 0; i < n; i++ {
		values := perSnapshot(i)
		snapshotValues[i] = values
		for name := range values {
			names[name] = struct{}{}
		}
	}

	out := make(Series, len(names))
	for name := range names {
		vec := make([]float64, n)
		for i := range vec {
			vec[i] = Sentinel
		}
		out[name] = vec
	}

	for i, values := range snapshotValues {
		for name, value := range values {
			out[name][i] = value
		}
	}
	return out
}

// LoadProfile builds the per-second load-profile series.
func LoadProfile(store *awr.SnapshotStore) Series {
	return build(store.Len(), func(i int) map[string]float64 {
		snap := store.Snapshots[i]
		m := make(map[string]float64, len(snap.LoadProfile))
		for _, e := range snap.LoadProfile {
			m[e.StatName] = e.PerSecond
		}
		return m
	})
}

// waitEvents builds a wait-event series (total_wait_time_s), excluding idle
// events via isIdle.
func waitEvents(store *awr.SnapshotStore, pick func(snap awr.Snapshot) []awr.WaitEvent, isIdle func(string) bool) Series {
	return build(store.Len(), func(i int) map[string]float64 {
		events := pick(store.Snapshots[i])
		m := make(map[string]float64, len(events))
		for _, e := range events {
			if isIdle(e.Event) {
				continue
			}
			m[e.Event] = e.TotalWaitTimeS
		}
		return m
	})
}

// WaitEventsForeground builds the foreground wait-event series.
func WaitEventsForeground(store *awr.SnapshotStore, isIdle func(string) bool) Series {
	return waitEvents(store, func(s awr.Snapshot) []awr.WaitEvent { return s.WaitEventsForeground }, isIdle)
}

// WaitEventsBackground builds the background wait-event series.
func WaitEventsBackground(store *awr.SnapshotStore, isIdle func(string) bool) Series {
	return waitEvents(store, func(s awr.Snapshot) []awr.WaitEvent { return s.WaitEventsBackground }, isIdle)
}

func sqlSeries(store *awr.SnapshotStore, pick func(snap awr.Snapshot) []awr.SQLStat) Series {
	return build(store.Len(), func(i int) map[string]float64 {
		stats := pick(store.Snapshots[i])
		m := make(map[string]float64, len(stats))
		for _, s := range stats {
			m[s.SQLID] = s.Primary
		}
		return m
	})
}

// SQLElapsedTime, SQLCPUTime, SQLIOTime, SQLGets, SQLReads build the five
// SQL-section series, keyed by sql_id.
func SQLElapsedTime(store *awr.SnapshotStore) Series {
	return sqlSeries(store, func(s awr.Snapshot) []awr.SQLStat { return s.SQLElapsedTime })
}
func SQLCPUTime(store *awr.SnapshotStore) Series {
	return sqlSeries(store, func(s awr.Snapshot) []awr.SQLStat { return s.SQLCPUTime })
}
func SQLIOTime(store *awr.SnapshotStore) Series {
	return sqlSeries(store, func(s awr.Snapshot) []awr.SQLStat { return s.SQLIOTime })
}
func SQLGets(store *awr.SnapshotStore) Series {
	return sqlSeries(store, func(s awr.Snapshot) []awr.SQLStat { return s.SQLGets })
}
func SQLReads(store *awr.SnapshotStore) Series {
	return sqlSeries(store, func(s awr.Snapshot) []awr.SQLStat { return s.SQLReads })
}

func namedCounterSeries(store *awr.SnapshotStore, pick func(snap awr.Snapshot) []awr.NamedCounter) Series {
	return build(store.Len(), func(i int) map[string]float64 {
		counters := pick(store.Snapshots[i])
		m := make(map[string]float64, len(counters))
		for _, c := range counters {
			m[c.Name] = float64(c.Primary)
		}
		return m
	})
}

// InstanceStats builds the instance-statistics series, keyed by stat name.
func InstanceStats(store *awr.SnapshotStore) Series {
	return namedCounterSeries(store, func(s awr.Snapshot) []awr.NamedCounter { return s.InstanceStats })
}

// DictionaryCache builds the dictionary-cache series (get_requests).
func DictionaryCache(store *awr.SnapshotStore) Series {
	return namedCounterSeries(store, func(s awr.Snapshot) []awr.NamedCounter { return s.DictionaryCache })
}

// LibraryCache builds the library-cache series (pin_requests).
func LibraryCache(store *awr.SnapshotStore) Series {
	return namedCounterSeries(store, func(s awr.Snapshot) []awr.NamedCounter { return s.LibraryCache })
}

// LatchActivity builds the latch-activity series (get_requests).
func LatchActivity(store *awr.SnapshotStore) Series {
	return namedCounterSeries(store, func(s awr.Snapshot) []awr.NamedCounter { return s.LatchActivity })
}

// TimeModel builds the time-model series (time_s), keyed by stat name.
func TimeModel(store *awr.SnapshotStore) Series {
	return build(store.Len(), func(i int) map[string]float64 {
		stats := store.Snapshots[i].TimeModel
		m := make(map[string]float64, len(stats))
		for _, s := range stats {
			m[s.StatName] = s.TimeS
		}
		return m
	})
}

// DBTime builds the DB Time per-second series directly (not sentinel-filled:
// DB Time is expected in every snapshot and is the regression target, never
// itself treated as "possibly absent").
func DBTime(store *awr.SnapshotStore) []float64 {
	n := store.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = store.DBTimePerSecond(i)
	}
	return out
}

// DBCPU builds the DB CPU per-second series directly.
func DBCPU(store *awr.SnapshotStore) []float64 {
	n := store.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = store.DBCPUPerSecond(i)
	}
	return out
}

// SplitInstanceStats partitions an InstanceStats series into the three
// gradient-section groupings SPEC_FULL.md names (counters, volumes, time),
// using staticdata.Classify's closed membership lists. A stat matching none
// of the three (staticdata.Unknown) is omitted from all three groups.
func SplitInstanceStats(s Series) (counters, volumes, timeStats Series) {
	counters = make(Series)
	volumes = make(Series)
	timeStats = make(Series)
	for name, values := range s {
		switch staticdata.Classify(name) {
		case staticdata.Time:
			timeStats[name] = values
		case staticdata.Volume:
			volumes[name] = values
		case staticdata.Counter:
			counters[name] = values
		}
	}
	return counters, volumes, timeStats
}

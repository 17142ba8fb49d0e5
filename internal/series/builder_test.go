package series

import (
	"testing"

	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

func sampleStore() *awr.SnapshotStore {
	return &awr.SnapshotStore{
		Snapshots: []awr.Snapshot{
			{
				BeginSnapID: 1,
				LoadProfile: []awr.LoadProfileEntry{{StatName: "DB Time", PerSecond: 10}},
				WaitEventsForeground: []awr.WaitEvent{
					{Event: "db file sequential read", TotalWaitTimeS: 5},
					{Event: "SQL*Net message from client", TotalWaitTimeS: 99},
				},
			},
			{
				BeginSnapID: 2,
				LoadProfile: []awr.LoadProfileEntry{{StatName: "DB Time", PerSecond: 20}},
				WaitEventsForeground: []awr.WaitEvent{
					{Event: "db file sequential read", TotalWaitTimeS: 7},
					{Event: "log file sync", TotalWaitTimeS: 3},
				},
			},
			{
				BeginSnapID: 3,
				LoadProfile: []awr.LoadProfileEntry{{StatName: "DB Time", PerSecond: 30}},
			},
		},
	}
}

func TestSeriesLength(t *testing.T) {
	store := sampleStore()
	s := LoadProfile(store)
	for name, vec := range s {
		if len(vec) != store.Len() {
			t.Errorf("series %q has length %d, want %d", name, len(vec), store.Len())
		}
	}
}

func TestSeriesSentinelForAbsentMetric(t *testing.T) {
	store := sampleStore()
	s := WaitEventsForeground(store, func(string) bool { return false })

	logFileSync, ok := s["log file sync"]
	if !ok {
		t.Fatalf("expected 'log file sync' series to exist")
	}
	if logFileSync[0] != Sentinel {
		t.Errorf("snapshot 0 should be sentinel, got %v", logFileSync[0])
	}
	if logFileSync[1] != 3 {
		t.Errorf("snapshot 1 should be 3, got %v", logFileSync[1])
	}
	if logFileSync[2] != Sentinel {
		t.Errorf("snapshot 2 should be sentinel, got %v", logFileSync[2])
	}
}

func TestSeriesExcludesIdleEvents(t *testing.T) {
	store := sampleStore()
	isIdle := func(name string) bool { return name == "SQL*Net message from client" }
	s := WaitEventsForeground(store, isIdle)

	if _, ok := s["SQL*Net message from client"]; ok {
		t.Errorf("idle event should be excluded from series")
	}
	if _, ok := s["db file sequential read"]; !ok {
		t.Errorf("non-idle event should be present")
	}
}

func TestDBTime(t *testing.T) {
	store := sampleStore()
	dbTime := DBTime(store)
	want := []float64{10, 20, 30}
	for i := range want {
		if dbTime[i] != want[i] {
			t.Errorf("DBTime[%d] = %v, want %v", i, dbTime[i], want[i])
		}
	}
}

func TestSplitInstanceStats(t *testing.T) {
	s := Series{
		"physical reads":         {1, 2},
		"physical write bytes":   {5, 6},
		"redo write time":        {7, 8},
		"some unrecognized stat": {9, 10},
	}

	counters, volumes, timeStats := SplitInstanceStats(s)

	if _, ok := counters["physical reads"]; !ok {
		t.Errorf("expected 'physical reads' in counters")
	}
	if _, ok := volumes["physical write bytes"]; !ok {
		t.Errorf("expected 'physical write bytes' in volumes")
	}
	if _, ok := timeStats["redo write time"]; !ok {
		t.Errorf("expected 'redo write time' in timeStats")
	}

	if _, ok := counters["some unrecognized stat"]; ok {
		t.Errorf("unrecognized stat should not be classified as a counter")
	}
	if _, ok := volumes["some unrecognized stat"]; ok {
		t.Errorf("unrecognized stat should not be classified as a volume")
	}
	if _, ok := timeStats["some unrecognized stat"]; ok {
		t.Errorf("unrecognized stat should not be classified as a time stat")
	}
}

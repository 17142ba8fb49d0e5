// Package awr describes the data model produced by an external AWR/STATSPACK
// report parser and consumed by the analysis engine. The engine never parses
// a vendor report format itself; it only reads the shapes defined here.
package awr

// NamedCounter is the shape shared by dictionary cache, library cache, and
// latch activity entries: a name and its single primary counter.
type NamedCounter struct {
	Name    string `json:"name"`
	Primary uint64 `json:"primary"`
}

// LoadProfileEntry is one row of the AWR "Load Profile" section.
type LoadProfileEntry struct {
	StatName       string  `json:"stat_name"`
	PerSecond      float64 `json:"per_second"`
	PerTransaction float64 `json:"per_transaction"`
}

// WaitEvent is one row of a foreground or background wait event section.
type WaitEvent struct {
	Event           string             `json:"event"`
	Waits           uint64             `json:"waits"`
	TotalWaitTimeS  float64            `json:"total_wait_time_s"`
	AvgWaitMs       float64            `json:"avg_wait_ms"`
	PctDBTime       float64            `json:"pct_dbtime"`
	HistogramMs     map[string]float64 `json:"histogram_ms,omitempty"`
}

// SQLStat is the shape shared by all five SQL sections (elapsed/cpu/io/gets/
// reads); Primary carries the section's headline metric (elapsed_time_s,
// cpu_time_s, io_time_s, gets, or reads respectively).
type SQLStat struct {
	SQLID          string  `json:"sql_id"`
	Primary        float64 `json:"primary"`
	Executions     uint64  `json:"executions"`
	PerExec        float64 `json:"per_exec"`
	PctTotal       float64 `json:"pct_total"`
	PctCPU         float64 `json:"pct_cpu"`
	PctIO          float64 `json:"pct_io"`
	SQLModule      string  `json:"sql_module,omitempty"`
}

// TimeModelStat is one row of the AWR "Time Model Statistics" section.
type TimeModelStat struct {
	StatName  string  `json:"stat_name"`
	TimeS     float64 `json:"time_s"`
	PctDBTime float64 `json:"pct_dbtime"`
}

// HostCPU summarizes host-level CPU utilization for the snapshot window.
type HostCPU struct {
	CPUs         int     `json:"cpus"`
	Cores        int     `json:"cores"`
	Sockets      int     `json:"sockets"`
	LoadAvgBegin float64 `json:"load_avg_begin"`
	LoadAvgEnd   float64 `json:"load_avg_end"`
	PctUser      float64 `json:"pct_user"`
	PctSystem    float64 `json:"pct_system"`
	PctWIO       float64 `json:"pct_wio"`
	PctIdle      float64 `json:"pct_idle"`
}

// RedoLogStat is one row of the AWR "Redo Log" section.
type RedoLogStat struct {
	StatName string  `json:"stat_name"`
	PerHour  float64 `json:"per_hour"`
}

// SegmentStat is one row of a "Segments by <category>" section; Category
// names one of the eight top_10_segments_by_* report categories.
type SegmentStat struct {
	Category    string  `json:"category"`
	Owner       string  `json:"owner"`
	ObjectName  string  `json:"object_name"`
	ObjectType  string  `json:"object_type"`
	Value       float64 `json:"value"`
	PctOfTotal  float64 `json:"pct_of_total"`
}

// Snapshot is one AWR/STATSPACK snapshot window, immutable once constructed.
type Snapshot struct {
	BeginSnapID uint64 `json:"begin_snap_id"`
	EndSnapID   uint64 `json:"end_snap_id"`
	BeginTime   string `json:"begin_time"`
	EndTime     string `json:"end_time"`

	DBName       string `json:"db_name,omitempty"`
	InstanceName string `json:"instance_name,omitempty"`
	Release      string `json:"release,omitempty"`

	LoadProfile []LoadProfileEntry `json:"load_profile"`

	WaitEventsForeground []WaitEvent `json:"wait_events_foreground"`
	WaitEventsBackground []WaitEvent `json:"wait_events_background"`

	SQLElapsedTime []SQLStat `json:"sql_elapsed_time"`
	SQLCPUTime     []SQLStat `json:"sql_cpu_time"`
	SQLIOTime      []SQLStat `json:"sql_io_time"`
	SQLGets        []SQLStat `json:"sql_gets"`
	SQLReads       []SQLStat `json:"sql_reads"`

	InstanceStats   []NamedCounter `json:"instance_stats"`
	DictionaryCache []NamedCounter `json:"dictionary_cache"`
	LibraryCache    []NamedCounter `json:"library_cache"`
	LatchActivity   []NamedCounter `json:"latch_activity"`

	TimeModel []TimeModelStat `json:"time_model"`
	HostCPU   HostCPU          `json:"host_cpu"`
	RedoLog   []RedoLogStat    `json:"redo_log"`

	Segments []SegmentStat `json:"segments,omitempty"`
}

// SnapshotStore is an ordered sequence of Snapshots sorted ascending by
// BeginSnapID. It exclusively owns the Snapshots it holds.
type SnapshotStore struct {
	Snapshots []Snapshot
}

// Len returns N, the number of snapshots in the store.
func (s *SnapshotStore) Len() int {
	return len(s.Snapshots)
}

// DBTimePerSecond returns the load-profile "DB Time" per-second value for
// snapshot i, or 0 if absent.
func (s *SnapshotStore) DBTimePerSecond(i int) float64 {
	return loadProfileValue(s.Snapshots[i], "DB Time")
}

// DBCPUPerSecond returns the load-profile "DB CPU" per-second value for
// snapshot i, or 0 if absent.
func (s *SnapshotStore) DBCPUPerSecond(i int) float64 {
	return loadProfileValue(s.Snapshots[i], "DB CPU")
}

func loadProfileValue(snap Snapshot, prefix string) float64 {
	for _, entry := range snap.LoadProfile {
		if hasCaseInsensitivePrefix(entry.StatName, prefix) {
			return entry.PerSecond
		}
	}
	return 0
}

func hasCaseInsensitivePrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

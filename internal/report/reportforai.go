package report

import (
	"sort"

	"github.com/google/uuid"

	"github.com/elchinoo/jasmin-awr-analyzer/internal/anomaly"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/correlation"
	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

// GeneralData carries run-level identification: how many snapshots were
// analyzed, the snapshot/time range covered, and the effective
// configuration the run used.
type GeneralData struct {
	SnapshotCount int         `json:"snapshot_count"`
	BeginSnapID   uint64      `json:"begin_snap_id"`
	EndSnapID     uint64      `json:"end_snap_id"`
	BeginTime     string      `json:"begin_time"`
	EndTime       string      `json:"end_time"`
	DatabaseName  string      `json:"database_name,omitempty"`
	Instance      string      `json:"instance,omitempty"`
	Release       string      `json:"release,omitempty"`
	Config        interface{} `json:"config"`
}

// TopSpike is one snapshot flagged as a peak: DB CPU / DB Time is below the
// configured time_cpu_ratio threshold, i.e. CPU is a small share of DB Time.
type TopSpike struct {
	BeginSnapID             uint64          `json:"begin_snap_id"`
	BeginSnapTime           string          `json:"begin_snap_time"`
	DBTimePerSecond         float64         `json:"db_time_per_second"`
	DBCPUPerSecond          float64         `json:"db_cpu_per_second"`
	TopForegroundWaitEvents []awr.WaitEvent `json:"top_foreground_wait_events"`
	TopBackgroundWaitEvents []awr.WaitEvent `json:"top_background_wait_events"`
	TopSQLsByElapsedTime    []awr.SQLStat   `json:"top_sqls_by_elapsed_time"`
}

// WaitEventSummary is one wait event's run-wide total, annotated with how
// often it recurs in each snapshot's own top-10 list.
type WaitEventSummary struct {
	Event                   string  `json:"event"`
	TotalWaitTimeS          float64 `json:"total_wait_time_s"`
	PctOfTimesFoundInTopTen float64 `json:"pct_of_times_found_in_top_ten"`
}

// SQLSummary is one SQL id's run-wide elapsed time total, annotated with
// how often the same id also appears in the run's own CPU/IO/gets/reads
// top-10 lists.
type SQLSummary struct {
	SQLID                             string  `json:"sql_id"`
	ElapsedTimeS                      float64 `json:"elapsed_time_s"`
	PctOfTimesFoundInOtherTopSections float64 `json:"pct_of_times_found_in_other_top_sections"`
}

// IOFunctionStat aggregates physical I/O volume/request counters into one
// row with separate read and write columns; Function labels the row.
type IOFunctionStat struct {
	Function      string  `json:"function"`
	ReadRequests  float64 `json:"read_requests"`
	WriteRequests float64 `json:"write_requests"`
	ReadBytes     float64 `json:"read_bytes"`
	WriteBytes    float64 `json:"write_bytes"`
}

// LatchSummary is one latch's run-wide total get-request count. MissRate
// is left at 0 when no separate miss counter is available in the source
// NamedCounter data (the original report's miss-rate context depends on a
// second latch-misses counter this model does not carry).
type LatchSummary struct {
	Name        string  `json:"name"`
	GetRequests float64 `json:"get_requests"`
	MissRate    float64 `json:"miss_rate,omitempty"`
}

// ReportForAI is the full machine-readable report tree handed to a
// downstream LLM-based explainer, per SPEC_FULL.md §4.7/§6.
type ReportForAI struct {
	RunID       string      `json:"run_id"`
	GeneralData GeneralData `json:"general_data"`

	TopSpikesMarked         []TopSpike         `json:"top_spikes_marked"`
	TopForegroundWaitEvents []WaitEventSummary `json:"top_foreground_wait_events"`
	TopBackgroundWaitEvents []WaitEventSummary `json:"top_background_wait_events"`
	TopSQLsByElapsedTime    []SQLSummary       `json:"top_sqls_by_elapsed_time"`

	IOStatsByFunctionSummary []IOFunctionStat `json:"io_stats_by_function_summary"`
	LatchActivitySummary     []LatchSummary   `json:"latch_activity_summary"`

	Top10SegmentsByLogicalReads         []awr.SegmentStat `json:"top_10_segments_by_logical_reads"`
	Top10SegmentsByPhysicalReads        []awr.SegmentStat `json:"top_10_segments_by_physical_reads"`
	Top10SegmentsByBufferBusyWaits      []awr.SegmentStat `json:"top_10_segments_by_buffer_busy_waits"`
	Top10SegmentsByRowLockWaits         []awr.SegmentStat `json:"top_10_segments_by_row_lock_waits"`
	Top10SegmentsByITLWaits             []awr.SegmentStat `json:"top_10_segments_by_itl_waits"`
	Top10SegmentsByPhysicalWrites       []awr.SegmentStat `json:"top_10_segments_by_physical_writes"`
	Top10SegmentsByDirectPhysicalReads  []awr.SegmentStat `json:"top_10_segments_by_direct_physical_reads"`
	Top10SegmentsByDirectPhysicalWrites []awr.SegmentStat `json:"top_10_segments_by_direct_physical_writes"`

	InstanceStatsPearsonCorrelation []correlation.Entry `json:"instance_stats_pearson_correlation"`
	LoadProfileAnomalies            anomaly.Result      `json:"load_profile_anomalies"`
	AnomalyClusters                 []AnomalyCluster    `json:"anomaly_clusters"`

	DBTimeGradientFGWaitEvents           GradientSection `json:"db_time_gradient_fg_wait_events"`
	DBTimeGradientInstanceStatsCounters  GradientSection `json:"db_time_gradient_instance_stats_counters"`
	DBTimeGradientInstanceStatsVolumes   GradientSection `json:"db_time_gradient_instance_stats_volumes"`
	DBTimeGradientInstanceStatsTime      GradientSection `json:"db_time_gradient_instance_stats_time"`
	DBTimeGradientSQLElapsedTime         GradientSection `json:"db_time_gradient_sql_elapsed_time"`
	DBCPUGradientInstanceStats           GradientSection `json:"db_cpu_gradient_instance_stats"`
}

// NewRunID mints a fresh report identifier. Exported so the CLI layer can
// stamp it once per run rather than once per report field.
func NewRunID() string {
	return uuid.NewString()
}

// TopWaitEventSummaries ranks events by run-wide total wait time descending
// and reports, for each of the topN winners, the percentage of snapshots
// in which it also appeared within that snapshot's own top-10 by wait
// time. idle events are excluded from consideration entirely.
func TopWaitEventSummaries(snapshots []awr.Snapshot, pick func(awr.Snapshot) []awr.WaitEvent, isIdle func(string) bool, topN int) []WaitEventSummary {
	total := make(map[string]float64)
	perSnapshotTop := make([]map[string]bool, len(snapshots))

	for i, snap := range snapshots {
		events := pick(snap)
		filtered := make([]awr.WaitEvent, 0, len(events))
		for _, e := range events {
			if !isIdle(e.Event) {
				filtered = append(filtered, e)
				total[e.Event] += e.TotalWaitTimeS
			}
		}
		sort.SliceStable(filtered, func(a, b int) bool {
			return filtered[a].TotalWaitTimeS > filtered[b].TotalWaitTimeS
		})
		n := 10
		if n > len(filtered) {
			n = len(filtered)
		}
		top := make(map[string]bool, n)
		for _, e := range filtered[:n] {
			top[e.Event] = true
		}
		perSnapshotTop[i] = top
	}

	names := make([]string, 0, len(total))
	for name := range total {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool { return total[names[i]] > total[names[j]] })
	if topN < len(names) {
		names = names[:topN]
	}

	out := make([]WaitEventSummary, 0, len(names))
	for _, name := range names {
		count := 0
		for _, top := range perSnapshotTop {
			if top[name] {
				count++
			}
		}
		pct := 0.0
		if len(snapshots) > 0 {
			pct = 100 * float64(count) / float64(len(snapshots))
		}
		out = append(out, WaitEventSummary{
			Event:                   name,
			TotalWaitTimeS:          total[name],
			PctOfTimesFoundInTopTen: pct,
		})
	}
	return out
}

// TopSQLSummaries ranks SQL ids by run-wide elapsed-time total descending,
// and for each of the topN winners reports the percentage of the other 4
// top-10 sections (CPU, I/O, gets, reads) the same id also appears in.
func TopSQLSummaries(snapshots []awr.Snapshot, topN int) []SQLSummary {
	elapsed := sumSQLStat(snapshots, func(s awr.Snapshot) []awr.SQLStat { return s.SQLElapsedTime })
	otherTotals := []map[string]float64{
		sumSQLStat(snapshots, func(s awr.Snapshot) []awr.SQLStat { return s.SQLCPUTime }),
		sumSQLStat(snapshots, func(s awr.Snapshot) []awr.SQLStat { return s.SQLIOTime }),
		sumSQLStat(snapshots, func(s awr.Snapshot) []awr.SQLStat { return s.SQLGets }),
		sumSQLStat(snapshots, func(s awr.Snapshot) []awr.SQLStat { return s.SQLReads }),
	}
	otherTopSets := make([]map[string]bool, len(otherTotals))
	for i, totals := range otherTotals {
		otherTopSets[i] = topNNames(totals, 10)
	}

	names := make([]string, 0, len(elapsed))
	for id := range elapsed {
		names = append(names, id)
	}
	sort.SliceStable(names, func(i, j int) bool { return elapsed[names[i]] > elapsed[names[j]] })
	if topN < len(names) {
		names = names[:topN]
	}

	out := make([]SQLSummary, 0, len(names))
	for _, id := range names {
		count := 0
		for _, set := range otherTopSets {
			if set[id] {
				count++
			}
		}
		out = append(out, SQLSummary{
			SQLID:                             id,
			ElapsedTimeS:                      elapsed[id],
			PctOfTimesFoundInOtherTopSections: 100 * float64(count) / float64(len(otherTotals)),
		})
	}
	return out
}

func sumSQLStat(snapshots []awr.Snapshot, pick func(awr.Snapshot) []awr.SQLStat) map[string]float64 {
	total := make(map[string]float64)
	for _, snap := range snapshots {
		for _, s := range pick(snap) {
			total[s.SQLID] += s.Primary
		}
	}
	return total
}

func topNNames(totals map[string]float64, n int) map[string]bool {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool { return totals[names[i]] > totals[names[j]] })
	if n > len(names) {
		n = len(names)
	}
	set := make(map[string]bool, n)
	for _, name := range names[:n] {
		set[name] = true
	}
	return set
}

// ioFunctionCounterNames maps instance-statistic names to the
// IOFunctionStat field they accumulate into.
var ioFunctionCounterNames = map[string]func(*IOFunctionStat, float64){
	"physical read total bytes":        func(s *IOFunctionStat, v float64) { s.ReadBytes += v },
	"physical read total io requests":  func(s *IOFunctionStat, v float64) { s.ReadRequests += v },
	"physical write total bytes":       func(s *IOFunctionStat, v float64) { s.WriteBytes += v },
	"physical write total io requests": func(s *IOFunctionStat, v float64) { s.WriteRequests += v },
}

// BuildIOStatsByFunctionSummary aggregates the four physical I/O volume
// and request counters across every snapshot into a single summary row.
func BuildIOStatsByFunctionSummary(snapshots []awr.Snapshot) []IOFunctionStat {
	var stat IOFunctionStat
	stat.Function = "physical"
	for _, snap := range snapshots {
		for _, counter := range snap.InstanceStats {
			if apply, ok := ioFunctionCounterNames[counter.Name]; ok {
				apply(&stat, float64(counter.Primary))
			}
		}
	}
	return []IOFunctionStat{stat}
}

// BuildLatchActivitySummary ranks latches by run-wide total get-request
// count descending and returns the topN.
func BuildLatchActivitySummary(snapshots []awr.Snapshot, topN int) []LatchSummary {
	total := make(map[string]float64)
	for _, snap := range snapshots {
		for _, latch := range snap.LatchActivity {
			total[latch.Name] += float64(latch.Primary)
		}
	}
	names := make([]string, 0, len(total))
	for name := range total {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool { return total[names[i]] > total[names[j]] })
	if topN < len(names) {
		names = names[:topN]
	}
	out := make([]LatchSummary, 0, len(names))
	for _, name := range names {
		out = append(out, LatchSummary{Name: name, GetRequests: total[name]})
	}
	return out
}

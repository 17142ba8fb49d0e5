package report

import (
	"sort"

	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

// topNWaitEvents returns the topN non-idle events of snap by total wait time
// descending.
func topNWaitEvents(events []awr.WaitEvent, isIdle func(string) bool, n int) []awr.WaitEvent {
	filtered := make([]awr.WaitEvent, 0, len(events))
	for _, e := range events {
		if !isIdle(e.Event) {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].TotalWaitTimeS > filtered[j].TotalWaitTimeS
	})
	if n > len(filtered) {
		n = len(filtered)
	}
	return filtered[:n]
}

// topNSQLStats returns the topN SQLStat entries of stats by Primary
// descending.
func topNSQLStats(stats []awr.SQLStat, n int) []awr.SQLStat {
	sorted := make([]awr.SQLStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Primary > sorted[j].Primary })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// BuildTopSpikes flags every snapshot where DB CPU / DB Time falls below
// timeCPURatio (a peak in which CPU is a small share of DB Time, per
// SPEC_FULL.md's "top_spikes_marked"),
// carrying that snapshot's top-10 foreground/background wait events and
// top-10 SQLs by elapsed time. filterDBTime, when non-zero, additionally
// requires DB Time per second to exceed it before a snapshot qualifies,
// matching find_top_stats's filter_db_time gate in analyze.rs.
func BuildTopSpikes(store *awr.SnapshotStore, timeCPURatio, filterDBTime float64, isIdle func(string) bool) []TopSpike {
	var spikes []TopSpike
	for i, snap := range store.Snapshots {
		dbTime := store.DBTimePerSecond(i)
		dbCPU := store.DBCPUPerSecond(i)
		if dbTime <= 0 || dbCPU <= 0 || dbCPU/dbTime >= timeCPURatio {
			continue
		}
		if filterDBTime != 0 && dbTime <= filterDBTime {
			continue
		}
		spikes = append(spikes, TopSpike{
			BeginSnapID:             snap.BeginSnapID,
			BeginSnapTime:           snap.BeginTime,
			DBTimePerSecond:         dbTime,
			DBCPUPerSecond:          dbCPU,
			TopForegroundWaitEvents: topNWaitEvents(snap.WaitEventsForeground, isIdle, 10),
			TopBackgroundWaitEvents: topNWaitEvents(snap.WaitEventsBackground, isIdle, 10),
			TopSQLsByElapsedTime:    topNSQLStats(snap.SQLElapsedTime, 10),
		})
	}
	return spikes
}

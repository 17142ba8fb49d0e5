// Package report implements the anomaly aggregator, CSV export, and the
// "report for AI" JSON tree assembly described in SPEC_FULL.md §4.7/§6.
package report

import "sort"

// AnomalyDescription names one flagged anomaly within a snapshot cluster.
type AnomalyDescription struct {
	AreaOfAnomaly string `json:"area_of_anomaly"`
	StatisticName string `json:"statistic_name"`
}

// AnomalyCluster groups every anomaly detected for one snapshot, keyed by
// its begin-snapshot identity.
type AnomalyCluster struct {
	BeginSnapID       uint64               `json:"begin_snap_id"`
	BeginSnapDate     string               `json:"begin_snap_date"`
	AnomaliesDetected []AnomalyDescription `json:"anomalies_detected"`
	NumberOfAnomalies uint64               `json:"number_of_anomalies"`
}

// Key identifies one snapshot for clustering purposes.
type Key struct {
	SnapID   uint64
	SnapDate string
}

// Summary accumulates anomaly details per snapshot per anomaly-type label
// (e.g. "load_profile", "wait_events_foreground"), mirroring the original
// implementation's BTreeMap<(u64, String), BTreeMap<String, Vec<String>>>.
type Summary map[Key]map[string][]string

// NewSummary returns an empty anomaly summary.
func NewSummary() Summary {
	return make(Summary)
}

// Join records one anomaly detail under the given snapshot key and
// anomaly-type label.
func (s Summary) Join(key Key, anomalyType, detail string) {
	inner, ok := s[key]
	if !ok {
		inner = make(map[string][]string)
		s[key] = inner
	}
	inner[anomalyType] = append(inner[anomalyType], detail)
}

// Clusters returns one AnomalyCluster per snapshot key, ordered ascending
// by (SnapID, SnapDate) to match the original's BTreeMap key order, with
// anomaly detail lines ordered by anomaly-type label ascending (map
// iteration over the type labels is also made deterministic by sorting).
func (s Summary) Clusters() []AnomalyCluster {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].SnapID != keys[j].SnapID {
			return keys[i].SnapID < keys[j].SnapID
		}
		return keys[i].SnapDate < keys[j].SnapDate
	})

	clusters := make([]AnomalyCluster, 0, len(keys))
	for _, key := range keys {
		byType := s[key]
		types := make([]string, 0, len(byType))
		for t := range byType {
			types = append(types, t)
		}
		sort.Strings(types)

		var detected []AnomalyDescription
		for _, anomalyType := range types {
			for _, detail := range byType[anomalyType] {
				detected = append(detected, AnomalyDescription{
					AreaOfAnomaly: anomalyType,
					StatisticName: detail,
				})
			}
		}

		clusters = append(clusters, AnomalyCluster{
			BeginSnapID:       key.SnapID,
			BeginSnapDate:     key.SnapDate,
			AnomaliesDetected: detected,
			NumberOfAnomalies: uint64(len(detected)),
		})
	}
	return clusters
}

// Package correlation implements the correlation analyzer: Pearson
// correlation of each instance-statistic series against the DB Time series,
// retaining only strong correlations.
package correlation

import (
	"math"
	"sort"

	"github.com/elchinoo/jasmin-awr-analyzer/internal/series"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/statistics"
)

// MinAbsCorrelation is the retention threshold |ρ| >= 0.5.
const MinAbsCorrelation = 0.5

// Entry is one retained correlation result.
type Entry struct {
	Name        string  `json:"name"`
	Correlation float64 `json:"correlation"`
}

// Analyze computes Pearson correlation between each metric series and
// dbTime, retaining only entries with |rho| >= MinAbsCorrelation. Length
// mismatches between a metric vector and dbTime are skipped (logged by the
// caller via the returned skipped list), never fatal. The result is ordered
// by the stable key (round(rho*1000), name) ascending, matching the
// original's BTreeMap-keyed ordering.
func Analyze(metrics series.Series, dbTime []float64) (entries []Entry, skipped []string) {
	type keyed struct {
		key  int64
		name string
		rho  float64
	}
	var kept []keyed

	// Sort names first so iteration order (and therefore tie-breaking among
	// equal keys) is deterministic regardless of map iteration order.
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := metrics[name]
		if len(values) != len(dbTime) {
			skipped = append(skipped, name)
			continue
		}
		rho, ok := statistics.PearsonCorrelation(values, dbTime)
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		if math.Abs(rho) < MinAbsCorrelation {
			continue
		}
		kept = append(kept, keyed{key: int64(math.Round(rho * 1000)), name: name, rho: rho})
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].key != kept[j].key {
			return kept[i].key < kept[j].key
		}
		return kept[i].name < kept[j].name
	})

	entries = make([]Entry, len(kept))
	for i, k := range kept {
		entries[i] = Entry{Name: k.name, Correlation: k.rho}
	}
	return entries, skipped
}

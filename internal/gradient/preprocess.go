package gradient

import (
	"fmt"
	"math"
	"sort"

	"github.com/elchinoo/jasmin-awr-analyzer/internal/series"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/statistics"
)

// stdFloor replaces a zero or non-finite standard deviation so that
// standardization never divides by zero.
const stdFloor = 1e-12

// Preprocessed holds the first-difference, standardized inputs shared by
// all four gradient models.
type Preprocessed struct {
	// Names is the sorted list of event/stat/SQL identifiers, fixing a
	// deterministic feature order for every model (BTreeMap key order in
	// the original implementation).
	Names []string

	// DBTimeDelta is Δ(DB Time) over consecutive snapshots, length n-1.
	DBTimeDelta []float64

	// Standardized maps name -> standardized Δ(series), z = (Δ-mean)/std.
	Standardized map[string][]float64

	MeanByEvent map[string]float64
	StdByEvent  map[string]float64

	// MADByEvent is MAD(raw Δ(series)), used for impact ranking. May be 0
	// for a constant-delta series (internal/statistics.MAD semantics).
	MADByEvent map[string]float64
}

// Preprocess validates and first-differences the DB Time series and every
// event/stat/SQL series, then standardizes each event delta series to zero
// mean / unit variance. It mirrors compute_db_time_gradient's setup phase.
func Preprocess(dbTime []float64, eventSeries series.Series) (*Preprocessed, error) {
	if len(dbTime) < 3 {
		return nil, newError(KindInputShape, "", "DB Time series must have at least 3 samples")
	}
	if len(eventSeries) == 0 {
		return nil, newError(KindInputShape, "", "event series map is empty")
	}

	timeLen := len(dbTime)
	names := make([]string, 0, len(eventSeries))
	for name, values := range eventSeries {
		if len(values) != timeLen {
			return nil, newError(KindInputShape, name,
				fmt.Sprintf("series has length %d, expected %d (same as DB Time)", len(values), timeLen))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	dbTimeDelta := deltas(dbTime)

	deltaByEvent := make(map[string][]float64, len(names))
	for _, name := range names {
		values := eventSeries[name]
		if len(values) < 2 {
			return nil, newError(KindInputShape, name, "series must have at least 2 samples")
		}
		deltaByEvent[name] = deltas(values)
	}

	meanByEvent := make(map[string]float64, len(names))
	stdByEvent := make(map[string]float64, len(names))
	madByEvent := make(map[string]float64, len(names))
	standardized := make(map[string][]float64, len(names))

	for _, name := range names {
		d := deltaByEvent[name]

		mean, _ := statistics.Mean(d)
		meanByEvent[name] = mean

		var variance float64
		for _, v := range d {
			diff := v - mean
			variance += diff * diff
		}
		denom := float64(len(d))
		if denom < 1 {
			denom = 1
		}
		std := math.Sqrt(variance / denom)
		if std == 0 || math.IsNaN(std) || math.IsInf(std, 0) {
			std = stdFloor
		}
		stdByEvent[name] = std

		z := make([]float64, len(d))
		for i, v := range d {
			z[i] = (v - mean) / std
		}
		standardized[name] = z

		madByEvent[name] = statistics.MAD(d, statistics.Median(d))
	}

	return &Preprocessed{
		Names:        names,
		DBTimeDelta:  dbTimeDelta,
		Standardized: standardized,
		MeanByEvent:  meanByEvent,
		StdByEvent:   stdByEvent,
		MADByEvent:   madByEvent,
	}, nil
}

func deltas(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for t := 0; t < len(values)-1; t++ {
		out[t] = values[t+1] - values[t]
	}
	return out
}

// madOfSlice is the MAD that scales the Huber delta in Compute (impact
// ranking uses MADByEvent instead): unlike internal/statistics.MAD, it
// returns 1.0 for an empty input or a zero MAD rather than 0, so the Huber
// delta derived from it is never 0.
func madOfSlice(values []float64) float64 {
	if len(values) == 0 {
		return 1.0
	}
	med := statistics.Median(values)
	result := statistics.MAD(values, med)
	if result == 0.0 {
		return 1.0
	}
	return result
}

// Package anomaly implements the MAD (Median Absolute Deviation) anomaly
// detector, in both its full-window and parallel sliding-window forms.
package anomaly

import (
	"math"

	"github.com/sourcegraph/conc/pool"

	"github.com/elchinoo/jasmin-awr-analyzer/internal/series"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/statistics"
)

// Point is one flagged anomalous sample.
type Point struct {
	SnapshotIndex int     `json:"-"`
	SnapshotTime  string  `json:"snapshot_time"`
	Value         float64 `json:"value"`
	MADScore      float64 `json:"mad_score"`
}

// Result maps metric name to its (non-empty) list of flagged points, in
// ascending snapshot-index order. Metrics with no anomalies are omitted.
type Result map[string][]Point

// DetectFullWindow computes one global median/MAD per metric over all of
// its samples. A metric with MAD == 0 (constant baseline) is skipped
// silently. Samples are flagged when |x[i]-median|/MAD > threshold and
// x[i] >= 0 (sentinel-excluded).
func DetectFullWindow(s series.Series, snapshotTimes []string, threshold float64) Result {
	out := make(Result)
	for name, values := range s {
		points := detectFullWindowOne(values, snapshotTimes, threshold)
		if len(points) > 0 {
			out[name] = points
		}
	}
	return out
}

func detectFullWindowOne(values []float64, snapshotTimes []string, threshold float64) []Point {
	med := statistics.Median(values)
	mad := statistics.MAD(values, med)
	if mad == 0 {
		return nil
	}
	var points []Point
	for i, v := range values {
		if v < 0 {
			continue
		}
		score := math.Abs(v-med) / mad
		if score > threshold {
			points = append(points, Point{SnapshotIndex: i, SnapshotTime: snapshotTimes[i], Value: v, MADScore: score})
		}
	}
	return points
}

// DetectSlidingWindow computes a per-sample local median/MAD over a
// centered window of width w = trunc(windowPct/100 * N) rounded up to an
// even integer (half = w/2). windowPct == 100 delegates to the full-window
// algorithm, matching the original implementation's performance shortcut
// (the two algorithms are identical in that case, see invariant 3 in
// SPEC_FULL.md §8).
//
// The per-metric computation runs in parallel across metrics using a
// bounded worker pool of the given degree (the one parallel region named
// in SPEC_FULL.md §5); each worker computes one metric's anomaly list
// independently, with no shared mutable state.
func DetectSlidingWindow(s series.Series, snapshotTimes []string, threshold float64, windowPct int, parallelism int) Result {
	if windowPct >= 100 {
		return DetectFullWindow(s, snapshotTimes, threshold)
	}

	n := len(snapshotTimes)
	w := slidingWindowWidth(windowPct, n)
	half := w / 2

	type namedPoints struct {
		name   string
		points []Point
	}

	if parallelism < 1 {
		parallelism = 1
	}
	p := pool.NewWithResults[namedPoints]().WithMaxGoroutines(parallelism)
	for name, values := range s {
		name, values := name, values
		p.Go(func() namedPoints {
			return namedPoints{name: name, points: detectSlidingWindowOne(values, snapshotTimes, threshold, w, half)}
		})
	}
	results := p.Wait()

	out := make(Result)
	for _, r := range results {
		if len(r.points) > 0 {
			out[r.name] = r.points
		}
	}
	return out
}

// slidingWindowWidth computes w = windowPct/100 * n truncated to an integer,
// rounded up to the next even integer if odd.
func slidingWindowWidth(windowPct, n int) int {
	w := int(float64(windowPct) / 100.0 * float64(n))
	if w%2 == 1 {
		w++
	}
	return w
}

func detectSlidingWindowOne(values []float64, snapshotTimes []string, threshold float64, w, half int) []Point {
	n := len(values)
	var points []Point
	for i := 0; i < n; i++ {
		start := 0
		if i >= half {
			start = i - half
		}
		end := n
		if start+w <= n {
			end = start + w
		}
		window := values[start:end]

		med := statistics.Median(window)
		mad := statistics.MAD(window, med)
		if mad == 0 {
			continue
		}
		v := values[i]
		if v < 0 {
			continue
		}
		score := math.Abs(v-med) / mad
		if score > threshold {
			points = append(points, Point{SnapshotIndex: i, SnapshotTime: snapshotTimes[i], Value: v, MADScore: score})
		}
	}
	return points
}

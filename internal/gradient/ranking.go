package gradient

import (
	"math"
	"sort"
)

// Impact is one event/stat/SQL's ranked contribution to DB Time under a
// single model.
type Impact struct {
	EventName    string  `json:"event_name"`
	GradientCoef float64 `json:"gradient_coef"`
	Impact       float64 `json:"impact"`
}

// BuildRanking scores each coefficient by impact = |coef| * MAD(raw delta)
// and sorts descending. Ties keep name-ascending order (names must already
// be sorted), matching the stable sort over BTreeMap iteration order in
// the original implementation.
func BuildRanking(names []string, coef map[string]float64, madByEvent map[string]float64) []Impact {
	ranking := make([]Impact, 0, len(names))
	for _, name := range names {
		c := coef[name]
		mad := madByEvent[name]
		ranking = append(ranking, Impact{
			EventName:    name,
			GradientCoef: c,
			Impact:       math.Abs(c) * mad,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Impact > ranking[j].Impact
	})
	return ranking
}

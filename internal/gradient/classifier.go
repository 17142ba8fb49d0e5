package gradient

import "sort"

// Classification labels, most to least confident. See the priority table
// built in ClassifyCrossModel.
const (
	ClassConfirmedBottleneck            = "CONFIRMED_BOTTLENECK"
	ClassConfirmedBottleneckENCollinear = "CONFIRMED_BOTTLENECK_EN_COLLINEAR"
	ClassStrongContributor              = "STRONG_CONTRIBUTOR"
	ClassStableContributor              = "STABLE_CONTRIBUTOR"
	ClassTailRisk                       = "TAIL_RISK"
	ClassTailOutlier                    = "TAIL_OUTLIER"
	ClassOutlierDriven                  = "OUTLIER_DRIVEN"
	ClassSparseDominant                 = "SPARSE_DOMINANT"
	ClassRobustOnly                     = "ROBUST_ONLY"
	ClassMultiModelMinor                = "MULTI_MODEL_MINOR"
	ClassSingleModel                    = "SINGLE_MODEL"
)

var classificationDescriptions = map[string]string{
	ClassConfirmedBottleneck: "Present in ALL 4 models (Ridge, ElasticNet, Huber, Q95). Highest confidence — " +
		"systematic, robust bottleneck affecting both average and worst-case DB Time.",
	ClassConfirmedBottleneckENCollinear: "Present in Ridge, Huber, and Q95 but NOT in ElasticNet. Very high confidence — " +
		"3 independent models agree. ElasticNet likely zeroed it due to collinearity with " +
		"another correlated event. Treat as confirmed bottleneck; check EN for which " +
		"correlated event was selected instead.",
	ClassStrongContributor: "Present in Ridge, ElasticNet, and Huber but not Q95. Reliable systematic " +
		"contributor to DB Time, but not especially dominant in tail/worst-case scenarios.",
	ClassStableContributor: "Present in Ridge and Huber (both agree = robust finding) but absent from " +
		"ElasticNet (collinearity) and Q95 (not a tail driver). A steady, moderate " +
		"contributor to DB Time.",
	ClassTailRisk: "Present in Quantile95 but NOT in Ridge. Usually behaves fine but causes " +
		"catastrophic DB Time spikes in the worst 5% of snapshots. Investigate " +
		"specific peak periods.",
	ClassTailOutlier: "Present in Ridge and Q95 but NOT in Huber. Impact is concentrated in " +
		"extreme snapshots that are also the worst-performing ones. A high-severity " +
		"outlier problem — find and fix those specific periods.",
	ClassOutlierDriven: "Present in Ridge but NOT in Huber (outlier-resistant). Its apparent impact " +
		"is driven by a few extreme snapshots, not systematic behavior. Examine " +
		"those specific snapshots.",
	ClassSparseDominant: "Present in ElasticNet but NOT in Ridge top. One of a small number of truly " +
		"dominant factors selected by L1 sparsity. May be correlated with other " +
		"contributors that Ridge spreads weight across.",
	ClassRobustOnly: "Present only in Huber. Stable background contributor visible only when " +
		"outliers are downweighted. Low priority but worth monitoring.",
	ClassMultiModelMinor: "Appeared in at least 2 models but with no clear dominant pattern. Minor " +
		"contributor worth noting.",
	ClassSingleModel: "Appeared in only one model with low confidence.",
}

// CrossModelClassification is one event/stat/SQL's triangulated verdict
// across the four gradient models.
type CrossModelClassification struct {
	EventName      string `json:"event_name"`
	Classification string `json:"classification"`
	Description    string `json:"description"`
	InRidge        bool   `json:"in_ridge"`
	InElasticNet   bool   `json:"in_elastic_net"`
	InHuber        bool   `json:"in_huber"`
	InQuantile95   bool   `json:"in_quantile95"`
	Priority       uint8  `json:"priority"`
}

// ClassifyCrossModel cross-references the top-N positive-impact entries of
// each of the four rankings and assigns each event a priority-ordered
// classification. Only entries with impact > 0 and a positive coefficient
// count as "present" in a model — a model that assigns a negative or zero
// coefficient does not corroborate a bottleneck.
//
// Ties in priority are broken by event name ascending; the original
// implementation collects candidate events into a hash set and its tie
// order is therefore unspecified; this sorts by name for reproducible
// report output.
func ClassifyCrossModel(ridgeTop, elasticNetTop, huberTop, quantile95Top []Impact, topN int) []CrossModelClassification {
	ridgeSet := positiveImpactSet(ridgeTop, topN)
	enSet := positiveImpactSet(elasticNetTop, topN)
	huberSet := positiveImpactSet(huberTop, topN)
	q95Set := positiveImpactSet(quantile95Top, topN)

	allEvents := make(map[string]struct{})
	for name := range ridgeSet {
		allEvents[name] = struct{}{}
	}
	for name := range enSet {
		allEvents[name] = struct{}{}
	}
	for name := range huberSet {
		allEvents[name] = struct{}{}
	}
	for name := range q95Set {
		allEvents[name] = struct{}{}
	}

	names := make([]string, 0, len(allEvents))
	for name := range allEvents {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]CrossModelClassification, 0, len(names))
	for _, name := range names {
		_, inRidge := ridgeSet[name]
		_, inEN := enSet[name]
		_, inHuber := huberSet[name]
		_, inQ95 := q95Set[name]

		modelCount := 0
		for _, b := range []bool{inRidge, inEN, inHuber, inQ95} {
			if b {
				modelCount++
			}
		}

		var classification string
		var priority uint8
		switch {
		case inRidge && inEN && inHuber && inQ95:
			classification, priority = ClassConfirmedBottleneck, 1
		case inRidge && inHuber && inQ95 && !inEN:
			classification, priority = ClassConfirmedBottleneckENCollinear, 1
		case inRidge && inEN && inHuber && !inQ95:
			classification, priority = ClassStrongContributor, 2
		case inRidge && inHuber && !inEN && !inQ95:
			classification, priority = ClassStableContributor, 3
		case inQ95 && !inRidge:
			classification, priority = ClassTailRisk, 4
		case inQ95 && inRidge && !inHuber:
			classification, priority = ClassTailOutlier, 4
		case inRidge && !inHuber:
			classification, priority = ClassOutlierDriven, 5
		case inEN && !inRidge:
			classification, priority = ClassSparseDominant, 6
		case inHuber && !inRidge && !inEN:
			classification, priority = ClassRobustOnly, 7
		case modelCount >= 2:
			classification, priority = ClassMultiModelMinor, 8
		default:
			classification, priority = ClassSingleModel, 9
		}

		results = append(results, CrossModelClassification{
			EventName:      name,
			Classification: classification,
			Description:    classificationDescriptions[classification],
			InRidge:        inRidge,
			InElasticNet:   inEN,
			InHuber:        inHuber,
			InQuantile95:   inQ95,
			Priority:       priority,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Priority < results[j].Priority
	})
	return results
}

func positiveImpactSet(ranking []Impact, topN int) map[string]struct{} {
	set := make(map[string]struct{})
	n := topN
	if n > len(ranking) {
		n = len(ranking)
	}
	for _, item := range ranking[:n] {
		if item.Impact > 0 && item.GradientCoef > 0 {
			set[item.EventName] = struct{}{}
		}
	}
	return set
}

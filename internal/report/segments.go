package report

import (
	"sort"

	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

// Segment category labels, matched against awr.SegmentStat.Category.
// These are the external collaborator's vocabulary for SegmentStat.Category
// (see SPEC_FULL.md §4.7's "top_10_segments_by_*" note); no vendor report
// text is parsed here.
const (
	SegmentCategoryLogicalReads        = "logical_reads"
	SegmentCategoryPhysicalReads       = "physical_reads"
	SegmentCategoryBufferBusyWaits     = "buffer_busy_waits"
	SegmentCategoryRowLockWaits        = "row_lock_waits"
	SegmentCategoryITLWaits            = "itl_waits"
	SegmentCategoryPhysicalWrites      = "physical_writes"
	SegmentCategoryDirectPhysicalReads = "direct_physical_reads"
	SegmentCategoryDirectPhysicalWrite = "direct_physical_writes"
)

// TopSegments selects the topN SegmentStat rows matching category across
// every snapshot, ranked by Value descending.
func TopSegments(snapshots []awr.Snapshot, category string, topN int) []awr.SegmentStat {
	var matched []awr.SegmentStat
	for _, snap := range snapshots {
		for _, seg := range snap.Segments {
			if seg.Category == category {
				matched = append(matched, seg)
			}
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Value > matched[j].Value })
	if topN < len(matched) {
		matched = matched[:topN]
	}
	return matched
}

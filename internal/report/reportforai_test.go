package report

import (
	"testing"

	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

func isIdleEvent(name string) bool {
	return name == "idle wait"
}

func TestTopWaitEventSummaries(t *testing.T) {
	snapshots := []awr.Snapshot{
		{
			WaitEventsForeground: []awr.WaitEvent{
				{Event: "log file sync", TotalWaitTimeS: 50},
				{Event: "db file sequential read", TotalWaitTimeS: 10},
				{Event: "idle wait", TotalWaitTimeS: 1000},
			},
		},
		{
			WaitEventsForeground: []awr.WaitEvent{
				{Event: "log file sync", TotalWaitTimeS: 5},
				{Event: "db file sequential read", TotalWaitTimeS: 40},
			},
		},
	}
	pick := func(s awr.Snapshot) []awr.WaitEvent { return s.WaitEventsForeground }

	out := TopWaitEventSummaries(snapshots, pick, isIdleEvent, 10)
	if len(out) != 2 {
		t.Fatalf("expected 2 events (idle excluded), got %d: %+v", len(out), out)
	}
	// "log file sync" totals 55, "db file sequential read" totals 50 -> ranked first.
	if out[0].Event != "log file sync" || out[0].TotalWaitTimeS != 55 {
		t.Errorf("expected log file sync ranked first with total 55, got %+v", out[0])
	}
	// It appears in snapshot 0's top-10 (only 2 non-idle events, both make top 10)
	// and snapshot 1's top-10, so 100%.
	if out[0].PctOfTimesFoundInTopTen != 100 {
		t.Errorf("expected 100%% top-ten presence, got %v", out[0].PctOfTimesFoundInTopTen)
	}
}

func TestTopWaitEventSummariesTopNCap(t *testing.T) {
	snapshots := []awr.Snapshot{
		{
			WaitEventsForeground: []awr.WaitEvent{
				{Event: "a", TotalWaitTimeS: 3},
				{Event: "b", TotalWaitTimeS: 2},
				{Event: "c", TotalWaitTimeS: 1},
			},
		},
	}
	pick := func(s awr.Snapshot) []awr.WaitEvent { return s.WaitEventsForeground }
	out := TopWaitEventSummaries(snapshots, pick, func(string) bool { return false }, 2)
	if len(out) != 2 {
		t.Fatalf("expected topN=2 to cap results, got %d", len(out))
	}
	if out[0].Event != "a" || out[1].Event != "b" {
		t.Errorf("expected descending order a,b got %+v", out)
	}
}

func TestTopSQLSummaries(t *testing.T) {
	snapshots := []awr.Snapshot{
		{
			SQLElapsedTime: []awr.SQLStat{{SQLID: "sql1", Primary: 100}, {SQLID: "sql2", Primary: 10}},
			SQLCPUTime:     []awr.SQLStat{{SQLID: "sql1", Primary: 90}},
			SQLIOTime:      []awr.SQLStat{{SQLID: "sql1", Primary: 80}},
			SQLGets:        []awr.SQLStat{{SQLID: "sql2", Primary: 70}},
			SQLReads:       []awr.SQLStat{},
		},
	}

	out := TopSQLSummaries(snapshots, 10)
	if len(out) != 2 {
		t.Fatalf("expected 2 sql ids, got %d", len(out))
	}
	if out[0].SQLID != "sql1" || out[0].ElapsedTimeS != 100 {
		t.Errorf("expected sql1 ranked first with elapsed 100, got %+v", out[0])
	}
	// sql1 appears in CPU and IO top sections (2 of 4) -> 50%.
	if out[0].PctOfTimesFoundInOtherTopSections != 50 {
		t.Errorf("expected sql1 in 2/4 other top sections (50%%), got %v", out[0].PctOfTimesFoundInOtherTopSections)
	}
	// sql2 appears only in gets top section (1 of 4) -> 25%.
	if out[1].SQLID != "sql2" || out[1].PctOfTimesFoundInOtherTopSections != 25 {
		t.Errorf("expected sql2 in 1/4 other top sections (25%%), got %+v", out[1])
	}
}

func TestBuildIOStatsByFunctionSummary(t *testing.T) {
	snapshots := []awr.Snapshot{
		{InstanceStats: []awr.NamedCounter{
			{Name: "physical read total bytes", Primary: 1000},
			{Name: "physical read total io requests", Primary: 10},
			{Name: "physical write total bytes", Primary: 500},
			{Name: "physical write total io requests", Primary: 5},
			{Name: "unrelated stat", Primary: 999},
		}},
		{InstanceStats: []awr.NamedCounter{
			{Name: "physical read total bytes", Primary: 2000},
		}},
	}

	out := BuildIOStatsByFunctionSummary(snapshots)
	if len(out) != 1 {
		t.Fatalf("expected a single aggregate row, got %d", len(out))
	}
	stat := out[0]
	if stat.ReadBytes != 3000 {
		t.Errorf("expected read bytes summed across snapshots (3000), got %v", stat.ReadBytes)
	}
	if stat.ReadRequests != 10 || stat.WriteBytes != 500 || stat.WriteRequests != 5 {
		t.Errorf("unexpected io stat aggregation: %+v", stat)
	}
}

func TestBuildLatchActivitySummary(t *testing.T) {
	snapshots := []awr.Snapshot{
		{LatchActivity: []awr.NamedCounter{
			{Name: "cache buffers chains", Primary: 100},
			{Name: "shared pool", Primary: 50},
		}},
		{LatchActivity: []awr.NamedCounter{
			{Name: "cache buffers chains", Primary: 20},
		}},
	}

	out := BuildLatchActivitySummary(snapshots, 1)
	if len(out) != 1 {
		t.Fatalf("expected topN=1 to cap results, got %d", len(out))
	}
	if out[0].Name != "cache buffers chains" || out[0].GetRequests != 120 {
		t.Errorf("expected cache buffers chains ranked first with 120 gets, got %+v", out[0])
	}
	if out[0].MissRate != 0 {
		t.Errorf("expected MissRate to stay at zero value, got %v", out[0].MissRate)
	}
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty run ids")
	}
	if a == b {
		t.Errorf("expected distinct run ids across calls, got %q twice", a)
	}
}

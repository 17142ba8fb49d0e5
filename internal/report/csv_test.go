package report

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func sampleClusters() []AnomalyCluster {
	return []AnomalyCluster{
		{
			BeginSnapID:   100,
			BeginSnapDate: "2026-01-01 00:00:00",
			AnomaliesDetected: []AnomalyDescription{
				{AreaOfAnomaly: "load_profile", StatisticName: "DB Time"},
				{AreaOfAnomaly: "wait_events", StatisticName: "log file sync"},
			},
			NumberOfAnomalies: 2,
		},
		{
			BeginSnapID:       101,
			BeginSnapDate:     "2026-01-01 01:00:00",
			AnomaliesDetected: nil,
			NumberOfAnomalies: 0,
		},
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := WriteSummaryCSV(fs, "/out/summary.csv", sampleClusters()); err != nil {
		t.Fatalf("WriteSummaryCSV returned error: %v", err)
	}
	data, err := afero.ReadFile(fs, "/out/summary.csv")
	if err != nil {
		t.Fatalf("reading summary csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "BEGIN_SNAP_ID,BEGIN_SNAP_DATE,COUNT" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "100,2026-01-01 00:00:00,2" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	if lines[2] != "101,2026-01-01 01:00:00,0" {
		t.Errorf("unexpected second row: %q", lines[2])
	}
}

func TestWriteDetailCSVFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := WriteDetailCSVFiles(fs, "/out/detail", sampleClusters()); err != nil {
		t.Fatalf("WriteDetailCSVFiles returned error: %v", err)
	}

	data, err := afero.ReadFile(fs, "/out/detail/100.csv")
	if err != nil {
		t.Fatalf("reading detail csv for snap 100: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows for snap 100, got %d: %q", len(lines), lines)
	}
	if lines[1] != "100,2026-01-01 00:00:00,2,load_profile: DB Time" {
		t.Errorf("unexpected detail row: %q", lines[1])
	}

	data101, err := afero.ReadFile(fs, "/out/detail/101.csv")
	if err != nil {
		t.Fatalf("reading detail csv for snap 101: %v", err)
	}
	lines101 := strings.Split(strings.TrimRight(string(data101), "\n"), "\n")
	if len(lines101) != 1 {
		t.Errorf("expected only a header row for snap 101 with no anomalies, got %q", lines101)
	}
}

func TestWriteSummaryCSVEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := WriteSummaryCSV(fs, "/out/empty.csv", nil); err != nil {
		t.Fatalf("WriteSummaryCSV on empty input returned error: %v", err)
	}
	data, err := afero.ReadFile(fs, "/out/empty.csv")
	if err != nil {
		t.Fatalf("reading empty csv: %v", err)
	}
	if strings.TrimRight(string(data), "\n") != "BEGIN_SNAP_ID,BEGIN_SNAP_DATE,COUNT" {
		t.Errorf("expected header-only csv, got %q", data)
	}
}

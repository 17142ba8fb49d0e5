package report

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// WriteSummaryCSV writes one row per cluster: BEGIN_SNAP_ID, BEGIN_SNAP_DATE,
// COUNT — the total number of anomalies detected for that snapshot.
// Mirrors save_summary_csv in anomalies.rs.
func WriteSummaryCSV(fs afero.Fs, path string, clusters []AnomalyCluster) error {
	file, err := fs.Create(path)
	if err != nil {
		return errors.Wrap(err, "create anomaly summary CSV")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"BEGIN_SNAP_ID", "BEGIN_SNAP_DATE", "COUNT"}); err != nil {
		return errors.Wrap(err, "write anomaly summary CSV header")
	}
	for _, c := range clusters {
		row := []string{
			strconv.FormatUint(c.BeginSnapID, 10),
			c.BeginSnapDate,
			strconv.FormatUint(c.NumberOfAnomalies, 10),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "write anomaly summary CSV row")
		}
	}
	return w.Error()
}

// WriteDetailCSVFiles writes one CSV file per snapshot cluster, named
// "<begin_snap_id>.csv", each row holding one anomaly detail formatted as
// "<area>: <statistic>". Mirrors save_detailed_csv_files in anomalies.rs —
// quoting of fields containing commas/quotes/newlines is handled by
// encoding/csv's writer (RFC 4180), which supersedes the original's
// hand-rolled escape_csv_field.
func WriteDetailCSVFiles(fs afero.Fs, dir string, clusters []AnomalyCluster) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create anomaly detail directory")
	}
	for _, c := range clusters {
		path := filepath.Join(dir, fmt.Sprintf("%d.csv", c.BeginSnapID))
		if err := writeDetailCSV(fs, path, c); err != nil {
			return err
		}
	}
	return nil
}

func writeDetailCSV(fs afero.Fs, path string, c AnomalyCluster) error {
	file, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create anomaly detail CSV for snapshot %d", c.BeginSnapID)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"BEGIN_SNAP_ID", "BEGIN_SNAP_DATE", "COUNT", "ANOMALY_SUMMARY"}); err != nil {
		return errors.Wrap(err, "write anomaly detail CSV header")
	}

	count := strconv.FormatUint(c.NumberOfAnomalies, 10)
	snapID := strconv.FormatUint(c.BeginSnapID, 10)
	for _, a := range c.AnomaliesDetected {
		line := fmt.Sprintf("%s: %s", a.AreaOfAnomaly, a.StatisticName)
		row := []string{snapID, c.BeginSnapDate, count, line}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "write anomaly detail CSV row")
		}
	}
	return w.Error()
}

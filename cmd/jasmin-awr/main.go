// cmd/jasmin-awr/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/elchinoo/jasmin-awr-analyzer/internal/anomaly"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/config"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/correlation"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/gradient"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/idleevents"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/loader"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/logging"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/report"
	"github.com/elchinoo/jasmin-awr-analyzer/internal/series"
	"github.com/elchinoo/jasmin-awr-analyzer/pkg/awr"
)

// Version information (set by build system via ldflags)
var (
	Version   = "v0.1.0-beta"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

// CLIOptions carries every flag the analyze command accepts, mirroring the
// config surface in SPEC_FULL.md §6.
type CLIOptions struct {
	Snapshots  string
	ConfigFile string
	Out        string

	TimeCPURatio *float64
	FilterDBTime *float64
	SnapRange    *string
	Parallel     *int

	MADThreshold  *float64
	MADWindowSize *int

	RidgeLambda       *float64
	ElasticNetLambda  *float64
	ElasticNetAlpha   *float64
	ElasticNetMaxIter *int
	ElasticNetTol     *float64
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "jasmin-awr",
		Short: "Offline statistical analyzer for Oracle AWR/STATSPACK snapshot history",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("jasmin-awr v%s\n", Version)
			fmt.Printf("  Git Commit: %s\n", GitCommit)
			fmt.Printf("  Build Time: %s\n", BuildTime)
			fmt.Printf("  Go Version: %s\n", GoVersion)
		},
	}
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newAnalyzeCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCommand() *cobra.Command {
	opts := &CLIOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full anomaly/gradient/correlation analysis over a snapshot directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runAnalyze(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Snapshots, "snapshots", "s", "", "Directory of *.snapshot.json files (required)")
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "Path to config YAML file (optional, defaults applied otherwise)")
	flags.StringVarP(&opts.Out, "out", "o", "./report", "Output directory for CSV/JSON report artifacts")

	flags.Var(newFloat64Flag(&opts.TimeCPURatio), "time-cpu-ratio", "Override DB_CPU/DB_Time spike threshold")
	flags.Var(newFloat64Flag(&opts.FilterDBTime), "filter-db-time", "Override minimum DB Time per second to consider a snapshot")
	flags.Var(newStringFlag(&opts.SnapRange), "snap-range", "Override snapshot id range BEGIN-END")
	flags.Var(newIntFlag(&opts.Parallel), "parallel", "Override worker pool size for sliding-window detection")
	flags.Var(newFloat64Flag(&opts.MADThreshold), "mad-threshold", "Override MAD anomaly threshold")
	flags.Var(newIntFlag(&opts.MADWindowSize), "mad-window-size", "Override sliding-window width as a percentage of N")
	flags.Var(newFloat64Flag(&opts.RidgeLambda), "ridge-lambda", "Override Ridge regularization lambda")
	flags.Var(newFloat64Flag(&opts.ElasticNetLambda), "elastic-net-lambda", "Override Elastic Net regularization lambda")
	flags.Var(newFloat64Flag(&opts.ElasticNetAlpha), "elastic-net-alpha", "Override Elastic Net L1/L2 mixing ratio")
	flags.Var(newIntFlag(&opts.ElasticNetMaxIter), "elastic-net-max-iter", "Override Elastic Net max iterations")
	flags.Var(newFloat64Flag(&opts.ElasticNetTol), "elastic-net-tol", "Override Elastic Net/Huber/Quantile convergence tolerance")

	_ = cmd.MarkFlagRequired("snapshots")

	return cmd
}

func runAnalyze(opts *CLIOptions) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	if err := config.ApplyOverrides(cfg, config.CLIOverrides{
		TimeCPURatio:      opts.TimeCPURatio,
		FilterDBTime:      opts.FilterDBTime,
		SnapRange:         opts.SnapRange,
		Parallel:          opts.Parallel,
		MADThreshold:      opts.MADThreshold,
		MADWindowSize:     opts.MADWindowSize,
		RidgeLambda:       opts.RidgeLambda,
		ElasticNetLambda:  opts.ElasticNetLambda,
		ElasticNetAlpha:   opts.ElasticNetAlpha,
		ElasticNetMaxIter: opts.ElasticNetMaxIter,
		ElasticNetTol:     opts.ElasticNetTol,
	}); err != nil {
		return err
	}

	log, err := logging.NewLogger(logging.LoggerConfig{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	fs := afero.NewOsFs()

	rng, err := loader.ParseRange(cfg.SnapRange)
	if err != nil {
		return err
	}

	store, err := loader.LoadDir(fs, opts.Snapshots, rng)
	if err != nil {
		return err
	}
	log.Info("loaded snapshots", logging.Fields.Snapshot(rng.Begin, rng.End, store.Len())...)

	reportTree := buildReport(store, cfg, log)

	if err := fs.MkdirAll(opts.Out, 0o755); err != nil {
		return err
	}

	clusters := reportTree.AnomalyClusters
	if err := report.WriteSummaryCSV(fs, opts.Out+"/anomaly_summary.csv", clusters); err != nil {
		return err
	}
	if err := report.WriteDetailCSVFiles(fs, opts.Out+"/detail", clusters); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reportTree, "", "  ")
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, opts.Out+"/report_for_ai.json", data, 0o644); err != nil {
		return err
	}

	log.Info("analysis complete", logging.Fields.String("out", opts.Out))
	return nil
}

// buildReport runs every analysis stage over store and assembles the full
// report-for-AI tree, per SPEC_FULL.md §4.7/§6.
func buildReport(store *awr.SnapshotStore, cfg *config.Config, log logging.AnalyzerLogger) *report.ReportForAI {
	n := store.Len()
	snapshotTimes := make([]string, n)
	for i, snap := range store.Snapshots {
		snapshotTimes[i] = snap.BeginTime
	}

	dbTime := series.DBTime(store)
	dbCPU := series.DBCPU(store)

	loadProfile := series.LoadProfile(store)
	waitEventsFG := series.WaitEventsForeground(store, idleevents.IsIdle)
	waitEventsBG := series.WaitEventsBackground(store, idleevents.IsIdle)
	sqlElapsed := series.SQLElapsedTime(store)
	instanceStats := series.InstanceStats(store)
	counters, volumes, timeStats := series.SplitInstanceStats(instanceStats)

	windowPct := cfg.MAD.WindowSize
	loadProfileAnomalies := anomaly.DetectSlidingWindow(loadProfile, snapshotTimes, cfg.MAD.Threshold, windowPct, cfg.Parallel)

	corrEntries, skipped := correlation.Analyze(instanceStats, dbTime)
	for _, name := range skipped {
		log.Debug("correlation skipped series with mismatched length", logging.Fields.String("metric", name))
	}

	gradCfg := gradient.Config{
		RidgeLambda:       cfg.Gradient.RidgeLambda,
		ElasticNetLambda:  cfg.Gradient.ElasticNetLambda,
		ElasticNetAlpha:   cfg.Gradient.ElasticNetAlpha,
		ElasticNetMaxIter: cfg.Gradient.ElasticNetMaxIter,
		ElasticNetTol:     cfg.Gradient.ElasticNetTol,
	}

	fgWaitGradient := computeGradientSection(dbTime, waitEventsFG, gradCfg, "seconds", log)
	counterGradient := computeGradientSection(dbTime, counters, gradCfg, "count", log)
	volumeGradient := computeGradientSection(dbTime, volumes, gradCfg, "bytes", log)
	timeGradient := computeGradientSection(dbTime, timeStats, gradCfg, "seconds", log)
	sqlGradient := computeGradientSection(dbTime, sqlElapsed, gradCfg, "seconds", log)
	cpuInstanceGradient := computeGradientSection(dbCPU, instanceStats, gradCfg, "mixed", log)

	summary := report.NewSummary()
	joinAnomalies(summary, store, loadProfileAnomalies, "load_profile")

	waitFGAnomalies := anomaly.DetectSlidingWindow(waitEventsFG, snapshotTimes, cfg.MAD.Threshold, windowPct, cfg.Parallel)
	joinAnomalies(summary, store, waitFGAnomalies, "wait_events_foreground")

	waitBGAnomalies := anomaly.DetectSlidingWindow(waitEventsBG, snapshotTimes, cfg.MAD.Threshold, windowPct, cfg.Parallel)
	joinAnomalies(summary, store, waitBGAnomalies, "wait_events_background")

	instanceAnomalies := anomaly.DetectSlidingWindow(instanceStats, snapshotTimes, cfg.MAD.Threshold, windowPct, cfg.Parallel)
	joinAnomalies(summary, store, instanceAnomalies, "instance_stats")

	var beginSnapID, endSnapID uint64
	var beginTime, endTime string
	if n > 0 {
		beginSnapID = store.Snapshots[0].BeginSnapID
		endSnapID = store.Snapshots[n-1].EndSnapID
		beginTime = store.Snapshots[0].BeginTime
		endTime = store.Snapshots[n-1].EndTime
	}

	var dbName, instance, release string
	if n > 0 {
		dbName = store.Snapshots[0].DBName
		instance = store.Snapshots[0].InstanceName
		release = store.Snapshots[0].Release
	}

	return &report.ReportForAI{
		RunID: report.NewRunID(),
		GeneralData: report.GeneralData{
			SnapshotCount: n,
			BeginSnapID:   beginSnapID,
			EndSnapID:     endSnapID,
			BeginTime:     beginTime,
			EndTime:       endTime,
			DatabaseName:  dbName,
			Instance:      instance,
			Release:       release,
			Config:        cfg,
		},

		TopSpikesMarked:         report.BuildTopSpikes(store, cfg.TimeCPURatio, cfg.FilterDBTime, idleevents.IsIdle),
		TopForegroundWaitEvents: report.TopWaitEventSummaries(store.Snapshots, func(s awr.Snapshot) []awr.WaitEvent { return s.WaitEventsForeground }, idleevents.IsIdle, 10),
		TopBackgroundWaitEvents: report.TopWaitEventSummaries(store.Snapshots, func(s awr.Snapshot) []awr.WaitEvent { return s.WaitEventsBackground }, idleevents.IsIdle, 10),
		TopSQLsByElapsedTime:    report.TopSQLSummaries(store.Snapshots, 10),

		IOStatsByFunctionSummary: report.BuildIOStatsByFunctionSummary(store.Snapshots),
		LatchActivitySummary:     report.BuildLatchActivitySummary(store.Snapshots, 10),

		Top10SegmentsByLogicalReads:         report.TopSegments(store.Snapshots, report.SegmentCategoryLogicalReads, 10),
		Top10SegmentsByPhysicalReads:        report.TopSegments(store.Snapshots, report.SegmentCategoryPhysicalReads, 10),
		Top10SegmentsByBufferBusyWaits:      report.TopSegments(store.Snapshots, report.SegmentCategoryBufferBusyWaits, 10),
		Top10SegmentsByRowLockWaits:         report.TopSegments(store.Snapshots, report.SegmentCategoryRowLockWaits, 10),
		Top10SegmentsByITLWaits:             report.TopSegments(store.Snapshots, report.SegmentCategoryITLWaits, 10),
		Top10SegmentsByPhysicalWrites:       report.TopSegments(store.Snapshots, report.SegmentCategoryPhysicalWrites, 10),
		Top10SegmentsByDirectPhysicalReads:  report.TopSegments(store.Snapshots, report.SegmentCategoryDirectPhysicalReads, 10),
		Top10SegmentsByDirectPhysicalWrites: report.TopSegments(store.Snapshots, report.SegmentCategoryDirectPhysicalWrite, 10),


		InstanceStatsPearsonCorrelation: corrEntries,
		LoadProfileAnomalies:            loadProfileAnomalies,
		AnomalyClusters:                 summary.Clusters(),

		DBTimeGradientFGWaitEvents:          fgWaitGradient,
		DBTimeGradientInstanceStatsCounters: counterGradient,
		DBTimeGradientInstanceStatsVolumes:  volumeGradient,
		DBTimeGradientInstanceStatsTime:     timeGradient,
		DBTimeGradientSQLElapsedTime:        sqlGradient,
		DBCPUGradientInstanceStats:          cpuInstanceGradient,
	}
}

func computeGradientSection(target []float64, candidates series.Series, cfg gradient.Config, unit string, log logging.AnalyzerLogger) report.GradientSection {
	result, err := gradient.Compute(target, candidates, cfg)
	if err != nil {
		log.Warn("gradient computation failed, section will be empty", logging.Fields.Error(err))
		result = &gradient.Result{}
	} else if result.RidgeError != nil {
		log.Warn("ridge model failed, section continues with elastic net/huber/quantile95 only",
			logging.Fields.Error(result.RidgeError))
	}
	settings := report.GradientSettings{
		RidgeLambda:       cfg.RidgeLambda,
		ElasticNetLambda:  cfg.ElasticNetLambda,
		ElasticNetAlpha:   cfg.ElasticNetAlpha,
		ElasticNetMaxIter: cfg.ElasticNetMaxIter,
		ElasticNetTol:     cfg.ElasticNetTol,
		Unit:              unit,
	}
	return report.BuildGradientSection(result, settings, report.DefaultTopK, report.DefaultClassifyTopN)
}

// joinAnomalies records every anomaly.Result point into summary under
// anomalyType, keyed by the snapshot it was flagged in.
func joinAnomalies(summary report.Summary, store *awr.SnapshotStore, result anomaly.Result, anomalyType string) {
	for name, points := range result {
		for _, p := range points {
			snap := store.Snapshots[p.SnapshotIndex]
			key := report.Key{SnapID: snap.BeginSnapID, SnapDate: snap.BeginTime}
			summary.Join(key, anomalyType, name)
		}
	}
}

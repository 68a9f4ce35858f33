package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cwl_stats/internal/app"
	"cwl_stats/internal/coc"
	"cwl_stats/internal/config"
	"cwl_stats/internal/deployment"
	"cwl_stats/internal/processing"
	"cwl_stats/internal/report"
	"cwl_stats/internal/sheets"
	"cwl_stats/internal/warehouse"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	xlsxPath := flag.String("xlsx", "", "Write the scoreboard workbook to this path")
	chartPath := flag.String("chart", "", "Write the totals bar chart PNG to this path")
	jsonPath := flag.String("json", "", "Write the scoreboard JSON export to this path")
	toSheets := flag.Bool("sheets", false, "Publish the scoreboard to Google Sheets")
	toBigQuery := flag.Bool("bigquery", false, "Append the scoreboard to BigQuery")
	toDeploy := flag.Bool("deploy", false, "Upload the xlsx/chart/json files over SCP")
	interval := flag.Duration("interval", 0, "Interval between scoreboard updates (e.g., 30m); 0 runs once")
	runOnce := flag.Bool("once", false, "Run once and exit (don't start scheduler)")
	flag.Parse()

	log.Info().
		Dur("interval", *interval).
		Bool("run_once", *runOnce).
		Msg("Starting CWL stats application")

	// Load configuration
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.UpdateInterval = *interval

	ctx := context.Background()
	resilience := config.DefaultResilienceConfig.WithAPIDelay(cfg.RequestDelay)

	// Initialize clients
	cocClient := coc.NewClient(cfg.APIKey, cfg.BaseURL, resilience.APIRequest)
	processor := processing.NewCWLProcessor(cocClient, cfg)

	sinks, closeSinks := buildSinks(ctx, cfg, resilience, sinkOptions{
		xlsxPath:   *xlsxPath,
		chartPath:  *chartPath,
		jsonPath:   *jsonPath,
		interval:   *interval,
		toSheets:   *toSheets,
		toBigQuery: *toBigQuery,
		toDeploy:   *toDeploy,
	})
	defer closeSinks()

	// Define the main processing function
	runCycle := func() error {
		log.Debug().Msg("Starting scoreboard cycle")

		// Reset API call counter at the start of each cycle
		cocClient.ResetAPICallCount()
		defer func() {
			log.Info().
				Int64("api_calls", cocClient.GetAPICallCount()).
				Msg("Completed scoreboard cycle")
		}()

		fmt.Println("Fetching CWL war tags...")
		board, err := processor.Run(ctx)
		if errors.Is(err, processing.ErrNoWarTags) {
			fmt.Println("No CWL war tags found.")
			return nil
		}
		if err != nil {
			fmt.Printf("Error fetching data: %v\n", err)
			return err
		}

		fmt.Println("Data fetched successfully!")
		if err := report.WriteTable(os.Stdout, board); err != nil {
			return fmt.Errorf("failed to print scoreboard: %w", err)
		}

		if err := processing.PublishScoreboard(ctx, board, sinks...); err != nil {
			log.Error().Err(err).Str("run_id", board.RunID).Msg("Failed to publish scoreboard")
			return err
		}
		return nil
	}

	// Run initial processing
	err = runCycle()

	// Exit if run-once flag is set or no interval was given
	if *runOnce || *interval <= 0 {
		if err != nil {
			closeSinks()
			os.Exit(1)
		}
		return
	}

	// Start scheduled processing
	log.Info().
		Dur("interval", *interval).
		Msg("Starting scheduled scoreboard updates")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := runCycle(); err != nil {
			log.Error().Err(err).Msg("Scoreboard cycle failed")
		}
	}
}

type sinkOptions struct {
	xlsxPath   string
	chartPath  string
	jsonPath   string
	interval   time.Duration
	toSheets   bool
	toBigQuery bool
	toDeploy   bool
}

// buildSinks creates the publishing sinks requested on the command line in
// the order they run. Files are written before they are uploaded.
func buildSinks(ctx context.Context, cfg *app.Config, resilience config.ResilienceConfig, opts sinkOptions) ([]processing.ScoreboardSink, func()) {
	var sinks []processing.ScoreboardSink
	var closers []func() error

	if opts.xlsxPath != "" {
		sinks = append(sinks, &report.XLSXSink{Path: opts.xlsxPath})
	}
	if opts.chartPath != "" {
		sinks = append(sinks, &report.ChartSink{Path: opts.chartPath})
	}
	if opts.jsonPath != "" {
		sinks = append(sinks, &report.JSONSink{Path: opts.jsonPath, Interval: opts.interval})
	}

	if opts.toSheets {
		if !cfg.SheetsEnabled() {
			log.Fatal().Msg("SPREADSHEET_ID is required for -sheets")
		}
		sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile, resilience.SheetWrite)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}
		sinks = append(sinks, sheets.NewScoreboardManager(sheetsClient, cfg.SpreadsheetID))
	}

	if opts.toBigQuery {
		if !cfg.BigQueryEnabled() {
			log.Fatal().Msg("BIGQUERY_PROJECT and BIGQUERY_DATASET are required for -bigquery")
		}
		exporter, err := warehouse.NewExporter(ctx, cfg.BigQueryProject, cfg.BigQueryDataset, cfg.BigQueryTable, cfg.CredentialsFile, resilience.BigQueryInsert)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery exporter")
		}
		sinks = append(sinks, exporter)
		closers = append(closers, exporter.Close)
	}

	if opts.toDeploy {
		if !cfg.DeployEnabled() {
			log.Fatal().Msg("DEPLOY_URL is required for -deploy")
		}
		if opts.xlsxPath == "" && opts.chartPath == "" && opts.jsonPath == "" {
			log.Warn().Msg("-deploy given without -xlsx, -chart or -json; nothing will be uploaded")
		}
		deployer := deployment.NewSSHDeployer(cfg.DeployURL, cfg.DeployKeyFile, resilience.Deploy)
		sinks = append(sinks, deployment.NewReportUploader(deployer, opts.xlsxPath, opts.chartPath, opts.jsonPath))
	}

	names := make([]string, len(sinks))
	for i, sink := range sinks {
		names[i] = sink.Name()
	}
	log.Info().Strs("sinks", names).Msg("Configured scoreboard sinks")

	closed := false
	return sinks, func() {
		if closed {
			return
		}
		closed = true
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				log.Warn().Err(err).Msg("Failed to close sink")
			}
		}
	}
}

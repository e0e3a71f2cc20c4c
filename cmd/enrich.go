package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/escale/cep-enricher/internal/enrich"
	"github.com/escale/cep-enricher/pkg/geofusion"
)

var (
	enrichInput   string
	enrichOutput  string
	enrichFormat  string
	enrichWorkers int
	enrichLimit   int
	enrichProfile string
	enrichDryRun  bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a CSV of CEPs and write the result table",
	Long: `Reads the input CSV (one "cep" column required), enriches every record
against the GeoFusion API and writes the joined result table.

Examples:
  # Dry run: parse the input only, no API calls
  cep-enricher enrich --input ceps.csv --dry-run

  # Sequential run writing CSV
  cep-enricher enrich --input ceps.csv --workers 1 --output enriched.csv

  # Concurrent run writing XLSX with a custom profile
  cep-enricher enrich --input ceps.csv --profile profile.yaml --format xlsx --output enriched.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		path := enrichInput
		if path == "" {
			path = cfg.Batch.Input
		}

		input, err := enrich.ReadRecords(path)
		if err != nil {
			return eris.Wrap(err, "enrich: read input")
		}
		zap.L().Info("parsed input", zap.String("path", path), zap.Int("records", len(input.Records)))

		if enrichLimit > 0 && enrichLimit < len(input.Records) {
			input.Records = input.Records[:enrichLimit]
		}

		if enrichDryRun {
			return printRecordsJSON(input.Records)
		}

		if cfg.GeoFusion.Token == "" {
			return eris.New("enrich: GeoFusion API token is required; set CEP_GEOFUSION_TOKEN or geofusion.token in config.yaml")
		}

		params, err := buildParams()
		if err != nil {
			return err
		}

		client := geofusion.NewClient(cfg.GeoFusion.Token,
			geofusion.WithBaseURL(cfg.GeoFusion.BaseURL),
			geofusion.WithRateLimit(cfg.GeoFusion.RateLimit),
		)

		workers := enrichWorkers
		if workers == 0 {
			workers = cfg.Batch.Workers
		}

		enricher := enrich.New(client, params)
		results, err := enricher.Run(ctx, input.Records, workers)
		if err != nil {
			return eris.Wrap(err, "enrich: run batch")
		}

		table := enrich.BuildTable(input, results)
		return writeTable(table)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "path to input CSV (default: batch.input from config)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "output file path (default: batch.output from config; \"-\" for stdout)")
	enrichCmd.Flags().StringVar(&enrichFormat, "format", "", "output format: csv (default) or xlsx")
	enrichCmd.Flags().IntVar(&enrichWorkers, "workers", 0, "concurrent records (1 = sequential; default: batch.workers from config)")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max records to process (0 = all)")
	enrichCmd.Flags().StringVar(&enrichProfile, "profile", "", "path to a YAML enrichment profile")
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "parse the input and print records, skip enrichment")
	rootCmd.AddCommand(enrichCmd)
}

// buildParams assembles the run parameters from config and the optional
// profile file, then validates them.
func buildParams() (enrich.Params, error) {
	params := enrich.Params{
		DispatchType: cfg.Enrich.DispatchType,
		Locomotion:   cfg.Enrich.Locomotion,
		Direction:    cfg.Enrich.Direction,
		Value:        cfg.Enrich.Value,
		Radius:       cfg.Enrich.Radius,
		Categories:   cfg.Enrich.Categories,
	}

	if enrichProfile != "" {
		profile, err := enrich.LoadProfile(enrichProfile)
		if err != nil {
			return enrich.Params{}, eris.Wrap(err, "enrich: load profile")
		}
		params = profile.Apply(params)
	}

	if err := params.Validate(); err != nil {
		return enrich.Params{}, err
	}
	return params, nil
}

// writeTable writes the result table in the requested format.
func writeTable(table *enrich.Table) error {
	format := enrichFormat
	if format == "" {
		format = cfg.Batch.Format
	}
	output := enrichOutput
	if output == "" {
		output = cfg.Batch.Output
	}

	switch format {
	case "xlsx":
		if err := table.SaveXLSX(output); err != nil {
			return err
		}
	case "csv", "":
		if output == "-" {
			return table.WriteCSV(os.Stdout)
		}
		if err := table.SaveCSV(output); err != nil {
			return err
		}
	default:
		return eris.Errorf("enrich: unknown output format %q (want csv or xlsx)", format)
	}

	zap.L().Info("result table written",
		zap.String("path", output),
		zap.String("format", format),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", len(table.Columns)),
	)
	return nil
}

// printRecordsJSON prints parsed records as indented JSON.
func printRecordsJSON(records []enrich.Record) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jengzang/placewalk-go/internal/config"
	"github.com/jengzang/placewalk-go/internal/pipeline"
	"github.com/jengzang/placewalk-go/internal/places"
	"github.com/jengzang/placewalk-go/internal/timeline"
)

var (
	cfgPath string
	cfg     *config.Config

	flagInput     string
	flagDataDir   string
	flagAPIKey    string
	flagMaxCost   float64
	flagRPS       float64
	flagRadiusKm  float64
	flagMinPoints int
)

var rootCmd = &cobra.Command{
	Use:   "placewalk",
	Short: "Timeline place enrichment and clustering pipeline",
	Long: `placewalk turns a location-history export into enriched place records
and spatial cluster statistics, spending at most the configured budget on
external place lookups.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// loadConfig 加载配置并应用命令行覆盖
func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("input") {
		cfg.Extract.Input = flagInput
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.Enrich.APIKey = flagAPIKey
	}
	if cmd.Flags().Changed("max-total-cost") {
		cfg.Enrich.MaxTotalCost = flagMaxCost
	}
	if cmd.Flags().Changed("requests-per-second") {
		cfg.Enrich.RequestsPerSecond = flagRPS
	}
	if cmd.Flags().Changed("radius-km") {
		cfg.Cluster.RadiusKilometers = flagRadiusKm
	}
	if cmd.Flags().Changed("min-points") {
		cfg.Cluster.MinPoints = flagMinPoints
	}

	return cfg.Validate()
}

func newPipeline() *pipeline.Pipeline {
	lookup := places.NewClient(cfg.Enrich.APIKey, cfg.Enrich.Endpoint)
	return pipeline.New(cfg, lookup)
}

// signalContext cancels on Ctrl-C so the enricher checkpoints before exit
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Parse the timeline export into normalized records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := newPipeline().Extract()
		return err
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report segment counts and payload shapes of an export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(cfg.Extract.Input)
		if err != nil {
			return fmt.Errorf("failed to open export: %w", err)
		}
		defer f.Close()

		sum, err := timeline.Inspect(f)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	},
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fetch place details under the cost ceiling",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Enrich.APIKey == "" {
			return fmt.Errorf("no API key configured (set PLACES_API_KEY or --api-key)")
		}
		art, err := newPipeline().Enrich(signalContext())
		if err != nil {
			return err
		}
		if !art.Metadata.ProcessingComplete {
			log.Printf("Budget exhausted before all candidates were processed; rerun to resume")
		}
		return nil
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Write the minimal and temporal views of the enriched places",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return newPipeline().Project()
	},
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster enriched coordinates and write the report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		report, err := newPipeline().Cluster()
		if err != nil {
			return err
		}
		cmd.Printf("%d clusters, %d noise points\n", report.TotalClusters, report.NoisePoints)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every pipeline stage in order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Enrich.APIKey == "" {
			return fmt.Errorf("no API key configured (set PLACES_API_KEY or --api-key)")
		}
		return newPipeline().Run(signalContext())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "placewalk.toml", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagInput, "input", "", "timeline export file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "artifact output directory")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "place lookup API key")
	rootCmd.PersistentFlags().Float64Var(&flagMaxCost, "max-total-cost", 0, "lookup budget in USD")
	rootCmd.PersistentFlags().Float64Var(&flagRPS, "requests-per-second", 0, "lookup pacing")
	rootCmd.PersistentFlags().Float64Var(&flagRadiusKm, "radius-km", 0, "cluster neighborhood radius")
	rootCmd.PersistentFlags().IntVar(&flagMinPoints, "min-points", 0, "minimum neighborhood size")

	rootCmd.AddCommand(extractCmd, inspectCmd, enrichCmd, projectCmd, clusterCmd, runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

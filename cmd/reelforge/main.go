package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/reelforge/internal/analyzer"
	"github.com/keagan/reelforge/internal/config"
	"github.com/keagan/reelforge/internal/ffmpeg"
	"github.com/keagan/reelforge/internal/logging"
	"github.com/keagan/reelforge/internal/pipeline"
	"github.com/keagan/reelforge/pkg/util"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reelforge",
	Short: "reelforge - AI highlight reel generator",
	Long:  "Turns a long source video into a short highlight reel by analyzing overlapping windows with Gemini and assembling the best moments.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

var (
	flagOutputDir  string
	flagOutputName string
	flagWindowLen  float64
	flagOverlap    float64
	flagMaxTotal   float64
	flagCrossfade  float64
	flagModel      string
	flagAPIKey     string
	flagWorkers    int
	flagStrict     bool
	flagQuiet      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./reelforge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	generateCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "directory for the final reel")
	generateCmd.Flags().StringVar(&flagOutputName, "output", "", "base name for the output file, without extension")
	generateCmd.Flags().Float64Var(&flagWindowLen, "window", 0, "analysis window length in seconds")
	generateCmd.Flags().Float64Var(&flagOverlap, "overlap", 0, "overlap between adjacent windows in seconds")
	generateCmd.Flags().Float64Var(&flagMaxTotal, "max-duration", 0, "maximum reel duration in seconds")
	generateCmd.Flags().Float64Var(&flagCrossfade, "crossfade", -1, "fade duration in seconds")
	generateCmd.Flags().StringVar(&flagModel, "model", "", "Gemini model name")
	generateCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	generateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent window analyses")
	generateCmd.Flags().BoolVar(&flagStrict, "strict-windows", false, "abort on the first failed window instead of degrading")
	generateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "do not print the segment summary")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [source video]",
	Short: "Generate a highlight reel from a source video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		applyFlagOverrides(cfg)

		if cfg.Analyzer.APIKey == "" {
			return fmt.Errorf("no analyzer credential: pass --api-key or set GEMINI_API_KEY")
		}

		exec, err := ffmpeg.New(log.Logger, 0)
		if err != nil {
			return err
		}

		gemini, err := analyzer.NewGemini(cmd.Context(), log.Logger, analyzer.GeminiConfig{
			Model:        cfg.Analyzer.Model,
			APIKey:       cfg.Analyzer.APIKey,
			PollInterval: time.Duration(cfg.Analyzer.PollIntervalSeconds * float64(time.Second)),
			PollTimeout:  time.Duration(cfg.Analyzer.PollTimeoutSeconds * float64(time.Second)),
		})
		if err != nil {
			return err
		}

		pipe := pipeline.New(log.Logger, exec, gemini, pipeline.Options{
			OutputDir:       cfg.OutputDir,
			OutputName:      cfg.OutputName,
			WindowSeconds:   cfg.Windowing.WindowSeconds,
			OverlapSeconds:  cfg.Windowing.OverlapSeconds,
			MaxTotalSeconds: cfg.Reel.MaxTotalSeconds,
			GapTolerance:    cfg.Reel.GapTolerance,
			Crossfade:       cfg.Reel.CrossfadeSeconds,
			Workers:         cfg.Concurrency,
			StrictWindows:   cfg.StrictWindows,
		})

		result, err := pipe.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !flagQuiet {
			printSummary(result)
		}
		fmt.Println(result.OutputPath)
		return nil
	},
}

// applyFlagOverrides lets explicit flags win over the config file
func applyFlagOverrides(cfg *config.Config) {
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if flagOutputName != "" {
		cfg.OutputName = flagOutputName
	}
	if flagWindowLen > 0 {
		cfg.Windowing.WindowSeconds = flagWindowLen
	}
	if flagOverlap > 0 {
		cfg.Windowing.OverlapSeconds = flagOverlap
	}
	if flagMaxTotal > 0 {
		cfg.Reel.MaxTotalSeconds = flagMaxTotal
	}
	if flagCrossfade >= 0 {
		cfg.Reel.CrossfadeSeconds = flagCrossfade
	}
	if flagModel != "" {
		cfg.Analyzer.Model = flagModel
	}
	if flagAPIKey != "" {
		cfg.Analyzer.APIKey = flagAPIKey
	}
	if flagWorkers > 0 {
		cfg.Concurrency = flagWorkers
	}
	if flagStrict {
		cfg.StrictWindows = true
	}
}

func printSummary(r *pipeline.Result) {
	fmt.Println("HIGHLIGHT GENERATION COMPLETE")
	fmt.Printf("Source:         %s\n", r.SourcePath)
	fmt.Printf("Source length:  %s\n", util.FormatMMSS(r.SourceDuration))
	fmt.Printf("Windows:        %d analyzed", r.WindowCount)
	if r.DegradedWindows > 0 {
		fmt.Printf(" (%d failed, coverage degraded)", r.DegradedWindows)
	}
	fmt.Println()
	fmt.Printf("Chunks saved:   %s\n", r.ChunksDir)
	fmt.Printf("Reel:           %s\n", r.OutputPath)
	fmt.Printf("Reel length:    %s (%.1fs)\n", util.FormatMMSS(r.OutputDuration), r.OutputDuration)
	fmt.Println("\nSelected segments:")
	for _, seg := range r.Segments {
		fmt.Printf("  %s - %s  %s\n", seg.StartTime, seg.EndTime, seg.Label)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to ./reelforge.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if err := cfg.Save("reelforge.yaml"); err != nil {
			return err
		}
		log.Info().Str("path", "reelforge.yaml").Msg("wrote config")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

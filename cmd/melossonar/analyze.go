package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/melos-sonar/algorithms/melody"
	"github.com/RyanBlaney/melos-sonar/algorithms/timemap"
	"github.com/RyanBlaney/melos-sonar/features"
	"github.com/RyanBlaney/melos-sonar/logging"
	"github.com/RyanBlaney/melos-sonar/scoreio"
)

// AnalysisReport is the JSON document the analyze command emits: one
// feature set per non-empty track plus the file's tempo map.
type AnalysisReport struct {
	File            string                        `json:"file"`
	TicksPerQuarter int                           `json:"ticks_per_quarter"`
	TempoMap        []timemap.Breakpoint          `json:"tempo_map"`
	Tracks          []*features.ExtractedFeatures `json:"tracks"`
}

func newAnalyzeCmd() *cobra.Command {
	cfg := features.DefaultConfig()
	var output string

	cmd := &cobra.Command{
		Use:   "analyze <file.mid>",
		Short: "Compute melodic features for every track of a MIDI file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := analyzeFile(args[0], cfg)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().Float64Var(&cfg.PhraseGap, "phrase-gap", melody.DefaultPhraseGap,
		"IOI threshold that closes a phrase, in quarter notes")
	cmd.Flags().StringVar(&cfg.Method, "method", "all",
		`n-gram length to count: "all" or a positive integer`)
	cmd.Flags().IntVar(&cfg.Precision, "precision", melody.DefaultPrecision,
		"decimal places IOIs are rounded to")
	cmd.Flags().IntVar(&cfg.ContourSteps, "contour-steps", melody.DefaultContourSteps,
		"number of step-contour samples")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

func analyzeFile(path string, cfg features.Config) (*AnalysisReport, error) {
	extractor, err := features.NewExtractor(cfg)
	if err != nil {
		return nil, err
	}

	parsed, err := scoreio.ReadSMFFile(path)
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{
		File:            path,
		TicksPerQuarter: parsed.TicksPerQuarter,
		TempoMap:        parsed.TimeMap.Breakpoints(),
	}
	melodies, err := parsed.Melodies()
	if err != nil {
		return nil, err
	}
	for _, m := range melodies {
		extracted, err := extractor.Extract(m)
		if err != nil {
			return nil, fmt.Errorf("analyzing %s: %w", m.Name, err)
		}
		report.Tracks = append(report.Tracks, extracted)
	}

	logging.Info("analyzed file", logging.Fields{
		"file":   path,
		"tracks": len(report.Tracks),
	})
	return report, nil
}

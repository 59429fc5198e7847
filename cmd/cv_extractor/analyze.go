package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-mission-extractor/internal/observability"
	"github.com/jonathan/cv-mission-extractor/internal/schemas"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

func newAnalyzeCmd(o *rootOptions) *cobra.Command {
	var (
		consultant string
		outPath    string
		compact    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Analyse one résumé",
		Long: "Analyse one résumé file, or stdin when the argument is \"-\", and print the extracted " +
			"missions, skills and contact details as JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}

			collector := &observability.Collector{}
			analyzer, err := o.newAnalyzer(collector)
			if err != nil {
				return err
			}

			result, err := analyzer.AnalyzeCVContent(text, consultant)
			if err != nil {
				return fmt.Errorf("failed to analyse %s: %w", args[0], err)
			}

			data, err := encodeAnalysis(result, compact)
			if err != nil {
				return err
			}
			if o.cfg.ValidateOutput {
				if err := checkAnalysis(result, data); err != nil {
					return err
				}
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			}

			if o.cfg.Verbose {
				p := observability.NewPrinter(cmd.ErrOrStderr())
				p.PrintAnalysis(result)
				for _, s := range collector.Summaries() {
					p.PrintSummary(s)
				}
				p.PrintWarnings(collector.Warnings())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&consultant, "consultant", "", "Consultant name (guessed from the résumé when empty)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print compact JSON")
	return cmd
}

// checkAnalysis validates the analysis bounds and its encoded form against the JSON schema.
func checkAnalysis(a *types.CVAnalysis, data []byte) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("analysis is out of bounds: %w", err)
	}
	if err := schemas.ValidateAnalysis(data); err != nil {
		return fmt.Errorf("output does not match schema: %w", err)
	}
	return nil
}

func encodeAnalysis(a *types.CVAnalysis, compact bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(a)
	} else {
		data, err = json.MarshalIndent(a, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis to JSON: %w", err)
	}
	return data, nil
}

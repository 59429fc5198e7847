package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-mission-extractor/internal/schemas"
)

func newValidateCmd(_ *rootOptions) *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate [analysis.json]",
		Short: "Validate an analysis JSON file against the CVAnalysis schema",
		Long:  "Validate a JSON file produced by analyze against the built-in CVAnalysis JSON Schema, or print the schema.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), schemas.CVAnalysisSchema())
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("an analysis JSON file is required")
			}

			if err := schemas.ValidateAnalysisFile(args[0]); err != nil {
				var validationErr *schemas.ValidationError
				if errors.As(err, &validationErr) {
					_, _ = fmt.Fprint(cmd.ErrOrStderr(), validationErr.Error())
					return fmt.Errorf("validation failed with %d errors", len(validationErr.Errors))
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&printSchema, "print-schema", false, "Print the JSON Schema and exit")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-mission-extractor/internal/ingestion"
)

func newFingerprintCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <file|->",
		Short: "Print the metadata and fingerprint of a résumé",
		Long: "Print the metadata of a résumé as JSON. Its hash is the fingerprint that keys " +
			"verified missions in the overrides file, computed on the text cut to --max-input-bytes " +
			"like an analysis.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}

			doc := ingestion.NormalizeDocument(ingestion.Truncate(text, o.cfg.MaxInputBytes))
			data, err := ingestion.NewMetadata(doc, args[0]).ToJSON()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-mission-extractor/internal/analysis"
	"github.com/jonathan/cv-mission-extractor/internal/config"
	"github.com/jonathan/cv-mission-extractor/internal/gazetteer"
	"github.com/jonathan/cv-mission-extractor/internal/ingestion"
	"github.com/jonathan/cv-mission-extractor/internal/logging"
	"github.com/jonathan/cv-mission-extractor/internal/observability"
	"github.com/jonathan/cv-mission-extractor/internal/overrides"
)

// rootOptions holds the flags shared by every subcommand and the configuration
// resolved from them.
type rootOptions struct {
	configPath string
	flags      config.Config

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cv_extractor",
		Short: "Extract missions and skills from résumés",
		Long: "cv_extractor reads French-style résumés (PDF, DOCX, PPTX, HTML or text) and extracts a " +
			"bounded, deduplicated list of missions with their dates, clients and technologies, " +
			"plus the technical and functional skills and contact details of the consultant.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.resolve,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Path to JSON config file")
	flags.StringVar(&o.flags.GazetteerFile, "gazetteer", "", "YAML file extending the built-in clients and technologies")
	flags.StringVar(&o.flags.OverridesFile, "overrides", "", "YAML file of verified missions")
	flags.IntVar(&o.flags.MaxInputBytes, "max-input-bytes", 0, "Maximum text analysed per document (default 512 KiB)")
	flags.StringVar(&o.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&o.flags.LogFormat, "log-format", "", "Log format: json or console")
	flags.BoolVarP(&o.flags.Verbose, "verbose", "v", false, "Print detailed progress information")
	flags.BoolVar(&o.flags.ValidateOutput, "validate", false, "Check every analysis against the JSON Schema")

	cmd.AddCommand(
		newAnalyzeCmd(o),
		newBatchCmd(o),
		newValidateCmd(o),
		newFingerprintCmd(o),
	)
	return cmd
}

// resolve layers flags over environment over config file over defaults.
func (o *rootOptions) resolve(cmd *cobra.Command, _ []string) error {
	var file config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return err
		}
		file = *loaded
	}

	cfg := o.flags.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(file)
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, cmd.ErrOrStderr())
	return nil
}

// newAnalyzer builds an analyzer from the resolved configuration. Events go to the
// log and to sink.
func (o *rootOptions) newAnalyzer(sink analysis.ProgressSink) (*analysis.Analyzer, error) {
	g, err := gazetteer.WithOverlay(o.cfg.GazetteerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load gazetteer: %w", err)
	}

	opts := analysis.Options{
		Sink:          analysis.MultiSink{observability.NewLogSink(o.logger), sink},
		Logger:        &o.logger,
		MaxInputBytes: o.cfg.MaxInputBytes,
	}
	if o.cfg.OverridesFile != "" {
		table, err := overrides.LoadFile(o.cfg.OverridesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load verified missions: %w", err)
		}
		o.logger.Debug().Int("entries", table.Len()).Str("path", o.cfg.OverridesFile).Msg("verified missions loaded")
		opts.Verified = table
	}
	return analysis.NewAnalyzer(g, opts), nil
}

// readDocument returns the text of path, or of stdin when path is "-".
func readDocument(ctx context.Context, cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return ingestion.NewFileReader().ExtractText(ctx, path)
}

package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-mission-extractor/internal/analysis"
	"github.com/jonathan/cv-mission-extractor/internal/ingestion"
	"github.com/jonathan/cv-mission-extractor/internal/observability"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// batchLine is one JSON line written by the batch command when no output directory is set.
type batchLine struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name"`
	Analysis *types.CVAnalysis `json:"analysis,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func newBatchCmd(o *rootOptions) *cobra.Command {
	var (
		dir     string
		outDir  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Analyse many résumés concurrently",
		Long: "Analyse every file given as argument and every supported file under --dir. Results are " +
			"written as JSON lines in input order, or as one <name>.json file per résumé under --out-dir, " +
			"numbered <name>-2.json and so on when base names repeat.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := append([]string{}, args...)
			if dir != "" {
				found, err := listDocuments(dir)
				if err != nil {
					return err
				}
				paths = append(paths, found...)
			}
			if len(paths) == 0 {
				return fmt.Errorf("no résumé given: pass files or --dir")
			}
			if workers <= 0 {
				workers = o.cfg.Workers
			}

			// Unreadable files fail alone, like failed analyses.
			docs := make([]analysis.Document, 0, len(paths))
			readErrs := make(map[string]error)
			for _, path := range paths {
				text, err := readDocument(cmd.Context(), cmd, path)
				if err != nil {
					readErrs[path] = err
					continue
				}
				docs = append(docs, analysis.Document{Name: path, Text: text})
			}

			analyzer, err := o.newAnalyzer(analysis.NopSink{})
			if err != nil {
				return err
			}
			analysed, err := analyzer.AnalyzeBatch(cmd.Context(), docs, workers)
			if err != nil {
				return err
			}

			results := make([]analysis.Result, 0, len(paths))
			next := 0
			for _, path := range paths {
				if err, ok := readErrs[path]; ok {
					results = append(results, analysis.Result{Name: path, Err: err})
					continue
				}
				results = append(results, analysed[next])
				next++
			}

			if err := writeBatch(cmd, o.logger, results, outDir, o.cfg.ValidateOutput); err != nil {
				return err
			}
			if o.cfg.Verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintBatch(results)
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d résumés failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory scanned recursively for résumés")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Write one JSON file per résumé to this directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent analyses (default from config)")
	return cmd
}

// listDocuments returns the supported files under dir in lexical order.
func listDocuments(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && ingestion.Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// writeBatch emits results as JSON lines, or writes successful analyses under outDir.
// Documents sharing a base name get numbered files ("cv.json", "cv-2.json").
func writeBatch(cmd *cobra.Command, log zerolog.Logger, results []analysis.Result, outDir string, validate bool) error {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	taken := make(map[string]bool)
	enc := json.NewEncoder(cmd.OutOrStdout())
	for i := range results {
		r := &results[i]
		if r.Err == nil && (validate || outDir != "") {
			data, err := encodeAnalysis(r.Analysis, false)
			if err != nil {
				return err
			}
			if validate {
				if err := checkAnalysis(r.Analysis, data); err != nil {
					r.Analysis, r.Err = nil, err
				}
			}
			if r.Err == nil && outDir != "" {
				name := outputName(r.Name, taken)
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				log.Debug().Str("document", r.Name).Str("output", path).Msg("analysis written")
				continue
			}
		}

		line := batchLine{ID: r.ID, Name: r.Name, Analysis: r.Analysis}
		if r.Err != nil {
			line.Error = r.Err.Error()
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

// outputName maps "dir/cv.pdf" to "cv.json", numbering the name when taken already holds it.
func outputName(path string, taken map[string]bool) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + ".json"
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s-%d.json", stem, n)
	}
	taken[name] = true
	return name
}

package analysis

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// DefaultWorkers bounds concurrent analyses in AnalyzeBatch.
const DefaultWorkers = 4

// Document is one résumé submitted to AnalyzeBatch.
type Document struct {
	Name       string
	Consultant string
	Text       string
}

// Result is the outcome of one Document. Exactly one of Analysis and Err is set.
type Result struct {
	ID       string
	Name     string
	Analysis *types.CVAnalysis
	Err      error
}

// AnalyzeBatch analyses docs with at most workers concurrent analyses.
// Results follow the order of docs. A failing document does not stop the others;
// only cancellation of ctx does, in which case the returned error is ctx's.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, docs []Document, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	results := make([]Result, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := uuid.NewString()
			log := a.log.With().Str("doc_id", id).Str("name", doc.Name).Logger()
			analysis, err := a.analyze(doc.Text, doc.Consultant, log)
			results[i] = Result{ID: id, Name: doc.Name, Analysis: analysis, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

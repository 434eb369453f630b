package catalog

import (
	"context"
	"fmt"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/internal/parallel"
)

// BatchResult is the outcome of one document of a batch.
type BatchResult struct {
	Doc    *config.Document
	Result *Result
	Err    error
}

// GenerateAll generates every document on a pool of workers. Results are
// in input order and each carries its own error; one failing document does
// not affect the others. When ctx is done, documents that have not started
// get ctx.Err() as their error.
func GenerateAll(ctx context.Context, docs []*config.Document, workers int) []BatchResult {
	out := make([]BatchResult, len(docs))
	if len(docs) == 0 {
		return out
	}
	pool := parallel.NewPool(min(max(workers, 1), len(docs)))
	defer pool.Close()

	started := make([]bool, len(docs))
	jobs := make([]func(context.Context), len(docs))
	for i, doc := range docs {
		out[i].Doc = doc
		jobs[i] = func(context.Context) {
			started[i] = true
			out[i].Result, out[i].Err = generateSafe(doc)
		}
	}

	n, err := pool.Run(ctx, jobs)
	if err != nil {
		for i := range out {
			if !started[i] {
				out[i].Err = err
			}
		}
	}
	draft.ComponentLogger("catalog").Debug("batch finished", "documents", len(docs), "ran", n, "workers", pool.Workers())
	return out
}

// generateSafe is Generate with generator panics turned into errors, so a
// bad document cannot take down the other workers.
func generateSafe(doc *config.Document) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("catalog: generate: %v", r)
		}
	}()
	return Generate(doc)
}

package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/timespiral/pkg/dataset"
	"github.com/matzehuels/timespiral/pkg/observability"
)

// Import loads a dataset from path, choosing the decoder from the file
// extension.
func (r *Runner) Import(ctx context.Context, path string, fields dataset.Fields) (*dataset.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, path)

	start := time.Now()
	ds, err := dataset.Import(path, fields)
	hooks.OnImportComplete(ctx, path, ds.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("imported dataset",
		"path", path,
		"observations", ds.Len(),
		"duration", time.Since(start))
	return ds, nil
}

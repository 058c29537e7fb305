package pipeline

import (
	"github.com/matzehuels/timespiral/pkg/dataset"
	"github.com/matzehuels/timespiral/pkg/layout"
)

// GenerateLayout computes the chart geometry for ds. It is a pure function
// of its inputs; options are defaulted and validated first.
func GenerateLayout(ds *dataset.Dataset, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Strict {
		if err := ds.Validate(true); err != nil {
			return nil, err
		}
	}
	return layout.Compute(ds, opts.LayoutConfig())
}

package analysis

import (
	"github.com/iwanhae/vecbench/internal/storage"
)

// ColumnVectorizedRatio is the name of the derived ratio column.
const ColumnVectorizedRatio = "vectorized_ratio"

// RatioTable is a dataset with vectorized_ratio = vectorized_time / consolidated_time per row.
// A ratio below 1 means the vectorized write was faster.
type RatioTable struct {
	Platform     string
	Chunks       []float64
	Consolidated []float64
	Vectorized   []float64
	Ratio        []float64
}

// Ratios derives the ratio table of a dataset. Division by zero is not guarded:
// it yields +Inf, or NaN for 0/0, which Describe then skips.
func Ratios(ds *storage.Dataset) (*RatioTable, error) {
	chunks, err := ds.Chunks()
	if err != nil {
		return nil, err
	}
	consolidated, err := ds.Column(storage.ColumnConsolidatedTime)
	if err != nil {
		return nil, err
	}
	vectorized, err := ds.Column(storage.ColumnVectorizedTime)
	if err != nil {
		return nil, err
	}

	ratio := make([]float64, len(consolidated))
	for i := range consolidated {
		ratio[i] = vectorized[i] / consolidated[i]
	}

	return &RatioTable{
		Platform:     ds.Name,
		Chunks:       chunks,
		Consolidated: consolidated,
		Vectorized:   vectorized,
		Ratio:        ratio,
	}, nil
}

// RatioTables derives a ratio table for every dataset, stopping at the first error.
func RatioTables(datasets []*storage.Dataset) ([]*RatioTable, error) {
	tables := make([]*RatioTable, 0, len(datasets))
	for _, ds := range datasets {
		t, err := Ratios(ds)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

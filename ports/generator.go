package ports

import (
	"context"

	"agrismart/domain/dataset"
)

// DatasetGenerator produces synthetic training data
type DatasetGenerator interface {
	Generate(ctx context.Context, count int, seed int64) (*dataset.Dataset, error)
}

// DatasetExporter writes a dataset and its summary to an external file format
type DatasetExporter interface {
	Export(ctx context.Context, ds *dataset.Dataset, path string) error
}

// DatasetReader loads labelled records from an external file
type DatasetReader interface {
	Read(ctx context.Context, path string) (*dataset.Dataset, error)
}

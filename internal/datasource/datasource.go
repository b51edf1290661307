// internal/datasource/datasource.go - Feature retrieval contract
package datasource

import (
	"context"

	"mvtserve/internal/grid"
	"mvtserve/internal/layer"
	"mvtserve/pkg/mvt"
)

// FeatureFunc consumes one feature at a time as a query streams its results.
// Returning an error stops the stream.
type FeatureFunc func(*mvt.Feature) error

// Datasource retrieves the features of a layer intersecting an extent at a
// given zoom. Features are pushed to fn as they arrive, in backend order,
// without buffering the full result set. Implementations must support
// concurrent independent queries.
type Datasource interface {
	RetrieveFeatures(ctx context.Context, l *layer.Layer, extent grid.Extent, zoom uint32, fn FeatureFunc) error
}

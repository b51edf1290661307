// pkg/mvt/tile.go - Finalized vector tile value and binary codec
package mvt

import (
	"fmt"

	"github.com/paulmach/orb/encoding/mvt"
)

// Tile is a finalized vector tile: an ordered, immutable sequence of layer
// sections. The caller owns the value after it is returned by a builder or
// by Decode.
type Tile struct {
	layers mvt.Layers
}

// Marshal serializes the tile into its binary protobuf encoding.
func (t *Tile) Marshal() ([]byte, error) {
	data, err := mvt.Marshal(t.layers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tile: %w", err)
	}
	return data, nil
}

// Decode parses the binary encoding of a vector tile.
func Decode(data []byte) (*Tile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty tile data")
	}

	layers, err := mvt.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal tile: %w", err)
	}

	return &Tile{layers: layers}, nil
}

// Layers exposes the tile's layer sections in append order.
func (t *Tile) Layers() mvt.Layers {
	return t.layers
}

// LayerNames returns the names of all layer sections in append order.
func (t *Tile) LayerNames() []string {
	names := make([]string, 0, len(t.layers))
	for _, l := range t.layers {
		names = append(names, l.Name)
	}
	return names
}

// HasLayer checks if the tile contains a layer section with the given name.
func (t *Tile) HasLayer(name string) bool {
	for _, l := range t.layers {
		if l.Name == name {
			return true
		}
	}
	return false
}

// FeatureCount returns the total number of features across all layers.
func (t *Tile) FeatureCount() int {
	count := 0
	for _, l := range t.layers {
		count += len(l.Features)
	}
	return count
}

// LayerFeatureCount returns the number of features in a specific layer.
func (t *Tile) LayerFeatureCount(name string) int {
	for _, l := range t.layers {
		if l.Name == name {
			return len(l.Features)
		}
	}
	return 0
}

// IsEmpty returns true if the tile contains no features.
func (t *Tile) IsEmpty() bool {
	return t.FeatureCount() == 0
}

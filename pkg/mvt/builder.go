// pkg/mvt/builder.go - Incremental vector tile assembly
package mvt

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"

	"mvtserve/internal/grid"
)

// Version is the vector tile specification version written to layer sections.
const Version = 2

// Feature is one geometric feature to encode into a layer section. Its
// geometry is expressed in the coordinates of the builder's target extent.
type Feature struct {
	ID         *uint64
	Geometry   orb.Geometry
	Properties geojson.Properties
}

// Builder assembles one vector tile scoped to a target extent. Layer sections
// are appended in the order AddLayer is called; each section is immutable
// once appended.
type Builder struct {
	extent     grid.Extent
	resolution float64
	flipY      bool
	layers     mvt.Layers
}

// NewBuilder creates a builder for the given extent and tile-local coordinate
// resolution. With flipY set, the tile's row axis points down (tile row 0 at
// the extent's top edge), matching the pyramid convention.
func NewBuilder(extent grid.Extent, resolution uint32, flipY bool) *Builder {
	return &Builder{
		extent:     extent,
		resolution: float64(resolution),
		flipY:      flipY,
	}
}

// NewLayer opens a new named layer section at the builder's resolution. The
// section is not part of the tile until AddLayer is called.
func (b *Builder) NewLayer(name string) *mvt.Layer {
	return &mvt.Layer{
		Name:     name,
		Version:  Version,
		Extent:   uint32(b.resolution),
		Features: []*geojson.Feature{},
	}
}

// AddFeature encodes one feature into an open layer section, projecting its
// geometry from the target extent into tile-local coordinates. Features
// without geometry are dropped.
func (b *Builder) AddFeature(section *mvt.Layer, f *Feature) {
	if f == nil || f.Geometry == nil {
		return
	}

	encoded := geojson.NewFeature(b.project(f.Geometry))
	if f.Properties != nil {
		encoded.Properties = f.Properties
	}
	if f.ID != nil {
		encoded.ID = *f.ID
	}

	section.Features = append(section.Features, encoded)
}

// AddLayer closes a layer section and appends it to the tile. A section with
// zero features still appears in the final encoding.
func (b *Builder) AddLayer(section *mvt.Layer) {
	b.layers = append(b.layers, section)
}

// Finalize consumes the builder into an immutable tile value. The builder
// must not be reused afterwards.
func (b *Builder) Finalize() *Tile {
	return &Tile{layers: b.layers}
}

// project maps geometry coordinates from the target extent onto the
// 0..resolution tile space.
func (b *Builder) project(g orb.Geometry) orb.Geometry {
	w := b.extent.Width()
	h := b.extent.Height()

	return transformGeometry(g, func(p orb.Point) orb.Point {
		x := (p[0] - b.extent.MinX) / w * b.resolution
		var y float64
		if b.flipY {
			y = (b.extent.MaxY - p[1]) / h * b.resolution
		} else {
			y = (p[1] - b.extent.MinY) / h * b.resolution
		}
		return orb.Point{x, y}
	})
}

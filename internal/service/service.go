// internal/service/service.go - Cache-aside tile generation orchestration
package service

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"mvtserve/internal"
	"mvtserve/internal/cache"
	"mvtserve/internal/datasource"
	"mvtserve/internal/grid"
	"mvtserve/internal/layer"
	"mvtserve/pkg/mvt"
)

// TileResolution is the tile-local integer coordinate space.
const TileResolution = 4096

// Tileset is a named, ordered collection of layer names composited into one
// tile response. Layer names need not all resolve to defined layers.
type Tileset struct {
	Name   string
	Layers []string
}

// MVTService resolves tile requests into cached or freshly generated vector
// tiles. All fields are read-only after construction; a single instance is
// safe for concurrent use by simultaneous requests. Mutable state (connection
// pools, cache backends) lives inside the collaborators.
type MVTService struct {
	Input    datasource.Datasource
	Grid     *grid.Grid
	Layers   []*layer.Layer
	Tilesets []Tileset
	Cache    cache.Cache
}

// layersFor resolves a tileset name to its constituent layers. A matching
// tileset yields its declared layers in declared order, silently dropping
// names that resolve to no defined layer. Otherwise the name is treated as a
// direct layer name. An empty result is valid and yields a tile with zero
// layers.
func (s *MVTService) layersFor(name string) []*layer.Layer {
	for _, ts := range s.Tilesets {
		if ts.Name != name {
			continue
		}
		layers := make([]*layer.Layer, 0, len(ts.Layers))
		for _, ln := range ts.Layers {
			for _, l := range s.Layers {
				if l.Name == ln {
					layers = append(layers, l)
				}
			}
		}
		return layers
	}

	var layers []*layer.Layer
	for _, l := range s.Layers {
		if l.Name == name {
			layers = append(layers, l)
		}
	}
	return layers
}

// Tile returns the vector tile for (tileset, x, y, zoom), serving from cache
// when possible and regenerating on a miss. Tile rows are addressed in
// pyramid convention (row 0 at the top). The only error surfaced to the
// caller is a failed datasource query, which aborts the whole build; cache
// read and write problems are absorbed.
func (s *MVTService) Tile(ctx context.Context, tileset string, x, y, zoom uint32) (*mvt.Tile, error) {
	key := cache.Key{Tileset: tileset, X: x, Y: y, Z: zoom}

	var cached *mvt.Tile
	s.Cache.Lookup(key, func(r io.Reader) error {
		data, err := io.ReadAll(r)
		if err == nil {
			cached, err = mvt.Decode(data)
		}
		if err != nil {
			// Stale, truncated or foreign bytes are treated as a miss.
			log.Warnf("tile %s/%d/%d/%d: discarding unreadable cache entry: %v", tileset, zoom, x, y, err)
		}
		return err
	})
	if cached != nil {
		return cached, nil
	}

	extent := s.Grid.TileExtentReverseY(x, y, zoom)
	log.Debugf("tile %s/%d/%d/%d extent %+v", tileset, zoom, x, y, extent)

	builder := mvt.NewBuilder(extent, TileResolution, true)
	for _, l := range s.layersFor(tileset) {
		section := builder.NewLayer(l.Name)
		err := s.Input.RetrieveFeatures(ctx, l, extent, zoom, func(f *mvt.Feature) error {
			builder.AddFeature(section, f)
			return nil
		})
		if err != nil {
			// One failed layer aborts the whole build.
			return nil, internal.NewError(internal.ErrorCodeDatasource,
				fmt.Sprintf("feature retrieval for layer %q failed", l.Name), err)
		}
		builder.AddLayer(section)
	}
	tile := builder.Finalize()

	if err := s.Cache.Store(key, func(w io.Writer) error {
		data, err := tile.Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}); err != nil {
		// Serving the freshly built tile matters more than persisting it.
		log.Warnf("tile %s/%d/%d/%d: cache store failed: %v", tileset, zoom, x, y, err)
	}

	return tile, nil
}

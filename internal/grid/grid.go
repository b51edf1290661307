// internal/grid/grid.go - Tiling grids and tile extent computation
package grid

import (
	"fmt"
	"math"
)

// Extent is an axis-aligned bounding box in the grid's spatial reference.
type Extent struct {
	MinX float64 `json:"minx"`
	MinY float64 `json:"miny"`
	MaxX float64 `json:"maxx"`
	MaxY float64 `json:"maxy"`
}

// Width returns the horizontal span of the extent.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the vertical span of the extent.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

const webMercatorMax = 20037508.342789244

// Grid describes a quad-tree tiling of a world extent. Rows follow the
// spatial reference's native axis: row 0 is the bottom row of the world.
type Grid struct {
	Name  string
	SRID  int
	World Extent
}

// WebMercator returns the global EPSG:3857 grid (one square tile at zoom 0).
func WebMercator() *Grid {
	return &Grid{
		Name: "web_mercator",
		SRID: 3857,
		World: Extent{
			MinX: -webMercatorMax,
			MinY: -webMercatorMax,
			MaxX: webMercatorMax,
			MaxY: webMercatorMax,
		},
	}
}

// WGS84 returns the global EPSG:4326 grid (two square tiles at zoom 0).
func WGS84() *Grid {
	return &Grid{
		Name: "wgs84",
		SRID: 4326,
		World: Extent{
			MinX: -180,
			MinY: -90,
			MaxX: 180,
			MaxY: 90,
		},
	}
}

// Predefined resolves a grid by its configuration name.
func Predefined(name string) (*Grid, error) {
	switch name {
	case "", "web_mercator":
		return WebMercator(), nil
	case "wgs84":
		return WGS84(), nil
	default:
		return nil, fmt.Errorf("unknown predefined grid: %s (supported: web_mercator, wgs84)", name)
	}
}

// tileSpan returns the width and height of one tile at the given zoom.
// Tiles are square, so the span derives from the world height alone; a world
// twice as wide as tall (wgs84) simply has twice as many columns.
func (g *Grid) tileSpan(zoom uint32) float64 {
	return g.World.Height() / float64(uint64(1)<<zoom)
}

// Rows returns the number of tile rows at the given zoom.
func (g *Grid) Rows(zoom uint32) uint32 {
	return uint32(uint64(1) << zoom)
}

// Cols returns the number of tile columns at the given zoom.
func (g *Grid) Cols(zoom uint32) uint32 {
	span := g.tileSpan(zoom)
	return uint32(math.Round(g.World.Width() / span))
}

// TileExtent computes the bounding box of tile (x, y) at the given zoom
// using the grid's native row axis (row 0 at the bottom).
func (g *Grid) TileExtent(x, y, zoom uint32) Extent {
	span := g.tileSpan(zoom)
	return Extent{
		MinX: g.World.MinX + span*float64(x),
		MinY: g.World.MinY + span*float64(y),
		MaxX: g.World.MinX + span*float64(x+1),
		MaxY: g.World.MinY + span*float64(y+1),
	}
}

// TileExtentReverseY computes the bounding box of tile (x, y) where rows are
// addressed in tile-pyramid convention (row 0 at the top). Pyramid rows and
// native rows are complementary.
func (g *Grid) TileExtentReverseY(x, y, zoom uint32) Extent {
	return g.TileExtent(x, g.Rows(zoom)-1-y, zoom)
}

// TileAt returns the tile-pyramid coordinate (row 0 at the top) containing
// the given lon/lat position at the given zoom. Positions outside the world
// extent are clamped to the edge tiles.
func (g *Grid) TileAt(lon, lat float64, zoom uint32) (uint32, uint32) {
	cols, rows := g.Cols(zoom), g.Rows(zoom)

	var fx, fy float64
	if g.SRID == 3857 {
		// Slippy-map formula: project the latitude before gridding.
		n := float64(rows)
		fx = (lon + 180.0) / 360.0 * n
		latRad := lat * math.Pi / 180.0
		fy = (1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n
	} else {
		span := g.tileSpan(zoom)
		fx = (lon - g.World.MinX) / span
		fy = (g.World.MaxY - lat) / span
	}

	return clampIndex(fx, cols), clampIndex(fy, rows)
}

func clampIndex(f float64, count uint32) uint32 {
	if f < 0 {
		return 0
	}
	if f >= float64(count) {
		return count - 1
	}
	return uint32(f)
}

// internal/grid/grid_test.go - Unit tests for tiling grids
package grid

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func extentsEqual(a, b Extent) bool {
	return math.Abs(a.MinX-b.MinX) < tolerance &&
		math.Abs(a.MinY-b.MinY) < tolerance &&
		math.Abs(a.MaxX-b.MaxX) < tolerance &&
		math.Abs(a.MaxY-b.MaxY) < tolerance
}

func TestPredefined(t *testing.T) {
	tests := []struct {
		name     string
		grid     string
		wantSRID int
		wantErr  bool
	}{
		{"web mercator", "web_mercator", 3857, false},
		{"default", "", 3857, false},
		{"wgs84", "wgs84", 4326, false},
		{"unknown", "utm", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Predefined(tt.grid)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Predefined(%q) error = %v, wantErr %v", tt.grid, err, tt.wantErr)
			}
			if err == nil && g.SRID != tt.wantSRID {
				t.Errorf("Expected SRID %d, got %d", tt.wantSRID, g.SRID)
			}
		})
	}
}

func TestWebMercatorZoomZeroCoversWorld(t *testing.T) {
	g := WebMercator()
	got := g.TileExtent(0, 0, 0)
	if !extentsEqual(got, g.World) {
		t.Errorf("Expected zoom 0 tile to cover the world %v, got %v", g.World, got)
	}
}

func TestWGS84ZoomZeroHasTwoColumns(t *testing.T) {
	g := WGS84()
	if cols := g.Cols(0); cols != 2 {
		t.Fatalf("Expected 2 columns at zoom 0, got %d", cols)
	}
	west := g.TileExtent(0, 0, 0)
	east := g.TileExtent(1, 0, 0)
	if west.MaxX != east.MinX {
		t.Errorf("Expected adjacent columns, west ends at %f, east starts at %f", west.MaxX, east.MinX)
	}
	if west.MinX != -180 || east.MaxX != 180 {
		t.Errorf("Expected columns to span -180..180, got %f..%f", west.MinX, east.MaxX)
	}
}

func TestTileExtent(t *testing.T) {
	g := WebMercator()

	// At zoom 1 the native bottom-left tile covers the south-west quadrant.
	got := g.TileExtent(0, 0, 1)
	want := Extent{MinX: g.World.MinX, MinY: g.World.MinY, MaxX: 0, MaxY: 0}
	if !extentsEqual(got, want) {
		t.Errorf("TileExtent(0,0,1) = %v, want %v", got, want)
	}
}

func TestTileExtentReverseY(t *testing.T) {
	g := WebMercator()

	tests := []struct {
		name    string
		x, y, z uint32
	}{
		{"top row zoom 1", 0, 0, 1},
		{"bottom row zoom 1", 1, 1, 1},
		{"mid pyramid", 33, 22, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.TileExtentReverseY(tt.x, tt.y, tt.z)
			// Pyramid row y addresses native row rows-1-y.
			want := g.TileExtent(tt.x, g.Rows(tt.z)-1-tt.y, tt.z)
			if !extentsEqual(got, want) {
				t.Errorf("TileExtentReverseY(%d,%d,%d) = %v, want %v", tt.x, tt.y, tt.z, got, want)
			}
		})
	}

	// Pyramid row 0 is the top of the world, not the bottom.
	top := g.TileExtentReverseY(0, 0, 3)
	if math.Abs(top.MaxY-g.World.MaxY) > tolerance {
		t.Errorf("Expected pyramid row 0 to touch the world top %f, got %f", g.World.MaxY, top.MaxY)
	}
}

func TestTileAt(t *testing.T) {
	g := WebMercator()

	tests := []struct {
		name     string
		lon, lat float64
		zoom     uint32
		wantX    uint32
		wantY    uint32
	}{
		{"origin zoom 0", 0, 0, 0, 0, 0},
		{"north-west quadrant", -90, 40, 1, 0, 0},
		{"south-east quadrant", 90, -40, 1, 1, 1},
		{"clamped west", -200, 0, 2, 0, 2},
		{"clamped north", 0, 89.9, 2, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := g.TileAt(tt.lon, tt.lat, tt.zoom)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("TileAt(%f,%f,%d) = (%d,%d), want (%d,%d)",
					tt.lon, tt.lat, tt.zoom, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTileExtentDeterministic(t *testing.T) {
	g := WebMercator()
	a := g.TileExtentReverseY(33, 22, 6)
	b := g.TileExtentReverseY(33, 22, 6)
	if a != b {
		t.Errorf("Expected identical extents for identical inputs, got %v and %v", a, b)
	}
}

// internal/datasource/postgis_test.go - Unit tests for query assembly
package datasource

import (
	"strings"
	"testing"

	"mvtserve/internal/grid"
	"mvtserve/internal/layer"
)

func TestBuildQueryGenerated(t *testing.T) {
	l := &layer.Layer{
		Name:          "points",
		TableName:     "ne_10m_populated_places",
		GeometryField: "wkb_geometry",
		QueryLimit:    1,
	}
	ext := grid.Extent{MinX: -1, MinY: -2, MaxX: 3, MaxY: 4}

	q := buildQuery(l, ext)

	for _, want := range []string{
		"ST_AsBinary(wkb_geometry)",
		"FROM ne_10m_populated_places",
		"wkb_geometry && ST_MakeEnvelope(",
		"LIMIT 1",
		", 3857)",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("Expected query to contain %q, got %s", want, q)
		}
	}
}

func TestBuildQueryDefaults(t *testing.T) {
	l := &layer.Layer{Name: "water", TableName: "water"}
	q := buildQuery(l, grid.Extent{})

	if !strings.Contains(q, "ST_AsBinary(geom)") {
		t.Errorf("Expected default geometry column, got %s", q)
	}
	if strings.Contains(q, "LIMIT") {
		t.Errorf("Expected no limit clause, got %s", q)
	}
}

func TestBuildQueryCustom(t *testing.T) {
	l := &layer.Layer{
		Name:  "roads",
		Query: "SELECT ST_AsBinary(geom) FROM roads WHERE geom && !bbox! AND class = 'primary'",
		SRID:  4326,
	}
	q := buildQuery(l, grid.Extent{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4})

	if strings.Contains(q, bboxToken) {
		t.Errorf("Expected bbox token to be substituted, got %s", q)
	}
	if !strings.Contains(q, ", 4326)") {
		t.Errorf("Expected layer SRID in envelope, got %s", q)
	}
	if !strings.Contains(q, "class = 'primary'") {
		t.Errorf("Expected custom predicate preserved, got %s", q)
	}
}

func TestBuildQueryFIDField(t *testing.T) {
	l := &layer.Layer{Name: "places", TableName: "places", FIDField: "id"}
	q := buildQuery(l, grid.Extent{})

	if !strings.Contains(q, "ST_AsBinary(geom), id FROM places") {
		t.Errorf("Expected fid column selected, got %s", q)
	}
}

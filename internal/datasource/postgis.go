// internal/datasource/postgis.go - Streaming PostGIS feature retrieval
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"

	"mvtserve/internal/grid"
	"mvtserve/internal/layer"
	"mvtserve/pkg/mvt"
)

// bboxToken is replaced with the tile envelope in custom layer queries.
const bboxToken = "!bbox!"

// PostGIS executes streaming feature queries against a PostGIS backend.
// Connection pooling is handled by database/sql.
type PostGIS struct {
	db *sql.DB
}

// NewPostGIS opens a connection pool for the given connection URL.
func NewPostGIS(connURL string) (*PostGIS, error) {
	db, err := sql.Open("postgres", connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgis connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgis: %w", err)
	}
	return &PostGIS{db: db}, nil
}

// Close releases the connection pool.
func (p *PostGIS) Close() error {
	return p.db.Close()
}

// RetrieveFeatures streams the features of l intersecting extent to fn, one
// row at a time.
func (p *PostGIS) RetrieveFeatures(ctx context.Context, l *layer.Layer, extent grid.Extent, zoom uint32, fn FeatureFunc) error {
	query := buildQuery(l, extent)
	log.Debugf("layer %s zoom %d query: %s", l.Name, zoom, query)

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("layer %s query failed: %w", l.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var geomWKB []byte
		var fid sql.NullInt64

		dest := []interface{}{&geomWKB}
		if l.FIDField != "" {
			dest = append(dest, &fid)
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("layer %s row scan failed: %w", l.Name, err)
		}

		geom, err := wkb.Unmarshal(geomWKB)
		if err != nil {
			log.Warnf("layer %s: skipping feature with undecodable geometry: %v", l.Name, err)
			continue
		}

		feat := &mvt.Feature{
			Geometry:   geom,
			Properties: geojson.Properties{},
		}
		if fid.Valid {
			id := uint64(fid.Int64)
			feat.ID = &id
		}

		if err := fn(feat); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("layer %s query failed: %w", l.Name, err)
	}
	return nil
}

// buildQuery assembles the per-layer SQL. Custom queries get the tile
// envelope substituted for the bbox token; generated queries select the
// geometry (and optional fid) intersecting the envelope.
func buildQuery(l *layer.Layer, extent grid.Extent) string {
	srid := l.SRID
	if srid == 0 {
		srid = 3857
	}
	envelope := fmt.Sprintf("ST_MakeEnvelope(%f, %f, %f, %f, %d)",
		extent.MinX, extent.MinY, extent.MaxX, extent.MaxY, srid)

	if l.Query != "" {
		return strings.ReplaceAll(l.Query, bboxToken, envelope)
	}

	geomField := l.GeometryField
	if geomField == "" {
		geomField = "geom"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT ST_AsBinary(%s) AS geom", geomField)
	if l.FIDField != "" {
		fmt.Fprintf(&sb, ", %s", l.FIDField)
	}
	fmt.Fprintf(&sb, " FROM %s WHERE %s && %s", l.TableName, geomField, envelope)
	if l.QueryLimit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", l.QueryLimit)
	}
	return sb.String()
}

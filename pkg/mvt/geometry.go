// pkg/mvt/geometry.go - Geometry coordinate transformation
package mvt

import "github.com/paulmach/orb"

// transformGeometry applies a point transformation to every coordinate of a
// geometry, returning a new geometry of the same type.
func transformGeometry(geom orb.Geometry, fn func(orb.Point) orb.Point) orb.Geometry {
	switch g := geom.(type) {
	case orb.Point:
		return fn(g)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(g))
		for i, p := range g {
			out[i] = fn(p)
		}
		return out
	case orb.LineString:
		out := make(orb.LineString, len(g))
		for i, p := range g {
			out[i] = fn(p)
		}
		return out
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			out[i] = transformGeometry(ls, fn).(orb.LineString)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(g))
		for i, p := range g {
			out[i] = fn(p)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(g))
		for i, r := range g {
			out[i] = transformGeometry(r, fn).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, poly := range g {
			out[i] = transformGeometry(poly, fn).(orb.Polygon)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, member := range g {
			out[i] = transformGeometry(member, fn)
		}
		return out
	default:
		return geom
	}
}

// internal/layer/layer.go - Data layer definitions
package layer

// Layer is the static description of one queryable data layer. The service
// core only consumes the name; the remaining attributes shape the datasource
// query for that layer.
type Layer struct {
	Name          string
	TableName     string
	GeometryField string
	GeometryType  string
	FIDField      string
	Query         string
	QueryLimit    int
	SRID          int
}

// New creates a layer definition with the given name.
func New(name string) *Layer {
	return &Layer{Name: name}
}

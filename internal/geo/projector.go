// Package geo converts geographic coordinates into the local world
// coordinate system.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Meters per degree of latitude; effectively constant across the globe.
const metersPerDegreeLat = 111132.0

// Meters per degree of longitude at the equator. Shrinks with the
// cosine of latitude away from it.
const metersPerDegreeLonEquator = 111319.5

// Projector maps (lat, lon) onto a planar (x, z) grid in meters,
// relative to a fixed origin. The projection is equirectangular with
// the longitude scale corrected for the origin's latitude, which is
// accurate to well under a meter at city scale.
type Projector struct {
	originLat float64
	originLon float64
	metersLon float64
}

// NewProjector creates a projector anchored at the given origin.
func NewProjector(originLat, originLon float64) Projector {
	return Projector{
		originLat: originLat,
		originLon: originLon,
		metersLon: metersPerDegreeLonEquator * math.Cos(originLat*math.Pi/180.0),
	}
}

// Project converts a latitude/longitude pair to local coordinates.
// +x is east, +z is south, so the world sits in a right-handed space
// with y up.
func (p Projector) Project(lat, lon float64) (x, z float32) {
	x = float32((lon - p.originLon) * p.metersLon)
	z = float32(-(lat - p.originLat) * metersPerDegreeLat)
	return x, z
}

// ProjectPoint converts an orb.Point (lon, lat order) to local coordinates.
func (p Projector) ProjectPoint(pt orb.Point) (x, z float32) {
	return p.Project(pt.Lat(), pt.Lon())
}

package geo

import "math"

// edgeTolerance is the distance in degrees (~1 cm at the equator) within which
// a point counts as lying on a polygon edge.
const edgeTolerance = 1e-7

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point is within latitude/longitude ranges.
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180 &&
		!math.IsNaN(p.Latitude) && !math.IsNaN(p.Longitude)
}

// IsInside reports whether point lies inside polygon. The polygon is treated
// as planar, with longitude as x and latitude as y, which is accurate enough
// at city scale.
//
// Points on an edge or a vertex are inside. Polygons with fewer than three
// vertices contain nothing.
func IsInside(point Point, polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(point, polygon[j], polygon[i]) {
			return true
		}
	}

	// Ray casting towards +x.
	inside := false
	x, y := point.Longitude, point.Latitude
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := polygon[i].Longitude, polygon[i].Latitude
		xj, yj := polygon[j].Longitude, polygon[j].Latitude

		if (yi > y) != (yj > y) {
			crossX := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(p, a, b Point) bool {
	px, py := p.Longitude, p.Latitude
	ax, ay := a.Longitude, a.Latitude
	bx, by := b.Longitude, b.Latitude

	if px < math.Min(ax, bx)-edgeTolerance || px > math.Max(ax, bx)+edgeTolerance ||
		py < math.Min(ay, by)-edgeTolerance || py > math.Max(ay, by)+edgeTolerance {
		return false
	}

	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(px-ax, py-ay) <= edgeTolerance
	}

	// Perpendicular distance from p to the line through a and b.
	cross := math.Abs(dx*(py-ay) - dy*(px-ax))
	return cross/length <= edgeTolerance
}

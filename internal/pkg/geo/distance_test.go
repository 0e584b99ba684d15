package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	bangalore := Point{Latitude: 12.9716, Longitude: 77.5946}
	chennai := Point{Latitude: 13.0827, Longitude: 80.2707}

	assert.Zero(t, Distance(bangalore, bangalore))
	assert.InDelta(t, 290000, Distance(bangalore, chennai), 5000)
	assert.InDelta(t, Distance(bangalore, chennai), Distance(chennai, bangalore), 1e-6)

	// One degree of latitude is about 111.2 km.
	assert.InDelta(t, 111195, Distance(Point{0, 0}, Point{1, 0}), 10)
}

func TestNearestVertexDistance(t *testing.T) {
	assert.Equal(t, -1.0, NearestVertexDistance(Point{}, nil))

	polygon := []Point{{0, 0}, {0, 1}, {1, 1}}
	assert.InDelta(t, 0, NearestVertexDistance(Point{Latitude: 1, Longitude: 1}, polygon), 1e-9)
	assert.InDelta(t, 111195, NearestVertexDistance(Point{Latitude: 2, Longitude: 1}, polygon), 10)
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default office polygon shipped with the mobile client.
var office = []Point{
	{Latitude: 28.589425, Longitude: 77.19956},
	{Latitude: 28.58209, Longitude: 77.200919},
	{Latitude: 28.580685, Longitude: 77.211355},
	{Latitude: 28.587327, Longitude: 77.212342},
	{Latitude: 28.587134, Longitude: 77.203528},
}

var square = []Point{
	{Latitude: 0, Longitude: 0},
	{Latitude: 0, Longitude: 10},
	{Latitude: 10, Longitude: 10},
	{Latitude: 10, Longitude: 0},
}

func TestIsInside(t *testing.T) {
	cases := []struct {
		name    string
		point   Point
		polygon []Point
		want    bool
	}{
		{"square centre", Point{5, 5}, square, true},
		{"square outside right", Point{5, 11}, square, false},
		{"square outside below", Point{-1, 5}, square, false},
		{"square vertex", Point{0, 0}, square, true},
		{"square opposite vertex", Point{10, 10}, square, true},
		{"square edge midpoint", Point{0, 5}, square, true},
		{"square vertical edge midpoint", Point{5, 10}, square, true},
		{"office interior", Point{28.5845, 77.2060}, office, true},
		{"office exterior", Point{28.6000, 77.2100}, office, false},
		{"office vertex", office[2], office, true},
		{"office edge midpoint", Point{
			Latitude:  (office[0].Latitude + office[1].Latitude) / 2,
			Longitude: (office[0].Longitude + office[1].Longitude) / 2,
		}, office, true},
		{"empty polygon", Point{0, 0}, nil, false},
		{"two vertices", Point{0, 0}, square[:2], false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsInside(c.point, c.polygon))
		})
	}
}

func TestIsInside_ConcavePolygon(t *testing.T) {
	// U shape opening upwards.
	u := []Point{
		{0, 0}, {0, 6}, {6, 6}, {6, 4}, {2, 4}, {2, 2}, {6, 2}, {6, 0},
	}

	assert.True(t, IsInside(Point{1, 3}, u))
	assert.False(t, IsInside(Point{4, 3}, u), "notch of the U is outside")
	assert.True(t, IsInside(Point{5, 1}, u))
}

func TestIsInside_Deterministic(t *testing.T) {
	p := Point{28.5845, 77.2060}
	first := IsInside(p, office)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, IsInside(p, office))
	}
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{28.5, 77.2}.Valid())
	assert.False(t, Point{91, 0}.Valid())
	assert.False(t, Point{0, -181}.Valid())
}

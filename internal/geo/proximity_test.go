package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type place struct {
	name     string
	lat, lng *float64
}

func (p place) Position() (Point, bool) {
	if p.lat == nil || p.lng == nil {
		return Point{}, false
	}
	return Point{Latitude: *p.lat, Longitude: *p.lng}, true
}

func at(name string, lat, lng float64) place {
	return place{name: name, lat: &lat, lng: &lng}
}

func names(ps []place) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.name)
	}
	return out
}

var (
	delhi      = Point{Latitude: 28.6139, Longitude: 77.2090}
	northDelhi = Point{Latitude: 28.7041, Longitude: 77.1025}
)

func TestDistance_KnownPair(t *testing.T) {
	assert.InDelta(t, 14.44, Distance(delhi, northDelhi), 0.01)
}

func TestDistance_Properties(t *testing.T) {
	points := []Point{
		delhi,
		northDelhi,
		{Latitude: 28.8955, Longitude: 76.6066},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 0, Longitude: 0},
		{Latitude: 90, Longitude: 0},
	}

	for _, a := range points {
		assert.Equal(t, 0.0, Distance(a, a), "distance to self")
		for _, b := range points {
			d := Distance(a, b)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.InDelta(t, d, Distance(b, a), 1e-9, "symmetry")
		}
	}
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(Point{Latitude: 0, Longitude: 0}, Point{Latitude: 0, Longitude: 180})
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
}

func TestDistance_NaNPropagates(t *testing.T) {
	d := Distance(Point{Latitude: math.NaN(), Longitude: 0}, delhi)
	assert.True(t, math.IsNaN(d))
}

func TestWithinRadius_DelhiExample(t *testing.T) {
	candidates := []place{at("north", northDelhi.Latitude, northDelhi.Longitude)}

	assert.Equal(t, []string{"north"}, names(WithinRadius(&delhi, candidates, 15)))
	assert.Empty(t, WithinRadius(&delhi, candidates, 5))
}

func TestWithinRadius_UnknownLocationAlwaysIncluded(t *testing.T) {
	lat := 28.6
	candidates := []place{
		{name: "nowhere"},
		{name: "half", lat: &lat},
		at("far", 19.0760, 72.8777),
	}

	for _, radius := range []float64{0, 1, 100} {
		assert.Equal(t, []string{"nowhere", "half"}, names(WithinRadius(&delhi, candidates, radius)))
	}
}

func TestWithinRadius_NoReferenceReturnsInput(t *testing.T) {
	candidates := []place{
		at("far", 19.0760, 72.8777),
		{name: "nowhere"},
		at("near", 28.6304, 77.2177),
	}

	got := WithinRadius(nil, candidates, 0)
	assert.Equal(t, names(candidates), names(got))
}

func TestWithinRadius_PreservesOrder(t *testing.T) {
	candidates := []place{
		at("rohtak", 28.8955, 76.6066),
		at("noida", 28.5355, 77.391),
		{name: "unknown"},
		at("wholesale", 28.6304, 77.2177),
	}

	assert.Equal(t, []string{"noida", "unknown", "wholesale"}, names(WithinRadius(&delhi, candidates, 20)))
}

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	c := at("north", northDelhi.Latitude, northDelhi.Longitude)
	exact := Distance(delhi, northDelhi)

	assert.Len(t, WithinRadius(&delhi, []place{c}, exact), 1)
}

func TestDistanceFrom(t *testing.T) {
	_, ok := DistanceFrom(nil, at("x", 1, 1))
	assert.False(t, ok)

	_, ok = DistanceFrom(&delhi, place{name: "nowhere"})
	assert.False(t, ok)

	km, ok := DistanceFrom(&delhi, at("north", northDelhi.Latitude, northDelhi.Longitude))
	assert.True(t, ok)
	assert.InDelta(t, 14.44, km, 0.01)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 14.4, RoundKm(14.442261))
	assert.Equal(t, 2.0, RoundKm(2.0217))
}

package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const (
	testLat = 40.771220
	testLon = -73.979577
)

func TestProject_Origin(t *testing.T) {
	p := NewProjector(testLat, testLon)

	x, z := p.Project(testLat, testLon)
	if x != 0 || z != 0 {
		t.Errorf("origin should project to (0,0), got (%f,%f)", x, z)
	}
}

func TestProject_OneDegreeNorth(t *testing.T) {
	p := NewProjector(testLat, testLon)

	// North is negative z.
	_, z := p.Project(testLat+1.0, testLon)
	if math.Abs(float64(z)+111132.0) > 1.0 {
		t.Errorf("one degree north should be -111132m in z, got %f", z)
	}
}

func TestProject_LongitudeScale(t *testing.T) {
	p := NewProjector(testLat, testLon)

	// At ~40.77N a degree of longitude is about cos(40.77) * 111319.5m.
	want := 111319.5 * math.Cos(testLat*math.Pi/180.0)
	x, _ := p.Project(testLat, testLon+1.0)
	if math.Abs(float64(x)-want) > 1.0 {
		t.Errorf("one degree east should be ~%fm in x, got %f", want, x)
	}

	// At the equator the full equatorial scale applies.
	pe := NewProjector(0, 0)
	xe, _ := pe.Project(0, 1.0)
	if math.Abs(float64(xe)-111319.5) > 1.0 {
		t.Errorf("equatorial degree should be ~111319.5m, got %f", xe)
	}
}

func TestProjectPoint(t *testing.T) {
	p := NewProjector(testLat, testLon)

	// orb.Point is (lon, lat).
	x1, z1 := p.ProjectPoint(orb.Point{testLon + 0.01, testLat + 0.01})
	x2, z2 := p.Project(testLat+0.01, testLon+0.01)
	if x1 != x2 || z1 != z2 {
		t.Errorf("ProjectPoint disagrees with Project: (%f,%f) vs (%f,%f)", x1, z1, x2, z2)
	}
}

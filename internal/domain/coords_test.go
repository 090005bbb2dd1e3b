package domain

import "testing"

func TestCoordinatesIndexRoundTrip(t *testing.T) {
	const size = 5
	for idx := 0; idx < size*size; idx++ {
		c := CoordinatesFromIndex(idx, size)
		if got := c.Index(size); got != idx {
			t.Errorf("index %d decoded to %+v which encodes back to %d", idx, c, got)
		}
	}
}

func TestCoordinatesValidity(t *testing.T) {
	const size = 4
	valid := 0
	for idx := 0; idx < size*size; idx++ {
		c := CoordinatesFromIndex(idx, size)
		if c.X+c.Y+c.Z != size-1 {
			t.Fatalf("decoded triple %+v does not sum to %d", c, size-1)
		}
		if c.IsValid(size) {
			valid++
			if c.Z < 0 {
				t.Errorf("triple %+v valid with negative Z", c)
			}
		}
	}
	// The playable triangle holds size*(size+1)/2 cells.
	if want := size * (size + 1) / 2; valid != want {
		t.Errorf("got %d valid cells, want %d", valid, want)
	}
}

func TestCoordinatesValidityRejectsForeignTriples(t *testing.T) {
	cases := []Coordinates{
		{X: -1, Y: 1, Z: 3},
		{X: 0, Y: 0, Z: 0},  // sums to 0, not size-1
		{X: 2, Y: 2, Z: -1},
		{X: 3, Y: 0, Z: 0},
	}
	for _, c := range cases {
		if c.IsValid(3) {
			t.Errorf("triple %+v should be invalid on a size-3 board", c)
		}
	}
}

func TestNeighborsStayOnCoordinatePlane(t *testing.T) {
	const size = 4
	c := Coordinates{X: 1, Y: 1, Z: 1}
	for _, n := range c.Neighbors() {
		if n.X+n.Y+n.Z != size-1 {
			t.Errorf("neighbor %+v left the plane of %+v", n, c)
		}
	}
}

func TestCornerTouchesTwoSides(t *testing.T) {
	corner := Coordinates{X: 0, Y: 0, Z: 2}
	if !corner.TouchesSideA() || !corner.TouchesSideB() || corner.TouchesSideC() {
		t.Errorf("corner %+v should touch exactly sides A and B", corner)
	}
}

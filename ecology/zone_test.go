package ecology

import "testing"

func TestPressureForBoundaries(t *testing.T) {
	z := NewZone(0, 0, 10, 10, ZoneFertile) // carrying capacity 60

	cases := []struct {
		population int
		want       float64
	}{
		{0, 1.3},
		{29, 1.3}, // < 0.5*60 = 30
		{30, 1.3}, // == 0.5C boundary, frac 0 -> 1.3
		{60, 1.0}, // == C boundary, frac 0 -> 1.0
		{69, 0.85}, // midway between C and 1.3C
		{78, 0.6}, // == 1.3C, outside the (C, 1.3C) band -> 0.6
		{90, 0.6}, // beyond 1.3C
	}
	for _, c := range cases {
		got := pressureFor(z, c.population)
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("pressureFor(pop=%d) = %v, want %v", c.population, got, c.want)
		}
	}
}

func TestZoneTagFallsBackToType(t *testing.T) {
	z := NewZone(0, 0, 10, 10, ZoneToxic)
	z.Properties.Name = "a custom caldera"
	if got := z.Tag(); got != ZoneToxic {
		t.Errorf("Tag() = %v, want ZoneToxic (fallback to Type)", got)
	}

	z.Properties.Name = "northern desert basin"
	if got := z.Tag(); got != ZoneDesert {
		t.Errorf("Tag() = %v, want ZoneDesert (matched from name)", got)
	}
}

func TestZoneAtResolvesReverseInsertionOrder(t *testing.T) {
	zm := NewZoneManager(100, 100)
	outer := NewZone(0, 0, 50, 50, ZoneDesert)
	inner := NewZone(10, 10, 10, 10, ZoneParadise)
	zm.Add(outer)
	zm.Add(inner)

	if got := zm.ZoneAt(15, 15); got != inner {
		t.Errorf("ZoneAt(15,15) should resolve to the more recently added zone")
	}
	if got := zm.ZoneAt(5, 5); got != outer {
		t.Errorf("ZoneAt(5,5) should resolve to the outer zone")
	}
	if got := zm.ZoneAt(90, 90); got.Type != ZoneNeutral {
		t.Errorf("ZoneAt(90,90) should fall back to the grid-wide default")
	}
}

func TestCanEnterFalseBlocksZone(t *testing.T) {
	zm := NewZoneManager(20, 20)
	void := NewZone(0, 0, 20, 10, ZoneNeutral)
	void.Properties.CanEnter = false
	zm.Add(void)

	if zm.ZoneAt(5, 5).Properties.CanEnter {
		t.Fatalf("void zone should report can_enter = false")
	}
}

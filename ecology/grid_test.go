package ecology

import (
	"errors"
	"testing"
)

func stillLifeTraits() Traits {
	return NewTraits(Traits{
		BaseEnergy:          100,
		EnergyDecay:         0,
		PhotosynthesisRate:  0,
		MaxLifespan:         0,
		MutationRate:        0,
		Complexity:          1,
		MetabolicEfficiency: 1.0,
		StarvationThreshold: 0,
	})
}

// Scenario 1: still life (§8). A 2x2 block with no photosynthesis and no
// lifespan cap sits unchanged for 100 steps. NewTraits raises the requested
// zero decay to its floor of 1, so each cell starts at its 200 max energy
// and still holds 100 after 100 steps. The grid is covered by a single
// can_enter=false zone so neither movement nor reproduction can touch any
// site, isolating the aging phase's behavior under test.
func TestStillLife(t *testing.T) {
	g, err := NewGrid(10, 10, true, 1)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	sealed := NewZone(0, 0, 10, 10, ZoneNeutral)
	sealed.Properties.CanEnter = false
	g.Zones.Add(sealed)

	sp := g.Registry.Spawn(stillLifeTraits(), 0, 0)

	for _, p := range []Position{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		c := NewCell(p.X, p.Y, sp)
		c.Energy = c.MaxEnergy
		g.setCell(p.X, p.Y, c)
	}
	sp.Population = 4

	for i := 0; i < 100; i++ {
		if _, err := g.Step(); err != nil {
			t.Fatalf("Step() at tick %d: %v", i, err)
		}
	}

	for _, p := range []Position{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		c := g.cellAt(p.X, p.Y)
		if c == nil || !c.Alive {
			t.Errorf("expected a living cell at (%d,%d)", p.X, p.Y)
		}
	}
	if got := g.livingCount(); got != 4 {
		t.Errorf("population = %d, want 4", got)
	}
	if got := g.Registry.Extant(); got != 1 {
		t.Errorf("species_count = %d, want 1", got)
	}
}

// Scenario 2: starvation sweep (§8). No photosynthesis, decay 5,
// base_energy 10, every site seeded. On the fully packed torus every cell
// has 8 living neighbors at energy 5 of 20, outside the k in {3,4} band
// that r <= 0.4 survives on, so the reproduction phase already clears the
// grid in step 1; decay alone would take a cell to 0 energy, and kill it,
// in step 2. The checks below (no cell holding energy at t=2, none alive
// at t=3) hold either way.
func TestStarvationSweep(t *testing.T) {
	g, err := NewGrid(5, 5, true, 2)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	sp := g.Registry.Spawn(NewTraits(Traits{
		BaseEnergy:         10,
		EnergyDecay:        5,
		PhotosynthesisRate: 0,
		MaxLifespan:        0,
		Complexity:         1,
		MetabolicEfficiency: 1.0,
		StarvationThreshold: 0,
	}), 0, 0)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			c := NewCell(x, y, sp)
			g.setCell(x, y, c)
		}
	}
	sp.Population = 25

	if _, err := g.Step(); err != nil {
		t.Fatalf("step 1: %v", err)
	}
	if _, err := g.Step(); err != nil {
		t.Fatalf("step 2: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if c := g.cellAt(x, y); c != nil && c.Energy != 0 {
				t.Errorf("cell (%d,%d) energy = %v at t=2, want 0", x, y, c.Energy)
			}
		}
	}

	if _, err := g.Step(); err != nil {
		t.Fatalf("step 3: %v", err)
	}
	if got := g.livingCount(); got != 0 {
		t.Errorf("population at t=3 = %d, want 0", got)
	}
}

// Scenario 3: sexual isolation (§8). A single sexually-reproducing cell
// with no partner never reproduces; population stays at or below 1.
func TestSexualIsolationNoPartner(t *testing.T) {
	g, err := NewGrid(20, 20, true, 3)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	sp := g.Registry.Spawn(NewTraits(Traits{
		BaseEnergy:            50,
		PhotosynthesisRate:    10,
		EnergyDecay:           1,
		SexualReproduction:    true,
		MutationRate:          0,
		ReproductionThreshold: 20,
		Complexity:            1,
		MetabolicEfficiency:   1.0,
	}), 0, 0)
	c := NewCell(10, 10, sp)
	c.Energy = 50
	g.setCell(10, 10, c)
	sp.Population = 1

	for i := 0; i < 50; i++ {
		if _, err := g.Step(); err != nil {
			t.Fatalf("Step() at tick %d: %v", i, err)
		}
	}

	if got := g.livingCount(); got > 1 {
		t.Errorf("population = %d, want <= 1 (no partner to reproduce with)", got)
	}
}

// §8 quantified invariant 5: the generation counter increases by exactly 1
// per step.
func TestGenerationMonotonic(t *testing.T) {
	g, err := NewGrid(8, 8, true, 4)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for i := 0; i < 10; i++ {
		gen, err := g.Step()
		if err != nil {
			t.Fatalf("Step(): %v", err)
		}
		if gen != i+1 {
			t.Errorf("generation after step %d = %d, want %d", i, gen, i+1)
		}
	}
}

// §8 round-trip law: snapshot ∘ step on an empty grid never crashes and
// leaves the generation advanced by 1 with zero population.
func TestStepOnEmptyGrid(t *testing.T) {
	g, err := NewGrid(6, 6, false, 5)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	gen, err := g.Step()
	if err != nil {
		t.Fatalf("Step() on empty grid: %v", err)
	}
	if gen != 1 {
		t.Errorf("generation = %d, want 1", gen)
	}
	view := g.Snapshot()
	if len(view.Cells) != 0 {
		t.Errorf("snapshot of empty grid has %d cells, want 0", len(view.Cells))
	}
}

// §8 boundary behavior: wrap=true counts (width-1,height-1) as a neighbor
// of (0,0); wrap=false does not.
func TestWrapNeighborCounting(t *testing.T) {
	wrapped, _ := NewGrid(4, 4, true, 6)
	sp := wrapped.Registry.Spawn(stillLifeTraits(), 0, 0)
	wrapped.setCell(3, 3, NewCell(3, 3, sp))
	wrapped.setCell(0, 0, NewCell(0, 0, sp))
	wrapped.ncache.rebuild(wrapped.aliveAt)
	if got := wrapped.ncache.at(0, 0); got != 1 {
		t.Errorf("wrap=true neighbor count at (0,0) = %d, want 1", got)
	}

	unwrapped, _ := NewGrid(4, 4, false, 6)
	sp2 := unwrapped.Registry.Spawn(stillLifeTraits(), 0, 0)
	unwrapped.setCell(3, 3, NewCell(3, 3, sp2))
	unwrapped.setCell(0, 0, NewCell(0, 0, sp2))
	unwrapped.ncache.rebuild(unwrapped.aliveAt)
	if got := unwrapped.ncache.at(0, 0); got != 0 {
		t.Errorf("wrap=false neighbor count at (0,0) = %d, want 0", got)
	}
}

// §8 boundary behavior: a cell with energy 0 still dies even if its
// survival neighbor count is otherwise satisfied, since aging's starvation
// check runs before any Conway-style check.
func TestZeroEnergyDiesBeforeConwayCheck(t *testing.T) {
	g, _ := NewGrid(5, 5, true, 7)
	sp := g.Registry.Spawn(NewTraits(Traits{
		BaseEnergy:           50,
		PhotosynthesisRate:   0,
		EnergyDecay:          0,
		Complexity:           1,
		MetabolicEfficiency:  1.0,
		StarvationThreshold:  10,
	}), 0, 0)
	center := NewCell(2, 2, sp)
	center.Energy = 0
	g.setCell(2, 2, center)
	// three living neighbors: at r = 0 the survival band is k in {3,4},
	// which k = 3 would otherwise satisfy
	g.setCell(1, 2, NewCell(1, 2, sp))
	g.setCell(3, 2, NewCell(3, 2, sp))
	g.setCell(2, 1, NewCell(2, 1, sp))

	if _, err := g.Step(); err != nil {
		t.Fatalf("Step(): %v", err)
	}
	// The emptied site may be refilled by a same-tick birth, so the check is
	// on the cell itself rather than on the site.
	if center.Alive || g.cellAt(2, 2) == center {
		t.Errorf("zero-energy cell should have died to starvation regardless of neighbor count")
	}
}

// §7.2: RequireCellAt distinguishes an out-of-bounds request from an
// in-bounds empty site, which CellAt's (view, ok) pair cannot.
func TestRequireCellAtReportsBoundsViolation(t *testing.T) {
	g, _ := NewGrid(5, 5, false, 9)
	sp := g.Registry.Spawn(stillLifeTraits(), 0, 0)
	g.setCell(2, 2, NewCell(2, 2, sp))

	if _, err := g.RequireCellAt(2, 2); err != nil {
		t.Errorf("RequireCellAt(2,2) = %v, want no error for an occupied in-bounds site", err)
	}
	if _, err := g.RequireCellAt(0, 0); err != nil {
		t.Errorf("RequireCellAt(0,0) = %v, want no error for an empty in-bounds site", err)
	}
	_, err := g.RequireCellAt(5, 0)
	if err == nil {
		t.Fatalf("RequireCellAt(5,0) = nil error, want a BoundsViolationError")
	}
	var bverr *BoundsViolationError
	if !errors.As(err, &bverr) {
		t.Errorf("RequireCellAt(5,0) error is %T, want *BoundsViolationError", err)
	}
}

func TestValidateInvariantsPassesOnWellFormedGrid(t *testing.T) {
	g, _ := NewGrid(5, 5, true, 8)
	sp := g.Registry.Spawn(stillLifeTraits(), 0, 0)
	g.setCell(2, 2, NewCell(2, 2, sp))
	if err := g.validateInvariants(); err != nil {
		t.Fatalf("validateInvariants(): %v", err)
	}
}

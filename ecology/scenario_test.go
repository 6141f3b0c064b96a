package ecology

import "testing"

// Scenario 4: predator collapse (§8). A 50x50 wrap grid seeded with a
// hunting species (complexity 3) and a consumable prey species runs for
// 500 ticks. The named invariant: predator population never exceeds prey
// population at any tick, and once prey hits zero, predator population
// is monotonically non-increasing thereafter (no food source left to
// sustain or grow it).
func TestPredatorCollapse(t *testing.T) {
	g, err := NewGrid(50, 50, true, 10)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.SetupZones(LayoutNeutral)

	prey := g.Registry.Spawn(NewTraits(Traits{
		BaseEnergy:          40,
		PhotosynthesisRate:  8,
		EnergyDecay:         2,
		Complexity:          1,
		CanBeConsumed:       true,
		MetabolicEfficiency: 1.0,
	}), 0, 0)
	if err := g.SeedSpecies(prey, 400, PatternRandom); err != nil {
		if _, ok := err.(*CapacityExhaustedError); !ok {
			t.Fatalf("seeding prey: %v", err)
		}
	}

	predator := g.Registry.Spawn(NewTraits(Traits{
		BaseEnergy:          60,
		PhotosynthesisRate:  0,
		EnergyDecay:         3,
		Complexity:          3,
		HuntingEfficiency:   0.6,
		MetabolicEfficiency: 1.0,
	}), 0, 0)
	if err := g.SeedSpecies(predator, 60, PatternRandom); err != nil {
		if _, ok := err.(*CapacityExhaustedError); !ok {
			t.Fatalf("seeding predator: %v", err)
		}
	}

	preyExtinctAt := -1
	lastPredatorCount := -1
	for i := 0; i < 500; i++ {
		if _, err := g.Step(); err != nil {
			t.Fatalf("Step() at tick %d: %v", i, err)
		}

		preyCount, predatorCount := 0, 0
		if s, ok := g.Registry.Get(prey.ID); ok {
			preyCount = s.Population
		}
		if s, ok := g.Registry.Get(predator.ID); ok {
			predatorCount = s.Population
		}

		if predatorCount > preyCount {
			t.Errorf("tick %d: predator population %d exceeds prey population %d", i, predatorCount, preyCount)
		}

		if preyCount == 0 {
			if preyExtinctAt == -1 {
				preyExtinctAt = i
				lastPredatorCount = predatorCount
			} else if predatorCount > lastPredatorCount {
				t.Errorf("tick %d: predator population rose from %d to %d after prey went extinct at tick %d", i, lastPredatorCount, predatorCount, preyExtinctAt)
			} else {
				lastPredatorCount = predatorCount
			}
		}
	}

	stats := g.GetStats()
	if stats.Population < 0 {
		t.Errorf("population went negative: %d", stats.Population)
	}
	total := 0
	for _, sp := range g.Registry.Living() {
		total += sp.Population
	}
	if total != g.livingCount() {
		t.Errorf("sum of per-species population = %d, want %d (living cell count)", total, g.livingCount())
	}
}

// Scenario 5: zone displacement (§8). A can_enter=false zone covers rows
// 0-9; random seeding never places a cell inside it.
func TestZoneDisplacementBlocksVoidRows(t *testing.T) {
	g, err := NewGrid(40, 40, true, 11)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	void := NewZone(0, 0, 40, 10, ZoneNeutral)
	void.Properties.CanEnter = false
	g.Zones.Add(void)

	sp := g.Registry.Spawn(NewTraits(Traits{BaseEnergy: 50, MetabolicEfficiency: 1.0, Complexity: 1}), 0, 0)
	if err := g.SeedSpecies(sp, 300, PatternRandom); err != nil {
		if _, ok := err.(*CapacityExhaustedError); !ok {
			t.Fatalf("SeedSpecies: %v", err)
		}
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			if c := g.cellAt(x, y); c != nil {
				t.Fatalf("cell placed at (%d,%d) inside the void zone", x, y)
			}
		}
	}
}

// Scenario 6: dominant species continuity (§8). Over a long run with a
// nonzero mutation rate, the registry never reuses a species id and the
// reported dominant species always resolves to a species the registry
// actually knows about.
func TestDominantSpeciesContinuity(t *testing.T) {
	g, err := NewGrid(30, 30, true, 12)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.SetupZones(LayoutNeutral)
	sp := g.Registry.Spawn(NewTraits(Traits{
		BaseEnergy:            50,
		PhotosynthesisRate:    8,
		EnergyDecay:           2,
		MutationRate:          0.05,
		ReproductionThreshold: 20,
		EnergyFromBirth:       20,
		Complexity:            1,
		MetabolicEfficiency:   1.0,
	}), 0, 0)
	if err := g.SeedSpecies(sp, 150, PatternRandom); err != nil {
		if _, ok := err.(*CapacityExhaustedError); !ok {
			t.Fatalf("SeedSpecies: %v", err)
		}
	}

	seenIDs := map[int]bool{sp.ID: true}
	earliestGenerationBorn := -1
	for i := 0; i < 1000; i++ {
		if _, err := g.Step(); err != nil {
			t.Fatalf("Step() at tick %d: %v", i, err)
		}
		for _, s := range g.Registry.All() {
			if seenIDs[s.ID] {
				continue
			}
			seenIDs[s.ID] = true
		}

		// The earliest-born living species' generation_born never increases:
		// it is fixed at spawn time and unaffected by later births/deaths.
		earliest := -1
		for _, s := range g.Registry.Living() {
			if earliest == -1 || s.GenerationBorn < earliest {
				earliest = s.GenerationBorn
			}
		}
		if earliest != -1 {
			if earliestGenerationBorn != -1 && earliest > earliestGenerationBorn {
				t.Errorf("tick %d: earliest-born living species' generation_born rose from %d to %d", i, earliestGenerationBorn, earliest)
			}
			if earliestGenerationBorn == -1 || earliest < earliestGenerationBorn {
				earliestGenerationBorn = earliest
			}
		}
	}

	if g.livingCount() > 0 {
		stats := g.GetStats()
		if _, ok := g.Registry.Get(stats.DominantSpeciesID); !ok {
			t.Errorf("dominant species id %d is not a known species", stats.DominantSpeciesID)
		}
	}

	ids := make(map[int]bool)
	for _, s := range g.Registry.All() {
		if ids[s.ID] {
			t.Errorf("species id %d appears more than once in the registry", s.ID)
		}
		ids[s.ID] = true
	}
}

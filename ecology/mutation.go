package ecology

// adjacentZones implements the §4.3 native_zone_type adjacency table: the
// zones a species is likely to drift toward rather than jump to at random.
var adjacentZones = map[ZoneType][]ZoneType{
	ZoneFertile:  {ZoneParadise, ZoneNeutral},
	ZoneDesert:   {ZoneNeutral, ZoneToxic},
	ZoneToxic:    {ZoneDesert, ZoneNeutral},
	ZoneParadise: {ZoneFertile, ZoneNeutral},
	ZoneNeutral:  {ZoneFertile, ZoneDesert, ZoneToxic, ZoneParadise},
}

// mutateInt adds a uniform integer offset in [-delta, delta] and clamps into
// [lo, hi].
func mutateInt(rng *RNG, v, delta, lo, hi int) int {
	offset := rng.IntRange(-delta, delta)
	return clampInt(v+offset, lo, hi)
}

// mutateFloat adds a uniform offset in [-delta, delta] and clamps into
// [lo, hi].
func mutateFloat(rng *RNG, v, delta, lo, hi float64) float64 {
	offset := rng.FloatRange(-delta, delta)
	return clampFloat(v+offset, lo, hi)
}

// Mutate produces a new trait record from a parent's, applying the §4.3
// per-trait perturbations. It does not assign an id or register the
// species; callers use Registry.Spawn with the result.
func Mutate(parent Traits, rng *RNG) Traits {
	t := parent

	t.BaseEnergy = mutateInt(rng, t.BaseEnergy, 5, 1, 200)
	t.EnergyFromBirth = mutateInt(rng, t.EnergyFromBirth, 5, 1, 1<<30)
	t.ReproductionThreshold = mutateInt(rng, t.ReproductionThreshold, 5, 1, 1<<30)
	t.EnergyDecay = mutateInt(rng, t.EnergyDecay, 1, 1, 10)
	t.PhotosynthesisRate = mutateInt(rng, t.PhotosynthesisRate, 1, 0, 20)
	t.Complexity = mutateInt(rng, t.Complexity, 1, 1, 5)
	t.MovementRange = mutateInt(rng, t.MovementRange, 1, 0, 1<<30)
	t.StarvationThreshold = mutateInt(rng, t.StarvationThreshold, 3, 0, 1<<30)
	t.MaxLifespan = mutateInt(rng, t.MaxLifespan, 20, 0, 1000)

	t.MutationRate = mutateFloat(rng, t.MutationRate, 0.005, 0, 1)
	t.HeatTolerance = mutateFloat(rng, t.HeatTolerance, 0.1, 0, 1)
	t.ColdTolerance = mutateFloat(rng, t.ColdTolerance, 0.1, 0, 1)
	t.ToxinResistance = mutateFloat(rng, t.ToxinResistance, 0.1, 0, 1)
	t.HuntingEfficiency = mutateFloat(rng, t.HuntingEfficiency, 0.1, 0, 0.8)
	t.AgeDeclineStart = mutateFloat(rng, t.AgeDeclineStart, 0.1, 0, 1)
	t.ColonialAffinity = mutateFloat(rng, t.ColonialAffinity, 0.1, 1.0, 1.5)
	t.ClusterReproductionBonus = mutateFloat(rng, t.ClusterReproductionBonus, 0.1, 1.0, 2.0)
	t.MetabolicEfficiency = mutateFloat(rng, t.MetabolicEfficiency, 0.1, 0.5, 2.0)
	t.NativeZoneAffinity = mutateFloat(rng, t.NativeZoneAffinity, 0.1, 1.0, 2.0)

	if rng.Chance(0.02) {
		t.SexualReproduction = !t.SexualReproduction
	}

	if rng.Chance(0.05) {
		others := make([]EnergySource, 0, 2)
		for _, s := range allEnergySources {
			if s != t.EnergySource {
				others = append(others, s)
			}
		}
		t.EnergySource = others[rng.Pick(len(others))]
	}

	if rng.Chance(0.02) {
		if rng.Chance(0.7) {
			candidates := adjacentZones[t.NativeZoneType]
			t.NativeZoneType = candidates[rng.Pick(len(candidates))]
		} else {
			t.NativeZoneType = shiftableZoneTypes[rng.Pick(len(shiftableZoneTypes))]
		}
	}

	return NewTraits(t)
}

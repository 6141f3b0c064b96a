package ecology

import "math"

// phaseAge runs phase 1 (§4.4) over every living cell: aging, zone-coupled
// metabolism, and starvation/old-age death. It reads the zone cache rebuilt
// at the top of Step and scans living neighbors directly. A cell that dies
// here is removed from its site at once (killCell), so cells visited later
// in the row-major scan no longer see it among their neighbors.
func (g *Grid) phaseAge() {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.cellAt(x, y)
			if c == nil || !c.Alive {
				continue
			}
			g.ageCell(c)
		}
	}
}

func (g *Grid) ageCell(c *Cell) {
	c.Age++

	sp, ok := g.Registry.Get(c.SpeciesID)
	if !ok {
		return
	}
	tr := sp.Traits

	if tr.MaxLifespan > 0 && c.Age >= tr.MaxLifespan {
		g.killCell(c)
		return
	}

	zone := g.zcache.at(c.X, c.Y)
	tag := zone.Tag()

	adaptationMult := adaptationBonus(tag, tr)
	complexityCost := 1 + 0.3*float64(tr.Complexity-1)
	agingPenalty := aginePenalty(tr, c.Age)
	hasPrey := g.hasPreyNeighbor(c.X, c.Y, c.SpeciesID)
	foodMult := foodMultiplier(tr.EnergySource, hasPrey)
	isOptimal := zoneIsOptimal(tag, tr)
	var zoneBonus float64 = 1.0
	if isOptimal {
		zoneBonus = tr.OptimalZoneBonus
	}
	k, n := g.sameSpeciesNeighbors(c.X, c.Y, c.SpeciesID)
	colonyBonus := 1.0
	if n > 0 {
		colonyBonus = 1 + (float64(k)/float64(n))*(tr.ColonialAffinity-1)
	}
	pressure := g.zcache.pressure(zone)

	decayLoss := math.Round(float64(tr.EnergyDecay) * zone.Properties.EnergyDecayMult * colonyBonus * complexityCost * agingPenalty / adaptationMult)
	c.Energy -= decayLoss

	// Verbatim from the source this spec was distilled from: photosynthetic
	// gain is scaled by the zone's energy_decay_mult, not its
	// energy_generation_mult. Load-bearing for observed population
	// dynamics; do not "fix".
	gain := math.Round(float64(tr.PhotosynthesisRate) * zone.Properties.EnergyDecayMult * colonyBonus * adaptationMult * foodMult * zoneBonus * pressure / tr.MetabolicEfficiency)
	c.Energy += gain

	c.clampEnergy()

	if !isOptimal && c.Energy < float64(tr.StarvationThreshold) {
		g.killCell(c)
		return
	}
	if c.Energy <= 0 {
		g.killCell(c)
	}
}

// adaptationBonus implements get_adaptation_bonus (§4.4 step 3).
func adaptationBonus(tag ZoneType, tr Traits) float64 {
	switch tag {
	case ZoneParadise:
		return 1.5
	case ZoneFertile:
		return 1 + 0.5*(1-math.Abs(tr.HeatTolerance-0.5))
	case ZoneDesert:
		return 0.5 + tr.HeatTolerance
	case ZoneToxic:
		return 0.3 + 1.2*tr.ToxinResistance
	default:
		return 1.0
	}
}

// aginePenalty implements the age_decline_start ramp (§4.4 step 3).
func aginePenalty(tr Traits, age int) float64 {
	if tr.MaxLifespan <= 0 {
		return 1.0
	}
	frac := float64(age) / float64(tr.MaxLifespan)
	if frac <= tr.AgeDeclineStart {
		return 1.0
	}
	remainder := 1.0 - tr.AgeDeclineStart
	if remainder <= 0 {
		return 1.5
	}
	t := (frac - tr.AgeDeclineStart) / remainder
	if t > 1 {
		t = 1
	}
	return 1.0 + 0.5*t
}

// foodMultiplier implements the energy_source food_mult table (§4.4 step 3).
func foodMultiplier(src EnergySource, hasPrey bool) float64 {
	switch src {
	case EnergySourcePredation:
		if hasPrey {
			return 2.0
		}
		return 0.1
	case EnergySourceHybrid:
		if hasPrey {
			return 1.5
		}
		return 0.7
	default: // photo
		return 1.0
	}
}

// zoneIsOptimal implements the species' optimality rule (§4.4 step 3).
func zoneIsOptimal(tag ZoneType, tr Traits) bool {
	switch tag {
	case ZoneDesert:
		return tr.HeatTolerance > 0.7
	case ZoneFertile:
		return tr.HeatTolerance >= 0.4 && tr.HeatTolerance <= 0.6
	case ZoneToxic:
		return tr.ToxinResistance > 0.7
	case ZoneParadise:
		return true
	default:
		return false
	}
}

// hasPreyNeighbor reports whether any 8-neighbor of (x, y) is a living cell
// of a different species whose trait can_be_consumed is true (§4.4 step 3).
func (g *Grid) hasPreyNeighbor(x, y, speciesID int) bool {
	for i := range neighborOffsets {
		nx, ny, ok := neighborCoord(x, y, i, g.Width, g.Height, g.Wrap)
		if !ok {
			continue
		}
		nc := g.cellAt(nx, ny)
		if nc == nil || !nc.Alive || nc.SpeciesID == speciesID {
			continue
		}
		if sp, found := g.Registry.Get(nc.SpeciesID); found && sp.Traits.CanBeConsumed {
			return true
		}
	}
	return false
}

// sameSpeciesNeighbors returns (k, n): how many of the living 8-neighbors of
// (x, y) share speciesID, and how many are living at all.
func (g *Grid) sameSpeciesNeighbors(x, y, speciesID int) (k, n int) {
	for i := range neighborOffsets {
		nx, ny, ok := neighborCoord(x, y, i, g.Width, g.Height, g.Wrap)
		if !ok {
			continue
		}
		nc := g.cellAt(nx, ny)
		if nc == nil || !nc.Alive {
			continue
		}
		n++
		if nc.SpeciesID == speciesID {
			k++
		}
	}
	return k, n
}

// killCell marks a cell dead, clears its site, and accumulates a death on
// the tick counter and on the cell's species.
// Per §3's invariant, a dead cell never remains stored at its site.
func (g *Grid) killCell(c *Cell) {
	c.Alive = false
	g.setCell(c.X, c.Y, nil)
	g.DeathsThisTick++
	if sp, ok := g.Registry.Get(c.SpeciesID); ok {
		sp.Deaths++
	}
}

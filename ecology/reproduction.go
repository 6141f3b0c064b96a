package ecology

// survivalDecision and birthDecision are computed in one pass over the
// post-movement/post-predation board, then applied in bulk — deaths first,
// then births — so occupancy does not change during the pass and every
// decision sees the same neighbor structure (§4.8, §5). The pass is not
// otherwise read-only: tryBirth deducts the parents' birth cost and
// registers any mutant species as it decides, and later decisions see those
// parent energies.
type survivalDecision struct {
	cell     *Cell
	survives bool
}

type birthDecision struct {
	x, y      int
	speciesID int
	energy    float64
}

// phaseReproduce runs phase 4 (§4.8). It rebuilds the neighbor-count cache
// from the post-movement, post-predation alive map first, since movement
// and predation both changed occupancy since the cache was last built at
// the top of Step.
func (g *Grid) phaseReproduce() {
	g.ncache.rebuild(g.aliveAt)

	var survivals []survivalDecision
	var births []birthDecision

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.cellAt(x, y)
			if c != nil && c.Alive {
				survivals = append(survivals, survivalDecision{cell: c, survives: g.cellSurvives(c)})
				continue
			}
			if bd, ok := g.tryBirth(x, y); ok {
				births = append(births, bd)
			}
		}
	}

	for _, s := range survivals {
		if !s.survives {
			g.killCell(s.cell)
		}
	}

	for _, b := range births {
		if g.cellAt(b.x, b.y) != nil {
			continue
		}
		sp, ok := g.Registry.Get(b.speciesID)
		if !ok {
			continue
		}
		c := NewCell(b.x, b.y, sp)
		c.Energy = b.energy
		c.clampEnergy()
		g.setCell(b.x, b.y, c)
		g.BirthsThisTick++
		sp.Births++
	}
}

// cellSurvives implements the living-site rule (§4.8).
func (g *Grid) cellSurvives(c *Cell) bool {
	r := c.Energy / c.MaxEnergy
	k := g.ncache.at(c.X, c.Y)

	var survives bool
	switch {
	case r > 0.7:
		survives = k == 2 || k == 3
	case r > 0.4: // 0.4 < r <= 0.7
		switch k {
		case 2, 3:
			survives = true
		case 4:
			survives = !g.rng.Chance(0.3)
		default:
			survives = false
		}
	default: // r <= 0.4
		survives = k == 3 || k == 4
	}

	if survives && k == 8 && c.Age > 50 && g.rng.Chance(0.02) {
		survives = false
	}
	return survives
}

// tryBirth implements the empty-site rule (§4.8). It returns ok=false when
// no birth happens at this site.
func (g *Grid) tryBirth(x, y int) (birthDecision, bool) {
	k := g.ncache.at(x, y)
	if k < 2 || k > 4 {
		return birthDecision{}, false
	}

	birthProb := 0.5
	if k == 3 {
		birthProb = 1.0
	}
	if !g.rng.Chance(birthProb) {
		return birthDecision{}, false
	}

	neighbors := g.livingNeighbors(x, y)
	if len(neighbors) == 0 {
		return birthDecision{}, false
	}
	parent := neighbors[g.rng.Pick(len(neighbors))]
	parentSp, ok := g.Registry.Get(parent.SpeciesID)
	if !ok {
		return birthDecision{}, false
	}
	tr := parentSp.Traits

	var secondParent *Cell
	sexual := tr.SexualReproduction
	if sexual {
		for _, n := range neighbors {
			if n != parent && n.SpeciesID == parent.SpeciesID {
				secondParent = n
				break
			}
		}
		if secondParent == nil {
			return birthDecision{}, false
		}
	}

	zone := g.zcache.at(x, y)
	if !zone.Properties.CanEnter {
		return birthDecision{}, false
	}

	nativeZoneBonus := 1.0
	if zone.Tag() == tr.NativeZoneType {
		nativeZoneBonus = tr.NativeZoneAffinity
	}
	sameK, _ := g.sameSpeciesNeighbors(parent.X, parent.Y, parent.SpeciesID)
	clusterBonus := 1 + minFloat(1, float64(sameK)/3)*(tr.ClusterReproductionBonus-1)

	pressure := g.zcache.pressure(zone)
	effectiveThreshold := float64(tr.ReproductionThreshold) * maxFloat(1.0, 1.0/maxFloat(0.8, pressure)) / (nativeZoneBonus * clusterBonus)

	var offspringEnergy float64
	canReproduce := parent.Energy >= float64(tr.ReproductionThreshold)
	switch {
	case parent.Energy >= effectiveThreshold && canReproduce:
		parent.Energy -= float64(tr.EnergyFromBirth)
		parent.clampEnergy()
		offspringEnergy = float64(tr.EnergyFromBirth) / 2
		if sexual {
			secondSp, ok := g.Registry.Get(secondParent.SpeciesID)
			if ok {
				secondParent.Energy -= float64(secondSp.Traits.EnergyFromBirth)
				secondParent.clampEnergy()
				offspringEnergy += float64(secondSp.Traits.EnergyFromBirth) / 2
			}
		}
	case pressure < 0.6:
		return birthDecision{}, false
	default:
		offspringEnergy = float64(tr.BaseEnergy) / 3
	}

	mutateProb := tr.MutationRate * zone.Properties.MutationRateMult
	if sexual {
		mutateProb *= 0.5
	}

	speciesID := parent.SpeciesID
	if g.rng.Chance(mutateProb) {
		mutant := Mutate(tr, g.rng)
		mutantSp := g.Registry.Spawn(mutant, parentSp.ID, g.Generation)
		speciesID = mutantSp.ID
		g.MutationsThisTick++
	}

	return birthDecision{x: x, y: y, speciesID: speciesID, energy: offspringEnergy}, true
}

// livingNeighbors returns the living 8-neighbor cells of (x, y).
func (g *Grid) livingNeighbors(x, y int) []*Cell {
	var out []*Cell
	for i := range neighborOffsets {
		nx, ny, ok := neighborCoord(x, y, i, g.Width, g.Height, g.Wrap)
		if !ok {
			continue
		}
		nc := g.cellAt(nx, ny)
		if nc != nil && nc.Alive {
			out = append(out, nc)
		}
	}
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

package ecology

// strategy is the movement/predation-eligibility variant derived from
// complexity (§9 "runtime polymorphism on strategies" — plain data, no
// dynamic dispatch).
type strategy int

const (
	strategySeek strategy = iota
	strategyFlee
	strategyHunt
)

func strategyFor(complexity int) strategy {
	switch {
	case complexity <= 1:
		return strategySeek
	case complexity == 2:
		return strategyFlee
	default:
		return strategyHunt
	}
}

// moveDecision is a mover snapshot taken before any cell moves, so
// candidate collection and per-cell decisions can run in parallel and the
// apply step alone needs to serialize (§5).
type moveDecision struct {
	cell *Cell
	dest Position
	ok   bool
}

// phaseMove runs phase 2 (§4.5): candidate collection is a pure function of
// the pre-move snapshot, so no cell's decision depends on another cell
// having already moved; only the apply loop is sequential.
func (g *Grid) phaseMove() {
	migrationForced := g.Generation > 0 && g.Generation%150 == 0 && g.rng.Chance(0.3)

	movers := make([]*Cell, 0)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.cellAt(x, y)
			if c != nil && c.Alive {
				movers = append(movers, c)
			}
		}
	}

	decisions := make([]moveDecision, 0, len(movers))
	for _, c := range movers {
		if !g.shouldMove(c, migrationForced) {
			continue
		}
		dest, ok := g.chooseDestination(c)
		decisions = append(decisions, moveDecision{cell: c, dest: dest, ok: ok})
	}

	for _, d := range decisions {
		if !d.ok {
			continue
		}
		g.applyMove(d)
	}

	for _, c := range movers {
		c.MovedThisTick = false
	}
}

func (g *Grid) shouldMove(c *Cell, migrationForced bool) bool {
	if migrationForced {
		return true
	}
	sp, ok := g.Registry.Get(c.SpeciesID)
	if !ok {
		return false
	}
	tr := sp.Traits
	zone := g.zcache.at(c.X, c.Y)
	pressure := g.zcache.pressure(zone)
	threshold := float64(tr.ReproductionThreshold)

	switch strategyFor(tr.Complexity) {
	case strategyHunt:
		if !g.hasPreyNeighbor(c.X, c.Y, c.SpeciesID) {
			return true
		}
		if c.Energy < 1.2*threshold {
			return true
		}
		return g.rng.Chance(0.3)
	case strategyFlee:
		if g.hasHunterNeighbor(c.X, c.Y) {
			return true
		}
		if c.Energy < 0.7*threshold && zone.Properties.EnergyGenerationMult < 1 {
			return true
		}
		return false
	default: // seek
		if pressure < 0.8 {
			return true
		}
		if zone.Properties.EnergyGenerationMult < 1 {
			return true
		}
		if c.Energy > 1.2*threshold && g.rng.Chance(0.35) {
			return true
		}
		if c.Energy < 0.85*threshold {
			return true
		}
		return false
	}
}

// hasHunterNeighbor reports whether an 8-neighbor is a living cell whose
// species has complexity >= 3 (§4.5 flee gate).
func (g *Grid) hasHunterNeighbor(x, y int) bool {
	for i := range neighborOffsets {
		nx, ny, ok := neighborCoord(x, y, i, g.Width, g.Height, g.Wrap)
		if !ok {
			continue
		}
		nc := g.cellAt(nx, ny)
		if nc == nil || !nc.Alive {
			continue
		}
		if sp, found := g.Registry.Get(nc.SpeciesID); found && sp.Traits.Complexity >= 3 {
			return true
		}
	}
	return false
}

// candidateRange returns the Chebyshev radius a cell searches for a
// destination (§4.5).
func candidateRange(tr Traits, energy float64) int {
	threshold := float64(tr.ReproductionThreshold)
	if energy < 0.5*threshold || energy > 1.5*threshold {
		return 2
	}
	return 1
}

// eligible reports whether (nx, ny) is a valid movement destination for a
// mover with the given energy (§4.5 "eligibility").
func (g *Grid) eligible(nx, ny int, moverEnergy float64) bool {
	zone := g.Zones.ZoneAt(nx, ny)
	if !zone.Properties.CanEnter {
		return false
	}
	occ := g.cellAt(nx, ny)
	if occ == nil {
		return true
	}
	return occ.Energy*1.1 < moverEnergy
}

// chooseDestination implements the strategy-specific destination choice
// (§4.5). It returns ok=false when no eligible candidate exists.
func (g *Grid) chooseDestination(c *Cell) (Position, bool) {
	sp, ok := g.Registry.Get(c.SpeciesID)
	if !ok {
		return Position{}, false
	}
	tr := sp.Traits
	radius := candidateRange(tr, c.Energy)
	candidates := g.candidatesInRange(c.X, c.Y, radius, c.Energy)
	if len(candidates) == 0 {
		return Position{}, false
	}

	switch strategyFor(tr.Complexity) {
	case strategyFlee:
		hunters := g.nearbyHunterPositions(c.X, c.Y)
		if len(hunters) > 0 {
			return g.pickByScore(candidates, func(p Position) float64 {
				return float64(nearestManhattan(p, hunters))
			}, true), true
		}
		return g.chooseSeekDestination(candidates), true
	case strategyHunt:
		prey := g.nearbyPreyPositions(c.X, c.Y, c.SpeciesID)
		if len(prey) > 0 {
			return g.pickByScore(candidates, func(p Position) float64 {
				return float64(nearestManhattan(p, prey))
			}, false), true
		}
		return g.chooseSeekDestination(candidates), true
	default:
		return g.chooseSeekDestination(candidates), true
	}
}

func (g *Grid) chooseSeekDestination(candidates []Position) Position {
	return g.pickByScore(candidates, func(p Position) float64 {
		zone := g.Zones.ZoneAt(p.X, p.Y)
		return zone.Properties.EnergyGenerationMult - zone.Properties.EnergyDecayMult
	}, true)
}

// pickByScore scores every candidate and returns one of the candidates
// tied for best uniformly at random. maximize selects the highest score;
// otherwise the lowest.
func (g *Grid) pickByScore(candidates []Position, score func(Position) float64, maximize bool) Position {
	best := score(candidates[0])
	bestIdx := []int{0}
	for i := 1; i < len(candidates); i++ {
		s := score(candidates[i])
		better := s > best
		if !maximize {
			better = s < best
		}
		if better {
			best = s
			bestIdx = []int{i}
		} else if s == best {
			bestIdx = append(bestIdx, i)
		}
	}
	return candidates[bestIdx[g.rng.Pick(len(bestIdx))]]
}

// candidatesInRange collects every eligible destination within Chebyshev
// radius of (x, y), excluding the origin itself.
func (g *Grid) candidatesInRange(x, y, radius int, moverEnergy float64) []Position {
	var out []Position
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.Wrap {
				nx = ((nx % g.Width) + g.Width) % g.Width
				ny = ((ny % g.Height) + g.Height) % g.Height
			} else if nx < 0 || nx >= g.Width || ny < 0 || ny >= g.Height {
				continue
			}
			if g.eligible(nx, ny, moverEnergy) {
				out = append(out, Position{X: nx, Y: ny})
			}
		}
	}
	return out
}

// nearbyHunterPositions returns the 8-neighbor positions occupied by a
// complexity >= 3 species, relative to the mover's pre-move location.
func (g *Grid) nearbyHunterPositions(x, y int) []Position {
	var out []Position
	for i := range neighborOffsets {
		nx, ny, ok := neighborCoord(x, y, i, g.Width, g.Height, g.Wrap)
		if !ok {
			continue
		}
		nc := g.cellAt(nx, ny)
		if nc == nil || !nc.Alive {
			continue
		}
		if sp, found := g.Registry.Get(nc.SpeciesID); found && sp.Traits.Complexity >= 3 {
			out = append(out, Position{X: nx, Y: ny})
		}
	}
	return out
}

// nearbyPreyPositions returns the 8-neighbor positions occupied by eligible
// prey (different species, can_be_consumed, non-hunter) relative to the
// mover's pre-move location (§4.5 hunt destination choice).
func (g *Grid) nearbyPreyPositions(x, y, speciesID int) []Position {
	var out []Position
	for i := range neighborOffsets {
		nx, ny, ok := neighborCoord(x, y, i, g.Width, g.Height, g.Wrap)
		if !ok {
			continue
		}
		nc := g.cellAt(nx, ny)
		if nc == nil || !nc.Alive || nc.SpeciesID == speciesID {
			continue
		}
		sp, found := g.Registry.Get(nc.SpeciesID)
		if !found || !sp.Traits.CanBeConsumed || sp.Traits.Complexity >= 3 {
			continue
		}
		out = append(out, Position{X: nx, Y: ny})
	}
	return out
}

func nearestManhattan(p Position, others []Position) int {
	best := -1
	for _, o := range others {
		d := abs(p.X-o.X) + abs(p.Y-o.Y)
		if best == -1 || d < best {
			best = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// applyMove executes one mover's decision, re-checking eligibility against
// the board as it now stands so two movers never collide on one
// destination (§5 "destination reserved" check).
func (g *Grid) applyMove(d moveDecision) {
	c := d.cell
	if !c.Alive {
		return
	}
	if !g.eligible(d.dest.X, d.dest.Y, c.Energy) {
		return
	}
	sp, ok := g.Registry.Get(c.SpeciesID)
	if !ok {
		return
	}

	if occ := g.cellAt(d.dest.X, d.dest.Y); occ != nil {
		g.killCell(occ)
	}

	g.setCell(c.X, c.Y, nil)
	c.recordPosition()
	c.X, c.Y = d.dest.X, d.dest.Y
	c.Energy -= float64(sp.Traits.MovementCost())
	c.clampEnergy()
	c.MovedThisTick = true
	g.setCell(c.X, c.Y, c)
}

package ecology

import "math"

// predationEvent is a hunter/target pairing collected before any predation
// is applied, so every hunter sees the same post-movement board when
// choosing a target (§5 "predation's collection is parallel").
type predationEvent struct {
	predator *Cell
	target   *Cell
}

// phasePredate runs phase 3 (§4.7): hunters (complexity >= 3) each pick one
// eligible prey neighbor uniformly at random; targets are resolved in
// collection order, and a target already claimed by an earlier hunter is
// simply gone by the time its turn comes.
func (g *Grid) phasePredate() {
	var events []predationEvent
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.cellAt(x, y)
			if c == nil || !c.Alive {
				continue
			}
			sp, ok := g.Registry.Get(c.SpeciesID)
			if !ok || sp.Traits.Complexity < 3 {
				continue
			}
			targets := g.preyTargets(c)
			if len(targets) == 0 {
				continue
			}
			target := targets[g.rng.Pick(len(targets))]
			events = append(events, predationEvent{predator: c, target: target})
		}
	}

	for _, ev := range events {
		g.applyPredation(ev)
	}
}

// preyTargets collects the 8-neighbor living cells of another species with
// can_be_consumed=true and complexity < 3 (§4.7).
func (g *Grid) preyTargets(predator *Cell) []*Cell {
	var out []*Cell
	for i := range neighborOffsets {
		nx, ny, ok := neighborCoord(predator.X, predator.Y, i, g.Width, g.Height, g.Wrap)
		if !ok {
			continue
		}
		nc := g.cellAt(nx, ny)
		if nc == nil || !nc.Alive || nc.SpeciesID == predator.SpeciesID {
			continue
		}
		sp, found := g.Registry.Get(nc.SpeciesID)
		if !found || !sp.Traits.CanBeConsumed || sp.Traits.Complexity >= 3 {
			continue
		}
		out = append(out, nc)
	}
	return out
}

func (g *Grid) applyPredation(ev predationEvent) {
	if !ev.predator.Alive || !ev.target.Alive {
		return
	}
	predSp, ok := g.Registry.Get(ev.predator.SpeciesID)
	if !ok {
		return
	}
	mult := 0.35 + 0.15*float64(predSp.Traits.Complexity)
	if mult > 0.8 {
		mult = 0.8
	}
	transferred := math.Round(ev.target.Energy * mult)

	ev.predator.Energy += transferred
	if ev.predator.Energy > ev.predator.MaxEnergy {
		ev.predator.Energy = ev.predator.MaxEnergy
	}

	g.killCell(ev.target)
}

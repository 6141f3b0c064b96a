package ecology

import "gonum.org/v1/gonum/stat"

// GetStats returns the read-only summary snapshot (§6). Safe to call between
// Step calls only.
func (g *Grid) GetStats() Stats {
	living := g.Registry.Living()

	ages := make([]float64, 0, len(living))
	dominantID := 0
	dominantPop := -1
	for _, s := range living {
		ages = append(ages, float64(g.Generation-s.GenerationBorn))
		if s.Population > dominantPop {
			dominantPop = s.Population
			dominantID = s.ID
		}
	}

	var avgAge float64
	if len(ages) > 0 {
		avgAge = stat.Mean(ages, nil)
	}

	return Stats{
		Generation:        g.Generation,
		Population:        g.livingCount(),
		SpeciesCount:      g.Registry.Extant(),
		Births:            g.BirthsThisTick,
		Deaths:            g.DeathsThisTick,
		Mutations:         g.MutationsThisTick,
		AvgSpeciesAge:     avgAge,
		DominantSpeciesID: dominantID,
	}
}

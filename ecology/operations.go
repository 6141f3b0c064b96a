package ecology

// clampRect clips a rectangle to the grid, shrinking it from whichever edge
// falls outside. ok is false when nothing of the rectangle survives.
func clampRect(x, y, w, h, gridW, gridH int) (int, int, int, int, bool) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > gridW {
		w = gridW - x
	}
	if y+h > gridH {
		h = gridH - y
	}
	if w <= 0 || h <= 0 || x >= gridW || y >= gridH {
		return 0, 0, 0, 0, false
	}
	return x, y, w, h, true
}

// SetupZones lays out a built-in zone arrangement (§6). LayoutNeutral leaves
// the grid-wide default in place and adds nothing.
func (g *Grid) SetupZones(layout ZoneLayout) {
	switch layout {
	case LayoutRandom:
		g.setupRandomZones()
	case LayoutQuadrant:
		g.setupQuadrantZones()
	case LayoutRing:
		g.setupRingZones()
	}
}

func (g *Grid) setupRandomZones() {
	n := 3 + g.rng.Intn(5) // 3..7
	for i := 0; i < n; i++ {
		w := g.rng.IntRange(20, 60)
		h := g.rng.IntRange(20, 60)
		if w > g.Width {
			w = g.Width
		}
		if h > g.Height {
			h = g.Height
		}
		x := g.rng.IntRange(0, maxInt(0, g.Width-w))
		y := g.rng.IntRange(0, maxInt(0, g.Height-h))
		t := shiftableZoneTypes[g.rng.Pick(len(shiftableZoneTypes))]
		g.Zones.Add(NewZone(x, y, w, h, t))
	}
}

func (g *Grid) setupQuadrantZones() {
	halfW := g.Width / 2
	halfH := g.Height / 2
	quadrants := []struct {
		x, y, w, h int
		t          ZoneType
	}{
		{0, 0, halfW, halfH, ZoneFertile},
		{halfW, 0, g.Width - halfW, halfH, ZoneDesert},
		{0, halfH, halfW, g.Height - halfH, ZoneToxic},
		{halfW, halfH, g.Width - halfW, g.Height - halfH, ZoneParadise},
	}
	for _, q := range quadrants {
		if x, y, w, h, ok := clampRect(q.x, q.y, q.w, q.h, g.Width, g.Height); ok {
			g.Zones.Add(NewZone(x, y, w, h, q.t))
		}
	}
}

// setupRingZones places a central paradise square of radius 50 with a
// 40-wide toxic ring approximated by four rectangles (§6).
func (g *Grid) setupRingZones() {
	const coreRadius = 50
	const ringWidth = 40

	coreW := minInt(coreRadius*2, g.Width)
	coreH := minInt(coreRadius*2, g.Height)
	coreX := clampInt(g.Width/2-coreW/2, 0, maxInt(0, g.Width-coreW))
	coreY := clampInt(g.Height/2-coreH/2, 0, maxInt(0, g.Height-coreH))
	if x, y, w, h, ok := clampRect(coreX, coreY, coreW, coreH, g.Width, g.Height); ok {
		g.Zones.Add(NewZone(x, y, w, h, ZoneParadise))
	}

	bands := []struct{ x, y, w, h int }{
		{coreX - ringWidth, coreY - ringWidth, coreW + 2*ringWidth, ringWidth},               // top
		{coreX - ringWidth, coreY + coreH, coreW + 2*ringWidth, ringWidth},                    // bottom
		{coreX - ringWidth, coreY - ringWidth, ringWidth, coreH + 2*ringWidth},                // left
		{coreX + coreW, coreY - ringWidth, ringWidth, coreH + 2*ringWidth},                    // right
	}
	for _, b := range bands {
		if x, y, w, h, ok := clampRect(b.x, b.y, b.w, b.h, g.Width, g.Height); ok {
			g.Zones.Add(NewZone(x, y, w, h, ZoneToxic))
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SeedSpecies places up to population living cells of species using the
// given pattern (§6), then sets the species' native_zone_type to whichever
// zone the majority of placed cells landed in. A shortfall against the
// retry budget is reported as a CapacityExhaustedError, but every cell
// placed before the shortfall stays on the grid.
func (g *Grid) SeedSpecies(species *Species, population int, pattern SeedPattern) error {
	if population < 0 {
		return &InvalidConfigurationError{Reason: "population must be non-negative"}
	}
	if population == 0 {
		return nil
	}

	var candidates []Position
	switch pattern {
	case PatternCenter:
		candidates = g.centerPlacements(species.ID, population)
	case PatternEdge:
		candidates = g.edgePlacements()
	default:
		candidates = g.randomPlacements(population)
	}

	placed := 0
	zoneTally := make(map[ZoneType]int)
	for _, p := range candidates {
		if placed >= population {
			break
		}
		if g.cellAt(p.X, p.Y) != nil {
			continue
		}
		if !g.Zones.ZoneAt(p.X, p.Y).Properties.CanEnter {
			continue
		}
		c := NewCell(p.X, p.Y, species)
		g.setCell(p.X, p.Y, c)
		zoneTally[g.Zones.ZoneAt(p.X, p.Y).Tag()]++
		placed++
	}

	if placed > 0 {
		majority := species.Traits.NativeZoneType
		best := -1
		for zt, n := range zoneTally {
			if n > best {
				best = n
				majority = zt
			}
		}
		species.Traits.NativeZoneType = majority
		species.Traits = NewTraits(species.Traits)
	}
	species.Population = placed

	if placed < population {
		return &CapacityExhaustedError{Requested: population, Placed: placed}
	}
	return nil
}

// randomPlacements draws uniformly at random within a 100*population attempt
// budget (§7 CapacityExhausted), skipping sites already occupied or already
// chosen this call.
func (g *Grid) randomPlacements(population int) []Position {
	var out []Position
	chosen := make(map[Position]bool, population)
	budget := 100 * population
	for attempts := 0; attempts < budget && len(out) < population; attempts++ {
		p := Position{X: g.rng.Intn(g.Width), Y: g.rng.Intn(g.Height)}
		if chosen[p] || g.cellAt(p.X, p.Y) != nil {
			continue
		}
		chosen[p] = true
		out = append(out, p)
	}
	return out
}

// centerPlacements lays out 2x2 blocks in a square spiral from a
// species-dependent offset near the grid center (§6).
func (g *Grid) centerPlacements(speciesID, population int) []Position {
	baseX := clampInt(g.Width/2+(speciesID*7)%5-2, 0, maxInt(0, g.Width-2))
	baseY := clampInt(g.Height/2+(speciesID*11)%5-2, 0, maxInt(0, g.Height-2))

	blocksNeeded := population/4 + 2
	blocks := spiralBlockOffsets(blocksNeeded)

	var out []Position
	for _, b := range blocks {
		bx := baseX + 2*b.X
		by := baseY + 2*b.Y
		for _, off := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			x, y := bx+off[0], by+off[1]
			if g.Wrap {
				x = ((x % g.Width) + g.Width) % g.Width
				y = ((y % g.Height) + g.Height) % g.Height
			} else if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
				continue
			}
			out = append(out, Position{X: x, Y: y})
		}
		if len(out) >= population*3 {
			break
		}
	}
	return out
}

// spiralBlockOffsets returns the first n coordinates of a square spiral
// centered on (0, 0), used to walk 2x2 blocks outward from a seed point.
func spiralBlockOffsets(n int) []Position {
	out := make([]Position, 0, n)
	x, y := 0, 0
	dx, dy := 0, -1
	for len(out) < n {
		out = append(out, Position{X: x, Y: y})
		if x == y || (x < 0 && x == -y) || (x > 0 && x == 1-y) {
			dx, dy = -dy, dx
		}
		x, y = x+dx, y+dy
	}
	return out
}

// edgePlacements walks the grid's perimeter once.
func (g *Grid) edgePlacements() []Position {
	var out []Position
	for x := 0; x < g.Width; x++ {
		out = append(out, Position{X: x, Y: 0})
	}
	for y := 1; y < g.Height; y++ {
		out = append(out, Position{X: g.Width - 1, Y: y})
	}
	for x := g.Width - 2; x >= 0; x-- {
		out = append(out, Position{X: x, Y: g.Height - 1})
	}
	for y := g.Height - 2; y > 0; y-- {
		out = append(out, Position{X: 0, Y: y})
	}
	return out
}

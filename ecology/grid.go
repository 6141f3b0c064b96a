package ecology

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ZoneLayout selects a built-in zone arrangement for SetupZones (§6).
type ZoneLayout int

const (
	LayoutNeutral ZoneLayout = iota
	LayoutRandom
	LayoutQuadrant
	LayoutRing
)

// SeedPattern selects a built-in placement pattern for SeedSpecies (§6).
type SeedPattern int

const (
	PatternRandom SeedPattern = iota
	PatternCenter
	PatternEdge
)

// Grid is the tick engine: it owns the cell array, the species registry,
// the zone manager, both per-tick caches, and the RNG stream every
// stochastic decision draws from.
type Grid struct {
	Width, Height int
	Wrap          bool

	Registry *Registry
	Zones    *ZoneManager
	Generation int

	BirthsThisTick    int
	DeathsThisTick    int
	MutationsThisTick int

	cells  []*Cell // row-major, width*height; nil entry == empty site
	rng    *RNG
	ncache *neighborCache
	zcache *zoneCache
	logger zerolog.Logger
}

// NewGrid constructs an empty grid. Dimensions <= 0 are an
// InvalidConfigurationError (§7.1), rejected before anything is allocated.
func NewGrid(width, height int, wrap bool, seed int64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("grid dimensions must be positive, got %dx%d", width, height)}
	}
	g := &Grid{
		Width:    width,
		Height:   height,
		Wrap:     wrap,
		Registry: NewRegistry(),
		Zones:    NewZoneManager(width, height),
		cells:    make([]*Cell, width*height),
		rng:      NewRNG(seed),
		ncache:   newNeighborCache(width, height, wrap),
		zcache:   newZoneCache(width, height),
		logger:   newDiscardLogger(),
	}
	return g, nil
}

func (g *Grid) index(x, y int) int { return y*g.Width + x }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// cellAt returns the cell at (x, y), or nil if the site is empty. Callers
// must have already bounds-checked when wrap is false.
func (g *Grid) cellAt(x, y int) *Cell {
	return g.cells[g.index(x, y)]
}

func (g *Grid) setCell(x, y int, c *Cell) {
	g.cells[g.index(x, y)] = c
}

func (g *Grid) aliveAt(x, y int) bool {
	c := g.cells[g.index(x, y)]
	return c != nil && c.Alive
}

// CellAt returns a read-only view of the site at (x, y). It reports ok=false
// for a request outside [0,Width)x[0,Height) rather than faulting (§7.2),
// and for an empty in-bounds site. Coordinates are not wrapped, even when
// Wrap is true.
func (g *Grid) CellAt(x, y int) (CellView, bool) {
	if !g.inBounds(x, y) {
		return CellView{}, false
	}
	c := g.cellAt(x, y)
	if c == nil {
		return CellView{}, false
	}
	return CellView{
		X: c.X, Y: c.Y, SpeciesID: c.SpeciesID,
		Energy: c.Energy, MaxEnergy: c.MaxEnergy, Age: c.Age,
	}, true
}

// RequireCellAt is CellAt for callers that want an explicit error rather
// than a bool for the out-of-bounds case (§7.2): a BoundsViolationError
// distinguishes "outside the grid" from "empty site in bounds", which
// CellAt's (view, ok) pair collapses into the same ok=false.
func (g *Grid) RequireCellAt(x, y int) (CellView, error) {
	if !g.inBounds(x, y) {
		return CellView{}, &BoundsViolationError{X: x, Y: y, Width: g.Width, Height: g.Height}
	}
	view, _ := g.CellAt(x, y)
	return view, nil
}

func (g *Grid) livingCount() int {
	n := 0
	for _, c := range g.cells {
		if c != nil && c.Alive {
			n++
		}
	}
	return n
}

// populationInZone counts living cells currently inside a zone's rectangle;
// a Zone never stores this itself (§9 "cycles and back-references") — it
// queries the grid, which is exactly what this callback provides to the
// zone cache rebuild.
func (g *Grid) populationInZone(z *Zone) int {
	n := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !z.Contains(x, y) {
				continue
			}
			if g.aliveAt(x, y) {
				n++
			}
		}
	}
	return n
}

// rebuildCaches rebuilds both per-tick caches from current grid state.
func (g *Grid) rebuildCaches() {
	g.ncache.rebuild(g.aliveAt)
	g.zcache.rebuild(g.Zones, g.populationInZone)
}

// Step advances the grid by exactly one generation, running the five-phase
// pipeline (§4, §5): rebuild caches, age, move, predate, reproduce, then
// update registry population bookkeeping. It returns the new generation
// number.
func (g *Grid) Step() (int, error) {
	g.BirthsThisTick = 0
	g.DeathsThisTick = 0
	g.MutationsThisTick = 0

	g.rebuildCaches()

	if err := g.validateInvariants(); err != nil {
		g.logger.Error().Err(err).Int("generation", g.Generation).Msg("internal invariant breach")
		return g.Generation, err
	}

	g.phaseAge()
	g.phaseMove()
	g.phasePredate()
	g.phaseReproduce()

	g.Generation++

	counts := make(map[int]int)
	for _, c := range g.cells {
		if c != nil && c.Alive {
			counts[c.SpeciesID]++
		}
	}
	g.Registry.RecomputeFromGrid(counts)

	if g.Zones.shiftEnabled && g.Generation%g.Zones.shiftPeriod == 0 {
		g.Zones.Shift(g.rng, g.Width, g.Height)
	}
	if g.Generation%50 == 0 {
		g.Zones.Shift(g.rng, g.Width, g.Height)
	}

	g.logTickSummary()

	return g.Generation, nil
}

// validateInvariants checks the §3/§8 "cell at (x,y) stores (x,y)" and
// "no dead cell remains stored at a site" invariants. A violation is a bug, not
// ordinary control flow (§7.4): Step aborts and reports it rather than
// continuing on corrupted state.
func (g *Grid) validateInvariants() error {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.cellAt(x, y)
			if c == nil {
				continue
			}
			if !c.Alive {
				return &InternalInvariantError{Reason: fmt.Sprintf("dead cell present at (%d,%d)", x, y)}
			}
			if c.X != x || c.Y != y {
				return &InternalInvariantError{Reason: fmt.Sprintf("cell at (%d,%d) has stored coordinates (%d,%d)", x, y, c.X, c.Y)}
			}
		}
	}
	return nil
}

// Stats is the read-only summary snapshot exposed to collaborators (§6).
type Stats struct {
	Generation          int
	Population          int
	SpeciesCount        int
	Births              int
	Deaths              int
	Mutations           int
	AvgSpeciesAge       float64
	DominantSpeciesID   int
}

// CellView is a read-only snapshot of one site, sufficient to render it.
type CellView struct {
	X, Y      int
	SpeciesID int
	Energy    float64
	MaxEnergy float64
	Age       int
}

// GridView is a read-only view of the whole grid, sufficient to render it
// (§6 snapshot): every living cell (a site absent from Cells is empty), the
// species color table, and zone geometry.
type GridView struct {
	Width, Height int
	Cells         []CellView
	SpeciesColors map[int]RGB
	Zones         []ZoneView
}

// ZoneView is a read-only view of one zone's geometry and display color.
type ZoneView struct {
	X, Y, W, H int
	Type       string
	Color      RGB
}

// Snapshot returns a read-only view of the grid sufficient to render it.
// Safe to call between Step calls only (§5: the grid is owned exclusively
// by the engine during a step).
func (g *Grid) Snapshot() GridView {
	cells := make([]CellView, 0, g.livingCount())
	colors := make(map[int]RGB)
	for _, c := range g.cells {
		if c == nil || !c.Alive {
			continue
		}
		cells = append(cells, CellView{X: c.X, Y: c.Y, SpeciesID: c.SpeciesID, Energy: c.Energy, MaxEnergy: c.MaxEnergy, Age: c.Age})
		if _, ok := colors[c.SpeciesID]; !ok {
			if sp, found := g.Registry.Get(c.SpeciesID); found {
				colors[c.SpeciesID] = sp.Traits.Color
			}
		}
	}
	zones := make([]ZoneView, 0, len(g.Zones.Zones()))
	for _, z := range g.Zones.Zones() {
		zones = append(zones, ZoneView{X: z.X, Y: z.Y, W: z.W, H: z.H, Type: z.Type.String(), Color: z.Properties.Color})
	}
	return GridView{Width: g.Width, Height: g.Height, Cells: cells, SpeciesColors: colors, Zones: zones}
}

package ecology

// maxTrailLen bounds the FIFO of recent positions a cell remembers (§3).
const maxTrailLen = 10

// Cell is the per-site state of a single living organism. A site holds at
// most one cell; when alive is false the site is empty.
type Cell struct {
	X, Y          int
	SpeciesID     int
	Alive         bool
	Energy        float64
	MaxEnergy     float64
	Age           int
	MovedThisTick bool
	trail         []Position
}

// Position is an integer grid coordinate.
type Position struct {
	X, Y int
}

// NewCell creates a living cell of the given species at (x, y) with the
// species' base energy.
func NewCell(x, y int, species *Species) *Cell {
	return &Cell{
		X:         x,
		Y:         y,
		SpeciesID: species.ID,
		Alive:     true,
		Energy:    float64(species.Traits.BaseEnergy),
		MaxEnergy: species.Traits.MaxEnergy(),
	}
}

// recordPosition appends the cell's current position to its trail, evicting
// the oldest entry once the trail exceeds maxTrailLen.
func (c *Cell) recordPosition() {
	c.trail = append(c.trail, Position{X: c.X, Y: c.Y})
	if len(c.trail) > maxTrailLen {
		c.trail = c.trail[len(c.trail)-maxTrailLen:]
	}
}

// Trail returns the cell's recent positions, oldest first.
func (c *Cell) Trail() []Position {
	out := make([]Position, len(c.trail))
	copy(out, c.trail)
	return out
}

// clampEnergy enforces 0 <= energy <= max_energy (§3 invariant).
func (c *Cell) clampEnergy() {
	if c.Energy < 0 {
		c.Energy = 0
	}
	if c.Energy > c.MaxEnergy {
		c.Energy = c.MaxEnergy
	}
}

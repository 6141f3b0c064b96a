package ecology

// neighborOffsets is the 8-neighborhood used throughout the engine.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// neighborCache holds the 8-neighborhood living-cell count for every site,
// rebuilt from a contiguous alive field at the top of each Step and again at
// the start of the reproduction phase, after movement and predation have
// changed occupancy (§2 component 6, §9 "hot-path arrays").
type neighborCache struct {
	width, height int
	wrap          bool
	counts        []int // row-major, width*height
}

func newNeighborCache(width, height int, wrap bool) *neighborCache {
	return &neighborCache{width: width, height: height, wrap: wrap, counts: make([]int, width*height)}
}

func (c *neighborCache) at(x, y int) int {
	return c.counts[y*c.width+x]
}

// rebuild recomputes every site's living-neighbor count from the grid's
// current alive field. The scan is parallel-safe per-site (no site's result
// depends on another site's result within the same rebuild).
func (c *neighborCache) rebuild(alive func(x, y int) bool) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			n := 0
			for _, off := range neighborOffsets {
				nx, ny := x+off[0], y+off[1]
				if c.wrap {
					nx = ((nx % c.width) + c.width) % c.width
					ny = ((ny % c.height) + c.height) % c.height
				} else if nx < 0 || nx >= c.width || ny < 0 || ny >= c.height {
					continue
				}
				if alive(nx, ny) {
					n++
				}
			}
			c.counts[y*c.width+x] = n
		}
	}
}

// neighborCoord returns the wrapped (or bounds-checked) coordinate of
// neighbor index i of (x, y), and whether that coordinate is in-bounds.
func neighborCoord(x, y, i, width, height int, wrap bool) (int, int, bool) {
	off := neighborOffsets[i]
	nx, ny := x+off[0], y+off[1]
	if wrap {
		nx = ((nx % width) + width) % width
		ny = ((ny % height) + height) % height
		return nx, ny, true
	}
	if nx < 0 || nx >= width || ny < 0 || ny >= height {
		return 0, 0, false
	}
	return nx, ny, true
}

// zoneCache holds, for every site, the governing zone and that zone's
// current population-pressure value, rebuilt once per tick (§4.6, §2
// component 7).
type zoneCache struct {
	width, height int
	zoneAt        []*Zone
	pressureOf    map[*Zone]float64
}

func newZoneCache(width, height int) *zoneCache {
	return &zoneCache{width: width, height: height}
}

func (c *zoneCache) at(x, y int) *Zone {
	return c.zoneAt[y*c.width+x]
}

func (c *zoneCache) pressure(z *Zone) float64 {
	return c.pressureOf[z]
}

// rebuild resolves zone_at for every site and pressure for every distinct
// zone reached, from the supplied living-population-per-zone counter.
func (c *zoneCache) rebuild(zm *ZoneManager, populationIn func(z *Zone) int) {
	c.zoneAt = make([]*Zone, c.width*c.height)
	seen := make(map[*Zone]bool)
	var distinct []*Zone
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			z := zm.ZoneAt(x, y)
			c.zoneAt[y*c.width+x] = z
			if !seen[z] {
				seen[z] = true
				distinct = append(distinct, z)
			}
		}
	}
	c.pressureOf = make(map[*Zone]float64, len(distinct))
	for _, z := range distinct {
		c.pressureOf[z] = pressureFor(z, populationIn(z))
	}
}

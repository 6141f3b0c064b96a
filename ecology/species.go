package ecology

// Species is a species' trait record plus its mutable stats. The trait
// record changes only when SeedSpecies sets its native zone type;
// population, births, deaths and extinction status are updated as the grid
// steps.
type Species struct {
	ID              int
	ParentID        int // 0 when the species was seeded directly, never mutated from another
	GenerationBorn  int
	Traits          Traits
	Population      int
	Births          int
	Deaths          int
	extinct         bool
}

// HasParent reports whether this species arose from a mutation rather than
// direct seeding.
func (s *Species) HasParent() bool {
	return s.ParentID != 0
}

// Extinct reports whether the registry has observed this species' living
// population drop to zero at least once since it was last nonzero.
func (s *Species) Extinct() bool {
	return s.extinct
}

// Registry owns every species ever created for one grid, living or extinct,
// and allocates monotonically increasing ids. Each grid owns its own
// registry and counter so independent simulations never interfere.
type Registry struct {
	species map[int]*Species
	order   []int
	nextID  int
}

// NewRegistry creates an empty registry. Ids start at 1 so 0 can mean
// "no parent" for seeded species.
func NewRegistry() *Registry {
	return &Registry{
		species: make(map[int]*Species),
		nextID:  1,
	}
}

// Spawn registers a brand-new species (via seeding or mutation) and returns
// it. parentID is 0 for a seeded species.
func (r *Registry) Spawn(traits Traits, parentID, generation int) *Species {
	s := &Species{
		ID:             r.nextID,
		ParentID:       parentID,
		GenerationBorn: generation,
		Traits:         traits,
	}
	r.species[s.ID] = s
	r.order = append(r.order, s.ID)
	r.nextID++
	return s
}

// Get returns the species with the given id, living or extinct, and whether
// it exists. Extinct species remain queryable by id for the lifetime of the
// registry (§8 property 7).
func (r *Registry) Get(id int) (*Species, bool) {
	s, ok := r.species[id]
	return s, ok
}

// All returns every species ever registered, in id order.
func (r *Registry) All() []*Species {
	out := make([]*Species, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.species[id])
	}
	return out
}

// Living returns every species not marked extinct, in id order.
// RecomputeFromGrid marks a species extinct once its population reaches
// zero, so a species spawned since the last Step is included even while its
// recorded population is zero.
func (r *Registry) Living() []*Species {
	out := make([]*Species, 0, len(r.order))
	for _, id := range r.order {
		if s := r.species[id]; !s.extinct {
			out = append(out, s)
		}
	}
	return out
}

// Extant reports the number of non-extinct species.
func (r *Registry) Extant() int {
	n := 0
	for _, id := range r.order {
		if !r.species[id].extinct {
			n++
		}
	}
	return n
}

// RecomputeFromGrid recounts each species' living population from the grid's
// cell array and moves any species whose population has dropped to zero
// into the extinct set. It never destroys a species record.
func (r *Registry) RecomputeFromGrid(counts map[int]int) {
	for _, id := range r.order {
		s := r.species[id]
		s.Population = counts[id]
		if s.Population == 0 {
			s.extinct = true
		}
	}
}

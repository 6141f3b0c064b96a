package ecology

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StateManager handles saving and loading a grid's full simulation state,
// adapted from the host's save/load flow to this engine's data model.
type StateManager struct {
	grid *Grid
}

// NewStateManager creates a state manager for the given grid.
func NewStateManager(grid *Grid) *StateManager {
	return &StateManager{grid: grid}
}

// SimulationState is the complete serializable snapshot of a grid: enough
// to reconstruct every zone, species, and living cell. The RNG stream
// itself is not persisted (§1 Non-goals: no cross-run determinism guarantee).
type SimulationState struct {
	Version    string         `json:"version"`
	SavedAt    time.Time      `json:"saved_at"`
	Generation int            `json:"generation"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Wrap       bool           `json:"wrap"`
	Zones      []ZoneState    `json:"zones"`
	Species    []SpeciesState `json:"species"`
	Cells      []CellState    `json:"cells"`
}

// ZoneState is the serializable form of one explicitly added zone.
type ZoneState struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
	Type string `json:"type"`
}

// SpeciesState is the serializable form of one registry entry.
type SpeciesState struct {
	ID             int         `json:"id"`
	ParentID       int         `json:"parent_id"`
	GenerationBorn int         `json:"generation_born"`
	Traits         TraitRecord `json:"traits"`
	Population     int         `json:"population"`
	Births         int         `json:"births"`
	Deaths         int         `json:"deaths"`
	Extinct        bool        `json:"extinct"`
}

// CellState is the serializable form of one living cell.
type CellState struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	SpeciesID int     `json:"species_id"`
	Energy    float64 `json:"energy"`
	Age       int     `json:"age"`
}

// SaveToFile writes the grid's current state to filename as indented JSON.
func (sm *StateManager) SaveToFile(filename string) error {
	state := sm.createState()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal simulation state: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write simulation state: %w", err)
	}
	return nil
}

// LoadFromFile replaces the grid's zones, species registry, and cells with
// the contents of filename. The grid's dimensions, wrap mode, and RNG
// stream are left untouched; a mismatched width/height is an
// InvalidConfigurationError.
func (sm *StateManager) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read simulation state: %w", err)
	}

	var state SimulationState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("unmarshal simulation state: %w", err)
	}
	if state.Width != sm.grid.Width || state.Height != sm.grid.Height {
		return &InvalidConfigurationError{Reason: fmt.Sprintf(
			"saved grid is %dx%d, target grid is %dx%d", state.Width, state.Height, sm.grid.Width, sm.grid.Height)}
	}

	sm.grid.restoreState(&state)
	return nil
}

func (sm *StateManager) createState() *SimulationState {
	g := sm.grid
	state := &SimulationState{
		Version:    "1.0",
		SavedAt:    time.Now(),
		Generation: g.Generation,
		Width:      g.Width,
		Height:     g.Height,
		Wrap:       g.Wrap,
	}

	for _, z := range g.Zones.Zones() {
		state.Zones = append(state.Zones, ZoneState{X: z.X, Y: z.Y, W: z.W, H: z.H, Type: z.Type.String()})
	}

	for _, s := range g.Registry.All() {
		state.Species = append(state.Species, SpeciesState{
			ID:             s.ID,
			ParentID:       s.ParentID,
			GenerationBorn: s.GenerationBorn,
			Traits:         FromTraits(s.Traits),
			Population:     s.Population,
			Births:         s.Births,
			Deaths:         s.Deaths,
			Extinct:        s.extinct,
		})
	}

	for _, c := range g.cells {
		if c == nil || !c.Alive {
			continue
		}
		state.Cells = append(state.Cells, CellState{X: c.X, Y: c.Y, SpeciesID: c.SpeciesID, Energy: c.Energy, Age: c.Age})
	}

	return state
}

// restoreState clears the grid's zones, registry, and cell array, then
// rebuilds them from state. The caller has already checked dimensions match.
func (g *Grid) restoreState(state *SimulationState) {
	g.Generation = state.Generation

	g.Zones = NewZoneManager(g.Width, g.Height)
	for _, zs := range state.Zones {
		g.Zones.Add(NewZone(zs.X, zs.Y, zs.W, zs.H, parseZoneType(zs.Type)))
	}

	g.Registry = NewRegistry()
	for _, ss := range state.Species {
		sp := g.Registry.Spawn(ss.Traits.ToTraits(), ss.ParentID, ss.GenerationBorn)
		sp.Population = ss.Population
		sp.Births = ss.Births
		sp.Deaths = ss.Deaths
		sp.extinct = ss.Extinct
	}

	g.cells = make([]*Cell, g.Width*g.Height)
	for _, cs := range state.Cells {
		sp, ok := g.Registry.Get(cs.SpeciesID)
		if !ok {
			continue
		}
		c := NewCell(cs.X, cs.Y, sp)
		c.Energy = cs.Energy
		c.Age = cs.Age
		c.clampEnergy()
		g.setCell(cs.X, cs.Y, c)
	}
}

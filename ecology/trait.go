package ecology

import "math"

// EnergySource is a species' metabolic class.
type EnergySource int

const (
	EnergySourcePhoto EnergySource = iota
	EnergySourcePredation
	EnergySourceHybrid
)

func (s EnergySource) String() string {
	switch s {
	case EnergySourcePhoto:
		return "photo"
	case EnergySourcePredation:
		return "predation"
	case EnergySourceHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

var allEnergySources = []EnergySource{EnergySourcePhoto, EnergySourcePredation, EnergySourceHybrid}

// ZoneType names the five habitat classes a zone and a species can carry.
type ZoneType int

const (
	ZoneFertile ZoneType = iota
	ZoneDesert
	ZoneToxic
	ZoneParadise
	ZoneNeutral
)

func (t ZoneType) String() string {
	switch t {
	case ZoneFertile:
		return "fertile"
	case ZoneDesert:
		return "desert"
	case ZoneToxic:
		return "toxic"
	case ZoneParadise:
		return "paradise"
	case ZoneNeutral:
		return "neutral"
	default:
		return "neutral"
	}
}

// shiftableZoneTypes are the types zone dynamics (§4.9) and native-zone
// mutation (§4.3) cycle among; neutral is reachable only as a fallback/default.
var shiftableZoneTypes = []ZoneType{ZoneFertile, ZoneDesert, ZoneToxic, ZoneParadise}

// RGB is a derived display color, never persisted independently of the
// traits that produced it.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as a "#rrggbb" string, the form lipgloss and most
// terminal color APIs expect.
func (c RGB) Hex() string {
	const hexDigits = "0123456789abcdef"
	buf := [7]byte{'#'}
	for i, v := range []uint8{c.R, c.G, c.B} {
		buf[1+i*2] = hexDigits[v>>4]
		buf[2+i*2] = hexDigits[v&0xf]
	}
	return string(buf[:])
}

// Traits is the immutable per-species descriptor. Every numeric field is
// normalized into its documented range at construction and at mutation.
type Traits struct {
	BaseEnergy                int
	EnergyDecay               int
	EnergyFromBirth           int
	PhotosynthesisRate        int
	MovementRange             int
	HuntingEfficiency         float64
	CanBeConsumed             bool
	ColonialAffinity          float64
	ClusterReproductionBonus  float64
	ReproductionThreshold     int
	MutationRate              float64
	SexualReproduction        bool
	Complexity                int
	MetabolicEfficiency       float64
	HeatTolerance             float64
	ColdTolerance             float64
	ToxinResistance           float64
	MaxLifespan               int
	AgeDeclineStart           float64
	EnergySource              EnergySource
	StarvationThreshold       int
	OptimalZoneBonus          float64
	NativeZoneType            ZoneType
	NativeZoneAffinity        float64
	Color                     RGB
}

// MaxEnergy is the derived ceiling a cell of this species is created with.
func (t Traits) MaxEnergy() float64 {
	return 2.0 * float64(t.BaseEnergy)
}

// MovementCost is always derived from complexity, never stored independently.
func (t Traits) MovementCost() int {
	return 1 + t.Complexity/2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NewTraits normalizes every numeric trait into its range, clamping
// out-of-range input. movement_cost is never read from the input; it is
// always recomputed from complexity.
func NewTraits(in Traits) Traits {
	t := in
	t.BaseEnergy = clampInt(t.BaseEnergy, 1, 200)
	t.EnergyDecay = clampInt(t.EnergyDecay, 1, 10)
	if t.EnergyFromBirth < 1 {
		t.EnergyFromBirth = 1
	}
	t.PhotosynthesisRate = clampInt(t.PhotosynthesisRate, 0, 20)
	if t.MovementRange < 0 {
		t.MovementRange = 0
	}
	t.HuntingEfficiency = clampFloat(t.HuntingEfficiency, 0, 0.8)
	t.ColonialAffinity = clampFloat(t.ColonialAffinity, 1.0, 1.5)
	t.ClusterReproductionBonus = clampFloat(t.ClusterReproductionBonus, 1.0, 2.0)
	if t.ReproductionThreshold < 1 {
		t.ReproductionThreshold = 1
	}
	t.MutationRate = clampFloat(t.MutationRate, 0, 1)
	t.Complexity = clampInt(t.Complexity, 1, 5)
	t.MetabolicEfficiency = clampFloat(t.MetabolicEfficiency, 0.5, 2.0)
	t.HeatTolerance = clampFloat(t.HeatTolerance, 0, 1)
	t.ColdTolerance = clampFloat(t.ColdTolerance, 0, 1)
	t.ToxinResistance = clampFloat(t.ToxinResistance, 0, 1)
	t.MaxLifespan = clampInt(t.MaxLifespan, 0, 1000)
	t.AgeDeclineStart = clampFloat(t.AgeDeclineStart, 0, 1)
	if t.StarvationThreshold < 0 {
		t.StarvationThreshold = 0
	}
	if t.OptimalZoneBonus < 1.0 {
		t.OptimalZoneBonus = 1.0
	}
	t.NativeZoneAffinity = clampFloat(t.NativeZoneAffinity, 1.0, 2.0)
	t.Color = deriveColor(t)
	return t
}

// deriveColor is a stable function of the trait record (§4.2). It is
// informative only: nothing in the tick pipeline reads it back.
func deriveColor(t Traits) RGB {
	var hue float64
	switch {
	case t.Complexity == 1:
		hue = 120
	case t.Complexity == 2:
		if t.PhotosynthesisRate > 5 {
			hue = 180
		} else {
			hue = 60
		}
	case t.Complexity == 3:
		hue = 30
	default: // >= 4
		hue = 0
	}

	switch t.NativeZoneType {
	case ZoneFertile:
		hue += 0
	case ZoneDesert:
		hue -= 15
	case ZoneToxic:
		hue -= 30
	case ZoneParadise:
		hue += 0
	case ZoneNeutral:
		hue += 0
	}
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}

	maxTol := t.HeatTolerance
	if t.ColdTolerance > maxTol {
		maxTol = t.ColdTolerance
	}
	if t.ToxinResistance > maxTol {
		maxTol = t.ToxinResistance
	}
	saturation := 0.4 + 0.6*maxTol

	value := clampFloat(0.5+0.3*t.MetabolicEfficiency, 0.5, 0.9)

	return hsvToRGB(hue, saturation, value)
}

// hsvToRGB converts HSV (h in degrees, s/v in [0,1]) to 8-bit RGB.
func hsvToRGB(h, s, v float64) RGB {
	c := v * s
	hp := h / 60.0
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return RGB{
		R: uint8(clampFloat((r+m)*255, 0, 255)),
		G: uint8(clampFloat((g+m)*255, 0, 255)),
		B: uint8(clampFloat((b+m)*255, 0, 255)),
	}
}

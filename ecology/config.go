package ecology

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpeciesRecord is the persisted species-replay format (§6): a name, an
// initial population, and a trait record. Older configurations may carry
// can_move, movement_strategy, and is_predator; they decode without error
// and are discarded, since movement and predation eligibility are now
// derived entirely from complexity (§9).
type SpeciesRecord struct {
	Name       string      `json:"name" yaml:"name"`
	Population int         `json:"population" yaml:"population"`
	Traits     TraitRecord `json:"traits" yaml:"traits"`

	CanMove           *bool   `json:"can_move,omitempty" yaml:"can_move,omitempty"`
	MovementStrategy  *string `json:"movement_strategy,omitempty" yaml:"movement_strategy,omitempty"`
	IsPredator        *bool   `json:"is_predator,omitempty" yaml:"is_predator,omitempty"`
}

// TraitRecord is the wire shape of Traits: snake_case field names, energy
// source and native zone type as strings, and no derived Color (recomputed
// on load).
type TraitRecord struct {
	BaseEnergy               int     `json:"base_energy" yaml:"base_energy"`
	EnergyDecay              int     `json:"energy_decay" yaml:"energy_decay"`
	EnergyFromBirth          int     `json:"energy_from_birth" yaml:"energy_from_birth"`
	PhotosynthesisRate       int     `json:"photosynthesis_rate" yaml:"photosynthesis_rate"`
	MovementRange            int     `json:"movement_range" yaml:"movement_range"`
	HuntingEfficiency        float64 `json:"hunting_efficiency" yaml:"hunting_efficiency"`
	CanBeConsumed            bool    `json:"can_be_consumed" yaml:"can_be_consumed"`
	ColonialAffinity         float64 `json:"colonial_affinity" yaml:"colonial_affinity"`
	ClusterReproductionBonus float64 `json:"cluster_reproduction_bonus" yaml:"cluster_reproduction_bonus"`
	ReproductionThreshold    int     `json:"reproduction_threshold" yaml:"reproduction_threshold"`
	MutationRate             float64 `json:"mutation_rate" yaml:"mutation_rate"`
	SexualReproduction       bool    `json:"sexual_reproduction" yaml:"sexual_reproduction"`
	Complexity               int     `json:"complexity" yaml:"complexity"`
	MetabolicEfficiency      float64 `json:"metabolic_efficiency" yaml:"metabolic_efficiency"`
	HeatTolerance            float64 `json:"heat_tolerance" yaml:"heat_tolerance"`
	ColdTolerance            float64 `json:"cold_tolerance" yaml:"cold_tolerance"`
	ToxinResistance          float64 `json:"toxin_resistance" yaml:"toxin_resistance"`
	MaxLifespan              int     `json:"max_lifespan" yaml:"max_lifespan"`
	AgeDeclineStart          float64 `json:"age_decline_start" yaml:"age_decline_start"`
	EnergySource             string  `json:"energy_source" yaml:"energy_source"`
	StarvationThreshold      int     `json:"starvation_threshold" yaml:"starvation_threshold"`
	OptimalZoneBonus         float64 `json:"optimal_zone_bonus" yaml:"optimal_zone_bonus"`
	NativeZoneType           string  `json:"native_zone_type" yaml:"native_zone_type"`
	NativeZoneAffinity       float64 `json:"native_zone_affinity" yaml:"native_zone_affinity"`
}

func parseEnergySource(s string) EnergySource {
	switch strings.ToLower(s) {
	case "predation":
		return EnergySourcePredation
	case "hybrid":
		return EnergySourceHybrid
	default:
		return EnergySourcePhoto
	}
}

func parseZoneType(s string) ZoneType {
	switch strings.ToLower(s) {
	case "desert":
		return ZoneDesert
	case "toxic":
		return ZoneToxic
	case "paradise":
		return ZoneParadise
	case "fertile":
		return ZoneFertile
	default:
		return ZoneNeutral
	}
}

// ToTraits converts a wire record into a normalized Traits value (§6, §8
// "replaying a saved trait record through construction yields
// byte-identical numeric fields after clamping").
func (r TraitRecord) ToTraits() Traits {
	return NewTraits(Traits{
		BaseEnergy:               r.BaseEnergy,
		EnergyDecay:              r.EnergyDecay,
		EnergyFromBirth:          r.EnergyFromBirth,
		PhotosynthesisRate:       r.PhotosynthesisRate,
		MovementRange:            r.MovementRange,
		HuntingEfficiency:        r.HuntingEfficiency,
		CanBeConsumed:            r.CanBeConsumed,
		ColonialAffinity:         r.ColonialAffinity,
		ClusterReproductionBonus: r.ClusterReproductionBonus,
		ReproductionThreshold:    r.ReproductionThreshold,
		MutationRate:             r.MutationRate,
		SexualReproduction:       r.SexualReproduction,
		Complexity:               r.Complexity,
		MetabolicEfficiency:      r.MetabolicEfficiency,
		HeatTolerance:            r.HeatTolerance,
		ColdTolerance:            r.ColdTolerance,
		ToxinResistance:          r.ToxinResistance,
		MaxLifespan:              r.MaxLifespan,
		AgeDeclineStart:          r.AgeDeclineStart,
		EnergySource:             parseEnergySource(r.EnergySource),
		StarvationThreshold:      r.StarvationThreshold,
		OptimalZoneBonus:         r.OptimalZoneBonus,
		NativeZoneType:           parseZoneType(r.NativeZoneType),
		NativeZoneAffinity:       r.NativeZoneAffinity,
	})
}

// FromTraits builds the wire record for a normalized Traits value.
func FromTraits(t Traits) TraitRecord {
	return TraitRecord{
		BaseEnergy:               t.BaseEnergy,
		EnergyDecay:              t.EnergyDecay,
		EnergyFromBirth:          t.EnergyFromBirth,
		PhotosynthesisRate:       t.PhotosynthesisRate,
		MovementRange:            t.MovementRange,
		HuntingEfficiency:        t.HuntingEfficiency,
		CanBeConsumed:            t.CanBeConsumed,
		ColonialAffinity:         t.ColonialAffinity,
		ClusterReproductionBonus: t.ClusterReproductionBonus,
		ReproductionThreshold:    t.ReproductionThreshold,
		MutationRate:             t.MutationRate,
		SexualReproduction:       t.SexualReproduction,
		Complexity:               t.Complexity,
		MetabolicEfficiency:      t.MetabolicEfficiency,
		HeatTolerance:            t.HeatTolerance,
		ColdTolerance:            t.ColdTolerance,
		ToxinResistance:          t.ToxinResistance,
		MaxLifespan:              t.MaxLifespan,
		AgeDeclineStart:          t.AgeDeclineStart,
		EnergySource:             t.EnergySource.String(),
		StarvationThreshold:      t.StarvationThreshold,
		OptimalZoneBonus:         t.OptimalZoneBonus,
		NativeZoneType:           t.NativeZoneType.String(),
		NativeZoneAffinity:       t.NativeZoneAffinity,
	}
}

// LoadRecords reads a species-replay file, dispatching on extension between
// JSON and YAML (§6, §10). Legacy mobility fields decode without error and
// are simply never read.
func LoadRecords(path string) ([]SpeciesRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species config: %w", err)
	}

	var records []SpeciesRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode yaml species config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode json species config: %w", err)
		}
	}
	return records, nil
}

package ecology

import "testing"

func TestNewTraitsClampsOutOfRangeFields(t *testing.T) {
	tr := NewTraits(Traits{
		BaseEnergy:            1000,
		EnergyDecay:           -5,
		HuntingEfficiency:     5.0,
		ColonialAffinity:      10,
		MutationRate:          2.0,
		Complexity:            50,
		MetabolicEfficiency:   10,
		AgeDeclineStart:       5,
		NativeZoneAffinity:    50,
		ReproductionThreshold: -3,
		EnergyFromBirth:       -1,
	})

	if tr.BaseEnergy != 200 {
		t.Errorf("BaseEnergy = %d, want 200", tr.BaseEnergy)
	}
	if tr.EnergyDecay != 1 {
		t.Errorf("EnergyDecay = %d, want 1", tr.EnergyDecay)
	}
	if tr.HuntingEfficiency != 0.8 {
		t.Errorf("HuntingEfficiency = %v, want 0.8", tr.HuntingEfficiency)
	}
	if tr.ColonialAffinity != 1.5 {
		t.Errorf("ColonialAffinity = %v, want 1.5", tr.ColonialAffinity)
	}
	if tr.MutationRate != 1.0 {
		t.Errorf("MutationRate = %v, want 1.0", tr.MutationRate)
	}
	if tr.Complexity != 5 {
		t.Errorf("Complexity = %d, want 5", tr.Complexity)
	}
	if tr.MetabolicEfficiency != 2.0 {
		t.Errorf("MetabolicEfficiency = %v, want 2.0", tr.MetabolicEfficiency)
	}
	if tr.AgeDeclineStart != 1.0 {
		t.Errorf("AgeDeclineStart = %v, want 1.0", tr.AgeDeclineStart)
	}
	if tr.NativeZoneAffinity != 2.0 {
		t.Errorf("NativeZoneAffinity = %v, want 2.0", tr.NativeZoneAffinity)
	}
	if tr.ReproductionThreshold != 1 {
		t.Errorf("ReproductionThreshold = %d, want 1", tr.ReproductionThreshold)
	}
	if tr.EnergyFromBirth != 1 {
		t.Errorf("EnergyFromBirth = %d, want 1", tr.EnergyFromBirth)
	}
}

// Replaying a saved trait record through construction yields byte-identical
// numeric fields after clamping (§8 round-trip law).
func TestTraitRecordRoundTrip(t *testing.T) {
	original := NewTraits(Traits{
		BaseEnergy:               50,
		EnergyDecay:              3,
		EnergyFromBirth:          20,
		PhotosynthesisRate:       4,
		MovementRange:            2,
		HuntingEfficiency:        0.3,
		CanBeConsumed:            true,
		ColonialAffinity:         1.2,
		ClusterReproductionBonus: 1.5,
		ReproductionThreshold:    40,
		MutationRate:             0.05,
		SexualReproduction:       true,
		Complexity:               2,
		MetabolicEfficiency:      1.0,
		HeatTolerance:            0.6,
		ColdTolerance:            0.4,
		ToxinResistance:          0.2,
		MaxLifespan:              100,
		AgeDeclineStart:          0.7,
		EnergySource:             EnergySourceHybrid,
		StarvationThreshold:      5,
		OptimalZoneBonus:         1.3,
		NativeZoneType:           ZoneDesert,
		NativeZoneAffinity:       1.4,
	})

	record := FromTraits(original)
	restored := record.ToTraits()

	if restored != original {
		t.Fatalf("round trip mismatch:\noriginal: %+v\nrestored: %+v", original, restored)
	}
}

func TestMaxEnergyAndMovementCost(t *testing.T) {
	tr := NewTraits(Traits{BaseEnergy: 40, Complexity: 3})
	if got := tr.MaxEnergy(); got != 80 {
		t.Errorf("MaxEnergy() = %v, want 80", got)
	}
	if got := tr.MovementCost(); got != 2 {
		t.Errorf("MovementCost() = %v, want 2", got)
	}
}

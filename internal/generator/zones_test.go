package generator

import (
	"testing"

	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

func TestZoneBandHoldsMaxZones(t *testing.T) {
	slot := (zoneBandEnd - zoneBandStart) / config.MaxSteepZones
	if slot < zoneMinLength+2*zoneMargin {
		t.Errorf("slot %.3f too small for %d zones", slot, config.MaxSteepZones)
	}
}

func TestSampleSteepZonesCapsCount(t *testing.T) {
	tuning := config.DefaultGeneratorConfig().Ranks[level.Black]
	tuning.SteepZones = config.IntRange{Min: 8, Max: 8}

	for seed := uint32(1); seed <= 50; seed++ {
		zones := sampleSteepZones(rng.New(seed), tuning)
		if len(zones) != config.MaxSteepZones {
			t.Fatalf("seed %d: %d zones, expected %d", seed, len(zones), config.MaxSteepZones)
		}
		for i, z := range zones {
			if z.StartY >= z.EndY || z.StartY < zoneBandStart || z.EndY > zoneBandEnd {
				t.Errorf("seed %d: zone %d out of band: %+v", seed, i, z)
			}
			if i > 0 && z.StartY <= zones[i-1].EndY {
				t.Errorf("seed %d: zone %d overlaps the previous one", seed, i)
			}
		}
	}
}

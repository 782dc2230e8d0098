package main

import (
	"testing"
)

func TestLayerAt(t *testing.T) {
	b := biomeBackyard
	tests := []struct {
		y    int
		want *Layer
	}{
		{-5, b.Layers[0]},
		{-1, b.Layers[0]},
		{0, b.Layers[0]},
		{1, b.Layers[0]},
		{19, b.Layers[0]},
		// A band starts one row below its listed depth.
		{20, b.Layers[0]},
		{21, b.Layers[1]},
		{40, b.Layers[1]},
		{41, b.Layers[2]},
		{100, b.Layers[4]},
		{101, b.Layers[5]},
		{10000, b.Layers[5]},
	}
	for _, tt := range tests {
		if got := b.LayerAt(tt.y); got != tt.want {
			t.Errorf("LayerAt(%d) = %s, want %s", tt.y, got.Dirt.Name, tt.want.Dirt.Name)
		}
	}
}

func TestBiomeByKey(t *testing.T) {
	for _, b := range allBiomes {
		got, ok := BiomeByKey(b.Key)
		if !ok || got != b {
			t.Errorf("BiomeByKey(%q) = %v, %v", b.Key, got, ok)
		}
	}
	if _, ok := BiomeByKey("atlantis"); ok {
		t.Error("BiomeByKey returned a biome for an unknown key")
	}
}

func TestBiomeCatalogInvariants(t *testing.T) {
	for _, b := range allBiomes {
		if len(b.Layers) == 0 {
			t.Fatalf("biome %s has no layers", b.Key)
		}
		if b.Layers[0].Depth != 0 {
			t.Errorf("biome %s first layer starts at depth %d", b.Key, b.Layers[0].Depth)
		}
		if b.OreHPMult <= 0 {
			t.Errorf("biome %s has non-positive ore HP multiplier", b.Key)
		}
		for i, l := range b.Layers {
			if l.Dirt == nil || l.Dirt.Type != ItemTypeDirt {
				t.Errorf("biome %s layer %d has no dirt filler", b.Key, i)
			}
			if l.Spawns == nil || l.Spawns.TotalWeight() <= 0 {
				t.Errorf("biome %s layer %d has no drawable spawns", b.Key, i)
			}
			if l.GrainDensity <= 0 {
				t.Errorf("biome %s layer %d grain density not defaulted", b.Key, i)
			}
			if i > 0 && l.Depth <= b.Layers[i-1].Depth {
				t.Errorf("biome %s layer depths not strictly increasing at %d", b.Key, i)
			}
		}
	}
}

func TestBiomeSpawnsOnlyCatalogItems(t *testing.T) {
	rng := testRand()
	for _, b := range allBiomes {
		for i, l := range b.Layers {
			for trial := 0; trial < 200; trial++ {
				item := l.Spawns.Choice(rng)
				if item == nil {
					continue // coin spawn
				}
				if _, ok := ItemByKey(item.Key); !ok {
					t.Fatalf("biome %s layer %d spawns %q which is not in the catalog", b.Key, i, item.Key)
				}
				if item.Type == ItemTypeDirt {
					t.Fatalf("biome %s layer %d spawns dirt as a find", b.Key, i)
				}
			}
		}
	}
}

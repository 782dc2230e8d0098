package main

import (
	"image/color"
	"sort"
)

// Layer is one depth band of a biome: which dirt fills it, how that dirt is
// textured, and what spawns in it. A nil outcome in Spawns means the cell
// holds coins instead of an item.
type Layer struct {
	Depth        int
	Dirt         *Item
	DirtColor    color.RGBA
	GrainColors  *WeightedTable[color.RGBA]
	GrainDensity int
	Spawns       *WeightedTable[*Item]
}

// UnlockRequirements gates a biome behind level, prestige and a one-time
// purchase price.
type UnlockRequirements struct {
	Level    int
	Prestige int
	Price    int
}

// Biome is an ordered stack of layers plus unlock metadata. EntryPrice is
// charged on every session start, not once.
type Biome struct {
	Key         string
	Name        string
	Description string
	Unlock      UnlockRequirements
	EntryPrice  int
	Layers      []*Layer
	OreHPMult   float64

	depths []int
}

// LayerAt resolves the active layer for a grid row. Rows above 1 always map
// to the first layer; a layer's band starts one row below its listed depth,
// so depth 20 still resolves to the layer above it.
func (b *Biome) LayerAt(y int) *Layer {
	if y < 1 {
		return b.Layers[0]
	}
	i := sort.SearchInts(b.depths, y)
	return b.Layers[i-1]
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func grains(colors ...color.RGBA) *WeightedTable[color.RGBA] {
	entries := make([]WeightedEntry[color.RGBA], len(colors))
	for i, c := range colors {
		entries[i] = WeightedEntry[color.RGBA]{c, 1}
	}
	return NewWeightedTable(entries...)
}

func spawn(item *Item, weight float64) WeightedEntry[*Item] {
	return WeightedEntry[*Item]{item, weight}
}

var biomeBackyard = &Biome{
	Key:         "backyard",
	Name:        "Backyard",
	Description: "A familiar place, which you can return to every time",
	OreHPMult:   1.0,
	Layers: []*Layer{
		{
			Depth:       0,
			Dirt:        itemDirt,
			DirtColor:   rgb(139, 93, 43),
			GrainColors: grains(rgb(88, 53, 16)),
			Spawns: NewWeightedTable(
				spawn(nil, 2),
				spawn(itemWorm, 0.25),
				spawn(itemGummyWorm, 0.08),
				spawn(itemEarthworm, 0.03),
				spawn(itemHookWorm, 0.0075),
				spawn(itemPolyWorm, 0.0025),
				spawn(itemAncientRelic, 0.00005),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.17),
				spawn(itemSilver, 0.075),
				spawn(itemGold, 0.015),
				spawn(itemObsidian, 0.005),
				spawn(itemEmerald, 0.0015),
				spawn(itemDiamond, 0.0003),
			),
		},
		{
			Depth:       20,
			Dirt:        itemClay,
			DirtColor:   rgb(149, 124, 107),
			GrainColors: grains(rgb(115, 91, 75)),
			Spawns: NewWeightedTable(
				spawn(nil, 1.8),
				spawn(itemWorm, 0.3),
				spawn(itemGummyWorm, 0.2),
				spawn(itemEarthworm, 0.07),
				spawn(itemHookWorm, 0.02),
				spawn(itemPolyWorm, 0.007),
				spawn(itemAncientRelic, 0.0001),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.25),
				spawn(itemSilver, 0.1),
				spawn(itemGold, 0.03),
				spawn(itemObsidian, 0.0075),
				spawn(itemEmerald, 0.003),
				spawn(itemDiamond, 0.00075),
			),
		},
		{
			Depth:       40,
			Dirt:        itemGravel,
			DirtColor:   rgb(149, 124, 107),
			GrainColors: grains(rgb(88, 38, 38), rgb(62, 59, 59), rgb(173, 182, 184)),
			Spawns: NewWeightedTable(
				spawn(nil, 1.5),
				spawn(itemWorm, 0.4),
				spawn(itemGummyWorm, 0.3),
				spawn(itemEarthworm, 0.15),
				spawn(itemHookWorm, 0.05),
				spawn(itemPolyWorm, 0.02),
				spawn(itemAncientRelic, 0.0004),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.3),
				spawn(itemSilver, 0.15),
				spawn(itemGold, 0.05),
				spawn(itemObsidian, 0.015),
				spawn(itemEmerald, 0.0075),
				spawn(itemDiamond, 0.002),
			),
		},
		{
			Depth:       60,
			Dirt:        itemLimestone,
			DirtColor:   rgb(229, 205, 177),
			GrainColors: grains(rgb(194, 166, 126), rgb(208, 179, 143)),
			Spawns: NewWeightedTable(
				spawn(nil, 1.2),
				spawn(itemWorm, 0.3),
				spawn(itemGummyWorm, 0.3),
				spawn(itemEarthworm, 0.25),
				spawn(itemHookWorm, 0.08),
				spawn(itemPolyWorm, 0.04),
				spawn(itemAncientRelic, 0.001),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.4),
				spawn(itemSilver, 0.25),
				spawn(itemGold, 0.15),
				spawn(itemObsidian, 0.03),
				spawn(itemEmerald, 0.015),
				spawn(itemDiamond, 0.005),
			),
		},
		{
			Depth:        80,
			Dirt:         itemGranite,
			DirtColor:    rgb(161, 142, 126),
			GrainColors:  grains(rgb(114, 98, 84)),
			GrainDensity: 10,
			Spawns: NewWeightedTable(
				spawn(nil, 1.0),
				spawn(itemWorm, 0.3),
				spawn(itemGummyWorm, 0.3),
				spawn(itemEarthworm, 0.3),
				spawn(itemHookWorm, 0.10),
				spawn(itemPolyWorm, 0.06),
				spawn(itemAncientRelic, 0.003),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.5),
				spawn(itemSilver, 0.4),
				spawn(itemGold, 0.3),
				spawn(itemObsidian, 0.1),
				spawn(itemEmerald, 0.04),
				spawn(itemDiamond, 0.02),
			),
		},
		{
			Depth:        100,
			Dirt:         itemMagma,
			DirtColor:    rgb(102, 65, 47),
			GrainColors:  grains(rgb(255, 95, 35)),
			GrainDensity: 12,
			Spawns: NewWeightedTable(
				spawn(nil, 0.8),
				spawn(itemWorm, 0.3),
				spawn(itemGummyWorm, 0.3),
				spawn(itemEarthworm, 0.3),
				spawn(itemHookWorm, 0.2),
				spawn(itemPolyWorm, 0.1),
				spawn(itemAncientRelic, 0.006),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.5),
				spawn(itemSilver, 0.4),
				spawn(itemGold, 0.4),
				spawn(itemObsidian, 0.4),
				spawn(itemEmerald, 0.1),
				spawn(itemDiamond, 0.05),
			),
		},
	},
}

var biomeDesert = &Biome{
	Key:         "desert",
	Name:        "Desert",
	Description: "Hot and dry but full of treasures",
	Unlock:      UnlockRequirements{Level: 10, Price: 500000},
	EntryPrice:  1000,
	OreHPMult:   3.0,
	Layers: []*Layer{
		{
			Depth:       0,
			Dirt:        itemSand,
			DirtColor:   rgb(237, 201, 175),
			GrainColors: grains(rgb(196, 164, 132)),
			Spawns: NewWeightedTable(
				spawn(nil, 2),
				spawn(itemDustMite, 0.25),
				spawn(itemCactusWorm, 0.08),
				spawn(itemCricket, 0.03),
				spawn(itemBeetle, 0.0075),
				spawn(itemFossil, 0.0025),
				spawn(itemAncientRelic, 0.00005),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.17),
				spawn(itemSilver, 0.075),
				spawn(itemGold, 0.015),
				spawn(itemObsidian, 0.005),
				spawn(itemEmerald, 0.0015),
				spawn(itemDiamond, 0.0003),
			),
		},
		{
			Depth:       20,
			Dirt:        itemSandClay,
			DirtColor:   rgb(190, 155, 120),
			GrainColors: grains(rgb(152, 118, 84)),
			Spawns: NewWeightedTable(
				spawn(nil, 1.8),
				spawn(itemDustMite, 0.3),
				spawn(itemCactusWorm, 0.2),
				spawn(itemCricket, 0.07),
				spawn(itemBeetle, 0.02),
				spawn(itemFossil, 0.007),
				spawn(itemAncientRelic, 0.0001),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.25),
				spawn(itemSilver, 0.1),
				spawn(itemGold, 0.03),
				spawn(itemObsidian, 0.0075),
				spawn(itemEmerald, 0.003),
				spawn(itemDiamond, 0.00075),
			),
		},
		{
			Depth:       40,
			Dirt:        itemSandstone,
			DirtColor:   rgb(216, 184, 140),
			GrainColors: grains(rgb(188, 152, 106), rgb(160, 128, 86)),
			Spawns: NewWeightedTable(
				spawn(nil, 1.5),
				spawn(itemDustMite, 0.4),
				spawn(itemCactusWorm, 0.3),
				spawn(itemCricket, 0.15),
				spawn(itemBeetle, 0.05),
				spawn(itemFossil, 0.02),
				spawn(itemAncientRelic, 0.0004),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.3),
				spawn(itemSilver, 0.15),
				spawn(itemGold, 0.05),
				spawn(itemObsidian, 0.015),
				spawn(itemEmerald, 0.0075),
				spawn(itemDiamond, 0.002),
			),
		},
		{
			Depth:       60,
			Dirt:        itemFossilRock,
			DirtColor:   rgb(198, 186, 166),
			GrainColors: grains(rgb(150, 138, 118), rgb(120, 108, 92)),
			Spawns: NewWeightedTable(
				spawn(nil, 1.2),
				spawn(itemDustMite, 0.3),
				spawn(itemCactusWorm, 0.3),
				spawn(itemCricket, 0.25),
				spawn(itemBeetle, 0.08),
				spawn(itemFossil, 0.04),
				spawn(itemAncientRelic, 0.001),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.4),
				spawn(itemSilver, 0.25),
				spawn(itemGold, 0.15),
				spawn(itemObsidian, 0.03),
				spawn(itemEmerald, 0.015),
				spawn(itemDiamond, 0.005),
			),
		},
		{
			Depth:        80,
			Dirt:         itemQuartzite,
			DirtColor:    rgb(225, 218, 210),
			GrainColors:  grains(rgb(192, 184, 174), rgb(255, 250, 245)),
			GrainDensity: 10,
			Spawns: NewWeightedTable(
				spawn(nil, 1.0),
				spawn(itemDustMite, 0.3),
				spawn(itemCactusWorm, 0.3),
				spawn(itemCricket, 0.3),
				spawn(itemBeetle, 0.10),
				spawn(itemFossil, 0.06),
				spawn(itemAncientRelic, 0.003),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.5),
				spawn(itemSilver, 0.4),
				spawn(itemGold, 0.3),
				spawn(itemObsidian, 0.1),
				spawn(itemEmerald, 0.04),
				spawn(itemDiamond, 0.02),
			),
		},
		{
			Depth:        100,
			Dirt:         itemSunstone,
			DirtColor:    rgb(236, 174, 92),
			GrainColors:  grains(rgb(255, 210, 120), rgb(252, 150, 56)),
			GrainDensity: 12,
			Spawns: NewWeightedTable(
				spawn(nil, 0.8),
				spawn(itemDustMite, 0.3),
				spawn(itemCactusWorm, 0.3),
				spawn(itemCricket, 0.3),
				spawn(itemBeetle, 0.2),
				spawn(itemFossil, 0.1),
				spawn(itemAncientRelic, 0.006),
				spawn(itemIron, 0.5),
				spawn(itemCopper, 0.5),
				spawn(itemSilver, 0.4),
				spawn(itemGold, 0.4),
				spawn(itemObsidian, 0.4),
				spawn(itemEmerald, 0.1),
				spawn(itemDiamond, 0.05),
			),
		},
	},
}

var allBiomes = []*Biome{biomeBackyard, biomeDesert}

func BiomeByKey(key string) (*Biome, bool) {
	for _, b := range allBiomes {
		if b.Key == key {
			return b, true
		}
	}
	return nil, false
}

func init() {
	for _, b := range allBiomes {
		if b.Layers[0].Depth != 0 {
			panic("biome " + b.Key + ": first layer must start at depth 0")
		}
		for _, l := range b.Layers {
			if l.GrainDensity == 0 {
				l.GrainDensity = 7
			}
			b.depths = append(b.depths, l.Depth)
		}
		if !sort.IntsAreSorted(b.depths) {
			panic("biome " + b.Key + ": layers must be sorted by depth")
		}
	}
}

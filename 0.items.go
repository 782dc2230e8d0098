package main

// Static item catalog for the digging economy. Items are immutable shared
// descriptors; everything references them by pointer and nothing copies or
// mutates them after init.

// ItemType classifies an item for tool selection, inventory grouping and
// shop/sell filtering.
type ItemType int

const (
	ItemTypeDirt ItemType = iota
	ItemTypeOre
	ItemTypeWorm
	ItemTypeMisc
	ItemTypeCollectible
	ItemTypeShovel
	ItemTypePickaxe
	ItemTypePowerUp
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeDirt:
		return "Dirt"
	case ItemTypeOre:
		return "Ore"
	case ItemTypeWorm:
		return "Worm"
	case ItemTypeMisc:
		return "Miscellaneous"
	case ItemTypeCollectible:
		return "Collectible"
	case ItemTypeShovel:
		return "Shovel"
	case ItemTypePickaxe:
		return "Pickaxe"
	case ItemTypePowerUp:
		return "Power-up"
	default:
		return "Unknown"
	}
}

type ItemRarity int

const (
	RarityCommon ItemRarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

func (r ItemRarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	case RarityMythic:
		return "Mythic"
	default:
		return "Unknown"
	}
}

// Item is an immutable item descriptor. HP is digging resistance for cell
// occupants, Strength is tool power for shovels/pickaxes, Volume is backpack
// space (defaulted to 1 in init), Price 0 means not buyable.
type Item struct {
	Key         string
	Name        string
	Emoji       string
	Description string
	Type        ItemType
	Rarity      ItemRarity
	HP          float64
	Volume      int
	Sell        int
	Price       int
	Strength    int
}

func (i *Item) Display() string {
	return i.Emoji + " " + i.Name
}

func (i *Item) IsOre() bool {
	return i.Type == ItemTypeOre
}

// Sellable reports whether /sell accepts the item. Tools and power-ups can
// be sold too as long as they carry a sell value.
func (i *Item) Sellable() bool {
	return i.Sell > 0
}

// Currency and stat emojis shared across the UI.
const (
	emojiCoin    = "<:c:1379658457413845003>"
	emojiBolt    = "<:b:1379658454406398054>"
	emojiMaxBolt = "<:z:1379658666265022565>"
	emojiHP      = "<:h:1379658483363741706>"
	emojiArrow   = "<:a:1379658452774949008>"
)

// ===========================
// Backyard dirt tiers
// ===========================

var (
	itemDirt = &Item{
		Key: "dirt", Name: "Dirt", Emoji: "<:dirt:1379661084776071288>",
		Type: ItemTypeDirt, HP: 1, Sell: 10,
		Description: "Some plain old dirt. It has to be worth something in bulk.",
	}
	itemClay = &Item{
		Key: "clay", Name: "Clay", Emoji: "<:clay:1375921854589702257>",
		Type: ItemTypeDirt, HP: 3, Sell: 20,
		Description: "Dense malleable earth found a little deeper than dirt.",
	}
	itemGravel = &Item{
		Key: "gravel", Name: "Gravel", Emoji: "<:gravel:1375928383984373800>",
		Type: ItemTypeDirt, Rarity: RarityUncommon, HP: 5, Sell: 30,
		Description: "Loose rock fragments. Tougher to get through than it looks.",
	}
	itemLimestone = &Item{
		Key: "limestone", Name: "Limestone", Emoji: "<:limestone:1376340511597527090>",
		Type: ItemTypeDirt, Rarity: RarityUncommon, HP: 8, Sell: 40,
		Description: "Sedimentary rock from deep underground.",
	}
	itemGranite = &Item{
		Key: "granite", Name: "Granite", Emoji: "<:granite:1376340486817845248>",
		Type: ItemTypeDirt, Rarity: RarityRare, HP: 12, Sell: 50,
		Description: "Hard igneous rock. Bring a good shovel.",
	}
	itemMagma = &Item{
		Key: "magma", Name: "Magma", Emoji: "<:magma:1376344509570355200>",
		Type: ItemTypeDirt, Rarity: RarityEpic, HP: 20, Sell: 100,
		Description: "Molten rock from the deepest reaches of the backyard.",
	}
)

// ===========================
// Desert dirt tiers
// ===========================

var (
	itemSand = &Item{
		Key: "sand", Name: "Sand", Emoji: "<:sand:1379633068670714007>",
		Type: ItemTypeDirt, HP: 10, Sell: 20,
		Description: "Coarse desert sand. It gets everywhere.",
	}
	itemSandClay = &Item{
		Key: "sand_clay", Name: "Sand Clay", Emoji: "<:sand_clay:1379633089654948010>",
		Type: ItemTypeDirt, HP: 20, Sell: 40,
		Description: "Compacted sandy clay beneath the dunes.",
	}
	itemSandstone = &Item{
		Key: "sandstone", Name: "Sandstone", Emoji: "<:sandstone:1379633106419712071>",
		Type: ItemTypeDirt, Rarity: RarityUncommon, HP: 30, Sell: 60,
		Description: "Layered rock pressed from ancient sand.",
	}
	itemFossilRock = &Item{
		Key: "fossil_rock", Name: "Fossil Rock", Emoji: "<:fossil_rock:1379633583865598012>",
		Type: ItemTypeDirt, Rarity: RarityRare, HP: 40, Sell: 150,
		Description: "Rock veined with fragments of ancient life.",
	}
	itemQuartzite = &Item{
		Key: "quartzite", Name: "Quartzite", Emoji: "<:quartzite:1379634317608620152>",
		Type: ItemTypeDirt, Rarity: RarityEpic, HP: 50, Sell: 300,
		Description: "Extremely hard metamorphic rock.",
	}
	itemSunstone = &Item{
		Key: "sunstone", Name: "Sunstone", Emoji: "<:sunstone:1379634338945306734>",
		Type: ItemTypeDirt, Rarity: RarityLegendary, HP: 75, Sell: 500,
		Description: "Glowing stone found only at the desert's deepest layer.",
	}
)

// ===========================
// Worms and critters
// ===========================

var (
	itemWorm = &Item{
		Key: "worm", Name: "Worm", Emoji: "<:worm:1379661232021180617>",
		Type: ItemTypeWorm, HP: 3, Sell: 100,
		Description: "The least exciting thing you can dig up. Fish like them.",
	}
	itemGummyWorm = &Item{
		Key: "gummy_worm", Name: "Gummy Worm", Emoji: "<:gummy_worm:1379661125817470996>",
		Type: ItemTypeWorm, HP: 5, Volume: 2, Sell: 250,
		Description: "A worm, but chewy and sweet. Do not ask how it got down there.",
	}
	itemEarthworm = &Item{
		Key: "earthworm", Name: "Earthworm", Emoji: "<:earthworm:1379661094674497707>",
		Type: ItemTypeWorm, HP: 10, Volume: 2, Sell: 500,
		Description: "A big healthy earthworm. Premium bait.",
	}
	itemHookWorm = &Item{
		Key: "hook_worm", Name: "Hook Worm", Emoji: "<:hook_worm:1379661129051144314>",
		Type: ItemTypeWorm, Rarity: RarityUncommon, HP: 15, Volume: 2, Sell: 1000,
		Description: "A worm with a natural hook shape. Anglers pay well for these.",
	}
	itemPolyWorm = &Item{
		Key: "poly_worm", Name: "Poly Worm", Emoji: "<:poly_worm:1379661170826285076>",
		Type: ItemTypeWorm, Rarity: RarityRare, HP: 20, Volume: 2, Sell: 1500,
		Description: "A segmented worm with too many heads to count.",
	}
	itemDustMite = &Item{
		Key: "dust_mite", Name: "Dust Mite", Emoji: "<:dust_mite:1384399956772786256>",
		Type: ItemTypeMisc, HP: 7, Sell: 200,
		Description: "A tiny creature that lives in dust. Who wants these anyway?",
	}
	itemCactusWorm = &Item{
		Key: "cactus_worm", Name: "Cactus Worm", Emoji: "<:cactus_worm:1384396033034948658>",
		Type: ItemTypeWorm, HP: 20, Sell: 400,
		Description: "A spiny worm adapted to desert life.",
	}
	itemCricket = &Item{
		Key: "cricket", Name: "Cricket", Emoji: "<:cricket:1384398130275029066>",
		Type: ItemTypeMisc, Rarity: RarityUncommon, HP: 30, Sell: 600,
		Description: "Chirps even while buried. Impressive, honestly.",
	}
	itemBeetle = &Item{
		Key: "beetle", Name: "Beetle", Emoji: "<:beetle:1384398654093135973>",
		Type: ItemTypeMisc, Rarity: RarityUncommon, HP: 36, Sell: 800,
		Description: "An armored desert beetle with an iridescent shell.",
	}
	itemFossil = &Item{
		Key: "fossil", Name: "Fossil", Emoji: "<:fossil:1384398142979702794>",
		Type: ItemTypeCollectible, Rarity: RarityEpic, HP: 54, Sell: 5000,
		Description: "The preserved remains of something very old and very dead.",
	}
	itemAncientRelic = &Item{
		Key: "ancient_relic", Name: "Ancient Relic", Emoji: "<:ancient_relic:1379661018153881742>",
		Type: ItemTypeCollectible, Rarity: RarityMythic, HP: 30, Volume: 3, Sell: 25000,
		Description: "An extremely rare artifact buried long before the backyard existed.",
	}
)

// ===========================
// Ores
// ===========================

var (
	itemIron = &Item{
		Key: "iron", Name: "Iron", Emoji: "<:iron:1379661131315937300>",
		Type: ItemTypeOre, HP: 2, Sell: 60,
		Description: "Common ore. Needs a pickaxe like everything metal down there.",
	}
	itemCopper = &Item{
		Key: "copper", Name: "Copper", Emoji: "<:copper:1379661056250740898>",
		Type: ItemTypeOre, HP: 4, Sell: 200,
		Description: "Conductive ore with a warm shine.",
	}
	itemSilver = &Item{
		Key: "silver", Name: "Silver", Emoji: "<:silver:1379661195879120907>",
		Type: ItemTypeOre, Rarity: RarityUncommon, HP: 6, Sell: 400,
		Description: "Precious ore that keeps its luster underground.",
	}
	itemGold = &Item{
		Key: "gold", Name: "Gold", Emoji: "<:gold:1379661116476493918>",
		Type: ItemTypeOre, Rarity: RarityRare, HP: 8, Sell: 900,
		Description: "There is gold in that there yard.",
	}
	itemObsidian = &Item{
		Key: "obsidian", Name: "Obsidian", Emoji: "<:obsidian:1379661155320205312>",
		Type: ItemTypeOre, Rarity: RarityRare, HP: 10, Volume: 2, Sell: 1250,
		Description: "Volcanic glass, sharp enough to shave with.",
	}
	itemEmerald = &Item{
		Key: "emerald", Name: "Emerald", Emoji: "<:emerald:1379661100370628662>",
		Type: ItemTypeOre, Rarity: RarityEpic, HP: 12, Volume: 2, Sell: 2000,
		Description: "A deep green gem prized by collectors.",
	}
	itemDiamond = &Item{
		Key: "diamond", Name: "Diamond", Emoji: "<:diamond:1379661076890648598>",
		Type: ItemTypeOre, Rarity: RarityLegendary, HP: 20, Volume: 3, Sell: 5000,
		Description: "The hardest thing in the ground and the best thing to find in it.",
	}
)

// ===========================
// Tools and power-ups
// ===========================

var (
	itemShovel = &Item{
		Key: "shovel", Name: "Shovel", Emoji: "<:shovel:1376356818258759751>",
		Type: ItemTypeShovel, Price: 10000, Strength: 2,
		Description: "A standard shovel. Digs twice as fast as your bare hands.",
	}
	itemDurableShovel = &Item{
		Key: "durable_shovel", Name: "Durable Shovel", Emoji: "<:durable_shovel:1376356847052914758>",
		Type: ItemTypeShovel, Rarity: RarityRare, Sell: 30000, Strength: 3,
		Description: "A shovel reinforced with sturdier materials.",
	}
	itemGoldenShovel = &Item{
		Key: "golden_shovel", Name: "Golden Shovel", Emoji: "<:golden_shovel:1376356874244587540>",
		Type: ItemTypeShovel, Rarity: RarityEpic, Sell: 100000, Strength: 5,
		Description: "A shiny, all-powerful golden shovel.",
	}
	itemDiamondShovel = &Item{
		Key: "diamond_shovel", Name: "Diamond Shovel", Emoji: "<:diamond_shovel:1376356892774760508>",
		Type: ItemTypeShovel, Rarity: RarityLegendary, Sell: 250000, Strength: 7,
		Description: "Cut from the finest diamond. Exceptionally strong.",
	}
	itemPlasmaShovel = &Item{
		Key: "plasma_shovel", Name: "Plasma Shovel", Emoji: "<:plasma_shovel:1376356902425989160>",
		Type: ItemTypeShovel, Rarity: RarityMythic, Sell: 750000, Strength: 10,
		Description: "A shovel energized with plasma. Who knows where these come from?",
	}
	itemPickaxe = &Item{
		Key: "pickaxe", Name: "Pickaxe", Emoji: "<:pickaxe:1379661165449183442>",
		Type: ItemTypePickaxe, Price: 10000, Strength: 1,
		Description: "A basic pickaxe. Required to mine any ore at all.",
	}
	itemDurablePickaxe = &Item{
		Key: "durable_pickaxe", Name: "Durable Pickaxe", Emoji: "<:durable_pickaxe:1379661092715761697>",
		Type: ItemTypePickaxe, Rarity: RarityRare, Sell: 30000, Strength: 3,
		Description: "A reinforced pickaxe that makes short work of soft ores.",
	}
	itemDiamondPickaxe = &Item{
		Key: "diamond_pickaxe", Name: "Diamond Pickaxe", Emoji: "<:diamond_pickaxe:1379661081273700402>",
		Type: ItemTypePickaxe, Rarity: RarityLegendary, Sell: 200000, Strength: 5,
		Description: "A pickaxe of pure diamond. Ores barely slow it down.",
	}
	itemRailgun = &Item{
		Key: "railgun", Name: "Railgun", Emoji: "<:railgun:1376071981719359518>",
		Type: ItemTypePowerUp, Rarity: RarityRare, Price: 50000,
		Description: "Blasts a hole straight down once an hour. Permanent once bought.",
	}
	itemDynamite = &Item{
		Key: "dynamite", Name: "Dynamite", Emoji: "<:dynamite:1377482796255154246>",
		Type: ItemTypePowerUp, Rarity: RarityUncommon, Sell: 5000,
		Description: "Blows up everything around you. Single use, handle with care.",
	}
)

// Tool lists ordered best first; the best owned tool is used automatically.
var (
	shovelsBestFirst  = []*Item{itemPlasmaShovel, itemDiamondShovel, itemGoldenShovel, itemDurableShovel, itemShovel}
	pickaxesBestFirst = []*Item{itemDiamondPickaxe, itemDurablePickaxe, itemPickaxe}
)

var allItems = []*Item{
	itemDirt, itemClay, itemGravel, itemLimestone, itemGranite, itemMagma,
	itemSand, itemSandClay, itemSandstone, itemFossilRock, itemQuartzite, itemSunstone,
	itemWorm, itemGummyWorm, itemEarthworm, itemHookWorm, itemPolyWorm,
	itemDustMite, itemCactusWorm, itemCricket, itemBeetle, itemFossil, itemAncientRelic,
	itemIron, itemCopper, itemSilver, itemGold, itemObsidian, itemEmerald, itemDiamond,
	itemShovel, itemDurableShovel, itemGoldenShovel, itemDiamondShovel, itemPlasmaShovel,
	itemPickaxe, itemDurablePickaxe, itemDiamondPickaxe,
	itemRailgun, itemDynamite,
}

var itemsByKey = map[string]*Item{}

// shopItems is every directly buyable item, cheap first.
var shopItems []*Item

func init() {
	for _, it := range allItems {
		if it.Volume == 0 {
			it.Volume = 1
		}
		itemsByKey[it.Key] = it
	}
	for _, it := range allItems {
		if it.Price > 0 {
			shopItems = append(shopItems, it)
		}
	}
}

// ItemByKey resolves a catalog item from its persistent key.
func ItemByKey(key string) (*Item, bool) {
	it, ok := itemsByKey[key]
	return it, ok
}

// ===========================
// Backpacks
// ===========================

// Backpack bounds the total item volume a digging session can carry.
type Backpack struct {
	Key         string
	Name        string
	Emoji       string
	Description string
	Capacity    int
	Price       int
}

func (b *Backpack) Display() string {
	return b.Emoji + " " + b.Name
}

var (
	backpackStandard = &Backpack{
		Key: "standard_backpack", Name: "Standard Backpack", Emoji: "<:standard_backpack:1375671517039558706>",
		Capacity: 50, Description: "A standard backpack, good for most things.",
	}
	backpackSuitcase = &Backpack{
		Key: "suitcase", Name: "Suitcase", Emoji: "<:suitcase:1375671685914562560>",
		Capacity: 100, Price: 100000, Description: "The standard glossy blue suitcase.",
	}
	backpackDuffelBag = &Backpack{
		Key: "duffel_bag", Name: "Duffel Bag", Emoji: "<:duffel_bag:1375674850248757388>",
		Capacity: 200, Price: 500000, Description: "A reinforced duffel bag designed for large capacities.",
	}
)

// backpacksByTier is ordered worst to best; buying an upgrade equips it.
var backpacksByTier = []*Backpack{backpackStandard, backpackSuitcase, backpackDuffelBag}

func BackpackByKey(key string) *Backpack {
	for _, b := range backpacksByTier {
		if b.Key == key {
			return b
		}
	}
	return backpackStandard
}

// ===========================
// Pets
// ===========================

// Pet descriptors only carry what digging needs: each owned pet contributes
// level-scaled session modifiers in prepare.
type Pet struct {
	Key         string
	Name        string
	Emoji       string
	Rarity      ItemRarity
	Description string

	// Per-level session bonuses, all zero when the pet does not affect
	// digging at all.
	CoinMultBase  float64
	CoinMultLevel float64
	HPMultBase    float64
	HPMultLevel   float64
	StaminaBase   int
	StaminaLevel  int
}

func (p *Pet) Display() string {
	return p.Emoji + " " + p.Name
}

var (
	petHamster = &Pet{
		Key: "hamster", Name: "Hamster", Emoji: "\U0001f439",
		Description:  "A small rodent that is often kept as a pet.",
		CoinMultBase: 0.02, CoinMultLevel: 0.002,
	}
	petArmadillo = &Pet{
		Key: "armadillo", Name: "Armadillo", Emoji: "<:armadillo:1376727000873566228>", Rarity: RarityRare,
		Description: "Boasts a tough and sturdy shell, making it a formidable defender.",
		StaminaBase: 1, StaminaLevel: 1,
	}
	petJaguar = &Pet{
		Key: "jaguar", Name: "Jaguar", Emoji: "<:jaguar:1376727015591510067>", Rarity: RarityEpic,
		Description: "A fierce jungle predator that strikes swiftly and efficiently.",
		HPMultBase:  0.05, HPMultLevel: 0.01,
	}
	petTiger = &Pet{
		Key: "tiger", Name: "Tiger", Emoji: "<:tiger:1376727023820472330>", Rarity: RarityLegendary,
		Description: "Majestic and powerful, the tiger is a symbol of dominance and strength.",
		HPMultBase:  0.1, HPMultLevel: 0.02,
		StaminaBase: 2, StaminaLevel: 2,
	}
)

var allPets = []*Pet{petHamster, petArmadillo, petJaguar, petTiger}

func PetByKey(key string) (*Pet, bool) {
	for _, p := range allPets {
		if p.Key == key {
			return p, true
		}
	}
	return nil, false
}

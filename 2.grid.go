package main

import (
	"hash/maphash"
	"math"
	"math/rand/v2"
)

// Digging grid geometry and render-window constants. The image is a square
// window of gridWidth cells; the camera keeps the player's row at digYOffset
// pixels from the top.
const (
	digGridWidth    = 9
	digCellWidth    = 48
	digImageWidth   = digGridWidth * digCellWidth
	digImageHeight  = digImageWidth
	digGrainWidth   = digCellWidth / 16
	digYOffset      = digImageHeight/2 - digCellWidth/2
	digOverlayWidth = digCellWidth * 8 / 10
	digOverlayPad   = (digCellWidth - digOverlayWidth) / 2
	digBGOffset     = digCellWidth / 2
	digVisibility   = 2
	digDirtVariants = 8
)

// digSpawnCounts weights how many non-dirt spawns a generated row gets.
var digSpawnCounts = NewWeightedTable(
	WeightedEntry[int]{0, 4},
	WeightedEntry[int]{1, 6},
	WeightedEntry[int]{2, 4},
	WeightedEntry[int]{3, 2},
	WeightedEntry[int]{4, 1},
)

// digColumns is a uniform table over column indices, sampled without
// replacement to pick distinct spawn positions.
var digColumns = func() *WeightedTable[int] {
	entries := make([]WeightedEntry[int], digGridWidth)
	for i := range entries {
		entries[i] = WeightedEntry[int]{i, 1}
	}
	return NewWeightedTable(entries...)
}()

func newSessionRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Cell is one tile of earth. Plain dirt carries the layer's dirt item; coin
// cells carry no item and zero HP, so stepping through them is free. A
// collected cell is a nil slot in the grid, never a zero-HP Cell.
type Cell struct {
	Coins     int
	Item      *Item
	DirtIndex int
	HP        float64
}

type digTarget int

const (
	targetDown digTarget = iota
	targetLeft
	targetRight
)

// ItemCounts is a counter over items that remembers first-collection order,
// so summaries list items in the order they were found.
type ItemCounts struct {
	counts map[*Item]int
	order  []*Item
}

func NewItemCounts() *ItemCounts {
	return &ItemCounts{counts: map[*Item]int{}}
}

func (c *ItemCounts) Add(item *Item, n int) {
	if _, seen := c.counts[item]; !seen {
		c.order = append(c.order, item)
	}
	c.counts[item] += n
}

func (c *ItemCounts) Get(item *Item) int {
	return c.counts[item]
}

// Items returns collected items in first-collection order.
func (c *ItemCounts) Items() []*Item {
	return c.order
}

func (c *ItemCounts) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

func (c *ItemCounts) Empty() bool {
	return len(c.counts) == 0
}

// DigModifiers carries the player-derived state a session is created with.
// All of it is read-only for the session's lifetime.
type DigModifiers struct {
	CoinMultiplier float64
	HPMultiplier   float64
	MaxStamina     int
	Shovel         *Item
	Pickaxe        *Item
	Backpack       *Backpack
}

// DigResult reports one dig action. Collected payloads are folded into the
// session totals; the UI re-renders from those.
type DigResult struct {
	HPDealt float64
	Broke   bool
}

// DigSession owns one player's grid and descent. Access is serialized by the
// owning feature; the session itself takes no locks.
type DigSession struct {
	biome *Biome
	rng   *rand.Rand

	grid     [][]*Cell
	x, y     int // y is -1 while still at the surface
	target   digTarget
	explored map[[2]int]struct{}

	coinMultiplier float64
	hpMultiplier   float64
	maxStamina     int
	stamina        int
	shovel         *Item
	pickaxe        *Item
	backpack       *Backpack

	collectedCoins int
	collectedItems *ItemCounts

	xpEarned        int
	bankSpaceEarned int
	hpDealt         float64
}

// NewDigSession builds a session at the surface with the initial visible rows
// generated. Zero-valued modifiers fall back to an unmodified bare session.
func NewDigSession(biome *Biome, mods DigModifiers, rng *rand.Rand) *DigSession {
	if rng == nil {
		rng = newSessionRand()
	}
	if mods.CoinMultiplier == 0 {
		mods.CoinMultiplier = 1
	}
	if mods.HPMultiplier == 0 {
		mods.HPMultiplier = 1
	}
	if mods.MaxStamina == 0 {
		mods.MaxStamina = 100
	}
	if mods.Backpack == nil {
		mods.Backpack = backpackStandard
	}
	s := &DigSession{
		biome:          biome,
		rng:            rng,
		x:              digGridWidth / 2,
		y:              -1,
		target:         targetDown,
		explored:       map[[2]int]struct{}{},
		coinMultiplier: mods.CoinMultiplier,
		hpMultiplier:   mods.HPMultiplier,
		maxStamina:     mods.MaxStamina,
		stamina:        mods.MaxStamina,
		shovel:         mods.Shovel,
		pickaxe:        mods.Pickaxe,
		backpack:       mods.Backpack,
		collectedItems: NewItemCounts(),
	}
	start, stop := s.YRange()
	for y := start; y < stop; y++ {
		if y >= 0 {
			s.grid = append(s.grid, s.generateRow(y))
		}
	}
	return s
}

// generateRow builds the full-width row for index y. Callers must generate
// each index exactly once; regenerating a row would erase dug-out progress.
func (s *DigSession) generateRow(y int) []*Cell {
	layer := s.biome.LayerAt(y)
	row := make([]*Cell, digGridWidth)
	for x := range row {
		row[x] = &Cell{
			Item:      layer.Dirt,
			DirtIndex: s.rng.IntN(digDirtVariants),
			HP:        layer.Dirt.HP,
		}
	}
	if y == 0 {
		return row
	}

	spawns := digSpawnCounts.Choice(s.rng)
	for _, x := range digColumns.SampleN(s.rng, spawns) {
		idx := s.rng.IntN(digDirtVariants)
		item := layer.Spawns.Choice(s.rng)
		if item == nil {
			coins := math.Round(randFloatRange(s.rng, 10*float64(y), 20*float64(y)) * s.coinMultiplier)
			row[x] = &Cell{Coins: int(coins), DirtIndex: idx}
		} else {
			row[x] = &Cell{Item: item, DirtIndex: idx, HP: item.HP}
		}
	}
	return row
}

func randFloatRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// ===========================
// Position and window queries
// ===========================

func (s *DigSession) Position() (x, y int) {
	return s.x, s.y
}

func (s *DigSession) Biome() *Biome {
	return s.biome
}

// Depth is the player's depth in meters for display, one below the surface
// being 1.
func (s *DigSession) Depth() int {
	return s.y + 1
}

// YRange is the half-open row range the camera can see.
func (s *DigSession) YRange() (start, stop int) {
	effectiveY := max(0, s.y)
	availableAbove := (digYOffset + digCellWidth - 1) / digCellWidth
	availableBelow := (digImageHeight - digYOffset + digCellWidth - 1) / digCellWidth
	return effectiveY - availableAbove, effectiveY + availableBelow
}

func (s *DigSession) TargetXY() (x, y int) {
	switch s.target {
	case targetLeft:
		return s.x - 1, s.y
	case targetRight:
		return s.x + 1, s.y
	default:
		return s.x, s.y + 1
	}
}

// TargetCell returns nil when the target slot is empty or out of bounds.
func (s *DigSession) TargetCell() *Cell {
	x, y := s.TargetXY()
	return s.CellAt(x, y)
}

func (s *DigSession) CellAt(x, y int) *Cell {
	if y < 0 || y >= len(s.grid) || x < 0 || x >= digGridWidth {
		return nil
	}
	return s.grid[y][x]
}

func (s *DigSession) SetTarget(t digTarget) {
	s.target = t
}

// Reposition slides the player sideways into an already-empty slot without
// digging. Callers verify the slot is empty or above ground first.
func (s *DigSession) Reposition(x, y int) {
	s.x, s.y = x, y
}

func (s *DigSession) Stamina() int {
	return s.stamina
}

func (s *DigSession) MaxStamina() int {
	return s.maxStamina
}

func (s *DigSession) CollectedCoins() int {
	return s.collectedCoins
}

func (s *DigSession) Collected() *ItemCounts {
	return s.collectedItems
}

// BackpackOccupied sums collected volume against the backpack capacity.
func (s *DigSession) BackpackOccupied() int {
	occupied := 0
	for _, item := range s.collectedItems.Items() {
		occupied += s.collectedItems.Get(item) * item.Volume
	}
	return occupied
}

// wouldOverflow reports whether collecting one more of item exceeds capacity.
func (s *DigSession) wouldOverflow(item *Item) bool {
	return item != nil && s.BackpackOccupied()+item.Volume > s.backpack.Capacity
}

// ActiveTool resolves which tool the current target calls for: ores need the
// pickaxe, everything else takes the shovel. Bare hands have strength 1.
func (s *DigSession) ActiveTool() (tool *Item, strength int) {
	cell := s.TargetCell()
	if cell != nil && cell.Item != nil && cell.Item.IsOre() {
		tool = s.pickaxe
	} else {
		tool = s.shovel
	}
	if tool == nil {
		return nil, 1
	}
	return tool, tool.Strength
}

// ===========================
// Mutations
// ===========================

// Collect empties the slot at (x, y) into the running totals and marks the
// coordinate explored. It trusts its callers: capacity checks happen before
// the call, never inside it. Returns what was gained; (0, nil) means the
// slot was already empty.
func (s *DigSession) Collect(x, y int) (coins int, item *Item) {
	cell := s.grid[y][x]
	s.grid[y][x] = nil

	if cell != nil {
		if cell.Coins > 0 {
			s.collectedCoins += cell.Coins
			coins = cell.Coins
		}
		if cell.Item != nil {
			s.collectedItems.Add(cell.Item, 1)
			item = cell.Item
		}
	}
	s.explored[[2]int{x, y}] = struct{}{}
	return coins, item
}

// CollectTarget collects the targeted slot, tolerating out-of-bounds targets
// at the surface and grid edges.
func (s *DigSession) CollectTarget() (coins int, item *Item) {
	x, y := s.TargetXY()
	if y < 0 || x < 0 || x >= digGridWidth {
		return 0, nil
	}
	return s.Collect(x, y)
}

// Move commits to entering the target cell, collecting it first. A downward
// move extends the grid by exactly one freshly generated row and prunes
// exploration marks that scrolled out of view.
func (s *DigSession) Move() (coins int, item *Item) {
	x, y := s.TargetXY()
	if y >= 0 {
		coins, item = s.CollectTarget()
	}
	if s.target == targetDown {
		s.grid = append(s.grid, s.generateRow(len(s.grid)))
		s.cleanupExplored()
	}
	s.x, s.y = x, y
	return coins, item
}

func (s *DigSession) cleanupExplored() {
	start, _ := s.YRange()
	for xy := range s.explored {
		if xy[1] < start {
			delete(s.explored, xy)
		}
	}
}

// Dig damages the target cell with the active tool and spends one stamina.
// Breaking a down target makes the player fall, skipping through any already
// empty slots below; breaking a side target only harvests it. Each press
// also has a 70% chance of accruing session XP and bank space.
func (s *DigSession) Dig() DigResult {
	cell := s.TargetCell()
	if cell == nil {
		return DigResult{}
	}

	_, strength := s.ActiveTool()
	hpDealt := min(float64(strength)*s.hpMultiplier, cell.HP)
	cell.HP -= hpDealt
	s.stamina--
	s.hpDealt += math.Trunc(hpDealt)

	res := DigResult{HPDealt: hpDealt}
	if cell.HP <= 0 {
		res.Broke = true
		if s.target == targetDown {
			s.Move()
			for s.TargetCell() == nil {
				s.Move()
			}
		} else {
			s.CollectTarget()
		}
	}

	if s.rng.Float64() < 0.7 {
		s.xpEarned += 2 + s.rng.IntN(3)
		s.bankSpaceEarned += 1 + s.rng.IntN(3)
	}
	return res
}

// CascadingDig burrows straight down with a fixed HP budget, falling through
// cells it can fully break and leaving the last one partially damaged. It
// stops early rather than collect an item that would overflow the backpack.
func (s *DigSession) CascadingDig(totalHP float64) (coins int, items *ItemCounts) {
	remaining := totalHP
	items = NewItemCounts()
	s.target = targetDown

	for remaining > 0 {
		cell := s.TargetCell()
		if cell == nil || remaining >= cell.HP {
			if cell != nil {
				remaining -= cell.HP
				if cell.Item != nil && s.wouldOverflow(cell.Item) {
					break
				}
			}
			c, item := s.Move()
			coins += c
			if item != nil {
				items.Add(item, 1)
			}
		} else {
			cell.HP -= remaining
			remaining = 0
		}
	}

	s.hpDealt += totalHP - remaining
	return coins, items
}

// SurroundingDig damages every cell within radius of the player, falling off
// with squared distance, and collects whatever breaks. Cells whose item
// would overflow the backpack are left untouched. The player's own slot is
// always empty, so the distance-0 division can never be reached. Afterwards
// the target is re-normalized downward, falling through any empty slots.
func (s *DigSession) SurroundingDig(baseHP float64, radius int) (totalHP float64, coins int, items *ItemCounts) {
	items = NewItemCounts()

	for y := s.y - radius; y <= s.y+radius; y++ {
		if y < 0 || y >= len(s.grid) {
			continue
		}
		for x := s.x - radius; x <= s.x+radius; x++ {
			if x < 0 || x >= digGridWidth {
				continue
			}
			distance := (x-s.x)*(x-s.x) + (y-s.y)*(y-s.y)
			if distance > radius*radius {
				continue
			}
			cell := s.grid[y][x]
			if cell == nil || s.wouldOverflow(cell.Item) {
				continue
			}

			damage := baseHP / float64(distance)
			totalHP += min(cell.HP, damage)
			cell.HP -= damage

			if cell.HP <= 0 {
				c, item := s.Collect(x, y)
				coins += c
				if item != nil {
					items.Add(item, 1)
				}
			}
		}
	}

	s.target = targetDown
	for s.TargetCell() == nil {
		s.Move()
	}

	s.hpDealt += totalHP
	return totalHP, coins, items
}

// ===========================
// Visibility and surfacing
// ===========================

// Visible reports whether a coordinate is out of the fog of war: the first
// two rows always are, deeper cells only within the visibility radius of
// somewhere the player has been.
func (s *DigSession) Visible(x, y int) bool {
	if y < 2 {
		return true
	}
	for xy := range s.explored {
		dx, dy := xy[0]-x, xy[1]-y
		if dx*dx+dy*dy <= digVisibility*digVisibility {
			return true
		}
	}
	return false
}

// DigSummary is everything the record layer needs when a session ends.
type DigSummary struct {
	Depth        int
	Coins        int
	Items        *ItemCounts
	NonDirtItems int
	Ores         int
	XP           int
	BankSpace    int
	StaminaUsed  int
	HPDealt      int
}

// Surface ends the descent: the final depth is captured, the player returns
// to the surface row and the accumulated totals are handed back for the
// record layer to persist. The session must not be mutated afterwards.
func (s *DigSession) Surface() DigSummary {
	summary := DigSummary{
		Depth:       s.y + 1,
		Coins:       s.collectedCoins,
		Items:       s.collectedItems,
		XP:          s.xpEarned,
		BankSpace:   s.bankSpaceEarned,
		StaminaUsed: s.maxStamina - s.stamina,
		HPDealt:     int(s.hpDealt),
	}
	for _, item := range s.collectedItems.Items() {
		n := s.collectedItems.Get(item)
		if item.Type != ItemTypeDirt {
			summary.NonDirtItems += n
		}
		if item.Type == ItemTypeOre {
			summary.Ores += n
		}
	}
	s.y = -1
	return summary
}

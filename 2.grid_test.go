package main

import (
	"math"
	"testing"
)

func newTestSession(mods DigModifiers) *DigSession {
	return NewDigSession(biomeBackyard, mods, testRand())
}

// dirtRow fills a full-width row of plain dirt cells with the given HP.
func dirtRow(hp float64) []*Cell {
	row := make([]*Cell, digGridWidth)
	for x := range row {
		row[x] = &Cell{Item: itemDirt, HP: hp}
	}
	return row
}

// installGrid replaces the generated grid with n rows of uniform dirt and
// parks the player at (x, y) in an emptied slot.
func installGrid(s *DigSession, n int, hp float64, x, y int) {
	s.grid = nil
	for i := 0; i < n; i++ {
		s.grid = append(s.grid, dirtRow(hp))
	}
	s.grid[y][x] = nil
	s.x, s.y = x, y
	s.target = targetDown
}

func TestNewDigSessionInitialState(t *testing.T) {
	s := newTestSession(DigModifiers{})

	if x, y := s.Position(); x != digGridWidth/2 || y != -1 {
		t.Errorf("Position() = (%d, %d), want (4, -1)", x, y)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", s.Depth())
	}
	if s.Stamina() != 100 || s.MaxStamina() != 100 {
		t.Errorf("stamina = %d/%d, want 100/100", s.Stamina(), s.MaxStamina())
	}
	if len(s.grid) != 5 {
		t.Fatalf("pre-generated %d rows, want 5", len(s.grid))
	}
	for y, row := range s.grid {
		if len(row) != digGridWidth {
			t.Fatalf("row %d has width %d", y, len(row))
		}
		for x, cell := range row {
			if cell == nil {
				t.Fatalf("fresh grid has an empty slot at (%d, %d)", x, y)
			}
		}
	}
	if !s.Collected().Empty() {
		t.Error("fresh session already collected items")
	}
}

func TestNewDigSessionModifierDefaults(t *testing.T) {
	s := newTestSession(DigModifiers{})
	if s.coinMultiplier != 1 || s.hpMultiplier != 1 {
		t.Errorf("multipliers = %v/%v, want 1/1", s.coinMultiplier, s.hpMultiplier)
	}
	if s.backpack != backpackStandard {
		t.Errorf("backpack = %v, want standard", s.backpack)
	}

	s = newTestSession(DigModifiers{CoinMultiplier: 1.5, MaxStamina: 140, Backpack: backpackSuitcase})
	if s.coinMultiplier != 1.5 || s.MaxStamina() != 140 || s.backpack != backpackSuitcase {
		t.Error("explicit modifiers not applied")
	}
}

func TestSpawnRowTopRowIsPlain(t *testing.T) {
	// Row 0 never gets spawns, so the first step down is always plain dirt.
	for trial := 0; trial < 50; trial++ {
		s := NewDigSession(biomeBackyard, DigModifiers{}, nil)
		for x, cell := range s.grid[0] {
			if cell.Coins > 0 || cell.Item != itemDirt {
				t.Fatalf("row 0 column %d holds %v", x, cell)
			}
		}
	}
}

func TestGeneratedRowWellFormed(t *testing.T) {
	s := newTestSession(DigModifiers{})
	for y := 1; y <= 200; y++ {
		row := s.generateRow(y)
		if len(row) != digGridWidth {
			t.Fatalf("row %d has width %d", y, len(row))
		}
		for x, cell := range row {
			if cell == nil {
				t.Fatalf("generated row %d has a nil slot at %d", y, x)
			}
			if cell.HP < 0 || cell.Coins < 0 {
				t.Fatalf("cell (%d, %d) = %+v", x, y, cell)
			}
			if cell.Coins > 0 && cell.Item != nil {
				t.Fatalf("cell (%d, %d) holds both coins and an item", x, y)
			}
			if cell.DirtIndex < 0 || cell.DirtIndex >= digDirtVariants {
				t.Fatalf("cell (%d, %d) texture variant %d out of range", x, y, cell.DirtIndex)
			}
		}
	}
}

func TestDigBreaksThroughTopsoil(t *testing.T) {
	s := newTestSession(DigModifiers{})
	rows := len(s.grid)

	res := s.Dig()
	if !res.Broke {
		t.Fatal("bare hands failed to break 1 HP dirt")
	}
	if res.HPDealt != 1 {
		t.Errorf("HPDealt = %v, want 1", res.HPDealt)
	}
	if _, y := s.Position(); y != 0 {
		t.Errorf("player at y=%d after breaking through, want 0", y)
	}
	if s.Stamina() != 99 {
		t.Errorf("stamina = %d, want 99", s.Stamina())
	}
	if len(s.grid) != rows+1 {
		t.Errorf("grid grew to %d rows, want %d", len(s.grid), rows+1)
	}
	if got := s.Collected().Get(itemDirt); got != 1 {
		t.Errorf("collected %d dirt, want 1", got)
	}
}

func TestDigSideTargetOnlyHarvests(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 4, 1, 4, 1)
	s.SetTarget(targetLeft)

	res := s.Dig()
	if !res.Broke {
		t.Fatal("side dig did not break a 1 HP cell")
	}
	if x, y := s.Position(); x != 4 || y != 1 {
		t.Errorf("player moved to (%d, %d) on a side dig", x, y)
	}
	if s.CellAt(3, 1) != nil {
		t.Error("side target not collected")
	}
}

func TestTargetXY(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 4, 1, 4, 1)

	tests := []struct {
		target digTarget
		x, y   int
	}{
		{targetDown, 4, 2},
		{targetLeft, 3, 1},
		{targetRight, 5, 1},
	}
	for _, tt := range tests {
		s.SetTarget(tt.target)
		if x, y := s.TargetXY(); x != tt.x || y != tt.y {
			t.Errorf("target %d: TargetXY() = (%d, %d), want (%d, %d)", tt.target, x, y, tt.x, tt.y)
		}
	}
}

func TestReposition(t *testing.T) {
	s := newTestSession(DigModifiers{})
	s.Reposition(2, -1)
	if x, y := s.Position(); x != 2 || y != -1 {
		t.Errorf("Position() = (%d, %d), want (2, -1)", x, y)
	}
}

func TestActiveTool(t *testing.T) {
	s := newTestSession(DigModifiers{Shovel: itemShovel})
	installGrid(s, 4, 1, 4, 1)

	tool, strength := s.ActiveTool()
	if tool != itemShovel || strength != itemShovel.Strength {
		t.Errorf("dirt target: tool = %v strength %d, want shovel", tool, strength)
	}

	// Ores demand the pickaxe; without one it is bare hands.
	s.grid[2][4] = &Cell{Item: itemIron, HP: itemIron.HP}
	tool, strength = s.ActiveTool()
	if tool != nil || strength != 1 {
		t.Errorf("ore target without pickaxe: tool = %v strength %d, want bare hands", tool, strength)
	}

	s.pickaxe = itemDurablePickaxe
	tool, strength = s.ActiveTool()
	if tool != itemDurablePickaxe || strength != itemDurablePickaxe.Strength {
		t.Errorf("ore target: tool = %v strength %d, want durable pickaxe", tool, strength)
	}
}

func TestCollectTracksTotals(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 4, 1, 4, 1)
	s.grid[2][4] = &Cell{Coins: 120}
	s.grid[2][5] = &Cell{Item: itemWorm, HP: itemWorm.HP}
	s.grid[2][6] = &Cell{Item: itemGummyWorm, HP: itemGummyWorm.HP}

	coins, item := s.Collect(4, 2)
	if coins != 120 || item != nil {
		t.Errorf("Collect coin cell = (%d, %v)", coins, item)
	}
	s.Collect(5, 2)
	s.Collect(6, 2)

	if s.CollectedCoins() != 120 {
		t.Errorf("CollectedCoins() = %d, want 120", s.CollectedCoins())
	}
	order := s.Collected().Items()
	if len(order) != 2 || order[0] != itemWorm || order[1] != itemGummyWorm {
		t.Errorf("collection order = %v", order)
	}
	// Worm volume 1 plus gummy worm volume 2.
	if got := s.BackpackOccupied(); got != 3 {
		t.Errorf("BackpackOccupied() = %d, want 3", got)
	}

	if coins, item := s.Collect(4, 2); coins != 0 || item != nil {
		t.Errorf("re-collecting an empty slot yielded (%d, %v)", coins, item)
	}
}

func TestCascadingDigBudget(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 6, 5, 4, 0)

	coins, items := s.CascadingDig(12)

	// Budget 12 fully breaks two 5 HP cells and leaves 2 HP of damage on the
	// third without entering it.
	if coins != 0 {
		t.Errorf("coins = %d, want 0", coins)
	}
	if got := items.Get(itemDirt); got != 2 {
		t.Errorf("broke %d cells, want 2", got)
	}
	if _, y := s.Position(); y != 2 {
		t.Errorf("player at y=%d, want 2", y)
	}
	cell := s.CellAt(4, 3)
	if cell == nil || cell.HP != 3 {
		t.Errorf("last cell HP = %v, want 3", cell)
	}
	if s.hpDealt != 12 {
		t.Errorf("hpDealt = %v, want 12", s.hpDealt)
	}
}

func TestCascadingDigPartialLastCell(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 6, 2, 4, 0)

	coins, items := s.CascadingDig(5)

	// Budget 5 against 2 HP cells: two fall-throughs, the third cell keeps
	// 1 HP.
	if coins != 0 || items.Get(itemDirt) != 2 {
		t.Errorf("collected (%d, %d dirt), want (0, 2)", coins, items.Get(itemDirt))
	}
	if _, y := s.Position(); y != 2 {
		t.Errorf("player at y=%d, want 2", y)
	}
	if cell := s.CellAt(4, 3); cell == nil || cell.HP != 1 {
		t.Errorf("third cell = %v, want 1 HP left", cell)
	}
}

func TestCascadingDigStopsBeforeOverflow(t *testing.T) {
	s := newTestSession(DigModifiers{Backpack: &Backpack{Key: "tiny", Capacity: 1}})
	installGrid(s, 6, 1, 4, 0)
	s.grid[1][4] = &Cell{Item: itemGummyWorm, HP: 1} // volume 2 against capacity 1

	coins, items := s.CascadingDig(50)
	if coins != 0 || !items.Empty() {
		t.Errorf("collected (%d, %v) past a full backpack", coins, items.Items())
	}
	if _, y := s.Position(); y != 0 {
		t.Errorf("player advanced to y=%d past an overflowing item", y)
	}
}

func TestSurroundingDig(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 7, 3, 4, 2)

	totalHP, coins, items := s.SurroundingDig(10, 2)

	// Orthogonal neighbors take 10, diagonals 5: both break 3 HP dirt. Cells
	// at squared distance 4 take 2.5 and survive with 0.5 HP.
	if coins != 0 {
		t.Errorf("coins = %d, want 0", coins)
	}
	if got := items.Get(itemDirt); got != 8 {
		t.Errorf("broke %d cells, want 8", got)
	}
	if math.Abs(totalHP-34) > 1e-9 {
		t.Errorf("totalHP = %v, want 34", totalHP)
	}

	survivor := s.CellAt(2, 2)
	if survivor == nil || math.Abs(survivor.HP-0.5) > 1e-9 {
		t.Errorf("edge cell = %v, want 0.5 HP remaining", survivor)
	}
	if outside := s.CellAt(1, 2); outside == nil || outside.HP != 3 {
		t.Errorf("cell outside the radius was touched: %v", outside)
	}
	if corner := s.CellAt(2, 0); corner == nil || corner.HP != 3 {
		t.Errorf("far corner was touched: %v", corner)
	}

	// The blast opened the slot below, so the player falls one row and stops
	// on the damaged survivor beneath it.
	if x, y := s.Position(); x != 4 || y != 3 {
		t.Errorf("player at (%d, %d) after the blast, want (4, 3)", x, y)
	}
	below := s.TargetCell()
	if below == nil || math.Abs(below.HP-0.5) > 1e-9 {
		t.Errorf("resting on %v, want the 0.5 HP cell", below)
	}
}

func TestSurroundingDigAllLethal(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 7, 1, 4, 2)

	totalHP, _, items := s.SurroundingDig(10, 2)

	// Every cell in range dies, so the HP dealt is the sum of their original
	// HP: 12 cells of 1 HP around an interior player.
	if math.Abs(totalHP-12) > 1e-9 {
		t.Errorf("totalHP = %v, want 12", totalHP)
	}
	if got := items.Get(itemDirt); got != 12 {
		t.Errorf("broke %d cells, want 12", got)
	}
}

func TestSurroundingDigSkipsOverflowingItems(t *testing.T) {
	s := newTestSession(DigModifiers{Backpack: &Backpack{Key: "tiny", Capacity: 1}})
	installGrid(s, 7, 1, 4, 2)
	s.grid[2][3] = &Cell{Item: itemGummyWorm, HP: 1}

	_, _, items := s.SurroundingDig(10, 2)
	if items.Get(itemGummyWorm) != 0 {
		t.Error("collected an item that overflows the backpack")
	}
	if cell := s.CellAt(3, 2); cell == nil || cell.HP != 1 {
		t.Errorf("overflowing cell was damaged: %v", cell)
	}
}

func TestVisibleFog(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 10, 1, 4, 5)
	s.explored[[2]int{4, 5}] = struct{}{}

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true}, // first two rows always visible
		{8, 1, true},
		{4, 7, true},  // within visibility radius of an explored slot
		{6, 5, true},  // exactly at the radius
		{4, 8, false}, // beyond
		{0, 5, false},
	}
	for _, tt := range tests {
		if got := s.Visible(tt.x, tt.y); got != tt.want {
			t.Errorf("Visible(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSurfaceSummary(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 7, 1, 4, 5)
	s.grid[6][4] = &Cell{Coins: 250}
	s.grid[6][5] = &Cell{Item: itemWorm, HP: itemWorm.HP}
	s.grid[6][6] = &Cell{Item: itemIron, HP: itemIron.HP}
	s.grid[6][3] = &Cell{Item: itemDirt, HP: 1}
	s.Collect(4, 6)
	s.Collect(5, 6)
	s.Collect(6, 6)
	s.Collect(3, 6)
	s.stamina = s.maxStamina - 7
	s.xpEarned = 9
	s.bankSpaceEarned = 4
	s.hpDealt = 12.7

	summary := s.Surface()

	if summary.Depth != 6 {
		t.Errorf("Depth = %d, want 6", summary.Depth)
	}
	if summary.Coins != 250 {
		t.Errorf("Coins = %d, want 250", summary.Coins)
	}
	if summary.NonDirtItems != 2 {
		t.Errorf("NonDirtItems = %d, want 2", summary.NonDirtItems)
	}
	if summary.Ores != 1 {
		t.Errorf("Ores = %d, want 1", summary.Ores)
	}
	if summary.XP != 9 || summary.BankSpace != 4 {
		t.Errorf("XP/BankSpace = %d/%d, want 9/4", summary.XP, summary.BankSpace)
	}
	if summary.StaminaUsed != 7 {
		t.Errorf("StaminaUsed = %d, want 7", summary.StaminaUsed)
	}
	if summary.HPDealt != 12 {
		t.Errorf("HPDealt = %d, want 12", summary.HPDealt)
	}
	if _, y := s.Position(); y != -1 {
		t.Errorf("player at y=%d after surfacing, want -1", y)
	}
}

func TestItemCountsOrder(t *testing.T) {
	c := NewItemCounts()
	c.Add(itemIron, 1)
	c.Add(itemWorm, 2)
	c.Add(itemIron, 3)

	if got := c.Get(itemIron); got != 4 {
		t.Errorf("Get(iron) = %d, want 4", got)
	}
	if got := c.Total(); got != 6 {
		t.Errorf("Total() = %d, want 6", got)
	}
	order := c.Items()
	if len(order) != 2 || order[0] != itemIron || order[1] != itemWorm {
		t.Errorf("Items() = %v, want first-collection order", order)
	}
	if c.Empty() {
		t.Error("Empty() = true after adds")
	}
}

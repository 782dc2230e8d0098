package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// setupTestDB points the shared handle at a throwaway sqlite file. Tests using
// it must not run in parallel.
func setupTestDB(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	if err := InitDatabase(ctx, filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	t.Cleanup(CloseDatabase)
	return ctx
}

func TestPlayerLifecycle(t *testing.T) {
	ctx := setupTestDB(t)
	userID := snowflake.ID(1001)

	missing, err := GetPlayer(ctx, userID)
	if err != nil || missing != nil {
		t.Fatalf("GetPlayer(missing) = %v, %v, want nil, nil", missing, err)
	}

	p, err := GetOrCreatePlayer(ctx, userID)
	if err != nil {
		t.Fatalf("GetOrCreatePlayer: %v", err)
	}
	if p.Wallet != 0 || p.BankSpace != 100 || p.Level() != 0 {
		t.Errorf("fresh player = wallet %d, bank space %d, level %d", p.Wallet, p.BankSpace, p.Level())
	}
	if p.Backpack != backpackStandard.Key {
		t.Errorf("fresh player backpack = %q, want %q", p.Backpack, backpackStandard.Key)
	}

	credited, err := AddCoins(ctx, userID, 100, 1.5)
	if err != nil || credited != 150 {
		t.Fatalf("AddCoins(100, x1.5) = %d, %v, want 150", credited, err)
	}

	if ok, _ := SpendCoins(ctx, userID, 200); ok {
		t.Error("SpendCoins succeeded beyond the wallet balance")
	}
	if ok, _ := SpendCoins(ctx, userID, 150); !ok {
		t.Error("SpendCoins failed with an exact balance")
	}
	p, _ = GetPlayer(ctx, userID)
	if p.Wallet != 0 {
		t.Errorf("wallet = %d after spending everything", p.Wallet)
	}

	if err := AddXP(ctx, userID, 360); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	p, _ = GetPlayer(ctx, userID)
	if p.Level() != 3 {
		t.Errorf("Level() = %d at 360 XP, want 3", p.Level())
	}

	if err := SetDeepestDig(ctx, userID, 25); err != nil {
		t.Fatalf("SetDeepestDig: %v", err)
	}
	_ = SetDeepestDig(ctx, userID, 10)
	p, _ = GetPlayer(ctx, userID)
	if p.DeepestDig != 25 {
		t.Errorf("DeepestDig = %d, want the record to stick at 25", p.DeepestDig)
	}

	expiry := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	if err := SetRailgunExpiry(ctx, userID, expiry); err != nil {
		t.Fatalf("SetRailgunExpiry: %v", err)
	}
	p, _ = GetPlayer(ctx, userID)
	if !p.RailgunExpiresAt.Equal(expiry) {
		t.Errorf("RailgunExpiresAt = %v, want %v", p.RailgunExpiresAt, expiry)
	}
}

func TestLevelMath(t *testing.T) {
	tests := []struct {
		xp    int
		level int
	}{
		{0, 0},
		{39, 0},
		{40, 1},
		{159, 1},
		{160, 2},
		{360, 3},
	}
	for _, tt := range tests {
		p := &PlayerRecord{XP: tt.xp}
		if got := p.Level(); got != tt.level {
			t.Errorf("Level() at %d XP = %d, want %d", tt.xp, got, tt.level)
		}
	}
	for level := 0; level < 20; level++ {
		p := &PlayerRecord{XP: XPForLevel(level)}
		if p.Level() != level {
			t.Errorf("XPForLevel(%d) = %d XP resolves to level %d", level, p.XP, p.Level())
		}
	}
}

func TestInventory(t *testing.T) {
	ctx := setupTestDB(t)
	userID := snowflake.ID(1002)
	if _, err := GetOrCreatePlayer(ctx, userID); err != nil {
		t.Fatal(err)
	}

	if err := AddItemQuantity(ctx, userID, "worm", 3); err != nil {
		t.Fatalf("AddItemQuantity: %v", err)
	}
	_ = AddItemQuantity(ctx, userID, "worm", -1)
	if got, _ := GetItemQuantity(ctx, userID, "worm"); got != 2 {
		t.Errorf("quantity = %d, want 2", got)
	}

	// Removals clamp at zero instead of going negative.
	_ = AddItemQuantity(ctx, userID, "worm", -10)
	if got, _ := GetItemQuantity(ctx, userID, "worm"); got != 0 {
		t.Errorf("quantity = %d after over-removal, want 0", got)
	}

	if err := AddItemsBulk(ctx, userID, map[string]int{"iron": 5, "dirt": 12}); err != nil {
		t.Fatalf("AddItemsBulk: %v", err)
	}
	inv, err := GetInventory(ctx, userID)
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if inv["iron"] != 5 || inv["dirt"] != 12 {
		t.Errorf("inventory = %v", inv)
	}
	if _, present := inv["worm"]; present {
		t.Error("zero-quantity row surfaced in the inventory")
	}
}

func TestQuestFlow(t *testing.T) {
	ctx := setupTestDB(t)
	userID := snowflake.ID(1003)
	if _, err := GetOrCreatePlayer(ctx, userID); err != nil {
		t.Fatal(err)
	}

	quests, err := ensureDailyQuests(ctx, userID, 2)
	if err != nil {
		t.Fatalf("ensureDailyQuests: %v", err)
	}
	if len(quests) != len(digQuestTemplates) {
		t.Fatalf("rolled %d quests, want %d", len(quests), len(digQuestTemplates))
	}
	now := time.Now().UTC()
	for _, q := range quests {
		if !q.ExpiresAt.After(now) {
			t.Errorf("quest %s already expired at roll time", q.QuestKey)
		}
	}

	// Goals scale with level: depth is base 15 plus 2 per level.
	var depth *PlayerQuest
	for _, q := range quests {
		if q.QuestKey == questDigDepth {
			depth = q
		}
	}
	if depth == nil {
		t.Fatal("no depth quest on the board")
	}
	if depth.Goal != 19 {
		t.Errorf("depth goal = %d at level 2, want 19", depth.Goal)
	}

	// An unexpired board survives a second roll.
	again, err := ensureDailyQuests(ctx, userID, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range again {
		if q.QuestKey == questDigDepth && q.Goal != depth.Goal {
			t.Errorf("board re-rolled while unexpired: goal %d -> %d", depth.Goal, q.Goal)
		}
	}

	if ok, _ := ClaimQuest(ctx, userID, questDigDepth); ok {
		t.Error("claimed an incomplete quest")
	}

	// Progress is capped at the goal; best-depth updates only move forward.
	_ = SetQuestProgressMax(ctx, userID, questDigDepth, 12)
	_ = SetQuestProgressMax(ctx, userID, questDigDepth, 5)
	_ = SetQuestProgressMax(ctx, userID, questDigDepth, 500)
	_ = AddQuestProgress(ctx, userID, questDigCoins, 100000)
	fetched, _ := GetQuests(ctx, userID)
	for _, q := range fetched {
		switch q.QuestKey {
		case questDigDepth:
			if q.Progress != q.Goal || !q.Complete() {
				t.Errorf("depth progress = %d/%d, want capped complete", q.Progress, q.Goal)
			}
		case questDigCoins:
			if q.Progress != q.Goal {
				t.Errorf("coins progress = %d, want capped at %d", q.Progress, q.Goal)
			}
		}
	}

	if ok, _ := ClaimQuest(ctx, userID, questDigDepth); !ok {
		t.Error("failed to claim a completed quest")
	}
	if ok, _ := ClaimQuest(ctx, userID, questDigDepth); ok {
		t.Error("claimed the same quest twice")
	}
}

func TestQuestTitle(t *testing.T) {
	q := &PlayerQuest{QuestKey: questDigCoins, Goal: 1500}
	if got := questTitle(q); got != "Dig up 1,500 coins" {
		t.Errorf("questTitle = %q", got)
	}
	unknown := &PlayerQuest{QuestKey: "mystery"}
	if got := questTitle(unknown); got != "mystery" {
		t.Errorf("questTitle(unknown) = %q", got)
	}
}

func TestBiomeUnlocks(t *testing.T) {
	ctx := setupTestDB(t)
	userID := snowflake.ID(1004)
	if _, err := GetOrCreatePlayer(ctx, userID); err != nil {
		t.Fatal(err)
	}

	if has, _ := HasBiomeUnlock(ctx, userID, "desert"); has {
		t.Error("fresh player already owns the desert")
	}
	if err := UnlockBiome(ctx, userID, "desert"); err != nil {
		t.Fatalf("UnlockBiome: %v", err)
	}
	if err := UnlockBiome(ctx, userID, "desert"); err != nil {
		t.Fatalf("repeat UnlockBiome: %v", err)
	}
	if has, _ := HasBiomeUnlock(ctx, userID, "desert"); !has {
		t.Error("unlock did not stick")
	}
}

func TestPets(t *testing.T) {
	ctx := setupTestDB(t)
	userID := snowflake.ID(1005)
	if _, err := GetOrCreatePlayer(ctx, userID); err != nil {
		t.Fatal(err)
	}

	if ok, _ := SetPetEquipped(ctx, userID, "hamster", true); ok {
		t.Error("equipped a pet the player does not own")
	}

	if _, err := DB.ExecContext(ctx,
		"INSERT INTO player_pets (user_id, pet_key, level) VALUES (?, ?, ?)",
		userID.String(), "hamster", 3); err != nil {
		t.Fatalf("seeding pet: %v", err)
	}

	if ok, _ := SetPetEquipped(ctx, userID, "hamster", true); !ok {
		t.Error("failed to equip an owned pet")
	}
	equipped, err := GetEquippedPets(ctx, userID)
	if err != nil {
		t.Fatalf("GetEquippedPets: %v", err)
	}
	if len(equipped) != 1 || equipped[0].PetKey != "hamster" || equipped[0].Level != 3 {
		t.Errorf("equipped = %v", equipped)
	}

	if ok, _ := SetPetEquipped(ctx, userID, "hamster", false); !ok {
		t.Error("failed to bench an owned pet")
	}
	equipped, _ = GetEquippedPets(ctx, userID)
	if len(equipped) != 0 {
		t.Errorf("still equipped after benching: %v", equipped)
	}
}

func TestWheelPrizesDrawable(t *testing.T) {
	rng := testRand()
	if wheelPrizes.TotalWeight() <= 0 {
		t.Fatal("wheel has no drawable prizes")
	}
	for i := 0; i < 1000; i++ {
		prize := wheelPrizes.Choice(rng)
		if (prize.Coins > 0) == (prize.Item != nil) {
			t.Fatalf("prize %+v is neither coins nor an item", prize)
		}
	}
}

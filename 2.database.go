package main

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/mattn/go-sqlite3"
)

// --- Phase 1: Configuration & Environment ---

type Config struct {
	Token        string
	GuildID      string
	DatabasePath string
	OwnerIDs     []string
	Silent       bool
}

var GlobalConfig *Config

// LoadConfig initializes the configuration from environment variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		folder := "."
		if info, err := os.Stat("data"); err == nil && info.IsDir() {
			folder = "./data"
		}
		dbPath = filepath.Join(folder, GetProjectName()+".db")
	}

	silent, _ := strconv.ParseBool(os.Getenv("SILENT"))

	ownerIDsStr := os.Getenv("OWNER_IDS")
	var ownerIDs []string
	if ownerIDsStr != "" {
		ownerIDs = strings.Split(ownerIDsStr, ",")
		for i := range ownerIDs {
			ownerIDs[i] = strings.TrimSpace(ownerIDs[i])
		}
	}

	cfg := &Config{
		Token:        token,
		GuildID:      os.Getenv("GUILD_ID"),
		DatabasePath: dbPath,
		OwnerIDs:     ownerIDs,
		Silent:       silent,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Silent {
		SetSilentMode(true)
	}

	GlobalConfig = cfg
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf(MsgConfigMissingToken)
	}
	if c.GuildID != "" && (len(c.GuildID) < 17 || len(c.GuildID) > 20) {
		return fmt.Errorf("invalid GUILD_ID: must be a valid Snowflake")
	}
	return nil
}

func GetProjectName() string {
	exePath, err := os.Executable()
	projectName := "bot"
	if err == nil {
		projectName = filepath.Base(exePath)
		projectName = strings.TrimSuffix(projectName, ".exe")

		if projectName == "main" || strings.HasPrefix(projectName, "go_build_") {
			if modData, err := os.ReadFile("go.mod"); err == nil {
				lines := strings.Split(string(modData), "\n")
				if len(lines) > 0 && strings.HasPrefix(lines[0], "module ") {
					parts := strings.Split(lines[0], "/")
					projectName = strings.TrimSpace(parts[len(parts)-1])
				}
			}
		}
	}
	return projectName
}

// --- Phase 2: Database Connection & Lifecycle ---

var DB *sql.DB

func InitDatabase(ctx context.Context, dataSourceName string) error {
	// Explicitly reference sqlite3 driver to avoid blank identifier
	// The driver registers itself via its init() function
	_ = sqlite3.SQLiteDriver{}

	var err error
	DB, err = sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA cache_size=-2000;",
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, p := range pragmas {
		if _, err := DB.ExecContext(initCtx, p); err != nil {
			return fmt.Errorf(MsgDatabasePragmaError, p, err)
		}
	}

	tx, err := DB.BeginTx(initCtx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tableQueries := []string{
		`CREATE TABLE IF NOT EXISTS players (
			user_id TEXT PRIMARY KEY,
			wallet INTEGER NOT NULL DEFAULT 0,
			bank INTEGER NOT NULL DEFAULT 0,
			bank_space INTEGER NOT NULL DEFAULT 100,
			xp INTEGER NOT NULL DEFAULT 0,
			prestige INTEGER NOT NULL DEFAULT 0,
			deepest_dig INTEGER NOT NULL DEFAULT 0,
			backpack TEXT NOT NULL DEFAULT 'standard_backpack',
			railgun_expires_at DATETIME,
			wheel_spun_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS player_items (
			user_id TEXT NOT NULL,
			item_key TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, item_key)
		)`,
		`CREATE TABLE IF NOT EXISTS player_pets (
			user_id TEXT NOT NULL,
			pet_key TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			equipped INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, pet_key)
		)`,
		`CREATE TABLE IF NOT EXISTS player_quests (
			user_id TEXT NOT NULL,
			quest_key TEXT NOT NULL,
			goal INTEGER NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			reward INTEGER NOT NULL,
			claimed INTEGER NOT NULL DEFAULT 0,
			expires_at DATETIME NOT NULL,
			PRIMARY KEY (user_id, quest_key)
		)`,
		`CREATE TABLE IF NOT EXISTS player_biomes (
			user_id TEXT NOT NULL,
			biome_key TEXT NOT NULL,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, biome_key)
		)`,
		`CREATE TABLE IF NOT EXISTS bot_config (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, q := range tableQueries {
		if _, err := tx.ExecContext(initCtx, q); err != nil {
			return fmt.Errorf(MsgDatabaseTableError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	migrations := []string{
		"ALTER TABLE players ADD COLUMN railgun_expires_at DATETIME",
		"ALTER TABLE players ADD COLUMN wheel_spun_at DATETIME",
		"ALTER TABLE player_pets ADD COLUMN equipped INTEGER NOT NULL DEFAULT 0",
		"ALTER TABLE players ADD COLUMN prestige INTEGER NOT NULL DEFAULT 0",
	}

	for _, m := range migrations {
		if _, err := DB.ExecContext(initCtx, m); err != nil {
			if !strings.Contains(err.Error(), "duplicate column") {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}
	}

	LogDatabase(MsgDatabaseInitSuccess)
	return nil
}

func CloseDatabase() {
	if DB != nil {
		DB.Close()
	}
}

// --- Phase 3: Infrastructure & Bot Persistence ---

// BotConfig helpers are used by the loader for mode tracking and state.
func GetBotConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := DB.QueryRowContext(ctx, "SELECT value FROM bot_config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func SetBotConfig(ctx context.Context, key, value string) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO bot_config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// --- Phase 4: Application Logic (Player Records) ---

type PlayerRecord struct {
	UserID           snowflake.ID
	Wallet           int
	Bank             int
	BankSpace        int
	XP               int
	Prestige         int
	DeepestDig       int
	Backpack         string
	RailgunExpiresAt time.Time // zero when the railgun has never been fired
	WheelSpunAt      time.Time // zero when the wheel has never been spun
	CreatedAt        time.Time
}

// Level is derived from lifetime XP rather than stored.
func (r *PlayerRecord) Level() int {
	return int(math.Sqrt(float64(r.XP) / 40))
}

// XPForLevel returns the XP threshold at which the given level is reached.
func XPForLevel(level int) int {
	return level * level * 40
}

const playerColumns = `user_id, wallet, bank, bank_space, xp, prestige, deepest_dig, backpack, railgun_expires_at, wheel_spun_at, created_at`

func scanPlayer(row *sql.Row) (*PlayerRecord, error) {
	r := &PlayerRecord{}
	var uid string
	var railgun, wheel sql.NullTime

	err := row.Scan(&uid, &r.Wallet, &r.Bank, &r.BankSpace, &r.XP, &r.Prestige,
		&r.DeepestDig, &r.Backpack, &railgun, &wheel, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.UserID, err = snowflake.Parse(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID '%s' for player: %w", uid, err)
	}
	if railgun.Valid {
		r.RailgunExpiresAt = railgun.Time
	}
	if wheel.Valid {
		r.WheelSpunAt = wheel.Time
	}
	return r, nil
}

func GetPlayer(ctx context.Context, userID snowflake.ID) (*PlayerRecord, error) {
	row := DB.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE user_id = ?", userID.String())
	return scanPlayer(row)
}

func GetOrCreatePlayer(ctx context.Context, userID snowflake.ID) (*PlayerRecord, error) {
	if _, err := DB.ExecContext(ctx,
		"INSERT OR IGNORE INTO players (user_id) VALUES (?)", userID.String()); err != nil {
		return nil, err
	}
	return GetPlayer(ctx, userID)
}

// AddCoins credits amount scaled by the player's coin multiplier and returns
// the credited total.
func AddCoins(ctx context.Context, userID snowflake.ID, amount int, multiplier float64) (int, error) {
	credited := int(math.Round(float64(amount) * multiplier))
	_, err := DB.ExecContext(ctx,
		"UPDATE players SET wallet = wallet + ? WHERE user_id = ?", credited, userID.String())
	return credited, err
}

func SpendCoins(ctx context.Context, userID snowflake.ID, amount int) (bool, error) {
	result, err := DB.ExecContext(ctx,
		"UPDATE players SET wallet = wallet - ? WHERE user_id = ? AND wallet >= ?",
		amount, userID.String(), amount)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func AddXP(ctx context.Context, userID snowflake.ID, amount int) error {
	_, err := DB.ExecContext(ctx,
		"UPDATE players SET xp = xp + ? WHERE user_id = ?", amount, userID.String())
	return err
}

func AddBankSpace(ctx context.Context, userID snowflake.ID, amount int) error {
	_, err := DB.ExecContext(ctx,
		"UPDATE players SET bank_space = bank_space + ? WHERE user_id = ?", amount, userID.String())
	return err
}

// SetDeepestDig records depth only when it beats the stored best.
func SetDeepestDig(ctx context.Context, userID snowflake.ID, depth int) error {
	_, err := DB.ExecContext(ctx,
		"UPDATE players SET deepest_dig = MAX(deepest_dig, ?) WHERE user_id = ?", depth, userID.String())
	return err
}

func SetPlayerBackpack(ctx context.Context, userID snowflake.ID, key string) error {
	_, err := DB.ExecContext(ctx,
		"UPDATE players SET backpack = ? WHERE user_id = ?", key, userID.String())
	return err
}

func SetRailgunExpiry(ctx context.Context, userID snowflake.ID, expiry time.Time) error {
	_, err := DB.ExecContext(ctx,
		"UPDATE players SET railgun_expires_at = ? WHERE user_id = ?", expiry.UTC(), userID.String())
	return err
}

func SetWheelSpunAt(ctx context.Context, userID snowflake.ID, at time.Time) error {
	_, err := DB.ExecContext(ctx,
		"UPDATE players SET wheel_spun_at = ? WHERE user_id = ?", at.UTC(), userID.String())
	return err
}

func GetPlayersCount(ctx context.Context) (int, error) {
	var count int
	err := DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count)
	return count, err
}

// --- Phase 5: Application Logic (Inventory) ---

func GetInventory(ctx context.Context, userID snowflake.ID) (map[string]int, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT item_key, quantity FROM player_items WHERE user_id = ? AND quantity > 0", userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inventory := make(map[string]int)
	for rows.Next() {
		var key string
		var quantity int
		if err := rows.Scan(&key, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		inventory[key] = quantity
	}
	return inventory, nil
}

func GetItemQuantity(ctx context.Context, userID snowflake.ID, itemKey string) (int, error) {
	var quantity int
	err := DB.QueryRowContext(ctx,
		"SELECT quantity FROM player_items WHERE user_id = ? AND item_key = ?",
		userID.String(), itemKey).Scan(&quantity)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return quantity, err
}

func AddItemQuantity(ctx context.Context, userID snowflake.ID, itemKey string, delta int) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO player_items (user_id, item_key, quantity) VALUES (?, ?, MAX(?, 0))
		ON CONFLICT(user_id, item_key) DO UPDATE SET quantity = MAX(quantity + ?, 0)
	`, userID.String(), itemKey, delta, delta)
	return err
}

// AddItemsBulk applies all quantity deltas in a single transaction.
func AddItemsBulk(ctx context.Context, userID snowflake.ID, deltas map[string]int) error {
	if len(deltas) == 0 {
		return nil
	}

	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_items (user_id, item_key, quantity) VALUES (?, ?, MAX(?, 0))
		ON CONFLICT(user_id, item_key) DO UPDATE SET quantity = MAX(quantity + ?, 0)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, delta := range deltas {
		if _, err := stmt.ExecContext(ctx, userID.String(), key, delta, delta); err != nil {
			return fmt.Errorf("failed to add %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// --- Phase 6: Application Logic (Pets) ---

type PlayerPet struct {
	UserID   snowflake.ID
	PetKey   string
	Level    int
	Equipped bool
}

func GetPets(ctx context.Context, userID snowflake.ID) ([]*PlayerPet, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT pet_key, level, equipped FROM player_pets WHERE user_id = ? ORDER BY pet_key", userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*PlayerPet
	for rows.Next() {
		p := &PlayerPet{UserID: userID}
		var equipped int
		if err := rows.Scan(&p.PetKey, &p.Level, &equipped); err != nil {
			return nil, fmt.Errorf("failed to scan pet row: %w", err)
		}
		p.Equipped = equipped == 1
		pets = append(pets, p)
	}
	return pets, nil
}

func GetEquippedPets(ctx context.Context, userID snowflake.ID) ([]*PlayerPet, error) {
	pets, err := GetPets(ctx, userID)
	if err != nil {
		return nil, err
	}
	equipped := pets[:0]
	for _, p := range pets {
		if p.Equipped {
			equipped = append(equipped, p)
		}
	}
	return equipped, nil
}

func SetPetEquipped(ctx context.Context, userID snowflake.ID, petKey string, equipped bool) (bool, error) {
	result, err := DB.ExecContext(ctx,
		"UPDATE player_pets SET equipped = ? WHERE user_id = ? AND pet_key = ?",
		boolToInt(equipped), userID.String(), petKey)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

// --- Phase 7: Application Logic (Quests) ---

type PlayerQuest struct {
	UserID    snowflake.ID
	QuestKey  string
	Goal      int
	Progress  int
	Reward    int
	Claimed   bool
	ExpiresAt time.Time
}

func (q *PlayerQuest) Complete() bool {
	return q.Progress >= q.Goal
}

func GetQuests(ctx context.Context, userID snowflake.ID) ([]*PlayerQuest, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT quest_key, goal, progress, reward, claimed, expires_at
		FROM player_quests WHERE user_id = ? ORDER BY quest_key
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quests []*PlayerQuest
	for rows.Next() {
		q := &PlayerQuest{UserID: userID}
		var claimed int
		if err := rows.Scan(&q.QuestKey, &q.Goal, &q.Progress, &q.Reward, &claimed, &q.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan quest row: %w", err)
		}
		q.Claimed = claimed == 1
		quests = append(quests, q)
	}
	return quests, nil
}

// ReplaceQuests swaps the player's quest board for a fresh set.
func ReplaceQuests(ctx context.Context, userID snowflake.ID, quests []*PlayerQuest) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM player_quests WHERE user_id = ?", userID.String()); err != nil {
		return err
	}
	for _, q := range quests {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO player_quests (user_id, quest_key, goal, progress, reward, claimed, expires_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, userID.String(), q.QuestKey, q.Goal, q.Progress, q.Reward, boolToInt(q.Claimed), q.ExpiresAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert quest %s: %w", q.QuestKey, err)
		}
	}
	return tx.Commit()
}

// AddQuestProgress advances an unclaimed quest, capped at its goal.
func AddQuestProgress(ctx context.Context, userID snowflake.ID, questKey string, delta int) error {
	if delta <= 0 {
		return nil
	}
	_, err := DB.ExecContext(ctx, `
		UPDATE player_quests SET progress = MIN(goal, progress + ?)
		WHERE user_id = ? AND quest_key = ? AND claimed = 0 AND expires_at > ?
	`, delta, userID.String(), questKey, time.Now().UTC())
	return err
}

// SetQuestProgressMax raises progress to value when value beats it, capped at the goal.
func SetQuestProgressMax(ctx context.Context, userID snowflake.ID, questKey string, value int) error {
	_, err := DB.ExecContext(ctx, `
		UPDATE player_quests SET progress = MIN(goal, MAX(progress, ?))
		WHERE user_id = ? AND quest_key = ? AND claimed = 0 AND expires_at > ?
	`, value, userID.String(), questKey, time.Now().UTC())
	return err
}

func ClaimQuest(ctx context.Context, userID snowflake.ID, questKey string) (bool, error) {
	result, err := DB.ExecContext(ctx, `
		UPDATE player_quests SET claimed = 1
		WHERE user_id = ? AND quest_key = ? AND claimed = 0 AND progress >= goal
	`, userID.String(), questKey)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

// --- Phase 8: Application Logic (Biome Unlocks) ---

func HasBiomeUnlock(ctx context.Context, userID snowflake.ID, biomeKey string) (bool, error) {
	var one int
	err := DB.QueryRowContext(ctx,
		"SELECT 1 FROM player_biomes WHERE user_id = ? AND biome_key = ?",
		userID.String(), biomeKey).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func UnlockBiome(ctx context.Context, userID snowflake.ID, biomeKey string) error {
	_, err := DB.ExecContext(ctx,
		"INSERT OR IGNORE INTO player_biomes (user_id, biome_key) VALUES (?, ?)",
		userID.String(), biomeKey)
	return err
}

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
)

// Quest keys are persistent identifiers and must never change.
const (
	questDigDepth   = "dig_to_depth"
	questDigCoins   = "dig_coins"
	questDigItems   = "dig_items"
	questDigOres    = "dig_ores"
	questDigStamina = "dig_stamina"
	questDigHP      = "dig_hp"
)

const wheelCooldown = 6 * time.Hour

const (
	MsgProfileHeader   = "## %s's Profile"
	MsgProfileLevel    = "### Level %d\n%s %s\n-# %s / %s XP to next level"
	MsgProfileWallet   = "%s Wallet: **%s**"
	MsgProfileBank     = "🏦 Bank: **%s** / %s space"
	MsgProfilePrestige = "✨ Prestige: **%d**"
	MsgProfileDeepest  = "⛏️ Deepest dig: **%s** meter%s"
	MsgProfileBackpack = "%s Backpack: **%s** (%s capacity)"

	MsgInventoryHeader = "## %s's Inventory"
	MsgInventoryEmpty  = "Your inventory is empty. Go `/dig` something up!"
	MsgInventoryLine   = "%s **%s** x%s"

	MsgShopHeader       = "## 🏪 Shop"
	MsgShopLine         = "%s **%s** — %s **%s**\n-# %s"
	MsgShopBought       = "You bought %s **%s** for %s **%s**!"
	MsgShopOwnItem      = "You already own that!"
	ErrShopUnknownItem  = "That item isn't for sale!"
	ErrShopCannotAfford = "You can't afford that! It costs %s **%s**."
	MsgShopUnlockBiome  = "You unlocked **%s**! Dig there with `/dig biome:%s`."

	MsgSellSold        = "You sold %s **%s** x%s for %s **%s**!"
	ErrSellNotSellable = "You can't sell that!"
	ErrSellNotEnough   = "You only have **%s** of those!"

	MsgQuestsHeader   = "## 📜 Daily Quests\n-# New quests %s"
	MsgQuestLine      = "**%s**\n-# %s %s/%s • Reward: %s **%s**%s"
	MsgQuestComplete  = " • ✅"
	MsgQuestClaimed   = " • Claimed"
	MsgQuestsBtnClaim = "Claim rewards"
	MsgQuestsClaimed  = "You claimed %s **%s** in quest rewards!"
	MsgQuestsNone     = "Nothing to claim yet. Keep digging!"

	MsgWheelWonCoins = "🎡 The wheel stops... you won %s **%s**!"
	MsgWheelWonItem  = "🎡 The wheel stops... you won %s!"
	ErrWheelCooldown = "The wheel is still spinning down! Try again %s."

	MsgPetsHeader  = "## 🐾 %s's Pets"
	MsgPetsNone    = "You don't have any pets yet."
	MsgPetsLine    = "%s **%s** — Level %d%s"
	MsgPetEquipped = "Equipped **%s**! It will join your next digging session."
	MsgPetBenched  = "**%s** is sitting this one out."
	ErrPetNotOwned = "You don't own that pet!"
)

// digQuestTemplates are the daily quest archetypes. Goals and rewards scale
// with the player's level at generation time.
var digQuestTemplates = []struct {
	Key            string
	Title          string
	BaseGoal       int
	GoalPerLevel   int
	BaseReward     int
	RewardPerLevel int
}{
	{questDigDepth, "Reach a depth of %s meters", 15, 2, 2000, 400},
	{questDigCoins, "Dig up %s coins", 500, 150, 1500, 300},
	{questDigItems, "Collect %s items while digging", 10, 2, 1500, 300},
	{questDigOres, "Mine %s ores", 5, 1, 2500, 500},
	{questDigStamina, "Spend %s stamina underground", 80, 10, 1000, 200},
	{questDigHP, "Deal %s HP to blocks", 150, 30, 1000, 200},
}

// wheelPrize is one wheel outcome: either a coin payout or an item.
type wheelPrize struct {
	Coins int
	Item  *Item
}

var wheelPrizes = NewWeightedTable(
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 500}, 100},
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 1000}, 100},
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 5000}, 70},
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 10000}, 40},
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 15000}, 20},
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 20000}, 5},
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 50000}, 2},
	WeightedEntry[wheelPrize]{wheelPrize{Coins: 100000}, 1},
	WeightedEntry[wheelPrize]{wheelPrize{Item: itemDynamite}, 100},
	WeightedEntry[wheelPrize]{wheelPrize{Item: itemShovel}, 40},
	WeightedEntry[wheelPrize]{wheelPrize{Item: itemPickaxe}, 40},
	WeightedEntry[wheelPrize]{wheelPrize{Item: itemGoldenShovel}, 5},
	WeightedEntry[wheelPrize]{wheelPrize{Item: itemDiamondShovel}, 1},
	WeightedEntry[wheelPrize]{wheelPrize{Item: itemDiamondPickaxe}, 1},
	WeightedEntry[wheelPrize]{wheelPrize{Item: itemPlasmaShovel}, 0.1},
)

func init() {
	RegisterCommand(discord.SlashCommandCreate{
		Name:        "profile",
		Description: "View a player's digging profile",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionUser{
				Name:        "user",
				Description: "Whose profile to view (default: you)",
			},
		},
	}, handleProfile)

	RegisterCommand(discord.SlashCommandCreate{
		Name:        "inventory",
		Description: "View everything you've dug up",
	}, handleInventory)

	var buyChoices []discord.ApplicationCommandOptionChoiceString
	for _, item := range shopItems {
		buyChoices = append(buyChoices, discord.ApplicationCommandOptionChoiceString{Name: item.Name, Value: item.Key})
	}
	for _, bp := range backpacksByTier {
		if bp.Price > 0 {
			buyChoices = append(buyChoices, discord.ApplicationCommandOptionChoiceString{Name: bp.Name, Value: bp.Key})
		}
	}
	for _, biome := range allBiomes {
		if biome.Unlock.Price > 0 {
			buyChoices = append(buyChoices, discord.ApplicationCommandOptionChoiceString{Name: biome.Name + " (biome)", Value: biome.Key})
		}
	}
	RegisterCommand(discord.SlashCommandCreate{
		Name:        "shop",
		Description: "Spend your hard-dug coins",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "view",
				Description: "Browse everything for sale",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "buy",
				Description: "Buy an item, backpack or biome unlock",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "item",
						Description: "What to buy",
						Required:    true,
						Choices:     buyChoices,
					},
				},
			},
		},
	}, handleShop)

	RegisterCommand(discord.SlashCommandCreate{
		Name:        "sell",
		Description: "Sell items from your inventory for coins",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:         "item",
				Description:  "The item to sell",
				Required:     true,
				Autocomplete: true,
			},
			discord.ApplicationCommandOptionInt{
				Name:        "amount",
				Description: "How many to sell (default: 1)",
				MinValue:    intPtr(1),
			},
		},
	}, handleSell)
	RegisterAutocompleteHandler("sell", handleSellAutocomplete)

	RegisterCommand(discord.SlashCommandCreate{
		Name:        "quests",
		Description: "View your daily digging quests",
	}, handleQuests)
	RegisterComponentHandler("quests:", handleQuestsComponent)

	RegisterCommand(discord.SlashCommandCreate{
		Name:        "wheel",
		Description: "Spin the wheel of fortune (every 6 hours)",
	}, handleWheel)

	var petChoices []discord.ApplicationCommandOptionChoiceString
	for _, pet := range allPets {
		petChoices = append(petChoices, discord.ApplicationCommandOptionChoiceString{Name: pet.Name, Value: pet.Key})
	}
	RegisterCommand(discord.SlashCommandCreate{
		Name:        "pets",
		Description: "Manage your digging companions",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "list",
				Description: "View your pets",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "equip",
				Description: "Bring a pet on your digging sessions",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "pet",
						Description: "The pet to equip",
						Required:    true,
						Choices:     petChoices,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "unequip",
				Description: "Leave a pet at home",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "pet",
						Description: "The pet to unequip",
						Required:    true,
						Choices:     petChoices,
					},
				},
			},
		},
	}, handlePets)
}

// --- Responses ---

func economyRespond(event *events.ApplicationCommandInteractionCreate, content string, ephemeral bool) {
	err := event.CreateMessage(discord.NewMessageCreateBuilder().
		SetIsComponentsV2(true).
		AddComponents(discord.NewContainer(discord.NewTextDisplay(content))).
		SetEphemeral(ephemeral).
		Build())
	if err != nil {
		LogEconomy(MsgEconomyRespondError, err)
	}
}

// --- Profile ---

func handleProfile(event *events.ApplicationCommandInteractionCreate) {
	ctx := AppContext
	data := event.SlashCommandInteractionData()

	user := event.User()
	if target, ok := data.OptUser("user"); ok {
		user = target
	}

	record, err := GetOrCreatePlayer(ctx, user.ID)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}

	level := record.Level()
	levelFloor := XPForLevel(level)
	levelCeil := XPForLevel(level + 1)
	ratio := float64(record.XP-levelFloor) / float64(levelCeil-levelFloor)

	backpack := BackpackByKey(record.Backpack)

	lines := []string{
		fmt.Sprintf(MsgProfileHeader, user.EffectiveName()),
		fmt.Sprintf(MsgProfileLevel, level, ProgressBar(ratio), FormatNumber(record.XP),
			FormatNumber(record.XP-levelFloor), FormatNumber(levelCeil-levelFloor)),
		fmt.Sprintf(MsgProfileWallet, emojiCoin, FormatNumber(record.Wallet)),
		fmt.Sprintf(MsgProfileBank, FormatNumber(record.Bank), FormatNumber(record.BankSpace)),
		fmt.Sprintf(MsgProfileDeepest, FormatNumber(record.DeepestDig), Plural(record.DeepestDig)),
		fmt.Sprintf(MsgProfileBackpack, backpack.Emoji, backpack.Name, FormatNumber(backpack.Capacity)),
	}
	if record.Prestige > 0 {
		lines = append(lines, fmt.Sprintf(MsgProfilePrestige, record.Prestige))
	}
	economyRespond(event, strings.Join(lines, "\n"), false)
}

// --- Inventory ---

func handleInventory(event *events.ApplicationCommandInteractionCreate) {
	ctx := AppContext
	user := event.User()

	inventory, err := GetInventory(ctx, user.ID)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}

	var lines []string
	// Catalog order keeps the listing stable between views.
	for _, item := range allItems {
		if qty := inventory[item.Key]; qty > 0 {
			lines = append(lines, fmt.Sprintf(MsgInventoryLine, item.Emoji, item.Name, FormatNumber(qty)))
		}
	}
	if len(lines) == 0 {
		economyRespond(event, MsgInventoryEmpty, true)
		return
	}
	content := fmt.Sprintf(MsgInventoryHeader, user.EffectiveName()) + "\n" + strings.Join(lines, "\n")
	economyRespond(event, content, true)
}

// --- Shop ---

func handleShop(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	if data.SubCommandName == nil {
		return
	}
	switch *data.SubCommandName {
	case "view":
		handleShopView(event)
	case "buy":
		handleShopBuy(event, data)
	}
}

func handleShopView(event *events.ApplicationCommandInteractionCreate) {
	lines := []string{MsgShopHeader}
	for _, item := range shopItems {
		lines = append(lines, fmt.Sprintf(MsgShopLine, item.Emoji, item.Name, emojiCoin, FormatNumber(item.Price), item.Description))
	}
	for _, bp := range backpacksByTier {
		if bp.Price > 0 {
			lines = append(lines, fmt.Sprintf(MsgShopLine, bp.Emoji, bp.Name, emojiCoin, FormatNumber(bp.Price), bp.Description))
		}
	}
	for _, biome := range allBiomes {
		if biome.Unlock.Price > 0 {
			lines = append(lines, fmt.Sprintf(MsgShopLine, "🗺️", biome.Name, emojiCoin, FormatNumber(biome.Unlock.Price), biome.Description))
		}
	}
	economyRespond(event, strings.Join(lines, "\n"), false)
}

func handleShopBuy(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	ctx := AppContext
	userID := event.User().ID
	key := data.String("item")

	if item, ok := ItemByKey(key); ok && item.Price > 0 {
		// Permanent power-ups are one per player.
		if item.Key == itemRailgun.Key {
			qty, err := GetItemQuantity(ctx, userID, item.Key)
			if err != nil {
				LogEconomy(MsgEconomyQueryError, err)
				return
			}
			if qty > 0 {
				economyRespond(event, MsgShopOwnItem, true)
				return
			}
		}
		if !spendOrComplain(event, userID, item.Price) {
			return
		}
		if err := AddItemQuantity(ctx, userID, item.Key, 1); err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			return
		}
		economyRespond(event, fmt.Sprintf(MsgShopBought, item.Emoji, item.Name, emojiCoin, FormatNumber(item.Price)), false)
		return
	}

	for _, bp := range backpacksByTier {
		if bp.Key != key || bp.Price == 0 {
			continue
		}
		record, err := GetOrCreatePlayer(ctx, userID)
		if err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			return
		}
		if record.Backpack == bp.Key {
			economyRespond(event, MsgShopOwnItem, true)
			return
		}
		if !spendOrComplain(event, userID, bp.Price) {
			return
		}
		if err := SetPlayerBackpack(ctx, userID, bp.Key); err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			return
		}
		economyRespond(event, fmt.Sprintf(MsgShopBought, bp.Emoji, bp.Name, emojiCoin, FormatNumber(bp.Price)), false)
		return
	}

	if biome, ok := BiomeByKey(key); ok && biome.Unlock.Price > 0 {
		record, err := GetOrCreatePlayer(ctx, userID)
		if err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			return
		}
		if record.Level() < biome.Unlock.Level {
			economyRespond(event, fmt.Sprintf(ErrDigBiomeLevel, biome.Unlock.Level, biome.Name), true)
			return
		}
		unlocked, err := HasBiomeUnlock(ctx, userID, biome.Key)
		if err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			return
		}
		if unlocked {
			economyRespond(event, MsgShopOwnItem, true)
			return
		}
		if !spendOrComplain(event, userID, biome.Unlock.Price) {
			return
		}
		if err := UnlockBiome(ctx, userID, biome.Key); err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			return
		}
		economyRespond(event, fmt.Sprintf(MsgShopUnlockBiome, biome.Name, biome.Key), false)
		return
	}

	economyRespond(event, ErrShopUnknownItem, true)
}

// spendOrComplain debits the price, replying with the shortfall message when
// the wallet can't cover it.
func spendOrComplain(event *events.ApplicationCommandInteractionCreate, userID snowflake.ID, price int) bool {
	paid, err := SpendCoins(AppContext, userID, price)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return false
	}
	if !paid {
		economyRespond(event, fmt.Sprintf(ErrShopCannotAfford, emojiCoin, FormatNumber(price)), true)
		return false
	}
	return true
}

// --- Sell ---

func handleSell(event *events.ApplicationCommandInteractionCreate) {
	ctx := AppContext
	data := event.SlashCommandInteractionData()
	userID := event.User().ID

	item, ok := ItemByKey(data.String("item"))
	if !ok || !item.Sellable() {
		economyRespond(event, ErrSellNotSellable, true)
		return
	}

	amount := 1
	if v, ok := data.OptInt("amount"); ok {
		amount = v
	}

	owned, err := GetItemQuantity(ctx, userID, item.Key)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}
	if amount > owned {
		economyRespond(event, fmt.Sprintf(ErrSellNotEnough, FormatNumber(owned)), true)
		return
	}

	if err := AddItemQuantity(ctx, userID, item.Key, -amount); err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}
	credited, err := AddCoins(ctx, userID, item.Sell*amount, 1)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}
	economyRespond(event, fmt.Sprintf(MsgSellSold, item.Emoji, item.Name, FormatNumber(amount), emojiCoin, FormatNumber(credited)), false)
}

func handleSellAutocomplete(event *events.AutocompleteInteractionCreate) {
	focusedValue := ""
	for _, opt := range event.Data.Options {
		if opt.Focused {
			if opt.Value != nil {
				focusedValue = strings.ToLower(strings.Trim(string(opt.Value), `"`))
			}
			break
		}
	}

	inventory, err := GetInventory(AppContext, event.User().ID)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}

	var choices []discord.AutocompleteChoice
	for _, item := range allItems {
		if !item.Sellable() || inventory[item.Key] <= 0 {
			continue
		}
		name := fmt.Sprintf("%s (x%d, %d each)", item.Name, inventory[item.Key], item.Sell)
		if focusedValue != "" && !strings.Contains(strings.ToLower(item.Name), focusedValue) {
			continue
		}
		choices = append(choices, discord.AutocompleteChoiceString{
			Name:  Truncate(name, 100),
			Value: item.Key,
		})
		if len(choices) >= 25 {
			break
		}
	}
	event.AutocompleteResult(choices)
}

// --- Quests ---

// ensureDailyQuests rolls a fresh daily board when the previous one expired.
// Unexpired boards are returned as-is, claimed quests included.
func ensureDailyQuests(ctx context.Context, userID snowflake.ID, level int) ([]*PlayerQuest, error) {
	quests, err := GetQuests(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, q := range quests {
		if q.ExpiresAt.After(now) {
			return quests, nil
		}
	}

	expiry := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	fresh := make([]*PlayerQuest, 0, len(digQuestTemplates))
	for _, tmpl := range digQuestTemplates {
		fresh = append(fresh, &PlayerQuest{
			QuestKey:  tmpl.Key,
			Goal:      tmpl.BaseGoal + tmpl.GoalPerLevel*level,
			Reward:    tmpl.BaseReward + tmpl.RewardPerLevel*level,
			ExpiresAt: expiry,
		})
	}
	if err := ReplaceQuests(ctx, userID, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func questTitle(q *PlayerQuest) string {
	for _, tmpl := range digQuestTemplates {
		if tmpl.Key == q.QuestKey {
			return fmt.Sprintf(tmpl.Title, FormatNumber(q.Goal))
		}
	}
	return q.QuestKey
}

func buildQuestBoard(userID snowflake.ID, quests []*PlayerQuest) []discord.LayoutComponent {
	var expiry time.Time
	claimable := false

	lines := make([]string, 0, len(quests)+1)
	for _, q := range quests {
		expiry = q.ExpiresAt
		status := ""
		switch {
		case q.Claimed:
			status = MsgQuestClaimed
		case q.Complete():
			status = MsgQuestComplete
			claimable = true
		}
		lines = append(lines, fmt.Sprintf(MsgQuestLine, questTitle(q),
			ProgressBar(float64(q.Progress)/float64(q.Goal)),
			FormatNumber(q.Progress), FormatNumber(q.Goal),
			emojiCoin, FormatNumber(q.Reward), status))
	}

	header := fmt.Sprintf(MsgQuestsHeader, RelativeTimestamp(expiry))
	content := header + "\n\n" + strings.Join(lines, "\n")

	return []discord.LayoutComponent{
		discord.NewContainer(discord.NewTextDisplay(content)),
		discord.NewActionRow(
			discord.NewButton(discord.ButtonStyleSuccess, MsgQuestsBtnClaim, "quests:"+userID.String()+":claim", "", 0).
				WithDisabled(!claimable),
		),
	}
}

func handleQuests(event *events.ApplicationCommandInteractionCreate) {
	ctx := AppContext
	userID := event.User().ID

	record, err := GetOrCreatePlayer(ctx, userID)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}
	quests, err := ensureDailyQuests(ctx, userID, record.Level())
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}

	err = event.CreateMessage(discord.NewMessageCreateBuilder().
		SetIsComponentsV2(true).
		AddComponents(buildQuestBoard(userID, quests)...).
		Build())
	if err != nil {
		LogEconomy(MsgEconomyRespondError, err)
	}
}

func handleQuestsComponent(event *events.ComponentInteractionCreate) {
	ctx := AppContext
	parts := strings.Split(event.Data.CustomID(), ":")
	if len(parts) != 3 || parts[2] != "claim" {
		return
	}
	ownerID, err := snowflake.Parse(parts[1])
	if err != nil {
		return
	}
	if event.User().ID != ownerID {
		digComponentEphemeral(event, ErrDigNotYourSession)
		return
	}

	quests, err := GetQuests(ctx, ownerID)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		_ = event.DeferUpdateMessage()
		return
	}

	total := 0
	for _, q := range quests {
		if !q.Complete() || q.Claimed {
			continue
		}
		claimed, err := ClaimQuest(ctx, ownerID, q.QuestKey)
		if err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			continue
		}
		if claimed {
			q.Claimed = true
			if credited, err := AddCoins(ctx, ownerID, q.Reward, 1); err == nil {
				total += credited
			}
		}
	}

	if err := event.UpdateMessage(discord.NewMessageUpdateBuilder().
		SetIsComponentsV2(true).
		AddComponents(buildQuestBoard(ownerID, quests)...).
		Build()); err != nil {
		LogEconomy(MsgEconomyRespondError, err)
	}

	content := MsgQuestsNone
	if total > 0 {
		content = fmt.Sprintf(MsgQuestsClaimed, emojiCoin, FormatNumber(total))
	}
	digFollowupReport(event, content)
}

// --- Wheel ---

func handleWheel(event *events.ApplicationCommandInteractionCreate) {
	ctx := AppContext
	userID := event.User().ID

	record, err := GetOrCreatePlayer(ctx, userID)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}

	if !record.WheelSpunAt.IsZero() {
		readyAt := record.WheelSpunAt.Add(wheelCooldown)
		if time.Now().Before(readyAt) {
			economyRespond(event, fmt.Sprintf(ErrWheelCooldown, RelativeTimestamp(readyAt)), true)
			return
		}
	}

	if err := SetWheelSpunAt(ctx, userID, time.Now()); err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}

	prize := wheelPrizes.Choice(newSessionRand())
	if prize.Item != nil {
		if err := AddItemQuantity(ctx, userID, prize.Item.Key, 1); err != nil {
			LogEconomy(MsgEconomyQueryError, err)
			return
		}
		economyRespond(event, fmt.Sprintf(MsgWheelWonItem, prize.Item.Display()), false)
		return
	}

	credited, err := AddCoins(ctx, userID, prize.Coins, 1)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}
	economyRespond(event, fmt.Sprintf(MsgWheelWonCoins, emojiCoin, FormatNumber(credited)), false)
}

// --- Pets ---

func handlePets(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	if data.SubCommandName == nil {
		return
	}
	switch *data.SubCommandName {
	case "list":
		handlePetsList(event)
	case "equip":
		handlePetsEquip(event, data, true)
	case "unequip":
		handlePetsEquip(event, data, false)
	}
}

func handlePetsList(event *events.ApplicationCommandInteractionCreate) {
	owned, err := GetPets(AppContext, event.User().ID)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}
	if len(owned) == 0 {
		economyRespond(event, MsgPetsNone, true)
		return
	}

	lines := []string{fmt.Sprintf(MsgPetsHeader, event.User().EffectiveName())}
	for _, p := range owned {
		pet, ok := PetByKey(p.PetKey)
		if !ok {
			continue
		}
		suffix := ""
		if p.Equipped {
			suffix = " • Equipped"
		}
		lines = append(lines, fmt.Sprintf(MsgPetsLine, pet.Emoji, pet.Name, p.Level, suffix))
	}
	economyRespond(event, strings.Join(lines, "\n"), false)
}

func handlePetsEquip(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData, equipped bool) {
	pet, ok := PetByKey(data.String("pet"))
	if !ok {
		economyRespond(event, ErrPetNotOwned, true)
		return
	}

	owned, err := SetPetEquipped(AppContext, event.User().ID, pet.Key, equipped)
	if err != nil {
		LogEconomy(MsgEconomyQueryError, err)
		return
	}
	if !owned {
		economyRespond(event, ErrPetNotOwned, true)
		return
	}

	if equipped {
		economyRespond(event, fmt.Sprintf(MsgPetEquipped, pet.Name), false)
	} else {
		economyRespond(event, fmt.Sprintf(MsgPetBenched, pet.Name), false)
	}
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
)

const (
	digIdleTimeout     = 10 * time.Minute
	digSurfaceCooldown = 5 * time.Minute
	digRailgunCooldown = time.Hour
	digRailgunHP       = 30
	digDynamiteHP      = 10
	digDynamiteRadius  = 2
	digAttachmentName  = "digging.png"
)

// digGame binds one player's DigSession to its Discord message. All access to
// the session goes through mu; the session itself takes no locks.
type digGame struct {
	mu sync.Mutex

	session  *DigSession
	userID   snowflake.ID
	username string

	channelID snowflake.ID
	messageID snowflake.ID

	avatar       *image.RGBA
	dynamite     int
	hasRailgun   bool
	railgunReady time.Time

	startedAt   time.Time
	actionCount int
	settled     bool
}

var (
	activeDigs   = map[snowflake.ID]*digGame{}
	activeDigsMu sync.RWMutex

	digCooldowns   = map[snowflake.ID]time.Time{}
	digCooldownsMu sync.Mutex
)

// ActiveDigCount reports how many sessions are currently underground.
func ActiveDigCount() int {
	activeDigsMu.RLock()
	defer activeDigsMu.RUnlock()
	return len(activeDigs)
}

func removeDigGame(userID snowflake.ID) {
	activeDigsMu.Lock()
	delete(activeDigs, userID)
	activeDigsMu.Unlock()
}

func init() {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(allBiomes))
	for _, b := range allBiomes {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{Name: b.Name, Value: b.Key})
	}

	RegisterCommand(discord.SlashCommandCreate{
		Name:        "dig",
		Description: "Start a digging session and tunnel down for coins and treasure",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:        "biome",
				Description: "Where to dig (default: Backyard)",
				Choices:     choices,
			},
		},
	}, handleDig)

	RegisterComponentHandler("dig:", handleDigComponent)
}

// --- Slash Command ---

func handleDig(event *events.ApplicationCommandInteractionCreate) {
	ctx := AppContext
	user := event.User()
	data := event.SlashCommandInteractionData()

	activeDigsMu.RLock()
	_, alreadyDigging := activeDigs[user.ID]
	activeDigsMu.RUnlock()
	if alreadyDigging {
		digRespondEphemeral(event, ErrDigSessionActive)
		return
	}

	digCooldownsMu.Lock()
	readyAt := digCooldowns[user.ID]
	digCooldownsMu.Unlock()
	if time.Now().Before(readyAt) {
		digRespondEphemeral(event, fmt.Sprintf(ErrDigCooldown, RelativeTimestamp(readyAt)))
		return
	}

	biomeKey := "backyard"
	if v, ok := data.OptString("biome"); ok {
		biomeKey = v
	}
	biome, ok := BiomeByKey(biomeKey)
	if !ok {
		digRespondEphemeral(event, ErrDigUnknownBiome)
		return
	}

	record, err := GetOrCreatePlayer(ctx, user.ID)
	if err != nil {
		LogDigging(MsgDigPrepareFail, err)
		digRespondEphemeral(event, ErrDigSessionGone)
		return
	}

	if record.Level() < biome.Unlock.Level {
		digRespondEphemeral(event, fmt.Sprintf(ErrDigBiomeLevel, biome.Unlock.Level, biome.Name))
		return
	}
	if biome.Unlock.Price > 0 {
		unlocked, err := HasBiomeUnlock(ctx, user.ID, biome.Key)
		if err != nil {
			LogDigging(MsgDigPrepareFail, err)
			return
		}
		if !unlocked {
			digRespondEphemeral(event, fmt.Sprintf(ErrDigBiomeLocked, biome.Name, emojiCoin, FormatNumber(biome.Unlock.Price)))
			return
		}
	}
	if biome.EntryPrice > 0 {
		paid, err := SpendCoins(ctx, user.ID, biome.EntryPrice)
		if err != nil {
			LogDigging(MsgDigPrepareFail, err)
			return
		}
		if !paid {
			digRespondEphemeral(event, fmt.Sprintf(ErrDigEntryFee, emojiCoin, FormatNumber(biome.EntryPrice), biome.Name))
			return
		}
	}

	// Asset fetches can block; defer and fill the response in afterwards.
	if err := event.DeferCreateMessage(false); err != nil {
		return
	}

	game, err := prepareDigGame(ctx, user, record, biome)
	if err != nil {
		LogDigging(MsgDigPrepareFail, err)
		_, _ = event.Client().Rest.UpdateInteractionResponse(event.ApplicationID(), event.Token(),
			discord.NewMessageUpdateBuilder().SetIsComponentsV2(true).
				AddComponents(discord.NewContainer(discord.NewTextDisplay(ErrDigSessionGone))).Build())
		return
	}
	game.channelID = event.Channel().ID()

	activeDigsMu.Lock()
	if _, exists := activeDigs[user.ID]; exists {
		activeDigsMu.Unlock()
		_, _ = event.Client().Rest.UpdateInteractionResponse(event.ApplicationID(), event.Token(),
			discord.NewMessageUpdateBuilder().SetIsComponentsV2(true).
				AddComponents(discord.NewContainer(discord.NewTextDisplay(ErrDigSessionActive))).Build())
		return
	}
	activeDigs[user.ID] = game
	activeDigsMu.Unlock()

	update, err := digBoardUpdate(ctx, game, RenderOptions{Active: true})
	if err != nil {
		LogDigging(MsgDigRenderFail, err)
		removeDigGame(user.ID)
		return
	}
	msg, err := event.Client().Rest.UpdateInteractionResponse(event.ApplicationID(), event.Token(), update)
	if err != nil {
		LogDigging(MsgDigUpdateFail, err)
		removeDigGame(user.ID)
		return
	}
	game.messageID = msg.ID

	LogDigging(MsgDigSessionStarted, user.Username, biome.Name)
	digStartTimer(event.Client(), game, 0)
}

// prepareDigGame resolves the player's tools, backpack, pets and avatar into
// a fresh session.
func prepareDigGame(ctx context.Context, user discord.User, record *PlayerRecord, biome *Biome) (*digGame, error) {
	inventory, err := GetInventory(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	mods := DigModifiers{
		CoinMultiplier: 1,
		HPMultiplier:   1,
		MaxStamina:     100 + 20*record.Prestige,
		Backpack:       BackpackByKey(record.Backpack),
	}
	for _, shovel := range shovelsBestFirst {
		if inventory[shovel.Key] > 0 {
			mods.Shovel = shovel
			break
		}
	}
	for _, pickaxe := range pickaxesBestFirst {
		if inventory[pickaxe.Key] > 0 {
			mods.Pickaxe = pickaxe
			break
		}
	}

	equipped, err := GetEquippedPets(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, owned := range equipped {
		pet, ok := PetByKey(owned.PetKey)
		if !ok {
			continue
		}
		mods.CoinMultiplier += pet.CoinMultBase + pet.CoinMultLevel*float64(owned.Level)
		mods.HPMultiplier += pet.HPMultBase + pet.HPMultLevel*float64(owned.Level)
		mods.MaxStamina += pet.StaminaBase + pet.StaminaLevel*owned.Level
	}

	avatar, err := digAssets.Avatar(ctx, user.ID, user.EffectiveAvatarURL())
	if err != nil {
		return nil, err
	}

	return &digGame{
		session:      NewDigSession(biome, mods, nil),
		userID:       user.ID,
		username:     user.EffectiveName(),
		avatar:       avatar,
		dynamite:     inventory[itemDynamite.Key],
		hasRailgun:   inventory[itemRailgun.Key] > 0,
		railgunReady: record.RailgunExpiresAt,
		startedAt:    time.Now(),
	}, nil
}

// --- Component Handlers ---

func handleDigComponent(event *events.ComponentInteractionCreate) {
	parts := strings.Split(event.Data.CustomID(), ":")
	if len(parts) != 3 {
		return
	}
	ownerID, err := snowflake.Parse(parts[1])
	if err != nil {
		return
	}
	action := parts[2]

	if event.User().ID != ownerID {
		digComponentEphemeral(event, ErrDigNotYourSession)
		return
	}

	activeDigsMu.RLock()
	game := activeDigs[ownerID]
	activeDigsMu.RUnlock()
	if game == nil {
		digComponentEphemeral(event, ErrDigSessionGone)
		return
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	if game.settled {
		digComponentEphemeral(event, ErrDigSessionGone)
		return
	}
	game.actionCount++

	switch action {
	case "left":
		digHandleSide(event, game, -1)
	case "right":
		digHandleSide(event, game, 1)
	case "down":
		digHandleDown(event, game)
	case "dig":
		digHandleDig(event, game)
	case "coins":
		digHandleCoins(event, game)
	case "items":
		digHandleItems(event, game)
	case "surface":
		digHandleSurface(event, game)
	case "confirm_yes":
		digHandleConfirmYes(event, game)
	case "confirm_no":
		digUpdateConfirm(event, game)
	case "railgun":
		digHandleRailgun(event, game)
	case "dynamite":
		digHandleDynamite(event, game)
	}

	if !game.settled {
		digStartTimer(event.Client(), game, game.actionCount)
	}
}

func digHandleSide(event *events.ComponentInteractionCreate, game *digGame, dx int) {
	s := game.session
	x, y := s.Position()
	nx := x + dx
	if nx < 0 || nx >= digGridWidth {
		_ = event.DeferUpdateMessage()
		return
	}

	if y < 0 || s.CellAt(nx, y) == nil {
		s.Reposition(nx, y)
	} else if dx < 0 {
		s.SetTarget(targetLeft)
	} else {
		s.SetTarget(targetRight)
	}
	digRefreshBoard(event, game, RenderOptions{Active: true})
}

func digHandleDown(event *events.ComponentInteractionCreate, game *digGame) {
	s := game.session
	s.SetTarget(targetDown)
	if cell := s.TargetCell(); cell == nil || cell.HP <= 0 {
		s.Move()
		for s.TargetCell() == nil {
			s.Move()
		}
	}
	digRefreshBoard(event, game, RenderOptions{Active: true})
}

func digHandleDig(event *events.ComponentInteractionCreate, game *digGame) {
	s := game.session
	cell := s.TargetCell()
	if cell == nil || s.Stamina() <= 0 {
		_ = event.DeferUpdateMessage()
		return
	}
	if cell.Item != nil && cell.Item.IsOre() && s.pickaxe == nil {
		_ = event.DeferUpdateMessage()
		return
	}
	if cell.HP > 0 && s.wouldOverflow(cell.Item) {
		_ = event.DeferUpdateMessage()
		return
	}

	s.Dig()
	digRefreshBoard(event, game, RenderOptions{Active: true})
}

func digHandleCoins(event *events.ComponentInteractionCreate, game *digGame) {
	s := game.session
	content := fmt.Sprintf(MsgDigCoinsCollected, emojiCoin, FormatNumber(s.CollectedCoins()))
	if s.coinMultiplier > 1 {
		pct := strconv.FormatFloat((s.coinMultiplier-1)*100, 'f', -1, 64)
		content += fmt.Sprintf(MsgDigCoinsMultiplier, emojiCoin, FormatNumber(s.CollectedCoins()), pct)
	}
	digComponentEphemeral(event, content)
}

func digHandleItems(event *events.ComponentInteractionCreate, game *digGame) {
	s := game.session
	content := MsgDigNoItemsYet
	if !s.Collected().Empty() {
		content = fmt.Sprintf(MsgDigItemsCollected, digItemLines(s.Collected()))
	}
	content += fmt.Sprintf(MsgDigUsingBackpack, s.backpack.Display())
	digComponentEphemeral(event, content)
}

func digHandleSurface(event *events.ComponentInteractionCreate, game *digGame) {
	s := game.session
	staminaRatio := float64(s.Stamina()) / float64(s.MaxStamina())
	packRatio := float64(s.BackpackOccupied()) / float64(s.backpack.Capacity)

	if staminaRatio > 0.5 && packRatio < 0.5 {
		uid := game.userID.String()
		_ = event.CreateMessage(discord.NewMessageCreateBuilder().
			SetIsComponentsV2(true).
			SetEphemeral(true).
			AddComponents(
				discord.NewContainer(discord.NewTextDisplay(MsgDigConfirmSurface)),
				discord.NewActionRow(
					discord.NewButton(discord.ButtonStyleDanger, MsgDigConfirmYes, "dig:"+uid+":confirm_yes", "", 0),
					discord.NewButton(discord.ButtonStyleSecondary, MsgDigConfirmNo, "dig:"+uid+":confirm_no", "", 0),
				),
			).Build())
		return
	}

	summary := digFinish(event.Client(), game, event)
	digFollowupReport(event, digEarningsReport(game, summary))
}

// digHandleConfirmYes runs on the ephemeral confirmation message, so the
// board itself is edited over REST.
func digHandleConfirmYes(event *events.ComponentInteractionCreate, game *digGame) {
	digUpdateConfirm(event, game)
	summary := digFinish(event.Client(), game, nil)
	digFollowupReport(event, digEarningsReport(game, summary))
}

// digUpdateConfirm re-renders the confirmation prompt with both buttons dead.
func digUpdateConfirm(event *events.ComponentInteractionCreate, game *digGame) {
	uid := game.userID.String()
	_ = event.UpdateMessage(discord.NewMessageUpdateBuilder().
		SetIsComponentsV2(true).
		AddComponents(
			discord.NewContainer(discord.NewTextDisplay(MsgDigConfirmSurface)),
			discord.NewActionRow(
				discord.NewButton(discord.ButtonStyleDanger, MsgDigConfirmYes, "dig:"+uid+":confirm_yes", "", 0).WithDisabled(true),
				discord.NewButton(discord.ButtonStyleSecondary, MsgDigConfirmNo, "dig:"+uid+":confirm_no", "", 0).WithDisabled(true),
			),
		).Build())
}

func digHandleRailgun(event *events.ComponentInteractionCreate, game *digGame) {
	if !game.hasRailgun {
		digComponentEphemeral(event, MsgDigRailgunNone)
		return
	}
	now := time.Now()
	if now.Before(game.railgunReady) {
		digComponentEphemeral(event, MsgDigRailgunCooling+fmt.Sprintf(MsgDigRailgunAgain, RelativeTimestamp(game.railgunReady)))
		return
	}

	game.railgunReady = now.Add(digRailgunCooldown)
	if err := SetRailgunExpiry(AppContext, game.userID, game.railgunReady); err != nil {
		LogDigging(MsgDigFlushFail, game.username, err)
	}

	coins, items := game.session.CascadingDig(digRailgunHP)
	digRefreshBoard(event, game, RenderOptions{Active: true})

	report := MsgDigUsedRailgun + "\n" + MsgDigCollectedField + digHaulLines(coins, items) +
		fmt.Sprintf(MsgDigRailgunAgain, RelativeTimestamp(game.railgunReady))
	digFollowupReport(event, report)
}

func digHandleDynamite(event *events.ComponentInteractionCreate, game *digGame) {
	if game.dynamite <= 0 {
		digComponentEphemeral(event, MsgDigNoDynamite)
		return
	}
	game.dynamite--
	if err := AddItemQuantity(AppContext, game.userID, itemDynamite.Key, -1); err != nil {
		LogDigging(MsgDigFlushFail, game.username, err)
	}

	totalHP, coins, items := game.session.SurroundingDig(digDynamiteHP, digDynamiteRadius)
	digRefreshBoard(event, game, RenderOptions{Active: true, DrawHP: true})

	report := MsgDigUsedDynamite + "\n" + fmt.Sprintf(MsgDigDynamiteDealt, int(totalHP)) +
		"\n" + MsgDigCollectedField + digHaulLines(coins, items)
	digFollowupReport(event, report)
}

// --- Surfacing ---

// digFinish settles the session: the haul is persisted, the cooldown starts
// and the board swaps to its final state. When boardEvent is nil the board is
// edited over REST instead of as the interaction response.
func digFinish(client *bot.Client, game *digGame, boardEvent *events.ComponentInteractionCreate) DigSummary {
	game.settled = true
	removeDigGame(game.userID)

	digCooldownsMu.Lock()
	digCooldowns[game.userID] = time.Now().Add(digSurfaceCooldown)
	digCooldownsMu.Unlock()

	summary := game.session.Surface()
	ctx := AppContext
	if err := settleDigSummary(ctx, game.userID, summary); err != nil {
		LogDigging(MsgDigFlushFail, game.username, err)
	}
	LogDigging(MsgDigSessionSurfaced, game.username, summary.Depth, summary.Coins)

	update, err := digBoardUpdate(ctx, game, RenderOptions{})
	if err != nil {
		LogDigging(MsgDigRenderFail, err)
		if boardEvent != nil {
			_ = boardEvent.DeferUpdateMessage()
		}
		return summary
	}
	if boardEvent != nil {
		if err := boardEvent.UpdateMessage(update); err != nil {
			LogDigging(MsgDigUpdateFail, err)
		}
	} else if game.messageID != 0 {
		if _, err := client.Rest.UpdateMessage(game.channelID, game.messageID, update); err != nil {
			LogDigging(MsgDigUpdateFail, err)
		}
	}
	return summary
}

// settleDigSummary banks everything a finished session earned and advances
// the daily quest counters.
func settleDigSummary(ctx context.Context, userID snowflake.ID, summary DigSummary) error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if summary.Coins > 0 {
		_, err := AddCoins(ctx, userID, summary.Coins, 1)
		record(err)
	}
	if !summary.Items.Empty() {
		bulk := map[string]int{}
		for _, item := range summary.Items.Items() {
			bulk[item.Key] = summary.Items.Get(item)
		}
		record(AddItemsBulk(ctx, userID, bulk))
	}
	record(SetDeepestDig(ctx, userID, summary.Depth))
	if summary.XP > 0 {
		record(AddXP(ctx, userID, summary.XP))
	}
	if summary.BankSpace > 0 {
		record(AddBankSpace(ctx, userID, summary.BankSpace))
	}

	record(SetQuestProgressMax(ctx, userID, questDigDepth, summary.Depth))
	record(AddQuestProgress(ctx, userID, questDigCoins, summary.Coins))
	record(AddQuestProgress(ctx, userID, questDigItems, summary.NonDirtItems))
	record(AddQuestProgress(ctx, userID, questDigOres, summary.Ores))
	record(AddQuestProgress(ctx, userID, questDigStamina, summary.StaminaUsed))
	record(AddQuestProgress(ctx, userID, questDigHP, summary.HPDealt))
	return firstErr
}

// FlushActiveSessions force-surfaces every in-flight session so no collected
// loot is lost across a shutdown or restart.
func FlushActiveSessions(ctx context.Context) {
	activeDigsMu.Lock()
	games := make([]*digGame, 0, len(activeDigs))
	for _, g := range activeDigs {
		games = append(games, g)
	}
	activeDigs = map[snowflake.ID]*digGame{}
	activeDigsMu.Unlock()

	for _, game := range games {
		game.mu.Lock()
		if !game.settled {
			game.settled = true
			summary := game.session.Surface()
			if err := settleDigSummary(ctx, game.userID, summary); err != nil {
				LogDigging(MsgDigFlushFail, game.username, err)
			} else {
				LogDigging(MsgDigSessionSurfaced, game.username, summary.Depth, summary.Coins)
			}
		}
		game.mu.Unlock()
	}
}

// digStartTimer auto-surfaces the session when no action arrives within the
// idle window. Every action bumps actionCount, invalidating older timers.
func digStartTimer(client *bot.Client, game *digGame, actionCount int) {
	safeGo(func() {
		timer := time.NewTimer(digIdleTimeout)
		defer timer.Stop()
		select {
		case <-AppContext.Done():
			return
		case <-timer.C:
		}

		game.mu.Lock()
		defer game.mu.Unlock()
		if game.settled || game.actionCount != actionCount {
			return
		}
		LogDigging(MsgDigSessionTimedOut, game.username)
		digFinish(client, game, nil)
	})
}

// --- Message Building ---

func digBoardUpdate(ctx context.Context, game *digGame, opts RenderOptions) (discord.MessageUpdate, error) {
	png, err := RenderDigImage(ctx, game.session, game.avatar, opts)
	if err != nil {
		return discord.MessageUpdate{}, err
	}
	return discord.NewMessageUpdateBuilder().
		SetIsComponentsV2(true).
		AddComponents(digComponents(game, opts.Active)...).
		SetFiles(discord.NewFile(digAttachmentName, "", bytes.NewReader(png))).
		Build(), nil
}

func digComponents(game *digGame, active bool) []discord.LayoutComponent {
	s := game.session
	uid := game.userID.String()

	sub := []discord.ContainerSubComponent{
		discord.NewTextDisplay(fmt.Sprintf(MsgDigHeader, game.username) + "\n" + digMeters(s)),
		discord.NewActionRow(
			discord.NewButton(discord.ButtonStyleSecondary, FormatNumber(s.CollectedCoins())+" coins", "dig:"+uid+":coins", "", 0).
				WithDisabled(!active),
			discord.NewButton(discord.ButtonStyleSecondary, fmt.Sprintf(MsgDigItemsBtn, s.Collected().Total()), "dig:"+uid+":items", "", 0).
				WithDisabled(!active),
		),
		discord.NewSeparator(discord.SeparatorSpacingSizeSmall),
		discord.NewMediaGallery(discord.MediaGalleryItem{
			Media: discord.UnfurledMediaItem{URL: "attachment://" + digAttachmentName},
		}),
	}

	depth := s.Depth()
	sub = append(sub, discord.NewTextDisplay(fmt.Sprintf(MsgDigBiomeDepth, s.Biome().Name, FormatNumber(depth), Plural(depth))))

	if !active {
		sub = append(sub, discord.NewTextDisplay(fmt.Sprintf(MsgDigElapsed, HumanizeDuration(time.Since(game.startedAt), 2))))
		return []discord.LayoutComponent{discord.NewContainer(sub...)}
	}

	sub = append(sub, discord.NewActionRow(digNavButtons(s, uid)...))

	cell := s.TargetCell()
	if cell != nil && cell.Item != nil {
		sub = append(sub,
			discord.NewSeparator(discord.SeparatorSpacingSizeSmall),
			discord.NewTextDisplay(digTargetInfo(cell)),
		)
	}
	if cell != nil {
		sub = append(sub, discord.NewActionRow(digActionButton(s, uid, cell)))
	}

	return []discord.LayoutComponent{
		discord.NewContainer(sub...),
		discord.NewActionRow(digPowerRow(game)...),
	}
}

// digMeters renders the stamina and backpack bars plus the condensed haul.
func digMeters(s *DigSession) string {
	var b strings.Builder

	bolt := emojiBolt
	if s.Stamina() >= s.MaxStamina() {
		bolt = emojiMaxBolt
	}
	fmt.Fprintf(&b, "%s %s %s/%s\n", bolt,
		ProgressBar(float64(s.Stamina())/float64(s.MaxStamina())),
		FormatNumber(s.Stamina()), FormatNumber(s.MaxStamina()))

	fmt.Fprintf(&b, "%s %s %s/%s", s.backpack.Emoji,
		ProgressBar(float64(s.BackpackOccupied())/float64(s.backpack.Capacity)),
		FormatNumber(s.BackpackOccupied()), FormatNumber(s.backpack.Capacity))

	items := s.Collected().Items()
	for i := 0; i < len(items); i += 5 {
		b.WriteString("\n-# ")
		for j := i; j < min(i+5, len(items)); j++ {
			if j > i {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s x%d", items[j].Emoji, s.Collected().Get(items[j]))
		}
	}
	return b.String()
}

func digNavButtons(s *DigSession, uid string) []discord.InteractiveComponent {
	x, y := s.Position()

	downLabel := MsgDigBtnDeeper
	downDisabled := false
	if below := s.CellAt(x, y+1); below != nil && below.HP > 0 {
		tx, ty := s.TargetXY()
		if tx == x && ty == y+1 {
			downLabel = MsgDigBtnSeeBelow
			downDisabled = true
		} else {
			downLabel = MsgDigBtnViewBottom
		}
	}

	leftLabel, rightLabel := MsgDigBtnMoveLeft, MsgDigBtnMoveRight
	if y >= 0 {
		if s.CellAt(x-1, y) != nil {
			leftLabel = MsgDigBtnViewLeft
		}
		if s.CellAt(x+1, y) != nil {
			rightLabel = MsgDigBtnViewRight
		}
	}

	return []discord.InteractiveComponent{
		discord.NewButton(discord.ButtonStyleSecondary, leftLabel, "dig:"+uid+":left", "", 0).WithDisabled(x == 0),
		discord.NewButton(discord.ButtonStyleSecondary, downLabel, "dig:"+uid+":down", "", 0).WithDisabled(downDisabled),
		discord.NewButton(discord.ButtonStyleSecondary, rightLabel, "dig:"+uid+":right", "", 0).WithDisabled(x == digGridWidth-1),
	}
}

func digTargetInfo(cell *Cell) string {
	var b strings.Builder
	b.WriteString("### " + cell.Item.Display())
	if cell.HP > 0 {
		fmt.Fprintf(&b, "\n%s %s %s/%s", emojiHP,
			ProgressBar(cell.HP/cell.Item.HP),
			FormatHP(cell.HP), FormatHP(cell.Item.HP))
		fmt.Fprintf(&b, "\n"+MsgDigOccupiesStorage, FormatNumber(cell.Item.Volume), Plural(cell.Item.Volume))
	}
	return b.String()
}

func digActionButton(s *DigSession, uid string, cell *Cell) discord.ButtonComponent {
	id := "dig:" + uid + ":dig"

	if cell.Item != nil && cell.Item.IsOre() && s.pickaxe == nil {
		return discord.NewButton(discord.ButtonStyleSecondary, MsgDigNoPickaxe, id, "", 0).WithDisabled(true)
	}
	if s.Stamina() <= 0 {
		return discord.NewButton(discord.ButtonStyleSecondary, MsgDigTooTired, id, "", 0).WithDisabled(true)
	}
	if cell.Coins > 0 {
		return discord.NewButton(discord.ButtonStylePrimary, fmt.Sprintf(MsgDigCollectCoins, FormatNumber(cell.Coins)), id, "", 0)
	}
	if s.wouldOverflow(cell.Item) {
		return discord.NewButton(discord.ButtonStyleSecondary, MsgDigBackpackFull, id, "", 0).WithDisabled(true)
	}

	verb := "Dig"
	if cell.Item != nil && cell.Item.IsOre() {
		verb = "Mine"
	}
	tool, _ := s.ActiveTool()
	toolName := MsgDigBareHands
	if tool != nil {
		toolName = tool.Name
	}
	return discord.NewButton(discord.ButtonStylePrimary, fmt.Sprintf(MsgDigToolAction, verb, toolName), id, "", 0)
}

func digPowerRow(game *digGame) []discord.InteractiveComponent {
	s := game.session
	uid := game.userID.String()
	x, y := s.Position()

	surfaceStyle := discord.ButtonStyleSecondary
	cell := s.TargetCell()
	if s.Stamina() <= 0 || (cell != nil && cell.Item != nil && s.wouldOverflow(cell.Item)) {
		surfaceStyle = discord.ButtonStyleSuccess
	}
	row := []discord.InteractiveComponent{
		discord.NewButton(surfaceStyle, MsgDigBtnSurface, "dig:"+uid+":surface", "", 0),
	}

	if game.hasRailgun {
		disabled := time.Now().Before(game.railgunReady)
		if below := s.CellAt(x, y+1); below != nil && below.Item != nil && s.wouldOverflow(below.Item) {
			disabled = true
		}
		row = append(row, discord.NewButton(discord.ButtonStyleDanger, MsgDigBtnRailgun, "dig:"+uid+":railgun", "", 0).
			WithDisabled(disabled))
	}

	row = append(row, discord.NewButton(discord.ButtonStyleDanger,
		itemDynamite.Name+" x"+strconv.Itoa(game.dynamite), "dig:"+uid+":dynamite", "", 0).
		WithDisabled(game.dynamite <= 0 || s.BackpackOccupied() >= s.backpack.Capacity))
	return row
}

// --- Reports ---

func digItemLines(items *ItemCounts) string {
	var lines []string
	for _, item := range items.Items() {
		lines = append(lines, fmt.Sprintf("%s **%s** x%s", item.Emoji, item.Name, FormatNumber(items.Get(item))))
	}
	return strings.Join(lines, "\n")
}

// digHaulLines is digItemLines with a leading coins line, for power-up and
// surface reports.
func digHaulLines(coins int, items *ItemCounts) string {
	var lines []string
	if coins > 0 {
		lines = append(lines, fmt.Sprintf("%s **%s**", emojiCoin, FormatNumber(coins)))
	}
	if itemLines := digItemLines(items); itemLines != "" {
		lines = append(lines, itemLines)
	}
	if len(lines) == 0 {
		return MsgDigNoItemsYet
	}
	return strings.Join(lines, "\n")
}

func digEarningsReport(game *digGame, summary DigSummary) string {
	var b strings.Builder
	if summary.Coins == 0 && summary.Items.Empty() {
		b.WriteString(MsgDigEmptyHanded)
	} else {
		b.WriteString(MsgDigEarnedHeader)
		b.WriteString(digHaulLines(summary.Coins, summary.Items))
	}
	b.WriteString("\n" + fmt.Sprintf(MsgDigSessionLasted, HumanizeDuration(time.Since(game.startedAt), 2)))
	return b.String()
}

// --- Responses ---

func digRespondEphemeral(event *events.ApplicationCommandInteractionCreate, content string) {
	_ = event.CreateMessage(discord.NewMessageCreateBuilder().
		SetIsComponentsV2(true).
		SetEphemeral(true).
		AddComponents(discord.NewContainer(discord.NewTextDisplay(content))).
		Build())
}

func digComponentEphemeral(event *events.ComponentInteractionCreate, content string) {
	_ = event.CreateMessage(discord.NewMessageCreateBuilder().
		SetIsComponentsV2(true).
		SetEphemeral(true).
		AddComponents(discord.NewContainer(discord.NewTextDisplay(content))).
		Build())
}

func digFollowupReport(event *events.ComponentInteractionCreate, content string) {
	_, err := event.Client().Rest.CreateFollowupMessage(event.ApplicationID(), event.Token(),
		discord.NewMessageCreateBuilder().
			SetIsComponentsV2(true).
			SetEphemeral(true).
			AddComponents(discord.NewContainer(discord.NewTextDisplay(content))).
			Build())
	if err != nil {
		LogDigging(MsgDigUpdateFail, err)
	}
}

func digRefreshBoard(event *events.ComponentInteractionCreate, game *digGame, opts RenderOptions) {
	update, err := digBoardUpdate(AppContext, game, opts)
	if err != nil {
		LogDigging(MsgDigRenderFail, err)
		_ = event.DeferUpdateMessage()
		return
	}
	if err := event.UpdateMessage(update); err != nil {
		LogDigging(MsgDigUpdateFail, err)
	}
}

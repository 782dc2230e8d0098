package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// --- Globals & Styles ---

var (
	// Level colors
	infoColor  = color.New()
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	fatalColor = color.New(color.FgRed, color.Bold)

	// Component colors
	databaseColor      = color.New()
	diggingColor       = color.New(color.FgMagenta)
	economyColor       = color.New(color.FgMagenta)
	assetsColor        = color.New(color.FgMagenta)
	statusRotatorColor = color.New(color.FgMagenta)

	// Global state
	DefaultTimeFormat = "15:04:05"
	IsSilent          = false
	LogToFile         = false
	Logger            *slog.Logger

	// Internal state
	logFile *os.File
	logMu   sync.Mutex
)

// --- Initialization ---

func init() {
	InitLogger(false, false)
}

// InitLogger initializes the global structured logger
func InitLogger(silent bool, saveToFile bool) {
	logMu.Lock()
	defer logMu.Unlock()

	IsSilent = silent
	LogToFile = saveToFile
	level := slog.LevelInfo
	if strings.ToLower(os.Getenv("DEBUG")) == "true" {
		level = slog.LevelDebug
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writer io.Writer = os.Stdout
	var err error

	if LogToFile {
		exePath, exeErr := os.Executable()
		logName := GetProjectName() + ".log"
		if exeErr == nil {
			logName = filepath.Base(exePath) + ".log"
		}

		logFile, err = os.OpenFile(logName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", logName, err)
		} else {
			writer = io.MultiWriter(os.Stdout, NewStripANSIWriter(logFile))
		}
	}

	color.NoColor = false

	handler := NewBotLogHandler(writer, &BotLogHandlerOptions{
		Silent: IsSilent,
		Level:  level,
	})
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

func SetSilentMode(silent bool) {
	InitLogger(silent, LogToFile)
}

// --- Public Logging API ---

func LogInfo(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...))
}

func LogWarn(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...))
}

func LogError(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...))
}

func LogFatal(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	slog.Log(context.Background(), slog.LevelError+4, msg)
	panic(msg)
}

func LogDebug(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...))
}

// Component Loggers

func LogDatabase(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "database"))
}

func LogDigging(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "digging"))
}

func LogEconomy(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "economy"))
}

func LogAssets(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "assets"))
}

func LogStatusRotator(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "session"))
}

func LogCustom(tag string, tagColor *color.Color, format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", tag))
}

// --- Log Handler Implementation ---

type BotLogHandlerOptions struct {
	Silent bool
	Level  slog.Leveler
}

type BotLogHandler struct {
	w    io.Writer
	opts *BotLogHandlerOptions
	mu   *sync.Mutex
}

func NewBotLogHandler(w io.Writer, opts *BotLogHandlerOptions) *BotLogHandler {
	if opts == nil {
		opts = &BotLogHandlerOptions{Level: slog.LevelInfo}
	}
	return &BotLogHandler{
		w:    w,
		opts: opts,
		mu:   &sync.Mutex{},
	}
}

func (h *BotLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.opts.Silent {
		return false
	}
	return level >= h.opts.Level.Level()
}

func (h *BotLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.Silent {
		return nil
	}

	timeStr := time.Now().Format(DefaultTimeFormat)
	var levelStr string
	var levelColor *color.Color

	switch {
	case r.Level >= slog.LevelError+4:
		levelStr = "FATAL"
		levelColor = fatalColor
	case r.Level >= slog.LevelError:
		levelStr = "ERROR"
		levelColor = errorColor
	case r.Level >= slog.LevelWarn:
		levelStr = "WARN"
		levelColor = warnColor
	case r.Level >= slog.LevelInfo:
		levelStr = "INFO"
		levelColor = infoColor
	}

	component := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			component = strings.ToUpper(a.Value.String())
			return false
		}
		return true
	})

	fmt.Fprintf(h.w, "%s", timeStr)

	if component != "" {
		if levelStr != "INFO" {
			fmt.Fprintf(h.w, " %s", levelColor.Sprintf("[%s]", levelStr))
		}
		compColor := getComponentColor(component)
		fmt.Fprintf(h.w, " %s\n", colorizeWithResets(compColor, fmt.Sprintf("[%s] %s", component, r.Message)))
	} else {
		displayMsg := fmt.Sprintf("[%s] %s", levelStr, r.Message)
		if levelStr == "INFO" && strings.HasPrefix(r.Message, "[") {
			if idx := strings.Index(r.Message, "]"); idx > 0 && idx < 20 {
				displayMsg = r.Message
			}
		}
		fmt.Fprintf(h.w, " %s\n", colorizeWithResets(levelColor, displayMsg))
	}

	return nil
}

func (h *BotLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *BotLogHandler) WithGroup(name string) slog.Handler       { return h }

// --- Formatting Helpers ---

func getComponentColor(name string) *color.Color {
	switch name {
	case "DATABASE":
		return databaseColor
	case "DIGGING":
		return diggingColor
	case "ECONOMY":
		return economyColor
	case "ASSETS":
		return assetsColor
	case "SESSION":
		return statusRotatorColor
	default:
		return color.New(color.FgCyan)
	}
}

func colorizeWithResets(c *color.Color, text string) string {
	if !strings.Contains(text, "\x1b[0m") {
		return c.Sprint(text)
	}

	marker := "@@@MSG@@@"
	wrapped := c.Sprint(marker)
	idx := strings.Index(wrapped, marker)
	if idx <= 0 {
		return text
	}
	startSeq := wrapped[:idx]

	modifiedText := strings.ReplaceAll(text, "\x1b[0m", "\x1b[0m"+startSeq)
	return c.Sprint(modifiedText)
}

// --- Utilities & State ---

func GetLogPath() string {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}

// --- ANSI Stripper ---

type StripANSIWriter struct {
	w  io.Writer
	re *regexp.Regexp
}

func NewStripANSIWriter(w io.Writer) *StripANSIWriter {
	return &StripANSIWriter{
		w:  w,
		re: regexp.MustCompile(`\x1b\[[0-9;]*m`),
	}
}

func (s *StripANSIWriter) Write(p []byte) (n int, err error) {
	clean := s.re.ReplaceAll(p, []byte(""))
	_, err = s.w.Write(clean)
	return len(p), err
}

// --- Message Constants ---

const (
	// --- Infrastructure & Lifecycle ---
	MsgConfigFailedToLoad  = "Failed to load config: %v"
	MsgConfigMissingToken  = "DISCORD_TOKEN is not set in .env file"
	MsgDatabaseInitSuccess = "Database initialized successfully"
	MsgDatabaseTableError  = "Failed to create table: %w"
	MsgDatabasePragmaError = "Failed to set pragma %s: %w"
	MsgDaemonStarting      = "Starting..."
	MsgBotStarting         = "Starting %s..."
	MsgBotReady            = "%s is ready! (ID: %s) (PID: %d) (Took: %dms)"
	MsgBotShutdown         = "Shutting down %s..."
	MsgBotKillingOld       = "Killing running instance... (PID: %d)"
	MsgBotKillFail         = "Failed to kill old instance: %v"
	MsgBotOldTerminated    = "Old instance terminated."
	MsgBotPIDWriteFail     = "Failed to write PID file: %v"
	MsgBotRegisterFail     = "Command registration failed: %v"
	MsgBotAPIStatusError   = "discord API returned status %d"
	MsgGenericError        = "%v"

	// --- Command Loader & Registry ---
	MsgLoaderSyncCommands       = "Syncing %s commands..."
	MsgLoaderTransition         = "[TRANSITION] Switching from %s to %s mode."
	MsgLoaderCleanup            = "[CLEANUP] Removing commands from previous dev guild: %s"
	MsgLoaderDevStarting        = "[DEV] Registering commands to guild: %s"
	MsgLoaderDevRegistered      = "[DEV] Registered: %s"
	MsgLoaderDevFail            = "[DEV] Registration failed: %v"
	MsgLoaderDevGlobalClear     = "[DEV] Verifying global commands are cleared..."
	MsgLoaderDevGlobalClearFail = "[DEV] Global clear skipped (likely rate limited): %v"
	MsgLoaderProdStarting       = "[PROD] Registering commands globally..."
	MsgLoaderProdRegistered     = "[PROD] Registered: %s"
	MsgLoaderProdFail           = "[PROD] Global registration failed: %w"
	MsgLoaderScanStarting       = "[SCAN] Checking all guilds for ghost commands..."
	MsgLoaderScanCleared        = "[SCAN] Cleared ghost commands from: %s (%s)"
	MsgLoaderPanicRecovered     = "Panic recovered in handler: %v"

	// --- Digging System ---
	MsgDigSessionStarted  = "Session started for %s in %s"
	MsgDigSessionSurfaced = "Session for %s surfaced at depth %dm with %d coins"
	MsgDigSessionTimedOut = "Session for %s timed out, auto-surfacing"
	MsgDigRenderFail      = "Failed to render digging image: %v"
	MsgDigPrepareFail     = "Failed to prepare digging assets: %v"
	MsgDigUpdateFail      = "Failed to update digging message: %v"
	MsgDigFlushFail       = "Failed to save digging results for %s: %v"

	ErrDigSessionActive   = "You already have an active digging session!"
	ErrDigCooldown        = "You're still catching your breath! You can dig again %s."
	ErrDigUnknownBiome    = "That biome doesn't exist!"
	ErrDigBiomeLevel      = "You must be at least level **%d** to dig in **%s**!"
	ErrDigBiomeLocked     = "You haven't unlocked **%s** yet! Unlock it in the shop for %s **%s**."
	ErrDigEntryFee        = "You need %s **%s** to pay the entry fee for **%s**!"
	ErrDigNotYourSession  = "This isn't your digging session!"
	ErrDigSessionGone     = "This digging session has ended. Start a new one with `/dig`!"
	MsgDigNoPickaxe       = "You need a pickaxe to mine this ore!"
	MsgDigTooTired        = "You are too tired to dig!"
	MsgDigBackpackFull    = "Your backpack is too full!"
	MsgDigCollectCoins    = "Collect %s coins"
	MsgDigToolAction      = "%s with %s"
	MsgDigBareHands       = "bare hands"
	MsgDigBtnDeeper       = "Dig Deeper"
	MsgDigBtnSeeBelow     = "See Below"
	MsgDigBtnViewBottom   = "View Bottom"
	MsgDigBtnViewLeft     = "View Left"
	MsgDigBtnMoveLeft     = "Move Left"
	MsgDigBtnViewRight    = "View Right"
	MsgDigBtnMoveRight    = "Move Right"
	MsgDigBtnSurface      = "Surface"
	MsgDigBtnRailgun      = "Use Railgun"
	MsgDigHeader          = "## %s's Digging Session"
	MsgDigBiomeDepth      = "-# 🖼️ Biome: **%s** • Depth: %s meter%s"
	MsgDigElapsed         = "-# ⏱️ %s"
	MsgDigItemsBtn        = "%d items"
	MsgDigOccupiesStorage = "-# Occupies %s storage unit%s"
	MsgDigConfirmSurface  = "Are you sure you want to surface now? You still have stamina left and space in your backpack.\n-# You will have to wait a bit before digging again."
	MsgDigConfirmYes      = "Yes, end my digging session and surface!"
	MsgDigConfirmNo       = "No, I want to keep digging."
	MsgDigEarnedHeader    = "### You earned:\n"
	MsgDigEmptyHanded     = "You surfaced empty-handed."
	MsgDigSessionLasted   = "-# Session lasted for %s"
	MsgDigUsedRailgun     = "Used Railgun!"
	MsgDigUsedDynamite    = "Used Dynamite!"
	MsgDigCollectedField  = "### You collected:\n"
	MsgDigRailgunAgain    = "\n-# You can use this again %s"
	MsgDigDynamiteDealt   = "💥 Dealt **%d HP** to surrounding blocks!"
	MsgDigNoDynamite      = "You have no dynamite left!"
	MsgDigRailgunNone     = "Cooked"
	MsgDigRailgunCooling  = "Cooldown active"
	MsgDigCoinsCollected  = "You have collected %s **%s**"
	MsgDigCoinsMultiplier = "\n-# You will receive %s **%s** because you have a **+%s%% coin multiplier**"
	MsgDigItemsCollected  = "### You have collected:\n%s"
	MsgDigNoItemsYet      = "No items collected yet."
	MsgDigUsingBackpack   = "\n-# Using **%s**"

	// --- Economy System ---
	MsgEconomyQueryError   = "Database query failed: %v"
	MsgEconomyRespondError = "Failed to respond to interaction: %v"

	// --- Status & Activity ---
	MsgStatusUpdateFail        = "Update failed: %v"
	MsgStatusRotated           = "Status rotated to: \"%s\" (Next rotate in %v)"
	MsgStatusRotatedNoInterval = "Status rotated to: \"%s\""

	// --- Session System ---
	MsgSessionRebootCommanded   = "Reboot commanded by user %s (%s)"
	MsgSessionShutdownCommanded = "Shutdown commanded by user %s (%s)"
	MsgSessionLogReadFail       = "Failed to read log file: %v"
	MsgSessionRebooting         = "**Rebooting...**"
	MsgSessionShuttingDown      = "**Shutting down...**"
	MsgSessionStatsLoading      = "Loading stats..."
	MsgSessionStatusUpdated     = "Status visibility updated!"
	MsgSessionStatusEnabled     = "Status rotation enabled!"
	MsgSessionStatusDisabled    = "Status rotation disabled!"
	MsgSessionConsoleDisabled   = "Logging to file is disabled."
	MsgSessionConsoleEmpty      = "No logs available."
	MsgSessionStatsSendFail     = "Failed to send initial stats: %v"
	MsgSessionOwnerOnly         = "Only the bot owner can do that."
	MsgSessionConsoleBtnOldest  = "[Oldest]"
	MsgSessionConsoleBtnOlder   = "[Older]"
	MsgSessionConsoleBtnRefresh = "[Refresh]"
	MsgSessionConsoleBtnNewer   = "[Newer]"
	MsgSessionConsoleBtnLatest  = "[Latest]"

	MsgSessionRebootBuilding     = "**Building...**"
	MsgSessionRebootBuildFail    = "❌ **Build Failed**\n```\n%s\n```"
	MsgSessionRebootBuildSuccess = "✅ **Build Successful**"
)

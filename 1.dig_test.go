package main

import (
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

func rowButtons(t *testing.T, row discord.ActionRowComponent) []discord.ButtonComponent {
	t.Helper()
	buttons := make([]discord.ButtonComponent, 0, len(row.Components))
	for _, c := range row.Components {
		btn, ok := c.(discord.ButtonComponent)
		if !ok {
			t.Fatalf("action row holds a %T, want a button", c)
		}
		buttons = append(buttons, btn)
	}
	return buttons
}

func TestDigNavButtonsRow(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 4, 3, 0, 1)

	buttons := rowButtons(t, discord.NewActionRow(digNavButtons(s, "42")...))
	if len(buttons) != 3 {
		t.Fatalf("nav row has %d buttons, want 3", len(buttons))
	}
	for i, suffix := range []string{":left", ":down", ":right"} {
		want := "dig:42" + suffix
		if buttons[i].CustomID != want {
			t.Errorf("button %d custom ID = %q, want %q", i, buttons[i].CustomID, want)
		}
	}
	if !buttons[0].Disabled {
		t.Error("left button enabled at the left edge")
	}
	if buttons[2].Disabled {
		t.Error("right button disabled away from the right edge")
	}

	installGrid(s, 4, 3, digGridWidth-1, 1)
	buttons = rowButtons(t, discord.NewActionRow(digNavButtons(s, "42")...))
	if !buttons[2].Disabled {
		t.Error("right button enabled at the right edge")
	}
	if buttons[0].Disabled {
		t.Error("left button disabled away from the left edge")
	}
}

func TestDigPowerRow(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 4, 3, 4, 1)
	game := &digGame{session: s, userID: snowflake.ID(42), dynamite: 2}

	buttons := rowButtons(t, discord.NewActionRow(digPowerRow(game)...))
	if len(buttons) != 2 {
		t.Fatalf("power row has %d buttons, want 2", len(buttons))
	}
	if buttons[0].CustomID != "dig:42:surface" {
		t.Errorf("first button custom ID = %q, want dig:42:surface", buttons[0].CustomID)
	}
	if buttons[0].Style != discord.ButtonStyleSecondary {
		t.Errorf("surface style = %d, want secondary while stamina remains", buttons[0].Style)
	}
	if buttons[1].CustomID != "dig:42:dynamite" || buttons[1].Disabled {
		t.Errorf("dynamite button = %q disabled=%v, want enabled dig:42:dynamite", buttons[1].CustomID, buttons[1].Disabled)
	}

	game.dynamite = 0
	buttons = rowButtons(t, discord.NewActionRow(digPowerRow(game)...))
	if !buttons[1].Disabled {
		t.Error("dynamite button enabled with none left")
	}

	game.hasRailgun = true
	buttons = rowButtons(t, discord.NewActionRow(digPowerRow(game)...))
	if len(buttons) != 3 {
		t.Fatalf("power row has %d buttons with a railgun, want 3", len(buttons))
	}
	if buttons[1].CustomID != "dig:42:railgun" || buttons[1].Disabled {
		t.Errorf("railgun button = %q disabled=%v, want enabled dig:42:railgun", buttons[1].CustomID, buttons[1].Disabled)
	}

	game.railgunReady = time.Now().Add(time.Hour)
	buttons = rowButtons(t, discord.NewActionRow(digPowerRow(game)...))
	if !buttons[1].Disabled {
		t.Error("railgun button enabled while still cooling down")
	}

	s.stamina = 0
	buttons = rowButtons(t, discord.NewActionRow(digPowerRow(game)...))
	if buttons[0].Style != discord.ButtonStyleSuccess {
		t.Errorf("surface style = %d, want success when out of stamina", buttons[0].Style)
	}
}

func TestDigComponentsLayout(t *testing.T) {
	s := newTestSession(DigModifiers{})
	installGrid(s, 4, 3, 4, 1)
	game := &digGame{
		session:   s,
		userID:    snowflake.ID(42),
		username:  "mole",
		startedAt: time.Now(),
		dynamite:  1,
	}

	active := digComponents(game, true)
	if len(active) != 2 {
		t.Fatalf("active board has %d top-level components, want 2", len(active))
	}
	if _, ok := active[0].(discord.ContainerComponent); !ok {
		t.Errorf("active board starts with a %T, want a container", active[0])
	}
	row, ok := active[1].(discord.ActionRowComponent)
	if !ok {
		t.Fatalf("active board ends with a %T, want an action row", active[1])
	}
	if len(rowButtons(t, row)) != 2 {
		t.Errorf("trailing row has %d buttons, want 2", len(row.Components))
	}

	ended := digComponents(game, false)
	if len(ended) != 1 {
		t.Fatalf("ended board has %d top-level components, want 1", len(ended))
	}
}

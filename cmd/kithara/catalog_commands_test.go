package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kithara/internal/catalog"
	"kithara/internal/testsupport"
)

func seedSounds(t *testing.T, env *cliTestEnv) {
	t.Helper()

	store := testsupport.MustOpenCatalog(t, env.cfg)
	ctx := context.Background()
	sounds := []catalog.Sound{
		{
			ID:          "101",
			EventName:   "cmbt.rng.slinger.short.00.MSTR.wav",
			DisplayName: "Combat Range Slinger",
			Category:    "combat",
			UnitType:    "Slinger",
			Subcategory: "cmbt_rng_slinger",
			FilePath:    "sounds/combat/slinger/101.ogg",
			Tags:        []string{"combat", "slinger"},
		},
		{
			ID:          "102",
			EventName:   "ui.button.click.wav",
			DisplayName: "Ui Button Click",
			Category:    "ui",
			Subcategory: "ui_button_click",
			FilePath:    "sounds/ui/102.ogg",
			Tags:        []string{"ui"},
		},
	}
	for _, s := range sounds {
		if err := store.UpsertSound(ctx, s); err != nil {
			t.Fatalf("seed sound %s: %v", s.ID, err)
		}
	}
	if err := store.UpsertTrack(ctx, catalog.MusicTrack{
		ID:              "900",
		Title:           "Harvest Dance",
		FilePath:        "sounds/music/900.ogg",
		DurationSeconds: 150,
	}); err != nil {
		t.Fatalf("seed track: %v", err)
	}
}

func TestSearchCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedSounds(t, env)

	out, err := runCLI(t, []string{"search", "slinger"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "Combat Range Slinger")
	if strings.Contains(out, "Ui Button Click") {
		t.Fatalf("unexpected result in output:\n%s", out)
	}

	out, err = runCLI(t, []string{"search", "--category", "ui"}, env.configPath)
	if err != nil {
		t.Fatalf("search by category: %v", err)
	}
	requireContains(t, out, "Ui Button Click")

	out, err = runCLI(t, []string{"search", "slinger", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("search --json: %v", err)
	}
	requireContains(t, out, `"display_name": "Combat Range Slinger"`)

	out, err = runCLI(t, []string{"search", "zzzzz"}, env.configPath)
	if err != nil {
		t.Fatalf("search no results: %v", err)
	}
	requireContains(t, out, "No sounds found")
}

func TestFacetCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	seedSounds(t, env)

	out, err := runCLI(t, []string{"categories"}, env.configPath)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	requireContains(t, out, "Combat")
	requireContains(t, out, "Ui")

	out, err = runCLI(t, []string{"units"}, env.configPath)
	if err != nil {
		t.Fatalf("units: %v", err)
	}
	requireContains(t, out, "Slinger")
}

func TestFavoritesCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	seedSounds(t, env)

	out, err := runCLI(t, []string{"favorites", "toggle", "101"}, env.configPath)
	if err != nil {
		t.Fatalf("favorites toggle: %v", err)
	}
	requireContains(t, out, "Added 101 to favorites")

	out, err = runCLI(t, []string{"favorites", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("favorites list: %v", err)
	}
	requireContains(t, out, "Combat Range Slinger")

	out, err = runCLI(t, []string{"favorites", "count"}, env.configPath)
	if err != nil {
		t.Fatalf("favorites count: %v", err)
	}
	requireContains(t, out, "1")

	out, err = runCLI(t, []string{"favorites", "toggle", "101"}, env.configPath)
	if err != nil {
		t.Fatalf("favorites toggle off: %v", err)
	}
	requireContains(t, out, "Removed 101 from favorites")

	if _, err := runCLI(t, []string{"favorites", "toggle", "nope"}, env.configPath); err == nil {
		t.Fatal("expected error toggling unknown sound")
	}
}

func TestTracksCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedSounds(t, env)

	out, err := runCLI(t, []string{"tracks"}, env.configPath)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	requireContains(t, out, "Harvest Dance")
	requireContains(t, out, "2:30")

	out, err = runCLI(t, []string{"tracks", "--query", "harvest"}, env.configPath)
	if err != nil {
		t.Fatalf("tracks --query: %v", err)
	}
	requireContains(t, out, "Harvest Dance")

	out, err = runCLI(t, []string{"tracks", "--query", "zzzzz"}, env.configPath)
	if err != nil {
		t.Fatalf("tracks no results: %v", err)
	}
	requireContains(t, out, "No music tracks found")
}

func TestClearCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedSounds(t, env)

	soundPath := filepath.Join(env.cfg.SoundsDir(), "combat", "slinger", "101.ogg")
	testsupport.WriteFile(t, soundPath, []byte("ogg"))

	out, err := runCLI(t, []string{"clear"}, env.configPath)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	requireContains(t, out, "Catalog cleared")

	if _, err := os.Stat(soundPath); !os.IsNotExist(err) {
		t.Fatalf("expected extracted audio removed, stat err=%v", err)
	}

	out, err = runCLI(t, []string{"search"}, env.configPath)
	if err != nil {
		t.Fatalf("search after clear: %v", err)
	}
	requireContains(t, out, "No sounds found")
}

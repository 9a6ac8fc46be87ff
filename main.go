package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/nstehr/trinity/trinity-core/battle"
	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/report"
	"github.com/nstehr/trinity/trinity-core/rules"
)

const banner = `
████████╗██████╗ ██╗███╗   ██╗██╗████████╗██╗   ██╗
╚══██╔══╝██╔══██╗██║████╗  ██║██║╚══██╔══╝╚██╗ ██╔╝
   ██║   ██████╔╝██║██╔██╗ ██║██║   ██║    ╚████╔╝
   ██║   ██╔══██╗██║██║╚██╗██║██║   ██║     ╚██╔╝
   ██║   ██║  ██║██║██║ ╚████║██║   ██║      ██║
   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝╚═╝   ╚═╝      ╚═╝

Turn-Based Combat Resolution Core`

type config struct {
	// Seed 0 means seed from the clock; any other value gives replayable runs.
	Seed        int64      `env:"TRINITY_SEED" envDefault:"0"`
	RulesetPath string     `env:"TRINITY_RULESET"`
	LogLevel    slog.Level `env:"TRINITY_LOG_LEVEL" envDefault:"INFO"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "failed to parse config:", err)
		os.Exit(1)
	}

	// Report frames go to stdout; logs stay on stderr so the stream is clean.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	fmt.Fprintln(os.Stderr, banner)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("starting trinity", "seed", seed)

	rs := rules.DefaultRuleset()
	if cfg.RulesetPath != "" {
		loaded, err := rules.Load(cfg.RulesetPath)
		if err != nil {
			slog.Error("failed to load ruleset", "path", cfg.RulesetPath, "error", err)
			os.Exit(1)
		}
		rs = loaded
		slog.Info("loaded ruleset", "path", cfg.RulesetPath)
	}

	if err := runDemo(rs, rand.New(rand.NewSource(seed))); err != nil {
		slog.Error("demo scenario failed", "error", err)
		os.Exit(1)
	}
}

// runDemo resolves a small scripted scenario and streams the results: one
// conventional engagement, then a nuclear strike on the survivor's city.
func runDemo(rs *rules.Ruleset, rng *rand.Rand) error {
	g := model.NewGame()
	g.Difficulty = "Prince"

	// A 5-radius hex patch of grassland.
	origin := model.Hex{}
	for q := -5; q <= 5; q++ {
		for r := -5; r <= 5; r++ {
			pos := model.Hex{Q: q, R: r}
			if origin.DistanceTo(pos) > 5 {
				continue
			}
			t := model.NewTile(pos)
			t.BaseTerrain = "Grassland"
			g.AddTile(t)
		}
	}

	rome := g.AddCiv(model.NewCivilization("Rome"))
	carthage := g.AddCiv(model.NewCivilization("Carthage"))
	g.DeclareWar(rome, carthage)
	g.RevealAll(rome)
	g.RevealAll(carthage)

	g.AddCity(&model.City{Name: "Carthage", Civ: carthage, Center: g.TileAt(model.Hex{Q: 3, R: 0}).ID, Population: 8})

	legion := g.Unit(g.AddUnit(&model.Unit{Type: "Swordsman", Civ: rome, Tile: g.TileAt(model.Hex{Q: 0, R: 0}).ID}))
	spear := g.Unit(g.AddUnit(&model.Unit{Type: "Warrior", Civ: carthage, Tile: g.TileAt(model.Hex{Q: 1, R: 0}).ID}))
	bomb := g.Unit(g.AddUnit(&model.Unit{Type: "Atomic Bomb", Civ: rome, Tile: g.TileAt(model.Hex{Q: 0, R: 0}).ID}))

	e := battle.NewEngine(g, rs, rng)

	attacker := e.UnitCombatant(legion)
	defender := e.UnitCombatant(spear)
	dealt := e.Attack(attacker, defender, legion.Tile)

	if err := report.WriteEnvelopeTo(os.Stdout, report.TypeCombat, report.CombatResult{
		Attacker:         attacker.Name(),
		Defender:         defender.Name(),
		AttackerCiv:      attacker.Civ().Name,
		DefenderCiv:      defender.Civ().Name,
		Location:         g.Tile(spear.Tile).Position,
		DamageToAttacker: dealt.ToAttacker,
		DamageToDefender: dealt.ToDefender,
		AttackerDefeated: attacker.IsDefeated(),
		DefenderDefeated: defender.IsDefeated(),
	}); err != nil {
		return err
	}

	nuke := e.UnitCombatant(bomb)
	target := g.TileAt(model.Hex{Q: 3, R: 0}).ID
	if !e.MayUseNuke(nuke, target) {
		slog.Warn("nuke target rejected", "target", g.Tile(target).Position)
		return nil
	}
	strength, _ := e.NukeStrength(nuke)
	radius := e.NukeBlastRadius(nuke)
	e.Nuke(nuke, target)

	if err := report.WriteEnvelopeTo(os.Stdout, report.TypeDetonation, report.Detonation{
		Weapon:      nuke.Name(),
		AttackerCiv: nuke.Civ().Name,
		Target:      g.Tile(target).Position,
		Strength:    strength,
		Radius:      radius,
		Intercepted: len(bomb.AttacksSinceTurnStart) == 0,
	}); err != nil {
		return err
	}

	for _, civ := range g.Civs {
		for _, n := range civ.Notifications {
			if err := report.WriteEnvelopeTo(os.Stdout, report.TypeNotification, report.CivNotification{
				Civ:          civ.Name,
				Notification: n,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

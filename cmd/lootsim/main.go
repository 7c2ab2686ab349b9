package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dverbin/lootcore/internal/config"
	"github.com/dverbin/lootcore/internal/data"
	"github.com/dverbin/lootcore/internal/db"
	"github.com/dverbin/lootcore/internal/factory"
	"github.com/dverbin/lootcore/internal/loot"
	"github.com/dverbin/lootcore/internal/manager"
	"github.com/dverbin/lootcore/internal/model"
)

const ConfigPath = "config/lootsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("LOOTCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))
	slog.Info("lootcore simulation starting", "log_level", cfg.LogLevel)

	catalog := data.Load()
	fct := factory.New(catalog, nil)
	lootMgr := loot.NewManager(catalog, fct, cfg, nil)
	invMgr := manager.New(cfg, lootMgr)

	lootMgr.Subscribe(func(e model.Event) {
		slog.Debug("loot generated", "source", e.TargetID, "drops", e.Quantity)
	})

	// A character with a backpack and a grid stash in the same world.
	hero := model.NewCharacterInventory("hero", "Hero", 24, 80, 4)
	invMgr.Adopt(hero.Inventory)
	stash := invMgr.CreateGridInventory("stash", "Stash", 8, 6, 0)

	hero.Subscribe(func(e model.Event) {
		slog.Info("hero inventory event", "kind", e.Kind, "item", e.ItemID, "qty", e.Quantity)
	})

	// Kill a few enemies and open a cache.
	enemies := []loot.Enemy{
		{ID: "forest_wolf", Name: "Forest Wolf", Level: 2, Type: loot.EnemyNormal,
			Guaranteed: []loot.GuaranteedDrop{{TableID: "forest_common"}}},
		{ID: "mine_overseer", Name: "Mine Overseer", Level: 5, Type: loot.EnemyElite,
			Guaranteed: []loot.GuaranteedDrop{{TableID: "mine_depths"}}},
		{ID: "alpha_direwolf", Name: "Alpha Direwolf", Level: 8, Type: loot.EnemyBoss,
			Guaranteed: []loot.GuaranteedDrop{{TableID: "wolfhide_cache"}}},
	}
	player := loot.Player{Level: 4, Luck: 2}

	for _, enemy := range enemies {
		drops := lootMgr.GenerateEnemyLoot(enemy, player, loot.Options{})
		delivered := invMgr.DeliverDrops("hero", drops)
		slog.Info("enemy looted",
			"enemy", enemy.Name, "drops", len(drops), "delivered", delivered,
			"weight", hero.CurrentWeight())
	}

	chestDrops := lootMgr.GenerateContainerLoot(
		loot.Container{ID: "old_chest", Level: 5}, player, loot.Options{})
	invMgr.DeliverDrops("stash", chestDrops)

	// Tidy up and move crafting materials to the stash.
	hero.Sort(nil)
	for _, tpl := range []string{"iron_ore", "wolf_pelt", "arcane_dust"} {
		if n := hero.ItemCount(tpl); n > 0 {
			moved, err := invMgr.MoveItem("hero", "stash", tpl, n)
			if err != nil {
				slog.Warn("transfer failed", "item", tpl, "err", err)
				continue
			}
			slog.Info("stashed", "item", tpl, "qty", moved)
		}
	}

	slog.Info("simulation finished",
		"hero_weight", hero.CurrentWeight(),
		"stash_weight", stash.CurrentWeight(),
		"transactions", len(invMgr.History()))

	if !cfg.Database.Enabled {
		slog.Info("persistence disabled, skipping snapshot save")
		return nil
	}
	return persistSnapshots(ctx, cfg, hero.Inventory, stash)
}

// persistSnapshots saves inventory snapshots to PostgreSQL.
func persistSnapshots(ctx context.Context, cfg config.Config, inventories ...*model.Inventory) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	repo := db.NewInventoryRepository(database.Pool())
	g, gctx := errgroup.WithContext(ctx)
	for _, inv := range inventories {
		snap := inv.Snapshot()
		g.Go(func() error {
			if err := repo.Save(gctx, snap); err != nil {
				return fmt.Errorf("saving inventory %q: %w", snap.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("snapshots saved", "count", len(inventories))
	return nil
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

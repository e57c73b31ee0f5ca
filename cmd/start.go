package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beInDev/vaultmp/core/config"
	"github.com/beInDev/vaultmp/core/database"
	"github.com/beInDev/vaultmp/core/dispatch"
	"github.com/beInDev/vaultmp/core/loader"
	"github.com/beInDev/vaultmp/core/logger"
	"github.com/beInDev/vaultmp/core/middleware/auth"
	"github.com/beInDev/vaultmp/core/middleware/rayid"
	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/script"
	"github.com/beInDev/vaultmp/core/storage"
	"github.com/beInDev/vaultmp/core/transport"
	"github.com/beInDev/vaultmp/core/world"

	"github.com/beInDev/vaultmp/feature/admin"
	"github.com/beInDev/vaultmp/feature/mods"
	"github.com/beInDev/vaultmp/feature/session"
	statesync "github.com/beInDev/vaultmp/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the game server",
	Long:  `Loads the record tables, opens the game websocket listener and serves the admin API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, cfg, logg)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runServer(ctx context.Context, cfg *config.Config, logg *zap.Logger) error {
	// 1. Record tables
	db, cache, err := openRecords(ctx, cfg, logg)
	if err != nil {
		return err
	}

	// 2. World state
	defaults := world.NewDefaults(cache, cfg.Game.Respawn(), cfg.Game.Console)
	if cell, _ := cfg.Game.SpawnCellID(); cell != 0 {
		if _, err := defaults.SetSpawnCell(cell); err != nil {
			return fmt.Errorf("game.spawn_cell: %w", err)
		}
	}
	weather, _ := cfg.Game.WeatherID()
	globals := world.NewGlobals(cfg.Game.Clock(), weather)
	factory := world.NewFactory(logg, cache, defaults)
	clients := network.NewClients()

	// 3. Scripting and events
	ring := script.NewRing(cfg.Script.RingSize)
	bus := script.NewBus(logg, script.NewLogSink(logg), ring)
	var hooks script.Hooks = script.DefaultHooks{}
	if cfg.Script.LuaPath != "" {
		lua, err := script.LoadLuaFile(cfg.Script.LuaPath, logg)
		if err != nil {
			return err
		}
		bus.Attach(lua)
		hooks = lua
		logg.Info("Lua script loaded", zap.String("path", cfg.Script.LuaPath))
	}
	if cfg.Script.JournalDir != "" {
		journal := script.NewJournal(cfg.Script.JournalDir, cfg.Script.JournalPrefix, logg)
		defer journal.Close()
		bus.Attach(journal)
	}

	// 4. Mods
	var store storage.Client
	if cfg.Storage.Enabled() {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	modsFeature := mods.NewFeature(store, cfg.Storage.Bucket, cfg.Storage.ModsPrefix, logg)
	if modsFeature.IsEnabled() {
		if _, err := modsFeature.Service().Refresh(ctx); err != nil {
			logg.Warn("Initial mod listing failed", zap.Error(err))
		}
	}

	// 5. Game transport
	router := dispatch.NewRouter(logg)
	hub := transport.NewHub(logg, router, transport.Options{
		QueueSize:    cfg.Server.QueueSize,
		WriteTimeout: cfg.Server.WriteTimeout(),
		ReadLimit:    cfg.Server.ReadLimit,
	})

	scheduler := statesync.NewScheduler(logg)
	defer scheduler.Stop()
	router.Mount(session.NewService(logg, factory, clients, globals, hooks, bus, modsFeature.Service()))
	router.Mount(statesync.NewService(logg, factory, clients, bus, scheduler, hub))

	mux := http.NewServeMux()
	mux.Handle(cfg.Server.GamePath, hub)
	gameSrv := &http.Server{
		Addr:              ":" + cfg.Server.GamePort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Admin API
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})
	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	mgr := loader.NewManager()
	mgr.Register(admin.NewFeature(admin.NewService(logg, factory, clients, hub, globals, ring, cache, db)))
	mgr.Register(modsFeature)
	if err := mgr.LoadAll(app); err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	// 7. Serve
	errCh := make(chan error, 2)
	go func() {
		logg.Info("Starting game listener",
			zap.String("port", cfg.Server.GamePort),
			zap.String("path", cfg.Server.GamePath),
			zap.Strings("handlers", router.Kinds()))
		if err := gameSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("game listener: %w", err)
		}
	}()
	go func() {
		logg.Info("Starting admin API", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			errCh <- fmt.Errorf("admin API: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	// 8. Graceful shutdown
	logg.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = gameSrv.Shutdown(shutdownCtx)
	hub.Close()
	_ = app.ShutdownWithContext(shutdownCtx)
	return runErr
}

// openRecords connects to the record database and loads the first table.
// When the database is unreachable and a seed file is configured, the table
// is served from the seed file and db is nil.
func openRecords(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*gorm.DB, *records.Cache, error) {
	var source records.Source
	db, err := database.Connect(cfg.Database)
	switch {
	case err == nil:
		if err := records.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate record tables: %w", err)
		}
		source = records.DBSource(db)
	case cfg.Game.RecordsFile != "":
		logg.Warn("Record database unavailable, using seed file",
			zap.String("file", cfg.Game.RecordsFile),
			zap.Error(err))
		source = records.YAMLSource(cfg.Game.RecordsFile)
	default:
		return nil, nil, err
	}

	ttl := time.Duration(cfg.Game.RecordsTTLSeconds) * time.Second
	cache := records.NewCache(source, ttl)
	t, err := cache.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}

	d := t.Data()
	logg.Info("Records loaded",
		zap.Bool("database", db != nil),
		zap.Int("cells", len(d.Cells)),
		zap.Int("npcs", len(d.NPCs)),
		zap.Int("weapons", len(d.Weapons)))

	if ttl > 0 {
		go refreshRecords(ctx, cache, ttl, logg)
	}
	return db, cache, nil
}

// refreshRecords rebuilds the cached table every ttl until ctx ends.
func refreshRecords(ctx context.Context, cache *records.Cache, ttl time.Duration, logg *zap.Logger) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := cache.Get(ctx); err != nil {
				logg.Warn("Record refresh failed, keeping previous table", zap.Error(err))
			}
		}
	}
}

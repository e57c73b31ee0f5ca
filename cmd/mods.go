package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beInDev/vaultmp/core/config"
	"github.com/beInDev/vaultmp/core/logger"
	"github.com/beInDev/vaultmp/core/storage"
	"github.com/beInDev/vaultmp/feature/mods"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// modsCmd lists the mod files clients are told to load
var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "List the mod files published to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := openMods()
		if err != nil {
			return err
		}
		list, err := svc.Refresh(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("\n=== Mods (%d) ===\n", len(list))
		for _, m := range list {
			fmt.Printf("%-40s %10d  %s\n", m.Name, m.Size, m.ETag)
		}
		return nil
	},
}

var modsPushCmd = &cobra.Command{
	Use:   "push [file]",
	Short: "Publish a mod file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := openMods()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return err
		}

		mod, err := svc.Publish(cmd.Context(), filepath.Base(args[0]), f, info.Size())
		if err != nil {
			return err
		}
		logg.Info("Mod published", zap.String("name", mod.Name), zap.String("etag", mod.ETag), zap.Int64("size", mod.Size))
		return nil
	},
}

var modsRemoveCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a published mod file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := openMods()
		if err != nil {
			return err
		}
		return svc.Remove(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(modsCmd)
	modsCmd.AddCommand(modsPushCmd, modsRemoveCmd)
}

func openMods() (*mods.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if !cfg.Storage.Enabled() {
		return nil, nil, fmt.Errorf("storage.endpoint is not configured")
	}
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return mods.NewService(store, cfg.Storage.Bucket, cfg.Storage.ModsPrefix, logg), logg, nil
}

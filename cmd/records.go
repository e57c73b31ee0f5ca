package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/beInDev/vaultmp/core/config"
	"github.com/beInDev/vaultmp/core/database"
	"github.com/beInDev/vaultmp/core/logger"
	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recordsCmd groups the record database commands
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the record database",
	Long:  `Seeds and inspects the NPC, cell, race, weapon and idle tables the server validates against.`,
}

var recordsImportCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Import a YAML seed file into the record database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logg, db, err := openRecordDB()
		if err != nil {
			return err
		}

		t, err := records.LoadYAML(args[0])
		if err != nil {
			return err
		}
		if err := records.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate record tables: %w", err)
		}
		stats, err := records.Import(cmd.Context(), db, t)
		if err != nil {
			return err
		}

		logg.Info("Records imported",
			zap.String("file", args[0]),
			zap.Int("cells", stats.Cells),
			zap.Int("exteriors", stats.Exteriors),
			zap.Int("npcs", stats.NPCs),
			zap.Int("races", stats.Races),
			zap.Int("weapons", stats.Weapons),
			zap.Int("idles", stats.Idles),
		)
		return nil
	},
}

var recordsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the record database schema with the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		logg, db, err := openRecordDB()
		if err != nil {
			return err
		}

		report, err := records.CheckSchema(db)
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Record schema matches the models.")
			return nil
		}

		logg.Warn("Record schema mismatches found")
		for table, tbl := range report.Tables {
			if tbl.Status == "ok" {
				continue
			}
			if len(tbl.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
			}
			if len(tbl.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
		return fmt.Errorf("record schema does not match")
	},
}

var recordsShowCmd = &cobra.Command{
	Use:   "npc [form id]",
	Short: "Print one NPC template as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := utils.ParseFormID(args[0])
		if err != nil {
			return err
		}
		_, db, err := openRecordDB()
		if err != nil {
			return err
		}

		t, err := records.LoadDB(cmd.Context(), db)
		if err != nil {
			return err
		}
		npc, ok := t.NPC(base)
		if !ok {
			return fmt.Errorf("npc %s: %w", utils.FormatFormID(base), records.ErrUnknownRecord)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(npc)
	},
}

func init() {
	RootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsImportCmd, recordsCheckCmd, recordsShowCmd)
}

func openRecordDB() (*zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return logg, db, nil
}

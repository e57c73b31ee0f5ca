package records

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates the record tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate record tables: %w", err)
	}
	return nil
}

// LoadDB reads every record table into a Table.
func LoadDB(ctx context.Context, db *gorm.DB) (*Table, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var d Data
	tx := db.WithContext(ctx)

	if err := tx.Find(&d.Cells).Error; err != nil {
		return nil, fmt.Errorf("failed to load cells: %w", err)
	}
	if err := tx.Find(&d.Exteriors).Error; err != nil {
		return nil, fmt.Errorf("failed to load exteriors: %w", err)
	}
	if err := tx.Preload("Items").Find(&d.NPCs).Error; err != nil {
		return nil, fmt.Errorf("failed to load npcs: %w", err)
	}
	if err := tx.Find(&d.Races).Error; err != nil {
		return nil, fmt.Errorf("failed to load races: %w", err)
	}
	if err := tx.Find(&d.Weapons).Error; err != nil {
		return nil, fmt.Errorf("failed to load weapons: %w", err)
	}
	if err := tx.Find(&d.Idles).Error; err != nil {
		return nil, fmt.Errorf("failed to load idles: %w", err)
	}

	return NewTable(d), nil
}

// ImportStats counts the rows written by Import.
type ImportStats struct {
	Cells     int `json:"cells"`
	Exteriors int `json:"exteriors"`
	NPCs      int `json:"npcs"`
	Races     int `json:"races"`
	Weapons   int `json:"weapons"`
	Idles     int `json:"idles"`
}

// Import upserts t into the database in one transaction.
// Starting inventories of imported NPCs are replaced.
func Import(ctx context.Context, db *gorm.DB, t *Table) (ImportStats, error) {
	d := t.Data()
	stats := ImportStats{
		Cells:     len(d.Cells),
		Exteriors: len(d.Exteriors),
		NPCs:      len(d.NPCs),
		Races:     len(d.Races),
		Weapons:   len(d.Weapons),
		Idles:     len(d.Idles),
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := func() *gorm.DB {
			return tx.Clauses(clause.OnConflict{UpdateAll: true})
		}

		if err := createAll(upsert(), d.Cells); err != nil {
			return fmt.Errorf("cells: %w", err)
		}
		if err := createAll(upsert(), d.Exteriors); err != nil {
			return fmt.Errorf("exteriors: %w", err)
		}
		if err := createAll(upsert(), d.Races); err != nil {
			return fmt.Errorf("races: %w", err)
		}
		if err := createAll(upsert(), d.Weapons); err != nil {
			return fmt.Errorf("weapons: %w", err)
		}
		if err := createAll(upsert(), d.Idles); err != nil {
			return fmt.Errorf("idles: %w", err)
		}

		for _, npc := range d.NPCs {
			items := npc.Items
			npc.Items = nil
			if err := upsert().Create(&npc).Error; err != nil {
				return fmt.Errorf("npc %08X: %w", npc.Base, err)
			}
			if err := tx.Where("npc = ?", npc.Base).Delete(&NPCItem{}).Error; err != nil {
				return fmt.Errorf("npc %08X items: %w", npc.Base, err)
			}
			for _, item := range items {
				item.ID = 0
				item.NPC = npc.Base
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("npc %08X item %08X: %w", npc.Base, item.Base, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, fmt.Errorf("failed to import records: %w", err)
	}

	return stats, nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// DBSource loads the table from the record database.
func DBSource(db *gorm.DB) Source {
	return func(ctx context.Context) (*Table, error) {
		return LoadDB(ctx, db)
	}
}

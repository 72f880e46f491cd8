package database

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]Migration)
)

// RegisterMigration adds a migration to the process-wide registry. Migrations
// register themselves from init and are applied in ID order.
func RegisterMigration(m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[m.ID]; exists {
		panic(fmt.Sprintf("migration with ID %s already registered", m.ID))
	}
	registry[m.ID] = m
}

// RegisteredMigrations returns the registered migrations sorted by ID.
func RegisteredMigrations() []Migration {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Migration, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type MigrationsManager struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db, migrations: RegisteredMigrations()}
}

const createVersionTableSQL = `
CREATE TABLE IF NOT EXISTS public.migration_version (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

func (m *MigrationsManager) applied() (map[string]struct{}, error) {
	var ids []string
	if err := m.db.Raw("SELECT id FROM public.migration_version").Scan(&ids).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		applied[id] = struct{}{}
	}
	return applied, nil
}

// Pending lists the IDs not yet recorded in migration_version.
func (m *MigrationsManager) Pending() ([]string, error) {
	if err := m.db.Exec(createVersionTableSQL).Error; err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}
	applied, err := m.applied()
	if err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	var pending []string
	for _, mig := range m.migrations {
		if _, ok := applied[mig.ID]; !ok {
			pending = append(pending, mig.ID)
		}
	}
	return pending, nil
}

// ApplyPending runs every pending migration inside its own transaction.
func (m *MigrationsManager) ApplyPending() error {
	pending, err := m.Pending()
	if err != nil {
		return err
	}
	byID := make(map[string]Migration, len(m.migrations))
	for _, mig := range m.migrations {
		byID[mig.ID] = mig
	}
	for _, id := range pending {
		mig := byID[id]
		if mig.Up == nil {
			return fmt.Errorf("migration %s has no Up function", id)
		}
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Exec(
				"INSERT INTO public.migration_version (id, name, applied_at) VALUES (?, ?, ?)",
				mig.ID, mig.Name, time.Now(),
			).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
	}
	return nil
}

// Rollback reverts a single applied migration.
func (m *MigrationsManager) Rollback(id string) error {
	var target *Migration
	for i := range m.migrations {
		if m.migrations[i].ID == id {
			target = &m.migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration %s is not registered", id)
	}
	if target.Down == nil {
		return fmt.Errorf("migration %s has no Down function", id)
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return fmt.Errorf("rollback migration %s: %w", id, err)
		}
		return tx.Exec("DELETE FROM public.migration_version WHERE id = ?", id).Error
	})
}

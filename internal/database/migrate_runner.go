package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"inkwell/internal/middleware"

	"gorm.io/gorm"
)

// MigrationLog is one row of the ledger the runner keeps in the database,
// recording which versioned SQL scripts have been applied.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

// migrationLedger wraps the migration_logs table.
type migrationLedger struct {
	db *gorm.DB
}

// ensure creates the ledger table when it does not exist yet, so the very
// first run against an empty database can bootstrap itself.
func (l migrationLedger) ensure(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS migration_logs (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_migration_logs_applied_at ON migration_logs (applied_at);`
	if err := l.db.WithContext(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("failed to ensure migration logs table: %w", err)
	}
	return nil
}

// appliedVersions returns the recorded versions in ascending order. A
// missing ledger table reads as "nothing applied".
func (l migrationLedger) appliedVersions(ctx context.Context) ([]int, error) {
	var versions []int
	err := l.db.WithContext(ctx).
		Model(&MigrationLog{}).
		Order("version ASC").
		Pluck("version", &versions).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isMissingLedgerTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return versions, nil
}

func isMissingLedgerTable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")
}

func (l migrationLedger) record(ctx context.Context, m Migration) error {
	row := MigrationLog{Version: m.Version, Name: m.Name}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}
	return nil
}

func (l migrationLedger) forget(ctx context.Context, version int) error {
	if err := l.db.WithContext(ctx).Where("version = ?", version).Delete(&MigrationLog{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record %d: %w", version, err)
	}
	return nil
}

// RunMigrations bootstraps the ledger table and applies every registered
// migration that has not been recorded yet, in version order.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	ledger := migrationLedger{db: db}
	if err := ledger.ensure(ctx); err != nil {
		return err
	}

	applied, err := ledger.appliedVersions(ctx)
	if err != nil {
		return err
	}
	if err := validateAppliedVersions(applied, migrations); err != nil {
		return err
	}

	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.Version] {
			middleware.Logger.Debug("Migration already applied", slog.Int("version", m.Version), slog.String("name", m.Name))
			continue
		}

		middleware.Logger.Info("Applying migration", slog.Int("version", m.Version), slog.String("name", m.Name))
		if err := db.WithContext(ctx).Exec(m.UpScript).Error; err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if err := ledger.record(ctx, m); err != nil {
			return err
		}
		middleware.Logger.Info("Migration applied", slog.Int("version", m.Version), slog.String("name", m.Name))
	}

	return nil
}

// validateAppliedVersions refuses to run when the ledger names versions the
// binary does not know about, which usually means the deployed code is
// older than the database.
func validateAppliedVersions(applied []int, registered []Migration) error {
	known := make(map[int]struct{}, len(registered))
	for _, m := range registered {
		known[m.Version] = struct{}{}
	}

	var unknown []int
	for _, version := range applied {
		if _, ok := known[version]; !ok {
			unknown = append(unknown, version)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Ints(unknown)
	parts := make([]string, 0, len(unknown))
	for _, version := range unknown {
		parts = append(parts, fmt.Sprintf("%06d", version))
	}
	return fmt.Errorf(
		"migration_logs contains unknown versions not present in code: %s",
		strings.Join(parts, ", "),
	)
}

// RollbackMigration reverts a single applied migration by version number.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	m := GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	ledger := migrationLedger{db: db}
	applied, err := ledger.appliedVersions(ctx)
	if err != nil {
		return err
	}

	isApplied := false
	for _, v := range applied {
		if v == version {
			isApplied = true
			break
		}
	}
	if !isApplied {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	middleware.Logger.Info("Rolling back migration", slog.Int("version", version), slog.String("name", m.Name))
	if err := db.WithContext(ctx).Exec(m.DownScript).Error; err != nil {
		return fmt.Errorf("failed to run rollback SQL for migration %d (%s): %w", version, m.Name, err)
	}
	return ledger.forget(ctx, version)
}

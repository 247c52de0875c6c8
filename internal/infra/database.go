package infra

import (
	"fmt"

	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL guards that GORM
// cannot express (CHECK constraints, functional unique indexes, triggers).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique-index violations as gorm.ErrDuplicatedKey so the
		// services can map them to a conflict.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates all tables and applies the schema guards.
// Also used by integration test setups.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Restaurant{},
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.Purchase{},
		&model.Sale{},
		&model.SaleItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaGuards(db)
}

// applySchemaGuards installs the DB-level backstops for invariants that the
// service layer also enforces. Each block is guarded by an existence check so
// re-running on an already-patched schema is a no-op.
func applySchemaGuards(db *gorm.DB) error {
	guards := []struct{ descr, sql string }{
		// Role values are a closed set.
		{"users role CHECK", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_users_role') THEN
    ALTER TABLE users ADD CONSTRAINT chk_users_role
      CHECK (role IN ('superadmin','admin','seller','waiter'));
  END IF;
END $$`},
		// Sale status is pending or paid, nothing else.
		{"sales status CHECK", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_sales_status') THEN
    ALTER TABLE sales ADD CONSTRAINT chk_sales_status
      CHECK (status IN ('pending','paid'));
  END IF;
END $$`},
		// Emails are globally unique regardless of case. The model also
		// declares a uniqueIndex on email; this functional index is the one
		// that actually catches Foo@x vs foo@x races.
		{"case-insensitive unique email", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_users_email_lower') THEN
    CREATE UNIQUE INDEX idx_users_email_lower ON users (LOWER(email));
  END IF;
END $$`},
		// Last line of defense for the last-superadmin rule: the service
		// checks it inside a transaction, this trigger catches raw SQL and
		// cascades (restaurant deletion removing its users).
		{"last superadmin delete trigger", `
CREATE OR REPLACE FUNCTION guard_last_superadmin() RETURNS trigger AS $fn$
BEGIN
  IF OLD.role = 'superadmin' AND NOT EXISTS (
    SELECT 1 FROM users WHERE role = 'superadmin' AND id <> OLD.id
  ) THEN
    RAISE EXCEPTION 'cannot delete the last superadmin';
  END IF;
  RETURN OLD;
END;
$fn$ LANGUAGE plpgsql`},
		{"attach superadmin trigger", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_guard_last_superadmin') THEN
    CREATE TRIGGER trg_guard_last_superadmin
      BEFORE DELETE ON users
      FOR EACH ROW EXECUTE FUNCTION guard_last_superadmin();
  END IF;
END $$`},
	}

	for _, g := range guards {
		if err := db.Exec(g.sql).Error; err != nil {
			return fmt.Errorf("schema guard %q: %w", g.descr, err)
		}
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hirehub/pkg/logger"
)

type Migration struct {
	Name string
	Func func(ctx context.Context, tx *sql.Tx, d Dialect) error
}

type MigrationService struct {
	db      *sql.DB
	dialect Dialect
	logger  logger.Logger
}

func NewMigrationService(db *sql.DB, dialect Dialect, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

func (m *MigrationService) InitMigrationTable(ctx context.Context) error {
	query := fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS migrations (
        id %s,
        name TEXT NOT NULL UNIQUE,
        applied_at %s NOT NULL
    )
    `, m.dialect.PrimaryKey(), m.dialect.Timestamp())

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		m.logger.Error("Migration tablosu oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) IsMigrationApplied(ctx context.Context, name string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations WHERE name = $1", name).Scan(&count)
	if err != nil {
		m.logger.Error("Migration durumu kontrol edilemedi", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

// ApplyMigration runs a single migration and records it in the same transaction.
func (m *MigrationService) ApplyMigration(ctx context.Context, migration Migration) (err error) {
	applied, err := m.IsMigrationApplied(ctx, migration.Name)
	if err != nil {
		return err
	}

	if applied {
		m.logger.Debug("Migration zaten uygulanmış", map[string]interface{}{"name": migration.Name})
		return nil
	}

	m.logger.Info("Migration uygulanıyor", map[string]interface{}{"name": migration.Name})

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		m.logger.Error("Transaction başlatılamadı", map[string]interface{}{"error": err.Error()})
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			m.logger.Error("Migration geri alındı", map[string]interface{}{"name": migration.Name, "error": err.Error()})
		}
	}()

	if err = migration.Func(ctx, tx, m.dialect); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "INSERT INTO migrations (name, applied_at) VALUES ($1, $2)", migration.Name, time.Now()); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	m.logger.Info("Migration başarıyla uygulandı", map[string]interface{}{"name": migration.Name})
	return nil
}

func (m *MigrationService) RunMigrations(ctx context.Context) error {
	m.logger.Info("Migrationlar başlatılıyor", map[string]interface{}{"dialect": string(m.dialect)})

	if err := m.InitMigrationTable(ctx); err != nil {
		return fmt.Errorf("migration tablosu oluşturulamadı: %w", err)
	}

	for _, migration := range Migrations() {
		if err := m.ApplyMigration(ctx, migration); err != nil {
			return fmt.Errorf("migration uygulanamadı %s: %w", migration.Name, err)
		}
	}

	return nil
}

func Migrations() []Migration {
	return []Migration{
		{"create_users_table", CreateUsersTable},
		{"create_jobs_table", CreateJobsTable},
		{"create_applications_table", CreateApplicationsTable},
		{"create_interviews_table", CreateInterviewsTable},
		{"create_audit_logs_table", CreateAuditLogsTable},
	}
}

func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func CreateUsersTable(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return execAll(ctx, tx, fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS users (
        id %s,
        username TEXT NOT NULL,
        email TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        role TEXT NOT NULL DEFAULT 'user',
        skills TEXT NOT NULL DEFAULT '[]',
        resume_path TEXT NOT NULL DEFAULT '',
        resume_content_type TEXT NOT NULL DEFAULT '',
        created_at %s NOT NULL,
        updated_at %s NOT NULL
    )
    `, d.PrimaryKey(), d.Timestamp(), d.Timestamp()))
}

// CreateJobsTable keeps postings without a foreign key on posted_by so that
// deleting a recruiter never blocks on its jobs.
func CreateJobsTable(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return execAll(ctx, tx,
		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS jobs (
        id %s,
        title TEXT NOT NULL,
        description TEXT NOT NULL,
        company TEXT NOT NULL,
        location TEXT NOT NULL DEFAULT '',
        type TEXT NOT NULL DEFAULT '',
        status TEXT NOT NULL DEFAULT 'open',
        salary %s,
        posted_by BIGINT NOT NULL,
        created_at %s NOT NULL,
        updated_at %s NOT NULL
    )
    `, d.PrimaryKey(), d.Float(), d.Timestamp(), d.Timestamp()),
		`CREATE UNIQUE INDEX IF NOT EXISTS jobs_title_posted_by_idx ON jobs (title, posted_by)`,
		`CREATE INDEX IF NOT EXISTS jobs_posted_by_idx ON jobs (posted_by)`,
	)
}

// CreateApplicationsTable stores job_id and user_id as plain references:
// no foreign keys, no cascade, no uniqueness on the pair.
func CreateApplicationsTable(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return execAll(ctx, tx,
		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS applications (
        id %s,
        job_id BIGINT NOT NULL,
        user_id BIGINT NOT NULL,
        status TEXT NOT NULL DEFAULT 'applied',
        applied_at %s NOT NULL
    )
    `, d.PrimaryKey(), d.Timestamp()),
		`CREATE INDEX IF NOT EXISTS applications_user_id_idx ON applications (user_id)`,
		`CREATE INDEX IF NOT EXISTS applications_job_id_idx ON applications (job_id)`,
	)
}

func CreateInterviewsTable(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return execAll(ctx, tx,
		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS interviews (
        id %s,
        application_id BIGINT NOT NULL,
        date %s NOT NULL,
        status TEXT NOT NULL DEFAULT 'scheduled',
        scheduled_at %s NOT NULL
    )
    `, d.PrimaryKey(), d.Timestamp(), d.Timestamp()),
		`CREATE INDEX IF NOT EXISTS interviews_application_id_idx ON interviews (application_id)`,
	)
}

func CreateAuditLogsTable(ctx context.Context, tx *sql.Tx, d Dialect) error {
	return execAll(ctx, tx,
		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS audit_logs (
        id %s,
        entity_type TEXT NOT NULL,
        entity_id BIGINT NOT NULL,
        action TEXT NOT NULL,
        details TEXT NOT NULL DEFAULT '',
        created_at %s NOT NULL
    )
    `, d.PrimaryKey(), d.Timestamp()),
		`CREATE INDEX IF NOT EXISTS audit_logs_entity_idx ON audit_logs (entity_type, entity_id)`,
	)
}

package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Column names keep the camelCase spelling existing deployments were created with.
var steps = []migrationStep{
	{
		Name: "create_table_files",
		SQL: `CREATE TABLE IF NOT EXISTS files (
  id          TEXT        PRIMARY KEY,
  filename    TEXT        NOT NULL,
  url         TEXT        NOT NULL,
  "createdAt" TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_files_filename",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_filename ON files (filename);`,
	},
	{
		Name: "create_index_files_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_created_at ON files ("createdAt");`,
	},
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id          TEXT        PRIMARY KEY,
  name        TEXT        NOT NULL,
  "shortDesc" TEXT        NOT NULL,
  "desc"      TEXT        NOT NULL,
  thumbnail   TEXT        NOT NULL,
  "createdAt" TIMESTAMPTZ NOT NULL DEFAULT now(),
  "updatedAt" TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_projects_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects ("createdAt");`,
	},
}

// EnsureMigrated checks if the 'projects' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	log.WithField("event", "db_migration_check").Info("checking schema")

	var exists bool
	query := "SELECT to_regclass('public.projects') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithField("event", "db_migration_start").Info("applying schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"migration_step":   step.Name,
				"error":            err.Error(),
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Debug("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema applied")

	return nil
}

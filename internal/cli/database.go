package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
)

// openDatabase connects using the environment configuration. A non-empty
// sqlitePath overrides DATABASE_PATH and forces the sqlite driver.
func openDatabase(sqlitePath string) (*database.Database, error) {
	cfg := config.NewConfig().Database
	cfg.LogLevel = "silent"

	if sqlitePath != "" {
		absPath, err := filepath.Abs(sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		cfg.Driver = config.DatabaseDriverSQLite
		cfg.Path = absPath
	}

	return database.Open(cfg)
}

// newAuditService returns an audit service whose pending writes must be
// flushed with Wait before the database is closed.
func newAuditService(db *database.Database) *audit.Service {
	return audit.NewService(auditrepo.NewRepository(db.DB))
}

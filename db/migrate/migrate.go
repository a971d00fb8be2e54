// Package migrate creates and updates the schema used by package sqlstore.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/db/dao"
	"github.com/navbryce/yatube/logging"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logging.NewPackageLogger("migrate")

// Run migrates the schema over an existing connection. The connection is not closed.
func Run(ctx context.Context, driver string, sqlDB *sql.DB) error {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverMySQL:
		dialector = mysql.New(mysql.Config{Conn: sqlDB})
	case config.DriverSQLite:
		dialector = sqlite.New(sqlite.Config{Conn: sqlDB})
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open migration session: %w", err)
	}

	tables := dao.Tables()
	if err := gormDB.WithContext(ctx).AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	log.Info().Str(logging.EVENT, "migrated").Int("tables", len(tables)).Msg("schema is up to date")
	return nil
}

package configs

import (
	"fmt"
	"log"
	"time"

	"sazonpos/entity"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the configured store and keeps it as the process-wide handle.
func ConnectionDB(cfg *Config) {
	database, err := Open(cfg.DBDriver, cfg.DBSource, logger.Warn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	db = database
}

// Open connects to sqlite, mysql or postgres. sqlite is limited to a single
// connection so every write, including the order transaction, is serialized.
func Open(driver, source string, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(source)
	case "mysql":
		dsn, err := gomysql.ParseDSN(source)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		dsn.ParseTime = true
		dsn.Loc = time.Local
		dialector = mysql.Open(dsn.FormatDSN())
	case "postgres":
		pgCfg, err := pgx.ParseConfig(source)
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pgCfg)})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	if database.Dialector.Name() == "sqlite" {
		sqlDB, err := database.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return database, nil
}

// Migrate creates or updates every table the server uses.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.User{}, &entity.Session{},
		&entity.MenuItem{},
		&entity.Order{}, &entity.OrderLine{},
		&entity.InventoryItem{},
	)
}

func SetupDatabase() {
	if err := Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
}

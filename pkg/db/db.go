package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	constant "liyu1981.xyz/sela-weight-tracker/pkg/common"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

// AllModels lists every collection in dependency order (owners first).
var AllModels = []any{
	&models.Patient{},
	&models.Treatment{},
	&models.WeightRecord{},
	&models.Intervention{},
	&models.Setting{},
}

// Open connects, migrates and tunes a sqlite database. The pool is capped at a
// single connection so every write is serialized.
func Open(dialector gorm.Dialector) (*DB, error) {
	var l = constant.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	l.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable sqlite foreign key support: %w", err)
	}

	if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		return nil, fmt.Errorf("failed to set sqlite journal mode: %w", err)
	}

	if err := conn.AutoMigrate(AllModels...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	l.Info("Database migration completed")

	return &DB{Conn: conn}, nil
}

// GetInstance returns the process wide database used by the server.
func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		if instance, err = Open(dialector); err != nil {
			log.Fatal(err)
		}
	})
	return instance
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeySelaDbPath); !found {
		dbPath = "sela.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

// UseNamedMemorySqliteDialector gives each caller its own in-memory database, tests use one per case.
func UseNamedMemorySqliteDialector(name string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

type txKey struct{}

// WithTx stores an open transaction on ctx so nested operations join it.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// Session returns the ambient transaction of ctx, or a fresh session on the connection.
func (d *DB) Session(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return d.Conn.WithContext(ctx)
}

// InTx runs fn as one unit of work. Called inside another InTx it becomes a savepoint.
func (d *DB) InTx(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error {
	return d.Session(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx), tx)
	})
}

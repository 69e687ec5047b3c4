package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DB is the database used by the backend.
var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "grovesmith-backend-url"
)

func config() *gorm.Config {
	return &gorm.Config{
		Logger: &logger{
			Logger: log.Logger.With().Str("component", "gorm").Logger(),
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}
}

// Connect opens the SQLite database at dsn, migrates it and configures the
// connection pool.
func Connect(dsn string) error {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serializes writers and prevents SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return setup(db)
}

// ConnectPostgres opens a PostgreSQL database with the given DSN.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), config())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return setup(db)
}

func setup(db *gorm.DB) error {
	err := migrate(db)
	if err != nil {
		return err
	}

	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "grovesmith:after_query", queryCallback},
		{db.Callback().Query().After("*"), "grovesmith:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "grovesmith:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "grovesmith:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "grovesmith:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "grovesmith:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "grovesmith:after_delete_general", generalCallback},
	}

	for _, cb := range callbacks {
		if err := cb.processor.Register(cb.name, cb.fn); err != nil {
			return err
		}
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// A recipient has exactly one category of each type
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: allowance_categories.recipient_id, allowance_categories.category_type") ||
		strings.Contains(db.Error.Error(), `duplicate key value violates unique constraint "idx_category_recipient_type"`) {
		db.Error = fmt.Errorf("%w: the recipient already has a category of this type", ErrStorage)
		return
	}

	if strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed") || strings.Contains(db.Error.Error(), "violates foreign key constraint") {
		db.Error = fmt.Errorf("%w resource matching the reference in your request", ErrResourceNotFound)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
//
// Owners are migrated before the resources referencing them.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Manager{}, Recipient{}, AllowanceCategory{}, Distribution{}, Transaction{}, CharitableCause{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

// Atomic runs fn in a single database transaction. Either every write fn
// makes is committed or none is.
//
// Domain errors returned by fn are passed through unchanged, all other
// failures are wrapped with ErrStorage.
func Atomic(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.Transaction(fn)
	if err == nil {
		return nil
	}

	if isDomainError(err) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// forUpdate locks the selected rows until the surrounding transaction ends.
// SQLite has no row locks, its single connection already serializes writers.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// single verifies that a write touched exactly one row.
func single(result *gorm.DB, what string) error {
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected != 1 {
		return fmt.Errorf("%w: %s affected %d rows instead of one", ErrStorage, what, result.RowsAffected)
	}

	return nil
}

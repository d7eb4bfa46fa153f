// Package storage opens the local SQLite database and applies the embedded
// goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/mechanicassist/internal/client/migrations"
	"github.com/dmitrijs2005/mechanicassist/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/dmitrijs2005/mechanicassist/internal/cryptox"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const MemoryDSN = ":memory:"

// SaltKey holds the per-database salt for sealed session values. It is not
// one of session.Keys, so clearing the session keeps it.
const SaltKey = "store.salt"

type Repositories struct {
	DB       *sql.DB
	Metadata *metadata.SQLiteRepository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// SessionStore returns the store the session lives in. With a passphrase,
// values are sealed with a key derived from it and the database salt, which
// is created on first use.
func (r *Repositories) SessionStore(ctx context.Context, passphrase string) (session.Store, error) {
	if passphrase == "" {
		return r.Metadata, nil
	}

	salt, err := r.Metadata.Get(ctx, SaltKey)
	if err != nil {
		return nil, err
	}
	if len(salt) == 0 {
		if salt, err = cryptox.RandomBytes(cryptox.SaltSize); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		if err := r.Metadata.Set(ctx, SaltKey, salt); err != nil {
			return nil, err
		}
	}

	sealer, err := cryptox.NewPassphraseSealer([]byte(passphrase), salt)
	if err != nil {
		return nil, err
	}
	return session.NewSealedStore(r.Metadata, sealer), nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetLogger(goose.NopLogger())
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if dsn != MemoryDSN {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}

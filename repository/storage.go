package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	jobtrack "github.com/dan-yates1/job-tracker"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// StorageItemModel is the Bun model for storage items
type StorageItemModel struct {
	bun.BaseModel `bun:"table:storage_items"`

	Key       string    `bun:"item_key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

var _ jobtrack.Storage = (*Storage)(nil)

// Storage implements jobtrack.Storage on top of a Bun database
type Storage struct {
	db *bun.DB
}

// NewStorage creates a new storage, call EnsureSchema before first use
func NewStorage(db *bun.DB) *Storage {
	return &Storage{db: db}
}

// OpenSQLite opens a sqlite database through the sqliteshim driver, which
// picks the cgo or pure Go driver available at build time.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// EnsureSchema creates the storage_items table when missing
func (s *Storage) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*StorageItemModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// GetItem implements jobtrack.Storage.
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var model StorageItemModel
	err := s.db.NewSelect().
		Model(&model).
		Where("item_key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return model.Value, true, nil
}

// SetItem implements jobtrack.Storage.
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	model := &StorageItemModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.db.NewInsert().
		Model(model).
		On("CONFLICT (item_key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}

// RemoveItem implements jobtrack.Storage.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*StorageItemModel)(nil)).
		Where("item_key = ?", key).
		Exec(ctx)
	return err
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

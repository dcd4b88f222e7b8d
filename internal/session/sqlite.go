package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Credential is the row persisted by SQLiteBackend
type Credential struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (Credential) TableName() string {
	return "credentials"
}

// SQLiteBackend persists credentials in a local sqlite database via gorm
type SQLiteBackend struct {
	db *gorm.DB
}

var _ Backend = (*SQLiteBackend)(nil)

// NewSQLiteBackend migrates the credentials table and returns the backend
func NewSQLiteBackend(db *gorm.DB) (*SQLiteBackend, error) {
	if err := db.AutoMigrate(&Credential{}); err != nil {
		return nil, fmt.Errorf("failed to migrate credentials table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Read(ctx context.Context, key string) (string, error) {
	var cred Credential
	err := b.db.WithContext(ctx).Where("name = ?", key).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return cred.Value, nil
}

func (b *SQLiteBackend) Write(ctx context.Context, key, token string) error {
	cred := Credential{Name: key, Value: token}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&cred).Error
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	return b.db.WithContext(ctx).Where("name = ?", key).Delete(&Credential{}).Error
}

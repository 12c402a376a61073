package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(), so the id is assigned exactly once, at insert.
// Deletion is a hard delete; the core keeps no tombstones.
type AccountModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	PasswordDigest string    `gorm:"type:varchar(255);not null"`
	Roles          []string  `gorm:"type:jsonb;serializer:json;not null"`
	Picture        string    `gorm:"type:varchar(512)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

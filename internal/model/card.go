package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column widths of the caller-supplied provenance fields.
const (
	MaxOwnerIDLength       = 64
	MaxActorLength         = 255
	MaxSourceAddressLength = 64
)

// Card is a prepaid, numbered balance holder owned by exactly one identity.
// Its transactions are not navigable from here; load them through the store.
type Card struct {
	ID             uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CardNumber     string          `json:"card_number" gorm:"size:8;not null;uniqueIndex"`
	Balance        decimal.Decimal `json:"balance" gorm:"type:decimal(20,2);not null;default:0"`
	InitialBalance decimal.Decimal `json:"initial_balance" gorm:"type:decimal(20,2);not null"`
	IsActive       bool            `json:"is_active" gorm:"not null;index"`
	OwnerID        string          `json:"owner_id" gorm:"size:64;not null;index"`
	CreatedBy      string          `json:"created_by" gorm:"size:255;not null"`
	CreatedAt      time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Version guards the balance read-modify-write against lost updates.
	Version uint64 `json:"-" gorm:"not null;default:0"`
}

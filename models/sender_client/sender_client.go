package sender_client

import (
	"time"
)

// SenderClient represents a client account that sends parcels.
// UserID links the record to the identity provider's user uuid so a
// CLIENT caller can be resolved to their registry row.
type SenderClient struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:120;not null" json:"name"`
	Email   string `gorm:"size:120;uniqueIndex" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"type:text" json:"address"`
	UserID  string `gorm:"size:64;index" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

package recipient

import (
	"time"
)

// Recipient represents the receiving party of a parcel.
type Recipient struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:120;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"type:text" json:"address"`
	City    string `gorm:"size:100" json:"city"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

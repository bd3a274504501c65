package db

import (
	"time"

	"gorm.io/datatypes"
)

// Component 是可复用区块类型的目录条目。
type Component struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:191;uniqueIndex;not null" json:"name"`
	Type        string         `gorm:"size:64;not null" json:"type"`
	Description string         `json:"description,omitempty"`
	Schema      datatypes.JSON `json:"schema"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

package db

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Section 是页面中的一个组件区块，Data 在保存前按区块注册表校验。
type Section struct {
	ID        string          `json:"id"`
	Component string          `json:"component"`
	Data      json.RawMessage `json:"data"`
}

// Page 是由有序区块组合而成的页面。
type Page struct {
	ID          uint                         `gorm:"primaryKey" json:"id"`
	Title       string                       `gorm:"not null" json:"title"`
	Slug        string                       `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description string                       `json:"description,omitempty"`
	IsPublished bool                         `json:"isPublished"`
	Status      string                       `gorm:"size:20;index" json:"status"`
	Sections    datatypes.JSONSlice[Section] `json:"sections"`
	CreatedAt   time.Time                    `json:"createdAt"`
	UpdatedAt   time.Time                    `json:"updatedAt"`
}

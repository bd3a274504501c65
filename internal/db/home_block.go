package db

import (
	"time"

	"gorm.io/datatypes"
)

// 首页区块键。
const (
	HomeBlockHeroSlides        = "hero-slides"
	HomeBlockServicesGrid      = "services-grid"
	HomeBlockQualityIndustries = "quality-industries"
	HomeBlockImagePairs        = "image-pairs"
)

// HomeBlock 保存首页中一个可独立编辑的区块。
type HomeBlock struct {
	ID        uint           `gorm:"primaryKey"`
	Key       string         `gorm:"column:block_key;size:64;uniqueIndex;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名。
func (HomeBlock) TableName() string {
	return "home_blocks"
}

package db

import "time"

// 导航条目类型。
const (
	NavTypeLink       = "link"
	NavTypeDropdown   = "dropdown"
	NavTypeSubheading = "subheading"
	NavTypeSubitem    = "subitem"
	NavTypeHierarchy  = "three-level-hierarchy"
)

// 导航层级。
const (
	NavLevelRoot       = 0
	NavLevelSubheading = 1
	NavLevelSubitem    = 2
)

// NavigationItem 是导航菜单中的一个节点，通过 ParentID 组成三级树。
// Level 在写入时由父节点推导，Order 为同级排序值。
type NavigationItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `json:"slug,omitempty"`
	URL       string    `json:"url,omitempty"`
	Type      string    `gorm:"size:32;not null" json:"type"`
	Order     int       `gorm:"column:sort_order;index" json:"order"`
	IsActive  bool      `json:"isActive"`
	ParentID  *uint     `gorm:"index" json:"parentId"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName 指定表名。
func (NavigationItem) TableName() string {
	return "navigation_items"
}

// IsGroup 判断该条目能否挂载二级标题子项。
func (n NavigationItem) IsGroup() bool {
	return n.Level == NavLevelRoot && (n.Type == NavTypeDropdown || n.Type == NavTypeHierarchy)
}

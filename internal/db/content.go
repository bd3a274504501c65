package db

import (
	"time"

	"gorm.io/datatypes"
)

// 发布状态，每次保存时由 IsPublished 推导。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// DeriveStatus 根据发布标记计算状态。
func DeriveStatus(published bool) string {
	if published {
		return StatusPublished
	}
	return StatusDraft
}

// Description 是内容实体共享的引言/结语结构。
type Description struct {
	Intro      []string `json:"intro"`
	Conclusion string   `json:"conclusion"`
}

// TitledItem 是通用的标题加描述条目（挑战、收益、特性等）。
type TitledItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// FAQItem 是一组问答。
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TechStackGroup 按分类归组技术栈。
type TechStackGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// ContentBase 是服务、行业、技术与数字服务共享的字段，Slug 在各表内唯一。
type ContentBase struct {
	ID          uint                            `gorm:"primaryKey" json:"id"`
	Title       string                          `gorm:"not null" json:"title"`
	Slug        string                          `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Subtitle    string                          `json:"subtitle"`
	Image       string                          `json:"image,omitempty"`
	IsPublished bool                            `json:"isPublished"`
	Status      string                          `gorm:"size:20;index" json:"status"`
	Description datatypes.JSONType[Description] `json:"description"`
	CreatedAt   time.Time                       `json:"createdAt"`
	UpdatedAt   time.Time                       `json:"updatedAt"`
}

// Base 供通用内容存储访问共享字段。
func (b *ContentBase) Base() *ContentBase {
	return b
}

// ServiceOffering 是服务详情页（后台中称为 Service）。
type ServiceOffering struct {
	ContentBase
	Challenges datatypes.JSONSlice[TitledItem]     `json:"challenges"`
	Benefits   datatypes.JSONSlice[TitledItem]     `json:"benefits"`
	Features   datatypes.JSONSlice[TitledItem]     `json:"features"`
	FAQ        datatypes.JSONSlice[FAQItem]        `json:"faq"`
	TechStack  datatypes.JSONSlice[TechStackGroup] `json:"techStack"`
}

// TableName 指定表名。
func (ServiceOffering) TableName() string {
	return "services"
}

// Normalize 将缺失的列表替换为空列表。
func (s *ServiceOffering) Normalize() {
	s.Challenges = emptyIfNil(s.Challenges)
	s.Benefits = emptyIfNil(s.Benefits)
	s.Features = emptyIfNil(s.Features)
	s.FAQ = emptyIfNil(s.FAQ)
	s.TechStack = normalizeTechStack(s.TechStack)
}

// Industry 描述公司服务的行业。
type Industry struct {
	ContentBase
	Challenges datatypes.JSONSlice[TitledItem] `json:"challenges"`
	Solutions  datatypes.JSONSlice[TitledItem] `json:"solutions"`
	Benefits   datatypes.JSONSlice[TitledItem] `json:"benefits"`
	FAQ        datatypes.JSONSlice[FAQItem]    `json:"faq"`
}

// TableName 指定表名。
func (Industry) TableName() string {
	return "industries"
}

// Normalize 将缺失的列表替换为空列表。
func (i *Industry) Normalize() {
	i.Challenges = emptyIfNil(i.Challenges)
	i.Solutions = emptyIfNil(i.Solutions)
	i.Benefits = emptyIfNil(i.Benefits)
	i.FAQ = emptyIfNil(i.FAQ)
}

// Technology 描述技术或平台页面。
type Technology struct {
	ContentBase
	Features  datatypes.JSONSlice[TitledItem]     `json:"features"`
	UseCases  datatypes.JSONSlice[TitledItem]     `json:"useCases"`
	TechStack datatypes.JSONSlice[TechStackGroup] `json:"techStack"`
	FAQ       datatypes.JSONSlice[FAQItem]        `json:"faq"`
}

// TableName 指定表名。
func (Technology) TableName() string {
	return "technologies"
}

// Normalize 将缺失的列表替换为空列表。
func (t *Technology) Normalize() {
	t.Features = emptyIfNil(t.Features)
	t.UseCases = emptyIfNil(t.UseCases)
	t.TechStack = normalizeTechStack(t.TechStack)
	t.FAQ = emptyIfNil(t.FAQ)
}

// DigitalService 描述打包的数字服务（营销、SEO 等）。
type DigitalService struct {
	ContentBase
	Features datatypes.JSONSlice[TitledItem] `json:"features"`
	Benefits datatypes.JSONSlice[TitledItem] `json:"benefits"`
	Process  datatypes.JSONSlice[TitledItem] `json:"process"`
	FAQ      datatypes.JSONSlice[FAQItem]    `json:"faq"`
}

// TableName 指定表名。
func (DigitalService) TableName() string {
	return "digital_services"
}

// Normalize 将缺失的列表替换为空列表。
func (d *DigitalService) Normalize() {
	d.Features = emptyIfNil(d.Features)
	d.Benefits = emptyIfNil(d.Benefits)
	d.Process = emptyIfNil(d.Process)
	d.FAQ = emptyIfNil(d.FAQ)
}

// NormalizeDescription 补齐描述中缺失的部分。
func NormalizeDescription(d Description) Description {
	if d.Intro == nil {
		d.Intro = []string{}
	}
	return d
}

func emptyIfNil[T any](items datatypes.JSONSlice[T]) datatypes.JSONSlice[T] {
	if items == nil {
		return datatypes.JSONSlice[T]{}
	}
	return items
}

func normalizeTechStack(groups datatypes.JSONSlice[TechStackGroup]) datatypes.JSONSlice[TechStackGroup] {
	groups = emptyIfNil(groups)
	for i := range groups {
		if groups[i].Items == nil {
			groups[i].Items = []string{}
		}
	}
	return groups
}

package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/section"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrPageNotFound = errors.New("page not found")

// PageService provides access to section-composed pages.
type PageService struct {
	db *gorm.DB
}

// PageInput represents fields accepted when creating or updating a page.
// Sections replace the stored list wholesale when provided.
type PageInput struct {
	Title       *string      `json:"title"`
	Slug        *string      `json:"slug"`
	Description *string      `json:"description"`
	IsPublished *bool        `json:"isPublished"`
	Sections    []db.Section `json:"sections"`
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// List returns pages ordered by title.
func (s *PageService) List(publishedOnly bool) ([]db.Page, error) {
	var pages []db.Page
	query := s.db.Model(&db.Page{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Order("title asc").Order("id asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Get fetches a page by id.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Create validates and inserts a new page.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	var page db.Page
	input.apply(&page)
	if err := s.prepare(&page); err != nil {
		return nil, err
	}
	if err := translateWriteError(s.db.Create(&page).Error, page.Slug); err != nil {
		return nil, err
	}
	return &page, nil
}

// Update applies the provided fields to an existing page.
func (s *PageService) Update(id uint, input PageInput) (*db.Page, error) {
	page, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	input.apply(page)
	if err := s.prepare(page); err != nil {
		return nil, err
	}
	if err := translateWriteError(s.db.Save(page).Error, page.Slug); err != nil {
		return nil, err
	}
	return page, nil
}

// Delete removes a page and reports whether it existed.
func (s *PageService) Delete(id uint) (bool, error) {
	result := s.db.Delete(&db.Page{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (in PageInput) apply(page *db.Page) {
	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Slug != nil {
		page.Slug = *in.Slug
	}
	if in.Description != nil {
		page.Description = *in.Description
	}
	if in.IsPublished != nil {
		page.IsPublished = *in.IsPublished
	}
	if in.Sections != nil {
		page.Sections = datatypes.JSONSlice[db.Section](in.Sections)
	}
}

func (s *PageService) prepare(page *db.Page) error {
	page.Title = strings.TrimSpace(page.Title)
	page.Description = strings.TrimSpace(page.Description)
	if err := requireText("title", page.Title); err != nil {
		return err
	}
	slug, err := normalizeSlug(page.Slug)
	if err != nil {
		return err
	}
	page.Slug = slug

	sections, err := NormalizeSections(page.Sections)
	if err != nil {
		return err
	}
	page.Sections = datatypes.JSONSlice[db.Section](sections)
	page.Status = db.DeriveStatus(page.IsPublished)

	return ensureSlugAvailable(s.db, &db.Page{}, page.Slug, page.ID)
}

// NormalizeSections validates every section against the section registry,
// assigns missing ids and compacts the payloads.
func NormalizeSections(sections []db.Section) ([]db.Section, error) {
	out := make([]db.Section, 0, len(sections))
	seen := make(map[string]struct{}, len(sections))
	for i, sec := range sections {
		field := fmt.Sprintf("sections[%d]", i)
		component := strings.ToLower(strings.TrimSpace(sec.Component))
		if component == "" {
			return nil, invalidField(field+".component", "is required")
		}

		data := bytes.TrimSpace(sec.Data)
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			data = []byte("{}")
		}
		if _, err := section.Decode(component, data); err != nil {
			return nil, invalidField(field, "%s", err.Error())
		}
		var compacted bytes.Buffer
		if err := json.Compact(&compacted, data); err != nil {
			return nil, invalidField(field+".data", "is not valid JSON")
		}

		id := strings.TrimSpace(sec.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return nil, invalidField(field+".id", "duplicates another section")
		}
		seen[id] = struct{}{}

		out = append(out, db.Section{ID: id, Component: component, Data: json.RawMessage(compacted.Bytes())})
	}
	return out, nil
}

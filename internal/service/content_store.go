package service

import (
	"errors"
	"strings"

	"github.com/agencysite/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// contentModel is satisfied by pointers to entities embedding db.ContentBase.
type contentModel[T any] interface {
	*T
	Base() *db.ContentBase
	Normalize()
}

// contentStore implements the CRUD access shared by services, industries,
// technologies and digital services.
type contentStore[T any, P contentModel[T]] struct {
	db *gorm.DB
}

func (s contentStore[T, P]) list(publishedOnly bool) ([]T, error) {
	var records []T
	query := s.db.Model(new(T))
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Order("created_at desc").Order("id desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s contentStore[T, P]) get(id uint) (P, error) {
	record := P(new(T))
	if err := s.db.First(record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s contentStore[T, P]) getBySlug(slug string) (P, error) {
	record := P(new(T))
	if err := s.db.Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).First(record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s contentStore[T, P]) create(record P) error {
	if err := s.prepare(record); err != nil {
		return err
	}
	return translateWriteError(s.db.Create(record).Error, record.Base().Slug)
}

func (s contentStore[T, P]) save(record P) error {
	if err := s.prepare(record); err != nil {
		return err
	}
	return translateWriteError(s.db.Save(record).Error, record.Base().Slug)
}

func (s contentStore[T, P]) delete(id uint) (bool, error) {
	result := s.db.Delete(new(T), id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// prepare validates required fields, normalizes collections, derives the
// status and checks slug availability. The slug check is advisory; the
// unique index is the backstop.
func (s contentStore[T, P]) prepare(record P) error {
	base := record.Base()
	base.Title = strings.TrimSpace(base.Title)
	base.Subtitle = strings.TrimSpace(base.Subtitle)
	base.Image = strings.TrimSpace(base.Image)

	if err := requireText("title", base.Title); err != nil {
		return err
	}
	slug, err := normalizeSlug(base.Slug)
	if err != nil {
		return err
	}
	base.Slug = slug
	if err := requireText("subtitle", base.Subtitle); err != nil {
		return err
	}

	base.Status = db.DeriveStatus(base.IsPublished)
	base.Description = datatypes.NewJSONType(db.NormalizeDescription(base.Description.Data()))
	record.Normalize()

	return ensureSlugAvailable(s.db, new(T), base.Slug, base.ID)
}

// ensureSlugAvailable fails with ErrSlugExists when another row of model's
// table already uses slug.
func ensureSlugAvailable(gdb *gorm.DB, model any, slug string, excludeID uint) error {
	var count int64
	query := gdb.Model(model).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return slugTaken(slug)
	}
	return nil
}

func translateWriteError(err error, slug string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return slugTaken(slug)
	}
	return err
}

// ContentInput carries the shared writable fields. Nil means "not provided":
// on create the zero value is used, on update the stored value is kept.
type ContentInput struct {
	Title       *string         `json:"title"`
	Slug        *string         `json:"slug"`
	Subtitle    *string         `json:"subtitle"`
	Image       *string         `json:"image"`
	IsPublished *bool           `json:"isPublished"`
	Description *db.Description `json:"description"`
}

func (in ContentInput) apply(base *db.ContentBase) {
	if in.Title != nil {
		base.Title = *in.Title
	}
	if in.Slug != nil {
		base.Slug = *in.Slug
	}
	if in.Subtitle != nil {
		base.Subtitle = *in.Subtitle
	}
	if in.Image != nil {
		base.Image = *in.Image
	}
	if in.IsPublished != nil {
		base.IsPublished = *in.IsPublished
	}
	if in.Description != nil {
		base.Description = datatypes.NewJSONType(*in.Description)
	}
}

func setIfProvided[T any](dst *datatypes.JSONSlice[T], src []T) {
	if src != nil {
		*dst = datatypes.JSONSlice[T](src)
	}
}

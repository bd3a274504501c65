package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/section"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrComponentNotFound = errors.New("component not found")
	ErrComponentExists   = errors.New("component name already exists")
)

// ComponentService manages the catalog of reusable section components.
type ComponentService struct {
	db *gorm.DB
}

// ComponentInput represents fields accepted when creating or updating a component.
type ComponentInput struct {
	Name        *string         `json:"name"`
	Type        *string         `json:"type"`
	Description *string         `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

// NewComponentService returns a new ComponentService instance.
func NewComponentService(gdb *gorm.DB) *ComponentService {
	return &ComponentService{db: gdb}
}

// List returns all components ordered by name.
func (s *ComponentService) List() ([]db.Component, error) {
	var components []db.Component
	if err := s.db.Order("name asc").Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// Get fetches a component by id.
func (s *ComponentService) Get(id uint) (*db.Component, error) {
	var component db.Component
	if err := s.db.First(&component, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return &component, nil
}

// Create validates and inserts a component.
func (s *ComponentService) Create(input ComponentInput) (*db.Component, error) {
	var component db.Component
	input.apply(&component)
	if err := s.save(&component, true); err != nil {
		return nil, err
	}
	return &component, nil
}

// Update applies the provided fields to an existing component.
func (s *ComponentService) Update(id uint, input ComponentInput) (*db.Component, error) {
	component, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	input.apply(component)
	if err := s.save(component, false); err != nil {
		return nil, err
	}
	return component, nil
}

// Delete removes a component and reports whether it existed.
func (s *ComponentService) Delete(id uint) (bool, error) {
	result := s.db.Delete(&db.Component{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (in ComponentInput) apply(component *db.Component) {
	if in.Name != nil {
		component.Name = *in.Name
	}
	if in.Type != nil {
		component.Type = *in.Type
	}
	if in.Description != nil {
		component.Description = *in.Description
	}
	if in.Schema != nil {
		component.Schema = datatypes.JSON(in.Schema)
	}
}

func (s *ComponentService) save(component *db.Component, create bool) error {
	component.Name = strings.TrimSpace(component.Name)
	component.Type = strings.ToLower(strings.TrimSpace(component.Type))
	component.Description = strings.TrimSpace(component.Description)

	if err := requireText("name", component.Name); err != nil {
		return err
	}
	if err := requireText("type", component.Type); err != nil {
		return err
	}
	if !section.IsKnown(component.Type) {
		return invalidField("type", "must be one of: %s", strings.Join(section.Tags(), ", "))
	}

	schema := bytes.TrimSpace(component.Schema)
	if len(schema) == 0 || bytes.Equal(schema, []byte("null")) {
		schema = []byte("{}")
	}
	var probe map[string]any
	if err := json.Unmarshal(schema, &probe); err != nil {
		return invalidField("schema", "must be a JSON object")
	}
	component.Schema = datatypes.JSON(schema)

	var count int64
	query := s.db.Model(&db.Component{}).Where("name = ?", component.Name)
	if component.ID != 0 {
		query = query.Where("id <> ?", component.ID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %q", ErrComponentExists, component.Name)
	}

	var err error
	if create {
		err = s.db.Create(component).Error
	} else {
		err = s.db.Save(component).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %q", ErrComponentExists, component.Name)
	}
	return err
}

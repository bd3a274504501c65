package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/navigation"
	"gorm.io/gorm"
)

var (
	ErrNavigationNotFound = errors.New("navigation item not found")
	ErrNavigationOrder    = errors.New("invalid navigation order")
)

// NavigationService manages the navigation menu tree.
type NavigationService struct {
	db *gorm.DB
}

// NullableID distinguishes an absent parentId from an explicit null.
type NullableID struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON 仅在字段出现时被调用，因此 Set 表示请求中包含该字段。
func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	if id == 0 {
		n.Value = nil
		return nil
	}
	n.Value = &id
	return nil
}

// NavigationInput represents fields accepted when creating or updating a
// navigation item. Level is never accepted; it follows from the parent.
type NavigationInput struct {
	Title    *string    `json:"title"`
	Slug     *string    `json:"slug"`
	URL      *string    `json:"url"`
	Type     *string    `json:"type"`
	Order    *int       `json:"order"`
	IsActive *bool      `json:"isActive"`
	ParentID NullableID `json:"parentId"`
}

// NewNavigationService returns a new NavigationService instance.
func NewNavigationService(gdb *gorm.DB) *NavigationService {
	return &NavigationService{db: gdb}
}

func loadNavigation(tx *gorm.DB) ([]db.NavigationItem, error) {
	var items []db.NavigationItem
	if err := tx.Order("level asc").Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// List returns the flat item list ordered by level and sibling order.
func (s *NavigationService) List() ([]db.NavigationItem, error) {
	return loadNavigation(s.db)
}

// Tree returns the menu tree; activeOnly hides inactive items and their subtrees.
func (s *NavigationService) Tree(activeOnly bool) ([]navigation.MenuItem, error) {
	items, err := loadNavigation(s.db)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		return navigation.BuildActive(items), nil
	}
	return navigation.Build(items), nil
}

// Get fetches a navigation item by id.
func (s *NavigationService) Get(id uint) (*db.NavigationItem, error) {
	var item db.NavigationItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNavigationNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an item, deriving its level and type from the parent.
func (s *NavigationService) Create(input NavigationInput) (*db.NavigationItem, error) {
	var created db.NavigationItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, err := loadNavigation(tx)
		if err != nil {
			return err
		}
		arena := navigation.NewArena(items)

		item := db.NavigationItem{IsActive: true}
		input.applyFields(&item)
		if err := normalizeNavigationFields(&item); err != nil {
			return err
		}

		parent, err := lookupParent(arena, input.ParentID.Value)
		if err != nil {
			return err
		}
		requested := ""
		if input.Type != nil {
			requested = *input.Type
		}
		level, typ, err := placeItem(parent, requested)
		if err != nil {
			return err
		}
		item.Level = level
		item.Type = typ
		item.ParentID = input.ParentID.Value
		if input.Order == nil {
			item.Order = arena.NextOrder(item.ParentID)
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies the provided fields. Moving an item re-derives its level and
// type; an item with children cannot change level or lose the ability to
// hold them.
func (s *NavigationService) Update(id uint, input NavigationInput) (*db.NavigationItem, error) {
	var updated db.NavigationItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, err := loadNavigation(tx)
		if err != nil {
			return err
		}
		arena := navigation.NewArena(items)

		item, ok := arena.Get(id)
		if !ok {
			return ErrNavigationNotFound
		}
		previousLevel := item.Level
		previousParent := item.ParentID

		input.applyFields(&item)
		if err := normalizeNavigationFields(&item); err != nil {
			return err
		}

		if input.ParentID.Set || input.Type != nil {
			parentID := item.ParentID
			if input.ParentID.Set {
				parentID = input.ParentID.Value
			}
			if parentID != nil && arena.IsWithin(id, *parentID) {
				return invalidField("parentId", "cannot be the item itself or one of its descendants")
			}
			parent, err := lookupParent(arena, parentID)
			if err != nil {
				return err
			}
			requested := item.Type
			if input.Type != nil {
				requested = *input.Type
			}
			level, typ, err := placeItem(parent, requested)
			if err != nil {
				return err
			}
			item.Level = level
			item.Type = typ
			item.ParentID = parentID
		}

		if arena.HasChildren(id) && (item.Level != previousLevel || !canHoldChildren(item)) {
			return invalidField("type", "cannot change while the item has children")
		}
		if !sameParent(previousParent, item.ParentID) && input.Order == nil {
			item.Order = arena.NextOrder(item.ParentID)
		}

		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an item together with every descendant and reports whether
// the item existed.
func (s *NavigationService) Delete(id uint) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, err := loadNavigation(tx)
		if err != nil {
			return err
		}
		ids := navigation.NewArena(items).Subtree(id)
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("id IN ?", ids).Delete(&db.NavigationItem{}).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// Reorder assigns order 0..n-1 following ids. All ids must be siblings.
func (s *NavigationService) Reorder(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return ErrNavigationOrder
		}
		if _, ok := seen[id]; ok {
			return ErrNavigationOrder
		}
		seen[id] = struct{}{}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var items []db.NavigationItem
		if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
			return err
		}
		if len(items) != len(ids) {
			return ErrNavigationNotFound
		}
		for _, item := range items[1:] {
			if !sameParent(items[0].ParentID, item.ParentID) {
				return ErrNavigationOrder
			}
		}

		for idx, id := range ids {
			result := tx.Model(&db.NavigationItem{}).Where("id = ?", id).Update("sort_order", idx)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrNavigationNotFound
			}
		}
		return nil
	})
}

func (in NavigationInput) applyFields(item *db.NavigationItem) {
	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Slug != nil {
		item.Slug = *in.Slug
	}
	if in.URL != nil {
		item.URL = *in.URL
	}
	if in.Order != nil {
		item.Order = *in.Order
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
}

func normalizeNavigationFields(item *db.NavigationItem) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Slug = strings.Trim(strings.ToLower(strings.TrimSpace(item.Slug)), "/")
	item.URL = strings.TrimSpace(item.URL)
	if err := requireText("title", item.Title); err != nil {
		return err
	}
	if item.Order < 0 {
		return invalidField("order", "must be at least 0")
	}
	return nil
}

func lookupParent(arena *navigation.Arena, parentID *uint) (*db.NavigationItem, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, ok := arena.Get(*parentID)
	if !ok {
		return nil, invalidField("parentId", "references a missing navigation item")
	}
	return &parent, nil
}

func placeItem(parent *db.NavigationItem, requested string) (int, string, error) {
	level, typ, err := navigation.Place(parent, requested)
	switch {
	case err == nil:
		return level, typ, nil
	case errors.Is(err, navigation.ErrInvalidType):
		return 0, "", invalidField("type", "%s", err.Error())
	case errors.Is(err, navigation.ErrParentNotGroup):
		return 0, "", invalidField("parentId", "%s", err.Error())
	default:
		return 0, "", err
	}
}

func canHoldChildren(item db.NavigationItem) bool {
	return item.IsGroup() || (item.Level == db.NavLevelSubheading && item.Type == db.NavTypeSubheading)
}

func sameParent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

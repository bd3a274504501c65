package service

import (
	"errors"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/navigation"
	"gorm.io/gorm"
)

// MaintenanceResult summarises a seed or repair run.
type MaintenanceResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}

type navSeed struct {
	Title    string
	URL      string
	Type     string
	Children []navSeed
}

var defaultNavigation = []navSeed{
	{Title: "Home", URL: "/", Type: db.NavTypeLink},
	{Title: "Services", Type: db.NavTypeHierarchy, Children: []navSeed{
		{Title: "Cloud", Children: []navSeed{
			{Title: "Cloud Migration", URL: "/services/cloud-migration"},
			{Title: "DevOps & CI/CD", URL: "/services/devops"},
		}},
		{Title: "Development", Children: []navSeed{
			{Title: "Web Development", URL: "/services/web-development"},
			{Title: "Mobile Apps", URL: "/services/mobile-apps"},
		}},
		{Title: "Data", Children: []navSeed{
			{Title: "Data Engineering", URL: "/services/data-engineering"},
			{Title: "AI & Machine Learning", URL: "/services/ai-ml"},
		}},
	}},
	{Title: "Industries", Type: db.NavTypeDropdown, Children: []navSeed{
		{Title: "Healthcare", URL: "/industries/healthcare", Type: db.NavTypeLink},
		{Title: "Finance", URL: "/industries/finance", Type: db.NavTypeLink},
		{Title: "Retail", URL: "/industries/retail", Type: db.NavTypeLink},
	}},
	{Title: "Technologies", Type: db.NavTypeDropdown, Children: []navSeed{
		{Title: "Go", URL: "/technologies/go", Type: db.NavTypeLink},
		{Title: "React", URL: "/technologies/react", Type: db.NavTypeLink},
		{Title: "Kubernetes", URL: "/technologies/kubernetes", Type: db.NavTypeLink},
	}},
	{Title: "About", URL: "/pages/about", Type: db.NavTypeLink},
	{Title: "Contact", URL: "/pages/contact", Type: db.NavTypeLink},
}

const (
	blogTitle = "Blog"
	blogURL   = "/blog"
)

// SeedDefaults creates the default menu. Items already present (same title
// under the same parent) are left untouched, so repeated runs are no-ops.
func (s *NavigationService) SeedDefaults() (MaintenanceResult, error) {
	var result MaintenanceResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return seedLevel(tx, nil, defaultNavigation, &result)
	})
	return result, err
}

func seedLevel(tx *gorm.DB, parent *db.NavigationItem, seeds []navSeed, result *MaintenanceResult) error {
	for _, seed := range seeds {
		item, created, err := ensureNavItem(tx, parent, seed)
		if err != nil {
			return err
		}
		if created {
			result.Created++
		}
		if len(seed.Children) > 0 {
			if err := seedLevel(tx, item, seed.Children, result); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureNavItem(tx *gorm.DB, parent *db.NavigationItem, seed navSeed) (*db.NavigationItem, bool, error) {
	var existing db.NavigationItem
	query := tx.Where("title = ?", seed.Title)
	if parent == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", parent.ID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	level, typ, err := placeItem(parent, seed.Type)
	if err != nil {
		return nil, false, err
	}
	var parentID *uint
	if parent != nil {
		parentID = &parent.ID
	}
	// 追加到已有同级之后，避免与手工创建的条目顺序冲突
	order, err := nextSiblingOrder(tx, parentID)
	if err != nil {
		return nil, false, err
	}
	item := db.NavigationItem{
		Title:    seed.Title,
		URL:      seed.URL,
		Type:     typ,
		Level:    level,
		Order:    order,
		IsActive: true,
		ParentID: parentID,
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

// nextSiblingOrder returns max(sibling order)+1 under parentID, or 0.
func nextSiblingOrder(tx *gorm.DB, parentID *uint) (int, error) {
	var maxOrder struct{ Max *int }
	query := tx.Model(&db.NavigationItem{}).Select("MAX(sort_order) AS max")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if err := query.Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	if maxOrder.Max == nil {
		return 0, nil
	}
	return *maxOrder.Max + 1, nil
}

// AddBlog appends a root "Blog" link when no root blog entry exists.
func (s *NavigationService) AddBlog() (MaintenanceResult, error) {
	var result MaintenanceResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, err := rootBlogItems(tx)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			return nil
		}
		var maxOrder struct{ Max *int }
		if err := tx.Model(&db.NavigationItem{}).Select("MAX(sort_order) AS max").Where("parent_id IS NULL").Scan(&maxOrder).Error; err != nil {
			return err
		}
		order := 0
		if maxOrder.Max != nil {
			order = *maxOrder.Max + 1
		}
		blog := db.NavigationItem{
			Title:    blogTitle,
			Slug:     "blog",
			URL:      blogURL,
			Type:     db.NavTypeLink,
			Level:    db.NavLevelRoot,
			Order:    order,
			IsActive: true,
		}
		if err := tx.Create(&blog).Error; err != nil {
			return err
		}
		result.Created = 1
		return nil
	})
	return result, err
}

// FixBlog repairs root blog entries: it keeps the oldest one, resets it to an
// active entry pointing at /blog and removes duplicates with their subtrees.
// A kept entry that still holds children stays a group; any other kept entry
// becomes a plain link.
func (s *NavigationService) FixBlog() (MaintenanceResult, error) {
	var result MaintenanceResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, err := rootBlogItems(tx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		all, err := loadNavigation(tx)
		if err != nil {
			return err
		}
		arena := navigation.NewArena(all)

		keep := items[0]
		typ := db.NavTypeLink
		if keep.IsGroup() && arena.HasChildren(keep.ID) {
			typ = keep.Type
		}
		// 非分组节点不能挂子项，残留的子树随之清理
		var doomed []uint
		if typ == db.NavTypeLink {
			doomed = append(doomed, arena.Subtree(keep.ID)[1:]...)
		}
		if keep.Title != blogTitle || keep.URL != blogURL || keep.Type != typ || !keep.IsActive || keep.Level != db.NavLevelRoot {
			keep.Title = blogTitle
			keep.Slug = "blog"
			keep.URL = blogURL
			keep.Type = typ
			keep.Level = db.NavLevelRoot
			keep.IsActive = true
			if err := tx.Save(&keep).Error; err != nil {
				return err
			}
			result.Updated = 1
		}

		for _, dup := range items[1:] {
			doomed = append(doomed, arena.Subtree(dup.ID)...)
		}
		if len(doomed) > 0 {
			if err := tx.Where("id IN ?", doomed).Delete(&db.NavigationItem{}).Error; err != nil {
				return err
			}
			result.Removed = len(doomed)
		}
		return nil
	})
	return result, err
}

func rootBlogItems(tx *gorm.DB) ([]db.NavigationItem, error) {
	var roots []db.NavigationItem
	if err := tx.Where("parent_id IS NULL").Order("id asc").Find(&roots).Error; err != nil {
		return nil, err
	}
	var out []db.NavigationItem
	for _, item := range roots {
		if isBlogEntry(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func isBlogEntry(item db.NavigationItem) bool {
	return strings.EqualFold(strings.TrimSpace(item.Title), blogTitle) ||
		strings.EqualFold(strings.Trim(item.Slug, "/ "), "blog") ||
		strings.EqualFold(strings.TrimRight(strings.TrimSpace(item.URL), "/"), blogURL)
}

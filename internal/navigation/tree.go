// Package navigation turns the flat navigation_items collection into the
// three-level menu tree and enforces the placement rules for new items.
package navigation

import (
	"cmp"
	"slices"

	"github.com/agencysite/internal/db"
)

// MenuItem is a node of the rendered menu tree. Leaves omit Children.
type MenuItem struct {
	ID       uint       `json:"id"`
	Title    string     `json:"title"`
	Slug     string     `json:"slug,omitempty"`
	URL      string     `json:"url,omitempty"`
	Type     string     `json:"type"`
	Level    int        `json:"level"`
	Order    int        `json:"order"`
	IsActive bool       `json:"isActive"`
	Children []MenuItem `json:"children,omitempty"`
}

// Href returns the link target, preferring an explicit URL over the slug.
func (m MenuItem) Href() string {
	if m.URL != "" {
		return m.URL
	}
	if m.Slug != "" {
		return "/" + m.Slug
	}
	return "#"
}

// Arena indexes navigation items by id and by parent id. Relations are id
// references only; traversal never goes back to the database.
type Arena struct {
	items    map[uint]db.NavigationItem
	roots    []uint
	children map[uint][]uint
}

// NewArena builds an arena from a flat item list. Siblings are kept in
// ascending Order, ties broken by id.
func NewArena(items []db.NavigationItem) *Arena {
	a := &Arena{
		items:    make(map[uint]db.NavigationItem, len(items)),
		children: make(map[uint][]uint),
	}
	for _, item := range items {
		a.items[item.ID] = item
	}
	for _, item := range items {
		if item.ParentID == nil {
			a.roots = append(a.roots, item.ID)
			continue
		}
		a.children[*item.ParentID] = append(a.children[*item.ParentID], item.ID)
	}

	a.sortSiblings(a.roots)
	for _, ids := range a.children {
		a.sortSiblings(ids)
	}
	return a
}

func (a *Arena) sortSiblings(ids []uint) {
	slices.SortFunc(ids, func(x, y uint) int {
		if c := cmp.Compare(a.items[x].Order, a.items[y].Order); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
}

// Get returns the item with the given id.
func (a *Arena) Get(id uint) (db.NavigationItem, bool) {
	item, ok := a.items[id]
	return item, ok
}

// Len reports the number of indexed items.
func (a *Arena) Len() int {
	return len(a.items)
}

// Siblings returns the ordered items sharing parentID (nil for roots).
func (a *Arena) Siblings(parentID *uint) []db.NavigationItem {
	ids := a.roots
	if parentID != nil {
		ids = a.children[*parentID]
	}
	out := make([]db.NavigationItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.items[id])
	}
	return out
}

// NextOrder returns max(sibling order)+1, or 0 when there are no siblings.
func (a *Arena) NextOrder(parentID *uint) int {
	siblings := a.Siblings(parentID)
	if len(siblings) == 0 {
		return 0
	}
	maxOrder := siblings[0].Order
	for _, item := range siblings[1:] {
		maxOrder = max(maxOrder, item.Order)
	}
	return maxOrder + 1
}

// Subtree returns id followed by every item reachable from it through
// child references. A visited set guards against corrupt cyclic data.
func (a *Arena) Subtree(id uint) []uint {
	if _, ok := a.items[id]; !ok {
		return nil
	}
	visited := map[uint]struct{}{id: {}}
	out := []uint{id}
	for i := 0; i < len(out); i++ {
		for _, child := range a.children[out[i]] {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			out = append(out, child)
		}
	}
	return out
}

// HasChildren reports whether any item references id as its parent.
func (a *Arena) HasChildren(id uint) bool {
	return len(a.children[id]) > 0
}

// IsWithin reports whether id is ancestor itself or one of its descendants.
func (a *Arena) IsWithin(ancestor, id uint) bool {
	return slices.Contains(a.Subtree(ancestor), id)
}

// Tree builds the menu tree. keep filters items; a rejected item hides its
// whole subtree. Items whose parent is missing are unreachable and omitted.
func (a *Arena) Tree(keep func(db.NavigationItem) bool) []MenuItem {
	return a.build(a.roots, keep, map[uint]struct{}{})
}

func (a *Arena) build(ids []uint, keep func(db.NavigationItem) bool, visited map[uint]struct{}) []MenuItem {
	var out []MenuItem
	for _, id := range ids {
		if _, seen := visited[id]; seen {
			continue
		}
		item := a.items[id]
		if keep != nil && !keep(item) {
			continue
		}
		visited[id] = struct{}{}

		node := MenuItem{
			ID:       item.ID,
			Title:    item.Title,
			Slug:     item.Slug,
			URL:      item.URL,
			Type:     item.Type,
			Level:    item.Level,
			Order:    item.Order,
			IsActive: item.IsActive,
		}
		if children := a.build(a.children[id], keep, visited); len(children) > 0 {
			node.Children = children
		}
		out = append(out, node)
	}
	return out
}

// Build converts a flat item list into the menu tree.
func Build(items []db.NavigationItem) []MenuItem {
	return NewArena(items).Tree(nil)
}

// BuildActive is Build restricted to active items.
func BuildActive(items []db.NavigationItem) []MenuItem {
	return NewArena(items).Tree(func(item db.NavigationItem) bool {
		return item.IsActive
	})
}

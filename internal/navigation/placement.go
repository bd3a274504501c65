package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
)

var (
	ErrInvalidType    = errors.New("invalid navigation type")
	ErrParentNotGroup = errors.New("parent navigation item cannot have children")
)

var validTypes = []string{
	db.NavTypeLink,
	db.NavTypeDropdown,
	db.NavTypeSubheading,
	db.NavTypeSubitem,
	db.NavTypeHierarchy,
}

// IsValidType checks if a type value is valid.
func IsValidType(typ string) bool {
	for _, t := range validTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// Place computes the level and effective type for an item created under
// parent (nil for a root item).
//
//	root                     -> level 0, link|dropdown|three-level-hierarchy
//	child of dropdown/3-level -> level 1, subheading (or link when asked for)
//	child of subheading      -> level 2, subitem
//
// Any other combination is rejected.
func Place(parent *db.NavigationItem, requested string) (int, string, error) {
	typ := strings.ToLower(strings.TrimSpace(requested))
	if typ != "" && !IsValidType(typ) {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidType, requested)
	}

	if parent == nil {
		switch typ {
		case "":
			return db.NavLevelRoot, db.NavTypeLink, nil
		case db.NavTypeLink, db.NavTypeDropdown, db.NavTypeHierarchy:
			return db.NavLevelRoot, typ, nil
		default:
			return 0, "", fmt.Errorf("%w: %s items need a parent", ErrInvalidType, typ)
		}
	}

	switch {
	case parent.IsGroup():
		if typ == db.NavTypeLink {
			return db.NavLevelSubheading, db.NavTypeLink, nil
		}
		return db.NavLevelSubheading, db.NavTypeSubheading, nil
	case parent.Level == db.NavLevelSubheading && parent.Type == db.NavTypeSubheading:
		return db.NavLevelSubitem, db.NavTypeSubitem, nil
	default:
		return 0, "", ErrParentNotGroup
	}
}

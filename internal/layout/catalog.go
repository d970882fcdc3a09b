package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyCatalog = errors.New("layout: empty catalog")
	ErrBadLayout    = errors.New("layout: invalid layout")
	ErrDuplicateID  = errors.New("layout: duplicate layout id")
)

// Catalog is an ordered, immutable list of layouts.
type Catalog struct {
	layouts []Layout
	byID    map[string]int
}

// NewCatalog validates the layouts and builds a catalog from a copy of them.
func NewCatalog(layouts []Layout) (*Catalog, error) {
	if len(layouts) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		layouts: make([]Layout, len(layouts)),
		byID:    make(map[string]int, len(layouts)),
	}
	copy(c.layouts, layouts)

	for i := range c.layouts {
		l := &c.layouts[i]
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("layout %d: %w", i+1, err)
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, l.ID)
		}
		c.byID[l.ID] = i
	}
	return c, nil
}

// Len returns the number of layouts.
func (c *Catalog) Len() int {
	return len(c.layouts)
}

// At returns the layout at index, wrapping in both directions.
func (c *Catalog) At(index int) *Layout {
	n := len(c.layouts)
	i := index % n
	if i < 0 {
		i += n
	}
	return &c.layouts[i]
}

// ForLevel returns the layout used by a 1-based level number together with its
// catalog index: index = (level-1) mod Len.
func (c *Catalog) ForLevel(level int) (*Layout, int) {
	n := len(c.layouts)
	i := (level - 1) % n
	if i < 0 {
		i += n
	}
	return &c.layouts[i], i
}

// Layouts returns a copy of all layouts in order.
func (c *Catalog) Layouts() []Layout {
	out := make([]Layout, len(c.layouts))
	copy(out, c.layouts)
	return out
}

// Find looks a layout up by id, case-insensitive name or 1-based number.
func (c *Catalog) Find(key string) (*Layout, int, bool) {
	if i, ok := c.byID[key]; ok {
		return &c.layouts[i], i, true
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.layouts) {
		return &c.layouts[n-1], n - 1, true
	}
	for i := range c.layouts {
		if strings.EqualFold(c.layouts[i].Name, key) {
			return &c.layouts[i], i, true
		}
	}
	return nil, -1, false
}

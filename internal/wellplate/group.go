package wellplate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Group is a named experimental factor with an ordered list of levels
// and a display color. An empty Items list marks a presence group: the
// group name stands in as its only item.
type Group struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Items   []string  `json:"items"`
	Color   string    `json:"color"`
	Created time.Time `json:"created"`
}

// NewGroup builds a group, trimming item whitespace and dropping blank
// entries. Name uniqueness is the caller's concern: the session store
// replaces an existing group of the same name.
func NewGroup(name string, items []string, color string) Group {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	return Group{
		ID:      uuid.New().String(),
		Name:    name,
		Items:   kept,
		Color:   color,
		Created: time.Now(),
	}
}

// EffectiveItems returns the group's items, or the group name alone
// for a presence group.
func (g Group) EffectiveItems() []string {
	if len(g.Items) == 0 {
		return []string{g.Name}
	}
	return g.Items
}

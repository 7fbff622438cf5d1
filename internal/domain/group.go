package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrGroupNameEmpty is returned when a group name trims to empty.
var ErrGroupNameEmpty = errors.New("group name cannot be empty")

// CategoryAll is the sentinel category meaning "no filter".
const CategoryAll = "all"

// Group is a named collection of cards studied together. Cards keep their
// insertion order.
type Group struct {
	ID    GroupID `json:"id"`
	Name  string  `json:"name"`
	Cards []Card  `json:"cards"`
}

// NewGroup creates an empty group. The name is trimmed and must not be empty.
func NewGroup(id GroupID, name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "is required", ErrGroupNameEmpty)
	}
	return &Group{ID: id, Name: name, Cards: []Card{}}, nil
}

// Categories returns the sentinel followed by the sorted distinct non-empty
// categories of the group's cards. A card literally filed under the sentinel
// is reachable only through the sentinel itself.
func (g *Group) Categories() []string {
	seen := make(map[string]struct{}, len(g.Cards))
	names := make([]string, 0, len(g.Cards))
	for _, c := range g.Cards {
		if c.Category == "" || c.Category == CategoryAll {
			continue
		}
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		names = append(names, c.Category)
	}
	sort.Strings(names)
	return append([]string{CategoryAll}, names...)
}

// Filter returns the cards in category, or every card for CategoryAll.
// Order is preserved. The result never aliases the group's slice.
func (g *Group) Filter(category string) []Card {
	out := make([]Card, 0, len(g.Cards))
	for _, c := range g.Cards {
		if category == CategoryAll || c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// CardIndex returns the position of the card with the given ID, or -1.
func (g *Group) CardIndex(id CardID) int {
	for i := range g.Cards {
		if g.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	cards := make([]Card, len(g.Cards))
	copy(cards, g.Cards)
	return &Group{ID: g.ID, Name: g.Name, Cards: cards}
}

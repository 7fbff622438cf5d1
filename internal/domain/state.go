package domain

import "sort"

// State is the whole application state: the groups keyed by ID and the next
// IDs to hand out. NextGroupID exceeds every group ID and NextCardID exceeds
// every card ID in every group.
type State struct {
	Groups      map[GroupID]*Group
	NextGroupID GroupID
	NextCardID  CardID
}

// NewState builds a State around groups and derives both counters from the
// content as max+1. Counters from elsewhere are never trusted.
func NewState(groups map[GroupID]*Group) *State {
	if groups == nil {
		groups = make(map[GroupID]*Group)
	}
	s := &State{Groups: groups}
	s.RecomputeCounters()
	return s
}

// RecomputeCounters resets NextGroupID and NextCardID from the stored groups.
// With nothing to take a maximum over, both start at 1.
func (s *State) RecomputeCounters() {
	var maxGroup GroupID
	var maxCard CardID
	for id, g := range s.Groups {
		if id > maxGroup {
			maxGroup = id
		}
		for _, c := range g.Cards {
			if c.ID > maxCard {
				maxCard = c.ID
			}
		}
	}
	s.NextGroupID = maxGroup + 1
	s.NextCardID = maxCard + 1
}

// AllocateGroupID returns the next group ID and advances the counter.
func (s *State) AllocateGroupID() GroupID {
	id := s.NextGroupID
	s.NextGroupID++
	return id
}

// AllocateCardID returns the next card ID and advances the counter.
func (s *State) AllocateCardID() CardID {
	id := s.NextCardID
	s.NextCardID++
	return id
}

// SortedGroups returns the groups in ascending ID order.
func (s *State) SortedGroups() []*Group {
	out := make([]*Group, 0, len(s.Groups))
	for _, g := range s.Groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clone returns a deep copy, counters included.
func (s *State) Clone() *State {
	groups := make(map[GroupID]*Group, len(s.Groups))
	for id, g := range s.Groups {
		groups[id] = g.Clone()
	}
	return &State{
		Groups:      groups,
		NextGroupID: s.NextGroupID,
		NextCardID:  s.NextCardID,
	}
}

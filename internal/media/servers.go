package media

import (
	"maps"
	"slices"
)

// ServerSet is the set of server ids an item or file is published to.
type ServerSet map[string]struct{}

// NewServerSet returns a set holding ids.
func NewServerSet(ids ...string) ServerSet {
	s := make(ServerSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id. Empty ids are ignored.
func (s *ServerSet) Add(id string) {
	if id == "" {
		return
	}
	if *s == nil {
		*s = make(ServerSet)
	}
	(*s)[id] = struct{}{}
}

// Merge adds every id of o.
func (s *ServerSet) Merge(o ServerSet) {
	for id := range o {
		s.Add(id)
	}
}

// Has reports membership.
func (s ServerSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members sorted.
func (s ServerSet) IDs() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy.
func (s ServerSet) Clone() ServerSet {
	return maps.Clone(s)
}

package group

import (
	"github.com/thomascamminady/filefocus/pkg/models"
)

// Store owns the in-memory collection of groups for one workspace root,
// plus the single pinned group id. It is constructed once at startup and
// mutated in place for the process lifetime. All access happens from one
// goroutine, so there is no locking; mutation goes through the methods
// below, never through the map directly.
type Store struct {
	groups map[string]*models.Group
	pinned string
}

// NewStore creates an empty group store.
func NewStore() *Store {
	return &Store{
		groups: make(map[string]*models.Group),
	}
}

// AddGroup registers a group under its id, replacing any previous group
// with the same id.
func (s *Store) AddGroup(g *models.Group) {
	s.groups[g.ID] = g
}

// RemoveGroup deletes a group. If the group was pinned, the pin is
// cleared as well. No-op for unknown ids.
func (s *Store) RemoveGroup(id string) {
	delete(s.groups, id)
	if s.pinned == id {
		s.pinned = ""
	}
}

// Lookup returns the group with the given id, or nil.
func (s *Store) Lookup(id string) *models.Group {
	return s.groups[id]
}

// All returns every group in unspecified order. Callers sort for display.
func (s *Store) All() []*models.Group {
	groups := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	return groups
}

// Len returns the number of groups.
func (s *Store) Len() int {
	return len(s.groups)
}

// AddResource appends the resource to the group's sequence and reports
// whether the store changed. Adding to a missing group or adding a
// resource the group already lists is a no-op.
func (s *Store) AddResource(groupID, path string) bool {
	g := s.groups[groupID]
	if g == nil || g.Contains(path) {
		return false
	}
	g.Resources = append(g.Resources, path)
	return true
}

// RemoveResource removes the resource from the group's sequence and
// reports whether the store changed. No-op if the group is missing or
// the resource is absent.
func (s *Store) RemoveResource(groupID, path string) bool {
	g := s.groups[groupID]
	if g == nil {
		return false
	}
	for i, r := range g.Resources {
		if r == path {
			g.Resources = append(g.Resources[:i], g.Resources[i+1:]...)
			return true
		}
	}
	return false
}

// Pin marks the group as the single pinned group, implicitly un-pinning
// any previously pinned group. An empty id clears the pin. Pinning an
// unknown id is a no-op.
func (s *Store) Pin(id string) {
	if id != "" && s.groups[id] == nil {
		return
	}
	s.pinned = id
}

// Pinned returns the pinned group id, or "" when no group is pinned.
func (s *Store) Pinned() string {
	return s.pinned
}

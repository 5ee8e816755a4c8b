package models

// Group is a user-named, ordered collection of filesystem resources,
// independent of the underlying directory structure.
type Group struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Resources []string `json:"resources" yaml:"resources"` // normalized absolute paths, no duplicates
}

// Contains reports whether the group already lists the resource.
func (g *Group) Contains(path string) bool {
	for _, r := range g.Resources {
		if r == path {
			return true
		}
	}
	return false
}

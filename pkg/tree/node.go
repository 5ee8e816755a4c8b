package tree

import (
	"path/filepath"

	"github.com/thomascamminady/filefocus/pkg/fsys"
)

// NodeType tags the two display node variants.
type NodeType string

const (
	// NodeGroup wraps a group from the store; always expandable.
	NodeGroup NodeType = "group"
	// NodeResource wraps a filesystem resource; expandable only when its
	// kind is directory.
	NodeResource NodeType = "resource"
)

// Node is a transient display element, rebuilt fresh on every tree read.
// No node identity survives a refresh. Which fields are meaningful
// depends on Type.
type Node struct {
	Type NodeType

	Label   string
	Tooltip string

	// Group node fields.
	GroupID   string
	GroupName string
	Pinned    bool

	// Resource node fields.
	Path         string
	Kind         fsys.Kind
	RootMember   bool // listed directly in a group, as opposed to discovered by expansion
	OwnerGroup   string
	LocationHint string
}

// Expandable reports whether the host may ask for children of this node.
func (n *Node) Expandable() bool {
	switch n.Type {
	case NodeGroup:
		return true
	case NodeResource:
		return n.Kind == fsys.KindDirectory
	}
	return false
}

// locationHint builds the short parent hint shown next to root members:
// the last two segments of the containing directory, enough to tell two
// same-named resources from different places apart.
func locationHint(path string) string {
	dir := filepath.Dir(path)
	parent := filepath.Base(dir)
	grand := filepath.Dir(dir)
	if grand == dir || grand == "." || grand == string(filepath.Separator) {
		return parent
	}
	return filepath.Join(filepath.Base(grand), parent)
}

package tree

import (
	"context"
	"path/filepath"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/thomascamminady/filefocus/pkg/fsys"
	"github.com/thomascamminady/filefocus/pkg/group"
	"github.com/thomascamminady/filefocus/pkg/models"
)

// PinnedGlyph decorates the label of the pinned group's node. Purely
// presentational; sorting uses the undecorated name.
const PinnedGlyph = "★ "

// Persister is the sink the projector hands mutated groups to. Errors
// are the sink's concern; the projector fires and forgets.
type Persister interface {
	Persist(g *models.Group)
}

// Projector converts the group store plus on-demand filesystem queries
// into display nodes, and applies the drag-and-drop move protocol.
type Projector struct {
	store    *group.Store
	meta     fsys.Metadata
	lister   fsys.Lister
	sink     Persister
	changes  *Emitter
	collator *collate.Collator
}

// NewProjector wires the projector to its collaborators.
func NewProjector(store *group.Store, meta fsys.Metadata, lister fsys.Lister, sink Persister) *Projector {
	return &Projector{
		store:    store,
		meta:     meta,
		lister:   lister,
		sink:     sink,
		changes:  NewEmitter(),
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
}

// Changes returns the tree-change emitter.
func (p *Projector) Changes() *Emitter {
	return p.changes
}

// Refresh signals that the tree must be re-read from the root.
func (p *Projector) Refresh() {
	p.changes.Fire(nil)
}

// Children returns the display nodes under the given node. A nil node
// means the root level. Resolution failures are downgraded, never
// returned: a failed stat renders the resource with kind unknown, an
// unreadable directory renders as empty.
func (p *Projector) Children(ctx context.Context, node *Node) []*Node {
	switch {
	case node == nil:
		return p.groupNodes()
	case node.Type == NodeGroup:
		return p.rootMembers(ctx, node.GroupID)
	case node.Type == NodeResource && node.Kind == fsys.KindDirectory:
		return p.descendants(ctx, node)
	default:
		return nil
	}
}

// groupNodes builds the root level: one node per group, sorted
// case-insensitively by name.
func (p *Projector) groupNodes() []*Node {
	groups := p.store.All()
	sort.SliceStable(groups, func(i, j int) bool {
		return p.collator.CompareString(groups[i].Name, groups[j].Name) < 0
	})

	pinned := p.store.Pinned()
	nodes := make([]*Node, 0, len(groups))
	for _, g := range groups {
		label := g.Name
		if g.ID == pinned {
			label = PinnedGlyph + label
		}
		nodes = append(nodes, &Node{
			Type:      NodeGroup,
			Label:     label,
			Tooltip:   g.Name,
			GroupID:   g.ID,
			GroupName: g.Name,
			Pinned:    g.ID == pinned,
		})
	}
	return nodes
}

// rootMembers builds the nodes for a group's resource sequence, sorted
// case-insensitively by basename. Resources whose stat fails are still
// shown, with kind unknown, so broken references stay visible and
// removable.
func (p *Projector) rootMembers(ctx context.Context, groupID string) []*Node {
	g := p.store.Lookup(groupID)
	if g == nil {
		return nil
	}

	nodes := make([]*Node, 0, len(g.Resources))
	for _, path := range g.Resources {
		kind, err := p.meta.Stat(ctx, path)
		if err != nil {
			kind = fsys.KindUnknown
		}
		label := filepath.Base(path)
		if kind == fsys.KindUnknown {
			label = path
		}
		nodes = append(nodes, &Node{
			Type:         NodeResource,
			Label:        label,
			Tooltip:      path,
			Path:         path,
			Kind:         kind,
			RootMember:   true,
			OwnerGroup:   g.ID,
			LocationHint: locationHint(path),
		})
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return p.collator.CompareString(filepath.Base(nodes[i].Path), filepath.Base(nodes[j].Path)) < 0
	})
	return nodes
}

// descendants lists a directory node's entries in filesystem enumeration
// order. No re-sorting here: deep browsing keeps the directory-native
// order, unlike the group and root-member levels.
func (p *Projector) descendants(ctx context.Context, node *Node) []*Node {
	entries, err := p.lister.List(ctx, node.Path)
	if err != nil {
		return nil
	}

	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(node.Path, e.Name)
		nodes = append(nodes, &Node{
			Type:       NodeResource,
			Label:      e.Name,
			Tooltip:    path,
			Path:       path,
			Kind:       e.Kind,
			OwnerGroup: node.OwnerGroup,
		})
	}
	return nodes
}

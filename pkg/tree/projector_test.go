package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomascamminady/filefocus/pkg/fsys"
	"github.com/thomascamminady/filefocus/pkg/group"
	"github.com/thomascamminady/filefocus/pkg/models"
)

// fakeFS is an in-memory Metadata + Lister for projector tests.
type fakeFS struct {
	kinds   map[string]fsys.Kind
	entries map[string][]fsys.Entry
}

func (f *fakeFS) Stat(_ context.Context, path string) (fsys.Kind, error) {
	kind, ok := f.kinds[path]
	if !ok {
		return fsys.KindUnknown, errors.New("stat failed")
	}
	return kind, nil
}

func (f *fakeFS) List(_ context.Context, path string) ([]fsys.Entry, error) {
	entries, ok := f.entries[path]
	if !ok {
		return nil, errors.New("permission denied")
	}
	return entries, nil
}

// recordingSink captures which groups got persisted, in order.
type recordingSink struct {
	persisted []string
}

func (r *recordingSink) Persist(g *models.Group) {
	r.persisted = append(r.persisted, g.ID)
}

func newTestProjector(fs *fakeFS) (*Projector, *group.Store, *recordingSink) {
	store := group.NewStore()
	sink := &recordingSink{}
	return NewProjector(store, fs, fs, sink), store, sink
}

func TestGroupsSortedCaseInsensitive(t *testing.T) {
	p, store, _ := newTestProjector(&fakeFS{})
	store.AddGroup(&models.Group{ID: "1", Name: "zeta"})
	store.AddGroup(&models.Group{ID: "2", Name: "Alpha"})
	store.AddGroup(&models.Group{ID: "3", Name: "beta"})

	nodes := p.Children(context.Background(), nil)
	require.Len(t, nodes, 3)

	names := []string{nodes[0].GroupName, nodes[1].GroupName, nodes[2].GroupName}
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, names)
	for _, n := range nodes {
		assert.Equal(t, NodeGroup, n.Type)
		assert.True(t, n.Expandable())
	}
}

func TestPinnedGroupDecoration(t *testing.T) {
	p, store, _ := newTestProjector(&fakeFS{})
	store.AddGroup(&models.Group{ID: "a", Name: "alpha"})
	store.AddGroup(&models.Group{ID: "b", Name: "beta"})
	store.Pin("a")

	nodes := p.Children(context.Background(), nil)
	require.Len(t, nodes, 2)

	assert.Equal(t, PinnedGlyph+"alpha", nodes[0].Label)
	assert.True(t, nodes[0].Pinned)
	assert.Equal(t, "beta", nodes[1].Label)
	assert.False(t, nodes[1].Pinned)

	// Re-pinning moves the decoration, it never duplicates.
	store.Pin("b")
	nodes = p.Children(context.Background(), nil)
	assert.Equal(t, "alpha", nodes[0].Label)
	assert.Equal(t, PinnedGlyph+"beta", nodes[1].Label)
}

func TestPinnedDecorationDoesNotAffectSort(t *testing.T) {
	p, store, _ := newTestProjector(&fakeFS{})
	store.AddGroup(&models.Group{ID: "a", Name: "alpha"})
	store.AddGroup(&models.Group{ID: "z", Name: "zeta"})
	store.Pin("z")

	nodes := p.Children(context.Background(), nil)
	require.Len(t, nodes, 2)
	assert.Equal(t, "alpha", nodes[0].GroupName)
	assert.Equal(t, "zeta", nodes[1].GroupName)
}

func TestRootMembersSortedByBasename(t *testing.T) {
	fs := &fakeFS{kinds: map[string]fsys.Kind{
		"/proj/Zebra.txt": fsys.KindFile,
		"/etc/apple.txt":  fsys.KindFile,
		"/var/Mango":      fsys.KindDirectory,
	}}
	p, store, _ := newTestProjector(fs)
	store.AddGroup(&models.Group{
		ID:   "g",
		Name: "stuff",
		Resources: []string{
			"/proj/Zebra.txt",
			"/var/Mango",
			"/etc/apple.txt",
		},
	})

	nodes := p.Children(context.Background(), &Node{Type: NodeGroup, GroupID: "g"})
	require.Len(t, nodes, 3)

	assert.Equal(t, "apple.txt", nodes[0].Label)
	assert.Equal(t, "Mango", nodes[1].Label)
	assert.Equal(t, "Zebra.txt", nodes[2].Label)

	for _, n := range nodes {
		assert.Equal(t, NodeResource, n.Type)
		assert.True(t, n.RootMember)
		assert.Equal(t, "g", n.OwnerGroup)
	}
	assert.True(t, nodes[1].Expandable())
	assert.False(t, nodes[0].Expandable())
}

func TestStatFailureRendersUnknown(t *testing.T) {
	fs := &fakeFS{kinds: map[string]fsys.Kind{
		"/ok.txt": fsys.KindFile,
	}}
	p, store, _ := newTestProjector(fs)
	store.AddGroup(&models.Group{
		ID:        "g",
		Name:      "stuff",
		Resources: []string{"/ok.txt", "/gone/broken.txt"},
	})

	nodes := p.Children(context.Background(), &Node{Type: NodeGroup, GroupID: "g"})
	require.Len(t, nodes, 2, "unresolved resources must still be displayed")

	var unknown *Node
	for _, n := range nodes {
		if n.Kind == fsys.KindUnknown {
			unknown = n
		}
	}
	require.NotNil(t, unknown)
	assert.Equal(t, "/gone/broken.txt", unknown.Label, "unresolved nodes show the raw identifier")
	assert.False(t, unknown.Expandable())
}

func TestDescendantsKeepEnumerationOrder(t *testing.T) {
	fs := &fakeFS{
		kinds: map[string]fsys.Kind{"/dir": fsys.KindDirectory},
		entries: map[string][]fsys.Entry{
			"/dir": {
				{Name: "zz.txt", Kind: fsys.KindFile},
				{Name: "aa", Kind: fsys.KindDirectory},
				{Name: "Mm.txt", Kind: fsys.KindFile},
			},
		},
	}
	p, store, _ := newTestProjector(fs)
	store.AddGroup(&models.Group{ID: "g", Name: "stuff", Resources: []string{"/dir"}})

	parent := p.Children(context.Background(), &Node{Type: NodeGroup, GroupID: "g"})[0]
	nodes := p.Children(context.Background(), parent)
	require.Len(t, nodes, 3)

	assert.Equal(t, "zz.txt", nodes[0].Label, "directory contents keep filesystem order")
	assert.Equal(t, "aa", nodes[1].Label)
	assert.Equal(t, "Mm.txt", nodes[2].Label)

	for _, n := range nodes {
		assert.False(t, n.RootMember, "listed entries are descendants")
		assert.Equal(t, "g", n.OwnerGroup)
	}
	assert.Equal(t, "/dir/aa", nodes[1].Path)
}

func TestUnreadableDirectoryRendersEmpty(t *testing.T) {
	fs := &fakeFS{kinds: map[string]fsys.Kind{"/locked": fsys.KindDirectory}}
	p, store, _ := newTestProjector(fs)
	store.AddGroup(&models.Group{ID: "g", Name: "stuff", Resources: []string{"/locked"}})

	node := &Node{Type: NodeResource, Kind: fsys.KindDirectory, Path: "/locked", OwnerGroup: "g"}
	assert.Empty(t, p.Children(context.Background(), node))
}

func TestLeafNodesHaveNoChildren(t *testing.T) {
	p, _, _ := newTestProjector(&fakeFS{})

	file := &Node{Type: NodeResource, Kind: fsys.KindFile, Path: "/a.txt"}
	assert.Empty(t, p.Children(context.Background(), file))

	unknown := &Node{Type: NodeResource, Kind: fsys.KindUnknown, Path: "/gone"}
	assert.Empty(t, p.Children(context.Background(), unknown))
}

func TestMissingGroupHasNoChildren(t *testing.T) {
	p, _, _ := newTestProjector(&fakeFS{})
	assert.Empty(t, p.Children(context.Background(), &Node{Type: NodeGroup, GroupID: "gone"}))
}

func TestLocationHint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/user/project/file.txt", "user/project"},
		{"/project/file.txt", "project"},
		{"/file.txt", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, locationHint(tt.path), "hint for %s", tt.path)
	}
}

func TestNodesRebuiltOnEveryRead(t *testing.T) {
	fs := &fakeFS{kinds: map[string]fsys.Kind{"/a.txt": fsys.KindFile}}
	p, store, _ := newTestProjector(fs)
	store.AddGroup(&models.Group{ID: "g", Name: "stuff", Resources: []string{"/a.txt"}})

	first := p.Children(context.Background(), nil)
	second := p.Children(context.Background(), nil)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotSame(t, first[0], second[0], "nodes must not survive across reads")
}

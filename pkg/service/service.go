package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thomascamminady/filefocus/pkg/fsys"
	"github.com/thomascamminady/filefocus/pkg/group"
	"github.com/thomascamminady/filefocus/pkg/models"
	"github.com/thomascamminady/filefocus/pkg/storage"
	"github.com/thomascamminady/filefocus/pkg/tree"
)

// Service wires the persistence layer, the in-memory group store and
// the tree projector together for the commands.
type Service struct {
	Config    *Config
	Groups    *group.Store
	Projector *tree.Projector

	storage *storage.Store
	log     *logrus.Logger
}

// Config holds service configuration
type Config struct {
	DataDir string
}

// New constructs the service: opens storage, loads the persisted groups
// into a fresh store, and wires the projector to the live filesystem.
func New(cfg *Config, log *logrus.Logger) (*Service, error) {
	st, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	groups := group.NewStore()
	loaded, pinnedID, err := st.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	for _, g := range loaded {
		groups.AddGroup(g)
	}
	groups.Pin(pinnedID)

	svc := &Service{
		Config:  cfg,
		Groups:  groups,
		storage: st,
		log:     log,
	}
	svc.Projector = tree.NewProjector(groups, fsys.OS{}, fsys.OS{}, &sink{svc: svc})
	return svc, nil
}

// sink adapts storage to the projector's fire-and-forget persistence
// contract: failures are logged, never propagated.
type sink struct {
	svc *Service
}

func (s *sink) Persist(g *models.Group) {
	if err := s.svc.storage.Save(g, s.svc.Groups.Pinned() == g.ID); err != nil {
		s.svc.log.WithError(err).WithField("group", g.Name).Warn("persist group failed")
	}
}

// persist writes a group through the same path the projector uses.
func (s *Service) persist(g *models.Group) {
	(&sink{svc: s}).Persist(g)
}

// CreateGroup creates a new empty group with a fresh id.
func (s *Service) CreateGroup(name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name cannot be empty")
	}

	g := &models.Group{
		ID:   uuid.NewString(),
		Name: name,
	}
	s.Groups.AddGroup(g)
	s.persist(g)
	s.Projector.Refresh()
	return g, nil
}

// RenameGroup changes a group's display name.
func (s *Service) RenameGroup(ref, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("group name cannot be empty")
	}

	g, err := s.FindGroup(ref)
	if err != nil {
		return err
	}
	g.Name = newName
	s.persist(g)
	s.Projector.Refresh()
	return nil
}

// DeleteGroup removes a group from the store and the database. Deleting
// the pinned group also clears the pin.
func (s *Service) DeleteGroup(ref string) error {
	g, err := s.FindGroup(ref)
	if err != nil {
		return err
	}
	s.Groups.RemoveGroup(g.ID)
	if err := s.storage.Delete(g.ID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	s.Projector.Refresh()
	return nil
}

// PinGroup marks a group as the single favourite. The previously pinned
// group, if any, is re-persisted so its cleared flag round-trips.
func (s *Service) PinGroup(ref string) error {
	g, err := s.FindGroup(ref)
	if err != nil {
		return err
	}

	previous := s.Groups.Pinned()
	s.Groups.Pin(g.ID)
	if previous != "" && previous != g.ID {
		if prev := s.Groups.Lookup(previous); prev != nil {
			s.persist(prev)
		}
	}
	s.persist(g)
	s.Projector.Refresh()
	return nil
}

// UnpinGroup clears the pinned group, if any.
func (s *Service) UnpinGroup() error {
	previous := s.Groups.Pinned()
	s.Groups.Pin("")
	if previous != "" {
		if prev := s.Groups.Lookup(previous); prev != nil {
			s.persist(prev)
		}
	}
	s.Projector.Refresh()
	return nil
}

// FindGroup resolves a group by id or, failing that, by exact name.
func (s *Service) FindGroup(ref string) (*models.Group, error) {
	if g := s.Groups.Lookup(ref); g != nil {
		return g, nil
	}
	for _, g := range s.Groups.All() {
		if g.Name == ref {
			return g, nil
		}
	}
	return nil, fmt.Errorf("group not found: %s", ref)
}

// AddResource normalizes the path and adds it to the group. Adding an
// already-present resource is a no-op and skips the persist.
func (s *Service) AddResource(ref, path string) error {
	g, err := s.FindGroup(ref)
	if err != nil {
		return err
	}
	normalized, err := fsys.Normalize(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if s.Groups.AddResource(g.ID, normalized) {
		s.persist(g)
		s.Projector.Refresh()
	}
	return nil
}

// RemoveResource removes the path from the group. Removing an absent
// resource is a no-op.
func (s *Service) RemoveResource(ref, path string) error {
	g, err := s.FindGroup(ref)
	if err != nil {
		return err
	}
	normalized, err := fsys.Normalize(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if s.Groups.RemoveResource(g.ID, normalized) {
		s.persist(g)
		s.Projector.Refresh()
	}
	return nil
}

// MoveResources moves root-member resources from one group to another
// through the drag-and-drop protocol. An empty path list moves every
// root member of the source group. Returns the number of resources the
// target gained.
func (s *Service) MoveResources(ctx context.Context, fromRef, toRef string, paths []string) (int, error) {
	src, err := s.FindGroup(fromRef)
	if err != nil {
		return 0, err
	}
	tgt, err := s.FindGroup(toRef)
	if err != nil {
		return 0, err
	}

	if len(paths) == 0 {
		paths = append([]string(nil), src.Resources...)
	}

	selection := make([]*tree.Node, 0, len(paths))
	for _, path := range paths {
		normalized, err := fsys.Normalize(path)
		if err != nil {
			return 0, fmt.Errorf("resolve path: %w", err)
		}
		if !src.Contains(normalized) {
			return 0, fmt.Errorf("%s is not a member of group %s", normalized, src.Name)
		}
		selection = append(selection, &tree.Node{
			Type:       tree.NodeResource,
			Path:       normalized,
			RootMember: true,
			OwnerGroup: src.ID,
		})
	}

	before := len(tgt.Resources)
	payload := s.Projector.Drag(selection)
	s.Projector.Drop(ctx, &tree.Node{Type: tree.NodeGroup, GroupID: tgt.ID}, payload)
	return len(tgt.Resources) - before, nil
}

// Children exposes the projector's tree read to the commands.
func (s *Service) Children(ctx context.Context, node *tree.Node) []*tree.Node {
	return s.Projector.Children(ctx, node)
}

// Close releases the storage handle.
func (s *Service) Close() error {
	return s.storage.Close()
}

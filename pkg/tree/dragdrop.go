package tree

import (
	"context"
	"encoding/json"
	"strings"
)

// TransferMime keys the structured drag payload in the host's transfer
// bag. URIListMime carries a plain newline-separated path list for
// interop with external drag sources.
const (
	TransferMime = "application/vnd.tree.filefocus"
	URIListMime  = "text/uri-list"
)

// DragItem identifies one dragged root-member resource.
type DragItem struct {
	Path    string `json:"path"`
	GroupID string `json:"groupId"`
}

// Payload is the opaque transfer bag produced by Drag and consumed by
// Drop, keyed by MIME-like identifiers.
type Payload struct {
	values map[string]string
}

// Set stores a value under a MIME key.
func (p *Payload) Set(mime, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	p.values[mime] = value
}

// Get returns the value stored under a MIME key, or "".
func (p *Payload) Get(mime string) string {
	return p.values[mime]
}

// Drag validates a drag selection and produces the transfer payload.
// Only a non-empty selection consisting exclusively of root-member
// resource nodes is draggable: group nodes and descendants discovered by
// directory expansion are rejected, so filesystem-nested items and whole
// groups cannot be moved through this gesture. Returns nil for invalid
// selections.
func (p *Projector) Drag(selection []*Node) *Payload {
	if len(selection) == 0 {
		return nil
	}

	items := make([]DragItem, 0, len(selection))
	uris := make([]string, 0, len(selection))
	for _, n := range selection {
		if n.Type != NodeResource || !n.RootMember {
			return nil
		}
		items = append(items, DragItem{Path: n.Path, GroupID: n.OwnerGroup})
		uris = append(uris, "file://"+n.Path)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil
	}

	payload := &Payload{}
	payload.Set(TransferMime, string(raw))
	payload.Set(URIListMime, strings.Join(uris, "\r\n"))
	return payload
}

// Drop moves the dragged resources into the group the target resolves
// to. Items whose source group is missing, or already the target group,
// are silently skipped. Every mutated source group lands in the dirty
// set and is persisted once at the end; the target group is persisted
// unconditionally whenever the drop carried items and resolved to a
// group, even if every item was skipped. One refresh fires per moved
// item. The context is accepted for the host's benefit only; a
// cancellation mid-sequence is not rolled back.
func (p *Projector) Drop(_ context.Context, target *Node, payload *Payload) {
	if payload == nil {
		return
	}

	var items []DragItem
	if err := json.Unmarshal([]byte(payload.Get(TransferMime)), &items); err != nil || len(items) == 0 {
		return
	}

	targetID := resolveTargetGroup(target)
	if targetID == "" {
		return
	}
	tgt := p.store.Lookup(targetID)
	if tgt == nil {
		return
	}

	dirty := make(map[string]struct{})
	for _, item := range items {
		src := p.store.Lookup(item.GroupID)
		if src == nil || src.ID == tgt.ID {
			continue
		}
		p.store.RemoveResource(src.ID, item.Path)
		p.store.AddResource(tgt.ID, item.Path)
		dirty[src.ID] = struct{}{}
		p.Refresh()
	}

	p.sink.Persist(tgt)
	for id := range dirty {
		if g := p.store.Lookup(id); g != nil {
			p.sink.Persist(g)
		}
	}
}

// resolveTargetGroup maps a drop target to a group id: a group node
// yields itself, a resource node yields its owning group. Anything else
// makes the drop a no-op.
func resolveTargetGroup(target *Node) string {
	if target == nil {
		return ""
	}
	switch target.Type {
	case NodeGroup:
		return target.GroupID
	case NodeResource:
		return target.OwnerGroup
	}
	return ""
}

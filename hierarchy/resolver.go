// Package hierarchy answers layout queries over a flat, parent-linked
// collection of documentation nodes: root-to-node paths, bounded-depth
// descendant collection, and grouping by immediate parent.
//
// The parent graph is not guaranteed to be acyclic or connected, so every
// traversal carries a visiting-set cycle guard. Cycles are non-fatal: the
// affected nodes resolve to empty paths and a diagnostic is recorded,
// while unrelated nodes resolve normally.
package hierarchy

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// NodeKind distinguishes container nodes from leaves.
type NodeKind string

// Node kinds.
const (
	KindFolder NodeKind = "folder"
	KindDoc    NodeKind = "doc"
)

// Node is one entry of a parent-linked collection. ParentID is empty for
// root-level nodes; a non-empty ParentID that matches no node in the
// collection is dangling (tolerated, diagnosed during grouping).
type Node struct {
	ID       string   `json:"id"`
	ParentID string   `json:"parentId"`
	Name     string   `json:"name"`
	Kind     NodeKind `json:"kind"`
}

// Resolver resolves paths over one node collection. It memoizes resolved
// paths per node id, so repeated queries are cheap. A Resolver must not
// be reused for a different collection; construct a fresh one per
// resolution pass.
type Resolver struct {
	nodes    map[string]Node
	order    []string
	paths    map[string][]string
	children map[string][]string
	diags    error
}

// NewResolver builds a resolver over the given collection. Nodes sharing
// an id keep the last occurrence.
func NewResolver(nodes []Node) *Resolver {
	r := &Resolver{
		nodes:    make(map[string]Node, len(nodes)),
		order:    make([]string, 0, len(nodes)),
		paths:    make(map[string][]string, len(nodes)),
		children: make(map[string][]string, len(nodes)),
	}
	for _, n := range nodes {
		if _, seen := r.nodes[n.ID]; !seen {
			r.order = append(r.order, n.ID)
		}
		r.nodes[n.ID] = n
	}
	for _, id := range r.order {
		n := r.nodes[id]
		if n.ParentID != "" {
			r.children[n.ParentID] = append(r.children[n.ParentID], id)
		}
	}
	return r
}

// Path returns the root-to-node name chain for id. A node on a parent
// cycle, or an unknown id, yields an empty path.
func (r *Resolver) Path(id string) []string {
	if cached, ok := r.paths[id]; ok {
		return cached
	}
	visiting := make(map[string]bool)
	return r.resolve(id, visiting)
}

// PathMap resolves every node in the collection and returns the id →
// path mapping. Cycle diagnostics accumulate and are available via
// Diagnostics afterwards.
func (r *Resolver) PathMap() map[string][]string {
	for _, id := range r.order {
		r.Path(id)
	}
	out := make(map[string][]string, len(r.paths))
	for id, path := range r.paths {
		out[id] = path
	}
	return out
}

// Diagnostics returns the accumulated non-fatal resolution problems
// (detected cycles), or nil if none occurred.
func (r *Resolver) Diagnostics() error {
	return r.diags
}

func (r *Resolver) resolve(id string, visiting map[string]bool) []string {
	if cached, ok := r.paths[id]; ok {
		return cached
	}

	node, ok := r.nodes[id]
	if !ok {
		return []string{}
	}

	if visiting[id] {
		// Parent cycle: abort this walk, leave the node unresolvable.
		r.diags = multierror.Append(r.diags, fmt.Errorf("cycle detected at node %s", id))
		r.paths[id] = []string{}
		return r.paths[id]
	}
	visiting[id] = true
	defer delete(visiting, id)

	var path []string
	if node.ParentID == "" {
		path = []string{node.Name}
	} else if _, exists := r.nodes[node.ParentID]; !exists {
		// Dangling parent: treat the node as a root.
		path = []string{node.Name}
	} else {
		parentPath := r.resolve(node.ParentID, visiting)
		if len(parentPath) == 0 {
			// Parent sits on a cycle; this node inherits the empty path.
			r.paths[id] = []string{}
			return r.paths[id]
		}
		path = append(append([]string{}, parentPath...), node.Name)
	}

	r.paths[id] = path
	return path
}

// Descendants collects the direct and transitive children of rootID in
// pre-order, descending into folder nodes only. maxDepth bounds the
// recursion with the root's direct children at depth 1; zero or negative
// means unbounded. Traversal is cycle-safe: a node is visited at most
// once per call.
func (r *Resolver) Descendants(rootID string, maxDepth int) []Node {
	visited := map[string]bool{rootID: true}
	var out []Node
	r.collect(rootID, 1, maxDepth, visited, &out)
	return out
}

func (r *Resolver) collect(id string, depth, maxDepth int, visited map[string]bool, out *[]Node) {
	if maxDepth > 0 && depth > maxDepth {
		return
	}
	for _, childID := range r.children[id] {
		if visited[childID] {
			continue
		}
		visited[childID] = true
		child := r.nodes[childID]
		*out = append(*out, child)
		if child.Kind == KindFolder {
			r.collect(childID, depth+1, maxDepth, visited, out)
		}
	}
}

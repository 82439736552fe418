package hierarchy

import "fmt"

// RootGroup is the bucket label for nodes with no parent.
const RootGroup = "(root)"

// UnknownGroup labels the bucket of a dangling parent id, keeping the id
// for diagnostics.
func UnknownGroup(parentID string) string {
	return fmt.Sprintf("(unknown parent %s)", parentID)
}

// GroupByParent buckets the given nodes by the name of their immediate
// parent, resolved against the resolver's collection. Root-level nodes
// land under RootGroup; nodes whose parent id matches nothing land under
// an UnknownGroup label carrying that id.
func (r *Resolver) GroupByParent(nodes []Node) map[string][]Node {
	groups := make(map[string][]Node)
	for _, n := range nodes {
		label := RootGroup
		if n.ParentID != "" {
			if parent, ok := r.nodes[n.ParentID]; ok {
				label = parent.Name
			} else {
				label = UnknownGroup(n.ParentID)
			}
		}
		groups[label] = append(groups[label], n)
	}
	return groups
}

package organization

import "errors"

// ErrCyclicHierarchy is returned when the flat parent data does not describe
// a forest: either the builder finds records unreachable from any root
// (trapped in a parent cycle), or a guarded traversal encounters the same
// node twice.
var ErrCyclicHierarchy = errors.New("cyclic hierarchy detected")

// Node is the in-memory tree shape derived from a flat organization list.
// It is rebuilt on every call to BuildHierarchy and never cached.
type Node struct {
	Organization
	Children []*Node `json:"children"`
	Depth    int     `json:"depth"`

	// IsOrphaned marks nodes that were promoted to roots because their
	// parent reference did not resolve (deleted parent, other result page).
	// Explicit roots keep this false so callers can tell the two apart.
	IsOrphaned bool `json:"is_orphaned"`
}

// BuildHierarchy assembles a forest from a flat list of organizations.
//
// Every input record appears in exactly one node. A record whose parent
// reference is absent or does not resolve against the input becomes a root;
// root and sibling order follow input order. Depths are assigned in a
// second pass that walks each root's subtree, so the result is independent
// of the order records arrive in. Records trapped in a parent cycle are
// unreachable from every root; the builder detects that by comparing the
// walked node count against the input count and returns ErrCyclicHierarchy
// instead of silently dropping them.
func BuildHierarchy(orgs []Organization) ([]*Node, error) {
	nodes := make(map[string]*Node, len(orgs))
	ordered := make([]*Node, 0, len(orgs))
	for i := range orgs {
		n := &Node{Organization: orgs[i]}
		nodes[orgs[i].ID] = n
		ordered = append(ordered, n)
	}

	var roots []*Node
	for _, n := range ordered {
		if n.IsRoot() {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[*n.ParentID]
		if !ok {
			n.IsOrphaned = true
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	// Depth pass: parents are always visited before children here, so no
	// assumption about input order is needed. The same walk counts reached
	// nodes for the cycle check.
	reached := 0
	for _, root := range roots {
		root.Depth = 0
		stack := []*Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			reached++
			for _, child := range n.Children {
				child.Depth = n.Depth + 1
				stack = append(stack, child)
			}
		}
	}
	if reached != len(orgs) {
		return nil, ErrCyclicHierarchy
	}

	return roots, nil
}

// Flatten walks the forest depth-first and returns every node in traversal
// order. A node seen twice means the structure is not a tree and the walk
// stops with ErrCyclicHierarchy rather than recursing forever.
func Flatten(roots []*Node) ([]*Node, error) {
	visited := make(map[string]struct{})
	out := make([]*Node, 0)

	var walk func(n *Node) error
	walk = func(n *Node) error {
		if _, seen := visited[n.ID]; seen {
			return ErrCyclicHierarchy
		}
		visited[n.ID] = struct{}{}
		out = append(out, n)
		for _, child := range n.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// FindNode locates a node by organization ID anywhere in the forest, using
// the same cycle guard as Flatten.
func FindNode(roots []*Node, id string) (*Node, error) {
	all, err := Flatten(roots)
	if err != nil {
		return nil, err
	}
	for _, n := range all {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

// SubtreeIDs returns the IDs of the node with the given ID and all of its
// descendants. Used by reporting to scope aggregates to an org subtree.
func SubtreeIDs(roots []*Node, id string) ([]string, error) {
	node, err := FindNode(roots, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}
	subtree, err := Flatten([]*Node{node})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(subtree))
	for i, n := range subtree {
		ids[i] = n.ID
	}
	return ids, nil
}

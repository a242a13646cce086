package recurse

import (
	"encoding/json"
	"strings"
)

// Node is one element of a walk result: either a single formatted path (a leaf)
// or an ordered sequence of nodes (a branch).
type Node struct {
	path     string
	children []Node
	branch   bool
}

// Leaf returns a node holding a single path.
func Leaf(path string) Node {
	return Node{path: path}
}

// Branch returns a node holding the given children in order.
func Branch(children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{children: children, branch: true}
}

// IsBranch reports whether n is a sequence rather than a single path.
func (n Node) IsBranch() bool {
	return n.branch
}

// Path returns the path of a leaf. It is empty for branches.
func (n Node) Path() string {
	return n.path
}

// Children returns the elements of a branch. It is nil for leaves.
func (n Node) Children() []Node {
	return n.children
}

// Len returns the number of direct elements of a branch, or 1 for a leaf.
func (n Node) Len() int {
	if !n.branch {
		return 1
	}
	return len(n.children)
}

// Paths returns every leaf path below n in depth-first order.
func (n Node) Paths() []string {
	paths := make([]string, 0, n.Len())
	return appendPaths(paths, n)
}

func appendPaths(dst []string, n Node) []string {
	if !n.branch {
		return append(dst, n.path)
	}
	for _, child := range n.children {
		dst = appendPaths(dst, child)
	}
	return dst
}

// Flatten collapses n into a single-level branch of leaves, preserving the
// depth-first, children-before-parent order. A branch that already holds only
// leaves is returned unchanged.
func Flatten(n Node) Node {
	if !n.branch {
		return Branch(n)
	}
	nested := false
	for _, child := range n.children {
		if child.branch {
			nested = true
			break
		}
	}
	if !nested {
		return n
	}

	paths := n.Paths()
	leaves := make([]Node, len(paths))
	for i, p := range paths {
		leaves[i] = Leaf(p)
	}
	return Branch(leaves...)
}

// String renders the node as a bracketed list, mostly for debugging and test output.
func (n Node) String() string {
	if !n.branch {
		return n.path
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, child := range n.children {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(child.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON encodes a leaf as a string and a branch as an array.
func (n Node) MarshalJSON() ([]byte, error) {
	if !n.branch {
		return json.Marshal(n.path)
	}
	return json.Marshal(n.children)
}

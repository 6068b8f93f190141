package circuit

import (
	"fmt"

	"github.com/edp1096/toy-mna/internal/consts"
	"github.com/edp1096/toy-mna/pkg/netlist"
)

// Node is a declared node with its assigned matrix index (consts.GroundIndex for ground).
type Node struct {
	ID    string
	Kind  netlist.NodeKind
	Index int
}

func (n Node) IsGround() bool {
	return n.Index == consts.GroundIndex
}

// IndexNodes assigns every network node a contiguous zero-based index in order of
// first encounter. Ground nodes map to consts.GroundIndex and take no slot. The
// result has one entry per declaration; a repeated identity gets its first index.
func IndexNodes(decls []netlist.NodeDecl) ([]Node, error) {
	nodes := make([]Node, 0, len(decls))
	seen := make(map[string]Node, len(decls))
	next := 0

	for _, decl := range decls {
		if decl.ID == "" {
			return nil, fmt.Errorf("%w: node without id", ErrInvalidComponent)
		}

		if prev, ok := seen[decl.ID]; ok {
			if prev.Kind != decl.Kind {
				return nil, fmt.Errorf("%w: %s declared as %s and %s", ErrConflictingNode, decl.ID, prev.Kind, decl.Kind)
			}
			nodes = append(nodes, prev)
			continue
		}

		node := Node{ID: decl.ID, Kind: decl.Kind, Index: consts.GroundIndex}
		if decl.Kind != netlist.Ground {
			node.Index = next
			next++
		}

		seen[decl.ID] = node
		nodes = append(nodes, node)
	}

	return nodes, nil
}

package netlist

import (
	"github.com/edp1096/toy-mna/internal/consts"
)

type AnalysisType int

const (
	AnalysisOP AnalysisType = iota // DC operating point, real field
	AnalysisAC                     // single-frequency steady state, complex field
)

func (a AnalysisType) String() string {
	switch a {
	case AnalysisOP:
		return "op"
	case AnalysisAC:
		return "ac"
	default:
		return "unknown"
	}
}

type NodeKind int

const (
	Network NodeKind = iota
	Ground
)

func (k NodeKind) String() string {
	if k == Ground {
		return "ground"
	}
	return "network"
}

type ComponentType string

const (
	Line          ComponentType = "L"  // R + jX branch
	Resistor      ComponentType = "R"  // pure resistive branch
	CurrentSource ComponentType = "I"  // fixed current injection
	PQSource      ComponentType = "PQ" // power set point, stamped as a fixed current
)

// IsBranch reports whether the component couples its two terminals in the matrix.
func (t ComponentType) IsBranch() bool {
	return t == Line || t == Resistor
}

func (t ComponentType) IsInjection() bool {
	return t == CurrentSource || t == PQSource
}

type NodeDecl struct {
	ID   string
	Kind NodeKind
}

// ComponentDecl references its terminals either by node identity (Nodes) or by
// carrying already resolved indices (NodeIndices). A single terminal means the
// second one is ground.
type ComponentDecl struct {
	Type        ComponentType
	ID          string
	Resistance  float64
	Reactance   float64
	SetPoint    complex128
	Nodes       []string
	NodeIndices []int
}

// NetworkParams is the ordered network description handed to the circuit builder.
type NetworkParams struct {
	Title      string
	Analysis   AnalysisType
	Frequency  float64
	Nodes      []NodeDecl
	Components []ComponentDecl

	assigned map[string]int // node id -> index the indexer will give it
	indexed  int            // Nodes[:indexed] are in assigned
	next     int
}

func NewNetworkParams(title string) *NetworkParams {
	return &NetworkParams{Title: title, Analysis: AnalysisOP}
}

// AddNode appends a node declaration and returns the index it will be assigned,
// or consts.GroundIndex for a ground node.
func (n *NetworkParams) AddNode(decl NodeDecl) int {
	n.Nodes = append(n.Nodes, decl)
	return n.indexOf(decl.ID)
}

func (n *NetworkParams) AddComponent(decl ComponentDecl) {
	n.Components = append(n.Components, decl)
}

// indexOf catches up with declarations appended since the last call, so Nodes
// may also be filled directly.
func (n *NetworkParams) indexOf(id string) int {
	if n.assigned == nil || n.indexed > len(n.Nodes) {
		n.assigned = make(map[string]int, len(n.Nodes))
		n.indexed, n.next = 0, 0
	}

	for _, decl := range n.Nodes[n.indexed:] {
		n.indexed++
		if _, seen := n.assigned[decl.ID]; seen {
			continue
		}
		if decl.Kind == Ground {
			n.assigned[decl.ID] = consts.GroundIndex
			continue
		}
		n.assigned[decl.ID] = n.next
		n.next++
	}

	if idx, ok := n.assigned[id]; ok {
		return idx
	}
	return consts.GroundIndex
}

// HasNode reports whether a node with the given identity has been declared.
func (n *NetworkParams) HasNode(id string) bool {
	n.indexOf(id)
	_, ok := n.assigned[id]
	return ok
}

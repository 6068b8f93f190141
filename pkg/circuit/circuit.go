package circuit

import (
	"fmt"
	"log/slog"

	"github.com/edp1096/toy-mna/internal/consts"
	"github.com/edp1096/toy-mna/pkg/device"
	"github.com/edp1096/toy-mna/pkg/matrix"
	"github.com/edp1096/toy-mna/pkg/netlist"
	"github.com/edp1096/toy-mna/pkg/scalar"
)

type config struct {
	logger *slog.Logger
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Circuit holds the resolved simulation objects of one network and its System.
// It runs the pipeline index -> resolve -> stamp -> solve sequentially and is not
// safe for concurrent use.
type Circuit[T scalar.Scalar] struct {
	name     string
	nodes    []Node
	nodeMap  map[string]Node
	devices  []device.Device[T]
	numNodes int
	matrix   *matrix.System[T]
	solution []T
	logger   *slog.Logger
}

func New[T scalar.Scalar](name string, opts ...Option) *Circuit[T] {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Circuit[T]{
		name:    name,
		nodeMap: make(map[string]Node),
		devices: make([]device.Device[T], 0),
		logger:  cfg.logger,
	}
}

// Build resolves a network description into a circuit ready to be stamped.
func Build[T scalar.Scalar](params *netlist.NetworkParams, opts ...Option) (*Circuit[T], error) {
	ckt := New[T](params.Title, opts...)

	if err := ckt.AssignNodeIndices(params.Nodes); err != nil {
		return nil, err
	}
	ckt.CreateMatrix()
	if err := ckt.SetupDevices(params.Components); err != nil {
		return nil, err
	}

	return ckt, nil
}

func (c *Circuit[T]) AssignNodeIndices(decls []netlist.NodeDecl) error {
	indexed, err := IndexNodes(decls)
	if err != nil {
		return err
	}

	c.nodes = c.nodes[:0]
	c.nodeMap = make(map[string]Node, len(indexed))
	c.numNodes = 0
	for _, node := range indexed {
		if _, exists := c.nodeMap[node.ID]; exists {
			continue
		}
		c.nodeMap[node.ID] = node
		c.nodes = append(c.nodes, node)
		if !node.IsGround() {
			c.numNodes++
		}
	}

	c.logger.Debug("nodes indexed", "circuit", c.name, "declared", len(decls), "unknowns", c.numNodes)
	return nil
}

func (c *Circuit[T]) CreateMatrix() {
	c.matrix = matrix.NewSystem[T](c.numNodes)
	c.solution = nil
}

// SetupDevices instantiates every component with resolved terminal indices.
// Nothing is added when any declaration fails to resolve.
func (c *Circuit[T]) SetupDevices(decls []netlist.ComponentDecl) error {
	devices := make([]device.Device[T], 0, len(decls))

	for _, decl := range decls {
		dev, err := c.createDevice(decl)
		if err != nil {
			return fmt.Errorf("creating device %s: %w", decl.ID, err)
		}
		devices = append(devices, dev)
	}

	c.devices = append(c.devices, devices...)
	c.logger.Debug("devices resolved", "circuit", c.name, "devices", len(c.devices))
	return nil
}

func (c *Circuit[T]) createDevice(decl netlist.ComponentDecl) (device.Device[T], error) {
	if !decl.Type.IsBranch() && !decl.Type.IsInjection() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidComponent, decl.Type)
	}

	n1, n2, names, err := c.resolveTerminals(decl)
	if err != nil {
		return nil, err
	}

	switch decl.Type {
	case netlist.Resistor:
		return device.NewResistor[T](decl.ID, names, n1, n2, decl.Resistance), nil
	case netlist.Line:
		return device.NewLine[T](decl.ID, names, n1, n2, decl.Resistance, decl.Reactance), nil
	case netlist.CurrentSource:
		return device.NewCurrentSource[T](decl.ID, names, n1, n2, decl.SetPoint), nil
	default:
		return device.NewPQSource[T](decl.ID, names, n1, n2, decl.SetPoint), nil
	}
}

// resolveTerminals turns node identities, or carried indices, into terminal indices.
// A single terminal is only allowed for injections; the other side is ground.
func (c *Circuit[T]) resolveTerminals(decl netlist.ComponentDecl) (int, int, []string, error) {
	byName, byIndex := len(decl.Nodes), len(decl.NodeIndices)
	if byName > 0 && byIndex > 0 {
		return 0, 0, nil, fmt.Errorf("%w: terminals given both by name and by index", ErrInvalidComponent)
	}

	count := max(byName, byIndex)
	if count < 1 || count > 2 || (count == 1 && !decl.Type.IsInjection()) {
		return 0, 0, nil, fmt.Errorf("%w: %s takes 2 terminals, got %d", ErrInvalidComponent, decl.Type, count)
	}

	indices := []int{consts.GroundIndex, consts.GroundIndex}
	names := make([]string, 0, count)

	if byIndex > 0 {
		copy(indices, decl.NodeIndices)
		for _, idx := range decl.NodeIndices {
			names = append(names, c.nameOf(idx))
		}
		return indices[0], indices[1], names, nil
	}

	for i, id := range decl.Nodes {
		node, ok := c.nodeMap[id]
		if !ok {
			return 0, 0, nil, fmt.Errorf("%w: %s", ErrUnresolvedNodeReference, id)
		}
		indices[i] = node.Index
		names = append(names, id)
	}
	return indices[0], indices[1], names, nil
}

func (c *Circuit[T]) nameOf(idx int) string {
	for _, node := range c.nodes {
		if node.Index == idx {
			return node.ID
		}
	}
	return fmt.Sprintf("#%d", idx)
}

// Stamp runs one assembly pass: every stamp is recomputed once and accumulated
// into a cleared System. The System is only written after every device has been
// validated and stamped successfully.
func (c *Circuit[T]) Stamp() error {
	if c.matrix == nil {
		return ErrNotReady
	}

	for _, dev := range c.devices {
		for _, n := range dev.GetNodes() {
			if n != consts.GroundIndex && (n < 0 || n >= c.matrix.Size()) {
				return fmt.Errorf("stamping device %s: %w: index %d, size %d", dev.GetName(), matrix.ErrOutOfRangeNodeReference, n, c.matrix.Size())
			}
		}
		if err := dev.CalculateStamp(); err != nil {
			return fmt.Errorf("stamping device %s: %w", dev.GetName(), err)
		}
	}

	c.matrix.Clear()
	c.solution = nil
	for _, dev := range c.devices {
		if err := dev.Stamp(c.matrix); err != nil {
			return fmt.Errorf("stamping device %s: %w", dev.GetName(), err)
		}
	}

	c.logger.Debug("system assembled", "circuit", c.name, "size", c.matrix.Size(), "devices", len(c.devices))
	return nil
}

// Solve solves the assembled System and keeps the result for GetSolution.
func (c *Circuit[T]) Solve() ([]T, error) {
	if c.matrix == nil {
		return nil, ErrNotReady
	}

	solution, err := c.matrix.Solve()
	if err != nil {
		return nil, err
	}
	c.solution = solution

	c.logger.Debug("system solved", "circuit", c.name, "size", c.matrix.Size())
	return append([]T(nil), solution...), nil
}

func (c *Circuit[T]) voltage(idx int) T {
	if idx == consts.GroundIndex || idx < 0 || idx >= len(c.solution) {
		return 0
	}
	return c.solution[idx]
}

// GetSolution maps node potentials to V(<node>) and branch currents to I(<branch>).
// It is empty until Solve succeeds.
func (c *Circuit[T]) GetSolution() map[string]T {
	solution := make(map[string]T)
	if c.solution == nil {
		return solution
	}

	// Node voltage
	for _, node := range c.nodes {
		if !node.IsGround() {
			solution[fmt.Sprintf("V(%s)", node.ID)] = c.solution[node.Index]
		}
	}

	// Branch current, terminal 1 to terminal 2
	for _, dev := range c.devices {
		line, ok := dev.(*device.Line[T])
		if !ok {
			continue
		}
		nodes := line.GetNodes()
		solution[fmt.Sprintf("I(%s)", line.GetName())] = line.Current(c.voltage(nodes[0]), c.voltage(nodes[1]))
	}

	return solution
}

func (c *Circuit[T]) GetNodeVoltage(id string) (T, error) {
	var zero T

	node, ok := c.nodeMap[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnresolvedNodeReference, id)
	}
	if c.solution == nil {
		return zero, fmt.Errorf("circuit %s has not been solved", c.name)
	}
	return c.voltage(node.Index), nil
}

func (c *Circuit[T]) Name() string {
	return c.name
}

// Nodes returns the distinct declared nodes in declaration order.
func (c *Circuit[T]) Nodes() []Node {
	return append([]Node(nil), c.nodes...)
}

func (c *Circuit[T]) GetNodeMap() map[string]int {
	nodeMap := make(map[string]int, len(c.nodeMap))
	for id, node := range c.nodeMap {
		nodeMap[id] = node.Index
	}
	return nodeMap
}

func (c *Circuit[T]) GetDevices() []device.Device[T] {
	return append([]device.Device[T](nil), c.devices...)
}

func (c *Circuit[T]) GetNumNodes() int {
	return c.numNodes
}

func (c *Circuit[T]) GetMatrix() *matrix.System[T] {
	return c.matrix
}

// UnknownLabels names each matrix row after its node, for printing.
func (c *Circuit[T]) UnknownLabels() []string {
	labels := make([]string, c.numNodes)
	for _, node := range c.nodes {
		if !node.IsGround() {
			labels[node.Index] = fmt.Sprintf("V(%s)", node.ID)
		}
	}
	return labels
}

package device

import (
	"github.com/edp1096/toy-mna/pkg/matrix"
	"github.com/edp1096/toy-mna/pkg/scalar"
)

// Kind selects the stamp shape a device produces.
type Kind int

const (
	Branch    Kind = iota // 2x2 admittance block
	Injection             // 2x1 right-hand-side block
)

func (k Kind) String() string {
	switch k {
	case Branch:
		return "branch"
	case Injection:
		return "injection"
	default:
		return "unknown"
	}
}

// Device is a resolved two-terminal component. Terminal indices are owned by value;
// consts.GroundIndex marks a grounded terminal.
type Device[T scalar.Scalar] interface {
	GetName() string
	GetType() string
	Kind() Kind
	GetNodes() []int
	GetNodeNames() []string
	CalculateStamp() error
	Stamp(matrix matrix.DeviceMatrix[T]) error
}

type BaseDevice struct {
	Name      string
	Nodes     []int
	NodeNames []string
}

func (d *BaseDevice) GetName() string {
	return d.Name
}

func (d *BaseDevice) GetNodes() []int {
	return append([]int(nil), d.Nodes...)
}

func (d *BaseDevice) GetNodeNames() []string {
	return append([]string(nil), d.NodeNames...)
}

func newBaseDevice(name string, nodeNames []string, n1, n2 int) BaseDevice {
	return BaseDevice{
		Name:      name,
		Nodes:     []int{n1, n2},
		NodeNames: append([]string(nil), nodeNames...),
	}
}

package device

import (
	"fmt"

	"github.com/edp1096/toy-mna/pkg/matrix"
	"github.com/edp1096/toy-mna/pkg/scalar"
)

// CurrentSource injects a fixed set point, flowing out of terminal 1 and into terminal 2.
// In the real field only the real part of the set point is used.
type CurrentSource[T scalar.Scalar] struct {
	BaseDevice
	SetPoint complex128
	devType  string
	stamp    matrix.InjectionStamp[T]
}

func NewCurrentSource[T scalar.Scalar](name string, nodeNames []string, n1, n2 int, setPoint complex128) *CurrentSource[T] {
	return &CurrentSource[T]{
		BaseDevice: newBaseDevice(name, nodeNames, n1, n2),
		SetPoint:   setPoint,
		devType:    "I",
	}
}

// NewPQSource creates a power set-point source. The set point is stamped as a fixed
// current; no voltage-dependent linearization is done.
func NewPQSource[T scalar.Scalar](name string, nodeNames []string, n1, n2 int, setPoint complex128) *CurrentSource[T] {
	src := NewCurrentSource[T](name, nodeNames, n1, n2, setPoint)
	src.devType = "PQ"
	return src
}

func (i *CurrentSource[T]) GetType() string { return i.devType }

func (i *CurrentSource[T]) Kind() Kind { return Injection }

func (i *CurrentSource[T]) CalculateStamp() error {
	current := scalar.FromComplex[T](i.SetPoint)
	if !scalar.IsFinite(current) {
		return fmt.Errorf("%s %s: %w: set point %v", i.devType, i.Name, ErrInvalidParameter, i.SetPoint)
	}

	i.stamp = matrix.InjectionStamp[T]{current, -current}
	return nil
}

func (i *CurrentSource[T]) GetStamp() matrix.InjectionStamp[T] {
	return i.stamp
}

func (i *CurrentSource[T]) Stamp(matrix matrix.DeviceMatrix[T]) error {
	if len(i.Nodes) != 2 {
		return fmt.Errorf("%s %s: requires exactly 2 nodes", i.devType, i.Name)
	}
	return matrix.StampInjection(i.Nodes[0], i.Nodes[1], i.stamp)
}

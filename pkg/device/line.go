package device

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-mna/pkg/matrix"
	"github.com/edp1096/toy-mna/pkg/scalar"
)

// Line is a series R + jX branch. A Resistor is a Line with zero reactance.
// In the real field only the resistance enters the admittance.
type Line[T scalar.Scalar] struct {
	BaseDevice
	Resistance float64
	Reactance  float64
	devType    string
	stamp      matrix.BranchStamp[T]
}

func NewLine[T scalar.Scalar](name string, nodeNames []string, n1, n2 int, resistance, reactance float64) *Line[T] {
	return &Line[T]{
		BaseDevice: newBaseDevice(name, nodeNames, n1, n2),
		Resistance: resistance,
		Reactance:  reactance,
		devType:    "L",
	}
}

func NewResistor[T scalar.Scalar](name string, nodeNames []string, n1, n2 int, resistance float64) *Line[T] {
	l := NewLine[T](name, nodeNames, n1, n2, resistance, 0)
	l.devType = "R"
	return l
}

func (l *Line[T]) GetType() string { return l.devType }

func (l *Line[T]) Kind() Kind { return Branch }

// Admittance returns y = 1 / (R + jX) in the field T.
func (l *Line[T]) Admittance() (T, error) {
	var zero T

	for _, v := range []float64{l.Resistance, l.Reactance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return zero, fmt.Errorf("%s %s: %w: impedance %g%+gj", l.devType, l.Name, ErrInvalidParameter, l.Resistance, l.Reactance)
		}
	}

	z := scalar.FromComplex[T](complex(l.Resistance, l.Reactance))
	if z == 0 {
		return zero, fmt.Errorf("%s %s: %w: zero impedance", l.devType, l.Name, ErrDegenerateComponent)
	}

	return 1 / z, nil
}

func (l *Line[T]) CalculateStamp() error {
	y, err := l.Admittance()
	if err != nil {
		return err
	}

	l.stamp = matrix.BranchStamp[T]{
		{y, -y},
		{-y, y},
	}
	return nil
}

func (l *Line[T]) GetStamp() matrix.BranchStamp[T] {
	return l.stamp
}

func (l *Line[T]) Stamp(matrix matrix.DeviceMatrix[T]) error {
	if len(l.Nodes) != 2 {
		return fmt.Errorf("%s %s: requires exactly 2 nodes", l.devType, l.Name)
	}
	return matrix.StampBranch(l.Nodes[0], l.Nodes[1], l.stamp)
}

// Current returns the branch current from terminal 1 to terminal 2 for the given terminal potentials.
func (l *Line[T]) Current(v1, v2 T) T {
	return (v1 - v2) * l.stamp[0][0]
}

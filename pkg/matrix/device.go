package matrix

import "github.com/edp1096/toy-mna/pkg/scalar"

// BranchStamp is the 2x2 admittance block of a two-terminal branch.
type BranchStamp[T scalar.Scalar] [2][2]T

// InjectionStamp is the 2x1 block of a current injection, [I, -I].
type InjectionStamp[T scalar.Scalar] [2]T

// DeviceMatrix is what a device sees of the system during assembly (0-based, ground = consts.GroundIndex).
type DeviceMatrix[T scalar.Scalar] interface {
	StampBranch(n1, n2 int, stamp BranchStamp[T]) error
	StampInjection(n1, n2 int, stamp InjectionStamp[T]) error
}

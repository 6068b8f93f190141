package matrix

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-mna/internal/consts"
)

func TestStampBranchGroundElimination(t *testing.T) {
	sys := NewSystem[float64](2)
	stamp := BranchStamp[float64]{{1, -1}, {-1, 1}}

	require.NoError(t, sys.StampBranch(consts.GroundIndex, 1, stamp))
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}}, sys.Matrix())

	require.NoError(t, sys.StampBranch(0, 1, stamp))
	assert.Equal(t, [][]float64{{1, -1}, {-1, 2}}, sys.Matrix())
}

func TestStampBranchParallelSuperposes(t *testing.T) {
	sys := NewSystem[float64](2)
	stamp := BranchStamp[float64]{{0.5, -0.5}, {-0.5, 0.5}}

	require.NoError(t, sys.StampBranch(0, 1, stamp))
	require.NoError(t, sys.StampBranch(0, 1, stamp))

	assert.Equal(t, 1.0, sys.At(0, 0))
	assert.Equal(t, 1.0, sys.At(1, 1))
	assert.Equal(t, -1.0, sys.At(0, 1))
	assert.Equal(t, -1.0, sys.At(1, 0))
}

func TestStampInjectionAccumulates(t *testing.T) {
	sys := NewSystem[float64](2)

	require.NoError(t, sys.StampInjection(0, consts.GroundIndex, InjectionStamp[float64]{5, -5}))
	require.NoError(t, sys.StampInjection(0, 1, InjectionStamp[float64]{2, -2}))
	require.NoError(t, sys.StampInjection(consts.GroundIndex, 0, InjectionStamp[float64]{1, -1}))

	assert.Equal(t, []float64{-5 - 2 + 1, 2}, sys.RHS())
}

func TestStampOutOfRangeLeavesSystemUntouched(t *testing.T) {
	sys := NewSystem[float64](1)

	err := sys.StampBranch(0, 1, BranchStamp[float64]{{1, -1}, {-1, 1}})
	require.ErrorIs(t, err, ErrOutOfRangeNodeReference)

	err = sys.StampInjection(0, -7, InjectionStamp[float64]{1, -1})
	require.ErrorIs(t, err, ErrOutOfRangeNodeReference)

	assert.Equal(t, [][]float64{{0}}, sys.Matrix())
	assert.Equal(t, []float64{0}, sys.RHS())
}

func TestClear(t *testing.T) {
	sys := NewSystem[complex128](1)
	require.NoError(t, sys.StampBranch(0, consts.GroundIndex, BranchStamp[complex128]{{1i, -1i}, {-1i, 1i}}))
	require.NoError(t, sys.StampInjection(0, consts.GroundIndex, InjectionStamp[complex128]{1, -1}))

	sys.Clear()

	assert.Equal(t, [][]complex128{{0}}, sys.Matrix())
	assert.Equal(t, []complex128{0}, sys.RHS())
	assert.Equal(t, 1, sys.Size())
}

func TestSolveEmpty(t *testing.T) {
	x, err := NewSystem[float64](0).Solve()
	require.NoError(t, err)
	assert.Empty(t, x)

	xc, err := NewSystem[complex128](0).Solve()
	require.NoError(t, err)
	assert.Empty(t, xc)
}

func TestSolveReal(t *testing.T) {
	sys := NewSystem[float64](2)
	require.NoError(t, sys.StampBranch(0, 1, BranchStamp[float64]{{1, -1}, {-1, 1}}))
	require.NoError(t, sys.StampBranch(0, consts.GroundIndex, BranchStamp[float64]{{1, -1}, {-1, 1}}))
	require.NoError(t, sys.StampBranch(1, consts.GroundIndex, BranchStamp[float64]{{1, -1}, {-1, 1}}))
	require.NoError(t, sys.StampInjection(consts.GroundIndex, 0, InjectionStamp[float64]{1, -1}))

	assert.Equal(t, [][]float64{{2, -1}, {-1, 2}}, sys.Matrix())
	assert.Equal(t, []float64{1, 0}, sys.RHS())

	x, err := sys.Solve()
	require.NoError(t, err)
	require.Len(t, x, 2)
	assert.InDelta(t, 2.0/3.0, x[0], 1e-12)
	assert.InDelta(t, 1.0/3.0, x[1], 1e-12)
}

func TestSolveComplex(t *testing.T) {
	sys := NewSystem[complex128](1)
	y := complex(1, 1)
	require.NoError(t, sys.StampBranch(0, consts.GroundIndex, BranchStamp[complex128]{{y, -y}, {-y, y}}))
	require.NoError(t, sys.StampInjection(consts.GroundIndex, 0, InjectionStamp[complex128]{2, -2}))

	x, err := sys.Solve()
	require.NoError(t, err)
	require.Len(t, x, 1)
	// 2 / (1 + j) = 1 - j
	assert.InDelta(t, 1.0, real(x[0]), 1e-12)
	assert.InDelta(t, -1.0, imag(x[0]), 1e-12)
}

func TestSolveDoesNotModifySystem(t *testing.T) {
	sys := NewSystem[float64](1)
	require.NoError(t, sys.StampBranch(0, consts.GroundIndex, BranchStamp[float64]{{2, -2}, {-2, 2}}))
	require.NoError(t, sys.StampInjection(0, consts.GroundIndex, InjectionStamp[float64]{4, -4}))

	first, err := sys.Solve()
	require.NoError(t, err)
	second, err := sys.Solve()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, [][]float64{{2}}, sys.Matrix())
	assert.Equal(t, []float64{-4}, sys.RHS())
}

func TestSolveFloatingNodeIsSingular(t *testing.T) {
	sys := NewSystem[float64](2)
	require.NoError(t, sys.StampBranch(0, consts.GroundIndex, BranchStamp[float64]{{1, -1}, {-1, 1}}))

	_, err := sys.Solve()
	require.ErrorIs(t, err, ErrSingularSystem)
}

func TestSolveWithoutReferenceIsSingular(t *testing.T) {
	sys := NewSystem[float64](2)
	require.NoError(t, sys.StampBranch(0, 1, BranchStamp[float64]{{1, -1}, {-1, 1}}))
	require.NoError(t, sys.StampInjection(0, 1, InjectionStamp[float64]{1, -1}))

	_, err := sys.Solve()
	require.ErrorIs(t, err, ErrSingularSystem)
}

func TestPrintSystem(t *testing.T) {
	sys := NewSystem[float64](1)
	require.NoError(t, sys.StampBranch(0, consts.GroundIndex, BranchStamp[float64]{{1, -1}, {-1, 1}}))
	require.NoError(t, sys.StampInjection(0, consts.GroundIndex, InjectionStamp[float64]{5, -5}))

	var buf bytes.Buffer
	sys.PrintSystem(&buf, []string{"V(N1)"})

	assert.Equal(t, "Circuit Equations (1x1):\nEquation 0:  +1*V(N1) = -5\n", buf.String())
}

func branch[T float64 | complex128](y T) BranchStamp[T] {
	return BranchStamp[T]{{y, -y}, {-y, y}}
}

func TestSolveUngroundedRingIsSingular(t *testing.T) {
	dc := NewSystem[float64](3)
	require.NoError(t, dc.StampBranch(0, 1, branch(0.1)))
	require.NoError(t, dc.StampBranch(1, 2, branch(0.3)))
	require.NoError(t, dc.StampBranch(2, 0, branch(0.7)))
	require.NoError(t, dc.StampInjection(0, 2, InjectionStamp[float64]{1, -1}))

	_, err := dc.Solve()
	assert.ErrorIs(t, err, ErrSingularSystem)

	ac := NewSystem[complex128](3)
	require.NoError(t, ac.StampBranch(0, 1, branch(complex(1, -1))))
	require.NoError(t, ac.StampBranch(1, 2, branch(complex(2, -1))))
	require.NoError(t, ac.StampBranch(2, 0, branch(complex(0.5, -3))))

	_, err = ac.Solve()
	assert.ErrorIs(t, err, ErrSingularSystem)

	require.NoError(t, ac.StampInjection(0, 2, InjectionStamp[complex128]{1, -1}))
	_, err = ac.Solve()
	assert.ErrorIs(t, err, ErrSingularSystem)
}

func TestSolveGroundedIslandIsSingular(t *testing.T) {
	// 0-1 reach ground, 2-3 only see each other
	sys := NewSystem[float64](4)
	require.NoError(t, sys.StampBranch(0, consts.GroundIndex, branch(1.0)))
	require.NoError(t, sys.StampBranch(0, 1, branch(2.0)))
	require.NoError(t, sys.StampBranch(2, 3, branch(0.5)))
	require.NoError(t, sys.StampBranch(3, 2, branch(0.25)))

	_, err := sys.Solve()
	assert.ErrorIs(t, err, ErrSingularSystem)

	require.NoError(t, sys.StampBranch(3, consts.GroundIndex, branch(1.0)))
	_, err = sys.Solve()
	assert.NoError(t, err)
}

func TestClearForgetsGroundPaths(t *testing.T) {
	sys := NewSystem[float64](3)
	for i := range 3 {
		require.NoError(t, sys.StampBranch(i, consts.GroundIndex, branch(1.0)))
	}
	_, err := sys.Solve()
	require.NoError(t, err)

	sys.Clear()
	require.NoError(t, sys.StampBranch(0, 1, branch(0.1)))
	require.NoError(t, sys.StampBranch(1, 2, branch(0.3)))
	require.NoError(t, sys.StampBranch(2, 0, branch(0.7)))

	_, err = sys.Solve()
	assert.ErrorIs(t, err, ErrSingularSystem)
}

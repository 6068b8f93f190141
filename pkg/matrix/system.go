package matrix

import (
	"fmt"
	"io"

	"github.com/edp1096/toy-mna/internal/consts"
	"github.com/edp1096/toy-mna/pkg/scalar"
)

// System is the dense MNA system: an N x N admittance matrix and an N x 1 injection vector.
// Its size is fixed at creation. It is not safe for concurrent use.
type System[T scalar.Scalar] struct {
	size   int
	matrix [][]T
	rhs    []T
	links  []int // union-find over unknowns; slot size is the reference node
}

func NewSystem[T scalar.Scalar](size int) *System[T] {
	if size < 0 {
		size = 0
	}

	matrix := make([][]T, size)
	for i := range matrix {
		matrix[i] = make([]T, size)
	}

	s := &System[T]{
		size:   size,
		matrix: matrix,
		rhs:    make([]T, size),
		links:  make([]int, size+1),
	}
	s.resetLinks()
	return s
}

func (s *System[T]) Size() int {
	return s.size
}

func (s *System[T]) slot(n int) int {
	if n == consts.GroundIndex {
		return s.size
	}
	return n
}

func (s *System[T]) find(n int) int {
	for s.links[n] != n {
		s.links[n] = s.links[s.links[n]]
		n = s.links[n]
	}
	return n
}

func (s *System[T]) link(n1, n2 int) {
	a, b := s.find(s.slot(n1)), s.find(s.slot(n2))
	if a != b {
		s.links[a] = b
	}
}

func (s *System[T]) resetLinks() {
	for i := range s.links {
		s.links[i] = i
	}
}

func (s *System[T]) checkIndex(n int) error {
	if n == consts.GroundIndex {
		return nil
	}
	if n < 0 || n >= s.size {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfRangeNodeReference, n, s.size)
	}
	return nil
}

// StampBranch accumulates a branch stamp between n1 and n2, dropping ground rows and columns.
func (s *System[T]) StampBranch(n1, n2 int, stamp BranchStamp[T]) error {
	if err := s.checkIndex(n1); err != nil {
		return err
	}
	if err := s.checkIndex(n2); err != nil {
		return err
	}

	if n1 != consts.GroundIndex {
		s.matrix[n1][n1] += stamp[0][0]
	}
	if n2 != consts.GroundIndex {
		s.matrix[n2][n2] += stamp[1][1]
	}
	if n1 != consts.GroundIndex && n2 != consts.GroundIndex {
		s.matrix[n1][n2] += stamp[0][1]
		s.matrix[n2][n1] += stamp[1][0]
	}
	if stamp != (BranchStamp[T]{}) {
		s.link(n1, n2)
	}

	return nil
}

// StampInjection accumulates -stamp[k] into rhs at each non-ground terminal,
// so [I, -I] yields -I at n1 and +I at n2.
func (s *System[T]) StampInjection(n1, n2 int, stamp InjectionStamp[T]) error {
	if err := s.checkIndex(n1); err != nil {
		return err
	}
	if err := s.checkIndex(n2); err != nil {
		return err
	}

	if n1 != consts.GroundIndex {
		s.rhs[n1] -= stamp[0]
	}
	if n2 != consts.GroundIndex {
		s.rhs[n2] -= stamp[1]
	}

	return nil
}

func (s *System[T]) Clear() {
	for i := range s.matrix {
		for j := range s.matrix[i] {
			s.matrix[i][j] = 0
		}
		s.rhs[i] = 0
	}
	s.resetLinks()
}

func (s *System[T]) At(i, j int) T {
	return s.matrix[i][j]
}

func (s *System[T]) RHSAt(i int) T {
	return s.rhs[i]
}

// Matrix returns a copy of the admittance matrix.
func (s *System[T]) Matrix() [][]T {
	out := make([][]T, s.size)
	for i := range s.matrix {
		out[i] = append([]T(nil), s.matrix[i]...)
	}
	return out
}

// RHS returns a copy of the injection vector.
func (s *System[T]) RHS() []T {
	return append([]T(nil), s.rhs...)
}

func (s *System[T]) PrintSystem(w io.Writer, labels []string) {
	label := func(i int) string {
		if i < len(labels) {
			return labels[i]
		}
		return fmt.Sprintf("x%d", i)
	}

	fmt.Fprintf(w, "Circuit Equations (%dx%d):\n", s.size, s.size)
	for i := range s.size {
		fmt.Fprintf(w, "Equation %d:", i)
		for j := range s.size {
			v := s.At(i, j)
			if v == 0 {
				continue
			}
			re, im := scalar.Parts(v)
			if im == 0 {
				fmt.Fprintf(w, "  %+g*%s", re, label(j))
			} else {
				fmt.Fprintf(w, "  (%g + j%g)*%s", re, im, label(j))
			}
		}
		re, im := scalar.Parts(s.RHSAt(i))
		if scalar.IsComplex[T]() {
			fmt.Fprintf(w, " = %g + j%g\n", re, im)
		} else {
			fmt.Fprintf(w, " = %g\n", re)
		}
	}
}

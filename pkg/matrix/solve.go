package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"

	"github.com/edp1096/toy-mna/pkg/scalar"
)

func (s *System[T]) solverConfig() *sparse.Configuration {
	return &sparse.Configuration{
		Real:                    true,
		Complex:                 scalar.IsComplex[T](),
		SeparatedComplexVectors: true,
		Expandable:              false,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}
}

// checkStructure rejects systems with an empty row or column; no pivot can exist there.
func (s *System[T]) checkStructure() error {
	for i := range s.size {
		rowEmpty, colEmpty := true, true
		for j := range s.size {
			if s.matrix[i][j] != 0 {
				rowEmpty = false
			}
			if s.matrix[j][i] != 0 {
				colEmpty = false
			}
		}
		if rowEmpty || colEmpty {
			return fmt.Errorf("%w: unknown %d has no admittance path", ErrSingularSystem, i)
		}
	}
	return nil
}

// checkReference rejects unknowns with no branch path to the reference node,
// whether or not factorization finds non-zero pivots for them.
func (s *System[T]) checkReference() error {
	ref := s.find(s.size)
	for i := range s.size {
		if s.find(i) != ref {
			return fmt.Errorf("%w: unknown %d has no path to ground", ErrSingularSystem, i)
		}
	}
	return nil
}

// Solve factorizes the matrix and solves matrix * x = rhs. The system itself is not modified.
// A 0x0 system yields an empty solution.
func (s *System[T]) Solve() ([]T, error) {
	if s.size == 0 {
		return []T{}, nil
	}

	err := s.checkStructure()
	if err != nil {
		return nil, err
	}
	err = s.checkReference()
	if err != nil {
		return nil, err
	}

	config := s.solverConfig()
	mat, err := sparse.Create(int64(s.size), config)
	if err != nil {
		return nil, fmt.Errorf("creating solver matrix: %v", err)
	}
	defer mat.Destroy()

	// 1-based indexing
	rhs := make([]float64, s.size+1)
	rhsImag := make([]float64, s.size+1)

	for i := range s.size {
		for j := range s.size {
			v := s.matrix[i][j]
			if v == 0 {
				continue
			}
			element := mat.GetElement(int64(i+1), int64(j+1))
			if element == nil {
				return nil, fmt.Errorf("solver element (%d,%d) unavailable", i+1, j+1)
			}
			re, im := scalar.Parts(v)
			element.Real += re
			element.Imag += im
		}
		rhs[i+1], rhsImag[i+1] = scalar.Parts(s.rhs[i])
	}

	err = mat.Factor()
	if err != nil {
		return nil, fmt.Errorf("%w: factorization failed: %v", ErrSingularSystem, err)
	}

	var solution, solutionImag []float64
	if config.Complex {
		solution, solutionImag, err = mat.SolveComplex(rhs, rhsImag)
	} else {
		solution, err = mat.Solve(rhs)
	}
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}

	x := make([]T, s.size)
	for i := range s.size {
		v := complex(solution[i+1], 0)
		if solutionImag != nil {
			v = complex(solution[i+1], solutionImag[i+1])
		}
		x[i] = scalar.FromComplex[T](v)
		if !scalar.IsFinite(x[i]) {
			return nil, fmt.Errorf("%w: non-finite solution at unknown %d", ErrSingularSystem, i)
		}
	}

	return x, nil
}

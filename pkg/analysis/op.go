package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/edp1096/toy-mna/pkg/circuit"
	"github.com/edp1096/toy-mna/pkg/netlist"
)

// OperatingPoint is the DC study. It solves the real system once: reactances and
// imaginary set points do not enter it.
type OperatingPoint struct {
	BaseAnalysis
	Circuit *circuit.Circuit[float64]
}

func NewOP(logger *slog.Logger) *OperatingPoint {
	return &OperatingPoint{
		BaseAnalysis: *NewBaseAnalysis(logger),
	}
}

func (op *OperatingPoint) Setup(params *netlist.NetworkParams) error {
	ckt, err := circuit.Build[float64](params, op.circuitOptions()...)
	if err != nil {
		return err
	}
	op.Circuit = ckt
	return nil
}

func (op *OperatingPoint) Execute(ctx context.Context) error {
	if op.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := op.Circuit.Stamp(); err != nil {
		return fmt.Errorf("stamping error: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := op.Circuit.Solve(); err != nil {
		return fmt.Errorf("matrix solve error: %w", err)
	}

	op.StoreOPResult(op.Circuit.GetSolution())
	op.logger.Info("operating point solved", "circuit", op.Circuit.Name(), "unknowns", op.Circuit.GetNumNodes())
	return nil
}

func (op *OperatingPoint) PrintSystem(w io.Writer) error {
	if op.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}
	op.Circuit.GetMatrix().PrintSystem(w, op.Circuit.UnknownLabels())
	return nil
}

package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/edp1096/toy-mna/pkg/circuit"
	"github.com/edp1096/toy-mna/pkg/netlist"
)

// ACAnalysis is the single-frequency steady-state study over the complex field.
// Impedances are taken as given; the frequency only labels the results.
type ACAnalysis struct {
	BaseAnalysis
	Circuit   *circuit.Circuit[complex128]
	frequency float64
}

func NewAC(frequency float64, logger *slog.Logger) *ACAnalysis {
	return &ACAnalysis{
		BaseAnalysis: *NewBaseAnalysis(logger),
		frequency:    frequency,
	}
}

func (ac *ACAnalysis) Frequency() float64 {
	return ac.frequency
}

func (ac *ACAnalysis) Setup(params *netlist.NetworkParams) error {
	ckt, err := circuit.Build[complex128](params, ac.circuitOptions()...)
	if err != nil {
		return err
	}
	ac.Circuit = ckt
	return nil
}

func (ac *ACAnalysis) Execute(ctx context.Context) error {
	if ac.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ac.Circuit.Stamp(); err != nil {
		return fmt.Errorf("stamping error at f=%g: %w", ac.frequency, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := ac.Circuit.Solve(); err != nil {
		return fmt.Errorf("matrix solve error at f=%g: %w", ac.frequency, err)
	}

	ac.StoreACResult(ac.frequency, ac.Circuit.GetSolution())
	ac.logger.Info("ac point solved", "circuit", ac.Circuit.Name(), "frequency", ac.frequency, "unknowns", ac.Circuit.GetNumNodes())
	return nil
}

func (ac *ACAnalysis) PrintSystem(w io.Writer) error {
	if ac.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}
	ac.Circuit.GetMatrix().PrintSystem(w, ac.Circuit.UnknownLabels())
	return nil
}

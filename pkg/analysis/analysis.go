package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-mna/internal/consts"
	"github.com/edp1096/toy-mna/pkg/circuit"
	"github.com/edp1096/toy-mna/pkg/netlist"
)

type Analysis interface {
	Setup(params *netlist.NetworkParams) error
	Execute(ctx context.Context) error
	GetResults() map[string][]float64
	PrintSystem(w io.Writer) error
}

type BaseAnalysis struct {
	results map[string][]float64 // key: variable name, value: result per point
	logger  *slog.Logger
}

func NewBaseAnalysis(logger *slog.Logger) *BaseAnalysis {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseAnalysis{
		results: make(map[string][]float64),
		logger:  logger,
	}
}

func (a *BaseAnalysis) circuitOptions() []circuit.Option {
	return []circuit.Option{circuit.WithLogger(a.logger)}
}

func (a *BaseAnalysis) StoreOPResult(solution map[string]float64) {
	for name, value := range solution {
		a.results[name] = append(a.results[name], value)
	}
}

func (a *BaseAnalysis) StoreACResult(freq float64, solution map[string]complex128) {
	a.results["FREQ"] = append(a.results["FREQ"], freq)

	for name, value := range solution {
		a.results[name+"_RE"] = append(a.results[name+"_RE"], real(value))
		a.results[name+"_IM"] = append(a.results[name+"_IM"], imag(value))

		// Magnitude
		a.results[name+"_MAG"] = append(a.results[name+"_MAG"], cmplx.Abs(value))

		// Phase - degree
		phase := cmplx.Phase(value) * 180.0 / math.Pi
		a.results[name+"_PHASE"] = append(a.results[name+"_PHASE"], phase)
	}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}

// New picks the study named by params.Analysis.
func New(params *netlist.NetworkParams, logger *slog.Logger) (Analysis, error) {
	switch params.Analysis {
	case netlist.AnalysisOP:
		return NewOP(logger), nil
	case netlist.AnalysisAC:
		freq := params.Frequency
		if freq <= 0 {
			freq = consts.DefaultFrequency
		}
		return NewAC(freq, logger), nil
	default:
		return nil, fmt.Errorf("unsupported analysis type %v", params.Analysis)
	}
}

// Run builds, assembles and solves the network once and returns the named results.
// ctx is checked between stages; a stage in progress is never interrupted.
func Run(ctx context.Context, params *netlist.NetworkParams, logger *slog.Logger) (map[string][]float64, error) {
	analyzer, err := New(params, logger)
	if err != nil {
		return nil, err
	}

	if err := analyzer.Setup(params); err != nil {
		return nil, fmt.Errorf("analysis setup failed: %w", err)
	}
	if err := analyzer.Execute(ctx); err != nil {
		return nil, fmt.Errorf("analysis execution failed: %w", err)
	}

	return analyzer.GetResults(), nil
}

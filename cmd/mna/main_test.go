package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-mna/pkg/matrix"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()
	assert.Equal(t, "mna", cmd.Use)

	solveCmd, _, err := cmd.Find([]string{"solve"})
	require.NoError(t, err)
	assert.Equal(t, "solve", solveCmd.Name())

	for _, name := range []string{"ac", "frequency", "print-system"} {
		assert.NotNil(t, solveCmd.Flags().Lookup(name), name)
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("format").DefValue)
}

func TestSolveGolden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"ladder_op", []string{"solve", "testdata/ladder.cir"}},
		{"rl_ac", []string{"solve", "testdata/rl.yaml"}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestSolveJSON(t *testing.T) {
	stdout, _, err := execute(t, "solve", "--format", "json", "--ac", "--frequency", "50", "testdata/ladder.cir")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "two node ladder", report.Title)
	assert.Equal(t, "ac", report.Analysis)
	assert.Equal(t, 50.0, report.Frequency)
	require.Contains(t, report.Results, "V(N2)_RE")
	assert.InDelta(t, 4.0, report.Results["V(N2)_RE"][0], 1e-9)
	assert.InDelta(t, 0.0, report.Results["V(N2)_IM"][0], 1e-9)
}

func TestSolvePrintSystem(t *testing.T) {
	stdout, stderr, err := execute(t, "solve", "--print-system", "--verbose", "testdata/ladder.cir")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Circuit Equations (2x2):\n")
	assert.Contains(t, stdout, "Equation 1:  -1*V(N1)  +1*V(N2) = 2\n")
	assert.Contains(t, stderr, "system assembled")
}

func TestSolveErrors(t *testing.T) {
	_, _, err := execute(t, "solve", "testdata/floating.cir")
	assert.ErrorIs(t, err, matrix.ErrSingularSystem)

	_, _, err = execute(t, "solve", "testdata/missing.cir")
	assert.Error(t, err)

	_, _, err = execute(t, "--format", "xml", "solve", "testdata/ladder.cir")
	assert.ErrorContains(t, err, "invalid format")

	_, _, err = execute(t, "solve")
	assert.Error(t, err)

	stdout, _, err := execute(t, "solve", "--print-system", "--format", "json", "testdata/ladder.cir")
	assert.ErrorContains(t, err, "--print-system")
	assert.Empty(t, stdout)
}

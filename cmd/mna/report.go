package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/edp1096/toy-mna/pkg/netlist"
	"github.com/edp1096/toy-mna/pkg/util"
)

type jsonReport struct {
	Title     string               `json:"title"`
	Analysis  string               `json:"analysis"`
	Frequency float64              `json:"frequency,omitempty"`
	Results   map[string][]float64 `json:"results"`
}

func writeJSON(w io.Writer, params *netlist.NetworkParams, results map[string][]float64) error {
	report := jsonReport{
		Title:    params.Title,
		Analysis: params.Analysis.String(),
		Results:  results,
	}
	if freqs, ok := results["FREQ"]; ok && len(freqs) > 0 {
		report.Frequency = freqs[0]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// splitNames returns the sorted V(...) and I(...) result names, with suffix trimmed.
func splitNames(results map[string][]float64, suffix string) (voltages, currents []string) {
	for name := range results {
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		base := strings.TrimSuffix(name, suffix)
		switch {
		case strings.HasPrefix(base, "V("):
			voltages = append(voltages, base)
		case strings.HasPrefix(base, "I("):
			currents = append(currents, base)
		}
	}
	sort.Strings(voltages)
	sort.Strings(currents)
	return voltages, currents
}

func writeReport(w io.Writer, title string, results map[string][]float64) {
	fmt.Fprintf(w, "Analysis Results: %s\n", title)
	fmt.Fprintln(w, "================")

	// AC
	if freqs, isAC := results["FREQ"]; isAC && len(freqs) > 0 {
		fmt.Fprintf(w, "\nAC Analysis Results (f = %s):\n", strings.TrimSpace(util.FormatFrequency(freqs[0])))

		voltages, currents := splitNames(results, "_MAG")
		phasor := func(name, unit string) {
			value := complex(results[name+"_RE"][0], results[name+"_IM"][0])
			fmt.Fprintf(w, "%s  %s\n",
				util.FormatPhasor(name, results[name+"_MAG"][0], results[name+"_PHASE"][0]),
				util.FormatRectangular(value, unit))
		}

		fmt.Fprintln(w, "\nNode Voltages:")
		for _, name := range voltages {
			phasor(name, "V")
		}
		fmt.Fprintln(w, "\nBranch Currents:")
		for _, name := range currents {
			phasor(name, "A")
		}
		return
	}

	// Operating point
	voltages, currents := splitNames(results, "")
	fmt.Fprintln(w, "\nNode Voltages:")
	for _, name := range voltages {
		fmt.Fprintf(w, "%s = %s\n", name, util.FormatValueFactor(results[name][0], "V"))
	}
	fmt.Fprintln(w, "\nBranch Currents:")
	for _, name := range currents {
		fmt.Fprintf(w, "%s = %s\n", name, util.FormatValueFactor(results[name][0], "A"))
	}
}

package netlist

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/edp1096/toy-mna/internal/consts"
)

// unitMap is keyed by the lower-cased suffix; SPICE suffixes ignore case,
// so M is milli and meg is mega.
var unitMap = map[string]float64{
	"t":   1e12,  // tera
	"g":   1e9,   // giga
	"meg": 1e6,   // mega
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var valuePattern = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)((?i:meg|[tgkmunpf]))?$`)

// Parse reads a SPICE-like network description.
//
//	* title line
//	.node N1
//	.node GRD ground
//	R1 GRD N1 1
//	L1 N1 N2 1 0.5
//	I1 N1 GRD 5 [imag]
//	PQ1 N2 0 1 0.2
//	.ac 50
//
// "*" starts a comment, "+" continues the previous line. The names 0 and gnd
// declare themselves as ground on first use; every other node needs a .node line.
func Parse(input string) (*NetworkParams, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	params := NewNetworkParams("")

	// Title or comment
	if scanner.Scan() {
		params.Title = strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "*"))
	}

	var currentLine string
	lineNo := 1
	startLine := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if idx := strings.Index(line, "*"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if len(line) == 0 {
			continue
		}

		if strings.HasPrefix(line, "+") {
			if currentLine == "" {
				return nil, fmt.Errorf("%w: line %d: continuation without a preceding line", ErrInvalidNetlist, lineNo)
			}
			currentLine += " " + strings.TrimSpace(line[1:])
			continue
		}

		if currentLine != "" {
			if err := parseLine(params, currentLine); err != nil {
				return nil, fmt.Errorf("line %d: %w", startLine, err)
			}
		}
		currentLine = line
		startLine = lineNo
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNetlist, err)
	}

	if currentLine != "" {
		if err := parseLine(params, currentLine); err != nil {
			return nil, fmt.Errorf("line %d: %w", startLine, err)
		}
	}

	return params, nil
}

func parseLine(params *NetworkParams, line string) error {
	if strings.HasPrefix(line, ".") {
		return parseDotOperator(params, line)
	}

	decl, err := parseElement(line)
	if err != nil {
		return err
	}

	for _, node := range decl.Nodes {
		if consts.IsGroundAlias(node) && !params.HasNode(node) {
			params.AddNode(NodeDecl{ID: node, Kind: Ground})
		}
	}
	params.AddComponent(*decl)
	return nil
}

// Parse .node, .op, .ac, .end
func parseDotOperator(params *NetworkParams, line string) error {
	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case ".node":
		if len(fields) < 2 || len(fields) > 3 {
			return fmt.Errorf("%w: .node needs an id and an optional kind", ErrInvalidNetlist)
		}
		kind := Network
		if len(fields) == 3 {
			k, err := parseNodeKind(fields[2])
			if err != nil {
				return err
			}
			kind = k
		}
		params.AddNode(NodeDecl{ID: fields[1], Kind: kind})

	case ".op":
		params.Analysis = AnalysisOP

	case ".ac":
		params.Analysis = AnalysisAC
		params.Frequency = consts.DefaultFrequency
		if len(fields) > 1 {
			freq, err := ParseValue(fields[1])
			if err != nil {
				return fmt.Errorf("invalid frequency: %w", err)
			}
			params.Frequency = freq
		}

	case ".end":

	default:
		return fmt.Errorf("%w: unsupported command %s", ErrInvalidNetlist, fields[0])
	}

	return nil
}

func parseNodeKind(s string) (NodeKind, error) {
	switch strings.ToLower(s) {
	case "", "network":
		return Network, nil
	case "ground":
		return Ground, nil
	default:
		return Network, fmt.Errorf("%w: unknown node kind %q", ErrInvalidNetlist, s)
	}
}

func parseElement(line string) (*ComponentDecl, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: invalid element format: %s", ErrInvalidNetlist, line)
	}

	decl := &ComponentDecl{
		ID:    fields[0],
		Nodes: fields[1:3],
	}

	upper := strings.ToUpper(fields[0])
	switch {
	case strings.HasPrefix(upper, "PQ"):
		decl.Type = PQSource
	case strings.HasPrefix(upper, "R"):
		decl.Type = Resistor
	case strings.HasPrefix(upper, "L"):
		decl.Type = Line
	case strings.HasPrefix(upper, "I"):
		decl.Type = CurrentSource
	default:
		return nil, fmt.Errorf("%w: unsupported element %s", ErrInvalidNetlist, fields[0])
	}

	values, err := parseValues(fields[3:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", decl.ID, err)
	}

	switch decl.Type {
	case Resistor:
		if len(values) != 1 {
			return nil, fmt.Errorf("%w: %s: resistor needs exactly one value", ErrInvalidNetlist, decl.ID)
		}
		decl.Resistance = values[0]

	case Line:
		if len(values) != 2 {
			return nil, fmt.Errorf("%w: %s: line needs resistance and reactance", ErrInvalidNetlist, decl.ID)
		}
		decl.Resistance, decl.Reactance = values[0], values[1]

	default:
		if len(values) > 2 {
			return nil, fmt.Errorf("%w: %s: source takes a real and an optional imaginary set point", ErrInvalidNetlist, decl.ID)
		}
		im := 0.0
		if len(values) == 2 {
			im = values[1]
		}
		decl.SetPoint = complex(values[0], im)
	}

	return decl, nil
}

func parseValues(fields []string) ([]float64, error) {
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func ParseValue(val string) (float64, error) {
	matches := valuePattern.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("%w: invalid value format: %s", ErrInvalidNetlist, val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNetlist, err)
	}

	// factor
	if matches[2] != "" {
		num *= unitMap[strings.ToLower(matches[2])]
	}

	return num, nil
}

package netlist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-mna/internal/consts"
)

// NetworkFile is the YAML shape of a network description.
type NetworkFile struct {
	Title      string          `yaml:"title"`
	Analysis   string          `yaml:"analysis"`
	Frequency  float64         `yaml:"frequency"`
	Nodes      []NodeFile      `yaml:"nodes"`
	Components []ComponentFile `yaml:"components"`
}

type NodeFile struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
}

type ComponentFile struct {
	Type         string   `yaml:"type"`
	ID           string   `yaml:"id"`
	Resistance   float64  `yaml:"resistance"`
	Reactance    float64  `yaml:"reactance"`
	SetPoint     float64  `yaml:"set_point"`
	SetPointImag float64  `yaml:"set_point_imag"`
	Nodes        []string `yaml:"nodes"`
	NodeIndices  []int    `yaml:"node_indices"`
}

func ParseYAML(data []byte) (*NetworkParams, error) {
	return LoadYAML(bytes.NewReader(data))
}

// LoadYAML decodes a network description. Unknown fields are rejected.
func LoadYAML(r io.Reader) (*NetworkParams, error) {
	var file NetworkFile

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidNetlist)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidNetlist, err)
	}

	return file.ToParams()
}

func (f *NetworkFile) ToParams() (*NetworkParams, error) {
	params := NewNetworkParams(f.Title)

	switch strings.ToLower(f.Analysis) {
	case "", "op", "dc":
		params.Analysis = AnalysisOP
	case "ac":
		params.Analysis = AnalysisAC
		params.Frequency = f.Frequency
		if params.Frequency == 0 {
			params.Frequency = consts.DefaultFrequency
		}
	default:
		return nil, fmt.Errorf("%w: unknown analysis %q", ErrInvalidNetlist, f.Analysis)
	}

	for _, n := range f.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node without id", ErrInvalidNetlist)
		}
		kind, err := parseNodeKind(n.Kind)
		if err != nil {
			return nil, err
		}
		params.AddNode(NodeDecl{ID: n.ID, Kind: kind})
	}

	for _, c := range f.Components {
		decl := ComponentDecl{
			Type:        ComponentType(strings.ToUpper(c.Type)),
			ID:          c.ID,
			Resistance:  c.Resistance,
			Reactance:   c.Reactance,
			SetPoint:    complex(c.SetPoint, c.SetPointImag),
			Nodes:       c.Nodes,
			NodeIndices: c.NodeIndices,
		}
		if !decl.Type.IsBranch() && !decl.Type.IsInjection() {
			return nil, fmt.Errorf("%w: component %s: unknown type %q", ErrInvalidNetlist, c.ID, c.Type)
		}
		params.AddComponent(decl)
	}

	return params, nil
}

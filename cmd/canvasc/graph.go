package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/levihackerman-102/canvas"
)

// graphSpec is the JSON shape accepted by compile and run.
//
//	{"nodes": [
//	  {"id": "a",   "kind": "const", "value": "2"},
//	  {"id": "b",   "kind": "const", "value": "3"},
//	  {"id": "sum", "kind": "add", "inputs": ["a", "b"]},
//	  {"id": "out", "kind": "returnUint", "inputs": ["sum"]}
//	]}
type graphSpec struct {
	Nodes []nodeSpec `json:"nodes"`
}

type nodeSpec struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Value  string   `json:"value,omitempty"`
	Inputs []string `json:"inputs,omitempty"`
}

// parseGraph builds a canvas.Graph from JSON. Nodes are declared in a
// first pass and wired in a second, so declaration order in the file does
// not constrain edge direction.
func parseGraph(data []byte) (*canvas.Graph, error) {
	var spec graphSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("canvasc: parsing graph: %w", err)
	}

	g := canvas.NewGraph()

	for _, node := range spec.Nodes {
		kind, err := canvas.ParseKind(node.Kind)
		if err != nil {
			return nil, err
		}

		switch kind {
		case canvas.KindConst:
			value, err := parseUint(node.Value)
			if err != nil {
				return nil, fmt.Errorf("canvasc: node %q: %w", node.ID, err)
			}
			err = g.Const(node.ID, value)
			if err != nil {
				return nil, err
			}
		case canvas.KindConstBool:
			value, err := parseBool(node.Value)
			if err != nil {
				return nil, fmt.Errorf("canvasc: node %q: %w", node.ID, err)
			}
			err = g.ConstBool(node.ID, value)
			if err != nil {
				return nil, err
			}
		default:
			if err := g.AddNode(node.ID, kind); err != nil {
				return nil, err
			}
		}
	}

	for _, node := range spec.Nodes {
		for _, input := range node.Inputs {
			if err := g.Connect(input, node.ID); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// parseUint accepts decimal or 0x-prefixed hex literals.
func parseUint(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("constant has no value")
	}
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %q", s)
	}
	return value, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean literal %q", s)
	}
}

func readAll(cmd *cobra.Command) ([]byte, error) {
	return io.ReadAll(cmd.InOrStdin())
}

// decodeHex strips whitespace and an optional 0x prefix, then hex-decodes.
func decodeHex(raw []byte) ([]byte, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "0x")
	code, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("canvasc: decoding program hex: %w", err)
	}
	return code, nil
}

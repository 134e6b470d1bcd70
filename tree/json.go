// SPDX-License-Identifier: MIT

package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// wire shapes of an operator node and of the two output documents.
type opNode struct {
	Operator string            `json:"operator"`
	Operands []json.RawMessage `json:"operands"`
}

type resultDoc struct {
	Result [][]float64 `json:"result"`
}

type errorDoc struct {
	Error string `json:"error"`
}

// Parse decodes one operation tree from r.
//
// Errors: ErrMalformed for input that is not valid JSON, for a node that is
// neither a number matrix nor an operator object, for an operator without
// operands, and for ragged matrices; ErrUnknownOperator for an unsupported
// operator symbol.
func Parse(r io.Reader) (*Node, error) {
	var raw json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("Parse: %w: %v", ErrMalformed, err)
	}
	n, err := decodeNode(raw, "$")
	if err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}

	return n, nil
}

// ParseFile opens path and parses its contents with Parse.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ParseFile: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// decodeNode dispatches on the first non-space byte: '[' is a leaf matrix,
// '{' an operator. at is a JSONPath-like location used in error messages.
func decodeNode(raw json.RawMessage, at string) (*Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w: empty node", at, ErrMalformed)
	}
	switch trimmed[0] {
	case '[':
		return decodeLeaf(trimmed, at)
	case '{':
		return decodeOp(trimmed, at)
	default:
		return nil, fmt.Errorf("%s: %w: expected matrix or operator", at, ErrMalformed)
	}
}

func decodeLeaf(raw []byte, at string) (*Node, error) {
	var m [][]float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", at, ErrMalformed, err)
	}
	for i, row := range m {
		if row == nil {
			return nil, fmt.Errorf("%s[%d]: %w: null row", at, i, ErrMalformed)
		}
		if len(row) != len(m[0]) {
			return nil, fmt.Errorf("%s[%d]: %w: ragged row (len %d, want %d)",
				at, i, ErrMalformed, len(row), len(m[0]))
		}
	}
	if m == nil {
		m = [][]float64{}
	}

	return &Node{kind: KindMatrix, matrix: m}, nil
}

func decodeOp(raw []byte, at string) (*Node, error) {
	var op opNode
	if err := json.Unmarshal(raw, &op); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", at, ErrMalformed, err)
	}
	k, err := ParseKind(op.Operator)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", at, err)
	}
	if len(op.Operands) == 0 {
		return nil, fmt.Errorf("%s: %w: operator %q has no operands", at, ErrMalformed, op.Operator)
	}
	children := make([]*Node, len(op.Operands))
	for i, child := range op.Operands {
		if children[i], err = decodeNode(child, fmt.Sprintf("%s.operands[%d]", at, i)); err != nil {
			return nil, err
		}
	}

	return &Node{kind: k, children: children}, nil
}

// MarshalJSON encodes n in the same format Parse accepts.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		m := n.matrix
		if m == nil {
			m = [][]float64{}
		}
		return json.Marshal(m)
	}
	return json.Marshal(struct {
		Operator string  `json:"operator"`
		Operands []*Node `json:"operands"`
	}{n.kind.Symbol(), n.children})
}

// WriteResult writes {"result": m} to w.
func WriteResult(w io.Writer, m [][]float64) error {
	if m == nil {
		m = [][]float64{}
	}
	return writeDoc(w, resultDoc{Result: m})
}

// WriteError writes {"error": msg} to w.
func WriteError(w io.Writer, msg string) error {
	return writeDoc(w, errorDoc{Error: msg})
}

// WriteFile creates (or truncates) path and writes the result document.
func WriteFile(path string, m [][]float64) error {
	return writeFile(path, func(w io.Writer) error { return WriteResult(w, m) })
}

// WriteErrorFile creates (or truncates) path and writes the error document.
func WriteErrorFile(path, msg string) error {
	return writeFile(path, func(w io.Writer) error { return WriteError(w, msg) })
}

func writeDoc(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("tree: encode output: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tree: create output: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return write(f)
}

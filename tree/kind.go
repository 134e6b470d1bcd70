// SPDX-License-Identifier: MIT

package tree

import "fmt"

// Kind discriminates tree nodes.
type Kind uint8

const (
	// KindMatrix is a leaf holding a computed or literal matrix.
	KindMatrix Kind = iota
	// KindNegate negates its single operand.
	KindNegate
	// KindTranspose transposes its single operand.
	KindTranspose
	// KindAdd sums two or more operands element-wise.
	KindAdd
	// KindMultiply multiplies two or more operands left to right.
	KindMultiply
)

// operator symbols used by the JSON encoding.
const (
	symAdd       = "+"
	symMultiply  = "*"
	symNegate    = "-"
	symTranspose = "T"
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindMatrix:
		return "matrix"
	case KindNegate:
		return "negate"
	case KindTranspose:
		return "transpose"
	case KindAdd:
		return "add"
	case KindMultiply:
		return "multiply"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Symbol returns the JSON operator symbol, or "" for KindMatrix.
func (k Kind) Symbol() string {
	switch k {
	case KindNegate:
		return symNegate
	case KindTranspose:
		return symTranspose
	case KindAdd:
		return symAdd
	case KindMultiply:
		return symMultiply
	default:
		return ""
	}
}

// ParseKind maps an operator symbol to its Kind.
func ParseKind(sym string) (Kind, error) {
	switch sym {
	case symAdd:
		return KindAdd, nil
	case symMultiply:
		return KindMultiply, nil
	case symNegate:
		return KindNegate, nil
	case symTranspose:
		return KindTranspose, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, sym)
	}
}

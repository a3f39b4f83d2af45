package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindFloat Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. Comparisons and
// boolean combinators produce BoolValue rather than 1.0/0.0 floats; the
// numeric encoding only appears at the coercion boundary below.
type Value interface {
	Kind() Kind
}

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// AsNumber converts a value to the script's universal numeric domain.
// Booleans keep the historical 1.0/0.0 encoding.
func AsNumber(v Value) float64 {
	switch val := v.(type) {
	case FloatValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return 1.0
		}
		return 0.0
	default:
		return 0.0
	}
}

// Truthy reports whether a value enables a conditional block. Any nonzero
// number counts as true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case FloatValue:
		return val.Val != 0.0
	default:
		return false
	}
}

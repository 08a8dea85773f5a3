package sysfile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Value is a scalar read from a system file. It is written either as a
// plain number or as a [re, im] pair.
type Value complex128

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformed, node.Line, err)
		}
		*v = Value(complex(f, 0))
		return nil
	case yaml.SequenceNode:
		var parts []float64
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformed, node.Line, err)
		}
		return v.setParts(parts)
	default:
		return fmt.Errorf("%w: line %d: expected number or [re, im]", ErrMalformed, node.Line)
	}
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Value) UnmarshalTOML(data any) error {
	if f, ok := tomlNumber(data); ok {
		*v = Value(complex(f, 0))
		return nil
	}

	list, ok := data.([]any)
	if !ok {
		return fmt.Errorf("%w: expected number or [re, im], got %T", ErrMalformed, data)
	}

	parts := make([]float64, len(list))
	for i, item := range list {
		f, ok := tomlNumber(item)
		if !ok {
			return fmt.Errorf("%w: expected number, got %T", ErrMalformed, item)
		}
		parts[i] = f
	}
	return v.setParts(parts)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Value(complex(f, 0))
		return nil
	}

	var parts []float64
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: expected number or [re, im]: %v", ErrMalformed, err)
	}
	return v.setParts(parts)
}

func (v *Value) setParts(parts []float64) error {
	switch len(parts) {
	case 1:
		*v = Value(complex(parts[0], 0))
	case 2:
		*v = Value(complex(parts[0], parts[1]))
	default:
		return fmt.Errorf("%w: complex value needs 1 or 2 parts, got %d", ErrMalformed, len(parts))
	}
	return nil
}

// plain returns the value as a float64, or as [re, im] when it has an
// imaginary part.
func (v Value) plain() any {
	c := complex128(v)
	if imag(c) == 0 {
		return real(c)
	}
	return []float64{real(c), imag(c)}
}

func tomlNumber(data any) (float64, bool) {
	switch n := data.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toValues(c []complex128) []Value {
	if len(c) == 0 {
		return nil
	}
	out := make([]Value, len(c))
	for i, x := range c {
		out[i] = Value(x)
	}
	return out
}

func toComplex(v []Value) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex128(x)
	}
	return out
}

func toPlain(v []Value) []any {
	if len(v) == 0 {
		return nil
	}
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x.plain()
	}
	return out
}

package solrdex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is one node of a structured boolean query tree. Trees are built
// from Match, And, Or and Not (or decoded with NodeFromJSON), compiled
// once, and discarded.
type Node interface {
	render(sb *strings.Builder) error
}

type matchNode struct {
	field string
	value any
}

type andNode struct{ children []Node }

type orNode struct{ children []Node }

type notNode struct{ child Node }

// Match matches documents whose field carries the given value. The value
// is rendered in its native JSON text form without extra quoting: Match
// ("age", 19) compiles to "age:19", Match("name", "Some") to "name:Some".
func Match(field string, value any) Node { return matchNode{field: field, value: value} }

// And matches documents satisfying every child.
func And(children ...Node) Node { return andNode{children: children} }

// Or matches documents satisfying at least one child.
func Or(children ...Node) Node { return orNode{children: children} }

// Not inverts its child.
func Not(child Node) Node { return notNode{child: child} }

// Compile renders a structured query tree into the engine's native query
// syntax: field matches as "field:value", AND/OR groups parenthesized and
// joined with the operator, negation prefixed with "!". The result is a
// plain query string; percent-encoding happens when it is handed to
// Query.Query.
func Compile(node Node) (string, error) {
	if node == nil {
		return "", fmt.Errorf("%w: nil node", ErrInvalidSyntax)
	}
	var sb strings.Builder
	if err := node.render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (n matchNode) render(sb *strings.Builder) error {
	if n.value == nil {
		return fmt.Errorf("%w: field %q", ErrMissingValue, n.field)
	}
	sb.WriteString(n.field)
	sb.WriteByte(':')
	sb.WriteString(renderValue(n.value))
	return nil
}

func (n andNode) render(sb *strings.Builder) error { return renderGroup(sb, n.children, " AND ") }

func (n orNode) render(sb *strings.Builder) error { return renderGroup(sb, n.children, " OR ") }

func (n notNode) render(sb *strings.Builder) error {
	if n.child == nil {
		return fmt.Errorf("%w: negation without operand", ErrInvalidSyntax)
	}
	sb.WriteByte('!')
	return n.child.render(sb)
}

func renderGroup(sb *strings.Builder, children []Node, op string) error {
	sb.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			sb.WriteString(op)
		}
		if c == nil {
			return fmt.Errorf("%w: nil node", ErrInvalidSyntax)
		}
		if err := c.render(sb); err != nil {
			return err
		}
	}
	sb.WriteByte(')')
	return nil
}

// renderValue writes a match value the way JSON would, except strings,
// which stay unquoted.
func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

// NodeFromJSON converts a JSON-shaped query tree into a Node. Recognized
// object shapes:
//
//	{"field": F, "value": V}   field match
//	{"and": [node, ...]}       conjunction
//	{"or":  [node, ...]}       disjunction
//	{"neg": node}              negation
//
// Any other shape fails with ErrInvalidSyntax; a field match without a
// value fails with ErrMissingValue.
func NodeFromJSON(v any) (Node, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrInvalidSyntax, v)
	}

	if raw, ok := obj["and"]; ok {
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}
		return And(children...), nil
	}
	if raw, ok := obj["or"]; ok {
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}
		return Or(children...), nil
	}
	if raw, ok := obj["neg"]; ok {
		child, err := NodeFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("neg: %w", err)
		}
		return Not(child), nil
	}
	if raw, ok := obj["field"]; ok {
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field name must be a string", ErrInvalidSyntax)
		}
		value, ok := obj["value"]
		if !ok {
			return nil, fmt.Errorf("%w: field %q", ErrMissingValue, name)
		}
		return Match(name, value), nil
	}
	return nil, fmt.Errorf("%w: object has none of field, and, or, neg", ErrInvalidSyntax)
}

func childrenFromJSON(v any) ([]Node, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: operator expects an array", ErrInvalidSyntax)
	}
	out := make([]Node, len(arr))
	for i, el := range arr {
		n, err := NodeFromJSON(el)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

package evaluator

import (
	"github.com/dazl-dev/tokey/pkg/types"
)

// allowedMethod is the single method expressions may invoke, and only on
// array-typed receivers.
const allowedMethod = "includes"

// evalNode dispatches on the node type. The switch is exhaustive over the
// node kinds the parser produces; the default arm only fires on hand-built
// trees.
func (e *Evaluator) evalNode(node *types.ASTNode, input types.Context) (any, error) {
	switch node.Type {
	case types.NodeString:
		return node.StrValue, nil
	case types.NodeNumber:
		return node.NumValue, nil
	case types.NodeBoolean:
		return node.Value, nil
	case types.NodeNull:
		return nil, nil
	case types.NodeName:
		return e.evalName(node, input)
	case types.NodeMember:
		return e.evalMember(node, input)
	case types.NodeArray:
		return e.evalArray(node, input)
	case types.NodeCall:
		return e.evalCall(node, input)
	case types.NodeBinary:
		return e.evalBinary(node, input)
	case types.NodeUnary:
		return e.evalUnary(node, input)
	case types.NodeGroup:
		return e.evalNode(node.LHS, input)
	default:
		return nil, types.NewSyntaxError(-1, "unknown node type %q", node.Type)
	}
}

// evalName resolves a bare identifier against the context. Only keys present
// in the context are visible; any other name is a security violation. This
// is the primary sandbox boundary: it blocks reads of ambient globals and
// prototype-style names (__proto__, constructor, toString, ...) because none
// of them can be a key of the context map.
func (e *Evaluator) evalName(node *types.ASTNode, input types.Context) (any, error) {
	v, ok := input[node.StrValue]
	if !ok {
		return nil, types.NewSecurityError("identifier %q is not defined in the context", node.StrValue)
	}
	return v, nil
}

// evalMember resolves expr.property. A null or non-object receiver yields
// the undefined marker rather than an error, so optional chains like
// element.component.doesNotExist degrade quietly. On an object receiver the
// same key-presence rule as identifier lookup applies: reading an absent key
// is a security violation.
func (e *Evaluator) evalMember(node *types.ASTNode, input types.Context) (any, error) {
	recv, err := e.evalNode(node.LHS, input)
	if err != nil {
		return nil, err
	}

	obj, ok := asObject(recv)
	if !ok {
		return types.UndefinedValue, nil
	}

	v, ok := obj[node.StrValue]
	if !ok {
		return nil, types.NewSecurityError("property %q is not a key of the object", node.StrValue)
	}
	return v, nil
}

// evalArray evaluates each element in order.
func (e *Evaluator) evalArray(node *types.ASTNode, input types.Context) (any, error) {
	elements := make([]any, len(node.Arguments))
	for i, arg := range node.Arguments {
		v, err := e.evalNode(arg, input)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return elements, nil
}

// evalCall enforces the method allow-list: only "includes" is permitted, and
// only on an array receiver. Membership is tested with strict equality
// against exactly one argument.
func (e *Evaluator) evalCall(node *types.ASTNode, input types.Context) (any, error) {
	if node.StrValue != allowedMethod {
		return nil, types.NewSecurityError("method %q is not allowed (only %q on arrays)", node.StrValue, allowedMethod)
	}

	recv, err := e.evalNode(node.LHS, input)
	if err != nil {
		return nil, err
	}

	items, ok := asArray(recv)
	if !ok {
		return nil, types.NewSecurityError("%q is only allowed on array values", allowedMethod)
	}

	if len(node.Arguments) != 1 {
		return nil, types.NewSecurityError("%q expects exactly one argument, got %d", allowedMethod, len(node.Arguments))
	}

	needle, err := e.evalNode(node.Arguments[0], input)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if strictEquals(item, needle) {
			return true, nil
		}
	}
	return false, nil
}

// evalBinary evaluates a binary operator. && and || short-circuit and return
// the deciding operand's value unchanged, not a coerced boolean.
func (e *Evaluator) evalBinary(node *types.ASTNode, input types.Context) (any, error) {
	switch node.StrValue {
	case "&&":
		left, err := e.evalNode(node.LHS, input)
		if err != nil {
			return nil, err
		}
		if !Truthy(left) {
			return left, nil
		}
		return e.evalNode(node.RHS, input)
	case "||":
		left, err := e.evalNode(node.LHS, input)
		if err != nil {
			return nil, err
		}
		if Truthy(left) {
			return left, nil
		}
		return e.evalNode(node.RHS, input)
	}

	left, err := e.evalNode(node.LHS, input)
	if err != nil {
		return nil, err
	}
	right, err := e.evalNode(node.RHS, input)
	if err != nil {
		return nil, err
	}

	switch node.StrValue {
	case "===":
		return strictEquals(left, right), nil
	case "!==":
		return !strictEquals(left, right), nil
	case "==":
		return looseEquals(left, right), nil
	case "!=":
		return !looseEquals(left, right), nil
	case "<", "<=", ">", ">=":
		return compareNumbers(node.StrValue, left, right), nil
	default:
		return nil, types.NewSyntaxError(-1, "unknown binary operator %q", node.StrValue)
	}
}

// evalUnary evaluates a unary operator. Only '!' exists in the grammar.
func (e *Evaluator) evalUnary(node *types.ASTNode, input types.Context) (any, error) {
	if node.StrValue != "!" {
		return nil, types.NewSyntaxError(-1, "unknown unary operator %q", node.StrValue)
	}

	operand, err := e.evalNode(node.LHS, input)
	if err != nil {
		return nil, err
	}
	return !Truthy(operand), nil
}

package jsonpath

import (
	"github.com/valentin001-77/jsonpath/internal/number"
	"github.com/valentin001-77/jsonpath/internal/stack"
)

// compareOperands applies a comparison operator to two operands. Total:
// every kind combination has a defined boolean result and nothing errors.
func compareOperands(left Operand, op compareOp, right Operand) bool {
	leftValue, leftNothing := reduceOperand(left)
	rightValue, rightNothing := reduceOperand(right)

	switch op {
	case opEq:
		return equalReduced(leftValue, leftNothing, rightValue, rightNothing)
	case opNe:
		return !equalReduced(leftValue, leftNothing, rightValue, rightNothing)
	default:
		if leftNothing || rightNothing {
			return false
		}
		return orderValues(leftValue, op, rightValue)
	}
}

// reduceOperand collapses an operand to a single value: nodelists through
// the one-node-else-Nothing rule, logicals to their boolean.
func reduceOperand(o Operand) (value any, isNothing bool) {
	switch o.kind {
	case operandValue:
		return o.value, false
	case operandNodes:
		if len(o.nodes) == 1 {
			return o.nodes[0].Value, false
		}
		return nil, true
	case operandLogical:
		return o.logical, false
	default:
		return nil, true
	}
}

func equalReduced(left any, leftNothing bool, right any, rightNothing bool) bool {
	if leftNothing || rightNothing {
		// Nothing equals only Nothing.
		return leftNothing && rightNothing
	}
	return Equal(left, right)
}

type valuePair struct {
	a any
	b any
}

// Equal reports deep equality under the engine's comparison algebra: values
// are equal only within the same JSON kind, numbers compare numerically
// across representations, arrays and objects compare structurally. The walk
// is driven by an explicit stack, not recursion.
func Equal(a, b any) bool {
	pending := stack.New[valuePair](4)
	pending.Push(valuePair{a: a, b: b})

	for {
		pair, ok := pending.Pop()
		if !ok {
			return true
		}

		if pair.a == nil || pair.b == nil {
			if pair.a != nil || pair.b != nil {
				return false
			}
			continue
		}

		if leftNum, ok := number.ToFloat64(pair.a); ok {
			rightNum, ok := number.ToFloat64(pair.b)
			if !ok || leftNum != rightNum {
				return false
			}
			continue
		}

		switch left := pair.a.(type) {
		case string:
			right, ok := pair.b.(string)
			if !ok || left != right {
				return false
			}
		case bool:
			right, ok := pair.b.(bool)
			if !ok || left != right {
				return false
			}
		case []any:
			right, ok := pair.b.([]any)
			if !ok || len(left) != len(right) {
				return false
			}
			for i := range left {
				pending.Push(valuePair{a: left[i], b: right[i]})
			}
		case map[string]any:
			right, ok := pair.b.(map[string]any)
			if !ok || len(left) != len(right) {
				return false
			}
			for key, leftValue := range left {
				rightValue, ok := right[key]
				if !ok {
					return false
				}
				pending.Push(valuePair{a: leftValue, b: rightValue})
			}
		default:
			return false
		}
	}
}

// orderValues defines ordering only between two numbers or two strings;
// every other combination is false. Byte order on valid UTF-8 strings
// coincides with code-point order.
func orderValues(left any, op compareOp, right any) bool {
	if leftNum, ok := number.ToFloat64(left); ok {
		rightNum, ok := number.ToFloat64(right)
		if !ok {
			return false
		}
		switch op {
		case opLt:
			return leftNum < rightNum
		case opLe:
			return leftNum <= rightNum
		case opGt:
			return leftNum > rightNum
		default:
			return leftNum >= rightNum
		}
	}

	leftStr, ok := left.(string)
	if !ok {
		return false
	}
	rightStr, ok := right.(string)
	if !ok {
		return false
	}

	switch op {
	case opLt:
		return leftStr < rightStr
	case opLe:
		return leftStr <= rightStr
	case opGt:
		return leftStr > rightStr
	default:
		return leftStr >= rightStr
	}
}

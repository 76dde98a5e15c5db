package jsonpath

import "github.com/valentin001-77/jsonpath/internal/number"

// evalFilter reduces a filter expression to a boolean for the given current
// node. And/Or short-circuit; only function execution can fail.
func (ev *evaluator) evalFilter(expr filterExpr, current Node) (bool, error) {
	switch e := expr.(type) {
	case andExpr:
		left, err := ev.evalFilter(e.left, current)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return ev.evalFilter(e.right, current)
	case orExpr:
		left, err := ev.evalFilter(e.left, current)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return ev.evalFilter(e.right, current)
	case notExpr:
		result, err := ev.evalFilter(e.operand, current)
		if err != nil {
			return false, err
		}
		return !result, nil
	case comparisonExpr:
		left, err := ev.resolveComparable(e.left, current)
		if err != nil {
			return false, err
		}
		right, err := ev.resolveComparable(e.right, current)
		if err != nil {
			return false, err
		}
		return compareOperands(left, e.op, right), nil
	case existsExpr:
		nodes, err := ev.evalFilterQuery(e.query, current)
		if err != nil {
			return false, err
		}
		return len(nodes) == 1 && truthy(nodes[0].Value), nil
	case callExpr:
		result, err := ev.execCall(e.call, current)
		if err != nil {
			return false, err
		}
		switch result.kind {
		case operandLogical:
			return result.logical, nil
		case operandNodes:
			return len(result.nodes) > 0, nil
		default:
			return false, evaluationErrorf(ErrFunctionArgument, "function %q result cannot be used as a condition", e.call.name)
		}
	default:
		return false, evaluationErrorf(ErrInternal, "unhandled filter expression %T", expr)
	}
}

// evalFilterQuery runs a query embedded in a filter: relative queries start
// from the current node, absolute ones from the document root.
func (ev *evaluator) evalFilterQuery(q filterQuery, current Node) (Nodelist, error) {
	origin := Node{Value: ev.root, Path: "$"}
	if q.relative {
		origin = current
	}
	return ev.selectSegments(q.segments, Nodelist{origin})
}

// resolveComparable reduces one side of a comparison to an Operand. An
// embedded query contributes its single node's value, or Nothing when it
// matches zero or several nodes.
func (ev *evaluator) resolveComparable(expr comparableExpr, current Node) (Operand, error) {
	switch e := expr.(type) {
	case literalExpr:
		return Value(e.value), nil
	case queryExpr:
		nodes, err := ev.evalFilterQuery(e.query, current)
		if err != nil {
			return Operand{}, err
		}
		if len(nodes) == 1 {
			return Value(nodes[0].Value), nil
		}
		return Nothing(), nil
	case funcExpr:
		return ev.execCall(e.call, current)
	default:
		return Operand{}, evaluationErrorf(ErrInternal, "unhandled comparable %T", expr)
	}
}

// execCall looks the function up, evaluates and converts its arguments to
// the declared parameter types, and invokes the executor.
func (ev *evaluator) execCall(call functionCall, current Node) (Operand, error) {
	fn, ok := ev.registry.lookup(call.name)
	if !ok {
		return Operand{}, evaluationErrorf(ErrUnknownFunction, "%q", call.name)
	}

	if len(call.args) != len(fn.Params) {
		return Operand{}, evaluationErrorf(ErrFunctionArity, "function %q takes %d arguments, got %d", call.name, len(fn.Params), len(call.args))
	}

	operands := make([]Operand, len(call.args))
	for i, arg := range call.args {
		operand, err := ev.resolveArgument(arg, fn.Params[i], current)
		if err != nil {
			return Operand{}, evaluationErrorf(ErrFunctionArgument, "function %q argument %d: %s", call.name, i+1, err)
		}
		operands[i] = operand
	}

	ctx := &FuncContext{
		Current: current,
		Root:    Node{Value: ev.root, Path: "$"},
	}
	return fn.Eval(ctx, operands)
}

// resolveArgument converts an evaluated argument to the declared parameter
// type: nodelists reduce to a value by the one-node rule and to a logical by
// the non-empty rule.
func (ev *evaluator) resolveArgument(arg comparableExpr, param FuncType, current Node) (Operand, error) {
	switch e := arg.(type) {
	case literalExpr:
		switch param {
		case ValueType:
			return Value(e.value), nil
		case LogicalType:
			if b, ok := e.value.(bool); ok {
				return Logical(b), nil
			}
			return Operand{}, evaluationErrorf(ErrFunctionArgument, "literal %v is not a logical value", e.value)
		default:
			return Operand{}, evaluationErrorf(ErrFunctionArgument, "literal cannot satisfy a nodes parameter")
		}
	case queryExpr:
		nodes, err := ev.evalFilterQuery(e.query, current)
		if err != nil {
			return Operand{}, err
		}
		switch param {
		case NodesType:
			return Nodes(nodes), nil
		case ValueType:
			if len(nodes) == 1 {
				return Value(nodes[0].Value), nil
			}
			return Nothing(), nil
		default:
			return Logical(len(nodes) > 0), nil
		}
	default:
		return Operand{}, evaluationErrorf(ErrFunctionArgument, "unsupported argument %T", arg)
	}
}

// truthy decides the existence test: true, non-zero numbers, non-empty
// strings and arrays, and every object count as truthy.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return true
	default:
		if f, ok := number.ToFloat64(v); ok {
			return f != 0
		}
		return true
	}
}

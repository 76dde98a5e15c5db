package jsonpath

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/valentin001-77/jsonpath/internal/iregexp"
)

// FuncType is the declared type of a function parameter or result.
type FuncType int

const (
	ValueType FuncType = iota + 1
	NodesType
	LogicalType
)

func (t FuncType) String() string {
	switch t {
	case ValueType:
		return "value"
	case NodesType:
		return "nodes"
	case LogicalType:
		return "logical"
	default:
		return "unknown"
	}
}

type operandKind int

const (
	operandNothing operandKind = iota
	operandValue
	operandNodes
	operandLogical
)

// Operand is the four-kind union the comparison engine and function layer
// operate on: Nothing, a single JSON value, a nodelist, or a boolean.
type Operand struct {
	kind    operandKind
	value   any
	nodes   Nodelist
	logical bool
}

// Nothing is the absent value, distinct from JSON null.
func Nothing() Operand {
	return Operand{kind: operandNothing}
}

// Value wraps a single JSON scalar or composite.
func Value(v any) Operand {
	return Operand{kind: operandValue, value: v}
}

// Nodes wraps a nodelist result.
func Nodes(nl Nodelist) Operand {
	return Operand{kind: operandNodes, nodes: nl}
}

// Logical wraps a boolean result.
func Logical(b bool) Operand {
	return Operand{kind: operandLogical, logical: b}
}

func (o Operand) IsNothing() bool {
	return o.kind == operandNothing
}

func (o Operand) AsValue() (any, bool) {
	return o.value, o.kind == operandValue
}

func (o Operand) AsNodes() (Nodelist, bool) {
	return o.nodes, o.kind == operandNodes
}

func (o Operand) AsLogical() (bool, bool) {
	return o.logical, o.kind == operandLogical
}

// FuncContext exposes the current and root nodes to function executors.
type FuncContext struct {
	Current Node
	Root    Node
}

// Function describes a filter function: its parameter-type signature, its
// declared result type, and its executor.
type Function struct {
	Name   string
	Params []FuncType
	Result FuncType
	Eval   func(ctx *FuncContext, args []Operand) (Operand, error)
}

// Regexp is the injected pattern-matching capability. FullMatch is anchored
// over the whole string; Search matches a substring.
type Regexp interface {
	FullMatch(pattern, input string) (bool, error)
	Search(pattern, input string) (bool, error)
}

// Registry maps function names to descriptors. It is consulted by the parser
// for standalone-use legality and by the evaluator for execution. Safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	funcs  map[string]*Function
	regexp Regexp
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegexp substitutes the pattern-matching engine used by the match and
// search built-ins.
func WithRegexp(engine Regexp) RegistryOption {
	return func(r *Registry) {
		r.regexp = engine
	}
}

// NewRegistry returns a registry pre-populated with the built-in functions
// length, count, match, search and value.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{funcs: make(map[string]*Function)}
	for _, opt := range opts {
		opt(r)
	}
	if r.regexp == nil {
		r.regexp = iregexp.New()
	}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a function descriptor.
func (r *Registry) Register(fn *Function) error {
	if fn == nil || fn.Name == "" {
		return fmt.Errorf("%w: function must have a name", ErrRegistration)
	}
	if fn.Eval == nil {
		return fmt.Errorf("%w: function %q must have an executor", ErrRegistration, fn.Name)
	}
	if fn.Result < ValueType || fn.Result > LogicalType {
		return fmt.Errorf("%w: function %q has an invalid result type", ErrRegistration, fn.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[fn.Name] = fn
	return nil
}

func (r *Registry) lookup(name string) (*Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

func (r *Registry) registerBuiltins() {
	builtins := []*Function{
		{
			Name:   "length",
			Params: []FuncType{ValueType},
			Result: ValueType,
			Eval:   evalLength,
		},
		{
			Name:   "count",
			Params: []FuncType{NodesType},
			Result: ValueType,
			Eval:   evalCount,
		},
		{
			Name:   "match",
			Params: []FuncType{ValueType, ValueType},
			Result: LogicalType,
			Eval:   r.matchEval(true),
		},
		{
			Name:   "search",
			Params: []FuncType{ValueType, ValueType},
			Result: LogicalType,
			Eval:   r.matchEval(false),
		},
		{
			Name:   "value",
			Params: []FuncType{NodesType},
			Result: ValueType,
			Eval:   evalValue,
		},
	}

	for _, fn := range builtins {
		r.funcs[fn.Name] = fn
	}
}

// evalLength counts Unicode scalar values for strings, elements for arrays
// and members for objects; anything else is Nothing.
func evalLength(_ *FuncContext, args []Operand) (Operand, error) {
	value, ok := args[0].AsValue()
	if !ok {
		return Nothing(), nil
	}

	switch v := value.(type) {
	case string:
		return Value(int64(utf8.RuneCountInString(v))), nil
	case []any:
		return Value(int64(len(v))), nil
	case map[string]any:
		return Value(int64(len(v))), nil
	default:
		return Nothing(), nil
	}
}

func evalCount(_ *FuncContext, args []Operand) (Operand, error) {
	nodes, _ := args[0].AsNodes()
	return Value(int64(len(nodes))), nil
}

func evalValue(_ *FuncContext, args []Operand) (Operand, error) {
	nodes, _ := args[0].AsNodes()
	if len(nodes) == 1 {
		return Value(nodes[0].Value), nil
	}
	return Nothing(), nil
}

// matchEval builds the executor shared by match (anchored) and search
// (substring). A non-string operand is false; an invalid pattern is an
// evaluation error.
func (r *Registry) matchEval(full bool) func(*FuncContext, []Operand) (Operand, error) {
	return func(_ *FuncContext, args []Operand) (Operand, error) {
		input, ok := stringOperand(args[0])
		if !ok {
			return Logical(false), nil
		}
		pattern, ok := stringOperand(args[1])
		if !ok {
			return Logical(false), nil
		}

		r.mu.RLock()
		engine := r.regexp
		r.mu.RUnlock()

		var (
			matched bool
			err     error
		)
		if full {
			matched, err = engine.FullMatch(pattern, input)
		} else {
			matched, err = engine.Search(pattern, input)
		}
		if err != nil {
			return Operand{}, evaluationErrorf(ErrInvalidPattern, "%s", err)
		}
		return Logical(matched), nil
	}
}

func stringOperand(o Operand) (string, bool) {
	value, ok := o.AsValue()
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

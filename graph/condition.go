package graph

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition gates edge propagation on the accumulated run state. Predicates
// must be pure and deterministic given the state snapshot; a condition that
// always evaluates false is a valid, intentional termination device.
type Condition interface {
	Evaluate(state map[string]any) (bool, error)
}

// FuncCondition adapts a plain Go predicate into a Condition.
type FuncCondition func(state map[string]any) bool

// Evaluate implements Condition.
func (f FuncCondition) Evaluate(state map[string]any) (bool, error) { return f(state), nil }

// ExprCondition evaluates an expr-lang expression against the run state.
// The state snapshot is exposed as the expression environment, e.g.
// "nodes.slack_agent.status == 'completed' && completed >= 1".
type ExprCondition struct {
	src     string
	program *vm.Program
}

// NewExprCondition compiles src eagerly so malformed expressions surface at
// construction time rather than mid-run.
func NewExprCondition(src string) (*ExprCondition, error) {
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", src, err)
	}
	return &ExprCondition{src: src, program: program}, nil
}

// Source returns the original expression text.
func (c *ExprCondition) Source() string { return c.src }

// Evaluate implements Condition.
func (c *ExprCondition) Evaluate(state map[string]any) (bool, error) {
	out, err := expr.Run(c.program, state)
	if err != nil {
		return false, fmt.Errorf("evaluate condition %q: %w", c.src, err)
	}
	return isTruthy(out), nil
}

// isTruthy converts an expression result to a boolean.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

package engine

import (
	"fmt"
	"strings"

	"remock.dev/pkg/remock/internal/model"
)

// CompileExpr compiles an expression source into a callable that evaluates it
// against a call context: identifiers bind to the call's named parameters
// first, then to receiver fields. This is how mock plans and the console turn
// `returns:` and `when:` text into replacement and predicate bodies.
func CompileExpr(src string) (model.Callable, error) {
	expr, err := parseExprSource(src)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}

	return func(call *model.Call) (any, error) {
		return evalExpr(expr, call)
	}, nil
}

// CompilePredicate compiles an expression into a predicate using engine
// truthiness.
func CompilePredicate(src string) (model.Predicate, error) {
	body, err := CompileExpr(src)
	if err != nil {
		return nil, err
	}

	return func(call *model.Call) (bool, error) {
		v, err := body(call)
		if err != nil {
			return false, err
		}

		return model.Truthy(v), nil
	}, nil
}

// ParseCallSpec parses an invocation spec of the form "Class.method(args)"
// where args are literal expressions. Used by the run workflow and console.
func ParseCallSpec(spec string) (className, methodName string, args []any, err error) {
	className, rest, found := strings.Cut(strings.TrimSpace(spec), ".")
	if !found || className == "" {
		return "", "", nil, fmt.Errorf("call %q: want Class.method(args)", spec)
	}

	expr, err := parseExprSource(rest)
	if err != nil {
		return "", "", nil, fmt.Errorf("call %q: %w", spec, err)
	}

	callExpr, ok := expr.(*CallExpr)
	if !ok {
		return "", "", nil, fmt.Errorf("call %q: want Class.method(args)", spec)
	}

	empty := &model.Call{}
	args = make([]any, len(callExpr.Args))

	for i, argExpr := range callExpr.Args {
		v, evalErr := evalExpr(argExpr, empty)
		if evalErr != nil {
			return "", "", nil, fmt.Errorf("call %q: argument %d: %w", spec, i+1, evalErr)
		}

		args[i] = v
	}

	return className, callExpr.Name, args, nil
}

package engine

import (
	"fmt"

	"remock.dev/pkg/remock/internal/model"
)

// Engine values are plain Go values: int64, float64, string, bool, nil, and
// *Object for instances. Truthiness lives in the model package so the mocking
// core can evaluate predicates without importing the engine.

func binaryOp(op tokenKind, left, right any) (any, error) {
	switch op {
	case tokAnd:
		return model.Truthy(left) && model.Truthy(right), nil
	case tokOr:
		return model.Truthy(left) || model.Truthy(right), nil
	case tokEq:
		return valuesEqual(left, right), nil
	case tokNotEq:
		return !valuesEqual(left, right), nil
	}

	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return nil, fmt.Errorf("cannot apply %s to string and %T", opName(op), right)
		}

		return stringOp(op, ls, rs)
	}

	return numericOp(op, left, right)
}

func stringOp(op tokenKind, left, right string) (any, error) {
	switch op {
	case tokPlus:
		return left + right, nil
	case tokLess:
		return left < right, nil
	case tokLessEq:
		return left <= right, nil
	case tokGreater:
		return left > right, nil
	case tokGreaterEq:
		return left >= right, nil
	}

	return nil, fmt.Errorf("operator %s not defined on strings", opName(op))
}

func numericOp(op tokenKind, left, right any) (any, error) {
	li, lIsInt := left.(int64)
	ri, rIsInt := right.(int64)

	if lIsInt && rIsInt {
		switch op {
		case tokPlus:
			return li + ri, nil
		case tokMinus:
			return li - ri, nil
		case tokStar:
			return li * ri, nil
		case tokSlash:
			if ri == 0 {
				return nil, fmt.Errorf("division by zero")
			}

			return li / ri, nil
		case tokPercent:
			if ri == 0 {
				return nil, fmt.Errorf("division by zero")
			}

			return li % ri, nil
		case tokLess:
			return li < ri, nil
		case tokLessEq:
			return li <= ri, nil
		case tokGreater:
			return li > ri, nil
		case tokGreaterEq:
			return li >= ri, nil
		}
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)

	if !lok || !rok {
		return nil, fmt.Errorf("cannot apply %s to %T and %T", opName(op), left, right)
	}

	switch op {
	case tokPlus:
		return lf + rf, nil
	case tokMinus:
		return lf - rf, nil
	case tokStar:
		return lf * rf, nil
	case tokSlash:
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}

		return lf / rf, nil
	case tokPercent:
		return nil, fmt.Errorf("operator %% not defined on floats")
	case tokLess:
		return lf < rf, nil
	case tokLessEq:
		return lf <= rf, nil
	case tokGreater:
		return lf > rf, nil
	case tokGreaterEq:
		return lf >= rf, nil
	}

	return nil, fmt.Errorf("unknown operator %s", opName(op))
}

func unaryOp(op tokenKind, value any) (any, error) {
	switch op {
	case tokBang:
		return !model.Truthy(value), nil
	case tokMinus:
		switch n := value.(type) {
		case int64:
			return -n, nil
		case float64:
			return -n, nil
		}

		return nil, fmt.Errorf("cannot negate %T", value)
	}

	return nil, fmt.Errorf("unknown unary operator %s", opName(op))
}

// valuesEqual compares engine values; ints and floats compare numerically.
func valuesEqual(left, right any) bool {
	if lf, ok := toFloat(left); ok {
		rf, ok := toFloat(right)
		return ok && lf == rf
	}

	return left == right
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}

	return 0, false
}

func opName(op tokenKind) string {
	names := map[tokenKind]string{
		tokPlus: "+", tokMinus: "-", tokStar: "*", tokSlash: "/", tokPercent: "%",
		tokEq: "==", tokNotEq: "!=", tokLess: "<", tokLessEq: "<=",
		tokGreater: ">", tokGreaterEq: ">=", tokAnd: "&&", tokOr: "||", tokBang: "!",
	}
	if n, ok := names[op]; ok {
		return n
	}

	return fmt.Sprintf("op(%d)", op)
}

// callBuiltin dispatches the engine's builtin functions.
func callBuiltin(name string, args []any) (any, bool, error) {
	switch name {
	case "str":
		if len(args) != 1 {
			return nil, true, fmt.Errorf("str expects 1 argument, got %d", len(args))
		}

		if s, ok := args[0].(string); ok {
			return s, true, nil
		}

		return model.FormatValue(args[0]), true, nil
	case "len":
		if len(args) != 1 {
			return nil, true, fmt.Errorf("len expects 1 argument, got %d", len(args))
		}

		s, ok := args[0].(string)
		if !ok {
			return nil, true, fmt.Errorf("len expects a string, got %T", args[0])
		}

		return int64(len(s)), true, nil
	}

	return nil, false, nil
}

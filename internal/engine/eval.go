package engine

import (
	"fmt"

	"remock.dev/pkg/remock/internal/model"
)

// methodImpl compiles a user-written method body into its original
// implementation. The closure reads the receiver from the call context, not
// from the defining site, so it can be rebound to any instance.
func methodImpl(decl *MethodDecl) model.Callable {
	return func(call *model.Call) (any, error) {
		value, _, err := execBlock(decl.Body, call)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", call.TypeName, call.MethodName, err)
		}

		return value, nil
	}
}

// accessorImpl is the body of a synthesized field accessor.
func accessorImpl(field string) model.Callable {
	return func(call *model.Call) (any, error) {
		if call.Receiver == nil {
			return nil, fmt.Errorf("accessor get_%s called without receiver", field)
		}

		v, _ := call.Receiver.GetField(field)

		return v, nil
	}
}

func execBlock(stmts []Stmt, call *model.Call) (value any, returned bool, err error) {
	for _, stmt := range stmts {
		value, returned, err = execStmt(stmt, call)
		if err != nil || returned {
			return value, returned, err
		}
	}

	return nil, false, nil
}

func execStmt(stmt Stmt, call *model.Call) (any, bool, error) {
	switch s := stmt.(type) {
	case *ReturnStmt:
		if s.Value == nil {
			return nil, true, nil
		}

		v, err := evalExpr(s.Value, call)

		return v, true, err
	case *AssignStmt:
		v, err := evalExpr(s.Value, call)
		if err != nil {
			return nil, false, err
		}

		if call.Receiver == nil {
			return nil, false, fmt.Errorf("line %d: assignment outside a method", s.Line)
		}

		if err := call.Receiver.SetField(s.Name, v); err != nil {
			return nil, false, fmt.Errorf("line %d: %w", s.Line, err)
		}

		return nil, false, nil
	case *IfStmt:
		cond, err := evalExpr(s.Cond, call)
		if err != nil {
			return nil, false, err
		}

		if model.Truthy(cond) {
			return execBlock(s.Then, call)
		}

		return execBlock(s.Else, call)
	case *ExprStmt:
		_, err := evalExpr(s.Value, call)

		return nil, false, err
	default:
		return nil, false, fmt.Errorf("unknown statement %T", stmt)
	}
}

func evalExpr(expr Expr, call *model.Call) (any, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *IdentExpr:
		if v, ok := call.Lookup(e.Name); ok {
			return v, nil
		}

		return nil, fmt.Errorf("line %d: undefined identifier %s", e.Line, e.Name)
	case *UnaryExpr:
		v, err := evalExpr(e.Value, call)
		if err != nil {
			return nil, err
		}

		return unaryOp(e.Op, v)
	case *BinaryExpr:
		left, err := evalExpr(e.Left, call)
		if err != nil {
			return nil, err
		}

		// Short-circuit, so predicates like `n != 0 && 10/n > 2` are safe.
		if e.Op == tokAnd && !model.Truthy(left) {
			return false, nil
		}

		if e.Op == tokOr && model.Truthy(left) {
			return true, nil
		}

		right, err := evalExpr(e.Right, call)
		if err != nil {
			return nil, err
		}

		return binaryOp(e.Op, left, right)
	case *CallExpr:
		args := make([]any, len(e.Args))

		for i, argExpr := range e.Args {
			v, err := evalExpr(argExpr, call)
			if err != nil {
				return nil, err
			}

			args[i] = v
		}

		if v, handled, err := callBuiltin(e.Name, args); handled {
			return v, err
		}

		receiver, ok := call.Receiver.(*Object)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown function %s", e.Line, e.Name)
		}

		// Sibling method call: dispatched through the slot table, so
		// overrides intercept internal calls too.
		return receiver.Call(e.Name, args...)
	default:
		return nil, fmt.Errorf("unknown expression %T", expr)
	}
}

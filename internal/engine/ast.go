package engine

// AST node types produced by the parser. The tree is deliberately small:
// class scripts only declare fields with literal-expression defaults and
// methods with statement bodies.

// ClassDecl is one `class Name { ... }` declaration.
type ClassDecl struct {
	Name    string
	Fields  []FieldDecl
	Methods []*MethodDecl
	Line    int
}

// FieldDecl is a `var name = expr` declaration. The default expression is
// evaluated with an empty scope at instantiation time.
type FieldDecl struct {
	Name    string
	Default Expr
	Line    int
}

// MethodDecl is a method declaration. Synthesized methods (field accessors
// emitted by the compiler) have no user-written body and are never rewritten
// by the mocking core.
type MethodDecl struct {
	Name        string
	Params      []string
	Body        []Stmt
	Returns     bool // body contains `return <expr>`
	Synthesized bool
	Line        int
}

// Stmt is a statement node.
type Stmt interface{ stmtNode() }

// AssignStmt writes a receiver field.
type AssignStmt struct {
	Name  string
	Value Expr
	Line  int
}

// ReturnStmt exits the method, optionally with a value.
type ReturnStmt struct {
	Value Expr // nil for bare `return`
	Line  int
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Value Expr
	Line  int
}

// IfStmt is `if cond { } [else ...]`; Else is either nil, a block, or a
// nested IfStmt wrapped in a single-element block.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Line int
}

func (*AssignStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*IfStmt) stmtNode()     {}

// Expr is an expression node.
type Expr interface{ exprNode() }

// LiteralExpr holds an int64, float64, string, bool, or nil value.
type LiteralExpr struct {
	Value any
	Line  int
}

// IdentExpr resolves against parameters first, then receiver fields.
type IdentExpr struct {
	Name string
	Line int
}

// CallExpr is `name(args)`: a builtin or a sibling method on the receiver,
// dispatched through the receiver's slot table.
type CallExpr struct {
	Name string
	Args []Expr
	Line int
}

// BinaryExpr applies an infix operator.
type BinaryExpr struct {
	Op    tokenKind
	Left  Expr
	Right Expr
	Line  int
}

// UnaryExpr applies prefix `-` or `!`.
type UnaryExpr struct {
	Op    tokenKind
	Value Expr
	Line  int
}

func (*LiteralExpr) exprNode() {}
func (*IdentExpr) exprNode()   {}
func (*CallExpr) exprNode()    {}
func (*BinaryExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}

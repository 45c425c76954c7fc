package ast

import (
	"github.com/google/closure-templates-sub001/internal/source"
)

// BinOp is a binary operator as written in template source.
type BinOp string

const (
	OpPlus   BinOp = "+"
	OpMinus  BinOp = "-"
	OpTimes  BinOp = "*"
	OpDiv    BinOp = "/"
	OpMod    BinOp = "%"
	OpEq     BinOp = "=="
	OpNe     BinOp = "!="
	OpLt     BinOp = "<"
	OpGt     BinOp = ">"
	OpLe     BinOp = "<="
	OpGe     BinOp = ">="
	OpAnd    BinOp = "and"
	OpOr     BinOp = "or"
	OpElvis  BinOp = "?:"
	OpNullCo BinOp = "??"
)

// IsArithmetic reports whether the operator is -, *, % (the '+' and '/'
// overloads have their own typing rules).
func (op BinOp) IsArithmetic() bool {
	return op == OpMinus || op == OpTimes || op == OpMod
}

// IsComparison reports whether the operator yields bool from two operands.
func (op BinOp) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return true
	}
	return false
}

// IsCoalescing covers both spellings of null-coalescing.
func (op BinOp) IsCoalescing() bool { return op == OpElvis || op == OpNullCo }

// NullLit represents the 'null' keyword
type NullLit struct {
	typeSlot
	source.Location
}

func (n *NullLit) INode()                {} // Implements Node interface
func (n *NullLit) Expr()                 {} // Expr is a marker interface for all expressions
func (n *NullLit) Loc() *source.Location { return &n.Location }

// UndefinedLit represents the 'undefined' keyword
type UndefinedLit struct {
	typeSlot
	source.Location
}

func (u *UndefinedLit) INode()                {} // Implements Node interface
func (u *UndefinedLit) Expr()                 {} // Expr is a marker interface for all expressions
func (u *UndefinedLit) Loc() *source.Location { return &u.Location }

// BoolLit represents 'true' or 'false'
type BoolLit struct {
	Value bool
	typeSlot
	source.Location
}

func (b *BoolLit) INode()                {} // Implements Node interface
func (b *BoolLit) Expr()                 {} // Expr is a marker interface for all expressions
func (b *BoolLit) Loc() *source.Location { return &b.Location }

// IntLit represents an integer literal
type IntLit struct {
	Value int64
	typeSlot
	source.Location
}

func (i *IntLit) INode()                {} // Implements Node interface
func (i *IntLit) Expr()                 {} // Expr is a marker interface for all expressions
func (i *IntLit) Loc() *source.Location { return &i.Location }

// FloatLit represents a floating-point literal
type FloatLit struct {
	Value float64
	typeSlot
	source.Location
}

func (f *FloatLit) INode()                {} // Implements Node interface
func (f *FloatLit) Expr()                 {} // Expr is a marker interface for all expressions
func (f *FloatLit) Loc() *source.Location { return &f.Location }

// StringLit represents a quoted string literal
type StringLit struct {
	Value string
	typeSlot
	source.Location
}

func (s *StringLit) INode()                {} // Implements Node interface
func (s *StringLit) Expr()                 {} // Expr is a marker interface for all expressions
func (s *StringLit) Loc() *source.Location { return &s.Location }

// VarRef represents a variable reference ($name or $ij.name). Defn is the
// binding slot the resolver fills; it stays nil for undefined variables.
type VarRef struct {
	Name     string
	Injected bool // written as $ij.name
	Defn     *VarDefn
	typeSlot
	source.Location
}

func (v *VarRef) INode()                {} // Implements Node interface
func (v *VarRef) Expr()                 {} // Expr is a marker interface for all expressions
func (v *VarRef) Loc() *source.Location { return &v.Location }

// BinaryExpr represents a binary expression
type BinaryExpr struct {
	X  Expression // left operand
	Op BinOp      // operator
	Y  Expression // right operand
	typeSlot
	source.Location
}

func (b *BinaryExpr) INode()                {} // Implements Node interface
func (b *BinaryExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// NotExpr represents 'not x'
type NotExpr struct {
	X Expression
	typeSlot
	source.Location
}

func (n *NotExpr) INode()                {} // Implements Node interface
func (n *NotExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (n *NotExpr) Loc() *source.Location { return &n.Location }

// NegExpr represents unary minus
type NegExpr struct {
	X Expression
	typeSlot
	source.Location
}

func (n *NegExpr) INode()                {} // Implements Node interface
func (n *NegExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (n *NegExpr) Loc() *source.Location { return &n.Location }

// CondExpr represents the ternary 'cond ? then : else'
type CondExpr struct {
	Cond Expression
	Then Expression
	Else Expression
	typeSlot
	source.Location
}

func (c *CondExpr) INode()                {} // Implements Node interface
func (c *CondExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (c *CondExpr) Loc() *source.Location { return &c.Location }

// FieldAccessExpr represents x.field or x?.field
type FieldAccessExpr struct {
	X        Expression
	Field    string
	NullSafe bool
	typeSlot
	source.Location
}

func (f *FieldAccessExpr) INode()                {} // Implements Node interface
func (f *FieldAccessExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (f *FieldAccessExpr) Loc() *source.Location { return &f.Location }

// ItemAccessExpr represents x[index] or x?[index]
type ItemAccessExpr struct {
	X        Expression
	Index    Expression
	NullSafe bool
	typeSlot
	source.Location
}

func (i *ItemAccessExpr) INode()                {} // Implements Node interface
func (i *ItemAccessExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (i *ItemAccessExpr) Loc() *source.Location { return &i.Location }

// FunctionCallExpr represents a built-in or plugin function call
type FunctionCallExpr struct {
	Name string
	Args []Expression
	typeSlot
	source.Location
}

func (f *FunctionCallExpr) INode()                {} // Implements Node interface
func (f *FunctionCallExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (f *FunctionCallExpr) Loc() *source.Location { return &f.Location }

// ListLit represents [a, b, c]
type ListLit struct {
	Items []Expression
	typeSlot
	source.Location
}

func (l *ListLit) INode()                {} // Implements Node interface
func (l *ListLit) Expr()                 {} // Expr is a marker interface for all expressions
func (l *ListLit) Loc() *source.Location { return &l.Location }

// MapEntry is one key: value pair of a map literal.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapLit represents map(k: v, ...)
type MapLit struct {
	Entries []MapEntry
	typeSlot
	source.Location
}

func (m *MapLit) INode()                {} // Implements Node interface
func (m *MapLit) Expr()                 {} // Expr is a marker interface for all expressions
func (m *MapLit) Loc() *source.Location { return &m.Location }

// RecordEntry is one field of a record literal.
type RecordEntry struct {
	Name  string
	Value Expression
}

// RecordLit represents record(a: 1, b: 'x')
type RecordLit struct {
	Fields []RecordEntry
	typeSlot
	source.Location
}

func (r *RecordLit) INode()                {} // Implements Node interface
func (r *RecordLit) Expr()                 {} // Expr is a marker interface for all expressions
func (r *RecordLit) Loc() *source.Location { return &r.Location }

// GroupExpr represents a parenthesized expression
type GroupExpr struct {
	X Expression
	typeSlot
	source.Location
}

func (g *GroupExpr) INode()                {} // Implements Node interface
func (g *GroupExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (g *GroupExpr) Loc() *source.Location { return &g.Location }

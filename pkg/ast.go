package minipl

import "math/big"

// A program is an ordered sequence of statements. Statements own their
// expressions and sub-statements outright; the parser keeps no
// reference to a statement after emitting it.
type Statement interface{}

type Declaration struct {
	Name string
	Type Type
	// Value is the optional initializer; nil when the declaration has
	// none.
	Value Expression
}

type Assignment struct {
	Name  string
	Value Expression
}

type For struct {
	Name string
	From Expression
	To   Expression
	Body []Statement
}

type Read struct {
	Name string
}

type Print struct {
	Value Expression
}

type Assert struct {
	Value Expression
}

type Type int

const (
	TypeInt Type = iota
	TypeString
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Expression is a singleton operand, a unary application, or a single
// binary application. There is no operator precedence; nesting is
// expressed through parenthesized operands.
type Expression interface{}

type BinaryOp string

const (
	BinaryPlus     BinaryOp = "+"
	BinaryMinus    BinaryOp = "-"
	BinaryMultiply BinaryOp = "*"
	BinaryDivide   BinaryOp = "/"
	BinaryLessThan BinaryOp = "<"
	BinaryEquals   BinaryOp = "="
	BinaryAnd      BinaryOp = "&"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Operand
	Op2       Operand
}

type UnaryOp string

const (
	UnaryNot UnaryOp = "!"
)

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Operand
}

type SingletonExpr struct {
	Operand Operand
}

// Operand is an atomic value or a parenthesized sub-expression acting
// as one.
type Operand interface{}

type IntOperand struct {
	Value *big.Int
}

type StringOperand struct {
	Value string
}

type VariableOperand struct {
	Name string
}

// BoolOperand is a payload-free placeholder; no token currently
// produces it.
type BoolOperand struct{}

type ExprOperand struct {
	Expr Expression
}

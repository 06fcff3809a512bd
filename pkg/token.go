package minipl

import (
	"fmt"
	"math/big"
)

type TokenType uint64

const (
	TokenIdentifier TokenType = iota
	TokenString
	TokenNumber

	TokenOpenParentheses
	TokenCloseParentheses
	TokenSemicolon
	TokenColon
	TokenAssignment
	TokenRange

	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenLessThan
	TokenEquals
	TokenAnd
	TokenNot

	TokenVar
	TokenFor
	TokenEnd
	TokenIn
	TokenDo
	TokenRead
	TokenPrint
	TokenIntType
	TokenStringType
	TokenBoolType
	TokenAssert
)

var keywordTable = map[string]TokenType{
	"var":    TokenVar,
	"for":    TokenFor,
	"end":    TokenEnd,
	"in":     TokenIn,
	"do":     TokenDo,
	"read":   TokenRead,
	"print":  TokenPrint,
	"int":    TokenIntType,
	"string": TokenStringType,
	"bool":   TokenBoolType,
	"assert": TokenAssert,
}

var tokenNames = map[TokenType]string{
	TokenOpenParentheses:  "(",
	TokenCloseParentheses: ")",
	TokenSemicolon:        ";",
	TokenColon:            ":",
	TokenAssignment:       ":=",
	TokenRange:            "..",
	TokenPlus:             "+",
	TokenMinus:            "-",
	TokenMultiply:         "*",
	TokenDivide:           "/",
	TokenLessThan:         "<",
	TokenEquals:           "=",
	TokenAnd:              "&",
	TokenNot:              "!",
	TokenVar:              "var",
	TokenFor:              "for",
	TokenEnd:              "end",
	TokenIn:               "in",
	TokenDo:               "do",
	TokenRead:             "read",
	TokenPrint:            "print",
	TokenIntType:          "int",
	TokenStringType:       "string",
	TokenBoolType:         "bool",
	TokenAssert:           "assert",
}

// Token is a single lexeme classified by the scanner. Value carries
// identifier text and the decoded contents of string literals; Num
// carries the value of numeric literals. Both are zero for every other
// token type.
type Token struct {
	Typ   TokenType
	Value string
	Num   *big.Int
}

func (t Token) String() string {
	switch t.Typ {
	case TokenIdentifier:
		return fmt.Sprintf("identifier %q", t.Value)
	case TokenString:
		return fmt.Sprintf("string literal %q", t.Value)
	case TokenNumber:
		return fmt.Sprintf("number %v", t.Num)
	default:
		if name, ok := tokenNames[t.Typ]; ok {
			return fmt.Sprintf("'%s'", name)
		}

		return "unknown token"
	}
}

// isExprToken reports whether the token may appear inside an expression.
func (t Token) isExprToken() bool {
	switch t.Typ {
	case TokenOpenParentheses, TokenCloseParentheses,
		TokenIdentifier, TokenString, TokenNumber,
		TokenPlus, TokenMinus, TokenMultiply, TokenDivide,
		TokenLessThan, TokenEquals, TokenAnd, TokenNot:
		return true
	default:
		return false
	}
}

package minipl

// parseExpression turns the token slice of a single expression into an
// Expression. The grammar is deliberately flat: a lone operand, a unary
// operator applied to an operand, or exactly one binary application.
// Anything deeper must be parenthesized, which recurses through
// parseOperand.
func parseExpression(toks []Token) (Expression, error) {
	if len(toks) == 0 {
		return nil, syntaxErrorf("empty expression")
	}

	if toks[0].Typ == TokenNot {
		opnd, n, err := parseOperand(toks[1:])
		if err != nil {
			return nil, err
		}

		if 1+n != len(toks) {
			return nil, syntaxErrorf("unexpected %v after unary expression", toks[1+n])
		}

		return &UnaryExpr{
			Operation: UnaryNot,
			Operand:   opnd,
		}, nil
	}

	lhs, n, err := parseOperand(toks)
	if err != nil {
		return nil, err
	}

	if n == len(toks) {
		return &SingletonExpr{Operand: lhs}, nil
	}

	op, ok := binaryOperatorTable[toks[n].Typ]
	if !ok {
		return nil, syntaxErrorf("expected a binary operator, found %v", toks[n])
	}

	rhs, m, err := parseOperand(toks[n+1:])
	if err != nil {
		return nil, err
	}

	if n+1+m != len(toks) {
		return nil, syntaxErrorf("unexpected %v after binary expression", toks[n+1+m])
	}

	return &BinaryExpr{
		Operation: op,
		Op1:       lhs,
		Op2:       rhs,
	}, nil
}

var binaryOperatorTable = map[TokenType]BinaryOp{
	TokenPlus:     BinaryPlus,
	TokenMinus:    BinaryMinus,
	TokenMultiply: BinaryMultiply,
	TokenDivide:   BinaryDivide,
	TokenLessThan: BinaryLessThan,
	TokenEquals:   BinaryEquals,
	TokenAnd:      BinaryAnd,
}

// parseOperand reads one operand from the front of toks and reports how
// many tokens it consumed. A parenthesized span counts as a single
// operand owning the recursive parse of its interior.
func parseOperand(toks []Token) (Operand, int, error) {
	if len(toks) == 0 {
		return nil, 0, syntaxErrorf("missing operand")
	}

	switch t := toks[0]; t.Typ {
	case TokenNumber:
		return &IntOperand{Value: t.Num}, 1, nil
	case TokenString:
		return &StringOperand{Value: t.Value}, 1, nil
	case TokenIdentifier:
		return &VariableOperand{Name: t.Value}, 1, nil
	case TokenOpenParentheses:
		end, err := matchParenthesis(toks)
		if err != nil {
			return nil, 0, err
		}

		inner, err := parseExpression(toks[1:end])
		if err != nil {
			return nil, 0, err
		}

		return &ExprOperand{Expr: inner}, end + 1, nil
	default:
		return nil, 0, syntaxErrorf("%v cannot start an operand", t)
	}
}

// matchParenthesis returns the index of the parenthesis closing the one
// at toks[0].
func matchParenthesis(toks []Token) (int, error) {
	depth := 0
	for i, t := range toks {
		switch t.Typ {
		case TokenOpenParentheses:
			depth++
		case TokenCloseParentheses:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, syntaxErrorf("unbalanced parentheses in expression")
}

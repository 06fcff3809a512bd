package minipl

import "errors"

// parseState is the current state of the parser automaton: either
// waiting for the first token of a statement, or inside one of the
// per-statement sub-machines.
type parseState int

const (
	stateNormal parseState = iota
	stateDeclaration
	stateAssignment
	stateFor
	stateRead
	statePrint
	stateAssert
	stateEndFor
	stateExpectSemicolon
)

// loopFrame is one partially built for loop: its parsed header and the
// body statements accumulated so far.
type loopFrame struct {
	name string
	from Expression
	to   Expression
	body []Statement
}

// Parser converts a token stream into a statement stream. Completed
// statements are routed to the output sink, or to the body of the
// innermost open for loop when one exists.
type Parser struct {
	state parseState

	// buf holds the tokens of the statement currently being parsed;
	// loops is the LIFO of open for loops.
	buf   []Token
	loops []loopFrame

	// rangeAt remembers the buffer position of the '..' inside a for
	// header; zero means none has been seen.
	rangeAt int

	// depth tracks parenthesis nesting inside an assert statement so
	// the assert's own parentheses are not confused with expression
	// parentheses.
	depth int
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseTokens parses an in-memory token slice into a statement slice.
func ParseTokens(toks []Token) ([]Statement, error) {
	out := NewBuffer[Statement]()
	if err := NewParser().Run(NewBuffer(toks...), out); err != nil {
		return nil, err
	}

	return out.Items(), nil
}

// Run consumes the whole token stream and pushes top-level statements
// into out in source order. It returns a SyntaxError on malformed input
// and nil when out is dropped by its consumer.
func (p *Parser) Run(in Source[Token], out Sink[Statement]) error {
	for {
		tok, ok := in.Take()
		if !ok {
			return p.finish()
		}

		if err := p.step(tok, out); err != nil {
			if errors.Is(err, errClosed) {
				return nil
			}

			return err
		}
	}
}

func (p *Parser) step(tok Token, out Sink[Statement]) error {
	switch p.state {
	case stateNormal:
		return p.stepNormal(tok)
	case stateDeclaration:
		return p.stepDeclaration(tok, out)
	case stateAssignment:
		return p.stepAssignment(tok, out)
	case stateFor:
		return p.stepFor(tok)
	case stateRead:
		return p.stepRead(tok, out)
	case statePrint:
		return p.stepPrint(tok, out)
	case stateAssert:
		return p.stepAssert(tok, out)
	case stateEndFor:
		return p.stepEndFor(tok, out)
	case stateExpectSemicolon:
		return p.stepExpectSemicolon(tok)
	}

	return nil
}

// finish checks the terminal condition: end of input is only valid
// between statements with every for loop closed.
func (p *Parser) finish() error {
	if len(p.loops) != 0 {
		return syntaxErrorf("unexpected end of input: %d open for loop(s)", len(p.loops))
	}

	if p.state != stateNormal {
		return syntaxErrorf("unexpected end of input inside a statement")
	}

	return nil
}

func (p *Parser) stepNormal(tok Token) error {
	switch tok.Typ {
	case TokenIdentifier:
		p.buf = append(p.buf, tok)
		p.state = stateAssignment
	case TokenVar:
		p.state = stateDeclaration
	case TokenFor:
		p.state = stateFor
	case TokenRead:
		p.state = stateRead
	case TokenPrint:
		p.state = statePrint
	case TokenAssert:
		p.state = stateAssert
	case TokenEnd:
		p.state = stateEndFor
	case TokenSemicolon:
		// Empty statements are allowed and produce nothing.
	default:
		return syntaxErrorf("a statement cannot start with %v", tok)
	}

	return nil
}

// "var" <ident> ":" <type> [ ":=" <expr> ] ";"
func (p *Parser) stepDeclaration(tok Token, out Sink[Statement]) error {
	switch len(p.buf) {
	case 0:
		if tok.Typ != TokenIdentifier {
			return syntaxErrorf("expected an identifier after 'var', found %v", tok)
		}
	case 1:
		if tok.Typ != TokenColon {
			return syntaxErrorf("expected ':', found %v", tok)
		}
	case 2:
		if _, ok := typeTable[tok.Typ]; !ok {
			return syntaxErrorf("expected a type, found %v", tok)
		}
	case 3:
		switch tok.Typ {
		case TokenSemicolon:
			p.state = stateNormal
			return p.route(&Declaration{
				Name: p.buf[0].Value,
				Type: typeTable[p.buf[2].Typ],
			}, out)
		case TokenAssignment:
		default:
			return syntaxErrorf("expected ':=' or ';', found %v", tok)
		}
	default:
		if tok.Typ == TokenSemicolon {
			value, err := parseExpression(p.buf[4:])
			if err != nil {
				return err
			}

			p.state = stateNormal
			return p.route(&Declaration{
				Name:  p.buf[0].Value,
				Type:  typeTable[p.buf[2].Typ],
				Value: value,
			}, out)
		}

		if !tok.isExprToken() {
			return syntaxErrorf("%v is not valid in an expression", tok)
		}
	}

	p.buf = append(p.buf, tok)
	return nil
}

var typeTable = map[TokenType]Type{
	TokenIntType:    TypeInt,
	TokenStringType: TypeString,
	TokenBoolType:   TypeBool,
}

// <ident> ":=" <expr> ";" — the leading identifier is already buffered.
func (p *Parser) stepAssignment(tok Token, out Sink[Statement]) error {
	if len(p.buf) == 1 {
		if tok.Typ != TokenAssignment {
			return syntaxErrorf("expected ':=', found %v", tok)
		}

		p.buf = append(p.buf, tok)
		return nil
	}

	if tok.Typ == TokenSemicolon {
		value, err := parseExpression(p.buf[2:])
		if err != nil {
			return err
		}

		p.state = stateNormal
		return p.route(&Assignment{
			Name:  p.buf[0].Value,
			Value: value,
		}, out)
	}

	if !tok.isExprToken() {
		return syntaxErrorf("%v is not valid in an expression", tok)
	}

	p.buf = append(p.buf, tok)
	return nil
}

// "for" <ident> "in" <expr> ".." <expr> "do" — on 'do' the header is
// pushed as a new open loop and parsing returns to normal.
func (p *Parser) stepFor(tok Token) error {
	switch len(p.buf) {
	case 0:
		if tok.Typ != TokenIdentifier {
			return syntaxErrorf("expected an identifier after 'for', found %v", tok)
		}
	case 1:
		if tok.Typ != TokenIn {
			return syntaxErrorf("expected 'in', found %v", tok)
		}
	default:
		switch tok.Typ {
		case TokenDo:
			if p.rangeAt == 0 {
				return syntaxErrorf("missing '..' in for loop header")
			}

			from, err := parseExpression(p.buf[2:p.rangeAt])
			if err != nil {
				return err
			}

			to, err := parseExpression(p.buf[p.rangeAt+1:])
			if err != nil {
				return err
			}

			p.loops = append(p.loops, loopFrame{
				name: p.buf[0].Value,
				from: from,
				to:   to,
			})

			p.buf = p.buf[:0]
			p.rangeAt = 0
			p.state = stateNormal

			return nil
		case TokenRange:
			if p.rangeAt != 0 {
				return syntaxErrorf("found more than one '..' in a for loop header")
			}

			p.rangeAt = len(p.buf)
		default:
			if !tok.isExprToken() {
				return syntaxErrorf("%v is not valid in a for loop header", tok)
			}
		}
	}

	p.buf = append(p.buf, tok)
	return nil
}

// "read" <ident> ";"
func (p *Parser) stepRead(tok Token, out Sink[Statement]) error {
	if len(p.buf) == 0 {
		if tok.Typ != TokenIdentifier {
			return syntaxErrorf("expected an identifier after 'read', found %v", tok)
		}

		p.buf = append(p.buf, tok)
		return nil
	}

	if tok.Typ != TokenSemicolon {
		return syntaxErrorf("expected ';', found %v", tok)
	}

	p.state = stateNormal
	return p.route(&Read{Name: p.buf[0].Value}, out)
}

// "print" <expr> ";"
func (p *Parser) stepPrint(tok Token, out Sink[Statement]) error {
	if tok.Typ == TokenSemicolon {
		value, err := parseExpression(p.buf)
		if err != nil {
			return err
		}

		p.state = stateNormal
		return p.route(&Print{Value: value}, out)
	}

	if !tok.isExprToken() {
		return syntaxErrorf("%v is not valid in an expression", tok)
	}

	p.buf = append(p.buf, tok)
	return nil
}

// "assert" "(" <expr> ")" ";"
func (p *Parser) stepAssert(tok Token, out Sink[Statement]) error {
	if len(p.buf) == 0 {
		if tok.Typ != TokenOpenParentheses {
			return syntaxErrorf("expected '(' after 'assert', found %v", tok)
		}

		p.depth = 1
		p.buf = append(p.buf, tok)

		return nil
	}

	if p.depth == 0 {
		if tok.Typ != TokenSemicolon {
			return syntaxErrorf("expected ';', found %v", tok)
		}

		value, err := parseExpression(p.buf[1 : len(p.buf)-1])
		if err != nil {
			return err
		}

		p.state = stateNormal
		return p.route(&Assert{Value: value}, out)
	}

	switch tok.Typ {
	case TokenOpenParentheses:
		p.depth++
	case TokenCloseParentheses:
		p.depth--
	default:
		if !tok.isExprToken() {
			return syntaxErrorf("%v is not valid in an expression", tok)
		}
	}

	p.buf = append(p.buf, tok)
	return nil
}

// "end" "for" — the innermost open loop is closed, built into a For
// statement and routed like any other completed statement, so nested
// loops land in the enclosing loop's body.
func (p *Parser) stepEndFor(tok Token, out Sink[Statement]) error {
	if tok.Typ != TokenFor {
		return syntaxErrorf("expected 'for' after 'end', found %v", tok)
	}

	if len(p.loops) == 0 {
		return syntaxErrorf("'end for' without an open for loop")
	}

	frame := p.loops[len(p.loops)-1]
	p.loops = p.loops[:len(p.loops)-1]

	p.state = stateExpectSemicolon
	return p.route(&For{
		Name: frame.name,
		From: frame.from,
		To:   frame.to,
		Body: frame.body,
	}, out)
}

func (p *Parser) stepExpectSemicolon(tok Token) error {
	if tok.Typ != TokenSemicolon {
		return syntaxErrorf("expected ';', found %v", tok)
	}

	p.state = stateNormal
	return nil
}

// route hands a completed statement to the output sink, or to the body
// of the innermost open for loop when one exists.
func (p *Parser) route(stmt Statement, out Sink[Statement]) error {
	p.buf = p.buf[:0]

	if len(p.loops) == 0 {
		if !out.Put(stmt) {
			return errClosed
		}

		return nil
	}

	top := &p.loops[len(p.loops)-1]
	top.body = append(top.body, stmt)

	return nil
}

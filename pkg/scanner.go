package minipl

import (
	"bufio"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanMode is the current state of the scanner automaton. The driver
// loop dispatches on it explicitly so that the state is a plain value
// rather than a function reference.
type scanMode int

const (
	scanNormal scanMode = iota
	scanString
	scanEscape
	scanNumber
	scanWord
	scanSlash
	scanColon
	scanDot
	scanLineComment
	scanBlockComment
)

// Scanner converts a character stream into a stream of tokens. It is a
// finite state automaton driven one rune at a time; tokens are pushed
// into a Sink as soon as they are complete.
type Scanner struct {
	reader *bufio.Reader
	mode   scanMode

	// buf holds the characters of the token currently being built;
	// escape holds the characters of a multi-character escape sequence.
	buf    strings.Builder
	escape []rune

	// Block comment bookkeeping: nesting depth and the last '*' or '/'
	// seen that may still pair with the next rune.
	depth int
	prev  rune
}

func NewScanner(reader io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(reader),
	}
}

// ScanString tokenizes a complete source string.
func ScanString(src string) ([]Token, error) {
	out := NewBuffer[Token]()
	if err := NewScanner(strings.NewReader(src)).Run(out); err != nil {
		return nil, err
	}

	return out.Items(), nil
}

// Run consumes the whole character stream and pushes the tokens into
// out in source order. It returns a LexError on malformed input and nil
// when out is dropped by its consumer.
func (s *Scanner) Run(out Sink[Token]) error {
	for {
		r, _, err := s.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				err = s.finish(out)
			}

			if errors.Is(err, errClosed) {
				return nil
			}

			return err
		}

		if err := s.step(r, out); err != nil {
			if errors.Is(err, errClosed) {
				return nil
			}

			return err
		}
	}
}

func (s *Scanner) step(r rune, out Sink[Token]) error {
	switch s.mode {
	case scanNormal:
		return s.normal(r, out)
	case scanString:
		return s.stringLiteral(r, out)
	case scanEscape:
		return s.escapeSequence(r, out)
	case scanNumber:
		return s.number(r, out)
	case scanWord:
		return s.word(r, out)
	case scanSlash:
		return s.slash(r, out)
	case scanColon:
		return s.colon(r, out)
	case scanDot:
		return s.dot(r, out)
	case scanLineComment:
		s.lineComment(r)
		return nil
	case scanBlockComment:
		s.blockComment(r)
		return nil
	}

	return nil
}

// finish handles end of input: a pending word or number is flushed as a
// final token, an unfinished literal or comment is a lexical error.
func (s *Scanner) finish(out Sink[Token]) error {
	switch s.mode {
	case scanNumber:
		return s.flushNumber(out)
	case scanWord:
		return s.flushWord(out)
	case scanSlash:
		return s.emit(out, Token{Typ: TokenDivide})
	case scanColon:
		return s.emit(out, Token{Typ: TokenColon})
	case scanDot:
		return lexErrorf("unexpected end of input after '.'")
	case scanString, scanEscape:
		return lexErrorf("unterminated string literal")
	case scanBlockComment:
		return lexErrorf("unterminated block comment")
	default:
		return nil
	}
}

func (s *Scanner) normal(r rune, out Sink[Token]) error {
	switch r {
	case ' ', '\t', '\n', '\r':
		return nil
	case '(':
		return s.emit(out, Token{Typ: TokenOpenParentheses})
	case ')':
		return s.emit(out, Token{Typ: TokenCloseParentheses})
	case ';':
		return s.emit(out, Token{Typ: TokenSemicolon})
	case '+':
		return s.emit(out, Token{Typ: TokenPlus})
	case '-':
		return s.emit(out, Token{Typ: TokenMinus})
	case '*':
		return s.emit(out, Token{Typ: TokenMultiply})
	case '<':
		return s.emit(out, Token{Typ: TokenLessThan})
	case '=':
		return s.emit(out, Token{Typ: TokenEquals})
	case '&':
		return s.emit(out, Token{Typ: TokenAnd})
	case '!':
		return s.emit(out, Token{Typ: TokenNot})
	case '"':
		s.mode = scanString
		return nil
	case '/':
		s.mode = scanSlash
		return nil
	case ':':
		s.mode = scanColon
		return nil
	case '.':
		s.mode = scanDot
		return nil
	}

	switch {
	case '0' <= r && r <= '9':
		s.buf.WriteRune(r)
		s.mode = scanNumber
	case isWordRune(r):
		s.buf.WriteRune(r)
		s.mode = scanWord
	default:
		return lexErrorf("invalid symbol '%c'", r)
	}

	return nil
}

func (s *Scanner) number(r rune, out Sink[Token]) error {
	if '0' <= r && r <= '9' {
		s.buf.WriteRune(r)
		return nil
	}

	if err := s.flushNumber(out); err != nil {
		return err
	}

	// The terminating character is not part of the literal; hand it back
	// to normal scanning.
	return s.normal(r, out)
}

func (s *Scanner) word(r rune, out Sink[Token]) error {
	if isWordRune(r) {
		s.buf.WriteRune(r)
		return nil
	}

	if err := s.flushWord(out); err != nil {
		return err
	}

	return s.normal(r, out)
}

func (s *Scanner) stringLiteral(r rune, out Sink[Token]) error {
	switch r {
	case '\\':
		s.mode = scanEscape
	case '"':
		err := s.emit(out, Token{Typ: TokenString, Value: s.buf.String()})
		s.buf.Reset()
		s.mode = scanNormal

		return err
	default:
		s.buf.WriteRune(r)
	}

	return nil
}

func (s *Scanner) escapeSequence(r rune, out Sink[Token]) error {
	if len(s.escape) == 0 {
		switch r {
		case 'a':
			s.buf.WriteRune(0x07)
		case 'b':
			s.buf.WriteRune(0x08)
		case 'f':
			s.buf.WriteRune(0x0C)
		case 'n':
			s.buf.WriteRune('\n')
		case 'r':
			s.buf.WriteRune('\r')
		case 't':
			s.buf.WriteRune('\t')
		case 'v':
			s.buf.WriteRune(0x0B)
		case '\\', '\'', '"', '?':
			s.buf.WriteRune(r)
		case 'x', 'u', 'U', '0', '1', '2', '3', '4', '5', '6', '7':
			// Multi-character escape: remember the kind and keep reading.
			s.escape = append(s.escape, r)
			return nil
		default:
			return lexErrorf("unsupported escape \\%c", r)
		}

		s.mode = scanString
		return nil
	}

	switch s.escape[0] {
	case 'x':
		return s.hexEscape(r, out)
	case 'u', 'U':
		return s.unicodeEscape(r)
	default:
		return s.octalEscape(r, out)
	}
}

// hexEscape accumulates \xHH. One or two hex digits are accepted; the
// first non-hex character terminates the escape and is re-processed as
// string-literal input.
func (s *Scanner) hexEscape(r rune, out Sink[Token]) error {
	if isHexDigit(r) {
		if len(s.escape) > 2 {
			return lexErrorf("hex escapes longer than one byte are not supported")
		}

		s.escape = append(s.escape, r)
		return nil
	}

	if len(s.escape) < 2 {
		return lexErrorf("at least one hex digit is needed after \\x")
	}

	v, err := strconv.ParseUint(string(s.escape[1:]), 16, 8)
	if err != nil {
		return lexErrorf("invalid hex escape \\%s", string(s.escape))
	}

	s.buf.WriteRune(rune(v))
	s.escape = s.escape[:0]
	s.mode = scanString

	return s.stringLiteral(r, out)
}

// unicodeEscape accumulates \uHHHH or \UHHHHHHHH. Exactly 4 (8) hex
// digits are required and decode to a single code point.
func (s *Scanner) unicodeEscape(r rune) error {
	size := 4
	if s.escape[0] == 'U' {
		size = 8
	}

	if !isHexDigit(r) {
		return lexErrorf("'%c' is not a valid hex digit: \\%c requires %d hex digits after it", r, s.escape[0], size)
	}

	s.escape = append(s.escape, r)
	if len(s.escape) < size+1 {
		return nil
	}

	v, err := strconv.ParseUint(string(s.escape[1:]), 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return lexErrorf("\\%s is not a valid Unicode code point", string(s.escape))
	}

	s.buf.WriteRune(rune(v))
	s.escape = s.escape[:0]
	s.mode = scanString

	return nil
}

// octalEscape accumulates \o, \oo or \ooo. The first non-octal character
// terminates the escape and is re-processed as string-literal input.
func (s *Scanner) octalEscape(r rune, out Sink[Token]) error {
	if '0' <= r && r <= '7' && len(s.escape) < 3 {
		s.escape = append(s.escape, r)
		return nil
	}

	v, err := strconv.ParseUint(string(s.escape), 8, 16)
	if err != nil || v > 0xFF {
		return lexErrorf("octal escape \\%s is out of range", string(s.escape))
	}

	s.buf.WriteRune(rune(v))
	s.escape = s.escape[:0]
	s.mode = scanString

	return s.stringLiteral(r, out)
}

func (s *Scanner) slash(r rune, out Sink[Token]) error {
	switch r {
	case '/':
		s.mode = scanLineComment
	case '*':
		s.depth = 1
		s.prev = 0
		s.mode = scanBlockComment
	default:
		if err := s.emit(out, Token{Typ: TokenDivide}); err != nil {
			return err
		}

		s.mode = scanNormal
		return s.normal(r, out)
	}

	return nil
}

func (s *Scanner) colon(r rune, out Sink[Token]) error {
	if r == '=' {
		s.mode = scanNormal
		return s.emit(out, Token{Typ: TokenAssignment})
	}

	if err := s.emit(out, Token{Typ: TokenColon}); err != nil {
		return err
	}

	s.mode = scanNormal
	return s.normal(r, out)
}

func (s *Scanner) dot(r rune, out Sink[Token]) error {
	if r != '.' {
		return lexErrorf("unexpected character '%c' after '.'", r)
	}

	s.mode = scanNormal
	return s.emit(out, Token{Typ: TokenRange})
}

func (s *Scanner) lineComment(r rune) {
	if r == '\n' {
		s.mode = scanNormal
	}
}

// blockComment tracks nested /* ... */ pairs. Pairing is maximal-munch
// on the last significant rune, so '/*/' neither opens nor closes a
// second level.
func (s *Scanner) blockComment(r rune) {
	switch {
	case r == '*' && s.prev == '/':
		s.depth++
		s.prev = 0
	case r == '/' && s.prev == '*':
		s.depth--
		s.prev = 0
		if s.depth == 0 {
			s.mode = scanNormal
		}
	case r == '*' || r == '/':
		s.prev = r
	default:
		s.prev = 0
	}
}

func (s *Scanner) flushNumber(out Sink[Token]) error {
	n, ok := new(big.Int).SetString(s.buf.String(), 10)
	if !ok {
		return lexErrorf("malformed numeric literal %q", s.buf.String())
	}

	s.buf.Reset()
	s.mode = scanNormal

	return s.emit(out, Token{Typ: TokenNumber, Num: n})
}

func (s *Scanner) flushWord(out Sink[Token]) error {
	word := s.buf.String()
	s.buf.Reset()
	s.mode = scanNormal

	if kw, ok := keywordTable[word]; ok {
		return s.emit(out, Token{Typ: kw})
	}

	return s.emit(out, Token{Typ: TokenIdentifier, Value: word})
}

func (s *Scanner) emit(out Sink[Token], t Token) error {
	if !out.Put(t) {
		return errClosed
	}

	return nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isHexDigit(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

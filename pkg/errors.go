package minipl

import "fmt"

// LexError is a character-level error raised by the scanner: an
// unsupported escape, a malformed literal, or end of input inside a
// string or block comment.
type LexError struct {
	Msg string
}

func (e *LexError) Error() string {
	return "lexical error: " + e.Msg
}

func lexErrorf(format string, args ...interface{}) error {
	return &LexError{Msg: fmt.Sprintf(format, args...)}
}

// SyntaxError is a token-level error raised by the parser: a token that
// cannot appear where it does, a malformed expression shape, or end of
// input inside an unterminated statement or loop.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Msg
}

func syntaxErrorf(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

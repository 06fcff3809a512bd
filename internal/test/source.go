package test

import (
	"math/rand"
	"strings"
)

const validTokens = "var;for;end;in;do;read;print;int;string;bool;assert;x;y;counter;loop_variable_1;(;);:;:=;..;+;-;*;/;<;=;&;!;\"this is a string\";\"a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.\";\"\\n\\t\\x41\\u0041\";\"\";0;7;123;321;987654321987654321987654321987654321;//comment\n;/* block comment */;/* nested /* block */ comment */;\n"

// GetRandomSource produces a whitespace-separated soup of valid Mini-PL
// lexemes, size lexemes long. The result is lexically valid but almost
// never a valid program; it exists to drive scanner tests and
// benchmarks.
func GetRandomSource(size int) string {
	return GetRandomSourceWithSep(size, " ")
}

func GetRandomSourceWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

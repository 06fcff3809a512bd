package minipl

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.minipl.dev/internal/test"
)

func tok(typ TokenType) Token {
	return Token{Typ: typ}
}

func ident(name string) Token {
	return Token{Typ: TokenIdentifier, Value: name}
}

func str(value string) Token {
	return Token{Typ: TokenString, Value: value}
}

func num(digits string) Token {
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		panic("bad test literal: " + digits)
	}

	return Token{Typ: TokenNumber, Num: n}
}

func TestScanner(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect []Token
	}{
		{
			"var x : int := 1 + 2;",
			false,
			[]Token{
				tok(TokenVar),
				ident("x"),
				tok(TokenColon),
				tok(TokenIntType),
				tok(TokenAssignment),
				num("1"),
				tok(TokenPlus),
				num("2"),
				tok(TokenSemicolon),
			},
		},
		{
			"for i in 1..3 do print i; end for;",
			false,
			[]Token{
				tok(TokenFor),
				ident("i"),
				tok(TokenIn),
				num("1"),
				tok(TokenRange),
				num("3"),
				tok(TokenDo),
				tok(TokenPrint),
				ident("i"),
				tok(TokenSemicolon),
				tok(TokenEnd),
				tok(TokenFor),
				tok(TokenSemicolon),
			},
		},
		{
			"var for end in do read print int string bool assert",
			false,
			[]Token{
				tok(TokenVar),
				tok(TokenFor),
				tok(TokenEnd),
				tok(TokenIn),
				tok(TokenDo),
				tok(TokenRead),
				tok(TokenPrint),
				tok(TokenIntType),
				tok(TokenStringType),
				tok(TokenBoolType),
				tok(TokenAssert),
			},
		},
		{
			"únicóde_1 := 5;",
			false,
			[]Token{
				ident("únicóde_1"),
				tok(TokenAssignment),
				num("5"),
				tok(TokenSemicolon),
			},
		},
		{
			"a < b = c & !d * e",
			false,
			[]Token{
				ident("a"),
				tok(TokenLessThan),
				ident("b"),
				tok(TokenEquals),
				ident("c"),
				tok(TokenAnd),
				tok(TokenNot),
				ident("d"),
				tok(TokenMultiply),
				ident("e"),
			},
		},
		{
			// No space is required between a number and what follows.
			"12abc",
			false,
			[]Token{num("12"), ident("abc")},
		},
		{
			"98765432109876543210987654321098765432109876543210",
			false,
			[]Token{num("98765432109876543210987654321098765432109876543210")},
		},
		{
			"a/b",
			false,
			[]Token{ident("a"), tok(TokenDivide), ident("b")},
		},
		{
			"1/",
			false,
			[]Token{num("1"), tok(TokenDivide)},
		},
		{
			":",
			false,
			[]Token{tok(TokenColon)},
		},
		{
			"\"hello\"",
			false,
			[]Token{str("hello")},
		},
		{
			"\"\"",
			false,
			[]Token{str("")},
		},
		{
			"\"a\\tb\\nc\\\\d\\\"e\"",
			false,
			[]Token{str("a\tb\nc\\d\"e")},
		},
		{
			"\"\\a\\b\\f\\v\\r\\'\\?\"",
			false,
			[]Token{str("\a\b\f\v\r'?")},
		},
		{
			"\"\\x41\"",
			false,
			[]Token{str("A")},
		},
		{
			// \x4f consumes both hex digits; the rest is literal text.
			"\"\\x4f rest\"",
			false,
			[]Token{str("O rest")},
		},
		{
			"\"\\u0041\"",
			false,
			[]Token{str("A")},
		},
		{
			"\"\\U0001F600\"",
			false,
			[]Token{str("\U0001F600")},
		},
		{
			"\"\\101\"",
			false,
			[]Token{str("A")},
		},
		{
			"//this is a comment\nvar",
			false,
			[]Token{tok(TokenVar)},
		},
		{
			"//trailing comment",
			false,
			nil,
		},
		{
			"/**/",
			false,
			nil,
		},
		{
			"/*/**/*/",
			false,
			nil,
		},
		{
			"/***/",
			false,
			nil,
		},
		{
			"a/* comment /* nested */ still comment */b",
			false,
			[]Token{ident("a"), ident("b")},
		},
		{
			"",
			false,
			nil,
		},
		{
			";",
			false,
			[]Token{tok(TokenSemicolon)},
		},
		{
			"\"unclosed string",
			true,
			nil,
		},
		{
			"\"ends in escape\\",
			true,
			nil,
		},
		{
			"/* unterminated",
			true,
			nil,
		},
		{
			"/*/",
			true,
			nil,
		},
		{
			"\"\\q\"",
			true,
			nil,
		},
		{
			"\"\\8\"",
			true,
			nil,
		},
		{
			"\"\\x\"",
			true,
			nil,
		},
		{
			"\"\\u00\"",
			true,
			nil,
		},
		{
			"\"\\uD800\"",
			true,
			nil,
		},
		{
			"\"\\U00110000\"",
			true,
			nil,
		},
		{
			"@",
			true,
			nil,
		},
		{
			".",
			true,
			nil,
		},
		{
			".x",
			true,
			nil,
		},
	}

	for _, c := range cases {
		toks, err := ScanString(c.data)
		if c.fail {
			assert.Error(t, err, c.data)
		} else {
			assert.NoError(t, err, c.data)
		}

		assert.Equal(t, c.expect, toks, c.data)
	}
}

func TestScannerErrorKind(t *testing.T) {
	_, err := ScanString("\"\\q\"")

	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestScannerIdempotent(t *testing.T) {
	data := test.GetRandomSource(1000)

	first, err := ScanString(data)
	assert.NoError(t, err)

	second, err := ScanString(data)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScannerStopsOnDroppedSink(t *testing.T) {
	s := NewScanner(strings.NewReader("read a; read b;"))

	err := s.Run(SinkFunc[Token](func(Token) bool {
		return false
	}))

	assert.NoError(t, err)
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkScanner(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomSource(size)

		var err error
		b.StartTimer()

		benchResult, err = ScanString(data)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanner100(b *testing.B) {
	benchmarkScanner(100, b)
}

func BenchmarkScanner1000(b *testing.B) {
	benchmarkScanner(1000, b)
}

func BenchmarkScanner10000(b *testing.B) {
	benchmarkScanner(10000, b)
}

func BenchmarkScanner100000(b *testing.B) {
	benchmarkScanner(100000, b)
}

package lexer

import (
	"testing"

	"lumen/internal/diagnostics"
	"lumen/internal/tokens"
)

func tokenize(t *testing.T, src string) ([]tokens.Token, *diagnostics.Log) {
	t.Helper()
	log := diagnostics.NewLog()
	return New("test.lum", src, log).Tokenize(), log
}

func kinds(toks []tokens.Token) []tokens.TOKEN {
	out := make([]tokens.TOKEN, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...tokens.TOKEN) {
	t.Helper()
	toks, log := tokenize(t, src)
	if log.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", log.Errors())
	}
	want = append(want, tokens.EOF_TOKEN)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	expectKinds(t, "class external var foo classes",
		tokens.CLASS_TOKEN, tokens.EXTERNAL_TOKEN, tokens.VAR_TOKEN,
		tokens.IDENTIFIER_TOKEN, tokens.IDENTIFIER_TOKEN)
}

func TestMaximalMunchOperators(t *testing.T) {
	expectKinds(t, "?? ?. == != <= >= << >> && || ? . < >",
		tokens.NULL_DEFAULT_TOKEN, tokens.SAFE_DOT_TOKEN, tokens.EQUAL_TOKEN,
		tokens.NOT_EQUAL_TOKEN, tokens.LESS_EQUAL_TOKEN, tokens.GREATER_EQUAL_TOKEN,
		tokens.SHIFT_LEFT_TOKEN, tokens.SHIFT_RIGHT_TOKEN, tokens.AND_TOKEN,
		tokens.OR_TOKEN, tokens.QUESTION_TOKEN, tokens.DOT_TOKEN,
		tokens.LESS_TOKEN, tokens.GREATER_TOKEN)
}

func TestSafeDotWithoutSpaces(t *testing.T) {
	expectKinds(t, "a?.x",
		tokens.IDENTIFIER_TOKEN, tokens.SAFE_DOT_TOKEN, tokens.IDENTIFIER_TOKEN)
}

func TestNumbers(t *testing.T) {
	toks, log := tokenize(t, "42 3.14 1.")
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	if toks[0].Kind != tokens.INT_TOKEN || toks[0].Value != "42" {
		t.Errorf("first token = %v %q", toks[0].Kind, toks[0].Value)
	}
	if toks[1].Kind != tokens.FLOAT_TOKEN || toks[1].Value != "3.14" {
		t.Errorf("second token = %v %q", toks[1].Kind, toks[1].Value)
	}
	// a dot without a following digit stays separate
	if toks[2].Kind != tokens.INT_TOKEN || toks[3].Kind != tokens.DOT_TOKEN {
		t.Errorf("1. should lex as int then dot, got %v %v", toks[2].Kind, toks[3].Kind)
	}
}

func TestStringEscapes(t *testing.T) {
	toks, log := tokenize(t, `"a\nb\\\"c"`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	if toks[0].Kind != tokens.STRING_TOKEN || toks[0].Value != "a\nb\\\"c" {
		t.Errorf("string value = %q", toks[0].Value)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, log := tokenize(t, `"abc`)
	if !log.HasErrors() {
		t.Error("expected an unterminated string error")
	}
}

func TestCharLiteral(t *testing.T) {
	toks, log := tokenize(t, `'a' '\n'`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	if toks[0].Kind != tokens.CHAR_TOKEN || toks[0].Value != "a" {
		t.Errorf("char token = %v %q", toks[0].Kind, toks[0].Value)
	}
	if toks[1].Value != "\n" {
		t.Errorf("escaped char value = %q", toks[1].Value)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	expectKinds(t, "a // line comment\nb /* block\ncomment */ c",
		tokens.IDENTIFIER_TOKEN, tokens.IDENTIFIER_TOKEN, tokens.IDENTIFIER_TOKEN)
}

func TestLocations(t *testing.T) {
	toks, _ := tokenize(t, "a\n  b")
	if toks[0].Location.Line != 1 || toks[0].Location.Column != 1 {
		t.Errorf("first token at %d:%d", toks[0].Location.Line, toks[0].Location.Column)
	}
	if toks[1].Location.Line != 2 || toks[1].Location.Column != 3 {
		t.Errorf("second token at %d:%d", toks[1].Location.Line, toks[1].Location.Column)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, log := tokenize(t, "a @ b")
	if !log.HasErrors() {
		t.Error("expected an unexpected character error")
	}
}

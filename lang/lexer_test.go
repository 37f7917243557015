package lang

import "testing"

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"42", []TokenType{TOKEN_INT, TOKEN_EOF}},
		{"3.14", []TokenType{TOKEN_FLOAT, TOKEN_EOF}},
		{`"hi"`, []TokenType{TOKEN_STRING, TOKEN_EOF}},
		{"foo := 1", []TokenType{TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_INT, TOKEN_EOF}},
		{"1 + 2 * 3", []TokenType{TOKEN_INT, TOKEN_PLUS, TOKEN_INT, TOKEN_STAR, TOKEN_INT, TOKEN_EOF}},
		{"if x == 1 { break } else { next }", []TokenType{
			TOKEN_IF, TOKEN_IDENTIFIER, TOKEN_EQ, TOKEN_INT, TOKEN_LBRACE, TOKEN_BREAK, TOKEN_RBRACE,
			TOKEN_ELSE, TOKEN_LBRACE, TOKEN_NEXT, TOKEN_RBRACE, TOKEN_EOF,
		}},
		{"true false null", []TokenType{TOKEN_TRUE, TOKEN_FALSE, TOKEN_NULL, TOKEN_EOF}},
		{"# a comment\n1", []TokenType{TOKEN_INT, TOKEN_EOF}},
		{"1 // line comment\n2", []TokenType{TOKEN_INT, TOKEN_INT, TOKEN_EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewLexer(tt.input)
			for i, want := range tt.want {
				tok := l.NextToken()
				if tok.Type != want {
					t.Fatalf("token[%d] = %s, want %s", i, tok.Type, want)
				}
			}
		})
	}
}

func TestLexerLineTracking(t *testing.T) {
	l := NewLexer("1\n2")
	first := l.NextToken()
	if first.Position.Line != 1 {
		t.Errorf("first token line = %d, want 1", first.Position.Line)
	}
	second := l.NextToken()
	if second.Position.Line != 2 {
		t.Errorf("second token line = %d, want 2", second.Position.Line)
	}
}

package syntax

import (
	"errors"
	"fmt"
)

// ErrUnterminatedQuote is reported when the input ends inside a quoted
// string.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Lexer splits a single line of shell input into tokens. Tokens are
// produced lazily; callers that want the whole line at once can use
// Tokens.
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer returns a lexer over the given line.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Tokens drains the lexer, returning every remaining token excluding the
// final EOF.
func (l *Lexer) Tokens() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return out, nil
		}
		out = append(out, tok)
	}
}

// Next returns the next token, or EOF once the input is exhausted.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	c, ok := l.peek()
	if !ok {
		return Token{Kind: EOF}, nil
	}

	switch c {
	case ';':
		l.consume()
		return Token{Kind: Semi}, nil
	case '(':
		l.consume()
		return Token{Kind: LParen}, nil
	case ')':
		l.consume()
		return Token{Kind: RParen}, nil
	case '|':
		l.consume()
		if l.accept('|') {
			return Token{Kind: Or}, nil
		}
		return Token{Kind: Pipe}, nil
	case '&':
		l.consume()
		if l.accept('&') {
			return Token{Kind: And}, nil
		}
		return Token{Kind: Ampersand}, nil
	case '>':
		l.consume()
		switch {
		case l.accept('>'):
			return Token{Kind: RedirectTok, Redir: RdrAppend}, nil
		case l.accept('&'):
			return Token{Kind: RedirectTok, Redir: DplOut}, nil
		default:
			return Token{Kind: RedirectTok, Redir: RdrOut}, nil
		}
	case '<':
		l.consume()
		switch {
		case l.accept('<'):
			return Token{Kind: RedirectTok, Redir: RdrHeredoc}, nil
		case l.accept('&'):
			return Token{Kind: RedirectTok, Redir: DplIn}, nil
		default:
			return Token{Kind: RedirectTok, Redir: RdrIn}, nil
		}
	case '\'':
		text, err := l.readQuoted('\'')
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: SingleQuoted, Text: text}, nil
	case '"':
		text, err := l.readQuoted('"')
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: DoubleQuoted, Text: text}, nil
	default:
		return l.readWord(), nil
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *Lexer) consume() {
	l.pos++
}

// accept consumes the next rune if it equals want.
func (l *Lexer) accept(want rune) bool {
	if c, ok := l.peek(); ok && c == want {
		l.pos++
		return true
	}
	return false
}

// readQuoted reads up to the closing quote. Inside double quotes a
// backslash escapes the following character; single quotes take
// everything verbatim.
func (l *Lexer) readQuoted(quote rune) (string, error) {
	l.consume() // opening quote
	var out []rune
	for {
		c, ok := l.peek()
		if !ok {
			return "", fmt.Errorf("%w: missing closing %c", ErrUnterminatedQuote, quote)
		}
		l.consume()

		switch {
		case c == quote:
			return string(out), nil
		case c == '\\' && quote == '"':
			if esc, ok := l.peek(); ok {
				l.consume()
				out = append(out, esc)
			}
		default:
			out = append(out, c)
		}
	}
}

// readWord reads until whitespace or an operator character. Any other
// character is literal, including quote characters mid-word.
func (l *Lexer) readWord() Token {
	var out []rune
	for {
		c, ok := l.peek()
		if !ok || isSpace(c) || isOperator(c) {
			break
		}
		out = append(out, c)
		l.consume()
	}
	return Token{Kind: Word, Text: string(out)}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isOperator(c rune) bool {
	switch c {
	case ';', '|', '&', '>', '<', '(', ')':
		return true
	}
	return false
}

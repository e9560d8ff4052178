package syntax

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrEmptyCommand is reported when a command has no words, for
	// example a blank line or a dangling operator.
	ErrEmptyCommand = errors.New("empty command")

	// ErrBadRedirect is reported when a redirection operator isn't
	// followed by a usable target.
	ErrBadRedirect = errors.New("invalid redirect target")
)

// Parser builds a Command tree from a token stream using precedence
// climbing, with a single token of lookahead.
type Parser struct {
	lex *Lexer
	tok Token
}

// NewParser returns a parser reading from the lexer.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse parses a whole line into a Command tree.
func Parse(line string) (Command, error) {
	return NewParser(NewLexer(line)).Parse()
}

// Parse consumes the whole token stream and returns the command tree.
// The tree is a pure function of the token stream, so re-parsing the
// same input yields a structurally identical tree.
func (p *Parser) Parse() (Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	cmd, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != EOF {
		return nil, fmt.Errorf("unexpected token %q", p.tok)
	}
	return cmd, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// binaryOp maps the lookahead token to a binary operator and its
// precedence. Pipe binds tightest, then and, then or; ";" and "&" share
// the loosest level.
func binaryOp(tok Token) (Operator, int, bool) {
	switch tok.Kind {
	case Pipe:
		return OpPipe, 4, true
	case And:
		return OpAnd, 3, true
	case Or:
		return OpOr, 2, true
	case Semi:
		return OpSeq, 1, true
	case Ampersand:
		return OpBackground, 1, true
	}
	return 0, 0, false
}

// parseExpr implements precedence climbing: parse one primary command,
// then fold in operators of at least min precedence, recursing at
// precedence+1 so equal-precedence chains associate left.
func (p *Parser) parseExpr(min int) (Command, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		op, prec, ok := binaryOp(p.tok)
		if !ok || prec < min {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		// "cmd &" and "cmd ;" are complete commands on their own.
		if p.tok.Kind == EOF || p.tok.Kind == RParen {
			switch op {
			case OpBackground:
				left = &Binary{Op: op, Left: left}
				continue
			case OpSeq:
				continue
			}
		}

		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

// parsePrimary parses a parenthesized group or one simple command:
// words accumulate into the argument list and redirection operators into
// the redirect list until a non-word, non-redirect token appears.
func (p *Parser) parsePrimary() (Command, error) {
	if p.tok.Kind == LParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.tok.Kind != RParen {
			return nil, fmt.Errorf("expected ) but found %q", p.tok)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Group{Inner: inner}, nil
	}

	var words []string
	var redirects []Redirect
	for {
		switch {
		case p.tok.word():
			words = append(words, p.tok.Text)
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.Kind == RedirectTok:
			redirect, err := p.parseRedirect()
			if err != nil {
				return nil, err
			}
			redirects = append(redirects, redirect)
		default:
			if len(words) == 0 {
				return nil, ErrEmptyCommand
			}
			var args []string
			if len(words) > 1 {
				args = words[1:]
			}
			return &Simple{
				Name:      words[0],
				Args:      args,
				Redirects: redirects,
			}, nil
		}
	}
}

// parseRedirect parses one redirection. For "> >> < <<" an integer word
// right after the operator names the descriptor and the following word
// is the file target. For "<& >&" the following word must be an integer
// and names the descriptor to duplicate from.
func (p *Parser) parseRedirect() (Redirect, error) {
	op := p.tok.Redir
	if err := p.advance(); err != nil {
		return Redirect{}, err
	}

	if op == DplIn || op == DplOut {
		if p.tok.Kind != Word {
			return Redirect{}, fmt.Errorf("%w: %s needs a descriptor number", ErrBadRedirect, op)
		}
		dst, err := strconv.Atoi(p.tok.Text)
		if err != nil || dst < 0 {
			return Redirect{}, fmt.Errorf("%w: %s needs a descriptor number, got %q", ErrBadRedirect, op, p.tok.Text)
		}
		if err := p.advance(); err != nil {
			return Redirect{}, err
		}
		return Redirect{FD: ImpliedFD, Op: op, DstFD: dst}, nil
	}

	fd := ImpliedFD
	if p.tok.Kind == Word {
		if n, err := strconv.Atoi(p.tok.Text); err == nil && n >= 0 {
			fd = n
			if err := p.advance(); err != nil {
				return Redirect{}, err
			}
		}
	}

	if !p.tok.word() {
		return Redirect{}, fmt.Errorf("%w: %s needs a file name", ErrBadRedirect, op)
	}
	path := p.tok.Text
	if err := p.advance(); err != nil {
		return Redirect{}, err
	}
	return Redirect{FD: fd, Op: op, Path: path, DstFD: -1}, nil
}

package syntax

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// EOF marks the end of the input line.
	EOF TokenKind = iota
	// Word is an unquoted run of non-operator characters.
	Word
	// SingleQuoted is the body of a '...' string, taken verbatim.
	SingleQuoted
	// DoubleQuoted is the body of a "..." string with backslash
	// escapes resolved.
	DoubleQuoted
	// Semi is ";".
	Semi
	// Pipe is "|".
	Pipe
	// And is "&&".
	And
	// Or is "||".
	Or
	// Ampersand is a single "&".
	Ampersand
	// RedirectTok is any of "> >> < << <& >&"; Token.Redir holds which.
	RedirectTok
	// LParen is "(".
	LParen
	// RParen is ")".
	RParen
)

// RedirOp is the kind of a redirection operator.
type RedirOp int

const (
	// RdrOut is ">".
	RdrOut RedirOp = iota
	// RdrAppend is ">>".
	RdrAppend
	// RdrIn is "<".
	RdrIn
	// RdrHeredoc is "<<".
	RdrHeredoc
	// DplIn is "<&".
	DplIn
	// DplOut is ">&".
	DplOut
)

func (op RedirOp) String() string {
	switch op {
	case RdrOut:
		return ">"
	case RdrAppend:
		return ">>"
	case RdrIn:
		return "<"
	case RdrHeredoc:
		return "<<"
	case DplIn:
		return "<&"
	case DplOut:
		return ">&"
	default:
		return fmt.Sprintf("RedirOp(%d)", int(op))
	}
}

// Input reports whether the operator reads from its descriptor, meaning
// the implied default descriptor is stdin rather than stdout.
func (op RedirOp) Input() bool {
	return op == RdrIn || op == RdrHeredoc || op == DplIn
}

// Token is one lexical token. Tokens carry no position information; the
// parser operates with a single token of lookahead.
type Token struct {
	Kind TokenKind

	// Text is the token body for Word, SingleQuoted and DoubleQuoted.
	Text string

	// Redir is the operator for Kind == RedirectTok.
	Redir RedirOp
}

// word reports whether the token contributes text to an argument list.
func (t Token) word() bool {
	return t.Kind == Word || t.Kind == SingleQuoted || t.Kind == DoubleQuoted
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Word:
		return fmt.Sprintf("word(%s)", t.Text)
	case SingleQuoted:
		return fmt.Sprintf("squote(%s)", t.Text)
	case DoubleQuoted:
		return fmt.Sprintf("dquote(%s)", t.Text)
	case Semi:
		return ";"
	case Pipe:
		return "|"
	case And:
		return "&&"
	case Or:
		return "||"
	case Ampersand:
		return "&"
	case RedirectTok:
		return t.Redir.String()
	case LParen:
		return "("
	case RParen:
		return ")"
	default:
		return fmt.Sprintf("Token(%d)", int(t.Kind))
	}
}

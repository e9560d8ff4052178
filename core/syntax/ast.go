package syntax

import (
	"fmt"
	"strings"
)

// Operator joins the two sides of a Binary command.
type Operator int

const (
	// OpSeq is ";": run left, then right.
	OpSeq Operator = iota
	// OpBackground is "&": run left detached, continue with right.
	OpBackground
	// OpAnd is "&&": run right only if left succeeded.
	OpAnd
	// OpOr is "||": run right only if left failed.
	OpOr
	// OpPipe is "|": left's stdout feeds right's stdin.
	OpPipe
)

func (op Operator) String() string {
	switch op {
	case OpSeq:
		return ";"
	case OpBackground:
		return "&"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpPipe:
		return "|"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// ImpliedFD marks a redirect whose descriptor wasn't written out; the
// interpreter derives it from the operator when the redirect is applied.
const ImpliedFD = -1

// Redirect describes one redirection attached to a simple command.
// Redirects apply in the order they were written; a later redirect on the
// same descriptor overrides an earlier one.
type Redirect struct {
	// FD is the descriptor being redirected, or ImpliedFD when the
	// command didn't name one (0 for input operators, 1 for output).
	FD int
	Op RedirOp

	// Path is the file target. It is empty when the redirect duplicates
	// an existing descriptor instead, in which case DstFD names it.
	Path  string
	DstFD int
}

// Command is one node of the parsed command tree. The tree is built once
// per input line, is acyclic by construction, and is never mutated after
// parsing.
type Command interface {
	dump(b *strings.Builder, depth int)
}

// Simple is a single process invocation: a non-empty executable name,
// its arguments, and any redirections in written order.
type Simple struct {
	Name      string
	Args      []string
	Redirects []Redirect
}

// Binary combines two subtrees with an operator. Right is nil only for a
// trailing "&".
type Binary struct {
	Op    Operator
	Left  Command
	Right Command
}

// Group is a parenthesized subtree; it executes as an opaque unit with
// respect to surrounding operators.
type Group struct {
	Inner Command
}

// Dump renders the tree in an indented, line-oriented form for debugging
// and golden tests.
func Dump(c Command) string {
	var b strings.Builder
	c.dump(&b, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func (c *Simple) dump(b *strings.Builder, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "simple %s", c.Name)
	for _, arg := range c.Args {
		fmt.Fprintf(b, " %q", arg)
	}
	b.WriteString("\n")
	for _, r := range c.Redirects {
		indent(b, depth+1)
		if r.FD == ImpliedFD {
			fmt.Fprintf(b, "redirect %s", r.Op)
		} else {
			fmt.Fprintf(b, "redirect %d%s", r.FD, r.Op)
		}
		if r.Path != "" {
			fmt.Fprintf(b, " file=%q\n", r.Path)
		} else {
			fmt.Fprintf(b, " fd=%d\n", r.DstFD)
		}
	}
}

func (c *Binary) dump(b *strings.Builder, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "binary %s\n", c.Op)
	c.Left.dump(b, depth+1)
	if c.Right != nil {
		c.Right.dump(b, depth+1)
	}
}

func (c *Group) dump(b *strings.Builder, depth int) {
	indent(b, depth)
	b.WriteString("group\n")
	c.Inner.dump(b, depth+1)
}

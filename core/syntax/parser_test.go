package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sim(name string, args ...string) *Simple {
	return &Simple{Name: name, Args: args}
}

func TestParseSimple(t *testing.T) {
	cmd, err := Parse("echo hello world")
	require.NoError(t, err)
	assert.Equal(t, sim("echo", "hello", "world"), cmd)
}

func TestParseQuotedWords(t *testing.T) {
	cmd, err := Parse(`grep 'a b' "c \"d\"" plain`)
	require.NoError(t, err)
	assert.Equal(t, sim("grep", "a b", `c "d"`, "plain"), cmd)
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected Command
	}{
		{
			name:  "pipe binds tighter than and",
			input: "a | b && c",
			expected: &Binary{
				Op:    OpAnd,
				Left:  &Binary{Op: OpPipe, Left: sim("a"), Right: sim("b")},
				Right: sim("c"),
			},
		},
		{
			name:  "and binds tighter than or",
			input: "a || b && c",
			expected: &Binary{
				Op:    OpOr,
				Left:  sim("a"),
				Right: &Binary{Op: OpAnd, Left: sim("b"), Right: sim("c")},
			},
		},
		{
			name:  "equal precedence associates left",
			input: "a ; b ; c",
			expected: &Binary{
				Op:    OpSeq,
				Left:  &Binary{Op: OpSeq, Left: sim("a"), Right: sim("b")},
				Right: sim("c"),
			},
		},
		{
			name:  "background then command",
			input: "sleep 1 & echo done",
			expected: &Binary{
				Op:    OpBackground,
				Left:  sim("sleep", "1"),
				Right: sim("echo", "done"),
			},
		},
		{
			name:  "pipeline chains nest right",
			input: "a | b | c",
			expected: &Binary{
				Op:    OpPipe,
				Left:  &Binary{Op: OpPipe, Left: sim("a"), Right: sim("b")},
				Right: sim("c"),
			},
		},
		{
			name:  "group is opaque to surrounding operators",
			input: "(a ; b) | c",
			expected: &Binary{
				Op: OpPipe,
				Left: &Group{
					Inner: &Binary{Op: OpSeq, Left: sim("a"), Right: sim("b")},
				},
				Right: sim("c"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd)
		})
	}
}

func TestParseTrailingOperators(t *testing.T) {
	cmd, err := Parse("sleep 1 &")
	require.NoError(t, err)
	assert.Equal(t, &Binary{Op: OpBackground, Left: sim("sleep", "1")}, cmd)

	cmd, err = Parse("echo hi ;")
	require.NoError(t, err)
	assert.Equal(t, sim("echo", "hi"), cmd)

	cmd, err = Parse("(sleep 1 &)")
	require.NoError(t, err)
	assert.Equal(t, &Group{Inner: &Binary{Op: OpBackground, Left: sim("sleep", "1")}}, cmd)
}

func TestParseRedirects(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []Redirect
	}{
		{
			name:  "input and output files",
			input: "wc -l < in.txt > out.txt",
			expected: []Redirect{
				{FD: ImpliedFD, Op: RdrIn, Path: "in.txt", DstFD: -1},
				{FD: ImpliedFD, Op: RdrOut, Path: "out.txt", DstFD: -1},
			},
		},
		{
			name:  "append",
			input: "wc -l >> log.txt",
			expected: []Redirect{
				{FD: ImpliedFD, Op: RdrAppend, Path: "log.txt", DstFD: -1},
			},
		},
		{
			name:  "explicit descriptor",
			input: "wc -l > 2 err.txt",
			expected: []Redirect{
				{FD: 2, Op: RdrOut, Path: "err.txt", DstFD: -1},
			},
		},
		{
			name:  "duplicate output descriptor",
			input: "wc -l >& 2",
			expected: []Redirect{
				{FD: ImpliedFD, Op: DplOut, DstFD: 2},
			},
		},
		{
			name:  "numeric file name needs no special case",
			input: "wc -l > 7 out.txt",
			expected: []Redirect{
				{FD: 7, Op: RdrOut, Path: "out.txt", DstFD: -1},
			},
		},
		{
			name:  "override order is preserved",
			input: "wc -l > a.txt > b.txt",
			expected: []Redirect{
				{FD: ImpliedFD, Op: RdrOut, Path: "a.txt", DstFD: -1},
				{FD: ImpliedFD, Op: RdrOut, Path: "b.txt", DstFD: -1},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Parse(tc.input)
			require.NoError(t, err)
			simple, ok := cmd.(*Simple)
			require.True(t, ok)
			assert.Equal(t, "wc", simple.Name)
			assert.Equal(t, []string{"-l"}, simple.Args)
			assert.Equal(t, tc.expected, simple.Redirects)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"blank line", ""},
		{"leading operator", "| a"},
		{"dangling and", "a &&"},
		{"double semicolon", "a ; ; b"},
		{"redirect without target", "a >"},
		{"redirect target is an operator", "a > | b"},
		{"duplicate without descriptor", "a >& out.txt"},
		{"unbalanced paren", "(a ; b"},
		{"stray close paren", "a ) b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestParseErrorKinds(t *testing.T) {
	_, err := Parse("| a")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	_, err = Parse("a > && b")
	assert.ErrorIs(t, err, ErrBadRedirect)

	_, err = Parse("'oops")
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
}

// Parsing is a pure function of the token stream: the same input always
// yields a structurally identical tree.
func TestParseDeterministic(t *testing.T) {
	const input = `a | b && (c ; d > out.txt) || e & f >& 2`

	first, err := Parse(input)
	require.NoError(t, err)
	second, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

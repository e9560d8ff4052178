//go:build !windows && !plan9
// +build !windows,!plan9

package interp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTerminalOnPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer tty.Close()

	term := NewTerminal(tty)
	_, ok := term.(*ttyTerminal)
	assert.True(t, ok, "a pty should get a real terminal controller")
}

func TestNewTerminalOnRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, NoopTerminal(), NewTerminal(f))
	assert.Equal(t, NoopTerminal(), NewTerminal(nil))
}

//go:build !windows && !plan9
// +build !windows,!plan9

package interp

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

type ttyTerminal struct {
	fd        int
	shellPgid int
}

// NewTerminal returns a controller for the terminal attached to f. When
// f isn't a terminal there is no foreground process group to manage and
// the returned controller is a no-op.
func NewTerminal(f *os.File) Terminal {
	if f == nil || !isatty.IsTerminal(f.Fd()) {
		return noopTerminal{}
	}
	return &ttyTerminal{
		fd:        int(f.Fd()),
		shellPgid: syscall.Getpgrp(),
	}
}

func (t *ttyTerminal) Foreground(pgid int) error {
	return tcsetpgrp(t.fd, pgid)
}

func (t *ttyTerminal) Reclaim() error {
	return tcsetpgrp(t.fd, t.shellPgid)
}

// tcsetpgrp sets the terminal's foreground process group. If the shell
// itself isn't in the foreground the ioctl would stop it with SIGTTOU,
// so that signal is ignored for the duration of the call.
func tcsetpgrp(fd, pgid int) error {
	signal.Ignore(syscall.SIGTTOU)
	defer signal.Reset(syscall.SIGTTOU)
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
}

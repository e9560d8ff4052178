//go:build !windows && !plan9
// +build !windows,!plan9

package interp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"github.com/rushsh/rush/core/syntax"
)

// Exit statuses for command resolution failures, following the usual
// shell convention.
const (
	StatusNotExecutable = 126
	StatusNotFound      = 127
)

func (r *Runner) execSimple(io stdio, c *syntax.Simple) int {
	if b, ok := builtins[c.Name]; ok {
		return r.runBuiltin(io, c, b)
	}

	path, err := exec.LookPath(c.Name)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		fmt.Fprintf(io.err, "rush: %s: command not found\n", c.Name)
		return StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintf(io.err, "rush: %s: permission denied\n", c.Name)
		return StatusNotExecutable
	case err != nil:
		fmt.Fprintf(io.err, "rush: %s: %v\n", c.Name, err)
		return 1
	}

	files, release, err := r.redirFiles(io, c.Redirects)
	if err != nil {
		fmt.Fprintf(io.err, "rush: %v\n", err)
		return 1
	}

	j := io.job
	owned := j == nil
	if owned {
		j = &job{foreground: io.foreground}
	}

	proc, err := r.startInJob(j, path, append([]string{c.Name}, c.Args...), files)
	// The child owns duplicates of every descriptor by now; the
	// parent's copies of redirect targets close immediately so pipe
	// readers aren't kept waiting on this process.
	release()
	if err != nil {
		fmt.Fprintf(io.err, "rush: %s: %v\n", c.Name, err)
		if owned {
			r.finishJob(j)
		}
		return 1
	}

	status := waitStatus(proc)
	if owned {
		r.finishJob(j)
	}
	return status
}

// startInJob spawns one external process as a member of the job's
// process group. The lock spans process creation so concurrent pipeline
// stages agree on a single group leader.
func (r *Runner) startInJob(j *job, path string, argv []string, files []*os.File) (*os.Process, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	attr := &os.ProcAttr{
		Env:   os.Environ(),
		Files: files,
		Sys: &syscall.SysProcAttr{
			// The child enters the group before its exec, and the
			// parent repeats the assignment in place(); signal handlers
			// the shell installed are reset by the exec itself.
			Setpgid: true,
			Pgid:    j.pgid,
		},
	}
	proc, err := os.StartProcess(path, argv, attr)
	if err != nil {
		return nil, err
	}
	r.place(j, proc.Pid)
	return proc, nil
}

// assignPgid is the parent half of the process group handshake. EACCES
// means the child already won the race by calling exec, which implies
// its setpgid succeeded first.
func assignPgid(pid, pgid int) {
	_ = syscall.Setpgid(pid, pgid)
}

// waitStatus waits for the process and decodes its exit status: the
// exit code for normal exits, 128+signal for signal deaths. The
// underlying wait retries when interrupted by the shell's own signal
// handlers.
func waitStatus(proc *os.Process) int {
	state, err := proc.Wait()
	if err != nil {
		return 1
	}
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		if state.Success() {
			return 0
		}
		return 1
	}
	if ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ws.ExitStatus()
}

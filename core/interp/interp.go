package interp

import (
	"fmt"
	"os"
	"sync"

	"github.com/rushsh/rush/core/syntax"
)

// Runner turns parsed command trees into processes and exit statuses.
// The runner itself is single-threaded per Run call except for pipeline
// stages and backgrounded subtrees, which run concurrently.
type Runner struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// Term receives the controlling terminal handoffs for foreground
	// commands.
	Term Terminal

	// Exit ends the whole shell process; the exit builtin calls it.
	// Defaults to os.Exit.
	Exit func(code int)
}

// NewRunner returns a runner wired to the given standard streams.
func NewRunner(stdin, stdout, stderr *os.File, term Terminal) *Runner {
	if term == nil {
		term = NoopTerminal()
	}
	return &Runner{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Term:   term,
		Exit:   os.Exit,
	}
}

// stdio is the stream and job context one node of the tree executes in.
// Pipe nodes replace in/out; background nodes clear foreground.
type stdio struct {
	in, out, err *os.File

	// foreground commands receive the controlling terminal.
	foreground bool

	// detached marks background subtrees and pipeline stages. Builtins
	// in a detached context must not mutate the shell itself: exit
	// yields its status without ending the shell and cd only checks
	// its target, matching shells that run such stages in a subshell.
	detached bool

	// job is the process group this command joins. It is nil outside of
	// pipelines; a lone external command then makes its own group.
	job *job
}

// job is one foreground or background process group. The first process
// placed into the job becomes its leader.
type job struct {
	mu         sync.Mutex
	pgid       int
	foreground bool
}

// Run executes one command tree and returns its exit status. Zero means
// success. The tree is only read, never modified.
func (r *Runner) Run(cmd syntax.Command) int {
	io := stdio{in: r.Stdin, out: r.Stdout, err: r.Stderr, foreground: true}
	return r.exec(io, cmd)
}

func (r *Runner) exec(io stdio, cmd syntax.Command) int {
	switch c := cmd.(type) {
	case *syntax.Simple:
		return r.execSimple(io, c)
	case *syntax.Group:
		return r.exec(io, c.Inner)
	case *syntax.Binary:
		return r.execBinary(io, c)
	default:
		fmt.Fprintf(io.err, "rush: cannot execute %T\n", cmd)
		return 1
	}
}

func (r *Runner) execBinary(io stdio, c *syntax.Binary) int {
	switch c.Op {
	case syntax.OpAnd:
		if status := r.exec(io, c.Left); status != 0 {
			return status
		}
		return r.exec(io, c.Right)

	case syntax.OpOr:
		if status := r.exec(io, c.Left); status == 0 {
			return status
		}
		return r.exec(io, c.Right)

	case syntax.OpSeq:
		r.exec(io, c.Left)
		return r.exec(io, c.Right)

	case syntax.OpBackground:
		// The left subtree runs detached: no terminal, its own process
		// groups. The goroutine waits on whatever it spawns, so the
		// children are reaped even though nobody reads their status.
		bg := io
		bg.foreground = false
		bg.detached = true
		bg.job = nil
		go r.exec(bg, c.Left)

		if c.Right == nil {
			return 0
		}
		return r.exec(io, c.Right)

	case syntax.OpPipe:
		return r.execPipe(io, c)

	default:
		fmt.Fprintf(io.err, "rush: unknown operator %s\n", c.Op)
		return 1
	}
}

// execPipe wires left's stdout to right's stdin through one pipe. Both
// stages launch before either is waited on and all stages of a nested
// pipeline share one process group. The pipeline's status is the right
// (last) stage's status.
func (r *Runner) execPipe(io stdio, c *syntax.Binary) int {
	read, write, err := os.Pipe()
	if err != nil {
		fmt.Fprintf(io.err, "rush: pipe: %v\n", err)
		return 1
	}

	j := io.job
	owned := j == nil
	if owned {
		j = &job{foreground: io.foreground}
	}

	left := io
	left.out = write
	left.detached = true
	left.job = j

	right := io
	right.in = read
	right.detached = true
	right.job = j

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Closing the write end once the stage is done is what lets the
		// reader see EOF; external stages additionally drop their copy
		// right after spawning.
		defer write.Close()
		r.exec(left, c.Left)
	}()

	status := r.exec(right, c.Right)
	read.Close()
	wg.Wait()

	if owned {
		r.finishJob(j)
	}
	return status
}

// place moves pid into the job's process group. The first process
// becomes the leader and, for foreground jobs, receives the terminal.
// Both the child (via SysProcAttr) and the parent assign the group so
// neither side can lose the race. The caller holds j.mu.
func (r *Runner) place(j *job, pid int) {
	if j.pgid == 0 {
		j.pgid = pid
		assignPgid(pid, pid)
		if j.foreground {
			if err := r.Term.Foreground(pid); err != nil {
				fmt.Fprintf(r.Stderr, "rush: terminal handoff: %v\n", err)
			}
		}
		return
	}
	assignPgid(pid, j.pgid)
}

// finishJob restores the shell's terminal ownership after a foreground
// job completes. Safe to call on jobs that never started a process.
func (r *Runner) finishJob(j *job) {
	j.mu.Lock()
	started := j.pgid != 0
	j.mu.Unlock()
	if started && j.foreground {
		if err := r.Term.Reclaim(); err != nil {
			fmt.Fprintf(r.Stderr, "rush: terminal reclaim: %v\n", err)
		}
	}
}

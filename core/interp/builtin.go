package interp

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/pborman/getopt/v2"

	"github.com/rushsh/rush/core/syntax"
)

// BuiltinFunc is a command implemented inside the shell's own process.
// args includes the command name; the return value is its exit status.
type BuiltinFunc func(r *Runner, io stdio, args []string) int

// builtins holds every registered builtin, keyed by command name.
var builtins = make(map[string]BuiltinFunc)

// IsBuiltin reports whether name dispatches to a builtin instead of an
// external executable.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Builtins lists the registered builtin names in sorted order.
func Builtins() []string {
	var names []string
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runBuiltin executes a builtin in the calling process. Redirections
// apply to a per-invocation descriptor table, so the shell's own
// streams are untouched once the builtin returns.
func (r *Runner) runBuiltin(io stdio, c *syntax.Simple, b BuiltinFunc) int {
	files, release, err := r.redirFiles(io, c.Redirects)
	if err != nil {
		fmt.Fprintf(io.err, "rush: %v\n", err)
		return 1
	}
	defer release()

	bio := io
	if len(files) > 0 && files[0] != nil {
		bio.in = files[0]
	}
	if len(files) > 1 && files[1] != nil {
		bio.out = files[1]
	}
	if len(files) > 2 && files[2] != nil {
		bio.err = files[2]
	}
	return b(r, bio, append([]string{c.Name}, c.Args...))
}

// builtinCd changes the shell's working directory. With no argument it
// targets the user's home directory. Detached invocations cannot move
// the shell; they only report whether the target is usable.
func builtinCd(r *Runner, io stdio, args []string) int {
	var dir string
	switch len(args) {
	case 1:
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(io.err, "%s: %v\n", args[0], err)
			return 1
		}
		dir = home
	case 2:
		dir = args[1]
	default:
		fmt.Fprintf(io.err, "%s: too many arguments\n", args[0])
		return 1
	}

	if io.detached {
		info, err := os.Stat(dir)
		if err != nil {
			fmt.Fprintf(io.err, "%s: %v\n", args[0], err)
			return 1
		}
		if !info.IsDir() {
			fmt.Fprintf(io.err, "%s: %s: not a directory\n", args[0], dir)
			return 1
		}
		return 0
	}

	if err := os.Chdir(dir); err != nil {
		fmt.Fprintf(io.err, "%s: %v\n", args[0], err)
		return 1
	}
	return 0
}

// builtinEcho writes its arguments joined by spaces. A leading -n
// suppresses the trailing newline. Arguments that fail flag parsing are
// printed as-is, matching the usual echo tolerance.
func builtinEcho(r *Runner, io stdio, args []string) int {
	opts := getopt.New()
	noNewline := opts.Bool('n', "do not output the trailing newline")

	rest := args[1:]
	if err := opts.Getopt(args, nil); err == nil {
		rest = opts.Args()
	}

	fmt.Fprint(io.out, strings.Join(rest, " "))
	if !*noNewline {
		fmt.Fprintln(io.out)
	}
	return 0
}

// builtinExit ends the whole shell immediately. An optional numeric
// argument overrides the default status of 0. A detached exit only ends
// its own stage, so it returns the status without touching the shell.
func builtinExit(r *Runner, io stdio, args []string) int {
	code := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(io.err, "%s: %s: numeric argument required\n", args[0], args[1])
			code = 2
			if !io.detached {
				r.Exit(code)
			}
			return code
		}
		code = n
	}
	if !io.detached {
		r.Exit(code)
	}
	return code
}

// builtinType reports how each argument would be resolved: as a builtin
// or as an executable on PATH.
func builtinType(r *Runner, io stdio, args []string) int {
	status := 0
	for _, name := range args[1:] {
		switch {
		case IsBuiltin(name):
			fmt.Fprintf(io.out, "%s is a shell builtin\n", name)
		default:
			path, err := exec.LookPath(name)
			if err != nil {
				fmt.Fprintf(io.err, "%s: %s: not found\n", args[0], name)
				status = 1
				continue
			}
			fmt.Fprintf(io.out, "%s is %s\n", name, path)
		}
	}
	return status
}

func init() {
	builtins["cd"] = builtinCd
	builtins["echo"] = builtinEcho
	builtins["exit"] = builtinExit
	builtins["type"] = builtinType
}

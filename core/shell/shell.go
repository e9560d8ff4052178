// Package shell is the interactive read-eval loop: it acquires lines,
// hands them to the parser and interpreter, and renders the prompt.
package shell

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/rushsh/rush/core/config"
	"github.com/rushsh/rush/core/interp"
	"github.com/rushsh/rush/core/syntax"
)

// Shell wires line input to the parser and interpreter.
type Shell struct {
	Config   *config.Config
	Runner   *interp.Runner
	Readline *readline.Instance

	lastStatus int
}

// New returns an interactive shell reading from the process's standard
// streams.
func New(cfg *config.Config) (*Shell, error) {
	term := interp.NewTerminal(os.Stdin)
	runner := interp.NewRunner(os.Stdin, os.Stdout, os.Stderr, term)

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile: cfg.ExpandedHistoryFile(),
	})
	if err != nil {
		return nil, err
	}

	s := &Shell{
		Config:   cfg,
		Runner:   runner,
		Readline: rl,
	}
	ApplyStartup(cfg)
	return s, nil
}

// ApplyStartup applies the configuration that affects the whole process:
// PATH prepends and the color mode. One-shot invocations call it too, so
// -c lines see the same environment as interactive ones.
func ApplyStartup(cfg *config.Config) {
	if prepend := cfg.PathPrepend; prepend != "" {
		os.Setenv("PATH", prepend+string(os.PathListSeparator)+os.Getenv("PATH"))
	}

	switch cfg.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
	}
}

// Run is the interactive loop. It returns the status of the last
// command when input is closed.
func (s *Shell) Run() int {
	if s.Config.Motd != "" {
		fmt.Fprintln(os.Stdout, s.Config.Motd)
	}

	for {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return s.lastStatus // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears the line.
			continue

		case err != nil:
			log.Printf("readline: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue

		default:
			s.lastStatus = s.RunLine(line)
		}
	}
}

// RunLine parses and executes one line, returning its exit status.
// Parse errors discard the line with no process side effects.
func (s *Shell) RunLine(line string) int {
	cmd, err := syntax.Parse(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rush: %v\n", err)
		return 2
	}
	return s.Runner.Run(cmd)
}

func (s *Shell) Close() error {
	return s.Readline.Close()
}

func (s *Shell) prompt() string {
	user := os.Getenv("USER")
	host, _ := os.Hostname()
	wd, _ := os.Getwd()
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(wd, home) {
		wd = "~" + strings.TrimPrefix(wd, home)
	}
	return expandPrompt(s.Config.Prompt, promptInfo{
		User: user,
		Host: host,
		Wd:   wd,
		Root: os.Geteuid() == 0,
	})
}

// promptInfo carries the values substituted into the prompt template.
type promptInfo struct {
	User string
	Host string
	Wd   string
	Root bool
}

// expandPrompt substitutes \u, \h, \w and \$ in the template. The user
// and host are colored green and the directory blue when color is
// enabled.
func expandPrompt(template string, info promptInfo) string {
	marker := "$"
	if info.Root {
		marker = "#"
	}

	out := template
	out = strings.ReplaceAll(out, `\u`, color.GreenString("%s", info.User))
	out = strings.ReplaceAll(out, `\h`, color.GreenString("%s", info.Host))
	out = strings.ReplaceAll(out, `\w`, color.BlueString("%s", info.Wd))
	out = strings.ReplaceAll(out, `\$`, marker)
	return out
}

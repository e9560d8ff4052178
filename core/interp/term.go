package interp

// Terminal controls which process group owns the controlling terminal.
// The foreground process group is process-wide OS state, so the runner
// takes it as an explicit collaborator rather than reaching for the
// ioctls directly; tests substitute a fake.
type Terminal interface {
	// Foreground hands the terminal to the given process group.
	Foreground(pgid int) error
	// Reclaim returns the terminal to the shell's own process group.
	Reclaim() error
}

type noopTerminal struct{}

func (noopTerminal) Foreground(int) error { return nil }
func (noopTerminal) Reclaim() error       { return nil }

// NoopTerminal returns a Terminal that does nothing. It is the right
// controller when the shell's input isn't a terminal, e.g. scripted
// input or tests.
func NoopTerminal() Terminal {
	return noopTerminal{}
}

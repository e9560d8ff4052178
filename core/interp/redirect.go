package interp

import (
	"fmt"
	"os"

	"github.com/rushsh/rush/core/syntax"
)

// redirFiles resolves a command's redirections into a descriptor table:
// slot i of the returned slice is what the command sees as descriptor i.
// Redirections apply strictly in written order, so a later redirect on
// the same descriptor overrides an earlier one; the earlier file is
// still created, which matches shell left-to-right semantics.
//
// The returned release func closes every file opened here. For external
// commands it runs right after spawning, once the child holds its own
// duplicates; for builtins it runs when the builtin returns. It must run
// on every path, including errors.
func (r *Runner) redirFiles(io stdio, redirects []syntax.Redirect) (files []*os.File, release func(), err error) {
	files = []*os.File{io.in, io.out, io.err}

	var opened []*os.File
	release = func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, redirect := range redirects {
		fd := redirect.FD
		if fd == syntax.ImpliedFD {
			if redirect.Op.Input() {
				fd = 0
			} else {
				fd = 1
			}
		}
		for len(files) <= fd {
			files = append(files, nil)
		}

		var f *os.File
		switch redirect.Op {
		case syntax.RdrOut:
			f, err = os.OpenFile(redirect.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		case syntax.RdrAppend:
			f, err = os.OpenFile(redirect.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		case syntax.RdrIn:
			f, err = os.Open(redirect.Path)
		case syntax.RdrHeredoc:
			release()
			return nil, func() {}, fmt.Errorf("here-documents are not supported")
		case syntax.DplIn, syntax.DplOut:
			if redirect.DstFD >= len(files) || files[redirect.DstFD] == nil {
				release()
				return nil, func() {}, fmt.Errorf("%d: bad file descriptor", redirect.DstFD)
			}
			files[fd] = files[redirect.DstFD]
			continue
		default:
			release()
			return nil, func() {}, fmt.Errorf("unsupported redirect %s", redirect.Op)
		}
		if err != nil {
			release()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files[fd] = f
	}

	return files, release, nil
}

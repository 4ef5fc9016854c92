package wavy

import (
	"bytes"
	"errors"
	"io"
	"os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/semtools/types"
)

// MeshTool runs an external mesh utility, sending its standard output to
// stdout. Failures are reported as ExternalToolError.
type MeshTool interface {
	Run(name string, args []string, stdout io.Writer) error
}

// ExecTool runs tools found on the PATH, or at an explicit path
type ExecTool struct {
	Dir string // Working directory, empty for the current one
}

const stderrTail = 512

func (et ExecTool) Run(name string, args []string, stdout io.Writer) (err error) {
	var (
		stderr bytes.Buffer
		cmd    = exec.Command(name, args...)
	)
	cmd.Dir = et.Dir
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	log.WithFields(log.Fields{
		"tool": name,
		"args": args,
	}).Debug("running mesh tool")
	if err = cmd.Run(); err != nil {
		var (
			exitErr  *exec.ExitError
			exitCode int
		)
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return types.NewExternalTool(name, args, exitCode, tail(stderr.String(), stderrTail), err)
	}
	return
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// runChecked treats a tool that succeeds without writing anything as failed
func runChecked(tool MeshTool, name string, args []string, stdout io.Writer) (err error) {
	cw := &countingWriter{w: stdout}
	if err = tool.Run(name, args, cw); err != nil {
		var te *types.Error
		if !errors.As(err, &te) {
			err = types.NewExternalTool(name, args, 0, "", err)
		}
		return
	}
	if cw.n == 0 {
		return types.NewExternalTool(name, args, 0, "no output", nil)
	}
	return
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (n int, err error) {
	n, err = c.w.Write(p)
	c.n += int64(n)
	return
}

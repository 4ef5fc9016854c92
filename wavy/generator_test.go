package wavy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/semtools/types"
)

// fakeTool stands in for rectmesh and mapmesh. Each reads the file it is
// given, so a file left open or missing shows up as a failure.
type fakeTool struct {
	calls  [][]string
	fail   string
	silent string
}

func (ft *fakeTool) Run(name string, args []string, stdout io.Writer) (err error) {
	ft.calls = append(ft.calls, append([]string{name}, args...))
	switch name {
	case ft.fail:
		return errors.New("exit status 1")
	case ft.silent:
		return
	}
	var input []byte
	if input, err = os.ReadFile(args[len(args)-1]); err != nil {
		return
	}
	switch filepath.Base(name) {
	case "rectmesh":
		_, err = fmt.Fprintf(stdout, "<NODES NUMBER=%d>\n</NODES>\n", strings.Count(string(input), "\n"))
	case "mapmesh":
		_, err = fmt.Fprintf(stdout, "# mapped %s %s\n%s", args[0], args[1], input)
	}
	return
}

func TestGenerator(t *testing.T) {
	var (
		dir  = t.TempDir()
		tool = &fakeTool{}
		g    = NewGenerator(2.0, 0.1, "test")
	)
	g.Dir, g.Tool = dir, tool
	require.NoError(t, g.Run())
	{ // Tools ran in order on the right files
		require.Equal(t, 2, len(tool.calls))
		assert.Equal(t, []string{"rectmesh", filepath.Join(dir, "test.rect")}, tool.calls[0])
		assert.Equal(t, []string{"mapmesh", "-y", "y*(1+0.1*sin(2.0*x))", filepath.Join(dir, "test")}, tool.calls[1])
	}
	{ // Artifacts
		for _, name := range []string{"test.rect", "test_wavy", "test"} {
			assert.FileExists(t, filepath.Join(dir, name))
		}
		for i := 1; i <= 14; i++ {
			assert.FileExists(t, filepath.Join(dir, fmt.Sprintf("wave%d.geo", i)))
		}
		assert.NoFileExists(t, filepath.Join(dir, "wave15.geo"))
		assert.NoFileExists(t, filepath.Join(dir, curvesFile))
		assert.Equal(t, 14, len(g.GeoFiles()))
	}
	{ // Session is the mapped mesh followed by the CURVES section
		wavy, err := os.ReadFile(filepath.Join(dir, "test_wavy"))
		require.NoError(t, err)
		session, err := os.ReadFile(filepath.Join(dir, "test"))
		require.NoError(t, err)
		text := string(session)
		assert.True(t, strings.HasPrefix(text, string(wavy)))
		assert.Contains(t, text, "<NODES NUMBER=27>")
		assert.Equal(t, 270, strings.Count(text, "<SPLINE>"))
		assert.NotContains(t, text, curvesFile)
		assert.True(t, strings.HasSuffix(text, "</CURVES>\n"))
	}
	{ // Profiles trace the wavy line of their row
		geo, err := os.ReadFile(filepath.Join(dir, "wave14.geo"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(geo), "\n"), "\n")
		require.Equal(t, 960, len(lines))
		assert.Equal(t, "0.0 1.0", lines[0])
	}
}

func TestGeneratorFailures(t *testing.T) {
	{ // A failing tool stops the run before the session is assembled
		dir := t.TempDir()
		g := NewGenerator(2.0, 0.1, "test")
		g.Dir, g.Tool = dir, &fakeTool{fail: "mapmesh"}
		err := g.Run()
		assert.True(t, errors.Is(err, types.ErrExternalTool))
		assert.Contains(t, err.Error(), "mapmesh")
		assert.NoFileExists(t, filepath.Join(dir, "wave1.geo"))
		session, rerr := os.ReadFile(filepath.Join(dir, "test"))
		require.NoError(t, rerr)
		assert.NotContains(t, string(session), "<CURVES")
	}
	{ // So does one that writes nothing
		dir := t.TempDir()
		g := NewGenerator(2.0, 0.1, "test")
		g.Dir, g.Tool = dir, &fakeTool{silent: "rectmesh"}
		err := g.Run()
		assert.True(t, errors.Is(err, types.ErrExternalTool))
		assert.Contains(t, err.Error(), "no output")
	}
	{ // A missing executable
		dir := t.TempDir()
		g := NewGenerator(2.0, 0.1, "test")
		g.Dir = dir
		g.RectMesh = filepath.Join(dir, "no-such-rectmesh")
		err := g.Run()
		assert.True(t, errors.Is(err, types.ErrExternalTool))
	}
	{ // Bad parameters are usage errors
		for _, g := range []*Generator{
			NewGenerator(0, 0.1, "test"),
			NewGenerator(2, 0.1, ""),
			func() *Generator { g := NewGenerator(2, 0.1, "test"); g.CurvePoints = 1; return g }(),
			func() *Generator { g := NewGenerator(2, 0.1, "test"); g.Y = g.Y[:1]; return g }(),
		} {
			assert.True(t, errors.Is(g.Run(), types.ErrUsage))
		}
	}
}

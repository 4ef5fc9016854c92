package wavy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/semtools/types"
	"github.com/notargets/semtools/utils"
)

// Generator builds a session file whose element rows follow the wavy lines
// y*(1+EpsY*sin(BetaX*x)), by way of rectmesh and mapmesh.
type Generator struct {
	BetaX, EpsY       float64
	Session           string
	Dir               string // Where all artifacts are written, empty for the current directory
	X, Y              []float64
	CurvePoints       int
	RectMesh, MapMesh string
	Tool              MeshTool
}

const curvesFile = "curves.txt"

func NewGenerator(betaX, epsY float64, session string) *Generator {
	return &Generator{
		BetaX:       betaX,
		EpsY:        epsY,
		Session:     session,
		X:           XSamples(betaX, DefaultNX),
		Y:           YSamples(),
		CurvePoints: DefaultCurvePoints,
		RectMesh:    "rectmesh",
		MapMesh:     "mapmesh",
		Tool:        ExecTool{},
	}
}

func (g *Generator) Validate() error {
	switch {
	case g.BetaX == 0 || !utils.IsFinite(g.BetaX):
		return types.NewUsage("beta_x must be a finite non-zero number, have %v", g.BetaX)
	case !utils.IsFinite(g.EpsY):
		return types.NewUsage("eps_y must be finite, have %v", g.EpsY)
	case len(g.Session) == 0:
		return types.NewUsage("a session name is required")
	case len(g.X) < 2 || len(g.Y) < 2:
		return types.NewUsage("need at least two x and two y samples, have %d and %d", len(g.X), len(g.Y))
	case g.CurvePoints < 2:
		return types.NewUsage("need at least two points per curve, have %d", g.CurvePoints)
	case len(g.RectMesh) == 0 || len(g.MapMesh) == 0:
		return types.NewUsage("rectmesh and mapmesh executables must be named")
	}
	return nil
}

func (g *Generator) path(name string) string {
	if g.Dir == "" {
		return name
	}
	return filepath.Join(g.Dir, name)
}

func (g *Generator) RectFile() string    { return g.path(g.Session + ".rect") }
func (g *Generator) WavyFile() string    { return g.path(g.Session + "_wavy") }
func (g *Generator) SessionFile() string { return g.path(g.Session) }

// GeoFiles lists the wave profile files, one per wavy row
func (g *Generator) GeoFiles() (files []string) {
	for i := 1; i < len(g.Y); i++ {
		files = append(files, g.path(GeoFile(i)))
	}
	return
}

// Run performs every step in order, stopping at the first failure. Files
// already written are left in place.
func (g *Generator) Run() (err error) {
	if err = g.Validate(); err != nil {
		return
	}
	if g.Tool == nil {
		g.Tool = ExecTool{}
	}
	logger := log.WithFields(log.Fields{
		"session": g.SessionFile(),
		"beta_x":  g.BetaX,
		"eps_y":   g.EpsY,
	})
	logger.Debug("writing rectmesh input")
	if err = writeFile(g.RectFile(), func(w io.Writer) error { return WriteRect(w, g.X, g.Y) }); err != nil {
		return
	}
	logger.Debug("running rectmesh")
	if err = g.runTo(g.SessionFile(), g.RectMesh, g.RectFile()); err != nil {
		return
	}
	logger.Debug("running mapmesh")
	if err = g.runTo(g.WavyFile(), g.MapMesh, "-y", MapExpression(g.BetaX, g.EpsY), g.SessionFile()); err != nil {
		return
	}
	logger.WithField("points", g.CurvePoints).Debug("writing wave profiles")
	for i, name := range g.GeoFiles() {
		xs, ys := WaveProfile(g.X, g.Y[i+1], g.BetaX, g.EpsY, g.CurvePoints)
		if err = writeFile(name, func(w io.Writer) error { return WriteProfile(w, xs, ys) }); err != nil {
			return
		}
	}
	curves := Curves(len(g.X), len(g.Y))
	logger.WithField("curves", len(curves)).Debug("writing CURVES section")
	if err = writeFile(g.path(curvesFile), func(w io.Writer) error { return WriteCurves(w, curves) }); err != nil {
		return
	}
	if err = concatenate(g.SessionFile(), g.WavyFile(), g.path(curvesFile)); err != nil {
		return
	}
	if err = os.Remove(g.path(curvesFile)); err != nil {
		return
	}
	logger.WithField("curves", len(curves)).Info("session file written")
	return
}

// runTo runs a tool with its standard output captured in path. The file is
// closed before returning so the next tool can read it.
func (g *Generator) runTo(path, tool string, args ...string) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(path); err != nil {
		return
	}
	if err = runChecked(g.Tool, tool, args, file); err != nil {
		file.Close()
		return
	}
	return file.Close()
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(path); err != nil {
		return
	}
	if err = write(file); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}

func concatenate(dst string, srcs ...string) (err error) {
	var (
		out *os.File
	)
	if out, err = os.Create(dst); err != nil {
		return
	}
	for _, src := range srcs {
		var in *os.File
		if in, err = os.Open(src); err != nil {
			out.Close()
			return
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			out.Close()
			return fmt.Errorf("%s: %w", dst, err)
		}
	}
	return out.Close()
}

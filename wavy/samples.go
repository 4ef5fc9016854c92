package wavy

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/notargets/semtools/utils"
)

// DefaultYSamples are the a priori inner-domain y locations on [0,1],
// clustered towards y = 1.
var DefaultYSamples = []float64{
	0, 0.075, 0.15, 0.25, 0.35, 0.45, 0.55, 0.65, 0.75, 0.84, 0.9, 0.945, 0.975, 0.993, 1.0,
}

const (
	DefaultNX          = 11
	DefaultCurvePoints = 960
)

// XSamples spans one wavelength, 2π/betaX, with N evenly spaced points
func XSamples(betaX float64, N int) []float64 {
	return utils.ScaleArray(utils.Linspace(N, 0, 1), 2*math.Pi/betaX)
}

func YSamples() []float64 {
	y := make([]float64, len(DefaultYSamples))
	copy(y, DefaultYSamples)
	return y
}

// WriteRect emits the x block, a blank line and the y block in the input
// layout read by rectmesh.
func WriteRect(w io.Writer, x, y []float64) (err error) {
	for _, v := range x {
		if _, err = fmt.Fprintf(w, "%24.16f\n", v); err != nil {
			return
		}
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return
	}
	for _, v := range y {
		if _, err = fmt.Fprintf(w, "%24.16f\n", v); err != nil {
			return
		}
	}
	return
}

// MapExpression is the mapmesh y transform: y <- y*(1+epsY*sin(betaX*x))
func MapExpression(betaX, epsY float64) string {
	return "y*(1+" + formatFloat(epsY) + "*sin(" + formatFloat(betaX) + "*x))"
}

// formatFloat writes the shortest text that reads back as v, keeping a
// decimal point on whole numbers: 2 is written 2.0.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

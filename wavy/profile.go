package wavy

import (
	"bufio"
	"io"
	"math"
)

// WaveProfile samples the wavy line y*(1+epsY*sin(betaX*x)) at N points
// across the x range of the mesh.
func WaveProfile(x []float64, y, betaX, epsY float64, N int) (xs, ys []float64) {
	var (
		x0, x1 = x[0], x[len(x)-1]
	)
	xs, ys = make([]float64, N), make([]float64, N)
	for j := 0; j < N; j++ {
		xl := x0 + (x1-x0)*float64(j)/float64(N-1)
		xs[j] = xl
		ys[j] = y * (1 + epsY*math.Sin(xl*betaX))
	}
	return
}

// WriteProfile writes one "x y" pair per line
func WriteProfile(w io.Writer, xs, ys []float64) (err error) {
	bw := bufio.NewWriter(w)
	for i := range xs {
		bw.WriteString(formatFloat(xs[i]))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(ys[i]))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

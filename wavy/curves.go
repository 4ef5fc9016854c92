package wavy

import (
	"fmt"
	"io"
)

// Curve ties element side Side of element Element to a spline through the
// points in File.
type Curve struct {
	ID, Element, Side int
	File              string
	Pass, Row         int
}

const (
	// Edge numbers within a quadrilateral element, counterclockwise from
	// the bottom edge.
	TopSide    = 3
	BottomSide = 1
)

// CurveCount is the number of curved element edges in an (nx-1) by (ny-1)
// element mesh whose interior rows and top row are wavy.
func CurveCount(nx, ny int) int {
	if nx < 2 || ny < 2 {
		return 0
	}
	return (nx - 1) * (2*(ny-2) + 1)
}

func GeoFile(row int) string {
	return fmt.Sprintf("wave%d.geo", row)
}

// Curves numbers the curved edges. The first pass gives the top edge of
// every element row i = 1..ny-1 the profile of y[i]; the second gives the
// bottom edge of element rows 2..ny-1 the profile of the row below.
func Curves(nx, ny int) (curves []Curve) {
	curves = make([]Curve, 0, CurveCount(nx, ny))
	k := 1
	for i := 1; i < ny; i++ {
		for j := 1; j < nx; j++ {
			curves = append(curves, Curve{
				ID: k, Element: (i-1)*(nx-1) + j, Side: TopSide, File: GeoFile(i), Pass: 1, Row: i,
			})
			k++
		}
	}
	for i := 1; i < ny-1; i++ {
		for j := 1; j < nx; j++ {
			curves = append(curves, Curve{
				ID: k, Element: i*(nx-1) + j, Side: BottomSide, File: GeoFile(i), Pass: 2, Row: i,
			})
			k++
		}
	}
	return
}

func (c Curve) String() string {
	return fmt.Sprintf("%5d%5d  %d <SPLINE> %s </SPLINE>", c.ID, c.Element, c.Side, c.File)
}

// WriteCurves renders the CURVES section, with a blank line closing each
// row of elements.
func WriteCurves(w io.Writer, curves []Curve) (err error) {
	if _, err = fmt.Fprintf(w, "\n<CURVES NUMBER=%d>\n", len(curves)); err != nil {
		return
	}
	for i, c := range curves {
		if _, err = io.WriteString(w, c.String()+"\n"); err != nil {
			return
		}
		if i == len(curves)-1 || curves[i+1].Pass != c.Pass || curves[i+1].Row != c.Row {
			if _, err = io.WriteString(w, "\n"); err != nil {
				return
			}
		}
	}
	_, err = io.WriteString(w, "</CURVES>\n")
	return
}

package fieldfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/semtools/types"
)

// Geometry holds the element/mode counts that define mesh conformity
type Geometry struct {
	Nr, Ns, Nz, Nel int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%d %d %d %d", g.Nr, g.Ns, g.Nz, g.Nel)
}

// NTot is the number of samples stored for each field
func (g Geometry) NTot() int {
	return g.Nr * g.Ns * g.Nz * g.Nel
}

type Header struct {
	Session  string
	Created  string
	Geometry Geometry
	Step     int
	Time     float64
	TimeStep float64
	Kinvis   float64
	Beta     float64
	Fields   string
	Format   string
}

const (
	createdLayout = "Mon Jan 02 15:04:05 2006"
	LittleEndian  = "binary IEEE little-endian"
	BigEndian     = "binary IEEE big-endian"
)

var headerLabels = [10]string{
	"Session",
	"Created",
	"Nr, Ns, Nz, Elements",
	"Step",
	"Time",
	"Time step",
	"Kinvis",
	"Beta",
	"Fields written",
	"Format",
}

func (h Header) NTot() int { return h.Geometry.NTot() }

// ByteOrder reports the byte order named by the Format line. A format that
// names no order is read as little-endian.
func (h Header) ByteOrder() binary.ByteOrder {
	if strings.Contains(h.Format, "big") {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Conformant is true iff the two geometries match exactly
func Conformant(a, b Header) bool {
	return a.Geometry == b.Geometry
}

func (h Header) String() string {
	return fmt.Sprintf("session=%q geometry=[%s] step=%d time=%g fields=%q ntot=%d",
		h.Session, h.Geometry, h.Step, h.Time, h.Fields, h.NTot())
}

// ReadHeader parses the ten line ASCII header. Each line carries a value,
// left justified in 25 columns, followed by a label.
func ReadHeader(r *bufio.Reader, source string) (h Header, err error) {
	var (
		values [10]string
	)
	for i, label := range headerLabels {
		var line string
		if line, err = r.ReadString('\n'); err != nil {
			return h, types.NewFormat(source, err, "truncated header at line %d (%s)", i+1, label)
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasSuffix(line, label):
			values[i] = strings.TrimSpace(strings.TrimSuffix(line, label))
		case len(line) >= 25:
			values[i] = strings.TrimSpace(line[:25])
		default:
			return h, types.NewFormat(source, nil, "header line %d: expected %q, found %q", i+1, label, line)
		}
	}
	h.Session, h.Created = values[0], values[1]
	g := &h.Geometry
	if _, err = fmt.Sscanf(values[2], "%d %d %d %d", &g.Nr, &g.Ns, &g.Nz, &g.Nel); err != nil {
		return h, types.NewFormat(source, err, "unable to parse geometry %q", values[2])
	}
	if g.Nr < 1 || g.Ns < 1 || g.Nz < 1 || g.Nel < 1 {
		return h, types.NewFormat(source, nil, "inconsistent geometry [%s]", h.Geometry)
	}
	if h.Step, err = strconv.Atoi(values[3]); err != nil {
		return h, types.NewFormat(source, err, "unable to parse step %q", values[3])
	}
	for i, fp := range []*float64{&h.Time, &h.TimeStep, &h.Kinvis, &h.Beta} {
		if *fp, err = strconv.ParseFloat(values[4+i], 64); err != nil {
			return h, types.NewFormat(source, err, "unable to parse %s %q", headerLabels[4+i], values[4+i])
		}
	}
	h.Fields, h.Format = values[8], values[9]
	if err = checkFieldNames(h.Fields); err != nil {
		return h, types.NewFormat(source, err, "bad field names")
	}
	if err = checkSize(h.Geometry, len(h.Fields)); err != nil {
		return h, types.NewFormat(source, err, "inconsistent geometry [%s]", h.Geometry)
	}
	if !strings.Contains(h.Format, "binary") {
		return h, types.NewFormat(source, nil, "field file not in binary format (%q)", h.Format)
	}
	if !strings.Contains(h.Format, "endian") {
		log.WithFields(log.Fields{
			"file":   source,
			"format": h.Format,
		}).Warn("field file in unknown binary format, assuming little-endian")
	}
	return h, nil
}

// checkSize fails when the data section of nfields fields is too large to
// address, including when the sample count itself overflows.
func checkSize(g Geometry, nfields int) error {
	ntot := 1
	for _, n := range []int{g.Nr, g.Ns, g.Nz, g.Nel} {
		if n > math.MaxInt/ntot {
			return fmt.Errorf("sample count overflows")
		}
		ntot *= n
	}
	if ntot > math.MaxInt/(8*nfields) {
		return fmt.Errorf("%d fields of %d samples is too large", nfields, ntot)
	}
	return nil
}

func checkFieldNames(fields string) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields named")
	}
	seen := make(map[byte]bool, len(fields))
	for i := 0; i < len(fields); i++ {
		c := fields[i]
		if c <= ' ' || c > '~' {
			return fmt.Errorf("illegal field name %q", c)
		}
		if seen[c] {
			return fmt.Errorf("field %c named twice in %q", c, fields)
		}
		seen[c] = true
	}
	return nil
}

// WriteHeader emits the header in the solver's layout. An empty Created
// is stamped with the current time and an empty Format with little-endian.
func WriteHeader(w io.Writer, h Header) (err error) {
	if h.Created == "" {
		h.Created = time.Now().Format(createdLayout)
	}
	if h.Format == "" {
		h.Format = LittleEndian
	}
	lines := []string{
		fmt.Sprintf("%-25s ", h.Session),
		fmt.Sprintf("%-25s ", h.Created),
		fmt.Sprintf("%-25s ", h.Geometry.String()),
		fmt.Sprintf("%-25d ", h.Step),
		fmt.Sprintf("%-25.6g ", h.Time),
		fmt.Sprintf("%-25.6g ", h.TimeStep),
		fmt.Sprintf("%-25.6g ", h.Kinvis),
		fmt.Sprintf("%-25.6g ", h.Beta),
		fmt.Sprintf("%-25s ", h.Fields),
		fmt.Sprintf("%-25s ", h.Format),
	}
	for i, line := range lines {
		if _, err = io.WriteString(w, line+headerLabels[i]+"\n"); err != nil {
			return
		}
	}
	return
}

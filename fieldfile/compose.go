package fieldfile

import (
	"regexp"
	"strings"

	"github.com/notargets/semtools/types"
	"github.com/notargets/semtools/utils"
)

// Selection picks the source field Source and writes it out as Target
type Selection struct {
	Source, Target byte
}

var wordRE = regexp.MustCompile(`\S+`)

// ParseSelection splits an operator's answer into whitespace delimited words
func ParseSelection(input string) []string {
	return wordRE.FindAllString(input, -1)
}

// NewSelection resolves words against the available field names. A word is
// either a run of field names ("u", "uvp") or a rename "uv=ab", which maps
// u to a and v to b. Output names must be unique.
func NewSelection(words []string, available string) (sel []Selection, err error) {
	if len(words) == 0 {
		return nil, types.NewSelection("no fields requested, available fields are %q", available)
	}
	seen := make(map[byte]bool)
	for _, word := range words {
		src, dst := word, word
		if i := strings.IndexByte(word, '='); i >= 0 {
			src, dst = word[:i], word[i+1:]
			if len(src) == 0 || len(src) != len(dst) {
				return nil, types.NewSelection("rename %q must map each field to exactly one new name", word)
			}
		}
		for i := 0; i < len(src); i++ {
			if strings.IndexByte(available, src[i]) < 0 {
				return nil, types.NewSelection("field %c not present, available fields are %q", src[i], available)
			}
			if err = checkFieldNames(dst[i : i+1]); err != nil {
				return nil, types.NewSelection("bad output name in %q", word)
			}
			if seen[dst[i]] {
				return nil, types.NewSelection("output field %c requested twice", dst[i])
			}
			seen[dst[i]] = true
			sel = append(sel, Selection{Source: src[i], Target: dst[i]})
		}
	}
	return
}

// Targets is the output field string of a selection
func Targets(sel []Selection) string {
	b := make([]byte, len(sel))
	for i, s := range sel {
		b[i] = s.Target
	}
	return string(b)
}

// Union lists every field name across the files, first file first
func Union(files ...*Fieldfile) string {
	var sb strings.Builder
	for _, ff := range files {
		for i := 0; i < len(ff.Header.Fields); i++ {
			if c := ff.Header.Fields[i]; !strings.ContainsRune(sb.String(), rune(c)) {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// CheckConformance fails unless nr, ns, nz and nel agree
func CheckConformance(a, b *Fieldfile) error {
	if !Conformant(a.Header, b.Header) {
		return types.NewGeometryMismatch(a.Name, b.Name, a.Header.Geometry, b.Header.Geometry)
	}
	return nil
}

// Compose copies the selected arrays into a new field file. Each source
// field comes from the first file that carries it. The header is the
// first file's, with the field string set to the selection's targets.
func Compose(sel []Selection, files ...*Fieldfile) (ff *Fieldfile, err error) {
	if len(files) == 0 {
		return nil, types.NewUsage("no input field files")
	}
	for _, other := range files[1:] {
		if err = CheckConformance(files[0], other); err != nil {
			return
		}
	}
	hdr := files[0].Header
	hdr.Fields = Targets(sel)
	data := make([][]float64, len(sel))
	for i, s := range sel {
		var src []float64
		for _, f := range files {
			if d, ok := f.Field(s.Source); ok {
				src = d
				break
			}
		}
		if src == nil {
			return nil, types.NewSelection("field %c not present in %s", s.Source, Union(files...))
		}
		data[i] = make([]float64, len(src))
		copy(data[i], src)
	}
	return NewFieldfile(files[0].Name, hdr, data)
}

// ConcentrationToVelocity turns a uvcp file into a uvwp file that carries
// the scalar c in the w slot with u, v and p zeroed. Time and step restart
// from zero.
func ConcentrationToVelocity(in *Fieldfile) (ff *Fieldfile, err error) {
	const (
		expected = "uvcp"
		target   = "uvwp"
	)
	if in.Header.Fields != expected {
		return nil, types.NewSelection("expected fields %s, found %s", expected, in.Header.Fields)
	}
	hdr := in.Header
	hdr.Fields = target
	hdr.Time = 0
	hdr.Step = 0
	ntot := hdr.NTot()
	c, _ := in.Field('c')
	w := make([]float64, ntot)
	copy(w, c)
	data := [][]float64{
		utils.ConstArray(ntot, 0),
		utils.ConstArray(ntot, 0),
		w,
		utils.ConstArray(ntot, 0),
	}
	return NewFieldfile(in.Name, hdr, data)
}

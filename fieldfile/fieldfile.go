package fieldfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/semtools/types"
	"github.com/notargets/semtools/utils"
)

// Fieldfile is a header plus one array of NTot samples per character of
// Header.Fields, in the same order.
type Fieldfile struct {
	Name   string // Where the data came from, used in messages
	Header Header
	Data   [][]float64
}

// NewFieldfile checks that data agrees with the header's field string and
// geometry before pairing them.
func NewFieldfile(name string, hdr Header, data [][]float64) (ff *Fieldfile, err error) {
	if err = checkFieldNames(hdr.Fields); err != nil {
		return nil, types.NewFormat(name, err, "bad field names")
	}
	if len(data) != len(hdr.Fields) {
		return nil, types.NewFormat(name, nil, "%d arrays for %d fields %q", len(data), len(hdr.Fields), hdr.Fields)
	}
	ntot := hdr.NTot()
	for i, d := range data {
		if len(d) != ntot {
			return nil, types.NewFormat(name, nil, "field %c has %d samples, geometry [%s] needs %d",
				hdr.Fields[i], len(d), hdr.Geometry, ntot)
		}
	}
	ff = &Fieldfile{Name: name, Header: hdr, Data: data}
	return
}

func Open(path string) (ff *Fieldfile, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(path); err != nil {
		return
	}
	defer file.Close()
	return Read(file, path)
}

func Read(r io.Reader, name string) (ff *Fieldfile, err error) {
	var (
		reader = bufio.NewReader(r)
		hdr    Header
	)
	if hdr, err = ReadHeader(reader, name); err != nil {
		return
	}
	var (
		ntot  = hdr.NTot()
		order = hdr.ByteOrder()
		data  = make([][]float64, len(hdr.Fields))
	)
	for i := range data {
		if data[i], err = readField(reader, order, ntot); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, types.NewFormat(name, err, "short data for field %c", hdr.Fields[i])
		}
		if utils.IsNan(data[i]) {
			log.WithFields(log.Fields{
				"file":  name,
				"field": string(hdr.Fields[i]),
			}).Warn("field contains NaN values")
		}
	}
	log.WithFields(log.Fields{
		"file":   name,
		"fields": hdr.Fields,
		"ntot":   ntot,
	}).Debug("read field file")
	return NewFieldfile(name, hdr, data)
}

// readChunk bounds each read, so the storage for a field grows only as far
// as the data actually present.
const readChunk = 1 << 12

func readField(r io.Reader, order binary.ByteOrder, ntot int) (data []float64, err error) {
	chunk := make([]float64, min(ntot, readChunk))
	for len(data) < ntot {
		buf := chunk[:min(ntot-len(data), len(chunk))]
		if err = binary.Read(r, order, buf); err != nil {
			return
		}
		data = append(data, buf...)
	}
	return
}

// Field returns the array stored under name
func (ff *Fieldfile) Field(name byte) (data []float64, ok bool) {
	if i := strings.IndexByte(ff.Header.Fields, name); i >= 0 {
		return ff.Data[i], true
	}
	return nil, false
}

// WriteTo writes the header followed by each array, using the byte order
// named in the header.
func (ff *Fieldfile) WriteTo(w io.Writer) (n int64, err error) {
	var (
		cw    = &countingWriter{w: w}
		bw    = bufio.NewWriter(cw)
		order = ff.Header.ByteOrder()
	)
	if err = WriteHeader(bw, ff.Header); err != nil {
		return cw.n, err
	}
	for i, d := range ff.Data {
		if err = binary.Write(bw, order, d); err != nil {
			return cw.n, fmt.Errorf("writing field %c: %w", ff.Header.Fields[i], err)
		}
	}
	err = bw.Flush()
	return cw.n, err
}

// Write creates or truncates path and writes the field file into it
func (ff *Fieldfile) Write(path string) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(path); err != nil {
		return
	}
	if _, err = ff.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = file.Close(); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"file":   path,
		"fields": ff.Header.Fields,
	}).Debug("wrote field file")
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

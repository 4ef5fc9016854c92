package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/semtools/fieldfile"
	"github.com/notargets/semtools/types"
)

func writeTestFile(t *testing.T, dir, name, fields string, nz int) string {
	hdr := fieldfile.Header{
		Session:  "pipe",
		Geometry: fieldfile.Geometry{Nr: 3, Ns: 3, Nz: nz, Nel: 2},
		Step:     10,
		Time:     0.5,
		TimeStep: 0.05,
		Kinvis:   0.001,
		Beta:     1,
		Fields:   fields,
	}
	data := make([][]float64, len(fields))
	for i := range data {
		data[i] = make([]float64, hdr.NTot())
		for j := range data[i] {
			data[i][j] = float64(10*i + j)
		}
	}
	ff, err := fieldfile.NewFieldfile(name, hdr, data)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, ff.Write(path))
	return path
}

func TestRunCompose(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.fld", "uvwp", 1)
	{ // Single file, answers from the prompts
		outPath := filepath.Join(dir, "pu.fld")
		var out bytes.Buffer
		err := RunCompose(strings.NewReader("p u\n"+outPath+"\n"), &out, []string{a}, &ComposeOptions{})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "indicate the ones you want")
		assert.Contains(t, out.String(), "uvwp\n")
		assert.Contains(t, out.String(), "type in an output file name: ")
		src, err := fieldfile.Open(a)
		require.NoError(t, err)
		got, err := fieldfile.Open(outPath)
		require.NoError(t, err)
		assert.Equal(t, "pu", got.Header.Fields)
		p, _ := src.Field('p')
		u, _ := src.Field('u')
		assert.Equal(t, [][]float64{p, u}, got.Data)
	}
	{ // Answers from options, with a rename
		outPath := filepath.Join(dir, "w.fld")
		err := RunCompose(strings.NewReader(""), &bytes.Buffer{}, []string{a},
			&ComposeOptions{Fields: "w=c", Output: outPath})
		require.NoError(t, err)
		got, err := fieldfile.Open(outPath)
		require.NoError(t, err)
		assert.Equal(t, "c", got.Header.Fields)
	}
	{ // Unknown field, nothing written
		outPath := filepath.Join(dir, "never.fld")
		err := RunCompose(strings.NewReader("q\n"+outPath+"\n"), &bytes.Buffer{}, []string{a}, &ComposeOptions{})
		assert.True(t, errors.Is(err, types.ErrSelection))
		assert.NoFileExists(t, outPath)
	}
	{ // Input ends before an answer
		err := RunCompose(strings.NewReader(""), &bytes.Buffer{}, []string{a}, &ComposeOptions{})
		assert.True(t, errors.Is(err, types.ErrUsage))
		err = RunCompose(strings.NewReader("u\n\n"), &bytes.Buffer{}, []string{a}, &ComposeOptions{})
		assert.True(t, errors.Is(err, types.ErrUsage))
	}
}

func TestRunComposeTwoFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.fld", "uvp", 1)
	b := writeTestFile(t, dir, "b.fld", "c", 1)
	{ // Fields drawn from both files
		outPath := filepath.Join(dir, "uvcp.fld")
		var out bytes.Buffer
		require.NoError(t, RunCompose(strings.NewReader("uv c p\n"), &out, []string{a, b},
			&ComposeOptions{Output: outPath}))
		assert.Contains(t, out.String(), "uvpc\n")
		got, err := fieldfile.Open(outPath)
		require.NoError(t, err)
		assert.Equal(t, "uvcp", got.Header.Fields)
		assert.Equal(t, 0., got.Data[2][0])
		assert.Equal(t, 20., got.Data[3][0])
	}
	{ // Non-conformant files stop before any prompt or output
		c := writeTestFile(t, dir, "c.fld", "c", 2)
		outPath := filepath.Join(dir, "bad.fld")
		var out bytes.Buffer
		err := RunCompose(strings.NewReader("u c\n"+outPath+"\n"), &out, []string{a, c}, &ComposeOptions{})
		assert.True(t, errors.Is(err, types.ErrGeometryMismatch))
		assert.Contains(t, err.Error(), "a.fld")
		assert.Contains(t, err.Error(), "c.fld")
		assert.Empty(t, out.String())
		assert.NoFileExists(t, outPath)
	}
}

func TestRunC2W(t *testing.T) {
	dir := t.TempDir()
	{
		src := writeTestFile(t, dir, "scalar.fld", "uvcp", 1)
		var out bytes.Buffer
		require.NoError(t, RunC2W(&out, src, ""))
		got, err := fieldfile.Read(&out, "stdout")
		require.NoError(t, err)
		assert.Equal(t, "uvwp", got.Header.Fields)
		assert.Equal(t, 0., got.Header.Time)
		assert.Equal(t, 0, got.Header.Step)
		assert.Equal(t, 21., got.Data[2][1])
		assert.Equal(t, 0., got.Data[3][1])
	}
	{
		src := writeTestFile(t, dir, "velocity.fld", "uvwp", 1)
		outPath := filepath.Join(dir, "never.fld")
		err := RunC2W(&bytes.Buffer{}, src, outPath)
		assert.True(t, errors.Is(err, types.ErrSelection))
		assert.NoFileExists(t, outPath)
	}
}

func TestRootCommand(t *testing.T) {
	{ // Wrong argument counts are usage errors
		rootCmd.SetArgs([]string{"wavy", "2.0", "0.1"})
		err := rootCmd.Execute()
		assert.True(t, errors.Is(err, types.ErrUsage))
		rootCmd.SetArgs([]string{"compose"})
		err = rootCmd.Execute()
		assert.True(t, errors.Is(err, types.ErrUsage))
	}
	{ // compose through cobra, reading answers from the command's input
		dir := t.TempDir()
		a := writeTestFile(t, dir, "a.fld", "uvwp", 1)
		outPath := filepath.Join(dir, "v.fld")
		var out bytes.Buffer
		rootCmd.SetIn(strings.NewReader("v\n" + outPath + "\n"))
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"compose", a})
		require.NoError(t, rootCmd.Execute())
		got, err := fieldfile.Open(outPath)
		require.NoError(t, err)
		assert.Equal(t, "v", got.Header.Fields)
	}
}

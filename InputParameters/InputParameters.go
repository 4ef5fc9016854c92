package InputParameters

import (
	"fmt"
	"io/ioutil"

	"github.com/ghodss/yaml"
)

// Parameters for the wavy session generator, obtained from a YAML file.
// beta_x and eps_y always come from the command line.
type WavyParameters struct {
	Title       string    `yaml:"Title"`
	NX          int       `yaml:"NX"`          // Number of x samples across one wavelength
	YSamples    []float64 `yaml:"YSamples"`    // Element row boundaries on [0,1]
	CurvePoints int       `yaml:"CurvePoints"` // Points in each spline profile
	RectMesh    string    `yaml:"RectMesh"`
	MapMesh     string    `yaml:"MapMesh"`
}

func (ip *WavyParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func ReadWavyParameters(path string) (ip *WavyParameters, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(path); err != nil {
		return
	}
	ip = &WavyParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}

func (ip *WavyParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= NX\n", ip.NX)
	fmt.Printf("%v\t= YSamples\n", ip.YSamples)
	fmt.Printf("[%d]\t\t\t= CurvePoints\n", ip.CurvePoints)
	fmt.Printf("[%s]\t\t= RectMesh\n", ip.RectMesh)
	fmt.Printf("[%s]\t\t= MapMesh\n", ip.MapMesh)
}

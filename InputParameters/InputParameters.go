package InputParameters

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file for a heart wall run
type InputParametersIB struct {
	Title          string  `yaml:"Title"`
	TargetFile     string  `yaml:"TargetFile"`
	ReferenceFile  string  `yaml:"ReferenceFile"`
	OutputFile     string  `yaml:"OutputFile"`
	FinalTime      float64 `yaml:"FinalTime"`
	DT             float64 `yaml:"DT"`
	OutputEvery    int     `yaml:"OutputEvery"`
	CacheReference bool    `yaml:"CacheReference"`
}

func (ip *InputParametersIB) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func ReadInputParameters(filename string) (ip *InputParametersIB, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	ip = &InputParametersIB{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse input file %s: %w", filename, err)
	}
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("input file %s: %w", filename, err)
	}
	return
}

// Validate fills defaults and rejects a run that cannot step.
func (ip *InputParametersIB) Validate() (err error) {
	switch {
	case len(ip.TargetFile) == 0:
		return fmt.Errorf("TargetFile is required")
	case len(ip.ReferenceFile) == 0:
		return fmt.Errorf("ReferenceFile is required")
	case ip.DT <= 0:
		return fmt.Errorf("DT must be positive, have %v", ip.DT)
	case ip.FinalTime < 0:
		return fmt.Errorf("FinalTime must not be negative, have %v", ip.FinalTime)
	}
	if ip.OutputEvery <= 0 {
		ip.OutputEvery = 1
	}
	return
}

func (ip *InputParametersIB) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t= Target File\n", ip.TargetFile)
	fmt.Printf("[%s]\t= Reference File\n", ip.ReferenceFile)
	if len(ip.OutputFile) != 0 {
		fmt.Printf("[%s]\t= Output File\n", ip.OutputFile)
	}
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= DT\n", ip.DT)
	fmt.Printf("[%d]\t\t\t\t= Output Every\n", ip.OutputEvery)
	fmt.Printf("[%v]\t\t\t= Cache Reference\n", ip.CacheReference)
}

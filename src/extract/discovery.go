package extract

import (
	"errors"
	"path/filepath"
	"strconv"
)

// Discovery enumerates the result files of one experiment under a root directory.
type Discovery interface {
	Inputs(root string) []Input
	Validate() error
}

// Affine maps a condition value to the plotted independent value as Offset + Scale*v.
// An unset Scale counts as 1, so the zero value is the identity and a lone
// offset shifts the axis.
type Affine struct {
	Offset float64 `yaml:"offset"`
	Scale  float64 `yaml:"scale"`
}

// Apply transforms v.
func (a Affine) Apply(v float64) float64 {
	scale := a.Scale
	if scale == 0 {
		scale = 1
	}
	return a.Offset + scale*v
}

// Sequence is a numbered run of files in one directory: <Prefix><i><Extension>
// for i in [Min, Max]. The run id is i.
type Sequence struct {
	Prefix    string `yaml:"prefix"`
	Extension string `yaml:"extension"`
	Min       int    `yaml:"min"`
	Max       int    `yaml:"max"`
}

func (s Sequence) Inputs(root string) []Input {
	var out []Input
	for i := s.Min; i <= s.Max; i++ {
		out = append(out, Input{Path: filepath.Join(root, s.Prefix+strconv.Itoa(i)+s.Extension), Run: i})
	}
	return out
}

func (s Sequence) Validate() error {
	if s.Prefix == "" {
		return errors.New("sequence: empty prefix")
	}
	if s.Max < s.Min {
		return errors.New("sequence: max below min")
	}
	return nil
}

// Conditions is one numbered run of files per condition value, each under its
// own subdirectory: <value><DirSuffix>/<FilePrefix><i><Extension> for i in [0, Runs).
// Every input of a subdirectory carries X = Transform.Apply(value).
type Conditions struct {
	Values     []int  `yaml:"values"`
	DirSuffix  string `yaml:"dir_suffix"`
	FilePrefix string `yaml:"file_prefix"`
	Extension  string `yaml:"extension"`
	Runs       int    `yaml:"runs"`
	Transform  Affine `yaml:"transform"`
}

func (c Conditions) Inputs(root string) []Input {
	var out []Input
	for _, v := range c.Values {
		dir := filepath.Join(root, strconv.Itoa(v)+c.DirSuffix)
		x := c.Transform.Apply(float64(v))
		for i := 0; i < c.Runs; i++ {
			out = append(out, Input{Path: filepath.Join(dir, c.FilePrefix+strconv.Itoa(i)+c.Extension), Run: i, X: x})
		}
	}
	return out
}

func (c Conditions) Validate() error {
	if len(c.Values) == 0 {
		return errors.New("conditions: no values")
	}
	if c.Runs <= 0 {
		return errors.New("conditions: runs must be positive")
	}
	if c.FilePrefix == "" {
		return errors.New("conditions: empty file prefix")
	}
	return nil
}

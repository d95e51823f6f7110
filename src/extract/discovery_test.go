package extract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceInputs(t *testing.T) {
	s := Sequence{Prefix: "results_detail_", Extension: ".csv", Min: 0, Max: 9}
	require.NoError(t, s.Validate())
	in := s.Inputs("exp1")
	require.Len(t, in, 10)
	assert.Equal(t, Input{Path: filepath.Join("exp1", "results_detail_0.csv"), Run: 0}, in[0])
	assert.Equal(t, Input{Path: filepath.Join("exp1", "results_detail_9.csv"), Run: 9}, in[9])

	assert.Error(t, Sequence{Prefix: "x", Min: 3, Max: 2}.Validate())
	assert.Error(t, Sequence{Max: 2}.Validate())
}

func TestConditionsInputs_AffineTransform(t *testing.T) {
	c := Conditions{
		Values:     []int{12, 24},
		DirSuffix:  "nodes",
		FilePrefix: "results_total_",
		Extension:  ".csv",
		Runs:       3,
		Transform:  Affine{Offset: 2, Scale: 5},
	}
	require.NoError(t, c.Validate())
	in := c.Inputs("data")
	require.Len(t, in, 6)
	assert.Equal(t, Input{Path: filepath.Join("data", "12nodes", "results_total_0.csv"), Run: 0, X: 62}, in[0])
	assert.Equal(t, Input{Path: filepath.Join("data", "24nodes", "results_total_2.csv"), Run: 2, X: 122}, in[5])
}

func TestAffineApply(t *testing.T) {
	assert.Equal(t, 15.0, Affine{}.Apply(15))
	assert.Equal(t, 0.0, Affine{Scale: 0, Offset: 0}.Apply(0))
	assert.Equal(t, 107.0, Affine{Offset: 7}.Apply(100), "unset scale keeps the values distinct")
	assert.Equal(t, -4.0, Affine{Scale: -2}.Apply(2))
}

func TestConditionsInputs_OffsetOnly(t *testing.T) {
	c := Conditions{Values: []int{5, 10}, DirSuffix: "regions", FilePrefix: "results_total_", Extension: ".csv", Runs: 1, Transform: Affine{Offset: 2}}
	in := c.Inputs("data")
	require.Len(t, in, 2)
	assert.Equal(t, 7.0, in[0].X)
	assert.Equal(t, 12.0, in[1].X)
}

func TestConditionsValidate(t *testing.T) {
	assert.Error(t, Conditions{FilePrefix: "r", Runs: 1}.Validate())
	assert.Error(t, Conditions{Values: []int{1}, FilePrefix: "r"}.Validate())
	assert.Error(t, Conditions{Values: []int{1}, Runs: 1}.Validate())
}

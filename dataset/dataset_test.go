package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/model"
)

const events = `EventID , PDG , Edep , Volume
1, 11, 17.2, shell
2, 22, 3.5, core
3, 11, 16.9, shell
4, 12, 0.1, core
5, 11, 31.0, shell
`

func TestLoad(t *testing.T) {
	d, err := Load(strings.NewReader(events))
	require.NoError(t, err)

	assert.Equal(t, 5, d.Rows())
	assert.Equal(t, []string{"EventID", "PDG", "Edep", "Volume"}, d.Names())

	edep, err := d.Column(" Edep")
	require.NoError(t, err)
	assert.Equal(t, model.Sample{17.2, 3.5, 16.9, 0.1, 31.0}, edep)

	_, err = d.Column("Volume")
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	_, err = d.Column("Energy")
	assert.True(t, errors.Is(err, common.ErrorUnknownColumn))
}

func TestSelect(t *testing.T) {
	d, err := Load(strings.NewReader(events))
	require.NoError(t, err)

	electrons, err := d.Select("PDG", 11, "Edep ")
	require.NoError(t, err)
	assert.Equal(t, model.Sample{17.2, 16.9, 31.0}, electrons)

	none, err := d.Select("PDG", 13, "Edep")
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())

	_, err = d.Select("Particle", 11, "Edep")
	assert.True(t, errors.Is(err, common.ErrorUnknownColumn))
}

func TestColumnReturnsCopy(t *testing.T) {
	d, err := Load(strings.NewReader(events))
	require.NoError(t, err)

	first, err := d.Column("Edep")
	require.NoError(t, err)
	first[0] = -1

	second, err := d.Column("Edep")
	require.NoError(t, err)
	assert.Equal(t, 17.2, second[0])
}

func TestCategories(t *testing.T) {
	d, err := Load(strings.NewReader(events))
	require.NoError(t, err)

	counts, err := d.CategoryCounts("PDG")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{11: 3, 12: 1, 22: 1}, counts)

	codes, err := d.Categories("PDG")
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 22}, codes)

	_, err = d.CategoryCounts("Edep")
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"empty column name", "a,,c\n1,2,3\n"},
		{"duplicate column", "a, a\n1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.csv))
			assert.True(t, errors.Is(err, common.ErrorInvalidValue))
		})
	}

	_, err := Load(strings.NewReader("a,b\n1,2\n3\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(path, []byte(events), 0644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, d.Rows())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

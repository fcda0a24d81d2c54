package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/model"
)

// Dataset is a table of simulated detector events. Column names are stored
// without surrounding whitespace and every cell is parsed when the table is
// loaded.
type Dataset struct {
	names   []string
	columns map[string][]float64
	// columns holding a non numeric cell, with the reason
	invalid map[string]error
	rows    int
}

// NormalizeName strips the whitespace the detector exports leave around headers.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a CSV table with a header row.
func Load(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset has no header: %w", common.ErrorInvalidValue)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	d := &Dataset{
		names:   make([]string, len(header)),
		columns: make(map[string][]float64, len(header)),
		invalid: map[string]error{},
	}
	for i, name := range header {
		name = NormalizeName(name)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name: %w", i, common.ErrorInvalidValue)
		}
		if _, ok := d.columns[name]; ok {
			return nil, fmt.Errorf("duplicate column %q: %w", name, common.ErrorInvalidValue)
		}
		d.names[i] = name
		d.columns[name] = []float64{}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", d.rows+1, err)
		}
		d.appendRow(record)
	}
	return d, nil
}

func (d *Dataset) appendRow(record []string) {
	d.rows++
	for i, name := range d.names {
		if _, bad := d.invalid[name]; bad {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			d.invalid[name] = fmt.Errorf("row %d: %w", d.rows, err)
			continue
		}
		d.columns[name] = append(d.columns[name], v)
	}
}

func (d *Dataset) Rows() int {
	return d.rows
}

func (d *Dataset) Names() []string {
	res := make([]string, len(d.names))
	copy(res, d.names)
	return res
}

// Column returns a copy of a numeric column.
func (d *Dataset) Column(name string) (model.Sample, error) {
	name = NormalizeName(name)
	values, ok := d.columns[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, common.ErrorUnknownColumn)
	}
	if err := d.invalid[name]; err != nil {
		return nil, fmt.Errorf("column %q is not numeric: %v: %w", name, err, common.ErrorInvalidValue)
	}
	res := make(model.Sample, len(values))
	copy(res, values)
	return res, nil
}

// Select returns the values of column for the events whose categoryColumn equals code.
func (d *Dataset) Select(categoryColumn string, code int, column string) (model.Sample, error) {
	codes, err := d.Column(categoryColumn)
	if err != nil {
		return nil, err
	}
	values, err := d.Column(column)
	if err != nil {
		return nil, err
	}

	res := model.Sample{}
	for i, c := range codes {
		if c == float64(code) {
			res = append(res, values[i])
		}
	}
	return res, nil
}

// CategoryCounts counts the events of every code present in categoryColumn.
func (d *Dataset) CategoryCounts(categoryColumn string) (map[int]int, error) {
	codes, err := d.Column(categoryColumn)
	if err != nil {
		return nil, err
	}
	res := map[int]int{}
	for _, c := range codes {
		if c != math.Trunc(c) {
			return nil, fmt.Errorf("category %v is not an integer code: %w", c, common.ErrorInvalidValue)
		}
		res[int(c)]++
	}
	return res, nil
}

// Categories returns the codes present in categoryColumn in ascending order.
func (d *Dataset) Categories(categoryColumn string) ([]int, error) {
	counts, err := d.CategoryCounts(categoryColumn)
	if err != nil {
		return nil, err
	}
	res := make([]int, 0, len(counts))
	for code := range counts {
		res = append(res, code)
	}
	sort.Ints(res)
	return res, nil
}

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	colX    = "xdat"
	colY    = "ydat"
	colXErr = "xerr"
	colYErr = "yerr"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoHeader      = errors.New("no header row")
)

// FromCSV reads a DataSet from delimited data with a header row. The columns
// xdat and ydat are required; xerr and yerr are optional and produce the
// corresponding uncertainty series when present. Any other columns are
// ignored.
func FromCSV(r io.Reader) (*DataSet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header, %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	xIdx, ok := colIdx[colX]
	if !ok {
		return nil, fmt.Errorf("%s, %w", colX, ErrMissingColumn)
	}
	yIdx, ok := colIdx[colY]
	if !ok {
		return nil, fmt.Errorf("%s, %w", colY, ErrMissingColumn)
	}
	xeIdx, hasXErr := colIdx[colXErr]
	yeIdx, hasYErr := colIdx[colYErr]

	var x, y, xerr, yerr []float64
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read row %d, %w", row, err)
		}

		xv, err := parseField(rec, xIdx, colX, row)
		if err != nil {
			return nil, err
		}
		yv, err := parseField(rec, yIdx, colY, row)
		if err != nil {
			return nil, err
		}
		x = append(x, xv)
		y = append(y, yv)

		if hasXErr {
			xe, err := parseField(rec, xeIdx, colXErr, row)
			if err != nil {
				return nil, err
			}
			xerr = append(xerr, xe)
		}
		if hasYErr {
			ye, err := parseField(rec, yeIdx, colYErr, row)
			if err != nil {
				return nil, err
			}
			yerr = append(yerr, ye)
		}
	}

	return New(x, y, xerr, yerr)
}

// FromCSVFile reads a DataSet from the delimited file at path. See FromCSV
// for the expected layout.
func FromCSVFile(path string) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s, %w", path, err)
	}
	defer f.Close()
	return FromCSV(f)
}

func parseField(rec []string, idx int, col string, row int) (float64, error) {
	if idx >= len(rec) {
		return 0, fmt.Errorf("row %d has no %s field, %w", row, col, ErrMissingColumn)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %s, %w", row, col, err)
	}
	return v, nil
}

package importer

import (
	"bytes"
	"strings"

	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ParseProductXLSX reads the first sheet of a workbook and feeds its rows
// through the same header resolution and row validation as the CSV path.
// Unlike CSV, opening a corrupt workbook is an error; a readable workbook
// with a bad header still degrades to an empty result.
func ParseProductXLSX(data []byte) ([]domain.RawProduct, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "read sheet rows")
	}

	var table [][]string
	for _, row := range rows {
		empty := true
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			table = append(table, row)
		}
	}
	if len(table) < 2 {
		return nil, nil
	}
	return parseTable(table), nil
}

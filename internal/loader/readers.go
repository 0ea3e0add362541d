package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	// Ragged rows are tolerated; cell access bounds-checks instead.
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// readExcel loads the first sheet that has a header row plus data. Files
// where every sheet is empty are unusable.
func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		if len(rows) > 1 {
			return rows, nil
		}
	}

	return nil, errors.New("workbook contains no data")
}

// readLegacyExcel loads a BIFF (pre-2007 .xls) workbook. Like readExcel it
// takes the first sheet that has a header row plus data.
func readLegacyExcel(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	wb, err := xls.OpenReader(bytes.NewReader(raw), "utf-8")
	if err != nil {
		return nil, err
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil || sheet.MaxRow == 0 {
			continue
		}

		rows := make([][]string, int(sheet.MaxRow)+1)
		for ri := range rows {
			row := sheet.Row(ri)
			if row == nil {
				continue
			}
			cells := make([]string, row.LastCol())
			for ci := row.FirstCol(); ci < row.LastCol(); ci++ {
				cells[ci] = row.Col(ci)
			}
			rows[ri] = cells
		}
		return rows, nil
	}

	return nil, errors.New("workbook contains no data")
}

package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Reader is the minimal spreadsheet surface the parser consumes: list the
// sheet names and read one sheet as a raw string grid.
type Reader interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
	Close() error
}

// OpenReader opens a workbook file, choosing the backend by extension:
// legacy .xls through extrame/xls, everything else through excelize.
func OpenReader(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		wb, err := xls.Open(path, "utf-8")
		if err != nil {
			return nil, fmt.Errorf("open xls workbook: %w", err)
		}
		return &xlsReader{wb: wb}, nil
	default:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		return &xlsxReader{file: f}, nil
	}
}

// xlsxReader adapts an excelize workbook.
type xlsxReader struct {
	file *excelize.File
}

func (r *xlsxReader) SheetNames() []string {
	return r.file.GetSheetList()
}

func (r *xlsxReader) Rows(sheet string) ([][]string, error) {
	return r.file.GetRows(sheet)
}

func (r *xlsxReader) Close() error {
	return r.file.Close()
}

// NewExcelizeReader wraps an already-open excelize workbook. Used by the
// upload handler and by tests that build fixture workbooks in memory.
func NewExcelizeReader(f *excelize.File) Reader {
	return &xlsxReader{file: f}
}

// xlsReader adapts a legacy BIFF workbook.
type xlsReader struct {
	wb *xls.WorkBook
}

func (r *xlsReader) SheetNames() []string {
	names := make([]string, 0, r.wb.NumSheets())
	for i := 0; i < r.wb.NumSheets(); i++ {
		if sheet := r.wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (r *xlsReader) Rows(sheet string) ([][]string, error) {
	for i := 0; i < r.wb.NumSheets(); i++ {
		ws := r.wb.GetSheet(i)
		if ws == nil || ws.Name != sheet {
			continue
		}
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for rowIdx := 0; rowIdx <= int(ws.MaxRow); rowIdx++ {
			row := ws.Row(rowIdx)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for colIdx := row.FirstCol(); colIdx < row.LastCol(); colIdx++ {
				cells[colIdx] = row.Col(colIdx)
			}
			rows = append(rows, cells)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("sheet %q not found", sheet)
}

func (r *xlsReader) Close() error {
	return nil
}

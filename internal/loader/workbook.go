package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbookSource serves the rows of one worksheet as delimiter-joined lines, so the
// rest of the pipeline does not care whether the export was saved as text or
// as a workbook. Blank rows come back as empty lines to keep line numbers
// aligned with the sheet.
type workbookSource struct {
	file      *excelize.File
	rows      [][]string
	delimiter string
	pos       int
}

func openWorkbook(path, sheet, delimiter string) (*workbookSource, error) {
	if delimiter == "" {
		delimiter = "\t"
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		f.Close()
		return nil, &ResourceError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, &ResourceError{Path: path, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}

	return &workbookSource{file: f, rows: rows, delimiter: delimiter}, nil
}

func (w *workbookSource) next() (string, error) {
	if w.pos >= len(w.rows) {
		return "", io.EOF
	}
	row := w.rows[w.pos]
	w.pos++
	return strings.Join(row, w.delimiter), nil
}

func (w *workbookSource) close() error {
	return w.file.Close()
}

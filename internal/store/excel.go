package store

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gridql/gridql/query"
)

// ExcelStore mounts one sheet of an .xlsx workbook as a cell store. Values
// come back from excelize as display strings; the engine's coercion turns
// numeric ones back into numbers.
type ExcelStore struct {
	f     *excelize.File
	sheet string
}

// OpenExcel opens a workbook and mounts its first sheet.
func OpenExcel(path string) (*ExcelStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	return &ExcelStore{f: f, sheet: sheets[0]}, nil
}

// OpenExcelSheet mounts a named sheet instead of the first one.
func OpenExcelSheet(path, sheet string) (*ExcelStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	for _, s := range f.GetSheetList() {
		if s == sheet {
			return &ExcelStore{f: f, sheet: sheet}, nil
		}
	}
	f.Close()
	return nil, fmt.Errorf("sheet %q not found in %s", sheet, path)
}

// Close releases the workbook.
func (e *ExcelStore) Close() error {
	return e.f.Close()
}

// Sheet returns the mounted sheet name.
func (e *ExcelStore) Sheet() string {
	return e.sheet
}

// GetCellValue implements query.Store. Cells outside the used area read as
// the empty string, matching how the workbook itself displays them.
func (e *ExcelStore) GetCellValue(address string) (interface{}, error) {
	v, err := e.f.GetCellValue(e.sheet, address)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetCellRange implements query.Store, flattening the range row-major.
func (e *ExcelStore) GetCellRange(rangeRef string) ([]interface{}, error) {
	addr, err := query.ParseRange(rangeRef)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, 0, addr.Rows()*addr.Columns())
	for row := addr.Start.Row; row <= addr.End.Row; row++ {
		for col := addr.Start.Column; col <= addr.End.Column; col++ {
			ref, err := query.FormatAddress(col, row)
			if err != nil {
				return nil, err
			}
			v, err := e.f.GetCellValue(e.sheet, ref)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return values, nil
}

// ResolveNamedRange implements query.Store by looking through the
// workbook's defined names. A definition like "Sheet1!$A$1:$D$5" resolves
// to "A1:D5"; names scoped to other sheets are ignored.
func (e *ExcelStore) ResolveNamedRange(name string) (string, bool) {
	for _, dn := range e.f.GetDefinedName() {
		if dn.Name != name {
			continue
		}
		ref := dn.RefersTo
		if i := strings.LastIndex(ref, "!"); i >= 0 {
			sheet := strings.Trim(ref[:i], "'")
			if sheet != e.sheet {
				continue
			}
			ref = ref[i+1:]
		}
		ref = strings.ReplaceAll(ref, "$", "")
		if ref != "" {
			return ref, true
		}
	}
	return "", false
}

// GetTableMetadata implements query.Store. Workbook files carry no table
// registry of their own here; wrap the store with a workspace to declare
// tables.
func (e *ExcelStore) GetTableMetadata(string) (*query.TableMetadata, bool) {
	return nil, false
}

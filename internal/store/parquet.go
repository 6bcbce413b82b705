package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gridql/gridql/query"
)

// ParquetStore mounts a parquet file as a sheet grid: fields become
// columns A.. in schema order, row 1 holds the field names, and the data
// rows follow. The file is read once at open time; the grid is a snapshot.
type ParquetStore struct {
	grid    [][]interface{}
	columns int
}

// OpenParquet reads a parquet file into a grid store.
func OpenParquet(path string) (*ParquetStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}

	fields := pf.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}

	header := make([]interface{}, len(names))
	for i, name := range names {
		header[i] = name
	}
	grid := [][]interface{}{header}

	reader := parquet.NewReader(pf)
	defer reader.Close()

	for {
		rowData := make(map[string]interface{})
		if err := reader.Read(&rowData); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		row := make([]interface{}, len(names))
		for i, name := range names {
			row[i] = rowData[name]
		}
		grid = append(grid, row)
	}

	return &ParquetStore{grid: grid, columns: len(names)}, nil
}

// Range returns the full "A1:.." reference covering the mounted grid,
// header row included.
func (p *ParquetStore) Range() (string, error) {
	if p.columns == 0 || len(p.grid) == 0 {
		return "", fmt.Errorf("empty parquet grid")
	}
	end, err := query.FormatAddress(p.columns, len(p.grid))
	if err != nil {
		return "", err
	}
	return "A1:" + end, nil
}

// GetCellValue implements query.Store. Cells outside the grid read as nil.
func (p *ParquetStore) GetCellValue(address string) (interface{}, error) {
	addr, err := query.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return p.cell(addr.Column, addr.Row), nil
}

// GetCellRange implements query.Store, flattening the range row-major.
func (p *ParquetStore) GetCellRange(rangeRef string) ([]interface{}, error) {
	addr, err := query.ParseRange(rangeRef)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, 0, addr.Rows()*addr.Columns())
	for row := addr.Start.Row; row <= addr.End.Row; row++ {
		for col := addr.Start.Column; col <= addr.End.Column; col++ {
			values = append(values, p.cell(col, row))
		}
	}
	return values, nil
}

// ResolveNamedRange implements query.Store. The single built-in name
// "data" covers the whole mounted grid.
func (p *ParquetStore) ResolveNamedRange(name string) (string, bool) {
	if name != "data" {
		return "", false
	}
	ref, err := p.Range()
	if err != nil {
		return "", false
	}
	return ref, true
}

// GetTableMetadata implements query.Store. Parquet mounts declare no
// tables; wrap with a workspace to add them.
func (p *ParquetStore) GetTableMetadata(string) (*query.TableMetadata, bool) {
	return nil, false
}

func (p *ParquetStore) cell(col, row int) interface{} {
	if row < 1 || row > len(p.grid) || col < 1 || col > p.columns {
		return nil
	}
	cells := p.grid[row-1]
	if col > len(cells) {
		return nil
	}
	return cells[col-1]
}

// Package store provides implementations of the query.Store contract: an
// in-memory grid, xlsx and parquet file mounts, and a YAML workspace layer
// for named ranges and table metadata.
package store

import (
	"strings"

	"github.com/gridql/gridql/query"
)

// MemoryStore is a sparse in-memory cell grid with named-range and table
// registries. It is the embedding target for programmatic use and the test
// double for everything else.
type MemoryStore struct {
	cells       map[string]interface{}
	namedRanges map[string]string
	tables      map[string]*query.TableMetadata
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cells:       make(map[string]interface{}),
		namedRanges: make(map[string]string),
		tables:      make(map[string]*query.TableMetadata),
	}
}

// SetCell writes a raw value at an A1-style address.
func (m *MemoryStore) SetCell(address string, value interface{}) {
	m.cells[strings.ToUpper(address)] = value
}

// SetGrid writes a matrix of raw values with its top-left corner at the
// given address, row-major.
func (m *MemoryStore) SetGrid(topLeft string, rows [][]interface{}) error {
	origin, err := query.ParseAddress(topLeft)
	if err != nil {
		return err
	}
	for r, row := range rows {
		for c, value := range row {
			ref, err := query.FormatAddress(origin.Column+c, origin.Row+r)
			if err != nil {
				return err
			}
			m.SetCell(ref, value)
		}
	}
	return nil
}

// DefineNamedRange registers a range alias.
func (m *MemoryStore) DefineNamedRange(name, rangeRef string) {
	m.namedRanges[name] = rangeRef
}

// DefineTable registers table metadata under a table name.
func (m *MemoryStore) DefineTable(name string, meta *query.TableMetadata) {
	m.tables[name] = meta
}

// GetCellValue implements query.Store. Unset cells read as nil.
func (m *MemoryStore) GetCellValue(address string) (interface{}, error) {
	return m.cells[strings.ToUpper(address)], nil
}

// GetCellRange implements query.Store, flattening the range row-major.
func (m *MemoryStore) GetCellRange(rangeRef string) ([]interface{}, error) {
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
			values = append(values, m.cells[ref])
		}
	}
	return values, nil
}

// ResolveNamedRange implements query.Store.
func (m *MemoryStore) ResolveNamedRange(name string) (string, bool) {
	ref, ok := m.namedRanges[name]
	return ref, ok
}

// GetTableMetadata implements query.Store.
func (m *MemoryStore) GetTableMetadata(tableName string) (*query.TableMetadata, bool) {
	meta, ok := m.tables[tableName]
	return meta, ok
}

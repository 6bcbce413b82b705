package query

import "testing"

// testStore backs Store with a dense matrix anchored at A1, plus optional
// named ranges and table metadata.
type testStore struct {
	grid   [][]interface{}
	named  map[string]string
	tables map[string]*TableMetadata
}

func newTestStore(grid [][]interface{}) *testStore {
	return &testStore{
		grid:   grid,
		named:  make(map[string]string),
		tables: make(map[string]*TableMetadata),
	}
}

func (s *testStore) GetCellValue(address string) (interface{}, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	if addr.Row > len(s.grid) {
		return nil, nil
	}
	row := s.grid[addr.Row-1]
	if addr.Column > len(row) {
		return nil, nil
	}
	return row[addr.Column-1], nil
}

func (s *testStore) GetCellRange(rangeRef string) ([]interface{}, error) {
	addr, err := ParseRange(rangeRef)
	if err != nil {
		return nil, err
	}
	var values []interface{}
	for row := addr.Start.Row; row <= addr.End.Row; row++ {
		for col := addr.Start.Column; col <= addr.End.Column; col++ {
			ref, err := FormatAddress(col, row)
			if err != nil {
				return nil, err
			}
			v, err := s.GetCellValue(ref)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func (s *testStore) ResolveNamedRange(name string) (string, bool) {
	ref, ok := s.named[name]
	return ref, ok
}

func (s *testStore) GetTableMetadata(tableName string) (*TableMetadata, bool) {
	meta, ok := s.tables[tableName]
	return meta, ok
}

// salesStore builds the canonical 5-row Region/Amount fixture used across
// the pipeline tests.
func salesStore(t *testing.T) *testStore {
	t.Helper()
	return newTestStore([][]interface{}{
		{"Region", "Amount"},
		{"West", "1000"},
		{"East", "1500"},
		{"West", "2000"},
		{"East", "500"},
		{"West", "1200"},
	})
}

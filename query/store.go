package query

// Store is the collaborator contract the engine reads cells through. All
// reads are synchronous and side-effect free as far as the engine can
// observe; the engine never writes.
type Store interface {
	// GetCellValue returns the raw value at an A1-style address. Unset cells
	// return nil.
	GetCellValue(address string) (interface{}, error)

	// GetCellRange returns the raw values of a rectangular range flattened
	// in row-major order.
	GetCellRange(rangeRef string) ([]interface{}, error)

	// ResolveNamedRange maps a user-defined range alias to its range
	// reference. The second return is false when the name is not defined.
	ResolveNamedRange(name string) (string, bool)

	// GetTableMetadata looks up table metadata by table name. The second
	// return is false when no table is registered under the name.
	GetTableMetadata(tableName string) (*TableMetadata, bool)
}

// TableMetadata describes a logical table laid over a grid range: where it
// lives, how its logical column names map to column letters, and whether
// its first row literally contains those names.
type TableMetadata struct {
	// Range is the "START:END" reference covering the table, header
	// included when HasHeader is set.
	Range string

	// Columns maps logical column names to column letters, e.g.
	// {"Region": "A", "Amount": "B"}.
	Columns map[string]string

	// HasHeader marks the first row of the range as a header row. It is
	// dropped from the working data, not validated against Columns.
	HasHeader bool

	// Types optionally hints at the type of each logical column. The engine
	// does not enforce it; it is carried for collaborators.
	Types map[string]string
}

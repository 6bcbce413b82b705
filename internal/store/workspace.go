package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridql/gridql/query"
)

// Workspace declares named ranges and tables in a YAML file, so
// file-backed stores that carry no metadata of their own can still serve
// Table queries:
//
//	named_ranges:
//	  sales: A1:B6
//	tables:
//	  sales:
//	    range: A1:B6
//	    has_header: true
//	    columns:
//	      Region: A
//	      Amount: B
type Workspace struct {
	NamedRanges map[string]string    `yaml:"named_ranges"`
	Tables      map[string]TableSpec `yaml:"tables"`
}

// TableSpec is the YAML form of query.TableMetadata.
type TableSpec struct {
	Range     string            `yaml:"range"`
	Columns   map[string]string `yaml:"columns"`
	HasHeader bool              `yaml:"has_header"`
	Types     map[string]string `yaml:"types,omitempty"`
}

// LoadWorkspace reads and parses a workspace file.
func LoadWorkspace(path string) (*Workspace, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWorkspace(b)
}

// ParseWorkspace parses workspace YAML.
func ParseWorkspace(b []byte) (*Workspace, error) {
	var ws Workspace
	if err := yaml.Unmarshal(b, &ws); err != nil {
		return nil, fmt.Errorf("parsing workspace: %w", err)
	}
	return &ws, nil
}

// metadata converts a TableSpec to the engine's metadata type.
func (t TableSpec) metadata() *query.TableMetadata {
	return &query.TableMetadata{
		Range:     t.Range,
		Columns:   t.Columns,
		HasHeader: t.HasHeader,
		Types:     t.Types,
	}
}

// workspaceStore layers workspace-declared names over a base store. Cell
// reads pass through; named ranges and tables are answered from the
// workspace first, then from the base.
type workspaceStore struct {
	base query.Store
	ws   *Workspace
}

// WithWorkspace wraps a store with a workspace's named ranges and tables.
func WithWorkspace(base query.Store, ws *Workspace) query.Store {
	if ws == nil {
		return base
	}
	return &workspaceStore{base: base, ws: ws}
}

func (w *workspaceStore) GetCellValue(address string) (interface{}, error) {
	return w.base.GetCellValue(address)
}

func (w *workspaceStore) GetCellRange(rangeRef string) ([]interface{}, error) {
	return w.base.GetCellRange(rangeRef)
}

func (w *workspaceStore) ResolveNamedRange(name string) (string, bool) {
	if ref, ok := w.ws.NamedRanges[name]; ok {
		return ref, true
	}
	return w.base.ResolveNamedRange(name)
}

func (w *workspaceStore) GetTableMetadata(tableName string) (*query.TableMetadata, bool) {
	if spec, ok := w.ws.Tables[tableName]; ok {
		return spec.metadata(), true
	}
	return w.base.GetTableMetadata(tableName)
}

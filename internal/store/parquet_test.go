package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/gridql/gridql/query"
)

type salesRow struct {
	Region string `parquet:"Region"`
	Amount int64  `parquet:"Amount"`
}

func writeSalesParquet(t *testing.T, rows []salesRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[salesRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return path
}

func TestOpenParquet(t *testing.T) {
	path := writeSalesParquet(t, []salesRow{
		{Region: "West", Amount: 1000},
		{Region: "East", Amount: 1500},
		{Region: "West", Amount: 2000},
	})

	st, err := OpenParquet(path)
	if err != nil {
		t.Fatalf("OpenParquet: %v", err)
	}

	ref, err := st.Range()
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if ref != "A1:B4" {
		t.Errorf("Range = %q, want A1:B4", ref)
	}

	// Row 1 carries the field names.
	v, err := st.GetCellValue("A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "Region" {
		t.Errorf("A1 = %v, want Region", v)
	}

	// Out-of-grid cells read as nil.
	v, _ = st.GetCellValue("C1")
	if v != nil {
		t.Errorf("C1 = %v, want nil", v)
	}
	v, _ = st.GetCellValue("A100")
	if v != nil {
		t.Errorf("A100 = %v, want nil", v)
	}
}

func TestParquetBuiltinNamedRange(t *testing.T) {
	path := writeSalesParquet(t, []salesRow{
		{Region: "West", Amount: 1000},
		{Region: "East", Amount: 1500},
	})

	st, err := OpenParquet(path)
	if err != nil {
		t.Fatalf("OpenParquet: %v", err)
	}

	ref, ok := st.ResolveNamedRange("data")
	if !ok || ref != "A1:B3" {
		t.Errorf("data = %q/%v, want A1:B3/true", ref, ok)
	}
	if _, ok := st.ResolveNamedRange("other"); ok {
		t.Error("only the data name is built in")
	}
}

func TestParquetQueryIntegration(t *testing.T) {
	path := writeSalesParquet(t, []salesRow{
		{Region: "West", Amount: 1000},
		{Region: "East", Amount: 1500},
		{Region: "West", Amount: 2000},
		{Region: "East", Amount: 500},
	})

	st, err := OpenParquet(path)
	if err != nil {
		t.Fatalf("OpenParquet: %v", err)
	}

	q, err := query.Range(st, "data")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(q.Headers()) != 2 {
		t.Fatalf("headers = %v, want [Region Amount]", q.Headers())
	}

	grouped, err := q.GroupBy(query.ByName("Region"))
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	result, err := grouped.Sum(query.ByName("Amount"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	sums := result.(map[string]float64)
	if sums["West"] != 3000 || sums["East"] != 2000 {
		t.Errorf("sums = %v, want West:3000 East:2000", sums)
	}
}

func TestOpenParquetCorruptDataPages(t *testing.T) {
	path := writeSalesParquet(t, []salesRow{
		{Region: "West", Amount: 1000},
		{Region: "East", Amount: 1500},
		{Region: "West", Amount: 2000},
	})

	// Overwrite the first page header while leaving the footer intact. The
	// file still opens, but reading its rows must fail loudly instead of
	// returning a truncated grid.
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for i := 4; i < 24 && i < len(b); i++ {
		b[i] = 0xFF
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := OpenParquet(path); err == nil {
		t.Error("want error for corrupt data pages")
	}
}

func TestOpenParquetErrors(t *testing.T) {
	if _, err := OpenParquet(filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("want error for missing file")
	}

	path := filepath.Join(t.TempDir(), "junk.parquet")
	if err := os.WriteFile(path, []byte("not parquet"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := OpenParquet(path); err == nil {
		t.Error("want error for corrupt file")
	}
}

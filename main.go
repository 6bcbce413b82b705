package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridql/gridql/internal/output"
	"github.com/gridql/gridql/internal/store"
	"github.com/gridql/gridql/query"
)

var (
	rangeFlag     = flag.String("range", "", "Range reference or named range (e.g. \"A1:D100\", \"sales\")")
	tableFlag     = flag.String("table", "", "Table name declared in the workspace")
	whereFlag     = flag.String("where", "", "Filter condition (e.g. \"Amount > 1000 && Region == 'West'\")")
	pluckFlag     = flag.String("pluck", "", "Column to extract as a flat list (index, letter, or header name)")
	groupFlag     = flag.String("group", "", "Column to group by")
	sumFlag       = flag.String("sum", "", "Column to sum")
	avgFlag       = flag.String("avg", "", "Column to average")
	countFlag     = flag.Bool("count", false, "Count rows")
	aggFlag       = flag.String("agg", "", "Stand-alone range aggregate: sum, avg, count, min, max, median, stdev, stdevp, var, varp, product, sumif, countif")
	condFlag      = flag.String("cond", "", "Criteria for sumif/countif (e.g. \">15\")")
	cellFlag      = flag.String("cell", "", "Read a single cell (e.g. \"C12\")")
	sheetFlag     = flag.String("sheet", "", "Sheet name for xlsx files (default: first sheet)")
	workspaceFlag = flag.String("workspace", "", "YAML workspace declaring named ranges and tables")
	formatFlag    = flag.String("f", "table", "Output format: json, jsonl, csv, table")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.xlsx|file.parquet>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A tool to query and aggregate spreadsheet ranges.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -range A1:B6 sales.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -range A1:B6 -where \"Amount > 1000\" -group Region -sum Amount sales.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -range data -agg median metrics.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -range B2:B100 -agg sumif -cond \">15\" sales.xlsx\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	st, cleanup, err := openStore(filename)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", filename)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	defer cleanup()

	if *workspaceFlag != "" {
		ws, err := store.LoadWorkspace(*workspaceFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading workspace: %v\n", err)
			os.Exit(1)
		}
		st = store.WithWorkspace(st, ws)
	}

	formatter, err := newFormatter(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(st, formatter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore picks a store implementation by file extension.
func openStore(filename string) (query.Store, func(), error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		var (
			es  *store.ExcelStore
			err error
		)
		if *sheetFlag != "" {
			es, err = store.OpenExcelSheet(filename, *sheetFlag)
		} else {
			es, err = store.OpenExcel(filename)
		}
		if err != nil {
			return nil, nil, err
		}
		return es, func() { _ = es.Close() }, nil
	case ".parquet":
		ps, err := store.OpenParquet(filename)
		if err != nil {
			return nil, nil, err
		}
		return ps, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported file type '%s' (want .xlsx or .parquet)", filepath.Ext(filename))
	}
}

func newFormatter(format string) (output.Formatter, error) {
	switch format {
	case "json":
		return output.NewJSONFormatter(os.Stdout), nil
	case "jsonl":
		return output.NewJSONLFormatter(os.Stdout), nil
	case "csv":
		return output.NewCSVFormatter(os.Stdout), nil
	case "table":
		return output.NewTableFormatter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported format '%s' (want json, jsonl, csv, or table)", format)
	}
}

// run executes the one query the flags describe.
func run(st query.Store, formatter output.Formatter) error {
	if *cellFlag != "" {
		v, err := query.Cell(st, *cellFlag)
		if err != nil {
			return err
		}
		return formatter.FormatValue(v)
	}

	if *aggFlag != "" {
		if *rangeFlag == "" {
			return fmt.Errorf("-agg requires -range")
		}
		v, err := runRangeAggregate(st, *aggFlag, *rangeFlag, *condFlag)
		if err != nil {
			return err
		}
		return formatter.FormatValue(v)
	}

	var (
		q   *query.Query
		err error
	)
	switch {
	case *tableFlag != "":
		q, err = query.Table(st, *tableFlag)
	case *rangeFlag != "":
		q, err = query.Range(st, *rangeFlag)
	default:
		return fmt.Errorf("one of -range, -table, -cell, or -agg is required")
	}
	if err != nil {
		return err
	}

	if *whereFlag != "" {
		q, err = q.Where(*whereFlag)
		if err != nil {
			return err
		}
	}

	if *pluckFlag != "" {
		values, err := q.Pluck(query.Col(*pluckFlag))
		if err != nil {
			return err
		}
		rows := make([][]interface{}, len(values))
		for i, v := range values {
			rows[i] = []interface{}{v}
		}
		return formatter.FormatRows([]string{*pluckFlag}, rows)
	}

	if *groupFlag != "" {
		q, err = q.GroupBy(query.Col(*groupFlag))
		if err != nil {
			return err
		}
	}

	switch {
	case *sumFlag != "":
		v, err := q.Sum(query.Col(*sumFlag))
		if err != nil {
			return err
		}
		return formatter.FormatValue(v)
	case *avgFlag != "":
		v, err := q.Avg(query.Col(*avgFlag))
		if err != nil {
			return err
		}
		return formatter.FormatValue(v)
	case *countFlag:
		v, err := q.Count()
		if err != nil {
			return err
		}
		return formatter.FormatValue(v)
	}

	if q.Grouped() {
		return formatter.FormatGroups(q.Headers(), q.GroupKeys(), q.Groups())
	}
	return formatter.FormatRows(q.Headers(), q.Rows())
}

// runRangeAggregate dispatches the stand-alone range aggregates.
func runRangeAggregate(st query.Store, name, rangeRef, cond string) (interface{}, error) {
	switch strings.ToLower(name) {
	case "sum":
		return query.SumRange(st, rangeRef)
	case "avg", "average":
		return query.AverageRange(st, rangeRef)
	case "count":
		return query.CountRange(st, rangeRef)
	case "min":
		return query.MinRange(st, rangeRef)
	case "max":
		return query.MaxRange(st, rangeRef)
	case "median":
		return query.MedianRange(st, rangeRef)
	case "stdev":
		return query.StdevRange(st, rangeRef)
	case "stdevp":
		return query.StdevpRange(st, rangeRef)
	case "var":
		return query.VarRange(st, rangeRef)
	case "varp":
		return query.VarpRange(st, rangeRef)
	case "product":
		return query.ProductRange(st, rangeRef)
	case "sumif":
		return query.SumIfRange(st, rangeRef, cond)
	case "countif":
		return query.CountIfRange(st, rangeRef, cond)
	default:
		return nil, fmt.Errorf("unknown aggregate '%s'", name)
	}
}

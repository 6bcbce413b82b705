package output

import (
	"fmt"
	"io"

	"github.com/ohler55/ojg/oj"
)

// JSONFormatter writes results as JSON. In line mode each row becomes one
// JSON document per line (JSONL); otherwise the whole result is a single
// document.
type JSONFormatter struct {
	w     io.Writer
	lines bool
}

// NewJSONFormatter creates a single-document JSON formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

// NewJSONLFormatter creates a one-document-per-row formatter.
func NewJSONLFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w, lines: true}
}

// FormatRows implements Formatter. With headers, rows render as objects;
// without, as arrays.
func (f *JSONFormatter) FormatRows(headers []string, rows [][]interface{}) error {
	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		docs[i] = rowDocument(headers, row)
	}

	if f.lines {
		for _, doc := range docs {
			if err := f.writeDoc(doc); err != nil {
				return err
			}
		}
		return nil
	}
	return f.writeDoc(docs)
}

// FormatGroups implements Formatter, rendering the partition as an object
// keyed by group.
func (f *JSONFormatter) FormatGroups(headers []string, keys []string, groups map[string][][]interface{}) error {
	doc := make(map[string]interface{}, len(groups))
	for _, key := range keys {
		rows := groups[key]
		docs := make([]interface{}, len(rows))
		for i, row := range rows {
			docs[i] = rowDocument(headers, row)
		}
		doc[key] = docs
	}
	return f.writeDoc(doc)
}

// FormatValue implements Formatter.
func (f *JSONFormatter) FormatValue(value interface{}) error {
	return f.writeDoc(value)
}

func (f *JSONFormatter) writeDoc(doc interface{}) error {
	b, err := oj.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := f.w.Write(b); err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.w)
	return err
}

// rowDocument converts one row to its JSON shape.
func rowDocument(headers []string, row []interface{}) interface{} {
	if len(headers) == 0 {
		return row
	}
	doc := make(map[string]interface{}, len(headers))
	for i, h := range headers {
		if i < len(row) {
			doc[h] = row[i]
		}
	}
	return doc
}

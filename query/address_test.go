package query

import (
	"errors"
	"testing"
)

func TestColumnLetterToIndex(t *testing.T) {
	tests := []struct {
		letters string
		want    int
		wantErr bool
	}{
		{letters: "A", want: 1},
		{letters: "Z", want: 26},
		{letters: "AA", want: 27},
		{letters: "AZ", want: 52},
		{letters: "BA", want: 53},
		{letters: "ZZ", want: 702},
		{letters: "AAA", want: 703},
		{letters: "ZZZ", want: 18278},
		{letters: "a", want: 1},
		{letters: "aa", want: 27},
		{letters: "", wantErr: true},
		{letters: "A1", wantErr: true},
		{letters: "1A", wantErr: true},
		{letters: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := ColumnLetterToIndex(tt.letters)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColumnLetterToIndex(%q) error = %v, wantErr %v", tt.letters, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidReference) {
					t.Errorf("error = %v, want ErrInvalidReference", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ColumnLetterToIndex(%q) = %d, want %d", tt.letters, got, tt.want)
			}
		})
	}
}

func TestColumnIndexToLetter(t *testing.T) {
	tests := []struct {
		index   int
		want    string
		wantErr bool
	}{
		{index: 1, want: "A"},
		{index: 26, want: "Z"},
		{index: 27, want: "AA"},
		{index: 702, want: "ZZ"},
		{index: 703, want: "AAA"},
		{index: 18278, want: "ZZZ"},
		{index: 0, wantErr: true},
		{index: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := ColumnIndexToLetter(tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColumnIndexToLetter(%d) error = %v, wantErr %v", tt.index, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ColumnIndexToLetter(%d) = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

func TestColumnCodecRoundTrip(t *testing.T) {
	// A..ZZZ
	for index := 1; index <= 18278; index++ {
		letters, err := ColumnIndexToLetter(index)
		if err != nil {
			t.Fatalf("ColumnIndexToLetter(%d): %v", index, err)
		}
		back, err := ColumnLetterToIndex(letters)
		if err != nil {
			t.Fatalf("ColumnLetterToIndex(%q): %v", letters, err)
		}
		if back != index {
			t.Fatalf("round trip %d -> %q -> %d", index, letters, back)
		}
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		ref     string
		want    CellAddress
		wantErr bool
	}{
		{ref: "A1", want: CellAddress{Column: 1, Row: 1}},
		{ref: "C12", want: CellAddress{Column: 3, Row: 12}},
		{ref: "AA100", want: CellAddress{Column: 27, Row: 100}},
		{ref: "b2", want: CellAddress{Column: 2, Row: 2}},
		{ref: "", wantErr: true},
		{ref: "A", wantErr: true},
		{ref: "12", wantErr: true},
		{ref: "A0", wantErr: true},
		{ref: "A1B", wantErr: true},
		{ref: "A-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseAddress(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAddress(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidReference) {
					t.Errorf("error = %v, want ErrInvalidReference", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAddress(%q) = %+v, want %+v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestFormatAddressRoundTrip(t *testing.T) {
	for _, col := range []int{1, 2, 26, 27, 52, 703, 18278} {
		for _, row := range []int{1, 2, 99, 1048576} {
			ref, err := FormatAddress(col, row)
			if err != nil {
				t.Fatalf("FormatAddress(%d, %d): %v", col, row, err)
			}
			addr, err := ParseAddress(ref)
			if err != nil {
				t.Fatalf("ParseAddress(%q): %v", ref, err)
			}
			if addr.Column != col || addr.Row != row {
				t.Fatalf("round trip (%d,%d) -> %q -> (%d,%d)", col, row, ref, addr.Column, addr.Row)
			}
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref     string
		want    RangeAddress
		wantErr bool
	}{
		{
			ref:  "A1:D100",
			want: RangeAddress{Start: CellAddress{Column: 1, Row: 1}, End: CellAddress{Column: 4, Row: 100}},
		},
		{
			ref:  "B2:B2",
			want: RangeAddress{Start: CellAddress{Column: 2, Row: 2}, End: CellAddress{Column: 2, Row: 2}},
		},
		{ref: "A1", wantErr: true},
		{ref: "A1:B2:C3", wantErr: true},
		{ref: "D1:A1", wantErr: true},
		{ref: "A10:A1", wantErr: true},
		{ref: ":A1", wantErr: true},
		{ref: "A1:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseRange(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRange(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("error = %v, want ErrInvalidRange", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRangeDimensions(t *testing.T) {
	r, err := ParseRange("B2:D5")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if r.Rows() != 4 {
		t.Errorf("Rows() = %d, want 4", r.Rows())
	}
	if r.Columns() != 3 {
		t.Errorf("Columns() = %d, want 3", r.Columns())
	}
	if r.String() != "B2:D5" {
		t.Errorf("String() = %q, want \"B2:D5\"", r.String())
	}
}

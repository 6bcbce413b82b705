package query

import "testing"

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{name: "integer string", in: "42", want: float64(42)},
		{name: "float string", in: "3.14", want: 3.14},
		{name: "negative string", in: "-7", want: float64(-7)},
		{name: "scientific notation", in: "1e3", want: float64(1000)},
		{name: "text stays text", in: "hello", want: "hello"},
		{name: "empty string stays empty", in: "", want: ""},
		{name: "mixed stays text", in: "42abc", want: "42abc"},
		{name: "float passes through", in: 2.5, want: 2.5},
		{name: "nil passes through", in: nil, want: nil},
		{name: "bool passes through", in: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceNumeric(tt.in); got != tt.want {
				t.Errorf("CoerceNumeric(%v) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   float64
		wantOk bool
	}{
		{name: "float64", in: float64(5), want: 5, wantOk: true},
		{name: "int", in: 7, want: 7, wantOk: true},
		{name: "int64", in: int64(-3), want: -3, wantOk: true},
		{name: "uint32", in: uint32(9), want: 9, wantOk: true},
		// Strings are coerced at materialization, never here.
		{name: "numeric string rejected", in: "5", wantOk: false},
		{name: "text rejected", in: "x", wantOk: false},
		{name: "nil rejected", in: nil, wantOk: false},
		{name: "bool rejected", in: true, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toFloat64(tt.in)
			if ok != tt.wantOk {
				t.Fatalf("toFloat64(%v) ok = %v, want %v", tt.in, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("toFloat64(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsEmptyValue(t *testing.T) {
	if !isEmptyValue(nil) || !isEmptyValue("") {
		t.Error("nil and empty string must count as empty")
	}
	for _, v := range []interface{}{"x", float64(0), 0, false} {
		if isEmptyValue(v) {
			t.Errorf("isEmptyValue(%v) = true, want false", v)
		}
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name    string
		left    interface{}
		op      TokenType
		right   interface{}
		want    bool
		wantErr bool
	}{
		{name: "numbers equal", left: float64(5), op: TokenEqual, right: float64(5), want: true},
		{name: "int against float", left: 5, op: TokenEqual, right: float64(5), want: true},
		{name: "numbers less", left: float64(3), op: TokenLess, right: float64(5), want: true},
		{name: "float drift equal", left: 0.1 + 0.2, op: TokenEqual, right: 0.3, want: true},
		{name: "strings equal", left: "a", op: TokenEqual, right: "a", want: true},
		{name: "string ordering", left: "apple", op: TokenLess, right: "banana", want: true},
		{name: "bools equal", left: true, op: TokenEqual, right: true, want: true},
		{name: "bool ordering unsupported", left: true, op: TokenLess, right: false, want: false},
		{name: "nil equals nil", left: nil, op: TokenEqual, right: nil, want: true},
		{name: "nil not equal to value", left: nil, op: TokenNotEqual, right: float64(1), want: true},
		{name: "nil ordering is false", left: nil, op: TokenLess, right: float64(1), want: false},
		{name: "mixed equality false", left: "5", op: TokenEqual, right: float64(5), want: false},
		{name: "mixed inequality true", left: "5", op: TokenNotEqual, right: float64(5), want: true},
		{name: "mixed ordering is false", left: "5", op: TokenLess, right: float64(5), want: false},
		{name: "number against text is false", left: "n/a", op: TokenGreater, right: float64(1000), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compareValues(tt.left, tt.op, tt.right)
			if (err != nil) != tt.wantErr {
				t.Fatalf("compareValues error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("compareValues(%v %v %v) = %v, want %v", tt.left, tt.op, tt.right, got, tt.want)
			}
		})
	}
}

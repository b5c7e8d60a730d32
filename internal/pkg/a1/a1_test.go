package a1

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{in: "A1", want: Range{StartRow: 0, EndRow: 1, StartCol: 0, EndCol: 1}},
		{in: "A1:B2", want: Range{EndRow: 2, EndCol: 2}},
		{in: "Sheet1!B2:D9", want: Range{Sheet: "Sheet1", StartRow: 1, EndRow: 9, StartCol: 1, EndCol: 4}},
		{in: "'My Sheet'!A:C", want: Range{Sheet: "My Sheet", EndCol: 3}},
		{in: "'It''s'!C3", want: Range{Sheet: "It's", StartRow: 2, EndRow: 3, StartCol: 2, EndCol: 3}},
		{in: "3:5", want: Range{StartRow: 2, EndRow: 5}},
		{in: "A2:C", want: Range{StartRow: 1, StartCol: 0, EndCol: 3}},
		{in: "$B$2:$C$3", want: Range{StartRow: 1, EndRow: 3, StartCol: 1, EndCol: 3}},
		{in: "aa10", want: Range{StartRow: 9, EndRow: 10, StartCol: 26, EndCol: 27}},
		{in: "A10000000", want: Range{StartRow: 9_999_999, EndRow: 10_000_000, EndCol: 1}},
		{in: "Sheet1", want: Range{Sheet: "Sheet1"}},
		{in: "'Q1 data'", want: Range{Sheet: "Q1 data"}},
		{in: "Totals!", want: Range{Sheet: "Totals"}},
		{in: "", wantErr: true},
		{in: "!A1", wantErr: true},
		{in: "B2:A1", wantErr: true},
		{in: "A3:A1", wantErr: true},
		{in: "A0:B2", wantErr: true},
		{in: "A:C5", wantErr: true},
		{in: "'open!A1", wantErr: true},
		{in: "Sheet1!Foo", wantErr: true},
		{in: "A99999999999999999999", wantErr: true},
		{in: "A1:B10000001", wantErr: true},
		{in: "Sheet1!A10000001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGridRange(t *testing.T) {
	r, err := Parse("B2:C4")
	if err != nil {
		t.Fatal(err)
	}
	g := r.GridRange(0)
	if g.StartRowIndex != 1 || g.EndRowIndex != 4 || g.StartColumnIndex != 1 || g.EndColumnIndex != 3 {
		t.Errorf("GridRange = %+v", g)
	}
	if len(g.ForceSendFields) != 1 || g.ForceSendFields[0] != "SheetId" {
		t.Errorf("sheet 0 must be force-sent, got %v", g.ForceSendFields)
	}
	if g := r.GridRange(42); g.SheetId != 42 || len(g.ForceSendFields) != 0 {
		t.Errorf("GridRange(42) = %+v", g)
	}
}

func TestAnchor(t *testing.T) {
	r, _ := Parse("E7")
	a := r.Anchor(5)
	if a.SheetId != 5 || a.RowIndex != 6 || a.ColumnIndex != 4 {
		t.Errorf("Anchor = %+v", a)
	}
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		idx  int64
		want string
	}{
		{0, "A"}, {1, "B"}, {25, "Z"}, {26, "AA"}, {51, "AZ"}, {52, "BA"}, {701, "ZZ"}, {702, "AAA"}, {-1, ""},
	}
	for _, tt := range tests {
		if got := ColumnName(tt.idx); got != tt.want {
			t.Errorf("ColumnName(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}
}

// Package a1 parses spreadsheet A1 notation into zero-based grid bounds.
//
// Supported forms: "A1", "A1:C9", "A:C", "3:5", "A2:C", each optionally
// qualified by a sheet name ("Sheet1!A1:B2", "'My Sheet'!A:A"). A bare sheet
// name ("Sheet1") addresses the whole sheet. Absolute markers ("$A$1") are
// accepted and ignored.
package a1

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// MaxRows is the largest row number accepted. A spreadsheet holds at most
// ten million cells, so no real sheet has more rows.
const MaxRows = 10_000_000

var errRowLimit = fmt.Errorf("row exceeds %d", MaxRows)

// Range is a parsed A1 range. Indices are zero-based; ends are exclusive.
// An end of 0 means the range is unbounded in that dimension, which matches
// how the Sheets API reads an omitted GridRange end index.
type Range struct {
	Sheet    string
	StartRow int64
	EndRow   int64
	StartCol int64
	EndCol   int64
}

// Parse parses s into a Range.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range")
	}
	sheet, cells, err := splitSheet(s)
	if err != nil {
		return Range{}, err
	}
	r := Range{Sheet: sheet}
	if cells == "" {
		if sheet == "" {
			return Range{}, fmt.Errorf("invalid range %q", s)
		}
		return r, nil
	}

	start, end, isPair := strings.Cut(cells, ":")
	if !isPair {
		col, row, err := parseRef(start)
		if errors.Is(err, errRowLimit) {
			return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		if err != nil || col < 0 || row < 0 {
			// An unqualified token that is not a cell is a sheet name.
			if sheet == "" && !strings.ContainsAny(cells, "!:") {
				return Range{Sheet: cells}, nil
			}
			return Range{}, fmt.Errorf("invalid range %q: expected a cell such as A1", s)
		}
		r.StartCol, r.EndCol = col, col+1
		r.StartRow, r.EndRow = row, row+1
		return r, nil
	}

	c1, r1, err := parseRef(start)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	c2, r2, err := parseRef(end)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if c1 < 0 && c2 >= 0 {
		return Range{}, fmt.Errorf("invalid range %q: start has no column", s)
	}
	if r1 < 0 && r2 >= 0 {
		return Range{}, fmt.Errorf("invalid range %q: start has no row", s)
	}

	if c1 >= 0 {
		r.StartCol = c1
		if c2 >= 0 {
			if c2 < c1 {
				return Range{}, fmt.Errorf("invalid range %q: end column before start column", s)
			}
			r.EndCol = c2 + 1
		}
	}
	if r1 >= 0 {
		r.StartRow = r1
		if r2 >= 0 {
			if r2 < r1 {
				return Range{}, fmt.Errorf("invalid range %q: end row before start row", s)
			}
			r.EndRow = r2 + 1
		}
	}
	return r, nil
}

// GridRange converts r into a Sheets API grid range on the given sheet.
func (r Range) GridRange(sheetID int64) *sheets.GridRange {
	g := &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    r.StartRow,
		EndRowIndex:      r.EndRow,
		StartColumnIndex: r.StartCol,
		EndColumnIndex:   r.EndCol,
	}
	// Sheet 0 is a real sheet ID; it must be sent explicitly.
	if sheetID == 0 {
		g.ForceSendFields = []string{"SheetId"}
	}
	return g
}

// Anchor returns the top-left coordinate of r on the given sheet.
func (r Range) Anchor(sheetID int64) *sheets.GridCoordinate {
	return &sheets.GridCoordinate{
		SheetId:         sheetID,
		RowIndex:        r.StartRow,
		ColumnIndex:     r.StartCol,
		ForceSendFields: []string{"SheetId", "RowIndex", "ColumnIndex"},
	}
}

// ColumnName returns the letters for a zero-based column index (0 → "A").
func ColumnName(idx int64) string {
	if idx < 0 {
		return ""
	}
	var buf []byte
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}

// splitSheet separates an optional sheet prefix from the cell part.
func splitSheet(s string) (sheet, cells string, err error) {
	if strings.HasPrefix(s, "'") {
		var sb strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] != '\'' {
				sb.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				sb.WriteByte('\'')
				i++
				continue
			}
			rest := s[i+1:]
			if rest == "" {
				return sb.String(), "", nil
			}
			if rest[0] != '!' {
				return "", "", fmt.Errorf("invalid range %q: expected ! after quoted sheet name", s)
			}
			return sb.String(), rest[1:], nil
		}
		return "", "", fmt.Errorf("invalid range %q: unterminated sheet name", s)
	}
	if i := strings.LastIndexByte(s, '!'); i >= 0 {
		if i == 0 {
			return "", "", fmt.Errorf("invalid range %q: empty sheet name", s)
		}
		return s[:i], s[i+1:], nil
	}
	return "", s, nil
}

// maxColumnLetters bounds column names to the grid limit (ZZZ).
const maxColumnLetters = 3

// parseRef parses a cell reference like "B12", "B" or "12". A missing column
// or row is reported as -1.
func parseRef(ref string) (col, row int64, err error) {
	ref = strings.ToUpper(strings.ReplaceAll(ref, "$", ""))
	col, row = -1, -1
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		if i == maxColumnLetters {
			return 0, 0, fmt.Errorf("invalid cell reference %q: column out of range", ref)
		}
		if col < 0 {
			col = 0
		}
		col = col*26 + int64(ref[i]-'A'+1)
		i++
	}
	if col > 0 {
		col--
	}
	if i < len(ref) {
		row = 0
		for ; i < len(ref); i++ {
			if ref[i] < '0' || ref[i] > '9' {
				return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
			}
			row = row*10 + int64(ref[i]-'0')
			if row > MaxRows {
				return 0, 0, fmt.Errorf("invalid cell reference %q: %w", ref, errRowLimit)
			}
		}
		if row == 0 {
			return 0, 0, fmt.Errorf("invalid cell reference %q: rows start at 1", ref)
		}
		row--
	}
	if col < 0 && row < 0 {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	return col, row, nil
}

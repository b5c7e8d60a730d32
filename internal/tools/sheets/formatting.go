package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/color"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// --- sheets_format_cells ---

type FormatCellsInput struct {
	SpreadsheetID       string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range               string `json:"range" jsonschema:"A1 range to format (e.g. Sheet1!A1:D1)"`
	SheetID             int64  `json:"sheetId,omitempty" jsonschema:"Sheet for ranges without a sheet name"`
	Bold                *bool  `json:"bold,omitempty" jsonschema:"Bold text"`
	Italic              *bool  `json:"italic,omitempty" jsonschema:"Italic text"`
	Underline           *bool  `json:"underline,omitempty" jsonschema:"Underlined text"`
	Strikethrough       *bool  `json:"strikethrough,omitempty" jsonschema:"Struck-through text"`
	FontSize            int64  `json:"fontSize,omitempty" jsonschema:"Font size in points"`
	FontFamily          string `json:"fontFamily,omitempty" jsonschema:"Font family (e.g. Arial)"`
	TextColor           string `json:"textColor,omitempty" jsonschema:"Text color as hex (e.g. #FF0000)"`
	BackgroundColor     string `json:"backgroundColor,omitempty" jsonschema:"Background color as hex (e.g. #FFFF00)"`
	HorizontalAlignment string `json:"horizontalAlignment,omitempty" jsonschema:"Horizontal alignment"`
	VerticalAlignment   string `json:"verticalAlignment,omitempty" jsonschema:"Vertical alignment"`
	WrapStrategy        string `json:"wrapStrategy,omitempty" jsonschema:"How text that does not fit is handled"`
	NumberFormatType    string `json:"numberFormatType,omitempty" jsonschema:"Number format type"`
	NumberFormatPattern string `json:"numberFormatPattern,omitempty" jsonschema:"Number format pattern (e.g. #,##0.00 or yyyy-mm-dd)"`
}

// cellFormat builds the format and the field mask naming what it sets.
func (in FormatCellsInput) cellFormat() (*sheets.CellFormat, []string, error) {
	var (
		f      = &sheets.CellFormat{}
		tf     = &sheets.TextFormat{}
		fields []string
	)
	setBool := func(p *bool, name string, dst *bool) {
		if p == nil {
			return
		}
		*dst = *p
		tf.ForceSendFields = append(tf.ForceSendFields, name)
		fields = append(fields, "userEnteredFormat.textFormat."+strings.ToLower(name[:1])+name[1:])
	}
	setBool(in.Bold, "Bold", &tf.Bold)
	setBool(in.Italic, "Italic", &tf.Italic)
	setBool(in.Underline, "Underline", &tf.Underline)
	setBool(in.Strikethrough, "Strikethrough", &tf.Strikethrough)

	if in.FontSize > 0 {
		tf.FontSize = in.FontSize
		fields = append(fields, "userEnteredFormat.textFormat.fontSize")
	}
	if in.FontFamily != "" {
		tf.FontFamily = in.FontFamily
		fields = append(fields, "userEnteredFormat.textFormat.fontFamily")
	}
	fg, err := color.Optional(in.TextColor)
	if err != nil {
		return nil, nil, err
	}
	if fg != nil {
		tf.ForegroundColor = fg
		fields = append(fields, "userEnteredFormat.textFormat.foregroundColor")
	}
	if len(fields) > 0 {
		f.TextFormat = tf
	}

	bg, err := color.Optional(in.BackgroundColor)
	if err != nil {
		return nil, nil, err
	}
	if bg != nil {
		f.BackgroundColor = bg
		fields = append(fields, "userEnteredFormat.backgroundColor")
	}
	if in.HorizontalAlignment != "" {
		f.HorizontalAlignment = in.HorizontalAlignment
		fields = append(fields, "userEnteredFormat.horizontalAlignment")
	}
	if in.VerticalAlignment != "" {
		f.VerticalAlignment = in.VerticalAlignment
		fields = append(fields, "userEnteredFormat.verticalAlignment")
	}
	if in.WrapStrategy != "" {
		f.WrapStrategy = in.WrapStrategy
		fields = append(fields, "userEnteredFormat.wrapStrategy")
	}
	if in.NumberFormatType != "" || in.NumberFormatPattern != "" {
		typ := in.NumberFormatType
		if typ == "" {
			typ = "NUMBER"
		}
		f.NumberFormat = &sheets.NumberFormat{Type: typ, Pattern: in.NumberFormatPattern}
		fields = append(fields, "userEnteredFormat.numberFormat")
	}
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("no formatting options given")
	}
	return f, fields, nil
}

func formatCells(ctx context.Context, c *services.Clients, in FormatCellsInput) (string, error) {
	format, fields, err := in.cellFormat()
	if err != nil {
		return "", err
	}
	gr, err := resolveGridRange(ctx, c, in.SpreadsheetID, in.Range, in.SheetID)
	if err != nil {
		return "", err
	}
	_, err = batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  gr,
			Cell:   &sheets.CellData{UserEnteredFormat: format},
			Fields: strings.Join(fields, ","),
		},
	})
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Successfully formatted %s", in.Range)
	for _, f := range fields {
		rb.Item("%s", strings.TrimPrefix(f, "userEnteredFormat."))
	}
	return rb.Build(), nil
}

// --- sheets_merge_cells ---

type MergeCellsInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range         string `json:"range" jsonschema:"A1 range to merge"`
	SheetID       int64  `json:"sheetId,omitempty" jsonschema:"Sheet for ranges without a sheet name"`
	MergeType     string `json:"mergeType,omitempty" jsonschema:"MERGE_ALL merges into one cell; MERGE_COLUMNS and MERGE_ROWS merge per column or row"`
}

func mergeCells(ctx context.Context, c *services.Clients, in MergeCellsInput) (string, error) {
	gr, err := resolveGridRange(ctx, c, in.SpreadsheetID, in.Range, in.SheetID)
	if err != nil {
		return "", err
	}
	_, err = batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		MergeCells: &sheets.MergeCellsRequest{Range: gr, MergeType: in.MergeType},
	})
	if err != nil {
		return "", err
	}
	return response.New().Success("Successfully merged %s (%s)", in.Range, in.MergeType).Build(), nil
}

// --- sheets_unmerge_cells ---

type UnmergeCellsInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range         string `json:"range" jsonschema:"A1 range to unmerge"`
	SheetID       int64  `json:"sheetId,omitempty" jsonschema:"Sheet for ranges without a sheet name"`
}

func unmergeCells(ctx context.Context, c *services.Clients, in UnmergeCellsInput) (string, error) {
	gr, err := resolveGridRange(ctx, c, in.SpreadsheetID, in.Range, in.SheetID)
	if err != nil {
		return "", err
	}
	_, err = batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		UnmergeCells: &sheets.UnmergeCellsRequest{Range: gr},
	})
	if err != nil {
		return "", err
	}
	return response.New().Success("Successfully unmerged %s", in.Range).Build(), nil
}

func booleanCondition(conditionType string, values []string) *sheets.BooleanCondition {
	cond := &sheets.BooleanCondition{Type: conditionType}
	for _, v := range values {
		cond.Values = append(cond.Values, &sheets.ConditionValue{UserEnteredValue: v})
	}
	return cond
}

// --- sheets_add_data_validation ---

type AddDataValidationInput struct {
	SpreadsheetID string   `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range         string   `json:"range" jsonschema:"A1 range to validate"`
	SheetID       int64    `json:"sheetId,omitempty" jsonschema:"Sheet for ranges without a sheet name"`
	ConditionType string   `json:"conditionType" jsonschema:"Sheets condition type (e.g. ONE_OF_LIST, NUMBER_BETWEEN, DATE_AFTER, CUSTOM_FORMULA, BOOLEAN)"`
	Values        []string `json:"values,omitempty" jsonschema:"Condition values (list items, bounds or a formula)"`
	Strict        bool     `json:"strict,omitempty" jsonschema:"Reject invalid input instead of showing a warning"`
	ShowDropdown  bool     `json:"showDropdown,omitempty" jsonschema:"Show a dropdown for list conditions"`
	InputMessage  string   `json:"inputMessage,omitempty" jsonschema:"Help text shown when a validated cell is selected"`
}

func addDataValidation(ctx context.Context, c *services.Clients, in AddDataValidationInput) (string, error) {
	gr, err := resolveGridRange(ctx, c, in.SpreadsheetID, in.Range, in.SheetID)
	if err != nil {
		return "", err
	}
	_, err = batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		SetDataValidation: &sheets.SetDataValidationRequest{
			Range: gr,
			Rule: &sheets.DataValidationRule{
				Condition:    booleanCondition(in.ConditionType, in.Values),
				Strict:       in.Strict,
				ShowCustomUi: in.ShowDropdown,
				InputMessage: in.InputMessage,
			},
		},
	})
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully added %s validation to %s", in.ConditionType, in.Range).
		Build(), nil
}

// --- sheets_add_conditional_format ---

type AddConditionalFormatInput struct {
	SpreadsheetID   string   `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range           string   `json:"range" jsonschema:"A1 range the rule applies to"`
	SheetID         int64    `json:"sheetId,omitempty" jsonschema:"Sheet for ranges without a sheet name"`
	ConditionType   string   `json:"conditionType" jsonschema:"Sheets condition type (e.g. NUMBER_GREATER, TEXT_CONTAINS, CUSTOM_FORMULA, BLANK)"`
	Values          []string `json:"values,omitempty" jsonschema:"Condition values"`
	BackgroundColor string   `json:"backgroundColor,omitempty" jsonschema:"Background color as hex for matching cells"`
	TextColor       string   `json:"textColor,omitempty" jsonschema:"Text color as hex for matching cells"`
	Bold            *bool    `json:"bold,omitempty" jsonschema:"Bold text for matching cells"`
	Italic          *bool    `json:"italic,omitempty" jsonschema:"Italic text for matching cells"`
}

func (in AddConditionalFormatInput) format() (*sheets.CellFormat, error) {
	bg, err := color.Optional(in.BackgroundColor)
	if err != nil {
		return nil, err
	}
	fg, err := color.Optional(in.TextColor)
	if err != nil {
		return nil, err
	}
	f := &sheets.CellFormat{BackgroundColor: bg}
	if fg != nil || in.Bold != nil || in.Italic != nil {
		tf := &sheets.TextFormat{ForegroundColor: fg}
		if in.Bold != nil {
			tf.Bold = *in.Bold
			tf.ForceSendFields = append(tf.ForceSendFields, "Bold")
		}
		if in.Italic != nil {
			tf.Italic = *in.Italic
			tf.ForceSendFields = append(tf.ForceSendFields, "Italic")
		}
		f.TextFormat = tf
	}
	if bg == nil && f.TextFormat == nil {
		return nil, fmt.Errorf("at least one of backgroundColor, textColor, bold or italic is required")
	}
	return f, nil
}

func addConditionalFormat(ctx context.Context, c *services.Clients, in AddConditionalFormatInput) (string, error) {
	format, err := in.format()
	if err != nil {
		return "", err
	}
	gr, err := resolveGridRange(ctx, c, in.SpreadsheetID, in.Range, in.SheetID)
	if err != nil {
		return "", err
	}
	_, err = batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
			Rule: &sheets.ConditionalFormatRule{
				Ranges: []*sheets.GridRange{gr},
				BooleanRule: &sheets.BooleanRule{
					Condition: booleanCondition(in.ConditionType, in.Values),
					Format:    format,
				},
			},
			ForceSendFields: []string{"Index"},
		},
	})
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully added %s conditional format to %s", in.ConditionType, in.Range).
		Build(), nil
}

// --- sheets_sort_range ---

type SortRangeInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range         string `json:"range" jsonschema:"A1 range to sort, without the header row"`
	SheetID       int64  `json:"sheetId,omitempty" jsonschema:"Sheet for ranges without a sheet name"`
	SortColumn    int64  `json:"sortColumn,omitempty" jsonschema:"Zero-based column to sort by, counted from the first column of the range"`
	Ascending     bool   `json:"ascending,omitempty" jsonschema:"Sort ascending (false sorts descending)"`
}

func sortRange(ctx context.Context, c *services.Clients, in SortRangeInput) (string, error) {
	if in.SortColumn < 0 {
		return "", fmt.Errorf("sortColumn must not be negative")
	}
	gr, err := resolveGridRange(ctx, c, in.SpreadsheetID, in.Range, in.SheetID)
	if err != nil {
		return "", err
	}
	col := gr.StartColumnIndex + in.SortColumn
	if gr.EndColumnIndex > 0 && col >= gr.EndColumnIndex {
		return "", fmt.Errorf("sortColumn %d is outside range %s", in.SortColumn, in.Range)
	}
	order := "ASCENDING"
	if !in.Ascending {
		order = "DESCENDING"
	}
	_, err = batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		SortRange: &sheets.SortRangeRequest{
			Range: gr,
			SortSpecs: []*sheets.SortSpec{{
				DimensionIndex:  col,
				SortOrder:       order,
				ForceSendFields: []string{"DimensionIndex"},
			}},
		},
	})
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully sorted %s by column %d (%s)", in.Range, in.SortColumn, strings.ToLower(order)).
		Build(), nil
}

// --- sheets_find_replace ---

type FindReplaceInput struct {
	SpreadsheetID   string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Find            string `json:"find" jsonschema:"Text (or regular expression) to find"`
	Replacement     string `json:"replacement,omitempty" jsonschema:"Replacement text"`
	AllSheets       bool   `json:"allSheets,omitempty" jsonschema:"Search every sheet; ignored when sheetId or range is given"`
	SheetID         *int64 `json:"sheetId,omitempty" jsonschema:"Limit the search to one sheet"`
	Range           string `json:"range,omitempty" jsonschema:"Limit the search to an A1 range"`
	MatchCase       bool   `json:"matchCase,omitempty" jsonschema:"Case-sensitive search"`
	MatchEntireCell bool   `json:"matchEntireCell,omitempty" jsonschema:"Only match whole cell contents"`
	SearchByRegex   bool   `json:"searchByRegex,omitempty" jsonschema:"Treat find as a regular expression"`
	IncludeFormulas bool   `json:"includeFormulas,omitempty" jsonschema:"Also search formula text"`
}

func findReplace(ctx context.Context, c *services.Clients, in FindReplaceInput) (string, error) {
	req := &sheets.FindReplaceRequest{
		Find:            in.Find,
		Replacement:     in.Replacement,
		MatchCase:       in.MatchCase,
		MatchEntireCell: in.MatchEntireCell,
		SearchByRegex:   in.SearchByRegex,
		IncludeFormulas: in.IncludeFormulas,
	}
	scope := "all sheets"
	switch {
	case in.Range != "":
		var fallback int64
		if in.SheetID != nil {
			fallback = *in.SheetID
		}
		gr, err := resolveGridRange(ctx, c, in.SpreadsheetID, in.Range, fallback)
		if err != nil {
			return "", err
		}
		req.Range = gr
		scope = in.Range
	case in.SheetID != nil:
		req.SheetId = *in.SheetID
		req.ForceSendFields = []string{"SheetId"}
		scope = fmt.Sprintf("sheet %d", *in.SheetID)
	case in.AllSheets:
		req.AllSheets = true
	default:
		return "", fmt.Errorf("set allSheets, sheetId or range to choose where to search")
	}

	resp, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{FindReplace: req})
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Find and replace completed in %s", scope)
	if r := firstReply(resp).FindReplace; r != nil {
		rb.KeyValue("Occurrences changed", r.OccurrencesChanged).
			KeyValue("Values changed", r.ValuesChanged).
			KeyValue("Formulas changed", r.FormulasChanged).
			KeyValue("Rows changed", r.RowsChanged).
			KeyValue("Sheets changed", r.SheetsChanged)
	} else {
		rb.KeyValue("Occurrences changed", 0)
	}
	return rb.Build(), nil
}

package sheets

import (
	"context"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// --- sheets_list_sheets ---

type ListSheetsInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
}

func listSheets(ctx context.Context, c *services.Clients, in ListSheetsInput) (string, error) {
	ss, err := c.Sheets.Spreadsheets.Get(in.SpreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	list := summarizeSheets(ss.Sheets)
	return response.New().
		Success("Spreadsheet %s has %d sheets:", in.SpreadsheetID, len(list)).
		Blank().
		JSON(list).
		Build(), nil
}

// --- sheets_add_sheet ---

type AddSheetInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Title         string `json:"title" jsonschema:"Name of the new sheet"`
	RowCount      int64  `json:"rowCount,omitempty" jsonschema:"Initial number of rows"`
	ColumnCount   int64  `json:"columnCount,omitempty" jsonschema:"Initial number of columns"`
	Index         *int64 `json:"index,omitempty" jsonschema:"Zero-based tab position (default: last)"`
}

func addSheet(ctx context.Context, c *services.Clients, in AddSheetInput) (string, error) {
	props := &sheets.SheetProperties{
		Title: in.Title,
		GridProperties: &sheets.GridProperties{
			RowCount:    in.RowCount,
			ColumnCount: in.ColumnCount,
		},
	}
	if in.Index != nil {
		props.Index = *in.Index
		props.ForceSendFields = []string{"Index"}
	}
	resp, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{Properties: props},
	})
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Successfully added sheet %q", in.Title)
	if r := firstReply(resp).AddSheet; r != nil && r.Properties != nil {
		rb.KeyValue("Sheet ID", r.Properties.SheetId).
			KeyValue("Index", r.Properties.Index)
	}
	return rb.Build(), nil
}

// --- sheets_delete_sheet ---

type DeleteSheetInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	SheetID       int64  `json:"sheetId" jsonschema:"ID of the sheet to delete (see sheets_list_sheets)"`
}

func deleteSheet(ctx context.Context, c *services.Clients, in DeleteSheetInput) (string, error) {
	_, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		DeleteSheet: &sheets.DeleteSheetRequest{SheetId: in.SheetID, ForceSendFields: []string{"SheetId"}},
	})
	if err != nil {
		return "", err
	}
	return response.New().Success("Successfully deleted sheet %d", in.SheetID).Build(), nil
}

// --- sheets_rename_sheet ---

type RenameSheetInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	SheetID       int64  `json:"sheetId" jsonschema:"ID of the sheet to rename"`
	Title         string `json:"title" jsonschema:"New sheet name"`
}

func renameSheet(ctx context.Context, c *services.Clients, in RenameSheetInput) (string, error) {
	_, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId:         in.SheetID,
				Title:           in.Title,
				ForceSendFields: []string{"SheetId"},
			},
			Fields: "title",
		},
	})
	if err != nil {
		return "", err
	}
	return response.New().Success("Successfully renamed sheet %d to %q", in.SheetID, in.Title).Build(), nil
}

// --- sheets_duplicate_sheet ---

type DuplicateSheetInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	SheetID       int64  `json:"sheetId" jsonschema:"ID of the sheet to duplicate"`
	NewTitle      string `json:"newTitle,omitempty" jsonschema:"Name of the duplicate (default: 'Copy of ...')"`
	Index         *int64 `json:"index,omitempty" jsonschema:"Zero-based tab position of the duplicate"`
}

func duplicateSheet(ctx context.Context, c *services.Clients, in DuplicateSheetInput) (string, error) {
	req := &sheets.DuplicateSheetRequest{
		SourceSheetId:   in.SheetID,
		NewSheetName:    in.NewTitle,
		ForceSendFields: []string{"SourceSheetId"},
	}
	if in.Index != nil {
		req.InsertSheetIndex = *in.Index
		req.ForceSendFields = append(req.ForceSendFields, "InsertSheetIndex")
	}
	resp, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{DuplicateSheet: req})
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Successfully duplicated sheet %d", in.SheetID)
	if r := firstReply(resp).DuplicateSheet; r != nil && r.Properties != nil {
		rb.KeyValue("New sheet", r.Properties.Title).
			KeyValue("Sheet ID", r.Properties.SheetId)
	}
	return rb.Build(), nil
}

// --- sheets_copy_sheet_to ---

type CopySheetToInput struct {
	SpreadsheetID            string `json:"spreadsheetId" jsonschema:"The ID of the source spreadsheet"`
	SheetID                  int64  `json:"sheetId" jsonschema:"ID of the sheet to copy"`
	DestinationSpreadsheetID string `json:"destinationSpreadsheetId" jsonschema:"The ID of the spreadsheet to copy into"`
}

func copySheetTo(ctx context.Context, c *services.Clients, in CopySheetToInput) (string, error) {
	props, err := c.Sheets.Spreadsheets.Sheets.CopyTo(in.SpreadsheetID, in.SheetID,
		&sheets.CopySheetToAnotherSpreadsheetRequest{DestinationSpreadsheetId: in.DestinationSpreadsheetID}).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully copied sheet %d to spreadsheet %s", in.SheetID, in.DestinationSpreadsheetID).
		KeyValue("New sheet", props.Title).
		KeyValue("Sheet ID", props.SheetId).
		Build(), nil
}

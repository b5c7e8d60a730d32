package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

func dimensionRange(sheetID int64, dimension string, start, end int64) *sheets.DimensionRange {
	return &sheets.DimensionRange{
		SheetId:         sheetID,
		Dimension:       dimension,
		StartIndex:      start,
		EndIndex:        end,
		ForceSendFields: []string{"SheetId", "StartIndex"},
	}
}

// --- sheets_insert_dimension ---

type InsertDimensionInput struct {
	SpreadsheetID     string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	SheetID           int64  `json:"sheetId" jsonschema:"ID of the sheet"`
	Dimension         string `json:"dimension,omitempty" jsonschema:"ROWS or COLUMNS"`
	StartIndex        int64  `json:"startIndex" jsonschema:"Zero-based index to insert at"`
	Count             int64  `json:"count" jsonschema:"Number of rows or columns to insert"`
	InheritFromBefore bool   `json:"inheritFromBefore,omitempty" jsonschema:"Copy formatting from the row or column before instead of after"`
}

func insertDimension(ctx context.Context, c *services.Clients, in InsertDimensionInput) (string, error) {
	if in.StartIndex < 0 {
		return "", fmt.Errorf("startIndex must not be negative")
	}
	if in.Count < 1 {
		return "", fmt.Errorf("count must be at least 1")
	}
	_, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range:             dimensionRange(in.SheetID, in.Dimension, in.StartIndex, in.StartIndex+in.Count),
			InheritFromBefore: in.InheritFromBefore,
		},
	})
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully inserted %d %s at index %d in sheet %d", in.Count, strings.ToLower(in.Dimension), in.StartIndex, in.SheetID).
		Build(), nil
}

// --- sheets_delete_dimension ---

type DeleteDimensionInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	SheetID       int64  `json:"sheetId" jsonschema:"ID of the sheet"`
	Dimension     string `json:"dimension,omitempty" jsonschema:"ROWS or COLUMNS"`
	StartIndex    int64  `json:"startIndex" jsonschema:"First zero-based index to delete (inclusive)"`
	EndIndex      int64  `json:"endIndex" jsonschema:"Zero-based index to stop at (exclusive)"`
}

func deleteDimension(ctx context.Context, c *services.Clients, in DeleteDimensionInput) (string, error) {
	if in.StartIndex < 0 || in.EndIndex <= in.StartIndex {
		return "", fmt.Errorf("invalid index range [%d, %d): endIndex must be greater than startIndex", in.StartIndex, in.EndIndex)
	}
	_, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: dimensionRange(in.SheetID, in.Dimension, in.StartIndex, in.EndIndex),
		},
	})
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully deleted %d %s [%d, %d) in sheet %d",
			in.EndIndex-in.StartIndex, strings.ToLower(in.Dimension), in.StartIndex, in.EndIndex, in.SheetID).
		Build(), nil
}

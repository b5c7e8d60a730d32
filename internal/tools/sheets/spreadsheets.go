package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// --- sheets_create ---

type GridSize struct {
	RowCount    int64 `json:"rowCount,omitempty" jsonschema:"Number of rows"`
	ColumnCount int64 `json:"columnCount,omitempty" jsonschema:"Number of columns"`
}

type SheetSpecProperties struct {
	Title          string    `json:"title" jsonschema:"Sheet (tab) name"`
	GridProperties *GridSize `json:"gridProperties,omitempty" jsonschema:"Initial grid size"`
}

type SheetSpec struct {
	Properties SheetSpecProperties `json:"properties" jsonschema:"Sheet properties"`
}

type CreateInput struct {
	Title  string      `json:"title" jsonschema:"Title for the new spreadsheet"`
	Sheets []SheetSpec `json:"sheets,omitempty" jsonschema:"Sheets (tabs) to create"`
}

func createSpreadsheet(ctx context.Context, c *services.Clients, in CreateInput) (string, error) {
	ss := &sheets.Spreadsheet{Properties: &sheets.SpreadsheetProperties{Title: in.Title}}
	for _, spec := range in.Sheets {
		props := &sheets.SheetProperties{Title: spec.Properties.Title}
		if g := spec.Properties.GridProperties; g != nil {
			props.GridProperties = &sheets.GridProperties{RowCount: g.RowCount, ColumnCount: g.ColumnCount}
		}
		ss.Sheets = append(ss.Sheets, &sheets.Sheet{Properties: props})
	}

	created, err := c.Sheets.Spreadsheets.Create(ss).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully created spreadsheet %q", in.Title).
		Line("Spreadsheet ID: %s", created.SpreadsheetId).
		Line("URL: %s", spreadsheetURL(created.SpreadsheetId)).
		Build(), nil
}

// --- sheets_get_metadata ---

type GetMetadataInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
}

type sheetSummary struct {
	Title       string `json:"title"`
	SheetID     int64  `json:"sheetId"`
	Index       int64  `json:"index"`
	RowCount    int64  `json:"rowCount,omitempty"`
	ColumnCount int64  `json:"columnCount,omitempty"`
}

type spreadsheetMetadata struct {
	SpreadsheetID string         `json:"spreadsheetId"`
	Title         string         `json:"title"`
	Locale        string         `json:"locale,omitempty"`
	TimeZone      string         `json:"timeZone,omitempty"`
	URL           string         `json:"url,omitempty"`
	Sheets        []sheetSummary `json:"sheets"`
}

func summarizeSheets(list []*sheets.Sheet) []sheetSummary {
	out := make([]sheetSummary, 0, len(list))
	for _, s := range list {
		p := s.Properties
		if p == nil {
			continue
		}
		sum := sheetSummary{Title: p.Title, SheetID: p.SheetId, Index: p.Index}
		if g := p.GridProperties; g != nil {
			sum.RowCount, sum.ColumnCount = g.RowCount, g.ColumnCount
		}
		out = append(out, sum)
	}
	return out
}

func getMetadata(ctx context.Context, c *services.Clients, in GetMetadataInput) (string, error) {
	ss, err := c.Sheets.Spreadsheets.Get(in.SpreadsheetID).
		Fields("spreadsheetId,spreadsheetUrl,properties(title,locale,timeZone),sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	md := spreadsheetMetadata{
		SpreadsheetID: ss.SpreadsheetId,
		URL:           ss.SpreadsheetUrl,
		Sheets:        summarizeSheets(ss.Sheets),
	}
	if p := ss.Properties; p != nil {
		md.Title, md.Locale, md.TimeZone = p.Title, p.Locale, p.TimeZone
	}
	return response.New().
		Success("Spreadsheet metadata:").
		Blank().
		JSON(md).
		Build(), nil
}

// --- sheets_batch_update ---

type BatchUpdateInput struct {
	SpreadsheetID string           `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Requests      []map[string]any `json:"requests" jsonschema:"Sheets API Request objects, e.g. {\"addSheet\":{\"properties\":{\"title\":\"Q3\"}}}"`
}

func batchUpdateSpreadsheet(ctx context.Context, c *services.Clients, in BatchUpdateInput) (string, error) {
	if len(in.Requests) == 0 {
		return "", fmt.Errorf("requests must contain at least one request")
	}
	var reqs []*sheets.Request
	if err := convert(in.Requests, &reqs); err != nil {
		return "", fmt.Errorf("decoding requests: %w", err)
	}
	resp, err := batchUpdate(ctx, c, in.SpreadsheetID, reqs...)
	if err != nil {
		return "", err
	}
	replies := resp.Replies
	if replies == nil {
		replies = []*sheets.Response{}
	}
	return response.New().
		Success("Batch update completed successfully: %d requests applied", len(reqs)).
		Blank().
		JSON(replies).
		Build(), nil
}

package sheets

import (
	"context"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// --- sheets_get_data ---

type GetDataInput struct {
	SpreadsheetID     string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range             string `json:"range" jsonschema:"The A1 range to read (e.g. Sheet1!A1:D10)"`
	ValueRenderOption string `json:"valueRenderOption,omitempty" jsonschema:"How values are rendered in the output"`
	MajorDimension    string `json:"majorDimension,omitempty" jsonschema:"Whether the result is a list of rows or of columns"`
}

func getData(ctx context.Context, c *services.Clients, in GetDataInput) (string, error) {
	resp, err := c.Sheets.Spreadsheets.Values.Get(in.SpreadsheetID, in.Range).
		ValueRenderOption(in.ValueRenderOption).
		MajorDimension(in.MajorDimension).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully retrieved data from %s:", in.Range).
		Blank().
		JSON(nonNilValues(resp.Values)).
		Build(), nil
}

// --- sheets_update_data ---

type UpdateDataInput struct {
	SpreadsheetID    string  `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range            string  `json:"range" jsonschema:"The A1 range to write (e.g. Sheet1!A1:B2)"`
	Values           [][]any `json:"values" jsonschema:"2D array of values, one inner array per row"`
	ValueInputOption string  `json:"valueInputOption,omitempty" jsonschema:"RAW stores values as given; USER_ENTERED parses them like the Sheets UI"`
}

func updateData(ctx context.Context, c *services.Clients, in UpdateDataInput) (string, error) {
	resp, err := c.Sheets.Spreadsheets.Values.Update(in.SpreadsheetID, in.Range, &sheets.ValueRange{Values: in.Values}).
		ValueInputOption(in.ValueInputOption).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Successfully updated data in %s", in.Range)
	if resp.UpdatedCells > 0 {
		rb.KeyValue("Updated range", resp.UpdatedRange).
			KeyValue("Updated cells", resp.UpdatedCells)
	}
	return rb.Build(), nil
}

// --- sheets_append_data ---

type AppendDataInput struct {
	SpreadsheetID    string  `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range            string  `json:"range" jsonschema:"A1 range of the table to append to (e.g. Sheet1!A:D)"`
	Values           [][]any `json:"values" jsonschema:"Rows to append"`
	ValueInputOption string  `json:"valueInputOption,omitempty" jsonschema:"RAW or USER_ENTERED"`
	InsertDataOption string  `json:"insertDataOption,omitempty" jsonschema:"INSERT_ROWS inserts new rows; OVERWRITE writes over cells after the table"`
}

func appendData(ctx context.Context, c *services.Clients, in AppendDataInput) (string, error) {
	resp, err := c.Sheets.Spreadsheets.Values.Append(in.SpreadsheetID, in.Range, &sheets.ValueRange{Values: in.Values}).
		ValueInputOption(in.ValueInputOption).
		InsertDataOption(in.InsertDataOption).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Successfully appended %d rows to %s", len(in.Values), in.Range)
	if resp.TableRange != "" {
		rb.KeyValue("Table range", resp.TableRange)
	}
	if u := resp.Updates; u != nil {
		rb.KeyValue("Updated range", u.UpdatedRange).
			KeyValue("Updated cells", u.UpdatedCells)
	}
	return rb.Build(), nil
}

// --- sheets_clear_range ---

type ClearRangeInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Range         string `json:"range" jsonschema:"The A1 range to clear"`
}

func clearRange(ctx context.Context, c *services.Clients, in ClearRangeInput) (string, error) {
	resp, err := c.Sheets.Spreadsheets.Values.Clear(in.SpreadsheetID, in.Range, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	cleared := resp.ClearedRange
	if cleared == "" {
		cleared = in.Range
	}
	return response.New().Success("Successfully cleared %s", cleared).Build(), nil
}

// --- sheets_batch_get_data ---

type BatchGetDataInput struct {
	SpreadsheetID     string   `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Ranges            []string `json:"ranges" jsonschema:"A1 ranges to read"`
	ValueRenderOption string   `json:"valueRenderOption,omitempty" jsonschema:"How values are rendered in the output"`
}

type rangeValues struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

func batchGetData(ctx context.Context, c *services.Clients, in BatchGetDataInput) (string, error) {
	resp, err := c.Sheets.Spreadsheets.Values.BatchGet(in.SpreadsheetID).
		Ranges(in.Ranges...).
		ValueRenderOption(in.ValueRenderOption).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	out := make([]rangeValues, 0, len(resp.ValueRanges))
	for _, vr := range resp.ValueRanges {
		out = append(out, rangeValues{Range: vr.Range, Values: nonNilValues(vr.Values)})
	}
	return response.New().
		Success("Successfully retrieved %d ranges:", len(out)).
		Blank().
		JSON(out).
		Build(), nil
}

// --- sheets_batch_update_data ---

type RangeData struct {
	Range  string  `json:"range" jsonschema:"The A1 range to write"`
	Values [][]any `json:"values" jsonschema:"2D array of values"`
}

type BatchUpdateDataInput struct {
	SpreadsheetID    string      `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Data             []RangeData `json:"data" jsonschema:"Ranges and the values to write to each"`
	ValueInputOption string      `json:"valueInputOption,omitempty" jsonschema:"RAW or USER_ENTERED"`
}

func batchUpdateData(ctx context.Context, c *services.Clients, in BatchUpdateDataInput) (string, error) {
	req := &sheets.BatchUpdateValuesRequest{ValueInputOption: in.ValueInputOption}
	for _, d := range in.Data {
		req.Data = append(req.Data, &sheets.ValueRange{Range: d.Range, Values: d.Values})
	}
	resp, err := c.Sheets.Spreadsheets.Values.BatchUpdate(in.SpreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	rb := response.New().
		Success("Successfully updated %d ranges", len(in.Data)).
		KeyValue("Updated cells", resp.TotalUpdatedCells)
	for _, r := range resp.Responses {
		rb.Item("%s", r.UpdatedRange)
	}
	return rb.Build(), nil
}

// nonNilValues keeps empty ranges rendering as [] rather than null.
func nonNilValues(v [][]any) [][]any {
	if v == nil {
		return [][]any{}
	}
	return v
}

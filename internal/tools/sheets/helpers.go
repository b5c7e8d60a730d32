package sheets

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/a1"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

func spreadsheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id
}

func batchUpdate(ctx context.Context, c *services.Clients, spreadsheetID string, reqs ...*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return c.Sheets.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).Do()
}

// firstReply returns the first reply of a batch update, or an empty one.
func firstReply(resp *sheets.BatchUpdateSpreadsheetResponse) *sheets.Response {
	if resp == nil || len(resp.Replies) == 0 || resp.Replies[0] == nil {
		return &sheets.Response{}
	}
	return resp.Replies[0]
}

// sheetResolver maps sheet titles in A1 ranges to sheet IDs. The sheet list
// is fetched at most once, and only when a range names a sheet.
type sheetResolver struct {
	c             *services.Clients
	spreadsheetID string
	fallback      int64
	ids           map[string]int64
}

func newSheetResolver(c *services.Clients, spreadsheetID string, fallback int64) *sheetResolver {
	return &sheetResolver{c: c, spreadsheetID: spreadsheetID, fallback: fallback}
}

func (r *sheetResolver) sheetID(ctx context.Context, title string) (int64, error) {
	if title == "" {
		return r.fallback, nil
	}
	if r.ids == nil {
		ss, err := r.c.Sheets.Spreadsheets.Get(r.spreadsheetID).
			Fields("sheets.properties(sheetId,title)").
			Context(ctx).Do()
		if err != nil {
			return 0, err
		}
		r.ids = make(map[string]int64, len(ss.Sheets))
		for _, s := range ss.Sheets {
			if s.Properties != nil {
				r.ids[s.Properties.Title] = s.Properties.SheetId
			}
		}
	}
	id, ok := r.ids[title]
	if !ok {
		return 0, fmt.Errorf("sheet %q not found in spreadsheet %s", title, r.spreadsheetID)
	}
	return id, nil
}

// resolve parses an A1 range and returns it with the ID of its sheet.
func (r *sheetResolver) resolve(ctx context.Context, rng string) (a1.Range, int64, error) {
	parsed, err := a1.Parse(rng)
	if err != nil {
		return a1.Range{}, 0, err
	}
	id, err := r.sheetID(ctx, parsed.Sheet)
	if err != nil {
		return a1.Range{}, 0, err
	}
	return parsed, id, nil
}

func (r *sheetResolver) gridRange(ctx context.Context, rng string) (*sheets.GridRange, error) {
	parsed, id, err := r.resolve(ctx, rng)
	if err != nil {
		return nil, err
	}
	return parsed.GridRange(id), nil
}

// resolveGridRange is the one-range form of sheetResolver.
func resolveGridRange(ctx context.Context, c *services.Clients, spreadsheetID, rng string, sheetID int64) (*sheets.GridRange, error) {
	return newSheetResolver(c, spreadsheetID, sheetID).gridRange(ctx, rng)
}

// convert re-encodes a loosely typed value into an API type.
func convert(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

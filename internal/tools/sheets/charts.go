package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/a1"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// --- sheets_create_chart ---

type CreateChartInput struct {
	SpreadsheetID  string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	SourceRange    string `json:"sourceRange" jsonschema:"A1 range holding the data; the first column is the domain (labels), the rest are series"`
	SheetID        int64  `json:"sheetId,omitempty" jsonschema:"Sheet for ranges without a sheet name"`
	ChartType      string `json:"chartType,omitempty" jsonschema:"Chart type"`
	Title          string `json:"title,omitempty" jsonschema:"Chart title"`
	HeaderCount    int64  `json:"headerCount,omitempty" jsonschema:"Number of header rows in the source range"`
	LegendPosition string `json:"legendPosition,omitempty" jsonschema:"Where the legend is drawn"`
	AnchorCell     string `json:"anchorCell,omitempty" jsonschema:"Cell for the chart's top-left corner (default: beside the source range)"`
}

func chartData(g *sheets.GridRange) *sheets.ChartData {
	return &sheets.ChartData{SourceRange: &sheets.ChartSourceRange{Sources: []*sheets.GridRange{g}}}
}

// column returns a one-column slice of r on the given sheet.
func column(r a1.Range, sheetID, col int64) *sheets.GridRange {
	r.StartCol, r.EndCol = col, col+1
	return r.GridRange(sheetID)
}

func chartSpec(in CreateChartInput, src a1.Range, sheetID int64) (*sheets.ChartSpec, error) {
	if src.EndCol == 0 || src.EndCol-src.StartCol < 2 {
		return nil, fmt.Errorf("sourceRange %q must span at least two bounded columns (domain and one series)", in.SourceRange)
	}
	spec := &sheets.ChartSpec{Title: in.Title}
	domain := column(src, sheetID, src.StartCol)

	if in.ChartType == "PIE" {
		spec.PieChart = &sheets.PieChartSpec{
			Domain:         chartData(domain),
			Series:         chartData(column(src, sheetID, src.StartCol+1)),
			LegendPosition: in.LegendPosition,
		}
		return spec, nil
	}

	basic := &sheets.BasicChartSpec{
		ChartType:       in.ChartType,
		LegendPosition:  in.LegendPosition,
		HeaderCount:     in.HeaderCount,
		Domains:         []*sheets.BasicChartDomain{{Domain: chartData(domain)}},
		ForceSendFields: []string{"HeaderCount"},
	}
	axis := "LEFT_AXIS"
	if in.ChartType == "BAR" {
		axis = "BOTTOM_AXIS"
	}
	for col := src.StartCol + 1; col < src.EndCol; col++ {
		basic.Series = append(basic.Series, &sheets.BasicChartSeries{
			Series:     chartData(column(src, sheetID, col)),
			TargetAxis: axis,
		})
	}
	spec.BasicChart = basic
	return spec, nil
}

func createChart(ctx context.Context, c *services.Clients, in CreateChartInput) (string, error) {
	if in.HeaderCount < 0 {
		return "", fmt.Errorf("headerCount must not be negative")
	}
	sheetsByTitle := newSheetResolver(c, in.SpreadsheetID, in.SheetID)
	src, srcSheet, err := sheetsByTitle.resolve(ctx, in.SourceRange)
	if err != nil {
		return "", err
	}
	spec, err := chartSpec(in, src, srcSheet)
	if err != nil {
		return "", err
	}

	anchor := a1.Range{StartRow: src.StartRow, StartCol: src.EndCol}.Anchor(srcSheet)
	if in.AnchorCell != "" {
		r, id, err := sheetsByTitle.resolve(ctx, in.AnchorCell)
		if err != nil {
			return "", fmt.Errorf("anchorCell: %w", err)
		}
		if r.Sheet == "" {
			// An unqualified anchor sits on the source sheet.
			id = srcSheet
		}
		anchor = r.Anchor(id)
	}

	resp, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		AddChart: &sheets.AddChartRequest{
			Chart: &sheets.EmbeddedChart{
				Spec: spec,
				Position: &sheets.EmbeddedObjectPosition{
					OverlayPosition: &sheets.OverlayPosition{AnchorCell: anchor},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Successfully created %s chart from %s", in.ChartType, in.SourceRange)
	if r := firstReply(resp).AddChart; r != nil && r.Chart != nil {
		rb.KeyValue("Chart ID", r.Chart.ChartId)
	}
	rb.KeyValue("Anchor", fmt.Sprintf("%s%d", a1.ColumnName(anchor.ColumnIndex), anchor.RowIndex+1))
	return rb.Build(), nil
}

// --- sheets_list_charts ---

type ListChartsInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
}

type chartSummary struct {
	ChartID    int64  `json:"chartId"`
	Title      string `json:"title,omitempty"`
	Type       string `json:"type,omitempty"`
	SheetID    int64  `json:"sheetId"`
	SheetTitle string `json:"sheetTitle"`
}

func chartType(spec *sheets.ChartSpec) string {
	switch {
	case spec == nil:
		return ""
	case spec.BasicChart != nil:
		return spec.BasicChart.ChartType
	case spec.PieChart != nil:
		return "PIE"
	case spec.HistogramChart != nil:
		return "HISTOGRAM"
	case spec.CandlestickChart != nil:
		return "CANDLESTICK"
	case spec.OrgChart != nil:
		return "ORG"
	case spec.TreemapChart != nil:
		return "TREEMAP"
	case spec.WaterfallChart != nil:
		return "WATERFALL"
	case spec.ScorecardChart != nil:
		return "SCORECARD"
	case spec.BubbleChart != nil:
		return "BUBBLE"
	}
	return ""
}

func listCharts(ctx context.Context, c *services.Clients, in ListChartsInput) (string, error) {
	ss, err := c.Sheets.Spreadsheets.Get(in.SpreadsheetID).
		Fields("sheets(properties(sheetId,title),charts(chartId,spec))").
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	charts := []chartSummary{}
	for _, s := range ss.Sheets {
		if s.Properties == nil {
			continue
		}
		for _, ch := range s.Charts {
			sum := chartSummary{
				ChartID:    ch.ChartId,
				Type:       chartType(ch.Spec),
				SheetID:    s.Properties.SheetId,
				SheetTitle: s.Properties.Title,
			}
			if ch.Spec != nil {
				sum.Title = ch.Spec.Title
			}
			charts = append(charts, sum)
		}
	}
	return response.New().
		Success("Found %d charts in spreadsheet %s:", len(charts), in.SpreadsheetID).
		Blank().
		JSON(charts).
		Build(), nil
}

// --- sheets_delete_chart ---

type DeleteChartInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	ChartID       int64  `json:"chartId" jsonschema:"ID of the chart (see sheets_list_charts)"`
}

func deleteChart(ctx context.Context, c *services.Clients, in DeleteChartInput) (string, error) {
	_, err := batchUpdate(ctx, c, in.SpreadsheetID, &sheets.Request{
		DeleteEmbeddedObject: &sheets.DeleteEmbeddedObjectRequest{
			ObjectId:        in.ChartID,
			ForceSendFields: []string{"ObjectId"},
		},
	})
	if err != nil {
		return "", err
	}
	return response.New().Success("Successfully deleted chart %d", in.ChartID).Build(), nil
}

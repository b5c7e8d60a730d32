package sheets

import (
	"net/http"
	"strings"
	"testing"
)

func TestCreateChartSeries(t *testing.T) {
	srv, d := newHarness(t)
	srv.Respond(http.MethodPost, "/v4/spreadsheets/X:batchUpdate", http.StatusOK,
		`{"replies":[{"addChart":{"chart":{"chartId":123}}}]}`)

	text := mustSucceed(t, d, "sheets_create_chart",
		`{"spreadsheetId":"X","sourceRange":"A1:C10","chartType":"LINE","title":"Sales"}`)
	if !strings.Contains(text, "• Chart ID: 123") || !strings.Contains(text, "• Anchor: D1") {
		t.Errorf("text = %q", text)
	}

	chart := dig(t, firstRequest(t, srv, "X"), "addChart", "chart")
	spec := dig(t, chart, "spec")
	wantValue(t, dig(t, spec, "title"), "Sales")
	basic := dig(t, spec, "basicChart")
	wantValue(t, dig(t, basic, "chartType"), "LINE")

	domain := dig(t, basic, "domains", 0, "domain", "sourceRange", "sources", 0)
	// A zero start index is omitted; the API reads it as column A.
	if v := dig(t, domain, "startColumnIndex"); v != nil {
		t.Errorf("startColumnIndex = %v, want omitted", v)
	}
	wantValue(t, dig(t, domain, "endColumnIndex"), float64(1))
	wantValue(t, dig(t, domain, "endRowIndex"), float64(10))

	series := dig(t, basic, "series").([]any)
	if len(series) != 2 {
		t.Fatalf("got %d series, want 2", len(series))
	}
	wantValue(t, dig(t, series[1], "series", "sourceRange", "sources", 0, "startColumnIndex"), float64(2))
	wantValue(t, dig(t, series[1], "targetAxis"), "LEFT_AXIS")

	anchor := dig(t, chart, "position", "overlayPosition", "anchorCell")
	wantValue(t, dig(t, anchor, "columnIndex"), float64(3))
	wantValue(t, dig(t, anchor, "rowIndex"), float64(0))
	wantValue(t, dig(t, anchor, "sheetId"), float64(0))
}

func TestCreatePieChart(t *testing.T) {
	srv, d := newHarness(t)
	srv.Respond(http.MethodGet, "/v4/spreadsheets/X", http.StatusOK, sheetList)

	mustSucceed(t, d, "sheets_create_chart",
		`{"spreadsheetId":"X","sourceRange":"'My Sheet'!A1:B5","chartType":"PIE","anchorCell":"Sheet1!F2"}`)

	// Both sheet names resolve with a single metadata read.
	only(t, srv, http.MethodGet, "/v4/spreadsheets/X")
	chart := dig(t, firstRequest(t, srv, "X"), "addChart", "chart")
	pie := dig(t, chart, "spec", "pieChart")
	wantValue(t, dig(t, pie, "legendPosition"), "BOTTOM_LEGEND")
	wantValue(t, dig(t, pie, "series", "sourceRange", "sources", 0, "sheetId"), float64(42))
	if v := dig(t, chart, "spec", "basicChart"); v != nil {
		t.Errorf("basicChart = %v, want unset for a pie chart", v)
	}
	anchor := dig(t, chart, "position", "overlayPosition", "anchorCell")
	wantValue(t, dig(t, anchor, "sheetId"), float64(0))
	wantValue(t, dig(t, anchor, "columnIndex"), float64(5))
	wantValue(t, dig(t, anchor, "rowIndex"), float64(1))
}

func TestCreateChartUnqualifiedAnchorUsesSourceSheet(t *testing.T) {
	srv, d := newHarness(t)
	srv.Respond(http.MethodGet, "/v4/spreadsheets/X", http.StatusOK, sheetList)

	mustSucceed(t, d, "sheets_create_chart",
		`{"spreadsheetId":"X","sourceRange":"'My Sheet'!A1:B5","anchorCell":"H1"}`)
	anchor := dig(t, firstRequest(t, srv, "X"), "addChart", "chart", "position", "overlayPosition", "anchorCell")
	wantValue(t, dig(t, anchor, "sheetId"), float64(42))
}

func TestCreateChartNeedsTwoColumns(t *testing.T) {
	for _, rng := range []string{"A1:A10", "A:A", "1:5"} {
		t.Run(rng, func(t *testing.T) {
			srv, d := newHarness(t)
			text := call(t, d, "sheets_create_chart", `{"spreadsheetId":"X","sourceRange":"`+rng+`"}`)
			if !strings.Contains(text, "at least two bounded columns") {
				t.Errorf("text = %q", text)
			}
			if n := len(srv.Calls()); n != 0 {
				t.Errorf("made %d remote calls, want 0", n)
			}
		})
	}
}

func TestListCharts(t *testing.T) {
	srv, d := newHarness(t)
	srv.Respond(http.MethodGet, "/v4/spreadsheets/X", http.StatusOK, `{"sheets":[
		{"properties":{"sheetId":0,"title":"Sheet1"},"charts":[{"chartId":11,"spec":{"title":"Sales","basicChart":{"chartType":"LINE"}}}]},
		{"properties":{"sheetId":42,"title":"My Sheet"},"charts":[{"chartId":12,"spec":{"pieChart":{}}}]}
	]}`)

	text := mustSucceed(t, d, "sheets_list_charts", `{"spreadsheetId":"X"}`)
	for _, want := range []string{"Found 2 charts", `"chartId": 11`, `"type": "LINE"`, `"type": "PIE"`, `"sheetTitle": "My Sheet"`} {
		if !strings.Contains(text, want) {
			t.Errorf("text %q does not contain %s", text, want)
		}
	}
}

func TestDeleteChart(t *testing.T) {
	srv, d := newHarness(t)
	mustSucceed(t, d, "sheets_delete_chart", `{"spreadsheetId":"X","chartId":12}`)
	wantValue(t, dig(t, firstRequest(t, srv, "X"), "deleteEmbeddedObject", "objectId"), float64(12))
}

// Package sheets implements the Google Sheets and Drive tools.
package sheets

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/ptr"
	"github.com/evert/google-sheets-mcp-go/internal/registry"
)

// Services the tools belong to, matching the tier configuration.
const (
	serviceSheets = "sheets"
	serviceDrive  = "drive"
)

var sheetsIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/sheets_2020q4_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

var driveIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/drive_2020q4_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

func readOnly(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, ReadOnlyHint: true, OpenWorldHint: ptr.Bool(true)}
}

func write(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, DestructiveHint: ptr.Bool(false), OpenWorldHint: ptr.Bool(true)}
}

func overwrite(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, IdempotentHint: true, OpenWorldHint: ptr.Bool(true)}
}

func destructive(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, DestructiveHint: ptr.Bool(true), OpenWorldHint: ptr.Bool(true)}
}

func withIcons(t *registry.Tool) *registry.Tool {
	if t.Service == serviceDrive {
		t.Icons = driveIcons
	} else {
		t.Icons = sheetsIcons
	}
	return t
}

var (
	valueRenderOptions = []any{"FORMATTED_VALUE", "UNFORMATTED_VALUE", "FORMULA"}
	valueInputOptions  = []any{"RAW", "USER_ENTERED"}
	majorDimensions    = []any{"ROWS", "COLUMNS"}
)

// Catalog returns every tool in a fixed order: the core set first, then the
// extended and complete additions.
func Catalog() []*registry.Tool {
	tools := []*registry.Tool{
		// core
		registry.Define("sheets_get_data", serviceSheets,
			"Get data from a Google Sheets spreadsheet range. Returns the cell values as a JSON array of rows.",
			readOnly("Get Sheet Data"), getData,
			registry.Default("valueRenderOption", "FORMATTED_VALUE"), registry.Enum("valueRenderOption", valueRenderOptions...),
			registry.Default("majorDimension", "ROWS"), registry.Enum("majorDimension", majorDimensions...)),
		registry.Define("sheets_update_data", serviceSheets,
			"Update data in a Google Sheets range. Values are written as given (RAW) unless USER_ENTERED is requested.",
			overwrite("Update Sheet Data"), updateData,
			registry.Default("valueInputOption", "RAW"), registry.Enum("valueInputOption", valueInputOptions...)),
		registry.Define("sheets_create", serviceSheets,
			"Create a new Google Sheets spreadsheet. Creates a single sheet named Sheet1 unless sheets are given.",
			write("Create Spreadsheet"), createSpreadsheet,
			registry.Default("sheets", []map[string]any{{"properties": map[string]any{"title": "Sheet1"}}})),
		registry.Define("sheets_search", serviceDrive,
			"Search for Google Sheets spreadsheets by name in Google Drive.",
			readOnly("Search Spreadsheets"), searchSpreadsheets,
			registry.Default("maxResults", 10)),
		registry.Define("sheets_share", serviceDrive,
			"Share a Google Sheets spreadsheet with a user by email.",
			write("Share Spreadsheet"), shareSpreadsheet,
			registry.Default("role", "reader"), registry.Enum("role", "reader", "commenter", "writer", "owner"),
			registry.Default("sendNotification", true)),
		registry.Define("sheets_get_metadata", serviceSheets,
			"Get spreadsheet metadata: title, locale, time zone and every sheet with its ID and grid size.",
			readOnly("Get Spreadsheet Metadata"), getMetadata),

		// extended
		registry.Define("sheets_delete", serviceDrive,
			"Permanently delete a spreadsheet from Google Drive.",
			destructive("Delete Spreadsheet"), deleteSpreadsheet),
		registry.Define("sheets_copy", serviceDrive,
			"Copy a spreadsheet to a new file in Google Drive.",
			write("Copy Spreadsheet"), copySpreadsheet),
		registry.Define("sheets_get_revisions", serviceDrive,
			"List the revision history of a spreadsheet.",
			readOnly("Get Revisions"), getRevisions,
			registry.Default("pageSize", 100)),
		registry.Define("sheets_batch_update", serviceSheets,
			"Apply raw Sheets API batchUpdate requests (e.g. repeatCell, addSheet) in one atomic call.",
			destructive("Batch Update Spreadsheet"), batchUpdateSpreadsheet),

		// complete: values
		registry.Define("sheets_append_data", serviceSheets,
			"Append rows after the last row of data in a range (a table).",
			write("Append Rows"), appendData,
			registry.Default("valueInputOption", "RAW"), registry.Enum("valueInputOption", valueInputOptions...),
			registry.Default("insertDataOption", "INSERT_ROWS"), registry.Enum("insertDataOption", "INSERT_ROWS", "OVERWRITE")),
		registry.Define("sheets_clear_range", serviceSheets,
			"Clear all values in a range. Formatting is kept.",
			destructive("Clear Range"), clearRange),
		registry.Define("sheets_batch_get_data", serviceSheets,
			"Get values from several ranges in one call.",
			readOnly("Batch Get Data"), batchGetData,
			registry.Default("valueRenderOption", "FORMATTED_VALUE"), registry.Enum("valueRenderOption", valueRenderOptions...)),
		registry.Define("sheets_batch_update_data", serviceSheets,
			"Write values to several ranges in one call.",
			overwrite("Batch Update Data"), batchUpdateData,
			registry.Default("valueInputOption", "RAW"), registry.Enum("valueInputOption", valueInputOptions...)),

		// complete: sheets (tabs)
		registry.Define("sheets_list_sheets", serviceSheets,
			"List the sheets (tabs) of a spreadsheet with their IDs, positions and sizes.",
			readOnly("List Sheets"), listSheets),
		registry.Define("sheets_add_sheet", serviceSheets,
			"Add a sheet (tab) to a spreadsheet.",
			write("Add Sheet"), addSheet,
			registry.Default("rowCount", 1000), registry.Default("columnCount", 26)),
		registry.Define("sheets_delete_sheet", serviceSheets,
			"Delete a sheet (tab) and all of its data.",
			destructive("Delete Sheet"), deleteSheet),
		registry.Define("sheets_rename_sheet", serviceSheets,
			"Rename a sheet (tab).",
			overwrite("Rename Sheet"), renameSheet),
		registry.Define("sheets_duplicate_sheet", serviceSheets,
			"Duplicate a sheet (tab) within the same spreadsheet.",
			write("Duplicate Sheet"), duplicateSheet),
		registry.Define("sheets_copy_sheet_to", serviceSheets,
			"Copy a sheet (tab) into another spreadsheet.",
			write("Copy Sheet To"), copySheetTo),

		// complete: rows and columns
		registry.Define("sheets_insert_dimension", serviceSheets,
			"Insert empty rows or columns at a position.",
			write("Insert Rows or Columns"), insertDimension,
			registry.Default("dimension", "ROWS"), registry.Enum("dimension", majorDimensions...),
			registry.Default("inheritFromBefore", false)),
		registry.Define("sheets_delete_dimension", serviceSheets,
			"Delete rows or columns in [startIndex, endIndex).",
			destructive("Delete Rows or Columns"), deleteDimension,
			registry.Default("dimension", "ROWS"), registry.Enum("dimension", majorDimensions...)),

		// complete: formatting and validation
		registry.Define("sheets_format_cells", serviceSheets,
			"Format cells in an A1 range: bold, italic, font size, colors, alignment, wrapping and number format.",
			overwrite("Format Cells"), formatCells,
			registry.Enum("horizontalAlignment", "LEFT", "CENTER", "RIGHT"),
			registry.Enum("verticalAlignment", "TOP", "MIDDLE", "BOTTOM"),
			registry.Enum("wrapStrategy", "OVERFLOW_CELL", "CLIP", "WRAP"),
			registry.Enum("numberFormatType", "TEXT", "NUMBER", "PERCENT", "CURRENCY", "DATE", "TIME", "DATE_TIME", "SCIENTIFIC"),
			registry.Default("sheetId", 0)),
		registry.Define("sheets_merge_cells", serviceSheets,
			"Merge the cells of an A1 range.",
			overwrite("Merge Cells"), mergeCells,
			registry.Default("mergeType", "MERGE_ALL"), registry.Enum("mergeType", "MERGE_ALL", "MERGE_COLUMNS", "MERGE_ROWS"),
			registry.Default("sheetId", 0)),
		registry.Define("sheets_unmerge_cells", serviceSheets,
			"Unmerge every merged cell within an A1 range.",
			overwrite("Unmerge Cells"), unmergeCells,
			registry.Default("sheetId", 0)),
		registry.Define("sheets_add_data_validation", serviceSheets,
			"Add a data validation rule (dropdown list, number or date bounds, custom formula) to an A1 range.",
			overwrite("Add Data Validation"), addDataValidation,
			registry.Default("strict", true), registry.Default("showDropdown", true),
			registry.Default("sheetId", 0)),
		registry.Define("sheets_add_conditional_format", serviceSheets,
			"Add a conditional formatting rule to an A1 range.",
			write("Add Conditional Format"), addConditionalFormat,
			registry.Default("sheetId", 0)),
		registry.Define("sheets_sort_range", serviceSheets,
			"Sort the rows of an A1 range by one column.",
			overwrite("Sort Range"), sortRange,
			registry.Default("sortColumn", 0), registry.Default("ascending", true),
			registry.Default("sheetId", 0)),
		registry.Define("sheets_find_replace", serviceSheets,
			"Find and replace text across all sheets, one sheet, or an A1 range.",
			overwrite("Find and Replace"), findReplace,
			registry.Default("replacement", ""), registry.Default("allSheets", true),
			registry.Default("matchCase", false), registry.Default("matchEntireCell", false),
			registry.Default("searchByRegex", false), registry.Default("includeFormulas", false)),

		// complete: charts
		registry.Define("sheets_create_chart", serviceSheets,
			"Create a chart from an A1 source range. The first column is the domain, the remaining columns are series.",
			write("Create Chart"), createChart,
			registry.Default("chartType", "COLUMN"), registry.Enum("chartType", "BAR", "LINE", "AREA", "COLUMN", "SCATTER", "PIE"),
			registry.Default("headerCount", 1),
			registry.Default("legendPosition", "BOTTOM_LEGEND"),
			registry.Enum("legendPosition", "BOTTOM_LEGEND", "LEFT_LEGEND", "RIGHT_LEGEND", "TOP_LEGEND", "NO_LEGEND"),
			registry.Default("sheetId", 0)),
		registry.Define("sheets_list_charts", serviceSheets,
			"List the charts of a spreadsheet with their IDs and sheets.",
			readOnly("List Charts"), listCharts),
		registry.Define("sheets_delete_chart", serviceSheets,
			"Delete a chart by ID.",
			destructive("Delete Chart"), deleteChart),

		// complete: permissions
		registry.Define("sheets_list_permissions", serviceDrive,
			"List who a spreadsheet is shared with.",
			readOnly("List Permissions"), listPermissions),
		registry.Define("sheets_remove_permission", serviceDrive,
			"Remove a permission (revoke access) from a spreadsheet.",
			destructive("Remove Permission"), removePermission),
	}
	for _, t := range tools {
		withIcons(t)
	}
	return tools
}

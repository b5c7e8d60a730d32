package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/validate"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// --- sheets_search ---

type SearchInput struct {
	Query      string `json:"query" jsonschema:"Text the spreadsheet name must contain"`
	MaxResults int64  `json:"maxResults,omitempty" jsonschema:"Maximum number of results (1-1000)"`
}

func searchSpreadsheets(ctx context.Context, c *services.Clients, in SearchInput) (string, error) {
	if in.MaxResults < 1 || in.MaxResults > 1000 {
		return "", fmt.Errorf("maxResults must be between 1 and 1000, got %d", in.MaxResults)
	}
	q := fmt.Sprintf("name contains '%s' and mimeType='%s' and trashed=false",
		validate.QueryLiteral(in.Query), spreadsheetMimeType)

	resp, err := c.Drive.Files.List().
		Q(q).
		PageSize(in.MaxResults).
		OrderBy("modifiedTime desc").
		Fields("files(id,name,createdTime,modifiedTime,webViewLink)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	files := resp.Files
	if files == nil {
		files = []*drive.File{}
	}
	return response.New().
		Success("Found %d spreadsheets matching %q:", len(files), in.Query).
		Blank().
		JSON(files).
		Build(), nil
}

// --- sheets_share ---

type ShareInput struct {
	SpreadsheetID    string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	Email            string `json:"email" jsonschema:"Email address to share with"`
	Role             string `json:"role,omitempty" jsonschema:"Access level to grant"`
	SendNotification bool   `json:"sendNotification,omitempty" jsonschema:"Whether to email the recipient"`
	EmailMessage     string `json:"emailMessage,omitempty" jsonschema:"Optional message included in the notification email"`
}

func shareSpreadsheet(ctx context.Context, c *services.Clients, in ShareInput) (string, error) {
	if err := validate.FileID(in.SpreadsheetID); err != nil {
		return "", err
	}
	if err := validate.Email(in.Email); err != nil {
		return "", err
	}
	call := c.Drive.Permissions.Create(in.SpreadsheetID, &drive.Permission{
		Type:         "user",
		Role:         in.Role,
		EmailAddress: in.Email,
	}).SendNotificationEmail(in.SendNotification).SupportsAllDrives(true).Fields("id")
	if in.Role == "owner" {
		call = call.TransferOwnership(true)
	}
	if in.EmailMessage != "" && in.SendNotification {
		call = call.EmailMessage(in.EmailMessage)
	}
	perm, err := call.Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully shared spreadsheet with %s (%s)", in.Email, in.Role).
		KeyValue("Permission ID", perm.Id).
		Build(), nil
}

// --- sheets_delete ---

type DeleteInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet to delete"`
}

func deleteSpreadsheet(ctx context.Context, c *services.Clients, in DeleteInput) (string, error) {
	if err := validate.FileID(in.SpreadsheetID); err != nil {
		return "", err
	}
	if err := c.Drive.Files.Delete(in.SpreadsheetID).SupportsAllDrives(true).Context(ctx).Do(); err != nil {
		return "", err
	}
	return response.New().Success("Successfully deleted spreadsheet %s", in.SpreadsheetID).Build(), nil
}

// --- sheets_copy ---

type CopyInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet to copy"`
	Title         string `json:"title,omitempty" jsonschema:"Name of the copy (default: Drive's 'Copy of ...' name)"`
}

func copySpreadsheet(ctx context.Context, c *services.Clients, in CopyInput) (string, error) {
	if err := validate.FileID(in.SpreadsheetID); err != nil {
		return "", err
	}
	copied, err := c.Drive.Files.Copy(in.SpreadsheetID, &drive.File{Name: in.Title}).
		Fields("id,name,webViewLink").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully copied spreadsheet %s", in.SpreadsheetID).
		KeyValue("New ID", copied.Id).
		KeyValue("Title", copied.Name).
		KeyValue("URL", spreadsheetURL(copied.Id)).
		Build(), nil
}

// --- sheets_get_revisions ---

type GetRevisionsInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	PageSize      int64  `json:"pageSize,omitempty" jsonschema:"Maximum number of revisions (1-1000)"`
}

func getRevisions(ctx context.Context, c *services.Clients, in GetRevisionsInput) (string, error) {
	if err := validate.FileID(in.SpreadsheetID); err != nil {
		return "", err
	}
	if in.PageSize < 1 || in.PageSize > 1000 {
		return "", fmt.Errorf("pageSize must be between 1 and 1000, got %d", in.PageSize)
	}
	resp, err := c.Drive.Revisions.List(in.SpreadsheetID).
		PageSize(in.PageSize).
		Fields("revisions(id,modifiedTime,keepForever,lastModifyingUser(displayName,emailAddress))").
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	revs := resp.Revisions
	if revs == nil {
		revs = []*drive.Revision{}
	}
	return response.New().
		Success("Revision history for %s (%d revisions):", in.SpreadsheetID, len(revs)).
		Blank().
		JSON(revs).
		Build(), nil
}

// --- sheets_list_permissions ---

type ListPermissionsInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
}

func listPermissions(ctx context.Context, c *services.Clients, in ListPermissionsInput) (string, error) {
	if err := validate.FileID(in.SpreadsheetID); err != nil {
		return "", err
	}
	resp, err := c.Drive.Permissions.List(in.SpreadsheetID).
		Fields("permissions(id,type,role,emailAddress,domain,displayName)").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	rb := response.New().Success("Spreadsheet %s is shared with %d principals:", in.SpreadsheetID, len(resp.Permissions))
	rb.Blank()
	for _, p := range resp.Permissions {
		who := p.EmailAddress
		if who == "" {
			who = p.Domain
		}
		if who == "" {
			who = p.Type
		}
		rb.Item("%s (%s) [ID: %s]", who, p.Role, p.Id)
	}
	return rb.Build(), nil
}

// --- sheets_remove_permission ---

type RemovePermissionInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"The ID of the spreadsheet"`
	PermissionID  string `json:"permissionId" jsonschema:"Permission ID from sheets_list_permissions"`
}

func removePermission(ctx context.Context, c *services.Clients, in RemovePermissionInput) (string, error) {
	if err := validate.FileID(in.SpreadsheetID); err != nil {
		return "", err
	}
	err := c.Drive.Permissions.Delete(in.SpreadsheetID, in.PermissionID).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return response.New().
		Success("Successfully removed permission %s from spreadsheet %s", in.PermissionID, in.SpreadsheetID).
		Build(), nil
}

package services

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Clients holds the Google API clients shared by every tool handler.
type Clients struct {
	Sheets *sheets.Service
	Drive  *drive.Service
}

// NewClients builds the Sheets and Drive clients from the same options.
// Individual API calls pass their own request context via .Context(ctx).
func NewClients(ctx context.Context, opts ...option.ClientOption) (*Clients, error) {
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}
	return &Clients{Sheets: sheetsSvc, Drive: driveSvc}, nil
}

package services

import (
	"context"
	"testing"

	"google.golang.org/api/option"
)

func TestNewClients(t *testing.T) {
	c, err := NewClients(context.Background(),
		option.WithoutAuthentication(),
		option.WithEndpoint("http://127.0.0.1:1/"),
	)
	if err != nil {
		t.Fatalf("NewClients() error = %v", err)
	}
	if c.Sheets == nil || c.Drive == nil {
		t.Errorf("NewClients() = %+v, want both clients", c)
	}
	if c.Sheets.BasePath != "http://127.0.0.1:1/" {
		t.Errorf("Sheets.BasePath = %q", c.Sheets.BasePath)
	}
}

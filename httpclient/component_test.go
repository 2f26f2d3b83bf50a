package httpclient

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/superfetch/component"
)

func TestComponent_Lifecycle(t *testing.T) {
	c := NewComponent(Config{Name: "ledger", BaseURL: "https://ledger.internal"})
	ctx := context.Background()

	if c.Name() != "ledger" {
		t.Errorf("expected name ledger, got %q", c.Name())
	}
	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %v", h)
	}
	if c.Client() != nil {
		t.Error("client should be nil before Start")
	}

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %v", h)
	}
	if c.Client() == nil {
		t.Fatal("expected client after Start")
	}
	if err := c.Stop(ctx); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestComponent_StartFailsWithoutTransport(t *testing.T) {
	c := NewComponent(Config{}, WithTransport(nil))
	if err := c.Start(context.Background()); !IsTransportUnavailable(err) {
		t.Fatalf("expected transport unavailable, got %v", err)
	}
	if c.Name() != "http" {
		t.Errorf("expected default name, got %q", c.Name())
	}
}

func TestComponent_Describe(t *testing.T) {
	d := NewComponent(Config{BaseURL: "https://api.example.com"}).Describe()
	if d.Type != "http-client" {
		t.Errorf("unexpected type %q", d.Type)
	}
	if !strings.Contains(d.Details, "https://api.example.com") || !strings.Contains(d.Details, "timeout=2m30s") {
		t.Errorf("unexpected details %q", d.Details)
	}
}

func TestComponent_InRegistry(t *testing.T) {
	reg := component.NewRegistry(nil)
	if err := reg.Register(NewComponent(Config{Name: "api"})); err != nil {
		t.Fatalf("Register: %v", err)
	}
	ctx := context.Background()
	if err := reg.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	defer func() { _ = reg.StopAll(ctx) }()

	health := reg.HealthAll(ctx)
	if len(health) != 1 || health[0].Status != component.StatusHealthy {
		t.Errorf("unexpected health %v", health)
	}
}

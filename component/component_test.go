package component

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/superfetch/logger"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	order    *[]string
	desc     *Description
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.order != nil {
		*m.order = append(*m.order, "start:"+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.order != nil {
		*m.order = append(*m.order, "stop:"+m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health { return m.health }

type describableComponent struct {
	mockComponent
}

func (d *describableComponent) Describe() Description {
	return Description{Type: "http-client", Details: "https://api.example.com"}
}

func newTestRegistry() *Registry {
	return NewRegistry(logger.Nop())
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry()
	if err := r.Register(&mockComponent{name: "api"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "api"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := newTestRegistry()
	c := &mockComponent{name: "api"}
	_ = r.Register(c)

	if got := r.Get("api"); got != c {
		t.Errorf("expected registered component, got %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestStartStopOrder(t *testing.T) {
	var order []string
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "a", order: &order})
	_ = r.Register(&mockComponent{name: "b", order: &order})

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{"start:a", "start:b", "stop:b", "stop:a"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestStartAllError(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "a", order: &order})
	_ = r.Register(&mockComponent{name: "b", order: &order, startErr: boom})
	_ = r.Register(&mockComponent{name: "c", order: &order})

	err := r.StartAll(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}

	// Only a was started, so only a is stopped.
	order = nil
	_ = r.StopAll(context.Background())
	if len(order) != 1 || order[0] != "stop:a" {
		t.Errorf("expected only a stopped, got %v", order)
	}
}

func TestStopAllJoinsErrors(t *testing.T) {
	errA, errB := errors.New("a failed"), errors.New("b failed")
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "a", stopErr: errA})
	_ = r.Register(&mockComponent{name: "b", stopErr: errB})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both errors, got %v", err)
	}
}

func TestHealthAll(t *testing.T) {
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "a", health: Health{Name: "a", Status: StatusHealthy}})
	_ = r.Register(&mockComponent{name: "b", health: Health{Name: "b", Status: StatusUnhealthy, Message: "down"}})

	got := r.HealthAll(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Status != StatusHealthy || got[1].Status != StatusUnhealthy {
		t.Errorf("unexpected health %v", got)
	}
}

func TestDescribe(t *testing.T) {
	r := newTestRegistry()
	_ = r.Register(&mockComponent{name: "plain"})
	_ = r.Register(&describableComponent{mockComponent{name: "api"}})

	got := r.Describe()
	if len(got) != 2 {
		t.Fatalf("expected 2 descriptions, got %d", len(got))
	}
	if got[0].Name != "plain" || got[0].Type != "" {
		t.Errorf("unexpected plain description %+v", got[0])
	}
	if got[1].Name != "api" || got[1].Type != "http-client" {
		t.Errorf("unexpected api description %+v", got[1])
	}
}

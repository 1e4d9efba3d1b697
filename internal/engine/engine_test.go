package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/dynbilliards/backend/internal/billiards"
)

type recordingEngine struct {
	got []*billiards.SimulationRequest
}

func (e *recordingEngine) Run(ctx context.Context, req *billiards.SimulationRequest) error {
	e.got = append(e.got, req)
	return nil
}

func TestRegistryForCatalogWithoutRedis(t *testing.T) {
	catalog, err := billiards.LoadCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistryForCatalog(catalog, nil)

	for _, tbl := range catalog.Tables() {
		e, err := r.Lookup(tbl.Engine)
		if err != nil {
			t.Fatalf("no engine for %s: %v", tbl.Engine, err)
		}
		if _, ok := e.(*LogEngine); !ok {
			t.Errorf("%s: expected LogEngine without redis, got %T", tbl.Engine, e)
		}
	}
	if _, err := r.Lookup("pinball"); !errors.Is(err, ErrNoEngine) {
		t.Errorf("expected ErrNoEngine, got %v", err)
	}
}

func TestRegistryRegisterOverrides(t *testing.T) {
	r := NewRegistry()
	rec := &recordingEngine{}
	r.Register("circle", rec)

	e, err := r.Lookup("circle")
	if err != nil {
		t.Fatal(err)
	}
	req := &billiards.SimulationRequest{TableType: "circle"}
	if err := e.Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if len(rec.got) != 1 || rec.got[0] != req {
		t.Errorf("request not delivered: %+v", rec.got)
	}
}

func TestChannel(t *testing.T) {
	if got := Channel("lorentz"); got != "simulation_requests:lorentz" {
		t.Errorf("Channel = %q", got)
	}
}

func TestLogEngineRun(t *testing.T) {
	e := NewLogEngine("rectangle")
	if err := e.Run(context.Background(), &billiards.SimulationRequest{}); err != nil {
		t.Errorf("log engine should never fail: %v", err)
	}
}

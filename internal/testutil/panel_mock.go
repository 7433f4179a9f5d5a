package testutil

import (
	"context"
	"sync"

	"github.com/DavidRSR1/verifica/internal/model"
	"github.com/DavidRSR1/verifica/internal/upstream"
)

// FakePanel is an in-memory stand-in for the panel backend API client. It
// returns predefined data instead of making network calls and counts
// invocations per method.
type FakePanel struct {
	mu    sync.Mutex
	calls map[string]int

	ProvidersData []model.Provider
	StationsData  map[string][]model.Station
	SalesData     []model.Row
	ReimbData     []model.Row
	ResumoData    upstream.Resumo

	// Err, when set, is returned by every method.
	Err error

	// Gate, when set, is called before each method returns; tests use it to
	// control completion order.
	Gate func(method string)
}

// NewFakePanel creates a fake panel client with a small default catalog.
func NewFakePanel() *FakePanel {
	return &FakePanel{
		calls: make(map[string]int),
		ProvidersData: []model.Provider{
			{Slug: "profrotas", Name: "Profrotas", Color: "#00C896", HasPostos: true},
			{Slug: "redefrota", Name: "Redefrota", Color: "#FF6B35"},
		},
		StationsData: map[string][]model.Station{
			"profrotas": {
				{CNPJ: "03.951.672/0001-70", Nome: "Auto Posto Sof Norte Ltda", NomeCurto: "Sof Norte"},
			},
		},
	}
}

func (f *FakePanel) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	gate := f.Gate
	err := f.Err
	f.mu.Unlock()

	if gate != nil {
		gate(method)
	}
	return err
}

// Calls reports how many times the named method was invoked.
func (f *FakePanel) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FakePanel) Providers(_ context.Context) ([]model.Provider, error) {
	if err := f.enter("providers"); err != nil {
		return nil, err
	}
	return f.ProvidersData, nil
}

func (f *FakePanel) Stations(_ context.Context, provider string) ([]model.Station, error) {
	if err := f.enter("stations"); err != nil {
		return nil, err
	}
	return f.StationsData[provider], nil
}

func (f *FakePanel) Sales(_ context.Context, _ string, _ upstream.Query) ([]model.Row, error) {
	if err := f.enter("sales"); err != nil {
		return nil, err
	}
	return f.SalesData, nil
}

func (f *FakePanel) Reimbursements(_ context.Context, _ string, _ upstream.Query, _ bool) ([]model.Row, error) {
	if err := f.enter("reimbursements"); err != nil {
		return nil, err
	}
	return f.ReimbData, nil
}

func (f *FakePanel) Resumo(_ context.Context, _ string, _ upstream.Query) (upstream.Resumo, error) {
	if err := f.enter("resumo"); err != nil {
		return upstream.Resumo{}, err
	}
	return f.ResumoData, nil
}

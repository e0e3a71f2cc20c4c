package enrich

import (
	"context"

	"github.com/escale/cep-enricher/pkg/geofusion"
)

// fakeClient implements geofusion.Client with overridable behavior per
// endpoint. Unset functions return canned happy-path data.
type fakeClient struct {
	positionFn  func(cep string) (*geofusion.Position, error)
	incomeFn    func() (float64, error)
	probsFn     func() (map[string]float64, error)
	maxFn       func() (string, error)
	placesFn    func(params geofusion.PlacesParams) (*geofusion.PlacesSummary, error)
	potentialFn func() (map[string]any, error)
	socioFn     func() (map[string]any, error)
}

func (f *fakeClient) Position(_ context.Context, cep string) (*geofusion.Position, error) {
	if f.positionFn != nil {
		return f.positionFn(cep)
	}
	if cep == "00000-000" {
		return &geofusion.Position{Error: "zipCode not found"}, nil
	}
	return &geofusion.Position{Latitude: -23.561, Longitude: -46.656}, nil
}

func (f *fakeClient) ConsumerIncome(context.Context, float64, float64) (float64, error) {
	if f.incomeFn != nil {
		return f.incomeFn()
	}
	return 4500, nil
}

func (f *fakeClient) SegmentationProbs(context.Context, float64, float64) (map[string]float64, error) {
	if f.probsFn != nil {
		return f.probsFn()
	}
	return map[string]float64{"cluster_a": 0.7, "cluster_b": 0.3}, nil
}

func (f *fakeClient) SegmentationMax(context.Context, float64, float64) (string, error) {
	if f.maxFn != nil {
		return f.maxFn()
	}
	return "cluster_a", nil
}

func (f *fakeClient) PlacesSummary(_ context.Context, _, _ float64, params geofusion.PlacesParams) (*geofusion.PlacesSummary, error) {
	if f.placesFn != nil {
		return f.placesFn(params)
	}
	return &geofusion.PlacesSummary{
		Total: 12,
		Summary: map[string]any{
			"saude": map[string]any{"farmacias": 3.0},
			"lazer": 9.0,
		},
	}, nil
}

func (f *fakeClient) ConsumptionPotential(context.Context, float64, float64, float64, []string) (map[string]any, error) {
	if f.potentialFn != nil {
		return f.potentialFn()
	}
	return map[string]any{
		"telefone_celular": map[string]any{"classe_a": 10.0, "classe_b": 20.0},
	}, nil
}

func (f *fakeClient) Sociodemography(context.Context, float64, float64, float64) (map[string]any, error) {
	if f.socioFn != nil {
		return f.socioFn()
	}
	return map[string]any{
		"population": map[string]any{"total": 1234.0},
	}, nil
}

func newTestEnricher(client geofusion.Client) *Enricher {
	return New(client, DefaultParams())
}

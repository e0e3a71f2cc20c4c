package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escale/cep-enricher/pkg/geofusion"
)

func TestIncome(t *testing.T) {
	e := newTestEnricher(&fakeClient{})
	attrs := e.Income(context.Background(), -23.5, -46.6)
	assert.Equal(t, Attributes{KeyIncome: 4500.0}, attrs)
}

func TestIncome_FailureSentinel(t *testing.T) {
	e := newTestEnricher(&fakeClient{
		incomeFn: func() (float64, error) { return 0, errors.New("boom") },
	})
	attrs := e.Income(context.Background(), -23.5, -46.6)
	assert.Equal(t, Attributes{KeyIncomeError: SentinelError}, attrs)
}

func TestSegmentation(t *testing.T) {
	e := newTestEnricher(&fakeClient{})
	attrs := e.Segmentation(context.Background(), -23.5, -46.6)

	assert.Equal(t, 0.7, attrs["cluster_a"])
	assert.Equal(t, 0.3, attrs["cluster_b"])
	assert.Equal(t, "cluster_a", attrs[KeyCluster])
}

func TestSegmentation_EmptyClusterIsRural(t *testing.T) {
	e := newTestEnricher(&fakeClient{
		maxFn: func() (string, error) { return "", nil },
	})
	attrs := e.Segmentation(context.Background(), -23.5, -46.6)
	assert.Equal(t, ClusterRural, attrs[KeyCluster])
}

func TestSegmentation_ClusterFailureKeepsProbs(t *testing.T) {
	e := newTestEnricher(&fakeClient{
		maxFn: func() (string, error) { return "", errors.New("boom") },
	})
	attrs := e.Segmentation(context.Background(), -23.5, -46.6)

	assert.Equal(t, SentinelError, attrs[KeyCluster])
	assert.Equal(t, 0.7, attrs["cluster_a"])
}

func TestSegmentation_FailureSentinel(t *testing.T) {
	e := newTestEnricher(&fakeClient{
		probsFn: func() (map[string]float64, error) { return nil, errors.New("boom") },
	})
	attrs := e.Segmentation(context.Background(), -23.5, -46.6)
	assert.Equal(t, Attributes{KeySegError: SentinelError}, attrs)
}

func TestPois(t *testing.T) {
	e := newTestEnricher(&fakeClient{})
	attrs := e.Pois(context.Background(), -23.5, -46.6)

	assert.Equal(t, 3.0, attrs["pois__saude__farmacias"])
	assert.Equal(t, 9.0, attrs["pois__lazer"])
	assert.Equal(t, 12.0, attrs["pois__total"])
}

func TestPois_PassesParams(t *testing.T) {
	var got geofusion.PlacesParams
	e := newTestEnricher(&fakeClient{
		placesFn: func(params geofusion.PlacesParams) (*geofusion.PlacesSummary, error) {
			got = params
			return &geofusion.PlacesSummary{}, nil
		},
	})
	e.Pois(context.Background(), -23.5, -46.6)

	assert.Equal(t, DispatchTime, got.DispatchType)
	assert.Equal(t, LocomotionWalk, got.Locomotion)
	assert.Equal(t, DirectionOut, got.Direction)
	assert.InDelta(t, 5.0, got.Value, 1e-9)
}

func TestPois_FailureIsEmpty(t *testing.T) {
	e := newTestEnricher(&fakeClient{
		placesFn: func(geofusion.PlacesParams) (*geofusion.PlacesSummary, error) {
			return nil, errors.New("boom")
		},
	})
	attrs := e.Pois(context.Background(), -23.5, -46.6)
	assert.Empty(t, attrs)
	assert.NotNil(t, attrs)
}

func TestConsumptionPotential(t *testing.T) {
	e := newTestEnricher(&fakeClient{})
	attrs, err := e.ConsumptionPotential(context.Background(), -23.5, -46.6)
	require.NoError(t, err)

	assert.Equal(t, 10.0, attrs["consumption_potential__telefone_celular__classe_a"])
	assert.Equal(t, 20.0, attrs["consumption_potential__telefone_celular__classe_b"])
	assert.Equal(t, 30.0, attrs["consumption_potential__telefone_celular__total"])
}

func TestConsumptionPotential_NumericCategory(t *testing.T) {
	// A category whose breakdown is already a bare number still gets a total.
	e := newTestEnricher(&fakeClient{
		potentialFn: func() (map[string]any, error) {
			return map[string]any{"telefone_fixo": 5.0}, nil
		},
	})
	attrs, err := e.ConsumptionPotential(context.Background(), -23.5, -46.6)
	require.NoError(t, err)

	assert.Equal(t, 5.0, attrs["consumption_potential__telefone_fixo"])
	assert.Equal(t, 5.0, attrs["consumption_potential__telefone_fixo__total"])
}

func TestConsumptionPotential_ErrorPropagates(t *testing.T) {
	e := newTestEnricher(&fakeClient{
		potentialFn: func() (map[string]any, error) { return nil, errors.New("boom") },
	})
	_, err := e.ConsumptionPotential(context.Background(), -23.5, -46.6)
	require.Error(t, err)
}

func TestSociodemography(t *testing.T) {
	e := newTestEnricher(&fakeClient{})
	attrs := e.Sociodemography(context.Background(), -23.5, -46.6)
	assert.Equal(t, 1234.0, attrs["sociodemography__population__total"])
}

func TestSociodemography_FailureCarriesDiagnostics(t *testing.T) {
	e := newTestEnricher(&fakeClient{
		socioFn: func() (map[string]any, error) {
			return nil, &geofusion.APIError{
				StatusCode: 500,
				URL:        "https://api.geofusion.com.br/xray/v1/areas/surroundings/sociodemography/RADIUS",
				Body:       `{"message":"internal"}`,
			}
		},
	})
	attrs := e.Sociodemography(context.Background(), -23.5, -46.6)

	msg, ok := attrs[KeySocioError].(string)
	require.True(t, ok)
	assert.Contains(t, msg, "sociodemography/RADIUS")
	assert.Contains(t, msg, "internal")
}

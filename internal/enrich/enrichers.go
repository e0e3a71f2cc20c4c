package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/escale/cep-enricher/internal/flatten"
	"github.com/escale/cep-enricher/pkg/geofusion"
)

// Income returns the likely household income at the coordinate. Any failure
// collapses to the {"Income": "Error"} sentinel.
func (e *Enricher) Income(ctx context.Context, lat, lng float64) Attributes {
	income, err := e.client.ConsumerIncome(ctx, lat, lng)
	if err != nil {
		zap.L().Warn("income enricher failed", zap.Error(err))
		return Attributes{KeyIncomeError: SentinelError}
	}
	return Attributes{KeyIncome: income}
}

// Segmentation returns the intra-urban cluster membership probabilities plus
// the most likely cluster. A point outside every cluster is reported as
// "rural"; a failed cluster lookup degrades to the "Error" sentinel while the
// probabilities are kept. Any failure of the probability call itself
// collapses to the {"Seg. Intra": "Error"} sentinel.
func (e *Enricher) Segmentation(ctx context.Context, lat, lng float64) Attributes {
	probs, err := e.client.SegmentationProbs(ctx, lat, lng)
	if err != nil {
		zap.L().Warn("segmentation enricher failed", zap.Error(err))
		return Attributes{KeySegError: SentinelError}
	}

	attrs := make(Attributes, len(probs)+1)
	for k, v := range probs {
		attrs[k] = v
	}
	attrs[KeyCluster] = e.cluster(ctx, lat, lng)
	return attrs
}

func (e *Enricher) cluster(ctx context.Context, lat, lng float64) string {
	cluster, err := e.client.SegmentationMax(ctx, lat, lng)
	if err != nil {
		zap.L().Warn("segmentation cluster lookup failed", zap.Error(err))
		return SentinelError
	}
	if cluster == "" {
		return ClusterRural
	}
	return cluster
}

// Pois returns flattened point-of-interest category counts under the pois__
// prefix plus pois__total. Any failure yields an empty map; callers tolerate
// silently missing POI fields.
func (e *Enricher) Pois(ctx context.Context, lat, lng float64) Attributes {
	summary, err := e.client.PlacesSummary(ctx, lat, lng, geofusion.PlacesParams{
		DispatchType: e.params.DispatchType,
		Locomotion:   e.params.Locomotion,
		Direction:    e.params.Direction,
		Value:        e.params.Value,
	})
	if err != nil {
		zap.L().Warn("pois enricher failed", zap.Error(err))
		return Attributes{}
	}

	flat := flatten.Namespace(PrefixPois, flatten.Flatten(summary.Summary))
	attrs := make(Attributes, len(flat)+1)
	for k, v := range flat {
		attrs[k] = v
	}
	attrs[PrefixPois+"total"] = summary.Total
	return attrs
}

// ConsumptionPotential returns per-category flattened totals under the
// consumption_potential__ prefix, each category carrying a __total key
// summing its leaves. It has no local failure handling on purpose: an error
// here fails the whole record and is handled by the orchestrator.
func (e *Enricher) ConsumptionPotential(ctx context.Context, lat, lng float64) (Attributes, error) {
	potentials, err := e.client.ConsumptionPotential(ctx, lat, lng, e.params.Radius, e.params.Categories)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]float64)
	for category, breakdown := range potentials {
		flat := flatten.Flatten(map[string]any{category: breakdown})
		total := flatten.Sum(flat)
		flat[category+flatten.Separator+"total"] = total
		merged = flatten.Merge(merged, flat)
	}

	flat := flatten.Namespace(PrefixConsumption, merged)
	attrs := make(Attributes, len(flat))
	for k, v := range flat {
		attrs[k] = v
	}
	return attrs, nil
}

// Sociodemography returns the flattened demographic breakdown under the
// sociodemography__ prefix. Any failure collapses to a diagnostic sentinel
// carrying the failing URL and response body when available.
func (e *Enricher) Sociodemography(ctx context.Context, lat, lng float64) Attributes {
	data, err := e.client.Sociodemography(ctx, lat, lng, e.params.Radius)
	if err != nil {
		zap.L().Warn("sociodemography enricher failed", zap.Error(err))
		return Attributes{KeySocioError: fmt.Sprintf("sociodemography lookup failed: %v", err)}
	}

	flat := flatten.Namespace(PrefixSocio, flatten.Flatten(data))
	attrs := make(Attributes, len(flat))
	for k, v := range flat {
		attrs[k] = v
	}
	return attrs
}

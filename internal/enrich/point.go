package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/escale/cep-enricher/internal/resilience"
)

// Geocode resolves a CEP to a coordinate, expressed as attributes. Outcomes:
//   - resolved: latitude, longitude and geocoder_error="None"
//   - API-reported error (unresolvable CEP): only geocoder_error, carrying
//     the API's message
//   - connection retries exhausted: only the "error"="max_retries" marker
//   - anything else: an "Error geocoder" diagnostic with the CEP and cause
//
// The last two deliberately omit geocoder_error; the orchestrator treats a
// record without it as failed.
func (e *Enricher) Geocode(ctx context.Context, cep string) Attributes {
	pos, err := e.client.Position(ctx, cep)
	if err != nil {
		if resilience.IsExhausted(err) {
			zap.L().Warn("geocode retries exhausted", zap.String("cep", cep), zap.Error(err))
			return Attributes{KeyRetriesError: SentinelMaxRetries}
		}
		msg := fmt.Sprintf("cep [%s] com erro: [%v]", cep, err)
		zap.L().Warn("geocode failed", zap.String("cep", cep), zap.Error(err))
		return Attributes{KeyGeocodeFailure: msg}
	}

	if pos.Error != "" {
		return Attributes{KeyGeocoderError: pos.Error}
	}

	return Attributes{
		KeyLatitude:      pos.Latitude,
		KeyLongitude:     pos.Longitude,
		KeyGeocoderError: SentinelNone,
	}
}

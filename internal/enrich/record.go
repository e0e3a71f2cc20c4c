package enrich

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// EnrichRecord enriches one record: geocode the CEP, then fan out to every
// coordinate enricher and merge the outputs. A geocoding error short-circuits
// to a record holding only that error. Every other failure, panics included,
// collapses to the {"Error": true} marker so one bad CEP never aborts the
// batch. The only error returned is context cancellation, which must
// propagate so the whole run stops.
func (e *Enricher) EnrichRecord(ctx context.Context, rec Record) (attrs Attributes, err error) {
	log := zap.L().With(zap.Int("index", rec.Index), zap.String("cep", rec.CEP))

	defer func() {
		if r := recover(); r != nil {
			log.Error("record enrichment panicked",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
			attrs = Attributes{KeyRecordError: true}
			err = nil
		}
	}()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	point := e.Geocode(ctx, rec.CEP)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	geocoderErr, ok := point[KeyGeocoderError].(string)
	if !ok {
		// Geocode produced only a failure marker (exhausted retries or an
		// unexpected error); the record is failed outright.
		log.Error("record failed during geocoding", zap.Any("geocode", map[string]any(point)))
		return Attributes{KeyRecordError: true}, nil
	}

	if !strings.EqualFold(geocoderErr, SentinelNone) {
		return Attributes{KeyGeocoderError: geocoderErr}, nil
	}

	lat, _ := point[KeyLatitude].(float64)
	lng, _ := point[KeyLongitude].(float64)

	merged := make(Attributes)
	merge(merged, point)
	merge(merged, e.Segmentation(ctx, lat, lng))
	merge(merged, e.Income(ctx, lat, lng))
	merge(merged, e.Pois(ctx, lat, lng))

	consumption, consumptionErr := e.ConsumptionPotential(ctx, lat, lng)
	if consumptionErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error("record failed during consumption potential",
			zap.String("trace", eris.ToString(consumptionErr, true)),
		)
		return Attributes{KeyRecordError: true}, nil
	}
	merge(merged, consumption)
	merge(merged, e.Sociodemography(ctx, lat, lng))

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return merged, nil
}

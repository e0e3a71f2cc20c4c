package geofusion

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
)

const placesSummaryPath = "/places-enricher/v1/summary/"

// PlacesSummary returns point-of-interest category counts around a
// coordinate. The geometry is selected by params.DispatchType; direction only
// applies to non-WALK locomotion and is omitted otherwise.
func (c *httpClient) PlacesSummary(ctx context.Context, lat, lng float64, params PlacesParams) (*PlacesSummary, error) {
	query := coordQuery(lat, lng)
	query.Set("locomotion", params.Locomotion)
	query.Set("value", formatFloat(params.Value))
	if params.Locomotion != "WALK" {
		query.Set("direction", params.Direction)
	}

	body, err := c.getJSON(ctx, placesSummaryPath+params.DispatchType, query)
	if err != nil {
		return nil, err
	}

	var resp PlacesSummary
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "geofusion: parse places summary")
	}
	return &resp, nil
}

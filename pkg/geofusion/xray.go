package geofusion

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	consumptionPotentialPath = "/xray/v1/areas/surroundings/estimatedConsumptionPotential/RADIUS"
	sociodemographyPath      = "/xray/v1/areas/surroundings/sociodemography/RADIUS"
)

// ConsumptionPotential returns the nested per-category consumption potential
// breakdown within radius meters of the coordinate.
func (c *httpClient) ConsumptionPotential(ctx context.Context, lat, lng, radius float64, categories []string) (map[string]any, error) {
	query := coordQuery(lat, lng)
	query.Set("value", formatFloat(radius))
	query.Set("categories", strings.Join(categories, ","))

	body, err := c.getJSON(ctx, consumptionPotentialPath, query)
	if err != nil {
		return nil, err
	}

	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "geofusion: parse consumption potential")
	}
	return resp, nil
}

// Sociodemography returns the nested demographic breakdown within radius
// meters of the coordinate.
func (c *httpClient) Sociodemography(ctx context.Context, lat, lng, radius float64) (map[string]any, error) {
	query := coordQuery(lat, lng)
	query.Set("value", formatFloat(radius))

	body, err := c.getJSON(ctx, sociodemographyPath, query)
	if err != nil {
		return nil, err
	}

	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		// The sentinel built from this error carries the failing URL.
		return nil, eris.Wrapf(err, "geofusion: parse sociodemography from %s", c.endpointURL(sociodemographyPath, query))
	}
	return resp, nil
}

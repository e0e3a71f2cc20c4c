package geofusion

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
)

const incomePath = "/income/v1/consumer"

// ConsumerIncome returns the likely household income estimate at a
// coordinate. The endpoint responds with a bare JSON number.
func (c *httpClient) ConsumerIncome(ctx context.Context, lat, lng float64) (float64, error) {
	body, err := c.getJSON(ctx, incomePath, coordQuery(lat, lng))
	if err != nil {
		return 0, err
	}

	var income float64
	if err := json.Unmarshal(body, &income); err != nil {
		return 0, eris.Wrap(err, "geofusion: parse income")
	}
	return income, nil
}

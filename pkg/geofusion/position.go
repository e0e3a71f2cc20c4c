package geofusion

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rotisserie/eris"
)

const positionPath = "/geocoder/v1/position"

// Position resolves a CEP to latitude and longitude. An unresolvable CEP is
// not an error at this level: the API reports it in the Error field of the
// returned Position.
func (c *httpClient) Position(ctx context.Context, cep string) (*Position, error) {
	query := url.Values{"zipCode": {cep}}

	body, err := c.getJSON(ctx, positionPath, query)
	if err != nil {
		return nil, err
	}

	var pos Position
	if err := json.Unmarshal(body, &pos); err != nil {
		return nil, eris.Wrapf(err, "geofusion: parse position for cep %s", cep)
	}
	return &pos, nil
}
